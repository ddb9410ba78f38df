package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath    string
	RawDocDir string
	OutputDir string

	DocSource     string
	LocalInputDir string

	InputBucket        string
	InputPrefix        string
	DataPrefix         string
	ExportBucket       string
	GCSCredentialsFile string

	GeminiBaseURL      string
	GeminiAPIKey       string
	GeminiModel        string
	GeminiTimeoutMs    int
	GeminiRateLimitRPS int

	RegistryPath         string
	RegistryPersonColumn string

	ExportFileName string
	ArchiveName    string

	ListenerIntervalSec int
	ListenerFetchMax    int
	ListenerBatch       int
	ListenerAutoExport  bool
	ListenerAutoUpload  bool
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:    getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),
		RawDocDir: getEnv("DOC_RAW_DIR", filepath.Join(cwd, "data", "raw")),
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		DocSource:     getEnv("DOC_SOURCE", "gcs"),
		LocalInputDir: getEnv("LOCAL_INPUT_DIR", filepath.Join(cwd, "data", "input")),

		InputBucket:        getEnv("INPUT_BUCKET", ""),
		InputPrefix:        getEnv("INPUT_PREFIX", "input/"),
		DataPrefix:         getEnv("DATA_PREFIX", "data/"),
		ExportBucket:       getEnv("EXPORT_BUCKET", ""),
		GCSCredentialsFile: getEnv("GCS_CREDENTIALS_FILE", ""),

		GeminiBaseURL:      getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		GeminiAPIKey:       getEnv("GEMINI_API_KEY", ""),
		GeminiModel:        getEnv("GEMINI_MODEL", "gemini-2.0-flash-001"),
		GeminiTimeoutMs:    getEnvInt("GEMINI_TIMEOUT_MS", 60000),
		GeminiRateLimitRPS: getEnvInt("GEMINI_RATE_LIMIT_RPS", 2),

		RegistryPath:         getEnv("REGISTRY_PATH", filepath.Join(cwd, "data", "elenco_personale.csv")),
		RegistryPersonColumn: getEnv("REGISTRY_PERSON_COLUMN", "Person Number"),

		ExportFileName: getEnv("EXPORT_FILE_NAME", "DocumentsOfRecord.dat"),
		ArchiveName:    getEnv("ARCHIVE_NAME", "solution.zip"),

		ListenerIntervalSec: getEnvInt("LISTENER_INTERVAL_SEC", 60),
		ListenerFetchMax:    getEnvInt("LISTENER_FETCH_MAX", 50),
		ListenerBatch:       getEnvInt("LISTENER_PROCESS_BATCH", 50),
		ListenerAutoExport:  getEnvBool("LISTENER_AUTO_EXPORT", true),
		ListenerAutoUpload:  getEnvBool("LISTENER_AUTO_UPLOAD", false),
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}
