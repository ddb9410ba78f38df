package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"hrdocs/internal/classifier"
	"hrdocs/internal/config"
	"hrdocs/internal/connectors"
	"hrdocs/internal/connectors/gcs"
	"hrdocs/internal/connectors/localdir"
	"hrdocs/internal/pipeline"
	"hrdocs/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	ctx := context.Background()

	cmd := os.Args[1]
	switch cmd {
	case "docs:fetch":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		source := fs.String("source", cfg.DocSource, "gcs|local")
		max := fs.Int("max", 0, "max documents, 0 for all")
		_ = fs.Parse(os.Args[2:])
		conn, err := makeSource(cfg, *source)
		must(err)
		fetch := connectors.NewFetchService(db, cfg.RawDocDir, *source, conn)
		result, err := fetch.FetchAndStore(ctx, *max)
		must(err)
		fmt.Printf("fetch done source=%s listed=%d stored=%d\n", *source, result.Listed, result.Stored)
	case "docs:classify":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		batch := fs.Int("batch", 50, "batch size")
		_ = fs.Parse(os.Args[2:])
		processor := pipeline.NewProcessingService(db, cfg)
		classified, err := processor.ClassifyFetched(ctx, classifier.NewClient(cfg), *batch)
		must(err)
		fmt.Printf("classify done documents=%d\n", classified)
	case "etl:run":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		batch := fs.Int("batch", 500, "batch size")
		zip := fs.Bool("zip", false, "also build the solution archive")
		_ = fs.Parse(os.Args[2:])
		processor := pipeline.NewProcessingService(db, cfg)
		result, err := processor.ProcessClassified(*batch)
		must(err)
		if result.Records == 0 {
			fmt.Println("nothing to process")
			return
		}
		fmt.Printf("etl done records=%d matched=%d unmatched=%d discarded=%d export=%s\n",
			result.Records, result.Matched, result.Unmatched, result.Discarded, result.ExportPath)
		if *zip {
			archivePath, err := processor.BuildArchiveFromRun(result.Blob)
			must(err)
			fmt.Printf("archive built: %s\n", archivePath)
		}
	case "registry:fetch":
		conn, err := gcs.NewConnector(cfg)
		must(err)
		objectName := cfg.DataPrefix + filepath.Base(cfg.RegistryPath)
		content, err := conn.Fetch(ctx, objectName)
		must(err)
		must(os.MkdirAll(filepath.Dir(cfg.RegistryPath), 0o755))
		must(os.WriteFile(cfg.RegistryPath, content, 0o644))
		fmt.Printf("registry fetched: %s -> %s\n", objectName, cfg.RegistryPath)
	case "export:zip":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		blobPath := fs.String("blob", filepath.Join(cfg.OutputDir, cfg.ExportFileName), "export blob path")
		out := fs.String("out", filepath.Join(cfg.OutputDir, cfg.ArchiveName), "archive path")
		_ = fs.Parse(os.Args[2:])
		blob, err := os.ReadFile(*blobPath)
		must(err)
		must(pipeline.BuildArchive(string(blob), cfg.ExportFileName, cfg.RawDocDir, *out))
		fmt.Printf("archive built: %s\n", *out)
	case "upload":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		path := fs.String("path", filepath.Join(cfg.OutputDir, cfg.ArchiveName), "artifact to upload")
		bucket := fs.String("bucket", cfg.ExportBucket, "destination bucket")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*bucket) == "" {
			must(fmt.Errorf("--bucket or EXPORT_BUCKET is required"))
		}
		conn, err := gcs.NewConnector(cfg)
		must(err)
		f, err := os.Open(*path)
		must(err)
		defer f.Close()
		must(conn.Upload(ctx, *bucket, filepath.Base(*path), f))
		fmt.Printf("uploaded %s to gs://%s\n", filepath.Base(*path), *bucket)
	case "run":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		source := fs.String("source", cfg.DocSource, "gcs|local")
		max := fs.Int("max", 0, "max documents, 0 for all")
		batch := fs.Int("batch", 500, "batch size")
		_ = fs.Parse(os.Args[2:])

		conn, err := makeSource(cfg, *source)
		must(err)
		fetch := connectors.NewFetchService(db, cfg.RawDocDir, *source, conn)
		fetchResult, err := fetch.FetchAndStore(ctx, *max)
		must(err)

		processor := pipeline.NewProcessingService(db, cfg)
		classified, err := processor.ClassifyFetched(ctx, classifier.NewClient(cfg), *batch)
		must(err)

		result, err := processor.ProcessClassified(*batch)
		must(err)
		if result.Records == 0 {
			fmt.Printf("run done stored=%d classified=%d, nothing to export\n", fetchResult.Stored, classified)
			return
		}
		archivePath, err := processor.BuildArchiveFromRun(result.Blob)
		must(err)
		fmt.Printf("run done stored=%d classified=%d records=%d matched=%d unmatched=%d discarded=%d archive=%s\n",
			fetchResult.Stored, classified, result.Records, result.Matched, result.Unmatched, result.Discarded, archivePath)
	default:
		usage()
		os.Exit(1)
	}
}

func makeSource(cfg config.Config, name string) (connectors.DocumentSource, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "gcs":
		return gcs.NewConnector(cfg)
	case "local":
		return localdir.NewConnector(cfg.LocalInputDir), nil
	default:
		return nil, fmt.Errorf("unsupported document source: %s", name)
	}
}

func usage() {
	fmt.Println("usage: hrdocs <command>")
	fmt.Println("commands:")
	fmt.Println("  docs:fetch --source=gcs|local --max=0")
	fmt.Println("  docs:classify --batch=50")
	fmt.Println("  registry:fetch")
	fmt.Println("  etl:run --batch=500 [--zip]")
	fmt.Println("  export:zip [--blob=...] [--out=...]")
	fmt.Println("  upload [--path=...] [--bucket=...]")
	fmt.Println("  run --source=gcs|local [--max=0] [--batch=500]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
