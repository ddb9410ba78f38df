package classifier

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"hrdocs/internal"
	"hrdocs/internal/config"
)

// Client calls the Gemini generateContent endpoint to classify one document
// and extract its identity fields. The model is an opaque oracle: every call
// yields either an ExtractionRecord or an error the caller turns into an
// all-error-token record.
type Client struct {
	cfg        config.Config
	httpClient *http.Client
	limiter    *RateLimiter
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Duration(cfg.GeminiTimeoutMs) * time.Millisecond},
		limiter:    NewRateLimiter(cfg.GeminiRateLimitRPS),
	}
}

func (c *Client) Classify(ctx context.Context, fileName, mimeType string, docContent []byte) (internal.ExtractionRecord, error) {
	if err := c.cfg.Require("GEMINI_API_KEY", c.cfg.GeminiAPIKey); err != nil {
		return internal.ExtractionRecord{}, err
	}

	payload := generateRequest{
		Contents: []content{{
			Parts: []part{
				{InlineData: &inlineData{MimeType: mimeType, Data: base64.StdEncoding.EncodeToString(docContent)}},
				{Text: ClassificationPrompt()},
			},
		}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return internal.ExtractionRecord{}, err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.cfg.GeminiBaseURL, c.cfg.GeminiModel, c.cfg.GeminiAPIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return internal.ExtractionRecord{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	c.limiter.WaitTurn()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return internal.ExtractionRecord{}, fmt.Errorf("classify %s: %w", fileName, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return internal.ExtractionRecord{}, fmt.Errorf("classify %s: read response: %w", fileName, err)
	}
	if resp.StatusCode != http.StatusOK {
		return internal.ExtractionRecord{}, fmt.Errorf("classify %s: model returned %d: %s", fileName, resp.StatusCode, truncate(string(respBody), 300))
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return internal.ExtractionRecord{}, fmt.Errorf("classify %s: decode response: %w", fileName, err)
	}
	if parsed.Error != nil {
		return internal.ExtractionRecord{}, fmt.Errorf("classify %s: model error %d: %s", fileName, parsed.Error.Code, parsed.Error.Message)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return internal.ExtractionRecord{}, fmt.Errorf("classify %s: empty model response", fileName)
	}

	return ParseModelResponse(parsed.Candidates[0].Content.Parts[0].Text, fileName), nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
