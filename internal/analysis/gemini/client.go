package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"callsight/internal/config"
	"callsight/internal/domain"
	"callsight/internal/port"
)

const (
	apiBaseURL    = "https://generativelanguage.googleapis.com/v1beta"
	uploadBaseURL = "https://generativelanguage.googleapis.com/upload/v1beta"
)

// safetySettings disables blocking across all four harm categories for
// multimodal requests. Earnings calls routinely discuss bankruptcy, layoffs,
// litigation and similar risk language that default thresholds can refuse.
var safetySettings = []map[string]string{
	{"category": "HARM_CATEGORY_DANGEROUS_CONTENT", "threshold": "BLOCK_NONE"},
	{"category": "HARM_CATEGORY_HARASSMENT", "threshold": "BLOCK_NONE"},
	{"category": "HARM_CATEGORY_HATE_SPEECH", "threshold": "BLOCK_NONE"},
	{"category": "HARM_CATEGORY_SEXUALLY_EXPLICIT", "threshold": "BLOCK_NONE"},
}

// Client implements port.ModelBackend against the Gemini REST API.
// The API key travels per request; the client itself holds no credential.
type Client struct {
	model     string
	baseURL   string
	uploadURL string
	client    *http.Client
}

// NewClient creates a Gemini-backed model client.
func NewClient(cfg *config.GeminiConfig) *Client {
	return newClient(cfg, "", "")
}

// NewClientWithEndpoints creates a client pointing at custom API endpoints (for testing).
func NewClientWithEndpoints(cfg *config.GeminiConfig, baseURL, uploadURL string) *Client {
	return newClient(cfg, baseURL, uploadURL)
}

func newClient(cfg *config.GeminiConfig, baseURL, uploadURL string) *Client {
	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	if baseURL == "" {
		baseURL = apiBaseURL
	}
	if uploadURL == "" {
		uploadURL = uploadBaseURL
	}
	return &Client{
		model:     model,
		baseURL:   baseURL,
		uploadURL: uploadURL,
		client:    &http.Client{Timeout: timeout},
	}
}

// Generate issues one generateContent call and returns the raw text of the
// first candidate. An empty candidate list yields an empty string; deciding
// what that means belongs to the response decoder, not the client.
func (c *Client) Generate(ctx context.Context, input port.GenerateInput) (string, error) {
	parts := []map[string]interface{}{}
	if input.File != nil {
		parts = append(parts, map[string]interface{}{
			"file_data": map[string]interface{}{
				"mime_type": input.File.MIMEType,
				"file_uri":  input.File.URI,
			},
		})
	}
	parts = append(parts, map[string]interface{}{"text": input.Prompt})

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"role":  "user",
				"parts": parts,
			},
		},
	}
	if input.File != nil {
		reqBody["safetySettings"] = safetySettings
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", input.Credential)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: calling gemini API: %v", domain.ErrRemoteAnalysis, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", domain.ErrRemoteAnalysis, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: gemini API error (status %d): %s", domain.ErrRemoteAnalysis, resp.StatusCode, string(respBody))
	}

	var genResp generateResponse
	if err := json.Unmarshal(respBody, &genResp); err != nil {
		return "", fmt.Errorf("%w: unmarshaling response: %v", domain.ErrRemoteAnalysis, err)
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return genResp.Candidates[0].Content.Parts[0].Text, nil
}

// UploadFile hands a staged local file to the Gemini Files API using the
// raw upload protocol and returns its handle.
func (c *Client) UploadFile(ctx context.Context, credential, path, mimeType string) (*port.RemoteFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening staged file: %v", domain.ErrRemoteUpload, err)
	}
	defer func() { _ = f.Close() }()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL+"/files", f)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mimeType)
	req.Header.Set("X-Goog-Upload-Protocol", "raw")
	req.Header.Set("x-goog-api-key", credential)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: calling files API: %v", domain.ErrRemoteUpload, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", domain.ErrRemoteUpload, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: files API error (status %d): %s", domain.ErrRemoteUpload, resp.StatusCode, string(respBody))
	}

	var uploadResp struct {
		File fileResource `json:"file"`
	}
	if err := json.Unmarshal(respBody, &uploadResp); err != nil {
		return nil, fmt.Errorf("%w: unmarshaling response: %v", domain.ErrRemoteUpload, err)
	}
	return uploadResp.File.toRemoteFile(), nil
}

// GetFile re-queries a file's processing state.
func (c *Client) GetFile(ctx context.Context, credential, name string) (*port.RemoteFile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+name, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("x-goog-api-key", credential)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: querying file state: %v", domain.ErrRemoteProcessing, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", domain.ErrRemoteProcessing, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: files API error (status %d): %s", domain.ErrRemoteProcessing, resp.StatusCode, string(respBody))
	}

	var file fileResource
	if err := json.Unmarshal(respBody, &file); err != nil {
		return nil, fmt.Errorf("%w: unmarshaling response: %v", domain.ErrRemoteProcessing, err)
	}
	return file.toRemoteFile(), nil
}

// DeleteFile releases the remote storage behind a handle. Callers treat a
// failure here as best-effort and must not propagate it.
func (c *Client) DeleteFile(ctx context.Context, credential, name string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/"+name, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("x-goog-api-key", credential)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("deleting remote file: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("files API error (status %d): %s", resp.StatusCode, string(body))
	}
	return nil
}

// generateResponse models the generateContent API response.
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

// fileResource models the Files API file object.
type fileResource struct {
	Name     string `json:"name"`
	URI      string `json:"uri"`
	MIMEType string `json:"mimeType"`
	State    string `json:"state"`
}

func (f *fileResource) toRemoteFile() *port.RemoteFile {
	return &port.RemoteFile{
		Name:     f.Name,
		URI:      f.URI,
		MIMEType: f.MIMEType,
		State:    toFileState(f.State),
	}
}

// toFileState maps Gemini file states onto the pipeline's vocabulary.
// Unknown states are treated as failed rather than polled forever.
func toFileState(s string) port.FileState {
	switch s {
	case "PROCESSING":
		return port.FileStatePending
	case "ACTIVE":
		return port.FileStateReady
	case "FAILED":
		return port.FileStateFailed
	default:
		return port.FileStateFailed
	}
}
