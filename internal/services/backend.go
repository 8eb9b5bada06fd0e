package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/desertthunder/followback/internal/models"
	"github.com/desertthunder/followback/internal/shared"
)

// maxErrorBody caps how much of a failed response body is echoed into error messages.
const maxErrorBody = 512

// BackendService is the HTTP client for the reciprocity backend.
type BackendService struct {
	baseURL    string
	httpClient *http.Client
}

// NewBackendService creates a client for the backend at baseURL.
//
// A nil client falls back to [http.DefaultClient]; no timeout is set beyond the transport defaults.
func NewBackendService(baseURL string, client *http.Client) *BackendService {
	if baseURL == "" {
		baseURL = "http://127.0.0.1:5000"
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &BackendService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
	}
}

// Name returns the backend base URL.
func (b *BackendService) Name() string {
	return b.baseURL
}

// APIResponse represents a raw API response with status and body.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// OK reports whether the status code is 2xx.
func (r *APIResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// uploadResponse is the success body of [UploadPath]. Pointers tell a missing key from an empty list.
type uploadResponse struct {
	NotFollowingBack *[]string `json:"not_following_back"`
	NotFollowedBy    *[]string `json:"not_followed_by"`
}

// errorResponse is the body shape the backend uses for failures.
type errorResponse struct {
	Error string `json:"error"`
}

// Upload posts both files as multipart fields [FollowersField] and [FollowingField] to [UploadPath].
//
// Missing files fail with [shared.ErrValidation] before any request is made. Every other failure
// (transport, non-2xx status, undecodable body) is wrapped in [shared.ErrTransport]; a 401 also
// matches [shared.ErrUnauthorized]. A 2xx body must carry both lists with unique, non-empty names.
func (b *BackendService) Upload(ctx context.Context, followers, following *models.Upload) (*models.AnalysisResult, error) {
	if followers == nil || following == nil {
		return nil, fmt.Errorf("%w: both followers and following files are required", shared.ErrValidation)
	}

	body, contentType, err := encodeMultipart(followers, following)
	if err != nil {
		return nil, err
	}

	resp, err := b.do(ctx, http.MethodPost, UploadPath, body, contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrTransport, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("%w: %w: %s", shared.ErrTransport, shared.ErrUnauthorized, statusError(resp))
	case !resp.OK():
		return nil, fmt.Errorf("%w: %s", shared.ErrTransport, statusError(resp))
	}

	var body uploadResponse
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return nil, fmt.Errorf("%w: malformed response body: %v", shared.ErrTransport, err)
	}
	if body.NotFollowingBack == nil || body.NotFollowedBy == nil {
		return nil, fmt.Errorf("%w: malformed response body: not_following_back and not_followed_by are required", shared.ErrTransport)
	}

	result := &models.AnalysisResult{
		NotFollowingBack: *body.NotFollowingBack,
		NotFollowedBy:    *body.NotFollowedBy,
	}
	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("%w: malformed response body: %v", shared.ErrTransport, err)
	}

	return result, nil
}

// Health calls [HealthPath] and fails unless it answers 2xx.
func (b *BackendService) Health(ctx context.Context) error {
	resp, err := b.do(ctx, http.MethodGet, HealthPath, nil, "")
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	if !resp.OK() {
		return fmt.Errorf("%w: %s", shared.ErrServiceUnavailable, statusError(resp))
	}
	return nil
}

func (b *BackendService) do(ctx context.Context, method, path string, body io.Reader, contentType string) (*APIResponse, error) {
	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       data,
	}, nil
}

// encodeMultipart writes both uploads into a multipart body.
func encodeMultipart(followers, following *models.Upload) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for _, part := range []struct {
		field  string
		upload *models.Upload
	}{
		{FollowersField, followers},
		{FollowingField, following},
	} {
		if err := writeFilePart(mw, part.field, part.upload); err != nil {
			return nil, "", err
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish multipart body: %w", err)
	}

	return &buf, mw.FormDataContentType(), nil
}

func writeFilePart(mw *multipart.Writer, field string, upload *models.Upload) error {
	src, err := upload.Open()
	if err != nil {
		return fmt.Errorf("%w: failed to open %s: %v", shared.ErrValidation, field, err)
	}
	defer src.Close()

	name := upload.Name
	if name == "" {
		name = field + ".json"
	}

	dst, err := mw.CreateFormFile(field, name)
	if err != nil {
		return fmt.Errorf("failed to create form file %s: %w", field, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	return nil
}

// statusError formats a non-2xx response, preferring the backend's {"error": ...} message.
func statusError(resp *APIResponse) string {
	var e errorResponse
	if err := json.Unmarshal(resp.Body, &e); err == nil && e.Error != "" {
		return fmt.Sprintf("status %d: %s", resp.StatusCode, e.Error)
	}

	text := strings.TrimSpace(string(resp.Body))
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody] + "..."
	}
	if text == "" {
		return fmt.Sprintf("status %d", resp.StatusCode)
	}
	return fmt.Sprintf("status %d: %s", resp.StatusCode, text)
}

var _ Analyzer = (*BackendService)(nil)
