package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/xferclient/internal/client/models"
	"github.com/dmitrijs2005/xferclient/internal/logging"
	"github.com/dmitrijs2005/xferclient/internal/netx"
	"github.com/google/uuid"
)

const (
	pathConfig       = "/config"
	pathGenerateKeys = "/generate_keys"
	pathUpload       = "/upload"

	RequestIDHeader = "X-Request-ID"
)

type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger
}

// NewHTTPClient validates baseURL and returns a client for it. A nil
// httpClient means a fresh *http.Client with no timeout, a nil logger
// discards request logs.
func NewHTTPClient(baseURL string, httpClient *http.Client, logger logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("backend url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("backend url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("backend url %q: missing host", baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}, nil
}

func (c *HTTPClient) BaseURL() string { return c.baseURL }

func (c *HTTPClient) FetchConfig(ctx context.Context) (models.RemoteConfig, error) {
	_, body, err := c.do(ctx, http.MethodGet, pathConfig, nil, "")
	if err != nil {
		return nil, err
	}

	var rc models.RemoteConfig
	if err := json.Unmarshal(body, &rc); err != nil {
		return nil, fmt.Errorf("%w: config: %v", ErrMalformedResponse, err)
	}
	if rc == nil {
		rc = models.RemoteConfig{}
	}
	return rc, nil
}

func (c *HTTPClient) GenerateKeys(ctx context.Context, req models.KeyRequest) (*models.KeyMaterial, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	_, body, err := c.do(ctx, http.MethodPost, pathGenerateKeys, bytes.NewReader(payload), "application/json")
	if err != nil {
		return nil, err
	}

	var km models.KeyMaterial
	if err := json.Unmarshal(body, &km); err != nil {
		return nil, fmt.Errorf("%w: generate_keys: %v", ErrMalformedResponse, err)
	}
	if km.Key == "" {
		return nil, fmt.Errorf("%w: generate_keys: no key in response", ErrMalformedResponse)
	}
	return &km, nil
}

func (c *HTTPClient) Upload(ctx context.Context, fields []models.FormField, file models.Attachment) (*models.UploadAck, error) {
	if file == nil {
		return nil, fmt.Errorf("upload: no file attached")
	}

	content, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", file.Name(), err)
	}
	defer content.Close()

	parts := make([][2]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, [2]string{f.Name, f.Value})
	}

	form, contentType, err := netx.MultipartBody(parts, &netx.FilePart{
		Field:    models.FieldFile,
		FileName: file.Name(),
		Content:  content,
	})
	if err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}

	status, body, err := c.do(ctx, http.MethodPost, pathUpload, form, contentType)
	if err != nil {
		return nil, err
	}

	ack := &models.UploadAck{Status: status, Body: body}
	// the acknowledgment is backend defined, a non-JSON body is still a success
	_ = json.Unmarshal(body, ack)
	return ack, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body io.Reader, contentType string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)
	log := c.logger.With("method", method, "path", path, "request_id", reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Error(ctx, "request failed", "error", err)
		return 0, nil, fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	data, err := netx.ReadBody(resp)
	log.Debug(ctx, "response", "status", resp.StatusCode, "duration", time.Since(start))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%w: %s %s: read body: %v", ErrUnavailable, method, path, err)
	}

	if !netx.IsSuccess(resp.StatusCode) {
		se := &StatusError{Op: method + " " + path, Code: resp.StatusCode, Body: data}
		var eb struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &eb) == nil {
			se.Message = eb.Error
		}
		log.Error(ctx, "unexpected status", "status", resp.StatusCode, "error", se.Message)
		return resp.StatusCode, nil, se
	}

	return resp.StatusCode, data, nil
}
