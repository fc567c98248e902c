package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/xferclient/internal/client/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *HTTPClient {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	c, err := NewHTTPClient(ts.URL+"/", nil, nil)
	require.NoError(t, err)
	return c
}

func TestNewHTTPClient_URLChecks(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"http ok", "http://127.0.0.1:5005", false},
		{"https ok", "https://backend.example/api", false},
		{"no scheme", "127.0.0.1:5005", true},
		{"ftp", "ftp://backend.example", true},
		{"no host", "http://", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewHTTPClient(tt.url, nil, nil)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}

	c, err := NewHTTPClient("http://h:1/base/", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://h:1/base", c.BaseURL())
}

func TestHTTPClient_FetchConfig(t *testing.T) {
	var gotMethod, gotPath, gotReqID string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		gotReqID = r.Header.Get(RequestIDHeader)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"sshUsername":"deploy","sshPort":22}`)
	})

	rc, err := c.FetchConfig(context.Background())
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Equal(t, "/config", gotPath)
	_, err = uuid.Parse(gotReqID)
	assert.NoError(t, err, "request id must be a uuid")

	v, ok, err := rc.Text(models.FieldSSHPort)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "22", v)
}

func TestHTTPClient_FetchConfig_Errors(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, `{"error":"Error reading config: boom"}`)
		})
		_, err := c.FetchConfig(context.Background())

		var se *StatusError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, http.StatusInternalServerError, se.Code)
		assert.Equal(t, "Error reading config: boom", se.Message)
		assert.Contains(t, se.Error(), "GET /config: HTTP 500")
	})

	t.Run("malformed", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `not json`)
		})
		_, err := c.FetchConfig(context.Background())
		require.ErrorIs(t, err, ErrMalformedResponse)
	})

	t.Run("null body", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `null`)
		})
		rc, err := c.FetchConfig(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, rc)
		assert.Empty(t, rc)
	})

	t.Run("unreachable", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		url := ts.URL
		ts.Close()

		c, err := NewHTTPClient(url, nil, nil)
		require.NoError(t, err)
		_, err = c.FetchConfig(context.Background())
		require.ErrorIs(t, err, ErrUnavailable)
	})
}

func TestHTTPClient_GenerateKeys(t *testing.T) {
	var got models.KeyRequest
	var gotCT string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/generate_keys", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		gotCT = r.Header.Get("Content-Type")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"key":"K","iv":null,"salt":"S"}`)
	})

	km, err := c.GenerateKeys(context.Background(), models.KeyRequest{Password: "pw", CipherMode: "aes-256-cbc"})
	require.NoError(t, err)

	assert.Equal(t, "application/json", gotCT)
	assert.Equal(t, models.KeyRequest{Password: "pw", CipherMode: "aes-256-cbc"}, got)
	assert.Equal(t, &models.KeyMaterial{Key: "K", IV: "", Salt: "S"}, km)
}

func TestHTTPClient_GenerateKeys_Errors(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"iv":"I"}`)
		})
		_, err := c.GenerateKeys(context.Background(), models.KeyRequest{Password: "pw"})
		require.ErrorIs(t, err, ErrMalformedResponse)
	})

	t.Run("bad request", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"error":"Password is required to generate keys"}`)
		})
		_, err := c.GenerateKeys(context.Background(), models.KeyRequest{})
		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusBadRequest, se.Code)
		assert.Equal(t, "Password is required to generate keys", se.Message)
	})
}

func TestHTTPClient_Upload(t *testing.T) {
	var (
		gotFields = map[string]string{}
		gotFile   []byte
		gotName   string
	)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload", r.URL.Path)
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		for k, v := range r.MultipartForm.Value {
			gotFields[k] = v[0]
		}
		f, hdr, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer f.Close()
		gotName = hdr.Filename
		gotFile, _ = io.ReadAll(f)
		_, _ = io.WriteString(w, `{"message":"File uploaded and config saved successfully"}`)
	})

	fields := []models.FormField{{Name: "sshUsername", Value: "deploy"}, {Name: "aesIV", Value: ""}}
	ack, err := c.Upload(context.Background(), fields, &models.MemoryFile{FileName: "a.bin", Data: []byte("12345")})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, ack.Status)
	assert.Equal(t, "File uploaded and config saved successfully", ack.Message)
	assert.Equal(t, map[string]string{"sshUsername": "deploy", "aesIV": ""}, gotFields)
	assert.Equal(t, "a.bin", gotName)
	assert.Equal(t, []byte("12345"), gotFile)
}

func TestHTTPClient_Upload_Errors(t *testing.T) {
	t.Run("no file", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		})
		_, err := c.Upload(context.Background(), nil, nil)
		require.Error(t, err)
	})

	t.Run("server error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, "Failed to save file")
		})
		_, err := c.Upload(context.Background(), nil, &models.MemoryFile{FileName: "a", Data: []byte("x")})
		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusInternalServerError, se.Code)
		assert.Contains(t, se.Error(), "Failed to save file")
	})

	t.Run("plain text ack", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, "ok")
		})
		ack, err := c.Upload(context.Background(), nil, &models.MemoryFile{FileName: "a", Data: []byte("x")})
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, ack.Status)
		assert.Equal(t, "ok", string(ack.Body))
		assert.Empty(t, ack.Message)
	})
}

func TestStatusError_Error(t *testing.T) {
	assert.Equal(t, "POST /upload: HTTP 502", (&StatusError{Op: "POST /upload", Code: 502}).Error())
	assert.Equal(t, "POST /upload: HTTP 502: bad gateway", (&StatusError{Op: "POST /upload", Code: 502, Body: []byte(" bad gateway\n")}).Error())
}
