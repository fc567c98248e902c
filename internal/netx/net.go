// Package netx holds small HTTP helpers shared by the backend client.
package netx

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// MaxErrorBody caps how much of a failed response body is kept for errors.
const MaxErrorBody = 4 << 10

// FilePart is the binary part of a multipart form.
type FilePart struct {
	Field    string
	FileName string
	Content  io.Reader
}

// MultipartBody encodes text fields, in the given order, followed by the
// optional file part. It returns the body and its Content-Type header value.
func MultipartBody(fields [][2]string, file *FilePart) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f[0], err)
		}
	}

	if file != nil {
		part, err := w.CreateFormFile(file.Field, file.FileName)
		if err != nil {
			return nil, "", fmt.Errorf("create file part: %w", err)
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return nil, "", fmt.Errorf("copy file part: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// ReadBody drains resp.Body. For non-2xx responses at most MaxErrorBody bytes
// are kept.
func ReadBody(resp *http.Response) ([]byte, error) {
	var r io.Reader = resp.Body
	if !IsSuccess(resp.StatusCode) {
		r = io.LimitReader(resp.Body, MaxErrorBody)
	}
	return io.ReadAll(r)
}

func IsSuccess(code int) bool {
	return code >= 200 && code < 300
}
