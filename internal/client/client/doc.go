// Package client talks to the transfer backend.
//
// # Overview
//
// The Client interface covers the three backend operations a form session
// needs:
//
//   - FetchConfig:  GET  {base}/config         server-side defaults
//   - GenerateKeys: POST {base}/generate_keys  ephemeral AES material
//   - Upload:       POST {base}/upload         multipart descriptor + file
//
// HTTPClient is the net/http implementation. Every request carries an
// X-Request-ID header so backend logs can be matched with client logs.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable, undecodable bodies wrap
// ErrMalformedResponse (match both with errors.Is). Non-2xx responses are
// returned as *StatusError (match with errors.As).
//
// No retries are made and no timeout is applied beyond the one configured on
// the underlying *http.Client.
package client
