// Package cli provides the interactive transfer client.
//
// It wires configuration, the backend HTTP client and one form session, then
// runs a REPL in which the user fills the transfer descriptor, generates AES
// material on the backend, attaches a file and submits the transfer. Typical
// flow: server defaults are loaded on start, the user edits the remaining
// fields, runs genkeys, attach and submit.
//
// Key features:
//   - Field editing with hidden input for secrets and multi-line PEM input
//   - Rendering restricted to the fields of the selected cipher mode
//   - Validation after every edit and before every submission
//   - Fresh sessions on demand (new)
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
