package services

import "errors"

// ErrSessionClosed is returned by operations on a closed session, including
// operations whose response arrived after Close.
var ErrSessionClosed = errors.New("session closed")

// ConfigFetchError means the server defaults could not be loaded. The
// descriptor keeps its previous values.
type ConfigFetchError struct{ Err error }

func (e *ConfigFetchError) Error() string { return "config fetch failed: " + e.Err.Error() }
func (e *ConfigFetchError) Unwrap() error { return e.Err }

// KeyGenerationError means no AES material was received. The AES fields keep
// their previous values; the call may be repeated.
type KeyGenerationError struct{ Err error }

func (e *KeyGenerationError) Error() string { return "key generation failed: " + e.Err.Error() }
func (e *KeyGenerationError) Unwrap() error { return e.Err }

// SubmissionError means the upload was not accepted. The descriptor is left
// as it was so the same submission can be repeated.
type SubmissionError struct{ Err error }

func (e *SubmissionError) Error() string { return "submission failed: " + e.Err.Error() }
func (e *SubmissionError) Unwrap() error { return e.Err }
