// Package services contains the form-session orchestrator of the transfer
// client. A Session owns one descriptor and is the only writer of it:
// SyncConfig overwrites it with server defaults, Set applies user edits,
// GenerateKeys overwrites the AES material and Submit uploads it with the
// attached file.
package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/xferclient/internal/client/client"
	"github.com/dmitrijs2005/xferclient/internal/client/models"
	"github.com/dmitrijs2005/xferclient/internal/client/policy"
	"github.com/dmitrijs2005/xferclient/internal/client/validation"
	"github.com/dmitrijs2005/xferclient/internal/logging"
)

// MergeStrategy selects how server defaults meet fields the user already
// edited.
type MergeStrategy string

const (
	// MergeOverwrite replaces the whole descriptor with the server body.
	MergeOverwrite MergeStrategy = "overwrite"
	// MergePreserveEdits applies server values to untouched fields only.
	MergePreserveEdits MergeStrategy = "preserve-edits"
)

// ParseMergeStrategy accepts "" as MergeOverwrite.
func ParseMergeStrategy(s string) (MergeStrategy, error) {
	switch MergeStrategy(s) {
	case "", MergeOverwrite:
		return MergeOverwrite, nil
	case MergePreserveEdits:
		return MergePreserveEdits, nil
	}
	return "", fmt.Errorf("unknown merge strategy %q", s)
}

type Options struct {
	Policy policy.FieldPolicy
	Merge  MergeStrategy
}

// Session is one form session. It is safe for concurrent use; network calls
// run without holding the lock, so a slow request never blocks edits.
type Session struct {
	client client.Client
	logger logging.Logger
	policy policy.FieldPolicy
	merge  MergeStrategy

	mu          sync.Mutex
	desc        *models.SessionDescriptor
	edited      map[string]bool
	provisioned map[string]bool
	closed      bool

	syncOnce sync.Once
	syncErr  error
}

func NewSession(c client.Client, logger logging.Logger, opts Options) *Session {
	if opts.Policy == nil {
		opts.Policy = policy.Default
	}
	if opts.Merge == "" {
		opts.Merge = MergeOverwrite
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Session{
		client:      c,
		logger:      logger,
		policy:      opts.Policy,
		merge:       opts.Merge,
		desc:        models.NewSessionDescriptor(),
		edited:      map[string]bool{},
		provisioned: map[string]bool{},
	}
}

// SyncConfig loads the server defaults into the descriptor. Only the first
// call reaches the backend; later calls report the first outcome.
//
// A failure leaves the descriptor untouched and is logged; the returned
// *ConfigFetchError is informational.
func (s *Session) SyncConfig(ctx context.Context) error {
	s.syncOnce.Do(func() {
		s.syncErr = s.syncConfig(ctx)
	})
	return s.syncErr
}

func (s *Session) syncConfig(ctx context.Context) error {
	if s.isClosed() {
		return ErrSessionClosed
	}

	rc, err := s.client.FetchConfig(ctx)
	if err != nil {
		s.logger.Error(ctx, "config fetch failed, keeping defaults", "error", err)
		return &ConfigFetchError{Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}

	var (
		next *models.SessionDescriptor
		skip func(string) bool
	)
	switch s.merge {
	case MergePreserveEdits:
		next = s.desc.Clone()
		skip = func(name string) bool { return s.edited[name] || s.provisioned[name] }
	default:
		if len(s.edited) > 0 {
			s.logger.Warn(ctx, "config overwrites user edits", "edited", len(s.edited))
		}
		next = models.NewSessionDescriptor()
		next.File = s.desc.File
		s.provisioned = map[string]bool{}
	}

	for _, p := range rc.Apply(next, skip) {
		s.logger.Warn(ctx, "config value ignored", "error", p)
	}
	s.desc = next

	s.logger.Info(ctx, "config applied", "keys", len(rc), "merge", string(s.merge))
	return nil
}

// Set applies a user edit. Editing an AES field that was generated by the
// backend makes the typed value authoritative again.
func (s *Session) Set(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	if err := s.desc.Set(name, value); err != nil {
		return err
	}
	s.edited[name] = true
	delete(s.provisioned, name)
	return nil
}

// Attach selects the file to transfer, replacing any previous selection.
func (s *Session) Attach(a models.Attachment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}
	s.desc.File = a
	s.edited[models.FieldFile] = true
	return nil
}

// Get returns the current value of a field.
func (s *Session) Get(name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.desc.Get(name)
}

// Snapshot returns a copy of the descriptor.
func (s *Session) Snapshot() *models.SessionDescriptor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.desc.Clone()
}

// Provisioned reports whether the field holds backend-generated material the
// user has not edited since.
func (s *Session) Provisioned(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.provisioned[name]
}

// VisibleFields returns the fields to render for the current cipher mode.
func (s *Session) VisibleFields() []string {
	s.mu.Lock()
	mode := s.desc.CipherMode
	s.mu.Unlock()
	return policy.VisibleFields(s.policy, mode)
}

// Validate recomputes the violations of the current descriptor.
func (s *Session) Validate() validation.Violations {
	s.mu.Lock()
	defer s.mu.Unlock()
	return validation.Validate(s.desc, s.policy)
}

// GenerateKeys asks the backend for AES material derived from the current
// aesPassword and cipherMode and stores key, IV and salt together. Missing IV
// or salt are stored as empty strings.
//
// There is no in-flight guard: overlapping calls each overwrite the fields
// and the last response to arrive wins.
func (s *Session) GenerateKeys(ctx context.Context) (*models.KeyMaterial, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}
	req := models.KeyRequest{Password: s.desc.AESPassword, CipherMode: string(s.desc.CipherMode)}
	s.mu.Unlock()

	if req.Password == "" {
		s.logger.Warn(ctx, "generating keys with an empty password")
	}

	km, err := s.client.GenerateKeys(ctx, req)
	if err != nil {
		s.logger.Error(ctx, "key generation failed", "cipher_mode", req.CipherMode, "error", err)
		return nil, &KeyGenerationError{Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		s.logger.Debug(ctx, "key material discarded, session closed")
		return nil, ErrSessionClosed
	}

	s.desc.AESKey = km.Key
	s.desc.AESIV = km.IV
	s.desc.AESSalt = km.Salt
	for _, f := range []string{models.FieldAESKey, models.FieldAESIV, models.FieldAESSalt} {
		s.provisioned[f] = true
	}

	s.logger.Info(ctx, "aes material generated", "cipher_mode", req.CipherMode,
		"iv", km.IV != "", "salt", km.Salt != "")
	return km, nil
}

// Submit validates the descriptor and uploads it with the attached file,
// returning the backend acknowledgment. Validation failures are returned as
// *validation.ValidationError without any request; upload failures as
// *SubmissionError. The descriptor is never modified.
//
// Each successful call creates a new transfer session on the backend.
func (s *Session) Submit(ctx context.Context) (*models.UploadAck, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}
	if err := validation.Validate(s.desc, s.policy).Err(); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	snap := s.desc.Clone()
	s.mu.Unlock()

	ack, err := s.client.Upload(ctx, snap.Values(), snap.File)
	if err != nil {
		s.logger.Error(ctx, "upload failed", "file", snap.File.Name(), "error", err)
		return nil, &SubmissionError{Err: err}
	}

	s.logger.Info(ctx, "upload accepted", "file", snap.File.Name(), "status", ack.Status,
		"destination", snap.DestinationPath)
	return ack, nil
}

// Close ends the session. Results of requests still in flight are dropped.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *Session) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
