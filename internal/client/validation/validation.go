// Package validation checks whether a session descriptor can be submitted.
package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/xferclient/internal/client/models"
	"github.com/dmitrijs2005/xferclient/internal/client/policy"
)

const (
	MsgRequired        = "is required"
	MsgFileRequired    = "a file is required"
	MsgInvalidMode     = "is not a supported cipher mode"
	MsgPositiveInteger = "must be a positive integer"
)

// Violations maps a field name to the reason it blocks submission.
type Violations map[string]string

// Fields returns the violated field names in canonical order.
func (v Violations) Fields() []string {
	out := make([]string, 0, len(v))
	for _, f := range models.AllFields {
		if _, ok := v[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// Err returns nil for an empty set, otherwise a *ValidationError.
func (v Violations) Err() error {
	if len(v) == 0 {
		return nil
	}
	return &ValidationError{Violations: v}
}

// ValidationError blocks a submission locally.
type ValidationError struct {
	Violations Violations
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, f := range e.Violations.Fields() {
		parts = append(parts, fmt.Sprintf("%s %s", f, e.Violations[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validate recomputes the violations of d under p. A nil policy means
// policy.Default.
func Validate(d *models.SessionDescriptor, p policy.FieldPolicy) Violations {
	if p == nil {
		p = policy.Default
	}
	v := Violations{}

	if d.File == nil {
		v[models.FieldFile] = MsgFileRequired
	}

	if !d.CipherMode.Valid() {
		v[models.FieldCipherMode] = MsgInvalidMode
	}

	for _, name := range p.RequiredFields(d.CipherMode) {
		if name == models.FieldFile {
			continue
		}
		val, err := d.Get(name)
		if err != nil || strings.TrimSpace(val) == "" {
			if _, ok := v[name]; !ok {
				v[name] = MsgRequired
			}
		}
	}

	if s := strings.TrimSpace(d.EncryptedChunkSize); s != "" {
		if n, err := strconv.ParseInt(s, 10, 64); err != nil || n <= 0 {
			v[models.FieldEncryptedChunkSize] = MsgPositiveInteger
		}
	}

	return v
}
