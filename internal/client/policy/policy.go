// Package policy decides which descriptor fields apply to a cipher mode.
//
// The same field set drives both rendering and validation: a field that is
// not rendered for a mode is never required for it.
package policy

import "github.com/dmitrijs2005/xferclient/internal/client/models"

// FieldPolicy maps a cipher mode to the fields that must be filled in.
type FieldPolicy interface {
	RequiredFields(mode models.CipherMode) []string
}

// CipherPolicy is the default FieldPolicy. Every descriptor field is required,
// except aesIV and aesSalt under aes-256-xts.
type CipherPolicy struct{}

// Default is the policy used when none is configured.
var Default FieldPolicy = CipherPolicy{}

// RequiredFields returns field names in canonical order, file first.
func (CipherPolicy) RequiredFields(mode models.CipherMode) []string {
	out := make([]string, 0, len(models.AllFields))
	for _, f := range models.AllFields {
		if !mode.NeedsIVAndSalt() && (f == models.FieldAESIV || f == models.FieldAESSalt) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// VisibleFields returns the fields to render for mode under p.
func VisibleFields(p FieldPolicy, mode models.CipherMode) []string {
	return p.RequiredFields(mode)
}

// IsRequired reports whether name is required for mode under p.
func IsRequired(p FieldPolicy, mode models.CipherMode, name string) bool {
	for _, f := range p.RequiredFields(mode) {
		if f == name {
			return true
		}
	}
	return false
}
