package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// KeyRequest is the body of a key generation call.
type KeyRequest struct {
	Password   string `json:"password"`
	CipherMode string `json:"cipher_mode"`
}

// KeyMaterial is the ephemeral AES material returned by the backend.
// IV and Salt are empty when the backend omits them or sends null.
type KeyMaterial struct {
	Key  string `json:"key"`
	IV   string `json:"iv"`
	Salt string `json:"salt"`
}

// UploadAck is the acknowledgment returned by the upload endpoint. Body keeps
// the raw response; Message and Error are filled when it is a JSON object.
type UploadAck struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
	Error   string `json:"error"`
	Body    []byte `json:"-"`
}

// RemoteConfig is the decoded body of the config endpoint. Keys outside the
// descriptor field set are kept but never applied.
type RemoteConfig map[string]json.RawMessage

// Text renders a config value as form text. Strings are used verbatim,
// numbers and booleans keep their JSON spelling and null becomes "".
func (rc RemoteConfig) Text(name string) (string, bool, error) {
	raw, ok := rc[name]
	if !ok {
		return "", false, nil
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", true, nil
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", true, fmt.Errorf("field %s: %w", name, err)
		}
		return s, true, nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return "", true, fmt.Errorf("field %s: %w", name, err)
		}
		return strconv.FormatBool(b), true, nil
	case '{', '[':
		return "", true, fmt.Errorf("field %s: unsupported value %s", name, raw)
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", true, fmt.Errorf("field %s: %w", name, err)
	}
	return n.String(), true, nil
}

// Apply assigns every descriptor field present in rc. Fields for which skip
// returns true are left alone. Values that cannot be applied are reported and
// leave the field unchanged; the remaining fields are still applied.
func (rc RemoteConfig) Apply(d *SessionDescriptor, skip func(name string) bool) []error {
	var problems []error
	for _, name := range TextFields {
		if skip != nil && skip(name) {
			continue
		}
		v, ok, err := rc.Text(name)
		if err != nil {
			problems = append(problems, err)
			continue
		}
		if !ok {
			continue
		}
		if name == FieldCipherMode && v == "" {
			continue
		}
		if err := d.Set(name, v); err != nil {
			problems = append(problems, fmt.Errorf("field %s: %w", name, err))
		}
	}
	return problems
}
