package validation

import (
	"errors"
	"testing"

	"github.com/dmitrijs2005/xferclient/internal/client/models"
	"github.com/dmitrijs2005/xferclient/internal/client/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filled(t *testing.T, mode models.CipherMode) *models.SessionDescriptor {
	t.Helper()
	d := models.NewSessionDescriptor()
	for _, name := range models.TextFields {
		if name == models.FieldCipherMode {
			continue
		}
		require.NoError(t, d.Set(name, "x"))
	}
	d.EncryptedChunkSize = "1024"
	d.CipherMode = mode
	d.File = &models.MemoryFile{FileName: "f.bin", Data: []byte("hello")}
	return d
}

func TestValidate_CompleteDescriptorIsSubmittable(t *testing.T) {
	for _, m := range models.CipherModes {
		v := Validate(filled(t, m), policy.Default)
		assert.Empty(t, v, m)
		assert.NoError(t, v.Err())
	}
}

func TestValidate_MissingFileAlwaysViolates(t *testing.T) {
	for _, m := range models.CipherModes {
		d := filled(t, m)
		d.File = nil
		v := Validate(d, nil)
		require.Len(t, v, 1)
		assert.Equal(t, MsgFileRequired, v[models.FieldFile])
	}
}

func TestValidate_EachEmptyRequiredField(t *testing.T) {
	for _, m := range models.CipherModes {
		for _, name := range policy.Default.RequiredFields(m) {
			if name == models.FieldFile || name == models.FieldCipherMode {
				continue
			}
			d := filled(t, m)
			require.NoError(t, d.Set(name, "   "))
			v := Validate(d, policy.Default)
			assert.Equal(t, []string{name}, v.Fields(), "%s/%s", m, name)
		}
	}
}

func TestValidate_XTSIgnoresIVAndSalt(t *testing.T) {
	d := filled(t, models.CipherAES256XTS)
	d.AESIV = ""
	d.AESSalt = ""
	assert.Empty(t, Validate(d, policy.Default))

	d.CipherMode = models.CipherAES256CBC
	v := Validate(d, policy.Default)
	assert.Equal(t, []string{models.FieldAESIV, models.FieldAESSalt}, v.Fields())
}

func TestValidate_TypeConstraints(t *testing.T) {
	d := filled(t, models.CipherAES256CFB)
	d.EncryptedChunkSize = "0"
	v := Validate(d, policy.Default)
	assert.Equal(t, MsgPositiveInteger, v[models.FieldEncryptedChunkSize])

	d.EncryptedChunkSize = "12kb"
	v = Validate(d, policy.Default)
	assert.Equal(t, MsgPositiveInteger, v[models.FieldEncryptedChunkSize])

	d.EncryptedChunkSize = "64"
	d.CipherMode = "aes-128-gcm"
	v = Validate(d, policy.Default)
	assert.Equal(t, MsgInvalidMode, v[models.FieldCipherMode])
}

func TestViolations_Err(t *testing.T) {
	d := models.NewSessionDescriptor()
	err := Validate(d, policy.Default).Err()
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	fields := ve.Violations.Fields()
	assert.Equal(t, models.FieldFile, fields[0])
	assert.NotContains(t, fields, models.FieldCipherMode)
	assert.Contains(t, err.Error(), "sshUsername is required")
}
