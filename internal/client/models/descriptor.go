// Package models defines the transfer-session descriptor and the values
// exchanged with the transfer backend.
package models

import (
	"errors"
	"fmt"
)

// Wire names of the descriptor fields. They are used as JSON keys in the
// config body and as part names in the upload form.
const (
	FieldFile               = "file"
	FieldSSHUsername        = "sshUsername"
	FieldSSHPassword        = "sshPassword"
	FieldSSHKey             = "sshKey"
	FieldSSHPort            = "sshPort"
	FieldSSHEndpoint        = "sshEndpoint"
	FieldClientCert         = "clientCert"
	FieldClientKey          = "clientKey"
	FieldServerCert         = "serverCert"
	FieldServerKey          = "serverKey"
	FieldServerBindIP       = "serverBindIP"
	FieldFileInfoPort       = "fileInfoPort"
	FieldFileChunksPort     = "fileChunksPort"
	FieldUploadDir          = "uploadDir"
	FieldDownloadDir        = "downloadDir"
	FieldCompressionFormat  = "compressionFormat"
	FieldCipherMode         = "cipherMode"
	FieldAESPassword        = "aesPassword"
	FieldAESKey             = "aesKey"
	FieldAESIV              = "aesIV"
	FieldAESSalt            = "aesSalt"
	FieldEncryptedChunkSize = "encryptedChunkSize"
	FieldDestinationPath    = "destinationPath"
)

// TextFields lists every non-file field in canonical order.
var TextFields = []string{
	FieldSSHUsername,
	FieldSSHPassword,
	FieldSSHKey,
	FieldSSHPort,
	FieldSSHEndpoint,
	FieldClientCert,
	FieldClientKey,
	FieldServerCert,
	FieldServerKey,
	FieldServerBindIP,
	FieldFileInfoPort,
	FieldFileChunksPort,
	FieldUploadDir,
	FieldDownloadDir,
	FieldCompressionFormat,
	FieldCipherMode,
	FieldAESPassword,
	FieldAESKey,
	FieldAESIV,
	FieldAESSalt,
	FieldEncryptedChunkSize,
	FieldDestinationPath,
}

// AllFields is TextFields with the file field in front.
var AllFields = append([]string{FieldFile}, TextFields...)

var ErrUnknownField = errors.New("unknown field")

// IsTextField reports whether name is one of TextFields.
func IsTextField(name string) bool {
	_, ok := textIndex[name]
	return ok
}

var textIndex = func() map[string]int {
	m := make(map[string]int, len(TextFields))
	for i, f := range TextFields {
		m[f] = i
	}
	return m
}()

// SessionDescriptor is the record assembled during one form session.
//
// Text values are kept exactly as entered. File is nil until an attachment
// is selected.
type SessionDescriptor struct {
	File Attachment

	SSHUsername string
	SSHPassword string
	SSHKey      string
	SSHPort     string
	SSHEndpoint string

	ClientCert string
	ClientKey  string
	ServerCert string
	ServerKey  string

	ServerBindIP      string
	FileInfoPort      string
	FileChunksPort    string
	UploadDir         string
	DownloadDir       string
	CompressionFormat string

	CipherMode  CipherMode
	AESPassword string
	AESKey      string
	AESIV       string
	AESSalt     string

	EncryptedChunkSize string
	DestinationPath    string
}

// NewSessionDescriptor returns a descriptor with all strings empty and the
// default cipher mode.
func NewSessionDescriptor() *SessionDescriptor {
	return &SessionDescriptor{CipherMode: DefaultCipherMode}
}

func (d *SessionDescriptor) textField(name string) (*string, bool) {
	switch name {
	case FieldSSHUsername:
		return &d.SSHUsername, true
	case FieldSSHPassword:
		return &d.SSHPassword, true
	case FieldSSHKey:
		return &d.SSHKey, true
	case FieldSSHPort:
		return &d.SSHPort, true
	case FieldSSHEndpoint:
		return &d.SSHEndpoint, true
	case FieldClientCert:
		return &d.ClientCert, true
	case FieldClientKey:
		return &d.ClientKey, true
	case FieldServerCert:
		return &d.ServerCert, true
	case FieldServerKey:
		return &d.ServerKey, true
	case FieldServerBindIP:
		return &d.ServerBindIP, true
	case FieldFileInfoPort:
		return &d.FileInfoPort, true
	case FieldFileChunksPort:
		return &d.FileChunksPort, true
	case FieldUploadDir:
		return &d.UploadDir, true
	case FieldDownloadDir:
		return &d.DownloadDir, true
	case FieldCompressionFormat:
		return &d.CompressionFormat, true
	case FieldAESPassword:
		return &d.AESPassword, true
	case FieldAESKey:
		return &d.AESKey, true
	case FieldAESIV:
		return &d.AESIV, true
	case FieldAESSalt:
		return &d.AESSalt, true
	case FieldEncryptedChunkSize:
		return &d.EncryptedChunkSize, true
	case FieldDestinationPath:
		return &d.DestinationPath, true
	}
	return nil, false
}

// Get returns the text value of the named field. The file field is reported
// by its attachment name.
func (d *SessionDescriptor) Get(name string) (string, error) {
	switch name {
	case FieldCipherMode:
		return string(d.CipherMode), nil
	case FieldFile:
		if d.File == nil {
			return "", nil
		}
		return d.File.Name(), nil
	}
	p, ok := d.textField(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return *p, nil
}

// Set assigns a text field. Setting cipherMode requires a known mode.
func (d *SessionDescriptor) Set(name, value string) error {
	if name == FieldCipherMode {
		m, err := ParseCipherMode(value)
		if err != nil {
			return err
		}
		d.CipherMode = m
		return nil
	}
	p, ok := d.textField(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	*p = value
	return nil
}

// Values returns the text fields in canonical order as name/value pairs.
func (d *SessionDescriptor) Values() []FormField {
	out := make([]FormField, 0, len(TextFields))
	for _, name := range TextFields {
		v, _ := d.Get(name)
		out = append(out, FormField{Name: name, Value: v})
	}
	return out
}

// Clone returns a shallow copy. The attachment handle is shared.
func (d *SessionDescriptor) Clone() *SessionDescriptor {
	c := *d
	return &c
}

// FormField is a single text part of the upload form.
type FormField struct {
	Name  string
	Value string
}
