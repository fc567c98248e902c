package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/xferclient/internal/client/models"
	"github.com/dmitrijs2005/xferclient/internal/client/validation"
)

const secretMask = "********"

// secretFields are read without echo and masked by show.
var secretFields = map[string]bool{
	models.FieldSSHPassword: true,
	models.FieldAESPassword: true,
}

// pemFields hold certificates or keys and are read as multi-line input.
var pemFields = map[string]bool{
	models.FieldClientCert: true,
	models.FieldClientKey:  true,
	models.FieldServerCert: true,
	models.FieldServerKey:  true,
}

// Fields lists the fields of the current cipher mode.
func (a *App) Fields(ctx context.Context) error {
	for _, name := range a.session.VisibleFields() {
		fmt.Fprintln(a.out, " ", name)
	}
	return nil
}

// Show prints the visible fields with their current values. Secrets are
// masked and PEM blocks are shortened to their first line.
func (a *App) Show(ctx context.Context) error {
	d := a.session.Snapshot()
	violations := a.session.Validate()

	for _, name := range a.session.VisibleFields() {
		value, err := d.Get(name)
		if err != nil {
			return err
		}

		line := fmt.Sprintf("  %-20s %s", name, displayValue(name, value))
		if a.session.Provisioned(name) {
			line += " (generated)"
		}
		if msg, ok := violations[name]; ok {
			line += " ! " + msg
		}
		fmt.Fprintln(a.out, line)
	}
	return nil
}

func displayValue(name, value string) string {
	switch {
	case value == "":
		return "-"
	case secretFields[name]:
		return secretMask
	case pemFields[name]:
		lines := strings.Split(value, "\n")
		if len(lines) == 1 {
			return lines[0]
		}
		return fmt.Sprintf("%s ... (%d lines)", lines[0], len(lines))
	}
	return value
}

// SetField assigns a value to a field. Without a value on the command line
// the user is prompted, hidden for secrets and multi-line for PEM fields.
func (a *App) SetField(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: set <field> [value]")
	}
	name := args[0]
	if name == models.FieldFile {
		return a.Attach(ctx, args[1:])
	}
	if name == models.FieldCipherMode {
		return a.Mode(ctx, args[1:])
	}
	if !models.IsTextField(name) {
		return fmt.Errorf("%w: %s", models.ErrUnknownField, name)
	}

	var (
		value string
		err   error
	)
	switch {
	case len(args) > 1:
		value = strings.Join(args[1:], " ")
	case secretFields[name]:
		value, err = GetSecret(a.reader, "Enter "+name, a.out)
	case pemFields[name]:
		value, err = GetMultiline(a.reader, "Paste "+name, a.out)
	default:
		value, err = GetSimpleText(a.reader, "Enter "+name, a.out)
	}
	if err != nil {
		return err
	}

	if err := a.session.Set(name, value); err != nil {
		return err
	}
	a.reportField(name)
	return nil
}

// Mode selects the cipher mode, prompting with the supported modes when none
// is given.
func (a *App) Mode(ctx context.Context, args []string) error {
	var mode string
	if len(args) > 0 {
		mode = args[0]
	} else {
		current, _ := a.session.Get(models.FieldCipherMode)
		names := make([]string, 0, len(models.CipherModes))
		for _, m := range models.CipherModes {
			names = append(names, string(m))
		}
		var err error
		mode, err = GetSimpleText(a.reader, fmt.Sprintf("Cipher mode (%s), current %s", strings.Join(names, ", "), current), a.out)
		if err != nil {
			return err
		}
		if mode == "" {
			return nil
		}
	}

	if err := a.session.Set(models.FieldCipherMode, mode); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Cipher mode set, %d fields required.\n", len(a.session.VisibleFields()))
	return nil
}

// Attach selects the file to transfer.
func (a *App) Attach(ctx context.Context, args []string) error {
	path := strings.Join(args, " ")
	if path == "" {
		var err error
		path, err = GetSimpleText(a.reader, "Path of the file to transfer", a.out)
		if err != nil {
			return err
		}
	}

	f, err := models.NewLocalFile(path)
	if err != nil {
		return err
	}
	if err := a.session.Attach(f); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Attached %s (%d bytes).\n", f.Name(), f.Size)
	return nil
}

// GenerateKeys requests AES material for the current password and mode.
func (a *App) GenerateKeys(ctx context.Context) error {
	km, err := a.session.GenerateKeys(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "AES material generated:")
	fmt.Fprintf(a.out, "  %-20s %s\n", models.FieldAESKey, displayValue(models.FieldAESKey, km.Key))
	fmt.Fprintf(a.out, "  %-20s %s\n", models.FieldAESIV, displayValue(models.FieldAESIV, km.IV))
	fmt.Fprintf(a.out, "  %-20s %s\n", models.FieldAESSalt, displayValue(models.FieldAESSalt, km.Salt))
	return nil
}

// Validate lists the fields that block submission.
func (a *App) Validate(ctx context.Context) error {
	v := a.session.Validate()
	if len(v) == 0 {
		fmt.Fprintln(a.out, "Ready to submit.")
		return nil
	}
	a.printViolations(v)
	return nil
}

// Submit uploads the descriptor. Validation failures are listed per field
// and nothing is sent.
func (a *App) Submit(ctx context.Context) error {
	ack, err := a.session.Submit(ctx)

	var ve *validation.ValidationError
	if errors.As(err, &ve) {
		fmt.Fprintln(a.out, "Not submitted, fix the following fields:")
		a.printViolations(ve.Violations)
		return nil
	}
	if err != nil {
		return err
	}

	msg := ack.Message
	if msg == "" {
		msg = strings.TrimSpace(string(ack.Body))
	}
	fmt.Fprintf(a.out, "Submitted (HTTP %d): %s\n", ack.Status, msg)
	return nil
}

// NewSession discards the current descriptor and loads fresh server defaults.
func (a *App) NewSession(ctx context.Context) error {
	a.startSession(ctx)
	return nil
}

func (a *App) printViolations(v validation.Violations) {
	for _, name := range v.Fields() {
		fmt.Fprintf(a.out, "  %-20s %s\n", name, v[name])
	}
}

// reportField prints the remaining problem of a field after an edit.
func (a *App) reportField(name string) {
	if msg, ok := a.session.Validate()[name]; ok {
		fmt.Fprintf(a.out, "%s %s\n", name, msg)
	}
}
