// ABOUTME: Injectable user-confirmation and file-save capabilities for controllers
// ABOUTME: Function adapters plus terminal and directory implementations used by the CLI

package pages

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// AlwaysConfirm accepts every prompt.
var AlwaysConfirm = ConfirmFunc(func(context.Context, string) bool { return true })

// FileSaver hands a downloaded document to the user. The saver owns data
// only for the duration of the call.
type FileSaver interface {
	Save(ctx context.Context, name, contentType string, data []byte) error
}

// SaveFunc adapts a function to FileSaver.
type SaveFunc func(ctx context.Context, name, contentType string, data []byte) error

// Save calls f.
func (f SaveFunc) Save(ctx context.Context, name, contentType string, data []byte) error {
	return f(ctx, name, contentType, data)
}

// PromptConfirmer asks on a terminal and accepts "s", "si", "y" or "yes".
type PromptConfirmer struct {
	In  io.Reader
	Out io.Writer
}

// Confirm writes prompt and reads one answer line. EOF declines.
func (p PromptConfirmer) Confirm(_ context.Context, prompt string) bool {
	fmt.Fprintf(p.Out, "%s [s/N]: ", prompt)

	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(p.Out)
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "s", "si", "sí", "y", "yes":
		return true
	default:
		return false
	}
}

// DirSaver writes documents into Dir, creating it when missing.
type DirSaver struct {
	Dir string

	// Saved is set to the path of the last written file.
	Saved string
}

// Save writes data to Dir/name. Path separators in name are not honoured.
func (d *DirSaver) Save(_ context.Context, name, _ string, data []byte) error {
	dir := d.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	d.Saved = path
	return nil
}
