// Package editor hands text to the user's preferred editor through a
// temporary draft file.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Command returns the command that opens path in $EDITOR, or vi when unset.
// $EDITOR may carry arguments, e.g. "code --wait".
func Command(path string) *exec.Cmd {
	fields := strings.Fields(os.Getenv("EDITOR"))
	if len(fields) == 0 {
		fields = []string{"vi"}
	}

	args := append(fields[1:], path)
	//nolint:gosec // The editor is chosen by the user running the CLI
	return exec.Command(fields[0], args...)
}

// WriteDraft stores text in a new temporary Markdown file and returns its path.
func WriteDraft(text string) (string, error) {
	f, err := os.CreateTemp("", "jailu-*.md")
	if err != nil {
		return "", fmt.Errorf("failed to create draft file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(text); err != nil {
		return "", fmt.Errorf("failed to write draft file: %w", err)
	}

	return f.Name(), nil
}

// ReadDraft returns the draft's content and removes the file.
func ReadDraft(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read draft file: %w", err)
	}

	if err := os.Remove(path); err != nil {
		return "", fmt.Errorf("failed to remove draft file: %w", err)
	}

	return string(data), nil
}
