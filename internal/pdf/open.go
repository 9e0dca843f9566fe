package pdf

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"
)

// TempPath returns a per-card path in the system temp directory, with
// the card name sanitized down to filename-safe characters.
func TempPath(cardName string) string {
	var b strings.Builder
	for _, r := range cardName {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		default:
			b.WriteRune('_')
		}
	}
	name := strings.Trim(b.String(), "_")
	if name == "" {
		name = "karta"
	}
	return filepath.Join(os.TempDir(), "pasport_"+name+".pdf")
}

// OpenViewer opens the PDF in the platform's default viewer.
func OpenViewer(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("pdf missing: %w", err)
	}
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/C", "start", "", path)
	case "darwin":
		cmd = exec.Command("open", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open pdf viewer: %w", err)
	}
	return nil
}

// Print hands the PDF to the platform print facility. Callers fall
// back to OpenViewer when this fails so the user can print manually.
func Print(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("pdf missing: %w", err)
	}
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("powershell", "-NoProfile", "-Command",
			fmt.Sprintf("Start-Process -FilePath %q -Verb Print", path))
	default:
		cmd = exec.Command("lp", path)
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("invoke print: %w", err)
	}
	return nil
}
