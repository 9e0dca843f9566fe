package pdf_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pasport/internal/pdf"
	"pasport/internal/testsupport"
)

func TestGenerateWritesAPDF(t *testing.T) {
	out := filepath.Join(t.TempDir(), "karta.pdf")
	images := map[string][]byte{
		"wc": testsupport.RedSquarePNG(t, 100, 100),
	}
	if err := pdf.Generate(out, "Bytová jednotka 3", images); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("output does not look like a PDF: %q", data[:min(8, len(data))])
	}
}

func TestGenerateSurvivesCorruptBlob(t *testing.T) {
	out := filepath.Join(t.TempDir(), "karta.pdf")
	images := map[string][]byte{
		"tv": []byte("garbage"),
		"wc": testsupport.RedSquarePNG(t, 10, 10),
	}
	if err := pdf.Generate(out, "karta", images); err != nil {
		t.Fatalf("Generate failed on corrupt blob: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("output missing: %v", err)
	}
}

func TestGenerateEmptyCard(t *testing.T) {
	out := filepath.Join(t.TempDir(), "empty.pdf")
	if err := pdf.Generate(out, "prazdna", nil); err != nil {
		t.Fatalf("Generate failed for empty card: %v", err)
	}
}

func TestTempPathSanitizesName(t *testing.T) {
	p := pdf.TempPath("Bytová jednotka 3 / přízemí")
	base := filepath.Base(p)
	if !strings.HasPrefix(base, "pasport_") || !strings.HasSuffix(base, ".pdf") {
		t.Fatalf("unexpected temp name %q", base)
	}
	if strings.ContainsAny(base, "/\\ ") {
		t.Fatalf("unsafe characters in %q", base)
	}

	if got := filepath.Base(pdf.TempPath("///")); got != "pasport_karta.pdf" {
		t.Fatalf("degenerate name: got %q", got)
	}
}
