package lexicon

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLint_CleanFile(t *testing.T) {
	input := "# seed\nгора\t3\tnoun:place\t1.0\nзамок\t1\tnoun:place\t1.0\n"

	findings, err := Lint(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(findings) != 0 {
		t.Errorf("Expected no findings, got %v", findings)
	}
}

func TestLint_CollectsEveryFinding(t *testing.T) {
	// One bad index, one short line, one duplicate. Load would stop at
	// line 2; Lint reports all three.
	input := "гора\t3\tnoun:place\t1.0\n" +
		"село\t9\tnoun:place\t1.0\n" +
		"вода\n" +
		"гора\t3\tnoun:place\t2.0\n"

	findings, err := Lint(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(findings) != 3 {
		t.Fatalf("Expected 3 findings, got %d: %v", len(findings), findings)
	}

	if findings[0].Line != 2 || findings[0].Level != LintError {
		t.Errorf("Finding 0 = %+v, want error on line 2", findings[0])
	}
	if findings[1].Line != 3 || findings[1].Level != LintError {
		t.Errorf("Finding 1 = %+v, want error on line 3", findings[1])
	}
	if findings[2].Line != 4 || findings[2].Level != LintWarning {
		t.Errorf("Finding 2 = %+v, want warning on line 4", findings[2])
	}
	if !strings.Contains(findings[2].Msg, "duplicate") {
		t.Errorf("Finding 2 message = %q, want a duplicate warning", findings[2].Msg)
	}
}

func TestLint_NonCanonicalBase(t *testing.T) {
	findings, err := Lint(strings.NewReader("ГОРА\t3\tnoun:place\t1.0\n"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("Expected 1 finding, got %d: %v", len(findings), findings)
	}
	if findings[0].Level != LintWarning {
		t.Errorf("Level = %q, want warning", findings[0].Level)
	}
	if !strings.Contains(findings[0].Msg, "гора") {
		t.Errorf("Message %q should name the canonical form", findings[0].Msg)
	}
}

func TestLint_EmbeddedSeedIsClean(t *testing.T) {
	findings, err := Lint(strings.NewReader(string(seedTSV)))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(findings) != 0 {
		t.Errorf("Seed lexicon has lint findings: %v", findings)
	}
}

func TestLintFile_Missing(t *testing.T) {
	if _, err := LintFile(filepath.Join(t.TempDir(), "nope.tsv")); err == nil {
		t.Fatal("Expected an error for a missing file")
	}
}

func TestLintFile_Plain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lex.tsv")
	if err := os.WriteFile(path, []byte("гора\t3\tnoun:place\t1.0\nгора\t3\tnoun:place\t1.0\n"), 0644); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	findings, err := LintFile(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(findings) != 1 || findings[0].Level != LintWarning {
		t.Errorf("Expected one duplicate warning, got %v", findings)
	}
}
