package lexicon

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/okovalenko/nagolos/internal/model"
	"github.com/okovalenko/nagolos/internal/tokenize"
)

// Finding levels
const (
	LintError   = "error"
	LintWarning = "warning"
)

// Finding is one problem a lint pass found in a lexicon file
type Finding struct {
	Line  int    // 1-based line number
	Level string // LintError or LintWarning
	Msg   string
}

// Lint scans a lexicon collecting every finding instead of stopping at
// the first, the way Load does. Errors are lines the loader rejects;
// warnings load fine but deserve a look: duplicate variants and base
// forms the loader silently normalizes.
func Lint(r io.Reader) ([]Finding, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	entries := make(map[string][]model.Variant)
	var findings []Finding

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		raw := strings.TrimSpace(strings.SplitN(line, "\t", 2)[0])
		if raw != "" && raw != tokenize.Key(raw) {
			findings = append(findings, Finding{
				Line:  lineNo,
				Level: LintWarning,
				Msg:   fmt.Sprintf("base form %q is not canonical (stored as %q)", raw, tokenize.Key(raw)),
			})
		}

		v, base, err := parseLine(line, lineNo)
		if err != nil {
			var ferr *FormatError
			if !errors.As(err, &ferr) {
				return nil, err
			}
			findings = append(findings, Finding{Line: ferr.Line, Level: LintError, Msg: ferr.Msg})
			continue
		}

		if findVariant(entries[base], v) >= 0 {
			findings = append(findings, Finding{
				Line:  lineNo,
				Level: LintWarning,
				Msg:   fmt.Sprintf("duplicate variant of %q", base),
			})
			continue
		}
		entries[base] = append(entries[base], v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}

	return findings, nil
}

// LintFile lints a lexicon file. Files ending in .xz are decompressed
// transparently.
func LintFile(path string) ([]Finding, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lexicon: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if filepath.Ext(path) == ".xz" {
		xr, err := xz.NewReader(bufio.NewReader(f))
		if err != nil {
			return nil, fmt.Errorf("open xz lexicon %s: %w", path, err)
		}
		r = xr
	}
	return Lint(r)
}
