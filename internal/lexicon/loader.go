package lexicon

import (
	"bufio"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ulikunitz/xz"

	"github.com/okovalenko/nagolos/internal/model"
	"github.com/okovalenko/nagolos/internal/tokenize"
)

// Lexicon lines are tab-separated:
//
//	base 	stress_index 	[tag] 	[weight]
//
// base is the unstressed form; stress_index is the 0-based rune index of
// the stressed vowel (the combining mark is inserted after it); tag is an
// opaque grammatical label, "-" or empty for none; weight is a
// non-negative prior, default 1. Blank lines and lines starting with #
// are skipped.

// Load parses a lexicon from r and builds an immutable Store. Any
// malformed line aborts the load with a *FormatError carrying the line
// number. Lines sharing a base merge into one entry; a variant repeated
// with the same stress index and tag keeps its first occurrence.
func Load(r io.Reader) (*Store, error) {
	return load(r, false)
}

// LoadStrict parses like Load, but a repeated variant is a *FormatError
// instead of a silent merge.
func LoadStrict(r io.Reader) (*Store, error) {
	return load(r, true)
}

func load(r io.Reader, strict bool) (*Store, error) {
	h := sha256.New()
	scanner := bufio.NewScanner(io.TeeReader(r, h))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	entries := make(map[string][]model.Variant, 1<<16)
	variants := 0

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		v, base, err := parseLine(line, lineNo)
		if err != nil {
			return nil, err
		}

		if prev := findVariant(entries[base], v); prev >= 0 {
			if strict {
				return nil, &FormatError{Line: lineNo, Msg: fmt.Sprintf("duplicate variant of %q", base)}
			}
			continue
		}

		entries[base] = append(entries[base], v)
		variants++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}

	// Fix the lookup order once: descending prior weight, ties keep the
	// order the file listed them in.
	for _, vs := range entries {
		sort.SliceStable(vs, func(i, j int) bool {
			return vs[i].Weight > vs[j].Weight
		})
	}

	return &Store{
		entries:  entries,
		variants: variants,
		version:  fmt.Sprintf("%x", h.Sum(nil))[:12],
	}, nil
}

// LoadFile loads a lexicon from path. Files ending in .xz are
// decompressed transparently.
func LoadFile(path string) (*Store, error) {
	return loadFile(path, false)
}

// LoadFileStrict loads like LoadFile with LoadStrict semantics.
func LoadFileStrict(path string) (*Store, error) {
	return loadFile(path, true)
}

func loadFile(path string, strict bool) (*Store, error) {
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

	store, err := load(r, strict)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// vowelAt reports whether the rune at rune index idx is a vowel
func vowelAt(s string, idx int) bool {
	i := 0
	for _, r := range s {
		if i == idx {
			return tokenize.IsVowel(r)
		}
		i++
	}
	return false
}

// findVariant returns the index of a variant with the same stress index
// and tag, or -1.
func findVariant(vs []model.Variant, v model.Variant) int {
	for i, existing := range vs {
		if existing.StressIndex == v.StressIndex && existing.Tag == v.Tag {
			return i
		}
	}
	return -1
}

// parseLine parses one data line into a variant keyed by its normalized
// base form.
func parseLine(line string, lineNo int) (model.Variant, string, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 2 {
		return model.Variant{}, "", &FormatError{Line: lineNo, Msg: "expected at least base and stress index"}
	}

	base := tokenize.Key(strings.TrimSpace(fields[0]))
	if base == "" {
		return model.Variant{}, "", &FormatError{Line: lineNo, Msg: "missing base form"}
	}

	idx, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return model.Variant{}, "", &FormatError{Line: lineNo, Msg: "stress index is not a number", Err: err}
	}
	if idx < 0 || idx >= utf8.RuneCountInString(base) {
		return model.Variant{}, "", &FormatError{
			Line: lineNo,
			Msg:  fmt.Sprintf("stress index %d out of range for %q", idx, base),
		}
	}
	if tokenize.CountVowels(base) >= 2 && !vowelAt(base, idx) {
		return model.Variant{}, "", &FormatError{
			Line: lineNo,
			Msg:  fmt.Sprintf("stress index %d of %q is not a vowel", idx, base),
		}
	}

	var tag model.Tag
	if len(fields) > 2 {
		t := strings.TrimSpace(fields[2])
		if t != "" && t != "-" {
			tag = model.Tag(t)
		}
	}

	weight := 1.0
	if len(fields) > 3 && strings.TrimSpace(fields[3]) != "" {
		weight, err = strconv.ParseFloat(strings.TrimSpace(fields[3]), 64)
		if err != nil {
			return model.Variant{}, "", &FormatError{Line: lineNo, Msg: "weight is not a number", Err: err}
		}
		if weight < 0 {
			return model.Variant{}, "", &FormatError{Line: lineNo, Msg: "weight is negative"}
		}
	}

	// Words with fewer than two vowels never take a visible mark, but
	// their entries still carry tags so they can anchor context.
	if tokenize.CountVowels(base) < 2 {
		return model.Variant{
			Stressed:    base,
			StressIndex: -1,
			Tag:         tag,
			Weight:      weight,
		}, base, nil
	}

	return model.Variant{
		Stressed:    Stressed(base, idx),
		StressIndex: idx,
		Tag:         tag,
		Weight:      weight,
	}, base, nil
}
