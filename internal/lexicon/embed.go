package lexicon

import (
	"bytes"
	_ "embed"
	"fmt"
)

//go:embed data/lexicon.tsv
var seedTSV []byte

// Embedded builds a store from the bundled seed lexicon. The seed covers
// common vocabulary and the classic stress homographs; production use
// loads a full dictionary via LoadFile.
func Embedded() (*Store, error) {
	store, err := Load(bytes.NewReader(seedTSV))
	if err != nil {
		return nil, fmt.Errorf("load embedded lexicon: %w", err)
	}
	return store, nil
}
