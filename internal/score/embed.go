package score

import (
	"bytes"
	_ "embed"
	"fmt"
)

//go:embed data/compat.yaml
var defaultTableYAML []byte

// EmbeddedTable returns the bundled compatibility table
func EmbeddedTable() (*Table, error) {
	t, err := LoadTable(bytes.NewReader(defaultTableYAML))
	if err != nil {
		return nil, fmt.Errorf("load embedded table: %w", err)
	}
	return t, nil
}
