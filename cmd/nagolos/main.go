package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/okovalenko/nagolos/internal/cli"
	"github.com/okovalenko/nagolos/internal/document"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, document.ErrUnsupported) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
