package board

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed sample.yaml
var sampleYAML []byte

// Default returns the bundled sample board.
func Default() *Document {
	doc, err := Parse(sampleYAML)
	if err != nil {
		panic(fmt.Sprintf("board: bundled sample is invalid: %v", err))
	}
	return doc
}

// WriteSample copies the bundled board to path unless a file already exists.
func WriteSample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("board: ensure dir: %w", err)
	}
	if err := os.WriteFile(path, sampleYAML, 0o644); err != nil {
		return fmt.Errorf("board: write sample: %w", err)
	}
	return nil
}
