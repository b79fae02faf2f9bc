package chip8

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// LoadFile reads a ROM image from disk and copies it into the program area.
// A missing file reports ErrRomNotFound, any other read problem
// ErrRomReadFailure, an oversized image ErrRomTooLarge; in every failure
// case memory keeps its post-Reset contents.
func (p *Processor) LoadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrRomNotFound, path)
		}
		return fmt.Errorf("%w: %s: %v", ErrRomReadFailure, path, err)
	}
	return p.Load(b)
}
