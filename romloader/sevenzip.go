package romloader

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/bodgit/sevenzip"
)

// extractFrom7z extracts the first CHIP-8 program from a 7z archive
func extractFrom7z(src io.ReaderAt, size int64) ([]byte, string, error) {
	r, err := sevenzip.NewReader(src, size)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open 7z: %w", err)
	}

	for _, f := range r.File {
		if f.FileInfo().IsDir() || !isROMFile(f.Name) {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, "", fmt.Errorf("failed to open %s: %w", f.Name, err)
		}
		data, err := limitedRead(rc)
		rc.Close()
		if err != nil {
			return nil, "", fmt.Errorf("failed to read %s: %w", f.Name, err)
		}
		return data, filepath.Base(f.Name), nil
	}

	return nil, "", ErrNoROMFile
}
