package romloader

import (
	"archive/zip"
	"fmt"
	"io"
	"path/filepath"
)

// extractFromZIP extracts the first CHIP-8 program from a ZIP archive
func extractFromZIP(src io.ReaderAt, size int64) ([]byte, string, error) {
	r, err := zip.NewReader(src, size)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open zip: %w", err)
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
