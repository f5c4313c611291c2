package romloader

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/nwaples/rardecode/v2"
)

// extractFromRAR extracts the first CHIP-8 program from a RAR archive
func extractFromRAR(src io.Reader) ([]byte, string, error) {
	r, err := rardecode.NewReader(src)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open rar: %w", err)
	}

	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, "", fmt.Errorf("failed to read rar entry: %w", err)
		}

		if header.IsDir {
			continue
		}
		if !isROMFile(header.Name) {
			continue
		}

		data, err := limitedRead(r)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read %s: %w", header.Name, err)
		}
		return data, filepath.Base(header.Name), nil
	}

	return nil, "", ErrNoROMFile
}
