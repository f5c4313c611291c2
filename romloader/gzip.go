package romloader

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// tarMagicOffset is where the "ustar" signature sits in a tar header.
const tarMagicOffset = 257

// extractFromGzip decompresses a gzip stream. A tarball yields its first
// CHIP-8 program; a plain stream is the program itself, named after the
// archive without its .gz suffix.
func extractFromGzip(src io.Reader, path string) ([]byte, string, error) {
	zr, err := gzip.NewReader(src)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open gzip: %w", err)
	}
	defer zr.Close()

	// Tar headers are 512 bytes, so the stream limit is only applied to
	// plain payloads and to the tar entries themselves
	data, err := io.ReadAll(io.LimitReader(zr, maxROMSize+tarMagicOffset+512))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decompress gzip: %w", err)
	}

	if isTar(data) {
		return extractFromTar(io.MultiReader(bytes.NewReader(data), zr))
	}

	if len(data) > maxROMSize {
		return nil, "", ErrFileTooLarge
	}
	name := filepath.Base(path)
	if strings.HasSuffix(strings.ToLower(name), ".gz") {
		name = name[:len(name)-3]
	}
	return data, name, nil
}

func isTar(data []byte) bool {
	return len(data) >= tarMagicOffset+5 && string(data[tarMagicOffset:tarMagicOffset+5]) == "ustar"
}

// extractFromTar returns the first CHIP-8 program in a tar stream
func extractFromTar(src io.Reader) ([]byte, string, error) {
	tr := tar.NewReader(src)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, "", fmt.Errorf("failed to read tar entry: %w", err)
		}

		if header.Typeflag != tar.TypeReg || !isROMFile(header.Name) {
			continue
		}

		data, err := limitedRead(tr)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read %s: %w", header.Name, err)
		}
		return data, filepath.Base(header.Name), nil
	}

	return nil, "", ErrNoROMFile
}
