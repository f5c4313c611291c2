// Package romloader handles loading ROM files from various sources,
// including compressed archives (ZIP, 7z, gzip, tar.gz, RAR).
package romloader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Magic bytes for format detection
var (
	magicZIP    = []byte{0x50, 0x4B, 0x03, 0x04}
	magicZIPEnd = []byte{0x50, 0x4B, 0x05, 0x06} // empty zip
	magic7z     = []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}
	magicGzip   = []byte{0x1F, 0x8B}
	magicRAR    = []byte{0x52, 0x61, 0x72, 0x21} // "Rar!"
)

// Maximum ROM size (64KB safety limit). Program images larger than the
// interpreter's memory are rejected later by the core with its own error.
const maxROMSize = 64 * 1024

// romExtensions lists the file names accepted inside archives.
var romExtensions = []string{".ch8", ".c8", ".rom"}

// ErrNoROMFile is returned when no CHIP-8 program is found in an archive
var ErrNoROMFile = errors.New("no .ch8, .c8 or .rom file found in archive")

// ErrFileTooLarge is returned when extracted content exceeds size limit
var ErrFileTooLarge = errors.New("file exceeds maximum size limit")

// formatType represents the detected file format
type formatType int

const (
	formatRaw formatType = iota
	formatZIP
	format7z
	formatGzip
	formatRAR
)

// LoadROM loads a ROM from a file path on the OS filesystem. See LoadROMFs.
func LoadROM(path string) ([]byte, string, error) {
	return LoadROMFs(afero.NewOsFs(), path)
}

// LoadROMFs loads a ROM from path on fs. It automatically detects and
// extracts from archives. Returns the ROM data, the filename of the ROM
// (useful for display), and any error encountered. CHIP-8 programs have no
// signature, so anything that is not a recognised archive is read raw.
func LoadROMFs(fs afero.Fs, path string) ([]byte, string, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, "", fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, "", fmt.Errorf("failed to open file: %s is a directory", path)
	}

	// Read header for magic byte detection
	header := make([]byte, 16)
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, "", fmt.Errorf("failed to read file header: %w", err)
	}
	header = header[:n]

	// Reset file position
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, "", fmt.Errorf("failed to seek file: %w", err)
	}

	switch detectFormat(header, path) {
	case formatZIP:
		return extractFromZIP(f, info.Size())

	case format7z:
		return extractFrom7z(f, info.Size())

	case formatGzip:
		return extractFromGzip(f, path)

	case formatRAR:
		return extractFromRAR(f)

	default:
		data, err := limitedRead(f)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read ROM: %w", err)
		}
		return data, filepath.Base(path), nil
	}
}

// detectFormat determines the file format based on magic bytes and extension
func detectFormat(header []byte, path string) formatType {
	ext := strings.ToLower(filepath.Ext(path))

	// A short program can start with any bytes, so magic is only trusted
	// when the name is not a ROM name
	if !isROMFile(path) {
		// Check magic bytes first (more reliable)
		if len(header) >= 4 {
			if bytes.HasPrefix(header, magicZIP) || bytes.HasPrefix(header, magicZIPEnd) {
				return formatZIP
			}
			if bytes.HasPrefix(header, magicRAR) {
				return formatRAR
			}
		}
		if len(header) >= 6 && bytes.HasPrefix(header, magic7z) {
			return format7z
		}
		if len(header) >= 2 && bytes.HasPrefix(header, magicGzip) {
			return formatGzip
		}
	}

	// Fall back to extension
	switch ext {
	case ".zip":
		return formatZIP
	case ".7z":
		return format7z
	case ".gz", ".tgz":
		return formatGzip
	case ".rar":
		return formatRAR
	}

	return formatRaw
}

// isROMFile checks if a filename has a CHIP-8 program extension (case-insensitive)
func isROMFile(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range romExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// limitedRead reads from r up to maxROMSize bytes, returning an error if exceeded
func limitedRead(r io.Reader) ([]byte, error) {
	lr := io.LimitReader(r, maxROMSize+1)
	data, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if len(data) > maxROMSize {
		return nil, ErrFileTooLarge
	}
	return data, nil
}
