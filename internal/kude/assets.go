package kude

import (
	"os"

	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
)

// Image is an inline, format-tagged bitmap ready for the PDF backend.
type Image struct {
	Bytes []byte
	Ext   extension.Type
}

// LoadLogo reads an optional logo bitmap from disk. Any failure (missing
// path, unreadable file, unsupported format) yields nil so the header
// renders with a blank placeholder instead.
func LoadLogo(path string) *Image {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	ext, ok := detectImageFormat(data)
	if !ok {
		return nil
	}
	return &Image{Bytes: data, Ext: ext}
}

// detectImageFormat sniffs the bitmap format from magic bytes.
func detectImageFormat(data []byte) (extension.Type, bool) {
	if len(data) < 4 {
		return "", false
	}
	// PNG
	if data[0] == 0x89 && data[1] == 0x50 && data[2] == 0x4E && data[3] == 0x47 {
		return extension.Png, true
	}
	// JPEG
	if data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF {
		return extension.Jpg, true
	}
	return "", false
}
