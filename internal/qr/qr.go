// Package qr renders the SIFEN verification URL as a QR bitmap.
package qr

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

// DefaultSize is the bitmap edge length in pixels.
const DefaultSize = 150

// Generate encodes url as a QR code (error correction level M) and
// returns it as PNG bytes. A failure here degrades the KUDE footer, so
// callers treat any error as "no QR available".
func Generate(url string, size int) ([]byte, error) {
	if url == "" {
		return nil, errors.New("qr: url is required")
	}
	if size <= 0 {
		size = DefaultSize
	}

	code, err := qr.Encode(url, qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("qr: encode: %w", err)
	}

	scaled, err := barcode.Scale(code, size, size)
	if err != nil {
		return nil, fmt.Errorf("qr: scale: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("qr: png encode: %w", err)
	}
	return buf.Bytes(), nil
}
