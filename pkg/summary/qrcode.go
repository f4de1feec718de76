package summary

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"

	"github.com/dmitrymomot/formkit/pkg/form"
)

var (
	// ErrEmptyContent is returned when there is nothing to encode.
	ErrEmptyContent = errors.New("summary: qr content cannot be empty")
	// ErrQRCode is returned when the QR code cannot be generated, e.g. the
	// content exceeds the symbol capacity.
	ErrQRCode = errors.New("summary: failed to generate QR code")
)

// DefaultQRSize is the image edge in pixels used for sizes <= 0.
const DefaultQRSize = 256

// QRCodePNG encodes content as a PNG QR code.
func QRCodePNG(content string, size int) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if size <= 0 {
		size = DefaultQRSize
	}
	png, err := skipqrcode.Encode(content, skipqrcode.Medium, size)
	if err != nil {
		return nil, errors.Join(ErrQRCode, err)
	}
	return png, nil
}

// RecordQRCode returns a data URI of a QR code holding the record's JSON,
// ready for an <img src>.
func RecordQRCode(rec form.Record, size int) (string, error) {
	if rec.Len() == 0 {
		return "", ErrEmptyContent
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return "", errors.Join(ErrQRCode, err)
	}
	png, err := QRCodePNG(string(data), size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
