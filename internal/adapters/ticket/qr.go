package ticket

import (
	"encoding/base64"
	"fmt"

	"github.com/skip2/go-qrcode"

	"eventify/internal/domain"
)

const qrSize = 256

type qrEncoder struct{}

// NewQREncoder returns a TicketEncoder that renders the check-in URL as a
// QR code PNG wrapped in a base64 data URL, ready to embed in an <img> tag
// or an email body.
func NewQREncoder() domain.TicketEncoder {
	return &qrEncoder{}
}

func (e *qrEncoder) Encode(url string) (string, error) {
	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		return "", fmt.Errorf("encode qr code: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
