// File: /utils/ticket.go
package utils

import (
	"encoding/json"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// TicketPayload is the exact shape encoded into ticket QR codes. The scanner
// decodes this and nothing else; QR content that doesn't match is ignored.
type TicketPayload struct {
	EventID string `json:"event_id"`
	UserID  string `json:"user_id"`
}

// EncodeTicketPayload serializes the payload carried by a ticket QR code.
func EncodeTicketPayload(eventID, userID string) (string, error) {
	data, err := json.Marshal(TicketPayload{EventID: eventID, UserID: userID})
	if err != nil {
		return "", fmt.Errorf("encode ticket payload: %w", err)
	}
	return string(data), nil
}

// DecodeTicketPayload parses a scanned QR payload. The second return value is
// false for anything that is not a complete ticket payload - that is not an
// error condition, the scan loop just moves on.
func DecodeTicketPayload(raw string) (*TicketPayload, bool) {
	var payload TicketPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, false
	}
	if payload.EventID == "" || payload.UserID == "" {
		return nil, false
	}
	return &payload, true
}

// TicketQRCode renders the ticket payload for (eventID, userID) as a PNG.
func TicketQRCode(eventID, userID string) ([]byte, error) {
	data, err := EncodeTicketPayload(eventID, userID)
	if err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(data, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("render ticket QR code: %w", err)
	}
	return png, nil
}
