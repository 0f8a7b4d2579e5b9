// File: /utils/ticket_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketPayload_RoundTrip(t *testing.T) {
	encoded, err := EncodeTicketPayload("event-1", "user-1")
	require.NoError(t, err)

	payload, ok := DecodeTicketPayload(encoded)
	require.True(t, ok)
	assert.Equal(t, "event-1", payload.EventID)
	assert.Equal(t, "user-1", payload.UserID)
}

func TestDecodeTicketPayload_RejectsNonTickets(t *testing.T) {
	for _, raw := range []string{
		"",
		"https://example.com",
		"{not json",
		`{"event_id":"event-1"}`,
		`{"user_id":"user-1"}`,
		`{"event_id":"","user_id":"user-1"}`,
		`["event-1","user-1"]`,
	} {
		payload, ok := DecodeTicketPayload(raw)
		assert.False(t, ok, "decode of %q", raw)
		assert.Nil(t, payload)
	}
}

func TestTicketQRCode_RendersPNG(t *testing.T) {
	png, err := TicketQRCode("event-1", "user-1")
	require.NoError(t, err)
	require.NotEmpty(t, png)

	// PNG magic bytes
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}
