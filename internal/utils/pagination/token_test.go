package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeCursor(t *testing.T) {
	ts := time.Date(2024, 3, 31, 14, 30, 45, 123456789, time.UTC)

	token := EncodeCursor(ts, "01HV8Y6K1Z")
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedTS, decodedID, err := DecodeCursor(token)
	assert.NoError(t, err)
	assert.True(t, ts.Equal(decodedTS), "Timestamp should match after decode")
	assert.Equal(t, "01HV8Y6K1Z", decodedID)

	// Non-UTC input is normalised
	ist := time.FixedZone("IST", 5*3600+1800)
	local := time.Date(2024, 4, 1, 9, 0, 0, 0, ist)
	decodedTS, _, err = DecodeCursor(EncodeCursor(local, "x"))
	assert.NoError(t, err)
	assert.True(t, local.Equal(decodedTS))
}

func TestDecodeCursorError(t *testing.T) {
	_, _, err := DecodeCursor("this is not base64!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	noSep := base64.URLEncoding.EncodeToString([]byte("2024-01-01T00:00:00Z"))
	_, _, err = DecodeCursor(noSep)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	badDate := base64.URLEncoding.EncodeToString([]byte("notadate|abc"))
	_, _, err = DecodeCursor(badDate)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "timestamp parse")
}
