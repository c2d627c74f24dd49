package config

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSecretAcceptsBase64Variants(t *testing.T) {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i * 7)
	}

	for _, enc := range []*base64.Encoding{base64.URLEncoding, base64.RawURLEncoding, base64.StdEncoding} {
		decoded, err := DecodeSecret(enc.EncodeToString(key))
		require.NoError(t, err)
		assert.Equal(t, key, decoded)
	}

	_, err := DecodeSecret("not base64 !!")
	assert.Error(t, err)
}

func TestGetAllowedOrigins(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "https://resto.example.com, ,https://admin.example.com")

	origins := GetAllowedOrigins()
	assert.Contains(t, origins, "https://resto.example.com")
	assert.Contains(t, origins, "https://admin.example.com")
	assert.Len(t, origins, len(allowedOrigins)+2)

	// pemanggilan kedua tidak menumpuk origin
	assert.Len(t, GetAllowedOrigins(), len(allowedOrigins)+2)
}
