package utils

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SajeedAninda/Sovereign-Assets-Server/config"
)

func TestMain(m *testing.M) {
	config.LoadConfig()
	os.Exit(m.Run())
}

func TestGenerateAndValidateJWT(t *testing.T) {
	token, err := GenerateJWT("worker@mail.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "worker@mail.com", claims.Email)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	_, err := ValidateJWT("definitely.not.ajwt")
	assert.Error(t, err)
}

func TestValidateJWTRejectsWrongKey(t *testing.T) {
	original := config.JWTKey
	defer func() { config.JWTKey = original }()

	config.JWTKey = []byte("key-one")
	token, err := GenerateJWT("worker@mail.com")
	require.NoError(t, err)

	config.JWTKey = []byte("key-two")
	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong-pass", hash))
}
