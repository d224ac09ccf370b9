package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unilink/unilink/internal/app/models"
)

func testProfile() *models.Profile {
	return &models.Profile{
		ID:       7,
		UserID:   3,
		Type:     models.ProfileTypeStudent,
		Username: "joaosilva",
	}
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 720 * time.Hour,
		TokenIssuer:     "unilink.app",
	})

	access, refresh, expiresIn, refreshExpiresIn, err := svc.GenerateTokenPair(testProfile())
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, int(time.Hour.Seconds()), expiresIn)
	assert.Equal(t, int((720 * time.Hour).Seconds()), refreshExpiresIn)

	claims, err := svc.ValidateAndExtractClaims(access)
	require.NoError(t, err)
	assert.Equal(t, int64(3), claims.UserID)
	assert.Equal(t, int64(7), claims.ProfileID)
	assert.Equal(t, "joaosilva", claims.Username)
	assert.Equal(t, "student", claims.ProfileType)
	assert.Equal(t, "unilink.app", claims.Issuer)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	issuer := NewJWTService(JWTConfig{SecretKey: "secret-a", AccessTokenExp: time.Hour})
	verifier := NewJWTService(JWTConfig{SecretKey: "secret-b", AccessTokenExp: time.Hour})

	access, _, _, _, err := issuer.GenerateTokenPair(testProfile())
	require.NoError(t, err)

	_, err = verifier.ValidateAndExtractClaims(access)
	assert.Error(t, err)
}

func TestValidateExpiredToken(t *testing.T) {
	svc := NewJWTService(JWTConfig{SecretKey: "test-secret", AccessTokenExp: -time.Minute})

	access, _, _, _, err := svc.GenerateTokenPair(testProfile())
	require.NoError(t, err)

	_, err = svc.ValidateAndExtractClaims(access)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateEmptyToken(t *testing.T) {
	svc := NewJWTService(JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour})

	_, err := svc.ValidateAndExtractClaims("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"bearer prefix", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"raw token", "abc.def.ghi", "abc.def.ghi", false},
		{"empty header", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBearerToken(tt.header)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
