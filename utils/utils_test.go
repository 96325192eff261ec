package utils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name     string
		currency string
		amount   string
		want     string
	}{
		{"zero", "KES", "0", "KES 0.00"},
		{"thousands", "KES", "15000.5", "KES 15,000.50"},
		{"millions", "KES", "1234567.891", "KES 1,234,567.89"},
		{"negative", "USD", "-1200", "USD -1,200.00"},
		{"no currency", "", "999.9", "999.90"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatCurrency(tt.currency, decimal.RequireFromString(tt.amount))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")
	t.Cleanup(func() { SetJWTSecret("") })

	token, err := GenerateToken("ops@javahouse.co.ke", "admin", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "ops@javahouse.co.ke", claims.Subject)
}

func TestParseTokenRejects(t *testing.T) {
	SetJWTSecret("test-secret")
	t.Cleanup(func() { SetJWTSecret("") })

	expired, err := GenerateToken("barista", "staff", -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(expired)
	assert.Error(t, err)

	SetJWTSecret("another-secret")
	valid, err := GenerateToken("barista", "staff", time.Hour)
	require.NoError(t, err)
	SetJWTSecret("test-secret")
	_, err = ParseToken(valid)
	assert.Error(t, err)

	_, err = ParseToken("not-a-token")
	assert.Error(t, err)

	SetJWTSecret("")
	_, err = ParseToken(valid)
	assert.Error(t, err)
}

func TestRespondErrorAborts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondError(c, http.StatusBadRequest, errors.New("Unable to read request body"))

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"detail":"Unable to read request body"}`, w.Body.String())
}
