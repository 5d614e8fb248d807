package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/investment_ledger_app/internal/apperrors"
	"github.com/SscSPs/investment_ledger_app/internal/core/services"
	"github.com/SscSPs/investment_ledger_app/internal/platform/config"
	"github.com/SscSPs/investment_ledger_app/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminConfig(t *testing.T) *config.Config {
	t.Helper()
	hash, err := utils.HashPassword("s3cret")
	require.NoError(t, err)
	return &config.Config{
		JWTSecret:         "test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "ledger-test",
		AdminUsername:     "admin",
		AdminPasswordHash: hash,
	}
}

func TestAdminAuthService_Login(t *testing.T) {
	cfg := adminConfig(t)
	svc := services.NewAdminAuthService(cfg)

	before := time.Now()
	token, expiresAt, err := svc.Login(context.Background(), "admin", "s3cret")
	require.NoError(t, err)
	assert.WithinDuration(t, before.Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := utils.ParseAndValidateJWT(token, cfg.JWTSecret, cfg.JWTIssuer)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)

	_, err = utils.ParseAndValidateJWT(token, "wrong-secret", cfg.JWTIssuer)
	assert.Error(t, err)
	_, err = utils.ParseAndValidateJWT(token, cfg.JWTSecret, "someone-else")
	assert.Error(t, err)
}

func TestAdminAuthService_LoginRejected(t *testing.T) {
	cfg := adminConfig(t)
	svc := services.NewAdminAuthService(cfg)

	_, _, err := svc.Login(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrAuthentication)
	_, _, err = svc.Login(context.Background(), "root", "s3cret")
	assert.ErrorIs(t, err, apperrors.ErrAuthentication)

	cfg.AdminPasswordHash = ""
	_, _, err = svc.Login(context.Background(), "admin", "s3cret")
	assert.ErrorIs(t, err, apperrors.ErrAuthentication)
}
