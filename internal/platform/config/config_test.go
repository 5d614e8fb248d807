package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.RequirePaymentVerification)
	assert.Equal(t, "INR", cfg.PaymentCurrency)
	assert.True(t, cfg.ReferralBonusAmount.Equal(decimal.NewFromInt(100)))
	assert.True(t, cfg.WithdrawalMinBalance.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, "5 0 * * *", cfg.AccrualSchedule)
	assert.Equal(t, "Asia/Kolkata", cfg.AccrualLocation.String())
	assert.Equal(t, 3, cfg.PersistenceMaxAttempts)
	assert.Equal(t, 50*time.Millisecond, cfg.PersistenceRetryBackoff)
	assert.Equal(t, 5*time.Second, cfg.DBOperationTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("REFERRAL_BONUS_AMOUNT", "250.50")
	t.Setenv("WITHDRAWAL_MIN_BALANCE", "-5")
	t.Setenv("ACCRUAL_TIMEZONE", "Mars/Olympus")
	t.Setenv("PERSISTENCE_MAX_ATTEMPTS", "0")
	t.Setenv("DB_OPERATION_TIMEOUT", "not-a-duration")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("REQUIRE_PAYMENT_VERIFICATION", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.ReferralBonusAmount.Equal(decimal.RequireFromString("250.50")))
	assert.True(t, cfg.WithdrawalMinBalance.Equal(decimal.NewFromInt(150)), "negative threshold falls back")
	assert.Equal(t, time.UTC, cfg.AccrualLocation)
	assert.Equal(t, 3, cfg.PersistenceMaxAttempts)
	assert.Equal(t, 5*time.Second, cfg.DBOperationTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.RequirePaymentVerification)
}
