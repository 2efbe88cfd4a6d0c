package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017/?replicaSet=rs0")
	t.Setenv("DB_NAME", "qkart_test")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "PAYMENT_OPTION_DEFAULT", cfg.DefaultPaymentOption)
	assert.Equal(t, "ADDRESS_NOT_SET", cfg.DefaultAddress)
	assert.Equal(t, 500.0, cfg.DefaultWalletMoney)
	assert.Equal(t, 5*time.Second, cfg.MongoTimeout)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiration)
	assert.Empty(t, cfg.RedisAddr)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("DEFAULT_PAYMENT_OPTION", "PAYMENT_OPTION_WALLET")
	t.Setenv("CART_LOCK_TTL", "750ms")
	t.Setenv("DEFAULT_WALLET_MONEY", "1200.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "PAYMENT_OPTION_WALLET", cfg.DefaultPaymentOption)
	assert.Equal(t, 750*time.Millisecond, cfg.CartLockTTL)
	assert.Equal(t, 1200.5, cfg.DefaultWalletMoney)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("MONGO_URI", "")
	t.Setenv("DB_NAME", "")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGO_URI")
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_InvalidDuration(t *testing.T) {
	setRequired(t)
	t.Setenv("MONGO_TIMEOUT", "soon")

	_, err := Load()
	assert.ErrorContains(t, err, "MONGO_TIMEOUT")
}

func TestLoad_CartLockBounds(t *testing.T) {
	setRequired(t)
	t.Setenv("CART_LOCK_WAIT", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Zero(t, cfg.CartLockWait)

	for _, ttl := range []string{"0", "-1s"} {
		t.Setenv("CART_LOCK_TTL", ttl)
		_, err = Load()
		assert.ErrorContains(t, err, "CART_LOCK_TTL", ttl)
	}

	t.Setenv("CART_LOCK_TTL", "5s")
	t.Setenv("CART_LOCK_WAIT", "-1s")
	_, err = Load()
	assert.ErrorContains(t, err, "CART_LOCK_WAIT")
}
