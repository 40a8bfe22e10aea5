package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "*", cfg.CORSOrigin)
	assert.Equal(t, 600, cfg.RateLimitPerMinute)
	assert.Equal(t, "file", cfg.StorageDriver)
	assert.Equal(t, "pdv_data_v1", cfg.StorageKey)
	assert.Equal(t, "Principal", cfg.DefaultWarehouseName)
	assert.True(t, cfg.ConsumeUnbilledStock)
	assert.False(t, cfg.ReceiptsEnabled)
	assert.Equal(t, []string{"dinheiro", "debito", "credito", "pix"}, cfg.PaymentMethods())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("PAYMENT_METHODS", " pix , ,dinheiro")
	t.Setenv("CONSUME_UNBILLED_STOCK", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.StorageDriver)
	assert.Equal(t, []string{"pix", "dinheiro"}, cfg.PaymentMethods())
	assert.False(t, cfg.ConsumeUnbilledStock)
}
