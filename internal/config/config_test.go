package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper(values map[string]interface{}) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestFromViperDefaults(t *testing.T) {
	cfg, err := fromViper(newTestViper(nil))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, "none", cfg.EventBus)
	assert.False(t, cfg.EnkapVerifySignature)
	assert.Equal(t, 5.0, cfg.RateLimitRPS)
	assert.Equal(t, 10, cfg.RateLimitBurst)
}

func TestFromViperOverrides(t *testing.T) {
	cfg, err := fromViper(newTestViper(map[string]interface{}{
		"PORT":                   "9090",
		"EVENT_BUS":              "NATS",
		"ENKAP_VERIFY_SIGNATURE": "true",
		"PUBLIC_BASE_URL":        "https://api.ltcgroup.test/",
	}))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "nats", cfg.EventBus)
	assert.True(t, cfg.EnkapVerifySignature)
	assert.Equal(t, "https://api.ltcgroup.test/api/payments/webhook", cfg.EnkapNotificationURL)
}

func TestFromViperPayItems(t *testing.T) {
	cfg, err := fromViper(newTestViper(map[string]interface{}{
		"S3P_MTN_PAY_ITEM_ID":    "S3PAYITEM-MTN",
		"S3P_ORANGE_PAY_ITEM_ID": "S3PAYITEM-OM",
	}))
	require.NoError(t, err)

	assert.Equal(t, "S3PAYITEM-MTN", cfg.S3PMTNPayItemID)
	assert.Equal(t, "S3PAYITEM-OM", cfg.S3POrangePayItemID)
}

func TestFromViperRejectsUnknownBus(t *testing.T) {
	_, err := fromViper(newTestViper(map[string]interface{}{"EVENT_BUS": "kafka"}))
	assert.Error(t, err)
}

func TestDatabaseURL(t *testing.T) {
	cfg := &Config{DbUser: "ltc", DbPassword: "p@ss word", DbHost: "db", DbPort: "5432", DbName: "payments", SSLMode: "disable"}
	assert.Equal(t, "postgres://ltc:p%40ss%20word@db:5432/payments?connect_timeout=10&sslmode=disable", cfg.DatabaseURL())
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "warn", "json")

	logger.Info("dropped")
	logger.Warn("kept", "order_ref", "LTC-1")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "kept", line["msg"])
	assert.Equal(t, "LTC-1", line["order_ref"])
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
}
