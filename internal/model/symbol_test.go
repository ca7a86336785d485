package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSymbol(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"BTCUSDT", "BTC"},
		{"BTCUSD", "BTC"},
		{"BTCUSDT.P", "BTC"},
		{"btcusdt", "BTC"},
		{"ETHUSD", "ETH"},
		{"  SOLUSDT ", "SOL"},
		{"BTC", "BTC"},
		{"USDT", "USDT"}, // 纯quote币不剥
		{"HYPE", "HYPE"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeSymbol(tt.raw), "raw=%q", tt.raw)
	}
}

func TestNormalizeSymbolIdempotent(t *testing.T) {
	for _, raw := range []string{"BTCUSDT", "ETHUSDT.P", "DOGE", "btcusd"} {
		once := NormalizeSymbol(raw)
		assert.Equal(t, once, NormalizeSymbol(once))
	}
}

func TestTradeSignalValidate(t *testing.T) {
	valid := func() TradeSignal {
		return TradeSignal{
			Passphrase: "x",
			Symbol:     "ETHUSDT",
			Action:     "buy",
			Leverage:   10,
			TpPercent:  2.0,
			SlPercent:  1.0,
		}
	}

	sig := valid()
	assert.NoError(t, sig.Validate())

	sig = valid()
	sig.Action = "close"
	assert.Error(t, sig.Validate())

	sig = valid()
	sig.Action = "SELL" // 大小写不敏感
	assert.NoError(t, sig.Validate())
	assert.False(t, sig.IsBuy())

	sig = valid()
	sig.Leverage = 0
	assert.Error(t, sig.Validate())

	sig = valid()
	sig.SlPercent = 0
	assert.Error(t, sig.Validate())

	sig = valid()
	sig.TpPercent = -1
	assert.Error(t, sig.Validate())

	sig = valid()
	sig.Size = -0.5
	assert.Error(t, sig.Validate())
}
