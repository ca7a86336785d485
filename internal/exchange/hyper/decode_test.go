package hyper

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/hype/types"
)

func decodeResponse(t *testing.T, raw string) *types.ExchangeResponse {
	t.Helper()
	var resp types.ExchangeResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))
	return &resp
}

func TestDecodeOrderResultFilled(t *testing.T) {
	resp := decodeResponse(t, `{
		"status": "ok",
		"response": {
			"type": "order",
			"data": {"statuses": [{"filled": {"totalSz": "0.1", "avgPx": "2001.5", "oid": 77738308}}]}
		}
	}`)

	res := decodeOrderResult(resp, "0xabc")
	require.True(t, res.Ok())
	require.NotNil(t, res.Filled)
	assert.Equal(t, "0xabc", res.Filled.Cloid)
	assert.Equal(t, int64(77738308), res.Filled.Oid)
	assert.Equal(t, 2001.5, res.Filled.Price)
	assert.Equal(t, 0.1, res.Filled.Size)
}

func TestDecodeOrderResultResting(t *testing.T) {
	resp := decodeResponse(t, `{
		"status": "ok",
		"response": {
			"type": "order",
			"data": {"statuses": [{"resting": {"oid": 77738309}}]}
		}
	}`)

	res := decodeOrderResult(resp, "0xabc")
	require.True(t, res.Ok())
	assert.Nil(t, res.Filled)
	require.NotNil(t, res.Resting)
	assert.Equal(t, int64(77738309), res.Resting.Oid)
}

func TestDecodeOrderResultError(t *testing.T) {
	resp := decodeResponse(t, `{
		"status": "ok",
		"response": {
			"type": "order",
			"data": {"statuses": [{"error": "Order must have minimum value of $10."}]}
		}
	}`)

	res := decodeOrderResult(resp, "0xabc")
	assert.False(t, res.Ok())
	assert.Contains(t, res.Err, "minimum value")
}

func TestDecodeOrderResultBadEnvelope(t *testing.T) {
	res := decodeOrderResult(nil, "0xabc")
	assert.False(t, res.Ok())

	res = decodeOrderResult(&types.ExchangeResponse{Status: "err"}, "0xabc")
	assert.False(t, res.Ok())

	res = decodeOrderResult(decodeResponse(t, `{"status":"ok","response":{"type":"order","data":{"statuses":[]}}}`), "0xabc")
	assert.False(t, res.Ok())
}

func TestFormatPxSz(t *testing.T) {
	// 价格最多5位有效数字，小数位不超过 6-szDecimals
	assert.Equal(t, "2001.5", formatPx(2001.5, 3))
	assert.Equal(t, "63211", formatPx(63211.4, 3))
	assert.Equal(t, "0.12345", formatPx(0.123454, 0))
	assert.Equal(t, "1980", formatPx(1980.0, 3))

	assert.Equal(t, "0.105", formatSz(0.105, 3))
	assert.Equal(t, "0.1", formatSz(0.1, 3))
}
