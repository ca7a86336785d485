package market

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/hype/types"
)

func webData2WithValue(v string) types.WebData2 {
	var data types.WebData2
	data.ClearinghouseState.MarginSummary.AccountValue = v
	return data
}

func TestCacheTrackedFiltering(t *testing.T) {
	c := NewCache(1000)
	c.Track("BTC")

	c.OnAllMids(map[string]float64{"BTC": 50000, "ETH": 2000})

	price, ok := c.PriceOf("BTC")
	assert.True(t, ok)
	assert.Equal(t, 50000.0, price)

	// 未关注的币不入缓存
	_, ok = c.PriceOf("ETH")
	assert.False(t, ok)
}

func TestCacheUnknownPrice(t *testing.T) {
	c := NewCache(1000)
	c.Track("BTC")

	// 关注了但还没收到推送
	_, ok := c.PriceOf("BTC")
	assert.False(t, ok)

	// 非法价格不覆盖
	c.OnAllMids(map[string]float64{"BTC": 0})
	_, ok = c.PriceOf("BTC")
	assert.False(t, ok)
}

func TestCacheTrackIdempotent(t *testing.T) {
	c := NewCache(1000)
	c.Track("ETH")
	c.Track("ETH")
	c.OnAllMids(map[string]float64{"ETH": 2000})

	price, ok := c.PriceOf("ETH")
	assert.True(t, ok)
	assert.Equal(t, 2000.0, price)
}

func TestCacheEquityUpdates(t *testing.T) {
	c := NewCache(1000)
	assert.Equal(t, 1000.0, c.Equity())

	c.OnWebData2(webData2WithValue("2345.67"))
	assert.Equal(t, 2345.67, c.Equity())

	// 小于日志阈值的变化也要更新存储
	c.OnWebData2(webData2WithValue("2345.671"))
	assert.Equal(t, 2345.671, c.Equity())
}

func TestCacheBadEquityPayloadDropped(t *testing.T) {
	c := NewCache(1000)
	c.OnWebData2(webData2WithValue("1500"))
	assert.Equal(t, 1500.0, c.Equity())

	// 坏包丢弃，保留上一次的值
	c.OnWebData2(webData2WithValue("not-a-number"))
	assert.Equal(t, 1500.0, c.Equity())

	c.OnWebData2(webData2WithValue(""))
	assert.Equal(t, 1500.0, c.Equity())

	c.OnWebData2(webData2WithValue("-5"))
	assert.Equal(t, 1500.0, c.Equity())
}
