package market

import (
	"sync"

	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/hype/rest"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/hype/types"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/logger"
)

// 权益变化超过该阈值才打日志，存储总是更新
const equityLogThreshold = 0.01

// Cache 实时状态缓存：账户权益 + 关注币的最新中间价
// 写入方是订阅事件处理，读取方是流水线，读写都不阻塞、不触网
type Cache struct {
	mu      sync.RWMutex
	equity  float64
	tracked map[string]struct{} // 关注集，只增不减
	prices  map[string]float64  // 只保存关注集内的价格，防止全市场推送撑爆内存
}

// NewCache 初始权益给一个安全默认值，首个webData2推送会覆盖
func NewCache(defaultEquity float64) *Cache {
	return &Cache{
		equity:  defaultEquity,
		tracked: make(map[string]struct{}),
		prices:  make(map[string]float64),
	}
}

// Track 把币加入关注集，幂等
func (c *Cache) Track(symbol string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.tracked[symbol]; ok {
		return
	}
	c.tracked[symbol] = struct{}{}
	logger.Infof("tracking symbol %s, total %d", symbol, len(c.tracked))
}

// PriceOf 最新中间价，未关注或还没收到推送返回false
// 绝不返回可能被误认为真实报价的默认值
func (c *Cache) PriceOf(symbol string) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	price, ok := c.prices[symbol]
	return price, ok
}

// Equity 最近一次已知的账户权益
func (c *Cache) Equity() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.equity
}

// OnAllMids 消费一批价格推送，只更新关注集内的币
func (c *Cache) OnAllMids(mids map[string]float64) {
	if len(mids) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for symbol := range c.tracked {
		if price, ok := mids[symbol]; ok && price > 0 {
			c.prices[symbol] = price
		}
	}
}

// OnWebData2 消费账户快照推送，提取accountValue
// 无论变化大小都覆盖存储；解析不出数值的坏包打日志丢弃，绝不panic
func (c *Cache) OnWebData2(data types.WebData2) {
	raw := data.ClearinghouseState.MarginSummary.AccountValue
	value := rest.ParseStringToFloat(raw)
	if value <= 0 {
		logger.Warnf("drop webData2 payload, bad accountValue: %q", raw)
		return
	}

	c.mu.Lock()
	prev := c.equity
	c.equity = value
	c.mu.Unlock()

	if diff := value - prev; diff > equityLogThreshold || diff < -equityLogThreshold {
		logger.Info("account value changed",
			logger.Pair("from", prev),
			logger.Pair("to", value))
	}
}
