package position

import (
	"context"
	"errors"
	"time"

	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/exchange"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/model"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/logger"
)

// ErrUnresolved 截止时间内没有等到成交确认，入场单可能仍在交易所存活
var ErrUnresolved = errors.New("fill not resolved within timeout")

// FillResolver 确认入场单的成交均价
// 市价单通常在下单响应里直接带均价（零延迟路径）；
// 没带的话按固定间隔轮询成交记录，用cloid区分同币并发订单
type FillResolver struct {
	ex       exchange.Exchange
	interval time.Duration
}

func NewFillResolver(ex exchange.Exchange, interval time.Duration) *FillResolver {
	if interval <= 0 {
		interval = time.Second
	}
	return &FillResolver{ex: ex, interval: interval}
}

func (fr *FillResolver) Resolve(ctx context.Context, res *model.OrderResult, cloid string, timeout time.Duration) (*model.Fill, error) {
	if res != nil && res.Filled != nil {
		return res.Filled, nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(fr.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			fills, err := fr.ex.RecentFills(ctx)
			if err != nil {
				// 单次轮询失败继续等下一轮，超时兜底
				logger.Warnf("poll fills: %v", err)
				continue
			}
			for i := range fills {
				if fills[i].Cloid == cloid {
					return &fills[i], nil
				}
			}
		case <-ctx.Done():
			return nil, ErrUnresolved
		}
	}
}
