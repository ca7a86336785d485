package market

import (
	"context"

	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/hype/stream"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/logger"
)

// Tracker 订阅监听：把websocket推送按到达顺序喂给缓存
// 每个推送通道一个长驻goroutine里的case，处理只做内存写入，保持短小
type Tracker struct {
	ws    *stream.HyperliquidWebsocketClient
	cache *Cache
	user  string
}

func NewTracker(ws *stream.HyperliquidWebsocketClient, cache *Cache, user string) *Tracker {
	return &Tracker{ws: ws, cache: cache, user: user}
}

// Start 发起订阅并启动消费循环，ctx取消后退出
func (t *Tracker) Start(ctx context.Context) error {
	if err := t.ws.StreamAllMids(); err != nil {
		return err
	}
	if err := t.ws.StreamWebData2(t.user); err != nil {
		return err
	}
	logger.Infof("account tracker started for address: %s", t.user)

	go func() {
		for {
			select {
			case mids := <-t.ws.AllMidsChan:
				t.cache.OnAllMids(mids)
			case data := <-t.ws.WebData2Chan:
				t.cache.OnWebData2(data)
			case err := <-t.ws.ErrorChan:
				// 订阅通道的错误不能中断消费循环
				logger.Errorf("stream error: %v", err)
			case <-ctx.Done():
				if err := t.ws.Close(); err != nil {
					logger.Warnf("close websocket: %v", err)
				}
				logger.Info("account tracker stopped")
				return
			}
		}
	}()
	return nil
}
