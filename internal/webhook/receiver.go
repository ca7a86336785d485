package webhook

import (
	"context"
	"crypto/subtle"

	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/model"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/position"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/tradecfg"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/errors"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/errors/ecode"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/logger"
)

// Receiver TradingView信号的入口：口令校验、参数回填，然后交给执行流水线
type Receiver struct {
	passphrase string
	store      *tradecfg.Store
	svc        *position.PositionService
}

func NewReceiver(passphrase string, store *tradecfg.Store, svc *position.PositionService) *Receiver {
	return &Receiver{passphrase: passphrase, store: store, svc: svc}
}

// Handle 处理一条信号，口令不匹配的请求在任何交易动作之前被拒绝
func (r *Receiver) Handle(ctx context.Context, sig *model.TradeSignal) (*model.ExecutionReport, error) {
	if subtle.ConstantTimeCompare([]byte(sig.Passphrase), []byte(r.passphrase)) != 1 {
		logger.Warnf("webhook rejected: passphrase mismatch for symbol %s", sig.Symbol)
		return nil, errors.New(ecode.RequireAuthErr, "invalid passphrase")
	}

	r.backfill(sig)

	logger.Info("signal accepted",
		logger.Pair("symbol", sig.Symbol),
		logger.Pair("action", sig.Action),
		logger.Pair("leverage", sig.Leverage))

	return r.svc.Execute(ctx, sig)
}

// backfill 信号里缺省的字段用该币种的配置补齐
// size不回填：信号不带数量时由sizer按账户状态计算
func (r *Receiver) backfill(sig *model.TradeSignal) {
	cfg := r.store.Get(model.NormalizeSymbol(sig.Symbol))
	if sig.Leverage <= 0 {
		sig.Leverage = cfg.Leverage
	}
	if sig.TpPercent <= 0 {
		sig.TpPercent = cfg.TpPercent
	}
	if sig.SlPercent <= 0 {
		sig.SlPercent = cfg.SlPercent
	}
}
