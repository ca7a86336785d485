package exchange

import (
	"context"

	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/model"
)

// Exchange 交易所网关的窄接口，流水线只依赖这里
// 真实实现见 exchange/hyper，测试与paper模式使用 SimulatedExchange
type Exchange interface {
	// 账户即时状态：权益 + 当前持仓
	AccountState(ctx context.Context) (*model.AccountState, error)
	// 调整某个币的杠杆倍数
	SetLeverage(ctx context.Context, symbol string, leverage int, isolated bool) error
	// 下单
	PlaceOrder(ctx context.Context, order *model.Order) (*model.OrderResult, error)
	// 最近成交记录，用于轮询式成交确认
	RecentFills(ctx context.Context) ([]model.Fill, error)
}
