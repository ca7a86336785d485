package exchange

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/model"
)

// 模拟交易所，paper模式和单元测试共用
// 入场单按设定价格立即成交，触发单保持resting
type SimulatedExchange struct {
	mu        sync.Mutex
	equity    float64
	prices    map[string]float64
	positions map[string]float64 // symbol -> 带符号仓位
	leverages map[string]int
	fills     []model.Fill
	nextOid   int64
}

func NewSimulatedExchange(equity float64) *SimulatedExchange {
	return &SimulatedExchange{
		equity:    equity,
		prices:    make(map[string]float64),
		positions: make(map[string]float64),
		leverages: make(map[string]int),
		nextOid:   1000,
	}
}

// 设置初始价格
func (s *SimulatedExchange) SetInitialPrice(symbol string, price float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prices[symbol] = price
}

// 预置一个已有仓位，用于验证守卫检查
func (s *SimulatedExchange) SetPosition(symbol string, size float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positions[symbol] = size
}

func (s *SimulatedExchange) AccountState(ctx context.Context) (*model.AccountState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := &model.AccountState{Equity: s.equity}
	for symbol, size := range s.positions {
		if size == 0 {
			continue
		}
		state.OpenPositions = append(state.OpenPositions, model.PositionBrief{
			Symbol:   symbol,
			Size:     size,
			EntryPx:  s.prices[symbol],
			Leverage: s.leverages[symbol],
		})
	}
	return state, nil
}

func (s *SimulatedExchange) SetLeverage(ctx context.Context, symbol string, leverage int, isolated bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leverages[symbol] = leverage
	return nil
}

func (s *SimulatedExchange) PlaceOrder(ctx context.Context, order *model.Order) (*model.OrderResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextOid++

	// 触发单不立即成交
	if order.Trigger != nil {
		return &model.OrderResult{Resting: &model.RestingOrder{Oid: s.nextOid}}, nil
	}

	price, ok := s.prices[order.Symbol]
	if !ok {
		return &model.OrderResult{Err: fmt.Sprintf("no market for %s", order.Symbol)}, nil
	}

	size := order.Size
	if !order.IsBuy {
		size = -size
	}
	s.positions[order.Symbol] += size

	fill := model.Fill{
		Cloid: order.Cloid,
		Oid:   s.nextOid,
		Price: price,
		Size:  order.Size,
		Time:  time.Now(),
	}
	s.fills = append(s.fills, fill)

	return &model.OrderResult{Filled: &fill}, nil
}

func (s *SimulatedExchange) RecentFills(ctx context.Context) ([]model.Fill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Fill, len(s.fills))
	copy(out, s.fills)
	return out, nil
}
