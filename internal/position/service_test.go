package position

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/conf"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/market"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/model"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/risk"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/errors"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/errors/ecode"
)

func testRiskConfig() conf.RiskConfig {
	return conf.RiskConfig{
		TradingFraction: 0.10,
		RiskFraction:    0.02,
		FillTimeout:     50 * time.Millisecond,
		PollInterval:    5 * time.Millisecond,
		Symbols: map[string]conf.SymbolSpec{
			"ETH": {SizeDecimals: 3, MinSize: 0.01},
		},
	}
}

// newTestService cache里预置ETH=2000，权益1000
func newTestService(ex *scriptedExchange) *PositionService {
	cache := market.NewCache(1000)
	cache.Track("ETH")
	cache.OnAllMids(map[string]float64{"ETH": 2000})
	sizer := risk.NewSizer(cache, testRiskConfig())
	return NewPositionService(ex, cache, sizer, nil, testRiskConfig(), false)
}

func buySignal() *model.TradeSignal {
	return &model.TradeSignal{
		Passphrase: "x",
		Symbol:     "ETHUSDT",
		Action:     "buy",
		Leverage:   10,
		TpPercent:  2.0,
		SlPercent:  1.0,
	}
}

func TestExecuteHappyPathBuy(t *testing.T) {
	ex := newScriptedExchange()
	ex.script(&model.OrderResult{Filled: &model.Fill{Cloid: "", Price: 2000, Size: 0.1}}, nil)
	svc := newTestService(ex)

	report, err := svc.Execute(context.Background(), buySignal())
	require.NoError(t, err)
	assert.Equal(t, model.StateDone, report.State)
	assert.Equal(t, "ETH", report.Symbol)
	assert.Equal(t, model.Buy, report.Side)
	assert.False(t, report.Deduped)
	assert.InDelta(t, 0.1, report.Size, 1e-9)
	assert.Equal(t, 2000.0, report.EntryPrice)

	// 入场 + 两条保护腿
	require.Len(t, ex.orders, 3)

	entry := ex.orders[0]
	assert.True(t, entry.IsBuy)
	assert.Equal(t, "Ioc", entry.Tif)
	assert.InDelta(t, 2100.0, entry.LimitPx, 1e-9) // 中间价2000上浮5%
	assert.NotEmpty(t, entry.Cloid)
	assert.Nil(t, entry.Trigger)

	tp := ex.orders[1]
	require.NotNil(t, tp.Trigger)
	assert.False(t, tp.IsBuy)
	assert.True(t, tp.ReduceOnly)
	assert.True(t, tp.Trigger.IsMarket)
	assert.Equal(t, "tp", tp.Trigger.Tpsl)
	assert.InDelta(t, 2040.0, tp.Trigger.TriggerPx, 1e-9)

	sl := ex.orders[2]
	require.NotNil(t, sl.Trigger)
	assert.False(t, sl.IsBuy)
	assert.True(t, sl.ReduceOnly)
	assert.Equal(t, "sl", sl.Trigger.Tpsl)
	assert.InDelta(t, 1980.0, sl.Trigger.TriggerPx, 1e-9)

	require.NotNil(t, report.TakeProfit)
	require.NotNil(t, report.StopLoss)
	assert.True(t, report.TakeProfit.Submitted)
	assert.True(t, report.StopLoss.Submitted)
	assert.False(t, report.PartialBracket())
}

func TestExecuteSellMirrorsBrackets(t *testing.T) {
	ex := newScriptedExchange()
	ex.script(&model.OrderResult{Filled: &model.Fill{Price: 2000, Size: 0.1}}, nil)
	svc := newTestService(ex)

	sig := buySignal()
	sig.Action = "sell"
	report, err := svc.Execute(context.Background(), sig)
	require.NoError(t, err)
	assert.Equal(t, model.Sell, report.Side)

	require.Len(t, ex.orders, 3)
	entry := ex.orders[0]
	assert.False(t, entry.IsBuy)
	assert.InDelta(t, 1900.0, entry.LimitPx, 1e-9) // 中间价2000下浮5%

	// 空头保护腿方向是买入，TP在下SL在上
	assert.True(t, ex.orders[1].IsBuy)
	assert.InDelta(t, 1960.0, ex.orders[1].Trigger.TriggerPx, 1e-9)
	assert.True(t, ex.orders[2].IsBuy)
	assert.InDelta(t, 2020.0, ex.orders[2].Trigger.TriggerPx, 1e-9)
}

func TestExecuteDedup(t *testing.T) {
	ex := newScriptedExchange()
	ex.state.OpenPositions = []model.PositionBrief{{Symbol: "ETH", Size: 0.5}}
	svc := newTestService(ex)

	report, err := svc.Execute(context.Background(), buySignal())
	require.NoError(t, err)
	assert.True(t, report.Deduped)
	assert.Equal(t, model.StateDeduped, report.State)

	// 守卫拦截后不允许有任何交易动作
	assert.Empty(t, ex.orders)
	assert.Empty(t, ex.levCalls)
}

func TestExecutePartialBracketFailure(t *testing.T) {
	ex := newScriptedExchange()
	ex.script(&model.OrderResult{Filled: &model.Fill{Price: 2000, Size: 0.1}}, nil)
	ex.script(&model.OrderResult{Err: "insufficient margin"}, nil) // tp腿被拒
	ex.script(&model.OrderResult{Resting: &model.RestingOrder{Oid: 2}}, nil)
	svc := newTestService(ex)

	report, err := svc.Execute(context.Background(), buySignal())
	// 入场已成交，部分成功不算整体失败
	require.NoError(t, err)
	assert.Equal(t, model.StateDone, report.State)
	assert.False(t, report.TakeProfit.Submitted)
	assert.Contains(t, report.TakeProfit.Error, "insufficient margin")
	assert.True(t, report.StopLoss.Submitted)
	assert.True(t, report.PartialBracket())
	assert.NotEmpty(t, report.Error)
}

func TestExecuteResolutionTimeout(t *testing.T) {
	ex := newScriptedExchange()
	ex.script(&model.OrderResult{Resting: &model.RestingOrder{Oid: 1}}, nil)
	svc := newTestService(ex)

	report, err := svc.Execute(context.Background(), buySignal())
	require.Error(t, err)
	assert.Equal(t, ecode.ErrResolutionTimeout, errors.Code(err))
	assert.Equal(t, model.StateFailed, report.State)

	// 成交未确认绝不挂保护单
	assert.Len(t, ex.orders, 1)
}

func TestExecuteLeverageSyncSkipsRepeat(t *testing.T) {
	ex := newScriptedExchange()
	ex.script(&model.OrderResult{Filled: &model.Fill{Price: 2000, Size: 0.1}}, nil)
	svc := newTestService(ex)

	_, err := svc.Execute(context.Background(), buySignal())
	require.NoError(t, err)

	ex.script(&model.OrderResult{Filled: &model.Fill{Price: 2000, Size: 0.1}}, nil)
	_, err = svc.Execute(context.Background(), buySignal())
	require.NoError(t, err)

	// 杠杆没变，第二次不再调用updateLeverage
	assert.Equal(t, []int{10}, ex.levCalls)

	// 杠杆变化时重新同步
	ex.script(&model.OrderResult{Filled: &model.Fill{Price: 2000, Size: 0.1}}, nil)
	sig := buySignal()
	sig.Leverage = 20
	_, err = svc.Execute(context.Background(), sig)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 20}, ex.levCalls)
}

func TestExecuteExplicitSizeWins(t *testing.T) {
	ex := newScriptedExchange()
	ex.script(&model.OrderResult{Filled: &model.Fill{Price: 2000, Size: 0.5}}, nil)
	svc := newTestService(ex)

	sig := buySignal()
	sig.Size = 0.5
	report, err := svc.Execute(context.Background(), sig)
	require.NoError(t, err)
	assert.Equal(t, 0.5, report.Size)
	assert.Equal(t, 0.5, ex.orders[0].Size)
	assert.False(t, report.SizedByMin)
}

func TestExecuteNoPriceReference(t *testing.T) {
	ex := newScriptedExchange()
	cache := market.NewCache(1000) // 没有任何行情
	sizer := risk.NewSizer(cache, testRiskConfig())
	svc := NewPositionService(ex, cache, sizer, nil, testRiskConfig(), false)

	report, err := svc.Execute(context.Background(), buySignal())
	require.Error(t, err)
	assert.Equal(t, ecode.ErrGateway, errors.Code(err))
	assert.Equal(t, model.StateFailed, report.State)
	assert.Empty(t, ex.orders)
}

func TestExecuteReferencePriceFallback(t *testing.T) {
	ex := newScriptedExchange()
	ex.script(&model.OrderResult{Filled: &model.Fill{Price: 1999, Size: 0.01}}, nil)
	cache := market.NewCache(1000)
	sizer := risk.NewSizer(cache, testRiskConfig())
	svc := NewPositionService(ex, cache, sizer, nil, testRiskConfig(), false)

	sig := buySignal()
	sig.ReferencePrice = "2000.5"
	report, err := svc.Execute(context.Background(), sig)
	require.NoError(t, err)
	// 行情缺失时入场限价基于信号参考价，仓位降级到最小量
	assert.InDelta(t, 2000.5*1.05, ex.orders[0].LimitPx, 1e-9)
	assert.True(t, report.SizedByMin)
}

func TestExecuteInvalidSignal(t *testing.T) {
	ex := newScriptedExchange()
	svc := newTestService(ex)

	sig := buySignal()
	sig.Action = "hold"
	report, err := svc.Execute(context.Background(), sig)
	require.Error(t, err)
	assert.Equal(t, ecode.ErrValidation, errors.Code(err))
	assert.Equal(t, model.StateFailed, report.State)
	assert.Empty(t, ex.orders)
}

// fixedExchange 无内部状态也无锁的网关桩，并发调用之间不产生任何同步关系
type fixedExchange struct{}

func (fixedExchange) AccountState(context.Context) (*model.AccountState, error) {
	return &model.AccountState{Equity: 1000}, nil
}

func (fixedExchange) SetLeverage(context.Context, string, int, bool) error { return nil }

func (fixedExchange) PlaceOrder(_ context.Context, o *model.Order) (*model.OrderResult, error) {
	return &model.OrderResult{Filled: &model.Fill{Price: o.LimitPx, Size: o.Size}}, nil
}

func (fixedExchange) RecentFills(context.Context) ([]model.Fill, error) { return nil, nil }

// 不同币的信号并发执行：按币的锁互不相干，跨币共享的杠杆表必须自己保证并发安全
// 用go test -race跑
func TestExecuteConcurrentSymbols(t *testing.T) {
	cfg := testRiskConfig()
	cfg.Symbols["BTC"] = conf.SymbolSpec{SizeDecimals: 5, MinSize: 0.0001}
	cache := market.NewCache(1000)
	cache.Track("ETH")
	cache.Track("BTC")
	cache.OnAllMids(map[string]float64{"ETH": 2000, "BTC": 60000})
	svc := NewPositionService(fixedExchange{}, cache, risk.NewSizer(cache, cfg), nil, cfg, false)

	var wg sync.WaitGroup
	for _, symbol := range []string{"ETHUSDT", "BTCUSDT"} {
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(symbol string, lev int) {
				defer wg.Done()
				sig := buySignal()
				sig.Symbol = symbol
				sig.Leverage = lev // 杠杆轮换，保证读写两条路径都被打到
				report, err := svc.Execute(context.Background(), sig)
				assert.NoError(t, err)
				assert.Equal(t, model.StateDone, report.State)
			}(symbol, 5+i%3)
		}
	}
	wg.Wait()
}
