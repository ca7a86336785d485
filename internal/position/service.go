package position

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cast"
	"go.uber.org/multierr"

	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/conf"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/dao"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/exchange"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/market"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/model"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/risk"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/errors"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/errors/ecode"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/logger"
)

// 市价入场用激进限价模拟，相对最新中间价允许的滑点上限
const entrySlippage = 0.05

// PositionService 信号到下单的执行流水线
// Received -> Deduped | Sizing -> EntrySubmitted -> FillPending -> FillResolved
//          -> BracketsSubmitted -> Done，任何一步失败进入Failed
type PositionService struct {
	ex       exchange.Exchange
	cache    *market.Cache
	sizer    *risk.Sizer
	resolver *FillResolver
	d        *dao.ExecutionDao // 可为nil，落库是尽力而为
	cfg      conf.RiskConfig
	isolated bool

	mu       sync.Mutex
	symLocks map[string]*sync.Mutex // 按币串行，消除守卫检查和下单之间的竞态
	lastLev  map[string]int         // 本会话最后一次设置的杠杆，避免重复调用
}

func NewPositionService(ex exchange.Exchange, cache *market.Cache, sizer *risk.Sizer, d *dao.ExecutionDao, cfg conf.RiskConfig, isolated bool) *PositionService {
	return &PositionService{
		ex:       ex,
		cache:    cache,
		sizer:    sizer,
		resolver: NewFillResolver(ex, cfg.PollInterval),
		d:        d,
		cfg:      cfg,
		isolated: isolated,
		symLocks: make(map[string]*sync.Mutex),
		lastLev:  make(map[string]int),
	}
}

// Execute 处理一条已通过passphrase校验的信号，返回执行摘要
// 返回error时报告里带着已经走到的状态，绝不出现部分成功但无声的结果
func (ps *PositionService) Execute(ctx context.Context, sig *model.TradeSignal) (*model.ExecutionReport, error) {
	report := &model.ExecutionReport{State: model.StateReceived}

	if err := sig.Validate(); err != nil {
		report.State = model.StateFailed
		report.Error = err.Error()
		return report, errors.Wrap(err, ecode.ErrValidation, "invalid signal")
	}

	symbol := model.NormalizeSymbol(sig.Symbol)
	report.Symbol = symbol
	if sig.IsBuy() {
		report.Side = model.Buy
	} else {
		report.Side = model.Sell
	}

	// 先注册关注，否则缓存永远等不到这个币的价格
	ps.cache.Track(symbol)

	// 同一个币的流水线串行执行：两个并发信号不能同时通过守卫检查
	lock := ps.symbolLock(symbol)
	lock.Lock()
	defer lock.Unlock()

	return ps.run(ctx, sig, symbol, report)
}

func (ps *PositionService) run(ctx context.Context, sig *model.TradeSignal, symbol string, report *model.ExecutionReport) (*model.ExecutionReport, error) {
	// 守卫检查：持仓是现查的即时状态，不走缓存
	state, err := ps.ex.AccountState(ctx)
	if err != nil {
		return ps.fail(ctx, report, errors.Wrap(err, ecode.ErrGateway, "query account state"))
	}
	if state.HasPosition(symbol) {
		report.State = model.StateDeduped
		report.Deduped = true
		logger.Infof("position already open for %s, signal ignored", symbol)
		return report, nil
	}

	// 定仓：显式数量优先，否则由sizer根据实时状态计算
	report.State = model.StateSizing
	size := sig.Size
	if size <= 0 {
		var degraded bool
		size, degraded = ps.sizer.ComputeSize(symbol, sig.SlPercent, sig.Leverage)
		report.SizedByMin = degraded
	}
	report.Size = size

	// 杠杆同步：连续信号杠杆没变就不再调用
	if ps.leverageOf(symbol) != sig.Leverage {
		if err := ps.ex.SetLeverage(ctx, symbol, sig.Leverage, ps.isolated); err != nil {
			return ps.fail(ctx, report, errors.Wrap(err, ecode.ErrGateway, "update leverage"))
		}
		ps.rememberLeverage(symbol, sig.Leverage)
		logger.Infof("leverage for %s set to %dx", symbol, sig.Leverage)
	}

	// 入场：激进IOC限价模拟市价，cloid在这里生成并随单提交
	limitPx, err := ps.entryLimitPx(sig, symbol)
	if err != nil {
		return ps.fail(ctx, report, err)
	}
	cloid := newCloid()
	report.Cloid = cloid

	entry := &model.Order{
		Symbol:  symbol,
		IsBuy:   sig.IsBuy(),
		Size:    size,
		LimitPx: limitPx,
		Tif:     "Ioc",
		Cloid:   cloid,
	}
	report.State = model.StateEntrySubmitted
	result, err := ps.ex.PlaceOrder(ctx, entry)
	if err != nil {
		return ps.fail(ctx, report, errors.Wrap(err, ecode.ErrGateway, "submit entry order"))
	}
	if !result.Ok() {
		return ps.fail(ctx, report, errors.Newf(ecode.ErrGateway, "entry order rejected: %s", result.Err))
	}

	// 成交确认：拿不到均价就不挂保护单，入场单可能还活着，歧义必须暴露给调用方
	report.State = model.StateFillPending
	fill, err := ps.resolver.Resolve(ctx, result, cloid, ps.cfg.FillTimeout)
	if err != nil {
		return ps.fail(ctx, report, errors.Wrap(err, ecode.ErrResolutionTimeout,
			"entry fill unconfirmed, order may still be live on the exchange"))
	}
	report.State = model.StateFillResolved
	report.EntryPrice = fill.Price
	logger.Info("entry filled",
		logger.Pair("symbol", symbol),
		logger.Pair("avg_price", fill.Price),
		logger.Pair("size", size))

	// 保护单：两条腿独立提交，一条失败不影响另一条
	tpPx, slPx := BracketPrices(fill.Price, sig.IsBuy(), sig.TpPercent, sig.SlPercent)
	report.State = model.StateBracketsSubmitted
	report.TakeProfit = ps.submitBracket(ctx, symbol, sig, size, tpPx, "tp")
	report.StopLoss = ps.submitBracket(ctx, symbol, sig, size, slPx, "sl")

	var legErr error
	if report.TakeProfit.Error != "" {
		legErr = multierr.Append(legErr, errors.Newf(ecode.ErrGateway, "tp leg: %s", report.TakeProfit.Error))
	}
	if report.StopLoss.Error != "" {
		legErr = multierr.Append(legErr, errors.Newf(ecode.ErrGateway, "sl leg: %s", report.StopLoss.Error))
	}
	if legErr != nil {
		// 已成交的入场不回滚：部分成功按部分成功上报，不吞掉也不整体失败
		report.Error = legErr.Error()
		logger.Errorf("bracket coverage incomplete for %s: %v", symbol, legErr)
	}

	report.State = model.StateDone
	report.FinishedAt = time.Now()
	ps.journal(ctx, sig, report)
	return report, nil
}

// submitBracket 提交一条保护腿：反向、只减仓、触发后市价执行
// 限价就用触发价本身，不使用占位价格
func (ps *PositionService) submitBracket(ctx context.Context, symbol string, sig *model.TradeSignal, size, triggerPx float64, tpsl string) *model.BracketLeg {
	leg := &model.BracketLeg{Price: triggerPx}

	order := &model.Order{
		Symbol:     symbol,
		IsBuy:      !sig.IsBuy(),
		Size:       size,
		LimitPx:    triggerPx,
		ReduceOnly: true,
		Cloid:      newCloid(),
		Trigger: &model.TriggerSpec{
			TriggerPx: triggerPx,
			IsMarket:  true,
			Tpsl:      tpsl,
		},
	}
	result, err := ps.ex.PlaceOrder(ctx, order)
	switch {
	case err != nil:
		leg.Error = err.Error()
	case !result.Ok():
		leg.Error = result.Err
	default:
		leg.Submitted = true
		logger.Infof("%s order placed for %s at %v", tpsl, symbol, triggerPx)
	}
	return leg
}

// entryLimitPx 市价入场的限价上界：实时中间价加滑点，买上浮卖下浮
// 缓存还没有这个币的报价时退回信号源的参考价
func (ps *PositionService) entryLimitPx(sig *model.TradeSignal, symbol string) (float64, error) {
	price, ok := ps.cache.PriceOf(symbol)
	if !ok {
		price = cast.ToFloat64(sig.ReferencePrice)
	}
	if price <= 0 {
		return 0, errors.Newf(ecode.ErrGateway, "no price reference for %s market entry", symbol)
	}
	if sig.IsBuy() {
		return price * (1 + entrySlippage), nil
	}
	return price * (1 - entrySlippage), nil
}

func (ps *PositionService) fail(ctx context.Context, report *model.ExecutionReport, err error) (*model.ExecutionReport, error) {
	report.State = model.StateFailed
	_, report.Error = errors.DecodeErr(err)
	report.FinishedAt = time.Now()
	ps.journal(ctx, nil, report)
	return report, err
}

// journal 落库审计记录，失败只打日志
func (ps *PositionService) journal(ctx context.Context, sig *model.TradeSignal, report *model.ExecutionReport) {
	if ps.d == nil {
		return
	}
	rec := &model.ExecutionRecord{
		Cloid:      report.Cloid,
		Symbol:     report.Symbol,
		Side:       report.Side,
		Size:       report.Size,
		EntryPrice: report.EntryPrice,
		State:      string(report.State),
		Error:      report.Error,
		CreatedAt:  time.Now(),
	}
	if sig != nil {
		rec.Leverage = sig.Leverage
	}
	if report.TakeProfit != nil {
		rec.TP = report.TakeProfit.Price
	}
	if report.StopLoss != nil {
		rec.SL = report.StopLoss.Price
	}
	if err := ps.d.ExecutionCreate(ctx, rec); err != nil {
		logger.Warnf("journal execution record: %v", err)
	}
}

// lastLev是跨币共享的一张表，按币的锁保护不到它，读写都要走ps.mu
func (ps *PositionService) leverageOf(symbol string) int {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.lastLev[symbol]
}

func (ps *PositionService) rememberLeverage(symbol string, lev int) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.lastLev[symbol] = lev
}

func (ps *PositionService) symbolLock(symbol string) *sync.Mutex {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	lock, ok := ps.symLocks[symbol]
	if !ok {
		lock = &sync.Mutex{}
		ps.symLocks[symbol] = lock
	}
	return lock
}

// cloid是0x开头的128位十六进制串，每次提交生成一次并随单携带
func newCloid() string {
	return "0x" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
