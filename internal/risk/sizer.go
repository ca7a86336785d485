package risk

import (
	"math"

	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/conf"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/logger"
)

// 动态仓位计算
// - 用账户权益的10%作为交易资金
// - 每笔只承担交易资金的2%风险（即总权益的0.2%）
// - 止损距离越大，仓位越小，风险金额恒定

const (
	defaultSizeDecimals = 2
	defaultMinSize      = 0.01
)

// StateReader 仓位计算需要的实时状态读取，由market.Cache实现
type StateReader interface {
	Equity() float64
	PriceOf(symbol string) (float64, bool)
}

type Sizer struct {
	state           StateReader
	tradingFraction float64
	riskFraction    float64
	symbols         map[string]conf.SymbolSpec
}

func NewSizer(state StateReader, cfg conf.RiskConfig) *Sizer {
	return &Sizer{
		state:           state,
		tradingFraction: cfg.TradingFraction,
		riskFraction:    cfg.RiskFraction,
		symbols:         cfg.Symbols,
	}
}

// MinSize 某币的最小下单量
func (s *Sizer) MinSize(symbol string) float64 {
	if spec, ok := s.symbols[symbol]; ok && spec.MinSize > 0 {
		return spec.MinSize
	}
	return defaultMinSize
}

func (s *Sizer) sizeDecimals(symbol string) int {
	if spec, ok := s.symbols[symbol]; ok && spec.SizeDecimals > 0 {
		return spec.SizeDecimals
	}
	return defaultSizeDecimals
}

// ComputeSize 计算下单数量
// 行情缺失或任何中间值不可用时返回最小下单量并打warning——
// 仓位计算的降级绝不能成为有效信号被拒绝的原因，由调用方决定是否继续
// leverage 仅为与保护单计算对称而保留：风险预算以权益计，本身与杠杆无关
func (s *Sizer) ComputeSize(symbol string, slPercent float64, leverage int) (size float64, degraded bool) {
	minSize := s.MinSize(symbol)

	price, ok := s.state.PriceOf(symbol)
	if !ok || price <= 0 {
		logger.Warnf("no live price for %s, using fallback min size %v", symbol, minSize)
		return minSize, true
	}

	equity := s.state.Equity()
	tradingCapital := equity * s.tradingFraction
	riskAmount := tradingCapital * s.riskFraction
	notional := riskAmount / (slPercent / 100)
	quantity := notional / price

	if math.IsNaN(quantity) || math.IsInf(quantity, 0) || quantity <= 0 {
		logger.Warnf("degraded sizing for %s (sl=%v equity=%v price=%v), using min size", symbol, slPercent, equity, price)
		return minSize, true
	}

	// 按币种精度取整，并下限钳制到最小下单量
	scale := math.Pow10(s.sizeDecimals(symbol))
	quantity = math.Round(quantity*scale) / scale
	if quantity < minSize {
		quantity = minSize
	}

	logger.Info("position sized",
		logger.Pair("symbol", symbol),
		logger.Pair("equity", equity),
		logger.Pair("trading_capital", tradingCapital),
		logger.Pair("risk_amount", riskAmount),
		logger.Pair("price", price),
		logger.Pair("leverage", leverage),
		logger.Pair("size", quantity))
	return quantity, false
}
