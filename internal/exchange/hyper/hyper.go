package hyper

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/model"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/hype/rest"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/hype/types"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/logger"
)

// 成交轮询只回看最近10分钟
const fillLookback = 10 * time.Minute

type assetInfo struct {
	id         int
	szDecimals int
}

// Exchange Hyperliquid网关实现
// 查询走 /info，下单和调杠杆走 /exchange（签名由注入的signer完成）
// 连接在进程入口构造一次并传入，所有流水线实例共享
type Exchange struct {
	rest           *rest.HyperliquidRestClient
	signer         ActionSigner
	accountAddress string
	vaultAddress   string

	assets map[string]assetInfo // 币名 -> 资产下标和数量精度

	mu         sync.Mutex
	oidToCloid map[int64]string // 下单响应学习到的oid->cloid映射，供成交关联
}

func NewExchange(ctx context.Context, restClient *rest.HyperliquidRestClient, signer ActionSigner, accountAddress, vaultAddress string) (*Exchange, error) {
	ex := &Exchange{
		rest:           restClient,
		signer:         signer,
		accountAddress: accountAddress,
		vaultAddress:   vaultAddress,
		assets:         make(map[string]assetInfo),
		oidToCloid:     make(map[int64]string),
	}

	// 资产下标来自meta universe的顺序，启动时拉取一次
	meta, err := restClient.PerpetualsMetadata(ctx)
	if err != nil {
		return nil, fmt.Errorf("load perpetuals metadata: %w", err)
	}
	for i, item := range meta.Universe {
		ex.assets[item.Name] = assetInfo{id: i, szDecimals: item.SzDecimals}
	}

	return ex, nil
}

// SizeDecimals 返回某币的下单数量精度，未知币返回false
func (ex *Exchange) SizeDecimals(symbol string) (int, bool) {
	info, ok := ex.assets[symbol]
	if !ok {
		return 0, false
	}
	return info.szDecimals, true
}

func (ex *Exchange) AccountState(ctx context.Context) (*model.AccountState, error) {
	data, err := ex.rest.PerpetualsAccountSummary(ctx, ex.accountAddress)
	if err != nil {
		return nil, err
	}

	state := &model.AccountState{
		Equity: rest.ParseStringToFloat(data.MarginSummary.AccountValue),
	}
	for _, ap := range data.AssetPositions {
		szi := rest.ParseStringToFloat(ap.Position.Szi)
		if szi == 0 {
			continue
		}
		state.OpenPositions = append(state.OpenPositions, model.PositionBrief{
			Symbol:   ap.Position.Coin,
			Size:     szi,
			EntryPx:  rest.ParseStringToFloat(ap.Position.EntryPx),
			Leverage: ap.Position.Leverage.Value,
		})
	}
	return state, nil
}

func (ex *Exchange) SetLeverage(ctx context.Context, symbol string, leverage int, isolated bool) error {
	info, ok := ex.assets[symbol]
	if !ok {
		return fmt.Errorf("unknown asset: %s", symbol)
	}

	action := types.UpdateLeverageAction{
		Type:     "updateLeverage",
		Asset:    info.id,
		IsCross:  !isolated,
		Leverage: leverage,
	}
	resp, err := ex.submit(ctx, action)
	if err != nil {
		return err
	}
	if resp.Status != "ok" {
		return fmt.Errorf("updateLeverage rejected: %s", resp.Status)
	}
	return nil
}

func (ex *Exchange) PlaceOrder(ctx context.Context, order *model.Order) (*model.OrderResult, error) {
	info, ok := ex.assets[order.Symbol]
	if !ok {
		return nil, fmt.Errorf("unknown asset: %s", order.Symbol)
	}

	wire := types.OrderWire{
		Asset:      info.id,
		IsBuy:      order.IsBuy,
		LimitPx:    formatPx(order.LimitPx, info.szDecimals),
		Sz:         formatSz(order.Size, info.szDecimals),
		ReduceOnly: order.ReduceOnly,
		Cloid:      order.Cloid,
	}
	if order.Trigger != nil {
		wire.Type = types.OrderType{Trigger: &types.TriggerOrderType{
			TriggerPx: formatPx(order.Trigger.TriggerPx, info.szDecimals),
			IsMarket:  order.Trigger.IsMarket,
			Tpsl:      order.Trigger.Tpsl,
		}}
	} else {
		tif := order.Tif
		if tif == "" {
			tif = "Ioc"
		}
		wire.Type = types.OrderType{Limit: &types.LimitOrderType{Tif: tif}}
	}

	action := types.OrderAction{
		Type:     "order",
		Orders:   []types.OrderWire{wire},
		Grouping: "na",
	}
	resp, err := ex.submit(ctx, action)
	if err != nil {
		return nil, err
	}

	result := decodeOrderResult(resp, order.Cloid)
	ex.rememberCloid(result, order.Cloid)
	return result, nil
}

func (ex *Exchange) RecentFills(ctx context.Context) ([]model.Fill, error) {
	start := time.Now().Add(-fillLookback).UnixMilli()
	orders, err := ex.rest.UserFillsByTime(ctx, ex.accountAddress, start, 0)
	if err != nil {
		return nil, err
	}

	ex.mu.Lock()
	defer ex.mu.Unlock()

	fills := make([]model.Fill, 0, len(orders))
	for _, o := range orders {
		fills = append(fills, model.Fill{
			Cloid: ex.oidToCloid[o.Oid],
			Oid:   o.Oid,
			Price: rest.ParseStringToFloat(o.Px),
			Size:  rest.ParseStringToFloat(o.Sz),
			Time:  time.UnixMilli(o.Time),
		})
	}
	return fills, nil
}

func (ex *Exchange) submit(ctx context.Context, action interface{}) (*types.ExchangeResponse, error) {
	nonce := time.Now().UnixMilli()
	signature, err := ex.signer.Sign(action, nonce)
	if err != nil {
		return nil, fmt.Errorf("sign action: %w", err)
	}
	return ex.rest.ExchangeAction(ctx, action, nonce, signature, ex.vaultAddress)
}

// 成交回报里只有oid，把下单时的cloid记下来供RecentFills反查
func (ex *Exchange) rememberCloid(result *model.OrderResult, cloid string) {
	if cloid == "" || result == nil {
		return
	}
	var oid int64
	switch {
	case result.Filled != nil:
		oid = result.Filled.Oid
	case result.Resting != nil:
		oid = result.Resting.Oid
	default:
		return
	}
	ex.mu.Lock()
	ex.oidToCloid[oid] = cloid
	if len(ex.oidToCloid) > 4096 {
		// 容量兜底，正常交易量远达不到
		logger.Warnf("oid->cloid map unexpectedly large, resetting")
		ex.oidToCloid = map[int64]string{oid: cloid}
	}
	ex.mu.Unlock()
}

// formatPx 价格最多5位有效数字，且小数位不超过 6-szDecimals
func formatPx(px float64, szDecimals int) string {
	maxDecimals := 6 - szDecimals
	if maxDecimals < 0 {
		maxDecimals = 0
	}
	rounded := roundSigFigs(px, 5)
	scale := math.Pow10(maxDecimals)
	rounded = math.Round(rounded*scale) / scale
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

func formatSz(sz float64, szDecimals int) string {
	scale := math.Pow10(szDecimals)
	return strconv.FormatFloat(math.Round(sz*scale)/scale, 'f', -1, 64)
}

func roundSigFigs(v float64, figs int) float64 {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	d := math.Ceil(math.Log10(math.Abs(v)))
	power := float64(figs) - d
	magnitude := math.Pow(10, power)
	return math.Round(v*magnitude) / magnitude
}
