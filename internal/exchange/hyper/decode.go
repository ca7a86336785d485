package hyper

import (
	"time"

	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/model"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/hype/rest"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/hype/types"
)

// decodeOrderResult 把 /exchange 响应的第一个status解析为类型化结果
// 嵌套结构只在这里解析一次，上层不再接触原始json
func decodeOrderResult(resp *types.ExchangeResponse, cloid string) *model.OrderResult {
	if resp == nil {
		return &model.OrderResult{Err: "empty exchange response"}
	}
	if resp.Status != "ok" {
		return &model.OrderResult{Err: "exchange status: " + resp.Status}
	}
	statuses := resp.Response.Data.Statuses
	if len(statuses) == 0 {
		return &model.OrderResult{Err: "exchange response has no statuses"}
	}

	st := statuses[0]
	switch {
	case st.Error != "":
		return &model.OrderResult{Err: st.Error}
	case st.Filled != nil:
		return &model.OrderResult{Filled: &model.Fill{
			Cloid: cloid,
			Oid:   st.Filled.Oid,
			Price: rest.ParseStringToFloat(st.Filled.AvgPx),
			Size:  rest.ParseStringToFloat(st.Filled.TotalSz),
			Time:  time.Now(),
		}}
	case st.Resting != nil:
		return &model.OrderResult{Resting: &model.RestingOrder{Oid: st.Resting.Oid}}
	default:
		return &model.OrderResult{Err: "unrecognized order status"}
	}
}
