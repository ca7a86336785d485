package model

import "time"

type OrderSide string

const (
	Buy  OrderSide = "buy"
	Sell OrderSide = "sell"
)

// 触发单参数，止盈止损共用
type TriggerSpec struct {
	TriggerPx float64
	IsMarket  bool
	Tpsl      string // "tp" 或 "sl"
}

// Order 一次交易所下单请求（入场单或保护单）
type Order struct {
	Symbol     string // 已归一化的币名，BTC / ETH
	IsBuy      bool
	Size       float64
	LimitPx    float64
	Tif        string       // 限价单有效方式，入场用Ioc
	Trigger    *TriggerSpec // 非空表示触发单
	ReduceOnly bool
	Cloid      string // 客户端订单id，用于成交关联
}

// Fill 一笔已确认的成交
type Fill struct {
	Cloid string
	Oid   int64
	Price float64
	Size  float64
	Time  time.Time
}

// OrderResult 下单响应，网关边界一次性解码为类型化结果
// Filled与Resting互斥；都为空且Err非空表示交易所拒单
type OrderResult struct {
	Filled  *Fill
	Resting *RestingOrder
	Err     string
}

type RestingOrder struct {
	Oid int64
}

func (r *OrderResult) Ok() bool {
	return r != nil && r.Err == ""
}

// PositionBrief 当前持仓的摘要，仅用于dedup守卫检查
type PositionBrief struct {
	Symbol   string
	Size     float64 // 带符号，负数为空头
	EntryPx  float64
	Leverage int
}

// AccountState 账户即时状态，每个信号处理时重新查询，不做缓存
type AccountState struct {
	Equity        float64
	OpenPositions []PositionBrief
}

// HasPosition 判断symbol是否已有未平仓位
func (a *AccountState) HasPosition(symbol string) bool {
	for _, p := range a.OpenPositions {
		if p.Symbol == symbol && p.Size != 0 {
			return true
		}
	}
	return false
}
