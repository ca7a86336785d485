package types

// /exchange 下单与调杠杆的wire结构
// 字段名遵循Hyperliquid的短键：a资产id b买卖 p价格 s数量 r只减仓 t订单类型 c客户端订单id
// msgpack标签用于签名哈希，字段声明顺序必须和官方SDK一致，动一行签名就全错

type LimitOrderType struct {
	Tif string `json:"tif" msgpack:"tif"` // Gtc / Ioc / Alo
}

type TriggerOrderType struct {
	TriggerPx string `json:"triggerPx" msgpack:"triggerPx"`
	IsMarket  bool   `json:"isMarket" msgpack:"isMarket"`
	Tpsl      string `json:"tpsl" msgpack:"tpsl"` // "tp" 或 "sl"
}

type OrderType struct {
	Limit   *LimitOrderType   `json:"limit,omitempty" msgpack:"limit,omitempty"`
	Trigger *TriggerOrderType `json:"trigger,omitempty" msgpack:"trigger,omitempty"`
}

type OrderWire struct {
	Asset      int       `json:"a" msgpack:"a"`
	IsBuy      bool      `json:"b" msgpack:"b"`
	LimitPx    string    `json:"p" msgpack:"p"`
	Sz         string    `json:"s" msgpack:"s"`
	ReduceOnly bool      `json:"r" msgpack:"r"`
	Type       OrderType `json:"t" msgpack:"t"`
	Cloid      string    `json:"c,omitempty" msgpack:"c,omitempty"`
}

type OrderAction struct {
	Type     string      `json:"type" msgpack:"type"` // "order"
	Orders   []OrderWire `json:"orders" msgpack:"orders"`
	Grouping string      `json:"grouping" msgpack:"grouping"` // "na"
}

type UpdateLeverageAction struct {
	Type     string `json:"type" msgpack:"type"` // "updateLeverage"
	Asset    int    `json:"asset" msgpack:"asset"`
	IsCross  bool   `json:"isCross" msgpack:"isCross"`
	Leverage int    `json:"leverage" msgpack:"leverage"`
}

// /exchange 返回结构，statuses与提交的orders一一对应
// 每个status是 filled / resting / error 三者之一，在网关边界一次性解析为类型化结果
type FilledStatus struct {
	TotalSz string `json:"totalSz"`
	AvgPx   string `json:"avgPx"`
	Oid     int64  `json:"oid"`
}

type RestingStatus struct {
	Oid   int64  `json:"oid"`
	Cloid string `json:"cloid,omitempty"`
}

type OrderStatus struct {
	Filled  *FilledStatus  `json:"filled,omitempty"`
	Resting *RestingStatus `json:"resting,omitempty"`
	Error   string         `json:"error,omitempty"`
}

type ExchangeResponseData struct {
	Statuses []OrderStatus `json:"statuses"`
}

type ExchangeResponseInner struct {
	Type string               `json:"type"`
	Data ExchangeResponseData `json:"data"`
}

type ExchangeResponse struct {
	Status   string                `json:"status"` // "ok" / "err"
	Response ExchangeResponseInner `json:"response"`
}
