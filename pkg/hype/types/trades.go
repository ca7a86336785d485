package types

// 用户已成交的订单
type UserFillOrder struct {
	ClosedPnl     string `json:"closedPnl"`
	Coin          string `json:"coin"`
	Crossed       bool   `json:"crossed"`
	Dir           string `json:"dir"`
	Hash          string `json:"hash"`
	Oid           int64  `json:"oid"`
	Px            string `json:"px"`
	Side          string `json:"side"` // "B" 买 / "A" 卖
	StartPosition string `json:"startPosition"`
	Sz            string `json:"sz"`
	Time          int64  `json:"time"`
	Fee           string `json:"fee"`
	FeeToken      string `json:"feeToken"`
	Tid           int64  `json:"tid"`
}
