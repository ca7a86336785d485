package model

import (
	"errors"
	"strings"
)

/*
来源于TradingView告警的外部数据

	{
	  "passphrase": "****",
	  "symbol": "ETHUSDT",
	  "action": "buy",
	  "leverage": 10,
	  "size": 0.1,
	  "tp_percent": 2.0,
	  "sl_percent": 1.0,
	  "reference_price": "2000.5"
	}
*/
type TradeSignal struct {
	Passphrase     string  `json:"passphrase" binding:"required"`
	Symbol         string  `json:"symbol" binding:"required"`     // BTCUSDT / ETHUSD / BTCUSDT.P
	Action         string  `json:"action" binding:"required"`     // buy / sell
	Leverage       int     `json:"leverage"`                      // 杠杆倍数，缺省时从tradecfg回填
	Size           float64 `json:"size"`                          // 显式下单数量，0表示由sizer计算
	TpPercent      float64 `json:"tp_percent"`                    // 止盈比例（价格距离百分数）
	SlPercent      float64 `json:"sl_percent"`                    // 止损比例
	ReferencePrice string  `json:"reference_price"`               // 信号源参考价，行情缺失时兜底
}

const (
	ActionBuy  = "buy"
	ActionSell = "sell"
)

func (s *TradeSignal) IsBuy() bool {
	return strings.EqualFold(s.Action, ActionBuy)
}

// Validate 结构校验，不通过的信号在任何交易所调用之前被拒绝
func (s *TradeSignal) Validate() error {
	action := strings.ToLower(s.Action)
	if action != ActionBuy && action != ActionSell {
		return errors.New("action must be buy or sell")
	}
	if strings.TrimSpace(s.Symbol) == "" {
		return errors.New("symbol is empty")
	}
	if s.Leverage <= 0 {
		return errors.New("leverage must be positive")
	}
	if s.TpPercent <= 0 {
		return errors.New("tp_percent must be positive")
	}
	if s.SlPercent <= 0 {
		return errors.New("sl_percent must be positive")
	}
	if s.Size < 0 {
		return errors.New("size must not be negative")
	}
	return nil
}
