package model

import "strings"

// quote币后缀，按长度从长到短匹配
var quoteSuffixes = []string{"USDT", "USD"}

// NormalizeSymbol 将TradingView的ticker转换为交易所币名
// 例如 BTCUSDT / BTCUSD / BTCUSDT.P / btcusdt -> BTC
// 幂等：已经是币名的输入原样返回
func NormalizeSymbol(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))

	// 永续后缀 .P（TradingView的perp标记）
	s = strings.TrimSuffix(s, ".P")

	for _, q := range quoteSuffixes {
		if strings.HasSuffix(s, q) && len(s) > len(q) {
			return strings.TrimSuffix(s, q)
		}
	}
	// 没匹配到就返回原始值
	return s
}
