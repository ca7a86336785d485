package position

// 保护单定价：百分数是相对成交均价的价格距离，不除以杠杆
// 多头 TP在上 SL在下，空头镜像
func BracketPrices(avgPx float64, isBuy bool, tpPercent, slPercent float64) (tpPx, slPx float64) {
	tp := tpPercent / 100
	sl := slPercent / 100
	if isBuy {
		return avgPx * (1 + tp), avgPx * (1 - sl)
	}
	return avgPx * (1 - tp), avgPx * (1 + sl)
}
