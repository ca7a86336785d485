package rest

import "github.com/spf13/cast"

// ParseStringToFloat 交易所返回的数值都是字符串，统一在这里转float64
// 解析失败返回0，由调用方判断是否可用
func ParseStringToFloat(s string) float64 {
	return cast.ToFloat64(s)
}
