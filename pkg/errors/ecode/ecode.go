package ecode

// 错误码定义，0表示无错误
// 1xxxx 为请求边界错误，2xxxx 为交易所网关相关错误
const (
	Success = 0

	ErrInternal    = 10001 // 内部错误
	ErrValidation  = 10002 // 信号参数校验失败
	RequireAuthErr = 10003 // passphrase 校验失败
	ErrBind        = 10004 // 请求体解析失败

	ErrGateway           = 20001 // 交易所调用失败（网络、签名、拒单）
	ErrResolutionTimeout = 20002 // 成交确认超时，入场单状态未知
)

var messages = map[int]string{
	Success:              "ok",
	ErrInternal:          "internal error",
	ErrValidation:        "invalid signal",
	RequireAuthErr:       "invalid passphrase",
	ErrBind:              "invalid request body",
	ErrGateway:           "exchange gateway error",
	ErrResolutionTimeout: "fill resolution timeout",
}

// Text 返回错误码对应的默认提示
func Text(code int) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return messages[ErrInternal]
}
