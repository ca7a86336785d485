package consts

const (
	// RequestId 请求id名称
	RequestId = "request_id"

	// 前端配置接口的鉴权头
	ApiKeyHeader = "X-API-Key"
	// Authorization Bearer 前缀
	BearerPrefix = "Bearer "

	TimeLayout = "2006-01-02 15:04:05"
)
