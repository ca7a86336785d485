package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/consts"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/errors"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/errors/ecode"
)

// 代表响应给客户端的的一个消息结构，包括错误码，错误信息，响应数据
type ApiResponse struct {
	RequestId string      `json:"request_id"` // 请求的唯一ID
	Code      int         `json:"code"`       // 错误码 0表示无错误
	Message   string      `json:"message"`    // 提示信息
	Data      interface{} `json:"data"`       // 响应数据
}

// 发送json格式数据
// 失败时返回http状态码400，passphrase错误返回401，其余返回200
func JSON(c *gin.Context, err error, data interface{}) {
	code, message := errors.DecodeErr(err)
	var httpStatus int
	switch code {
	case ecode.Success:
		httpStatus = http.StatusOK
	case ecode.RequireAuthErr:
		httpStatus = http.StatusUnauthorized
	default:
		httpStatus = http.StatusBadRequest
	}
	c.JSON(httpStatus, ApiResponse{
		RequestId: c.GetString(consts.RequestId),
		Code:      code,
		Message:   message,
		Data:      data,
	})
}

// token鉴权失败，返回401
func RequireAuthErr(c *gin.Context, err error) {
	message := "unknown error."
	if err != nil {
		message = err.Error()
	}
	c.JSON(http.StatusUnauthorized, ApiResponse{
		RequestId: c.GetString(consts.RequestId),
		Code:      ecode.RequireAuthErr,
		Message:   message,
	})
}

// 请求格式错误，返回400
func BadRequests(c *gin.Context) {
	c.JSON(http.StatusBadRequest, ApiResponse{
		RequestId: c.GetString(consts.RequestId),
		Code:      ecode.ErrBind,
		Message:   ecode.Text(ecode.ErrBind),
	})
}
