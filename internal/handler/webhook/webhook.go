package webhook

import (
	"github.com/gin-gonic/gin"

	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/model"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/webhook"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/errors"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/errors/ecode"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/response"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/validator"
)

type Handler struct {
	receiver *webhook.Receiver
}

func NewHandler(receiver *webhook.Receiver) *Handler {
	return &Handler{receiver: receiver}
}

// HandlerWebhook TradingView告警入口
// 执行是同步的，响应体里带完整的执行报告
func (h *Handler) HandlerWebhook() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var sig model.TradeSignal
		if err := ctx.ShouldBindJSON(&sig); err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.ErrBind, validator.Translate(err)), nil)
			return
		}

		report, err := h.receiver.Handle(ctx.Request.Context(), &sig)
		if err != nil {
			// 报告里带着失败前已经走到的状态，一并返回
			response.JSON(ctx, err, report)
			return
		}
		response.JSON(ctx, nil, report)
	}
}
