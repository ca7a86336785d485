package execution

import (
	"github.com/gin-gonic/gin"

	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/dao"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/model"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/errors"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/errors/ecode"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/response"
)

// 执行审计记录的查询接口，只在开启落库时注册

type Handler struct {
	d *dao.ExecutionDao
}

func NewHandler(d *dao.ExecutionDao) *Handler {
	return &Handler{d: d}
}

// ExecutionGetLast 某币最近一次执行结果
func (h *Handler) ExecutionGetLast() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		symbol := model.NormalizeSymbol(ctx.Param("symbol"))
		if symbol == "" {
			response.JSON(ctx, errors.New(ecode.ErrValidation, "symbol is empty"), nil)
			return
		}
		rec, err := h.d.ExecutionGetLast(ctx, symbol)
		if err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.ErrInternal, "query execution record"), nil)
			return
		}
		response.JSON(ctx, nil, rec)
	}
}
