package tradecfg

import (
	"github.com/gin-gonic/gin"

	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/model"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/tradecfg"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/errors"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/errors/ecode"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/response"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/validator"
)

// 前端配置接口：按币种查询和修改交易参数

type Handler struct {
	store *tradecfg.Store
}

func NewHandler(store *tradecfg.Store) *Handler {
	return &Handler{store: store}
}

// ConfigGetAll 返回所有币种的当前参数
func (h *Handler) ConfigGetAll() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		response.JSON(ctx, nil, h.store.All())
	}
}

// ConfigGet 返回单个币种的参数，未配置过的返回默认值
func (h *Handler) ConfigGet() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		symbol := model.NormalizeSymbol(ctx.Param("symbol"))
		if symbol == "" {
			response.JSON(ctx, errors.New(ecode.ErrValidation, "symbol is empty"), nil)
			return
		}
		response.JSON(ctx, nil, h.store.Get(symbol))
	}
}

// ConfigUpdate 部分更新单个币种参数，body里没出现的字段保持原值
func (h *Handler) ConfigUpdate() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		symbol := model.NormalizeSymbol(ctx.Param("symbol"))
		if symbol == "" {
			response.JSON(ctx, errors.New(ecode.ErrValidation, "symbol is empty"), nil)
			return
		}
		var req tradecfg.Update
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.ErrBind, validator.Translate(err)), nil)
			return
		}
		response.JSON(ctx, nil, h.store.Apply(symbol, req))
	}
}
