package router

import (
	"github.com/gin-gonic/gin"

	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/conf"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/handler/execution"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/handler/ping"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/handler/tradecfg"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/handler/webhook"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/middleware"
)

type ApiRouter struct {
	webhookHandler *webhook.Handler
	cfgHandler     *tradecfg.Handler
	execHandler    *execution.Handler // 未开启落库时为nil
}

func NewApiRouter(wh *webhook.Handler, ch *tradecfg.Handler, eh *execution.Handler) *ApiRouter {
	return &ApiRouter{webhookHandler: wh, cfgHandler: ch, execHandler: eh}
}

func (api *ApiRouter) Load(g *gin.Engine) {
	g.GET("/ping", ping.Ping())

	// TradingView告警入口，鉴权走body里的passphrase
	g.POST("/webhook", api.webhookHandler.HandlerWebhook())

	base := g.Group("/api/v1")

	c := base.Group("/config", middleware.ApiKeyAuth(conf.AppConfig.Frontend.ApiKey))
	{
		c.GET("", api.cfgHandler.ConfigGetAll())
		c.GET("/:symbol", api.cfgHandler.ConfigGet())
		c.POST("/:symbol", api.cfgHandler.ConfigUpdate())
	}

	if api.execHandler != nil {
		e := base.Group("/executions", middleware.ApiKeyAuth(conf.AppConfig.Frontend.ApiKey))
		{
			e.GET("/:symbol/last", api.execHandler.ExecutionGetLast())
		}
	}
}
