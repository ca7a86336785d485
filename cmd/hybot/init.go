package main

import (
	"context"
	"strings"
	"time"

	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/conf"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/dao"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/exchange"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/exchange/hyper"
	executionhandler "github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/handler/execution"
	tradecfghandler "github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/handler/tradecfg"
	webhookhandler "github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/handler/webhook"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/market"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/position"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/risk"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/router"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/tradecfg"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/webhook"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/db"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/hype/rest"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/hype/sign"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/hype/stream"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/logger"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/utils"
)

// 默认账户净值，webData2落地前的保守占位
const defaultEquity = 1000.0

// InitRouter 组装全部依赖：行情缓存、交易所网关、执行流水线、HTTP处理器
// 返回的cleanup在服务shutdown时调用
func InitRouter(ctx context.Context) (Router, func(), error) {
	appCfg := conf.AppConfig

	// 落库审计（可选），未开启时流水线照常工作
	var executionDao *dao.ExecutionDao
	if appCfg.Db.Enabled {
		gdb, err := db.Init(db.Config{
			User:      appCfg.Db.Username,
			Password:  appCfg.Db.Password,
			Host:      appCfg.Db.Host,
			Port:      appCfg.Db.Port,
			DBName:    appCfg.Db.DbName,
			ParseTime: true,
		})
		if err != nil {
			return nil, nil, err
		}
		executionDao = dao.NewExecutionDao(gdb)
	}

	restClient, err := rest.NewHyperliquidRestClient(appCfg.Hyperliquid.BaseURL)
	if err != nil {
		return nil, nil, err
	}
	wsClient, err := stream.NewHyperliquidWebsocketClient(appCfg.Hyperliquid.WsURL)
	if err != nil {
		return nil, nil, err
	}

	// 行情缓存：推送驱动，下单路径上不再同步请求行情
	cache := market.NewCache(defaultEquity)
	for symbol := range appCfg.Risk.Symbols {
		cache.Track(symbol)
	}

	tracker := market.NewTracker(wsClient, cache, appCfg.Hyperliquid.AccountAddress)
	trackerCtx, stopTracker := context.WithCancel(ctx)
	if err := utils.Retry(3, 2*time.Second, true, func() error {
		return tracker.Start(trackerCtx)
	}); err != nil {
		stopTracker()
		return nil, nil, err
	}

	ex, err := buildExchange(ctx, restClient)
	if err != nil {
		stopTracker()
		return nil, nil, err
	}

	sizer := risk.NewSizer(cache, appCfg.Risk)
	ps := position.NewPositionService(ex, cache, sizer, executionDao, appCfg.Risk, appCfg.Hyperliquid.Isolated)

	store := tradecfg.NewStore()
	receiver := webhook.NewReceiver(appCfg.Webhook.Passphrase, store, ps)

	var execHandler *executionhandler.Handler
	if executionDao != nil {
		execHandler = executionhandler.NewHandler(executionDao)
	}
	apiRouter := router.NewApiRouter(
		webhookhandler.NewHandler(receiver),
		tradecfghandler.NewHandler(store),
		execHandler,
	)
	return apiRouter, stopTracker, nil
}

// buildExchange 有密钥就接真实交易所，否则落到模拟盘
func buildExchange(ctx context.Context, restClient *rest.HyperliquidRestClient) (exchange.Exchange, error) {
	hlCfg := conf.AppConfig.Hyperliquid
	if hlCfg.SecretKey == "" {
		logger.Warn("hyperliquid secret key not configured, running in paper mode")
		return exchange.NewSimulatedExchange(defaultEquity), nil
	}

	testnet := strings.Contains(hlCfg.BaseURL, "testnet")
	signer, err := sign.NewWalletSigner(hlCfg.SecretKey, hlCfg.VaultAddress, testnet)
	if err != nil {
		return nil, err
	}

	// 账户地址允许和签名钱包分离（agent钱包模式），未配置时用钱包自身地址
	accountAddress := hlCfg.AccountAddress
	if accountAddress == "" {
		accountAddress = signer.Address()
	}
	return hyper.NewExchange(ctx, restClient, signer, accountAddress, hlCfg.VaultAddress)
}
