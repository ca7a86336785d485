package main

import (
	"context"
	"flag"

	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/conf"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/logger"
)

// 启动服务（监听TradingView webhook）

/*
测试

curl -X POST http://localhost:8090/webhook \
  -H "Content-Type: application/json" \
  -d '{"passphrase":"****","symbol":"ETHUSDT","action":"buy","leverage":10,"tp_percent":2.0,"sl_percent":1.0,"reference_price":"2000.5"}'
*/

func main() {
	configPath := flag.String("c", "conf/config.yaml", "配置文件路径")
	flag.Parse()

	// 加载配置文件
	if err := conf.LoadConfig(*configPath); err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	cfg := conf.AppConfig
	logger.Init(logger.Options{
		Level:      cfg.Log.Level,
		FileName:   cfg.Log.FileName,
		TimeFormat: cfg.Log.TimeFormat,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
		LocalTime:  cfg.Log.LocalTime,
		Console:    cfg.Log.Console,
	})
	defer logger.Sync()

	ctx := context.Background()
	apiRouter, cleanup, err := InitRouter(ctx)
	if err != nil {
		logger.Fatalf("Failed to init: %v", err)
	}

	srv := NewServer(&conf.AppConfig)
	srv.RegisterOnShutdown(cleanup)
	srv.Run(apiRouter)
}
