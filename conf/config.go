package conf

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// 配置加载（API密钥等），敏感项优先读环境变量

type WebhookConfig struct {
	Passphrase string `yaml:"passphrase"` // TradingView告警里带的共享口令
}

type HyperliquidConfig struct {
	BaseURL        string `yaml:"base_url"`
	WsURL          string `yaml:"ws_url"`
	AccountAddress string `yaml:"account_address"`
	SecretKey      string `yaml:"secret_key"`
	VaultAddress   string `yaml:"vault_address"`
	Isolated       bool   `yaml:"isolated"` // 逐仓模式调杠杆
}

type FrontendConfig struct {
	ApiKey string `yaml:"api_key"` // 前端配置接口的鉴权key
}

type SymbolSpec struct {
	SizeDecimals int     `yaml:"size_decimals"` // 下单数量精度
	MinSize      float64 `yaml:"min_size"`      // 最小下单量
}

type RiskConfig struct {
	TradingFraction float64               `yaml:"trading_fraction"` // 用于交易的资金比例，默认0.10
	RiskFraction    float64               `yaml:"risk_fraction"`    // 单笔风险比例，默认0.02
	FillTimeout     time.Duration         `yaml:"fill_timeout"`     // 成交确认超时，默认10s
	PollInterval    time.Duration         `yaml:"poll_interval"`    // 成交轮询间隔，默认1s
	Symbols         map[string]SymbolSpec `yaml:"symbols"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	FileName   string `yaml:"file-name"`
	TimeFormat string `yaml:"time-format"`
	MaxSize    int    `yaml:"max-size"`
	MaxBackups int    `yaml:"max-backups"`
	MaxAge     int    `yaml:"max-age"`
	Compress   bool   `yaml:"compress"`
	LocalTime  bool   `yaml:"local-time"`
	Console    bool   `yaml:"console"`
}

type Db struct {
	Enabled  bool   `yaml:"enabled"`
	DbName   string `yaml:"dbname"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type Config struct {
	AppName      string `yaml:"app_name"`
	Listen       string `yaml:"listen"`
	Mode         string `yaml:"mode"` // gin启动模式
	Language     string `yaml:"language"`
	MaxPingCount int    `yaml:"max-ping-count"`

	Webhook     WebhookConfig     `yaml:"webhook"`
	Hyperliquid HyperliquidConfig `yaml:"hyperliquid"`
	Frontend    FrontendConfig    `yaml:"frontend"`
	Risk        RiskConfig        `yaml:"risk"`
	Log         LogConfig         `yaml:"log"`
	Db          Db                `yaml:"database"`
}

var AppConfig Config

func LoadConfig(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("Read config file error %w", err)
	}
	if err := yaml.Unmarshal(data, &AppConfig); err != nil {
		return fmt.Errorf("Unmarshal config yaml error: %w", err)
	}

	// 敏感配置允许环境变量覆盖，便于部署时不落盘
	if v := os.Getenv("HYPERLIQUID_SECRET_KEY"); v != "" {
		AppConfig.Hyperliquid.SecretKey = v
	}
	if v := os.Getenv("HYPERLIQUID_ACCOUNT_ADDRESS"); v != "" {
		AppConfig.Hyperliquid.AccountAddress = v
	}
	if v := os.Getenv("TRADINGVIEW_PASSPHRASE"); v != "" {
		AppConfig.Webhook.Passphrase = v
	}
	if v := os.Getenv("FRONTEND_API_KEY"); v != "" {
		AppConfig.Frontend.ApiKey = v
	}

	AppConfig.applyDefaults()
	return nil
}

func (c *Config) applyDefaults() {
	if c.Listen == "" {
		c.Listen = ":8090"
	}
	if c.MaxPingCount == 0 {
		c.MaxPingCount = 10
	}
	if c.Hyperliquid.BaseURL == "" {
		c.Hyperliquid.BaseURL = "https://api.hyperliquid-testnet.xyz"
	}
	if c.Hyperliquid.WsURL == "" {
		c.Hyperliquid.WsURL = "wss://api.hyperliquid-testnet.xyz/ws"
	}
	if c.Risk.TradingFraction <= 0 {
		c.Risk.TradingFraction = 0.10
	}
	if c.Risk.RiskFraction <= 0 {
		c.Risk.RiskFraction = 0.02
	}
	if c.Risk.FillTimeout <= 0 {
		c.Risk.FillTimeout = 10 * time.Second
	}
	if c.Risk.PollInterval <= 0 {
		c.Risk.PollInterval = time.Second
	}
	if c.Risk.Symbols == nil {
		c.Risk.Symbols = map[string]SymbolSpec{
			"BTC": {SizeDecimals: 3, MinSize: 0.001},
			"ETH": {SizeDecimals: 3, MinSize: 0.01},
		}
	}
}
