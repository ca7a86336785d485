package webhook

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/conf"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/exchange"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/market"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/position"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/risk"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/tradecfg"
	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/webhook"
)

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := conf.RiskConfig{
		TradingFraction: 0.10,
		RiskFraction:    0.02,
		FillTimeout:     50 * time.Millisecond,
		PollInterval:    5 * time.Millisecond,
		Symbols:         map[string]conf.SymbolSpec{"ETH": {SizeDecimals: 3, MinSize: 0.01}},
	}
	ex := exchange.NewSimulatedExchange(1000)
	ex.SetInitialPrice("ETH", 2000)
	cache := market.NewCache(1000)
	cache.Track("ETH")
	cache.OnAllMids(map[string]float64{"ETH": 2000})
	svc := position.NewPositionService(ex, cache, risk.NewSizer(cache, cfg), nil, cfg, false)
	receiver := webhook.NewReceiver("topsecret", tradecfg.NewStore(), svc)

	g := gin.New()
	g.POST("/webhook", NewHandler(receiver).HandlerWebhook())
	return g
}

func postJSON(g *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w
}

func TestWebhookSuccess(t *testing.T) {
	g := newTestEngine(t)

	w := postJSON(g, `{"passphrase":"topsecret","symbol":"ETHUSDT","action":"buy","leverage":10,"tp_percent":2.0,"sl_percent":1.0}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"state":"done"`)
	assert.Contains(t, w.Body.String(), `"symbol":"ETH"`)
}

func TestWebhookBadPassphrase(t *testing.T) {
	g := newTestEngine(t)

	w := postJSON(g, `{"passphrase":"wrong","symbol":"ETHUSDT","action":"buy","leverage":10,"tp_percent":2.0,"sl_percent":1.0}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWebhookMalformedBody(t *testing.T) {
	g := newTestEngine(t)

	// 缺必填字段
	w := postJSON(g, `{"symbol":"ETHUSDT"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 非法json
	w = postJSON(g, `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
