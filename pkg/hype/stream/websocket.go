package stream

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/hype/types"
)

type HyperliquidWebsocketClient struct {
	websocketUrl string
	conn         *websocket.Conn
	AllMidsChan  chan map[string]float64 // 价格变化的通道
	WebData2Chan chan types.WebData2     // 账户快照变化的通道
	ErrorChan    chan error              // 错误通道
	mutex        sync.Mutex
	lastRequest  time.Time
	done         chan struct{}
	closeOnce    sync.Once
}

func NewHyperliquidWebsocketClient(rawUrl string) (*HyperliquidWebsocketClient, error) {
	if _, err := url.ParseRequestURI(rawUrl); err != nil {
		return nil, errors.New("Invalid websocket URL")
	}
	conn, _, err := websocket.DefaultDialer.Dial(rawUrl, nil)
	if err != nil {
		return nil, err
	}

	client := &HyperliquidWebsocketClient{
		websocketUrl: rawUrl,
		conn:         conn,
		AllMidsChan:  make(chan map[string]float64),
		WebData2Chan: make(chan types.WebData2),
		ErrorChan:    make(chan error),
		done:         make(chan struct{}),
	}

	go func() {
		// 服务端60秒无消息会断开，定期发ping保活
		ticker := time.NewTicker(50 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				client.mutex.Lock()
				pingMessage := map[string]interface{}{
					"method": "ping",
				}
				err := client.sendMessage(pingMessage)
				client.mutex.Unlock()
				if err != nil {
					client.reportError(err)
				}
			case <-client.done:
				return
			}
		}
	}()

	go func() {
		for {
			_, msg, err := client.conn.ReadMessage()
			if err != nil {
				client.reportError(err)
				return
			}

			var response types.GenericMessage
			if err := json.Unmarshal(msg, &response); err != nil {
				client.reportError(err)
				continue
			}

			switch response.Channel {
			case "allMids":
				client.handleAllMidsMessage(msg)
			case "webData2":
				client.handleWebData2Message(msg)
			}
		}
	}()

	return client, nil
}

func (client *HyperliquidWebsocketClient) handleAllMidsMessage(msg json.RawMessage) {
	var midsResponse types.AllMidsMessage
	if err := json.Unmarshal(msg, &midsResponse); err != nil {
		client.reportError(err)
		return
	}

	prices := make(map[string]float64)
	for k, v := range midsResponse.Data.Prices {
		// "@123" 开头的是spot pair索引，永续只看币名
		if len(k) > 0 && k[0] != '@' {
			floatVal, _ := strconv.ParseFloat(v, 64)
			prices[k] = floatVal
		}
	}

	select {
	case client.AllMidsChan <- prices:
	case <-client.done:
	}
}

func (client *HyperliquidWebsocketClient) handleWebData2Message(msg json.RawMessage) {
	var webDataResponse types.WebData2Message
	if err := json.Unmarshal(msg, &webDataResponse); err != nil {
		client.reportError(err)
		return
	}

	select {
	case client.WebData2Chan <- webDataResponse.Data:
	case <-client.done:
	}
}

func (client *HyperliquidWebsocketClient) reportError(err error) {
	select {
	case client.ErrorChan <- err:
	case <-client.done:
	}
}

func (client *HyperliquidWebsocketClient) sendMessage(message interface{}) error {
	// Ensure at least 50ms between requests
	timeSinceLastRequest := time.Since(client.lastRequest)
	if timeSinceLastRequest < 50*time.Millisecond {
		time.Sleep(50*time.Millisecond - timeSinceLastRequest)
	}
	client.lastRequest = time.Now()

	return client.conn.WriteJSON(message)
}

// StreamAllMids 订阅全市场中间价推送
func (client *HyperliquidWebsocketClient) StreamAllMids() error {
	client.mutex.Lock()
	defer client.mutex.Unlock()

	subscriptionMessage := map[string]interface{}{
		"method": "subscribe",
		"subscription": map[string]interface{}{
			"type": "allMids",
		},
	}
	if err := client.sendMessage(subscriptionMessage); err != nil {
		return fmt.Errorf("Subscription error: %w", err)
	}
	return nil
}

// StreamWebData2 订阅指定账户的实时快照（含accountValue）
func (client *HyperliquidWebsocketClient) StreamWebData2(user string) error {
	client.mutex.Lock()
	defer client.mutex.Unlock()

	subscriptionMessage := map[string]interface{}{
		"method": "subscribe",
		"subscription": map[string]interface{}{
			"type": "webData2",
			"user": user,
		},
	}
	if err := client.sendMessage(subscriptionMessage); err != nil {
		return fmt.Errorf("Subscription error: %w", err)
	}
	return nil
}

// Close 停止读写并关闭连接，channel消费方通过done感知退出
func (client *HyperliquidWebsocketClient) Close() error {
	var err error
	client.closeOnce.Do(func() {
		close(client.done)
		err = client.conn.Close()
	})
	return err
}
