package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/hype/types"
)

type HyperliquidRestClient struct {
	url        string
	httpClient *http.Client
}

func NewHyperliquidRestClient(rawUrl string) (*HyperliquidRestClient, error) {
	parsedUrl, err := url.Parse(rawUrl)
	if err != nil || parsedUrl.Scheme == "" || parsedUrl.Host == "" {
		return nil, fmt.Errorf("invalid URL: %s", rawUrl)
	}
	if len(parsedUrl.Path) > 0 && parsedUrl.Path[len(parsedUrl.Path)-1:] == "/" {
		parsedUrl.Path = parsedUrl.Path[:len(parsedUrl.Path)-1]
	}

	return &HyperliquidRestClient{
		url:        parsedUrl.String(),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}, nil
}

const (
	maxRetries  = 5
	backoffBase = 2 * time.Second
)

// post 发送请求，网络错误和429会重试并指数退避，其余错误立即返回
func (rest *HyperliquidRestClient) post(ctx context.Context, endpoint string, reqBodyJSON []byte, result interface{}) error {
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		// 请求体读完后不能复用，每次循环重新构建请求
		req, err := http.NewRequestWithContext(ctx, "POST", rest.url+endpoint, bytes.NewBuffer(reqBodyJSON))
		if err != nil {
			return fmt.Errorf("failed to create new request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := rest.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("failed to execute request (network error): %w", err)
		} else {
			byteData, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()

			switch {
			case resp.StatusCode == http.StatusOK:
				if readErr != nil {
					return fmt.Errorf("failed to read response body: %w", readErr)
				}
				if err := json.Unmarshal(byteData, result); err != nil {
					return fmt.Errorf("failed to unmarshal response: %w", err)
				}
				return nil
			case resp.StatusCode == http.StatusTooManyRequests:
				lastErr = fmt.Errorf("received 429 Too Many Requests on attempt %d", attempt+1)
			default:
				return fmt.Errorf("received non-OK HTTP status: %s", resp.Status)
			}
		}

		if attempt == maxRetries-1 {
			return fmt.Errorf("API failed after %d retries. Last error: %w", maxRetries, lastErr)
		}

		waitTime := backoffBase * time.Duration(1<<attempt)
		select {
		case <-time.After(waitTime):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("unexpected exit from retry loop")
}

// infoRequest /info 接口统一入口，请求体形如 {"type": requestType, ...}
func (rest *HyperliquidRestClient) infoRequest(ctx context.Context, requestType string, additionalParams map[string]interface{}, result interface{}) error {
	reqBody := map[string]interface{}{"type": requestType}
	for key, value := range additionalParams {
		reqBody[key] = value
	}
	reqBodyJSON, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}
	return rest.post(ctx, "/info", reqBodyJSON, result)
}

// PerpetualsMetadata 获取永续合约元数据，包含每个币的szDecimals和资产下标
func (rest *HyperliquidRestClient) PerpetualsMetadata(ctx context.Context) (types.Universe, error) {
	var metadata types.Universe
	if err := rest.infoRequest(ctx, "meta", nil, &metadata); err != nil {
		return types.Universe{}, err
	}
	return metadata, nil
}

// PerpetualsAccountSummary 获取账号信息：永续合约持仓、保证金汇总
func (rest *HyperliquidRestClient) PerpetualsAccountSummary(ctx context.Context, user string) (types.MarginData, error) {
	var marginData types.MarginData
	params := map[string]interface{}{"user": user}
	if err := rest.infoRequest(ctx, "clearinghouseState", params, &marginData); err != nil {
		return types.MarginData{}, err
	}
	return marginData, nil
}

// UserFillsByTime 查询 [startTime, endTime) 内用户的成交记录
// 成交确认轮询只回看几分钟，单次调用足够，不做分页追溯
func (rest *HyperliquidRestClient) UserFillsByTime(ctx context.Context, user string, startTime, endTime int64) ([]*types.UserFillOrder, error) {
	params := map[string]interface{}{
		"user":      user,
		"startTime": startTime,
	}
	if endTime > 0 {
		params["endTime"] = endTime
	}
	var orders []*types.UserFillOrder
	if err := rest.infoRequest(ctx, "userFillsByTime", params, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ExchangeAction 提交已签名的 /exchange 动作（下单、调杠杆）
// 签名由调用方注入，本客户端只负责传输和解码
func (rest *HyperliquidRestClient) ExchangeAction(ctx context.Context, action interface{}, nonce int64, signature interface{}, vaultAddress string) (*types.ExchangeResponse, error) {
	reqBody := map[string]interface{}{
		"action":    action,
		"nonce":     nonce,
		"signature": signature,
	}
	if vaultAddress != "" {
		reqBody["vaultAddress"] = vaultAddress
	}
	reqBodyJSON, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	var resp types.ExchangeResponse
	if err := rest.post(ctx, "/exchange", reqBodyJSON, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
