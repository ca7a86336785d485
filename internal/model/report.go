package model

import "time"

// 流水线状态，Failed可以从任何状态进入
type PipelineState string

const (
	StateReceived          PipelineState = "received"
	StateDeduped           PipelineState = "deduped"
	StateSizing            PipelineState = "sizing"
	StateEntrySubmitted    PipelineState = "entry_submitted"
	StateFillPending       PipelineState = "fill_pending"
	StateFillResolved      PipelineState = "fill_resolved"
	StateBracketsSubmitted PipelineState = "brackets_submitted"
	StateDone              PipelineState = "done"
	StateFailed            PipelineState = "failed"
)

// 单条保护腿的提交结果，两条腿互不阻塞
type BracketLeg struct {
	Price     float64 `json:"price"`
	Submitted bool    `json:"submitted"`
	Error     string  `json:"error,omitempty"`
}

// ExecutionReport 每个信号的处理结果摘要，返回给webhook调用方
type ExecutionReport struct {
	State      PipelineState `json:"state"`
	Symbol     string        `json:"symbol"` // 归一化后的币名
	Side       OrderSide     `json:"side"`
	Size       float64       `json:"size"`
	EntryPrice float64       `json:"entry_price"`
	Cloid      string        `json:"cloid,omitempty"`
	Deduped    bool          `json:"deduped"`      // 已有持仓，守卫检查拦截，无任何下单
	SizedByMin bool          `json:"sized_by_min"` // 行情缺失降级为最小下单量
	TakeProfit *BracketLeg   `json:"take_profit,omitempty"`
	StopLoss   *BracketLeg   `json:"stop_loss,omitempty"`
	Error      string        `json:"error,omitempty"` // 失败原因（分类信息在响应code中）
	FinishedAt time.Time     `json:"finished_at"`
}

// PartialBracket 入场已成交但有保护腿未挂上
func (r *ExecutionReport) PartialBracket() bool {
	if r.TakeProfit == nil || r.StopLoss == nil {
		return false
	}
	return r.TakeProfit.Submitted != r.StopLoss.Submitted
}
