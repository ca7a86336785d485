package model

import "time"

// ExecutionRecord 执行流水的落库记录，尽力而为的审计日志
// 流水线本身不依赖该表，写入失败只打日志
type ExecutionRecord struct {
	ID         uint      `gorm:"column:id;primary_key;" json:"id"`
	Cloid      string    `gorm:"column:cloid" json:"cloid"`
	Symbol     string    `gorm:"column:symbol" json:"symbol"`
	Side       OrderSide `gorm:"column:side" json:"side"`
	Size       float64   `gorm:"column:size" json:"size"`
	EntryPrice float64   `gorm:"column:entry_price" json:"entry_price"`
	Leverage   int       `gorm:"column:leverage" json:"leverage"`
	TP         float64   `gorm:"column:tp" json:"tp"`
	SL         float64   `gorm:"column:sl" json:"sl"`
	State      string    `gorm:"column:state" json:"state"`
	Error      string    `gorm:"column:error" json:"error"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
}

func (ExecutionRecord) TableName() string {
	return "execution_record"
}
