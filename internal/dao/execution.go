package dao

import (
	"context"

	"gorm.io/gorm"

	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/internal/model"
)

type ExecutionDao struct {
	db *gorm.DB
}

func NewExecutionDao(db *gorm.DB) *ExecutionDao {
	return &ExecutionDao{db: db}
}

// 插入执行记录
func (d *ExecutionDao) ExecutionCreate(ctx context.Context, record *model.ExecutionRecord) error {
	return d.db.WithContext(ctx).Create(record).Error
}

// 查找某币最后一条执行记录
func (d *ExecutionDao) ExecutionGetLast(ctx context.Context, symbol string) (rec model.ExecutionRecord, err error) {
	err = d.db.WithContext(ctx).Model(&model.ExecutionRecord{}).
		Where("symbol = ?", symbol).
		Order("created_at DESC").
		Limit(1).
		Find(&rec).Error
	return
}
