package tradecfg

import (
	"sync"
)

// Settings 单个币种的交易参数，信号里缺省的字段用它回填
type Settings struct {
	Leverage  int     `json:"leverage"`
	TpPercent float64 `json:"tp_percent"`
	SlPercent float64 `json:"sl_percent"`
	Size      float64 `json:"size"`
}

// Update 部分更新载荷，nil字段保持原值
type Update struct {
	Leverage  *int     `json:"leverage" binding:"omitempty,gt=0"`
	TpPercent *float64 `json:"tp_percent" binding:"omitempty,gt=0"`
	SlPercent *float64 `json:"sl_percent" binding:"omitempty,gt=0"`
	Size      *float64 `json:"size" binding:"omitempty,gte=0"`
}

// 新币种首次出现时的初始参数
var defaults = Settings{
	Leverage:  20,
	TpPercent: 2.0,
	SlPercent: 1.0,
	Size:      0.1,
}

// Store 按币种保存交易参数，webhook和配置接口并发读写
type Store struct {
	mu       sync.RWMutex
	settings map[string]Settings
}

func NewStore() *Store {
	return &Store{settings: make(map[string]Settings)}
}

// Get 返回该币种的参数，从未配置过的返回默认值
func (s *Store) Get(symbol string) Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if cfg, ok := s.settings[symbol]; ok {
		return cfg
	}
	return defaults
}

// All 返回当前所有币种配置的快照
func (s *Store) All() map[string]Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]Settings, len(s.settings))
	for k, v := range s.settings {
		out[k] = v
	}
	return out
}

// Apply 部分更新并返回更新后的参数
func (s *Store) Apply(symbol string, u Update) Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg, ok := s.settings[symbol]
	if !ok {
		cfg = defaults
	}
	if u.Leverage != nil {
		cfg.Leverage = *u.Leverage
	}
	if u.TpPercent != nil {
		cfg.TpPercent = *u.TpPercent
	}
	if u.SlPercent != nil {
		cfg.SlPercent = *u.SlPercent
	}
	if u.Size != nil {
		cfg.Size = *u.Size
	}
	s.settings[symbol] = cfg
	return cfg
}
