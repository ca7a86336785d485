package tradecfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreDefaults(t *testing.T) {
	s := NewStore()

	cfg := s.Get("BTC")
	assert.Equal(t, 20, cfg.Leverage)
	assert.Equal(t, 2.0, cfg.TpPercent)
	assert.Equal(t, 1.0, cfg.SlPercent)
	assert.Equal(t, 0.1, cfg.Size)

	assert.Empty(t, s.All())
}

func TestStorePartialUpdate(t *testing.T) {
	s := NewStore()

	lev := 5
	got := s.Apply("ETH", Update{Leverage: &lev})
	assert.Equal(t, 5, got.Leverage)
	// 未提交的字段保持默认
	assert.Equal(t, 2.0, got.TpPercent)

	sl := 0.5
	got = s.Apply("ETH", Update{SlPercent: &sl})
	assert.Equal(t, 5, got.Leverage) // 之前的更新不丢
	assert.Equal(t, 0.5, got.SlPercent)

	assert.Equal(t, got, s.Get("ETH"))
	assert.Len(t, s.All(), 1)

	// 其他币不受影响
	assert.Equal(t, 20, s.Get("BTC").Leverage)
}
