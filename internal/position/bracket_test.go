package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBracketPricesBuy(t *testing.T) {
	tp, sl := BracketPrices(2000, true, 2.0, 1.0)
	assert.InDelta(t, 2040.0, tp, 1e-9)
	assert.InDelta(t, 1980.0, sl, 1e-9)
}

func TestBracketPricesSell(t *testing.T) {
	tp, sl := BracketPrices(2000, false, 2.0, 1.0)
	assert.InDelta(t, 1960.0, tp, 1e-9)
	assert.InDelta(t, 2020.0, sl, 1e-9)
}

func TestBracketPricesMirror(t *testing.T) {
	// 空头是多头围绕成交价的镜像
	buyTp, buySl := BracketPrices(50000, true, 1.5, 0.75)
	sellTp, sellSl := BracketPrices(50000, false, 1.5, 0.75)
	assert.InDelta(t, buyTp-50000, 50000-sellTp, 1e-9)
	assert.InDelta(t, 50000-buySl, sellSl-50000, 1e-9)
}
