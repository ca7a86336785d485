package sign

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luka8-ops/TradingView-Hybrid-BOT-Hyperliquidit-Lighter/pkg/hype/types"
)

// 公开测试私钥（hardhat account #0），对应地址是固定的
const testKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

func TestWalletSignerAddress(t *testing.T) {
	s, err := NewWalletSigner(testKey, "", true)
	require.NoError(t, err)
	assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", s.Address())

	// 0x前缀的私钥同样接受
	s2, err := NewWalletSigner("0x"+testKey, "", true)
	require.NoError(t, err)
	assert.Equal(t, s.Address(), s2.Address())
}

func TestWalletSignerRejectsBadKey(t *testing.T) {
	_, err := NewWalletSigner("not-a-key", "", true)
	assert.Error(t, err)
}

func TestSignProducesRsv(t *testing.T) {
	s, err := NewWalletSigner(testKey, "", true)
	require.NoError(t, err)

	action := types.UpdateLeverageAction{Type: "updateLeverage", Asset: 0, IsCross: true, Leverage: 10}
	sig, err := s.Sign(action, 1700000000000)
	require.NoError(t, err)

	rsv, ok := sig.(RsvSignature)
	require.True(t, ok)
	assert.Len(t, rsv.R, 66) // 0x + 32字节
	assert.Len(t, rsv.S, 66)
	assert.Contains(t, []byte{27, 28}, rsv.V)

	// 同样的输入签名是确定性的
	again, err := s.Sign(action, 1700000000000)
	require.NoError(t, err)
	assert.Equal(t, sig, again)

	// nonce不同连接id就不同
	other, err := s.Sign(action, 1700000000001)
	require.NoError(t, err)
	assert.NotEqual(t, sig, other)
}

func TestActionHashVaultChangesDigest(t *testing.T) {
	action := types.OrderAction{Type: "order", Grouping: "na"}

	plain, err := actionHash(action, 1, "")
	require.NoError(t, err)
	withVault, err := actionHash(action, 1, "0x1234567890123456789012345678901234567890")
	require.NoError(t, err)

	assert.Len(t, plain, 32)
	assert.NotEqual(t, plain, withVault)
}
