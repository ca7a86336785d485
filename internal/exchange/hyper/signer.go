package hyper

// ActionSigner 对 /exchange 动作做EIP-712签名
// 签名库是外部协作方（agent钱包），这里只定义接缝
type ActionSigner interface {
	// Sign 返回可直接序列化进请求体的signature对象
	Sign(action interface{}, nonce int64) (interface{}, error)
	// Address 签名钱包地址
	Address() string
}
