package sign

import (
	"crypto/ecdsa"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/vmihailenco/msgpack/v5"
)

// Hyperliquid L1动作签名：msgpack(action) + nonce + vault标记做keccak
// 得到connectionId，再按Agent结构做EIP-712签名

// RsvSignature /exchange 请求体里的signature对象
type RsvSignature struct {
	R string `json:"r"`
	S string `json:"s"`
	V byte   `json:"v"`
}

type WalletSigner struct {
	key     *ecdsa.PrivateKey
	address string
	vault   string
	source  string // 主网"a"，测试网"b"
}

func NewWalletSigner(secretKey, vaultAddress string, testnet bool) (*WalletSigner, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(secretKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("parse secret key: %w", err)
	}
	source := "a"
	if testnet {
		source = "b"
	}
	return &WalletSigner{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey).Hex(),
		vault:   vaultAddress,
		source:  source,
	}, nil
}

func (s *WalletSigner) Address() string {
	return s.address
}

func (s *WalletSigner) Sign(action interface{}, nonce int64) (interface{}, error) {
	connectionId, err := actionHash(action, nonce, s.vault)
	if err != nil {
		return nil, err
	}

	typed := apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
			"Agent": {
				{Name: "source", Type: "string"},
				{Name: "connectionId", Type: "bytes32"},
			},
		},
		PrimaryType: "Agent",
		Domain: apitypes.TypedDataDomain{
			Name:              "Exchange",
			Version:           "1",
			ChainId:           math.NewHexOrDecimal256(1337),
			VerifyingContract: "0x0000000000000000000000000000000000000000",
		},
		Message: apitypes.TypedDataMessage{
			"source":       s.source,
			"connectionId": connectionId,
		},
	}

	hash, _, err := apitypes.TypedDataAndHash(typed)
	if err != nil {
		return nil, fmt.Errorf("hash typed data: %w", err)
	}
	sig, err := crypto.Sign(hash, s.key)
	if err != nil {
		return nil, fmt.Errorf("sign action: %w", err)
	}

	return RsvSignature{
		R: hexutil.Encode(sig[:32]),
		S: hexutil.Encode(sig[32:64]),
		V: sig[64] + 27,
	}, nil
}

// actionHash = keccak256(msgpack(action) || nonce大端8字节 || vault标记)
func actionHash(action interface{}, nonce int64, vault string) ([]byte, error) {
	data, err := msgpack.Marshal(action)
	if err != nil {
		return nil, fmt.Errorf("msgpack action: %w", err)
	}
	nonceBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(nonceBytes, uint64(nonce))
	data = append(data, nonceBytes...)
	if vault == "" {
		data = append(data, 0x00)
	} else {
		data = append(data, 0x01)
		data = append(data, common.HexToAddress(vault).Bytes()...)
	}
	return crypto.Keccak256(data), nil
}
