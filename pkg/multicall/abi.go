package multicall

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// DefaultAddress is the Multicall3 deployment shared by most EVM chains.
var DefaultAddress = common.HexToAddress("0xcA11bde05977b3631167028862bE2a173976CA11")

const aggregateMethod = "tryBlockAndAggregate"

const multicall3ABI = `[{
	"inputs": [
		{"internalType": "bool", "name": "requireSuccess", "type": "bool"},
		{
			"components": [
				{"internalType": "address", "name": "target", "type": "address"},
				{"internalType": "bytes", "name": "callData", "type": "bytes"}
			],
			"internalType": "struct Multicall3.Call[]", "name": "calls", "type": "tuple[]"
		}
	],
	"name": "tryBlockAndAggregate",
	"outputs": [
		{"internalType": "uint256", "name": "blockNumber", "type": "uint256"},
		{"internalType": "bytes32", "name": "blockHash", "type": "bytes32"},
		{
			"components": [
				{"internalType": "bool", "name": "success", "type": "bool"},
				{"internalType": "bytes", "name": "returnData", "type": "bytes"}
			],
			"internalType": "struct Multicall3.Result[]", "name": "returnData", "type": "tuple[]"
		}
	],
	"stateMutability": "payable",
	"type": "function"
}]`

var mcABI = mustParseABI(multicall3ABI)

// ABI returns the parsed Multicall3 ABI fragment used by the client.
func ABI() *abi.ABI {
	return mcABI
}

type call struct {
	Target   common.Address
	CallData []byte
}

type callResult struct {
	Success    bool
	ReturnData []byte
}

type aggregateResult struct {
	BlockNumber *big.Int
	BlockHash   [32]byte
	ReturnData  []callResult
}

func mustParseABI(raw string) *abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(err)
	}
	return &parsed
}
