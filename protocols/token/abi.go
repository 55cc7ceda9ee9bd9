package token

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const erc20MetadataABIJSON = `[
	{"inputs":[],"name":"name","outputs":[{"internalType":"string","name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"symbol","outputs":[{"internalType":"string","name":"","type":"string"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"decimals","outputs":[{"internalType":"uint8","name":"","type":"uint8"}],"stateMutability":"view","type":"function"}
]`

// Pre-standard tokens such as MKR return symbol() as bytes32.
const bytes32SymbolABIJSON = `[
	{"inputs":[],"name":"symbol","outputs":[{"internalType":"bytes32","name":"","type":"bytes32"}],"stateMutability":"view","type":"function"}
]`

var (
	erc20MetadataABI = mustParseABI(erc20MetadataABIJSON)
	bytes32SymbolABI = mustParseABI(bytes32SymbolABIJSON)
)

func mustParseABI(raw string) *abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(err)
	}
	return &parsed
}
