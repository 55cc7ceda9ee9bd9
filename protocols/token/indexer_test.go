package token

import (
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessor(t *testing.T) {
	weth := New(testChainID, wethAddr, 18, "WETH", "Wrapped Ether")
	usdc := New(testChainID, usdcAddr, 6, "USDC", "USD Coin")

	acc := NewIndexer().Index([]Token{weth, usdc})

	t.Run("GetByAddress_AnyCase", func(t *testing.T) {
		for _, in := range []string{
			usdcAddr.Hex(),
			strings.ToLower(usdcAddr.Hex()),
			"0x" + strings.ToUpper(strings.ToLower(usdcAddr.Hex())[2:]),
			"  " + usdcAddr.Hex() + " ",
		} {
			got, ok := acc.GetByAddress(in)
			require.True(t, ok, in)
			assert.Equal(t, usdc, got)
		}
	})

	t.Run("GetByAddress_Unknown", func(t *testing.T) {
		_, ok := acc.GetByAddress("0x0000000000000000000000000000000000000001")
		assert.False(t, ok)
		_, ok = acc.GetByAddress("garbage")
		assert.False(t, ok)
	})

	t.Run("Get_Typed", func(t *testing.T) {
		got, ok := acc.Get(wethAddr)
		require.True(t, ok)
		assert.Equal(t, weth, got)
	})

	t.Run("GetBySymbol_AnyCase", func(t *testing.T) {
		got, ok := acc.GetBySymbol("weth")
		require.True(t, ok)
		assert.Equal(t, weth, got)
		_, ok = acc.GetBySymbol("DAI")
		assert.False(t, ok)
	})

	t.Run("All_IsDefensiveCopy", func(t *testing.T) {
		all := acc.All()
		require.Len(t, all, 2)
		all[0] = Token{}
		assert.Equal(t, weth, acc.All()[0])
	})

	t.Run("DuplicateAddressKeepsFirstPosition", func(t *testing.T) {
		renamed := New(testChainID, wethAddr, 18, "WETH2", "")
		dup := NewAccessor([]Token{weth, usdc, renamed})
		assert.Equal(t, 2, dup.Len())
		assert.Equal(t, renamed, dup.All()[0])
	})
}

func TestToken(t *testing.T) {
	a := New(1, common.HexToAddress("0x0000000000000000000000000000000000000001"), 18, "A", "")
	b := New(1, common.HexToAddress("0x00000000000000000000000000000000000000ff"), 6, "B", "")

	assert.True(t, a.SortsBefore(b))
	assert.False(t, b.SortsBefore(a))
	assert.False(t, a.SortsBefore(a))

	assert.True(t, a.Equals(New(1, a.Address, 6, "OTHER", "")))
	assert.False(t, a.Equals(New(10, a.Address, 18, "A", "")))
	assert.False(t, a.Equals(b))

	assert.Equal(t, "0x0000000000000000000000000000000000000001", a.Key())
	assert.Equal(t, strings.ToLower(usdcAddr.Hex()), New(1, usdcAddr, 6, "USDC", "").Key())
}

func TestParseBytes32Symbol(t *testing.T) {
	word := func(s string) [32]byte {
		var w [32]byte
		copy(w[:], s)
		return w
	}

	got, err := ParseBytes32Symbol(word("MKR"))
	require.NoError(t, err)
	assert.Equal(t, "MKR", got)

	full := strings.Repeat("X", 32)
	got, err = ParseBytes32Symbol(word(full))
	require.NoError(t, err)
	assert.Equal(t, full, got)

	_, err = ParseBytes32Symbol([32]byte{})
	assert.Error(t, err)

	_, err = ParseBytes32Symbol(word("\xff\xfe"))
	assert.Error(t, err)
}
