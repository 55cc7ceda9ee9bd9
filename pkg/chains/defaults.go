package chains

func weth(address string) *TokenConfig {
	return &TokenConfig{Address: address, Decimals: 18, Symbol: "WETH", Name: "Wrapped Ether"}
}

func ptr(t TokenConfig) *TokenConfig {
	return &t
}

func ether() *NativeConfig {
	return &NativeConfig{Symbol: "ETH", Name: "Ether", Aliases: []string{"ETH", "ETHER", NativeSentinel}}
}

var (
	usdcBase        = TokenConfig{Address: "0xd9aAEc86B65D86f6A7B5B1b0c42FFA531710b6CA", Decimals: 6, Symbol: "USDbC", Name: "USD Base Coin"}
	daiBase         = TokenConfig{Address: "0x50c5725949A6F0c72E6C4a641F24049A917DB0Cb", Decimals: 18, Symbol: "DAI", Name: "DAI Stablecoin"}
	usdcBaseSepolia = TokenConfig{Address: "0x7b4Adf64B0d60fF97D672E473420203D52562A84", Decimals: 6, Symbol: "USDC", Name: "USD Coin"}

	usdcArbitrum = TokenConfig{Address: "0xFF970A61A04b1cA14834A43f5dE4533eBDDB5CC8", Decimals: 6, Symbol: "USDC", Name: "USD//C"}
	usdtArbitrum = TokenConfig{Address: "0xFd086bC7CD5C481DCC9C85ebE478A1C0b69FCbb9", Decimals: 6, Symbol: "USDT", Name: "Tether USD"}
	wbtcArbitrum = TokenConfig{Address: "0x2f2a2543B76A4166549F7aaB2e75Bef0aefC5B0f", Decimals: 8, Symbol: "WBTC", Name: "Wrapped BTC"}
	daiArbitrum  = TokenConfig{Address: "0xDA10009cBd5D07dd0CeCc66161FC93D7c9000da1", Decimals: 18, Symbol: "DAI", Name: "Dai Stablecoin"}
	arbArbitrum  = TokenConfig{Address: "0x912CE59144191C1204E64559FE8253a0e49E6548", Decimals: 18, Symbol: "ARB", Name: "Arbitrum"}

	usdcMode = TokenConfig{Address: "0xd988097fb8612cc24eeC14542bC03424c656005f", Decimals: 6, Symbol: "USDC", Name: "USDC"}
	usdtMode = TokenConfig{Address: "0xf0F161fDA2712DB8b566946122a5af183995e2eD", Decimals: 6, Symbol: "USDT", Name: "Tether USD"}
	daiMode  = TokenConfig{Address: "0xE7798f023fC62146e8Aa1b36Da45fb70855a77Ea", Decimals: 18, Symbol: "DAI", Name: "Dai Stablecoin"}
	wbtcMode = TokenConfig{Address: "0xcDd475325D6F564d27247D1DddBb0DAc6fA0a5CF", Decimals: 8, Symbol: "WBTC", Name: "Wrapped BTC"}
)

// DefaultChainConfigs returns the built-in chain tables. Each call returns a
// fresh copy.
func DefaultChainConfigs() []ChainConfig {
	wethBase := weth("0x4200000000000000000000000000000000000006")
	wethBaseSepolia := weth("0x4200000000000000000000000000000000000006")
	wethArbitrum := weth("0x82af49447d8a07e3bd95bd0d56f35241523fbab1")
	wethMode := weth("0x4200000000000000000000000000000000000006")
	wethModeTestnet := weth("0xeb72756ee12309Eae82a0deb9787e69f5b62949c")
	wethFraxTestnet := weth("0x4200000000000000000000000000000000000006")

	return []ChainConfig{
		{ChainID: Mainnet, NetworkName: "mainnet"},
		{
			ChainID:       Optimism,
			NetworkName:   "optimism-mainnet",
			WrappedNative: weth("0x4200000000000000000000000000000000000006"),
		},
		{ChainID: Kairos, NetworkName: "kairos"},
		{
			ChainID:     Kaia,
			NetworkName: "kaia",
			Native:      &NativeConfig{Symbol: "KAIA", Name: "KAIA", Aliases: []string{"KAIA", NativeSentinel}},
		},
		{
			ChainID:       Base,
			NetworkName:   "base-mainnet",
			Native:        ether(),
			WrappedNative: wethBase,
			BaseTokens:    []TokenConfig{usdcBase, *wethBase},
			USDC:          ptr(usdcBase),
			DAI:           ptr(daiBase),
			Supported:     true,
			V2Supported:   true,
			HasL1Fee:      true,
		},
		{
			ChainID:       Mode,
			NetworkName:   "mode-mainnet",
			Native:        ether(),
			WrappedNative: wethMode,
			BaseTokens:    []TokenConfig{*wethMode, wbtcMode, daiMode, usdcMode, usdtMode},
			USDC:          ptr(usdcMode),
			DAI:           ptr(daiMode),
			USDT:          ptr(usdtMode),
			Supported:     true,
			V2Supported:   true,
			HasL1Fee:      true,
		},
		{
			ChainID:       ModeTestnet,
			NetworkName:   "mode-testnet",
			WrappedNative: wethModeTestnet,
			BaseTokens:    []TokenConfig{*wethModeTestnet},
		},
		{
			ChainID:       FraxTestnet,
			NetworkName:   "frax-testnet",
			WrappedNative: wethFraxTestnet,
			BaseTokens:    []TokenConfig{*wethFraxTestnet},
		},
		{
			ChainID:     Fuji,
			NetworkName: "avalanche-fuji",
			Native:      &NativeConfig{Symbol: "AVAX", Name: "Avalanche"},
		},
		{
			ChainID:       Arbitrum,
			NetworkName:   "arbitrum-mainnet",
			WrappedNative: wethArbitrum,
			BaseTokens:    []TokenConfig{*wethArbitrum, wbtcArbitrum, daiArbitrum, usdcArbitrum, usdtArbitrum, arbArbitrum},
		},
		{ChainID: BaseGoerli, NetworkName: "base-goerli"},
		{
			ChainID:       BaseSepolia,
			NetworkName:   "base-sepolia",
			WrappedNative: wethBaseSepolia,
			BaseTokens:    []TokenConfig{usdcBaseSepolia, *wethBaseSepolia},
			USDC:          ptr(usdcBaseSepolia),
			Supported:     true,
			V2Supported:   true,
			HasL1Fee:      true,
		},
		{ChainID: ArbitrumSepolia, NetworkName: "arbitrum-sepolia"},
		{
			ChainID:       ScrollSepolia,
			NetworkName:   "scroll-sepolia",
			WrappedNative: weth("0x5300000000000000000000000000000000000004"),
		},
		{
			ChainID:       Scroll,
			NetworkName:   "scroll-mainnet",
			WrappedNative: weth("0x5300000000000000000000000000000000000004"),
		},
		{ChainID: Sepolia, NetworkName: "sepolia"},
	}
}
