package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/defolym3/smart-order-router/cmd/router/config"
	"github.com/defolym3/smart-order-router/pkg/chains"
	"github.com/defolym3/smart-order-router/pkg/multicall"
)

// app carries what every subcommand needs once the root command has loaded
// configuration.
type app struct {
	cfg      *config.RouterConfig
	logger   *slog.Logger
	registry *chains.Registry
	natives  *chains.NativeCurrencyCache

	// dialCaller opens the batched-call transport. The returned func releases it.
	dialCaller func(ctx context.Context, cfg *config.RouterConfig, logger *slog.Logger) (multicall.Caller, func(), error)
}

type rootFlags struct {
	configPath string
	logLevel   string
	chainID    uint64
}

func newRootCmd(a *app) *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "router",
		Short:         "Resolve ERC-20 metadata and generate Uniswap V2 candidate pools",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd, flags)
		},
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to the router YAML config")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn or error")
	root.PersistentFlags().Uint64Var(&flags.chainID, "chain-id", 0, "chain id, overrides the config file")

	root.AddCommand(
		newTokensCmd(a),
		newPoolsCmd(a),
		newChainsCmd(a),
	)
	return root
}

func (a *app) load(cmd *cobra.Command, flags *rootFlags) error {
	cfg := config.Default()
	if flags.configPath != "" {
		loaded, err := config.LoadConfig(flags.configPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if cmd.Flags().Changed("chain-id") {
		cfg.ChainID = flags.chainID
	}
	if cfg.ChainID == 0 {
		cfg.ChainID = chains.Base
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	a.logger = slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	chainConfigs := chains.DefaultChainConfigs()
	if cfg.ChainsFile != "" {
		chainConfigs, err = chains.LoadChainConfigs(cfg.ChainsFile)
		if err != nil {
			return err
		}
	}
	a.registry, err = chains.NewRegistry(chainConfigs)
	if err != nil {
		return err
	}
	a.natives = chains.NewNativeCurrencyCache(a.registry)

	a.cfg = cfg
	a.logger.Debug("Configuration loaded",
		"chain_id", cfg.ChainID,
		"chains_file", cfg.ChainsFile,
		"max_batch_size", cfg.MaxBatchSize,
	)
	return nil
}

func dialMulticall(ctx context.Context, cfg *config.RouterConfig, logger *slog.Logger) (multicall.Caller, func(), error) {
	if cfg.RPCURL == "" {
		return nil, nil, errors.New("config: rpc_url is required")
	}
	client, err := multicall.Dial(ctx, cfg.RPCURL, multicall.Config{
		Address:      cfg.Multicall(),
		Logger:       logger.With("component", "multicall-client"),
		MaxBatchSize: cfg.MaxBatchSize,
	})
	if err != nil {
		return nil, nil, err
	}
	return client, client.Close, nil
}
