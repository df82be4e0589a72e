package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mnee-network/explorer/core/mockgen"
	"github.com/mnee-network/explorer/explorer"
	"github.com/mnee-network/explorer/internal/cli"
	"github.com/mnee-network/explorer/internal/prefs"
	"github.com/mnee-network/explorer/internal/utils"
)

var rootCmd = &cobra.Command{
	Use:           "explorer",
	Short:         "explore the MNEE token network from the terminal",
	Long:          "explore transactions, blocks, addresses and analytics of the MNEE token network from the terminal",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDashboard,
}

var configFlag = cli.StringFlag{
	Name:      "config",
	Usage:     "load explorer config from the config toml file.",
	Shorthand: "c",
	DefValue:  "",
}

func registerRootCmdFlags() error {
	return cli.RegisterPFlags(rootCmd, getRootFlags())
}

func getExplorerConfig(cmd *cobra.Command) (explorerConfig, error) {
	var (
		config explorerConfig
		err    error
	)
	if cli.IsFlagChanged(cmd, configFlag) {
		configFile := cli.GetStringFlagValue(cmd, configFlag)
		config, err = loadExplorerConfig(configFile)
	} else {
		config = getDefaultExplorerConfigCopy()
	}
	if err != nil {
		return explorerConfig{}, err
	}

	applyGeneralFlags(cmd, &config)
	applyDataFlags(cmd, &config)
	applyPrefsFlags(cmd, &config)
	applyOpsFlags(cmd, &config)
	applyRefreshFlags(cmd, &config)
	applyLogFlags(cmd, &config)

	if err := validateExplorerConfig(config); err != nil {
		return explorerConfig{}, err
	}
	return config, nil
}

func setupLog(config explorerConfig, stderr io.Writer) error {
	switch config.Log.Console {
	case consoleJSON:
		utils.SetLogOutput(stderr)
	case consoleOff:
		utils.SetLogOutput(ioutil.Discard)
	}
	utils.SetLogVerbosity(config.Log.Verbosity)
	if config.Log.FileName == "" {
		return nil
	}
	logPath := filepath.Join(config.Log.Folder, config.Log.FileName)
	return utils.AddLogFile(logPath, config.Log.RotateSize)
}

// app bundles what every view command needs.
type app struct {
	config  explorerConfig
	session *explorer.Session
	store   *prefs.Store
	out     *renderer
}

func (a *app) Close() {
	if a.store == nil {
		return
	}
	if err := a.store.Close(); err != nil {
		utils.Logger().Warn().Err(err).Msg("cannot close preference store")
	}
}

// newApp loads the config, opens the preference store and builds the session.
func newApp(cmd *cobra.Command) (*app, error) {
	config, err := getExplorerConfig(cmd)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		cmd.Help()
		os.Exit(128)
	}
	if err := setupLog(config, cmd.ErrOrStderr()); err != nil {
		return nil, err
	}

	var store *prefs.Store
	var themeStore explorer.ThemeStore
	store, err = prefs.Open(config.General.DataDir, config.Prefs.CacheSize)
	if err != nil {
		// the explorer stays usable with an in-memory theme
		utils.Logger().Warn().Err(err).Str("datadir", config.General.DataDir).
			Msg("cannot open preference store")
	} else {
		themeStore = store
	}

	session, err := explorer.New(newGenerator(config), explorer.Config{
		Transactions: config.Data.Transactions,
		Blocks:       config.Data.Blocks,
		Holders:      config.Data.Holders,
		PerPage:      config.Data.PerPage,
		AddressCache: config.Data.AddressCache,
	}, themeStore)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, err
	}
	utils.SetLogContext(session.ID())

	return &app{
		config:  config,
		session: session,
		store:   store,
		out:     newRenderer(cmd.OutOrStdout(), session.Theme(), cli.GetBoolFlagValue(cmd, jsonFlag)),
	}, nil
}

func newGenerator(config explorerConfig) *mockgen.Generator {
	if config.General.Seed == 0 {
		return mockgen.New()
	}
	return mockgen.New(mockgen.WithSeed(config.General.Seed))
}

// withApp runs f against a fresh app.
func withApp(f func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		return f(cmd, args, a)
	}
}
