package main

import (
	"github.com/spf13/cobra"

	"github.com/mnee-network/explorer/internal/cli"
)

var (
	generalFlags = []cli.Flag{
		dataDirFlag,
		seedFlag,
	}

	dataFlags = []cli.Flag{
		dataTxsFlag,
		dataBlocksFlag,
		dataHoldersFlag,
		dataPerPageFlag,
		dataAddressCacheFlag,
	}

	prefsFlags = []cli.Flag{
		prefsCacheSizeFlag,
	}

	opsFlags = []cli.Flag{
		opsEnabledFlag,
		opsIPFlag,
		opsPortFlag,
		opsRateLimitFlag,
		opsBurstFlag,
		opsExemptFlag,
		opsOriginsFlag,
	}

	refreshFlags = []cli.Flag{
		refreshScheduleFlag,
	}

	logFlags = []cli.Flag{
		logFolderFlag,
		logFileNameFlag,
		logRotateSizeFlag,
		logVerbosityFlag,
		logConsoleFlag,

		legacyVerbosityFlag,
	}

	outputFlags = []cli.Flag{
		jsonFlag,
	}
)

func getRootFlags() []cli.Flag {
	var flags []cli.Flag

	flags = append(flags, configFlag)
	flags = append(flags, generalFlags...)
	flags = append(flags, dataFlags...)
	flags = append(flags, prefsFlags...)
	flags = append(flags, opsFlags...)
	flags = append(flags, refreshFlags...)
	flags = append(flags, logFlags...)
	flags = append(flags, outputFlags...)

	return flags
}

// general flags
var (
	dataDirFlag = cli.StringFlag{
		Name:     "datadir",
		Usage:    "directory of the preference database",
		DefValue: defaultConfig.General.DataDir,
	}
	seedFlag = cli.Int64Flag{
		Name:     "seed",
		Usage:    "seed of the mock data generator, 0 for a random seed",
		DefValue: defaultConfig.General.Seed,
	}
)

func applyGeneralFlags(cmd *cobra.Command, config *explorerConfig) {
	if cli.IsFlagChanged(cmd, dataDirFlag) {
		config.General.DataDir = cli.GetStringFlagValue(cmd, dataDirFlag)
	}
	if cli.IsFlagChanged(cmd, seedFlag) {
		config.General.Seed = cli.GetInt64FlagValue(cmd, seedFlag)
	}
}

// data flags
var (
	dataTxsFlag = cli.IntFlag{
		Name:     "data.transactions",
		Usage:    "number of mock transactions",
		DefValue: defaultConfig.Data.Transactions,
	}
	dataBlocksFlag = cli.IntFlag{
		Name:     "data.blocks",
		Usage:    "number of mock blocks",
		DefValue: defaultConfig.Data.Blocks,
	}
	dataHoldersFlag = cli.IntFlag{
		Name:     "data.holders",
		Usage:    "number of mock holders",
		DefValue: defaultConfig.Data.Holders,
	}
	dataPerPageFlag = cli.IntFlag{
		Name:     "data.perpage",
		Usage:    "default page size of list views",
		DefValue: defaultConfig.Data.PerPage,
	}
	dataAddressCacheFlag = cli.IntFlag{
		Name:     "data.addresscache",
		Usage:    "number of synthesized addresses kept per session",
		DefValue: defaultConfig.Data.AddressCache,
		Hidden:   true,
	}
)

func applyDataFlags(cmd *cobra.Command, config *explorerConfig) {
	if cli.IsFlagChanged(cmd, dataTxsFlag) {
		config.Data.Transactions = cli.GetIntFlagValue(cmd, dataTxsFlag)
	}
	if cli.IsFlagChanged(cmd, dataBlocksFlag) {
		config.Data.Blocks = cli.GetIntFlagValue(cmd, dataBlocksFlag)
	}
	if cli.IsFlagChanged(cmd, dataHoldersFlag) {
		config.Data.Holders = cli.GetIntFlagValue(cmd, dataHoldersFlag)
	}
	if cli.IsFlagChanged(cmd, dataPerPageFlag) {
		config.Data.PerPage = cli.GetIntFlagValue(cmd, dataPerPageFlag)
	}
	if cli.IsFlagChanged(cmd, dataAddressCacheFlag) {
		config.Data.AddressCache = cli.GetIntFlagValue(cmd, dataAddressCacheFlag)
	}
}

// prefs flags
var (
	prefsCacheSizeFlag = cli.StringFlag{
		Name:     "prefs.cache",
		Usage:    "block cache size of the preference database (e.g. 8MB)",
		DefValue: defaultConfig.Prefs.CacheSize,
	}
)

func applyPrefsFlags(cmd *cobra.Command, config *explorerConfig) {
	if cli.IsFlagChanged(cmd, prefsCacheSizeFlag) {
		config.Prefs.CacheSize = cli.GetStringFlagValue(cmd, prefsCacheSizeFlag)
	}
}

// ops flags
var (
	opsEnabledFlag = cli.BoolFlag{
		Name:     "ops",
		Usage:    "serve /metrics, /healthz and /goroutinez while watching",
		DefValue: defaultConfig.Ops.Enabled,
	}
	opsIPFlag = cli.StringFlag{
		Name:     "ops.ip",
		Usage:    "ip address to listen for ops requests",
		DefValue: defaultConfig.Ops.IP,
	}
	opsPortFlag = cli.IntFlag{
		Name:     "ops.port",
		Usage:    "port to listen for ops requests",
		DefValue: defaultConfig.Ops.Port,
	}
	opsRateLimitFlag = cli.Float64Flag{
		Name:     "ops.ratelimit",
		Usage:    "ops requests per second allowed per client ip",
		DefValue: defaultConfig.Ops.RateLimit,
	}
	opsBurstFlag = cli.IntFlag{
		Name:     "ops.burst",
		Usage:    "ops request burst allowed per client ip",
		DefValue: defaultConfig.Ops.Burst,
	}
	opsExemptFlag = cli.StringSliceFlag{
		Name:     "ops.exempt",
		Usage:    "client ips never rate limited on the ops server",
		DefValue: defaultConfig.Ops.ExemptIPs,
	}
	opsOriginsFlag = cli.StringSliceFlag{
		Name:     "ops.origins",
		Usage:    "CORS origins allowed on the ops server",
		DefValue: defaultConfig.Ops.AllowedOrigins,
	}
)

func applyOpsFlags(cmd *cobra.Command, config *explorerConfig) {
	if cli.IsFlagChanged(cmd, opsEnabledFlag) {
		config.Ops.Enabled = cli.GetBoolFlagValue(cmd, opsEnabledFlag)
	}
	if cli.IsFlagChanged(cmd, opsIPFlag) {
		config.Ops.Enabled = true
		config.Ops.IP = cli.GetStringFlagValue(cmd, opsIPFlag)
	}
	if cli.IsFlagChanged(cmd, opsPortFlag) {
		config.Ops.Enabled = true
		config.Ops.Port = cli.GetIntFlagValue(cmd, opsPortFlag)
	}
	if cli.IsFlagChanged(cmd, opsRateLimitFlag) {
		config.Ops.RateLimit = cli.GetFloat64FlagValue(cmd, opsRateLimitFlag)
	}
	if cli.IsFlagChanged(cmd, opsBurstFlag) {
		config.Ops.Burst = cli.GetIntFlagValue(cmd, opsBurstFlag)
	}
	if cli.IsFlagChanged(cmd, opsExemptFlag) {
		config.Ops.ExemptIPs = cli.GetStringSliceFlagValue(cmd, opsExemptFlag)
	}
	if cli.IsFlagChanged(cmd, opsOriginsFlag) {
		config.Ops.AllowedOrigins = cli.GetStringSliceFlagValue(cmd, opsOriginsFlag)
	}
}

// refresh flags
var (
	refreshScheduleFlag = cli.StringFlag{
		Name:     "refresh.schedule",
		Usage:    "cron schedule of the dashboard auto refresh (e.g. @every 10s)",
		DefValue: defaultConfig.Refresh.Schedule,
	}
)

func applyRefreshFlags(cmd *cobra.Command, config *explorerConfig) {
	if cli.IsFlagChanged(cmd, refreshScheduleFlag) {
		config.Refresh.Schedule = cli.GetStringFlagValue(cmd, refreshScheduleFlag)
	}
}

// log flags
var (
	logFolderFlag = cli.StringFlag{
		Name:     "log.dir",
		Usage:    "directory path to put rotation logs",
		DefValue: defaultConfig.Log.Folder,
	}
	logFileNameFlag = cli.StringFlag{
		Name:     "log.name",
		Usage:    "log file name (e.g. explorer.log), empty to disable file logging",
		DefValue: defaultConfig.Log.FileName,
	}
	logRotateSizeFlag = cli.IntFlag{
		Name:     "log.max-size",
		Usage:    "rotation log size in megabytes",
		DefValue: defaultConfig.Log.RotateSize,
	}
	logVerbosityFlag = cli.IntFlag{
		Name:      "log.verb",
		Shorthand: "v",
		Usage:     "logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug",
		DefValue:  defaultConfig.Log.Verbosity,
	}
	logConsoleFlag = cli.StringFlag{
		Name:     "log.console",
		Usage:    "console log format (text, json, off)",
		DefValue: defaultConfig.Log.Console,
	}
	legacyVerbosityFlag = cli.IntFlag{
		Name:       "verbosity",
		Usage:      "logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug",
		DefValue:   defaultConfig.Log.Verbosity,
		Deprecated: "use --log.verb",
	}
)

func applyLogFlags(cmd *cobra.Command, config *explorerConfig) {
	if cli.IsFlagChanged(cmd, logFolderFlag) {
		config.Log.Folder = cli.GetStringFlagValue(cmd, logFolderFlag)
	}
	if cli.IsFlagChanged(cmd, logFileNameFlag) {
		config.Log.FileName = cli.GetStringFlagValue(cmd, logFileNameFlag)
	}
	if cli.IsFlagChanged(cmd, logRotateSizeFlag) {
		config.Log.RotateSize = cli.GetIntFlagValue(cmd, logRotateSizeFlag)
	}
	if cli.IsFlagChanged(cmd, logVerbosityFlag) {
		config.Log.Verbosity = cli.GetIntFlagValue(cmd, logVerbosityFlag)
	} else if cli.IsFlagChanged(cmd, legacyVerbosityFlag) {
		config.Log.Verbosity = cli.GetIntFlagValue(cmd, legacyVerbosityFlag)
	}
	if cli.IsFlagChanged(cmd, logConsoleFlag) {
		config.Log.Console = cli.GetStringFlagValue(cmd, logConsoleFlag)
	}
}

// output flags
var (
	jsonFlag = cli.BoolFlag{
		Name:     "json",
		Usage:    "print views as JSON instead of tables",
		DefValue: false,
	}
)
