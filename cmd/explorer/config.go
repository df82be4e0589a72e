package main

import (
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/robfig/cron/v3"

	"github.com/mnee-network/explorer/core/mockgen"
	"github.com/mnee-network/explorer/core/query"
	"github.com/mnee-network/explorer/internal/prefs"
)

const tomlConfigVersion = "1.0.0"

type explorerConfig struct {
	Version string
	General generalConfig
	Data    dataConfig
	Prefs   prefsConfig
	Ops     opsConfig
	Refresh refreshConfig
	Log     logConfig
}

type generalConfig struct {
	DataDir string
	Seed    int64 // 0 seeds from the wall clock
}

type dataConfig struct {
	Transactions int
	Blocks       int
	Holders      int
	PerPage      int
	AddressCache int
}

type prefsConfig struct {
	CacheSize string
}

type opsConfig struct {
	Enabled        bool
	IP             string
	Port           int
	RateLimit      float64
	Burst          int
	ExemptIPs      []string
	AllowedOrigins []string
}

type refreshConfig struct {
	Schedule string
}

type logConfig struct {
	Folder     string
	FileName   string
	RotateSize int
	Verbosity  int
	Console    string
}

const (
	consoleText = "text"
	consoleJSON = "json"
	consoleOff  = "off"
)

var defaultConfig = explorerConfig{
	Version: tomlConfigVersion,
	General: generalConfig{
		DataDir: "./.mnee",
		Seed:    0,
	},
	Data: dataConfig{
		Transactions: 1000,
		Blocks:       100,
		Holders:      100,
		PerPage:      query.DefaultPerPage,
		AddressCache: 256,
	},
	Prefs: prefsConfig{
		CacheSize: prefs.DefaultCacheSize,
	},
	Ops: opsConfig{
		Enabled:        false,
		IP:             "127.0.0.1",
		Port:           9900,
		RateLimit:      5,
		Burst:          20,
		ExemptIPs:      []string{"127.0.0.1"},
		AllowedOrigins: []string{"*"},
	},
	Refresh: refreshConfig{
		Schedule: "@every 10s",
	},
	Log: logConfig{
		Folder:     "./latest",
		FileName:   "explorer.log",
		RotateSize: 100,
		Verbosity:  2,
		Console:    consoleText,
	},
}

func getDefaultExplorerConfigCopy() explorerConfig {
	config := defaultConfig
	config.Ops.ExemptIPs = append([]string{}, defaultConfig.Ops.ExemptIPs...)
	config.Ops.AllowedOrigins = append([]string{}, defaultConfig.Ops.AllowedOrigins...)
	return config
}

func validateExplorerConfig(config explorerConfig) error {
	if config.Data.Transactions < 0 || config.Data.Blocks < 0 || config.Data.Holders < 0 {
		return fmt.Errorf("data counts must not be negative: %+v", config.Data)
	}
	if maxHeights := int(mockgen.BaseHeight) + 1; config.Data.Transactions > maxHeights || config.Data.Blocks > maxHeights {
		return fmt.Errorf("at most %v transactions and blocks fit below height %v", maxHeights, mockgen.BaseHeight)
	}
	if config.Data.PerPage <= 0 {
		return fmt.Errorf("invalid page size: %v", config.Data.PerPage)
	}
	if config.Data.AddressCache <= 0 {
		return fmt.Errorf("invalid address cache size: %v", config.Data.AddressCache)
	}
	if _, err := prefs.ParseCacheSize(config.Prefs.CacheSize); err != nil {
		return err
	}
	if config.Ops.Enabled {
		if config.Ops.Port < 0 || config.Ops.Port > 65535 {
			return fmt.Errorf("invalid ops port: %v", config.Ops.Port)
		}
		if config.Ops.RateLimit <= 0 || config.Ops.Burst <= 0 {
			return fmt.Errorf("ops rate limit and burst must be positive: %v/%v",
				config.Ops.RateLimit, config.Ops.Burst)
		}
	}
	if _, err := cron.ParseStandard(config.Refresh.Schedule); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %v", config.Refresh.Schedule, err)
	}
	accepts := []string{consoleText, consoleJSON, consoleOff}
	if err := checkStringAccepted("--log.console", config.Log.Console, accepts); err != nil {
		return err
	}
	return nil
}

func checkStringAccepted(flag string, val string, accepts []string) error {
	for _, accept := range accepts {
		if val == accept {
			return nil
		}
	}
	acceptsStr := strings.Join(accepts, ", ")
	return fmt.Errorf("unknown arg for %s: %s (%v)", flag, val, acceptsStr)
}

func loadExplorerConfig(file string) (explorerConfig, error) {
	b, err := ioutil.ReadFile(file)
	if err != nil {
		return explorerConfig{}, err
	}

	var config explorerConfig
	if err := toml.Unmarshal(b, &config); err != nil {
		return explorerConfig{}, err
	}
	return config, nil
}

func writeExplorerConfigToFile(config explorerConfig, file string) error {
	b, err := toml.Marshal(config)
	if err != nil {
		return err
	}
	return ioutil.WriteFile(file, b, 0644)
}
