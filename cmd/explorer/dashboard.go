package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mnee-network/explorer/api/service"
	"github.com/mnee-network/explorer/api/service/prometheus"
	"github.com/mnee-network/explorer/api/service/refresh"
	"github.com/mnee-network/explorer/core/mockgen"
	"github.com/mnee-network/explorer/core/types"
	"github.com/mnee-network/explorer/internal/cli"
	"github.com/mnee-network/explorer/internal/format"
	"github.com/mnee-network/explorer/internal/utils"
)

const dashboardLatest = 5

var (
	timeframeFlag = cli.StringFlag{
		Name:      "timeframe",
		Shorthand: "t",
		Usage:     "dashboard timeframe (1, 7, 30, 6M, all)",
		DefValue:  string(types.Timeframe1D),
	}
	watchFlag = cli.BoolFlag{
		Name:      "watch",
		Shorthand: "w",
		Usage:     "keep refreshing the dashboard on the refresh schedule",
		DefValue:  false,
	}
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "show the network dashboard",
	Args:  cobra.NoArgs,
	RunE:  runDashboard,
}

var runDashboard = withApp(dashboard)

func registerDashboardCmd() error {
	flags := []cli.Flag{timeframeFlag, watchFlag}
	if err := cli.RegisterFlags(rootCmd, flags); err != nil {
		return err
	}
	if err := cli.RegisterFlags(dashboardCmd, flags); err != nil {
		return err
	}
	rootCmd.AddCommand(dashboardCmd)
	return nil
}

func dashboard(cmd *cobra.Command, _ []string, a *app) error {
	tf, err := types.ParseTimeframe(cli.GetStringFlagValue(cmd, timeframeFlag))
	if err != nil {
		return err
	}
	if !cli.GetBoolFlagValue(cmd, watchFlag) {
		return showDashboard(a, tf)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchDashboard(ctx, a, tf)
}

func showDashboard(a *app, tf types.Timeframe) error {
	metrics, err := a.session.DashboardMetrics(tf)
	if err != nil {
		return err
	}
	var (
		info   = a.session.GeneralInfo()
		blocks = latest(a.session.Blocks())
		txs    = latest(a.session.Transactions())
	)
	daily, err := a.session.PresetChart(mockgen.PresetDailyTransactions.Name, 7)
	if err != nil {
		return err
	}
	if a.out.json {
		return a.out.encode(struct {
			Timeframe          types.Timeframe        `json:"timeframe"`
			Metrics            types.TimeframeMetrics `json:"metrics"`
			GeneralInfo        types.GeneralInfo      `json:"generalInfo"`
			DailyTransactions  []types.ChartDataPoint `json:"dailyTransactions"`
			LatestBlocks       []types.Block          `json:"latestBlocks"`
			LatestTransactions []types.Transaction    `json:"latestTransactions"`
		}{tf, metrics, info, daily, blocks, txs})
	}

	rt := info.ResponseTimes[tf]
	a.out.header("MNEE Network")
	a.out.fields(
		[2]string{"Price", format.Currency(info.CurrentPrice, 4)},
		[2]string{"Peg deviation", format.Percentage(info.PegDeviation, 3)},
		[2]string{"Market cap", format.Currency(info.MarketCap, 0)},
		[2]string{"Holders", format.Number(float64(info.HolderCount), 1)},
		[2]string{"Burned", format.MNEE(info.TotalBurned, 0)},
		[2]string{"Response time", format.Duration(rt.Avg) + " (" + format.Duration(rt.Min) + " - " + format.Duration(rt.Max) + ")"},
	)
	a.out.header("Activity (" + string(tf) + ")")
	a.out.fields(
		[2]string{"Volume", format.MNEE(metrics.TransactionVolume, 0)},
		[2]string{"Transactions", format.Number(float64(metrics.TransactionCount), 1)},
		[2]string{"Active addresses", format.Number(float64(metrics.ActiveAddresses), 1)},
		[2]string{"Minted", format.MNEE(metrics.MintActivity, 0)},
		[2]string{"Burned", format.MNEE(metrics.BurnActivity, 0)},
		[2]string{"Average fee", format.MNEE(metrics.AvgTransactionFee, 6)},
		[2]string{"Average transfer", format.MNEE(metrics.AvgMneeTransferred, 2)},
	)
	a.out.series("Daily transactions", daily)
	a.out.header("Latest blocks")
	a.out.blocks(blocks)
	a.out.header("Latest transactions")
	a.out.transactions(txs)
	return nil
}

func latest[T any](items []T) []T {
	if len(items) > dashboardLatest {
		return items[:dashboardLatest]
	}
	return items
}

// watchDashboard renders the dashboard on every refresh tick until ctx is
// done. The ops service runs alongside when enabled.
func watchDashboard(ctx context.Context, a *app, tf types.Timeframe) error {
	if !a.session.AutoRefresh() {
		a.session.ToggleAutoRefresh()
	}
	if err := showDashboard(a, tf); err != nil {
		return err
	}

	ticker, err := refresh.New(a.config.Refresh.Schedule)
	if err != nil {
		return err
	}
	m := service.NewManager()
	ops := prometheus.New(prometheus.Config{
		Enabled:        a.config.Ops.Enabled,
		IP:             a.config.Ops.IP,
		Port:           a.config.Ops.Port,
		RateLimit:      a.config.Ops.RateLimit,
		Burst:          a.config.Ops.Burst,
		ExemptIPs:      a.config.Ops.ExemptIPs,
		AllowedOrigins: a.config.Ops.AllowedOrigins,
	}, func() error {
		if a.session.Loading() {
			return errors.New("session loading")
		}
		return m.Health()
	})
	if err := m.Register(service.Ops, ops); err != nil {
		return err
	}
	if err := m.Register(service.Refresh, ticker); err != nil {
		return err
	}

	if err := m.StartServices(); err != nil {
		return err
	}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-ctx.Done()
		return m.StopServices()
	})
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C():
				if !a.session.AutoRefresh() {
					continue
				}
				if err := showDashboard(a, tf); err != nil {
					utils.Logger().Warn().Err(err).Msg("dashboard refresh failed")
				}
			}
		}
	})
	utils.Logger().Info().Str("schedule", a.config.Refresh.Schedule).Msg("watching dashboard")
	return g.Wait()
}
