package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mnee-network/explorer/core/mockgen"
	"github.com/mnee-network/explorer/core/query"
	"github.com/mnee-network/explorer/core/types"
	"github.com/mnee-network/explorer/explorer"
	"github.com/mnee-network/explorer/internal/cli"
	"github.com/mnee-network/explorer/internal/format"
)

const dateLayout = "2006-01-02"

// list flags
var (
	pageFlag = cli.IntFlag{
		Name:     "page",
		Usage:    "page to show, starting at 1",
		DefValue: 1,
	}
	perPageFlag = cli.IntFlag{
		Name:     "per-page",
		Usage:    "records per page, defaults to data.perpage",
		DefValue: 0,
	}
	txTypeFlag = cli.StringFlag{
		Name:     "type",
		Usage:    "transaction type (all, mint, burn, transfer)",
		DefValue: string(query.TypeAll),
	}
	minAmountFlag = cli.Float64Flag{
		Name:  "min",
		Usage: "minimum amount, inclusive",
	}
	maxAmountFlag = cli.Float64Flag{
		Name:  "max",
		Usage: "maximum amount, inclusive",
	}
	startDateFlag = cli.StringFlag{
		Name:  "start",
		Usage: "earliest date (2006-01-02), inclusive",
	}
	endDateFlag = cli.StringFlag{
		Name:  "end",
		Usage: "latest date (2006-01-02), inclusive",
	}
	limitFlag = cli.IntFlag{
		Name:     "limit",
		Usage:    "number of history entries to show",
		DefValue: 25,
	}
	daysFlag = cli.IntFlag{
		Name:     "days",
		Usage:    "number of days covered by the series",
		DefValue: types.DefaultTimeRange.Days,
	}
	baseFlag = cli.Float64Flag{
		Name:     "base",
		Usage:    "base value of a custom series",
		DefValue: 1000,
	}
	varianceFlag = cli.Float64Flag{
		Name:     "variance",
		Usage:    "variance of a custom series",
		DefValue: 100,
	}
	growthFlag = cli.Float64Flag{
		Name:  "growth",
		Usage: "daily growth of a custom series, a plain series when unset",
	}
	timeRangeFlag = cli.StringFlag{
		Name:     "range",
		Usage:    "analytics time range (1D, 7D, 30D, 6M, All)",
		DefValue: types.DefaultTimeRange.Label,
	}
)

var (
	txsCmd = &cobra.Command{
		Use:   "txs",
		Short: "list transactions",
		Args:  cobra.NoArgs,
		RunE:  withApp(runTxs),
	}
	txCmd = &cobra.Command{
		Use:   "tx <txid>",
		Short: "show a transaction",
		Args:  cobra.ExactArgs(1),
		RunE:  withApp(runTx),
	}
	blocksCmd = &cobra.Command{
		Use:   "blocks",
		Short: "list blocks",
		Args:  cobra.NoArgs,
		RunE:  withApp(runBlocks),
	}
	blockCmd = &cobra.Command{
		Use:   "block <height>",
		Short: "show a block and its transactions",
		Args:  cobra.ExactArgs(1),
		RunE:  withApp(runBlock),
	}
	addressCmd = &cobra.Command{
		Use:   "address <address>",
		Short: "show an address and its history",
		Args:  cobra.ExactArgs(1),
		RunE:  withApp(runAddress),
	}
	holdersCmd = &cobra.Command{
		Use:   "holders",
		Short: "list the top holders",
		Args:  cobra.NoArgs,
		RunE:  withApp(runHolders),
	}
	searchCmd = &cobra.Command{
		Use:   "search <query>",
		Short: "search by txid, address or block height",
		Args:  cobra.MinimumNArgs(1),
		RunE:  withApp(runSearch),
	}
	chartCmd = &cobra.Command{
		Use:   "chart [name|custom]",
		Short: "print a chart series, or list the charts without a name",
		Args:  cobra.MaximumNArgs(1),
		RunE:  withApp(runChart),
	}
	analyticsCmd = &cobra.Command{
		Use:   "analytics",
		Short: "show address and network analytics",
		Args:  cobra.NoArgs,
		RunE:  withApp(runAnalytics),
	}
	themeCmd = &cobra.Command{
		Use:   "theme [light|dark|toggle|reset]",
		Short: "show or change the theme, reset clears every stored preference",
		Args:  cobra.MaximumNArgs(1),
		RunE:  withApp(runTheme),
	}
	prefsCmd = &cobra.Command{
		Use:   "prefs",
		Short: "list the stored preferences",
		Args:  cobra.NoArgs,
		RunE:  withApp(runPrefs),
	}
)

func registerViewCmds() error {
	cmdFlags := []struct {
		cmd   *cobra.Command
		flags []cli.Flag
	}{
		{txsCmd, []cli.Flag{txTypeFlag, minAmountFlag, maxAmountFlag, startDateFlag, endDateFlag, pageFlag, perPageFlag}},
		{txCmd, nil},
		{blocksCmd, []cli.Flag{pageFlag, perPageFlag}},
		{blockCmd, nil},
		{addressCmd, []cli.Flag{limitFlag}},
		{holdersCmd, []cli.Flag{pageFlag, perPageFlag}},
		{searchCmd, []cli.Flag{limitFlag}},
		{chartCmd, []cli.Flag{daysFlag, baseFlag, varianceFlag, growthFlag}},
		{analyticsCmd, []cli.Flag{timeRangeFlag}},
		{themeCmd, nil},
		{prefsCmd, nil},
	}
	for _, cf := range cmdFlags {
		if err := cli.RegisterFlags(cf.cmd, cf.flags); err != nil {
			return err
		}
		rootCmd.AddCommand(cf.cmd)
	}
	return nil
}

func getFilter(cmd *cobra.Command) (query.Filter, error) {
	tf, err := query.ParseTypeFilter(cli.GetStringFlagValue(cmd, txTypeFlag))
	if err != nil {
		return query.Filter{}, err
	}
	f := query.Filter{Type: tf}
	if cli.IsFlagChanged(cmd, minAmountFlag) {
		v := cli.GetFloat64FlagValue(cmd, minAmountFlag)
		f.MinAmount = &v
	}
	if cli.IsFlagChanged(cmd, maxAmountFlag) {
		v := cli.GetFloat64FlagValue(cmd, maxAmountFlag)
		f.MaxAmount = &v
	}
	if cli.IsFlagChanged(cmd, startDateFlag) {
		start, err := time.ParseInLocation(dateLayout, cli.GetStringFlagValue(cmd, startDateFlag), time.Local)
		if err != nil {
			return query.Filter{}, errors.Wrap(types.ErrInvalidArgument, err.Error())
		}
		f.Start = &start
	}
	if cli.IsFlagChanged(cmd, endDateFlag) {
		end, err := time.ParseInLocation(dateLayout, cli.GetStringFlagValue(cmd, endDateFlag), time.Local)
		if err != nil {
			return query.Filter{}, errors.Wrap(types.ErrInvalidArgument, err.Error())
		}
		// the whole end day is included
		end = end.Add(24*time.Hour - time.Millisecond)
		f.End = &end
	}
	return f, nil
}

func getPage(cmd *cobra.Command, a *app) (int, int) {
	perPage := cli.GetIntFlagValue(cmd, perPageFlag)
	if !cli.IsFlagChanged(cmd, perPageFlag) {
		perPage = a.config.Data.PerPage
	}
	return cli.GetIntFlagValue(cmd, pageFlag), perPage
}

func runTxs(cmd *cobra.Command, _ []string, a *app) error {
	f, err := getFilter(cmd)
	if err != nil {
		return err
	}
	if err := a.session.SetFilters(f); err != nil {
		return err
	}
	if err := a.session.SetPagination(getPage(cmd, a)); err != nil {
		return err
	}
	return showTransactionPage(a)
}

func showTransactionPage(a *app) error {
	page, err := a.session.FilteredPage()
	if err != nil {
		return err
	}
	if a.out.json {
		return a.out.encode(page)
	}
	sum, err := a.session.FilteredSummary()
	if err != nil {
		return err
	}
	a.out.header("Transactions")
	a.out.fields(
		[2]string{"Volume", format.MNEE(sum.Volume, 2)},
		[2]string{"Fees", format.MNEE(sum.TotalFees, 6)},
		[2]string{"Addresses", strconv.Itoa(sum.UniqueAddresses)},
		[2]string{"Pending", strconv.Itoa(sum.Pending)},
	)
	a.out.transactions(page.Items)
	a.out.pageFooter(page.Page, page.TotalPages, page.Total)
	return nil
}

func runTx(_ *cobra.Command, args []string, a *app) error {
	if err := a.session.SetSelectedTransaction(args[0]); err != nil {
		return err
	}
	tx, _ := a.session.SelectedTransaction()
	if a.out.json {
		return a.out.encode(tx)
	}
	a.out.transaction(tx)
	return nil
}

func runBlocks(cmd *cobra.Command, _ []string, a *app) error {
	page, perPage := getPage(cmd, a)
	p, err := query.Paginate(a.session.Blocks(), page, perPage)
	if err != nil {
		return err
	}
	if a.out.json {
		return a.out.encode(p)
	}
	a.out.header("Blocks")
	a.out.blocks(p.Items)
	a.out.pageFooter(p.Page, p.TotalPages, p.Total)
	return nil
}

func parseHeight(s string) (uint64, error) {
	height, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(types.ErrInvalidArgument, "invalid block height %q", s)
	}
	return height, nil
}

func runBlock(_ *cobra.Command, args []string, a *app) error {
	height, err := parseHeight(args[0])
	if err != nil {
		return err
	}
	if err := a.session.SetCurrentBlock(height); err != nil {
		return err
	}
	return showBlock(a, height)
}

func showBlock(a *app, height uint64) error {
	b, ok := a.session.Block(height)
	if !ok {
		a.out.notFound("block", strconv.FormatUint(height, 10))
		return nil
	}
	members := a.session.BlockTransactions(height)
	if a.out.json {
		return a.out.encode(struct {
			Block        types.Block         `json:"block"`
			Transactions []types.Transaction `json:"transactions"`
		}{b, members})
	}
	a.out.block(b)
	a.out.transactions(members)
	return nil
}

func runAddress(cmd *cobra.Command, args []string, a *app) error {
	if _, ok := a.session.Address(args[0]); !ok {
		return errors.Wrapf(types.ErrNotFound, "address %s", args[0])
	}
	return showAddress(a, args[0], cli.GetIntFlagValue(cmd, limitFlag))
}

func showAddress(a *app, addr string, limit int) error {
	detail, ok := a.session.Address(addr)
	if !ok {
		a.out.notFound("address", addr)
		return nil
	}
	session := a.session.AddressTransactions(addr)
	if a.out.json {
		return a.out.encode(struct {
			types.Address
			SessionTransactions []types.Transaction `json:"sessionTransactions"`
		}{detail, session})
	}
	a.out.address(detail, limit)
	if len(session) > 0 {
		a.out.header("In the transaction list")
		a.out.transactions(session)
	}
	return nil
}

func runHolders(cmd *cobra.Command, _ []string, a *app) error {
	page, perPage := getPage(cmd, a)
	p, err := query.Paginate(a.session.Holders(), page, perPage)
	if err != nil {
		return err
	}
	if a.out.json {
		return a.out.encode(p)
	}
	a.out.header("Top Holders")
	a.out.holders(p.Items)
	a.out.pageFooter(p.Page, p.TotalPages, p.Total)
	return nil
}

func runSearch(cmd *cobra.Command, args []string, a *app) error {
	res, err := a.session.Dispatch(strings.Join(args, " "))
	if err != nil {
		return err
	}
	switch res.Kind {
	case explorer.SearchTransaction:
		tx, ok := a.session.Transaction(res.Key)
		if !ok {
			a.out.notFound("transaction", res.Key)
			return nil
		}
		if a.out.json {
			return a.out.encode(tx)
		}
		a.out.transaction(tx)
		return nil
	case explorer.SearchAddress:
		return showAddress(a, res.Key, cli.GetIntFlagValue(cmd, limitFlag))
	case explorer.SearchBlock:
		height, err := parseHeight(res.Key)
		if err != nil {
			return err
		}
		return showBlock(a, height)
	}
	return showTransactionPage(a)
}

func runChart(cmd *cobra.Command, args []string, a *app) error {
	if len(args) == 0 {
		return listCharts(a)
	}
	var (
		days   = cli.GetIntFlagValue(cmd, daysFlag)
		title  string
		points []types.ChartDataPoint
		err    error
	)
	if args[0] == "custom" {
		base := cli.GetFloat64FlagValue(cmd, baseFlag)
		variance := cli.GetFloat64FlagValue(cmd, varianceFlag)
		title = "Custom series"
		if cli.IsFlagChanged(cmd, growthFlag) {
			points, err = a.session.GrowthChart(days, base, variance, cli.GetFloat64FlagValue(cmd, growthFlag))
		} else {
			points, err = a.session.Chart(days, base, variance)
		}
	} else {
		var p mockgen.ChartPreset
		if p, err = mockgen.LookupPreset(args[0]); err == nil {
			title = p.Title
			points, err = a.session.PresetChart(p.Name, days)
		}
	}
	if err != nil {
		return err
	}
	if a.out.json {
		return a.out.encode(points)
	}
	a.out.series(title, points)
	return nil
}

func listCharts(a *app) error {
	names := mockgen.PresetNames()
	if a.out.json {
		return a.out.encode(names)
	}
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		p, _ := mockgen.LookupPreset(name)
		rows = append(rows, []string{p.Name, p.Title})
	}
	a.out.header("Charts")
	a.out.table([]string{"Name", "Title"}, rows)
	return nil
}

func runAnalytics(cmd *cobra.Command, _ []string, a *app) error {
	tr, err := types.ParseTimeRange(cli.GetStringFlagValue(cmd, timeRangeFlag))
	if err != nil {
		return err
	}
	if err := a.session.SetTimeRange(tr); err != nil {
		return err
	}
	series := a.session.Analytics()
	shares, err := a.session.SupplyDistribution(tr.Days)
	if err != nil {
		return err
	}
	if a.out.json {
		return a.out.encode(struct {
			Series mockgen.AnalyticsSeries `json:"series"`
			Supply []mockgen.SupplyShare   `json:"supplyDistribution"`
		}{series, shares})
	}

	a.out.header(fmt.Sprintf("Analytics (%s)", tr.Label))
	rows := [][]string{
		seriesRow("New addresses per day", series.NewAddresses),
		seriesRow("Active addresses per day", series.ActiveAddresses),
		seriesRow("Cumulative addresses", series.CumulativeAddresses),
		seriesRow("Block time (s)", series.BlockTimeTrends),
		seriesRow("Blocks per day", series.BlockProductionRate),
	}
	a.out.table([]string{"Series", "Latest", "Min", "Max", "Average"}, rows)

	a.out.header("Supply distribution")
	supplyRows := make([][]string, 0, len(shares))
	for _, s := range shares {
		supplyRows = append(supplyRows, []string{s.Name, format.MNEE(s.Value, 0), format.Percentage(s.Percent, 2)})
	}
	a.out.table([]string{"Supply", "Amount", "Share"}, supplyRows)
	return nil
}

func seriesRow(name string, points []types.ChartDataPoint) []string {
	if len(points) == 0 {
		return []string{name, "-", "-", "-", "-"}
	}
	lo, hi, sum := points[0].Value, points[0].Value, 0.0
	for _, p := range points {
		if p.Value < lo {
			lo = p.Value
		}
		if p.Value > hi {
			hi = p.Value
		}
		sum += p.Value
	}
	return []string{
		name,
		format.Number(points[len(points)-1].Value, 2),
		format.Number(lo, 2),
		format.Number(hi, 2),
		format.Number(sum/float64(len(points)), 2),
	}
}

func runTheme(cmd *cobra.Command, args []string, a *app) error {
	var err error
	if len(args) == 1 {
		switch args[0] {
		case "toggle":
			_, err = a.session.ToggleTheme()
		case "reset":
			if a.store != nil {
				err = a.store.Reset()
			}
			a.session.ResetTheme()
		default:
			var theme types.Theme
			if theme, err = types.ParseTheme(args[0]); err == nil {
				err = a.session.SetTheme(theme)
			}
		}
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), a.session.Theme())
	return nil
}

func runPrefs(_ *cobra.Command, _ []string, a *app) error {
	if a.store == nil {
		return errors.New("preference store unavailable")
	}
	stored, err := a.store.Preferences()
	if err != nil {
		return err
	}
	if a.out.json {
		return a.out.encode(stored)
	}
	names := make([]string, 0, len(stored))
	for name := range stored {
		names = append(names, name)
	}
	sort.Strings(names)
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name, stored[name]})
	}
	a.out.header("Preferences")
	a.out.table([]string{"Name", "Value"}, rows)
	return nil
}
