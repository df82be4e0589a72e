package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	jsoniter "github.com/json-iterator/go"
	"github.com/olekukonko/tablewriter"

	"github.com/mnee-network/explorer/core/types"
	"github.com/mnee-network/explorer/internal/format"
)

var jsonIter = jsoniter.ConfigCompatibleWithStandardLibrary

// header colors per theme
var themeColors = map[types.Theme]struct{ title, label lipgloss.Color }{
	types.ThemeLight: {title: lipgloss.Color("4"), label: lipgloss.Color("8")},
	types.ThemeDark:  {title: lipgloss.Color("6"), label: lipgloss.Color("7")},
}

type renderer struct {
	w      io.Writer
	json   bool
	now    func() time.Time
	title  lipgloss.Style
	label  lipgloss.Style
	errSty lipgloss.Style
}

func newRenderer(w io.Writer, theme types.Theme, json bool) *renderer {
	colors, ok := themeColors[theme]
	if !ok {
		colors = themeColors[types.DefaultTheme]
	}
	return &renderer{
		w:      w,
		json:   json,
		now:    time.Now,
		title:  lipgloss.NewStyle().Bold(true).Foreground(colors.title),
		label:  lipgloss.NewStyle().Foreground(colors.label),
		errSty: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

func (r *renderer) header(title string) {
	fmt.Fprintln(r.w, r.title.Render(title))
}

func (r *renderer) notFound(kind, key string) {
	fmt.Fprintln(r.w, r.errSty.Render(fmt.Sprintf("%s not found: %s", kind, key)))
}

// fields prints label/value pairs one per line.
func (r *renderer) fields(pairs ...[2]string) {
	width := 0
	for _, p := range pairs {
		if len(p[0]) > width {
			width = len(p[0])
		}
	}
	for _, p := range pairs {
		fmt.Fprintf(r.w, "%s  %s\n", r.label.Render(fmt.Sprintf("%-*s", width, p[0])), p[1])
	}
}

func (r *renderer) table(headers []string, rows [][]string) {
	table := tablewriter.NewWriter(r.w)
	table.SetHeader(headers)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.AppendBulk(rows)
	table.Render()
}

func (r *renderer) encode(v interface{}) error {
	enc := jsonIter.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (r *renderer) transactions(txs []types.Transaction) {
	rows := make([][]string, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, []string{
			format.Txid(tx.Txid, 8),
			string(tx.Type),
			format.MNEE(tx.Amount, 2),
			strconv.FormatUint(tx.BlockHeight, 10),
			string(tx.Status),
			format.TimeAgo(tx.Timestamp, r.now()),
		})
	}
	r.table([]string{"Txid", "Type", "Amount", "Block", "Status", "Age"}, rows)
}

func (r *renderer) transaction(tx types.Transaction) {
	r.header("Transaction " + format.Txid(tx.Txid, 8))
	pairs := [][2]string{
		{"Txid", tx.Txid},
		{"Status", string(tx.Status)},
		{"Type", string(tx.Type)},
		{"Block", strconv.FormatUint(tx.BlockHeight, 10)},
		{"Confirmations", strconv.FormatUint(tx.Confirmations, 10)},
		{"Time", format.DateTime(tx.Timestamp)},
		{"Amount", format.MNEE(tx.Amount, 4)},
		{"From", joinAddresses(tx.From)},
		{"To", joinAddresses(tx.To)},
		{"MNEE fee", format.MNEE(tx.Fee.MneeFee, 6)},
		{"Miner fee", format.MNEE(tx.Fee.MinerFee, 6)},
		{"UTXO build cost", format.MNEE(tx.Fee.UtxoBuildCost, 6)},
		{"Transfer cost", format.MNEE(tx.Fee.TransferCost, 6)},
		{"Total fee", format.MNEE(tx.Fee.Total(), 6)},
	}
	if tx.TimeBetweenTx != nil {
		pairs = append(pairs, [2]string{"Since previous", format.Duration(*tx.TimeBetweenTx * 1000)})
	}
	r.fields(pairs...)
}

func (r *renderer) blocks(blocks []types.Block) {
	rows := make([][]string, 0, len(blocks))
	for _, b := range blocks {
		rows = append(rows, []string{
			strconv.FormatUint(b.Height, 10),
			format.Txid(b.Hash, 8),
			strconv.Itoa(b.TransactionCount),
			format.MNEE(b.TotalMneeTransferred, 2),
			format.Address(b.Miner, 6),
			format.TimeAgo(b.Timestamp, r.now()),
		})
	}
	r.table([]string{"Height", "Hash", "Txs", "Transferred", "Miner", "Age"}, rows)
}

func (r *renderer) block(b types.Block) {
	r.header(fmt.Sprintf("Block #%d", b.Height))
	r.fields(
		[2]string{"Hash", b.Hash},
		[2]string{"Time", format.DateTime(b.Timestamp)},
		[2]string{"Miner", b.Miner},
		[2]string{"Size", format.Number(float64(b.Size), 2) + " bytes"},
		[2]string{"Transactions", strconv.Itoa(b.TransactionCount)},
		[2]string{"Transferred", format.MNEE(b.TotalMneeTransferred, 2)},
		[2]string{"Average transfer", format.MNEE(b.AvgTransferVolume, 2)},
		[2]string{"Largest transfer", format.MNEE(b.LargestTransaction, 2)},
		[2]string{"Unique addresses", strconv.Itoa(b.UniqueAddresses)},
		[2]string{"Total fee", format.MNEE(b.TotalFee, 6)},
		[2]string{"Average fee", format.MNEE(b.AverageFee, 6)},
	)
}

func (r *renderer) address(a types.Address, limit int) {
	r.header("Address " + a.Address)
	r.fields(
		[2]string{"Balance", format.MNEE(a.Balance, 4)},
		[2]string{"Transactions", strconv.Itoa(a.TransactionCount)},
		[2]string{"Total received", format.MNEE(a.TotalReceived, 2)},
		[2]string{"Total sent", format.MNEE(a.TotalSent, 2)},
		[2]string{"First seen", format.Date(a.FirstSeen)},
		[2]string{"Last activity", format.TimeAgo(a.LastActivity, r.now())},
	)
	history := a.Transactions
	// newest first, at most limit entries
	rows := make([][]string, 0, limit)
	for i := len(history) - 1; i >= 0 && len(rows) < limit; i-- {
		at := history[i]
		rows = append(rows, []string{
			format.Txid(at.Txid, 8),
			string(at.Type),
			format.MNEE(at.Signed(), 2),
			format.MNEE(at.RunningBalance, 2),
			format.Address(at.Counterparty, 6),
			format.DateTime(at.Timestamp),
		})
	}
	r.table([]string{"Txid", "Direction", "Amount", "Balance", "Counterparty", "Time"}, rows)
}

func (r *renderer) holders(holders []types.Holder) {
	rows := make([][]string, 0, len(holders))
	for _, h := range holders {
		rows = append(rows, []string{
			strconv.Itoa(h.Rank),
			h.Address,
			format.MNEE(h.Balance, 2),
			format.Percentage(h.PercentageOfSupply, 4),
			strconv.Itoa(h.TransactionCount),
		})
	}
	r.table([]string{"Rank", "Address", "Balance", "Supply", "Txs"}, rows)
}

func (r *renderer) series(title string, points []types.ChartDataPoint) {
	r.header(title)
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		label := p.Label
		if label == "" {
			label = format.Date(p.Timestamp)
		}
		rows = append(rows, []string{label, format.Number(p.Value, 2)})
	}
	r.table([]string{"Date", "Value"}, rows)
}

func (r *renderer) pageFooter(page, totalPages, total int) {
	fmt.Fprintln(r.w, r.label.Render(fmt.Sprintf("page %d of %d, %d records", page, totalPages, total)))
}

func joinAddresses(addrs []string) string {
	switch len(addrs) {
	case 0:
		return "-"
	case 1:
		return addrs[0]
	}
	return fmt.Sprintf("%s (+%d)", addrs[0], len(addrs)-1)
}
