package explorer

import (
	"strconv"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnee-network/explorer/core/mockgen"
	"github.com/mnee-network/explorer/core/query"
	"github.com/mnee-network/explorer/core/types"
)

var testNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

type fakeThemeStore struct {
	theme   types.Theme
	saved   []types.Theme
	loadErr error
	saveErr error
}

func (fs *fakeThemeStore) LoadTheme() (types.Theme, error) {
	if fs.loadErr != nil {
		return "", fs.loadErr
	}
	if fs.theme == "" {
		return types.DefaultTheme, nil
	}
	return fs.theme, nil
}

func (fs *fakeThemeStore) SaveTheme(theme types.Theme) error {
	if fs.saveErr != nil {
		return fs.saveErr
	}
	fs.theme = theme
	fs.saved = append(fs.saved, theme)
	return nil
}

func newTestSession(t *testing.T, store ThemeStore) *Session {
	gen := mockgen.New(mockgen.WithSeed(42), mockgen.WithClock(func() time.Time { return testNow }))
	s, err := New(gen, DefaultConfig(), store)
	require.NoError(t, err)
	return s
}

func TestNewSession(t *testing.T) {
	s := newTestSession(t, nil)

	assert.False(t, s.Loading())
	assert.NotEmpty(t, s.ID())
	assert.Len(t, s.Transactions(), 1000)
	assert.Len(t, s.Blocks(), 100)
	assert.Len(t, s.Holders(), 100)
	assert.Equal(t, query.Pagination{Page: 1, PerPage: 25, Total: 1000}, s.Pagination())
	assert.Equal(t, query.DefaultFilter(), s.Filters())
	assert.Equal(t, types.DefaultTheme, s.Theme())
	assert.False(t, s.AutoRefresh())
	assert.Equal(t, types.DefaultTimeRange, s.TimeRange())
	assert.Len(t, s.Analytics().NewAddresses, types.DefaultTimeRange.Days+1)

	info := s.GeneralInfo()
	assert.Equal(t, info.TotalSupply*info.CurrentPrice, info.MarketCap)
}

func TestNewSessionInvalidConfig(t *testing.T) {
	tests := []Config{
		{Transactions: -1, PerPage: 25},
		{Blocks: -1, PerPage: 25},
		{Holders: -1, PerPage: 25},
		{PerPage: 0},
	}
	for i, c := range tests {
		if _, err := New(mockgen.New(mockgen.WithSeed(1)), c, nil); !errors.Is(err, types.ErrInvalidArgument) {
			t.Errorf("Test %v: expect invalid argument, got %v", i, err)
		}
	}
}

func TestFilterResetsPage(t *testing.T) {
	s := newTestSession(t, nil)
	require.NoError(t, s.SetPagination(3, 25))
	assert.Equal(t, 3, s.Pagination().Page)

	require.NoError(t, s.SetFilters(query.Filter{Type: "mint"}))
	p := s.Pagination()
	assert.Equal(t, 1, p.Page)

	mints, err := query.Apply(s.Transactions(), query.Filter{Type: "mint"})
	require.NoError(t, err)
	assert.Equal(t, len(mints), p.Total)

	page, err := s.FilteredPage()
	require.NoError(t, err)
	assert.Equal(t, mints[:25], page.Items)

	sum, err := s.FilteredSummary()
	require.NoError(t, err)
	assert.Equal(t, len(mints), sum.Count)
	assert.Equal(t, len(mints), sum.ByType[types.TxMint])

	// an invalid filter leaves the state untouched
	err = s.SetFilters(query.Filter{Type: "swap"})
	assert.True(t, errors.Is(err, types.ErrInvalidArgument))
	assert.Equal(t, query.TypeFilter("mint"), s.Filters().Type)
}

func TestEmptyFilterTypeMeansAll(t *testing.T) {
	s := newTestSession(t, nil)
	require.NoError(t, s.SetFilters(query.Filter{}))
	assert.Equal(t, query.TypeAll, s.Filters().Type)
	assert.Equal(t, 1000, s.Pagination().Total)
}

func TestSetPagination(t *testing.T) {
	tests := []struct {
		page, perPage int
		expPage       int
		expErr        bool
	}{
		{2, 25, 2, false},
		{40, 25, 40, false},
		{41, 25, 41, false},
		{500, 25, 500, false},
		{9, 100, 9, false},
		{20, 100, 10, false},
		{1, 0, 1, true},
		{0, 25, 1, true},
	}
	for i, test := range tests {
		s := newTestSession(t, nil)
		err := s.SetPagination(test.page, test.perPage)
		if (err != nil) != test.expErr {
			t.Errorf("Test %v: unexpected error %v", i, err)
		}
		if got := s.Pagination().Page; got != test.expPage {
			t.Errorf("Test %v: unexpected page %v / %v", i, got, test.expPage)
		}
	}
}

func TestExplicitPageBeyondLastIsEmpty(t *testing.T) {
	s := newTestSession(t, nil)
	require.NoError(t, s.SetPagination(41, 25))
	page, err := s.FilteredPage()
	require.NoError(t, err)
	assert.Equal(t, 41, page.Page)
	assert.Equal(t, 40, page.TotalPages)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}

func TestPageBeyondFilteredRangeIsEmpty(t *testing.T) {
	s := newTestSession(t, nil)
	minAmount := 1e9
	require.NoError(t, s.SetFilters(query.Filter{Type: query.TypeAll, MinAmount: &minAmount}))
	page, err := s.FilteredPage()
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, s.Pagination().Page)
}

func TestLookups(t *testing.T) {
	s := newTestSession(t, nil)

	tx := s.Transactions()[10]
	got, ok := s.Transaction(tx.Txid)
	require.True(t, ok)
	assert.Equal(t, tx, got)
	_, ok = s.Transaction("missing")
	assert.False(t, ok)

	b, ok := s.Block(mockgen.BaseHeight)
	require.True(t, ok)
	assert.Equal(t, mockgen.BaseHeight, b.Height)
	_, ok = s.Block(1)
	assert.False(t, ok)
	assert.Empty(t, s.BlockTransactions(1))
}

func TestBlocksAgreeWithTransactions(t *testing.T) {
	s := newTestSession(t, nil)
	for i, b := range s.Blocks() {
		members := s.BlockTransactions(b.Height)
		if len(members) == 0 {
			continue
		}
		if b.TransactionCount != len(members) {
			t.Errorf("Test %v: unexpected transaction count %v / %v", i, b.TransactionCount, len(members))
		}
		total := 0.0
		for j, tx := range members {
			assert.Equal(t, tx.Txid, b.Transactions[j])
			total += tx.Amount
		}
		assert.InDelta(t, total, b.TotalMneeTransferred, 1e-9)
		assert.InDelta(t, b.TotalFee/float64(b.TransactionCount), b.AverageFee, 1e-12)
	}
}

// With the default counts every height holds exactly one transaction, so each
// block reconciles to a single member and no unique addresses.
func TestDefaultBlocksHoldOneTransaction(t *testing.T) {
	s := newTestSession(t, nil)
	for i, b := range s.Blocks() {
		tx, ok := s.Transaction(b.Transactions[0])
		require.True(t, ok)
		if b.TransactionCount != 1 || len(b.Transactions) != 1 || b.UniqueAddresses != 0 {
			t.Errorf("Test %v: unexpected block %v: %v txs, %v unique", i, b.Height, b.TransactionCount, b.UniqueAddresses)
		}
		assert.Equal(t, b.Height, tx.BlockHeight)
		assert.Equal(t, tx.Amount, b.LargestTransaction)
		assert.Equal(t, tx.Amount, b.TotalMneeTransferred)
	}
}

func TestCurrentBlock(t *testing.T) {
	s := newTestSession(t, nil)
	_, ok := s.CurrentBlock()
	assert.False(t, ok)

	require.NoError(t, s.SetCurrentBlock(mockgen.BaseHeight-1))
	b, ok := s.CurrentBlock()
	require.True(t, ok)
	assert.Equal(t, mockgen.BaseHeight-1, b.Height)

	err := s.SetCurrentBlock(1)
	assert.True(t, errors.Is(err, types.ErrNotFound))

	s.ClearCurrentBlock()
	_, ok = s.CurrentBlock()
	assert.False(t, ok)
}

func TestAddressLookup(t *testing.T) {
	s := newTestSession(t, nil)
	known := s.Transactions()[0].From[0]
	synthetic := "1" + "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghi"
	require.Len(t, synthetic, types.AddressLength)

	tests := []struct {
		addr string
		exp  bool
	}{
		{known, true},
		{s.Holders()[0].Address, true},
		{synthetic, true},
		{"0x1234", false},
		{"", false},
		{"1" + "0OIl" + synthetic[5:], false},
	}
	for i, test := range tests {
		a, ok := s.Address(test.addr)
		if ok != test.exp {
			t.Errorf("Test %v: unexpected found %v / %v", i, ok, test.exp)
		}
		if ok && a.Address != test.addr {
			t.Errorf("Test %v: unexpected address %v", i, a.Address)
		}
	}

	a1, _ := s.Address(synthetic)
	a2, _ := s.Address(synthetic)
	assert.Equal(t, a1, a2)

	assert.NotEmpty(t, s.AddressTransactions(known))
}

func TestSelectedTransaction(t *testing.T) {
	s := newTestSession(t, nil)
	_, ok := s.SelectedTransaction()
	assert.False(t, ok)

	tx := s.Transactions()[3]
	require.NoError(t, s.SetSelectedTransaction(tx.Txid))
	got, ok := s.SelectedTransaction()
	require.True(t, ok)
	assert.Equal(t, tx.Txid, got.Txid)

	err := s.SetSelectedTransaction("unknown")
	assert.True(t, errors.Is(err, types.ErrNotFound))
	_, ok = s.SelectedTransaction()
	assert.True(t, ok)

	require.NoError(t, s.SetSelectedTransaction(""))
	_, ok = s.SelectedTransaction()
	assert.False(t, ok)
}

func TestSelectorsShareListsAndCopyState(t *testing.T) {
	s := newTestSession(t, nil)

	txs := s.Transactions()
	assert.Same(t, &txs[0], &s.Transactions()[0])
	blocks := s.Blocks()
	assert.Same(t, &blocks[0], &s.Blocks()[0])
	holders := s.Holders()
	assert.Same(t, &holders[0], &s.Holders()[0])

	s.AddToHistory("a")
	st := s.Search()
	st.History[0] = "changed"
	assert.Equal(t, []string{"a"}, s.Search().History)
}

func TestSearchHistory(t *testing.T) {
	s := newTestSession(t, nil)
	s.AddToHistory("  ")
	assert.Empty(t, s.Search().History)

	s.AddToHistory("a")
	s.AddToHistory(" b ")
	s.AddToHistory("a")
	assert.Equal(t, []string{"a", "b"}, s.Search().History)

	for i := 0; i != 15; i++ {
		s.AddToHistory(strconv.Itoa(i))
	}
	history := s.Search().History
	assert.Len(t, history, MaxSearchHistory)
	assert.Equal(t, "14", history[0])
	assert.Equal(t, "5", history[MaxSearchHistory-1])

	s.SetQuery("pending")
	assert.Equal(t, "pending", s.Search().Query)

	s.ClearHistory()
	assert.Empty(t, s.Search().History)
}

func TestDispatch(t *testing.T) {
	s := newTestSession(t, nil)
	txid := s.Transactions()[0].Txid
	addr := s.Holders()[0].Address

	tests := []struct {
		q   string
		exp SearchResult
	}{
		{txid, SearchResult{Kind: SearchTransaction, Key: txid}},
		{" " + addr + " ", SearchResult{Kind: SearchAddress, Key: addr}},
		{"800000", SearchResult{Kind: SearchBlock, Key: "800000"}},
		{"mint", SearchResult{Kind: SearchTransactions}},
		{"-5", SearchResult{Kind: SearchTransactions}},
	}
	for i, test := range tests {
		res, err := s.Dispatch(test.q)
		if err != nil {
			t.Fatalf("Test %v: %v", i, err)
		}
		if res != test.exp {
			t.Errorf("Test %v: unexpected result %v / %v", i, res, test.exp)
		}
	}
	st := s.Search()
	assert.Equal(t, "-5", st.Query)
	assert.Equal(t, []string{"-5", "mint", "800000", addr, txid}, st.History)

	_, err := s.Dispatch("   ")
	assert.True(t, errors.Is(err, types.ErrInvalidArgument))
	assert.Len(t, s.Search().History, 5)
}

func TestThemePersistence(t *testing.T) {
	store := &fakeThemeStore{theme: types.ThemeDark}
	s := newTestSession(t, store)
	assert.Equal(t, types.ThemeDark, s.Theme())

	theme, err := s.ToggleTheme()
	require.NoError(t, err)
	assert.Equal(t, types.ThemeLight, theme)
	assert.Equal(t, types.ThemeLight, store.theme)

	require.NoError(t, s.SetTheme(types.ThemeDark))
	assert.Equal(t, []types.Theme{types.ThemeLight, types.ThemeDark}, store.saved)

	err = s.SetTheme("sepia")
	assert.True(t, errors.Is(err, types.ErrInvalidArgument))
	assert.Equal(t, types.ThemeDark, s.Theme())
}

func TestThemeStoreFailures(t *testing.T) {
	store := &fakeThemeStore{loadErr: errors.New("boom")}
	s := newTestSession(t, store)
	assert.Equal(t, types.DefaultTheme, s.Theme())

	store.saveErr = errors.New("disk full")
	_, err := s.ToggleTheme()
	assert.Error(t, err)
	assert.Equal(t, types.ThemeDark, s.Theme())
}

func TestToggleAutoRefresh(t *testing.T) {
	s := newTestSession(t, nil)
	assert.True(t, s.ToggleAutoRefresh())
	assert.True(t, s.AutoRefresh())
	assert.False(t, s.ToggleAutoRefresh())
}

func TestAnalyticsTimeRange(t *testing.T) {
	s := newTestSession(t, nil)
	require.NoError(t, s.SetTimeRange(types.TimeRange7D))
	assert.Equal(t, types.TimeRange7D, s.TimeRange())
	series := s.Analytics()
	assert.Equal(t, types.TimeRange7D, series.TimeRange)
	assert.Len(t, series.BlockProductionRate, 8)

	err := s.SetTimeRange(types.TimeRange{Label: "0D"})
	assert.True(t, errors.Is(err, types.ErrInvalidArgument))
	assert.Equal(t, types.TimeRange7D, s.TimeRange())
}

func TestDashboardMetrics(t *testing.T) {
	s := newTestSession(t, nil)
	for i, tf := range types.AllTimeframes {
		if _, err := s.DashboardMetrics(tf); err != nil {
			t.Errorf("Test %v: %v", i, err)
		}
	}
	_, err := s.DashboardMetrics("2")
	assert.True(t, errors.Is(err, types.ErrInvalidArgument))
}

func TestChartsAreRegenerated(t *testing.T) {
	s := newTestSession(t, nil)
	c1, err := s.Chart(30, 1000, 100)
	require.NoError(t, err)
	c2, err := s.Chart(30, 1000, 100)
	require.NoError(t, err)
	assert.Len(t, c1, 31)
	assert.NotEqual(t, c1, c2)

	g, err := s.GrowthChart(30, 1000, 100, 10)
	require.NoError(t, err)
	assert.Len(t, g, 30)

	p, err := s.PresetChart("burned", 7)
	require.NoError(t, err)
	assert.NotEmpty(t, p)
	_, err = s.PresetChart("nope", 7)
	assert.True(t, errors.Is(err, types.ErrInvalidArgument))

	shares, err := s.SupplyDistribution(30)
	require.NoError(t, err)
	assert.Len(t, shares, 3)
}
