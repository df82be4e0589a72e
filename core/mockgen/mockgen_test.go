package mockgen

import (
	"math"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnee-network/explorer/core/types"
)

var testNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func newTestGenerator(seed int64) *Generator {
	return New(WithSeed(seed), WithClock(func() time.Time { return testNow }))
}

func TestIdentifiers(t *testing.T) {
	g := newTestGenerator(1)
	for i := 0; i != 100; i++ {
		addr := g.RandomAddress()
		if err := types.ValidateAddress(addr); err != nil {
			t.Errorf("Test %v: invalid address %v: %v", i, addr, err)
		}
		txid := g.RandomTxid()
		if err := types.ValidateTxid(txid); err != nil {
			t.Errorf("Test %v: invalid txid %v: %v", i, txid, err)
		}
	}
}

func TestSeededGeneratorIsDeterministic(t *testing.T) {
	txs1, err := newTestGenerator(7).Transactions(20)
	require.NoError(t, err)
	txs2, err := newTestGenerator(7).Transactions(20)
	require.NoError(t, err)
	assert.Equal(t, txs1, txs2)
}

func TestCountsBeyondBaseHeight(t *testing.T) {
	g := newTestGenerator(1)
	over := int(BaseHeight) + 2
	if _, err := g.Transactions(over); !errors.Is(err, types.ErrInvalidArgument) {
		t.Errorf("expect invalid argument for transactions, got %v", err)
	}
	if _, err := g.Blocks(over); !errors.Is(err, types.ErrInvalidArgument) {
		t.Errorf("expect invalid argument for blocks, got %v", err)
	}

	tests := []struct {
		count  int
		expErr bool
	}{
		{0, false},
		{int(BaseHeight), false},
		{int(BaseHeight) + 1, false},
		{int(BaseHeight) + 2, true},
		{-1, true},
	}
	for i, test := range tests {
		if err := checkHeights("transaction", test.count); (err != nil) != test.expErr {
			t.Errorf("Test %v: unexpected error %v", i, err)
		}
	}
}

func TestNegativeCounts(t *testing.T) {
	g := newTestGenerator(1)
	tests := []func() error{
		func() error { _, err := g.Transactions(-1); return err },
		func() error { _, err := g.Blocks(-1); return err },
		func() error { _, err := g.Holders(-1); return err },
		func() error { _, err := g.AddressWithHistory("x", -1); return err },
		func() error { _, err := g.ChartData(-1, 1, 1); return err },
		func() error { _, err := g.GrowthSeries(-1, 1, 1, 1); return err },
		func() error { _, err := g.ChartData(1, 1, -1); return err },
	}
	for i, test := range tests {
		if err := test(); !errors.Is(err, types.ErrInvalidArgument) {
			t.Errorf("Test %v: expect invalid argument, got %v", i, err)
		}
	}
}

func TestTransactions(t *testing.T) {
	for _, n := range []int{0, 1, 5, 6, 100} {
		txs, err := newTestGenerator(int64(n)).Transactions(n)
		require.NoError(t, err)
		require.Len(t, txs, n)

		for i, tx := range txs {
			assert.Equal(t, BaseHeight-uint64(i), tx.BlockHeight)
			if i > 0 {
				assert.Less(t, tx.Timestamp, txs[i-1].Timestamp, "timestamp of %v", i)
				assert.NotNil(t, tx.TimeBetweenTx)
			} else {
				assert.Nil(t, tx.TimeBetweenTx)
			}
			assert.Equal(t, tx.Confirmations == 0, tx.Status != types.TxConfirmed)
			assert.Equal(t, i >= n-pendingTail, tx.Status == types.TxPending)
			assert.GreaterOrEqual(t, tx.Amount, 10.0)
			assert.NotEmpty(t, tx.From)
			assert.NotEmpty(t, tx.To)
			assert.GreaterOrEqual(t, tx.Fee.MneeFee, 0.0)
			assert.GreaterOrEqual(t, tx.Fee.MinerFee, 0.0)
			assert.GreaterOrEqual(t, tx.Fee.UtxoBuildCost, 0.0)
			assert.GreaterOrEqual(t, tx.Fee.TransferCost, 0.0)
		}
	}
}

func TestBlocks(t *testing.T) {
	for _, n := range []int{0, 1, 100} {
		blocks, err := newTestGenerator(int64(n)).Blocks(n)
		require.NoError(t, err)
		require.Len(t, blocks, n)

		for i, b := range blocks {
			assert.Equal(t, BaseHeight-uint64(i), b.Height)
			assert.Equal(t, types.TimeToMillis(testNow)-int64(i)*blockInterval.Milliseconds(), b.Timestamp)
			assert.GreaterOrEqual(t, b.TransactionCount, minBlockTxs)
			assert.LessOrEqual(t, b.TransactionCount, maxBlockTxs)
			assert.Len(t, b.Transactions, b.TransactionCount)
			assert.Equal(t, int(math.Floor(float64(b.TransactionCount)*0.7)), b.UniqueAddresses)
			assertRelEqual(t, b.TotalMneeTransferred, b.AvgTransferVolume*float64(b.TransactionCount))
			assertRelEqual(t, b.TotalFee, b.AverageFee*float64(b.TransactionCount))
		}
	}
}

func TestReconcileBlock(t *testing.T) {
	g := newTestGenerator(3)
	blocks, err := g.Blocks(1)
	require.NoError(t, err)
	b := blocks[0]

	assert.Equal(t, b, ReconcileBlock(b, nil))

	members := []types.Transaction{
		{Txid: "a", Amount: 10, Fee: types.Fee{MneeFee: 0.01}},
		{Txid: "b", Amount: 30, Fee: types.Fee{MinerFee: 0.03}},
	}
	rb := ReconcileBlock(b, members)
	assert.Equal(t, []string{"a", "b"}, rb.Transactions)
	assert.Equal(t, 2, rb.TransactionCount)
	assert.Equal(t, 40.0, rb.TotalMneeTransferred)
	assert.Equal(t, 20.0, rb.AvgTransferVolume)
	assert.Equal(t, 30.0, rb.LargestTransaction)
	assert.Equal(t, 1, rb.UniqueAddresses)
	assertRelEqual(t, 0.04, rb.TotalFee)
	assert.Equal(t, b.Hash, rb.Hash)
}

func TestAddressReplay(t *testing.T) {
	g := newTestGenerator(11)
	for i := 0; i != 50; i++ {
		addr := g.RandomAddress()
		a := g.Address(addr)
		assert.Equal(t, addr, a.Address)
		assert.GreaterOrEqual(t, a.TransactionCount, minAddrHistory)
		assert.LessOrEqual(t, a.TransactionCount, maxAddrHistory)
		assert.LessOrEqual(t, a.FirstSeen, a.LastActivity)

		replayed := a.Replay()
		require.Len(t, replayed, len(a.Transactions))
		var sent, received float64
		for j, tx := range a.Transactions {
			if replayed[j] != tx.RunningBalance {
				t.Errorf("Test %v/%v: unexpected running balance %v / %v", i, j, tx.RunningBalance, replayed[j])
			}
			assert.GreaterOrEqual(t, tx.RunningBalance, 0.0)
			if tx.Type == types.DirectionIn {
				received += tx.Amount
			} else {
				sent += tx.Amount
			}
		}
		assert.Equal(t, replayed[len(replayed)-1], a.Balance)
		assertRelEqual(t, sent, a.TotalSent)
		assertRelEqual(t, received, a.TotalReceived)
	}
}

func TestAddressWithEmptyHistory(t *testing.T) {
	a, err := newTestGenerator(1).AddressWithHistory("1abc", 0)
	require.NoError(t, err)
	assert.Empty(t, a.Transactions)
	assert.Equal(t, a.InitialBalance, a.Balance)
}

func TestHolders(t *testing.T) {
	for _, n := range []int{0, 1, 10, 200} {
		holders, err := newTestGenerator(int64(n)).Holders(n)
		require.NoError(t, err)
		require.Len(t, holders, n)

		sum := 0.0
		for i, h := range holders {
			assert.Equal(t, i+1, h.Rank)
			if i > 0 && !(h.Balance < holders[i-1].Balance) {
				t.Errorf("Test %v/%v: holders not strictly descending", n, i)
			}
			assertRelEqual(t, h.Balance/TotalSupply*100, h.PercentageOfSupply)
			sum += h.Balance
		}
		assert.LessOrEqual(t, sum, TotalSupply)
	}
}

func TestDashboardMetrics(t *testing.T) {
	dm := newTestGenerator(5).DashboardMetrics()
	require.Len(t, dm, len(types.AllTimeframes))
	for _, tf := range types.AllTimeframes {
		m := dm[tf]
		mult := tf.Multiplier()
		assert.GreaterOrEqual(t, m.TransactionVolume, 1e6*mult)
		assert.Less(t, m.TransactionVolume, 1.1e7*mult)
		assert.GreaterOrEqual(t, m.TransactionCount, int(1000*mult))
		assert.GreaterOrEqual(t, m.ActiveAddresses, int(200*math.Sqrt(mult)))
		assert.Less(t, m.ActiveAddresses, int(1200*math.Sqrt(mult))+1)
		assert.GreaterOrEqual(t, m.AvgTransactionFee, 0.001)
		assert.Less(t, m.AvgTransactionFee, 0.011)
	}
	_, err := newTestGenerator(5).TimeframeMetrics("2Y")
	assert.True(t, errors.Is(err, types.ErrInvalidArgument))
}

func TestGeneralInfo(t *testing.T) {
	info := newTestGenerator(9).GeneralInfo()
	assert.Equal(t, TotalSupply, info.TotalSupply)
	assert.Equal(t, info.TotalSupply*info.CurrentPrice, info.MarketCap)
	assert.Equal(t, info.MarketCap, info.FullyDilutedValue)
	assert.Equal(t, (info.CurrentPrice-1)*100, info.PegDeviation)
	assert.GreaterOrEqual(t, info.CurrentPrice, 0.998)
	assert.Less(t, info.CurrentPrice, 1.002)
	require.Len(t, info.ResponseTimes, len(types.AllTimeframes))
	for tf, rt := range info.ResponseTimes {
		if !(rt.Min <= rt.Avg && rt.Avg <= rt.Max) {
			t.Errorf("Test %v: unordered response time %+v", tf, rt)
		}
		assert.Equal(t, math.Round(rt.Avg*10)/10, rt.Avg)
	}
}

func TestChartData(t *testing.T) {
	points, err := newTestGenerator(1).ChartData(30, 100, 0)
	require.NoError(t, err)
	require.Len(t, points, 31)
	for i, p := range points {
		assert.Equal(t, 100.0, p.Value)
		if i > 0 {
			assert.Equal(t, day.Milliseconds(), p.Timestamp-points[i-1].Timestamp)
		}
	}
	assert.Equal(t, types.TimeToMillis(testNow), points[30].Timestamp)

	points, err = newTestGenerator(1).ChartData(10, 1, 1000)
	require.NoError(t, err)
	for _, p := range points {
		assert.GreaterOrEqual(t, p.Value, 0.0)
	}

	points, err = newTestGenerator(1).ChartData(0, 5, 1)
	require.NoError(t, err)
	assert.Len(t, points, 1)
}

func TestGrowthSeries(t *testing.T) {
	points, err := newTestGenerator(1).GrowthSeries(7, 100, 0, 10)
	require.NoError(t, err)
	require.Len(t, points, 7)
	for i, p := range points {
		assert.Equal(t, 100+10*float64(i), p.Value)
		assert.NotEmpty(t, p.Label)
	}
	assert.Equal(t, types.TimeToMillis(testNow), points[6].Timestamp)
	assert.Equal(t, types.MillisToTime(points[6].Timestamp).Format("Jan 2"), points[6].Label)
}

func TestPresets(t *testing.T) {
	assert.Len(t, PresetNames(), 9)
	p, err := LookupPreset("market-cap")
	require.NoError(t, err)
	assert.Equal(t, PresetMarketCap, p)
	_, err = LookupPreset("unknown")
	assert.True(t, errors.Is(err, types.ErrInvalidArgument))

	shares, err := newTestGenerator(2).SupplyDistribution(30)
	require.NoError(t, err)
	require.Len(t, shares, 3)
	total := 0.0
	for _, s := range shares {
		total += s.Percent
	}
	assert.InDelta(t, 100, total, 1e-9)
}

func TestAnalytics(t *testing.T) {
	as, err := newTestGenerator(4).Analytics(types.TimeRange7D)
	require.NoError(t, err)
	assert.Equal(t, types.TimeRange7D, as.TimeRange)
	for _, series := range [][]types.ChartDataPoint{
		as.NewAddresses, as.ActiveAddresses, as.CumulativeAddresses, as.BlockTimeTrends, as.BlockProductionRate,
	} {
		assert.Len(t, series, 8)
	}
}

func assertRelEqual(t *testing.T, exp, got float64) {
	t.Helper()
	if exp == 0 {
		assert.InDelta(t, exp, got, 1e-12)
		return
	}
	assert.InEpsilon(t, exp, got, 1e-9)
}
