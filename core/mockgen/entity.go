package mockgen

import (
	"math"
	"sort"

	"github.com/mnee-network/explorer/core/types"
)

// Transactions returns count transactions ordered newest first. Heights
// decrease by one from BaseHeight, so count is at most BaseHeight+1, and
// timestamps strictly decrease. The last
// pendingTail items are pending with zero confirmations.
func (g *Generator) Transactions(count int) ([]types.Transaction, error) {
	if err := checkHeights("transaction", count); err != nil {
		return nil, err
	}
	var (
		now  = g.Now()
		step = txStep.Milliseconds()
		txs  = make([]types.Transaction, 0, count)
	)
	for i := 0; i < count; i++ {
		// jitter stays below one step so that timestamps strictly decrease
		jitter := int64(g.rng.Float64() * float64(step))
		tx := types.Transaction{
			Txid:        g.RandomTxid(),
			BlockHeight: BaseHeight - uint64(i),
			Timestamp:   now - int64(i)*step - jitter,
			Type:        types.AllTxTypes[g.rng.Intn(len(types.AllTxTypes))],
			Amount:      g.uniform(10, 10010),
			From:        []string{g.RandomAddress()},
			To:          []string{g.RandomAddress()},
			Fee: types.Fee{
				MneeFee:       g.uniform(0, 0.01),
				MinerFee:      g.uniform(0, 0.001),
				UtxoBuildCost: g.uniform(0, 0.005),
				TransferCost:  g.uniform(0, 0.002),
			},
		}
		if i < count-pendingTail {
			tx.Status = types.TxConfirmed
			tx.Confirmations = uint64(g.intRange(1, maxConfirmation))
		} else {
			tx.Status = types.TxPending
		}
		if i > 0 {
			between := g.uniform(0, maxTimeBetween)
			tx.TimeBetweenTx = &between
		}
		txs = append(txs, tx)
	}
	countGenerated("transaction", count)
	return txs, nil
}

// Blocks returns count blocks ordered newest first, one blockInterval apart.
// Each block carries its own freshly generated transaction ids.
func (g *Generator) Blocks(count int) ([]types.Block, error) {
	if err := checkHeights("block", count); err != nil {
		return nil, err
	}
	var (
		now    = g.Now()
		blocks = make([]types.Block, 0, count)
	)
	for i := 0; i < count; i++ {
		txCount := g.intRange(minBlockTxs, maxBlockTxs)
		total := g.uniform(1000, 101000)
		totalFee := 0.0
		size := uint64(80)
		txids := make([]string, 0, txCount)
		for j := 0; j < txCount; j++ {
			txids = append(txids, g.RandomTxid())
			totalFee += g.uniform(0, 0.018)
			size += uint64(g.intRange(200, 350))
		}
		blocks = append(blocks, types.Block{
			Height:               BaseHeight - uint64(i),
			Hash:                 g.RandomHash(),
			Timestamp:            now - int64(i)*blockInterval.Milliseconds(),
			Miner:                g.RandomAddress(),
			Size:                 size,
			TransactionCount:     txCount,
			TotalMneeTransferred: total,
			AvgTransferVolume:    total / float64(txCount),
			UniqueAddresses:      uniqueAddresses(txCount),
			LargestTransaction:   g.uniform(1000, 51000),
			TotalFee:             totalFee,
			AverageFee:           totalFee / float64(txCount),
			Transactions:         txids,
		})
	}
	countGenerated("block", count)
	return blocks, nil
}

// ReconcileBlock rebuilds the transaction dependent fields of b from the
// transactions recorded at its height. b is returned untouched when members
// is empty.
func ReconcileBlock(b types.Block, members []types.Transaction) types.Block {
	if len(members) == 0 {
		return b
	}
	var (
		txids    = make([]string, 0, len(members))
		total    float64
		largest  float64
		totalFee float64
	)
	for _, tx := range members {
		txids = append(txids, tx.Txid)
		total += tx.Amount
		totalFee += tx.Fee.Total()
		if tx.Amount > largest {
			largest = tx.Amount
		}
	}
	count := len(members)
	b.Transactions = txids
	b.TransactionCount = count
	b.TotalMneeTransferred = total
	b.AvgTransferVolume = total / float64(count)
	b.LargestTransaction = largest
	b.UniqueAddresses = uniqueAddresses(count)
	b.TotalFee = totalFee
	b.AverageFee = totalFee / float64(count)
	return b
}

func uniqueAddresses(txCount int) int {
	return int(math.Floor(float64(txCount) * uniqueAddrFactor))
}

// Address synthesizes the detail of addr with a random history length.
func (g *Generator) Address(addr string) types.Address {
	a, _ := g.AddressWithHistory(addr, g.intRange(minAddrHistory, maxAddrHistory))
	return a
}

// AddressWithHistory synthesizes the detail of addr by replaying seedTxCount
// random transfers in chronological order. The running balance is floored at
// zero after every step and the final balance equals the last snapshot.
func (g *Generator) AddressWithHistory(addr string, seedTxCount int) (types.Address, error) {
	if err := checkCount("address history", seedTxCount); err != nil {
		return types.Address{}, err
	}
	var (
		now     = g.Now()
		step    = addrHistoryStep.Milliseconds()
		initial = g.uniform(0, maxInitialBalance)
		balance = initial
		history = make([]types.AddressTransaction, 0, seedTxCount)

		sent, received float64
	)
	for i := 0; i < seedTxCount; i++ {
		dir := types.DirectionOut
		if g.rng.Float64() > 0.5 {
			dir = types.DirectionIn
		}
		amount := g.uniform(0, maxAddrStepAmount)
		if dir == types.DirectionIn {
			balance += amount
			received += amount
		} else {
			balance -= amount
			sent += amount
		}
		balance = math.Max(0, balance)
		history = append(history, types.AddressTransaction{
			Txid:           g.RandomTxid(),
			Type:           dir,
			Amount:         amount,
			Timestamp:      now - int64(seedTxCount-1-i)*step,
			RunningBalance: balance,
			Counterparty:   g.RandomAddress(),
		})
	}
	countGenerated("address", 1)
	return types.Address{
		Address:          addr,
		InitialBalance:   initial,
		Balance:          balance,
		FirstSeen:        now - int64(seedTxCount)*step,
		LastActivity:     now,
		TransactionCount: seedTxCount,
		TotalSent:        sent,
		TotalReceived:    received,
		Transactions:     history,
	}, nil
}

// Holders returns count holders ranked by descending balance. Every holder
// takes 1% to 11% of the supply still unallocated, so the balances never sum
// above TotalSupply.
func (g *Generator) Holders(count int) ([]types.Holder, error) {
	if err := checkCount("holder", count); err != nil {
		return nil, err
	}
	remaining := TotalSupply
	holders := make([]types.Holder, 0, count)
	for i := 0; i < count; i++ {
		balance := remaining * g.uniform(0.01, 0.11)
		remaining -= balance
		holders = append(holders, types.Holder{
			Address:            g.RandomAddress(),
			Balance:            balance,
			PercentageOfSupply: balance / TotalSupply * 100,
			TransactionCount:   g.intRange(10, 1009),
		})
	}
	sort.SliceStable(holders, func(i, j int) bool {
		return holders[i].Balance > holders[j].Balance
	})
	for i := range holders {
		holders[i].Rank = i + 1
	}
	countGenerated("holder", count)
	return holders, nil
}
