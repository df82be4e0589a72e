package query

import (
	"time"

	mapset "github.com/deckarep/golang-set"

	"github.com/mnee-network/explorer/core/types"
)

// Summary aggregates a list of transactions.
type Summary struct {
	Count           int                  `json:"count"`
	Volume          float64              `json:"volume"`
	TotalFees       float64              `json:"totalFees"`
	ByType          map[types.TxType]int `json:"byType"`
	UniqueAddresses int                  `json:"uniqueAddresses"`
	Pending         int                  `json:"pending"`
}

// Summarize aggregates txs.
func Summarize(txs []types.Transaction) Summary {
	defer observe("summarize", time.Now())

	s := Summary{
		Count:  len(txs),
		ByType: make(map[types.TxType]int, len(types.AllTxTypes)),
	}
	addrs := mapset.NewThreadUnsafeSet()
	for _, tx := range txs {
		s.Volume += tx.Amount
		s.TotalFees += tx.Fee.Total()
		s.ByType[tx.Type]++
		if tx.Status == types.TxPending {
			s.Pending++
		}
		for _, a := range tx.From {
			addrs.Add(a)
		}
		for _, a := range tx.To {
			addrs.Add(a)
		}
	}
	s.UniqueAddresses = addrs.Cardinality()
	return s
}
