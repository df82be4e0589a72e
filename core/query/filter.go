// Package query filters and paginates in-memory explorer records. All
// functions are pure: they never modify their input and preserve its order.
package query

import (
	"time"

	"github.com/pkg/errors"

	"github.com/mnee-network/explorer/core/types"
)

// TypeFilter selects transactions by type. TypeAll matches every type.
type TypeFilter string

// TypeAll matches every transaction type.
const TypeAll TypeFilter = "all"

// ParseTypeFilter parses all, mint, burn or transfer.
func ParseTypeFilter(s string) (TypeFilter, error) {
	if s == "" || TypeFilter(s) == TypeAll {
		return TypeAll, nil
	}
	t, err := types.ParseTxType(s)
	if err != nil {
		return "", err
	}
	return TypeFilter(t), nil
}

// Filter holds the transaction filter criteria. Nil bounds are not applied, set
// bounds are inclusive.
type Filter struct {
	Type      TypeFilter `json:"type"`
	MinAmount *float64   `json:"minAmount,omitempty"`
	MaxAmount *float64   `json:"maxAmount,omitempty"`
	Start     *time.Time `json:"start,omitempty"`
	End       *time.Time `json:"end,omitempty"`
}

// DefaultFilter matches every transaction.
func DefaultFilter() Filter {
	return Filter{Type: TypeAll}
}

// Validate checks the filter is well formed.
func (f Filter) Validate() error {
	if _, err := ParseTypeFilter(string(f.Type)); err != nil {
		return err
	}
	if f.MinAmount != nil && f.MaxAmount != nil && *f.MinAmount > *f.MaxAmount {
		return errors.Wrapf(types.ErrInvalidArgument, "min amount %v greater than max amount %v",
			*f.MinAmount, *f.MaxAmount)
	}
	if f.Start != nil && f.End != nil && f.Start.After(*f.End) {
		return errors.Wrap(types.ErrInvalidArgument, "start date after end date")
	}
	return nil
}

// Match returns whether tx passes the filter.
func (f Filter) Match(tx types.Transaction) bool {
	if f.Type != "" && f.Type != TypeAll && types.TxType(f.Type) != tx.Type {
		return false
	}
	if f.MinAmount != nil && tx.Amount < *f.MinAmount {
		return false
	}
	if f.MaxAmount != nil && tx.Amount > *f.MaxAmount {
		return false
	}
	if f.Start != nil && tx.Timestamp < types.TimeToMillis(*f.Start) {
		return false
	}
	if f.End != nil && tx.Timestamp > types.TimeToMillis(*f.End) {
		return false
	}
	return true
}

// Apply returns the transactions matching f, in source order.
func Apply(txs []types.Transaction, f Filter) ([]types.Transaction, error) {
	defer observe("filter", time.Now())

	if err := f.Validate(); err != nil {
		return nil, err
	}
	res := make([]types.Transaction, 0, len(txs))
	for _, tx := range txs {
		if f.Match(tx) {
			res = append(res, tx)
		}
	}
	return res, nil
}

// ByBlockHeight returns the transactions recorded at height.
func ByBlockHeight(txs []types.Transaction, height uint64) []types.Transaction {
	var res []types.Transaction
	for _, tx := range txs {
		if tx.BlockHeight == height {
			res = append(res, tx)
		}
	}
	return res
}

// ByAddress returns the transactions sending from or to addr.
func ByAddress(txs []types.Transaction, addr string) []types.Transaction {
	var res []types.Transaction
	for _, tx := range txs {
		if tx.Involves(addr) {
			res = append(res, tx)
		}
	}
	return res
}
