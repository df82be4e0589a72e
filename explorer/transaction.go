package explorer

import (
	"github.com/pkg/errors"

	"github.com/mnee-network/explorer/core/query"
	"github.com/mnee-network/explorer/core/types"
)

// Transactions returns the full transaction list, newest first.
func (s *Session) Transactions() []types.Transaction {
	return s.txs
}

// Transaction looks up a transaction by id.
func (s *Session) Transaction(txid string) (types.Transaction, bool) {
	i, ok := s.txIndex[txid]
	if !ok {
		return types.Transaction{}, false
	}
	return s.txs[i], true
}

// Filters returns the current filter criteria.
func (s *Session) Filters() query.Filter {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.filters
}

// Pagination returns the current pagination state of the transaction list.
func (s *Session) Pagination() query.Pagination {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.pagination
}

// FilteredPage returns the current page of the filtered transaction list.
func (s *Session) FilteredPage() (query.Page[types.Transaction], error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	filtered, err := query.Apply(s.txs, s.filters)
	if err != nil {
		return query.Page[types.Transaction]{}, err
	}
	return query.Paginate(filtered, s.pagination.Page, s.pagination.PerPage)
}

// FilteredSummary aggregates the whole filtered transaction list.
func (s *Session) FilteredSummary() (query.Summary, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	filtered, err := query.Apply(s.txs, s.filters)
	if err != nil {
		return query.Summary{}, err
	}
	return query.Summarize(filtered), nil
}

// SetFilters replaces the filter criteria. The current page goes back to 1 and
// the total follows the new filtered count.
func (s *Session) SetFilters(f query.Filter) error {
	defer countCommand("set_filters")

	if f.Type == "" {
		f.Type = query.TypeAll
	}
	filtered, err := query.Apply(s.txs, f)
	if err != nil {
		return err
	}
	s.lock.Lock()
	defer s.lock.Unlock()

	s.filters = f
	s.pagination = s.pagination.Reset().WithTotal(len(filtered))
	s.log.Debug().
		Str("type", string(f.Type)).
		Int("total", len(filtered)).
		Msg("filters changed")
	return nil
}

// SetPagination moves to page with perPage items per page. The page is
// clamped into the range of the filtered list.
func (s *Session) SetPagination(page, perPage int) error {
	defer countCommand("set_pagination")

	s.lock.Lock()
	defer s.lock.Unlock()

	p, err := s.pagination.Set(page, perPage)
	if err != nil {
		return err
	}
	s.pagination = p
	return nil
}

// SelectedTransaction returns the selected transaction, if any.
func (s *Session) SelectedTransaction() (types.Transaction, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	if s.selected == nil {
		return types.Transaction{}, false
	}
	return *s.selected, true
}

// SetSelectedTransaction selects txid. An empty txid clears the selection.
func (s *Session) SetSelectedTransaction(txid string) error {
	defer countCommand("set_selected_transaction")

	var selected *types.Transaction
	if txid != "" {
		tx, ok := s.Transaction(txid)
		if !ok {
			return errors.Wrapf(types.ErrNotFound, "transaction %s", txid)
		}
		selected = &tx
	}
	s.lock.Lock()
	defer s.lock.Unlock()

	s.selected = selected
	return nil
}
