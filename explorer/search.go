package explorer

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/mnee-network/explorer/core/types"
)

// MaxSearchHistory is the number of past queries kept.
const MaxSearchHistory = 10

// SearchKind is the view a search query resolves to.
type SearchKind string

// Search kinds
const (
	SearchTransaction  SearchKind = "transaction"
	SearchAddress      SearchKind = "address"
	SearchBlock        SearchKind = "block"
	SearchTransactions SearchKind = "transactions"
)

// SearchResult is where a query leads: Key is the txid, address or block
// height for the single record kinds and empty for the transaction list.
type SearchResult struct {
	Kind SearchKind `json:"kind"`
	Key  string     `json:"key,omitempty"`
}

// SearchState is the search box state.
type SearchState struct {
	Query   string        `json:"query"`
	Result  *SearchResult `json:"result,omitempty"`
	History []string      `json:"history"`
}

// Search returns a copy of the search state.
func (s *Session) Search() SearchState {
	s.lock.RLock()
	defer s.lock.RUnlock()

	st := s.search
	st.History = append([]string{}, s.search.History...)
	return st
}

// SetQuery sets the text of the search box.
func (s *Session) SetQuery(q string) {
	defer countCommand("set_query")

	s.lock.Lock()
	defer s.lock.Unlock()

	s.search.Query = q
}

// AddToHistory records q as the newest history entry. Blank queries are
// ignored and a repeated query moves to the front.
func (s *Session) AddToHistory(q string) {
	defer countCommand("add_to_history")

	s.lock.Lock()
	defer s.lock.Unlock()

	s.addToHistory(q)
}

func (s *Session) addToHistory(q string) {
	q = strings.TrimSpace(q)
	if q == "" {
		return
	}
	history := make([]string, 0, MaxSearchHistory)
	history = append(history, q)
	for _, h := range s.search.History {
		if len(history) == MaxSearchHistory {
			break
		}
		if h != q {
			history = append(history, h)
		}
	}
	s.search.History = history
}

// ClearHistory drops every history entry.
func (s *Session) ClearHistory() {
	defer countCommand("clear_history")

	s.lock.Lock()
	defer s.lock.Unlock()

	s.search.History = nil
}

// Dispatch resolves q to a view, records it as the current query and in the
// history. 64 hex characters is a transaction, 34 characters an address and
// a decimal integer a block height. Anything else lists transactions.
func (s *Session) Dispatch(q string) (SearchResult, error) {
	defer countCommand("search")

	q = strings.TrimSpace(q)
	if q == "" {
		return SearchResult{}, errors.Wrap(types.ErrInvalidArgument, "empty search query")
	}
	res := classify(q)

	s.lock.Lock()
	defer s.lock.Unlock()

	s.search.Query = q
	s.search.Result = &res
	s.addToHistory(q)
	s.log.Debug().Str("query", q).Str("kind", string(res.Kind)).Msg("search dispatched")
	return res, nil
}

func classify(q string) SearchResult {
	switch {
	case types.ValidateTxid(q) == nil:
		return SearchResult{Kind: SearchTransaction, Key: q}
	case len(q) == types.AddressLength:
		return SearchResult{Kind: SearchAddress, Key: q}
	}
	if _, err := strconv.ParseUint(q, 10, 64); err == nil {
		return SearchResult{Kind: SearchBlock, Key: q}
	}
	return SearchResult{Kind: SearchTransactions}
}
