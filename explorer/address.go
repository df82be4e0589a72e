package explorer

import (
	"github.com/mnee-network/explorer/core/query"
	"github.com/mnee-network/explorer/core/types"
)

// Holders returns the holder list ranked by balance.
func (s *Session) Holders() []types.Holder {
	return s.holders
}

// Address returns the synthesized detail of addr. An address is found when it
// occurs in the transaction or holder lists or is a well formed address; the
// same detail is returned for repeated lookups while it stays cached.
func (s *Session) Address(addr string) (types.Address, bool) {
	if _, ok := s.known[addr]; !ok {
		if err := types.ValidateAddress(addr); err != nil {
			return types.Address{}, false
		}
	}
	if v, ok := s.addrCache.Get(addr); ok {
		return v.(types.Address), true
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	// another caller may have filled it while we waited
	if v, ok := s.addrCache.Get(addr); ok {
		return v.(types.Address), true
	}
	a := s.gen.Address(addr)
	s.addrCache.Add(addr, a)
	return a, true
}

// AddressTransactions returns the transactions of the session list that
// involve addr.
func (s *Session) AddressTransactions(addr string) []types.Transaction {
	return query.ByAddress(s.txs, addr)
}
