package mockgen

import (
	"strings"

	"github.com/mnee-network/explorer/core/types"
)

// RandomAddress returns a 34 characters address: the fixed prefix followed by
// 33 characters drawn uniformly from the base58 alphabet. Uniqueness is
// probabilistic only.
func (g *Generator) RandomAddress() string {
	var sb strings.Builder
	sb.Grow(types.AddressLength)
	sb.WriteByte(types.AddressPrefix)
	for i := 1; i < types.AddressLength; i++ {
		sb.WriteByte(types.AddressAlphabet[g.rng.Intn(len(types.AddressAlphabet))])
	}
	return sb.String()
}

// RandomTxid returns a 64 characters lowercase hex transaction id.
func (g *Generator) RandomTxid() string {
	var sb strings.Builder
	sb.Grow(types.TxidLength)
	for i := 0; i < types.TxidLength; i++ {
		sb.WriteByte(types.HexAlphabet[g.rng.Intn(len(types.HexAlphabet))])
	}
	return sb.String()
}

// RandomHash returns a block hash, same shape as a transaction id.
func (g *Generator) RandomHash() string {
	return g.RandomTxid()
}
