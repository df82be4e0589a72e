package explorer

import (
	"github.com/pkg/errors"

	"github.com/mnee-network/explorer/core/query"
	"github.com/mnee-network/explorer/core/types"
)

// Blocks returns the full block list, newest first.
func (s *Session) Blocks() []types.Block {
	return s.blocks
}

// Block looks up a block by height.
func (s *Session) Block(height uint64) (types.Block, bool) {
	i, ok := s.blockIndex[height]
	if !ok {
		return types.Block{}, false
	}
	return s.blocks[i], true
}

// BlockTransactions returns the transactions recorded at height.
func (s *Session) BlockTransactions(height uint64) []types.Transaction {
	return query.ByBlockHeight(s.txs, height)
}

// CurrentBlock returns the block being viewed, if any.
func (s *Session) CurrentBlock() (types.Block, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	if s.currentBlock == nil {
		return types.Block{}, false
	}
	return *s.currentBlock, true
}

// SetCurrentBlock marks the block at height as being viewed.
func (s *Session) SetCurrentBlock(height uint64) error {
	defer countCommand("set_current_block")

	b, ok := s.Block(height)
	if !ok {
		return errors.Wrapf(types.ErrNotFound, "block %d", height)
	}
	s.lock.Lock()
	defer s.lock.Unlock()

	s.currentBlock = &b
	return nil
}

// ClearCurrentBlock clears the viewed block.
func (s *Session) ClearCurrentBlock() {
	defer countCommand("clear_current_block")

	s.lock.Lock()
	defer s.lock.Unlock()

	s.currentBlock = nil
}
