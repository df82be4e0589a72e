// Package explorer holds the explorer session: the canonical mock lists
// generated once at start, the view state built on top of them, and the
// commands that change that state.
package explorer

import (
	"sync"

	"github.com/harmony-one/abool"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pborman/uuid"
	"github.com/rs/zerolog"

	"github.com/mnee-network/explorer/core/mockgen"
	"github.com/mnee-network/explorer/core/query"
	"github.com/mnee-network/explorer/core/types"
	"github.com/mnee-network/explorer/internal/utils"
)

const (
	defaultTransactions = 1000
	defaultBlocks       = 100
	defaultHolders      = 100
	defaultAddressCache = 256
)

// Config is the sizing of a session.
type Config struct {
	Transactions int
	Blocks       int
	Holders      int
	PerPage      int
	AddressCache int
}

// DefaultConfig returns the sizing used by the explorer front page.
func DefaultConfig() Config {
	return Config{
		Transactions: defaultTransactions,
		Blocks:       defaultBlocks,
		Holders:      defaultHolders,
		PerPage:      query.DefaultPerPage,
		AddressCache: defaultAddressCache,
	}
}

// ThemeStore persists the theme preference.
type ThemeStore interface {
	LoadTheme() (types.Theme, error)
	SaveTheme(types.Theme) error
}

// Session is a single explorer session. It owns the generated lists and never
// mutates them after New; list selectors return them shared, callers must not
// modify them.
type Session struct {
	id    string
	gen   *mockgen.Generator
	store ThemeStore
	log   zerolog.Logger

	loading *abool.AtomicBool
	lock    sync.RWMutex

	// canonical lists, immutable after New
	txs        []types.Transaction
	txIndex    map[string]int
	blocks     []types.Block
	blockIndex map[uint64]int
	holders    []types.Holder
	known      map[string]struct{}
	dashboard  types.DashboardMetrics
	info       types.GeneralInfo

	// synthesized addresses stay stable within the session
	addrCache *lru.Cache

	// view state
	filters      query.Filter
	pagination   query.Pagination
	selected     *types.Transaction
	currentBlock *types.Block
	search       SearchState
	theme        types.Theme
	autoRefresh  bool
	timeRange    types.TimeRange
	analytics    mockgen.AnalyticsSeries
}

// New builds a session from gen. store may be nil, in which case the theme
// lives in memory only.
func New(gen *mockgen.Generator, c Config, store ThemeStore) (*Session, error) {
	id := uuid.New()
	s := &Session{
		id:         id,
		gen:        gen,
		store:      store,
		log:        utils.Logger().With().Str("module", "explorer").Str("session", id).Logger(),
		loading:    abool.NewBool(true),
		txIndex:    make(map[string]int),
		blockIndex: make(map[uint64]int),
		known:      make(map[string]struct{}),
		filters:    query.DefaultFilter(),
		theme:      types.DefaultTheme,
		timeRange:  types.DefaultTimeRange,
	}
	defer s.loading.UnSet()

	if err := s.build(c); err != nil {
		return nil, err
	}
	s.loadTheme()
	s.log.Info().
		Int("transactions", len(s.txs)).
		Int("blocks", len(s.blocks)).
		Int("holders", len(s.holders)).
		Str("theme", string(s.theme)).
		Msg("explorer session ready")
	return s, nil
}

func (s *Session) build(c Config) error {
	if c.AddressCache <= 0 {
		c.AddressCache = defaultAddressCache
	}
	cache, err := lru.New(c.AddressCache)
	if err != nil {
		return err
	}
	s.addrCache = cache

	txs, err := s.gen.Transactions(c.Transactions)
	if err != nil {
		return err
	}
	blocks, err := s.gen.Blocks(c.Blocks)
	if err != nil {
		return err
	}
	holders, err := s.gen.Holders(c.Holders)
	if err != nil {
		return err
	}
	pagination, err := query.NewPagination(c.PerPage, len(txs))
	if err != nil {
		return err
	}
	analytics, err := s.gen.Analytics(s.timeRange)
	if err != nil {
		return err
	}

	s.txs = txs
	for i, tx := range txs {
		s.txIndex[tx.Txid] = i
		s.addKnown(tx.From...)
		s.addKnown(tx.To...)
	}
	s.blocks = s.reconcileBlocks(blocks)
	for i, b := range s.blocks {
		s.blockIndex[b.Height] = i
	}
	s.holders = holders
	for _, h := range holders {
		s.addKnown(h.Address)
	}
	s.pagination = pagination
	s.dashboard = s.gen.DashboardMetrics()
	s.info = s.gen.GeneralInfo()
	s.analytics = analytics
	return nil
}

// reconcileBlocks makes every block that has transactions recorded at its
// height agree with them.
func (s *Session) reconcileBlocks(blocks []types.Block) []types.Block {
	byHeight := make(map[uint64][]types.Transaction)
	for _, tx := range s.txs {
		byHeight[tx.BlockHeight] = append(byHeight[tx.BlockHeight], tx)
	}
	res := make([]types.Block, 0, len(blocks))
	for _, b := range blocks {
		res = append(res, mockgen.ReconcileBlock(b, byHeight[b.Height]))
	}
	return res
}

func (s *Session) addKnown(addrs ...string) {
	for _, addr := range addrs {
		s.known[addr] = struct{}{}
	}
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// Loading reports whether the session is still generating its lists.
func (s *Session) Loading() bool {
	return s.loading.IsSet()
}
