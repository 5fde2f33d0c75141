// Package index implements the collection-wide sorted quote index described
// in spec.md §4.4: two ordered maps per collection, one per quote side, each
// carrying a pair's best current price. It is the only cross-pair shared
// mutable resource in the system; a caller identifies itself by pair address,
// and the single entry a pair owns per side is keyed by that address, which
// is what makes "single writer per entry" hold without a separate
// authorization check.
package index

import (
	"sync"

	sdkmath "cosmossdk.io/math"
	"github.com/google/btree"
)

// Side names which of a collection's two sorted maps an entry belongs to.
type Side int

const (
	SideBuy Side = iota
	SideSell
)

// Entry is one pair's current best quote on one side of one collection.
type Entry struct {
	PairAddress string
	Price       sdkmath.Int
}

// MaxPageSize is the hard cap spec.md §4.4 places on a single range query.
const MaxPageSize = 100

func buyLess(a, b Entry) bool {
	if !a.Price.Equal(b.Price) {
		return a.Price.LT(b.Price)
	}
	return a.PairAddress < b.PairAddress
}

func sellLess(a, b Entry) bool {
	if !a.Price.Equal(b.Price) {
		return a.Price.GT(b.Price)
	}
	return a.PairAddress < b.PairAddress
}

type collectionIndex struct {
	buy  *btree.BTreeG[Entry]
	sell *btree.BTreeG[Entry]

	buyByPair  map[string]Entry
	sellByPair map[string]Entry
}

func newCollectionIndex() *collectionIndex {
	return &collectionIndex{
		buy:        btree.NewG(32, buyLess),
		sell:       btree.NewG(32, sellLess),
		buyByPair:  make(map[string]Entry),
		sellByPair: make(map[string]Entry),
	}
}

func (c *collectionIndex) tree(side Side) *btree.BTreeG[Entry] {
	if side == SideBuy {
		return c.buy
	}
	return c.sell
}

func (c *collectionIndex) byPair(side Side) map[string]Entry {
	if side == SideBuy {
		return c.buyByPair
	}
	return c.sellByPair
}

// Index is the concurrency-safe, in-memory implementation of the collection
// index. Production deployments of the external contract persist this as
// on-chain ordered maps; here it is the process-local structure routers and
// query handlers read.
type Index struct {
	mu          sync.RWMutex
	collections map[string]*collectionIndex
}

// New constructs an empty index.
func New() *Index {
	return &Index{collections: make(map[string]*collectionIndex)}
}

func (idx *Index) collection(name string) *collectionIndex {
	c, ok := idx.collections[name]
	if !ok {
		c = newCollectionIndex()
		idx.collections[name] = c
	}
	return c
}

// Upsert sets pairAddress's entry on side of collection to price, replacing
// any prior entry for that pair.
func (idx *Index) Upsert(collection string, side Side, pairAddress string, price sdkmath.Int) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	c := idx.collection(collection)
	byPair := c.byPair(side)
	tree := c.tree(side)

	if old, ok := byPair[pairAddress]; ok {
		tree.Delete(old)
	}
	entry := Entry{PairAddress: pairAddress, Price: price}
	tree.ReplaceOrInsert(entry)
	byPair[pairAddress] = entry
}

// Remove deletes pairAddress's entry on side of collection, if any.
func (idx *Index) Remove(collection string, side Side, pairAddress string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	c, ok := idx.collections[collection]
	if !ok {
		return
	}
	byPair := c.byPair(side)
	old, ok := byPair[pairAddress]
	if !ok {
		return
	}
	c.tree(side).Delete(old)
	delete(byPair, pairAddress)
}

// PairUpdate mirrors pair.IndexUpdate: a nil quote on a side removes that
// side's entry, a non-nil quote upserts it.
type PairUpdate struct {
	Collection       string
	PairAddress      string
	SellToPairQuote  *sdkmath.Int
	BuyFromPairQuote *sdkmath.Int
}

// Apply performs the upsert/remove pair an index-update instruction carries,
// one call per side, per spec.md §4.3's "emit an index-update" step.
func (idx *Index) Apply(update PairUpdate) {
	if update.SellToPairQuote != nil {
		idx.Upsert(update.Collection, SideSell, update.PairAddress, *update.SellToPairQuote)
	} else {
		idx.Remove(update.Collection, SideSell, update.PairAddress)
	}
	if update.BuyFromPairQuote != nil {
		idx.Upsert(update.Collection, SideBuy, update.PairAddress, *update.BuyFromPairQuote)
	} else {
		idx.Remove(update.Collection, SideBuy, update.PairAddress)
	}
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}

// BuyFromPairQuotes returns up to limit buy-side entries in ascending price
// order (lowest taker cost first), continuing strictly after startAfterPair
// when non-empty.
func (idx *Index) BuyFromPairQuotes(collection string, limit int, startAfterPair string) []Entry {
	return idx.page(collection, SideBuy, limit, startAfterPair)
}

// SellToPairQuotes returns up to limit sell-side entries in descending price
// order (highest taker receipt first), continuing strictly after
// startAfterPair when non-empty.
func (idx *Index) SellToPairQuotes(collection string, limit int, startAfterPair string) []Entry {
	return idx.page(collection, SideSell, limit, startAfterPair)
}

func (idx *Index) page(collection string, side Side, limit int, startAfterPair string) []Entry {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	c, ok := idx.collections[collection]
	if !ok {
		return nil
	}
	limit = clampLimit(limit)

	var cursor *Entry
	if startAfterPair != "" {
		if e, ok := c.byPair(side)[startAfterPair]; ok {
			cursor = &e
		}
	}

	out := make([]Entry, 0, limit)
	visit := func(e Entry) bool {
		out = append(out, e)
		return len(out) < limit
	}

	// Each side's tree order already encodes its page order (ASC for buy,
	// DESC for sell), so both sides continue by ascending tree order.
	tree := c.tree(side)
	if cursor == nil {
		tree.Ascend(func(e Entry) bool { return visit(e) })
	} else {
		started := false
		tree.AscendGreaterOrEqual(*cursor, func(e Entry) bool {
			if !started {
				started = true
				return true // skip the cursor entry itself
			}
			return visit(e)
		})
	}
	return out
}
