package projection

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
	"sync"

	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/shopspring/decimal"
)

// dedupKey is the signature two transactions must share to be considered the same entry
func dedupKey(t models.FutureTransaction) string {
	return fmt.Sprintf("%s|%s|%s|%s|%s",
		t.Date.Format("2006-01"),
		t.Type,
		t.Description,
		decimal.NewFromFloat(t.Amount).StringFixed(2),
		t.Category,
	)
}

// Dedup collapses transactions sharing month, type, description, amount and category
// into a single entry, preferring a stored record over a generated one. Surviving
// entries keep their relative order, which makes Dedup idempotent.
//
// Two distinct stored records that match on all five fields also collapse into one.
func Dedup(txs []models.FutureTransaction) []models.FutureTransaction {
	keep := make(map[string]int, len(txs))
	for i, t := range txs {
		k := dedupKey(t)
		cur, ok := keep[k]
		if !ok || (txs[cur].Origin.Synthetic() && !t.Origin.Synthetic()) {
			keep[k] = i
		}
	}

	out := make([]models.FutureTransaction, 0, len(keep))
	for i, t := range txs {
		if keep[dedupKey(t)] == i {
			out = append(out, t)
		}
	}
	return out
}

type dedupEntry struct {
	fingerprint uint64
	result      []models.FutureTransaction
}

// Deduplicator memoizes Dedup per instance key (a view or list name). The key only
// scopes the cache; it never changes the result. At most maxEntries keys are kept,
// the oldest key is evicted first.
type Deduplicator struct {
	mu         sync.Mutex
	maxEntries int
	cache      map[string]dedupEntry
	order      []string
}

func NewDeduplicator(maxEntries int) *Deduplicator {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &Deduplicator{
		maxEntries: maxEntries,
		cache:      make(map[string]dedupEntry, maxEntries),
	}
}

// Dedup returns Dedup(txs), reusing the last result for instanceKey when the input is unchanged
func (d *Deduplicator) Dedup(instanceKey string, txs []models.FutureTransaction) []models.FutureTransaction {
	fp := fingerprint(txs)

	d.mu.Lock()
	entry, ok := d.cache[instanceKey]
	d.mu.Unlock()
	if ok && entry.fingerprint == fp {
		return append([]models.FutureTransaction(nil), entry.result...)
	}

	result := Dedup(txs)
	d.store(instanceKey, dedupEntry{fingerprint: fp, result: result})

	return append([]models.FutureTransaction(nil), result...)
}

// Len returns the number of cached instance keys
func (d *Deduplicator) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.cache)
}

func (d *Deduplicator) store(key string, entry dedupEntry) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.cache[key]; !ok {
		for len(d.order) >= d.maxEntries {
			delete(d.cache, d.order[0])
			d.order = d.order[1:]
		}
		d.order = append(d.order, key)
	}
	d.cache[key] = entry
}

func fingerprint(txs []models.FutureTransaction) uint64 {
	h := fnv.New64a()
	var buf [16]byte
	for _, t := range txs {
		binary.LittleEndian.PutUint64(buf[:8], uint64(t.Date.Unix()))
		binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(t.Amount))
		h.Write(buf[:])
		h.Write([]byte(t.ID))
		h.Write([]byte{0})
		h.Write([]byte(t.Description))
		h.Write([]byte{0})
		h.Write([]byte(t.Category))
		h.Write([]byte{0})
		h.Write([]byte(t.Type))
		h.Write([]byte{0})
		h.Write([]byte(t.Origin.Kind))
		h.Write([]byte{0})
	}
	return h.Sum64()
}
