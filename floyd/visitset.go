package floyd

import (
	"encoding/binary"

	"github.com/dgraph-io/badger/v3"
	"github.com/fine-structures/rho/rho"
	"github.com/pkg/errors"
)

// KeySet allows adding keys to an internal set and returning if a given key has already been added.
type KeySet interface {

	// TryAdd adds the given key if it is not already present.
	//
	// If key is already in this set, false is returned and this call has no effect.
	// If key isn't in this set, a copy of key is added and true is returned.
	//
	// After one or more calls to TryAdd(), be sure to call Close() for cleanup.
	TryAdd(key []byte) (bool, error)

	// Len returns the number of keys added since the last Close().
	Len() int

	// Close removes all previously added items from this set.
	//
	// If you make subsequent calls to TryAdd(), call Close() when you're done.
	Close()
}

// NewKeySet returns an empty set backed by an in-memory LSM.
func NewKeySet() KeySet {
	return &lsmSet{}
}

type lsmSet struct {
	db    *badger.DB
	count int
}

func (set *lsmSet) autoOpen() error {
	if set.db == nil {
		dbOpts := badger.DefaultOptions("").WithInMemory(true)
		dbOpts.Logger = nil
		dbOpts.MetricsEnabled = false

		var err error
		set.db, err = badger.Open(dbOpts)
		if err != nil {
			return errors.Wrap(err, "open in-memory set")
		}
	}
	return nil
}

func (set *lsmSet) TryAdd(key []byte) (bool, error) {
	_, added, err := set.tryAddValue(key, nil)
	return added, err
}

// tryAddValue stores val under key unless key is already present, in which case the stored value is returned.
func (set *lsmSet) tryAddValue(key, val []byte) (existing []byte, added bool, err error) {
	if err = set.autoOpen(); err != nil {
		return nil, false, err
	}

	err = set.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err == nil {
			existing, err = item.ValueCopy(nil)
			return err
		}
		if err != badger.ErrKeyNotFound {
			return err
		}
		added = true
		return txn.Set(key, val)
	})
	if err != nil {
		return nil, false, err
	}
	if added {
		set.count++
	}
	return existing, added, nil
}

func (set *lsmSet) Len() int {
	return set.count
}

func (set *lsmSet) Close() {
	if set.db != nil {
		set.db.Close()
		set.db = nil
	}
	set.count = 0
}

// VisitSet records which nodes of one walk have been visited, and at which step.
//
// Reset starts a new walk over the same open store, so one VisitSet can check many graphs.
type VisitSet struct {
	keys lsmSet
	walk uint64 // prefixes every key so earlier walks are never seen
	key  [2 * binary.MaxVarintLen64]byte
	val  [binary.MaxVarintLen64]byte
}

func NewVisitSet() *VisitSet {
	return &VisitSet{}
}

// Reset forgets all visits made so far.
func (vs *VisitSet) Reset() {
	vs.walk++
	vs.keys.count = 0
}

// Visit marks node as visited at the given step.  If node was already visited, first is false and firstStep is
// the step of the earlier visit.
func (vs *VisitSet) Visit(node, step int) (firstStep int, first bool, err error) {
	key := binary.AppendUvarint(vs.key[:0], vs.walk)
	key = binary.AppendUvarint(key, uint64(node))
	val := binary.AppendUvarint(vs.val[:0], uint64(step))
	existing, added, err := vs.keys.tryAddValue(key, val)
	if err != nil || added {
		return step, added, err
	}
	prev, n := binary.Uvarint(existing)
	if n <= 0 {
		return 0, false, errors.Errorf("bad visit record for node %d", node)
	}
	return int(prev), false, nil
}

// Len returns the number of distinct nodes visited since the last Reset.
func (vs *VisitSet) Len() int {
	return vs.keys.Len()
}

func (vs *VisitSet) Close() {
	vs.keys.Close()
}

// Verify walks from the root until a node repeats; in a functional graph the first repeated node is the cycle
// entry, so it must match what Detect finds. The walk's result is returned along with ErrMismatch if they differ.
func Verify(X rho.Graph) (rho.CycleResult, error) {
	visited := NewVisitSet()
	defer visited.Close()
	return visited.Verify(X)
}

// Verify is like the package-level Verify but walks over this set, which is Reset first.
func (vs *VisitSet) Verify(X rho.Graph) (rho.CycleResult, error) {
	var oracle rho.CycleResult
	if X == nil {
		return oracle, rho.ErrNilGraph
	}

	detected, err := Detect(X)
	if err != nil {
		return oracle, err
	}

	vs.Reset()
	next := Root
	for step := 0; ; step++ {
		firstStep, first, err := vs.Visit(next, step)
		if err != nil {
			return oracle, err
		}
		if !first {
			oracle.Entry = next
			oracle.TailLen = firstStep
			oracle.CycleLen = step - firstStep
			break
		}
		if next, err = X.Neighbor(next); err != nil {
			return oracle, err
		}
	}
	oracle.Meet = detected.Meet

	if oracle != detected {
		return oracle, errors.Wrapf(rho.ErrMismatch, "walk found entry %d (tail %d, cycle %d), detect found entry %d (tail %d, cycle %d)",
			oracle.Entry, oracle.TailLen, oracle.CycleLen, detected.Entry, detected.TailLen, detected.CycleLen)
	}
	return oracle, nil
}
