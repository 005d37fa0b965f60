package tumour

import "slices"

// Entry links one minted mutation id to its immediate parent.
type Entry struct {
	Parent int
	Own    int
}

// Ledger is the append-only mutation ancestry record. The entry at index i
// describes clone-id i, and own-ids are minted in strictly increasing order,
// so a freshly appended entry always has Own equal to its index. A parent id
// is therefore always smaller than the id it spawns, which keeps every
// ancestor chain finite and cycle-free.
type Ledger struct {
	entries []Entry
}

// NewLedger seeds the ledger with the zero entry plus one root per seed
// tumour (own-ids 1..roots, all parented by 0).
func NewLedger(roots int) *Ledger {
	l := &Ledger{entries: make([]Entry, 0, roots+1)}
	l.entries = append(l.entries, Entry{})
	for i := 1; i <= roots; i++ {
		l.entries = append(l.entries, Entry{Parent: 0, Own: i})
	}
	return l
}

// Restore rebuilds a ledger from archived entries.
func Restore(entries []Entry) *Ledger {
	return &Ledger{entries: entries}
}

// Len returns the number of entries, roots included.
func (l *Ledger) Len() int { return len(l.entries) }

// Entry returns the record for the given clone-id.
func (l *Ledger) Entry(id int) Entry { return l.entries[id] }

// Entries exposes the raw records for archiving.
func (l *Ledger) Entries() []Entry { return l.entries }

// Append links a new own-id under parent and returns the clone-id (the
// index) of the appended entry.
func (l *Ledger) Append(parent, own int) int {
	l.entries = append(l.entries, Entry{Parent: parent, Own: own})
	return len(l.entries) - 1
}

// MutationsOf walks the ancestor chain of the given clone-id and returns
// the mutation ids it carries, ordered root to leaf. Because an entry's
// own-id equals its index the parent lookup is a direct slice access, and
// the walk visits at most Len() entries before reaching the root.
func (l *Ledger) MutationsOf(cloneID int) []int {
	var lineage []int
	m := l.entries[cloneID].Own
	for m > 0 {
		lineage = append(lineage, m)
		m = l.entries[m].Parent
	}
	slices.Reverse(lineage)
	return lineage
}
