package tumour

import (
	"slices"
	"testing"
)

func TestNewLedgerRoots(t *testing.T) {
	single := NewLedger(1)
	if single.Len() != 2 {
		t.Fatalf("single-root ledger length = %d, want 2", single.Len())
	}
	if got := single.Entry(1); got != (Entry{Parent: 0, Own: 1}) {
		t.Fatalf("root entry = %+v", got)
	}

	double := NewLedger(2)
	if double.Len() != 3 {
		t.Fatalf("double-root ledger length = %d, want 3", double.Len())
	}
	if got := double.Entry(2); got != (Entry{Parent: 0, Own: 2}) {
		t.Fatalf("second root entry = %+v", got)
	}
}

func TestAppendOwnEqualsIndex(t *testing.T) {
	l := NewLedger(1)
	for own := 2; own <= 10; own++ {
		idx := l.Append(own-1, own)
		if idx != own {
			t.Fatalf("Append returned index %d for own-id %d", idx, own)
		}
		if l.Entry(idx).Own != idx {
			t.Fatalf("entry %d has own-id %d", idx, l.Entry(idx).Own)
		}
	}
}

func TestMutationsOfWalksRootToLeaf(t *testing.T) {
	l := NewLedger(1)
	// Chain 1 -> 2 -> 3 plus a sibling 4 under 1.
	l.Append(1, 2)
	l.Append(2, 3)
	l.Append(1, 4)

	if got := l.MutationsOf(3); !slices.Equal(got, []int{1, 2, 3}) {
		t.Fatalf("MutationsOf(3) = %v, want [1 2 3]", got)
	}
	if got := l.MutationsOf(4); !slices.Equal(got, []int{1, 4}) {
		t.Fatalf("MutationsOf(4) = %v, want [1 4]", got)
	}
	if got := l.MutationsOf(0); len(got) != 0 {
		t.Fatalf("MutationsOf(0) = %v, want empty", got)
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	l := NewLedger(2)
	l.Append(2, 3)
	restored := Restore(l.Entries())
	if restored.Len() != l.Len() {
		t.Fatalf("restored length = %d, want %d", restored.Len(), l.Len())
	}
	if !slices.Equal(restored.MutationsOf(3), l.MutationsOf(3)) {
		t.Fatal("restored ledger reconstructs a different lineage")
	}
}
