package api

import (
	"testing"

	"github.com/cespare/xxhash/v2"

	"github.com/xtding233/payout-engine/internal/contract"
)

func TestRangeCacheResetsWhenFull(t *testing.T) {
	c := newRangeCache(2)
	c.put([]byte("a"), rangeResult{})
	c.put([]byte("b"), rangeResult{})
	if c.len() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.len())
	}
	c.put([]byte("c"), rangeResult{})
	if c.len() != 1 {
		t.Fatalf("expected reset to 1 entry, got %d", c.len())
	}
	if _, ok := c.get([]byte("a")); ok {
		t.Fatal("entry survived reset")
	}
	if _, ok := c.get([]byte("c")); !ok {
		t.Fatal("newest entry missing")
	}
}

func TestRangeCacheDisabled(t *testing.T) {
	c := newRangeCache(0)
	c.put([]byte("a"), rangeResult{})
	if _, ok := c.get([]byte("a")); ok {
		t.Fatal("disabled cache stored an entry")
	}
}

func TestRangeCacheRejectsDigestCollision(t *testing.T) {
	c := newRangeCache(4)
	stored := rangeResult{Ranges: []contract.RangePayout{{Start: 0, Count: 1, OfferAmount: 7, AcceptAmount: 3}}}
	// another key's entry sitting in the slot this key hashes to
	c.entries[xxhash.Sum64([]byte("wanted"))] = cacheEntry{key: []byte("other"), res: stored}
	if _, ok := c.get([]byte("wanted")); ok {
		t.Fatal("served an entry stored under different key bytes")
	}
	c.put([]byte("wanted"), rangeResult{})
	got, ok := c.get([]byte("wanted"))
	if !ok || len(got.Ranges) != 0 {
		t.Fatalf("expected own entry after put, got %+v ok=%v", got, ok)
	}
}

func TestRangeKeyCanonical(t *testing.T) {
	curveA, err := contract.NewPayoutCurve([]contract.PayoutPoint{{Outcome: 0, Payout: 0}, {Outcome: 10, Payout: 10}})
	if err != nil {
		t.Fatal(err)
	}
	curveB, err := contract.NewPayoutCurve([]contract.PayoutPoint{{Outcome: 0, Payout: 0}, {Outcome: 10, Payout: 9}})
	if err != nil {
		t.Fatal(err)
	}
	a1, _ := rangeKey{Curve: curveA, Total: 10, LastOutcome: 10}.canonical()
	a2, _ := rangeKey{Curve: curveA, Total: 10, LastOutcome: 10}.canonical()
	b, _ := rangeKey{Curve: curveB, Total: 10, LastOutcome: 10}.canonical()
	other, _ := rangeKey{Curve: curveA, Total: 10, LastOutcome: 11}.canonical()
	if string(a1) != string(a2) {
		t.Fatal("canonical key is not stable")
	}
	if string(a1) == string(b) || string(a1) == string(other) {
		t.Fatal("different inputs share a key")
	}
}
