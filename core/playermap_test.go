package core

import (
	"testing"

	"pgregory.net/rapid"
)

func TestNewPlayerMapPanicsOnZeroPlayers(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected NewPlayerMap(0, ...) to panic")
		}
	}()
	NewPlayerMap(0, 0)
}

func TestNewPlayerMapPanicsAboveMax(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected NewPlayerMap(256, ...) to panic")
		}
	}()
	NewPlayerMap(256, 0)
}

// A PlayerMap built for n players always has exactly n entries, and
// Get after Set returns exactly the value written, for any valid n and
// any sequence of writes.
func TestPlayerMapSetThenGetRoundTrips(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 16).Draw(t, "n")
		pm := NewPlayerMap(n, 0)
		if pm.Len() != n {
			t.Fatalf("expected Len()=%d, got %d", n, pm.Len())
		}

		writes := rapid.SliceOfN(rapid.IntRange(0, 1<<20), 0, n*3).Draw(t, "writes")
		for i, v := range writes {
			p := PlayerId(i % n)
			pm.Set(p, v)
			if got := pm.Get(p); got != v {
				t.Fatalf("expected Get(%d)=%d immediately after Set, got %d", p, v, got)
			}
		}
	})
}

// Clone must be independent: mutating the clone never changes the
// original.
func TestPlayerMapCloneIsIndependent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(t, "n")
		pm := NewPlayerMap(n, 0)
		for i := 0; i < n; i++ {
			pm.Set(PlayerId(i), i*10)
		}
		clone := pm.Clone()
		for i := 0; i < n; i++ {
			clone.Set(PlayerId(i), -1)
		}
		for i := 0; i < n; i++ {
			if got := pm.Get(PlayerId(i)); got != i*10 {
				t.Fatalf("expected original player %d unchanged at %d, got %d", i, i*10, got)
			}
		}
	})
}
