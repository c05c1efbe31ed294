package engine

import (
	"testing"

	"github.com/MRamiBalles/GeoMonedasJuego/internal/domain/cell"
	"github.com/MRamiBalles/GeoMonedasJuego/internal/domain/geocache"
)

func TestSnapshotOfFreshWorld(t *testing.T) {
	// Save then load with zero prior activity: coin count 0, empty trail.
	source := newTestEngine(testConfig(1, 1.0))
	snap, err := source.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	restored := newTestEngine(testConfig(1, 1.0))
	if err := restored.Restore(snap); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	if restored.InventoryCount() != 0 {
		t.Errorf("Expected coin count 0, got %d", restored.InventoryCount())
	}
	if len(restored.Trail()) != 0 {
		t.Errorf("Expected empty movement trail, got %d entries", len(restored.Trail()))
	}
}

func TestRestoreReproducesTheWorld(t *testing.T) {
	source := newTestEngine(testConfig(1, 1.0))
	source.MovePlayer(pointInCell(5, 5))
	source.MovePlayer(pointInCell(5, 6))   // evicts column 4 to dormant
	if err := source.CollectCoin("5,6"); err != nil {
		t.Fatalf("CollectCoin failed: %v", err)
	}

	snapA, err := source.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	restored := newTestEngine(testConfig(1, 1.0))
	if err := restored.Restore(snapA); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	if restored.PlayerPosition() != source.PlayerPosition() {
		t.Errorf("Position differs after restore")
	}
	if restored.InventoryCount() != source.InventoryCount() {
		t.Errorf("Inventory differs after restore: %d vs %d", restored.InventoryCount(), source.InventoryCount())
	}
	if len(restored.Trail()) != 2 {
		t.Errorf("Expected 2 trail entries, got %d", len(restored.Trail()))
	}

	// Every previously-known cell must hold identical content.
	snapB, err := restored.Snapshot()
	if err != nil {
		t.Fatalf("Second snapshot failed: %v", err)
	}
	if len(snapA.CacheStates) != len(snapB.CacheStates) {
		t.Fatalf("Known cell count differs: %d vs %d", len(snapA.CacheStates), len(snapB.CacheStates))
	}
	for i := range snapA.CacheStates {
		keyA, mementoA := snapA.CacheStates[i][0], snapA.CacheStates[i][1]
		keyB, mementoB := snapB.CacheStates[i][0], snapB.CacheStates[i][1]
		if keyA != keyB {
			t.Fatalf("Cell key order differs: %s vs %s", keyA, keyB)
		}
		a, err := geocache.DecodeMemento(mementoA)
		if err != nil {
			t.Fatalf("Bad memento for %s: %v", keyA, err)
		}
		b, err := geocache.DecodeMemento(mementoB)
		if err != nil {
			t.Fatalf("Bad memento for %s: %v", keyB, err)
		}
		if len(a.Coins) != len(b.Coins) {
			t.Errorf("Cell %s: coin count differs after restore, %d vs %d", keyA, len(a.Coins), len(b.Coins))
			continue
		}
		for n := range a.Coins {
			if a.Coins[n] != b.Coins[n] {
				t.Errorf("Cell %s: coin %d changed identity, %v vs %v", keyA, n, a.Coins[n], b.Coins[n])
			}
		}
	}
}

func TestSnapshotJSONRoundTrip(t *testing.T) {
	source := newTestEngine(testConfig(1, 1.0))
	source.MovePlayer(pointInCell(2, 2))

	data, err := source.SnapshotJSON()
	if err != nil {
		t.Fatalf("SnapshotJSON failed: %v", err)
	}

	restored := newTestEngine(testConfig(1, 1.0))
	if err := restored.RestoreJSON(data); err != nil {
		t.Fatalf("RestoreJSON failed: %v", err)
	}
	if restored.PlayerPosition() != source.PlayerPosition() {
		t.Errorf("Position differs after JSON round trip")
	}
}

func TestRestoreJSONRejectsMalformedBlob(t *testing.T) {
	e := newTestEngine(testConfig(1, 1.0))
	e.MovePlayer(pointInCell(1, 1))
	before := len(e.ActiveCaches())

	if err := e.RestoreJSON([]byte("{this is not json")); err == nil {
		t.Fatalf("Expected error for malformed snapshot")
	}
	if len(e.ActiveCaches()) != before {
		t.Errorf("Expected the running world to survive a failed restore")
	}
}

func TestRestoreRejectsNegativeCoins(t *testing.T) {
	e := newTestEngine(testConfig(1, 1.0))
	err := e.Restore(WorldSnapshot{PlayerCoins: -1})
	if err == nil {
		t.Errorf("Expected error for negative coin count")
	}
}

func TestRestoreSkipsCorruptedEntryOnly(t *testing.T) {
	e := newTestEngine(testConfig(1, 0))
	err := e.Restore(WorldSnapshot{
		PlayerPosition: pointInCell(5, 5),
		CacheStates: [][2]string{
			{"5,5", mementoWithCoins(cell.Cell{I: 5, J: 5}, 2)},
			{"5,6", "garbage"},
		},
	})
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	// The good entry activates; the corrupted one falls back to
	// generation, which spawns nothing at probability 0.
	if _, ok := findCache(e, "5,5"); !ok {
		t.Errorf("Expected the intact cache at 5,5 to activate")
	}
	if _, ok := findCache(e, "5,6"); ok {
		t.Errorf("Expected the corrupted cell to stay empty, not block or invent a cache")
	}
}
