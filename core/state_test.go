package core

import (
	"testing"

	"github.com/yieldvault/yieldvault/common"
	"github.com/yieldvault/yieldvault/storage/pooldb"
)

func newTestState(t *testing.T) *poolState {
	t.Helper()
	s, err := newPoolState(newPoolStore(pooldb.NewMemDatabase()), Tunables{LockupDuration: 90 * daySeconds})
	if err != nil {
		t.Fatalf("new pool state fail: %v", err)
	}
	return s
}

func TestStateSnapshotRevert(t *testing.T) {
	s := newTestState(t)

	snapshot := s.Snapshot()
	p, err := s.mutatePosition(stakerAddr)
	if err != nil {
		t.Fatalf("mutate position fail: %v", err)
	}
	p.Principal = 1000
	p.StakedAt = testStart
	s.addTotal(1000)
	s.setPaused(true)
	s.setWindow(testWindow())

	s.RevertToSnapshot(snapshot)

	got, err := s.position(stakerAddr)
	if err != nil {
		t.Fatalf("position fail: %v", err)
	}
	if got != nil {
		t.Errorf("position should be gone after revert, got %+v", got)
	}
	if s.total != 0 {
		t.Errorf("total should revert to 0, got %v", s.total)
	}
	if s.paused {
		t.Errorf("paused should revert to false")
	}
	if s.window.started() {
		t.Errorf("window should revert to unset")
	}
}

func TestStatePartialRevert(t *testing.T) {
	s := newTestState(t)

	p, err := s.mutatePosition(stakerAddr)
	if err != nil {
		t.Fatalf("mutate position fail: %v", err)
	}
	p.Principal = 1000
	s.addTotal(1000)

	snapshot := s.Snapshot()
	p, err = s.mutatePosition(stakerAddr)
	if err != nil {
		t.Fatalf("mutate position fail: %v", err)
	}
	p.Principal = 400
	s.subTotal(600)

	s.RevertToSnapshot(snapshot)

	got, err := s.position(stakerAddr)
	if err != nil {
		t.Fatalf("position fail: %v", err)
	}
	if got == nil || got.Principal != 1000 {
		t.Errorf("expect principal 1000 after partial revert, got %+v", got)
	}
	if s.total != 1000 {
		t.Errorf("expect total 1000 after partial revert, got %v", s.total)
	}
}

func TestStateCommitPersists(t *testing.T) {
	db := pooldb.NewMemDatabase()
	s, err := newPoolState(newPoolStore(db), Tunables{})
	if err != nil {
		t.Fatalf("new pool state fail: %v", err)
	}

	p, err := s.mutatePosition(stakerAddr)
	if err != nil {
		t.Fatalf("mutate position fail: %v", err)
	}
	p.Principal = 1234
	p.StakedAt = testStart
	s.addTotal(1234)
	if err := s.Commit(); err != nil {
		t.Fatalf("commit fail: %v", err)
	}

	reloaded, err := newPoolState(newPoolStore(db), Tunables{})
	if err != nil {
		t.Fatalf("reload pool state fail: %v", err)
	}
	got, err := reloaded.position(stakerAddr)
	if err != nil {
		t.Fatalf("position fail: %v", err)
	}
	if got == nil || got.Principal != 1234 {
		t.Errorf("expect persisted principal 1234, got %+v", got)
	}
	if reloaded.total != 1234 {
		t.Errorf("expect persisted total 1234, got %v", reloaded.total)
	}
}

func TestStoreDropsZeroedPositions(t *testing.T) {
	store := newPoolStore(pooldb.NewMemDatabase())
	s, err := newPoolState(store, Tunables{})
	if err != nil {
		t.Fatalf("new pool state fail: %v", err)
	}

	p, err := s.mutatePosition(stakerAddr)
	if err != nil {
		t.Fatalf("mutate position fail: %v", err)
	}
	p.Principal = 10
	p.StakedAt = testStart
	if err := s.Commit(); err != nil {
		t.Fatalf("commit fail: %v", err)
	}

	p, err = s.mutatePosition(stakerAddr)
	if err != nil {
		t.Fatalf("mutate position fail: %v", err)
	}
	*p = Position{}
	if err := s.Commit(); err != nil {
		t.Fatalf("commit fail: %v", err)
	}

	count := 0
	err = store.forEachPosition(func(_ common.Address, _ *Position) bool {
		count++
		return true
	})
	if err != nil {
		t.Fatalf("scan fail: %v", err)
	}
	if count != 0 {
		t.Errorf("zeroed position should be dropped from the store, found %v", count)
	}
}
