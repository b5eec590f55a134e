//   Copyright (C) 2020 YieldVault
//
//   This program is free software: you can redistribute it and/or modify
//   it under the terms of the GNU General Public License as published by
//   the Free Software Foundation, either version 3 of the License, or
//   (at your option) any later version.
//
//   This program is distributed in the hope that it will be useful,
//   but WITHOUT ANY WARRANTY; without even the implied warranty of
//   MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//   GNU General Public License for more details.
//
//   You should have received a copy of the GNU General Public License
//   along with this program.  If not, see <https://www.gnu.org/licenses/>.

package core

import (
	"github.com/yieldvault/yieldvault/common"
)

// poolState is the in-memory ledger. Positions load lazily from the store,
// every mutation goes through a journal so a failed operation can revert to
// its pre-operation snapshot, and dirty entries flush to the database in one
// batch on Commit
type poolState struct {
	store *poolStore

	// positions caches loaded entries. A nil value records a known-absent
	// position
	positions map[common.Address]*Position
	total     uint64
	window    Window
	tunables  Tunables
	paused    bool

	journal []journalEntry

	dirtyPos      map[common.Address]struct{}
	dirtyTotal    bool
	dirtyWindow   bool
	dirtyTunables bool
	dirtyPaused   bool
}

func newPoolState(store *poolStore, defaults Tunables) (*poolState, error) {
	s := &poolState{
		store:     store,
		positions: make(map[common.Address]*Position),
		tunables:  defaults,
		dirtyPos:  make(map[common.Address]struct{}),
	}

	total, err := store.loadTotal()
	if err != nil {
		return nil, err
	}
	s.total = total

	w, err := store.loadWindow()
	if err != nil {
		return nil, err
	}
	if w != nil {
		s.window = *w
	}

	t, err := store.loadTunables()
	if err != nil {
		return nil, err
	}
	if t != nil {
		s.tunables = *t
	}

	paused, err := store.loadPaused()
	if err != nil {
		return nil, err
	}
	s.paused = paused

	return s, nil
}

type journalEntry interface {
	revert(s *poolState)
}

type positionChange struct {
	addr common.Address
	prev *Position // copy of the pre-change value, nil if absent
}

func (ch positionChange) revert(s *poolState) {
	if ch.prev == nil {
		s.positions[ch.addr] = nil
		return
	}
	cp := *ch.prev
	s.positions[ch.addr] = &cp
}

type totalChange struct{ prev uint64 }

func (ch totalChange) revert(s *poolState) { s.total = ch.prev }

type windowChange struct{ prev Window }

func (ch windowChange) revert(s *poolState) { s.window = ch.prev }

type tunablesChange struct{ prev Tunables }

func (ch tunablesChange) revert(s *poolState) { s.tunables = ch.prev }

type pausedChange struct{ prev bool }

func (ch pausedChange) revert(s *poolState) { s.paused = ch.prev }

// position returns the participant's position for reading, nil when none
// exists. The result must not be mutated, use mutatePosition for that
func (s *poolState) position(addr common.Address) (*Position, error) {
	if p, ok := s.positions[addr]; ok {
		return p, nil
	}
	p, err := s.store.loadPosition(addr)
	if err != nil {
		return nil, err
	}
	s.positions[addr] = p
	return p, nil
}

// mutatePosition journals the current value and returns a live pointer,
// creating the position if absent
func (s *poolState) mutatePosition(addr common.Address) (*Position, error) {
	p, err := s.position(addr)
	if err != nil {
		return nil, err
	}
	if p == nil {
		s.journal = append(s.journal, positionChange{addr: addr, prev: nil})
		p = &Position{}
	} else {
		cp := *p
		s.journal = append(s.journal, positionChange{addr: addr, prev: &cp})
	}
	s.positions[addr] = p
	s.dirtyPos[addr] = struct{}{}
	return p, nil
}

func (s *poolState) setTotal(total uint64) {
	s.journal = append(s.journal, totalChange{prev: s.total})
	s.total = total
	s.dirtyTotal = true
}

func (s *poolState) addTotal(amount uint64) {
	if s.total+amount < s.total {
		panic("total staked overflow")
	}
	s.setTotal(s.total + amount)
}

func (s *poolState) subTotal(amount uint64) {
	if amount > s.total {
		panic("total staked underflow")
	}
	s.setTotal(s.total - amount)
}

func (s *poolState) setWindow(w Window) {
	s.journal = append(s.journal, windowChange{prev: s.window})
	s.window = w
	s.dirtyWindow = true
}

func (s *poolState) setTunables(t Tunables) {
	s.journal = append(s.journal, tunablesChange{prev: s.tunables})
	s.tunables = t
	s.dirtyTunables = true
}

func (s *poolState) setPaused(paused bool) {
	s.journal = append(s.journal, pausedChange{prev: s.paused})
	s.paused = paused
	s.dirtyPaused = true
}

// Snapshot marks the current journal position
func (s *poolState) Snapshot() int {
	return len(s.journal)
}

// RevertToSnapshot undoes every change journaled after the given snapshot
func (s *poolState) RevertToSnapshot(snapshot int) {
	for i := len(s.journal) - 1; i >= snapshot; i-- {
		s.journal[i].revert(s)
	}
	s.journal = s.journal[:snapshot]
}

// Commit flushes the dirty entries to the database in one batch and resets
// the journal
func (s *poolState) Commit() error {
	batch := s.store.db.NewBatch()
	for addr := range s.dirtyPos {
		if err := s.store.storePosition(batch, addr, s.positions[addr]); err != nil {
			return err
		}
	}
	if s.dirtyTotal {
		if err := s.store.storeTotal(batch, s.total); err != nil {
			return err
		}
	}
	if s.dirtyWindow {
		if err := s.store.storeWindow(batch, s.window); err != nil {
			return err
		}
	}
	if s.dirtyTunables {
		if err := s.store.storeTunables(batch, s.tunables); err != nil {
			return err
		}
	}
	if s.dirtyPaused {
		if err := s.store.storePaused(batch, s.paused); err != nil {
			return err
		}
	}
	if batch.ValueSize() > 0 {
		if err := batch.Write(); err != nil {
			return err
		}
	}

	s.journal = s.journal[:0]
	s.dirtyPos = make(map[common.Address]struct{})
	s.dirtyTotal = false
	s.dirtyWindow = false
	s.dirtyTunables = false
	s.dirtyPaused = false
	return nil
}
