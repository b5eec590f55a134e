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

// Package core implements the staking pool ledger: a fixed-yield lockup
// pool where participants deposit a fungible token, interest accrues
// linearly over a global staking window, and principal is locked per
// participant. Balances live at an external token ledger, this package only
// does the accounting
package core

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru"

	"github.com/yieldvault/yieldvault/common"
	"github.com/yieldvault/yieldvault/log"
	"github.com/yieldvault/yieldvault/middleware/notify"
	mtime "github.com/yieldvault/yieldvault/middleware/time"
	"github.com/yieldvault/yieldvault/storage/pooldb"
)

const recentOpsSize = 256

// OpRecord is the audit trail entry of a successful operation
type OpRecord struct {
	Seq    uint64         `json:"seq"`
	Type   OpType         `json:"type"`
	Source common.Address `json:"source"`
	Amount uint64         `json:"amount"`
	Time   mtime.TimeStamp `json:"time"`
}

// PoolManager owns the pool ledger. Every mutation goes through
// ExecuteOperation, which runs operations strictly serialized: state is
// changed through the journal first, the external token transfer is the
// last side effect, and a rejected transfer reverts the snapshot so no
// partial state survives
type PoolManager struct {
	mu sync.Mutex

	cfg   PoolConfig
	state *poolState
	token TokenLedger
	ts    mtime.TimeService

	recentOps *lru.Cache
	seq       uint64
}

// NewPoolManager loads the ledger from the given database, seeding the
// tunables from cfg when the database is fresh
func NewPoolManager(cfg *PoolConfig, db pooldb.Database, token TokenLedger, ts mtime.TimeService) (*PoolManager, error) {
	if token == nil {
		return nil, fmt.Errorf("nil token ledger")
	}
	if ts == nil {
		ts = mtime.TSInstance
	}

	defaults := Tunables{
		StakingMax:     cfg.StakingMax,
		MaxPerUser:     cfg.MaxPerUser,
		LockupDuration: cfg.LockupDuration,
	}
	state, err := newPoolState(newPoolStore(db), defaults)
	if err != nil {
		return nil, fmt.Errorf("load pool state: %v", err)
	}

	m := &PoolManager{
		cfg:       *cfg,
		state:     state,
		token:     token,
		ts:        ts,
		recentOps: common.MustNewLRUCache(recentOpsSize),
	}
	m.checkIntegrity()
	return m, nil
}

// checkIntegrity recomputes the principal sum from the stored positions and
// warns when it disagrees with the stored total
func (m *PoolManager) checkIntegrity() {
	var sum uint64
	err := m.state.store.forEachPosition(func(addr common.Address, p *Position) bool {
		sum += p.Principal
		return true
	})
	if err != nil {
		log.CoreLogger.Errorf("position scan fail: %v", err)
		return
	}
	if sum != m.state.total {
		log.CoreLogger.Warnf("total staked mismatch: stored %v, position sum %v", m.state.total, sum)
	}
}

// ExecuteOperation validates and applies one pool operation atomically
func (m *PoolManager) ExecuteOperation(msg StakeMessage) error {
	if msg == nil || msg.Operator() == nil {
		return fmt.Errorf("invalid operation message")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.ts.Now()
	op := newOperation(m.state, m.token, &m.cfg, msg, now)
	if op == nil {
		return fmt.Errorf("unknown operation type %v", msg.OpType())
	}

	if err := op.Validate(); err != nil {
		log.CoreLogger.Debugf("op %v from %v rejected: %v", msg.OpType(), msg.Operator().Hex(), err)
		return err
	}

	snapshot := m.state.Snapshot()
	if err := op.Operation(); err != nil {
		m.state.RevertToSnapshot(snapshot)
		log.CoreLogger.Warnf("op %v from %v failed: %v", msg.OpType(), msg.Operator().Hex(), err)
		return err
	}
	if err := m.state.Commit(); err != nil {
		m.state.RevertToSnapshot(snapshot)
		log.CoreLogger.Errorf("op %v from %v commit fail: %v", msg.OpType(), msg.Operator().Hex(), err)
		return fmt.Errorf("commit pool state: %v", err)
	}

	m.seq++
	record := &OpRecord{
		Seq:    m.seq,
		Type:   msg.OpType(),
		Source: *msg.Operator(),
		Amount: msg.Amount(),
		Time:   now,
	}
	m.recentOps.Add(record.Seq, record)
	log.CoreLogger.Infof("op %v from %v amount %v done", msg.OpType(), msg.Operator().Hex(), msg.Amount())

	if notify.BUS != nil {
		for _, ev := range op.Events() {
			notify.BUS.Publish(ev.topic, ev.msg)
		}
	}
	return nil
}

// StakedOf returns the participant's current principal
func (m *PoolManager) StakedOf(addr common.Address) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.state.position(addr)
	if err != nil || p == nil {
		return 0
	}
	return p.Principal
}

// TotalStaked returns the sum of all principals
func (m *PoolManager) TotalStaked() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.total
}

// PendingReward returns the interest the participant could claim right now
func (m *PoolManager) PendingReward(addr common.Address) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.state.position(addr)
	if err != nil || p == nil {
		return 0
	}
	return pendingReward(p, m.state.window, m.cfg.FixedAPY, m.cfg.StakingDuration, m.ts.Now())
}

// LockupStartOf returns the effective timestamp the participant's lockup
// clock runs from, zero when nothing is staked
func (m *PoolManager) LockupStartOf(addr common.Address) mtime.TimeStamp {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.state.position(addr)
	if err != nil {
		return 0
	}
	return lockupStart(p, m.state.window)
}

// Window returns the global staking window, all zero before startStaking
func (m *PoolManager) Window() Window {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.window
}

// Tunables returns the current owner-mutable limits
func (m *PoolManager) Tunables() Tunables {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.tunables
}

// Paused tells whether the mutation gate is closed
func (m *PoolManager) Paused() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.paused
}

// Owner returns the administrative account
func (m *PoolManager) Owner() common.Address {
	return m.cfg.Owner
}

// FixedAPY returns the configured full-window yield percentage
func (m *PoolManager) FixedAPY() uint64 {
	return m.cfg.FixedAPY
}

// RecentOps returns the retained audit trail, oldest first
func (m *PoolManager) RecentOps() []*OpRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := m.recentOps.Keys()
	records := make([]*OpRecord, 0, len(keys))
	for _, k := range keys {
		if v, ok := m.recentOps.Get(k); ok {
			records = append(records, v.(*OpRecord))
		}
	}
	return records
}
