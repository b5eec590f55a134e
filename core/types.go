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
	mtime "github.com/yieldvault/yieldvault/middleware/time"
)

const (
	daySeconds = 24 * 60 * 60

	// residualGracePeriod is the delay after the window end before the
	// owner may sweep undistributed surplus. Long enough for every
	// participant to have had a chance to withdraw
	residualGracePeriod = 15 * daySeconds
)

// Position is one participant's stake bookkeeping. Created on the first
// deposit and zeroed on full exit, never removed from the ledger
type Position struct {
	// Principal is the amount currently staked, base units
	Principal uint64

	// Unrealized is interest already computed but not paid out yet
	Unrealized uint64

	// Anchor is the accrual anchor. Every rewards recompute banks the
	// interest earned since Anchor into Unrealized and rebases Anchor to
	// min(now, window end)
	Anchor mtime.TimeStamp

	// StakedAt is the lockup clock. Set on the first deposit of the
	// position's life, kept through top-ups and partial withdrawals,
	// zeroed on full exit. Sequential deposits therefore share the first
	// deposit's clock
	StakedAt mtime.TimeStamp
}

func (p *Position) empty() bool {
	return p.Principal == 0 && p.Unrealized == 0 && p.StakedAt == 0
}

// Window is the global staking window, set exactly once by startStaking
type Window struct {
	Start     mtime.TimeStamp
	LockupEnd mtime.TimeStamp
	End       mtime.TimeStamp
}

func (w *Window) started() bool {
	return w.Start > 0
}

// Tunables are the owner-mutable limits. They take effect immediately for
// future computations, existing positions are never migrated. A zero cap
// means unlimited
type Tunables struct {
	StakingMax     uint64
	MaxPerUser     uint64
	LockupDuration int64 // seconds
}

// PoolConfig is the immutable part of the pool setup, fixed at construction.
// LockupDuration, StakingMax and MaxPerUser only seed the tunables of a
// fresh database
type PoolConfig struct {
	Owner           common.Address
	FixedAPY        uint64
	StakingDuration int64 // seconds
	LockupDuration  int64 // seconds
	StakingMax      uint64
	MaxPerUser      uint64
}
