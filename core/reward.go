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
	"math/big"

	mtime "github.com/yieldvault/yieldvault/middleware/time"
)

// precision is the fixed-point scale of the elapsed fraction. All
// divisions truncate, the pool never overpays
const precision = 1000000

// elapsedScaled returns the fraction of the staking duration the anchor has
// accrued for by now, scaled by precision. Accrual runs from the later of
// the anchor and the window start, so deposits made before startStaking earn
// no extra time, and stops at the window end
func elapsedScaled(anchor mtime.TimeStamp, w Window, duration int64, now mtime.TimeStamp) uint64 {
	if !w.started() || duration <= 0 {
		return 0
	}
	if now > w.End {
		now = w.End
	}
	start := anchor
	if w.Start > start {
		start = w.Start
	}
	if now <= start {
		return 0
	}
	elapsed := now.Since(start)
	if elapsed > duration {
		elapsed = duration
	}
	return precision * uint64(elapsed) / uint64(duration)
}

// pendingReward computes the interest owed to the position at now, including
// what is already banked in Unrealized. Linear in time: a principal held the
// whole window earns principal*apy/100. Intermediates use big.Int so base
// unit amounts cannot overflow, the result is floored
func pendingReward(p *Position, w Window, apy uint64, duration int64, now mtime.TimeStamp) uint64 {
	frac := elapsedScaled(p.Anchor, w, duration, now)

	r := new(big.Int).SetUint64(p.Principal)
	r.Mul(r, new(big.Int).SetUint64(apy))
	r.Mul(r, new(big.Int).SetUint64(frac))
	r.Div(r, big.NewInt(precision*100))
	r.Add(r, new(big.Int).SetUint64(p.Unrealized))
	if !r.IsUint64() {
		panic("pending reward overflows uint64")
	}
	return r.Uint64()
}

// settleRewards banks the interest accrued so far into Unrealized and
// rebases the anchor. Must run before any principal mutation so that
// interest earned under the old principal is locked in before the weight
// changes
func settleRewards(p *Position, w Window, apy uint64, duration int64, now mtime.TimeStamp) {
	p.Unrealized = pendingReward(p, w, apy, duration, now)
	if w.started() && now > w.End {
		p.Anchor = w.End
	} else {
		p.Anchor = now
	}
}

// lockupStart is the effective timestamp the participant's lockup clock runs
// from: the later of the first-deposit time and the window start. Zero when
// the position has no live stake clock
func lockupStart(p *Position, w Window) mtime.TimeStamp {
	if p == nil || p.StakedAt == 0 {
		return 0
	}
	if w.Start > p.StakedAt {
		return w.Start
	}
	return p.StakedAt
}

// lockupOver reports whether the participant's own lockup has elapsed. Uses
// the current lockup duration, so tuning it changes the effective lockup of
// not-yet-unlocked participants immediately
func lockupOver(p *Position, w Window, lockupDuration int64, now mtime.TimeStamp) bool {
	start := lockupStart(p, w)
	if start == 0 {
		return false
	}
	return now.Since(start) >= lockupDuration
}
