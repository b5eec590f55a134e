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

import "errors"

// Rejection reasons of pool operations. Every failure aborts the whole
// operation, nothing is retried internally
var (
	ErrAccessDenied    = errors.New("access denied")
	ErrPoolPaused      = errors.New("pool is paused")
	ErrNotPaused       = errors.New("pool is not paused")
	ErrAlreadyStarted  = errors.New("staking period already started")
	ErrStakingEnded    = errors.New("staking period already ended")
	ErrPoolCapExceeded = errors.New("pool staking cap exceeded")
	ErrUserCapExceeded = errors.New("user staking cap exceeded")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrLockupActive    = errors.New("lockup period not over")
	ErrNothingToClaim  = errors.New("nothing to claim")
	ErrPeriodNotOver   = errors.New("staking period not over")
)
