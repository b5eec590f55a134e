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

package notify

// defines all of current used event ids
const (
	PeriodStart   = "period_start"
	StakeDeposit  = "stake_deposit"
	StakeWithdraw = "stake_withdraw"
	RewardsClaim  = "rewards_claim"
	ResidualSweep = "residual_sweep"
	PoolPaused    = "pool_paused"
	PoolUnpaused  = "pool_unpaused"
)
