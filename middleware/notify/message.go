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

import (
	"github.com/yieldvault/yieldvault/common"
	mtime "github.com/yieldvault/yieldvault/middleware/time"
)

// StakeEventMessage carries the staker and the amount of a balance-changing
// pool operation. It is published on the deposit, withdraw, claim and sweep topics
type StakeEventMessage struct {
	Staker common.Address
	Amount uint64
}

func (m *StakeEventMessage) GetRaw() []byte {
	return m.Staker.Bytes()
}

func (m *StakeEventMessage) GetData() interface{} {
	return m
}

// PeriodStartMessage announces the freshly opened global staking window
type PeriodStartMessage struct {
	Start     mtime.TimeStamp
	LockupEnd mtime.TimeStamp
	End       mtime.TimeStamp
}

func (m *PeriodStartMessage) GetRaw() []byte {
	return m.Start.Bytes()
}

func (m *PeriodStartMessage) GetData() interface{} {
	return m
}
