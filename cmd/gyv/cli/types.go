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

package cli

// Result is rpc request successfully returns the variable parameter
type Result struct {
	Message string      `json:"message"`
	Status  int         `json:"status"`
	Data    interface{} `json:"data"`
}

func (r *Result) IsSuccess() bool {
	return r.Status == 0
}

// ErrorResult is rpc request error returned variable parameter
type ErrorResult struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// RPCReqObj is complete rpc request body
type RPCReqObj struct {
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
	Jsonrpc string        `json:"jsonrpc"`
	ID      uint          `json:"id"`
}

// RPCResObj is complete rpc response body
type RPCResObj struct {
	Jsonrpc string       `json:"jsonrpc"`
	ID      uint         `json:"id"`
	Result  *Result      `json:"result,omitempty"`
	Error   *ErrorResult `json:"error,omitempty"`
}

// PoolStatus is the pool overview returned by the status query
type PoolStatus struct {
	Owner          string `json:"owner"`
	Paused         bool   `json:"paused"`
	TotalStaked    uint64 `json:"total_staked"`
	WindowStart    int64  `json:"window_start"`
	WindowLockup   int64  `json:"window_lockup_end"`
	WindowEnd      int64  `json:"window_end"`
	StakingMax     uint64 `json:"staking_max"`
	MaxPerUser     uint64 `json:"max_per_user"`
	LockupDuration int64  `json:"lockup_duration"`
	FixedAPY       uint64 `json:"fixed_apy"`
}

// PositionView is one participant's view of their stake
type PositionView struct {
	Address     string `json:"address"`
	Staked      uint64 `json:"staked"`
	Pending     uint64 `json:"pending_reward"`
	LockupStart int64  `json:"lockup_start"`
	Balance     uint64 `json:"balance"`
}

// OpRecordView is one audit trail entry
type OpRecordView struct {
	Seq    uint64 `json:"seq"`
	Type   byte   `json:"type"`
	Source string `json:"source"`
	Amount uint64 `json:"amount"`
	Time   string `json:"time"`
}
