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

import (
	"errors"
	"sync"

	"github.com/yieldvault/yieldvault/common"
)

var (
	errInsufficientBalance   = errors.New("insufficient balance")
	errInsufficientAllowance = errors.New("insufficient allowance")
)

// devLedger is an in-memory token ledger so a node can run end to end
// without an external chain. It follows the usual allowance model: a staker
// approves the pool before the pool may pull a deposit. Balances are minted
// by the faucet, nothing is durable
type devLedger struct {
	mu         sync.Mutex
	balances   map[common.Address]uint64
	allowances map[common.Address]uint64 // granted to the pool vault
}

func newDevLedger() *devLedger {
	return &devLedger{
		balances:   make(map[common.Address]uint64),
		allowances: make(map[common.Address]uint64),
	}
}

func (l *devLedger) BalanceOf(addr common.Address) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[addr]
}

// Transfer pays out of the pool vault account
func (l *devLedger) Transfer(to common.Address, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.move(common.PoolAddress, to, amount)
}

// TransferFrom pulls from a third account and consumes its allowance
func (l *devLedger) TransferFrom(from, to common.Address, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if from != common.PoolAddress {
		if l.allowances[from] < amount {
			return errInsufficientAllowance
		}
		if err := l.move(from, to, amount); err != nil {
			return err
		}
		l.allowances[from] -= amount
		return nil
	}
	return l.move(from, to, amount)
}

// Approve grants the pool the right to pull up to amount from the owner
func (l *devLedger) Approve(owner common.Address, amount uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.allowances[owner] = amount
}

func (l *devLedger) AllowanceOf(addr common.Address) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.allowances[addr]
}

// Mint creates balance out of thin air, the faucet of the dev ledger
func (l *devLedger) Mint(to common.Address, amount uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.balances[to]+amount < l.balances[to] {
		return
	}
	l.balances[to] += amount
}

func (l *devLedger) move(from, to common.Address, amount uint64) error {
	if l.balances[from] < amount {
		return errInsufficientBalance
	}
	l.balances[from] -= amount
	l.balances[to] += amount
	return nil
}
