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

import "github.com/yieldvault/yieldvault/common"

// TokenLedger is the external fungible-token collaborator holding the real
// balances. The pool only calls it, never implements it. Transfer pays out
// of the pool vault account, TransferFrom pulls a deposit in under the
// ledger's allowance model. A returned error means the transfer was rejected
// and nothing moved
type TokenLedger interface {
	BalanceOf(addr common.Address) uint64
	Transfer(to common.Address, amount uint64) error
	TransferFrom(from, to common.Address, amount uint64) error
}
