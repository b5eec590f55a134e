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

// Package common provides common data structures and common utility functions.
package common

import (
	"math/big"
)

const HexPrefix = "0x"

// AddressLength is the byte length of an account address
const AddressLength = 32

// Special account address of the pool vault itself.
// Token balances held on behalf of all stakers live under this address
// at the external token ledger.
var PoolAddress = BigToAddress(big.NewInt(1))

// Address data struct
type Address [AddressLength]byte

// BytesToAddress returns the Address imported from the input byte array
func BytesToAddress(b []byte) Address {
	var a Address
	a.SetBytes(b)
	return a
}

// BigToAddress returns the address of the input big integer assignment
func BigToAddress(b *big.Int) Address { return BytesToAddress(b.Bytes()) }

// HexToAddress returns the address of the input hex string assignment
func HexToAddress(s string) Address { return BytesToAddress(FromHex(s)) }

// SetBytes sets the address to the value of input byte array
func (a *Address) SetBytes(b []byte) {
	if len(b) > len(a) {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
}

// Bytes converts the address to a byte array
func (a Address) Bytes() []byte { return a[:] }

// Hex converts the address to a hex string with the 0x prefix
func (a Address) Hex() string { return ToHex(a[:]) }

func (a Address) String() string { return a.Hex() }

// IsZero tells whether the address is the zero value
func (a Address) IsZero() bool {
	for _, b := range a {
		if b != 0 {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the address as a hex string with json format
func (a Address) MarshalJSON() ([]byte, error) {
	return []byte("\"" + a.Hex() + "\""), nil
}

// UnmarshalJSON decodes the address from a quoted hex string
func (a *Address) UnmarshalJSON(data []byte) error {
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}
	a.SetBytes(FromHex(string(data)))
	return nil
}
