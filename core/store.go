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
	"fmt"

	"github.com/vmihailenco/msgpack"

	"github.com/yieldvault/yieldvault/common"
	"github.com/yieldvault/yieldvault/storage/pooldb"
)

var (
	posPrefix = []byte("pos")

	keyTotalStaked = []byte("total_staked")
	keyWindow      = []byte("window")
	keyTunables    = []byte("tunables")
	keyPaused      = []byte("paused")
)

func posKey(addr common.Address) []byte {
	return append(posPrefix, addr.Bytes()...)
}

// poolStore maps the ledger onto the key-value database. Positions live
// under the pos prefix keyed by address, the singletons under fixed keys.
// Values are msgpack encoded except the plain counters
type poolStore struct {
	db pooldb.Database
}

func newPoolStore(db pooldb.Database) *poolStore {
	return &poolStore{db: db}
}

func (ps *poolStore) loadPosition(addr common.Address) (*Position, error) {
	bs, err := ps.db.Get(posKey(addr))
	if err != nil {
		return nil, err
	}
	if bs == nil {
		return nil, nil
	}
	var p Position
	if err := msgpack.Unmarshal(bs, &p); err != nil {
		return nil, fmt.Errorf("unmarshal position of %v: %v", addr.Hex(), err)
	}
	return &p, nil
}

// storePosition writes the position, or removes the record when the
// position is zeroed
func (ps *poolStore) storePosition(b pooldb.Batch, addr common.Address, p *Position) error {
	if p == nil || p.empty() {
		return b.Delete(posKey(addr))
	}
	bs, err := msgpack.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal position of %v: %v", addr.Hex(), err)
	}
	return b.Put(posKey(addr), bs)
}

// forEachPosition visits every stored position until fn returns false
func (ps *poolStore) forEachPosition(fn func(addr common.Address, p *Position) bool) error {
	iter := ps.db.NewIteratorWithPrefix(posPrefix)
	defer iter.Release()
	for iter.Next() {
		var p Position
		if err := msgpack.Unmarshal(iter.Value(), &p); err != nil {
			return fmt.Errorf("unmarshal position: %v", err)
		}
		if !fn(common.BytesToAddress(iter.Key()), &p) {
			break
		}
	}
	return iter.Error()
}

func (ps *poolStore) loadTotal() (uint64, error) {
	bs, err := ps.db.Get(keyTotalStaked)
	if err != nil {
		return 0, err
	}
	if bs == nil {
		return 0, nil
	}
	return common.ByteToUInt64(bs), nil
}

func (ps *poolStore) storeTotal(b pooldb.Batch, total uint64) error {
	return b.Put(keyTotalStaked, common.UInt64ToByte(total))
}

func (ps *poolStore) loadWindow() (*Window, error) {
	bs, err := ps.db.Get(keyWindow)
	if err != nil {
		return nil, err
	}
	if bs == nil {
		return nil, nil
	}
	var w Window
	if err := msgpack.Unmarshal(bs, &w); err != nil {
		return nil, fmt.Errorf("unmarshal window: %v", err)
	}
	return &w, nil
}

func (ps *poolStore) storeWindow(b pooldb.Batch, w Window) error {
	bs, err := msgpack.Marshal(&w)
	if err != nil {
		return fmt.Errorf("marshal window: %v", err)
	}
	return b.Put(keyWindow, bs)
}

func (ps *poolStore) loadTunables() (*Tunables, error) {
	bs, err := ps.db.Get(keyTunables)
	if err != nil {
		return nil, err
	}
	if bs == nil {
		return nil, nil
	}
	var t Tunables
	if err := msgpack.Unmarshal(bs, &t); err != nil {
		return nil, fmt.Errorf("unmarshal tunables: %v", err)
	}
	return &t, nil
}

func (ps *poolStore) storeTunables(b pooldb.Batch, t Tunables) error {
	bs, err := msgpack.Marshal(&t)
	if err != nil {
		return fmt.Errorf("marshal tunables: %v", err)
	}
	return b.Put(keyTunables, bs)
}

func (ps *poolStore) loadPaused() (bool, error) {
	bs, err := ps.db.Get(keyPaused)
	if err != nil {
		return false, err
	}
	return len(bs) == 1 && bs[0] == 1, nil
}

func (ps *poolStore) storePaused(b pooldb.Batch, paused bool) error {
	v := byte(0)
	if paused {
		v = 1
	}
	return b.Put(keyPaused, []byte{v})
}
