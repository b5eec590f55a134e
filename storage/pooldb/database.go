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

/*
	Package pooldb provides level db operations
*/
package pooldb

import (
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/yieldvault/yieldvault/common"
)

var (
	ErrLDBInit = errors.New("LDB instance not inited")
)

type LDBDatabase struct {
	db *leveldb.DB

	quitLock sync.Mutex

	filename string
	inited   bool
}

// NewLDBDatabase create level db instance by file
func NewLDBDatabase(file string, options *opt.Options) (*LDBDatabase, error) {
	db, err := newLevelDBInstance(file, options)
	if err != nil {
		return nil, err
	}

	ldb := &LDBDatabase{
		filename: file,
		db:       db,
		inited:   true,
	}
	return ldb, nil
}

// newLevelDBInstance generate a leveldb instance
func newLevelDBInstance(file string, options *opt.Options) (*leveldb.DB, error) {
	db, err := leveldb.OpenFile(file, options)

	if _, corrupted := err.(*errors.ErrCorrupted); corrupted {
		db, err = leveldb.RecoverFile(file, nil)
	}

	if err != nil {
		return nil, err
	}

	return db, nil
}

func (ldb *LDBDatabase) Clear() error {
	ldb.inited = false
	ldb.Close()

	os.RemoveAll(ldb.Path())

	db, err := newLevelDBInstance(ldb.Path(), nil)
	if err != nil {
		return err
	}

	ldb.db = db
	ldb.inited = true
	return nil
}

// Path returns the path to the database directory.
func (ldb *LDBDatabase) Path() string {
	return ldb.filename
}

// Put puts the given key / value to the store
func (ldb *LDBDatabase) Put(key []byte, value []byte) error {
	if !ldb.inited {
		return ErrLDBInit
	}

	return ldb.db.Put(key, value, nil)
}

func (ldb *LDBDatabase) Has(key []byte) (bool, error) {
	if !ldb.inited {
		return false, ErrLDBInit
	}

	return ldb.db.Has(key, nil)
}

// Get returns the given key if it's present.
func (ldb *LDBDatabase) Get(key []byte) ([]byte, error) {
	if !ldb.inited {
		return nil, ErrLDBInit
	}

	dat, err := ldb.db.Get(key, nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return dat, nil
}

// Delete deletes the key from the store
func (ldb *LDBDatabase) Delete(key []byte) error {
	if !ldb.inited {
		return ErrLDBInit
	}
	return ldb.db.Delete(key, nil)
}

// NewIteratorWithPrefix returns a iterator to iterate over subset of database content with a particular prefix.
func (ldb *LDBDatabase) NewIteratorWithPrefix(prefix []byte) Iterator {
	return &ldbIter{iter: ldb.db.NewIterator(util.BytesPrefix(prefix), nil), prefix: prefix}
}

func (ldb *LDBDatabase) Close() {
	ldb.quitLock.Lock()
	defer ldb.quitLock.Unlock()

	ldb.db.Close()
}

func (ldb *LDBDatabase) NewBatch() Batch {
	return &ldbBatch{db: ldb.db, b: new(leveldb.Batch)}
}

type ldbIter struct {
	iter   iterator.Iterator
	prefix []byte
}

func (it *ldbIter) Next() bool { return it.iter.Next() }

// Key strips the iteration prefix from the underlying key
func (it *ldbIter) Key() []byte   { return it.iter.Key()[len(it.prefix):] }
func (it *ldbIter) Value() []byte { return it.iter.Value() }
func (it *ldbIter) Release()      { it.iter.Release() }
func (it *ldbIter) Error() error  { return it.iter.Error() }

type ldbBatch struct {
	db   *leveldb.DB
	b    *leveldb.Batch
	size int
}

func (b *ldbBatch) Put(key, value []byte) error {
	b.b.Put(key, value)
	b.size += len(value)
	return nil
}

func (b *ldbBatch) Delete(key []byte) error {
	b.b.Delete(key)
	b.size++
	return nil
}

func (b *ldbBatch) Write() error {
	return b.db.Write(b.b, nil)
}

func (b *ldbBatch) ValueSize() int {
	return b.size
}

func (b *ldbBatch) Reset() {
	b.b.Reset()
	b.size = 0
}

// MemDatabase is a memory backed store used in tests
type MemDatabase struct {
	db   map[string][]byte
	lock sync.RWMutex
}

func NewMemDatabase() *MemDatabase {
	return &MemDatabase{
		db: make(map[string][]byte),
	}
}

func (db *MemDatabase) Put(key []byte, value []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()

	db.db[string(key)] = common.CopyBytes(value)
	return nil
}

func (db *MemDatabase) Has(key []byte) (bool, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	_, ok := db.db[string(key)]
	return ok, nil
}

func (db *MemDatabase) Get(key []byte) ([]byte, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if entry, ok := db.db[string(key)]; ok {
		return common.CopyBytes(entry), nil
	}
	return nil, nil
}

func (db *MemDatabase) Delete(key []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()

	delete(db.db, string(key))
	return nil
}

// NewIteratorWithPrefix iterates a sorted snapshot of the current keys
func (db *MemDatabase) NewIteratorWithPrefix(prefix []byte) Iterator {
	db.lock.RLock()
	defer db.lock.RUnlock()

	keys := make([]string, 0)
	for k := range db.db {
		if strings.HasPrefix(k, string(prefix)) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	values := make([][]byte, len(keys))
	for i, k := range keys {
		values[i] = common.CopyBytes(db.db[k])
	}
	return &memIter{prefix: prefix, keys: keys, values: values, pos: -1}
}

func (db *MemDatabase) Close() {}

func (db *MemDatabase) NewBatch() Batch {
	return &memBatch{db: db}
}

func (db *MemDatabase) Len() int { return len(db.db) }

type memIter struct {
	prefix []byte
	keys   []string
	values [][]byte
	pos    int
}

func (it *memIter) Next() bool {
	it.pos++
	return it.pos < len(it.keys)
}

func (it *memIter) Key() []byte   { return []byte(it.keys[it.pos])[len(it.prefix):] }
func (it *memIter) Value() []byte { return it.values[it.pos] }
func (it *memIter) Release()      {}
func (it *memIter) Error() error  { return nil }

type kv struct {
	k, v []byte
	del  bool
}

type memBatch struct {
	db     *MemDatabase
	writes []kv
	size   int
}

func (b *memBatch) Put(key, value []byte) error {
	b.writes = append(b.writes, kv{common.CopyBytes(key), common.CopyBytes(value), false})
	b.size += len(value)
	return nil
}

func (b *memBatch) Delete(key []byte) error {
	b.writes = append(b.writes, kv{common.CopyBytes(key), nil, true})
	b.size++
	return nil
}

func (b *memBatch) Write() error {
	b.db.lock.Lock()
	defer b.db.lock.Unlock()

	for _, kv := range b.writes {
		if kv.del {
			delete(b.db.db, string(kv.k))
			continue
		}
		b.db.db[string(kv.k)] = kv.v
	}
	return nil
}

func (b *memBatch) ValueSize() int {
	return b.size
}

func (b *memBatch) Reset() {
	b.writes = b.writes[:0]
	b.size = 0
}
