package pooldb

import (
	"bytes"
	"testing"
)

func TestMemDatabasePutGet(t *testing.T) {
	db := NewMemDatabase()

	if err := db.Put([]byte("k1"), []byte("v1")); err != nil {
		t.Fatalf("put fail: %v", err)
	}
	v, err := db.Get([]byte("k1"))
	if err != nil {
		t.Fatalf("get fail: %v", err)
	}
	if !bytes.Equal(v, []byte("v1")) {
		t.Errorf("expect v1, got %v", v)
	}

	v, err = db.Get([]byte("missing"))
	if err != nil {
		t.Fatalf("get fail: %v", err)
	}
	if v != nil {
		t.Errorf("missing key should return nil, got %v", v)
	}

	ok, err := db.Has([]byte("k1"))
	if err != nil || !ok {
		t.Errorf("has k1 expect true, got %v %v", ok, err)
	}
	if err := db.Delete([]byte("k1")); err != nil {
		t.Fatalf("delete fail: %v", err)
	}
	ok, _ = db.Has([]byte("k1"))
	if ok {
		t.Errorf("k1 should be gone")
	}
}

func TestMemDatabaseBatch(t *testing.T) {
	db := NewMemDatabase()
	db.Put([]byte("old"), []byte("x"))

	b := db.NewBatch()
	b.Put([]byte("a"), []byte("1"))
	b.Put([]byte("b"), []byte("2"))
	b.Delete([]byte("old"))

	// nothing lands before Write
	if db.Len() != 1 {
		t.Fatalf("batch applied early, len %v", db.Len())
	}
	if err := b.Write(); err != nil {
		t.Fatalf("write fail: %v", err)
	}
	if db.Len() != 2 {
		t.Errorf("expect 2 keys after batch, got %v", db.Len())
	}
	if ok, _ := db.Has([]byte("old")); ok {
		t.Errorf("batched delete not applied")
	}

	b.Reset()
	if b.ValueSize() != 0 {
		t.Errorf("reset should clear the batch size, got %v", b.ValueSize())
	}
}

func TestMemDatabaseIteratorWithPrefix(t *testing.T) {
	db := NewMemDatabase()
	db.Put([]byte("posb"), []byte("2"))
	db.Put([]byte("posa"), []byte("1"))
	db.Put([]byte("other"), []byte("x"))

	iter := db.NewIteratorWithPrefix([]byte("pos"))
	defer iter.Release()

	var keys, values []string
	for iter.Next() {
		keys = append(keys, string(iter.Key()))
		values = append(values, string(iter.Value()))
	}
	if iter.Error() != nil {
		t.Fatalf("iterator error: %v", iter.Error())
	}
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("expect stripped keys [a b] in order, got %v", keys)
	}
	if values[0] != "1" || values[1] != "2" {
		t.Errorf("expect values [1 2], got %v", values)
	}
}
