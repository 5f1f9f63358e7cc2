// Copyright 2026 The go-obsidian Authors

package state

import (
	"bytes"
	"testing"

	"github.com/ethereum/go-ethereum/ethdb/memorydb"
)

func TestStateDBRevert(t *testing.T) {
	db := memorydb.New()
	if err := db.Put([]byte("a"), []byte{1}); err != nil {
		t.Fatal(err)
	}
	st := New(db)

	snap := st.Snapshot()
	st.Put([]byte("a"), []byte{2})
	st.Put([]byte("b"), []byte{3})
	inner := st.Snapshot()
	st.Delete([]byte("a"))

	if has, _ := st.Has([]byte("a")); has {
		t.Fatal("deleted key still visible")
	}
	if st.Writes(snap) != 3 {
		t.Fatalf("writes since snapshot: have %d want 3", st.Writes(snap))
	}
	st.RevertToSnapshot(inner)
	if v, _ := st.Get([]byte("a")); !bytes.Equal(v, []byte{2}) {
		t.Fatalf("inner revert: have %x want 02", v)
	}
	st.RevertToSnapshot(snap)
	if v, _ := st.Get([]byte("a")); !bytes.Equal(v, []byte{1}) {
		t.Fatalf("outer revert: have %x want 01", v)
	}
	if has, _ := st.Has([]byte("b")); has {
		t.Fatal("reverted key still visible")
	}
}

func TestStateDBCommit(t *testing.T) {
	db := memorydb.New()
	db.Put([]byte("gone"), []byte{9})
	st := New(db)

	st.Put([]byte("k"), []byte{1})
	st.Delete([]byte("gone"))
	if has, _ := db.Has([]byte("k")); has {
		t.Fatal("write leaked before commit")
	}
	if err := st.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if v, _ := db.Get([]byte("k")); !bytes.Equal(v, []byte{1}) {
		t.Fatalf("committed value: have %x", v)
	}
	if has, _ := db.Has([]byte("gone")); has {
		t.Fatal("delete not committed")
	}
	if st.Snapshot() != 0 {
		t.Fatal("journal not reset")
	}
}

func TestStateDBGetCopies(t *testing.T) {
	st := New(memorydb.New())
	val := []byte{1, 2}
	st.Put([]byte("k"), val)
	val[0] = 9

	got, _ := st.Get([]byte("k"))
	got[1] = 9
	again, _ := st.Get([]byte("k"))
	if !bytes.Equal(again, []byte{1, 2}) {
		t.Fatalf("stored value aliased: %x", again)
	}
}

func TestStateDBInvalidSnapshot(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	New(memorydb.New()).RevertToSnapshot(1)
}
