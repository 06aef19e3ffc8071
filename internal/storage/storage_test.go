package storage

import (
	"io"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *FSStore {
	t.Helper()
	st, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return st
}

func put(t *testing.T, st *FSStore, key, body string) {
	t.Helper()
	if _, err := st.Put(key, strings.NewReader(body)); err != nil {
		t.Fatalf("put %s: %v", key, err)
	}
}

func TestFSPutGetDelete(t *testing.T) {
	st := newTestStore(t)
	put(t, st, "inspections/abc/photo1.jpg", "jpegdata")

	rc, err := st.Get("inspections/abc/photo1.jpg")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(rc)
	rc.Close()
	if string(body) != "jpegdata" {
		t.Fatalf("body = %q", body)
	}

	if err := st.Delete("inspections/abc/photo1.jpg"); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Get("inspections/abc/photo1.jpg"); err == nil {
		t.Fatal("get after delete succeeded")
	}
}

func TestFSKeyEscapeContained(t *testing.T) {
	st := newTestStore(t)
	// a hostile key must not land outside the base dir
	if _, err := st.Put("../../etc/owned", strings.NewReader("x")); err != nil {
		t.Fatal(err)
	}
	objs, err := st.List("")
	if err != nil {
		t.Fatal(err)
	}
	if len(objs) != 1 {
		t.Fatalf("want 1 object inside base, got %+v", objs)
	}
}

func TestFSList(t *testing.T) {
	st := newTestStore(t)
	put(t, st, "inspections/a/1.jpg", "xx")
	put(t, st, "inspections/b/1.jpg", "yyy")
	put(t, st, "checklists/custom.json", "{}")

	objs, err := st.List("inspections/")
	if err != nil {
		t.Fatal(err)
	}
	if len(objs) != 2 {
		t.Fatalf("want 2, got %+v", objs)
	}
}

func TestUsage(t *testing.T) {
	st := newTestStore(t)
	put(t, st, "inspections/a/1.jpg", "1234")
	put(t, st, "inspections/a/2.jpg", "12")
	put(t, st, "checklists/custom.json", "123")

	usage, err := Usage(st)
	if err != nil {
		t.Fatal(err)
	}
	if len(usage) != 2 {
		t.Fatalf("want 2 categories, got %+v", usage)
	}
	// sorted by category name
	if usage[0].Category != "checklists" || usage[0].Files != 1 || usage[0].Bytes != 3 {
		t.Fatalf("checklists usage: %+v", usage[0])
	}
	if usage[1].Category != "inspections" || usage[1].Files != 2 || usage[1].Bytes != 6 {
		t.Fatalf("inspections usage: %+v", usage[1])
	}
}

func TestHumanSize(t *testing.T) {
	cases := map[int64]string{
		512:     "512 B",
		2048:    "2.0 KB",
		1536000: "1.5 MB",
	}
	for in, want := range cases {
		if got := HumanSize(in); got != want {
			t.Errorf("HumanSize(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestCleanupOrphansDryRun(t *testing.T) {
	st := newTestStore(t)
	put(t, st, "inspections/keep/1.jpg", "aa")
	put(t, st, "inspections/gone/1.jpg", "bbb")
	put(t, st, "inspections/gone/2.jpg", "c")

	res, err := CleanupOrphans(st, []string{"keep"}, true)
	if err != nil {
		t.Fatal(err)
	}
	if !res.DryRun || len(res.Orphans) != 1 || res.Orphans[0] != "gone" {
		t.Fatalf("dry run result: %+v", res)
	}
	if res.Files != 2 || res.Bytes != 4 {
		t.Fatalf("counted wrong: %+v", res)
	}
	// nothing deleted
	if objs, _ := st.List("inspections/gone/"); len(objs) != 2 {
		t.Fatal("dry run deleted files")
	}
}

func TestCleanupOrphansDelete(t *testing.T) {
	st := newTestStore(t)
	put(t, st, "inspections/keep/1.jpg", "aa")
	put(t, st, "inspections/gone/1.jpg", "bbb")

	res, err := CleanupOrphans(st, []string{"keep"}, false)
	if err != nil {
		t.Fatal(err)
	}
	if res.Files != 1 {
		t.Fatalf("result: %+v", res)
	}
	if objs, _ := st.List("inspections/gone/"); len(objs) != 0 {
		t.Fatal("orphan survived cleanup")
	}
	if objs, _ := st.List("inspections/keep/"); len(objs) != 1 {
		t.Fatal("kept inspection was deleted")
	}
}
