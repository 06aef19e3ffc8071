package inspection

import (
	"context"
	"errors"
	"testing"

	"github.com/autocheck-dev/autocheck/internal/checklist"
	"github.com/autocheck-dev/autocheck/internal/db"
)

func openTestStore(t *testing.T) *SQLStore {
	t.Helper()
	conn, err := db.Open(context.Background(), db.DriverSQLite,
		"file:"+t.Name()+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })
	return NewSQLStore(conn, "sqlite")
}

func sampleRecord(id, mech string, at int64) Record {
	return Record{
		ID:           id,
		ChecklistID:  "checkup",
		MechanicID:   mech,
		MechanicName: "Иван",
		CarNumber:    "А123БВ199",
		Mileage:      84000,
		Answers: []checklist.Answer{
			{QuestionID: "key_battery", Values: []string{"ok"}},
		},
		Sections:  []string{"controls"},
		CreatedAt: at,
	}
}

func TestSQLStorePutGet(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	want := sampleRecord("rec-1", "m-1", 1000)
	if err := st.Put(ctx, want); err != nil {
		t.Fatal(err)
	}
	got, err := st.Get(ctx, "rec-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.CarNumber != want.CarNumber || got.Mileage != want.Mileage {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}
	if len(got.Answers) != 1 || got.Answers[0].QuestionID != "key_battery" {
		t.Fatalf("answers not preserved: %+v", got.Answers)
	}
	if len(got.Sections) != 1 || got.Sections[0] != "controls" {
		t.Fatalf("sections not preserved: %+v", got.Sections)
	}
}

func TestSQLStoreGetMissing(t *testing.T) {
	st := openTestStore(t)
	if _, err := st.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestSQLStoreListFilters(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	for _, rec := range []Record{
		sampleRecord("rec-1", "m-1", 1000),
		sampleRecord("rec-2", "m-2", 2000),
		sampleRecord("rec-3", "m-1", 3000),
	} {
		if err := st.Put(ctx, rec); err != nil {
			t.Fatal(err)
		}
	}

	got, err := st.List(ctx, ListOpts{MechanicID: "m-1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("mechanic filter: want 2, got %d", len(got))
	}
	// newest first
	if got[0].ID != "rec-3" || got[1].ID != "rec-1" {
		t.Fatalf("order: got %s, %s", got[0].ID, got[1].ID)
	}

	got, err = st.List(ctx, ListOpts{From: 1500, To: 2500})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "rec-2" {
		t.Fatalf("time window: %+v", got)
	}

	got, err = st.List(ctx, ListOpts{CarNumber: "123БВ"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("car substring: want 3, got %d", len(got))
	}

	got, err = st.List(ctx, ListOpts{Limit: 1, Offset: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "rec-2" {
		t.Fatalf("paging: %+v", got)
	}
}

func TestSQLStoreDelete(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if err := st.Put(ctx, sampleRecord("rec-1", "m-1", 1000)); err != nil {
		t.Fatal(err)
	}
	if err := st.Delete(ctx, "rec-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Get(ctx, "rec-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound after delete, got %v", err)
	}
	if err := st.Delete(ctx, "rec-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("double delete: want ErrNotFound, got %v", err)
	}
}

func TestSQLStoreIDs(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"b", "a"} {
		if err := st.Put(ctx, sampleRecord(id, "m-1", 1000)); err != nil {
			t.Fatal(err)
		}
	}
	ids, err := st.IDs(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 {
		t.Fatalf("want 2 ids, got %v", ids)
	}
}
