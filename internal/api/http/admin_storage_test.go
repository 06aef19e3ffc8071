package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/autocheck-dev/autocheck/internal/inspection"
	"github.com/autocheck-dev/autocheck/internal/session"
	"github.com/autocheck-dev/autocheck/internal/storage"
)

func TestStorageCleanupKeepsLiveSessionPhotos(t *testing.T) {
	store := inspection.NewMemStore()
	bs, _ := storage.NewFSStore(t.TempDir())
	mgr := session.NewManager()

	reg := twoStepChecklist(t)
	cl, _ := reg.Get("mini")
	wiz := mgr.Start(cl, "m-1")

	live := "inspections/" + wiz.ID + "/photo.jpg"
	if _, err := bs.Put(live, strings.NewReader("live")); err != nil {
		t.Fatal(err)
	}
	if _, err := bs.Put("inspections/stale-id/photo.jpg", strings.NewReader("stale")); err != nil {
		t.Fatal(err)
	}

	h := StorageCleanupHandler(bs, store, mgr)
	req := httptest.NewRequest("POST", "/admin/storage/cleanup", strings.NewReader(`{"dry_run":false}`))
	rec := httptest.NewRecorder()
	h(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("cleanup: %d %s", rec.Code, rec.Body)
	}

	var res storage.CleanupResult
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if len(res.Orphans) != 1 || res.Orphans[0] != "stale-id" {
		t.Fatalf("orphans: %v", res.Orphans)
	}
	rc, err := bs.Get(live)
	if err != nil {
		t.Fatalf("in-flight session photo removed: %v", err)
	}
	rc.Close()
	if _, err := bs.Get("inspections/stale-id/photo.jpg"); err == nil {
		t.Fatal("stale photo survived cleanup")
	}
}
