package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/autocheck-dev/autocheck/internal/checklist"
	"github.com/autocheck-dev/autocheck/internal/storage"
)

const customDef = `{
	"id": "custom",
	"title": "Доп. осмотр",
	"sections": [{
		"id": "s",
		"title": "Общее",
		"questions": [{
			"id": "q",
			"text": "Состояние",
			"kind": "single",
			"options": [{"value": "ok", "label": "OK"}]
		}]
	}]
}`

func TestUploadedChecklistSurvivesRestart(t *testing.T) {
	bs, _ := storage.NewFSStore(t.TempDir())
	reg := checklist.NewRegistry()

	h := UploadChecklistHandler(reg, bs)
	req := httptest.NewRequest("POST", "/checklists", strings.NewReader(customDef))
	rec := httptest.NewRecorder()
	h(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload: %d %s", rec.Code, rec.Body)
	}

	// a broken blob must not block the rest of the reload
	if _, err := bs.Put("checklists/broken.json", strings.NewReader("{")); err != nil {
		t.Fatal(err)
	}

	// simulate a restart: fresh registry, same blob store
	fresh := checklist.NewRegistry()
	n, err := ReloadChecklists(fresh, bs)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if n != 1 {
		t.Fatalf("reloaded %d definitions, want 1", n)
	}
	cl, ok := fresh.Get("custom")
	if !ok {
		t.Fatal("uploaded checklist not restored after restart")
	}
	if cl.Title != "Доп. осмотр" || len(cl.Sections) != 1 {
		t.Fatalf("restored definition wrong: %+v", cl)
	}
}
