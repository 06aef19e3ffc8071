package http

import (
	"bytes"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/autocheck-dev/autocheck/internal/checklist"
	"github.com/autocheck-dev/autocheck/internal/storage"
)

func ListChecklistsHandler(reg *checklist.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, reg.List())
	}
}

func GetChecklistHandler(reg *checklist.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "checklistID")
		cl, ok := reg.Get(id)
		if !ok {
			http.Error(w, "checklist not found", http.StatusNotFound)
			return
		}
		respondJSON(w, http.StatusOK, cl)
	}
}

// UploadChecklistHandler registers a checklist definition from a JSON
// body and keeps a copy in blob storage so it survives restarts.
func UploadChecklistHandler(reg *checklist.Registry, bs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
		if err != nil {
			http.Error(w, "read body", http.StatusBadRequest)
			return
		}
		cl, err := checklist.LoadJSON(bytes.NewReader(body))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := reg.Register(cl); err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		if _, err := bs.Put("checklists/"+cl.ID+".json", bytes.NewReader(body)); err != nil {
			http.Error(w, "store error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		respondJSON(w, http.StatusCreated, map[string]string{"id": cl.ID})
	}
}

// ReloadChecklists registers every definition previously stored under
// checklists/ in blob storage. Blobs that fail to parse or collide
// with an already registered id are logged and skipped. Returns the
// number registered.
func ReloadChecklists(reg *checklist.Registry, bs storage.BlobStore) (int, error) {
	objs, err := bs.List("checklists/")
	if err != nil {
		return 0, err
	}
	n := 0
	for _, o := range objs {
		rc, err := bs.Get(o.Key)
		if err != nil {
			log.Printf("reload %s: %v", o.Key, err)
			continue
		}
		cl, err := checklist.LoadJSON(rc)
		rc.Close()
		if err != nil {
			log.Printf("reload %s: %v", o.Key, err)
			continue
		}
		if err := reg.Register(cl); err != nil {
			log.Printf("reload %s: %v", o.Key, err)
			continue
		}
		n++
	}
	return n, nil
}
