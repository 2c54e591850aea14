package api

import (
	"fmt"
	"net/http"
)

// DataHandler serves the snapshot and per-bucket views.
type DataHandler struct {
	deps SnapshotReader
}

// NewDataHandler creates a new data handler.
func NewDataHandler(deps SnapshotReader) *DataHandler {
	return &DataHandler{deps: deps}
}

// HandleData handles GET /data requests.
func (h *DataHandler) HandleData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	snap, err := h.deps.Latest(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap.Data)
}

// HandleBuckets handles GET /buckets requests.
func (h *DataHandler) HandleBuckets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	keys, err := h.deps.Keys(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.String()
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleBucket handles GET /bucket/{key} requests.
func (h *DataHandler) HandleBucket(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	key, err := pathKey(r)
	if err != nil {
		fail(w, err)
		return
	}
	bucket, err := h.deps.Bucket(r.Context(), key)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bucket)
}

// HandleProfile handles GET /profile/{key} requests.
func (h *DataHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	key, err := pathKey(r)
	if err != nil {
		fail(w, err)
		return
	}
	profiles, err := h.deps.Profile(r.Context(), key)
	if err != nil {
		fail(w, fmt.Errorf("profile %s: %w", key, err))
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

// HandleDisciplines handles GET /disciplines/{key} requests.
func (h *DataHandler) HandleDisciplines(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	key, err := pathKey(r)
	if err != nil {
		fail(w, err)
		return
	}
	names, err := h.deps.Disciplines(r.Context(), key)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, names)
}
