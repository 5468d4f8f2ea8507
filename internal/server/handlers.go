package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/iksnae/question-digest/internal"
)

// noIndexHint is shown when the output directory has not been built yet.
const noIndexHint = "Run question-digest on an export to build the data directory, or POST the export to /api/local to explore it without publishing."

type errorResponse struct {
	Error string `json:"error"`
	Hint  string `json:"hint,omitempty"`
}

type createResponse struct {
	ID    string          `json:"id"`
	Index *internal.Index `json:"index"`
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	CloudIndex    bool    `json:"cloud_index"`
	Datasets      int64   `json:"datasets"`
}

// Handlers serves published artifacts (cloud mode) and uploaded exports (local mode).
type Handlers struct {
	cloud     *internal.DirSink
	pipeline  *internal.Pipeline
	datasets  *DatasetStore
	cache     Cache
	metrics   Metrics
	maxUpload int64
	startTime time.Time
}

// NewHandlers creates the HTTP handlers for conf
func NewHandlers(conf *internal.Config, pipeline *internal.Pipeline, datasets *DatasetStore, cache Cache, metrics Metrics) *Handlers {
	return &Handlers{
		cloud:     internal.NewDirSink(conf.OutDir),
		pipeline:  pipeline,
		datasets:  datasets,
		cache:     cache,
		metrics:   metrics,
		maxUpload: int64(conf.Serve.MaxUploadMB) << 20,
		startTime: time.Now(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.MarshalWithOption(v, json.DisableHTMLEscape())
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeRaw(w, status, data)
}

func writeRaw(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// dayFromFile extracts the day token from "day-<day>.json".
func dayFromFile(file string) (string, bool) {
	if !strings.HasPrefix(file, "day-") || !strings.HasSuffix(file, ".json") {
		return "", false
	}
	day := strings.TrimSuffix(strings.TrimPrefix(file, "day-"), ".json")
	return day, internal.ValidDay(day)
}

// serveFromCacheOrRead answers from the response cache, falling back to read.
// The key carries the file's modification time and size, so a rebuild of the
// output directory is picked up on the next request. Only successful reads are
// cached.
func (h *Handlers) serveFromCacheOrRead(w http.ResponseWriter, cacheKey, path string, read func() ([]byte, error)) error {
	info, err := os.Stat(path)
	if err != nil {
		// read reports the missing file in its own terms
		data, err := read()
		if err != nil {
			return err
		}
		writeRaw(w, http.StatusOK, data)
		return nil
	}
	cacheKey = fmt.Sprintf("%s:%d:%d", cacheKey, info.ModTime().UnixNano(), info.Size())

	if data, ok := h.cache.Get(cacheKey); ok {
		h.metrics.IncCacheHits()
		writeRaw(w, http.StatusOK, data)
		return nil
	}
	h.metrics.IncCacheMisses()

	data, err := read()
	if err != nil {
		return err
	}
	h.cache.Set(cacheKey, data)
	writeRaw(w, http.StatusOK, data)
	return nil
}

// CloudIndex serves index.json from the output directory.
func (h *Handlers) CloudIndex(w http.ResponseWriter, r *http.Request) {
	err := h.serveFromCacheOrRead(w, "cloud:index", h.cloud.IndexPath(), h.cloud.ReadIndex)
	switch {
	case err == nil:
	case errors.Is(err, internal.ErrNoIndex):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: internal.ErrNoIndex.Error(), Hint: noIndexHint})
	default:
		internal.LogError("Failed to read cloud index: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to read index"})
	}
}

// CloudDay serves day-<day>.json from the output directory.
func (h *Handlers) CloudDay(w http.ResponseWriter, r *http.Request) {
	day, ok := dayFromFile(r.PathValue("file"))
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: internal.ErrDayNotFound.Error()})
		return
	}

	err := h.serveFromCacheOrRead(w, "cloud:day:"+day, h.cloud.DayPath(day), func() ([]byte, error) {
		return h.cloud.ReadDay(day)
	})
	switch {
	case err == nil:
	case errors.Is(err, internal.ErrDayNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: internal.ErrDayNotFound.Error()})
	default:
		internal.LogError("Failed to read day %s: %v", day, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to read day"})
	}
}

// CreateLocal processes an uploaded export in memory and stores the result
// under a new dataset id.
func (h *Handlers) CreateLocal(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.metrics.IncUploads("too_large")
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{
				Error: fmt.Sprintf("export exceeds %d bytes", tooLarge.Limit),
			})
			return
		}
		h.metrics.IncUploads("error")
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "failed to read request body"})
		return
	}

	result, err := h.pipeline.Run("upload", data)
	if err != nil {
		internal.LogDebug("Rejected upload: %v", err)
		h.metrics.IncUploads("invalid")
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON"})
		return
	}

	sink := internal.NewMemorySink()
	if err := h.pipeline.Emit(result, sink); err != nil {
		internal.LogError("Failed to encode upload: %v", err)
		h.metrics.IncUploads("error")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to build dataset"})
		return
	}

	id, err := h.datasets.Put(sink)
	if err != nil {
		if errors.Is(err, ErrDatasetTooLarge) {
			h.metrics.IncUploads("too_large")
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: err.Error()})
			return
		}
		internal.LogError("Failed to store dataset: %v", err)
		h.metrics.IncUploads("error")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to store dataset"})
		return
	}

	h.metrics.IncUploads("ok")
	h.metrics.ObserveUploadQuestions(result.Index.TotalQuestions)
	internal.LogInfo("Stored dataset %s: %d question(s) over %d day(s)",
		id, result.Index.TotalQuestions, result.Index.TotalDays)

	w.Header().Set("Location", "/api/local/"+id+"/index.json")
	writeJSON(w, http.StatusCreated, createResponse{ID: id, Index: result.Index})
}

// LocalIndex serves the index of an uploaded dataset.
func (h *Handlers) LocalIndex(w http.ResponseWriter, r *http.Request) {
	h.serveDataset(w, r.PathValue("id"), internal.IndexFileName)
}

// LocalDay serves one day of an uploaded dataset.
func (h *Handlers) LocalDay(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	if _, ok := dayFromFile(file); !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: internal.ErrDayNotFound.Error()})
		return
	}
	h.serveDataset(w, r.PathValue("id"), file)
}

func (h *Handlers) serveDataset(w http.ResponseWriter, id, name string) {
	data, err := h.datasets.Get(id, name)
	if err != nil {
		if !errors.Is(err, ErrDatasetNotFound) {
			internal.LogError("Failed to load %s from dataset %s: %v", name, id, err)
		}
		writeJSON(w, http.StatusNotFound, errorResponse{Error: ErrDatasetNotFound.Error()})
		return
	}
	writeRaw(w, http.StatusOK, data)
}

// Health reports liveness and whether a published index exists.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	_, err := h.cloud.ReadIndex()
	uptime := time.Since(h.startTime)
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		CloudIndex:    err == nil,
		Datasets:      h.datasets.Stored(),
	})
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}
