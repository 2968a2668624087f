package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/automat-io/automat/internal/apperror"
	"github.com/automat-io/automat/internal/buildinfo"
	"github.com/automat-io/automat/internal/daemon/store"
	"github.com/automat-io/automat/internal/models"
)

// maxBodyBytes caps a POSTed configuration.
const maxBodyBytes = 1 << 20

type handler struct {
	store  store.Store
	logger *slog.Logger
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (h *handler) getConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.store.Load(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (h *handler) saveConfig(w http.ResponseWriter, r *http.Request) {
	var cfg models.Config
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&cfg); err != nil {
		h.fail(w, r, apperror.Wrap(apperror.BadRequest, "malformed config body", err))
		return
	}

	saved, err := h.store.Save(r.Context(), cfg)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := apperror.Status(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "path", r.URL.Path, "error", err, "requestID", r.Context().Value(requestIDKey))
	}
	writeError(w, status, msg)
}
