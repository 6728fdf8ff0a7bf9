// Package http exposes a frozen model over a read-only inspection API.
// Frozen workspaces are immutable, so the handlers need no locking.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/aretw0/lattice/pkg/domain"
	"github.com/aretw0/lattice/pkg/registry"
	"github.com/go-chi/chi/v5"
)

// Model is the read side of a workspace, as needed by the inspection API.
type Model interface {
	Snapshot() domain.Snapshot
	Registry() *registry.Registry
	Frozen() bool
}

// Server serves model inspection requests.
type Server struct {
	model  Model
	logger *slog.Logger
}

// NewHandler creates the inspection handler for a frozen model.
func NewHandler(model Model, logger *slog.Logger) http.Handler {
	s := &Server{model: model, logger: logger}

	r := chi.NewRouter()
	r.Get("/model", s.handleModel)
	r.Get("/interfaces", s.handleInterfaces)
	r.Get("/interfaces/{name}", s.handleInterface)
	r.Get("/composites", s.handleComposites)
	r.Get("/composites/{name}", s.handleComposite)
	r.Get("/fulfills", s.handleFulfills)
	return r
}

func (s *Server) handleModel(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.model.Snapshot())
}

func (s *Server) handleInterfaces(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.model.Registry().Names())
}

func (s *Server) handleInterface(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	for _, iface := range s.model.Snapshot().Interfaces {
		if iface.Name == name {
			s.writeJSON(w, http.StatusOK, iface)
			return
		}
	}
	s.writeError(w, http.StatusNotFound, "unknown interface: "+name)
}

func (s *Server) handleComposites(w http.ResponseWriter, r *http.Request) {
	snap := s.model.Snapshot()
	names := make([]string, 0, len(snap.Composites))
	for _, c := range snap.Composites {
		names = append(names, c.Name)
	}
	s.writeJSON(w, http.StatusOK, names)
}

func (s *Server) handleComposite(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	for _, c := range s.model.Snapshot().Composites {
		if c.Name == name {
			s.writeJSON(w, http.StatusOK, c)
			return
		}
	}
	s.writeError(w, http.StatusNotFound, "unknown composite: "+name)
}

// handleFulfills answers ?interface=a&base=b refinement queries.
func (s *Server) handleFulfills(w http.ResponseWriter, r *http.Request) {
	iface := r.URL.Query().Get("interface")
	base := r.URL.Query().Get("base")
	if iface == "" || base == "" {
		s.writeError(w, http.StatusBadRequest, "both 'interface' and 'base' are required")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"interface": iface,
		"base":      base,
		"fulfills":  s.model.Registry().FulfillsName(iface, base),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
