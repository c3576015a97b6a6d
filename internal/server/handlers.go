package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/isotrack/isotrack/pkg/cache"
	"github.com/isotrack/isotrack/pkg/errors"
	"github.com/isotrack/isotrack/pkg/flow"
	"github.com/isotrack/isotrack/pkg/flowio"
	"github.com/isotrack/isotrack/pkg/httputil"
)

// saveRequest is the body of PUT /diagrams/{id}.
type saveRequest struct {
	Data      *flow.Graph `json:"data"`
	SVGExport string      `json:"svg_export,omitempty"`
}

func (s *Server) handleListDiagrams(w http.ResponseWriter, r *http.Request) {
	diagrams, err := s.store.ListDiagrams(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	httputil.WriteEnvelope(w, http.StatusOK, "ok", diagrams)
}

func (s *Server) handleGetDiagram(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateID(id); err != nil {
		s.writeError(w, err)
		return
	}

	d, err := s.store.GetDiagram(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	httputil.WriteEnvelope(w, http.StatusOK, "ok", d)
}

func (s *Server) handleDiagramLinks(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateID(id); err != nil {
		s.writeError(w, err)
		return
	}

	links, err := s.store.DiagramLinks(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	httputil.WriteEnvelope(w, http.StatusOK, "ok", links)
}

func (s *Server) handleSaveDiagram(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateID(id); err != nil {
		s.writeError(w, err)
		return
	}

	var req saveRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "payload inválido"))
		return
	}
	if req.Data == nil {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "el payload no contiene datos del diagrama"))
		return
	}

	d, err := s.store.GetDiagram(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	d.Data = req.Data
	if req.SVGExport != "" {
		d.SVGExport = req.SVGExport
	}
	if err := s.store.PutDiagram(r.Context(), d); err != nil {
		s.writeError(w, err)
		return
	}
	httputil.WriteEnvelope(w, http.StatusOK, "Diagrama guardado", d)
}

// handleDiagramSVG renders a branded snapshot of a diagram on demand.
// Snapshots are cached keyed on the serialized graph, so a stale render
// is never served after a save.
func (s *Server) handleDiagramSVG(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateID(id); err != nil {
		s.writeError(w, err)
		return
	}

	d, err := s.store.GetDiagram(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if d.Data == nil {
		s.writeError(w, errors.New(errors.ErrCodeNotFound, "el diagrama no tiene datos para exportar"))
		return
	}

	payload, err := flow.MarshalGraph(*d.Data)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "serializar diagrama"))
		return
	}

	key := cache.SnapshotKey(d.ID, cache.Hash(payload))
	if svg, ok, err := s.cache.Get(r.Context(), key); err == nil && ok {
		writeSVG(w, svg)
		return
	}

	svg := flowio.ExportSVG(d.Data, flowio.SVGOptions{
		Title:   d.Name,
		Code:    d.Code,
		Company: s.company,
	})
	if err := s.cache.Set(r.Context(), key, svg, s.ttl); err != nil {
		s.logger.Warn("snapshot cache write failed", "diagram", d.ID, "err", err)
	}
	writeSVG(w, svg)
}

func (s *Server) handleListFlows(w http.ResponseWriter, r *http.Request) {
	flows, err := s.store.ListFlows(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	httputil.WriteEnvelope(w, http.StatusOK, "ok", flows)
}

func (s *Server) handleGetFlow(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateID(id); err != nil {
		s.writeError(w, err)
		return
	}

	f, err := s.store.GetFlow(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	httputil.WriteEnvelope(w, http.StatusOK, "ok", f)
}

func writeSVG(w http.ResponseWriter, svg []byte) {
	w.Header().Set("Content-Type", "image/svg+xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}

// writeError maps an error code onto an HTTP status and emits the
// envelope with the user-facing message.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeDiagramNotFound, errors.ErrCodeFlowNotFound, errors.ErrCodeNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidCSV, errors.ErrCodeInvalidGraph, errors.ErrCodeInvalidType:
		status = http.StatusBadRequest
	case errors.ErrCodeUnauthorized:
		status = http.StatusUnauthorized
	case errors.ErrCodeForbidden:
		status = http.StatusForbidden
	}
	httputil.WriteError(w, status, errors.UserMessage(err))
}
