// Package httpapi exposes discovery and record rendering over HTTP.
//
// Routes mirror the plugin data surface:
//
//	GET /data/plugin/text/tags           -> {"run": ["tag", ...], ...}
//	GET /data/plugin/text/text?run=&tag= -> [{"step","wall_time","text"}, ...]
//	GET /healthz                         -> {"active": bool}
//
// Responses are encoded with the wire package so that the sanitized HTML in
// text fields is not entity-escaped and repeated responses for an unchanged
// source are byte-identical.
package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/textboard/textboard/internal/discovery"
	"github.com/textboard/textboard/internal/reader"
	"github.com/textboard/textboard/internal/source"
	"github.com/textboard/textboard/internal/wire"
)

// Server wires the pipeline to HTTP handlers. All state is read-through to
// the source; handlers are safe to run concurrently.
type Server struct {
	index  *discovery.Index
	reader *reader.Reader
	log    zerolog.Logger
}

// New builds a Server over src.
func New(src source.Source, log zerolog.Logger) *Server {
	ix := discovery.New(src, log)
	return &Server{
		index:  ix,
		reader: reader.New(src, ix),
		log:    log,
	}
}

// Handler returns the route mux wrapped with access logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /data/plugin/text/tags", s.handleTags)
	mux.HandleFunc("GET /data/plugin/text/text", s.handleText)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return s.accessLog(mux)
}

func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	index, err := s.index.RunToTags(r.Context())
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, index)
}

func (s *Server) handleText(w http.ResponseWriter, r *http.Request) {
	run := r.URL.Query().Get("run")
	tag := r.URL.Query().Get("tag")
	if run == "" || tag == "" {
		s.writeJSON(w, r, http.StatusBadRequest,
			map[string]any{"error": "run and tag query parameters are required"})
		return
	}

	records, err := s.reader.Records(r.Context(), run, tag)
	if err != nil {
		if reader.IsNotFound(err) {
			s.writeJSON(w, r, http.StatusNotFound, map[string]any{"error": err.Error()})
			return
		}
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	payload := make([]any, len(records))
	for i, rec := range records {
		payload[i] = map[string]any{
			"step":      rec.Step,
			"wall_time": rec.WallTime,
			"text":      rec.HTML,
		}
	}
	s.writeJSON(w, r, http.StatusOK, payload)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	active, err := s.index.Active(r.Context())
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, map[string]any{"active": active})
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	body, err := wire.Marshal(v)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	body, merr := wire.Marshal(map[string]any{"error": err.Error()})
	if merr != nil {
		http.Error(w, err.Error(), status)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}

// statusRecorder captures the response status for access logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(status int) {
	sr.status = status
	sr.ResponseWriter.WriteHeader(status)
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		requestID := uuid.NewString()
		next.ServeHTTP(rec, r)
		s.log.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
