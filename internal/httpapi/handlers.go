package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/katalvlaran/cabinetroute/astar"
	"github.com/katalvlaran/cabinetroute/core"
	"github.com/katalvlaran/cabinetroute/graphstore"
	"github.com/katalvlaran/cabinetroute/internal/metrics"
)

// maxBody bounds request bodies.
const maxBody = 64 << 10

// Default and maximum result sizes for GET /api/cabinets.
const (
	defaultSuggestions = 5
	maxSuggestions     = 100
)

// RouteRequest is the body of POST /api/route/build.
type RouteRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Point is one route coordinate in the shape the front-end reads.
type Point struct {
	X     int    `json:"X"`
	Y     int    `json:"Y"`
	Floor string `json:"Floor"`
}

// CabinetJSON is a named location.
type CabinetJSON struct {
	Name     string `json:"name"`
	Location Point  `json:"location"`
}

// RouteResponse is the success body of POST /api/route/build.
type RouteResponse struct {
	Success bool        `json:"success"`
	Found   bool        `json:"found"`
	From    string      `json:"from"`
	To      string      `json:"to"`
	Start   CabinetJSON `json:"start"`
	End     CabinetJSON `json:"end"`
	Steps   int         `json:"steps"`
	Floors  []string    `json:"floors"`
	Path    []Point     `json:"path"`
}

// MetricRequest is the body of POST /api/metric/build.
type MetricRequest struct {
	Name       string `json:"name"`
	Page       string `json:"page"`
	ActiveMs   int64  `json:"activeMs"`
	StartedAt  string `json:"startedAt"`
	FinishedAt string `json:"finishedAt"`
	Reason     string `json:"reason"`
}

type errorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

func toPoint(c core.Coordinate) Point { return Point{X: c.X, Y: c.Y, Floor: c.Floor} }

func toCabinet(cb core.Cabinet) CabinetJSON {
	return CabinetJSON{Name: cb.Name, Location: toPoint(cb.Location)}
}

// NewRouteResponse converts a Route for the wire. Path and Floors are never null.
func NewRouteResponse(req RouteRequest, r core.Route) RouteResponse {
	path := make([]Point, len(r.Points))
	for i, p := range r.Points {
		path[i] = toPoint(p)
	}
	floors := r.Floors()
	if floors == nil {
		floors = []string{}
	}

	return RouteResponse{
		Success: true,
		Found:   r.Found(),
		From:    req.From,
		To:      req.To,
		Start:   toCabinet(r.Start),
		End:     toCabinet(r.End),
		Steps:   r.Steps(),
		Floors:  floors,
		Path:    path,
	}
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	var req RouteRequest
	if err := decodeJSON(r, &req); err != nil {
		s.counters.BadRequests.Add(1)
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	// Names are matched exactly; blank input only is rejected.
	if strings.TrimSpace(req.From) == "" || strings.TrimSpace(req.To) == "" {
		s.counters.BadRequests.Add(1)
		s.fail(w, r, http.StatusBadRequest, errors.New("fill in both fields"))
		return
	}

	s.counters.Routes.Add(1)
	route, err := s.router.FindPath(req.From, req.To)
	if err != nil {
		status := StatusFor(err)
		if status >= http.StatusInternalServerError {
			s.counters.RouteErrors.Add(1)
		} else {
			s.counters.BadRequests.Add(1)
		}
		s.fail(w, r, status, err)
		return
	}
	if !route.Found() {
		s.counters.NoRoute.Add(1)
	}

	writeJSON(w, http.StatusOK, NewRouteResponse(req, route))
}

func (s *Server) handleMetric(w http.ResponseWriter, r *http.Request) {
	var req MetricRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	startedAt, err := metrics.ParseStartedAt(req.StartedAt)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}

	s.counters.Activities.Add(1)
	if s.recorder != nil {
		_, err := s.recorder.Record(r.Context(), metrics.Activity{
			StartedAt: startedAt,
			ActiveMs:  req.ActiveMs,
			Name:      req.Name,
			Page:      req.Page,
			Reason:    req.Reason,
		})
		if errors.Is(err, metrics.ErrInvalidActivity) {
			s.fail(w, r, http.StatusBadRequest, err)
			return
		}
		if err != nil {
			s.fail(w, r, http.StatusInternalServerError, err)
			return
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if s.reloader == nil {
		s.fail(w, r, http.StatusNotImplemented, errors.New("graph reload is not enabled"))
		return
	}
	snap, err := s.reloader.Reload()
	if err != nil {
		s.counters.ReloadErrors.Add(1)
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	s.counters.Reloads.Add(1)

	writeJSON(w, http.StatusOK, snap.Summary())
}

// handleCabinets lists cabinets whose name starts with ?prefix= (case
// insensitive), up to ?limit= entries. Without prefix all names match.
func (s *Server) handleCabinets(w http.ResponseWriter, r *http.Request) {
	snap, err := s.source.Snapshot()
	if err != nil {
		s.fail(w, r, StatusFor(err), err)
		return
	}

	limit := defaultSuggestions
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.fail(w, r, http.StatusBadRequest, fmt.Errorf("limit %q must be a positive integer", raw))
			return
		}
		limit = min(n, maxSuggestions)
	}
	prefix := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("prefix")))

	out := make([]CabinetJSON, 0, limit)
	for _, cb := range snap.Names.Cabinets() {
		if len(out) == limit {
			break
		}
		if strings.HasPrefix(strings.ToLower(cb.Name), prefix) {
			out = append(out, toCabinet(cb))
		}
	}

	writeJSON(w, http.StatusOK, out)
}

// handleNamesFile serves the names index in names.json form for the
// front-end's autocomplete.
func (s *Server) handleNamesFile(w http.ResponseWriter, r *http.Request) {
	snap, err := s.source.Snapshot()
	if err != nil {
		s.fail(w, r, StatusFor(err), err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := graphstore.EncodeNames(w, snap.Names); err != nil {
		s.log.Error("write names", slog.Any("err", err))
	}
}

type healthResponse struct {
	Status  string              `json:"status"`
	Error   string              `json:"error,omitempty"`
	Summary *graphstore.Summary `json:"graph,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap, err := s.source.Snapshot()
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Error: err.Error()})
		return
	}
	sum := snap.Summary()

	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Summary: &sum})
}

// StatusFor maps a route or data error to an HTTP status.
//
//	unknown start/end name     400
//	search expansion limit     503
//	missing or malformed data  500
func StatusFor(err error) int {
	var nf *core.NotFoundError
	switch {
	case errors.As(err, &nf) && nf.Kind != core.KindSource:
		return http.StatusBadRequest
	case errors.Is(err, astar.ErrSearchLimit):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	id := RequestID(r.Context())
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", slog.String("request_id", id), slog.String("path", r.URL.Path), slog.Any("err", err))
		if status == http.StatusInternalServerError {
			msg = "internal server error"
		}
	}

	writeJSON(w, status, errorResponse{Success: false, Error: msg, RequestID: id})
}

func decodeJSON(r *http.Request, v any) error {
	body := io.LimitReader(r.Body, maxBody)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Success: false, Error: msg})
}
