// Package api serves a finished run over HTTP as JSON: the report, the
// trades and the equity curve. Everything it exposes is frozen once the run
// has returned, so handlers read without locking.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/openbacktest/obt/backtest"
	"github.com/openbacktest/obt/stats"
	"github.com/openbacktest/obt/wallet"
)

type Server struct {
	res    *backtest.Result
	report *stats.Report
	flex   *stats.FlexReport
	logger *logrus.Logger
	addr   string
}

// NewServer creates a server for a round-trip run.
func NewServer(res *backtest.Result, report *stats.Report, logger *logrus.Logger, addr string) *Server {
	return &Server{res: res, report: report, logger: logger, addr: addr}
}

// NewFlexServer creates a server for a free-form run.
func NewFlexServer(res *backtest.Result, report *stats.FlexReport, logger *logrus.Logger, addr string) *Server {
	return &Server{res: res, flex: report, logger: logger, addr: addr}
}

// Handler builds the route table. Exposed separately so tests can drive it
// through httptest.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/report", s.handleReport).Methods(http.MethodGet)
	r.HandleFunc("/api/positions", s.handlePositions).Methods(http.MethodGet)
	r.HandleFunc("/api/orders", s.handleOrders).Methods(http.MethodGet)
	r.HandleFunc("/api/equity", s.handleEquity).Methods(http.MethodGet)

	return r
}

// Start serves until the listener fails.
func (s *Server) Start() error {
	s.logger.WithField("addr", s.addr).Info("api: starting results server")
	return http.ListenAndServe(s.addr, s.Handler())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if s.report != nil {
		s.writeJSON(w, http.StatusOK, s.report)
		return
	}
	s.writeJSON(w, http.StatusOK, s.flex)
}

func (s *Server) handlePositions(w http.ResponseWriter, r *http.Request) {
	if s.res.Wallet == nil {
		s.writeJSON(w, http.StatusOK, []*wallet.Position{})
		return
	}
	s.writeJSON(w, http.StatusOK, s.res.Wallet.Book().Positions())
}

func (s *Server) handleOrders(w http.ResponseWriter, r *http.Request) {
	if s.res.Flex == nil {
		s.writeJSON(w, http.StatusOK, []*wallet.Order{})
		return
	}
	s.writeJSON(w, http.StatusOK, s.res.Flex.Book().Orders())
}

// equityPoint pairs an equity mark with its bar timestamp for charting.
type equityPoint struct {
	Timestamp int64   `json:"timestamp"`
	Equity    float64 `json:"equity"`
}

func (s *Server) handleEquity(w http.ResponseWriter, r *http.Request) {
	points := make([]equityPoint, len(s.res.Equity))
	for i, eq := range s.res.Equity {
		points[i] = equityPoint{Timestamp: s.res.Series.Bar(i).Timestamp, Equity: eq}
	}
	s.writeJSON(w, http.StatusOK, points)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.WithError(err).Error("api: failed to encode JSON response")
	}
}
