// Package http exposes the ledgers over a JSON API.
//
// Handlers own boundary validation: amounts arrive as decimal strings
// and are parsed to cents, enums are checked, credit expenses must name
// an existing card. Past the boundary the Book trusts its input.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"grana/internal/cache"
	"grana/internal/ledger"
	applog "grana/internal/log"
	"grana/internal/middleware/ratelimit"
	"grana/internal/middleware/security"
	"grana/internal/middleware/trace"
	"grana/internal/report"
)

type Server struct {
	http.Server

	book         *ledger.Book
	summaryCache *cache.LRU[report.MonthOverview]
	limiter      *ratelimit.Limiter
	logger       *slog.Logger

	janitorStop  chan struct{}
	shutdownOnce sync.Once
}

type Options struct {
	Addr      string
	CacheSize int
	CacheTTL  time.Duration
	Logger    *applog.Logger
}

func NewServer(book *ledger.Book, opts Options) *Server {
	if opts.CacheSize <= 0 {
		opts.CacheSize = 100
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}
	logger := opts.Logger
	if logger == nil {
		logger = applog.New(applog.Config{})
	}

	s := &Server{
		book:         book,
		summaryCache: cache.NewLRU[report.MonthOverview](opts.CacheSize, opts.CacheTTL),
		limiter:      ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		logger:       logger.WithComponent(applog.ComponentHTTP).Logger,
		janitorStop:  make(chan struct{}),
	}
	go s.cacheJanitor(opts.CacheTTL)

	mux := http.NewServeMux()
	s.routes(mux)

	resolver := security.NewIPResolver()
	traced := trace.NewMiddleware(logger, resolver.ExtractClientIP)
	limited := s.limiter.Middleware(resolver.ExtractClientIP, isMutating)

	s.Server = http.Server{
		Addr:              opts.Addr,
		Handler:           traced.Middleware(limited(security.Headers(mux))),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("PATCH /api/expenses/{id}", s.handleUpdateExpense)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.handleDeleteExpense)

	mux.HandleFunc("POST /api/cards", s.handleCreateCard)
	mux.HandleFunc("GET /api/cards", s.handleListCards)
	mux.HandleFunc("PATCH /api/cards/{id}", s.handleUpdateCard)
	mux.HandleFunc("DELETE /api/cards/{id}", s.handleDeleteCard)

	mux.HandleFunc("POST /api/tasks", s.handleCreateTask)
	mux.HandleFunc("GET /api/tasks", s.handleListTasks)
	mux.HandleFunc("GET /api/tasks/upcoming", s.handleUpcomingTasks)
	mux.HandleFunc("GET /api/tasks/calendar", s.handleTaskCalendar)
	mux.HandleFunc("PATCH /api/tasks/{id}", s.handleUpdateTask)
	mux.HandleFunc("DELETE /api/tasks/{id}", s.handleDeleteTask)
	mux.HandleFunc("POST /api/tasks/{id}/subtasks/{subtaskID}/toggle", s.handleToggleSubtask)

	mux.HandleFunc("GET /api/income", s.handleGetIncome)
	mux.HandleFunc("PUT /api/income/salary", s.handleSetSalary)
	mux.HandleFunc("POST /api/income/additional", s.handleAddAdditionalIncome)
	mux.HandleFunc("DELETE /api/income/additional/{id}", s.handleRemoveAdditionalIncome)

	mux.HandleFunc("GET /api/summary", s.handleSummary)

	mux.HandleFunc("GET /api/settings", s.handleGetSettings)
	mux.HandleFunc("PUT /api/settings", s.handleUpdateSettings)
}

func isMutating(r *http.Request) bool {
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// cacheJanitor sweeps expired summaries so a quiet cache does not hold
// stale entries until the next read.
func (s *Server) cacheJanitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := s.summaryCache.CleanExpired(); n > 0 {
				s.logger.Debug("Expired summaries removed", "count", n)
			}
		case <-s.janitorStop:
			return
		}
	}
}

// Shutdown stops the background goroutines and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		close(s.janitorStop)
		s.limiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
