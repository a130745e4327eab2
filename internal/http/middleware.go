package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/MrJamesThe3rd/carteira/internal/auth"
	"github.com/MrJamesThe3rd/carteira/internal/http/respond"
	"github.com/MrJamesThe3rd/carteira/internal/logger"
)

// requestLogger stores a request-scoped logger in the context and logs one
// line per request: errors for 5xx, info for 4xx, debug otherwise.
func requestLogger(base zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			log := base.With().Str("request_id", middleware.GetReqID(r.Context())).Logger()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r.WithContext(logger.WithContext(r.Context(), log)))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			event := log.Debug()

			switch {
			case status >= http.StatusInternalServerError:
				event = log.Error()
			case status >= http.StatusBadRequest:
				event = log.Info()
			}

			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("HTTP request")
		})
	}
}

// limiterIdle is how long an owner's limiter survives without requests.
const limiterIdle = 10 * time.Minute

// ownerLimiter throttles each owner independently. It must run after the
// auth middleware. Limiters idle for longer than limiterIdle are dropped,
// at most once per limiterIdle.
type ownerLimiter struct {
	limit rate.Limit
	burst int
	now   func() time.Time

	mu        sync.Mutex
	limiters  map[string]*ownerEntry
	lastSweep time.Time
}

type ownerEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newOwnerLimiter(perSecond float64, burst int) *ownerLimiter {
	return &ownerLimiter{
		limit:    rate.Limit(perSecond),
		burst:    burst,
		now:      time.Now,
		limiters: make(map[string]*ownerEntry),
	}
}

func (l *ownerLimiter) get(ownerID string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	entry, ok := l.limiters[ownerID]
	if !ok {
		entry = &ownerEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[ownerID] = entry
	}

	entry.lastSeen = now

	return entry.limiter
}

// sweep must be called with mu held.
func (l *ownerLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < limiterIdle {
		return
	}

	for id, entry := range l.limiters {
		if now.Sub(entry.lastSeen) > limiterIdle {
			delete(l.limiters, id)
		}
	}

	l.lastSweep = now
}

func (l *ownerLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ownerID, _ := auth.OwnerFromContext(r.Context())

		if !l.get(ownerID).Allow() {
			w.Header().Set("Retry-After", "1")
			respond.JSON(w, r, http.StatusTooManyRequests, respond.ErrorResponse{Error: "rate limit exceeded"})

			return
		}

		next.ServeHTTP(w, r)
	})
}
