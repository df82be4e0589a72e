// Package prometheus defines the ops service of the explorer: metrics
// collection, health and goroutine dumps.
package prometheus

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"runtime/debug"
	"runtime/pprof"
	"sync"
	"time"

	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	xrate "golang.org/x/time/rate"

	"github.com/mnee-network/explorer/internal/rate"
	"github.com/mnee-network/explorer/internal/utils"
)

// Config is the config for the ops service
type Config struct {
	Enabled        bool
	IP             string
	Port           int
	RateLimit      float64 // requests per second per remote IP
	Burst          int
	ExemptIPs      []string // never rate limited
	AllowedOrigins []string
}

func (c Config) String() string {
	return fmt.Sprintf("%v, %v:%v, %v/%v, exempt %v, %v", c.Enabled, c.IP, c.Port, c.RateLimit, c.Burst,
		c.ExemptIPs, c.AllowedOrigins)
}

// HealthFunc reports an unhealthy service with a non-nil error.
type HealthFunc func() error

// Handler represents a path and handler func to serve on the same port as /metrics, /healthz, /goroutinez, etc.
type Handler struct {
	Path    string
	Handler func(http.ResponseWriter, *http.Request)
}

// Service provides Prometheus metrics via the /metrics route. This route will
// show all the metrics registered with utils.PromRegistry.
type Service struct {
	config     Config
	router     *mux.Router
	server     *http.Server
	limiter    rate.IDLimiter
	health     HealthFunc

	statusLock sync.Mutex
	failStatus error
}

func init() {
	utils.PromRegistry().MustRegister(
		overRateLimitCounter,
	)
}

var (
	overRateLimitCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "explorer",
			Subsystem: "ops",
			Name:      "over_ratelimit_total",
			Help:      "number of ops requests rejected by the rate limiter",
		},
	)
)

// New creates the ops service. A nil health func always reports healthy.
func New(config Config, health HealthFunc, additionalHandlers ...Handler) *Service {
	s := &Service{
		config:  config,
		health:  health,
		limiter: rate.NewLimiterPerID(rate.Config{
			Limit:  xrate.Limit(config.RateLimit),
			Burst:  config.Burst,
			Exempt: config.ExemptIPs,
		}),
	}
	s.router = mux.NewRouter()
	s.router.Path("/metrics").Handler(promhttp.InstrumentMetricHandler(
		utils.PromRegistry(),
		promhttp.HandlerFor(utils.PromRegistry(), promhttp.HandlerOpts{}),
	)).Methods("GET")
	s.router.Path("/healthz").HandlerFunc(s.healthzHandler).Methods("GET")
	s.router.Path("/goroutinez").HandlerFunc(s.goroutinezHandler).Methods("GET")

	// Register additional handlers.
	for _, h := range additionalHandlers {
		s.router.HandleFunc(h.Path, h.Handler)
	}
	return s
}

// Handler returns the router wrapped with CORS and rate limiting.
func (s *Service) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: s.config.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet},
	})
	return c.Handler(s.rateLimit(s.router))
}

func (s *Service) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow(remoteIP(r)) {
			overRateLimitCounter.Inc()
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type healthStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func (s *Service) healthzHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	status := healthStatus{Status: "ok"}
	if s.health != nil {
		if err := s.health(); err != nil {
			status = healthStatus{Status: "unhealthy", Error: err.Error()}
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}
	if err := jsoniter.NewEncoder(w).Encode(status); err != nil {
		utils.Logger().Warn().Err(err).Msg("cannot JSON-encode health status")
	}
}

func (s *Service) goroutinezHandler(w http.ResponseWriter, _ *http.Request) {
	stack := debug.Stack()
	if _, err := w.Write(stack); err != nil {
		utils.Logger().Error().Err(err).Msg("Failed to write goroutines stack")
	}
	if err := pprof.Lookup("goroutine").WriteTo(w, 2); err != nil {
		utils.Logger().Error().Err(err).Msg("Failed to write pprof goroutines")
	}
}

// Start binds the listener and serves in the background.
func (s *Service) Start() error {
	if !s.config.Enabled {
		utils.Logger().Info().Msg("Ops http server disabled...")
		return nil
	}
	utils.Logger().Debug().Str("Config", s.config.String()).Msg("Ops")

	endpoint := net.JoinHostPort(s.config.IP, fmt.Sprint(s.config.Port))
	listener, err := net.Listen("tcp", endpoint)
	if err != nil {
		return err
	}
	s.server = &http.Server{
		Addr:         listener.Addr().String(),
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	s.limiter.Start()
	go func() {
		utils.Logger().Info().Str("address", s.server.Addr).Msg("Starting ops service")
		err := s.server.Serve(listener)
		if err != nil && err != http.ErrServerClosed {
			utils.Logger().Error().Msgf("Could not serve on %s: %v", s.server.Addr, err)
			s.setStatus(err)
		}
	}()
	return nil
}

// Addr returns the address the service listens on, empty before start.
func (s *Service) Addr() string {
	if s.server == nil {
		return ""
	}
	return s.server.Addr
}

// Stop stops the service gracefully.
func (s *Service) Stop() error {
	if s.server == nil {
		return nil
	}
	utils.Logger().Info().Msg("Shutting down ops service.")
	s.limiter.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Status checks for any service failure conditions.
func (s *Service) Status() error {
	s.statusLock.Lock()
	defer s.statusLock.Unlock()

	return s.failStatus
}

func (s *Service) setStatus(err error) {
	s.statusLock.Lock()
	defer s.statusLock.Unlock()

	s.failStatus = err
}
