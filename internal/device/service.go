package device

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/peasenet/homelink/internal/bridges/sprinkler"
)

// Defaults for poll behavior.
const (
	defaultProbeTimeout  = 1 * time.Second
	defaultStatusTimeout = 3 * time.Second
	defaultConcurrency   = 4
)

// sprinklerControlPort is the port probed for host liveness.
const sprinklerControlPort = 3030

// SprinklerControl is the slice of the sprinkler bridge the engine needs.
type SprinklerControl interface {
	SystemState(ctx context.Context, host string) (bool, error)
	SetSystem(ctx context.Context, host string, enabled bool) error
	Zones(ctx context.Context, host string) ([]sprinkler.Zone, error)
	SetZone(ctx context.Context, host string, zoneIndex int, on bool) error
}

// TVStatus fetches a TV's partial status payload.
type TVStatus interface {
	Status(ctx context.Context, host string) (map[string]any, error)
}

// UPSStatus fetches a UPS's full status payload.
type UPSStatus interface {
	Status(ctx context.Context, host string) (map[string]any, error)
}

// Prober checks host reachability before a host is polled or expanded.
type Prober interface {
	Probe(ctx context.Context, host string) bool
}

// Announcer publishes refreshed device state to interested subscribers.
type Announcer interface {
	AnnounceState(deviceID string, payload []byte) error
}

// Telemetry records per-poll outcome metrics.
type Telemetry interface {
	WritePollResult(deviceID, kind string, reachable, changed bool, duration time.Duration)
}

// Logger is the minimal logging interface consumed by the engine.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger discards all log output. Used when no logger is configured.
type noopLogger struct{}

func (noopLogger) Debug(msg string, args ...any) {}
func (noopLogger) Info(msg string, args ...any)  {}
func (noopLogger) Warn(msg string, args ...any)  {}
func (noopLogger) Error(msg string, args ...any) {}

// Config tunes the engine's poll behavior.
type Config struct {
	// ProbeTimeout bounds the host liveness probe (single attempt).
	ProbeTimeout time.Duration

	// StatusTimeout bounds control-plane status queries.
	StatusTimeout time.Duration

	// Concurrency bounds parallel per-id resolution during aggregation.
	Concurrency int
}

// Service is the device resolution and aggregation engine.
//
// It is stateless across calls; every resolution loads fresh records from
// the repository and polls control planes live. All methods are safe for
// concurrent use.
type Service struct {
	repo       Repository
	sprinklers SprinklerControl
	tvs        TVStatus
	upss       UPSStatus
	prober     Prober

	history   StateHistoryRepository
	announcer Announcer
	telemetry Telemetry

	cfg    Config
	logger Logger
}

// NewService creates the engine.
//
// Parameters:
//   - repo: Durable record store
//   - sprinklers, tvs, upss: Per-kind control-plane clients
//   - cfg: Poll tuning; zero values take defaults
//
// Returns:
//   - *Service: Engine ready for use, logging discarded until SetLogger
func NewService(repo Repository, sprinklers SprinklerControl, tvs TVStatus, upss UPSStatus, cfg Config) *Service {
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = defaultProbeTimeout
	}
	if cfg.StatusTimeout <= 0 {
		cfg.StatusTimeout = defaultStatusTimeout
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}

	return &Service{
		repo:       repo,
		sprinklers: sprinklers,
		tvs:        tvs,
		upss:       upss,
		prober:     &tcpProber{timeout: cfg.ProbeTimeout},
		cfg:        cfg,
		logger:     noopLogger{},
	}
}

// SetLogger replaces the engine's logger.
func (s *Service) SetLogger(logger Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// SetProber replaces the default TCP liveness prober.
func (s *Service) SetProber(p Prober) {
	if p != nil {
		s.prober = p
	}
}

// SetHistory enables local state-change history logging.
func (s *Service) SetHistory(h StateHistoryRepository) {
	s.history = h
}

// SetAnnouncer enables state announcements after successful refreshes.
func (s *Service) SetAnnouncer(a Announcer) {
	s.announcer = a
}

// SetTelemetry enables per-poll telemetry writes.
func (s *Service) SetTelemetry(t Telemetry) {
	s.telemetry = t
}

// tcpProber checks liveness by dialing the host's control port once.
type tcpProber struct {
	timeout time.Duration
}

// Probe reports whether the host accepts a TCP connection on its control
// port within the timeout. A timeout reads as unreachable, never an error.
func (p *tcpProber) Probe(ctx context.Context, host string) bool {
	dialer := net.Dialer{Timeout: p.timeout}
	addr := net.JoinHostPort(host, strconv.Itoa(sprinklerControlPort))

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}
