// Package session manages the lifecycle of a single SSH session: connect,
// run one command at a time, disconnect. The SSH protocol itself is provided
// by golang.org/x/crypto/ssh behind the Dialer interface.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Config describes the target of one remote session. It is set once at
// construction and never mutated. Host, Port and User are not pre-validated;
// an unusable value fails at the transport layer on Connect.
type Config struct {
	Host string
	Port int
	User string

	// Credential. Exactly one of Password or PrivateKey (PEM content) is
	// expected; if both are set, both are offered to the server.
	Password   string
	PrivateKey string

	// Host key verification. When StrictHostKey is false the host key is
	// not checked.
	StrictHostKey  bool
	KnownHostsPath string
}

// Manager owns one SSH session. Operations are expected to be invoked
// sequentially; a single mutex held for the duration of each operation
// serializes concurrent callers.
type Manager struct {
	cfg        Config
	dialer     Dialer
	log        *zap.Logger
	id         uuid.UUID
	cmdTimeout time.Duration

	events registry

	mu        sync.Mutex
	conn      Conn
	connected bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithDialer replaces the production SSH dialer.
func WithDialer(d Dialer) Option {
	return func(m *Manager) { m.dialer = d }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(m *Manager) { m.log = log }
}

// WithCommandTimeout bounds each Execute call. Zero means no timeout: a hung
// remote command hangs the caller.
func WithCommandTimeout(d time.Duration) Option {
	return func(m *Manager) { m.cmdTimeout = d }
}

// NewManager creates a disconnected manager for the given target.
func NewManager(cfg Config, opts ...Option) *Manager {
	m := &Manager{
		cfg:    cfg,
		dialer: sshDialer{},
		log:    zap.NewNop(),
		id:     uuid.New(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.With(
		zap.String("session", m.id.String()),
		zap.String("host", cfg.Host),
	)
	return m
}

// ID returns the manager's correlation id.
func (m *Manager) ID() uuid.UUID {
	return m.id
}

// IsConnected reports whether a session is currently established.
func (m *Manager) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected
}

// Subscribe registers a lifecycle listener on this instance and returns its
// unsubscribe function. Events are delivered synchronously, once per state
// transition. Delivery order across transitions is guaranteed only for
// sequential callers; concurrent Connect/Disconnect calls may deliver their
// events in either order.
func (m *Manager) Subscribe(fn Listener) func() {
	return m.events.add(fn)
}

// Connect establishes the session. The dial and handshake are bounded by
// DefaultConnectTimeout. On failure the manager stays disconnected and the
// returned *ConnectError wraps the cause. Connecting an already-connected
// manager returns ErrAlreadyConnected.
func (m *Manager) Connect(ctx context.Context) error {
	m.mu.Lock()

	if m.connected {
		m.mu.Unlock()
		return ErrAlreadyConnected
	}

	conn, err := m.dialer.Dial(ctx, m.cfg)
	if err != nil {
		m.mu.Unlock()
		m.log.Debug("connect failed", zap.Error(err))
		return &ConnectError{Err: err}
	}

	m.conn = conn
	m.connected = true
	m.mu.Unlock()

	m.log.Debug("connected", zap.String("user", m.cfg.User))
	m.events.notify(EventConnected)
	return nil
}

// Execute runs command on the established session and returns its stdout
// exactly as produced, without trimming. Any non-empty stderr output is
// treated as a failure regardless of exit status; the stderr text is carried
// verbatim in the returned *CommandError. Execute does not change the
// connection state, even when the underlying call fails.
func (m *Manager) Execute(ctx context.Context, command string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return "", ErrNotConnected
	}

	if m.cmdTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.cmdTimeout)
		defer cancel()
	}

	res, err := m.conn.Run(ctx, command)
	if err != nil {
		m.log.Debug("command failed", zap.Error(err))
		return "", &CommandError{Err: err}
	}
	if res.Stderr != "" {
		m.log.Debug("command wrote to stderr", zap.Int("bytes", len(res.Stderr)))
		return "", &CommandError{Stderr: res.Stderr}
	}
	return res.Stdout, nil
}

// Disconnect releases the session. It is idempotent: when no session is
// established it does nothing and emits no event. A failure to release the
// underlying connection is logged as a warning rather than returned, so the
// common path stays error-free.
func (m *Manager) Disconnect() {
	m.mu.Lock()

	if !m.connected {
		m.mu.Unlock()
		return
	}

	if err := m.conn.Close(); err != nil {
		m.log.Warn("failed to release SSH connection", zap.Error(err))
	}
	m.conn = nil
	m.connected = false
	m.mu.Unlock()

	m.log.Debug("disconnected")
	m.events.notify(EventDisconnected)
}
