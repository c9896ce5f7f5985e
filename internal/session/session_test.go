package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_Success(t *testing.T) {
	dialer := &MockDialer{}
	m := NewManager(Config{Host: "h", Port: 22, User: "u", Password: "p"},
		WithDialer(dialer))

	var events []Event
	m.Subscribe(func(ev Event) { events = append(events, ev) })

	require.NoError(t, m.Connect(context.Background()))
	assert.True(t, m.IsConnected())
	assert.Equal(t, 1, dialer.Dials)
	assert.Equal(t, []Event{EventConnected}, events)
}

func TestConnect_Failure(t *testing.T) {
	cause := errors.New("handshake refused")
	dialer := &MockDialer{
		DialFunc: func(context.Context, Config) (Conn, error) {
			return nil, cause
		},
	}
	m := NewManager(Config{Host: "h", Port: 22, User: "u"}, WithDialer(dialer))

	var events []Event
	m.Subscribe(func(ev Event) { events = append(events, ev) })

	err := m.Connect(context.Background())
	require.Error(t, err)

	var connErr *ConnectError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, "failed to connect: handshake refused", err.Error())
	assert.ErrorIs(t, err, cause)

	assert.False(t, m.IsConnected())
	assert.Empty(t, events)
}

func TestConnect_UnknownCause(t *testing.T) {
	err := &ConnectError{}
	assert.Equal(t, "failed to connect: unknown error", err.Error())
}

func TestConnect_AlreadyConnected(t *testing.T) {
	dialer := &MockDialer{}
	m := NewManager(Config{Host: "h", Port: 22, User: "u"}, WithDialer(dialer))

	require.NoError(t, m.Connect(context.Background()))
	err := m.Connect(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyConnected)
	assert.Equal(t, 1, dialer.Dials, "second connect must not re-dial")
}

func TestExecute_NotConnected(t *testing.T) {
	dialer := &MockDialer{}
	m := NewManager(Config{Host: "h", Port: 22, User: "u"}, WithDialer(dialer))

	_, err := m.Execute(context.Background(), "ls")
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.Equal(t, 0, dialer.Dials, "precondition failure must not touch the dialer")
}

func TestExecute_StderrIsFailure(t *testing.T) {
	conn := &MockConn{
		RunFunc: func(_ context.Context, command string) (*Result, error) {
			return &Result{Stdout: "partial", Stderr: "permission denied"}, nil
		},
	}
	m := newConnectedManager(t, conn)

	_, err := m.Execute(context.Background(), "rm x")
	require.Error(t, err)

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, "permission denied", cmdErr.Stderr)
	assert.Contains(t, err.Error(), "permission denied")

	assert.True(t, m.IsConnected(), "execute never changes connection state")
}

func TestExecute_UnderlyingFailure(t *testing.T) {
	cause := errors.New("connection reset")
	conn := &MockConn{
		RunFunc: func(context.Context, string) (*Result, error) {
			return nil, cause
		},
	}
	m := newConnectedManager(t, conn)

	_, err := m.Execute(context.Background(), "uptime")
	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "command execution failed: connection reset", err.Error())
	assert.True(t, m.IsConnected())
}

func TestExecute_StdoutUntrimmed(t *testing.T) {
	conn := &MockConn{
		RunFunc: func(context.Context, string) (*Result, error) {
			return &Result{Stdout: "  ok\n\n"}, nil
		},
	}
	m := newConnectedManager(t, conn)

	out, err := m.Execute(context.Background(), "echo ok")
	require.NoError(t, err)
	assert.Equal(t, "  ok\n\n", out)
	assert.Equal(t, []string{"echo ok"}, conn.Commands)
}

func TestExecute_CommandTimeout(t *testing.T) {
	conn := &MockConn{
		RunFunc: func(ctx context.Context, _ string) (*Result, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	dialer := &MockDialer{
		DialFunc: func(context.Context, Config) (Conn, error) { return conn, nil },
	}
	m := NewManager(Config{Host: "h", Port: 22, User: "u"},
		WithDialer(dialer),
		WithCommandTimeout(20*time.Millisecond))
	require.NoError(t, m.Connect(context.Background()))

	_, err := m.Execute(context.Background(), "sleep 60")
	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDisconnect_Idempotent(t *testing.T) {
	conn := &MockConn{}
	m := newConnectedManager(t, conn)

	var events []Event
	m.Subscribe(func(ev Event) { events = append(events, ev) })

	m.Disconnect()
	m.Disconnect()

	assert.False(t, m.IsConnected())
	assert.Equal(t, 1, conn.Closed, "release must happen exactly once")
	assert.Equal(t, []Event{EventDisconnected}, events)
}

func TestDisconnect_BeforeConnect(t *testing.T) {
	m := NewManager(Config{Host: "h", Port: 22, User: "u"},
		WithDialer(&MockDialer{}))

	var events []Event
	m.Subscribe(func(ev Event) { events = append(events, ev) })

	m.Disconnect()
	assert.Empty(t, events)
}

func TestDisconnect_ReleaseFailureSwallowed(t *testing.T) {
	conn := &MockConn{
		CloseFunc: func() error { return errors.New("broken pipe") },
	}
	m := newConnectedManager(t, conn)

	m.Disconnect()
	assert.False(t, m.IsConnected())

	// A fresh connect must be possible after a failed release.
	require.NoError(t, m.Connect(context.Background()))
	assert.True(t, m.IsConnected())
}

func TestSubscribe_Unsubscribe(t *testing.T) {
	m := newConnectedManager(t, &MockConn{})

	var events []Event
	unsubscribe := m.Subscribe(func(ev Event) { events = append(events, ev) })
	unsubscribe()

	m.Disconnect()
	assert.Empty(t, events)
}

func TestSession_FullScenario(t *testing.T) {
	var result *Result
	var runErr error
	conn := &MockConn{
		RunFunc: func(context.Context, string) (*Result, error) {
			return result, runErr
		},
	}
	dialer := &MockDialer{
		DialFunc: func(_ context.Context, cfg Config) (Conn, error) {
			assert.Equal(t, "h", cfg.Host)
			assert.Equal(t, 22, cfg.Port)
			assert.Equal(t, "u", cfg.User)
			assert.Equal(t, "p", cfg.Password)
			return conn, nil
		},
	}

	m := NewManager(Config{Host: "h", Port: 22, User: "u", Password: "p"},
		WithDialer(dialer))

	var events []Event
	m.Subscribe(func(ev Event) { events = append(events, ev) })

	require.NoError(t, m.Connect(context.Background()))
	require.True(t, m.IsConnected())

	result = &Result{Stdout: "ok", Stderr: ""}
	out, err := m.Execute(context.Background(), "ls")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)

	result = &Result{Stdout: "", Stderr: "permission denied"}
	_, err = m.Execute(context.Background(), "rm x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")

	m.Disconnect()
	assert.False(t, m.IsConnected())
	assert.Equal(t, []string{"ls", "rm x"}, conn.Commands)
	assert.Equal(t, []Event{EventConnected, EventDisconnected}, events)
}

func newConnectedManager(t *testing.T, conn *MockConn) *Manager {
	t.Helper()
	dialer := &MockDialer{
		DialFunc: func(context.Context, Config) (Conn, error) { return conn, nil },
	}
	m := NewManager(Config{Host: "h", Port: 22, User: "u"}, WithDialer(dialer))
	require.NoError(t, m.Connect(context.Background()))
	return m
}
