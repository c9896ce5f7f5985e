package session

import "context"

// MockDialer is a test double that records dial attempts and returns a
// configured connection.
type MockDialer struct {
	DialFunc func(ctx context.Context, cfg Config) (Conn, error)
	Dials    int
}

// Dial records the attempt and delegates to DialFunc.
func (m *MockDialer) Dial(ctx context.Context, cfg Config) (Conn, error) {
	m.Dials++
	if m.DialFunc != nil {
		return m.DialFunc(ctx, cfg)
	}
	return &MockConn{}, nil
}

// MockConn is a test double that records commands and returns configured
// results.
type MockConn struct {
	RunFunc   func(ctx context.Context, command string) (*Result, error)
	CloseFunc func() error
	Commands  []string
	Closed    int
}

// Run records the command and delegates to RunFunc.
func (m *MockConn) Run(ctx context.Context, command string) (*Result, error) {
	m.Commands = append(m.Commands, command)
	if m.RunFunc != nil {
		return m.RunFunc(ctx, command)
	}
	return &Result{}, nil
}

// Close records the release and delegates to CloseFunc.
func (m *MockConn) Close() error {
	m.Closed++
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}
