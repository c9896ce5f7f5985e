package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"
)

// DefaultConnectTimeout bounds the TCP dial and SSH handshake.
const DefaultConnectTimeout = 10 * time.Second

// Result holds the separate output streams of one remote command.
type Result struct {
	Stdout string
	Stderr string
}

// Conn is one established SSH connection. It is exclusively owned by a single
// Manager and released exactly once via Close.
type Conn interface {
	Run(ctx context.Context, command string) (*Result, error)
	Close() error
}

// Dialer abstracts connection establishment for testability.
type Dialer interface {
	Dial(ctx context.Context, cfg Config) (Conn, error)
}

// sshDialer is the production Dialer over golang.org/x/crypto/ssh.
type sshDialer struct{}

func (sshDialer) Dial(ctx context.Context, cfg Config) (Conn, error) {
	auths, err := authMethods(cfg)
	if err != nil {
		return nil, err
	}

	hostKeyCB, err := hostKeyCallback(cfg)
	if err != nil {
		return nil, err
	}

	clientCfg := &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            auths,
		HostKeyCallback: hostKeyCB,
		Timeout:         DefaultConnectTimeout,
	}

	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	d := net.Dialer{Timeout: DefaultConnectTimeout}
	tcpConn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}

	c, chans, reqs, err := ssh.NewClientConn(tcpConn, addr, clientCfg)
	if err != nil {
		tcpConn.Close()
		return nil, err
	}

	return &sshConn{client: ssh.NewClient(c, chans, reqs)}, nil
}

// authMethods assembles authentication methods from the configured
// credential. A private key takes precedence in ordering; if both a key and a
// password are configured, both are offered and the server disambiguates. An
// SSH agent is consulted when SSH_AUTH_SOCK is set.
func authMethods(cfg Config) ([]ssh.AuthMethod, error) {
	var auths []ssh.AuthMethod

	if cfg.PrivateKey != "" {
		signer, err := ssh.ParsePrivateKey([]byte(cfg.PrivateKey))
		if err != nil {
			return nil, fmt.Errorf("parse private key: %w", err)
		}
		auths = append(auths, ssh.PublicKeys(signer))
	}

	if cfg.Password != "" {
		auths = append(auths, ssh.Password(cfg.Password))
	}

	if sock := os.Getenv("SSH_AUTH_SOCK"); sock != "" {
		if conn, err := net.Dial("unix", sock); err == nil {
			ag := agent.NewClient(conn)
			auths = append(auths, ssh.PublicKeysCallback(ag.Signers))
		}
	}

	return auths, nil
}

// hostKeyCallback returns a known_hosts-backed callback in strict mode and
// fails closed when the file is missing.
func hostKeyCallback(cfg Config) (ssh.HostKeyCallback, error) {
	if !cfg.StrictHostKey {
		return ssh.InsecureIgnoreHostKey(), nil
	}

	path := cfg.KnownHostsPath
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		path = filepath.Join(home, ".ssh", "known_hosts")
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("known_hosts file not found at %s and strict host key checking is enabled", path)
	}

	cb, err := knownhosts.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read known_hosts: %w", err)
	}
	return cb, nil
}

// sshConn wraps an established *ssh.Client.
type sshConn struct {
	client *ssh.Client
}

// Run executes command in a fresh session, capturing stdout and stderr
// separately. A remote non-zero exit status is not an error here: the caller
// classifies the outcome from the stderr content.
func (c *sshConn) Run(ctx context.Context, command string) (*Result, error) {
	type outcome struct {
		res *Result
		err error
	}

	run := func() outcome {
		sess, err := c.client.NewSession()
		if err != nil {
			return outcome{nil, fmt.Errorf("failed to create session: %w", err)}
		}
		defer sess.Close()

		var stdout, stderr bytes.Buffer
		sess.Stdout = &stdout
		sess.Stderr = &stderr

		err = sess.Run(command)
		res := &Result{Stdout: stdout.String(), Stderr: stderr.String()}

		var exitErr *ssh.ExitError
		if err != nil && !errors.As(err, &exitErr) {
			return outcome{res, err}
		}
		return outcome{res, nil}
	}

	if ctx.Done() == nil {
		o := run()
		return o.res, o.err
	}

	ch := make(chan outcome, 1)
	go func() { ch <- run() }()

	select {
	case o := <-ch:
		return o.res, o.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *sshConn) Close() error {
	return c.client.Close()
}
