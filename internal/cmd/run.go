package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jmartelli/sshrun/internal/config"
	"github.com/jmartelli/sshrun/internal/security"
	"github.com/jmartelli/sshrun/internal/session"
)

var runCmd = &cobra.Command{
	Use:   "run <server> <command...>",
	Short: "Execute a command on a server",
	Long: `Connects to a registered server, runs the command, prints its stdout
and disconnects. A command that writes anything to stderr is treated as
failed, and the stderr text is reported.

Example:
  sshrun run production uptime
  sshrun run staging df -h /var`,
	Args: cobra.MinimumNArgs(2),
	RunE: runRun,
}

var (
	runTimeout  time.Duration
	runInsecure bool
)

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 0, "Per-command timeout (default: none)")
	runCmd.Flags().BoolVar(&runInsecure, "insecure", false, "Skip host key verification")
}

func runRun(cmd *cobra.Command, args []string) error {
	serverName := args[0]
	command := strings.Join(args[1:], " ")

	if err := security.ValidateServerName(serverName); err != nil {
		return fmt.Errorf("invalid server name: %w", err)
	}

	globalCfg, err := loadGlobalConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	server, err := globalCfg.GetServer(serverName)
	if err != nil {
		return err
	}

	sessCfg, err := sessionConfig(server)
	if err != nil {
		return err
	}
	if runInsecure {
		sessCfg.StrictHostKey = false
	}

	log := Logger()
	mgr := session.NewManager(sessCfg,
		session.WithLogger(log),
		session.WithCommandTimeout(runTimeout))

	unsubscribe := mgr.Subscribe(func(ev session.Event) {
		log.Debug("session event", zap.String("event", string(ev)))
	})
	defer unsubscribe()

	if err := mgr.Connect(cmd.Context()); err != nil {
		return err
	}
	defer mgr.Disconnect()

	log.Debug("executing",
		zap.String("server", serverName),
		zap.String("command", security.SanitizeCommandForLog(command)))

	out, err := mgr.Execute(cmd.Context(), command)
	if err != nil {
		return err
	}

	fmt.Print(out)
	return nil
}

// sessionConfig turns a registry entry into a session config, resolving the
// credential: key file content when configured, otherwise the stored
// password, otherwise an interactive prompt.
func sessionConfig(server *config.ServerConfig) (session.Config, error) {
	cfg := session.Config{
		Host:           server.Host,
		Port:           server.Port,
		User:           server.User,
		Password:       server.Password,
		StrictHostKey:  !server.Insecure,
		KnownHostsPath: server.KnownHostsPath,
	}

	if server.KeyPath != "" {
		key, err := loadPrivateKey(server.KeyPath)
		if err != nil {
			return session.Config{}, err
		}
		cfg.PrivateKey = key
	}

	if cfg.PrivateKey == "" && cfg.Password == "" && IsInteractive() {
		password, err := PromptPassword(fmt.Sprintf("Password for %s@%s: ", server.User, server.Host))
		if err != nil {
			return session.Config{}, err
		}
		cfg.Password = password
	}

	return cfg, nil
}

// loadPrivateKey reads a key file, expanding a leading ~/.
func loadPrivateKey(path string) (string, error) {
	path, err := expandHome(path)
	if err != nil {
		return "", err
	}

	key, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read key file: %w", err)
	}
	return string(key), nil
}

// expandHome replaces a leading ~/ with the user's home directory.
func expandHome(path string) (string, error) {
	if len(path) < 2 || path[:2] != "~/" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}
