package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Version is set at build time
	Version = "dev"

	// Global flags
	verbose bool
	cfgFile string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "sshrun",
	Short: "Run commands on remote hosts over SSH",
	Long: `sshrun opens an SSH session to a configured server, runs a command,
prints its output and closes the session.

Quick start:
  sshrun server add prod deploy@my-vps.com   # Register a server
  sshrun run prod uptime                     # Run a command on it
  sshrun keycheck ~/.ssh/id_ed25519.pub      # Check a public key's syntax

Commands:
  run       Execute a command on a server
  server    Manage the server registry
  keycheck  Validate the syntax of an SSH public key`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		PrintError("%v", err)
	}
	if logger != nil {
		_ = logger.Sync()
	}
	return err
}

// GetRootCmd returns the root command, for documentation generation.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed logs")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: user config dir)")

	rootCmd.SetVersionTemplate(`sshrun {{.Version}}
`)
}

// Logger returns the process logger, built on first use. Verbose mode
// switches to the development config at debug level.
func Logger() *zap.Logger {
	if logger != nil {
		return logger
	}

	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}

	l, err := cfg.Build()
	if err != nil {
		l = zap.NewNop()
	}
	logger = l
	return logger
}

// PrintError prints a formatted error message
func PrintError(msg string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "❌ "+msg+"\n", args...)
}

// PrintSuccess prints a success message
func PrintSuccess(msg string, args ...interface{}) {
	fmt.Printf("✅ "+msg+"\n", args...)
}

// PrintInfo prints an info message
func PrintInfo(msg string, args ...interface{}) {
	fmt.Printf("ℹ️  "+msg+"\n", args...)
}

// PrintWarning prints a warning message
func PrintWarning(msg string, args ...interface{}) {
	fmt.Printf("⚠️  "+msg+"\n", args...)
}
