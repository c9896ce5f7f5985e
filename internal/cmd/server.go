package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmartelli/sshrun/internal/config"
	"github.com/jmartelli/sshrun/internal/security"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Manage the server registry",
	Long:  `Commands to add, list, and remove servers from the global configuration.`,
}

var serverAddCmd = &cobra.Command{
	Use:   "add <name> <user@host>",
	Short: "Add a new server",
	Long: `Adds a new server to the global configuration.

Example:
  sshrun server add production deploy@my-vps.com
  sshrun server add staging user@staging.example.com --port 2222 --key ~/.ssh/id_ed25519`,
	Args: cobra.ExactArgs(2),
	RunE: runServerAdd,
}

var serverListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured servers",
	RunE:  runServerList,
}

var serverRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a server",
	Args:  cobra.ExactArgs(1),
	RunE:  runServerRemove,
}

var (
	serverPort     int
	serverKeyPath  string
	serverInsecure bool
)

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.AddCommand(serverAddCmd)
	serverCmd.AddCommand(serverListCmd)
	serverCmd.AddCommand(serverRemoveCmd)

	serverAddCmd.Flags().IntVar(&serverPort, "port", 0, "SSH port (default 22)")
	serverAddCmd.Flags().StringVar(&serverKeyPath, "key", "", "Private key file")
	serverAddCmd.Flags().BoolVar(&serverInsecure, "insecure", false, "Skip host key verification for this server")
}

func runServerAdd(cmd *cobra.Command, args []string) error {
	name := args[0]

	if err := security.ValidateServerName(name); err != nil {
		return fmt.Errorf("invalid server name: %w", err)
	}

	user, host, err := parseUserHost(args[1])
	if err != nil {
		return err
	}

	globalCfg, err := loadGlobalConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	server := config.ServerConfig{
		Host:     host,
		User:     user,
		Port:     serverPort,
		KeyPath:  serverKeyPath,
		Insecure: serverInsecure,
	}
	if err := globalCfg.AddServer(name, server); err != nil {
		return err
	}
	if err := saveGlobalConfig(globalCfg); err != nil {
		return err
	}

	PrintSuccess("Server '%s' added (%s@%s)", name, user, host)
	return nil
}

func runServerList(cmd *cobra.Command, args []string) error {
	globalCfg, err := loadGlobalConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if len(globalCfg.Servers) == 0 {
		PrintInfo("No servers configured. Add one with: sshrun server add <name> <user@host>")
		return nil
	}

	names := make([]string, 0, len(globalCfg.Servers))
	for name := range globalCfg.Servers {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("%-20s %-30s %-12s %s\n", "NAME", "HOST", "USER", "PORT")
	for _, name := range names {
		server := globalCfg.Servers[name]
		fmt.Printf("%-20s %-30s %-12s %d\n", name, server.Host, server.User, server.Port)
	}
	return nil
}

func runServerRemove(cmd *cobra.Command, args []string) error {
	name := args[0]

	globalCfg, err := loadGlobalConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := globalCfg.RemoveServer(name); err != nil {
		return err
	}
	if err := saveGlobalConfig(globalCfg); err != nil {
		return err
	}

	PrintSuccess("Server '%s' removed", name)
	return nil
}

// parseUserHost splits a user@host argument.
func parseUserHost(arg string) (user, host string, err error) {
	parts := strings.SplitN(arg, "@", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("expected <user@host>, got '%s'", arg)
	}
	return parts[0], parts[1], nil
}
