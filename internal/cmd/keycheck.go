package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmartelli/sshrun/internal/session"
)

var keycheckCmd = &cobra.Command{
	Use:   "keycheck <key|file>",
	Short: "Validate the syntax of an SSH public key",
	Long: `Checks that the argument is a well-formed OpenSSH public key string
(ssh-rsa or ssh-ed25519, base64 body, comment). The argument may be the key
itself or the path of a .pub file.

Example:
  sshrun keycheck ~/.ssh/id_ed25519.pub
  sshrun keycheck "ssh-ed25519 AAAAC3Nza... user@host"`,
	Args: cobra.ExactArgs(1),
	RunE: runKeycheck,
}

func init() {
	rootCmd.AddCommand(keycheckCmd)
}

func runKeycheck(cmd *cobra.Command, args []string) error {
	key := args[0]

	if path, err := expandHome(key); err == nil {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read key file: %w", err)
			}
			key = string(data)
		}
	}

	if !session.ValidatePublicKey(key) {
		return fmt.Errorf("not a valid SSH public key")
	}

	PrintSuccess("Valid SSH public key")
	return nil
}
