package main

import (
	"log"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/jmartelli/sshrun/internal/cmd"
)

func main() {
	outputDir := "./docs/commands"

	// Create output directory if it doesn't exist
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	// Generate markdown documentation
	rootCmd := cmd.GetRootCmd()
	if err := doc.GenMarkdownTree(rootCmd, outputDir); err != nil {
		log.Fatalf("Failed to generate documentation: %v", err)
	}

	log.Printf("Documentation generated in %s", outputDir)
}
