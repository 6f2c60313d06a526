// Package main provides the entry point for the voca career recommendation service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "voca_agent",
	Short:        "Career recommendation service",
	Long:         "voca_agent turns a student, fresher or career-change intake profile into structured career recommendations using a chat-completion model, over HTTP or from the command line.",
	SilenceUsage: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
