package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jonathan/voca-career/internal/advisor"
	"github.com/jonathan/voca-career/internal/llm"
	"github.com/jonathan/voca-career/internal/server"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Start an HTTP server that answers POST / and POST /career-advice with career recommendations.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT env var)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadValidConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
	}

	client, err := llm.NewClient(cmd.Context(), cfg.LLM())
	if err != nil {
		return fmt.Errorf("failed to create completion client: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			log.Printf("Error closing completion client: %v", err)
		}
	}()

	srv := server.New(cfg, advisor.New(client))
	return srv.Start()
}
