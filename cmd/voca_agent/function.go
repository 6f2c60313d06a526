package main

import (
	"fmt"
	"log"
	"strconv"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/spf13/cobra"

	"github.com/jonathan/voca-career/internal/advisor"
	"github.com/jonathan/voca-career/internal/llm"
	"github.com/jonathan/voca-career/internal/server"
)

// functionName is the target name registered with the functions framework
const functionName = "career-advice"

var functionCmd = &cobra.Command{
	Use:   "function",
	Short: "Serve the advice handler through the Cloud Functions framework",
	Long: `Register the advice handler as the "career-advice" HTTP function and start the functions framework.
Set FUNCTION_TARGET=career-advice to serve it at the root path.`,
	RunE: runFunction,
}

func init() {
	rootCmd.AddCommand(functionCmd)
}

func runFunction(cmd *cobra.Command, _ []string) error {
	cfg, err := loadValidConfig(cmd)
	if err != nil {
		return err
	}

	client, err := llm.NewClient(cmd.Context(), cfg.LLM())
	if err != nil {
		return fmt.Errorf("failed to create completion client: %w", err)
	}
	defer client.Close() //nolint:errcheck

	srv := server.New(cfg, advisor.New(client))
	defer srv.Close()

	functions.HTTP(functionName, srv.Handler().ServeHTTP)

	port := strconv.Itoa(cfg.Port)
	log.Printf("Function %s starting on port %s", functionName, port)
	if err := funcframework.Start(port); err != nil {
		return fmt.Errorf("functions framework: %w", err)
	}
	return nil
}
