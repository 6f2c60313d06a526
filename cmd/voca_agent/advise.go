package main

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/voca-career/internal/advisor"
	"github.com/jonathan/voca-career/internal/llm"
	"github.com/jonathan/voca-career/internal/observability"
	"github.com/jonathan/voca-career/internal/types"
)

var adviseCmd = &cobra.Command{
	Use:   "advise <profile.json>...",
	Short: "Generate recommendations for profile files",
	Long: `Run the recommendation pipeline for one or more JSON files of the form {"userType": ..., "formData": {...}}.
Use "-" to read a single profile from stdin. One file prints a recommendation; several print a JSON array of results in argument order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdvise,
}

var (
	adviseConcurrency int
	advisePretty      bool
)

func init() {
	adviseCmd.Flags().IntVar(&adviseConcurrency, "concurrency", 4, "Maximum profiles processed at once")
	adviseCmd.Flags().BoolVar(&advisePretty, "pretty", false, "Indent JSON output")
	rootCmd.AddCommand(adviseCmd)
}

// adviseResult is the outcome for one profile file
type adviseResult struct {
	File           string                      `json:"file"`
	Recommendation *types.CareerRecommendation `json:"recommendation,omitempty"`
	Error          string                      `json:"error,omitempty"`
}

func runAdvise(cmd *cobra.Command, args []string) error {
	if adviseConcurrency < 1 {
		return fmt.Errorf("--concurrency must be at least 1")
	}
	if err := checkStdinArgs(args); err != nil {
		return err
	}

	cfg, err := loadValidConfig(cmd)
	if err != nil {
		return err
	}

	client, err := llm.NewClient(cmd.Context(), cfg.LLM())
	if err != nil {
		return fmt.Errorf("failed to create completion client: %w", err)
	}
	defer client.Close() //nolint:errcheck

	results, err := adviseFiles(cmd.Context(), cmd.InOrStdin(), advisor.New(client), args, adviseConcurrency)
	if err != nil {
		return err
	}

	if verbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		for _, res := range results {
			printer.PrintRecommendation(res.File, res.Recommendation)
		}
	}

	out := cmd.OutOrStdout()
	if len(results) == 1 {
		if results[0].Error != "" {
			return fmt.Errorf("%s: %s", results[0].File, results[0].Error)
		}
		return writeJSON(out, results[0].Recommendation, advisePretty)
	}

	if err := writeJSON(out, results, advisePretty); err != nil {
		return err
	}
	if failed := countFailed(results); failed > 0 {
		return fmt.Errorf("%d of %d profiles failed", failed, len(results))
	}
	return nil
}

// adviseFiles runs each profile through adv with at most concurrency in flight.
// Per-profile failures are recorded in the result; only a cancelled context aborts the batch.
func adviseFiles(ctx context.Context, stdin io.Reader, adv *advisor.Advisor, paths []string, concurrency int) ([]adviseResult, error) {
	if err := checkStdinArgs(paths); err != nil {
		return nil, err
	}
	results := make([]adviseResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = adviseOne(gctx, stdin, adv, path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// checkStdinArgs rejects more than one "-" since stdin can only be read once
func checkStdinArgs(paths []string) error {
	n := 0
	for _, path := range paths {
		if path == stdinPath {
			n++
		}
	}
	if n > 1 {
		return fmt.Errorf("stdin (%q) can be given at most once", stdinPath)
	}
	return nil
}

func adviseOne(ctx context.Context, stdin io.Reader, adv *advisor.Advisor, path string) adviseResult {
	res := adviseResult{File: path}

	req, err := readProfileRequest(path, stdin)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	rec, err := adv.Advise(ctx, req)
	if err != nil {
		log.Printf("[advise] %s: %v", path, err)
		res.Error = err.Error()
		return res
	}
	res.Recommendation = rec
	return res
}

func countFailed(results []adviseResult) int {
	n := 0
	for _, r := range results {
		if r.Error != "" {
			n++
		}
	}
	return n
}
