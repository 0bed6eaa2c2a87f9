package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"yashubustudio/wastesorter/vision"
	"yashubustudio/wastesorter/waste"
)

const modelLoadHint = "check that modelPath, labelsPath and ortDll in config.json point to existing files"

var classifyCmd = &cobra.Command{
	Use:   "classify FILE...",
	Short: "Classify image files and write the categories to CSV",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runClassify,
}

func init() {
	classifyCmd.Flags().String("output", "", "CSV file to write results (default uses --output-dir/result_*.csv)")
	classifyCmd.Flags().String("output-dir", "csv", "Directory where result CSVs are written when --output is omitted")
	classifyCmd.Flags().Bool("stdout", false, "Print a summary of the results to STDOUT")
	classifyCmd.Flags().Int("workers", runtime.NumCPU(), "Number of images classified concurrently")
}

type fileResult struct {
	Path   string
	Result waste.Result
	Err    error
}

func runClassify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd)
	resolver := loadResolver(cmd, cfg, logger)

	model := waste.NewOrtModel(cfg.Model)
	classifier := waste.NewModelClassifier(model, cfg.MaxLabels, logger)
	defer vision.Shutdown()
	defer classifier.Close()

	service, err := waste.NewService(classifier, resolver, cfg, logger)
	if err != nil {
		return fmt.Errorf("init service: %w", err)
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := service.Initialize(ctx); err != nil {
		if waste.IsModelLoadError(err) {
			return fmt.Errorf("%w (%s)", err, modelLoadHint)
		}
		return err
	}

	workers, _ := cmd.Flags().GetInt("workers")
	results := classifyFiles(ctx, service, args, workers)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			cmd.PrintErrf("skip %s: %v\n", r.Path, r.Err)
		}
	}
	if failed == len(results) {
		return errors.New("no image could be classified")
	}

	outputFlag, _ := cmd.Flags().GetString("output")
	outputDir, _ := cmd.Flags().GetString("output-dir")
	outputPath, err := resolveOutputPath(strings.TrimSpace(outputFlag), strings.TrimSpace(outputDir))
	if err != nil {
		return err
	}
	if err := writeResultCSV(outputPath, results); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d results to %s\n", len(results)-failed, outputPath)

	if toStdout, _ := cmd.Flags().GetBool("stdout"); toStdout {
		printSummary(cmd, results)
	}
	return nil
}

// classifyFiles analyzes every path with at most workers in flight. Results keep
// the order of paths; a failed file carries its error instead of aborting the batch.
func classifyFiles(ctx context.Context, service *waste.Service, paths []string, workers int) []fileResult {
	if workers <= 0 {
		workers = 1
	}
	results := make([]fileResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			results[i] = fileResult{Path: path}
			frame, err := vision.DecodeFile(path)
			if err != nil {
				results[i].Err = err
				return nil
			}
			res, err := service.Analyze(gctx, frame)
			if err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Result = res
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func resolveOutputPath(path, dir string) (string, error) {
	if path != "" {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("resolve output path: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
			return "", fmt.Errorf("create output directory: %w", err)
		}
		return absPath, nil
	}
	if dir == "" {
		dir = "csv"
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve output dir: %w", err)
	}
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	filename := fmt.Sprintf("result_%s.csv", time.Now().Format("20060102150405"))
	return filepath.Join(absDir, filename), nil
}

func writeResultCSV(path string, results []fileResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create result file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	header := []string{"file", "category", "confidence", "label", "alternatives"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range results {
		if r.Err != nil {
			continue
		}
		row := []string{r.Path, "", "", "", ""}
		if top, ok := r.Result.Top(); ok {
			row[1] = top.Category.String()
			row[2] = fmt.Sprintf("%.3f", top.Confidence)
			row[3] = top.OriginalLabel
			row[4] = formatAlternatives(r.Result.Predictions)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush result: %w", err)
	}
	return nil
}

func formatAlternatives(preds []waste.AggregatedPrediction) string {
	if len(preds) <= 1 {
		return ""
	}
	parts := make([]string, 0, len(preds)-1)
	for _, p := range preds[1:] {
		parts = append(parts, fmt.Sprintf("%s %s", p.Category, percent(p.Confidence)))
	}
	return strings.Join(parts, "; ")
}

func percent(v float32) string {
	return fmt.Sprintf("%.0f%%", v*100)
}

func printSummary(cmd *cobra.Command, results []fileResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "==== results ====")
	for i, r := range results {
		fmt.Fprintf(out, "%d. %s\n", i+1, filepath.Base(r.Path))
		if r.Err != nil {
			fmt.Fprintf(out, "    error: %v\n", r.Err)
			continue
		}
		top, ok := r.Result.Top()
		if !ok {
			fmt.Fprintln(out, "    no prediction")
			continue
		}
		fmt.Fprintf(out, "    %s %s (detected: %s)\n", top.Category, percent(top.Confidence), top.OriginalLabel)
		if r.Result.Instruction != nil {
			for j, step := range r.Result.Instruction.Instructions {
				fmt.Fprintf(out, "      %d) %s\n", j+1, step)
			}
		}
		if alt := formatAlternatives(r.Result.Predictions); alt != "" {
			fmt.Fprintf(out, "    alternatives: %s\n", alt)
		}
	}
}
