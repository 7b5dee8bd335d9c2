package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/docforge/outliner/internal/api"
	"github.com/docforge/outliner/internal/classify"
	"github.com/docforge/outliner/internal/config"
	"github.com/docforge/outliner/internal/extract"
	"github.com/docforge/outliner/internal/home"
	"github.com/docforge/outliner/internal/jobs"
	"github.com/docforge/outliner/internal/outline"
)

var processVerbose bool

// processSummary is reported after a batch run.
type processSummary struct {
	Documents int    `json:"documents" yaml:"documents"`
	Succeeded int    `json:"succeeded" yaml:"succeeded"`
	Failed    int    `json:"failed" yaml:"failed"`
	Duration  string `json:"duration" yaml:"duration"`
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

var processCmd = &cobra.Command{
	Use:   "process <input-dir> <output-dir>",
	Short: "Extract outlines from all PDFs in a directory",
	Long: `Process scans the input directory for PDF files, extracts a structured
outline from each, and writes one JSON file per document to the output
directory. Documents are processed in parallel; a failure in one document
never aborts the batch.`,
	Args: cobra.ExactArgs(2),
	RunE: runProcess,
}

func init() {
	processCmd.Flags().BoolVarP(&processVerbose, "verbose", "v", false, "enable debug logging")
}

func runProcess(cmd *cobra.Command, args []string) error {
	start := time.Now()
	inputDir, outputDir := args[0], args[1]

	level := slog.LevelInfo
	if processVerbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	dir, err := home.New(homeDir)
	if err != nil {
		return err
	}

	cm, err := config.NewManager(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := cm.Get()

	paths, err := findPDFs(inputDir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no PDF files found in %s", inputDir)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	extractor := extract.New(extract.Config{
		OCRLanguage: cfg.OCR.Language,
		DisableOCR:  cfg.OCR.Disabled,
		Logger:      logger,
	})
	defer extractor.Close()

	predictor := classify.New(
		dir.Resolve(config.ResolveEnvVars(cfg.Model.Path)),
		dir.Resolve(config.ResolveEnvVars(cfg.Model.LabelsPath)),
		logger,
	)

	processor := outline.NewProcessor(extractor, predictor, logger)

	pool := jobs.New(jobs.Config{
		Workers: cfg.Pipeline.MaxWorkers,
		Logger:  logger,
		Handler: func(ctx context.Context, task jobs.Task) error {
			doc := processor.Process(ctx, task.Path)
			outPath := outputPath(outputDir, task.Path)
			return api.WriteDocument(outPath, doc)
		},
	})

	logger.Info("processing documents", "count", len(paths), "input", inputDir, "output", outputDir)
	results := pool.Run(cmd.Context(), paths)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}

	return api.Output(processSummary{
		Documents: len(paths),
		Succeeded: len(paths) - failed,
		Failed:    failed,
		Duration:  time.Since(start).Round(time.Millisecond).String(),
		OutputDir: outputDir,
	})
}

// findPDFs lists the PDF files in dir, sorted by name for determinism.
func findPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(entry.Name()), ".pdf") {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// outputPath maps an input document to its outline file.
func outputPath(outputDir, inputPath string) string {
	base := filepath.Base(inputPath)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + ".json"
	return filepath.Join(outputDir, name)
}
