// Package main provides the resumematch command line tool for extracting
// resume text and scoring it against job descriptions without the API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/config"
	"alfredoptarigan/resume-screener/internal/logger"
	"alfredoptarigan/resume-screener/internal/ocr"
	"alfredoptarigan/resume-screener/internal/raster"
	"alfredoptarigan/resume-screener/internal/services"
)

var rootCmd = &cobra.Command{
	Use:   "resumematch",
	Short: "Extract resume text and score it against job descriptions",
	Long:  "resumematch reads PDF, DOCX or plain text resumes (with OCR for scanned PDF pages) and ranks them against job descriptions using TF-IDF cosine similarity.",

	SilenceUsage: true,
}

var debug bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "verbose/debug output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newExtractor wires the same extraction stack the API server uses.
func newExtractor() (services.ExtractorService, *config.Config, *zap.Logger, error) {
	cfg, _ := config.Load()

	level := cfg.Log.Level
	if debug {
		level = "debug"
	}
	log, err := logger.New(level, cfg.Log.Format)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}

	extractor := services.NewExtractorService(
		services.NewPDFTextLayer(),
		raster.NewFitzRasterizer(),
		ocr.NewTesseractEngine(cfg.OCR.Language),
		log,
	)

	return extractor, cfg, log, nil
}

func extractFile(cmd *cobra.Command, extractor services.ExtractorService, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	return extractor.Extract(cmd.Context(), &services.Document{Filename: path, Data: data})
}
