package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/services"
)

var matchCmd = &cobra.Command{
	Use:   "match <resume-file> <job-file>...",
	Short: "Score a resume against one or more job descriptions",
	Long:  "Score a resume against each job description file. The job title is the file name without its extension. Results keep the order of the job files.",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runMatch,
}

var matchJSON bool

func init() {
	matchCmd.Flags().BoolVar(&matchJSON, "json", false, "print results as JSON")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	extractor, cfg, log, err := newExtractor()
	if err != nil {
		return err
	}
	defer log.Sync()

	resume, err := extractFile(cmd, extractor, args[0])
	if err != nil {
		return err
	}

	jobs := make([]models.JobDescription, 0, len(args)-1)
	for _, path := range args[1:] {
		description, err := extractFile(cmd, extractor, path)
		if err != nil {
			return err
		}
		jobs = append(jobs, models.JobDescription{
			Title:       jobTitle(path),
			Description: description,
		})
	}

	scorer := services.NewScorerService(cfg.Worker.ScoreConcurrency)
	results, err := scorer.ScoreMultiple(cmd.Context(), resume, jobs)
	if err != nil {
		return err
	}

	if matchJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(models.MatchMultipleResponse{Results: results})
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TITLE\tSCORE\tKEYWORDS")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%.2f\t%s\n", r.Title, r.Score, strings.Join(r.Keywords, ", "))
	}
	return w.Flush()
}

func jobTitle(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
