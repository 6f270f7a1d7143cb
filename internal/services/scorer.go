package services

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gonum.org/v1/gonum/floats"

	"alfredoptarigan/resume-screener/internal/metrics"
	"alfredoptarigan/resume-screener/internal/models"
)

// termPattern matches runs of word characters; runs shorter than two runes
// are dropped afterwards.
var termPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// SimilarityResult is the outcome of scoring one resume against one job.
type SimilarityResult struct {
	Score    float64
	Keywords []string
}

type ScorerService interface {
	Score(resumeText, jobText string) (*SimilarityResult, error)
	ScoreMultiple(ctx context.Context, resumeText string, jobs []models.JobDescription) ([]models.JobMatch, error)
}

type scorerService struct {
	concurrency int
}

// NewScorerService returns a stateless scorer. concurrency bounds how many
// jobs ScoreMultiple scores at once.
func NewScorerService(concurrency int) ScorerService {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &scorerService{concurrency: concurrency}
}

// Score implements ScorerService.
func (s *scorerService) Score(resumeText, jobText string) (*SimilarityResult, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, &InvalidInputError{Field: "resume", Message: "resume text is empty"}
	}
	if strings.TrimSpace(jobText) == "" {
		return nil, &InvalidInputError{Field: "job", Message: "job text is empty"}
	}

	similarity := tfidfCosine(resumeText, jobText)
	metrics.ScoresTotal.Inc()

	return &SimilarityResult{
		Score:    roundHundredths(similarity * 100),
		Keywords: commonKeywords(resumeText, jobText),
	}, nil
}

// ScoreMultiple implements ScorerService. Results keep the order of jobs.
func (s *scorerService) ScoreMultiple(ctx context.Context, resumeText string, jobs []models.JobDescription) ([]models.JobMatch, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, &InvalidInputError{Field: "resume", Message: "resume text is empty"}
	}
	if len(jobs) == 0 {
		return nil, &MissingInputError{Field: "jobs"}
	}
	for i, job := range jobs {
		if strings.TrimSpace(job.Description) == "" {
			return nil, &InvalidInputError{
				Field:   fmt.Sprintf("jobs[%d].description", i),
				Message: "job text is empty",
			}
		}
	}

	results := make([]models.JobMatch, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			res, err := s.Score(resumeText, job.Description)
			if err != nil {
				return err
			}

			results[i] = models.JobMatch{
				Title:    job.Title,
				Score:    res.Score,
				Keywords: res.Keywords,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// tfidfCosine fits a TF-IDF model on exactly the two documents and returns
// the cosine similarity of their vectors. Smooth idf, raw counts.
// A document with no terms left after stop word removal scores 0.
func tfidfCosine(a, b string) float64 {
	docs := [2]map[string]float64{termCounts(a), termCounts(b)}

	seen := make(map[string]struct{})
	for _, counts := range docs {
		for term := range counts {
			seen[term] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return 0
	}

	// Sorted so the dot product sums in the same order on every call.
	vocabulary := make([]string, 0, len(seen))
	for term := range seen {
		vocabulary = append(vocabulary, term)
	}
	sort.Strings(vocabulary)

	n := float64(len(docs))
	vectors := [2][]float64{make([]float64, len(vocabulary)), make([]float64, len(vocabulary))}
	for idx, term := range vocabulary {
		df := 0.0
		for _, counts := range docs {
			if counts[term] > 0 {
				df++
			}
		}
		idf := math.Log((1+n)/(1+df)) + 1

		for d, counts := range docs {
			vectors[d][idx] = counts[term] * idf
		}
	}

	normA := floats.Norm(vectors[0], 2)
	normB := floats.Norm(vectors[1], 2)
	if normA == 0 || normB == 0 {
		return 0
	}

	similarity := floats.Dot(vectors[0], vectors[1]) / (normA * normB)
	return math.Max(0, math.Min(1, similarity))
}

func termCounts(text string) map[string]float64 {
	counts := make(map[string]float64)
	for _, term := range termPattern.FindAllString(foldCase(text), -1) {
		if len([]rune(term)) < 2 || isStopWord(term) {
			continue
		}
		counts[term]++
	}
	return counts
}

// commonKeywords intersects the whitespace-split, case-folded token sets of
// both texts. Punctuation is kept, so "go," and "go" differ.
func commonKeywords(a, b string) []string {
	left := make(map[string]struct{})
	for _, token := range strings.Fields(foldCase(a)) {
		left[token] = struct{}{}
	}

	common := make(map[string]struct{})
	for _, token := range strings.Fields(foldCase(b)) {
		if _, ok := left[token]; ok {
			common[token] = struct{}{}
		}
	}

	keywords := make([]string, 0, len(common))
	for token := range common {
		keywords = append(keywords, token)
	}
	sort.Strings(keywords)

	return keywords
}

// foldCase lowercases with full Unicode rules. A Caser is not safe for
// concurrent use, so one is built per call.
func foldCase(s string) string {
	return cases.Lower(language.Und).String(s)
}

func roundHundredths(v float64) float64 {
	return math.Round(v*100) / 100
}
