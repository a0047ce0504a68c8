package service

import (
	"context"
	"fmt"
	"math"

	"misto-helper/internal/models"
	"misto-helper/pkg/config"
	"misto-helper/pkg/vector"

	"go.uber.org/zap"
)

// distanceEpsilon keeps the separation ratio finite when the nearest
// competitor sits at distance zero.
const distanceEpsilon = 1e-9

// KNNClassifier assigns a category and urgency by majority vote over the
// k nearest historical examples. Deterministic given a fixed embedding
// function and neighbor set; the only network call is the embedding.
type KNNClassifier struct {
	cfg      *config.ClassifierConfig
	embedder Embedder
	examples ExampleSearcher
	logger   *zap.Logger
}

func NewKNNClassifier(
	cfg *config.ClassifierConfig,
	embedder Embedder,
	examples ExampleSearcher,
	logger *zap.Logger,
) *KNNClassifier {
	return &KNNClassifier{
		cfg:      cfg,
		embedder: embedder,
		examples: examples,
		logger:   logger,
	}
}

func (c *KNNClassifier) Classify(ctx context.Context, problemText string) (*Classification, error) {
	embedding, err := c.embedder.Embed(ctx, problemText)
	if err != nil {
		return nil, fmt.Errorf("failed to embed problem text: %w", err)
	}

	neighbors, err := c.examples.SearchNearest(ctx, embedding, c.cfg.TopK, exampleFilter(c.cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to search nearest examples: %w", err)
	}

	if len(neighbors) == 0 {
		return &Classification{
			CategoryID: models.CategoryOther,
			Confidence: 0.0,
			Reasoning:  "[KNN] Історичних прикладів не знайдено, категорію визначити неможливо.",
			IsUrgent:   false,
			IsRelevant: true,
		}, nil
	}

	winner, votes := majorityLabel(neighbors, func(n models.ScoredExample) string {
		return n.CategoryID
	})
	confidence := blendedConfidence(neighbors, func(n models.ScoredExample) bool {
		return n.CategoryID == winner
	})

	urgentLabel, urgentVotes := majorityLabel(neighbors, func(n models.ScoredExample) string {
		if n.IsUrgent {
			return "urgent"
		}
		return "routine"
	})
	isUrgent := urgentLabel == "urgent"
	urgencyConfidence := blendedConfidence(neighbors, func(n models.ScoredExample) bool {
		return n.IsUrgent == isUrgent
	})

	reasoning := fmt.Sprintf(
		"[KNN] k-NN голосування: %d/%d схожих випадків раніше були класифіковані як '%s'; "+
			"терміновість %d/%d (впевненість %.2f).",
		votes, len(neighbors), winner, urgentVotes, len(neighbors), urgencyConfidence,
	)

	c.logger.Debug("KNN classification",
		zap.String("category", winner),
		zap.Float64("confidence", confidence),
		zap.Bool("is_urgent", isUrgent),
		zap.Int("neighbors", len(neighbors)),
	)

	return &Classification{
		CategoryID: winner,
		Confidence: round2(confidence),
		Reasoning:  reasoning,
		IsUrgent:   isUrgent,
		// k-NN cannot judge relevance; history existing is taken as in-domain
		IsRelevant: true,
	}, nil
}

// majorityLabel returns the most frequent label among the neighbors. Ties
// break to the label seen first in distance order, so the tied label with
// the nearest neighbor wins — deterministic for a fixed neighbor set.
func majorityLabel(neighbors []models.ScoredExample, key func(models.ScoredExample) string) (string, int) {
	counts := make(map[string]int, len(neighbors))
	for _, n := range neighbors {
		counts[key(n)]++
	}

	var winner string
	best := -1
	for _, n := range neighbors {
		if label := key(n); counts[label] > best {
			winner = label
			best = counts[label]
		}
	}
	return winner, best
}

// blendedConfidence mixes the vote fraction with a distance-separation
// signal, each weighted 0.5. Without a competitor the distance component
// rewards absolute closeness; with one it rewards how much closer the
// winning cluster is than the nearest rival, saturating at 1.
func blendedConfidence(neighbors []models.ScoredExample, isWinner func(models.ScoredExample) bool) float64 {
	votes := 0
	winnerDist := math.Inf(1)
	competitorDist := math.Inf(1)

	for _, n := range neighbors {
		if isWinner(n) {
			votes++
			if n.Distance < winnerDist {
				winnerDist = n.Distance
			}
		} else if n.Distance < competitorDist {
			competitorDist = n.Distance
		}
	}

	voteComponent := float64(votes) / float64(len(neighbors))

	var distanceComponent float64
	if math.IsInf(competitorDist, 1) {
		distanceComponent = math.Max(0, 1-winnerDist/vector.MaxDistance)
	} else {
		distanceComponent = math.Min(1, math.Max(0, competitorDist-winnerDist)/(competitorDist+distanceEpsilon))
	}

	return 0.5*voteComponent + 0.5*distanceComponent
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
