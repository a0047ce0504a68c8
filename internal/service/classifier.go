package service

import (
	"context"
	"fmt"
	"strings"

	"misto-helper/internal/dto"
	"misto-helper/internal/models"
	"misto-helper/pkg/config"

	"go.uber.org/zap"
)

// Classification is the common result of every strategy.
// IsRelevant reports whether the text is in-domain at all; the k-NN
// strategy cannot judge relevance and always reports true when history
// exists.
type Classification struct {
	CategoryID string
	Confidence float64
	Reasoning  string
	IsUrgent   bool
	IsRelevant bool
}

// Classifier is the contract shared by the k-NN, generative, and hybrid
// strategies. The active strategy is chosen by configuration, so callers
// never branch on the implementation.
type Classifier interface {
	Classify(ctx context.Context, problemText string) (*Classification, error)
}

// ExampleSearcher is the nearest-neighbor retrieval capability.
// Implementations must return at most k examples ordered by non-decreasing
// cosine distance.
type ExampleSearcher interface {
	SearchNearest(ctx context.Context, embedding []float32, k int, filter *models.ExampleFilter) ([]models.ScoredExample, error)
}

// CategoryStore is the read interface over the category catalog.
type CategoryStore interface {
	GetByID(ctx context.Context, id string) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
}

// NewClassifier builds the strategy selected by cfg.Type (knn, llm or
// hybrid). Unknown values fall back to knn, the cheap always-available path.
func NewClassifier(
	cfg *config.ClassifierConfig,
	embedder Embedder,
	generator TextGenerator,
	examples ExampleSearcher,
	categories CategoryStore,
	logger *zap.Logger,
) Classifier {
	switch strings.ToLower(cfg.Type) {
	case "llm":
		return NewLLMClassifier(cfg, embedder, generator, examples, categories, logger)
	case "hybrid":
		return NewHybridClassifier(cfg, embedder, generator, examples, categories, logger)
	case "knn":
		return NewKNNClassifier(cfg, embedder, examples, logger)
	default:
		logger.Warn("Unknown classifier type, falling back to knn", zap.String("type", cfg.Type))
		return NewKNNClassifier(cfg, embedder, examples, logger)
	}
}

// exampleFilter converts the configured trusted id range into a search
// filter; a zero range disables filtering.
func exampleFilter(cfg *config.ClassifierConfig) *models.ExampleFilter {
	if cfg.TrustedIDFrom == 0 && cfg.TrustedIDTo == 0 {
		return nil
	}
	return &models.ExampleFilter{IDFrom: cfg.TrustedIDFrom, IDTo: cfg.TrustedIDTo}
}

// DescribeClassification enriches a strategy result with catalog data for
// the API response. Unknown category ids degrade to a labeled fallback
// instead of failing the request.
func DescribeClassification(ctx context.Context, categories CategoryStore, c *Classification) (*dto.ClassificationResponse, error) {
	resp := &dto.ClassificationResponse{
		CategoryID: c.CategoryID,
		Confidence: c.Confidence,
		Reasoning:  c.Reasoning,
		IsUrgent:   c.IsUrgent,
		IsRelevant: c.IsRelevant,
	}

	if c.CategoryID == models.CategoryOther {
		resp.CategoryName = "Uncategorized"
		resp.CategoryDescription = "Could not determine specific category"
		return resp, nil
	}

	category, err := categories.GetByID(ctx, c.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load category %s: %w", c.CategoryID, err)
	}
	if category == nil {
		// Strategy returned an id the catalog does not know: data
		// inconsistency, reported but not fatal.
		resp.CategoryName = "Unknown"
		resp.CategoryDescription = "Category id is not present in the catalog"
		return resp, nil
	}

	resp.CategoryName = category.Name
	resp.CategoryDescription = category.Description
	return resp, nil
}
