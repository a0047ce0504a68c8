package service

import (
	"context"
	"fmt"

	"misto-helper/pkg/config"

	"go.uber.org/zap"
)

// HybridClassifier tries the cheap k-NN path first and escalates to the
// generative strategy only when its confidence is below the threshold.
// It holds one instance of each inner strategy and never blends the two
// results numerically — it always picks exactly one.
type HybridClassifier struct {
	knn       *KNNClassifier
	llm       *LLMClassifier
	threshold float64
	logger    *zap.Logger
}

func NewHybridClassifier(
	cfg *config.ClassifierConfig,
	embedder Embedder,
	generator TextGenerator,
	examples ExampleSearcher,
	categories CategoryStore,
	logger *zap.Logger,
) *HybridClassifier {
	return &HybridClassifier{
		knn:       NewKNNClassifier(cfg, embedder, examples, logger),
		llm:       NewLLMClassifier(cfg, embedder, generator, examples, categories, logger),
		threshold: cfg.Threshold,
		logger:    logger,
	}
}

func (c *HybridClassifier) Classify(ctx context.Context, problemText string) (*Classification, error) {
	fast, err := c.knn.Classify(ctx, problemText)
	if err != nil {
		return nil, err
	}

	if fast.Confidence >= c.threshold {
		fast.Reasoning = "[Hybrid-Fast] " + fast.Reasoning
		return fast, nil
	}

	c.logger.Info("Hybrid fallback: escalating to generative strategy",
		zap.Float64("knn_confidence", fast.Confidence),
		zap.Float64("threshold", c.threshold),
	)

	deep, err := c.llm.Classify(ctx, problemText)
	if err != nil {
		return nil, err
	}

	deep.Reasoning = fmt.Sprintf(
		"[Hybrid-Deep] %s (викликано після k-NN зі впевненістю лише %.2f)",
		deep.Reasoning, fast.Confidence,
	)
	return deep, nil
}
