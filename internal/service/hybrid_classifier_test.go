package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"misto-helper/internal/models"
	"misto-helper/pkg/config"
)

func TestHybridFastPathSkipsGenerativeCall(t *testing.T) {
	vec := []float32{1, 0, 0}
	searcher := &fakeSearcher{examples: []models.Example{
		{ID: 1, CategoryID: "heating", Embedding: vec},
		{ID: 2, CategoryID: "heating", Embedding: vec},
		{ID: 3, CategoryID: "heating", Embedding: vec},
	}}
	embedder := &fakeEmbedder{fallback: vec}
	generator := &fakeGenerator{response: "never used"}
	categories := newFakeCategories(models.Category{ID: "heating", Name: "Опалення"})

	classifier := NewHybridClassifier(
		&config.ClassifierConfig{Type: "hybrid", TopK: 3, Threshold: 0.4},
		embedder, generator, searcher, categories, zap.NewNop(),
	)

	result, err := classifier.Classify(context.Background(), "Холодні батареї у квартирі")

	require.NoError(t, err)
	assert.Equal(t, "heating", result.CategoryID)
	assert.Contains(t, result.Reasoning, "[Hybrid-Fast]")
	assert.Zero(t, generator.calls, "fast path must not touch the generative model")
}

func TestHybridEscalatesBelowThreshold(t *testing.T) {
	// Empty history keeps k-NN confidence at zero, forcing escalation.
	searcher := &fakeSearcher{}
	embedder := &fakeEmbedder{fallback: []float32{1, 0, 0}}
	generator := &fakeGenerator{
		response: `{"category_id": "trees", "confidence": 0.85, "reasoning": "Згадано гілку", "is_urgent": false, "is_relevant": true}`,
	}
	categories := newFakeCategories(models.Category{ID: "trees", Name: "Зелені насадження"})

	classifier := NewHybridClassifier(
		&config.ClassifierConfig{Type: "hybrid", TopK: 3, Threshold: 0.4},
		embedder, generator, searcher, categories, zap.NewNop(),
	)

	result, err := classifier.Classify(context.Background(), "Гілка впала на дитячий майданчик")

	require.NoError(t, err)
	assert.Equal(t, "trees", result.CategoryID)
	assert.Equal(t, 1, generator.calls)
	assert.Contains(t, result.Reasoning, "[Hybrid-Deep]")
	assert.Contains(t, result.Reasoning, "0.00")
}

func TestNewClassifierSelectsStrategy(t *testing.T) {
	embedder := &fakeEmbedder{fallback: []float32{1, 0, 0}}
	generator := &fakeGenerator{}
	searcher := &fakeSearcher{}
	categories := newFakeCategories()
	logger := zap.NewNop()

	build := func(kind string) Classifier {
		return NewClassifier(&config.ClassifierConfig{Type: kind, TopK: 3}, embedder, generator, searcher, categories, logger)
	}

	assert.IsType(t, &KNNClassifier{}, build("knn"))
	assert.IsType(t, &LLMClassifier{}, build("llm"))
	assert.IsType(t, &HybridClassifier{}, build("hybrid"))
	assert.IsType(t, &KNNClassifier{}, build("quantum"), "unknown type falls back to knn")
}
