package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"misto-helper/internal/dto"
	"misto-helper/internal/models"
	"misto-helper/pkg/config"
)

func TestSolveRunsFullPipeline(t *testing.T) {
	logger := zap.NewNop()
	vec := []float32{1, 0, 0}

	embedder := &fakeEmbedder{fallback: vec}
	searcher := &fakeSearcher{examples: []models.Example{
		{ID: 1, CategoryID: "water_supply", Text: "Прорвало трубу", IsUrgent: true, Embedding: vec},
		{ID: 2, CategoryID: "water_supply", Text: "Немає води", IsUrgent: true, Embedding: vec},
		{ID: 3, CategoryID: "water_supply", Text: "Тече стояк", IsUrgent: true, Embedding: vec},
	}}
	categories := newFakeCategories(
		models.Category{ID: "water_supply", Name: "Водопостачання", Description: "Проблеми з водою"},
	)

	classifier := NewKNNClassifier(&config.ClassifierConfig{Type: "knn", TopK: 3}, embedder, searcher, logger)

	emergency := &models.Service{ID: 7, Name: "Львівводоканал (аварійна)", Type: models.ServiceTypeUtility, PhoneMain: "+380322971000", IsEmergency: true}
	directory := &fakeDirectory{
		emergency: map[string]*models.Service{"water_supply": emergency},
		byName:    map[string]*models.Service{"Міська гаряча лінія 1580": hotlineService()},
	}
	resolver := NewServiceResolver(routerConfig(), directory, categories, logger)

	letterGen := &fakeGenerator{response: "До КП «Львівводоканал»\n\nПрошу вжити заходів...\n\nПідпис"}
	appeals := NewAppealService(letterGen, logger)

	orchestrator := NewOrchestrator(classifier, resolver, appeals, categories, logger)

	resp, err := orchestrator.Solve(context.Background(), &dto.SolveRequest{
		UserInfo: dto.PersonalInfo{
			Name:    "Іван Франко",
			Address: "вул. Стрийська, 45",
			City:    "Львів",
		},
		ProblemText: "У дворі прорвало трубу, вода заливає підвал",
	})

	require.NoError(t, err)
	assert.Equal(t, "water_supply", resp.Classification.CategoryID)
	assert.Equal(t, "Водопостачання", resp.Classification.CategoryName)
	assert.True(t, resp.Classification.IsUrgent)
	assert.Equal(t, "Львівводоканал (аварійна)", resp.Service.ServiceName)
	assert.Equal(t, 0.95, resp.Service.Confidence)
	assert.Contains(t, resp.AppealText, "Прошу вжити заходів")
	assert.Equal(t, "Іван Франко", resp.UserInfo.Name)

	// the letter prompt carries the parsed address, not the raw string
	require.Len(t, letterGen.prompts, 1)
	assert.Contains(t, letterGen.prompts[0], "вул. Стрийська")
	assert.Contains(t, letterGen.prompts[0], "45")
	require.Len(t, letterGen.temperatures, 1)
	assert.Equal(t, letterTemperature, letterGen.temperatures[0])
}

func TestSolvePropagatesClassificationError(t *testing.T) {
	logger := zap.NewNop()
	embedder := &fakeEmbedder{} // no canned vectors, no fallback: Embed fails
	classifier := NewKNNClassifier(&config.ClassifierConfig{Type: "knn", TopK: 3}, embedder, &fakeSearcher{}, logger)
	categories := newFakeCategories()
	resolver := NewServiceResolver(routerConfig(), &fakeDirectory{}, categories, logger)
	appeals := NewAppealService(&fakeGenerator{}, logger)

	orchestrator := NewOrchestrator(classifier, resolver, appeals, categories, logger)

	_, err := orchestrator.Solve(context.Background(), &dto.SolveRequest{ProblemText: "щось"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "classification failed")
}

func TestDescribeClassificationLabelsOther(t *testing.T) {
	resp, err := DescribeClassification(context.Background(), newFakeCategories(), &Classification{
		CategoryID: models.CategoryOther,
		Confidence: 0.5,
		IsRelevant: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "Uncategorized", resp.CategoryName)
}

func TestDescribeClassificationUnknownID(t *testing.T) {
	resp, err := DescribeClassification(context.Background(), newFakeCategories(), &Classification{
		CategoryID: "ghost_category",
		Confidence: 0.9,
	})

	require.NoError(t, err)
	assert.Equal(t, "Unknown", resp.CategoryName)
	assert.Equal(t, "ghost_category", resp.CategoryID)
}
