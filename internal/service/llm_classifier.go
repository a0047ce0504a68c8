package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"misto-helper/internal/models"
	"misto-helper/pkg/config"

	"go.uber.org/zap"
)

const classifierPromptTemplate = `Ти - диспетчер комунальних служб міста Львова. Твоє завдання - класифікувати звернення мешканця за категоріями проблем.

Доступні категорії:
%s

Приклади попередніх звернень з відомими категоріями:
%s
Звернення мешканця:
"%s"

Поверни ТІЛЬКИ валідний JSON без markdown розмітки та коментарів, у форматі:
{
  "category_id": "ідентифікатор категорії зі списку вище",
  "confidence": число від 0.0 до 1.0,
  "reasoning": "коротке пояснення українською, чому обрано цю категорію",
  "is_urgent": true якщо проблема аварійна і загрожує життю, здоров'ю чи майну, інакше false,
  "is_relevant": true якщо звернення стосується комунальних проблем, інакше false
}`

// LLMClassifier is the slow, costly strategy: it asks the generative model
// to label the text, with the k nearest examples as few-shot context.
// Exactly one generative call per classification.
type LLMClassifier struct {
	cfg        *config.ClassifierConfig
	embedder   Embedder
	generator  TextGenerator
	examples   ExampleSearcher
	categories CategoryStore
	logger     *zap.Logger
}

func NewLLMClassifier(
	cfg *config.ClassifierConfig,
	embedder Embedder,
	generator TextGenerator,
	examples ExampleSearcher,
	categories CategoryStore,
	logger *zap.Logger,
) *LLMClassifier {
	return &LLMClassifier{
		cfg:        cfg,
		embedder:   embedder,
		generator:  generator,
		examples:   examples,
		categories: categories,
		logger:     logger,
	}
}

type llmVerdict struct {
	CategoryID string  `json:"category_id"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
	IsUrgent   bool    `json:"is_urgent"`
	IsRelevant bool    `json:"is_relevant"`
}

func (c *LLMClassifier) Classify(ctx context.Context, problemText string) (*Classification, error) {
	sanitized := SanitizePromptInput(problemText)

	embedding, err := c.embedder.Embed(ctx, sanitized)
	if err != nil {
		return nil, fmt.Errorf("failed to embed problem text: %w", err)
	}

	neighbors, err := c.examples.SearchNearest(ctx, embedding, c.cfg.TopK, exampleFilter(c.cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to search similar examples: %w", err)
	}

	prompt, err := c.buildFewShotPrompt(ctx, sanitized, neighbors)
	if err != nil {
		return nil, err
	}

	response, err := c.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate classification: %w", err)
	}

	verdict, err := parseVerdict(response)
	if err != nil {
		c.logger.Warn("Failed to parse LLM classification", zap.Error(err))
		return softFallback(fmt.Sprintf("[LLM] Помилка розбору відповіді моделі: %v", err)), nil
	}

	category, err := c.categories.GetByID(ctx, verdict.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate category %s: %w", verdict.CategoryID, err)
	}
	if category == nil {
		c.logger.Warn("LLM returned unknown category", zap.String("category_id", verdict.CategoryID))
		return softFallback(fmt.Sprintf("[LLM] Модель повернула невідому категорію '%s'.", verdict.CategoryID)), nil
	}

	return &Classification{
		CategoryID: verdict.CategoryID,
		Confidence: clamp01(verdict.Confidence),
		Reasoning:  "[LLM] " + verdict.Reasoning,
		IsUrgent:   verdict.IsUrgent,
		IsRelevant: verdict.IsRelevant,
	}, nil
}

func (c *LLMClassifier) buildFewShotPrompt(ctx context.Context, sanitizedText string, neighbors []models.ScoredExample) (string, error) {
	categories, err := c.categories.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list categories: %w", err)
	}

	var catalog strings.Builder
	for _, cat := range categories {
		fmt.Fprintf(&catalog, "- %s: %s - %s\n", cat.ID, cat.Name, cat.Description)
	}

	var examples strings.Builder
	for i, ex := range neighbors {
		fmt.Fprintf(&examples, "Приклад %d:\nТекст: \"%s\"\nКатегорія: %s\nТермінова: %t\n\n",
			i+1, ex.Text, ex.CategoryID, ex.IsUrgent)
	}
	if len(neighbors) == 0 {
		examples.WriteString("(схожих прикладів не знайдено)\n")
	}

	return fmt.Sprintf(classifierPromptTemplate, catalog.String(), examples.String(), sanitizedText), nil
}

// parseVerdict parses the model completion as JSON, stripping a Markdown
// code fence when present. Field presence is never trusted.
func parseVerdict(content string) (*llmVerdict, error) {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		parts := strings.SplitN(content, "```", 3)
		if len(parts) >= 2 {
			content = parts[1]
		}
		content = strings.TrimPrefix(strings.TrimSpace(content), "json")
		content = strings.TrimSpace(content)
	}

	var verdict llmVerdict
	if err := json.Unmarshal([]byte(content), &verdict); err != nil {
		return nil, fmt.Errorf("invalid JSON in completion: %w", err)
	}
	if verdict.CategoryID == "" {
		return nil, fmt.Errorf("completion is missing category_id")
	}
	return &verdict, nil
}

// softFallback is the recovery result for parse failures and unknown
// categories: never an error, always labeled in the reasoning.
func softFallback(reasoning string) *Classification {
	return &Classification{
		CategoryID: models.CategoryOther,
		Confidence: 0.5,
		Reasoning:  reasoning,
		IsUrgent:   false,
		IsRelevant: true,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
