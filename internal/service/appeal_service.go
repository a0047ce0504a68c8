package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// letterTemperature keeps appeal wording varied while staying formal.
const letterTemperature = 0.7

const appealPromptTemplate = `Склади офіційне звернення (заяву) до комунальної служби від імені мешканця міста Львова.

Суть проблеми (у неформальному викладі мешканця):
"%s"

Адреса проблеми: вул. %s, буд. %s

Вимоги до листа:
- офіційно-діловий стиль, українська мова
- структура: шапка із зазначенням адресата, виклад проблеми, прохання вжити заходів, місце для підпису та дати
- без вигаданих фактів: використовуй тільки наведену інформацію
- якщо у тексті проблеми згадано номер квартири, включи його в адресу

Поверни тільки текст звернення, без коментарів.`

// AppealService drafts the formal appeal letter through the generative
// capability. Failures are propagated: the caller decides how to surface
// them.
type AppealService struct {
	generator TextGenerator
	logger    *zap.Logger
}

func NewAppealService(generator TextGenerator, logger *zap.Logger) *AppealService {
	return &AppealService{
		generator: generator,
		logger:    logger,
	}
}

// FormatPrompt builds the letter prompt from sanitized user input.
func (s *AppealService) FormatPrompt(problemText, street, building string) string {
	return fmt.Sprintf(appealPromptTemplate,
		SanitizePromptInput(problemText),
		strings.TrimSpace(street),
		strings.TrimSpace(building),
	)
}

func (s *AppealService) GenerateAppeal(ctx context.Context, problemText, street, building string) (string, error) {
	prompt := s.FormatPrompt(problemText, street, building)

	letter, err := s.generator.GenerateWithTemperature(ctx, prompt, letterTemperature)
	if err != nil {
		return "", fmt.Errorf("failed to generate appeal letter: %w", err)
	}

	s.logger.Info("Appeal letter generated", zap.Int("length", len(letter)))
	return strings.TrimSpace(letter), nil
}
