package intelligence

import (
	"context"
	"net/http"
	"strings"

	"amedick/utils"

	"go.uber.org/zap"
)

var ErrAutocompleteFailed = utils.NewAppError(http.StatusInternalServerError, "autocomplete_failed", "Autocomplete failed")

type AutocompleteService interface {
	Suggest(ctx context.Context, text string) (string, error)
}

// Generator produces a raw completion for a prompt.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// DefaultAutocompleteService completes short clinical notes. With no Generator it
// answers with a fixed suffix so the endpoint stays usable without an API key.
type DefaultAutocompleteService struct {
	Generator Generator
	Cache     *RedisSuggestionCache
}

func (s *DefaultAutocompleteService) Suggest(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}
	if s.Generator == nil {
		return text + " for a follow-up consultation", nil
	}

	if cached, ok := s.Cache.Get(ctx, text); ok {
		return cached, nil
	}

	out, err := s.Generator.GenerateContent(ctx, prompt(text))
	if err != nil {
		utils.GetLogger().Error("Autocomplete generation failed", zap.Error(err))
		return "", ErrAutocompleteFailed
	}
	suggestion := strings.TrimSpace(out)
	s.Cache.Set(ctx, text, suggestion)
	return suggestion, nil
}

func prompt(text string) string {
	return "Continue the following note written by a doctor for a patient appointment. " +
		"Reply with the completed sentence only, no quotes or explanations.\n\n" + text
}
