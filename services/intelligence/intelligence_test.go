package intelligence

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type stubGenerator struct {
	out    string
	err    error
	prompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.out, s.err
}

func TestSuggestFallback(t *testing.T) {
	svc := &DefaultAutocompleteService{}
	got, err := svc.Suggest(context.Background(), "  Review blood work ")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if got != "Review blood work for a follow-up consultation" {
		t.Errorf("got %q", got)
	}

	got, err = svc.Suggest(context.Background(), "   ")
	if err != nil || got != "" {
		t.Errorf("empty input = %q, %v", got, err)
	}
}

func TestSuggestWithGenerator(t *testing.T) {
	gen := &stubGenerator{out: "\n Review blood work in two weeks. \n"}
	svc := &DefaultAutocompleteService{Generator: gen}

	got, err := svc.Suggest(context.Background(), "Review blood work")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if got != "Review blood work in two weeks." {
		t.Errorf("got %q", got)
	}
	if !strings.HasSuffix(gen.prompt, "Review blood work") {
		t.Errorf("prompt does not end with the input: %q", gen.prompt)
	}

	gen.err = errors.New("quota exceeded")
	if _, err := svc.Suggest(context.Background(), "Review"); !errors.Is(err, ErrAutocompleteFailed) {
		t.Errorf("err = %v, want ErrAutocompleteFailed", err)
	}
}
