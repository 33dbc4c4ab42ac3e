package questions

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rocketscienceinc/trivia-backend/internal/apperror"
	"github.com/rocketscienceinc/trivia-backend/internal/entity"
)

// Fetcher loads a question set from a remote URL during room init. Any
// failure on this path, network, bad status or an unusable payload, is
// reported as apperror.ErrQuestionSourceUnavailable so callers can tell
// it apart from a malformed request.
type Fetcher struct {
	client *http.Client
}

func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
	}
}

func (that *Fetcher) Fetch(ctx context.Context, url string) ([]entity.Question, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrQuestionSourceUnavailable, err)
	}

	resp, err := that.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrQuestionSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", apperror.ErrQuestionSourceUnavailable, resp.StatusCode)
	}

	var questionSet []entity.Question
	if err = json.NewDecoder(resp.Body).Decode(&questionSet); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrQuestionSourceUnavailable, err)
	}

	if err = Validate(questionSet); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrQuestionSourceUnavailable, err)
	}

	return questionSet, nil
}

// Validate checks that a question set is usable: non-empty, every question
// carrying a correct-answer marker.
func Validate(questionSet []entity.Question) error {
	if len(questionSet) == 0 {
		return apperror.ErrEmptyQuestionSet
	}

	for i, question := range questionSet {
		if question.Correct == "" {
			return fmt.Errorf("%w: question %d", apperror.ErrMissingCorrectAnswer, i)
		}
	}

	return nil
}
