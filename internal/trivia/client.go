// Package trivia adapts question batches from the-trivia-api.com
// into the internal question shape.
package trivia

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"quizduel-backend/api"
	"quizduel-backend/internal/config"
)

// ErrSourceUnavailable reports that the provider could not deliver a
// question batch, either a transport failure or a non-2xx response.
var ErrSourceUnavailable = errors.New("question source unavailable")

type Client struct {
	http       *http.Client
	baseURL    string
	categories string
}

func NewClient(cfg config.TriviaConf) *Client {
	return &Client{
		http:       &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		categories: cfg.Categories,
	}
}

// providerQuestion is the wire shape delivered by the provider.
type providerQuestion struct {
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correctAnswer"`
	IncorrectAnswers []string `json:"incorrectAnswers"`
}

// Fetch retrieves a batch of questions. It does not retry; retry
// policy belongs to the caller.
func (c *Client) Fetch(ctx context.Context, limit int, difficulty string) ([]api.Question, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, err
	}

	q := u.Query()
	q.Set("limit", strconv.Itoa(limit))
	if difficulty != "" {
		q.Set("difficulty", difficulty)
	}
	if c.categories != "" {
		q.Set("categories", c.categories)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrSourceUnavailable, res.StatusCode)
	}

	batch := []providerQuestion{}
	if err := json.NewDecoder(res.Body).Decode(&batch); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	questions := make([]api.Question, 0, len(batch))
	for _, pq := range batch {
		options := make([]string, 0, len(pq.IncorrectAnswers)+1)
		options = append(options, pq.IncorrectAnswers...)
		options = append(options, pq.CorrectAnswer)

		questions = append(questions, api.Question{
			Question:      pq.Question,
			Options:       options,
			CorrectAnswer: pq.CorrectAnswer,
		})
	}

	return questions, nil
}
