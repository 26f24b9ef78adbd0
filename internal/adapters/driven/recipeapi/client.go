// Package recipeapi provides the remote recipe catalog adapter.
// It speaks the service's JSON contract over HTTP and maps its
// localized field names to domain recipes.
package recipeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/recetasu/internal/core/domain"
	"github.com/custodia-labs/recetasu/internal/core/ports/driven"
	"github.com/custodia-labs/recetasu/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.RecipeRemote = (*Client)(nil)

// Default configuration values.
const (
	DefaultTimeout           = 15 * time.Second
	DefaultRequestsPerSecond = 5.0
	DefaultBurst             = 5
	DefaultVersion           = "dev"

	maxResponseBody = 4 << 20
	maxErrorBody    = 200
)

// Config holds configuration for the recipe API client.
type Config struct {
	// BaseURL is the service root (required). Recipes live under /recipes.
	BaseURL string

	// Timeout is the per-request timeout (default: 15s).
	// Ignored when HTTPClient is set.
	Timeout time.Duration

	// RequestsPerSecond throttles outgoing requests (default: 5).
	RequestsPerSecond float64

	// Version is reported in the User-Agent header (default: dev).
	Version string

	// HTTPClient overrides the default client. Useful for testing.
	HTTPClient *http.Client
}

// Client talks to the remote recipe service.
// It never retries; a failed call is reported to the caller as is.
type Client struct {
	http      *http.Client
	baseURL   string
	userAgent string
	limiter   *rate.Limiter
}

// NewClient creates a new recipe API client.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("recipeapi: invalid base URL %q: %w", cfg.BaseURL, domain.ErrInvalidInput)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if cfg.Version == "" {
		cfg.Version = DefaultVersion
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		http:      httpClient,
		baseURL:   base,
		userAgent: "recetasu/" + cfg.Version,
		limiter:   rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), DefaultBurst),
	}, nil
}

// BaseURL returns the service root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List fetches every recipe.
// Elements without a resolvable identifier are skipped.
func (c *Client) List(ctx context.Context) ([]domain.Recipe, error) {
	const op = "list recipes"
	body, _, err := c.do(ctx, op, http.MethodGet, c.recipesURL(), nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var items []json.RawMessage
	if err := json.Unmarshal(unwrapEnvelope(body), &items); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", op, err)
	}

	recipes := make([]domain.Recipe, 0, len(items))
	for i, raw := range items {
		r, err := decodeRecipeOnto(domain.Recipe{}, raw)
		if err != nil {
			return nil, fmt.Errorf("%s: item %d: %w", op, i, err)
		}
		if !r.IsPersisted() {
			logger.Warn("%s: skipping item %d without identifier", op, i)
			continue
		}
		recipes = append(recipes, r)
	}
	return recipes, nil
}

// Create posts a new recipe and returns it with the remote's identifier.
// Fields the response omits are taken from the draft.
func (c *Client) Create(ctx context.Context, draft domain.RecipeDraft) (domain.Recipe, error) {
	const op = "create recipe"
	body, status, err := c.do(ctx, op, http.MethodPost, c.recipesURL(), encodeDraft(draft), http.StatusOK, http.StatusCreated)
	if err != nil {
		return domain.Recipe{}, err
	}

	raw, err := firstElement(body)
	if errors.Is(err, errNoIdentifier) {
		return domain.Recipe{}, &domain.APIError{Op: op, StatusCode: status, Message: errNoIdentifier.Error()}
	}
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := decodeRecipeOnto(draft.WithID(0), raw)
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("%s: %w", op, err)
	}
	if !created.IsPersisted() {
		return domain.Recipe{}, &domain.APIError{Op: op, StatusCode: status, Message: errNoIdentifier.Error()}
	}
	return created, nil
}

// Update replaces a recipe. A recipe without an identifier is rejected
// before any request is made.
func (c *Client) Update(ctx context.Context, recipe domain.Recipe) (domain.Recipe, error) {
	const op = "update recipe"
	if !recipe.IsPersisted() {
		return domain.Recipe{}, &domain.ValidationError{Field: "id", Err: domain.ErrMissingIdentifier}
	}

	_, _, err := c.do(ctx, op, http.MethodPut, c.recipeURL(recipe.ID), encodeDraft(recipe.Draft()), http.StatusOK)
	if err != nil {
		return domain.Recipe{}, err
	}
	return recipe.Clone(), nil
}

// Delete removes a recipe by identifier.
func (c *Client) Delete(ctx context.Context, id int64) error {
	const op = "delete recipe"
	if id <= 0 {
		return &domain.ValidationError{Field: "id", Err: domain.ErrMissingIdentifier}
	}
	_, _, err := c.do(ctx, op, http.MethodDelete, c.recipeURL(id), nil, http.StatusOK, http.StatusNoContent)
	return err
}

func (c *Client) recipesURL() string {
	return c.baseURL + "/recipes"
}

func (c *Client) recipeURL(id int64) string {
	return c.recipesURL() + "/" + strconv.FormatInt(id, 10)
}

// do performs one request and returns the response body and status
// when the status is one of ok.
func (c *Client) do(ctx context.Context, op, method, target string, payload any, ok ...int) ([]byte, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	var reader io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: marshal request: %w", op, err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: create request: %w", op, err)
	}
	requestID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Debug("%s %s failed after %s [%s]: %v", method, target, time.Since(start).Round(time.Millisecond), requestID, err)
		return nil, 0, &domain.ConnectionError{Op: op, URL: target, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, 0, &domain.ConnectionError{Op: op, URL: target, Err: fmt.Errorf("read response: %w", err)}
	}
	logger.Debug("%s %s -> %d in %s [%s]", method, target, resp.StatusCode, time.Since(start).Round(time.Millisecond), requestID)

	for _, code := range ok {
		if resp.StatusCode == code {
			return body, resp.StatusCode, nil
		}
	}
	return nil, resp.StatusCode, &domain.APIError{Op: op, StatusCode: resp.StatusCode, Message: errorMessage(body)}
}
