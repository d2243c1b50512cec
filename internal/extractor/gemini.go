package extractor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"fjacquet/statement-insights/internal/logging"
	"fjacquet/statement-insights/internal/parsererror"

	"github.com/avast/retry-go"
	"github.com/google/generative-ai-go/genai"
	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Defaults applied when Config leaves a field zero.
const (
	DefaultModel             = "gemini-2.0-flash"
	DefaultRequestsPerMinute = 10
	DefaultTimeout           = 60 * time.Second
	DefaultMaxRetries        = 3
	defaultRetryDelay        = 2 * time.Second
)

// Generator is the part of *genai.GenerativeModel the client depends on.
type Generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Config holds the settings for GeminiClient.
type Config struct {
	APIKey            string
	Model             string
	RequestsPerMinute int
	Timeout           time.Duration
	MaxRetries        int
	RetryDelay        time.Duration
	Categories        []string
}

func (c Config) withDefaults() Config {
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.RequestsPerMinute <= 0 {
		c.RequestsPerMinute = DefaultRequestsPerMinute
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = defaultRetryDelay
	}
	return c
}

// GeminiClient implements Client using the Google Gemini API.
type GeminiClient struct {
	client    *genai.Client
	generator Generator
	limiter   *rate.Limiter
	config    Config
	prompt    string
	logger    logging.Logger
}

// NewGeminiClient connects to Gemini with the configured API key and prepares
// a model constrained to the transaction response schema.
func NewGeminiClient(ctx context.Context, cfg Config, logger logging.Logger) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}
	cfg = cfg.withDefaults()

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.ResponseMIMEType = jsonMIMEType
	model.ResponseSchema = ResponseSchema(cfg.Categories)
	model.SetTemperature(0)

	c := NewGeminiClientWithGenerator(model, cfg, logger)
	c.client = client
	return c, nil
}

// NewGeminiClientWithGenerator builds a client around an existing generator.
func NewGeminiClientWithGenerator(gen Generator, cfg Config, logger logging.Logger) *GeminiClient {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	every := time.Minute / time.Duration(cfg.RequestsPerMinute)
	return &GeminiClient{
		generator: gen,
		limiter:   rate.NewLimiter(rate.Every(every), 1),
		config:    cfg,
		prompt:    BuildPrompt(cfg.Categories),
		logger:    logger,
	}
}

// Close releases the underlying connection.
func (c *GeminiClient) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Extract sends the PDF inline with the extraction prompt and decodes the
// JSON array the model returns. Transient API failures are retried.
func (c *GeminiClient) Extract(ctx context.Context, pdf []byte) ([]RawRecord, error) {
	log := c.logger.WithFields(
		logging.Field{Key: logging.FieldOperation, Value: "gemini_extract"},
		logging.Field{Key: logging.FieldModel, Value: c.config.Model},
	)

	var text string
	err := retry.Do(
		func() error {
			if err := c.limiter.Wait(ctx); err != nil {
				return err
			}

			callCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
			defer cancel()

			resp, err := c.generator.GenerateContent(callCtx,
				genai.Blob{MIMEType: pdfMIMEType, Data: pdf},
				genai.Text(c.prompt),
			)
			if err != nil {
				return err
			}
			text, err = responseText(resp)
			return err
		},
		retry.Context(ctx),
		retry.RetryIf(func(err error) bool {
			return ctx.Err() == nil && isTransient(err)
		}),
		retry.OnRetry(func(n uint, err error) {
			log.WithError(err).Warn("Retrying extraction request",
				logging.Field{Key: logging.FieldAttempt, Value: n + 1})
		}),
		retry.Attempts(uint(c.config.MaxRetries)),
		retry.Delay(c.config.RetryDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, &parsererror.ExtractionError{Reason: "generate content", Err: err}
	}

	records, err := DecodeRecords(text)
	if err != nil {
		return nil, &parsererror.ExtractionError{Reason: "decode response", Err: err}
	}

	log.Debug("Model returned records", logging.Field{Key: logging.FieldCount, Value: len(records)})
	return records, nil
}

// httpCoder is implemented by the API error types of the Google client libraries.
type httpCoder interface {
	HTTPCode() int
}

func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return retryableStatus(gErr.Code)
	}
	var coder httpCoder
	if errors.As(err, &coder) {
		return retryableStatus(coder.HTTPCode())
	}
	return false
}

func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}
