package recipe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	apperrors "github.com/socialchef/sous/internal/errors"
	"github.com/socialchef/sous/internal/language"
	"github.com/socialchef/sous/internal/logger"
	"github.com/socialchef/sous/internal/metrics"
	"github.com/socialchef/sous/internal/sentry"
	"github.com/socialchef/sous/internal/services/ai"
	"github.com/socialchef/sous/internal/services/completion"
	"github.com/socialchef/sous/internal/telemetry"
	"github.com/socialchef/sous/internal/validation"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var tracer = telemetry.Tracer("sous/recipe")

const (
	ErrCodeNotConfigured    = "MODEL_NOT_CONFIGURED"
	ErrCodeUnknownLanguage  = "UNKNOWN_LANGUAGE"
	ErrCodeNoResponse       = "NO_RESPONSE"
	ErrCodeFlowInProgress   = "FLOW_IN_PROGRESS"
	ErrCodeTranslationEmpty = "TRANSLATION_EMPTY"

	noResponseMessage = "No response received. Please try again."
)

// Request is one user trigger.
type Request struct {
	Ingredients string
	// Language is a language.Language key; empty means the default.
	Language string
}

// Result is what a successful flow hands to the presentation layer.
type Result struct {
	Recipe   string
	Language language.Language
	// Translated is false for the default language and when translation fell back.
	Translated bool
	States     []State
}

// Service runs the recipe flow against a completion backend configured at startup.
type Service struct {
	setup     completion.Setup
	configErr *apperrors.AppError
	guard     *Guard
	logger    *slog.Logger
	onState   func(State)
}

type Option func(*Service)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithStateHook registers fn to observe every state a flow enters.
func WithStateHook(fn func(State)) Option {
	return func(s *Service) { s.onState = fn }
}

// NewService takes the startup outcome of the completion backend. An unavailable setup
// is kept as a configuration error that every later trigger reports without calling out.
func NewService(setup completion.Setup, opts ...Option) *Service {
	s := &Service{
		setup:  setup,
		guard:  NewGuard(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if !setup.Available() {
		s.configErr = configurationError(setup)
	}
	return s
}

func configurationError(setup completion.Setup) *apperrors.AppError {
	name := completion.ProviderName(setup.Provider)
	err := setup.Err
	if err == nil {
		err = completion.ErrNotConfigured
	}
	return apperrors.NewConfigurationError(
		fmt.Sprintf("%s model is not initialized. Please check your API key.", name),
		ErrCodeNotConfigured,
		err,
	)
}

// ConfigurationError returns the startup failure, or nil when the backend is usable.
func (s *Service) ConfigurationError() *apperrors.AppError {
	return s.configErr
}

// Run is Generate serialised per key: a second trigger for the same key while one is
// in flight is rejected with a conflict error and makes no backend call.
func (s *Service) Run(ctx context.Context, key string, req Request) (*Result, error) {
	release, ok := s.guard.Acquire(key)
	if !ok {
		s.record(ctx, "rejected", "in_progress", req.Language, time.Now())
		return nil, apperrors.NewConflictError(
			"A recipe is already being generated. Please wait for it to finish.",
			ErrCodeFlowInProgress,
			"Wait for the current recipe to appear before generating another.",
		)
	}
	defer release()
	return s.Generate(ctx, req)
}

// Generate validates req, generates a recipe, and translates it when a non-default
// language is selected. Generation failures fail the flow; translation failures fall
// back to the untranslated recipe. Calls are sequential and never retried.
func (s *Service) Generate(ctx context.Context, req Request) (*Result, error) {
	// A flow runs to completion once triggered, even if the caller goes away.
	ctx = context.WithoutCancel(ctx)
	start := time.Now()

	ctx, span := tracer.Start(ctx, "recipe.generate", trace.WithAttributes(
		attribute.String("recipe.language", req.Language),
		attribute.String("ai.provider", s.setup.Provider),
	))
	defer span.End()

	f := &flow{svc: s, ctx: ctx, state: StateIdle, span: span}
	f.enter(StateValidating)

	if err := validation.ValidateIngredients(req.Ingredients); err != nil {
		f.enter(StateFailed)
		s.record(ctx, "failed", "validation", req.Language, start)
		return nil, err
	}

	lang, ok := language.Lookup(req.Language)
	if !ok {
		f.enter(StateFailed)
		s.record(ctx, "failed", "validation", req.Language, start)
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("Unsupported language %q.", req.Language),
			ErrCodeUnknownLanguage,
			"Pick one of the listed languages.",
		)
	}

	if s.configErr != nil {
		f.enter(StateFailed)
		s.record(ctx, "failed", "configuration", lang.Key, start)
		return nil, s.configErr
	}

	log := s.logger.With(
		"provider", s.setup.Provider,
		"language", lang.Key,
		"ingredient_count", len(validation.SplitIngredients(req.Ingredients)),
	)

	f.enter(StateGenerating)
	text, err := s.setup.Client.Complete(ctx, ai.BuildRecipePrompt(req.Ingredients))
	if err == nil && strings.TrimSpace(text) == "" {
		err = errors.New("empty completion")
	}
	if err != nil {
		f.enter(StateFailed)
		span.RecordError(err)
		span.SetStatus(codes.Error, "recipe generation failed")
		classified := completion.ClassifyError(err, s.setup.Provider)
		log.ErrorContext(ctx, "Recipe generation failed",
			"error", err.Error(),
			"error_type", classified.Type,
			logger.WithTraceContext(ctx))
		sentry.CaptureError(ctx, err, map[string]string{
			"stage":      string(StateGenerating),
			"provider":   s.setup.Provider,
			"error_type": classified.Type,
		})
		s.record(ctx, "failed", "generation", lang.Key, start)
		return nil, apperrors.NewRecipeGenerationError(noResponseMessage, ErrCodeNoResponse, err)
	}
	recipe := strings.TrimSpace(text)

	result := &Result{Recipe: recipe, Language: lang}

	if lang.NeedsTranslation() {
		f.enter(StateTranslating)
		translated, terr := s.translate(ctx, recipe, lang)
		if terr != nil {
			log.WarnContext(ctx, "Translation failed, returning untranslated recipe",
				"error", terr.Error(),
				logger.WithTraceContext(ctx))
			metrics.TranslationFallbackTotal.Add(ctx, 1, metric.WithAttributes(
				attribute.String("language", lang.Key),
				attribute.String("provider", s.setup.Provider),
			))
		} else {
			result.Recipe = translated
			result.Translated = true
		}
	}

	f.enter(StateDone)
	span.SetAttributes(attribute.Bool("recipe.translated", result.Translated))
	result.States = f.history
	s.record(ctx, "done", "", lang.Key, start)
	log.InfoContext(ctx, "Recipe generated",
		"translated", result.Translated,
		"duration_ms", time.Since(start).Milliseconds(),
		logger.WithTraceContext(ctx))
	return result, nil
}

// translate returns an error for a failed call or an empty reply.
func (s *Service) translate(ctx context.Context, recipe string, lang language.Language) (string, error) {
	ctx, span := tracer.Start(ctx, "recipe.translate", trace.WithAttributes(
		attribute.String("recipe.language", lang.Key),
	))
	defer span.End()

	text, err := s.setup.Client.Complete(ctx, ai.BuildTranslationPrompt(recipe, lang.Label))
	if err != nil {
		span.RecordError(err)
		return "", apperrors.NewTranslationError("translation call failed", "TRANSLATION_FAILED", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", apperrors.NewTranslationError("translation returned no text", ErrCodeTranslationEmpty, nil)
	}
	return text, nil
}

func (s *Service) record(ctx context.Context, outcome, reason, lang string, start time.Time) {
	attrs := metric.WithAttributes(
		attribute.String("outcome", outcome),
		attribute.String("reason", reason),
		attribute.String("language", lang),
	)
	metrics.RecipeGenerationsTotal.Add(ctx, 1, attrs)
	metrics.RecipeGenerationDuration.Record(ctx, time.Since(start).Seconds(), attrs)
}

// flow tracks the states of one Generate call.
type flow struct {
	svc     *Service
	ctx     context.Context
	span    trace.Span
	state   State
	history []State
}

func (f *flow) enter(next State) {
	if !CanTransition(f.state, next) {
		// Programming error; the flow continues.
		f.svc.logger.ErrorContext(f.ctx, "Invalid recipe flow transition", "from", f.state, "to", next)
	}
	f.svc.logger.DebugContext(f.ctx, "Recipe flow transition", "from", f.state, "to", next)
	f.span.AddEvent("recipe.state", trace.WithAttributes(attribute.String("state", string(next))))
	f.state = next
	f.history = append(f.history, next)
	if f.svc.onState != nil {
		f.svc.onState(next)
	}
}
