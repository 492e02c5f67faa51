package narrate

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"github.com/YuminosukeSato/heartrisk/boosting"
	"github.com/YuminosukeSato/heartrisk/pkg/errors"
	"github.com/YuminosukeSato/heartrisk/pkg/log"
)

// Explanation sources.
const (
	SourceRemote = "remote"
	SourceLocal  = "local"
)

var (
	// ErrEmptyResponse is recorded when the provider answers with blank text.
	ErrEmptyResponse = errors.New("narrate: provider returned an empty response")
	// ErrCircuitOpen is recorded while the breaker rejects remote calls.
	ErrCircuitOpen = errors.New("narrate: circuit breaker is open")
	// ErrNoProvider is recorded when the narrator has no remote provider.
	ErrNoProvider = errors.New("narrate: no remote provider configured")
)

// Explanation is the text shown next to a risk result.
type Explanation struct {
	Text string
	// Source is SourceRemote or SourceLocal.
	Source string
	// RequestID correlates the explanation with its log lines.
	RequestID string
	// Fallback is the reason the local template was used, nil for remote text.
	Fallback error
}

// Narrator explains results through a Provider, falling back to
// LocalExplanation. It is safe for concurrent use.
type Narrator struct {
	provider Provider
	cfg      Config
	breaker  *gobreaker.CircuitBreaker
	logger   log.Logger
}

// Option configures a Narrator.
type Option func(*Narrator)

// WithLogger sets the narrator's logger.
func WithLogger(l log.Logger) Option {
	return func(n *Narrator) {
		n.logger = l
	}
}

// New returns a Narrator around p. A nil p always yields local explanations.
// Zero timeout, token and breaker settings in cfg take their defaults.
func New(p Provider, cfg Config, opts ...Option) *Narrator {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = DefaultBreakerFailures
	}
	if cfg.BreakerCooldown <= 0 {
		cfg.BreakerCooldown = DefaultBreakerCooldown
	}

	n := &Narrator{provider: p, cfg: cfg}
	for _, opt := range opts {
		opt(n)
	}
	if n.logger == nil {
		n.logger = log.GetLoggerWithName("narrate")
	}

	name := ProviderLocal
	if p != nil {
		name = p.Name()
	}
	failures := cfg.BreakerFailures
	n.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "narrate-" + name,
		MaxRequests: 1,
		Timeout:     cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			n.logger.Warn("Circuit breaker state changed",
				log.BreakerNameKey, name,
				log.BreakerFromKey, from.String(),
				log.BreakerStateKey, to.String(),
			)
		},
	})
	return n
}

// Config returns the effective configuration.
func (n *Narrator) Config() Config {
	return n.cfg
}

// BreakerState reports the circuit breaker state, e.g. "closed" or "open".
func (n *Narrator) BreakerState() string {
	return n.breaker.State().String()
}

// Explain never fails. It returns the provider's text when the call
// succeeds within the timeout with a non-blank answer; otherwise it logs the
// reason at warn level and returns LocalExplanation.
func (n *Narrator) Explain(ctx context.Context, res boosting.Result) Explanation {
	id := uuid.NewString()
	logger := n.logger.With(log.OperationKey, log.OperationNarrate, log.RequestIDKey, id)

	text, err := n.remote(ctx, res)
	if err == nil {
		logger.Info("Explanation generated",
			log.ProviderKey, n.provider.Name(),
			log.SourceKey, SourceRemote,
			log.TierKey, res.Tier.String(),
		)
		return Explanation{Text: text, Source: SourceRemote, RequestID: id}
	}

	if !errors.Is(err, ErrNoProvider) {
		logger.Warn("Remote explanation failed, using local template", err,
			log.ProviderKey, n.provider.Name(),
			log.BreakerStateKey, n.BreakerState(),
		)
	}
	return Explanation{
		Text:      LocalExplanation(res, n.cfg.Language),
		Source:    SourceLocal,
		RequestID: id,
		Fallback:  err,
	}
}

func (n *Narrator) remote(ctx context.Context, res boosting.Result) (string, error) {
	if n.provider == nil {
		return "", ErrNoProvider
	}

	req := Request{
		Prompt:      BuildPrompt(res, n.cfg.Language),
		Model:       n.cfg.Model,
		Temperature: n.cfg.Temperature,
		MaxTokens:   n.cfg.MaxTokens,
	}

	out, err := n.breaker.Execute(func() (interface{}, error) {
		return errors.SafeCall("narrate.generate", func() (string, error) {
			return n.generate(ctx, req)
		})
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", ErrCircuitOpen
		}
		return "", err
	}
	return out.(string), nil
}

func (n *Narrator) generate(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, n.cfg.Timeout)
	defer cancel()

	start := time.Now()
	text, err := n.provider.Generate(ctx, req)
	if err != nil {
		return "", errors.Wrapf(err, "%s generate after %s", n.provider.Name(), time.Since(start).Round(time.Millisecond))
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
