package provenance

import (
	"time"

	"go.uber.org/zap"

	"base-resolver/internal/match"
)

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithClock sets the time source for GeneratedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		r.builder = NewBuilder(now)
	}
}

// WithMatcher replaces the default choice-rename matcher.
func WithMatcher(m *match.Matcher) Option {
	return func(r *Resolver) {
		if m != nil {
			r.matcher = m
		}
	}
}

// WithExpander replaces the default memoizing expander.
func WithExpander(e Expander) Option {
	return func(r *Resolver) {
		r.expander = e
	}
}
