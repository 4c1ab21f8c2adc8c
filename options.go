package matchbook

import (
	"github.com/procurelab/matchbook/pkg/errors"
	"github.com/procurelab/matchbook/pkg/extract"
	"github.com/procurelab/matchbook/pkg/reconcile"
)

// Options configures a Matcher.
type options struct {
	engineOpts []reconcile.Option
	extractor  extract.Extractor
}

func defaultOptions() *options {
	return &options{}
}

// Option is a function that configures a Matcher.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns matcher options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithExtractor sets the extractor used by MatchText.
func WithExtractor(extractor extract.Extractor) Option {
	return func(o *options) error {
		if extractor == nil {
			return &errors.ValidationError{
				Field:   "extractor",
				Message: "cannot be nil",
			}
		}
		o.extractor = extractor
		return nil
	}
}

// WithStrictIdentifiers makes the identifier check compare document numbers
// instead of always passing.
func WithStrictIdentifiers(enabled bool) Option {
	return func(o *options) error {
		o.engineOpts = append(o.engineOpts, reconcile.WithStrictIdentifiers(enabled))
		return nil
	}
}

// WithTolerance overrides the engine's amount comparison tolerance.
// Validation happens when the engine is built.
func WithTolerance(tolerance float64) Option {
	return func(o *options) error {
		o.engineOpts = append(o.engineOpts, reconcile.WithTolerance(tolerance))
		return nil
	}
}
