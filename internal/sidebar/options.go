package sidebar

import "golang.org/x/text/unicode/norm"

// DefaultCollapsed is applied to categories that do not specify collapsed.
const DefaultCollapsed = true

type options struct {
	defaultCollapsed bool
	normalizeLabels  bool
}

// Option tunes Build, Decode and Validate.
type Option func(*options)

// WithDefaultCollapsed sets the collapse state of categories that omit it.
func WithDefaultCollapsed(collapsed bool) Option {
	return func(o *options) { o.defaultCollapsed = collapsed }
}

// WithLabelNormalization toggles Unicode NFC normalization when comparing
// sibling labels. Enabled by default; labels themselves are never rewritten.
func WithLabelNormalization(enabled bool) Option {
	return func(o *options) { o.normalizeLabels = enabled }
}

func defaultOptions() options {
	return options{defaultCollapsed: DefaultCollapsed, normalizeLabels: true}
}

func newOptions(o options, opts []Option) options {
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

func (o options) labelKey(label string) string {
	if o.normalizeLabels {
		return norm.NFC.String(label)
	}
	return label
}
