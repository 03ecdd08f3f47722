package featsel

import (
	"io"
	"log/slog"
	"math/rand/v2"
)

type Option func(*AddDel)

// WithMaximize sets whether higher scores are better. The default is true.
func WithMaximize(maximize bool) Option {
	return func(a *AddDel) {
		a.maximize = maximize
	}
}

// WithSeed seeds the source used to shuffle folds. The default is randx.DefaultSeed.
func WithSeed(seed uint64) Option {
	return func(a *AddDel) {
		a.seed = seed
		a.rng = nil
	}
}

// WithRand shuffles with rng instead of a seeded source. rng is shared by all runs.
func WithRand(rng *rand.Rand) Option {
	return func(a *AddDel) {
		a.rng = rng
	}
}

// WithShuffle shuffles samples before they are cut into folds.
func WithShuffle(shuffle bool) Option {
	return func(a *AddDel) {
		a.shuffle = shuffle
	}
}

// WithEvaluator replaces estimator-based cross-validation with a custom evaluation.
func WithEvaluator(e Evaluator) Option {
	return func(a *AddDel) {
		a.evaluator = e
	}
}

// WithObserver adds o to the observers of every pass. A nil o is ignored.
func WithObserver(o Observer) Option {
	return func(a *AddDel) {
		if o != nil {
			a.observers = append(a.observers, o)
		}
	}
}

// WithReport writes the textual progress report to w.
func WithReport(w io.Writer) Option {
	if w == nil {
		return func(*AddDel) {}
	}
	return WithObserver(&TextObserver{W: w})
}

// WithLogger logs progress events to l.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		return func(*AddDel) {}
	}
	return WithObserver(&LogObserver{Logger: l})
}
