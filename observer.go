package featsel

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

type Pass int

const (
	Forward Pass = iota
	Backward
)

func (p Pass) String() string {
	switch p {
	case Forward:
		return "add"
	case Backward:
		return "del"
	default:
		return fmt.Sprintf("Pass(%d)", int(p))
	}
}

type EventKind int

const (
	// PassStarted opens a pass.
	PassStarted EventKind = iota
	// Baseline carries the score of the full incoming set of the del pass.
	Baseline
	// FeatureScored carries the score after adding (add pass) or removing (del pass) Feature.
	FeatureScored
	// PassBest carries the best score of the pass trace.
	PassBest
	// ScorerWarning reports a failed scorer sanity check. It never stops a run.
	ScorerWarning
)

type Event struct {
	Kind     EventKind
	Pass     Pass
	Feature  int
	Score    float64
	Maximize bool
	Err      error
}

// Observer receives progress events. It cannot influence the result of a run.
type Observer interface {
	Observe(Event)
}

type ObserverFunc func(Event)

func (f ObserverFunc) Observe(e Event) { f(e) }

// TextObserver writes one line per event:
//
//	add trial
//	feature 0 (score: 0.5)
//	max score: 0.5
//	del trial
//	score: 0.5
//	remove feature 0 (score: 0.25)
//	score: 0.5
type TextObserver struct {
	W io.Writer
}

func (o *TextObserver) Observe(e Event) {
	switch e.Kind {
	case PassStarted:
		fmt.Fprintf(o.W, "%s trial\n", e.Pass)
	case Baseline:
		fmt.Fprintf(o.W, "score: %v\n", e.Score)
	case FeatureScored:
		if e.Pass == Forward {
			fmt.Fprintf(o.W, "feature %d (score: %v)\n", e.Feature, e.Score)
		} else {
			fmt.Fprintf(o.W, "remove feature %d (score: %v)\n", e.Feature, e.Score)
		}
	case PassBest:
		switch {
		case e.Pass == Backward:
			fmt.Fprintf(o.W, "score: %v\n", e.Score)
		case e.Maximize:
			fmt.Fprintf(o.W, "max score: %v\n", e.Score)
		default:
			fmt.Fprintf(o.W, "min score: %v\n", e.Score)
		}
	case ScorerWarning:
		fmt.Fprintf(o.W, "scorer check: %v\n", e.Err)
	}
}

// LogObserver emits per-feature events at debug level and pass results at info level.
type LogObserver struct {
	Logger *slog.Logger
}

func (o *LogObserver) Observe(e Event) {
	ctx := context.Background()
	pass := slog.String("pass", e.Pass.String())
	switch e.Kind {
	case PassStarted:
		o.Logger.LogAttrs(ctx, slog.LevelDebug, "pass started", pass)
	case Baseline:
		o.Logger.LogAttrs(ctx, slog.LevelDebug, "baseline scored", pass, slog.Float64("score", e.Score))
	case FeatureScored:
		o.Logger.LogAttrs(ctx, slog.LevelDebug, "feature scored", pass,
			slog.Int("feature", e.Feature), slog.Float64("score", e.Score))
	case PassBest:
		o.Logger.LogAttrs(ctx, slog.LevelInfo, "pass finished", pass,
			slog.Float64("best", e.Score), slog.Bool("maximize", e.Maximize))
	case ScorerWarning:
		o.Logger.LogAttrs(ctx, slog.LevelWarn, "scorer check failed", slog.Any("err", e.Err))
	}
}
