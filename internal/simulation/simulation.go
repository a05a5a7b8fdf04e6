// simulation/simulation.go
package simulation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	practicesession "github.com/remaimber-it/quiz/internal/domain/practice_session"
	"github.com/remaimber-it/quiz/internal/domain/questionbank"
	"github.com/remaimber-it/quiz/internal/domain/randomizer"
	"github.com/remaimber-it/quiz/internal/id"
	"github.com/remaimber-it/quiz/internal/worker"
)

var ErrEmptyBank = errors.New("question bank is empty")

// Options controls a batch of simulated sessions.
type Options struct {
	Sessions     int
	Workers      int
	SkipRate     float64 // probability of leaving a question unanswered
	MaxQuestions int     // 0 = whole bank
	Seed         uint64  // 0 = nondeterministic
}

func DefaultOptions() Options {
	return Options{
		Sessions: 1000,
		Workers:  4,
		SkipRate: 0.1,
	}
}

// QuestionMisses counts how often a question ended up in the review list.
type QuestionMisses struct {
	QuestionID int
	Text       string
	Misses     int
	Unanswered int
}

type Summary struct {
	RunID       string
	Sessions    int
	MeanPercent float64
	MinPercent  float64
	MaxPercent  float64
	Misses      []QuestionMisses // most missed first
	Elapsed     time.Duration
}

type outcome struct {
	score  practicesession.ScoreResult
	review []practicesession.ReviewEntry
	err    error
}

// Runner plays random sessions against a bank. Every session owns its
// engine and random source; only the collected outcomes are shared.
type Runner struct {
	opts   Options
	logger *slog.Logger
}

func NewRunner(opts Options, logger *slog.Logger) *Runner {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Runner{
		opts:   opts,
		logger: logger,
	}
}

// Run plays the configured number of sessions. When ctx is cancelled no new
// sessions are scheduled; the summary covers those already played and the
// context error is returned with it.
func (r *Runner) Run(ctx context.Context, questions []questionbank.Question) (Summary, error) {
	if len(questions) == 0 {
		return Summary{}, ErrEmptyBank
	}

	start := time.Now()
	summary := Summary{RunID: id.GenerateID()}

	pool := worker.NewPool[outcome](r.opts.Workers, r.opts.Workers*2)

	go func() {
		defer pool.Close()
		for i := 0; i < r.opts.Sessions; i++ {
			if ctx.Err() != nil {
				return
			}
			n := i
			pool.Submit(strconv.Itoa(n), func() outcome {
				return r.play(questions, n)
			})
		}
	}()

	byID := make(map[int]*QuestionMisses)
	total := 0.0
	summary.MinPercent = math.Inf(1)
	summary.MaxPercent = math.Inf(-1)

	for res := range pool.Results() {
		out := res.Output
		if out.err != nil {
			r.logger.Error("simulated session failed", "session", res.JobID, "error", out.err)
			continue
		}

		pct := out.score.Percent()
		summary.Sessions++
		total += pct
		summary.MinPercent = math.Min(summary.MinPercent, pct)
		summary.MaxPercent = math.Max(summary.MaxPercent, pct)

		for _, entry := range out.review {
			m, ok := byID[entry.QuestionNumber]
			if !ok {
				m = &QuestionMisses{QuestionID: entry.QuestionNumber, Text: entry.QuestionText}
				byID[entry.QuestionNumber] = m
			}
			m.Misses++
			if entry.SelectedText == practicesession.NoAnswer {
				m.Unanswered++
			}
		}
	}

	if summary.Sessions > 0 {
		summary.MeanPercent = total / float64(summary.Sessions)
	} else {
		summary.MinPercent, summary.MaxPercent = 0, 0
	}

	for _, m := range byID {
		summary.Misses = append(summary.Misses, *m)
	}
	sort.Slice(summary.Misses, func(i, j int) bool {
		if summary.Misses[i].Misses != summary.Misses[j].Misses {
			return summary.Misses[i].Misses > summary.Misses[j].Misses
		}
		return summary.Misses[i].QuestionID < summary.Misses[j].QuestionID
	})

	summary.Elapsed = time.Since(start)
	r.logger.Debug("simulation finished",
		"run_id", summary.RunID,
		"sessions", summary.Sessions,
		"mean_percent", summary.MeanPercent,
		"elapsed", summary.Elapsed,
	)

	return summary, ctx.Err()
}

// play runs one session answering uniformly at random.
func (r *Runner) play(questions []questionbank.Question, n int) outcome {
	src := randomizer.New()
	if r.opts.Seed != 0 {
		src = randomizer.NewSeeded(r.opts.Seed + uint64(n))
	}

	config := practicesession.DefaultConfig().WithMaxQuestions(r.opts.MaxQuestions)
	session := practicesession.New(src, config)

	for _, q := range session.Initialize(questions) {
		if len(q.Options) == 0 || src.Float64() < r.opts.SkipRate {
			continue
		}
		key := q.Options[src.IntN(len(q.Options))].Key
		if err := session.SelectAnswer(q.ID, key); err != nil {
			return outcome{err: fmt.Errorf("select answer: %w", err)}
		}
	}

	score, review, err := session.Submit()
	return outcome{score: score, review: review, err: err}
}

// Report writes a human-readable summary. At most top questions are listed.
func (s Summary) Report(w io.Writer, top int) {
	fmt.Fprintf(w, "Simulated sessions: %s (%s)\n", humanize.Comma(int64(s.Sessions)), s.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "Mean score: %s%%\n", humanize.FormatFloat("#,###.##", s.MeanPercent))
	fmt.Fprintf(w, "Range: %.2f%% - %.2f%%\n", s.MinPercent, s.MaxPercent)

	if len(s.Misses) == 0 || top <= 0 {
		return
	}

	fmt.Fprintln(w, "Most missed questions:")
	for i, m := range s.Misses {
		if i == top {
			break
		}
		fmt.Fprintf(w, "  %s. [%d] %s: missed %s times (%s unanswered)\n",
			humanize.Ordinal(i+1), m.QuestionID, m.Text,
			humanize.Comma(int64(m.Misses)), humanize.Comma(int64(m.Unanswered)),
		)
	}
}
