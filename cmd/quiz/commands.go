package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/remaimber-it/quiz/internal/access"
	"github.com/remaimber-it/quiz/internal/console"
	practicesession "github.com/remaimber-it/quiz/internal/domain/practice_session"
	"github.com/remaimber-it/quiz/internal/domain/questionbank"
	"github.com/remaimber-it/quiz/internal/domain/randomizer"
	"github.com/remaimber-it/quiz/internal/simulation"
	"github.com/remaimber-it/quiz/internal/store"
)

// bankFlags selects a bank either from a JSON file or from the library.
type bankFlags struct {
	file string
	db   string
	name string
}

func (a *app) registerBankFlags(fs *flag.FlagSet) *bankFlags {
	b := &bankFlags{}
	fs.StringVar(&b.file, "bank", a.cfg.BankPath, "Path to a JSON question bank")
	fs.StringVar(&b.db, "db", a.cfg.DBPath, "Path to the SQLite bank library")
	fs.StringVar(&b.name, "name", "", "Name of a bank in the library (takes precedence over -bank)")
	return b
}

func (a *app) loadBank(ctx context.Context, b *bankFlags) (*questionbank.QuestionBank, error) {
	if b.name != "" {
		db, err := store.NewSQLite(b.db)
		if err != nil {
			return nil, fmt.Errorf("open bank library: %w", err)
		}
		defer db.Close()

		bank, err := db.GetBank(ctx, b.name)
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("bank %q not found in %s", b.name, b.db)
		}
		return bank, err
	}

	if b.file == "" {
		return nil, errors.New("no question bank: use -bank, -name or QUIZ_BANK_PATH")
	}
	return questionbank.LoadFile(b.file)
}

func (a *app) runQuiz(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	bankSel := a.registerBankFlags(fs)
	limit := fs.Int("limit", 0, "Maximum number of questions (0 = all)")
	seed := fs.Uint64("seed", 0, "Seed for a reproducible question order (0 = random)")
	keepOptions := fs.Bool("keep-options", false, "Keep the bank's option order")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c := console.New(a.stdin, a.stdout, a.logger)

	gate := access.NewGate(a.cfg.Passphrase, a.cfg.PassphraseHash)
	if gate.Open() {
		a.logger.Warn("no passphrase configured, access gate is open")
	}
	if err := c.Authorize(gate, 3); err != nil {
		return err
	}

	bank, err := a.loadBank(ctx, bankSel)
	if err != nil {
		return err
	}

	var src randomizer.Source
	if *seed != 0 {
		src = randomizer.NewSeeded(*seed)
	}

	sessionCfg := practicesession.DefaultConfig().WithMaxQuestions(*limit)
	sessionCfg.ShuffleOptions = !*keepOptions

	session := practicesession.New(src, sessionCfg)
	session.Initialize(bank.Questions)
	a.logger.Info("session started",
		"session_id", session.ID,
		"bank", bank.Name,
		"questions", len(session.Questions()),
	)

	if err := c.Run(session); err != nil {
		if errors.Is(err, console.ErrAborted) {
			fmt.Fprintln(a.stdout, "\nQuiz not submitted.")
			return nil
		}
		return err
	}
	return nil
}

func (a *app) importBank(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	dbPath := fs.String("db", a.cfg.DBPath, "Path to the SQLite bank library")
	name := fs.String("name", "", "Bank name (defaults to the file name)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: quiz import [-db path] [-name bank] file.json")
	}

	bank, err := questionbank.LoadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	if *name != "" {
		bank.Name = *name
	}

	for _, p := range questionbank.Validate(bank.Questions) {
		a.logger.Warn("bank problem", "bank", bank.Name, "problem", p.String())
	}

	db, err := store.NewSQLite(*dbPath)
	if err != nil {
		return fmt.Errorf("open bank library: %w", err)
	}
	defer db.Close()

	if err := db.SaveBank(ctx, bank); err != nil {
		return fmt.Errorf("save bank %q: %w", bank.Name, err)
	}

	fmt.Fprintf(a.stdout, "Imported %s questions into %q\n", humanize.Comma(int64(bank.Len())), bank.Name)
	return nil
}

func (a *app) listBanks(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	dbPath := fs.String("db", a.cfg.DBPath, "Path to the SQLite bank library")
	if err := fs.Parse(args); err != nil {
		return err
	}

	db, err := store.NewSQLite(*dbPath)
	if err != nil {
		return fmt.Errorf("open bank library: %w", err)
	}
	defer db.Close()

	banks, err := db.ListBanks(ctx)
	if err != nil {
		return err
	}
	if len(banks) == 0 {
		fmt.Fprintln(a.stdout, "No banks imported yet.")
		return nil
	}

	for _, b := range banks {
		fmt.Fprintf(a.stdout, "%-24s %6s questions  imported %s\n",
			b.Name, humanize.Comma(int64(b.Questions)), humanize.RelTime(b.ImportedAt, time.Now(), "ago", "from now"))
	}
	return nil
}

func (a *app) deleteBank(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	dbPath := fs.String("db", a.cfg.DBPath, "Path to the SQLite bank library")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: quiz delete [-db path] bank")
	}

	db, err := store.NewSQLite(*dbPath)
	if err != nil {
		return fmt.Errorf("open bank library: %w", err)
	}
	defer db.Close()

	if err := db.DeleteBank(ctx, fs.Arg(0)); err != nil {
		return fmt.Errorf("delete bank %q: %w", fs.Arg(0), err)
	}
	fmt.Fprintf(a.stdout, "Deleted %q\n", fs.Arg(0))
	return nil
}

func (a *app) exportBank(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	dbPath := fs.String("db", a.cfg.DBPath, "Path to the SQLite bank library")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: quiz export [-db path] bank > file.json")
	}

	bank, err := a.loadBank(ctx, &bankFlags{db: *dbPath, name: fs.Arg(0)})
	if err != nil {
		return err
	}
	return questionbank.Write(a.stdout, bank.Questions)
}

func (a *app) checkBank(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: quiz check file.json")
	}

	bank, err := questionbank.LoadFile(fs.Arg(0))
	if err != nil {
		return err
	}

	problems := questionbank.Validate(bank.Questions)
	for _, p := range problems {
		fmt.Fprintln(a.stdout, p)
	}
	if len(problems) > 0 {
		return fmt.Errorf("%d problem(s) in %d questions", len(problems), bank.Len())
	}

	fmt.Fprintf(a.stdout, "%s: %d questions, no problems\n", bank.Name, bank.Len())
	return nil
}

func (a *app) simulate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	bankSel := a.registerBankFlags(fs)
	defaults := simulation.DefaultOptions()
	sessions := fs.Int("n", defaults.Sessions, "Number of sessions to play")
	workers := fs.Int("workers", a.cfg.Workers, "Number of concurrent workers")
	skip := fs.Float64("skip", defaults.SkipRate, "Probability of leaving a question unanswered")
	limit := fs.Int("limit", 0, "Maximum number of questions per session (0 = all)")
	seed := fs.Uint64("seed", 0, "Base seed (0 = random)")
	top := fs.Int("top", 10, "Number of most missed questions to list")
	if err := fs.Parse(args); err != nil {
		return err
	}

	bank, err := a.loadBank(ctx, bankSel)
	if err != nil {
		return err
	}

	runner := simulation.NewRunner(simulation.Options{
		Sessions:     *sessions,
		Workers:      *workers,
		SkipRate:     *skip,
		MaxQuestions: *limit,
		Seed:         *seed,
	}, a.logger)

	summary, err := runner.Run(ctx, bank.Questions)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	summary.Report(a.stdout, *top)
	return nil
}

func (a *app) hashPassphrase(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: quiz hash passphrase")
	}

	hash, err := access.HashPassphrase(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, hash)
	return nil
}
