package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/remaimber-it/quiz/internal/infrastructure/config"
)

const usage = `Usage: quiz <command> [flags]

Commands:
  run       take a quiz (default)
  import    load a JSON bank into the bank library
  list      list banks in the library
  export    write a library bank as JSON to stdout
  delete    remove a bank from the library
  check     lint a JSON bank
  simulate  play random sessions against a bank
  hash      print a bcrypt hash for QUIZ_PASSPHRASE_HASH
`

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := &app{
		cfg:    cfg,
		logger: logger,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	os.Exit(app.dispatch(ctx, os.Args[1:]))
}

type app struct {
	cfg    *config.Config
	logger *slog.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func (a *app) dispatch(ctx context.Context, args []string) int {
	name := "run"
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		name, args = args[0], args[1:]
	}

	var err error
	switch name {
	case "run":
		err = a.runQuiz(ctx, args)
	case "import":
		err = a.importBank(ctx, args)
	case "list":
		err = a.listBanks(ctx, args)
	case "export":
		err = a.exportBank(ctx, args)
	case "delete":
		err = a.deleteBank(ctx, args)
	case "check":
		err = a.checkBank(args)
	case "simulate":
		err = a.simulate(ctx, args)
	case "hash":
		err = a.hashPassphrase(args)
	case "help", "-h", "--help":
		fmt.Fprint(a.stdout, usage)
		return 0
	default:
		fmt.Fprintf(a.stderr, "unknown command %q\n\n%s", name, usage)
		return 2
	}

	if err != nil {
		a.logger.Debug("command failed", "command", name, "error", err)
		fmt.Fprintf(a.stderr, "quiz %s: %v\n", name, err)
		return 1
	}
	return 0
}
