package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"spendwise/internal/auth"
	"spendwise/internal/config"
	"spendwise/internal/currency"
	"spendwise/internal/ledger"
	"spendwise/internal/logging"
	"spendwise/internal/models"
	"spendwise/internal/storage"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app holds the dependencies of one command invocation.
type app struct {
	db     *storage.DB
	auth   *auth.Service
	money  currency.Presenter
	log    *slog.Logger
	now    func() time.Time
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

type command struct {
	summary string
	run     func(a *app, args []string) error
}

var commands = map[string]command{
	"signup":         {"Create an account and sign in", (*app).signUp},
	"signin":         {"Sign in to an existing account", (*app).signIn},
	"signout":        {"Sign out", (*app).signOut},
	"whoami":         {"Show the signed-in user", (*app).whoAmI},
	"profile":        {"Change name or email", (*app).profile},
	"delete-account": {"Delete the signed-in account", (*app).deleteAccount},
	"categories":     {"List the categories of a kind", (*app).categories},
	"add":            {"Record an expense or income", (*app).add},
	"edit":           {"Change a recorded entry", (*app).edit},
	"delete":         {"Remove a recorded entry", (*app).remove},
	"list":           {"List entries for a period or date range", (*app).list},
	"summary":        {"Show totals and the expense breakdown", (*app).summary},
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("tracker", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(fs) }

	dbPath := fs.String("db", "", "Path to database file (default $DB_PATH or "+config.DefaultDBPath+")")
	logLevel := fs.String("log-level", "", "Log level: debug, info, warn, error (default $LOG_LEVEL or info)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		usage(fs)
		return fmt.Errorf("missing command")
	}
	name := fs.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		usage(fs)
		return fmt.Errorf("unknown command %q", name)
	}

	cfg := config.Load()
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *logLevel != "" {
		cfg.LogLevel = strings.ToLower(*logLevel)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	db, err := storage.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	logger := logging.New(stderr, cfg.LogLevel, "tracker")
	a := &app{
		db:     db,
		auth:   auth.NewService(db, logger),
		money:  cfg.Presenter(),
		log:    logger,
		now:    time.Now,
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}
	return cmd.run(a, fs.Args()[1:])
}

func usage(fs *flag.FlagSet) {
	out := fs.Output()
	fmt.Fprintln(out, "Usage: tracker [-db <db_path>] [-log-level <level>] <command> [flags]")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Commands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %-15s %s\n", name, commands[name].summary)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Global flags:")
	fs.PrintDefaults()
}

// openStore opens the record store of the signed-in user.
func (a *app) openStore() (*ledger.Store, error) {
	sess, err := a.auth.CurrentSession()
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, fmt.Errorf("%w: run 'tracker signin' first", models.ErrSignedOut)
	}
	return ledger.Open(a.db, *sess, ledger.WithClock(a.now), ledger.WithLogger(a.log))
}

func (a *app) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("tracker "+name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}
