package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	onboarding "github.com/reoring/onboarding"
	"github.com/reoring/onboarding/i18n"
	"github.com/reoring/onboarding/internal/config"
	"github.com/reoring/onboarding/refdata"
	"github.com/reoring/onboarding/schema"
	"github.com/reoring/onboarding/session"
	"github.com/reoring/onboarding/submission"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sub := os.Args[1]
	switch sub {
	case "run":
		runCmd(ctx, os.Args[2:])
	case "repl":
		replCmd(ctx, os.Args[2:])
	case "validate":
		validateCmd(ctx, os.Args[2:])
	case "catalog":
		catalogCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `onboard - employee onboarding form engine

Usage:
  onboard run -script session.yaml [-o submission.json]
  onboard repl
  onboard validate -record record.yaml [-step job]
  onboard catalog [-department Engineering]

Every command accepts -config onboard.yaml; settings also come from
ONBOARD_* environment variables and a .env file.`)
}

// env is the state shared by every subcommand.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	ref    *refdata.Reference
	clock  onboarding.Clock
}

func setup(configPath string) env {
	if err := config.LoadDotEnv(); err != nil {
		fatalf("%v", err)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fatalf("%v", err)
	}
	if err := cfg.Validate(); err != nil {
		fatalf("%v", err)
	}
	level, _ := cfg.Level()
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if strings.EqualFold(cfg.Log.Format, "json") {
		h = slog.NewJSONHandler(os.Stderr, opts)
	}
	logger := slog.New(h)
	slog.SetDefault(logger)

	i18n.SetLanguage(cfg.Language)

	ref := refdata.Default()
	if cfg.ReferenceData != "" {
		if ref, err = refdata.Load(cfg.ReferenceData); err != nil {
			fatalf("%v", err)
		}
		logger.Info("reference data loaded", slog.String("path", cfg.ReferenceData), slog.Int("departments", len(ref.Departments())))
	}
	loc, _ := cfg.Location()
	clock := onboarding.ClockFunc(func() time.Time { return time.Now().In(loc) })
	return env{cfg: cfg, logger: logger, ref: ref, clock: clock}
}

func (e env) runner() *session.Runner {
	return session.NewRunner(session.WithReference(e.ref), session.WithClock(e.clock), session.WithLogger(e.logger))
}

func runCmd(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	var configPath, scriptPath, out string
	var transcript bool
	fs.StringVar(&configPath, "config", "", "configuration file")
	fs.StringVar(&scriptPath, "script", "", "session script (.yaml or .json)")
	fs.StringVar(&out, "o", "", "submission output file (default: config output or stdout)")
	fs.BoolVar(&transcript, "transcript", false, "print the full transcript as JSON instead of the submission")
	_ = fs.Parse(args)
	if scriptPath == "" {
		fs.Usage()
		os.Exit(2)
	}
	e := setup(configPath)

	sc, err := session.LoadScript(scriptPath)
	if err != nil {
		fatalf("%v", err)
	}
	tr, err := e.runner().Run(ctx, sc)
	if err != nil {
		fatalf("run: %v", err)
	}
	for _, o := range tr.Failed() {
		fmt.Fprintf(os.Stderr, "action %d (%s %s) failed on %s: %s\n", o.Index, o.Op, o.Field, o.Step, failure(o))
	}
	for _, o := range tr.Outcomes {
		if o.Output != "" {
			fmt.Fprint(os.Stderr, o.Output)
		}
	}

	if transcript {
		b, err := json.MarshalIndent(tr, "", "  ")
		if err != nil {
			fatalf("encode transcript: %v", err)
		}
		fmt.Println(string(b))
	}
	if tr.Submission == nil {
		fatalf("script ended without a submission (final step: %s)", tr.Final)
	}
	if transcript {
		return
	}
	if out == "" {
		out = e.cfg.Output
	}
	if err := emit(ctx, out, *tr.Submission); err != nil {
		fatalf("%v", err)
	}
}

func replCmd(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("repl", flag.ExitOnError)
	var configPath, out string
	fs.StringVar(&configPath, "config", "", "configuration file")
	fs.StringVar(&out, "o", "", "also write the submission to this file")
	_ = fs.Parse(args)
	e := setup(configPath)

	_, nav := e.runner().NewSession(nil)
	fmt.Fprintln(os.Stdout, "type help for commands")
	sub, err := session.NewREPL(nav, os.Stdin, os.Stdout).Run(ctx)
	if err != nil {
		fatalf("repl: %v", err)
	}
	if out == "" {
		out = e.cfg.Output
	}
	if sub != nil && out != "" {
		if err := emit(ctx, out, *sub); err != nil {
			fatalf("%v", err)
		}
	}
}

func validateCmd(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	var configPath, recordPath, stepKey string
	fs.StringVar(&configPath, "config", "", "configuration file")
	fs.StringVar(&recordPath, "record", "", "record file (.yaml or .json)")
	fs.StringVar(&stepKey, "step", "", "validate only this step (personal, job, skills, emergency, review)")
	_ = fs.Parse(args)
	if recordPath == "" {
		fs.Usage()
		os.Exit(2)
	}
	e := setup(configPath)

	rec, err := session.LoadRecord(recordPath)
	if err != nil {
		fatalf("%v", err)
	}
	vctx := refdata.WithReference(onboarding.WithClock(ctx, e.clock), e.ref)
	var results []schema.Result
	if stepKey != "" {
		st, err := onboarding.ParseStep(stepKey)
		if err != nil {
			fatalf("%v", err)
		}
		results = []schema.Result{schema.ValidateStep(vctx, st, rec)}
	} else {
		results = schema.ValidateAll(vctx, rec)
	}

	b, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		fatalf("encode results: %v", err)
	}
	fmt.Println(string(b))
	if _, failed := schema.FirstFailure(results); failed {
		os.Exit(1)
	}
}

func catalogCmd(args []string) {
	fs := flag.NewFlagSet("catalog", flag.ExitOnError)
	var configPath, dept string
	fs.StringVar(&configPath, "config", "", "configuration file")
	fs.StringVar(&dept, "department", "", "show only this department")
	_ = fs.Parse(args)
	e := setup(configPath)

	for _, d := range e.ref.Departments() {
		if dept != "" && d.Name != dept {
			continue
		}
		fmt.Printf("%s\n  skills: %s\n", d.Name, strings.Join(d.Skills, ", "))
		for _, m := range e.ref.ManagersFor(d.Name) {
			fmt.Printf("  manager: %s (%s)\n", m.Name, m.ID)
		}
	}
	if dept != "" && !e.ref.HasDepartment(dept) {
		fatalf("unknown department %q", dept)
	}
}

func emit(ctx context.Context, path string, sub onboarding.Submission) error {
	var w io.Writer = os.Stdout
	if path != "" && path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	return submission.Write(ctx, w, sub)
}

func failure(o session.Outcome) string {
	if len(o.Errors) == 0 {
		return o.Err
	}
	parts := make([]string, 0, len(o.Errors))
	for f, msg := range o.Errors {
		parts = append(parts, f+": "+msg)
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
