package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// dayList collects day numbers from comma-separated and repeated flag values.
// The first Set replaces the defaults.
type dayList struct {
	values []int
	set    bool
}

func (d *dayList) String() string {
	if d == nil {
		return ""
	}
	return joinInts(d.values, ",")
}

func (d *dayList) Set(value string) error {
	if !d.set {
		d.values = nil
		d.set = true
	}
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		day, err := strconv.Atoi(part)
		if err != nil {
			return errors.Errorf("invalid day number %q", part)
		}
		d.values = append(d.values, day)
	}
	return nil
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		exitWithError(err)
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		exitWithError(err)
	}
	defer func() { _ = logger.Sync() }()

	terminal := term.IsTerminal(int(os.Stdout.Fd()))
	if err := run(os.Args[1:], os.Stdout, os.Stderr, cfg, logger, terminal); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		_ = logger.Sync()
		exitWithError(err)
	}
}

func run(args []string, stdout io.Writer, stderr io.Writer, cfg *Config, logger *zap.Logger, terminal bool) error {
	fs := flag.NewFlagSet("submission-report", flag.ContinueOnError)
	fs.SetOutput(stderr)

	inputPath := fs.String("file", cfg.File, "Path to the tab-separated submissions log")
	milestones := &dayList{values: append([]int{}, cfg.Milestones...)}
	fs.Var(milestones, "milestones", "Milestone day numbers, comma-separated or repeated")
	deadlinesPath := fs.String("deadlines-file", "", "Optional JSON or YAML file mapping day -> deadline (YYYY-MM-DDTHH:MM:SSZ)")
	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}

	switch len(positional) {
	case 0:
	case 1:
		*inputPath = positional[0]
	default:
		return errors.Errorf("unexpected arguments: %s", strings.Join(positional[1:], " "))
	}
	if strings.TrimSpace(*inputPath) == "" {
		return errors.New("--file is required")
	}

	report, err := buildReport(*inputPath, ReportOptions{
		DeadlinesPath: *deadlinesPath,
		Milestones:    milestones.values,
	}, logger)
	if err != nil {
		return err
	}

	printReport(stdout, report, selectTableRenderer(cfg.TableStyle, terminal), cfg.BarWidth, cfg.ExampleLimit)
	return nil
}

// parseInterspersed lets flags follow positional arguments, so
// "report subjects.txt -milestones 6" works like "-milestones 6 subjects.txt".
// Everything after "--" stays positional.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	positional := []string{}
	rest := args
	for {
		if err := fs.Parse(rest); err != nil {
			return nil, err
		}
		remaining := fs.Args()
		if len(remaining) == 0 {
			return positional, nil
		}
		if idx := len(rest) - len(remaining) - 1; idx >= 0 && rest[idx] == "--" {
			return append(positional, remaining...), nil
		}
		positional = append(positional, remaining[0])
		rest = remaining[1:]
	}
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
