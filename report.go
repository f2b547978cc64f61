package main

import (
	"bytes"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// reportNamespace scopes report IDs so they never collide with other SHA1 UUIDs
// derived from the same bytes.
var reportNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("submission-timing-report"))

type ReportOptions struct {
	DeadlinesPath string
	Milestones    []int
	Buckets       []Bucket
	TimeWindows   []TimeWindow
}

type Report struct {
	ID            uuid.UUID
	Source        string
	DeadlineMode  string
	DeadlinesPath string
	Students      []string
	Days          []int
	SkippedLines  int
	Missing       []MissingDay
	Late          []LateSubmission
	Timing        Histogram
	TimeOfDay     TimeOfDay
	Milestones    MilestoneCompletion
}

func buildReport(path string, opts ReportOptions, logger *zap.Logger) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, errors.Wrapf(err, "read submissions log %q", path)
	}

	store, skipped, err := buildStore(bytes.NewReader(data), logger)
	if err != nil {
		return Report{}, errors.Wrapf(err, "parse submissions log %q", path)
	}

	deadlines, mode, err := resolveDeadlines(store, opts.DeadlinesPath, logger)
	if err != nil {
		return Report{}, err
	}

	buckets := opts.Buckets
	if len(buckets) == 0 {
		buckets = defaultBuckets
	}
	windows := opts.TimeWindows
	if len(windows) == 0 {
		windows = defaultTimeWindows
	}

	days := store.Days()
	report := Report{
		ID:            uuid.NewSHA1(reportNamespace, data),
		Source:        path,
		DeadlineMode:  mode,
		DeadlinesPath: opts.DeadlinesPath,
		Students:      store.Students(),
		Days:          days,
		SkippedLines:  skipped,
		Missing:       computeMissing(store, days),
		Late:          computeLate(store, deadlines),
		Timing:        timingHistogram(store, deadlines, buckets),
		TimeOfDay:     timeOfDay(store, windows),
		Milestones:    milestoneCompletion(store, opts.Milestones),
	}

	logger.Debug("submissions loaded",
		zap.String("source", path),
		zap.Int("students", len(report.Students)),
		zap.Int("days", len(days)),
		zap.Int("skipped_lines", skipped),
		zap.String("deadlines", mode),
	)
	return report, nil
}
