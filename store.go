package main

import (
	"bufio"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const maxLineBytes = 1024 * 1024

// SubmissionStore maps student -> day -> earliest submission time.
type SubmissionStore map[string]map[int]time.Time

// Record folds one parsed line into the store, keeping the earliest timestamp
// per (student, day).
func (s SubmissionStore) Record(rec SubmissionRecord) {
	for _, day := range rec.Days {
		days, exists := s[rec.Student]
		if !exists {
			days = map[int]time.Time{}
			s[rec.Student] = days
		}
		prev, seen := days[day]
		if !seen || rec.Timestamp.Before(prev) {
			days[day] = rec.Timestamp
		}
	}
}

func (s SubmissionStore) Has(student string, day int) bool {
	_, ok := s[student][day]
	return ok
}

func (s SubmissionStore) Students() []string {
	students := make([]string, 0, len(s))
	for student := range s {
		students = append(students, student)
	}
	sort.Strings(students)
	return students
}

func (s SubmissionStore) Days() []int {
	seen := map[int]struct{}{}
	for _, days := range s {
		for day := range days {
			seen[day] = struct{}{}
		}
	}
	days := make([]int, 0, len(seen))
	for day := range seen {
		days = append(days, day)
	}
	sort.Ints(days)
	return days
}

// buildStore folds every parseable line into a store. Malformed and
// oversized lines are skipped; only a failing reader is an error.
func buildStore(r io.Reader, logger *zap.Logger) (SubmissionStore, int, error) {
	store := SubmissionStore{}
	skipped := 0
	lineNo := 0

	reader := bufio.NewReader(r)
	for {
		raw, readErr := reader.ReadString('\n')
		if raw != "" {
			lineNo++
			if len(raw) > maxLineBytes {
				skipped++
				logger.Debug("skipping oversized log line", zap.Int("line", lineNo), zap.Int("bytes", len(raw)))
			} else if line := strings.TrimSpace(raw); line != "" {
				rec, err := parseLine(line)
				if err != nil {
					skipped++
					logger.Debug("skipping log line", zap.Int("line", lineNo), zap.Error(err))
				} else {
					store.Record(rec)
				}
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			return nil, skipped, errors.Wrapf(readErr, "read line %d", lineNo+1)
		}
	}
	return store, skipped, nil
}
