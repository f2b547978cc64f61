package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	deadlineModeInferred = "inferred"
	deadlineModeExplicit = "explicit"
)

type DeadlineMap map[int]time.Time

func (d DeadlineMap) Days() []int {
	days := make([]int, 0, len(d))
	for day := range d {
		days = append(days, day)
	}
	sort.Ints(days)
	return days
}

// resolveDeadlines loads explicit deadlines when path is set and infers them
// from the store otherwise. A broken explicit file is an error, never a
// reason to infer.
func resolveDeadlines(store SubmissionStore, path string, logger *zap.Logger) (DeadlineMap, string, error) {
	if path == "" {
		return inferDeadlines(store), deadlineModeInferred, nil
	}
	deadlines, err := loadDeadlines(path)
	if err != nil {
		return nil, "", err
	}
	for _, day := range store.Days() {
		if _, ok := deadlines[day]; !ok {
			logger.Info("no explicit deadline for day; excluded from lateness", zap.Int("day", day))
		}
	}
	return deadlines, deadlineModeExplicit, nil
}

func inferDeadlines(store SubmissionStore) DeadlineMap {
	earliest := map[int]time.Time{}
	for _, days := range store {
		for day, ts := range days {
			prev, seen := earliest[day]
			if !seen || ts.Before(prev) {
				earliest[day] = ts
			}
		}
	}
	deadlines := make(DeadlineMap, len(earliest))
	for day, ts := range earliest {
		deadlines[day] = endOfDay(ts)
	}
	return deadlines
}

func endOfDay(value time.Time) time.Time {
	utc := value.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 23, 59, 59, 0, time.UTC)
}

func loadDeadlines(path string) (DeadlineMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read deadlines file %q", path)
	}

	raw := map[string]string{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decode deadlines file %q", path)
	}

	deadlines := make(DeadlineMap, len(raw))
	keys := make(map[int]string, len(raw))
	for key, value := range raw {
		day, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil {
			return nil, errors.Errorf("deadlines file %q: day key %q is not an integer", path, key)
		}
		if prev, dup := keys[day]; dup {
			first, second := prev, key
			if second < first {
				first, second = second, first
			}
			return nil, errors.Errorf("deadlines file %q: day %d appears more than once (%q and %q)", path, day, first, second)
		}
		keys[day] = key
		deadline, err := parseTimestamp(strings.TrimSpace(value))
		if err != nil {
			return nil, errors.Wrapf(err, "parse deadline for day %d", day)
		}
		deadlines[day] = deadline
	}
	return deadlines, nil
}
