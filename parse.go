package main

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	timestampLayout = "2006-01-02T15:04:05Z"
	unknownStudent  = "(unknown)"
	minFields       = 3
	subjectField    = 2
)

var (
	dayPattern       = regexp.MustCompile(`(?i)day[\s\p{Zs}]*0*([0-9]+)`)
	dayStripPattern  = regexp.MustCompile(`(?i)day[\s\p{Zs}]*[0-9]+`)
	byPattern        = regexp.MustCompile(`(?i)by[\s\p{Zs}]+(.+)$`)
	timestampPattern = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}T[0-9]{2}:[0-9]{2}:[0-9]{2}Z$`)
)

type SubmissionRecord struct {
	Days      []int
	Student   string
	Timestamp time.Time
}

// FormatError marks a log line that cannot be turned into a SubmissionRecord.
type FormatError struct {
	Line string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unexpected line format (%v): %q", e.Err, e.Line)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func parseLine(line string) (SubmissionRecord, error) {
	trimmed := strings.TrimSpace(line)
	parts := strings.Split(trimmed, "\t")
	if len(parts) < minFields {
		return SubmissionRecord{}, &FormatError{Line: line, Err: errors.Errorf("%d fields, need %d", len(parts), minFields)}
	}

	subject := parts[subjectField]
	timestamp, err := parseTimestamp(parts[len(parts)-1])
	if err != nil {
		return SubmissionRecord{}, &FormatError{Line: line, Err: err}
	}

	days, err := extractDays(subject)
	if err != nil {
		return SubmissionRecord{}, &FormatError{Line: line, Err: err}
	}

	return SubmissionRecord{
		Days:      days,
		Student:   extractStudent(subject),
		Timestamp: timestamp,
	}, nil
}

// parseTimestamp accepts only YYYY-MM-DDTHH:MM:SSZ; time.Parse alone would
// also take fractional seconds and single-digit hours.
func parseTimestamp(value string) (time.Time, error) {
	if !timestampPattern.MatchString(value) {
		return time.Time{}, errors.Errorf("timestamp %q is not YYYY-MM-DDTHH:MM:SSZ", value)
	}
	parsed, err := time.Parse(timestampLayout, value)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "timestamp %q", value)
	}
	return parsed.UTC(), nil
}

func extractDays(subject string) ([]int, error) {
	matches := dayPattern.FindAllStringSubmatch(subject, -1)
	days := make([]int, 0, len(matches))
	for _, match := range matches {
		day, err := strconv.Atoi(match[1])
		if err != nil {
			return nil, errors.Wrapf(err, "day number %q", match[1])
		}
		days = append(days, day)
	}
	return days, nil
}

func extractStudent(subject string) string {
	var name string
	if match := byPattern.FindStringSubmatch(subject); match != nil {
		name = strings.TrimSpace(match[1])
	} else {
		name = strings.Trim(dayStripPattern.ReplaceAllString(subject, ""), " -:_")
	}
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return unknownStudent
	}
	return name
}
