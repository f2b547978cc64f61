package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeFixture(t *testing.T, name string, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	return path
}

func TestInferDeadlinesOrderIndependent(t *testing.T) {
	stamps := []time.Time{
		time.Date(2024, 1, 3, 8, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	}
	students := []string{"Ann", "Ben", "Cal"}
	want := time.Date(2024, 1, 1, 23, 59, 59, 0, time.UTC)

	for shift := range stamps {
		store := SubmissionStore{}
		for i, student := range students {
			ts := stamps[(i+shift)%len(stamps)]
			store.Record(SubmissionRecord{Days: []int{1}, Student: student, Timestamp: ts})
		}
		deadlines := inferDeadlines(store)
		require.Len(t, deadlines, 1)
		assert.True(t, deadlines[1].Equal(want), "shift %d got %s", shift, deadlines[1])
	}
}

func TestInferDeadlinesSingleSubmitter(t *testing.T) {
	store := SubmissionStore{}
	store.Record(SubmissionRecord{Days: []int{4, 5}, Student: "Solo", Timestamp: time.Date(2024, 6, 30, 0, 0, 1, 0, time.UTC)})

	deadlines := inferDeadlines(store)
	assert.Equal(t, []int{4, 5}, deadlines.Days())
	for _, day := range []int{4, 5} {
		assert.True(t, deadlines[day].Equal(time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC)))
	}
}

func TestLoadDeadlinesJSON(t *testing.T) {
	path := writeFixture(t, "deadlines.json", `{"6": "2024-02-01T23:59:59Z", "7": "2024-02-08T12:00:00Z"}`)

	deadlines, err := loadDeadlines(path)
	require.NoError(t, err)
	assert.Equal(t, []int{6, 7}, deadlines.Days())
	assert.True(t, deadlines[7].Equal(time.Date(2024, 2, 8, 12, 0, 0, 0, time.UTC)))
}

func TestLoadDeadlinesYAML(t *testing.T) {
	path := writeFixture(t, "deadlines.yaml", "6: \"2024-02-01T23:59:59Z\"\n\"7\": \"2024-02-08T12:00:00Z\"\n")

	deadlines, err := loadDeadlines(path)
	require.NoError(t, err)
	assert.Equal(t, []int{6, 7}, deadlines.Days())
	assert.True(t, deadlines[6].Equal(time.Date(2024, 2, 1, 23, 59, 59, 0, time.UTC)))
}

func TestLoadDeadlinesErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		data    string
		wantErr string
	}{
		{name: "invalid json", file: "bad.json", data: `{"6": `, wantErr: "decode deadlines file"},
		{name: "not an object", file: "list.json", data: `["2024-02-01T23:59:59Z"]`, wantErr: "decode deadlines file"},
		{name: "bad timestamp", file: "ts.json", data: `{"6": "2024-02-01"}`, wantErr: "parse deadline for day 6"},
		{name: "bad key", file: "key.json", data: `{"six": "2024-02-01T23:59:59Z"}`, wantErr: "is not an integer"},
		{name: "fractional seconds", file: "frac.json", data: `{"6": "2024-02-01T23:59:59.500Z"}`, wantErr: "parse deadline for day 6"},
		{name: "duplicate day", file: "dup.json", data: `{"7": "2024-02-01T23:59:59Z", "07": "2024-02-02T23:59:59Z"}`, wantErr: `day 7 appears more than once ("07" and "7")`},
		{name: "duplicate day yaml", file: "dup.yaml", data: "7: \"2024-02-01T23:59:59Z\"\n\" 7\": \"2024-02-02T23:59:59Z\"\n", wantErr: "day 7 appears more than once"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadDeadlines(writeFixture(t, tt.file, tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	_, err := loadDeadlines(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read deadlines file")
}

func TestResolveDeadlines(t *testing.T) {
	store := SubmissionStore{}
	store.Record(SubmissionRecord{Days: []int{6, 7}, Student: "Ann", Timestamp: time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)})

	inferred, mode, err := resolveDeadlines(store, "", zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, deadlineModeInferred, mode)
	assert.Equal(t, []int{6, 7}, inferred.Days())

	path := writeFixture(t, "deadlines.json", `{"6": "2024-01-01T00:00:00Z"}`)
	explicit, mode, err := resolveDeadlines(store, path, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, deadlineModeExplicit, mode)
	assert.Equal(t, []int{6}, explicit.Days(), "explicit mode must not infer missing days")

	_, _, err = resolveDeadlines(store, writeFixture(t, "bad.json", "nope"), zap.NewNop())
	require.Error(t, err)
}
