package main

import (
	"math"
	"time"
)

type MissingDay struct {
	Day      int
	Students []string
}

type LateSubmission struct {
	Day         int
	Student     string
	SubmittedAt time.Time
	Deadline    time.Time
	HoursLate   float64
}

// Bucket is the half-open interval (Lo, Hi] in hours relative to a deadline.
type Bucket struct {
	Lo    float64
	Hi    float64
	Label string
}

func (b Bucket) Contains(hours float64) bool {
	return b.Lo < hours && hours <= b.Hi
}

// TimeWindow covers UTC hours [Start, End).
type TimeWindow struct {
	Label string
	Start int
	End   int
}

type BucketCount struct {
	Label   string
	Count   int
	Percent float64
}

type Histogram struct {
	Rows  []BucketCount
	Total int
}

type TimeOfDay struct {
	Windows []BucketCount
	Hours   [24]int
	Total   int
}

type MilestoneGap struct {
	Student string
	Missing []int
}

type MilestoneCompletion struct {
	Milestones []int
	Completed  int
	Students   int
	Percent    float64
	Incomplete []MilestoneGap
}

var defaultBuckets = []Bucket{
	{Lo: math.Inf(-1), Hi: -48, Label: "<-48h"},
	{Lo: -48, Hi: -24, Label: "-48--24"},
	{Lo: -24, Hi: -12, Label: "-24--12"},
	{Lo: -12, Hi: -6, Label: "-12--6"},
	{Lo: -6, Hi: -1, Label: "-6--1"},
	{Lo: -1, Hi: 0, Label: "-1-0"},
	{Lo: 0, Hi: 1, Label: "0-1"},
	{Lo: 1, Hi: 6, Label: "1-6"},
	{Lo: 6, Hi: 24, Label: "6-24"},
	{Lo: 24, Hi: 48, Label: "24-48"},
	{Lo: 48, Hi: math.Inf(1), Label: ">48h"},
}

var defaultTimeWindows = []TimeWindow{
	{Label: "Late Night (00-05)", Start: 0, End: 6},
	{Label: "Morning (06-11)", Start: 6, End: 12},
	{Label: "Afternoon (12-17)", Start: 12, End: 18},
	{Label: "Evening (18-23)", Start: 18, End: 24},
}

func computeMissing(store SubmissionStore, days []int) []MissingDay {
	students := store.Students()
	result := make([]MissingDay, 0, len(days))
	for _, day := range days {
		missing := []string{}
		for _, student := range students {
			if !store.Has(student, day) {
				missing = append(missing, student)
			}
		}
		result = append(result, MissingDay{Day: day, Students: missing})
	}
	return result
}

func computeLate(store SubmissionStore, deadlines DeadlineMap) []LateSubmission {
	students := store.Students()
	late := []LateSubmission{}
	for _, day := range deadlines.Days() {
		deadline := deadlines[day]
		for _, student := range students {
			ts, ok := store[student][day]
			if !ok || !ts.After(deadline) {
				continue
			}
			late = append(late, LateSubmission{
				Day:         day,
				Student:     student,
				SubmittedAt: ts,
				Deadline:    deadline,
				HoursLate:   hoursRelative(ts, deadline),
			})
		}
	}
	return late
}

func timingHistogram(store SubmissionStore, deadlines DeadlineMap, buckets []Bucket) Histogram {
	counts := make([]int, len(buckets))
	total := 0
	for _, days := range store {
		for day, ts := range days {
			deadline, ok := deadlines[day]
			if !ok {
				continue
			}
			idx := bucketIndex(hoursRelative(ts, deadline), buckets)
			if idx < 0 {
				continue
			}
			counts[idx]++
			total++
		}
	}

	rows := make([]BucketCount, len(buckets))
	for i, bucket := range buckets {
		rows[i] = BucketCount{Label: bucket.Label, Count: counts[i], Percent: percent(counts[i], total)}
	}
	return Histogram{Rows: rows, Total: total}
}

func bucketIndex(hours float64, buckets []Bucket) int {
	for i, bucket := range buckets {
		if bucket.Contains(hours) {
			return i
		}
	}
	return -1
}

func timeOfDay(store SubmissionStore, windows []TimeWindow) TimeOfDay {
	var result TimeOfDay
	counts := make([]int, len(windows))
	for _, days := range store {
		for _, ts := range days {
			hour := ts.UTC().Hour()
			result.Hours[hour]++
			for i, window := range windows {
				if hour >= window.Start && hour < window.End {
					counts[i]++
					result.Total++
					break
				}
			}
		}
	}

	result.Windows = make([]BucketCount, len(windows))
	for i, window := range windows {
		result.Windows[i] = BucketCount{Label: window.Label, Count: counts[i], Percent: percent(counts[i], result.Total)}
	}
	return result
}

func milestoneCompletion(store SubmissionStore, milestones []int) MilestoneCompletion {
	unique := uniqueDays(milestones)
	students := store.Students()
	result := MilestoneCompletion{
		Milestones: unique,
		Students:   len(students),
		Incomplete: []MilestoneGap{},
	}
	for _, student := range students {
		missing := []int{}
		for _, day := range unique {
			if !store.Has(student, day) {
				missing = append(missing, day)
			}
		}
		if len(missing) == 0 {
			result.Completed++
			continue
		}
		result.Incomplete = append(result.Incomplete, MilestoneGap{Student: student, Missing: missing})
	}
	result.Percent = percent(result.Completed, result.Students)
	return result
}

func uniqueDays(days []int) []int {
	seen := make(map[int]struct{}, len(days))
	unique := make([]int, 0, len(days))
	for _, day := range days {
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		unique = append(unique, day)
	}
	return unique
}

func hoursRelative(ts time.Time, deadline time.Time) float64 {
	return ts.Sub(deadline).Hours()
}

func percent(count int, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}
