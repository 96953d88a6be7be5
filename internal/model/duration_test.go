package model

import "testing"

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds  int
		expected string
	}{
		{-5, "0m"},
		{0, "0m"},
		{59, "0m"},
		{60, "1m"},
		{5400, "1h 30m"},
		{3600, "1h"},
		{7500, "2h 5m"},
	}

	for _, test := range tests {
		result := FormatDuration(test.seconds)
		if result != test.expected {
			t.Errorf("FormatDuration(%d) = %s, expected %s", test.seconds, result, test.expected)
		}
	}
}

func TestNormalizeDurationTokens(t *testing.T) {
	tests := []struct {
		name     string
		tokens   []DurationToken
		expected string
	}{
		{"empty", nil, "0m"},
		{"hours and minutes", []DurationToken{{1, "h"}, {30, "m"}}, "1h 30m"},
		{"seconds promote to a minute", []DurationToken{{42, "s"}}, "1m"},
		{"seconds ignored next to minutes", []DurationToken{{5, "m"}, {59, "s"}}, "5m"},
		{"repeated units accumulate", []DurationToken{{1, "h"}, {1, "h"}, {10, "m"}}, "2h 10m"},
		{"long seconds convert", []DurationToken{{600, "s"}}, "10m"},
	}

	for _, test := range tests {
		result := NormalizeDurationTokens(test.tokens)
		if result != test.expected {
			t.Errorf("%s: NormalizeDurationTokens() = %s, expected %s", test.name, result, test.expected)
		}
	}
}

func TestTaskStatus_Transitions(t *testing.T) {
	if !TaskStatusRunning.IsActive() || !TaskStatusStopping.IsActive() {
		t.Error("Running and Stopping should be active states")
	}
	if TaskStatusPending.IsActive() {
		t.Error("Pending should not be active")
	}

	for _, status := range []TaskStatus{TaskStatusCompleted, TaskStatusStopped, TaskStatusError} {
		if !status.IsFinished() {
			t.Errorf("%s should be finished", status)
		}
	}
	if TaskStatusRunning.IsFinished() {
		t.Error("Running should not be finished")
	}
}
