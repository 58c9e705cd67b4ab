package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTriState(t *testing.T) {
	tests := []struct {
		raw  string
		want TriState
	}{
		{"Y", TriYes},
		{"y", TriYes},
		{" Y ", TriYes},
		{"N", TriNo},
		{"n", TriNo},
		{"", TriUnanswered},
		{"yes", TriUnanswered}, // only the exact letter is an answer
		{"maybe", TriUnanswered},
		{"YN", TriUnanswered},
	}

	for _, tt := range tests {
		if got := ParseTriState(tt.raw); got != tt.want {
			t.Errorf("ParseTriState(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestTriStateAnswered(t *testing.T) {
	assert.True(t, TriYes.Answered())
	assert.True(t, TriNo.Answered())
	assert.False(t, TriUnanswered.Answered())
	assert.True(t, TriYes.IsYes())
	assert.False(t, TriYes.IsNo())
	assert.True(t, TriNo.IsNo())
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, StatusPass.IsValid())
	assert.True(t, StatusAttention.IsValid())
	assert.True(t, StatusFail.IsValid())
	assert.False(t, Status("WARN").IsValid())
}

func TestEvaluationSummaries(t *testing.T) {
	e := Evaluation{
		Issues:    []string{"first issue.", "second issue."},
		Attention: []string{"one item."},
	}

	assert.Equal(t, "first issue.; second issue.", e.IssueSummary())
	assert.Equal(t, "one item.", e.AttentionSummary())
	assert.Equal(t, "", e.DueSoonSummary())
}

func TestCountStatuses(t *testing.T) {
	evals := []Evaluation{
		{Status: StatusPass},
		{Status: StatusFail},
		{Status: StatusAttention},
		{Status: StatusPass},
	}

	c := CountStatuses(evals)
	assert.Equal(t, StatusCounts{Pass: 2, Attention: 1, Fail: 1}, c)
}
