package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectTransitions(t *testing.T) {
	cases := []struct {
		from    ProjectStatus
		to      ProjectStatus
		allowed bool
	}{
		{ProjectStatusActive, ProjectStatusInactive, true},
		{ProjectStatusActive, ProjectStatusArchived, true},
		{ProjectStatusInactive, ProjectStatusActive, true},
		{ProjectStatusInactive, ProjectStatusArchived, true},
		{ProjectStatusArchived, ProjectStatusActive, false},
		{ProjectStatusArchived, ProjectStatusInactive, false},
		{ProjectStatusActive, ProjectStatusActive, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestEpicTransitions(t *testing.T) {
	cases := []struct {
		from    EpicStatus
		to      EpicStatus
		allowed bool
	}{
		{EpicStatusDraft, EpicStatusInProgress, true},
		{EpicStatusDraft, EpicStatusCancelled, true},
		{EpicStatusDraft, EpicStatusCompleted, false},
		{EpicStatusInProgress, EpicStatusCompleted, true},
		{EpicStatusInProgress, EpicStatusCancelled, true},
		{EpicStatusInProgress, EpicStatusDraft, false},
		{EpicStatusCompleted, EpicStatusInProgress, false},
		{EpicStatusCancelled, EpicStatusDraft, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestStoryTransitions(t *testing.T) {
	cases := []struct {
		from    StoryStatus
		to      StoryStatus
		allowed bool
	}{
		{StoryStatusDraft, StoryStatusInProgress, true},
		{StoryStatusDraft, StoryStatusCancelled, true},
		{StoryStatusDraft, StoryStatusCompleted, false},
		{StoryStatusInProgress, StoryStatusReadyForTesting, true},
		{StoryStatusInProgress, StoryStatusCompleted, false},
		{StoryStatusReadyForTesting, StoryStatusCompleted, true},
		// Testing can bounce a story back to development
		{StoryStatusReadyForTesting, StoryStatusInProgress, true},
		{StoryStatusReadyForTesting, StoryStatusCancelled, true},
		{StoryStatusCompleted, StoryStatusInProgress, false},
		{StoryStatusCancelled, StoryStatusInProgress, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestTestCaseTransitions(t *testing.T) {
	cases := []struct {
		from    TestCaseStatus
		to      TestCaseStatus
		allowed bool
	}{
		{TestCaseStatusDraft, TestCaseStatusActive, true},
		{TestCaseStatusDraft, TestCaseStatusObsolete, true},
		{TestCaseStatusActive, TestCaseStatusObsolete, true},
		{TestCaseStatusActive, TestCaseStatusDraft, false},
		{TestCaseStatusObsolete, TestCaseStatusActive, false},
		{TestCaseStatusObsolete, TestCaseStatusDraft, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestBugTransitions(t *testing.T) {
	cases := []struct {
		from    BugStatus
		to      BugStatus
		allowed bool
	}{
		{BugStatusOpen, BugStatusInProgress, true},
		// Closing requires passing through in_progress and resolved
		{BugStatusOpen, BugStatusClosed, false},
		{BugStatusOpen, BugStatusResolved, false},
		{BugStatusInProgress, BugStatusResolved, true},
		{BugStatusInProgress, BugStatusRejected, true},
		{BugStatusInProgress, BugStatusClosed, false},
		{BugStatusResolved, BugStatusClosed, true},
		{BugStatusResolved, BugStatusOpen, false},
		// Reopen back-edges
		{BugStatusClosed, BugStatusInProgress, true},
		{BugStatusRejected, BugStatusInProgress, true},
		{BugStatusClosed, BugStatusOpen, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestBugReopening(t *testing.T) {
	assert.True(t, BugStatusClosed.Reopening(BugStatusInProgress))
	assert.True(t, BugStatusRejected.Reopening(BugStatusInProgress))
	assert.False(t, BugStatusOpen.Reopening(BugStatusInProgress))
	assert.False(t, BugStatusClosed.Reopening(BugStatusResolved))
}

func TestExecutionStatusValid(t *testing.T) {
	for _, s := range []ExecutionStatus{
		ExecutionStatusNotRun, ExecutionStatusPassed, ExecutionStatusFailed,
		ExecutionStatusBlocked, ExecutionStatusSkipped,
	} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, ExecutionStatus("running").Valid())
	assert.False(t, ExecutionStatus("").Valid())
}

func TestBugSeverityValid(t *testing.T) {
	for _, s := range []BugSeverity{
		BugSeverityCritical, BugSeverityHigh, BugSeverityMedium, BugSeverityLow,
	} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, BugSeverity("blocker").Valid())
}
