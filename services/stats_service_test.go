package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testtrack-simple/dto"
	"github.com/testtrack-simple/models"
)

func TestEmptyProjectStatsAreZero(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, "owner@example.com")
	project := seedProject(t, owner.ID, "Web Shop")

	stats, err := NewStatsService().ProjectStats(owner.ID, project.ID)
	require.NoError(t, err)
	assert.Zero(t, stats.Epics)
	assert.Zero(t, stats.TestCases)
	assert.Zero(t, stats.Executions)
	assert.Zero(t, stats.Bugs)
	assert.Zero(t, stats.PassRate)
	assert.Zero(t, stats.BugDensity)
}

func TestProjectStatsAggregation(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, "owner@example.com")
	project := seedProject(t, owner.ID, "Web Shop")
	_, story, testCase := seedChain(t, owner.ID, project.ID)

	second, err := NewTestCaseService().CreateTestCase(owner.ID, story.ID, dto.CreateTestCaseRequest{
		Title: "Pay with valid card",
	})
	require.NoError(t, err)
	_, err = NewTestCaseService().TransitionTestCase(owner.ID, second.ID, models.TestCaseStatusActive, second.UpdatedAt)
	require.NoError(t, err)

	for _, status := range []models.ExecutionStatus{
		models.ExecutionStatusPassed,
		models.ExecutionStatusPassed,
		models.ExecutionStatusFailed,
		models.ExecutionStatusSkipped,
	} {
		_, err = NewExecutionService().RecordExecution(owner.ID, testCase.ID, dto.RecordExecutionRequest{Status: status})
		require.NoError(t, err)
	}

	_, err = NewBugService().CreateBug(owner.ID, project.ID, dto.CreateBugRequest{
		Title:    "Checkout crashes",
		Severity: models.BugSeverityCritical,
	})
	require.NoError(t, err)

	stats, err := NewStatsService().ProjectStats(owner.ID, project.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.Epics)
	assert.EqualValues(t, 2, stats.TestCases)
	assert.EqualValues(t, 1, stats.ActiveTestCases)
	assert.EqualValues(t, 4, stats.Executions)
	// 2 passed out of 4 recorded runs, none in not_run
	assert.InDelta(t, 0.5, stats.PassRate, 0.0001)
	assert.EqualValues(t, 1, stats.Bugs)
	assert.EqualValues(t, 1, stats.OpenBugs)
	assert.EqualValues(t, 1, stats.CriticalBugs)
	// 1 open bug across 2 test cases
	assert.InDelta(t, 0.5, stats.BugDensity, 0.0001)
}

func TestDashboardStatsSpanMemberProjects(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, "owner@example.com")
	other := seedUser(t, "other@example.com")

	projectA := seedProject(t, owner.ID, "Web Shop")
	projectB := seedProject(t, owner.ID, "Mobile App")
	// A project the user is not a member of must not leak into the totals
	foreign := seedProject(t, other.ID, "Internal Tools")

	_, _, caseA := seedChain(t, owner.ID, projectA.ID)
	seedChain(t, owner.ID, projectB.ID)
	seedChain(t, other.ID, foreign.ID)

	_, err := NewExecutionService().RecordExecution(owner.ID, caseA.ID, dto.RecordExecutionRequest{
		Status: models.ExecutionStatusPassed,
	})
	require.NoError(t, err)

	_, err = NewBugService().CreateBug(owner.ID, projectB.ID, dto.CreateBugRequest{Title: "Login loops"})
	require.NoError(t, err)

	stats, err := NewStatsService().DashboardStats(owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Projects)
	assert.EqualValues(t, 2, stats.TestCases)
	assert.EqualValues(t, 1, stats.Executions)
	assert.EqualValues(t, 1, stats.Bugs)
}

func TestDashboardStatsForUserWithoutProjects(t *testing.T) {
	setupTestDB(t)
	loner := seedUser(t, "loner@example.com")

	stats, err := NewStatsService().DashboardStats(loner.ID)
	require.NoError(t, err)
	assert.Zero(t, stats.Projects)
	assert.Zero(t, stats.TestCases)
	assert.Zero(t, stats.Executions)
	assert.Zero(t, stats.Bugs)
}
