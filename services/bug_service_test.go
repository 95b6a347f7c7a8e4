package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testtrack-simple/dto"
	"github.com/testtrack-simple/models"
	"github.com/testtrack-simple/utils"
)

func TestBugWorkflow(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, "owner@example.com")
	project := seedProject(t, owner.ID, "Web Shop")

	bug, err := NewBugService().CreateBug(owner.ID, project.ID, dto.CreateBugRequest{
		Title:    "Checkout crashes on empty cart",
		Severity: models.BugSeverityHigh,
	})
	require.NoError(t, err)
	assert.Equal(t, models.BugStatusOpen, bug.Status)
	assert.Equal(t, owner.ID, bug.ReportedBy)

	// Closing directly from open is not a thing
	_, err = NewBugService().TransitionBug(owner.ID, bug.ID, models.BugStatusClosed, bug.UpdatedAt)
	require.Error(t, err)
	assert.Equal(t, utils.KindInvalidStateTransition, utils.KindOf(err))

	inProgress, err := NewBugService().TransitionBug(owner.ID, bug.ID, models.BugStatusInProgress, bug.UpdatedAt)
	require.NoError(t, err)
	resolved, err := NewBugService().TransitionBug(owner.ID, bug.ID, models.BugStatusResolved, inProgress.UpdatedAt)
	require.NoError(t, err)
	closed, err := NewBugService().TransitionBug(owner.ID, bug.ID, models.BugStatusClosed, resolved.UpdatedAt)
	require.NoError(t, err)
	assert.Equal(t, models.BugStatusClosed, closed.Status)
}

func TestBugReopenRestrictedToLeads(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, "owner@example.com")
	engineer := seedUser(t, "qa@example.com")
	project := seedProject(t, owner.ID, "Web Shop")
	addMember(t, owner.ID, project.ID, engineer.ID, models.RoleQAEngineer)

	bug, err := NewBugService().CreateBug(engineer.ID, project.ID, dto.CreateBugRequest{Title: "Flaky total"})
	require.NoError(t, err)

	inProgress, err := NewBugService().TransitionBug(engineer.ID, bug.ID, models.BugStatusInProgress, bug.UpdatedAt)
	require.NoError(t, err)
	rejected, err := NewBugService().TransitionBug(engineer.ID, bug.ID, models.BugStatusRejected, inProgress.UpdatedAt)
	require.NoError(t, err)

	// The engineer who filed it cannot reopen
	_, err = NewBugService().TransitionBug(engineer.ID, bug.ID, models.BugStatusInProgress, rejected.UpdatedAt)
	require.Error(t, err)
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))

	// An admin can
	reopened, err := NewBugService().TransitionBug(owner.ID, bug.ID, models.BugStatusInProgress, rejected.UpdatedAt)
	require.NoError(t, err)
	assert.Equal(t, models.BugStatusInProgress, reopened.Status)
}

func TestBugLinksMustMatchProject(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, "owner@example.com")
	projectA := seedProject(t, owner.ID, "Web Shop")
	projectB := seedProject(t, owner.ID, "Mobile App")
	_, _, testCase := seedChain(t, owner.ID, projectA.ID)

	// Linking a test case from another project is rejected
	_, err := NewBugService().CreateBug(owner.ID, projectB.ID, dto.CreateBugRequest{
		Title:      "Cross-project link",
		TestCaseID: &testCase.ID,
	})
	require.Error(t, err)
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))

	// Same project is fine
	bug, err := NewBugService().CreateBug(owner.ID, projectA.ID, dto.CreateBugRequest{
		Title:      "Expired card accepted",
		TestCaseID: &testCase.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, bug.TestCaseID)
	assert.Equal(t, testCase.ID, *bug.TestCaseID)
}

func TestBugDefaultsToMediumSeverity(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, "owner@example.com")
	project := seedProject(t, owner.ID, "Web Shop")

	bug, err := NewBugService().CreateBug(owner.ID, project.ID, dto.CreateBugRequest{Title: "No severity given"})
	require.NoError(t, err)
	assert.Equal(t, models.BugSeverityMedium, bug.Severity)

	_, err = NewBugService().CreateBug(owner.ID, project.ID, dto.CreateBugRequest{
		Title:    "Bad severity",
		Severity: "blocker",
	})
	require.Error(t, err)
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))
}

func TestBugUpdateConflictOnStaleRead(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, "owner@example.com")
	project := seedProject(t, owner.ID, "Web Shop")

	bug, err := NewBugService().CreateBug(owner.ID, project.ID, dto.CreateBugRequest{Title: "Original"})
	require.NoError(t, err)

	title := "First edit"
	_, err = NewBugService().UpdateBug(owner.ID, bug.ID, dto.UpdateBugRequest{Title: &title, UpdatedAt: bug.UpdatedAt})
	require.NoError(t, err)

	stale := "Second edit from stale read"
	_, err = NewBugService().UpdateBug(owner.ID, bug.ID, dto.UpdateBugRequest{Title: &stale, UpdatedAt: bug.UpdatedAt})
	require.Error(t, err)
	assert.Equal(t, utils.KindConflict, utils.KindOf(err))
}
