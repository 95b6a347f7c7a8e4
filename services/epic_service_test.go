package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testtrack-simple/dto"
	"github.com/testtrack-simple/models"
	"github.com/testtrack-simple/utils"
)

func TestEpicInvalidTransitionRejected(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, "owner@example.com")
	project := seedProject(t, owner.ID, "Web Shop")
	epic, _, _ := seedChain(t, owner.ID, project.ID)

	// draft cannot jump straight to completed
	_, err := NewEpicService().TransitionEpic(owner.ID, epic.ID, models.EpicStatusCompleted, epic.UpdatedAt)
	require.Error(t, err)
	assert.Equal(t, utils.KindInvalidStateTransition, utils.KindOf(err))
}

func TestCancelEpicLocksDescendants(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, "owner@example.com")
	project := seedProject(t, owner.ID, "Web Shop")
	epic, story, testCase := seedChain(t, owner.ID, project.ID)
	script := seedScript(t, owner.ID, testCase.ID)

	cancelled, err := NewEpicService().TransitionEpic(owner.ID, epic.ID, models.EpicStatusCancelled, epic.UpdatedAt)
	require.NoError(t, err)
	assert.Equal(t, models.EpicStatusCancelled, cancelled.Status)

	// Children survive but are locked, not deleted
	lockedStory, err := NewStoryService().GetStory(owner.ID, story.ID)
	require.NoError(t, err)
	assert.True(t, lockedStory.Locked)

	lockedCase, err := NewTestCaseService().GetTestCase(owner.ID, testCase.ID)
	require.NoError(t, err)
	assert.True(t, lockedCase.Locked)

	lockedScript, err := NewScriptService().GetScript(owner.ID, script.ID)
	require.NoError(t, err)
	assert.True(t, lockedScript.Locked)

	// Locked descendants refuse edits
	title := "Renamed"
	_, err = NewStoryService().UpdateStory(owner.ID, story.ID, dto.UpdateStoryRequest{
		Title:     &title,
		UpdatedAt: lockedStory.UpdatedAt,
	})
	require.Error(t, err)
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))

	_, err = NewTestCaseService().UpdateTestCase(owner.ID, testCase.ID, dto.UpdateTestCaseRequest{
		Title:     &title,
		UpdatedAt: lockedCase.UpdatedAt,
	})
	require.Error(t, err)
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))

	// And no new children can be created under a cancelled epic
	_, err = NewStoryService().CreateStory(owner.ID, epic.ID, dto.CreateStoryRequest{Title: "Late story"})
	require.Error(t, err)
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))
}

func TestEpicTransitionConflictOnStaleRead(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, "owner@example.com")
	project := seedProject(t, owner.ID, "Web Shop")
	epic, _, _ := seedChain(t, owner.ID, project.ID)

	moved, err := NewEpicService().TransitionEpic(owner.ID, epic.ID, models.EpicStatusInProgress, epic.UpdatedAt)
	require.NoError(t, err)
	assert.Equal(t, models.EpicStatusInProgress, moved.Status)

	// A second writer with the original timestamp loses
	_, err = NewEpicService().TransitionEpic(owner.ID, epic.ID, models.EpicStatusCompleted, epic.UpdatedAt)
	require.Error(t, err)
	assert.Equal(t, utils.KindConflict, utils.KindOf(err))
}

func TestStoryStatusFlow(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, "owner@example.com")
	project := seedProject(t, owner.ID, "Web Shop")
	_, story, _ := seedChain(t, owner.ID, project.ID)

	inProgress, err := NewStoryService().TransitionStory(owner.ID, story.ID, models.StoryStatusInProgress, story.UpdatedAt)
	require.NoError(t, err)

	ready, err := NewStoryService().TransitionStory(owner.ID, story.ID, models.StoryStatusReadyForTesting, inProgress.UpdatedAt)
	require.NoError(t, err)

	// Testing can bounce the story back to development
	back, err := NewStoryService().TransitionStory(owner.ID, story.ID, models.StoryStatusInProgress, ready.UpdatedAt)
	require.NoError(t, err)
	assert.Equal(t, models.StoryStatusInProgress, back.Status)
}
