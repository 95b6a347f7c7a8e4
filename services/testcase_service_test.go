package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testtrack-simple/dto"
	"github.com/testtrack-simple/models"
	"github.com/testtrack-simple/utils"
)

func TestObsoleteTestCaseLocksItsScripts(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, "owner@example.com")
	project := seedProject(t, owner.ID, "Web Shop")
	_, _, testCase := seedChain(t, owner.ID, project.ID)
	script := seedScript(t, owner.ID, testCase.ID)

	obsolete, err := NewTestCaseService().TransitionTestCase(owner.ID, testCase.ID, models.TestCaseStatusObsolete, testCase.UpdatedAt)
	require.NoError(t, err)
	assert.Equal(t, models.TestCaseStatusObsolete, obsolete.Status)

	lockedScript, err := NewScriptService().GetScript(owner.ID, script.ID)
	require.NoError(t, err)
	assert.True(t, lockedScript.Locked)

	// Obsolete test cases refuse edits
	title := "Renamed"
	_, err = NewTestCaseService().UpdateTestCase(owner.ID, testCase.ID, dto.UpdateTestCaseRequest{
		Title:     &title,
		UpdatedAt: obsolete.UpdatedAt,
	})
	require.Error(t, err)
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))

	// And locked scripts refuse edits too
	name := "renamed.spec.ts"
	_, err = NewScriptService().UpdateScript(owner.ID, script.ID, dto.UpdateScriptRequest{
		Name:      &name,
		UpdatedAt: lockedScript.UpdatedAt,
	})
	require.Error(t, err)
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))
}

func TestTestCaseTitleNormalized(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, "owner@example.com")
	project := seedProject(t, owner.ID, "Web Shop")
	_, story, _ := seedChain(t, owner.ID, project.ID)

	testCase, err := NewTestCaseService().CreateTestCase(owner.ID, story.ID, dto.CreateTestCaseRequest{
		Title: "  Pay with valid card  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Pay with valid card", testCase.Title)

	_, err = NewTestCaseService().CreateTestCase(owner.ID, story.ID, dto.CreateTestCaseRequest{
		Title: "   ",
	})
	require.Error(t, err)
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))
}
