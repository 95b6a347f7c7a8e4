package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testtrack-simple/dto"
	"github.com/testtrack-simple/models"
	"github.com/testtrack-simple/utils"
)

func TestRecordExecutionUpdatesScriptStatus(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, "owner@example.com")
	project := seedProject(t, owner.ID, "Web Shop")
	_, _, testCase := seedChain(t, owner.ID, project.ID)
	script := seedScript(t, owner.ID, testCase.ID)
	assert.Equal(t, models.ExecutionStatusNotRun, script.LastExecutionStatus)

	ms := 4200
	execution, err := NewExecutionService().RecordExecution(owner.ID, testCase.ID, dto.RecordExecutionRequest{
		Status:             models.ExecutionStatusPassed,
		AutomationScriptID: &script.ID,
		ExecutionTime:      &ms,
		ExecutionDetails:   models.JSONMap{"browser": "chromium"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.ExecutionStatusPassed, execution.Status)
	assert.Equal(t, owner.ID, execution.ExecutedBy)

	// The script's denormalized status moved in the same transaction
	updated, err := NewScriptService().GetScript(owner.ID, script.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ExecutionStatusPassed, updated.LastExecutionStatus)

	// A later failed run moves it again
	_, err = NewExecutionService().RecordExecution(owner.ID, testCase.ID, dto.RecordExecutionRequest{
		Status:             models.ExecutionStatusFailed,
		AutomationScriptID: &script.ID,
	})
	require.NoError(t, err)

	updated, err = NewScriptService().GetScript(owner.ID, script.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ExecutionStatusFailed, updated.LastExecutionStatus)

	executions, err := NewExecutionService().ListExecutions(owner.ID, testCase.ID)
	require.NoError(t, err)
	assert.Len(t, executions, 2)
}

func TestManualExecutionLeavesScriptsAlone(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, "owner@example.com")
	project := seedProject(t, owner.ID, "Web Shop")
	_, _, testCase := seedChain(t, owner.ID, project.ID)
	script := seedScript(t, owner.ID, testCase.ID)

	_, err := NewExecutionService().RecordExecution(owner.ID, testCase.ID, dto.RecordExecutionRequest{
		Status: models.ExecutionStatusPassed,
	})
	require.NoError(t, err)

	unchanged, err := NewScriptService().GetScript(owner.ID, script.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ExecutionStatusNotRun, unchanged.LastExecutionStatus)
}

func TestExecutionRejectsForeignScript(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, "owner@example.com")
	project := seedProject(t, owner.ID, "Web Shop")
	_, story, testCase := seedChain(t, owner.ID, project.ID)
	script := seedScript(t, owner.ID, testCase.ID)

	other, err := NewTestCaseService().CreateTestCase(owner.ID, story.ID, dto.CreateTestCaseRequest{
		Title: "Pay with valid card",
	})
	require.NoError(t, err)

	_, err = NewExecutionService().RecordExecution(owner.ID, other.ID, dto.RecordExecutionRequest{
		Status:             models.ExecutionStatusPassed,
		AutomationScriptID: &script.ID,
	})
	require.Error(t, err)
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))
}

func TestExecutionRejectsInvalidStatusAndTime(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, "owner@example.com")
	project := seedProject(t, owner.ID, "Web Shop")
	_, _, testCase := seedChain(t, owner.ID, project.ID)

	_, err := NewExecutionService().RecordExecution(owner.ID, testCase.ID, dto.RecordExecutionRequest{
		Status: "running",
	})
	require.Error(t, err)
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))

	negative := -5
	_, err = NewExecutionService().RecordExecution(owner.ID, testCase.ID, dto.RecordExecutionRequest{
		Status:        models.ExecutionStatusPassed,
		ExecutionTime: &negative,
	})
	require.Error(t, err)
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))
}

func TestObsoleteTestCaseRejectsExecutions(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, "owner@example.com")
	project := seedProject(t, owner.ID, "Web Shop")
	_, _, testCase := seedChain(t, owner.ID, project.ID)

	_, err := NewTestCaseService().TransitionTestCase(owner.ID, testCase.ID, models.TestCaseStatusObsolete, testCase.UpdatedAt)
	require.NoError(t, err)

	_, err = NewExecutionService().RecordExecution(owner.ID, testCase.ID, dto.RecordExecutionRequest{
		Status: models.ExecutionStatusPassed,
	})
	require.Error(t, err)
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))
}
