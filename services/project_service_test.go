package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testtrack-simple/dto"
	"github.com/testtrack-simple/models"
	"github.com/testtrack-simple/utils"
)

func TestCreateProjectSeedsCreatorAsAdmin(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, "owner@example.com")

	project := seedProject(t, owner.ID, "Web Shop")
	assert.Equal(t, models.ProjectStatusActive, project.Status)
	assert.Equal(t, owner.ID, project.CreatedBy)

	members, err := NewMembershipService().ListMembers(owner.ID, project.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, owner.ID, members[0].UserID)
	assert.Equal(t, models.RoleAdmin, members[0].Role)

	projects, err := NewProjectService().ListProjects(owner.ID)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, project.ID, projects[0].ID)

	// The creation is audited
	entries, err := NewActivityService().ListProjectActivity(owner.ID, project.ID, 10)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, models.ActivityCreated, entries[len(entries)-1].ActivityType)
}

func TestUpdateProjectConflictOnStaleRead(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, "owner@example.com")
	project := seedProject(t, owner.ID, "Web Shop")

	name := "Web Shop v2"
	_, err := NewProjectService().UpdateProject(owner.ID, project.ID, dto.UpdateProjectRequest{
		Name:      &name,
		UpdatedAt: project.UpdatedAt,
	})
	require.NoError(t, err)

	// Second writer still holds the original timestamp
	stale := "Web Shop v3"
	_, err = NewProjectService().UpdateProject(owner.ID, project.ID, dto.UpdateProjectRequest{
		Name:      &stale,
		UpdatedAt: project.UpdatedAt,
	})
	require.Error(t, err)
	assert.Equal(t, utils.KindConflict, utils.KindOf(err))

	current, err := NewProjectService().GetProject(owner.ID, project.ID)
	require.NoError(t, err)
	assert.Equal(t, "Web Shop v2", current.Name)
}

func TestArchivedProjectRejectsWritesAllowsReads(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, "owner@example.com")
	project := seedProject(t, owner.ID, "Web Shop")
	epic, _, _ := seedChain(t, owner.ID, project.ID)

	archived, err := NewProjectService().SetProjectStatus(owner.ID, project.ID, models.ProjectStatusArchived, project.UpdatedAt)
	require.NoError(t, err)
	assert.Equal(t, models.ProjectStatusArchived, archived.Status)

	// Writes anywhere under the project are frozen
	_, err = NewEpicService().CreateEpic(owner.ID, project.ID, dto.CreateEpicRequest{Title: "More work"})
	require.Error(t, err)
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))

	title := "Renamed"
	_, err = NewEpicService().UpdateEpic(owner.ID, epic.ID, dto.UpdateEpicRequest{Title: &title, UpdatedAt: epic.UpdatedAt})
	require.Error(t, err)
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))

	// Reads stay available
	got, err := NewProjectService().GetProject(owner.ID, project.ID)
	require.NoError(t, err)
	assert.Equal(t, project.ID, got.ID)

	epics, err := NewEpicService().ListEpics(owner.ID, project.ID, "")
	require.NoError(t, err)
	assert.Len(t, epics, 1)
}

func TestArchivedProjectIsTerminal(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, "owner@example.com")
	project := seedProject(t, owner.ID, "Web Shop")

	archived, err := NewProjectService().SetProjectStatus(owner.ID, project.ID, models.ProjectStatusArchived, project.UpdatedAt)
	require.NoError(t, err)

	_, err = NewProjectService().SetProjectStatus(owner.ID, project.ID, models.ProjectStatusActive, archived.UpdatedAt)
	require.Error(t, err)
	assert.Equal(t, utils.KindInvalidStateTransition, utils.KindOf(err))
}

func TestProjectStatusRoundTrip(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, "owner@example.com")
	project := seedProject(t, owner.ID, "Web Shop")

	inactive, err := NewProjectService().SetProjectStatus(owner.ID, project.ID, models.ProjectStatusInactive, project.UpdatedAt)
	require.NoError(t, err)
	assert.Equal(t, models.ProjectStatusInactive, inactive.Status)

	active, err := NewProjectService().SetProjectStatus(owner.ID, project.ID, models.ProjectStatusActive, inactive.UpdatedAt)
	require.NoError(t, err)
	assert.Equal(t, models.ProjectStatusActive, active.Status)

	// updated_at never moves backwards
	assert.False(t, active.UpdatedAt.Before(project.UpdatedAt))
}
