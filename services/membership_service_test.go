package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testtrack-simple/dto"
	"github.com/testtrack-simple/models"
	"github.com/testtrack-simple/utils"
)

func TestNonMemberIsDeniedEverything(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, "owner@example.com")
	outsider := seedUser(t, "outsider@example.com")
	project := seedProject(t, owner.ID, "Web Shop")

	// Even reads require membership
	_, err := NewProjectService().GetProject(outsider.ID, project.ID)
	require.Error(t, err)
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))

	_, err = NewEpicService().ListEpics(outsider.ID, project.ID, "")
	require.Error(t, err)
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))

	_, err = NewMembershipService().ListMembers(outsider.ID, project.ID)
	require.Error(t, err)
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))
}

func TestUnknownProjectIsNotFound(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, "owner@example.com")

	_, err := NewProjectService().GetProject(owner.ID, "0b7f2f40-9f64-4f6e-8ed5-000000000000")
	require.Error(t, err)
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
}

func TestRoleGatesWrites(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, "owner@example.com")
	dev := seedUser(t, "dev@example.com")
	project := seedProject(t, owner.ID, "Web Shop")
	addMember(t, owner.ID, project.ID, dev.ID, models.RoleDeveloper)

	// Developers report bugs but do not shape the test plan
	_, err := NewEpicService().CreateEpic(dev.ID, project.ID, dto.CreateEpicRequest{Title: "Epic"})
	require.Error(t, err)
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))

	_, err = NewBugService().CreateBug(dev.ID, project.ID, dto.CreateBugRequest{Title: "Broken button"})
	require.NoError(t, err)
}

func TestRoleChangeTakesEffectOnNextCheck(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, "owner@example.com")
	user := seedUser(t, "user@example.com")
	project := seedProject(t, owner.ID, "Web Shop")
	member := addMember(t, owner.ID, project.ID, user.ID, models.RoleViewer)

	_, err := NewEpicService().CreateEpic(user.ID, project.ID, dto.CreateEpicRequest{Title: "Epic"})
	require.Error(t, err)
	assert.Equal(t, utils.KindForbidden, utils.KindOf(err))

	require.NoError(t, NewMembershipService().UpdateMemberRole(owner.ID, project.ID, member.ID, models.RoleQALead))

	_, err = NewEpicService().CreateEpic(user.ID, project.ID, dto.CreateEpicRequest{Title: "Epic"})
	require.NoError(t, err)
}

func TestLastAdminGuard(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, "owner@example.com")
	second := seedUser(t, "second@example.com")
	project := seedProject(t, owner.ID, "Web Shop")

	members, err := NewMembershipService().ListMembers(owner.ID, project.ID)
	require.NoError(t, err)
	ownerMember := members[0]

	// The sole admin can be neither demoted nor removed
	err = NewMembershipService().UpdateMemberRole(owner.ID, project.ID, ownerMember.ID, models.RoleViewer)
	require.Error(t, err)
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))

	err = NewMembershipService().RemoveMember(owner.ID, project.ID, ownerMember.ID)
	require.Error(t, err)
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))

	// With a second admin in place the original can step down
	addMember(t, owner.ID, project.ID, second.ID, models.RoleAdmin)
	require.NoError(t, NewMembershipService().UpdateMemberRole(owner.ID, project.ID, ownerMember.ID, models.RoleViewer))
}

func TestAdminCountRecheckedPerRemoval(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, "owner@example.com")
	second := seedUser(t, "second@example.com")
	project := seedProject(t, owner.ID, "Web Shop")
	secondMember := addMember(t, owner.ID, project.ID, second.ID, models.RoleAdmin)

	members, err := NewMembershipService().ListMembers(owner.ID, project.ID)
	require.NoError(t, err)
	var ownerMember models.ProjectMember
	for _, m := range members {
		if m.UserID == owner.ID {
			ownerMember = m
		}
	}

	// With two admins the first removal passes the guard
	require.NoError(t, NewMembershipService().RemoveMember(owner.ID, project.ID, secondMember.ID))

	// The count observed inside the second removal reflects that delete,
	// so the project cannot be drained of admins
	err = NewMembershipService().RemoveMember(owner.ID, project.ID, ownerMember.ID)
	require.Error(t, err)
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))

	err = NewMembershipService().UpdateMemberRole(owner.ID, project.ID, ownerMember.ID, models.RoleViewer)
	require.Error(t, err)
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))
}

func TestDuplicateMemberRejected(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, "owner@example.com")
	user := seedUser(t, "user@example.com")
	project := seedProject(t, owner.ID, "Web Shop")
	addMember(t, owner.ID, project.ID, user.ID, models.RoleViewer)

	_, err := NewMembershipService().AddMember(owner.ID, project.ID, user.ID, models.RoleDeveloper)
	require.Error(t, err)
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))
}
