package services

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testtrack-simple/database"
	"github.com/testtrack-simple/dto"
	"github.com/testtrack-simple/models"
)

// setupTestDB points the global connection at a throwaway SQLite file
func setupTestDB(t *testing.T) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "testtrack.db")
	require.NoError(t, database.InitializeSQLite(path))
}

func seedUser(t *testing.T, email string) models.User {
	t.Helper()
	user := models.User{
		Email:    email,
		Password: "hashed",
		Role:     models.RoleViewer,
		IsActive: true,
	}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

func seedProject(t *testing.T, ownerID, name string) models.Project {
	t.Helper()
	project, err := NewProjectService().CreateProject(ownerID, dto.CreateProjectRequest{Name: name})
	require.NoError(t, err)
	return project
}

func addMember(t *testing.T, adminID, projectID, userID string, role models.Role) models.ProjectMember {
	t.Helper()
	member, err := NewMembershipService().AddMember(adminID, projectID, userID, role)
	require.NoError(t, err)
	return member
}

// seedChain builds epic -> story -> test case under the project
func seedChain(t *testing.T, actorID, projectID string) (models.Epic, models.UserStory, models.TestCase) {
	t.Helper()

	epic, err := NewEpicService().CreateEpic(actorID, projectID, dto.CreateEpicRequest{Title: "Checkout Flow"})
	require.NoError(t, err)

	story, err := NewStoryService().CreateStory(actorID, epic.ID, dto.CreateStoryRequest{
		Title: "Guest checkout",
	})
	require.NoError(t, err)

	testCase, err := NewTestCaseService().CreateTestCase(actorID, story.ID, dto.CreateTestCaseRequest{
		Title: "Pay with expired card",
		TestSteps: models.TestSteps{
			{Order: 1, Action: "Add item to cart", Expected: "Cart shows the item"},
			{Order: 2, Action: "Pay with an expired card", Expected: "Payment is rejected"},
		},
		ExpectedResults: "Order is not created",
	})
	require.NoError(t, err)

	return epic, story, testCase
}

func seedScript(t *testing.T, actorID, testCaseID string) models.AutomationScript {
	t.Helper()
	script, err := NewScriptService().CreateScript(actorID, testCaseID, dto.CreateScriptRequest{
		Name:          "checkout.spec.ts",
		ScriptContent: "test('expired card', async () => {})",
		Language:      "typescript",
		Framework:     "playwright",
	})
	require.NoError(t, err)
	return script
}
