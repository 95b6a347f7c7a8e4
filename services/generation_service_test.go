package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testtrack-simple/dto"
	"github.com/testtrack-simple/models"
	"github.com/testtrack-simple/utils"
)

func TestFailedGenerationWritesLogOnly(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, "owner@example.com")
	project := seedProject(t, owner.ID, "Web Shop")
	_, story, _ := seedChain(t, owner.ID, project.ID)

	before, err := NewTestCaseService().ListTestCases(owner.ID, story.ID, "")
	require.NoError(t, err)

	created, entry, err := NewGenerationService().RecordGeneration(owner.ID, project.ID, dto.RecordGenerationRequest{
		GenerationType: models.GenerationTestCases,
		UserStoryID:    story.ID,
		ModelUsed:      "gpt-4o",
		Success:        false,
		ErrorMessage:   "upstream timeout",
		TestCases: []dto.GeneratedTestCase{
			{Title: "Should never be created"},
		},
	})
	require.Error(t, err)
	assert.Equal(t, utils.KindExternalTaskFailed, utils.KindOf(err))
	assert.Empty(t, created)

	// The failure itself is durable
	assert.False(t, entry.Success)
	assert.Equal(t, "upstream timeout", entry.ErrorMessage)

	logs, err := NewGenerationService().ListGenerationLogs(owner.ID, project.ID, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.False(t, logs[0].Success)

	// No entity write happened
	after, err := NewTestCaseService().ListTestCases(owner.ID, story.ID, "")
	require.NoError(t, err)
	assert.Len(t, after, len(before))
}

func TestSuccessfulGenerationCreatesFlaggedTestCases(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, "owner@example.com")
	project := seedProject(t, owner.ID, "Web Shop")
	_, story, _ := seedChain(t, owner.ID, project.ID)

	created, entry, err := NewGenerationService().RecordGeneration(owner.ID, project.ID, dto.RecordGenerationRequest{
		GenerationType: models.GenerationTestCases,
		UserStoryID:    story.ID,
		ModelUsed:      "gpt-4o",
		Success:        true,
		TestCases: []dto.GeneratedTestCase{
			{Title: "Empty cart checkout", RAGEnhanced: true},
			{Title: "Checkout with coupon"},
		},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.True(t, entry.Success)

	for _, tc := range created {
		assert.True(t, tc.GeneratedByAI)
		assert.Equal(t, models.TestCaseStatusDraft, tc.Status)
		assert.Equal(t, story.ID, tc.UserStoryID)
	}
	assert.True(t, created[0].RAGEnhanced)
	assert.False(t, created[1].RAGEnhanced)
}

func TestGenerationRejectsForeignStory(t *testing.T) {
	setupTestDB(t)
	alice := seedUser(t, "alice@example.com")
	bob := seedUser(t, "bob@example.com")
	aliceProject := seedProject(t, alice.ID, "Alice Shop")
	bobProject := seedProject(t, bob.ID, "Bob Shop")
	_, bobStory, _ := seedChain(t, bob.ID, bobProject.ID)

	// Alice is authorized on her own project, but the story she names
	// lives in Bob's
	created, _, err := NewGenerationService().RecordGeneration(alice.ID, aliceProject.ID, dto.RecordGenerationRequest{
		GenerationType: models.GenerationTestCases,
		UserStoryID:    bobStory.ID,
		Success:        true,
		TestCases: []dto.GeneratedTestCase{
			{Title: "Smuggled test case"},
		},
	})
	require.Error(t, err)
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))
	assert.Empty(t, created)

	// Nothing landed in Bob's story and nothing was logged against Alice's project
	bobCases, err := NewTestCaseService().ListTestCases(bob.ID, bobStory.ID, "")
	require.NoError(t, err)
	assert.Len(t, bobCases, 1)

	logs, err := NewGenerationService().ListGenerationLogs(alice.ID, aliceProject.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestGenerationRejectsUnknownType(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, "owner@example.com")
	project := seedProject(t, owner.ID, "Web Shop")

	_, _, err := NewGenerationService().RecordGeneration(owner.ID, project.ID, dto.RecordGenerationRequest{
		GenerationType: "poetry",
		Success:        true,
	})
	require.Error(t, err)
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))
}

func TestRecordScrapedPage(t *testing.T) {
	setupTestDB(t)
	owner := seedUser(t, "owner@example.com")
	project := seedProject(t, owner.ID, "Web Shop")

	page, err := NewGenerationService().RecordScrapedPage(owner.ID, project.ID, dto.RecordScrapedPageRequest{
		URL:           "https://shop.example.com/checkout",
		Title:         "Checkout",
		ContentChunks: models.StringList{"Enter payment details"},
	})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, page.CreatedBy)

	pages, err := NewGenerationService().ListScrapedPages(owner.ID, project.ID)
	require.NoError(t, err)
	require.Len(t, pages, 1)

	// The scrape is also visible in the generation history
	logs, err := NewGenerationService().ListGenerationLogs(owner.ID, project.ID, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, models.GenerationPageScrape, logs[0].GenerationType)
}
