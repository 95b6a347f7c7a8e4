package services

import (
	"github.com/testtrack-simple/database"
	"github.com/testtrack-simple/dto"
	"github.com/testtrack-simple/models"
	"github.com/testtrack-simple/repositories"
	"github.com/testtrack-simple/utils"
	"gorm.io/gorm"
)

// GenerationService records the outcomes of external AI generation runs.
// The generation itself happens outside this service; every attempt is
// appended to the provenance log whether it succeeded or not.
type GenerationService struct {
	generationRepo *repositories.AIGenerationLogRepository
	pageRepo       *repositories.ScrapedPageRepository
	storyRepo      *repositories.UserStoryRepository
	membership     *MembershipService
	consistency    *ConsistencyService
}

// NewGenerationService creates a new generation service instance
func NewGenerationService() *GenerationService {
	return &GenerationService{
		generationRepo: repositories.NewAIGenerationLogRepository(),
		pageRepo:       repositories.NewScrapedPageRepository(),
		storyRepo:      repositories.NewUserStoryRepository(),
		membership:     NewMembershipService(),
		consistency:    NewConsistencyService(),
	}
}

// ListGenerationLogs retrieves the generation history of a project
func (s *GenerationService) ListGenerationLogs(actorID, projectID string, limit int) ([]models.AIGenerationLog, error) {
	if _, err := s.membership.Authorize(actorID, projectID, models.ActionRead); err != nil {
		return nil, err
	}
	return s.generationRepo.FindByProjectID(projectID, limit)
}

// ListScrapedPages retrieves the scraped pages of a project
func (s *GenerationService) ListScrapedPages(actorID, projectID string) ([]models.ScrapedPage, error) {
	if _, err := s.membership.Authorize(actorID, projectID, models.ActionRead); err != nil {
		return nil, err
	}
	return s.pageRepo.FindByProjectID(projectID)
}

// RecordGeneration records one AI generation attempt. A successful
// test-case generation creates the produced test cases together with the
// log entry in one transaction. A failed attempt appends a failure log,
// writes no entity, and surfaces as an external task failure.
func (s *GenerationService) RecordGeneration(actorID, projectID string, req dto.RecordGenerationRequest) ([]models.TestCase, models.AIGenerationLog, error) {
	if _, err := s.membership.Authorize(actorID, projectID, models.ActionWriteTestCase); err != nil {
		return nil, models.AIGenerationLog{}, err
	}
	if _, err := s.consistency.WritableProject(projectID); err != nil {
		return nil, models.AIGenerationLog{}, err
	}

	switch req.GenerationType {
	case models.GenerationTestCases, models.GenerationContentEnhancement, models.GenerationPageScrape:
	default:
		return nil, models.AIGenerationLog{}, utils.NewValidation("invalid generation type %q", req.GenerationType)
	}

	entry := models.AIGenerationLog{
		ProjectID:      projectID,
		GeneratedBy:    actorID,
		GenerationType: req.GenerationType,
		ModelUsed:      req.ModelUsed,
		TokensUsed:     req.TokensUsed,
		ProcessingTime: req.ProcessingTime,
		Success:        req.Success,
		ErrorMessage:   req.ErrorMessage,
		InputData:      req.InputData,
		OutputData:     req.OutputData,
	}

	if !req.Success {
		logged, err := s.generationRepo.Create(entry)
		if err != nil {
			return nil, models.AIGenerationLog{}, err
		}
		return nil, logged, utils.NewExternalTaskFailed("generation failed: %s", req.ErrorMessage)
	}

	var created []models.TestCase
	if req.GenerationType == models.GenerationTestCases && len(req.TestCases) > 0 {
		if req.UserStoryID == "" {
			return nil, models.AIGenerationLog{}, utils.NewValidation("user story is required for test case generation")
		}
		story, err := s.consistency.ParentStory(req.UserStoryID)
		if err != nil {
			return nil, models.AIGenerationLog{}, err
		}
		storyProjectID, err := s.storyRepo.ProjectIDForStory(story.ID)
		if err != nil {
			return nil, models.AIGenerationLog{}, err
		}
		if storyProjectID != projectID {
			return nil, models.AIGenerationLog{}, utils.NewValidation("user story %s does not belong to project %s", story.ID, projectID)
		}

		for _, payload := range req.TestCases {
			title := utils.NormalizeTitle(payload.Title)
			if title == "" {
				return nil, models.AIGenerationLog{}, utils.NewValidation("generated test case title is required")
			}
			created = append(created, models.TestCase{
				UserStoryID:     story.ID,
				Title:           title,
				Description:     payload.Description,
				Preconditions:   payload.Preconditions,
				TestSteps:       payload.TestSteps,
				ExpectedResults: payload.ExpectedResults,
				Priority:        payload.Priority,
				GeneratedByAI:   true,
				RAGEnhanced:     payload.RAGEnhanced,
				Status:          models.TestCaseStatusDraft,
				CreatedBy:       actorID,
			})
		}
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		for i := range created {
			if err := tx.Create(&created[i]).Error; err != nil {
				return err
			}
			if err := recordActivity(tx, models.ActivityLog{
				ProjectID:    projectID,
				UserID:       actorID,
				ActivityType: models.ActivityCreated,
				Description:  "test case created: " + utils.TruncateString(created[i].Title, 120),
				EntityType:   "test_case",
				EntityID:     created[i].ID,
				Metadata: models.JSONMap{
					"title":         created[i].Title,
					"userStoryId":   created[i].UserStoryID,
					"generatedByAi": true,
					"ragEnhanced":   created[i].RAGEnhanced,
				},
			}); err != nil {
				return err
			}
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, models.AIGenerationLog{}, err
	}

	return created, entry, nil
}

// RecordScrapedPage stores the result of a page scrape together with its
// generation log entry.
func (s *GenerationService) RecordScrapedPage(actorID, projectID string, req dto.RecordScrapedPageRequest) (models.ScrapedPage, error) {
	if _, err := s.membership.Authorize(actorID, projectID, models.ActionWriteTestCase); err != nil {
		return models.ScrapedPage{}, err
	}
	if _, err := s.consistency.WritableProject(projectID); err != nil {
		return models.ScrapedPage{}, err
	}
	if req.URL == "" {
		return models.ScrapedPage{}, utils.NewValidation("page url is required")
	}

	page := models.ScrapedPage{
		ProjectID:     projectID,
		URL:           req.URL,
		Title:         req.Title,
		ContentChunks: req.ContentChunks,
		DOMElements:   req.DOMElements,
		Screenshots:   req.Screenshots,
		CreatedBy:     actorID,
	}
	entry := models.AIGenerationLog{
		ProjectID:      projectID,
		GeneratedBy:    actorID,
		GenerationType: models.GenerationPageScrape,
		Success:        true,
		InputData:      models.JSONMap{"url": req.URL},
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&page).Error; err != nil {
			return err
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return models.ScrapedPage{}, err
	}

	return page, nil
}
