package services

import (
	"github.com/testtrack-simple/dto"
	"github.com/testtrack-simple/models"
	"github.com/testtrack-simple/repositories"
)

// StatsService computes aggregate statistics with live queries over the
// entity tables. Nothing is cached or denormalized, so a count can never
// drift from the rows it counts.
type StatsService struct {
	memberRepo    *repositories.MemberRepository
	epicRepo      *repositories.EpicRepository
	testCaseRepo  *repositories.TestCaseRepository
	executionRepo *repositories.TestExecutionRepository
	bugRepo       *repositories.BugRepository
	membership    *MembershipService
}

// NewStatsService creates a new stats service instance
func NewStatsService() *StatsService {
	return &StatsService{
		memberRepo:    repositories.NewMemberRepository(),
		epicRepo:      repositories.NewEpicRepository(),
		testCaseRepo:  repositories.NewTestCaseRepository(),
		executionRepo: repositories.NewTestExecutionRepository(),
		bugRepo:       repositories.NewBugRepository(),
		membership:    NewMembershipService(),
	}
}

// DashboardStats aggregates totals across every project the user belongs to
func (s *StatsService) DashboardStats(userID string) (dto.DashboardStats, error) {
	projectIDs, err := s.memberRepo.ProjectIDsForUser(userID)
	if err != nil {
		return dto.DashboardStats{}, err
	}

	stats := dto.DashboardStats{Projects: len(projectIDs)}
	if len(projectIDs) == 0 {
		return stats, nil
	}

	if stats.TestCases, err = s.testCaseRepo.CountByProjectIDs(projectIDs); err != nil {
		return dto.DashboardStats{}, err
	}
	if stats.Executions, err = s.executionRepo.CountByProjectIDs(projectIDs); err != nil {
		return dto.DashboardStats{}, err
	}
	if stats.Bugs, err = s.bugRepo.CountByProjectIDs(projectIDs); err != nil {
		return dto.DashboardStats{}, err
	}
	return stats, nil
}

// ProjectStats aggregates per-project counts, pass rate, and bug density.
// An empty project yields zeroes, never a division error.
func (s *StatsService) ProjectStats(actorID, projectID string) (dto.ProjectStats, error) {
	if _, err := s.membership.Authorize(actorID, projectID, models.ActionRead); err != nil {
		return dto.ProjectStats{}, err
	}

	stats := dto.ProjectStats{ProjectID: projectID}
	var err error

	if stats.Epics, err = s.epicRepo.CountByProjectID(projectID); err != nil {
		return dto.ProjectStats{}, err
	}
	if stats.TestCases, err = s.testCaseRepo.CountByProjectIDAndStatus(projectID, ""); err != nil {
		return dto.ProjectStats{}, err
	}
	if stats.ActiveTestCases, err = s.testCaseRepo.CountByProjectIDAndStatus(projectID, models.TestCaseStatusActive); err != nil {
		return dto.ProjectStats{}, err
	}
	if stats.Executions, err = s.executionRepo.CountByProjectIDAndStatus(projectID, ""); err != nil {
		return dto.ProjectStats{}, err
	}

	passed, err := s.executionRepo.CountByProjectIDAndStatus(projectID, models.ExecutionStatusPassed)
	if err != nil {
		return dto.ProjectStats{}, err
	}
	notRun, err := s.executionRepo.CountByProjectIDAndStatus(projectID, models.ExecutionStatusNotRun)
	if err != nil {
		return dto.ProjectStats{}, err
	}
	if effective := stats.Executions - notRun; effective > 0 {
		stats.PassRate = float64(passed) / float64(effective)
	}

	if stats.Bugs, err = s.bugRepo.CountByProjectIDAndStatus(projectID, ""); err != nil {
		return dto.ProjectStats{}, err
	}
	if stats.OpenBugs, err = s.bugRepo.CountByProjectIDAndStatus(projectID, models.BugStatusOpen); err != nil {
		return dto.ProjectStats{}, err
	}
	if stats.CriticalBugs, err = s.bugRepo.CountByProjectIDAndSeverity(projectID, models.BugSeverityCritical); err != nil {
		return dto.ProjectStats{}, err
	}
	if stats.TestCases > 0 {
		stats.BugDensity = float64(stats.OpenBugs) / float64(stats.TestCases)
	}

	return stats, nil
}
