package service

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/quizmind/quizmind-api/internal/apperror"
	"github.com/quizmind/quizmind-api/internal/dto"
	"github.com/quizmind/quizmind-api/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CatalogService is the read-only view of tests offered to solvers.
type CatalogService interface {
	GetAllTests() ([]dto.TestSummaryDTO, error)
	// GetSolvableTest returns the test and its questions with the
	// correct-answer field stripped, so answers never leak to clients
	// before submission.
	GetSolvableTest(testID uint) (*dto.SolvableTestDTO, error)
}

type catalogService struct {
	testRepo repository.TestRepository
}

func NewCatalogService(testRepo repository.TestRepository) CatalogService {
	return &catalogService{testRepo: testRepo}
}

func (s *catalogService) GetAllTests() ([]dto.TestSummaryDTO, error) {
	testsWithCount, err := s.testRepo.FindAllActiveWithQuestionCount()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list tests")
		return nil, fmt.Errorf("%w: %v", apperror.ErrUnavailable, err)
	}

	dtos := make([]dto.TestSummaryDTO, 0, len(testsWithCount))
	for _, twc := range testsWithCount {
		dtos = append(dtos, dto.TestSummaryDTO{
			ID:            twc.Test.ID,
			Title:         twc.Test.Title,
			Description:   twc.Test.Description,
			Category:      twc.Test.Category,
			Difficulty:    twc.Test.Difficulty,
			TimeLimit:     twc.Test.TimeLimit,
			Image:         twc.Test.Image,
			Participants:  twc.Test.Participants,
			Rating:        twc.Test.Rating,
			QuestionCount: twc.QuestionCount,
			CreatedAt:     twc.Test.CreatedAt,
		})
	}
	return dtos, nil
}

func (s *catalogService) GetSolvableTest(testID uint) (*dto.SolvableTestDTO, error) {
	test, err := s.testRepo.FindByIDWithQuestions(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: test %d", apperror.ErrNotFound, testID)
		}
		return nil, fmt.Errorf("%w: %v", apperror.ErrUnavailable, err)
	}
	if !test.IsActive {
		return nil, fmt.Errorf("%w: test %d", apperror.ErrTestInactive, testID)
	}

	var resp dto.SolvableTestDTO
	resp.Test.ID = test.ID
	resp.Test.Title = test.Title
	resp.Test.Description = test.Description
	resp.Test.Category = test.Category
	resp.Test.Difficulty = test.Difficulty
	resp.Test.TimeLimit = test.TimeLimit
	resp.Test.Image = test.Image

	// SolvableQuestionDTO has no CorrectAnswer field, so the copy cannot
	// carry the answer index across.
	resp.Questions = make([]dto.SolvableQuestionDTO, len(test.Questions))
	for i, q := range test.Questions {
		if err := copier.Copy(&resp.Questions[i], &q); err != nil {
			return nil, fmt.Errorf("error preparing solvable questions: %w", err)
		}
	}
	return &resp, nil
}
