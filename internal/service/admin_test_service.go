package service

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/quizmind/quizmind-api/internal/apperror"
	"github.com/quizmind/quizmind-api/internal/dto"
	"github.com/quizmind/quizmind-api/internal/model"
	"github.com/quizmind/quizmind-api/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type AdminTestService interface {
	CreateTest(createdByID uint, req dto.TestCreateDTO) (*dto.TestResponseDTO, error)
	UpdateTest(testID uint, req dto.TestUpdateDTO) (*dto.TestResponseDTO, error)
	AddQuestion(testID uint, req dto.QuestionCreateDTO) (*dto.QuestionResponseDTO, error)
	UpdateQuestion(questionID uint, req dto.QuestionUpdateDTO) (*dto.QuestionResponseDTO, error)
	DeleteQuestion(questionID uint) error
}

type adminTestService struct {
	testRepo     repository.TestRepository
	questionRepo repository.QuestionRepository
}

func NewAdminTestService(testRepo repository.TestRepository, questionRepo repository.QuestionRepository) AdminTestService {
	return &adminTestService{testRepo: testRepo, questionRepo: questionRepo}
}

func (s *adminTestService) CreateTest(createdByID uint, req dto.TestCreateDTO) (*dto.TestResponseDTO, error) {
	test, err := model.NewTest(req.Title, req.Description, req.Category, req.Difficulty, req.TimeLimit, createdByID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrValidation, err)
	}
	test.Image = req.Image

	for i, qReq := range req.Questions {
		if qReq.CorrectAnswer == nil {
			return nil, fmt.Errorf("%w: question %d is missing a correct answer", apperror.ErrValidation, i+1)
		}
		question, err := model.NewQuestion(qReq.QuestionText, qReq.Options, *qReq.CorrectAnswer, qReq.Difficulty, qReq.Category, i+1)
		if err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", apperror.ErrValidation, i+1, err)
		}
		question.Explanation = qReq.Explanation
		question.Image = qReq.Image
		question.OptionImages = qReq.OptionImages
		if qReq.Points > 0 {
			question.Points = qReq.Points
		}
		if qReq.TimeLimit > 0 {
			question.TimeLimit = qReq.TimeLimit
		}
		test.Questions = append(test.Questions, *question)
	}

	if err := s.testRepo.Create(test); err != nil {
		log.Error().Err(err).Str("title", test.Title).Msg("CreateTest: failed to persist test")
		return nil, fmt.Errorf("%w: %v", apperror.ErrUnavailable, err)
	}

	log.Info().Uint("testID", test.ID).Int("questions", len(test.Questions)).Msg("Test created")
	return s.toResponseDTO(test)
}

func (s *adminTestService) UpdateTest(testID uint, req dto.TestUpdateDTO) (*dto.TestResponseDTO, error) {
	test, err := s.testRepo.FindByIDWithQuestions(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: test %d", apperror.ErrNotFound, testID)
		}
		return nil, fmt.Errorf("%w: %v", apperror.ErrUnavailable, err)
	}

	if req.Title != nil {
		test.Title = *req.Title
	}
	if req.Description != nil {
		test.Description = *req.Description
	}
	if req.Category != nil {
		test.Category = *req.Category
	}
	if req.Difficulty != nil {
		test.Difficulty = *req.Difficulty
	}
	if req.TimeLimit != nil && *req.TimeLimit > 0 {
		test.TimeLimit = *req.TimeLimit
	}
	if req.Image != nil {
		test.Image = *req.Image
	}
	if req.IsActive != nil {
		test.IsActive = *req.IsActive
	}

	// Re-run metadata validation against the closed enumerations.
	if _, err := model.NewTest(test.Title, test.Description, test.Category, test.Difficulty, test.TimeLimit, test.CreatedByID); err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrValidation, err)
	}

	if err := s.testRepo.Update(test); err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("UpdateTest: failed to persist update")
		return nil, fmt.Errorf("%w: %v", apperror.ErrUnavailable, err)
	}
	return s.toResponseDTO(test)
}

// AddQuestion appends one question at the end of the test's order.
func (s *adminTestService) AddQuestion(testID uint, req dto.QuestionCreateDTO) (*dto.QuestionResponseDTO, error) {
	test, err := s.testRepo.FindByIDWithQuestions(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: test %d", apperror.ErrNotFound, testID)
		}
		return nil, fmt.Errorf("%w: %v", apperror.ErrUnavailable, err)
	}

	if req.CorrectAnswer == nil {
		return nil, fmt.Errorf("%w: question is missing a correct answer", apperror.ErrValidation)
	}
	question, err := model.NewQuestion(req.QuestionText, req.Options, *req.CorrectAnswer, req.Difficulty, req.Category, len(test.Questions)+1)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrValidation, err)
	}
	question.TestID = test.ID
	question.Explanation = req.Explanation
	question.Image = req.Image
	question.OptionImages = req.OptionImages
	if req.Points > 0 {
		question.Points = req.Points
	}
	if req.TimeLimit > 0 {
		question.TimeLimit = req.TimeLimit
	}

	if err := s.questionRepo.Create(question); err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("AddQuestion: failed to persist question")
		return nil, fmt.Errorf("%w: %v", apperror.ErrUnavailable, err)
	}
	return questionToDTO(question)
}

func (s *adminTestService) UpdateQuestion(questionID uint, req dto.QuestionUpdateDTO) (*dto.QuestionResponseDTO, error) {
	question, err := s.questionRepo.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: question %d", apperror.ErrNotFound, questionID)
		}
		return nil, fmt.Errorf("%w: %v", apperror.ErrUnavailable, err)
	}

	if req.QuestionText != nil {
		question.QuestionText = *req.QuestionText
	}
	if req.Options != nil {
		question.Options = req.Options
	}
	if req.CorrectAnswer != nil {
		question.CorrectAnswer = *req.CorrectAnswer
	}
	if req.Explanation != nil {
		question.Explanation = *req.Explanation
	}
	if req.Difficulty != nil {
		question.Difficulty = *req.Difficulty
	}
	if req.Category != nil {
		question.Category = *req.Category
	}
	if req.Image != nil {
		question.Image = *req.Image
	}
	if req.Points != nil && *req.Points > 0 {
		question.Points = *req.Points
	}
	if req.TimeLimit != nil && *req.TimeLimit > 0 {
		question.TimeLimit = *req.TimeLimit
	}

	// Options and the correct-answer index must stay consistent after any
	// combination of patches.
	if _, err := model.NewQuestion(question.QuestionText, question.Options, question.CorrectAnswer, question.Difficulty, question.Category, question.OrderInTest); err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrValidation, err)
	}

	if err := s.questionRepo.Update(question); err != nil {
		log.Error().Err(err).Uint("questionID", questionID).Msg("UpdateQuestion: failed to persist update")
		return nil, fmt.Errorf("%w: %v", apperror.ErrUnavailable, err)
	}
	return questionToDTO(question)
}

func (s *adminTestService) DeleteQuestion(questionID uint) error {
	if _, err := s.questionRepo.FindByID(questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: question %d", apperror.ErrNotFound, questionID)
		}
		return fmt.Errorf("%w: %v", apperror.ErrUnavailable, err)
	}
	if err := s.questionRepo.Delete(questionID); err != nil {
		log.Error().Err(err).Uint("questionID", questionID).Msg("DeleteQuestion: failed to delete")
		return fmt.Errorf("%w: %v", apperror.ErrUnavailable, err)
	}
	log.Info().Uint("questionID", questionID).Msg("Question deleted")
	return nil
}

func questionToDTO(question *model.Question) (*dto.QuestionResponseDTO, error) {
	var resp dto.QuestionResponseDTO
	if err := copier.Copy(&resp, question); err != nil {
		log.Error().Err(err).Msg("Failed to copy question to DTO")
		return nil, fmt.Errorf("error preparing question response: %w", err)
	}
	return &resp, nil
}

func (s *adminTestService) toResponseDTO(test *model.Test) (*dto.TestResponseDTO, error) {
	var resp dto.TestResponseDTO
	if err := copier.Copy(&resp, test); err != nil {
		log.Error().Err(err).Msg("Failed to copy test to DTO")
		return nil, fmt.Errorf("error preparing test response: %w", err)
	}
	return &resp, nil
}
