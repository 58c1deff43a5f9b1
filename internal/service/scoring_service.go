package service

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jinzhu/copier"
	"github.com/quizmind/quizmind-api/internal/apperror"
	"github.com/quizmind/quizmind-api/internal/dto"
	"github.com/quizmind/quizmind-api/internal/model"
	"github.com/quizmind/quizmind-api/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ScoringService is the core of the system: it turns a set of submitted
// answers into a persisted, ranked TestResult.
//
// Rank and percentile come from a snapshot read of all prior results for
// the same test. The read-then-write sequence is deliberately not
// serialized across requests: two concurrent submissions may each compute
// a rank that ignores the other. A submission is only guaranteed visible
// to rank computations that start after its write commits.
type ScoringService interface {
	SubmitResult(userID uint, req dto.ResultSubmitDTO, ipAddress string) (*dto.TestResultDetailDTO, error)
	QuickSubmit(testID uint, req dto.QuickSubmitDTO) (*dto.QuickSubmitResponseDTO, error)
	GetResult(resultID, requesterID uint, requesterRole model.Role) (*dto.TestResultDetailDTO, error)
	ListUserResults(userID uint, testID *uint, page, limit int) (*dto.PaginatedResultsDTO, error)
	ListAllResults(testID, userID *uint, page, limit int) (*dto.PaginatedResultsDTO, error)
}

// TxRunner is the slice of *gorm.DB the scoring service needs: running a
// function inside one transaction.
type TxRunner interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}

type scoringService struct {
	testRepo   repository.TestRepository
	resultRepo repository.TestResultRepository
	db         TxRunner
}

func NewScoringService(testRepo repository.TestRepository, resultRepo repository.TestResultRepository, db TxRunner) ScoringService {
	return &scoringService{testRepo: testRepo, resultRepo: resultRepo, db: db}
}

// SubmitResult scores a submission against the test's question set,
// ranks it against all prior results, and persists it. The result insert
// and the participant-counter bump are the only writes and share one
// transaction; nothing partial is ever persisted.
func (s *scoringService) SubmitResult(userID uint, req dto.ResultSubmitDTO, ipAddress string) (*dto.TestResultDetailDTO, error) {
	test, err := s.testRepo.FindByIDWithQuestions(req.TestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: test %d", apperror.ErrNotFound, req.TestID)
		}
		return nil, fmt.Errorf("%w: %v", apperror.ErrUnavailable, err)
	}

	// Index submitted answers by question id. Answers referencing
	// questions outside this test are dropped, not rejected.
	answersByQuestion := make(map[uint]dto.SubmittedAnswerDTO, len(req.Answers))
	for _, a := range req.Answers {
		answersByQuestion[a.QuestionID] = a
	}

	var (
		correctAnswers      int
		wrongAnswers        int
		unansweredQuestions int
	)
	details := make([]model.AnswerDetail, 0, len(test.Questions))
	categoryBuckets := map[string]*counter{}
	difficultyBuckets := map[string]*counter{}

	// Walk the test's own question list so every question is accounted
	// for: a question the client never referenced counts as unanswered.
	for _, q := range test.Questions {
		detail := model.AnswerDetail{
			QuestionID:    q.ID,
			CorrectAnswer: q.CorrectAnswer,
		}

		if a, ok := answersByQuestion[q.ID]; ok {
			detail.SelectedAnswer = a.SelectedAnswer
			detail.TimeSpent = a.TimeSpent
			delete(answersByQuestion, q.ID)
		}

		switch {
		case detail.SelectedAnswer == nil:
			unansweredQuestions++
		case *detail.SelectedAnswer == q.CorrectAnswer:
			detail.IsCorrect = true
			correctAnswers++
		default:
			wrongAnswers++
		}

		bump(categoryBuckets, q.Category, detail.IsCorrect)
		bump(difficultyBuckets, q.Difficulty, detail.IsCorrect)
		details = append(details, detail)
	}
	for qid := range answersByQuestion {
		log.Warn().Uint("questionID", qid).Uint("testID", test.ID).
			Msg("SubmitResult: answer references a question not in this test, skipping")
	}

	totalQuestions := len(test.Questions)
	var score float64
	if totalQuestions > 0 {
		score = float64(correctAnswers) / float64(totalQuestions) * 100
	}

	// Snapshot read for rank/percentile. Not isolated from concurrent
	// writers, see the interface comment.
	priorScores, err := s.resultRepo.FindScoresByTest(req.TestID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrUnavailable, err)
	}
	rank, percentile := rankAmong(priorScores, score)

	now := time.Now()
	result := model.TestResult{
		UserID:                userID,
		TestID:                req.TestID,
		Score:                 score,
		TotalQuestions:        totalQuestions,
		CorrectAnswers:        correctAnswers,
		WrongAnswers:          wrongAnswers,
		UnansweredQuestions:   unansweredQuestions,
		TimeSpent:             req.TimeSpent,
		TimeLimit:             req.TimeLimit,
		Answers:               details,
		CategoryPerformance:   categoryPerformance(categoryBuckets),
		DifficultyPerformance: difficultyPerformance(difficultyBuckets),
		Percentile:            percentile,
		Rank:                  rank,
		TotalParticipants:     len(priorScores) + 1,
		StartedAt:             now.Add(-time.Duration(req.TimeSpent) * time.Second),
		CompletedAt:           now,
		IPAddress:             ipAddress,
	}
	if req.DeviceInfo != nil {
		result.DeviceInfo = &model.DeviceInfo{
			Platform:  req.DeviceInfo.Platform,
			Version:   req.DeviceInfo.Version,
			UserAgent: req.DeviceInfo.UserAgent,
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.resultRepo.Create(tx, &result); err != nil {
			return err
		}
		return s.testRepo.IncrementParticipants(tx, test.ID)
	})
	if err != nil {
		log.Error().Err(err).Uint("testID", req.TestID).Uint("userID", userID).Msg("SubmitResult: failed to persist result")
		return nil, fmt.Errorf("%w: %v", apperror.ErrUnavailable, err)
	}

	log.Info().
		Uint("resultID", result.ID).
		Uint("testID", req.TestID).
		Uint("userID", userID).
		Float64("score", score).
		Int("rank", rank).
		Msg("Test result persisted")

	resp, err := s.toDetailDTO(&result)
	if err != nil {
		return nil, err
	}
	resp.TestTitle = test.Title
	resp.TestCategory = test.Category
	return resp, nil
}

// QuickSubmit is the historic lightweight scoring endpoint: answers are
// positional against the test's question order and nothing is persisted
// beyond the participant counter.
func (s *scoringService) QuickSubmit(testID uint, req dto.QuickSubmitDTO) (*dto.QuickSubmitResponseDTO, error) {
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

	var (
		totalScore     int
		correctAnswers int
	)
	results := make([]dto.QuickAnswerResultDTO, 0, len(test.Questions))
	for i, q := range test.Questions {
		var userAnswer *int
		if i < len(req.Answers) {
			userAnswer = req.Answers[i]
		}
		isCorrect := userAnswer != nil && *userAnswer == q.CorrectAnswer
		points := 0
		if isCorrect {
			points = q.Points
			totalScore += q.Points
			correctAnswers++
		}
		results = append(results, dto.QuickAnswerResultDTO{
			QuestionID:    q.ID,
			UserAnswer:    userAnswer,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     isCorrect,
			Points:        points,
		})
	}

	var percentage float64
	if len(test.Questions) > 0 {
		percentage = float64(correctAnswers) / float64(len(test.Questions)) * 100
		percentage = math.Round(percentage*100) / 100
	}

	if err := s.testRepo.IncrementParticipants(nil, test.ID); err != nil {
		log.Error().Err(err).Uint("testID", test.ID).Msg("QuickSubmit: failed to bump participants")
	}

	return &dto.QuickSubmitResponseDTO{
		TotalScore:     totalScore,
		CorrectAnswers: correctAnswers,
		TotalQuestions: len(test.Questions),
		Percentage:     percentage,
		TimeSpent:      req.TimeSpent,
		Results:        results,
	}, nil
}

// GetResult returns a persisted result with full per-answer detail.
// Only the owning user or an admin may read it.
func (s *scoringService) GetResult(resultID, requesterID uint, requesterRole model.Role) (*dto.TestResultDetailDTO, error) {
	result, err := s.resultRepo.FindByIDWithDetails(resultID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: result %d", apperror.ErrNotFound, resultID)
		}
		return nil, fmt.Errorf("%w: %v", apperror.ErrUnavailable, err)
	}

	if result.UserID != requesterID && !requesterRole.IsAdmin() {
		log.Warn().Uint("resultID", resultID).Uint("requesterID", requesterID).
			Msg("GetResult: access denied to foreign result")
		return nil, fmt.Errorf("%w: result belongs to another user", apperror.ErrForbidden)
	}

	resp, err := s.toDetailDTO(result)
	if err != nil {
		return nil, err
	}
	if result.Test.ID != 0 {
		resp.TestTitle = result.Test.Title
		resp.TestCategory = result.Test.Category
	}
	for i, ans := range result.Answers {
		if ans.Question.ID == 0 {
			continue
		}
		var qDTO dto.QuestionResponseDTO
		if err := copier.Copy(&qDTO, &ans.Question); err == nil {
			resp.Answers[i].Question = &qDTO
		}
	}
	return resp, nil
}

func (s *scoringService) ListUserResults(userID uint, testID *uint, page, limit int) (*dto.PaginatedResultsDTO, error) {
	results, total, err := s.resultRepo.FindByUser(userID, testID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrUnavailable, err)
	}
	return paginated(results, total, page, limit), nil
}

func (s *scoringService) ListAllResults(testID, userID *uint, page, limit int) (*dto.PaginatedResultsDTO, error) {
	results, total, err := s.resultRepo.FindAll(testID, userID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrUnavailable, err)
	}
	return paginated(results, total, page, limit), nil
}

// rankAmong places a new score within the descending snapshot of prior
// scores. Rank is 1-based: one plus the number of prior scores at or above
// the new one. With no prior results the submitter is rank 1 at the 100th
// percentile by convention.
func rankAmong(priorScores []float64, score float64) (rank int, percentile float64) {
	n := len(priorScores)
	atOrAbove := 0
	for _, prior := range priorScores {
		if prior >= score {
			atOrAbove++
		}
	}
	rank = atOrAbove + 1
	if n == 0 {
		return rank, 100
	}
	percentile = float64(n-rank+1) / float64(n) * 100
	if percentile < 0 {
		percentile = 0
	}
	return rank, percentile
}

type counter struct {
	correct int
	total   int
}

func bump(buckets map[string]*counter, key string, correct bool) {
	if key == "" {
		return
	}
	c, ok := buckets[key]
	if !ok {
		c = &counter{}
		buckets[key] = c
	}
	c.total++
	if correct {
		c.correct++
	}
}

func categoryPerformance(buckets map[string]*counter) []model.CategoryPerformance {
	out := make([]model.CategoryPerformance, 0, len(buckets))
	for category, c := range buckets {
		out = append(out, model.CategoryPerformance{
			Category:       category,
			CorrectAnswers: c.correct,
			TotalQuestions: c.total,
			Percentage:     float64(c.correct) / float64(c.total) * 100,
		})
	}
	return out
}

func difficultyPerformance(buckets map[string]*counter) []model.DifficultyPerformance {
	out := make([]model.DifficultyPerformance, 0, len(buckets))
	for difficulty, c := range buckets {
		out = append(out, model.DifficultyPerformance{
			Difficulty:     difficulty,
			CorrectAnswers: c.correct,
			TotalQuestions: c.total,
			Percentage:     float64(c.correct) / float64(c.total) * 100,
		})
	}
	return out
}

func (s *scoringService) toDetailDTO(result *model.TestResult) (*dto.TestResultDetailDTO, error) {
	var resp dto.TestResultDetailDTO
	if err := copier.Copy(&resp, result); err != nil {
		log.Error().Err(err).Msg("Failed to copy result to DTO")
		return nil, fmt.Errorf("error preparing result response: %w", err)
	}
	// Only expose nested question detail when it was actually loaded.
	for i := range resp.Answers {
		if i < len(result.Answers) && result.Answers[i].Question.ID == 0 {
			resp.Answers[i].Question = nil
		}
	}
	return &resp, nil
}

func paginated(results []model.TestResult, total int64, page, limit int) *dto.PaginatedResultsDTO {
	summaries := make([]dto.TestResultSummaryDTO, 0, len(results))
	for _, r := range results {
		s := dto.TestResultSummaryDTO{
			ID:             r.ID,
			TestID:         r.TestID,
			Score:          r.Score,
			TotalQuestions: r.TotalQuestions,
			CorrectAnswers: r.CorrectAnswers,
			Rank:           r.Rank,
			Percentile:     r.Percentile,
			CompletedAt:    r.CompletedAt,
		}
		if r.Test.ID != 0 {
			s.TestTitle = r.Test.Title
			s.TestCategory = r.Test.Category
		}
		summaries = append(summaries, s)
	}
	totalPages := 0
	if limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return &dto.PaginatedResultsDTO{
		Results:     summaries,
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: page,
	}
}
