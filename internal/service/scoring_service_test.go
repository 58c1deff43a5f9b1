package service

import (
	"testing"

	"github.com/quizmind/quizmind-api/internal/apperror"
	"github.com/quizmind/quizmind-api/internal/dto"
	"github.com/quizmind/quizmind-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

// fourQuestionTest has correct indices [1,0,2,3] spread over two
// categories and two difficulties.
func fourQuestionTest() *model.Test {
	return &model.Test{
		ID:       1,
		Title:    "General IQ Warmup",
		Category: "General Knowledge",
		IsActive: true,
		Questions: []model.Question{
			{ID: 11, TestID: 1, OrderInTest: 1, QuestionText: "Q1", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 1, Category: "Science", Difficulty: model.DifficultyEasy, Points: 10},
			{ID: 12, TestID: 1, OrderInTest: 2, QuestionText: "Q2", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 0, Category: "Science", Difficulty: model.DifficultyMedium, Points: 10},
			{ID: 13, TestID: 1, OrderInTest: 3, QuestionText: "Q3", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 2, Category: "History", Difficulty: model.DifficultyMedium, Points: 10},
			{ID: 14, TestID: 1, OrderInTest: 4, QuestionText: "Q4", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 3, Category: "History", Difficulty: model.DifficultyHard, Points: 10},
		},
	}
}

func newScoringFixture(tests ...*model.Test) (ScoringService, *fakeTestRepo, *fakeResultRepo) {
	testRepo := newFakeTestRepo(tests...)
	resultRepo := newFakeResultRepo()
	svc := NewScoringService(testRepo, resultRepo, fakeTxRunner{})
	return svc, testRepo, resultRepo
}

func TestSubmitResult_ScoresAndCounts(t *testing.T) {
	svc, testRepo, _ := newScoringFixture(fourQuestionTest())

	result, err := svc.SubmitResult(7, dto.ResultSubmitDTO{
		TestID: 1,
		Answers: []dto.SubmittedAnswerDTO{
			{QuestionID: 11, SelectedAnswer: intPtr(1), TimeSpent: 12},
			{QuestionID: 12, SelectedAnswer: intPtr(0), TimeSpent: 9},
			{QuestionID: 13, SelectedAnswer: intPtr(2), TimeSpent: 20},
			{QuestionID: 14, SelectedAnswer: nil},
		},
		TimeSpent: 300,
		TimeLimit: 1200,
	}, "203.0.113.9")
	require.NoError(t, err)

	assert.Equal(t, 3, result.CorrectAnswers)
	assert.Equal(t, 0, result.WrongAnswers)
	assert.Equal(t, 1, result.UnansweredQuestions)
	assert.Equal(t, 4, result.TotalQuestions)
	assert.InDelta(t, 75.0, result.Score, 0.001)
	assert.Equal(t, result.TotalQuestions, result.CorrectAnswers+result.WrongAnswers+result.UnansweredQuestions)

	assert.Equal(t, 1, result.Rank)
	assert.InDelta(t, 100.0, result.Percentile, 0.001)
	assert.Equal(t, 1, result.TotalParticipants)
	assert.Len(t, result.Answers, 4)
	assert.Equal(t, "General IQ Warmup", result.TestTitle)
	assert.Equal(t, 1, testRepo.participants[1])
	assert.True(t, result.StartedAt.Before(result.CompletedAt))
}

func TestSubmitResult_EmptySubmissionCountsAllUnanswered(t *testing.T) {
	test := fourQuestionTest()
	test.Questions = append(test.Questions, model.Question{
		ID: 15, TestID: 1, OrderInTest: 5, QuestionText: "Q5",
		Options: []string{"a", "b"}, CorrectAnswer: 0, Category: "Science", Difficulty: model.DifficultyEasy,
	})
	svc, _, _ := newScoringFixture(test)

	result, err := svc.SubmitResult(7, dto.ResultSubmitDTO{TestID: 1, Answers: []dto.SubmittedAnswerDTO{}}, "")
	require.NoError(t, err)

	assert.Equal(t, 5, result.UnansweredQuestions)
	assert.Equal(t, 0, result.CorrectAnswers)
	assert.Equal(t, 0, result.WrongAnswers)
	assert.Zero(t, result.Score)
	assert.Equal(t, result.TotalQuestions, result.CorrectAnswers+result.WrongAnswers+result.UnansweredQuestions)
}

func TestSubmitResult_PerformanceBreakdowns(t *testing.T) {
	svc, _, _ := newScoringFixture(fourQuestionTest())

	result, err := svc.SubmitResult(7, dto.ResultSubmitDTO{
		TestID: 1,
		Answers: []dto.SubmittedAnswerDTO{
			{QuestionID: 11, SelectedAnswer: intPtr(1)}, // correct, Science/easy
			{QuestionID: 12, SelectedAnswer: intPtr(3)}, // wrong, Science/medium
			{QuestionID: 13, SelectedAnswer: intPtr(2)}, // correct, History/medium
			// Q4 unanswered, History/hard
		},
	}, "")
	require.NoError(t, err)

	byCategory := map[string]dto.CategoryPerformanceDTO{}
	for _, p := range result.CategoryPerformance {
		byCategory[p.Category] = p
	}
	require.Len(t, byCategory, 2)
	assert.Equal(t, 1, byCategory["Science"].CorrectAnswers)
	assert.Equal(t, 2, byCategory["Science"].TotalQuestions)
	assert.InDelta(t, 50.0, byCategory["Science"].Percentage, 0.001)
	assert.Equal(t, 1, byCategory["History"].CorrectAnswers)
	assert.Equal(t, 2, byCategory["History"].TotalQuestions)

	byDifficulty := map[string]dto.DifficultyPerformanceDTO{}
	totalInBuckets := 0
	for _, p := range result.DifficultyPerformance {
		byDifficulty[p.Difficulty] = p
		totalInBuckets += p.TotalQuestions
	}
	assert.Equal(t, result.TotalQuestions, totalInBuckets)
	assert.Equal(t, 1, byDifficulty[model.DifficultyEasy].CorrectAnswers)
	assert.Equal(t, 0, byDifficulty[model.DifficultyHard].CorrectAnswers)
}

func TestSubmitResult_ExtraneousAnswersDropped(t *testing.T) {
	svc, _, _ := newScoringFixture(fourQuestionTest())

	result, err := svc.SubmitResult(7, dto.ResultSubmitDTO{
		TestID: 1,
		Answers: []dto.SubmittedAnswerDTO{
			{QuestionID: 11, SelectedAnswer: intPtr(1)},
			{QuestionID: 999, SelectedAnswer: intPtr(0)}, // not in this test
		},
	}, "")
	require.NoError(t, err)

	assert.Equal(t, 1, result.CorrectAnswers)
	assert.Equal(t, 0, result.WrongAnswers)
	assert.Equal(t, 3, result.UnansweredQuestions)
	assert.Len(t, result.Answers, 4)
}

func TestSubmitResult_RankAgainstPriorResults(t *testing.T) {
	svc, _, resultRepo := newScoringFixture(fourQuestionTest())
	for _, score := range []float64{50, 25, 25} {
		resultRepo.Create(nil, &model.TestResult{TestID: 1, UserID: 99, Score: score})
	}

	// All four correct beats every prior score.
	result, err := svc.SubmitResult(7, dto.ResultSubmitDTO{
		TestID: 1,
		Answers: []dto.SubmittedAnswerDTO{
			{QuestionID: 11, SelectedAnswer: intPtr(1)},
			{QuestionID: 12, SelectedAnswer: intPtr(0)},
			{QuestionID: 13, SelectedAnswer: intPtr(2)},
			{QuestionID: 14, SelectedAnswer: intPtr(3)},
		},
	}, "")
	require.NoError(t, err)

	assert.InDelta(t, 100.0, result.Score, 0.001)
	assert.Equal(t, 1, result.Rank)
	assert.InDelta(t, 100.0, result.Percentile, 0.001)
	assert.Equal(t, 4, result.TotalParticipants)
}

func TestRankAmong(t *testing.T) {
	tests := []struct {
		name           string
		prior          []float64
		score          float64
		wantRank       int
		wantPercentile float64
	}{
		{name: "no prior results", prior: nil, score: 80, wantRank: 1, wantPercentile: 100},
		{name: "beats everyone", prior: []float64{70, 50, 30}, score: 80, wantRank: 1, wantPercentile: 100},
		{name: "ties go to the incumbent", prior: []float64{80, 75, 60}, score: 75, wantRank: 3, wantPercentile: 100.0 / 3},
		{name: "bottom of the pack", prior: []float64{90, 80, 70}, score: 10, wantRank: 4, wantPercentile: 0},
		{name: "middle", prior: []float64{90, 50}, score: 70, wantRank: 2, wantPercentile: 50},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rank, percentile := rankAmong(tc.prior, tc.score)
			assert.Equal(t, tc.wantRank, rank)
			assert.InDelta(t, tc.wantPercentile, percentile, 0.001)
		})
	}
}

func TestSubmitResult_TestNotFound(t *testing.T) {
	svc, _, _ := newScoringFixture()

	_, err := svc.SubmitResult(7, dto.ResultSubmitDTO{TestID: 42}, "")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGetResult_OwnershipEnforced(t *testing.T) {
	svc, _, resultRepo := newScoringFixture(fourQuestionTest())
	resultRepo.Create(nil, &model.TestResult{TestID: 1, UserID: 7, Score: 75})

	// Owner reads fine, and reads are stable across calls.
	first, err := svc.GetResult(1, 7, model.RoleUser)
	require.NoError(t, err)
	second, err := svc.GetResult(1, 7, model.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// A different non-admin user is rejected.
	_, err = svc.GetResult(1, 8, model.RoleUser)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	// Admins may read anyone's result.
	_, err = svc.GetResult(1, 8, model.RoleAdmin)
	assert.NoError(t, err)

	_, err = svc.GetResult(404, 7, model.RoleUser)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestQuickSubmit_PositionalScoring(t *testing.T) {
	svc, testRepo, _ := newScoringFixture(fourQuestionTest())

	summary, err := svc.QuickSubmit(1, dto.QuickSubmitDTO{
		Answers:   []*int{intPtr(1), intPtr(2), nil}, // correct, wrong, unanswered, missing
		TimeSpent: 120,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.CorrectAnswers)
	assert.Equal(t, 4, summary.TotalQuestions)
	assert.Equal(t, 10, summary.TotalScore)
	assert.InDelta(t, 25.0, summary.Percentage, 0.001)
	assert.Len(t, summary.Results, 4)
	assert.Equal(t, 1, testRepo.participants[1])
}

func TestQuickSubmit_InactiveTest(t *testing.T) {
	test := fourQuestionTest()
	test.IsActive = false
	svc, _, _ := newScoringFixture(test)

	_, err := svc.QuickSubmit(1, dto.QuickSubmitDTO{Answers: []*int{}})
	assert.ErrorIs(t, err, apperror.ErrTestInactive)
}
