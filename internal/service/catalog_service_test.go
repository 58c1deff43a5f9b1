package service

import (
	"encoding/json"
	"testing"

	"github.com/quizmind/quizmind-api/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSolvableTest_StripsCorrectAnswers(t *testing.T) {
	svc := NewCatalogService(newFakeTestRepo(fourQuestionTest()))

	solvable, err := svc.GetSolvableTest(1)
	require.NoError(t, err)
	require.Len(t, solvable.Questions, 4)

	raw, err := json.Marshal(solvable)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "correct_answer")

	// Question substance survives the stripping.
	assert.Equal(t, "Q1", solvable.Questions[0].QuestionText)
	assert.Len(t, solvable.Questions[0].Options, 4)
	assert.Equal(t, "General IQ Warmup", solvable.Test.Title)
}

func TestGetSolvableTest_NotFound(t *testing.T) {
	svc := NewCatalogService(newFakeTestRepo())

	_, err := svc.GetSolvableTest(42)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGetSolvableTest_InactiveTest(t *testing.T) {
	test := fourQuestionTest()
	test.IsActive = false
	svc := NewCatalogService(newFakeTestRepo(test))

	_, err := svc.GetSolvableTest(1)
	assert.ErrorIs(t, err, apperror.ErrTestInactive)
	assert.NotErrorIs(t, err, apperror.ErrNotFound)
}

func TestGetAllTests_OnlyActive(t *testing.T) {
	active := fourQuestionTest()
	inactive := fourQuestionTest()
	inactive.ID = 2
	inactive.IsActive = false
	svc := NewCatalogService(newFakeTestRepo(active, inactive))

	tests, err := svc.GetAllTests()
	require.NoError(t, err)
	require.Len(t, tests, 1)
	assert.Equal(t, uint(1), tests[0].ID)
	assert.Equal(t, 4, tests[0].QuestionCount)
}
