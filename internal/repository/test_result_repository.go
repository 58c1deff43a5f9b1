package repository

import (
	"github.com/quizmind/quizmind-api/internal/model"
	"gorm.io/gorm"
)

type TestResultRepository interface {
	// Create inserts the result and its answer rows. When tx is non-nil
	// the insert joins that transaction.
	Create(tx *gorm.DB, result *model.TestResult) error
	FindByIDWithDetails(id uint) (*model.TestResult, error)
	// FindScoresByTest returns the scores of every prior result for a
	// test, ordered descending. It is the snapshot read for rank and
	// percentile computation.
	FindScoresByTest(testID uint) ([]float64, error)
	FindByUser(userID uint, testID *uint, page, limit int) ([]model.TestResult, int64, error)
	FindAll(testID, userID *uint, page, limit int) ([]model.TestResult, int64, error)
}

type testResultRepository struct {
	db *gorm.DB
}

func NewTestResultRepository(db *gorm.DB) TestResultRepository {
	return &testResultRepository{db: db}
}

func (r *testResultRepository) Create(tx *gorm.DB, result *model.TestResult) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(result).Error
}

func (r *testResultRepository) FindByIDWithDetails(id uint) (*model.TestResult, error) {
	var result model.TestResult
	err := r.db.
		Preload("Test").
		Preload("Answers.Question").
		First(&result, id).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *testResultRepository) FindScoresByTest(testID uint) ([]float64, error) {
	var scores []float64
	err := r.db.Model(&model.TestResult{}).
		Where("test_id = ?", testID).
		Order("score DESC").
		Pluck("score", &scores).Error
	return scores, err
}

func (r *testResultRepository) FindByUser(userID uint, testID *uint, page, limit int) ([]model.TestResult, int64, error) {
	query := r.db.Model(&model.TestResult{}).Where("user_id = ?", userID)
	if testID != nil {
		query = query.Where("test_id = ?", *testID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var results []model.TestResult
	err := query.
		Preload("Test").
		Order("completed_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&results).Error
	return results, total, err
}

func (r *testResultRepository) FindAll(testID, userID *uint, page, limit int) ([]model.TestResult, int64, error) {
	query := r.db.Model(&model.TestResult{})
	if testID != nil {
		query = query.Where("test_id = ?", *testID)
	}
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var results []model.TestResult
	err := query.
		Preload("Test").
		Preload("User").
		Order("completed_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&results).Error
	return results, total, err
}
