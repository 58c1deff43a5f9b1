package service

import (
	"database/sql"
	"sort"

	"github.com/quizmind/quizmind-api/internal/model"
	"github.com/quizmind/quizmind-api/internal/repository"
	"gorm.io/gorm"
)

// In-memory fakes for the repository interfaces, used by the service
// tests so no database is required.

type fakeTestRepo struct {
	tests        map[uint]*model.Test
	participants map[uint]int
}

func newFakeTestRepo(tests ...*model.Test) *fakeTestRepo {
	r := &fakeTestRepo{tests: map[uint]*model.Test{}, participants: map[uint]int{}}
	for _, t := range tests {
		r.tests[t.ID] = t
	}
	return r
}

func (r *fakeTestRepo) Create(test *model.Test) error {
	if test.ID == 0 {
		test.ID = uint(len(r.tests) + 1)
	}
	r.tests[test.ID] = test
	return nil
}

func (r *fakeTestRepo) Update(test *model.Test) error {
	r.tests[test.ID] = test
	return nil
}

func (r *fakeTestRepo) FindByID(id uint) (*model.Test, error) {
	t, ok := r.tests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (r *fakeTestRepo) FindByIDWithQuestions(id uint) (*model.Test, error) {
	return r.FindByID(id)
}

func (r *fakeTestRepo) FindAllActiveWithQuestionCount() ([]repository.TestWithQuestionCount, error) {
	var out []repository.TestWithQuestionCount
	for _, t := range r.tests {
		if !t.IsActive {
			continue
		}
		out = append(out, repository.TestWithQuestionCount{Test: *t, QuestionCount: len(t.Questions)})
	}
	return out, nil
}

func (r *fakeTestRepo) IncrementParticipants(tx *gorm.DB, id uint) error {
	r.participants[id]++
	return nil
}

type fakeQuestionRepo struct {
	questions map[uint]*model.Question
	nextID    uint
}

func newFakeQuestionRepo(questions ...*model.Question) *fakeQuestionRepo {
	r := &fakeQuestionRepo{questions: map[uint]*model.Question{}, nextID: 1}
	for _, q := range questions {
		r.questions[q.ID] = q
		if q.ID >= r.nextID {
			r.nextID = q.ID + 1
		}
	}
	return r
}

func (r *fakeQuestionRepo) Create(question *model.Question) error {
	if question.ID == 0 {
		question.ID = r.nextID
		r.nextID++
	}
	r.questions[question.ID] = question
	return nil
}

func (r *fakeQuestionRepo) FindByID(id uint) (*model.Question, error) {
	q, ok := r.questions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *q
	return &cp, nil
}

func (r *fakeQuestionRepo) FindByTestID(testID uint) ([]model.Question, error) {
	var out []model.Question
	for _, q := range r.questions {
		if q.TestID == testID {
			out = append(out, *q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderInTest < out[j].OrderInTest })
	return out, nil
}

func (r *fakeQuestionRepo) Update(question *model.Question) error {
	r.questions[question.ID] = question
	return nil
}

func (r *fakeQuestionRepo) Delete(id uint) error {
	delete(r.questions, id)
	return nil
}

type fakeResultRepo struct {
	results map[uint]*model.TestResult
	nextID  uint
}

func newFakeResultRepo() *fakeResultRepo {
	return &fakeResultRepo{results: map[uint]*model.TestResult{}, nextID: 1}
}

func (r *fakeResultRepo) Create(tx *gorm.DB, result *model.TestResult) error {
	result.ID = r.nextID
	r.nextID++
	stored := *result
	r.results[result.ID] = &stored
	return nil
}

func (r *fakeResultRepo) FindByIDWithDetails(id uint) (*model.TestResult, error) {
	res, ok := r.results[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *res
	return &cp, nil
}

func (r *fakeResultRepo) FindScoresByTest(testID uint) ([]float64, error) {
	var scores []float64
	for _, res := range r.results {
		if res.TestID == testID {
			scores = append(scores, res.Score)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(scores)))
	return scores, nil
}

func (r *fakeResultRepo) FindByUser(userID uint, testID *uint, page, limit int) ([]model.TestResult, int64, error) {
	var out []model.TestResult
	for _, res := range r.results {
		if res.UserID != userID {
			continue
		}
		if testID != nil && res.TestID != *testID {
			continue
		}
		out = append(out, *res)
	}
	return out, int64(len(out)), nil
}

func (r *fakeResultRepo) FindAll(testID, userID *uint, page, limit int) ([]model.TestResult, int64, error) {
	var out []model.TestResult
	for _, res := range r.results {
		if testID != nil && res.TestID != *testID {
			continue
		}
		if userID != nil && res.UserID != *userID {
			continue
		}
		out = append(out, *res)
	}
	return out, int64(len(out)), nil
}

// fakeTxRunner executes the transaction body directly with a nil handle;
// the fakes above ignore the handle entirely.
type fakeTxRunner struct{}

func (fakeTxRunner) Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error {
	return fc(nil)
}

type fakeUserRepo struct {
	users map[uint]*model.User
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[uint]*model.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(user *model.User) error {
	if user.ID == 0 {
		user.ID = uint(len(r.users) + 1)
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(id uint) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
