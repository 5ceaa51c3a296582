package services

import (
	"context"
	"time"

	"praxiszeit/internal/adapters/persistence/models"
	"praxiszeit/internal/core/domain"

	"gorm.io/gorm"
)

// In-memory repositories for service tests. They implement just enough of
// the repository interfaces to drive the services without a database.

type fakeUserRepo struct {
	users map[uint]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uint]*models.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uint) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, practiceID uint, _, _ int) ([]*models.User, int64, error) {
	users, err := r.ListActiveByPractice(context.Background(), practiceID)
	return users, int64(len(users)), err
}

func (r *fakeUserRepo) ListActiveByPractice(_ context.Context, practiceID uint) ([]*models.User, error) {
	var users []*models.User
	for _, u := range r.users {
		if u.PracticeID == practiceID && u.IsActive {
			users = append(users, u)
		}
	}
	return users, nil
}

func (r *fakeUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(context.Background(), username)
	return err == nil, nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(context.Background(), email)
	return err == nil, nil
}

type fakeBlockRepo struct {
	blocks map[uint]*models.TimeBlock
	stamps []*models.TimeStamp
	nextID uint
}

func newFakeBlockRepo() *fakeBlockRepo {
	return &fakeBlockRepo{blocks: make(map[uint]*models.TimeBlock), nextID: 1}
}

func (r *fakeBlockRepo) CreateBlock(_ context.Context, block *models.TimeBlock) error {
	block.ID = r.nextID
	r.nextID++
	copied := *block
	r.blocks[block.ID] = &copied
	return nil
}

func (r *fakeBlockRepo) GetBlockByID(_ context.Context, id uint) (*models.TimeBlock, error) {
	if b, ok := r.blocks[id]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeBlockRepo) UpdateBlock(_ context.Context, block *models.TimeBlock) error {
	copied := *block
	r.blocks[block.ID] = &copied
	return nil
}

func (r *fakeBlockRepo) GetOpenBlocksByUser(_ context.Context, userID uint) ([]models.TimeBlock, error) {
	var out []models.TimeBlock
	for _, b := range r.blocks {
		if b.UserID == userID && b.EndTime == nil && b.Status == domain.BlockActive {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBlockRepo) GetBlocksByUserRange(_ context.Context, userID uint, from, to time.Time) ([]models.TimeBlock, error) {
	var out []models.TimeBlock
	for _, b := range r.blocks {
		if b.UserID == userID && !b.Date.Before(from) && !b.Date.After(to) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBlockRepo) GetOpenBlocksByPractice(_ context.Context, practiceID uint) ([]models.TimeBlock, error) {
	var out []models.TimeBlock
	for _, b := range r.blocks {
		if b.PracticeID == practiceID && b.EndTime == nil && b.Status == domain.BlockActive {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBlockRepo) CountHomeofficeDays(_ context.Context, userID uint, from, to time.Time) (int, error) {
	days := make(map[string]bool)
	for _, b := range r.blocks {
		if b.UserID == userID &&
			b.Location == string(domain.LocationHomeoffice) &&
			b.Status != domain.BlockCancelled &&
			!b.Date.Before(from) && !b.Date.After(to) {
			days[b.Date.Format("2006-01-02")] = true
		}
	}
	return len(days), nil
}

func (r *fakeBlockRepo) CreateStamp(_ context.Context, stamp *models.TimeStamp) error {
	stamp.ID = uint(len(r.stamps) + 1)
	copied := *stamp
	r.stamps = append(r.stamps, &copied)
	return nil
}

func (r *fakeBlockRepo) GetLastStampForBlock(_ context.Context, blockID uint) (*models.TimeStamp, error) {
	var last *models.TimeStamp
	for _, s := range r.stamps {
		if s.BlockID == blockID {
			last = s
		}
	}
	if last == nil {
		return nil, nil
	}
	copied := *last
	return &copied, nil
}

func (r *fakeBlockRepo) GetStampsForBlock(_ context.Context, blockID uint) ([]models.TimeStamp, error) {
	var out []models.TimeStamp
	for _, s := range r.stamps {
		if s.BlockID == blockID {
			out = append(out, *s)
		}
	}
	return out, nil
}

type fakePolicyRepo struct {
	policies map[uint]*models.HomeofficePolicy
}

func newFakePolicyRepo(policies ...*models.HomeofficePolicy) *fakePolicyRepo {
	r := &fakePolicyRepo{policies: make(map[uint]*models.HomeofficePolicy)}
	for _, p := range policies {
		r.policies[p.UserID] = p
	}
	return r
}

func (r *fakePolicyRepo) Upsert(_ context.Context, policy *models.HomeofficePolicy) error {
	r.policies[policy.UserID] = policy
	return nil
}

func (r *fakePolicyRepo) GetByUserID(_ context.Context, userID uint) (*models.HomeofficePolicy, error) {
	return r.policies[userID], nil
}

func (r *fakePolicyRepo) ListByPractice(_ context.Context, practiceID uint) ([]*models.HomeofficePolicy, error) {
	var out []*models.HomeofficePolicy
	for _, p := range r.policies {
		if p.PracticeID == practiceID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePolicyRepo) Delete(_ context.Context, userID uint) error {
	delete(r.policies, userID)
	return nil
}

type fakeCorrectionRepo struct {
	requests map[uint]*models.CorrectionRequest
	nextID   uint
}

func newFakeCorrectionRepo() *fakeCorrectionRepo {
	return &fakeCorrectionRepo{requests: make(map[uint]*models.CorrectionRequest), nextID: 1}
}

func (r *fakeCorrectionRepo) Create(_ context.Context, req *models.CorrectionRequest) error {
	req.ID = r.nextID
	r.nextID++
	copied := *req
	r.requests[req.ID] = &copied
	return nil
}

func (r *fakeCorrectionRepo) GetByID(_ context.Context, id uint) (*models.CorrectionRequest, error) {
	if req, ok := r.requests[id]; ok {
		copied := *req
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCorrectionRepo) Update(_ context.Context, req *models.CorrectionRequest) error {
	copied := *req
	r.requests[req.ID] = &copied
	return nil
}

func (r *fakeCorrectionRepo) ListByUser(_ context.Context, userID uint, _, _ int) ([]*models.CorrectionRequest, int64, error) {
	var out []*models.CorrectionRequest
	for _, req := range r.requests {
		if req.UserID == userID {
			out = append(out, req)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeCorrectionRepo) ListByPractice(_ context.Context, practiceID uint, status string, _, _ int) ([]*models.CorrectionRequest, int64, error) {
	var out []*models.CorrectionRequest
	for _, req := range r.requests {
		if req.PracticeID == practiceID && (status == "" || req.Status == status) {
			out = append(out, req)
		}
	}
	return out, int64(len(out)), nil
}

type fakePlausRepo struct {
	issues map[uint]*models.PlausibilityIssue
	nextID uint
}

func newFakePlausRepo() *fakePlausRepo {
	return &fakePlausRepo{issues: make(map[uint]*models.PlausibilityIssue), nextID: 1}
}

func (r *fakePlausRepo) Create(_ context.Context, issue *models.PlausibilityIssue) error {
	issue.ID = r.nextID
	r.nextID++
	copied := *issue
	r.issues[issue.ID] = &copied
	return nil
}

func (r *fakePlausRepo) ExistsOpen(_ context.Context, blockID uint, issueType string) (bool, error) {
	for _, i := range r.issues {
		if i.TimeBlockID == blockID && i.IssueType == issueType && !i.Resolved {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePlausRepo) ListOpenByPractice(_ context.Context, practiceID uint, _, _ int) ([]*models.PlausibilityIssue, int64, error) {
	var out []*models.PlausibilityIssue
	for _, i := range r.issues {
		if i.PracticeID == practiceID && !i.Resolved {
			out = append(out, i)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakePlausRepo) ListOpenByUser(_ context.Context, userID uint) ([]*models.PlausibilityIssue, error) {
	var out []*models.PlausibilityIssue
	for _, i := range r.issues {
		if i.UserID == userID && !i.Resolved {
			out = append(out, i)
		}
	}
	return out, nil
}

func (r *fakePlausRepo) Resolve(_ context.Context, id uint) error {
	if i, ok := r.issues[id]; ok {
		i.Resolved = true
	}
	return nil
}

func (r *fakePlausRepo) ResolveForBlock(_ context.Context, blockID uint) error {
	for _, i := range r.issues {
		if i.TimeBlockID == blockID {
			i.Resolved = true
		}
	}
	return nil
}

type fakePracticeRepo struct {
	practices map[uint]*models.Practice
}

func newFakePracticeRepo(practices ...*models.Practice) *fakePracticeRepo {
	r := &fakePracticeRepo{practices: make(map[uint]*models.Practice)}
	for _, p := range practices {
		r.practices[p.ID] = p
	}
	return r
}

func (r *fakePracticeRepo) Create(_ context.Context, practice *models.Practice) error {
	r.practices[practice.ID] = practice
	return nil
}

func (r *fakePracticeRepo) GetByID(_ context.Context, id uint) (*models.Practice, error) {
	if p, ok := r.practices[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePracticeRepo) GetBySlug(_ context.Context, slug string) (*models.Practice, error) {
	for _, p := range r.practices {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakePracticeRepo) List(_ context.Context) ([]*models.Practice, error) {
	var out []*models.Practice
	for _, p := range r.practices {
		out = append(out, p)
	}
	return out, nil
}
