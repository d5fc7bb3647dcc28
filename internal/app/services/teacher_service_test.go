package services

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manassa/platform/internal/app/models"
	"github.com/manassa/platform/internal/app/models/dto"
	"github.com/manassa/platform/internal/pkg/apperrors"
	"github.com/manassa/platform/internal/pkg/cache"
)

type fakeTeacherUserStore struct {
	users       map[int64]*models.User
	emails      map[string]bool
	createdInTx []*models.User
	updated     []*models.User
	deleted     []int64
	createErr   error
}

func (f *fakeTeacherUserStore) CreateTx(ctx context.Context, tx pgx.Tx, user *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	user.ID = int64(len(f.createdInTx) + 100)
	f.createdInTx = append(f.createdInTx, user)
	return nil
}

func (f *fakeTeacherUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeTeacherUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	return f.emails[email], nil
}

func (f *fakeTeacherUserStore) ListByRole(ctx context.Context, role models.Role, offset, limit int) ([]*models.User, int, error) {
	var out []*models.User
	for _, u := range f.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, len(out), nil
}

func (f *fakeTeacherUserStore) Update(ctx context.Context, user *models.User) error {
	f.updated = append(f.updated, user)
	return nil
}

func (f *fakeTeacherUserStore) Delete(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeTeacherSubjectStore struct {
	upserted  []*models.Subject
	byTeacher map[int64][]*models.Subject
	upsertErr error
}

func (f *fakeTeacherSubjectStore) UpsertForTeacherTx(ctx context.Context, tx pgx.Tx, name string, description *string, price float64, teacherID int64) (*models.Subject, error) {
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	subject := &models.Subject{
		ID:          int64(len(f.upserted) + 1),
		Name:        name,
		Description: description,
		Price:       price,
		TeacherID:   &teacherID,
		IsActive:    true,
	}
	f.upserted = append(f.upserted, subject)
	return subject, nil
}

func (f *fakeTeacherSubjectStore) ListByTeacher(ctx context.Context, teacherID int64) ([]*models.Subject, error) {
	return f.byTeacher[teacherID], nil
}

func (f *fakeTeacherSubjectStore) CountsBySubject(ctx context.Context, subjectID int64) (int, int, error) {
	return 3, 2, nil
}

func createTeacherReq() *dto.CreateTeacherRequest {
	return &dto.CreateTeacherRequest{
		Email:    "teacher@example.com",
		Password: "password123",
		FullName: "Sara Ahmed",
		Subject:  "Physics",
		Price:    100,
	}
}

func TestCreateTeacherWritesUserAndSubjectInOneTransaction(t *testing.T) {
	tx := &fakeTxRunner{}
	users := &fakeTeacherUserStore{emails: map[string]bool{}}
	subjects := &fakeTeacherSubjectStore{}
	svc := NewTeacherService(tx, users, subjects, cache.NewStore(nil, "test"))

	resp, err := svc.Create(context.Background(), createTeacherReq())
	require.NoError(t, err)

	assert.Equal(t, 1, tx.calls)
	require.Len(t, users.createdInTx, 1)
	require.Len(t, subjects.upserted, 1)

	user := users.createdInTx[0]
	assert.Equal(t, models.RoleTeacher, user.Role)
	assert.NotEqual(t, "password123", user.Password)
	require.NotNil(t, user.Subject)
	assert.Equal(t, "Physics", *user.Subject)

	subject := subjects.upserted[0]
	require.NotNil(t, subject.TeacherID)
	assert.Equal(t, user.ID, *subject.TeacherID)
	assert.Equal(t, float64(100), subject.Price)

	assert.Equal(t, "Sara Ahmed", resp.User.FullName)
	require.Len(t, resp.Subjects, 1)
	assert.Equal(t, "Physics", resp.Subjects[0].Name)
}

func TestCreateTeacherRejectsDuplicateEmail(t *testing.T) {
	users := &fakeTeacherUserStore{emails: map[string]bool{"teacher@example.com": true}}
	svc := NewTeacherService(&fakeTxRunner{}, users, &fakeTeacherSubjectStore{}, cache.NewStore(nil, "test"))

	_, err := svc.Create(context.Background(), createTeacherReq())
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	assert.Empty(t, users.createdInTx)
}

func TestCreateTeacherSubjectFailureCreatesNoAccount(t *testing.T) {
	tx := &fakeTxRunner{}
	users := &fakeTeacherUserStore{emails: map[string]bool{}}
	subjects := &fakeTeacherSubjectStore{upsertErr: apperrors.ErrConflict}
	svc := NewTeacherService(tx, users, subjects, cache.NewStore(nil, "test"))

	_, err := svc.Create(context.Background(), createTeacherReq())
	assert.Error(t, err)
	// the real transaction rolls the user row back with it
	assert.Equal(t, 1, tx.calls)
}

func TestGetTeacherRejectsNonTeacher(t *testing.T) {
	users := &fakeTeacherUserStore{users: map[int64]*models.User{
		1: {ID: 1, Role: models.RoleStudent, FullName: "A Student"},
	}}
	svc := NewTeacherService(&fakeTxRunner{}, users, &fakeTeacherSubjectStore{}, cache.NewStore(nil, "test"))

	_, err := svc.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, apperrors.ErrTeacherNotFound)
}

func TestGetTeacherReturnsSubjects(t *testing.T) {
	teacherID := int64(2)
	users := &fakeTeacherUserStore{users: map[int64]*models.User{
		2: {ID: 2, Role: models.RoleTeacher, FullName: "Sara Ahmed"},
	}}
	subjects := &fakeTeacherSubjectStore{byTeacher: map[int64][]*models.Subject{
		2: {{ID: 1, Name: "Physics", Price: 100, TeacherID: &teacherID, IsActive: true}},
	}}
	svc := NewTeacherService(&fakeTxRunner{}, users, subjects, cache.NewStore(nil, "test"))

	resp, err := svc.GetByID(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, resp.Subjects, 1)
	assert.Equal(t, "Physics", resp.Subjects[0].Name)
	assert.Equal(t, 3, resp.Subjects[0].EnrolledCount)
	assert.Equal(t, 2, resp.Subjects[0].MaterialCount)
}

func seedCatalogCache(t *testing.T, store *cache.Store) {
	t.Helper()
	entries := []dto.SubjectResponse{{ID: 1, Name: "Physics", Price: 100}}
	require.NoError(t, store.Set(context.Background(), catalogCacheKey, entries, cache.CatalogTTL))
}

func TestCreateTeacherInvalidatesCatalogCache(t *testing.T) {
	cacheStore := redisCacheStore(t)
	seedCatalogCache(t, cacheStore)

	users := &fakeTeacherUserStore{emails: map[string]bool{}}
	svc := NewTeacherService(&fakeTxRunner{}, users, &fakeTeacherSubjectStore{}, cacheStore)

	_, err := svc.Create(context.Background(), createTeacherReq())
	require.NoError(t, err)

	var cached []dto.SubjectResponse
	assert.ErrorIs(t, cacheStore.Get(context.Background(), catalogCacheKey, &cached), cache.ErrNotFound)
}

func TestDeleteTeacherInvalidatesCatalogCache(t *testing.T) {
	cacheStore := redisCacheStore(t)
	seedCatalogCache(t, cacheStore)

	users := &fakeTeacherUserStore{users: map[int64]*models.User{
		2: {ID: 2, Role: models.RoleTeacher, FullName: "Sara Ahmed"},
	}}
	svc := NewTeacherService(&fakeTxRunner{}, users, &fakeTeacherSubjectStore{}, cacheStore)

	require.NoError(t, svc.Delete(context.Background(), 2))

	var cached []dto.SubjectResponse
	assert.ErrorIs(t, cacheStore.Get(context.Background(), catalogCacheKey, &cached), cache.ErrNotFound)
}

func TestDeleteTeacherRejectsNonTeacher(t *testing.T) {
	users := &fakeTeacherUserStore{users: map[int64]*models.User{
		1: {ID: 1, Role: models.RoleAdmin},
	}}
	svc := NewTeacherService(&fakeTxRunner{}, users, &fakeTeacherSubjectStore{}, cache.NewStore(nil, "test"))

	err := svc.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, apperrors.ErrTeacherNotFound)
	assert.Empty(t, users.deleted)
}
