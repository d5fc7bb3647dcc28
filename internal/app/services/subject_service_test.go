package services

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manassa/platform/internal/app/models"
	"github.com/manassa/platform/internal/app/models/dto"
	"github.com/manassa/platform/internal/pkg/apperrors"
	"github.com/manassa/platform/internal/pkg/cache"
)

type fakeUserGetter struct {
	users map[int64]*models.User
}

func (f *fakeUserGetter) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

type fakeSubjectStore struct {
	subjects    map[int64]*models.Subject
	active      []*models.Subject
	listCalls   int
	updated     []*models.Subject
	deleted     []int64
	enrolled    int
	materials   int
	nextID      int64
	createCalls int
}

func (f *fakeSubjectStore) Create(ctx context.Context, subject *models.Subject) error {
	f.createCalls++
	f.nextID++
	subject.ID = f.nextID
	subject.IsActive = true
	if f.subjects == nil {
		f.subjects = map[int64]*models.Subject{}
	}
	f.subjects[subject.ID] = subject
	return nil
}

func (f *fakeSubjectStore) GetByID(ctx context.Context, id int64) (*models.Subject, error) {
	subject, ok := f.subjects[id]
	if !ok {
		return nil, apperrors.ErrSubjectNotFound
	}
	return subject, nil
}

func (f *fakeSubjectStore) ListActive(ctx context.Context) ([]*models.Subject, error) {
	f.listCalls++
	return f.active, nil
}

func (f *fakeSubjectStore) Update(ctx context.Context, subject *models.Subject) error {
	f.updated = append(f.updated, subject)
	return nil
}

func (f *fakeSubjectStore) Delete(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeSubjectStore) CountsBySubject(ctx context.Context, subjectID int64) (int, int, error) {
	return f.enrolled, f.materials, nil
}

func redisCacheStore(t *testing.T) *cache.Store {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return cache.NewStore(client, "test")
}

func catalogFixture() *fakeSubjectStore {
	teacherID := int64(7)
	subjects := []*models.Subject{
		{ID: 1, Name: "Physics", Price: 100, TeacherID: &teacherID, IsActive: true},
		{ID: 2, Name: "Arabic", Price: 0, IsActive: true},
	}
	byID := map[int64]*models.Subject{}
	for _, s := range subjects {
		byID[s.ID] = s
	}
	return &fakeSubjectStore{subjects: byID, active: subjects, nextID: 2, enrolled: 5, materials: 3}
}

func TestListCatalogComputesDiscounts(t *testing.T) {
	store := catalogFixture()
	users := &fakeUserGetter{users: map[int64]*models.User{7: {ID: 7, FullName: "Sara Ahmed"}}}
	svc := NewSubjectService(store, users, cache.NewStore(nil, "test"))

	catalog, err := svc.ListCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, catalog, 2)

	physics := catalog[0]
	assert.Equal(t, float64(100), physics.Price)
	assert.Equal(t, float64(70), physics.DiscountedPrice)
	assert.False(t, physics.IsFree)
	require.NotNil(t, physics.TeacherName)
	assert.Equal(t, "Sara Ahmed", *physics.TeacherName)
	assert.Equal(t, 5, physics.EnrolledCount)

	arabic := catalog[1]
	assert.True(t, arabic.IsFree)
	assert.Zero(t, arabic.DiscountedPrice)
}

func TestListCatalogServesSecondReadFromCache(t *testing.T) {
	store := catalogFixture()
	users := &fakeUserGetter{users: map[int64]*models.User{7: {ID: 7, FullName: "Sara Ahmed"}}}
	svc := NewSubjectService(store, users, redisCacheStore(t))

	first, err := svc.ListCatalog(context.Background())
	require.NoError(t, err)
	second, err := svc.ListCatalog(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.listCalls)
}

func TestCreateSubjectInvalidatesCatalogCache(t *testing.T) {
	store := catalogFixture()
	users := &fakeUserGetter{users: map[int64]*models.User{7: {ID: 7, FullName: "Sara Ahmed"}}}
	svc := NewSubjectService(store, users, redisCacheStore(t))

	_, err := svc.ListCatalog(context.Background())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), &dto.CreateSubjectRequest{Name: "Chemistry", Price: 50})
	require.NoError(t, err)

	// cache was dropped, so the next read hits the database again
	_, err = svc.ListCatalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, store.listCalls)
}

func TestUpdateSubjectAppliesPartialChanges(t *testing.T) {
	store := catalogFixture()
	users := &fakeUserGetter{users: map[int64]*models.User{7: {ID: 7, FullName: "Sara Ahmed"}}}
	svc := NewSubjectService(store, users, cache.NewStore(nil, "test"))

	newPrice := 80.0
	resp, err := svc.Update(context.Background(), 1, &dto.UpdateSubjectRequest{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, float64(80), resp.Price)
	assert.Equal(t, float64(56), resp.DiscountedPrice)
	assert.Equal(t, "Physics", resp.Name)
	require.Len(t, store.updated, 1)
}

func TestGetSubjectMissingTeacherOmitsName(t *testing.T) {
	teacherID := int64(99) // deleted account
	store := &fakeSubjectStore{subjects: map[int64]*models.Subject{
		1: {ID: 1, Name: "Physics", Price: 100, TeacherID: &teacherID, IsActive: true},
	}}
	users := &fakeUserGetter{users: map[int64]*models.User{}}
	svc := NewSubjectService(store, users, cache.NewStore(nil, "test"))

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, resp.TeacherName)
}
