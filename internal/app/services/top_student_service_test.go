package services

import (
	"context"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manassa/platform/internal/app/models"
	"github.com/manassa/platform/internal/app/models/dto"
	"github.com/manassa/platform/internal/app/repositories"
	"github.com/manassa/platform/internal/pkg/apperrors"
	"github.com/manassa/platform/internal/pkg/cache"
)

type fakeTopStudentStore struct {
	entries   map[int64]*models.TopStudent
	listed    []*repositories.TopStudentEntry
	listCalls int
	created   []*models.TopStudent
	updated   []*models.TopStudent
	deleted   []int64
}

func (f *fakeTopStudentStore) Create(ctx context.Context, entry *models.TopStudent) error {
	entry.ID = int64(len(f.created) + 1)
	f.created = append(f.created, entry)
	return nil
}

func (f *fakeTopStudentStore) GetByID(ctx context.Context, id int64) (*models.TopStudent, error) {
	entry, ok := f.entries[id]
	if !ok {
		return nil, apperrors.ErrTopStudentNotFound
	}
	return entry, nil
}

func (f *fakeTopStudentStore) List(ctx context.Context, featuredOnly bool) ([]*repositories.TopStudentEntry, error) {
	f.listCalls++
	if !featuredOnly {
		return f.listed, nil
	}
	var out []*repositories.TopStudentEntry
	for _, e := range f.listed {
		if e.TopStudent.IsFeatured {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeTopStudentStore) Update(ctx context.Context, entry *models.TopStudent) error {
	f.updated = append(f.updated, entry)
	return nil
}

func (f *fakeTopStudentStore) Delete(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func boardFixture() *fakeTopStudentStore {
	return &fakeTopStudentStore{
		entries: map[int64]*models.TopStudent{},
		listed: []*repositories.TopStudentEntry{
			{TopStudent: models.TopStudent{ID: 1, StudentID: 5, Achievement: "Olympiad gold", Score: 98, IsFeatured: true}, FullName: "Lina Hassan", Email: "lina@example.com"},
			{TopStudent: models.TopStudent{ID: 2, StudentID: 6, Achievement: "Perfect attendance", Score: 91}, FullName: "Omar Said", Email: "omar@example.com"},
		},
	}
}

func TestCreateTopStudentRejectsNonStudents(t *testing.T) {
	store := boardFixture()
	users := &fakeUserGetter{users: map[int64]*models.User{
		7: {ID: 7, Role: models.RoleTeacher, FullName: "Sara Ahmed"},
	}}
	svc := NewTopStudentService(store, users, cache.NewStore(nil, "test"), &fakeFileStorage{})

	_, err := svc.Create(context.Background(), &dto.CreateTopStudentRequest{StudentID: 7, Achievement: "Great teaching", Score: 90})
	assert.ErrorIs(t, err, apperrors.ErrNotAStudent)
	assert.Empty(t, store.created)
}

func TestCreateTopStudent(t *testing.T) {
	store := boardFixture()
	users := &fakeUserGetter{users: map[int64]*models.User{
		5: {ID: 5, Role: models.RoleStudent, FullName: "Lina Hassan", Email: "lina@example.com"},
	}}
	svc := NewTopStudentService(store, users, cache.NewStore(nil, "test"), &fakeFileStorage{})

	resp, err := svc.Create(context.Background(), &dto.CreateTopStudentRequest{StudentID: 5, Achievement: "Olympiad gold", Score: 98})
	require.NoError(t, err)
	assert.Equal(t, "Lina Hassan", resp.FullName)
	assert.Equal(t, 98, resp.Score)
	require.Len(t, store.created, 1)
}

func TestListBoardJoinsStudentProfiles(t *testing.T) {
	store := boardFixture()
	svc := NewTopStudentService(store, &fakeUserGetter{}, cache.NewStore(nil, "test"), &fakeFileStorage{})

	board, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, "Lina Hassan", board[0].FullName)
	assert.Equal(t, 98, board[0].Score)
	assert.Equal(t, "omar@example.com", board[1].Email)
}

func TestListFeaturedBypassesCache(t *testing.T) {
	store := boardFixture()
	svc := NewTopStudentService(store, &fakeUserGetter{}, redisCacheStore(t), &fakeFileStorage{})

	featured, err := svc.List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.True(t, featured[0].IsFeatured)

	_, err = svc.List(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 2, store.listCalls)
}

func TestListFullBoardCachesSecondRead(t *testing.T) {
	store := boardFixture()
	svc := NewTopStudentService(store, &fakeUserGetter{}, redisCacheStore(t), &fakeFileStorage{})

	first, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	second, err := svc.List(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.listCalls)
}

func TestUploadTopStudentImageReplacesPrevious(t *testing.T) {
	oldURL := "/uploads/top_students/old.jpg"
	store := boardFixture()
	store.entries[1] = &models.TopStudent{ID: 1, StudentID: 5, Achievement: "Olympiad gold", Score: 98, ImageURL: &oldURL}
	users := &fakeUserGetter{users: map[int64]*models.User{
		5: {ID: 5, Role: models.RoleStudent, FullName: "Lina Hassan"},
	}}
	storage := &fakeFileStorage{}
	svc := NewTopStudentService(store, users, redisCacheStore(t), storage)

	file := &multipart.FileHeader{Filename: "medal.jpg"}
	resp, err := svc.UploadImage(context.Background(), 1, file)
	require.NoError(t, err)

	require.NotNil(t, resp.ImageURL)
	assert.Contains(t, *resp.ImageURL, "medal.jpg")
	require.Len(t, store.updated, 1)
	assert.Equal(t, []string{oldURL}, storage.deleted)
}

func TestUploadTopStudentImageInvalidatesBoardCache(t *testing.T) {
	store := boardFixture()
	store.entries[1] = &models.TopStudent{ID: 1, StudentID: 5, Achievement: "Olympiad gold", Score: 98}
	users := &fakeUserGetter{users: map[int64]*models.User{
		5: {ID: 5, Role: models.RoleStudent, FullName: "Lina Hassan"},
	}}
	svc := NewTopStudentService(store, users, redisCacheStore(t), &fakeFileStorage{})

	_, err := svc.List(context.Background(), false)
	require.NoError(t, err)

	_, err = svc.UploadImage(context.Background(), 1, &multipart.FileHeader{Filename: "medal.jpg"})
	require.NoError(t, err)

	_, err = svc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 2, store.listCalls)
}

func TestUpdateTopStudentInvalidatesBoardCache(t *testing.T) {
	store := boardFixture()
	store.entries[1] = &models.TopStudent{ID: 1, StudentID: 5, Achievement: "Olympiad gold", Score: 98}
	users := &fakeUserGetter{users: map[int64]*models.User{
		5: {ID: 5, Role: models.RoleStudent, FullName: "Lina Hassan"},
	}}
	svc := NewTopStudentService(store, users, redisCacheStore(t), &fakeFileStorage{})

	_, err := svc.List(context.Background(), false)
	require.NoError(t, err)

	newScore := 99
	_, err = svc.Update(context.Background(), 1, &dto.UpdateTopStudentRequest{Score: &newScore})
	require.NoError(t, err)

	_, err = svc.List(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 2, store.listCalls)
}
