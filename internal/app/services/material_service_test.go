package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manassa/platform/internal/app/models"
	"github.com/manassa/platform/internal/app/models/dto"
	"github.com/manassa/platform/internal/pkg/apperrors"
)

type fakeMaterialStore struct {
	materials map[int64]*models.Material
	created   []*models.Material
	updated   []*models.Material
	deleted   []int64
	views     map[int64]int64
	createErr error
}

func (f *fakeMaterialStore) Create(ctx context.Context, material *models.Material) error {
	if f.createErr != nil {
		return f.createErr
	}
	material.ID = int64(len(f.created) + 1)
	f.created = append(f.created, material)
	return nil
}

func (f *fakeMaterialStore) GetByID(ctx context.Context, id int64) (*models.Material, error) {
	material, ok := f.materials[id]
	if !ok {
		return nil, apperrors.ErrMaterialNotFound
	}
	return material, nil
}

func (f *fakeMaterialStore) List(ctx context.Context, filter *dto.MaterialFilterRequest, offset, limit int) ([]*models.Material, int, error) {
	var out []*models.Material
	for _, m := range f.materials {
		out = append(out, m)
	}
	return out, len(out), nil
}

func (f *fakeMaterialStore) Update(ctx context.Context, material *models.Material) error {
	f.updated = append(f.updated, material)
	return nil
}

func (f *fakeMaterialStore) IncrementViews(ctx context.Context, id int64) (int64, error) {
	if _, ok := f.materials[id]; !ok {
		return 0, apperrors.ErrMaterialNotFound
	}
	if f.views == nil {
		f.views = map[int64]int64{}
	}
	f.views[id]++
	return f.views[id], nil
}

func (f *fakeMaterialStore) Delete(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func ownedSubjects() *fakeSubjectGetter {
	return &fakeSubjectGetter{subjects: map[int64]*models.Subject{10: paidSubject()}}
}

func TestCreateMaterialRequiresSubjectOwnership(t *testing.T) {
	store := &fakeMaterialStore{materials: map[int64]*models.Material{}}
	storage := &fakeFileStorage{}
	svc := NewMaterialService(store, ownedSubjects(), storage)

	req := &dto.CreateMaterialRequest{
		Title:     "Chapter 4 - Motion",
		Type:      models.MaterialVideo,
		SubjectID: 10,
	}

	// teacher 7 owns subject 10
	resp, err := svc.Create(context.Background(), 7, req, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.TeacherID)
	require.Len(t, store.created, 1)

	// another teacher may not attach content to it
	_, err = svc.Create(context.Background(), 8, req, nil)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestRecordViewIncrementsCounter(t *testing.T) {
	store := &fakeMaterialStore{materials: map[int64]*models.Material{
		1: {ID: 1, Title: "Chapter 4", SubjectID: 10, TeacherID: 7},
	}}
	svc := NewMaterialService(store, ownedSubjects(), &fakeFileStorage{})

	first, err := svc.RecordView(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Views)

	second, err := svc.RecordView(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Views)
}

func TestRecordViewUnknownMaterial(t *testing.T) {
	store := &fakeMaterialStore{materials: map[int64]*models.Material{}}
	svc := NewMaterialService(store, ownedSubjects(), &fakeFileStorage{})

	_, err := svc.RecordView(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrMaterialNotFound)
}

func TestUpdateMaterialAdminBypassesOwnership(t *testing.T) {
	store := &fakeMaterialStore{materials: map[int64]*models.Material{
		1: {ID: 1, Title: "Chapter 4", SubjectID: 10, TeacherID: 7},
	}}
	svc := NewMaterialService(store, ownedSubjects(), &fakeFileStorage{})

	newTitle := "Chapter 4 (revised)"
	req := &dto.UpdateMaterialRequest{Title: &newTitle}

	// a different teacher is rejected
	_, err := svc.Update(context.Background(), 8, models.RoleTeacher, 1, req)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	// an admin is not
	resp, err := svc.Update(context.Background(), 99, models.RoleAdmin, 1, req)
	require.NoError(t, err)
	assert.Equal(t, "Chapter 4 (revised)", resp.Title)
}

func TestDeleteMaterialRemovesStoredFile(t *testing.T) {
	fileURL := "/uploads/materials/chapter4.mp4"
	store := &fakeMaterialStore{materials: map[int64]*models.Material{
		1: {ID: 1, Title: "Chapter 4", SubjectID: 10, TeacherID: 7, FileURL: &fileURL},
	}}
	storage := &fakeFileStorage{}
	svc := NewMaterialService(store, ownedSubjects(), storage)

	require.NoError(t, svc.Delete(context.Background(), 7, models.RoleTeacher, 1))
	assert.Equal(t, []int64{1}, store.deleted)
	assert.Equal(t, []string{fileURL}, storage.deleted)
}

func TestFormatFileSize(t *testing.T) {
	assert.Equal(t, "512 B", formatFileSize(512))
	assert.Equal(t, "1.0 KB", formatFileSize(1024))
	assert.Equal(t, "1.5 MB", formatFileSize(1536*1024))
}
