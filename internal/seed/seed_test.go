package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appModels "github.com/yigit/unitrack/internal/app/models"
	"github.com/yigit/unitrack/internal/pkg/apperrors"
)

type fakeDepartments struct {
	rows      []*appModels.Department
	createErr map[string]error
}

func (f *fakeDepartments) Create(_ context.Context, d *appModels.Department) error {
	if err := f.createErr[d.Code]; err != nil {
		return err
	}
	d.ID = int64(len(f.rows) + 1)
	f.rows = append(f.rows, d)
	return nil
}

func (f *fakeDepartments) GetAll(context.Context) ([]*appModels.Department, error) {
	return f.rows, nil
}

func TestCreateDefaultDataSeedsEmptyCatalog(t *testing.T) {
	store := &fakeDepartments{}
	require.NoError(t, CreateDefaultData(context.Background(), store, zerolog.Nop()))

	require.Len(t, store.rows, len(DefaultDepartments))
	assert.Equal(t, "CS", store.rows[0].Code)
	assert.Equal(t, int64(1), store.rows[0].ID)
}

func TestCreateDefaultDataSkipsPopulatedCatalog(t *testing.T) {
	store := &fakeDepartments{rows: []*appModels.Department{{ID: 7, Name: "History", Code: "HIST"}}}
	require.NoError(t, CreateDefaultData(context.Background(), store, zerolog.Nop()))
	assert.Len(t, store.rows, 1)
}

func TestCreateDefaultDataCollectsErrors(t *testing.T) {
	boom := errors.New("boom")
	store := &fakeDepartments{createErr: map[string]error{
		"MATH": apperrors.ErrDepartmentAlreadyExists,
		"PHYS": boom,
	}}

	err := CreateDefaultData(context.Background(), store, zerolog.Nop())
	assert.ErrorIs(t, err, boom)
	assert.Len(t, store.rows, 1)
}
