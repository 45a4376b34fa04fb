package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestRegistry_CreateSite_DefaultsToInternal(t *testing.T) {
	mockStorage := new(MockStorage)
	registry := NewRegistry(mockStorage, zap.NewNop())
	ctx := context.Background()

	mockStorage.On("CreateSite", ctx, mock.AnythingOfType("*inventory.Site")).Return(nil)

	site := &Site{Name: " 1º BAvEx ", SubSite: "HANGAR 2"}
	err := registry.CreateSite(ctx, site)

	assert.NoError(t, err)
	assert.Equal(t, "1º BAvEx", site.Name)
	assert.Equal(t, SiteTypeInternal, site.Type)
	mockStorage.AssertExpectations(t)
}

func TestRegistry_CreateSite_MissingName(t *testing.T) {
	mockStorage := new(MockStorage)
	registry := NewRegistry(mockStorage, zap.NewNop())
	ctx := context.Background()

	err := registry.CreateSite(ctx, &Site{Name: "   "})

	assert.Error(t, err)
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, "name", vErr.Field)
	mockStorage.AssertNotCalled(t, "CreateSite", ctx, mock.Anything)
}

func TestRegistry_CreateSite_InvalidType(t *testing.T) {
	mockStorage := new(MockStorage)
	registry := NewRegistry(mockStorage, zap.NewNop())
	ctx := context.Background()

	err := registry.CreateSite(ctx, &Site{Name: "PqRMnt", Type: "federal"})

	assert.Error(t, err)
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, "type", vErr.Field)
	mockStorage.AssertNotCalled(t, "CreateSite", ctx, mock.Anything)
}

func TestRegistry_FindOrCreateSite_ReturnsExisting(t *testing.T) {
	mockStorage := new(MockStorage)
	registry := NewRegistry(mockStorage, zap.NewNop())
	ctx := context.Background()

	existing := &Site{ID: 2, Name: "1º BAvEx", SubSite: "HANGAR 2", Type: SiteTypeInternal}

	mockStorage.On("FindSite", ctx, "1º BAvEx", "HANGAR 2").Return(existing, nil)

	site, err := registry.FindOrCreateSite(ctx, " 1º BAvEx ", "HANGAR 2", SiteTypeInternal)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), site.ID)
	mockStorage.AssertNotCalled(t, "CreateSite", ctx, mock.Anything)
	mockStorage.AssertExpectations(t)
}

func TestRegistry_FindOrCreateSite_CreatesWhenAbsent(t *testing.T) {
	mockStorage := new(MockStorage)
	registry := NewRegistry(mockStorage, zap.NewNop())
	ctx := context.Background()

	mockStorage.On("FindSite", ctx, "PqRMnt", "").Return(nil, ErrSiteNotFound)
	mockStorage.On("CreateSite", ctx, mock.AnythingOfType("*inventory.Site")).Run(func(args mock.Arguments) {
		args.Get(1).(*Site).ID = 9
	}).Return(nil)

	site, err := registry.FindOrCreateSite(ctx, "PqRMnt", "", SiteTypeExternal)

	assert.NoError(t, err)
	assert.Equal(t, int64(9), site.ID)
	assert.Equal(t, SiteTypeExternal, site.Type)
	mockStorage.AssertExpectations(t)
}

func TestRegistry_CreateLocation_SiteNotFound(t *testing.T) {
	mockStorage := new(MockStorage)
	registry := NewRegistry(mockStorage, zap.NewNop())
	ctx := context.Background()

	mockStorage.On("GetSite", ctx, int64(99)).Return(nil, ErrSiteNotFound)

	err := registry.CreateLocation(ctx, &Location{SiteID: 99, Section: "A"})

	assert.Equal(t, ErrSiteNotFound, err)
	mockStorage.AssertNotCalled(t, "CreateLocation", ctx, mock.Anything)
	mockStorage.AssertExpectations(t)
}

func TestRegistry_FindOrCreateLocation_ReturnsExisting(t *testing.T) {
	mockStorage := new(MockStorage)
	registry := NewRegistry(mockStorage, zap.NewNop())
	ctx := context.Background()

	shelf := int64(3)
	existing := &Location{ID: 7, SiteID: 2, Section: "A", Shelf: &shelf}

	mockStorage.On("GetSite", ctx, int64(2)).Return(&Site{ID: 2}, nil)
	mockStorage.On("FindLocation", ctx, int64(2), "A", &shelf, (*int64)(nil), (*int64)(nil)).Return(existing, nil)

	location, err := registry.FindOrCreateLocation(ctx, 2, " A ", &shelf, nil, nil)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), location.ID)
	mockStorage.AssertNotCalled(t, "CreateLocation", ctx, mock.Anything)
	mockStorage.AssertExpectations(t)
}

func TestRegistry_FindOrCreateLocation_CreatesWhenAbsent(t *testing.T) {
	mockStorage := new(MockStorage)
	registry := NewRegistry(mockStorage, zap.NewNop())
	ctx := context.Background()

	caseNo := int64(12)

	mockStorage.On("GetSite", ctx, int64(2)).Return(&Site{ID: 2}, nil)
	mockStorage.On("FindLocation", ctx, int64(2), "B", (*int64)(nil), &caseNo, (*int64)(nil)).Return(nil, ErrLocationNotFound)
	mockStorage.On("CreateLocation", ctx, mock.AnythingOfType("*inventory.Location")).Run(func(args mock.Arguments) {
		args.Get(1).(*Location).ID = 15
	}).Return(nil)

	location, err := registry.FindOrCreateLocation(ctx, 2, "B", nil, &caseNo, nil)

	assert.NoError(t, err)
	assert.Equal(t, int64(15), location.ID)
	assert.Equal(t, caseNo, *location.Case)
	mockStorage.AssertExpectations(t)
}
