package service

import (
	"context"
	"testing"

	"vitrifiye-studio/internal/dto"
	"vitrifiye-studio/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newConfigurationService() (*ConfigurationService, *memoryConfigs) {
	configs := newMemoryConfigs()
	return NewConfigurationService(configs, testCatalog(), zap.NewNop()), configs
}

func TestConfigurationService_CreatePricesKnownProducts(t *testing.T) {
	svc, _ := newConfigurationService()
	userID := uuid.New()

	resp, err := svc.Create(context.Background(), &dto.CreateConfigurationRequest{
		Title:    "Banyom",
		RoomType: "banyo",
		SelectedProducts: []dto.PlacedProduct{
			{ProductID: 1, Position: dto.Position{X: 10, Y: 20}},
			{ProductID: 3},
			{ProductID: 999},
		},
	}, &userID)
	require.NoError(t, err)

	assert.Equal(t, int64(300000+400000), resp.TotalPrice)
	assert.Empty(t, resp.SessionID)
	require.NotNil(t, resp.UserID)
	assert.Equal(t, userID.String(), *resp.UserID)
	assert.Len(t, resp.SelectedProducts, 3)
}

func TestConfigurationService_AnonymousGetsSession(t *testing.T) {
	svc, _ := newConfigurationService()

	resp, err := svc.Create(context.Background(), &dto.CreateConfigurationRequest{Title: "x", RoomType: "mutfak"}, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.SessionID)
	assert.Nil(t, resp.UserID)
	assert.Zero(t, resp.TotalPrice)
}

func TestConfigurationService_UpdateOwnership(t *testing.T) {
	svc, _ := newConfigurationService()
	ctx := context.Background()
	owner := uuid.New()

	created, err := svc.Create(ctx, &dto.CreateConfigurationRequest{
		Title:            "Eski",
		RoomType:         "banyo",
		SelectedProducts: []dto.PlacedProduct{{ProductID: 1}},
	}, &owner)
	require.NoError(t, err)

	title := "Yeni"
	_, err = svc.Update(ctx, created.ID, &dto.UpdateConfigurationRequest{Title: &title}, Actor{UserID: uuid.New(), Role: models.RoleUser})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.Update(ctx, created.ID, &dto.UpdateConfigurationRequest{
		Title:            &title,
		SelectedProducts: []dto.PlacedProduct{{ProductID: 2}, {ProductID: 4}},
	}, Actor{UserID: owner, Role: models.RoleUser})
	require.NoError(t, err)
	assert.Equal(t, "Yeni", updated.Title)
	assert.Equal(t, int64(600000+200000), updated.TotalPrice)

	public := true
	updated, err = svc.Update(ctx, created.ID, &dto.UpdateConfigurationRequest{IsPublic: &public}, Actor{UserID: uuid.New(), Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.True(t, updated.IsPublic)
	assert.Equal(t, int64(800000), updated.TotalPrice, "price is kept when products are unchanged")

	_, err = svc.Update(ctx, 404, &dto.UpdateConfigurationRequest{}, Actor{UserID: owner})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConfigurationService_GetResolvesProducts(t *testing.T) {
	svc, _ := newConfigurationService()
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateConfigurationRequest{
		Title:            "x",
		RoomType:         "banyo",
		SelectedProducts: []dto.PlacedProduct{{ProductID: 3}, {ProductID: 5}},
	}, nil)
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Products, 1)
	assert.Equal(t, int64(3), got.Products[0].ID)
}

func TestConfigurationService_DeleteAndLists(t *testing.T) {
	svc, configs := newConfigurationService()
	ctx := context.Background()
	owner := uuid.New()

	mine, err := svc.Create(ctx, &dto.CreateConfigurationRequest{Title: "a", RoomType: "banyo", IsPublic: true}, &owner)
	require.NoError(t, err)
	_, err = svc.Create(ctx, &dto.CreateConfigurationRequest{Title: "b", RoomType: "banyo"}, nil)
	require.NoError(t, err)

	list, err := svc.ListMine(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	public, err := svc.ListPublic(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, public, 1)

	assert.ErrorIs(t, svc.Delete(ctx, mine.ID, Actor{UserID: uuid.New()}), ErrForbidden)
	require.NoError(t, svc.Delete(ctx, mine.ID, Actor{UserID: owner}))
	assert.Empty(t, configs.configs[mine.ID])
	assert.ErrorIs(t, svc.Delete(ctx, mine.ID, Actor{UserID: owner}), ErrNotFound)
}
