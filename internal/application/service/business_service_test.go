package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webdev26/facture-api/pkg/apperror"
)

func TestCreateBusiness_SequenceStart(t *testing.T) {
	repo := newFakeBusinessRepo()
	svc := NewBusinessService(repo, 1)
	ctx := context.Background()
	owner := uuid.New()

	// Default comes from configuration
	business, err := svc.CreateBusiness(ctx, &CreateBusinessInput{
		OwnerID: owner,
		Name:    "Webdev 26",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, business.SequenceStart)

	// A migrated book starts mid-sequence
	start := 250
	migrated, err := svc.CreateBusiness(ctx, &CreateBusinessInput{
		OwnerID:       owner,
		Name:          "Ancien cabinet",
		SequenceStart: &start,
	})
	require.NoError(t, err)
	assert.Equal(t, 250, migrated.SequenceStart)
}

func TestGetBusiness_OwnershipEnforced(t *testing.T) {
	repo := newFakeBusinessRepo()
	svc := NewBusinessService(repo, 1)
	ctx := context.Background()
	owner := uuid.New()

	business, err := svc.CreateBusiness(ctx, &CreateBusinessInput{
		OwnerID: owner,
		Name:    "Webdev 26",
	})
	require.NoError(t, err)

	_, err = svc.GetBusiness(ctx, uuid.New(), business.ID)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = svc.GetBusiness(ctx, owner, uuid.New())
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestUpdateBusiness_PartialUpdate(t *testing.T) {
	repo := newFakeBusinessRepo()
	svc := NewBusinessService(repo, 1)
	ctx := context.Background()
	owner := uuid.New()

	business, err := svc.CreateBusiness(ctx, &CreateBusinessInput{
		OwnerID: owner,
		Name:    "Webdev 26",
		City:    strPtr("Rabat"),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateBusiness(ctx, &UpdateBusinessInput{
		OwnerID: owner,
		ID:      business.ID,
		ICE:     strPtr("001545500000047"),
	})
	require.NoError(t, err)

	// Omitted fields survive
	assert.Equal(t, "Webdev 26", updated.Name)
	require.NotNil(t, updated.City)
	assert.Equal(t, "Rabat", *updated.City)
	require.NotNil(t, updated.ICE)
	assert.Equal(t, "001545500000047", *updated.ICE)
}
