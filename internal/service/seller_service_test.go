package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RishabhV28/sneakdeal/internal/domain"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	f := newFixtures()
	svc := NewSellerService(f.sellers, testLogger())

	seller, err := svc.Register(ctx, "sneakerking", "king@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, seller.ID)
	assert.NotEmpty(t, seller.PasswordHash)
	assert.NotEqual(t, "hunter2hunter2", seller.PasswordHash)

	got, err := svc.Authenticate(ctx, "king@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, seller.ID, got.ID)

	// Wrong password and unknown email look identical to the caller.
	_, err = svc.Authenticate(ctx, "king@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.Authenticate(ctx, "nobody@example.com", "hunter2hunter2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixtures()
	svc := NewSellerService(f.sellers, testLogger())

	_, err := svc.Register(context.Background(), "", "not-an-email", "short")
	require.Error(t, err)

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Fields, 3)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	f := newFixtures()
	svc := NewSellerService(f.sellers, testLogger())

	_, err := svc.Register(ctx, "sneakerking", "king@example.com", "hunter2hunter2")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "pretender", "king@example.com", "hunter2hunter2")
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}
