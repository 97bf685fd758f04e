package postgres

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitcollect/internal/apperrors"
	"github.com/mmynk/splitcollect/internal/models"
	"github.com/mmynk/splitcollect/internal/storage"
)

// newTestStore connects to SPLITCOLLECT_TEST_POSTGRES_URL or skips.
func newTestStore(t *testing.T) *PostgresStore {
	t.Helper()
	url := os.Getenv("SPLITCOLLECT_TEST_POSTGRES_URL")
	if url == "" {
		t.Skip("SPLITCOLLECT_TEST_POSTGRES_URL not set")
	}

	store, err := New(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPostgresSplitRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	owner := "owner-" + uuid.NewString()

	split := &models.Split{
		Kind:       models.KindSplit,
		Purpose:    "Dinner",
		Total:      decimal.RequireFromString("100.00"),
		Mode:       models.ModeEqual,
		OwnerShare: decimal.RequireFromString("33.33"),
		OwnerID:    owner,
		Participants: []models.Participant{
			{Name: "Asha", Amount: decimal.RequireFromString("33.34")},
			{Name: "Ravi", Amount: decimal.RequireFromString("33.33")},
		},
	}
	require.NoError(t, store.CreateSplit(ctx, split))

	got, err := store.GetSplit(ctx, split.ID)
	require.NoError(t, err)
	assert.True(t, got.Total.Equal(split.Total))
	assert.True(t, got.OwnerShare.Equal(split.OwnerShare))
	require.Len(t, got.Participants, 2)
	assert.Equal(t, "Asha", got.Participants[0].Name)
	assert.True(t, got.Participants[0].Amount.Equal(decimal.RequireFromString("33.34")))
	assert.Nil(t, got.Participants[0].Reference)

	listed, err := store.ListSplitsByOwner(ctx, owner)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Len(t, listed[0].Participants, 2)

	_, err = store.GetSplit(ctx, uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPostgresUpdateParticipant(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	split := &models.Split{
		Kind: models.KindSplit, Purpose: "Cab", Mode: models.ModePartition, OwnerID: "owner-" + uuid.NewString(),
		Total: decimal.NewFromInt(20), OwnerShare: decimal.Zero,
		Participants: []models.Participant{
			{Name: "Asha", Amount: decimal.NewFromInt(10)},
			{Name: "Ravi", Amount: decimal.NewFromInt(10)},
		},
	}
	require.NoError(t, store.CreateSplit(ctx, split))
	ref := "UTR-" + uuid.NewString()

	// Two writers race from the same pre-state; exactly one wins.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			next := split.Participants[0]
			r := ref + "-" + string(rune('a'+i))
			next.Status = models.StatusDeclared
			next.Reference = &r
			errs[i] = store.UpdateParticipant(ctx, &next, models.StatusPending)
		}()
	}
	wg.Wait()
	conflicts := 0
	for _, err := range errs {
		if errors.Is(err, storage.ErrStatusConflict) {
			conflicts++
		} else {
			require.NoError(t, err)
		}
	}
	assert.Equal(t, 1, conflicts)

	stored, err := store.GetParticipant(ctx, split.Participants[0].ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Reference)

	next := split.Participants[1]
	next.Status = models.StatusDeclared
	next.Reference = stored.Reference
	err = store.UpdateParticipant(ctx, &next, models.StatusPending)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateReference)
}

func TestPostgresContactsAndUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	owner := "owner-" + uuid.NewString()

	contact := &models.Contact{OwnerID: owner, Name: "Asha", Phone: "919800000001"}
	require.NoError(t, store.CreateContact(ctx, contact))
	contacts, err := store.ListContacts(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, contacts, 1)
	require.NoError(t, store.DeleteContact(ctx, contact.ID))
	_, err = store.GetContact(ctx, contact.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	user := models.NewUser(uuid.NewString()+"@example.com", "Asha", "hash")
	require.NoError(t, store.CreateUser(ctx, user))
	got, err := store.GetUserByEmail(ctx, user.Email)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	user.PayeeVPA, user.PayeeName = "asha@okbank", "Asha K"
	require.NoError(t, store.UpdateUserProfile(ctx, user))
	got, err = store.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "asha@okbank", got.PayeeVPA)
	assert.Equal(t, "Asha K", got.PayeeName)
}
