package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accreditation/internal/participant/models"
	"accreditation/internal/sentinel"
	id "accreditation/pkg/domain"
)

func newRecord(tenantID id.TenantID, eventID id.EventID, last string) *models.Record {
	return &models.Record{
		TenantID: tenantID,
		EventID:  eventID,
		Snapshot: models.Snapshot{
			ID:        id.NewParticipantID(),
			FirstName: "Ann",
			LastName:  last,
			Extras:    map[models.ExtraKey]string{models.ExtraOrganization: "Acme"},
		},
		CreatedAt: time.Now(),
	}
}

func TestInMemorySearchScope(t *testing.T) {
	ctx := context.Background()
	st := NewInMemory()
	tenantID, otherTenant := id.TenantID(uuid.New()), id.TenantID(uuid.New())
	eventID, otherEvent := id.EventID(uuid.New()), id.EventID(uuid.New())

	self := newRecord(tenantID, eventID, "Self")
	peer := newRecord(tenantID, eventID, "Peer")
	deleted := newRecord(tenantID, eventID, "Gone")
	sameTenantOtherEvent := newRecord(tenantID, otherEvent, "Elsewhere")
	otherTenantSameEvent := newRecord(otherTenant, eventID, "Foreign")
	for _, r := range []*models.Record{self, peer, deleted, sameTenantOtherEvent, otherTenantSameEvent} {
		require.NoError(t, st.Save(ctx, r))
	}
	require.NoError(t, st.SoftDelete(ctx, tenantID, deleted.Snapshot.ID, time.Now()))

	got, err := st.Search(ctx, tenantID, eventID, self.Snapshot.ID, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, peer.Snapshot.ID, got[0].ID)
}

func TestInMemorySearchCapAndOrder(t *testing.T) {
	ctx := context.Background()
	st := NewInMemory()
	tenantID, eventID := id.TenantID(uuid.New()), id.EventID(uuid.New())
	for i := 0; i < 5; i++ {
		require.NoError(t, st.Save(ctx, newRecord(tenantID, eventID, "P")))
	}

	got, err := st.Search(ctx, tenantID, eventID, id.ParticipantID{}, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1].ID.String(), got[i].ID.String())
	}

	none, err := st.Search(ctx, tenantID, eventID, id.ParticipantID{}, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestInMemoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	st := NewInMemory()
	tenantID, eventID := id.TenantID(uuid.New()), id.EventID(uuid.New())
	rec := newRecord(tenantID, eventID, "Copy")
	require.NoError(t, st.Save(ctx, rec))

	got, err := st.Search(ctx, tenantID, eventID, id.ParticipantID{}, 1)
	require.NoError(t, err)
	got[0].Extras[models.ExtraOrganization] = "Changed"

	again, err := st.Search(ctx, tenantID, eventID, id.ParticipantID{}, 1)
	require.NoError(t, err)
	assert.Equal(t, "Acme", again[0].Extras[models.ExtraOrganization])
}

func TestInMemoryListByTenantPages(t *testing.T) {
	ctx := context.Background()
	st := NewInMemory()
	tenantID := id.TenantID(uuid.New())
	for i := 0; i < 5; i++ {
		require.NoError(t, st.Save(ctx, newRecord(tenantID, id.EventID(uuid.New()), "P")))
	}

	first, err := st.ListByTenant(ctx, tenantID, id.ParticipantID{}, 3)
	require.NoError(t, err)
	require.Len(t, first, 3)

	second, err := st.ListByTenant(ctx, tenantID, first[2].ID, 3)
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.Greater(t, second[0].ID.String(), first[2].ID.String())
}

func TestInMemoryErrors(t *testing.T) {
	ctx := context.Background()
	st := NewInMemory()
	tenantID, eventID := id.TenantID(uuid.New()), id.EventID(uuid.New())
	rec := newRecord(tenantID, eventID, "Dup")
	require.NoError(t, st.Save(ctx, rec))

	assert.ErrorIs(t, st.Save(ctx, rec), sentinel.ErrAlreadyExists)
	assert.ErrorIs(t, st.SoftDelete(ctx, id.TenantID(uuid.New()), rec.Snapshot.ID, time.Now()), sentinel.ErrNotFound)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err := st.Search(cancelled, tenantID, eventID, id.ParticipantID{}, 10)
	assert.ErrorIs(t, err, context.Canceled)
}
