// Package testutil holds fixtures shared by screening tests.
package testutil

import (
	"time"

	"github.com/google/uuid"

	blacklist "accreditation/internal/blacklist/models"
	participant "accreditation/internal/participant/models"
	id "accreditation/pkg/domain"
)

// TestIDs are fixed identifiers for deterministic test data.
var TestIDs = struct {
	TenantID1      id.TenantID
	TenantID2      id.TenantID
	EventID1       id.EventID
	EventID2       id.EventID
	ParticipantID1 id.ParticipantID
	ParticipantID2 id.ParticipantID
}{
	TenantID1:      id.TenantID(uuid.MustParse("aaaa0000-0000-0000-0000-000000000001")),
	TenantID2:      id.TenantID(uuid.MustParse("aaaa0000-0000-0000-0000-000000000002")),
	EventID1:       id.EventID(uuid.MustParse("bbbb0000-0000-0000-0000-000000000001")),
	EventID2:       id.EventID(uuid.MustParse("bbbb0000-0000-0000-0000-000000000002")),
	ParticipantID1: id.ParticipantID(uuid.MustParse("11111111-1111-1111-1111-111111111111")),
	ParticipantID2: id.ParticipantID(uuid.MustParse("22222222-2222-2222-2222-222222222222")),
}

// FixedNow is the clock used by tests that pin request time.
var FixedNow = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

// SnapshotBuilder builds participant snapshots with a fresh ID.
type SnapshotBuilder struct {
	snap participant.Snapshot
}

func NewSnapshotBuilder() *SnapshotBuilder {
	return &SnapshotBuilder{snap: participant.Snapshot{
		ID:     id.NewParticipantID(),
		Extras: map[participant.ExtraKey]string{},
	}}
}

func (b *SnapshotBuilder) WithID(pid id.ParticipantID) *SnapshotBuilder {
	b.snap.ID = pid
	return b
}

func (b *SnapshotBuilder) WithName(first, last string) *SnapshotBuilder {
	b.snap.FirstName = first
	b.snap.LastName = last
	return b
}

func (b *SnapshotBuilder) WithEmail(email string) *SnapshotBuilder {
	b.snap.Email = email
	return b
}

func (b *SnapshotBuilder) WithPhone(phone string) *SnapshotBuilder {
	b.snap.Phone = phone
	return b
}

func (b *SnapshotBuilder) WithExtra(key participant.ExtraKey, value string) *SnapshotBuilder {
	b.snap.Extras[key] = value
	return b
}

func (b *SnapshotBuilder) Build() participant.Snapshot {
	return b.snap.Clone()
}

// Record wraps the snapshot as a stored registration.
func (b *SnapshotBuilder) Record(tenantID id.TenantID, eventID id.EventID, createdAt time.Time) participant.Record {
	return participant.Record{
		TenantID:  tenantID,
		EventID:   eventID,
		Snapshot:  b.Build(),
		CreatedAt: createdAt,
	}
}

// EntryBuilder builds blacklist entries, INDIVIDUAL by default.
type EntryBuilder struct {
	entry blacklist.Entry
}

func NewEntryBuilder(tenantID id.TenantID) *EntryBuilder {
	return &EntryBuilder{entry: blacklist.Entry{
		ID:        id.NewBlacklistEntryID(),
		TenantID:  tenantID,
		Type:      blacklist.EntryTypeIndividual,
		Reason:    "test entry",
		CreatedAt: FixedNow.Add(-24 * time.Hour),
		UpdatedAt: FixedNow.Add(-24 * time.Hour),
	}}
}

func (b *EntryBuilder) WithType(t blacklist.EntryType) *EntryBuilder {
	b.entry.Type = t
	return b
}

func (b *EntryBuilder) WithName(name string, variations ...string) *EntryBuilder {
	b.entry.Name = &name
	b.entry.NameVariations = variations
	return b
}

func (b *EntryBuilder) WithEmail(email string) *EntryBuilder {
	b.entry.Email = &email
	return b
}

func (b *EntryBuilder) WithPassport(number string) *EntryBuilder {
	b.entry.PassportNumber = &number
	return b
}

func (b *EntryBuilder) ExpiringAt(t time.Time) *EntryBuilder {
	b.entry.ExpiresAt = &t
	return b
}

func (b *EntryBuilder) Build() *blacklist.Entry {
	e := b.entry
	e.NameVariations = append([]string(nil), b.entry.NameVariations...)
	return &e
}
