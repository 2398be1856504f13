package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"accreditation/internal/blacklist/models"
	"accreditation/internal/sentinel"
	id "accreditation/pkg/domain"
)

// PostgresStore persists denylist entries in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed blacklist store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const entryColumns = `id, tenant_id, entry_type, name, name_variations, passport_number,
	email, reason, source, expires_at, created_at, updated_at`

// Save upserts an entry by ID.
func (s *PostgresStore) Save(ctx context.Context, entry *models.Entry) error {
	query := `
		INSERT INTO blacklist_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			entry_type = EXCLUDED.entry_type,
			name = EXCLUDED.name,
			name_variations = EXCLUDED.name_variations,
			passport_number = EXCLUDED.passport_number,
			email = EXCLUDED.email,
			reason = EXCLUDED.reason,
			source = EXCLUDED.source,
			expires_at = EXCLUDED.expires_at,
			updated_at = EXCLUDED.updated_at
		WHERE blacklist_entries.tenant_id = EXCLUDED.tenant_id
	`
	variations := entry.NameVariations
	if variations == nil {
		variations = []string{}
	}
	_, err := s.db.ExecContext(ctx, query,
		entry.ID.String(),
		entry.TenantID.String(),
		string(entry.Type),
		entry.Name,
		pq.StringArray(variations),
		entry.PassportNumber,
		entry.Email,
		entry.Reason,
		entry.Source,
		entry.ExpiresAt,
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save blacklist entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, tenantID id.TenantID, entryID id.BlacklistEntryID) (*models.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM blacklist_entries WHERE tenant_id = $1 AND id = $2`
	entry, err := scanEntry(s.db.QueryRowContext(ctx, query, tenantID.String(), entryID.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find blacklist entry: %w", err)
	}
	return entry, nil
}

// ListActive returns the tenant's entries with no expiry or an expiry after now.
func (s *PostgresStore) ListActive(ctx context.Context, tenantID id.TenantID, now time.Time) ([]*models.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM blacklist_entries
		WHERE tenant_id = $1 AND (expires_at IS NULL OR expires_at > $2)
		ORDER BY created_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query, tenantID.String(), now)
	if err != nil {
		return nil, fmt.Errorf("list active blacklist entries: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Entry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan blacklist entry: %w", err)
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blacklist entries: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*models.Entry, error) {
	var (
		entryID, tenantID uuid.UUID
		entryType         string
		name, passport    sql.NullString
		email, source     sql.NullString
		expiresAt         sql.NullTime
		variations        pq.StringArray
		e                 models.Entry
	)
	err := row.Scan(&entryID, &tenantID, &entryType, &name, &variations, &passport,
		&email, &e.Reason, &source, &expiresAt, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.ID = id.BlacklistEntryID(entryID)
	e.TenantID = id.TenantID(tenantID)
	e.Type = models.EntryType(entryType)
	e.Name = nullString(name)
	e.NameVariations = []string(variations)
	e.PassportNumber = nullString(passport)
	e.Email = nullString(email)
	e.Source = nullString(source)
	if expiresAt.Valid {
		t := expiresAt.Time
		e.ExpiresAt = &t
	}
	return &e, nil
}

func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
