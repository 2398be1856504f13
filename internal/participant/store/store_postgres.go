package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"accreditation/internal/participant/models"
	"accreditation/internal/sentinel"
	id "accreditation/pkg/domain"
)

const defaultPageSize = 200

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var snapshotColumns = []string{"id", "first_name", "last_name", "email", "phone", "extras"}

// PostgresStore persists participants in PostgreSQL.
type PostgresStore struct {
	db       *sql.DB
	pageSize int
}

// PostgresOption configures a PostgresStore.
type PostgresOption func(*PostgresStore)

// WithPageSize sets how many rows a single keyset page fetches.
func WithPageSize(n int) PostgresOption {
	return func(s *PostgresStore) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// NewPostgres constructs a PostgreSQL-backed participant store.
func NewPostgres(db *sql.DB, opts ...PostgresOption) *PostgresStore {
	s := &PostgresStore{db: db, pageSize: defaultPageSize}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *PostgresStore) Save(ctx context.Context, record *models.Record) error {
	extras, err := marshalExtras(record.Snapshot.Extras)
	if err != nil {
		return err
	}
	query, args, err := psql.Insert("participants").
		Columns("id", "tenant_id", "event_id", "first_name", "last_name", "email", "phone", "extras", "created_at").
		Values(
			record.Snapshot.ID.String(),
			record.TenantID.String(),
			record.EventID.String(),
			record.Snapshot.FirstName,
			record.Snapshot.LastName,
			record.Snapshot.Email,
			record.Snapshot.Phone,
			extras,
			record.CreatedAt,
		).ToSql()
	if err != nil {
		return fmt.Errorf("build insert participant: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return sentinel.ErrAlreadyExists
		}
		return fmt.Errorf("insert participant: %w", err)
	}
	return nil
}

func (s *PostgresStore) SoftDelete(ctx context.Context, tenantID id.TenantID, participantID id.ParticipantID, at time.Time) error {
	query, args, err := psql.Update("participants").
		Set("deleted_at", at).
		Where(sq.Eq{"id": participantID.String(), "tenant_id": tenantID.String(), "deleted_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build soft delete participant: %w", err)
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("soft delete participant: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("soft delete participant rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// Search pages through live participants of the tenant+event by keyset on id
// until limit rows are collected or the scope is exhausted.
func (s *PostgresStore) Search(ctx context.Context, tenantID id.TenantID, eventID id.EventID, excludeID id.ParticipantID, limit int) ([]models.Snapshot, error) {
	scope := sq.And{
		sq.Eq{"tenant_id": tenantID.String(), "event_id": eventID.String(), "deleted_at": nil},
		sq.NotEq{"id": excludeID.String()},
	}
	return s.page(ctx, scope, id.ParticipantID{}, limit)
}

// ListByTenant returns one keyset page of live participants of a tenant across events.
func (s *PostgresStore) ListByTenant(ctx context.Context, tenantID id.TenantID, after id.ParticipantID, limit int) ([]models.Snapshot, error) {
	scope := sq.Eq{"tenant_id": tenantID.String(), "deleted_at": nil}
	return s.page(ctx, scope, after, limit)
}

func (s *PostgresStore) page(ctx context.Context, scope sq.Sqlizer, after id.ParticipantID, limit int) ([]models.Snapshot, error) {
	out := make([]models.Snapshot, 0)
	for len(out) < limit {
		size := min(s.pageSize, limit-len(out))
		q := psql.Select(snapshotColumns...).
			From("participants").
			Where(scope).
			OrderBy("id").
			Limit(uint64(size))
		if !after.IsNil() {
			q = q.Where(sq.Gt{"id": after.String()})
		}
		query, args, err := q.ToSql()
		if err != nil {
			return nil, fmt.Errorf("build participant search: %w", err)
		}

		batch, err := s.query(ctx, query, args...)
		if err != nil {
			return nil, err
		}
		out = append(out, batch...)
		if len(batch) < size {
			break
		}
		after = batch[len(batch)-1].ID
	}
	return out, nil
}

func (s *PostgresStore) query(ctx context.Context, query string, args ...any) ([]models.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search participants: %w", err)
	}
	defer rows.Close()

	var batch []models.Snapshot
	for rows.Next() {
		var (
			rowID  uuid.UUID
			extras []byte
			snap   models.Snapshot
		)
		if err := rows.Scan(&rowID, &snap.FirstName, &snap.LastName, &snap.Email, &snap.Phone, &extras); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		snap.ID = id.ParticipantID(rowID)
		if snap.Extras, err = unmarshalExtras(extras); err != nil {
			return nil, err
		}
		batch = append(batch, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate participants: %w", err)
	}
	return batch, nil
}

func marshalExtras(extras map[models.ExtraKey]string) ([]byte, error) {
	if len(extras) == 0 {
		return []byte("{}"), nil
	}
	b, err := json.Marshal(extras)
	if err != nil {
		return nil, fmt.Errorf("marshal extras: %w", err)
	}
	return b, nil
}

func unmarshalExtras(raw []byte) (map[models.ExtraKey]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var extras map[models.ExtraKey]string
	if err := json.Unmarshal(raw, &extras); err != nil {
		return nil, fmt.Errorf("unmarshal extras: %w", err)
	}
	if len(extras) == 0 {
		return nil, nil
	}
	return extras, nil
}
