package patient

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/glowdesk/glowdesk/internal/domain/plan"
)

type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) querier {
	return r.pool
}

const recordCols = `id, first_name, last_name, email, phone, discussed_items, plan_revision, created_at, updated_at`

// planColumn maps a commit field name to its column. Only whitelisted
// fields ever reach the SQL text.
var planColumn = map[string]string{
	plan.DiscussedItemsField: "discussed_items",
	plan.RevisionField:       "plan_revision",
}

// checkTable guards against table names reaching the SQL text unvalidated.
func checkTable(table string) error {
	if !ValidTable(table) {
		return fmt.Errorf("unknown record table %q", table)
	}
	return nil
}

func (r *repoPG) Create(ctx context.Context, table string, rec *Record) error {
	if err := checkTable(table); err != nil {
		return err
	}
	rec.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, fmt.Sprintf(`
		INSERT INTO %s (id, first_name, last_name, email, phone, discussed_items, plan_revision)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`, table),
		rec.ID, rec.FirstName, rec.LastName, rec.Email, rec.Phone, rec.DiscussedItems, rec.PlanRevision,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, table string, id uuid.UUID) (*Record, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}
	return scanRecord(r.conn(ctx).QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, recordCols, table), id))
}

func (r *repoPG) List(ctx context.Context, table string, limit, offset int) ([]*Record, int, error) {
	if err := checkTable(table); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", table, err)
	}

	rows, err := r.conn(ctx).Query(ctx, fmt.Sprintf(
		`SELECT %s FROM %s ORDER BY last_name, first_name LIMIT $1 OFFSET $2`, recordCols, table),
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate %s: %w", table, err)
	}
	return records, total, nil
}

func (r *repoPG) FetchPlanFields(ctx context.Context, table, id string) (string, int64, error) {
	if err := checkTable(table); err != nil {
		return "", 0, err
	}
	var field string
	var revision int64
	err := r.conn(ctx).QueryRow(ctx, fmt.Sprintf(
		`SELECT COALESCE(discussed_items, ''), plan_revision FROM %s WHERE id = $1`, table),
		id).Scan(&field, &revision)
	if err != nil {
		return "", 0, fmt.Errorf("fetch plan fields from %s: %w", table, err)
	}
	return field, revision, nil
}

func (r *repoPG) UpdateFields(ctx context.Context, table, id string, fields map[string]string) error {
	if err := checkTable(table); err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}

	sets := make([]string, 0, len(fields)+1)
	args := make([]interface{}, 0, len(fields)+1)
	args = append(args, id)
	for name, value := range fields {
		col, ok := planColumn[name]
		if !ok {
			return fmt.Errorf("unknown record field %q", name)
		}
		if col == "plan_revision" {
			rev, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return fmt.Errorf("parse plan revision %q: %w", value, err)
			}
			args = append(args, rev)
		} else {
			args = append(args, value)
		}
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	sets = append(sets, "updated_at = NOW()")

	tag, err := r.conn(ctx).Exec(ctx, fmt.Sprintf(
		`UPDATE %s SET %s WHERE id = $1`, table, strings.Join(sets, ", ")), args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("record %s not found in %s", id, table)
	}
	return nil
}

func scanRecord(row pgx.Row) (*Record, error) {
	var rec Record
	err := row.Scan(
		&rec.ID, &rec.FirstName, &rec.LastName, &rec.Email, &rec.Phone,
		&rec.DiscussedItems, &rec.PlanRevision, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
