package records

import (
	"context"
	"fmt"

	"github.com/zeroclick/core/internal/models"
	"github.com/zeroclick/core/internal/modules/search"
	"github.com/zeroclick/core/internal/pkg/pagination"
	"github.com/zeroclick/core/internal/pkg/response"
	"gorm.io/gorm"
)

// Store is the only component that touches the crm_records table.
// Writes are append-only; free-form reads accept guard-approved text only.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store { return &Store{db: db} }

// Insert writes one whole record. There is no update path.
func (s *Store) Insert(ctx context.Context, rec *models.CrmRecordModel) error {
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

// Query executes guarded SQL and returns raw rows. The GuardedQuery type
// means the text already passed the guard; nothing else can construct one.
func (s *Store) Query(ctx context.Context, q search.GuardedQuery) ([]map[string]interface{}, error) {
	rows, err := s.db.WithContext(ctx).Raw(q.SQL()).Rows()
	if err != nil {
		return nil, fmt.Errorf("run query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	out := make([]map[string]interface{}, 0)
	for rows.Next() {
		values := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		row := make(map[string]interface{}, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// List pages through records newest-first for the entries endpoint.
func (s *Store) List(ctx context.Context, q pagination.Query) ([]models.CrmRecordModel, response.Pagination, error) {
	var recs []models.CrmRecordModel
	base := s.db.WithContext(ctx).
		Model(&models.CrmRecordModel{}).
		Order("created_at DESC")
	pag, err := pagination.Paginate(base, q, &recs)
	if err != nil {
		return nil, response.Pagination{}, fmt.Errorf("list records: %w", err)
	}
	return recs, pag, nil
}
