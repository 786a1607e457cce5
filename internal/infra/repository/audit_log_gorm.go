package repository

import (
	"context"
	"encoding/json"
	"time"

	"app/internal/domain/event"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

// eventsテーブルの行。dataはjsonbで、部分一致検索にPostgresの@>を使う。
type EventRecord struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)"`
	Type      string    `gorm:"type:varchar(50);not null;index"`
	Data      string    `gorm:"type:jsonb;not null"`
	CreatedAt time.Time `gorm:"not null;index"`
}

func (EventRecord) TableName() string {
	return "events"
}

type AuditLogGormRepository struct {
	db *gorm.DB
}

func NewAuditLogGormRepository(db *gorm.DB) *AuditLogGormRepository {
	return &AuditLogGormRepository{db: db}
}

func (r *AuditLogGormRepository) Append(ctx context.Context, e event.Event) error {
	data, err := json.Marshal(e.Data)
	if err != nil {
		return err
	}

	record := EventRecord{
		ID:        e.ID,
		Type:      string(e.Type),
		Data:      string(data),
		CreatedAt: e.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&record).Error
}

func (r *AuditLogGormRepository) Search(ctx context.Context, params repo.AuditLogSearch) ([]event.Event, error) {
	q := r.db.WithContext(ctx).Model(&EventRecord{})

	if len(params.Types) > 0 {
		types := make([]string, 0, len(params.Types))
		for _, t := range params.Types {
			types = append(types, string(t))
		}
		q = q.Where("type IN ?", types)
	}

	// jsonbの包含検索：保存されたdataがparams.Dataを部分として含む行だけ
	if len(params.Data) > 0 {
		subset, err := json.Marshal(params.Data)
		if err != nil {
			return nil, err
		}
		q = q.Where("data @> ?::jsonb", string(subset))
	}

	if params.CreatedFrom != nil {
		q = q.Where("created_at >= ?", *params.CreatedFrom)
	}
	if params.CreatedTo != nil {
		q = q.Where("created_at <= ?", *params.CreatedTo)
	}

	var records []EventRecord
	if err := q.Order("created_at asc").Order("id asc").Find(&records).Error; err != nil {
		return nil, err
	}

	events := make([]event.Event, 0, len(records))
	for _, record := range records {
		// ペイロードは型情報なしのJSONとして復元される
		var data map[string]interface{}
		if err := json.Unmarshal([]byte(record.Data), &data); err != nil {
			return nil, err
		}
		events = append(events, event.Event{
			ID:        record.ID,
			Type:      event.Type(record.Type),
			Data:      data,
			CreatedAt: record.CreatedAt,
		})
	}
	return events, nil
}

func (r *AuditLogGormRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&EventRecord{}).Error
}
