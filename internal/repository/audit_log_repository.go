package repository

import (
	"context"
	"time"

	"app/internal/domain/event"
)

// 監査ログの絞り込み条件。
type AuditLogSearch struct {
	// イベント種別（空なら全種別）
	Types []event.Type

	// ペイロードの部分一致（保存されたdataがこのkey/valueを含むか）
	Data map[string]interface{}

	// createdAtの範囲
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// ドメインイベントの永続記録の約束。
type AuditLog interface {
	// イベントを1件追記
	Append(ctx context.Context, e event.Event) error

	// 条件で検索（createdAt昇順）
	Search(ctx context.Context, params AuditLogSearch) ([]event.Event, error)

	DeleteAll(ctx context.Context) error
}
