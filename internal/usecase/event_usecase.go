package usecase

import (
	"context"
	"sort"
	"time"

	"app/internal/domain/event"
	repo "app/internal/repository"
)

type EventUsecase struct {
	auditLog repo.AuditLog
}

// DI
func NewEventUsecase(auditLog repo.AuditLog) *EventUsecase {
	return &EventUsecase{auditLog: auditLog}
}

type HistoryInput struct {
	// 絞り込む倉庫id（空なら全倉庫）
	WarehouseIDs []string

	// その日1日分（startOfDay〜endOfDay）に絞る
	Date *time.Time
}

// 過去の入出庫イベントを監査ログから引く。
func (u *EventUsecase) GetHistoricImportsAndExports(ctx context.Context, in HistoryInput) ([]event.Event, error) {
	search := repo.AuditLogSearch{
		Types: []event.Type{event.TypeProductImported, event.TypeProductExported},
	}

	if in.Date != nil {
		from, to := dayRange(*in.Date)
		search.CreatedFrom = &from
		search.CreatedTo = &to
	}

	if len(in.WarehouseIDs) == 0 {
		events, err := u.auditLog.Search(ctx, search)
		if err != nil {
			return nil, toHTTPError(err)
		}
		return events, nil
	}

	// 部分一致は1つの値しか持てないので、倉庫ごとに検索してマージする。
	// 同じidが2回来ても検索は1回。
	merged := make([]event.Event, 0)
	seen := make(map[string]bool, len(in.WarehouseIDs))
	for _, warehouseID := range in.WarehouseIDs {
		if seen[warehouseID] {
			continue
		}
		seen[warehouseID] = true

		s := search
		s.Data = map[string]interface{}{
			"warehouse": map[string]interface{}{
				"id": warehouseID,
			},
		}

		events, err := u.auditLog.Search(ctx, s)
		if err != nil {
			return nil, toHTTPError(err)
		}
		merged = append(merged, events...)
	}

	sort.SliceStable(merged, func(a, b int) bool {
		return merged[a].CreatedAt.Before(merged[b].CreatedAt)
	})
	return merged, nil
}

// 指定日のstartOfDay〜endOfDay。
// 夏時間の切替日は1日が24時間でないので、翌日0時から1ns引いて終端を出す。
func dayRange(date time.Time) (time.Time, time.Time) {
	year, month, day := date.Date()
	from := time.Date(year, month, day, 0, 0, 0, 0, date.Location())
	to := time.Date(year, month, day+1, 0, 0, 0, 0, date.Location()).Add(-time.Nanosecond)
	return from, to
}
