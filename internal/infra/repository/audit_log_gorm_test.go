package repository

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"app/internal/domain/event"
	"app/internal/domain/model"
	repo "app/internal/repository"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TEST_DATABASE_DSNが指す実DBで動くテスト。未設定ならskip。
// jsonbの@>検索はPostgres依存なので、ここだけは実DBで確認する。
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}

	sqlDB, err := sql.Open("pgx", dsn)
	require.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&EventRecord{}))

	return db
}

func TestAuditLogGormRepository_SearchByDataSubset(t *testing.T) {
	ctx := context.Background()
	auditLog := NewAuditLogGormRepository(openTestDB(t))
	require.NoError(t, auditLog.DeleteAll(ctx))

	base := time.Date(2023, 10, 18, 9, 0, 0, 0, time.UTC)
	imported := event.Event{
		ID:   model.NewID(),
		Type: event.TypeProductImported,
		Data: model.ProductImportedData{
			Quantity:   3,
			Product:    model.ProductSnapshot{ID: "p1", Name: "barrel"},
			Warehouse:  model.WarehouseSnapshot{ID: "w1", Name: "main"},
			ImportedAt: base,
		},
		CreatedAt: base,
	}
	exported := event.Event{
		ID:   model.NewID(),
		Type: event.TypeProductExported,
		Data: model.ProductExportedData{
			Quantity:  1,
			Product:   model.ProductSnapshot{ID: "p1", Name: "barrel"},
			Warehouse: model.WarehouseSnapshot{ID: "w2", Name: "spare"},
		},
		CreatedAt: base.Add(time.Hour),
	}
	require.NoError(t, auditLog.Append(ctx, imported))
	require.NoError(t, auditLog.Append(ctx, exported))

	// {"warehouse":{"id":"w1"}} の部分一致で w1 のイベントだけが返る
	got, err := auditLog.Search(ctx, repo.AuditLogSearch{
		Data: map[string]interface{}{
			"warehouse": map[string]interface{}{"id": "w1"},
		},
	})
	require.NoError(t, err)
	if assert.Len(t, got, 1) {
		assert.Equal(t, imported.ID, got[0].ID)

		data, ok := got[0].Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, float64(3), data["quantity"])
	}
}

func TestAuditLogGormRepository_SearchByTypeAndRange(t *testing.T) {
	ctx := context.Background()
	auditLog := NewAuditLogGormRepository(openTestDB(t))
	require.NoError(t, auditLog.DeleteAll(ctx))

	day := time.Date(2023, 10, 18, 0, 0, 0, 0, time.UTC)
	inRange := event.Event{
		ID:        model.NewID(),
		Type:      event.TypeProductImported,
		Data:      map[string]interface{}{"quantity": 1},
		CreatedAt: day.Add(10 * time.Hour),
	}
	dayAfter := event.Event{
		ID:        model.NewID(),
		Type:      event.TypeProductImported,
		Data:      map[string]interface{}{"quantity": 2},
		CreatedAt: day.Add(30 * time.Hour),
	}
	wrongType := event.Event{
		ID:        model.NewID(),
		Type:      "warehouse_created",
		Data:      map[string]interface{}{},
		CreatedAt: day.Add(11 * time.Hour),
	}
	for _, e := range []event.Event{inRange, dayAfter, wrongType} {
		require.NoError(t, auditLog.Append(ctx, e))
	}

	from := day
	to := day.Add(24*time.Hour - time.Nanosecond)
	got, err := auditLog.Search(ctx, repo.AuditLogSearch{
		Types:       []event.Type{event.TypeProductImported, event.TypeProductExported},
		CreatedFrom: &from,
		CreatedTo:   &to,
	})
	require.NoError(t, err)
	if assert.Len(t, got, 1) {
		assert.Equal(t, inRange.ID, got[0].ID)
	}
}
