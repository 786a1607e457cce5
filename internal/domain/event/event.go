package event

import "time"

// イベント種別
type Type string

const (
	TypeProductImported Type = "product_imported"
	TypeProductExported Type = "product_exported"
)

// Eventは完了した状態変更の不変な記録。
// Dataは種別ごとのペイロード（監査ログにはJSONで保存される）。
type Event struct {
	ID        string      `json:"id"`
	Type      Type        `json:"type"`
	Data      interface{} `json:"data"`
	CreatedAt time.Time   `json:"created_at"`
}
