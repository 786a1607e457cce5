package audit

import (
	"context"

	"app/internal/domain/event"
	"app/internal/repository"
)

// 失敗を報告する先（echoのLoggerがそのまま満たす）
type Logger interface {
	Warnf(format string, args ...interface{})
}

// Recorderはイベントチャネルを購読して監査ログに追記する。
// 追記の失敗はログに残すだけで、emit元（台帳）には一切伝播させない。
type Recorder struct {
	auditLog repository.AuditLog
	logger   Logger
}

func NewRecorder(auditLog repository.AuditLog, logger Logger) *Recorder {
	return &Recorder{auditLog: auditLog, logger: logger}
}

func (r *Recorder) Register(channel *event.Channel) {
	channel.Subscribe(func(e event.Event) {
		if err := r.auditLog.Append(context.Background(), e); err != nil {
			r.logger.Warnf("failed to append event %s (%s) to audit log: %v", e.ID, e.Type, err)
		}
	})
}
