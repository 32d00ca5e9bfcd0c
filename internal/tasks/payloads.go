package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"cvBuilder/internal/cv"
	"cvBuilder/internal/i18n"
)

// 任务类型常量，确保队列生产者与消费者一致。
const (
	TypeCVExport = "cv:export"
)

// ExportPayload 携带导出时刻的简历快照，worker 不读取会话内存。
type ExportPayload struct {
	ExportID      uint        `json:"export_id"`
	SessionID     string      `json:"session_id"`
	CorrelationID string      `json:"correlation_id"`
	Locale        i18n.Locale `json:"locale"`
	Record        cv.Record   `json:"record"`
}

// NewExportTask 构造一个新的 PDF 导出任务。
func NewExportTask(p ExportPayload, maxRetry int, timeout time.Duration) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	opts := []asynq.Option{asynq.MaxRetry(maxRetry)}
	if timeout > 0 {
		opts = append(opts, asynq.Timeout(timeout))
	}
	return asynq.NewTask(TypeCVExport, payload, opts...), nil
}

// ParseExportPayload decodes a task payload.
func ParseExportPayload(t *asynq.Task) (ExportPayload, error) {
	var p ExportPayload
	err := json.Unmarshal(t.Payload(), &p)
	return p, err
}
