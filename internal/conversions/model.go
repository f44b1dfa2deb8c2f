package conversions

import "time"

type Status string

const (
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Job — одна заявка на конвертацию. Принадлежит очереди, наружу отдаются копии.
type Job struct {
	ID                     int64
	UserID                 int64
	SourceURL              string
	StartTimestamp         *int // секунды, nil если не задано
	ChatID                 int64
	CorrelatedMessageID    int
	Platform               string
	Title                  string
	DurationSeconds        int
	Status                 Status
	CreatedAt              time.Time
	StartedAt              *time.Time
	EstimatedTimeRemaining string

	timer Timer
}

// Request — то, что диспетчер передаёт в Enqueue.
type Request struct {
	UserID         int64
	URL            string
	StartTimestamp *int
	ChatID         int64
	MessageID      int
}

type Admission struct {
	Position      int
	EstimatedTime string
}

type Metadata struct {
	Title           string
	DurationSeconds int
}
