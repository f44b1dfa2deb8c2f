// Package conversions — очередь конвертаций: одна полоса, FIFO, продвижение по таймерам.
package conversions

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/Spok95/telegisto-bot/internal/apperr"
	"github.com/Spok95/telegisto-bot/internal/links"
)

const DefaultSettleDelay = 5 * time.Second

// Notifier доставляет текст в чат заявки.
type Notifier interface {
	Send(ctx context.Context, chatID int64, text string) (int, error)
}

// UsageRecorder вызывается после успешной конвертации, ошибок не возвращает.
type UsageRecorder interface {
	UpdateUsage(ctx context.Context, userID int64)
}

type Options struct {
	Resolver    MetadataResolver
	Transcoder  Transcoder
	Notifier    Notifier
	Usage       UsageRecorder
	Scheduler   Scheduler
	Metrics     *Metrics
	SettleDelay time.Duration
	Now         func() time.Time
}

// Queue — единственный владелец заявок. Все изменения идут под mu.
type Queue struct {
	log        *slog.Logger
	resolver   MetadataResolver
	transcoder Transcoder
	notifier   Notifier
	usage      UsageRecorder
	sched      Scheduler
	metrics    *Metrics
	settle     time.Duration
	now        func() time.Time

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	jobs   []*Job
	nextID int64
	closed bool
}

func NewQueue(log *slog.Logger, opts Options) *Queue {
	if opts.Scheduler == nil {
		opts.Scheduler = RealScheduler{}
	}
	if opts.Transcoder == nil {
		opts.Transcoder = SimulatedTranscoder{Unit: time.Second}
	}
	if opts.SettleDelay <= 0 {
		opts.SettleDelay = DefaultSettleDelay
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Queue{
		log:        log,
		resolver:   opts.Resolver,
		transcoder: opts.Transcoder,
		notifier:   opts.Notifier,
		usage:      opts.Usage,
		sched:      opts.Scheduler,
		metrics:    opts.Metrics,
		settle:     opts.SettleDelay,
		now:        opts.Now,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Enqueue ставит заявку в хвост и сразу возвращается; позиция считается с 1 и включает саму заявку.
func (q *Queue) Enqueue(ctx context.Context, req Request) (Admission, error) {
	meta, err := q.resolver.Resolve(ctx, req.URL)
	if err != nil {
		q.log.Error("resolve metadata failed", "user_id", req.UserID, "url", req.URL, "err", err)
		switch apperr.KindOf(err) {
		case apperr.KindDownload, apperr.KindTimeout, apperr.KindQueue:
			return Admission{}, err
		}
		return Admission{}, apperr.Wrap(apperr.KindQueue, "failed to add conversion to queue", err)
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return Admission{}, apperr.Queue("queue is closed")
	}

	var start *int
	if req.StartTimestamp != nil {
		v := *req.StartTimestamp
		start = &v
	}

	q.nextID++
	job := &Job{
		ID:                     q.nextID,
		UserID:                 req.UserID,
		SourceURL:              req.URL,
		StartTimestamp:         start,
		ChatID:                 req.ChatID,
		CorrelatedMessageID:    req.MessageID,
		Platform:               links.Platform(req.URL),
		Title:                  meta.Title,
		DurationSeconds:        meta.DurationSeconds,
		Status:                 StatusQueued,
		CreatedAt:              q.now(),
		EstimatedTimeRemaining: Humanize(EstimateSeconds(meta.DurationSeconds, len(q.jobs))),
	}
	q.jobs = append(q.jobs, job)
	position := len(q.jobs)

	q.metrics.jobEnqueued(job.Platform)
	q.metrics.setLength(position)
	q.log.Info("job queued",
		"job_id", job.ID,
		"user_id", job.UserID,
		"platform", job.Platform,
		"position", position,
	)

	q.advance()

	return Admission{Position: position, EstimatedTime: job.EstimatedTimeRemaining}, nil
}

// CheckStatus — копии заявок пользователя в порядке очереди.
func (q *Queue) CheckStatus(userID int64) []Job {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Job, 0)
	for _, j := range q.jobs {
		if j.UserID == userID {
			out = append(out, j.clone())
		}
	}
	return out
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}

// Close останавливает отложенные задачи. Состояние очереди не сохраняется.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	for _, j := range q.jobs {
		if j.timer != nil {
			j.timer.Stop()
			j.timer = nil
		}
	}
	q.cancel()
	q.log.Info("queue closed", "pending", len(q.jobs))
}

// advance переводит голову очереди в processing, если полоса свободна. Вызывать под mu.
func (q *Queue) advance() {
	head := nextToStart(q.jobs)
	if q.closed || head == nil {
		return
	}

	now := q.now()
	head.Status = StatusProcessing
	head.StartedAt = &now
	q.metrics.jobStarted(now.Sub(head.CreatedAt))

	id := head.ID
	delay := q.transcoder.Estimate(*head)
	head.timer = q.sched.AfterFunc(delay, func() { q.complete(id) })

	q.log.Info("processing job", "job_id", id, "delay", delay.String())
}

// nextToStart: только голова и только из queued. Любой другой статус головы занимает полосу.
func nextToStart(jobs []*Job) *Job {
	if len(jobs) == 0 || jobs[0].Status != StatusQueued {
		return nil
	}
	return jobs[0]
}

func (q *Queue) complete(id int64) {
	q.mu.Lock()
	job := q.find(id)
	if job == nil || job.Status != StatusProcessing || q.closed {
		q.mu.Unlock()
		return
	}
	snapshot := job.clone()
	q.mu.Unlock()

	finishErr := q.transcoder.Finish(q.ctx, snapshot)

	q.mu.Lock()
	job = q.find(id)
	if job == nil {
		q.mu.Unlock()
		return
	}
	job.Status = StatusCompleted
	if finishErr != nil {
		job.Status = StatusFailed
	}
	job.timer = nil
	if !q.closed {
		job.timer = q.sched.AfterFunc(q.settle, func() { q.remove(id) })
	}
	snapshot = job.clone()
	q.mu.Unlock()

	q.metrics.jobFinished(snapshot.Status)

	if finishErr != nil {
		q.log.Error("conversion failed", "job_id", id, "err", finishErr)
		q.notify(snapshot, apperr.UserMessage(apperr.Wrap(apperr.KindConversion, "transcode", finishErr)))
		return
	}

	q.log.Info("completed job", "job_id", id, "chat_id", snapshot.ChatID)
	q.notify(snapshot, fmt.Sprintf("Your audio for \"%s\" is ready! 🎧", snapshot.Title))

	if q.usage != nil {
		go q.usage.UpdateUsage(q.ctx, snapshot.UserID)
	}
}

// remove удаляет по id, а не по индексу: позиции могли сдвинуться.
func (q *Queue) remove(id int64) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.jobs = slices.DeleteFunc(q.jobs, func(j *Job) bool { return j.ID == id })
	q.metrics.setLength(len(q.jobs))
	q.log.Debug("job removed", "job_id", id)

	q.advance()
}

func (q *Queue) notify(job Job, text string) {
	if q.notifier == nil {
		return
	}
	if _, err := q.notifier.Send(q.ctx, job.ChatID, text); err != nil {
		q.log.Error("notify failed", "job_id", job.ID, "chat_id", job.ChatID, "err", err)
	}
}

func (q *Queue) find(id int64) *Job {
	for _, j := range q.jobs {
		if j.ID == id {
			return j
		}
	}
	return nil
}

func (j *Job) clone() Job {
	cp := *j
	cp.timer = nil
	if j.StartTimestamp != nil {
		v := *j.StartTimestamp
		cp.StartTimestamp = &v
	}
	if j.StartedAt != nil {
		v := *j.StartedAt
		cp.StartedAt = &v
	}
	return cp
}
