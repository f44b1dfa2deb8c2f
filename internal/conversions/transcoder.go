package conversions

import (
	"context"
	"time"
)

// Transcoder занимает полосу очереди на Estimate(job) и затем вызывается Finish.
type Transcoder interface {
	Estimate(job Job) time.Duration
	Finish(ctx context.Context, job Job) error
}

const maxSimulatedUnits = 10.0

// SimulatedTranscoder: min(duration/10, 10) единиц времени, файл не создаётся.
type SimulatedTranscoder struct {
	Unit time.Duration
}

func (t SimulatedTranscoder) Estimate(job Job) time.Duration {
	units := min(float64(job.DurationSeconds)/10, maxSimulatedUnits)
	return time.Duration(units * float64(t.Unit))
}

func (SimulatedTranscoder) Finish(context.Context, Job) error { return nil }
