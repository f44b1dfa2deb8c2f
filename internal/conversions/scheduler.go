package conversions

import "time"

// Timer — хэндл отложенной задачи, хранится рядом с заявкой.
type Timer interface {
	Stop() bool
}

// Scheduler откладывает вызовы. Очередь не знает, чем именно реализован таймер.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type RealScheduler struct{}

func (RealScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
