package monitoring

import (
	"sync"
	"time"
)

// A ProgressBar tracks how many references of a run have been replayed.
type ProgressBar struct {
	lock      sync.Mutex
	id        string
	name      string
	startTime time.Time
	total     uint64
	finished  uint64
}

type progressRsp struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	Total     uint64    `json:"total"`
	Finished  uint64    `json:"finished"`
}

// IncrementFinished add a certain amount to finished element.
func (b *ProgressBar) IncrementFinished(amount uint64) {
	b.lock.Lock()
	defer b.lock.Unlock()

	b.finished += amount
}

// Finished returns the number of finished elements.
func (b *ProgressBar) Finished() uint64 {
	b.lock.Lock()
	defer b.lock.Unlock()

	return b.finished
}

func (b *ProgressBar) snapshot() progressRsp {
	b.lock.Lock()
	defer b.lock.Unlock()

	return progressRsp{
		ID:        b.id,
		Name:      b.name,
		StartTime: b.startTime,
		Total:     b.total,
		Finished:  b.finished,
	}
}
