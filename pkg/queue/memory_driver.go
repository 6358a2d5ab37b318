package queue

import "context"

const memoryBacklog = 1000

// MemoryDriver holds jobs in a buffered channel. It is the default driver;
// jobs do not survive a restart, which is acceptable for the activity log.
type MemoryDriver struct {
	jobs chan []byte
}

func NewMemoryDriver() *MemoryDriver {
	return &MemoryDriver{jobs: make(chan []byte, memoryBacklog)}
}

// Push blocks when the backlog is full.
func (d *MemoryDriver) Push(payload []byte) error {
	d.jobs <- payload
	return nil
}

// Pop blocks until a job arrives or ctx is cancelled.
func (d *MemoryDriver) Pop(ctx context.Context) ([]byte, error) {
	select {
	case payload := <-d.jobs:
		return payload, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
