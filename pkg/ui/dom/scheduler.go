package dom

import "sync"

// Scheduler defers work until after the next paint.
//
//go:generate mockgen -destination=../modal/mock_scheduler_test.go -package=modal github.com/odvcencio/focustrap/pkg/ui/dom Scheduler
type Scheduler interface {
	AfterPaint(task func())
}

// TaskQueue is the Scheduler the runtime drains once per frame.
type TaskQueue struct {
	mu    sync.Mutex
	tasks []func()
}

// AfterPaint queues task for the next Flush.
func (q *TaskQueue) AfterPaint(task func()) {
	if task == nil {
		return
	}
	q.mu.Lock()
	q.tasks = append(q.tasks, task)
	q.mu.Unlock()
}

// Pending returns the number of queued tasks.
func (q *TaskQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Flush runs the tasks queued before the call and returns how many ran.
// Tasks queued while flushing wait for the following Flush.
func (q *TaskQueue) Flush() int {
	q.mu.Lock()
	tasks := q.tasks
	q.tasks = nil
	q.mu.Unlock()

	for _, task := range tasks {
		task()
	}
	return len(tasks)
}
