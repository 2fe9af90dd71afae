package exec

import (
	"time"

	"linal/internal/errs"
)

// deadlineChecker wraps an optional wall-clock deadline. A nil deadline
// never expires, matching "accept either a deadline or an infinite
// deadline" from the concurrency model.
type deadlineChecker struct {
	deadline *time.Time
}

func newDeadlineChecker(deadline *time.Time) *deadlineChecker {
	return &deadlineChecker{deadline: deadline}
}

func (d *deadlineChecker) check() error {
	if d.deadline == nil {
		return nil
	}
	if time.Now().After(*d.deadline) {
		return &errs.Cancelled{Deadline: *d.deadline}
	}
	return nil
}

// SetDeadline installs a wall-clock deadline on the context; passing nil
// clears it back to "never expires".
func (c *Context) SetDeadline(deadline *time.Time) {
	c.check = newDeadlineChecker(deadline)
}
