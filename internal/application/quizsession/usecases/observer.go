package usecases

import (
	vo "github.com/soripaulos/medical-quiz-app-sub001/internal/domain/quizsession/valueobjects"
)

// LifecycleObserver is notified of status changes and failed secondary writes.
type LifecycleObserver interface {
	SessionTransitioned(from, to vo.SessionStatus)
	SecondaryWriteFailed(step string)
}

type nopObserver struct{}

func (nopObserver) SessionTransitioned(vo.SessionStatus, vo.SessionStatus) {}
func (nopObserver) SecondaryWriteFailed(string)                            {}

// Secondary write steps reported in Degraded.
const (
	StepActiveTime    = "active_time"
	StepProgress      = "progress"
	StepCursor        = "cursor"
	StepActivePointer = "active_pointer"
	StepOrphanCleanup = "orphan_cleanup"
	StepAbandon       = "abandon"
)

// degradation collects secondary write failures for one operation.
type degradation struct {
	steps    []string
	observer LifecycleObserver
}

func (d *degradation) add(step string) {
	d.steps = append(d.steps, step)
	d.observer.SecondaryWriteFailed(step)
}

func (d *degradation) list() []string {
	return d.steps
}
