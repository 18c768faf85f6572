// internal/app/system/apierr/partial.go
package apierr

import "fmt"

// PartialFailure reports a two-sided consistency write where the
// primary write succeeded and the paired write did not. It is never
// masked as full success or full failure: handlers surface it as a 207
// payload naming both sides so an operator can reconcile by hand.
type PartialFailure struct {
	Message   string // caller-safe description of the overall operation
	Succeeded string // the side that was written, e.g. "event"
	Failed    string // the side that was not, e.g. "group.events"
	Err       error  // underlying cause of the failed side
}

func (p *PartialFailure) Error() string {
	return fmt.Sprintf("%s: %s written, %s not updated: %v", p.Message, p.Succeeded, p.Failed, p.Err)
}

func (p *PartialFailure) Unwrap() error { return p.Err }
