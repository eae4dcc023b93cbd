package engine

import "time"

// timeControl is the soft time budget shared by both searchers. The deadline
// is advisory: searchers poll Expired between batches of nodes and unwind on
// their own. Nothing preempts a searcher that stops polling.
type timeControl struct {
	deadline time.Time
	limited  bool
}

func newTimeControl(limitMs int) timeControl {
	if limitMs <= 0 {
		return timeControl{}
	}
	return timeControl{
		deadline: time.Now().Add(time.Duration(limitMs) * time.Millisecond),
		limited:  true,
	}
}

func (tc *timeControl) Expired() bool {
	return tc.limited && !time.Now().Before(tc.deadline)
}
