package wfapi

// Phase is the lifecycle phase of a workflow.
type Phase string

const (
	PhasePreparing Phase = "PREPARING"
	PhaseRunning   Phase = "RUNNING"
	PhaseStoring   Phase = "STORING"
	PhaseFinished  Phase = "FINISHED"
	PhaseCanceled  Phase = "CANCELED"
)

// Terminal reports whether no further phase transition is allowed.
func (p Phase) Terminal() bool {
	return p == PhaseFinished || p == PhaseCanceled
}

// phaseRank orders the non-terminal progression PREPARING < RUNNING <
// STORING. Terminal phases are reachable from any non-terminal phase.
var phaseRank = map[Phase]int{
	PhasePreparing: 0,
	PhaseRunning:   1,
	PhaseStoring:   2,
}

// CanTransition reports whether moving from p to next is a legal step of the
// state machine. Re-asserting the current phase is always legal.
func (p Phase) CanTransition(next Phase) bool {
	if p == next {
		return true
	}
	if p.Terminal() {
		return false
	}
	if next.Terminal() {
		return true
	}
	return phaseRank[next] > phaseRank[p]
}
