package backend

import (
	"sort"
	"sync"

	"github.com/gx4ki/middlelayer/wfapi"
	"github.com/gx4ki/middlelayer/wfapi/k8s"
)

// InputConfig accumulates the non-environment inputs of one workflow. Its ID
// names the config map carrying the serialized entries; the input-init
// container consumes that config map when the pod starts.
type InputConfig struct {
	ID      string
	Entries []wfapi.ServiceResource
}

// WorkflowState is the registry's record of one workflow. Reads return
// copies; the registry is the only holder of the live record.
type WorkflowState struct {
	WorkflowID string

	// ConfigMapIDs are the environment config maps, in creation order.
	ConfigMapIDs []string

	// InputConfig exists iff at least one non-environment input was
	// recorded.
	InputConfig *InputConfig

	// VolumeClaimID is set when the job volume is PVC-backed.
	VolumeClaimID string

	// JobID is the workflow pod's name, set by commit.
	JobID string

	Phase       wfapi.Phase
	WorkerState *k8s.PodStateSnapshot
}

func (s *WorkflowState) clone() WorkflowState {
	out := *s
	if s.ConfigMapIDs != nil {
		out.ConfigMapIDs = append([]string(nil), s.ConfigMapIDs...)
	}
	if s.InputConfig != nil {
		ic := InputConfig{
			ID:      s.InputConfig.ID,
			Entries: append([]wfapi.ServiceResource(nil), s.InputConfig.Entries...),
		}
		out.InputConfig = &ic
	}
	if s.WorkerState != nil {
		ws := *s.WorkerState
		out.WorkerState = &ws
	}
	return out
}

// Registry is the in-memory mapping from workflow id to workflow state. Every
// operation is atomic under one mutex. The lifecycle engine owns all fields;
// pod monitors write only Phase and WorkerState.
type Registry struct {
	mu       sync.Mutex
	entries  map[string]*WorkflowState
	monitors map[string]*Monitor
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		entries:  make(map[string]*WorkflowState),
		monitors: make(map[string]*Monitor),
	}
}

// ensure returns the live record for workflowID, creating an empty one in
// PREPARING if absent. Callers must hold r.mu.
func (r *Registry) ensure(workflowID string) *WorkflowState {
	state, ok := r.entries[workflowID]
	if !ok {
		state = &WorkflowState{
			WorkflowID: workflowID,
			Phase:      wfapi.PhasePreparing,
		}
		r.entries[workflowID] = state
	}
	return state
}

// Upsert makes sure a record exists for workflowID.
func (r *Registry) Upsert(workflowID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensure(workflowID)
}

// Get returns a copy of the workflow's state.
func (r *Registry) Get(workflowID string) (WorkflowState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	state, ok := r.entries[workflowID]
	if !ok {
		return WorkflowState{}, false
	}
	return state.clone(), true
}

// IDs returns all registered workflow ids, sorted.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Live reports whether workflowID names a registered workflow in a
// non-terminal phase. The orphan sweeper treats everything else as
// collectable.
func (r *Registry) Live(workflowID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	state, ok := r.entries[workflowID]
	return ok && !state.Phase.Terminal()
}

// AppendConfigMap records an environment config map id, creating the record
// if needed.
func (r *Registry) AppendConfigMap(workflowID, configMapID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	state := r.ensure(workflowID)
	state.ConfigMapIDs = append(state.ConfigMapIDs, configMapID)
}

// AppendInputResource records a non-environment input, creating the input
// config with newConfigID if the workflow does not have one yet. It returns
// the id of the input config actually in use.
func (r *Registry) AppendInputResource(workflowID string, res wfapi.ServiceResource, newConfigID string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	state := r.ensure(workflowID)
	if state.InputConfig == nil {
		state.InputConfig = &InputConfig{ID: newConfigID}
	}
	state.InputConfig.Entries = append(state.InputConfig.Entries, res)
	return state.InputConfig.ID
}

// RemoveConfigMap drops one environment config map id from the record.
// Cleanup prunes each reference once the cluster acknowledged the delete, so
// a second cleanup pass has nothing left to issue.
func (r *Registry) RemoveConfigMap(workflowID, configMapID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	state, ok := r.entries[workflowID]
	if !ok {
		return
	}
	kept := state.ConfigMapIDs[:0]
	for _, id := range state.ConfigMapIDs {
		if id != configMapID {
			kept = append(kept, id)
		}
	}
	state.ConfigMapIDs = kept
}

// ClearInputConfig drops the input config record.
func (r *Registry) ClearInputConfig(workflowID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if state, ok := r.entries[workflowID]; ok {
		state.InputConfig = nil
	}
}

// SetVolumeClaim records the workflow's persistent volume claim id.
func (r *Registry) SetVolumeClaim(workflowID, claimID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensure(workflowID).VolumeClaimID = claimID
}

// ClearVolumeClaim drops the volume claim reference.
func (r *Registry) ClearVolumeClaim(workflowID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if state, ok := r.entries[workflowID]; ok {
		state.VolumeClaimID = ""
	}
}

// SetJobID records the workflow pod's name.
func (r *Registry) SetJobID(workflowID, jobID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensure(workflowID).JobID = jobID
}

// ClearJobID drops the pod reference.
func (r *Registry) ClearJobID(workflowID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if state, ok := r.entries[workflowID]; ok {
		state.JobID = ""
	}
}

// SetMonitor attaches the workflow's monitor handle.
func (r *Registry) SetMonitor(workflowID string, m *Monitor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensure(workflowID)
	r.monitors[workflowID] = m
}

// Monitor returns the workflow's monitor handle.
func (r *Registry) Monitor(workflowID string) (*Monitor, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.monitors[workflowID]
	return m, ok
}

// SetPhase applies a phase transition if the state machine allows it and
// reports whether the phase actually changed. Terminal phases are frozen and
// the non-terminal progression is forward-only, so a late monitor event
// cannot regress an already advanced workflow.
func (r *Registry) SetPhase(workflowID string, phase wfapi.Phase) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	state, ok := r.entries[workflowID]
	if !ok || state.Phase == phase || !state.Phase.CanTransition(phase) {
		return false
	}
	state.Phase = phase
	return true
}

// SetWorkerState records the latest pod observation. Terminal workflows are
// immutable; late observations are dropped.
func (r *Registry) SetWorkerState(workflowID string, snap k8s.PodStateSnapshot) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	state, ok := r.entries[workflowID]
	if !ok || state.Phase.Terminal() {
		return false
	}
	state.WorkerState = &snap
	return true
}

// MarkFinished moves the workflow to FINISHED unless it is already terminal,
// and reports whether the transition happened. A CANCELED workflow stays
// CANCELED through cleanup.
func (r *Registry) MarkFinished(workflowID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	state, ok := r.entries[workflowID]
	if !ok || state.Phase.Terminal() {
		return false
	}
	state.Phase = wfapi.PhaseFinished
	return true
}

// Forget drops a workflow's record and monitor handle. Cleanup does not call
// this; terminal states stay queryable until an operator forgets them.
func (r *Registry) Forget(workflowID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, workflowID)
	delete(r.monitors, workflowID)
}
