package k8s

import (
	"fmt"
	"time"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/watch"
)

// Container state spellings within a PodStateSnapshot.
const (
	ContainerRunning    = "running"
	ContainerWaiting    = "waiting"
	ContainerTerminated = "terminated"
)

// ContainerState is the observed state of one container at snapshot time.
type ContainerState struct {
	// State is one of running, waiting, terminated.
	State string `json:"state"`

	// Reason is the cluster-reported reason, when one exists (waiting and
	// terminated states).
	Reason string `json:"reason,omitempty"`

	// Details is a human-readable rendering of the state.
	Details string `json:"details"`

	// ExitCode is set when State is terminated.
	ExitCode *int32 `json:"exit_code,omitempty"`
}

// PodStateSnapshot is one observation of a pod, produced per event by a
// PodEventStream.
type PodStateSnapshot struct {
	EventType         string                    `json:"event_type"`
	PodPhase          string                    `json:"pod_phase"`
	Conditions        []string                  `json:"pod_state_condition,omitempty"`
	ContainerStatuses map[string]ContainerState `json:"container_statuses,omitempty"`
}

// Container returns the named container's state.
func (s PodStateSnapshot) Container(name string) (ContainerState, bool) {
	cs, ok := s.ContainerStatuses[name]
	return cs, ok
}

// FailedFast returns the terminal waiting reason of the named container if
// it is stuck in one.
func (s PodStateSnapshot) FailedFast(name string) (reason string, failed bool) {
	cs, ok := s.ContainerStatuses[name]
	if !ok {
		return "", false
	}
	if cs.State == ContainerWaiting && TerminalWaitingReasons[cs.Reason] {
		return cs.Reason, true
	}
	return "", false
}

// TerminalWaitingReasons is the set of container waiting reasons that
// indicate a terminal failure from which the pod will never recover.
var TerminalWaitingReasons = map[string]bool{
	"ImagePullBackOff":           true,
	"ErrImagePull":               true,
	"CrashLoopBackOff":           true,
	"InvalidImageName":           true,
	"CreateContainerConfigError": true,
}

// snapshotFromPod flattens a pod status into the snapshot shape consumed by
// workflow monitors.
func snapshotFromPod(eventType watch.EventType, pod *corev1.Pod) PodStateSnapshot {
	snap := PodStateSnapshot{
		EventType: string(eventType),
		PodPhase:  string(pod.Status.Phase),
	}

	for _, cond := range pod.Status.Conditions {
		snap.Conditions = append(snap.Conditions, conditionString(cond))
	}

	if len(pod.Status.ContainerStatuses) > 0 {
		snap.ContainerStatuses = make(map[string]ContainerState, len(pod.Status.ContainerStatuses))
		for _, cs := range pod.Status.ContainerStatuses {
			snap.ContainerStatuses[cs.Name] = containerState(cs)
		}
	}

	return snap
}

func conditionString(cond corev1.PodCondition) string {
	s := fmt.Sprintf("%s=%s", cond.Type, cond.Status)
	if cond.Reason != "" {
		s += fmt.Sprintf(" reason=%s", cond.Reason)
	}
	if cond.Message != "" {
		s += fmt.Sprintf(" message=%s", cond.Message)
	}
	return s
}

func containerState(cs corev1.ContainerStatus) ContainerState {
	switch {
	case cs.State.Running != nil:
		return ContainerState{
			State:   ContainerRunning,
			Details: fmt.Sprintf("started at %s", cs.State.Running.StartedAt.Format(time.RFC3339)),
		}

	case cs.State.Terminated != nil:
		t := cs.State.Terminated
		exitCode := t.ExitCode
		return ContainerState{
			State:    ContainerTerminated,
			Reason:   t.Reason,
			Details:  fmt.Sprintf("%s (exit code %d)", t.Reason, t.ExitCode),
			ExitCode: &exitCode,
		}

	case cs.State.Waiting != nil:
		w := cs.State.Waiting
		details := w.Reason
		if w.Message != "" {
			details = fmt.Sprintf("%s: %s", w.Reason, w.Message)
		}
		return ContainerState{
			State:   ContainerWaiting,
			Reason:  w.Reason,
			Details: details,
		}

	default:
		// A zero container state counts as waiting.
		return ContainerState{State: ContainerWaiting}
	}
}
