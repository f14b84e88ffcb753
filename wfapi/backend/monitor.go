package backend

import (
	"context"
	"fmt"
	"sync"
	"time"

	"code.cloudfoundry.org/lager/v3"
	"code.cloudfoundry.org/lager/v3/lagerctx"

	"github.com/gx4ki/middlelayer/wfapi"
	"github.com/gx4ki/middlelayer/wfapi/k8s"
	"github.com/gx4ki/middlelayer/wfapi/metric"
)

// Monitor is the handle to one workflow's pod supervision task. The engine
// spawns exactly one per committed workflow; it lives until the worker
// container reaches a terminal observation or the workflow is canceled.
type Monitor struct {
	workflowID string
	jobID      string
	service    string

	cancel     chan struct{}
	cancelOnce sync.Once
	done       chan struct{}
}

func newMonitor(workflowID, jobID, service string) *Monitor {
	return &Monitor{
		workflowID: workflowID,
		jobID:      jobID,
		service:    service,
		cancel:     make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Cancel signals the monitor to stop. Safe to call more than once and from
// any goroutine.
func (m *Monitor) Cancel() {
	m.cancelOnce.Do(func() { close(m.cancel) })
}

// Done is closed when the monitor task has exited.
func (m *Monitor) Done() <-chan struct{} {
	return m.done
}

// runMonitor supervises one workflow pod: it feeds the pod's event stream
// into a channel and folds each snapshot into the registry per the phase
// state machine. The loop ends on cancellation, on a terminal worker
// observation, or when the stream fails.
//
// onFinished fires at most once, strictly after a terminated worker was
// observed and recorded. It runs on its own goroutine so a slow finish
// callback does not hold up Done.
func (e *Engine) runMonitor(ctx context.Context, m *Monitor, onFinished func()) {
	logger := lagerctx.FromContext(ctx).Session("pod-monitor", lager.Data{
		"workflow": m.workflowID,
		"pod":      m.jobID,
	})

	stream := e.adapter.Events(m.jobID)
	started := time.Now()
	sawRunning := false

	defer close(m.done)
	defer stream.Stop()

	snapshots := make(chan k8s.PodStateSnapshot)
	streamErrs := make(chan error, 1)
	go func() {
		for {
			snap, err := stream.Next(ctx)
			if err != nil {
				streamErrs <- err
				return
			}
			select {
			case snapshots <- snap:
			case <-m.done:
				return
			}
		}
	}()

	logger.Info("watching")

	for {
		select {
		case <-m.cancel:
			e.markCanceled(m.workflowID)
			metric.RecordWorkflowDuration(ctx, time.Since(started), m.service, "canceled")
			logger.Info("canceled")
			return

		case err := <-streamErrs:
			// Stop() racing the stream failure still counts as a
			// cancellation.
			select {
			case <-m.cancel:
				e.markCanceled(m.workflowID)
				metric.RecordWorkflowDuration(ctx, time.Since(started), m.service, "canceled")
				logger.Info("canceled")
			default:
				logger.Error("pod-event-stream-ended", err)
			}
			return

		case snap := <-snapshots:
			e.registry.SetWorkerState(m.workflowID, snap)

			if reason, failed := snap.FailedFast(k8s.WorkerContainerName); failed {
				if reason == "ImagePullBackOff" || reason == "ErrImagePull" {
					e.metrics.ImagePullFailures.Inc()
				}
				metric.RecordWorkflowDuration(ctx, time.Since(started), m.service, "unrunnable")
				// The reason stays visible in the recorded worker state;
				// the workflow waits in PREPARING for an explicit stop.
				logger.Error("worker-unrunnable", fmt.Errorf("worker container: %s", reason))
				return
			}

			worker, ok := snap.Container(k8s.WorkerContainerName)
			if !ok {
				e.registry.SetPhase(m.workflowID, wfapi.PhasePreparing)
				continue
			}

			switch worker.State {
			case k8s.ContainerRunning:
				if !sawRunning {
					sawRunning = true
					metric.RecordPodStartupDuration(ctx, time.Since(started))
				}
				e.registry.SetPhase(m.workflowID, wfapi.PhaseRunning)

			case k8s.ContainerTerminated:
				e.registry.SetPhase(m.workflowID, wfapi.PhaseStoring)
				metric.RecordWorkflowDuration(ctx, time.Since(started), m.service, "terminated")
				logger.Info("worker-terminated", lager.Data{"details": worker.Details})
				if onFinished != nil {
					go onFinished()
				}
				return

			default:
				e.registry.SetPhase(m.workflowID, wfapi.PhasePreparing)
			}
		}
	}
}

func (e *Engine) markCanceled(workflowID string) {
	if e.registry.SetPhase(workflowID, wfapi.PhaseCanceled) {
		e.metrics.WorkflowsCanceled.Inc()
	}
}
