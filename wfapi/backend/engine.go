package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"code.cloudfoundry.org/lager/v3"
	"code.cloudfoundry.org/lager/v3/lagerctx"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/gx4ki/middlelayer/tracing"
	"github.com/gx4ki/middlelayer/wfapi"
	"github.com/gx4ki/middlelayer/wfapi/k8s"
	"github.com/gx4ki/middlelayer/wfapi/metric"
)

var (
	// ErrUnknownWorkflow means no registry record exists for the id.
	ErrUnknownWorkflow = errors.New("unknown workflow")

	// ErrNoWorkerPod means the workflow was never committed, so there is no
	// pod to reach.
	ErrNoWorkerPod = errors.New("workflow has no worker pod")
)

// Engine orchestrates the lifecycle of workflows: it turns recorded inputs
// into cluster objects, commits worker pods, supervises them through
// monitors, and tears everything down again.
type Engine struct {
	adapter  k8s.ClusterAdapter
	registry *Registry
	metrics  *metric.Monitor
}

func NewEngine(adapter k8s.ClusterAdapter, registry *Registry, metrics *metric.Monitor) *Engine {
	return &Engine{
		adapter:  adapter,
		registry: registry,
		metrics:  metrics,
	}
}

// WorkflowStatus is the queryable snapshot of one workflow.
type WorkflowStatus struct {
	Phase       wfapi.Phase           `json:"phase"`
	WorkerState *k8s.PodStateSnapshot `json:"worker_state,omitempty"`
}

// Register creates an empty registry record for a freshly minted workflow
// id, so status and stop find it before the submission pipeline has done
// anything.
func (e *Engine) Register(workflowID string) {
	e.registry.Upsert(workflowID)
}

// HandleInput records one declared input for a not-yet-committed workflow.
// Environment inputs are fetched eagerly, parsed as env files and turned
// into config maps; everything else is recorded for the input-init container
// to fetch when the pod starts. getData is only invoked for environment
// inputs.
func (e *Engine) HandleInput(ctx context.Context, workflowID string, res wfapi.ServiceResource, getData func(context.Context) ([]byte, error)) error {
	logger := lagerctx.FromContext(ctx).Session("handle-input", lager.Data{
		"workflow": workflowID,
		"resource": res.ResourceName,
	})

	if res.Type != wfapi.KindEnvironment {
		configID := e.registry.AppendInputResource(workflowID, res, uuid.NewString())
		logger.Debug("recorded-for-init", lager.Data{"input-config": configID})
		return nil
	}

	data, err := getData(ctx)
	if err != nil {
		return fmt.Errorf("fetching input %q: %w", res.ResourceName, err)
	}
	env, err := wfapi.ParseEnvFile(data)
	if err != nil {
		return fmt.Errorf("parsing input %q: %w", res.ResourceName, err)
	}

	configMapID := uuid.NewString()
	labels := e.adapter.Config().Labels(workflowID, "")
	err = e.adapter.CreateConfigMap(ctx, configMapID, env, labels)
	if err != nil && !errors.Is(err, k8s.ErrAlreadyExists) {
		return err
	}

	e.registry.AppendConfigMap(workflowID, configMapID)
	logger.Debug("created-config-map", lager.Data{"config-map": configMapID})
	return nil
}

// CommitWorkflow materializes everything recorded for the workflow and
// starts its pod: input instruction config map, volume claim when the job
// storage is claim-backed, the pod itself, and finally the monitor that
// carries onFinished. Failures abort the remaining steps and leave partial
// progress for Cleanup.
func (e *Engine) CommitWorkflow(ctx context.Context, workflowID, serviceID string, spec wfapi.WorkflowResourceSpec, onFinished func()) error {
	logger := lagerctx.FromContext(ctx).Session("commit-workflow", lager.Data{
		"workflow": workflowID,
		"service":  serviceID,
	})

	ctx, span := tracing.StartSpan(ctx, "backend.commit-workflow", tracing.Attrs{
		"workflow": workflowID,
		"service":  serviceID,
	})
	var spanErr error
	defer func() { tracing.End(span, spanErr) }()

	cfg := e.adapter.Config()
	switch cfg.JobStorageType {
	case k8s.StorageEmptyDir, k8s.StoragePVC:
	default:
		spanErr = &k8s.Error{
			Kind: k8s.KindInvalid,
			Op:   "commit workflow",
			Name: workflowID,
			Err:  fmt.Errorf("unknown job storage type %q", string(cfg.JobStorageType)),
		}
		return spanErr
	}

	e.registry.Upsert(workflowID)
	state, _ := e.registry.Get(workflowID)

	jobID := uuid.NewString()
	labels := cfg.Labels(workflowID, jobID)

	if state.InputConfig != nil {
		payload, err := json.Marshal(state.InputConfig.Entries)
		if err != nil {
			spanErr = fmt.Errorf("serializing input instruction: %w", err)
			return spanErr
		}
		data := map[string]string{k8s.InitConfigKey: string(payload)}
		if err := e.adapter.CreateConfigMap(ctx, state.InputConfig.ID, data, labels); err != nil {
			spanErr = err
			return err
		}
	}

	if cfg.JobStorageType == k8s.StoragePVC {
		claimID := uuid.NewString()
		size := cfg.JobStorageSize
		if size == "" {
			size = k8s.DefaultJobStorageSize
		}
		if err := e.adapter.CreateVolumeClaim(ctx, claimID, size, labels); err != nil {
			spanErr = err
			return err
		}
		e.registry.SetVolumeClaim(workflowID, claimID)
		state.VolumeClaimID = claimID
		metric.RecordVolumeClaimsCreated(ctx, 1)
	}

	params := k8s.PodManifestParams{
		JobID:         jobID,
		Spec:          spec,
		ConfigMapRefs: state.ConfigMapIDs,
		VolumeClaimID: state.VolumeClaimID,
		Labels:        labels,
	}
	if state.InputConfig != nil {
		params.InputConfigRef = state.InputConfig.ID
		params.InputResources = state.InputConfig.Entries
	}

	if err := e.adapter.CreatePod(ctx, k8s.BuildPodManifest(params, cfg)); err != nil {
		spanErr = err
		return err
	}
	metric.RecordPodsCreated(ctx, 1)

	e.registry.SetJobID(workflowID, jobID)

	monitor := newMonitor(workflowID, jobID, serviceID)
	e.registry.SetMonitor(workflowID, monitor)
	e.metrics.WorkflowsSubmitted.Inc()

	go e.runMonitor(lagerctx.NewContext(context.Background(), lagerctx.FromContext(ctx)), monitor, onFinished)

	logger.Info("committed", lager.Data{"pod": jobID})
	return nil
}

// StoreResult instructs the workflow's side-car to export results. A side-car
// response of 400 or above is logged and swallowed; the side-car owns
// retries at that point.
func (e *Engine) StoreResult(ctx context.Context, workflowID string, info wfapi.WorkflowStoreInfo) error {
	logger := lagerctx.FromContext(ctx).Session("store-result", lager.Data{
		"workflow": workflowID,
	})

	state, ok := e.registry.Get(workflowID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownWorkflow, workflowID)
	}
	if state.JobID == "" {
		return fmt.Errorf("%w: %s", ErrNoWorkerPod, workflowID)
	}

	payload, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("serializing store info: %w", err)
	}

	status, err := e.adapter.PortForwardPost(ctx, state.JobID, k8s.SideCarPort, "/store", payload)
	if err != nil {
		return err
	}
	if status >= 400 {
		e.metrics.StoreRejections.Inc()
		logger.Info("side-car-rejected-store", lager.Data{"status": status})
		return nil
	}

	logger.Debug("stored", lager.Data{"status": status})
	return nil
}

// Cleanup deletes every cluster object recorded for the workflow, cancels
// its monitor and marks it FINISHED. Idempotent; each delete tolerates an
// already-absent object. All steps are attempted even when some fail, and
// the failures come back aggregated. The registry entry survives so the
// terminal state stays queryable.
//
// Cleanup does not wait for the monitor: a monitor still running at this
// point may record CANCELED before the FINISHED mark lands. Both internal
// callers, the finish callback and StopWorkflow, reach Cleanup only after
// the monitor has ended.
func (e *Engine) Cleanup(ctx context.Context, workflowID string) error {
	logger := lagerctx.FromContext(ctx).Session("cleanup", lager.Data{
		"workflow": workflowID,
	})

	ctx, span := tracing.StartSpan(ctx, "backend.cleanup", tracing.Attrs{
		"workflow": workflowID,
	})
	var spanErr error
	defer func() { tracing.End(span, spanErr) }()

	state, ok := e.registry.Get(workflowID)
	if !ok {
		spanErr = fmt.Errorf("%w: %s", ErrUnknownWorkflow, workflowID)
		return spanErr
	}

	// Each acknowledged delete is pruned from the record so a repeated
	// cleanup only re-issues what actually failed.
	var errs *multierror.Error
	for _, configMapID := range state.ConfigMapIDs {
		if err := e.adapter.DeleteConfigMap(ctx, configMapID); err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		e.registry.RemoveConfigMap(workflowID, configMapID)
	}
	if state.InputConfig != nil {
		if err := e.adapter.DeleteConfigMap(ctx, state.InputConfig.ID); err != nil {
			errs = multierror.Append(errs, err)
		} else {
			e.registry.ClearInputConfig(workflowID)
		}
	}
	if state.VolumeClaimID != "" {
		if err := e.adapter.DeleteVolumeClaim(ctx, state.VolumeClaimID); err != nil {
			errs = multierror.Append(errs, err)
		} else {
			e.registry.ClearVolumeClaim(workflowID)
		}
	}
	if state.JobID != "" {
		if err := e.adapter.DeletePod(ctx, state.JobID); err != nil {
			errs = multierror.Append(errs, err)
		} else {
			e.registry.ClearJobID(workflowID)
		}
	}

	if monitor, ok := e.registry.Monitor(workflowID); ok {
		monitor.Cancel()
	}

	if e.registry.MarkFinished(workflowID) {
		e.metrics.WorkflowsFinished.Inc()
	}

	spanErr = errs.ErrorOrNil()
	if spanErr != nil {
		logger.Error("incomplete", spanErr)
	} else {
		logger.Info("done")
	}
	return spanErr
}

// StopWorkflow cancels the workflow's monitor, waits until the monitor has
// acknowledged, then cleans up. A workflow stopped before commit has no
// monitor; it is marked CANCELED directly. The CANCELED phase survives the
// cleanup.
func (e *Engine) StopWorkflow(ctx context.Context, workflowID string) error {
	logger := lagerctx.FromContext(ctx).Session("stop-workflow", lager.Data{
		"workflow": workflowID,
	})

	if _, ok := e.registry.Get(workflowID); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownWorkflow, workflowID)
	}

	if monitor, ok := e.registry.Monitor(workflowID); ok {
		monitor.Cancel()
		select {
		case <-monitor.Done():
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	// A live monitor marks the cancellation itself; this covers workflows
	// stopped before commit and monitors that already gave up on an
	// unrunnable worker.
	if e.registry.SetPhase(workflowID, wfapi.PhaseCanceled) {
		e.metrics.WorkflowsCanceled.Inc()
	}

	logger.Info("stopped")
	return e.Cleanup(ctx, workflowID)
}

// Workflows returns every known workflow id in sorted order.
func (e *Engine) Workflows() []string {
	return e.registry.IDs()
}

// Status returns the workflow's phase and last observed worker state.
func (e *Engine) Status(workflowID string) (WorkflowStatus, error) {
	state, ok := e.registry.Get(workflowID)
	if !ok {
		return WorkflowStatus{}, fmt.Errorf("%w: %s", ErrUnknownWorkflow, workflowID)
	}
	return WorkflowStatus{
		Phase:       state.Phase,
		WorkerState: state.WorkerState,
	}, nil
}

// WorkerLog fetches the worker container's log. tailLines limits the result
// to the last n lines; nil means the full log.
func (e *Engine) WorkerLog(ctx context.Context, workflowID string, tailLines *int64) (string, error) {
	state, ok := e.registry.Get(workflowID)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownWorkflow, workflowID)
	}
	if state.JobID == "" {
		return "", fmt.Errorf("%w: %s", ErrNoWorkerPod, workflowID)
	}
	return e.adapter.PodLog(ctx, state.JobID, k8s.WorkerContainerName, tailLines)
}

// FollowWorkerLog streams the worker container's log in follow mode. The
// caller owns the returned reader.
func (e *Engine) FollowWorkerLog(ctx context.Context, workflowID string) (io.ReadCloser, error) {
	state, ok := e.registry.Get(workflowID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownWorkflow, workflowID)
	}
	if state.JobID == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoWorkerPod, workflowID)
	}
	return e.adapter.FollowPodLog(ctx, state.JobID, k8s.WorkerContainerName)
}
