package k8s

import (
	"context"
	"fmt"
	"os"
	"time"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager/v3"
	"github.com/hashicorp/go-multierror"

	"github.com/gx4ki/middlelayer/tracing"
)

// Sweeper periodically scans the namespace for cluster objects carrying this
// service's app label whose workflow is no longer live, and deletes them. It
// catches leftovers from partially failed cleanups and from process restarts
// (the workflow registry is in-memory).
type Sweeper struct {
	logger   lager.Logger
	adapter  ClusterAdapter
	interval time.Duration
	clock    clock.Clock

	// live reports whether a workflow id belongs to a live (non-terminal)
	// registry entry. Objects of unknown or terminal workflows are swept.
	live func(workflowID string) bool
}

// NewSweeper creates a Sweeper. A non-positive interval falls back to
// DefaultSweepInterval.
func NewSweeper(logger lager.Logger, adapter ClusterAdapter, interval time.Duration, clk clock.Clock, live func(workflowID string) bool) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Sweeper{
		logger:   logger,
		adapter:  adapter,
		interval: interval,
		clock:    clk,
		live:     live,
	}
}

// Run implements ifrit.Runner. Sweep failures are logged, not fatal; the
// loop exits only on a signal.
func (s *Sweeper) Run(signals <-chan os.Signal, ready chan<- struct{}) error {
	close(ready)

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-signals:
			return nil
		case <-ticker.C():
			if err := s.Sweep(context.Background()); err != nil {
				s.logger.Error("sweep-failed", err)
			}
		}
	}
}

// Sweep performs one pass over pods, config maps and volume claims.
func (s *Sweeper) Sweep(ctx context.Context) error {
	logger := s.logger.Session("sweep")

	ctx, span := tracing.StartSpan(ctx, "k8s.sweeper.sweep", tracing.Attrs{
		"namespace": s.adapter.Namespace(),
	})
	var spanErr error
	defer func() { tracing.End(span, spanErr) }()

	selector := fmt.Sprintf("%s=%s", AppLabelKey, s.adapter.Config().AppName)

	var errs *multierror.Error

	pods, err := s.adapter.ListPods(ctx, selector)
	if err != nil {
		logger.Error("failed-to-list-pods", err)
		errs = multierror.Append(errs, err)
	}
	for _, pod := range pods {
		if s.liveObject(pod.Labels) {
			continue
		}
		logger.Info("deleting-orphaned-pod", lager.Data{
			"pod":      pod.Name,
			"workflow": pod.Labels[WorkflowLabelKey],
		})
		if err := s.adapter.DeletePod(ctx, pod.Name); err != nil {
			errs = multierror.Append(errs, err)
		}
	}

	configMaps, err := s.adapter.ListConfigMaps(ctx, selector)
	if err != nil {
		logger.Error("failed-to-list-config-maps", err)
		errs = multierror.Append(errs, err)
	}
	for _, cm := range configMaps {
		if s.liveObject(cm.Labels) {
			continue
		}
		logger.Info("deleting-orphaned-config-map", lager.Data{
			"config-map": cm.Name,
			"workflow":   cm.Labels[WorkflowLabelKey],
		})
		if err := s.adapter.DeleteConfigMap(ctx, cm.Name); err != nil {
			errs = multierror.Append(errs, err)
		}
	}

	claims, err := s.adapter.ListVolumeClaims(ctx, selector)
	if err != nil {
		logger.Error("failed-to-list-volume-claims", err)
		errs = multierror.Append(errs, err)
	}
	for _, pvc := range claims {
		if s.liveObject(pvc.Labels) {
			continue
		}
		logger.Info("deleting-orphaned-volume-claim", lager.Data{
			"volume-claim": pvc.Name,
			"workflow":     pvc.Labels[WorkflowLabelKey],
		})
		if err := s.adapter.DeleteVolumeClaim(ctx, pvc.Name); err != nil {
			errs = multierror.Append(errs, err)
		}
	}

	spanErr = errs.ErrorOrNil()
	return spanErr
}

// liveObject decides whether the labeled object still belongs to a live
// workflow. Objects without a workflow label are orphans outright.
func (s *Sweeper) liveObject(objLabels map[string]string) bool {
	workflowID := objLabels[WorkflowLabelKey]
	if workflowID == "" {
		return false
	}
	return s.live(workflowID)
}
