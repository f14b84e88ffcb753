package api

import (
	"context"

	"code.cloudfoundry.org/lager/v3"
	"code.cloudfoundry.org/lager/v3/lagerctx"

	"github.com/gx4ki/middlelayer/wfapi"
	"github.com/gx4ki/middlelayer/wfapi/storage"
)

// inputKey resolves where a declared input is staged. A source_ref on the
// resource overrides the conventional location.
func inputKey(serviceID string, res wfapi.ServiceResource) string {
	if res.SourceRef != "" {
		return res.SourceRef
	}
	return storage.InputKey(serviceID, res.ResourceName)
}

// inputsFulfilled checks that every declared input has an object staged
// behind it.
func (s *Server) inputsFulfilled(ctx context.Context, desc wfapi.ServiceDescription) (bool, error) {
	staged := map[string]bool{}
	objects, err := s.store.ListObjects(ctx, storage.InputPrefix(desc.ServiceID))
	if err != nil {
		return false, err
	}
	for _, obj := range objects {
		staged[obj.Key] = true
	}

	for _, res := range desc.Inputs {
		key := inputKey(desc.ServiceID, res)
		if staged[key] {
			continue
		}
		if res.SourceRef == "" {
			return false, nil
		}

		// source_ref keys live outside the input prefix
		refs, err := s.store.ListObjects(ctx, key)
		if err != nil {
			return false, err
		}
		found := false
		for _, obj := range refs {
			if obj.Key == key {
				found = true
				break
			}
		}
		if !found {
			return false, nil
		}
	}

	return true, nil
}

// submit runs the submission pipeline for one accepted workflow: hand every
// declared input to the engine, then commit. Failures end the pipeline and
// leave whatever was registered for an explicit stop.
func (s *Server) submit(ctx context.Context, desc wfapi.ServiceDescription, workflowID string) {
	logger := lagerctx.FromContext(ctx).Session("submit", lager.Data{
		"workflow": workflowID,
	})
	ctx = lagerctx.NewContext(ctx, logger)

	for _, res := range desc.Inputs {
		key := inputKey(desc.ServiceID, res)
		err := s.engine.HandleInput(ctx, workflowID, res, func(ctx context.Context) ([]byte, error) {
			return s.store.GetObject(ctx, key)
		})
		if err != nil {
			logger.Error("handle-input-failed", err, lager.Data{"resource": res.ResourceName})
			return
		}
	}

	err := s.engine.CommitWorkflow(ctx, workflowID, desc.ServiceID, desc.WorkflowResource, func() {
		s.finishWorkflow(lagerctx.NewContext(context.Background(), logger), desc, workflowID)
	})
	if err != nil {
		logger.Error("commit-failed", err)
	}
}

// finishWorkflow is the on-finished callback for committed workflows. It
// tells the side-car where to export results, optionally waits out the
// removal grace period, then tears the workflow down. A refused export is
// logged and does not block the teardown.
func (s *Server) finishWorkflow(ctx context.Context, desc wfapi.ServiceDescription, workflowID string) {
	logger := lagerctx.FromContext(ctx).Session("finish-workflow", lager.Data{
		"workflow": workflowID,
	})
	ctx = lagerctx.NewContext(ctx, logger)

	info := wfapi.WorkflowStoreInfo{
		Minio:             s.store.Credentials(),
		DestinationBucket: s.store.Bucket(),
		DestinationPath:   storage.DestinationPath(desc.ServiceID, workflowID),
		ResultDirectory:   wfapi.DefaultResultDirectory,
		ResultFiles:       desc.OutputNames(),
	}
	if err := s.engine.StoreResult(ctx, workflowID, info); err != nil {
		logger.Error("store-result-failed", err)
	}

	if !s.instantRemoval {
		logger.Debug("waiting-grace-period", lager.Data{
			"grace-period": s.gracePeriod.String(),
		})
		<-s.clock.NewTimer(s.gracePeriod).C()
	}

	if err := s.engine.Cleanup(ctx, workflowID); err != nil {
		logger.Error("cleanup-failed", err)
	}
}
