package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"code.cloudfoundry.org/lager/v3"
	"code.cloudfoundry.org/lager/v3/lagerctx"
	"github.com/google/uuid"
	"github.com/tedsuo/rata"
	"k8s.io/utils/ptr"

	"github.com/gx4ki/middlelayer/wfapi/backend"
	"github.com/gx4ki/middlelayer/wfapi/storage"
)

// statusLogTailLines bounds the log excerpt served at verbose_level 1.
const statusLogTailLines = 100

// ListWorkflows returns the ids of every workflow submitted against this
// deployment.
func (s *Server) ListWorkflows(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.catalog.Get(rata.Param(r, "service_id")); !ok {
		writeError(w, http.StatusBadRequest, "no valid service_id")
		return
	}

	writeJSON(w, http.StatusOK, s.engine.Workflows())
}

// ExecuteWorkflow checks that every declared input is staged, mints a
// workflow id and hands the submission to the background pipeline. The id is
// returned immediately; callers poll status with it.
func (s *Server) ExecuteWorkflow(w http.ResponseWriter, r *http.Request) {
	serviceID := rata.Param(r, "service_id")
	logger := s.logger.Session("execute-workflow", lager.Data{
		"service": serviceID,
	})

	desc, ok := s.catalog.Get(serviceID)
	if !ok {
		writeError(w, http.StatusBadRequest, "no valid service_id")
		return
	}

	fulfilled, err := s.inputsFulfilled(r.Context(), desc)
	if err != nil {
		logger.Error("input-check-failed", err)
		writeError(w, http.StatusInternalServerError, "could not check staged inputs")
		return
	}
	if !fulfilled {
		writeError(w, http.StatusBadRequest, "service input not fulfilled")
		return
	}

	workflowID := uuid.NewString()
	logger.Info("accepted", lager.Data{"workflow": workflowID})

	s.engine.Register(workflowID)
	go s.submit(lagerctx.NewContext(context.Background(), logger), desc, workflowID)

	writeJSON(w, http.StatusOK, map[string]string{"workflow_id": workflowID})
}

// StopWorkflow cancels a workflow and tears its cluster resources down.
func (s *Server) StopWorkflow(w http.ResponseWriter, r *http.Request) {
	serviceID := rata.Param(r, "service_id")
	workflowID := rata.Param(r, "workflow_id")
	logger := s.logger.Session("stop-workflow", lager.Data{
		"workflow": workflowID,
	})

	if _, ok := s.catalog.Get(serviceID); !ok {
		writeError(w, http.StatusBadRequest, "no valid service_id")
		return
	}

	err := s.engine.StopWorkflow(lagerctx.NewContext(r.Context(), logger), workflowID)
	if err != nil {
		if errors.Is(err, backend.ErrUnknownWorkflow) {
			writeError(w, http.StatusBadRequest, "invalid workflow_id")
			return
		}
		logger.Error("stop-failed", err)
		writeError(w, http.StatusInternalServerError, "could not stop workflow")
		return
	}

	writeJSON(w, http.StatusOK, struct{}{})
}

// WorkflowStatus reports the workflow's phase and worker state. At
// verbose_level 1 and 2 it serves the worker's log as plain text instead,
// tailed and full respectively.
func (s *Server) WorkflowStatus(w http.ResponseWriter, r *http.Request) {
	serviceID := rata.Param(r, "service_id")
	workflowID := rata.Param(r, "workflow_id")
	logger := s.logger.Session("workflow-status", lager.Data{
		"workflow": workflowID,
	})

	if _, ok := s.catalog.Get(serviceID); !ok {
		writeError(w, http.StatusBadRequest, "no valid service_id")
		return
	}

	verbose := r.URL.Query().Get("verbose_level")
	if verbose == "" {
		verbose = "0"
	}

	switch verbose {
	case "0":
		status, err := s.engine.Status(workflowID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid workflow_id")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"service_id":      serviceID,
			"workflow_id":     workflowID,
			"workflow_status": status,
		})

	case "1", "2":
		var tail *int64
		if verbose == "1" {
			tail = ptr.To(int64(statusLogTailLines))
		}

		log, err := s.engine.WorkerLog(lagerctx.NewContext(r.Context(), logger), workflowID, tail)
		if err != nil {
			switch {
			case errors.Is(err, backend.ErrUnknownWorkflow):
				writeError(w, http.StatusBadRequest, "invalid workflow_id")
			case errors.Is(err, backend.ErrNoWorkerPod):
				writeError(w, http.StatusBadRequest, "workflow has no worker pod")
			default:
				logger.Error("worker-log-failed", err)
				writeError(w, http.StatusInternalServerError, "could not fetch worker log")
			}
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, log)

	default:
		writeError(w, http.StatusBadRequest, "invalid verbose_level")
	}
}

// WorkflowResults lists the files a workflow exported, or redirects to a
// download link for one of them. The object store is the source of truth
// here, so results stay reachable after cleanup.
func (s *Server) WorkflowResults(w http.ResponseWriter, r *http.Request) {
	serviceID := rata.Param(r, "service_id")
	workflowID := rata.Param(r, "workflow_id")
	logger := s.logger.Session("workflow-results", lager.Data{
		"workflow": workflowID,
	})

	if _, ok := s.catalog.Get(serviceID); !ok {
		writeError(w, http.StatusBadRequest, "no valid service_id")
		return
	}

	prefix := storage.ResultPrefix(serviceID, workflowID)
	objects, err := s.store.ListObjects(r.Context(), prefix)
	if err != nil {
		logger.Error("list-objects-failed", err)
		writeError(w, http.StatusInternalServerError, "could not list results")
		return
	}

	resultFile := r.URL.Query().Get("result_file")
	if resultFile == "" {
		names := make([]string, 0, len(objects))
		for _, obj := range objects {
			names = append(names, strings.TrimPrefix(obj.Key, prefix))
		}
		writeJSON(w, http.StatusOK, names)
		return
	}

	key := storage.ResultKey(serviceID, workflowID, resultFile)
	found := false
	for _, obj := range objects {
		if obj.Key == key {
			found = true
			break
		}
	}
	if !found {
		writeError(w, http.StatusNotFound, "requested resource not exists")
		return
	}

	url, err := s.store.PresignedGetURL(r.Context(), key)
	if err != nil {
		logger.Error("presign-failed", err, lager.Data{"key": key})
		writeError(w, http.StatusInternalServerError, "could not presign result")
		return
	}

	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}
