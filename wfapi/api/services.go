package api

import (
	"net/http"
	"path"

	"code.cloudfoundry.org/lager/v3"
	"github.com/tedsuo/rata"

	"github.com/gx4ki/middlelayer/wfapi/storage"
)

// ListServices reports every offered service and its validity window.
func (s *Server) ListServices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"services": s.catalog.List()})
}

// GetServiceInfo returns the full description of one service.
func (s *Server) GetServiceInfo(w http.ResponseWriter, r *http.Request) {
	desc, ok := s.catalog.Get(rata.Param(r, "service_id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "no valid service_id")
		return
	}

	writeJSON(w, http.StatusOK, desc)
}

// UploadInput stages one declared input in the result bucket.
func (s *Server) UploadInput(w http.ResponseWriter, r *http.Request) {
	serviceID := rata.Param(r, "service_id")
	resource := rata.Param(r, "resource")
	logger := s.logger.Session("upload-input", lager.Data{
		"service":  serviceID,
		"resource": resource,
	})

	desc, ok := s.catalog.Get(serviceID)
	if !ok {
		writeError(w, http.StatusBadRequest, "no valid service_id")
		return
	}

	res, ok := desc.Input(resource)
	if !ok {
		writeError(w, http.StatusBadRequest, "no valid resource provided")
		return
	}

	file, header, err := r.FormFile("input_file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing 'input_file' upload")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := inputKey(serviceID, res)
	err = s.store.PutObject(r.Context(), key, file, header.Size, contentType)
	if err != nil {
		logger.Error("put-object-failed", err, lager.Data{"key": key})
		writeError(w, http.StatusInternalServerError, "could not store input")
		return
	}

	s.metrics.InputUploads.Inc()
	writeJSON(w, http.StatusOK, struct{}{})
}

// GetOutput redirects to a short-lived download link for the most recently
// produced copy of a declared output.
func (s *Server) GetOutput(w http.ResponseWriter, r *http.Request) {
	serviceID := rata.Param(r, "service_id")
	resource := rata.Param(r, "resource")
	logger := s.logger.Session("get-output", lager.Data{
		"service":  serviceID,
		"resource": resource,
	})

	desc, ok := s.catalog.Get(serviceID)
	if !ok {
		writeError(w, http.StatusBadRequest, "no valid service_id")
		return
	}

	if _, ok := desc.Output(resource); !ok {
		writeError(w, http.StatusBadRequest, "no valid resource provided")
		return
	}

	objects, err := s.store.ListObjects(r.Context(), storage.OutputPrefix(serviceID))
	if err != nil {
		logger.Error("list-objects-failed", err)
		writeError(w, http.StatusInternalServerError, "could not list outputs")
		return
	}

	var best storage.Object
	found := false
	for _, obj := range objects {
		if path.Base(obj.Key) != resource {
			continue
		}
		if !found || obj.LastModified.After(best.LastModified) {
			best = obj
			found = true
		}
	}
	if !found {
		writeError(w, http.StatusNotFound, "requested resource not exists")
		return
	}

	url, err := s.store.PresignedGetURL(r.Context(), best.Key)
	if err != nil {
		logger.Error("presign-failed", err, lager.Data{"key": best.Key})
		writeError(w, http.StatusInternalServerError, "could not presign output")
		return
	}

	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}
