package api

import (
	"context"
	"io"

	"github.com/gx4ki/middlelayer/wfapi"
	"github.com/gx4ki/middlelayer/wfapi/backend"
	"github.com/gx4ki/middlelayer/wfapi/catalog"
	"github.com/gx4ki/middlelayer/wfapi/storage"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

// WorkflowEngine is the subset of backend.Engine the HTTP layer drives.
//
//counterfeiter:generate . WorkflowEngine
type WorkflowEngine interface {
	Register(workflowID string)
	HandleInput(ctx context.Context, workflowID string, res wfapi.ServiceResource, getData func(context.Context) ([]byte, error)) error
	CommitWorkflow(ctx context.Context, workflowID string, serviceID string, spec wfapi.WorkflowResourceSpec, onFinished func()) error
	StoreResult(ctx context.Context, workflowID string, info wfapi.WorkflowStoreInfo) error
	Cleanup(ctx context.Context, workflowID string) error
	StopWorkflow(ctx context.Context, workflowID string) error
	Workflows() []string
	Status(workflowID string) (backend.WorkflowStatus, error)
	WorkerLog(ctx context.Context, workflowID string, tailLines *int64) (string, error)
	FollowWorkerLog(ctx context.Context, workflowID string) (io.ReadCloser, error)
}

// ObjectStore is the subset of storage.Store the HTTP layer reads and
// writes.
//
//counterfeiter:generate . ObjectStore
type ObjectStore interface {
	Bucket() string
	Credentials() wfapi.StoreCredentials
	PutObject(ctx context.Context, key string, data io.Reader, size int64, contentType string) error
	GetObject(ctx context.Context, key string) ([]byte, error)
	ListObjects(ctx context.Context, prefix string) ([]storage.Object, error)
	PresignedGetURL(ctx context.Context, key string) (string, error)
}

// ServiceCatalog is the subset of catalog.Catalog the HTTP layer consults.
//
//counterfeiter:generate . ServiceCatalog
type ServiceCatalog interface {
	Get(serviceID string) (wfapi.ServiceDescription, bool)
	IDs() []string
	List() map[string]catalog.Validity
}
