package k8s

import (
	"fmt"
	"time"

	"k8s.io/apimachinery/pkg/api/resource"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// StorageType selects how the shared job volume is backed.
type StorageType string

const (
	// StorageEmptyDir backs the job volume with an ephemeral scratch volume.
	StorageEmptyDir StorageType = "empty_dir"
	// StoragePVC backs the job volume with a per-workflow persistent volume
	// claim created at commit time.
	StoragePVC StorageType = "persistent_volume_claim"
)

const (
	// DefaultJobStorageSize is the size requested for the job volume when the
	// configuration does not override it.
	DefaultJobStorageSize = "2Gi"

	// DefaultSweepInterval is how often the orphan sweeper scans the
	// namespace for cluster objects without a live workflow.
	DefaultSweepInterval = 5 * time.Minute

	// AppLabelKey marks every cluster object created by this service.
	AppLabelKey = "gx4ki.io/app"

	// WorkflowLabelKey carries the workflow id an object belongs to.
	WorkflowLabelKey = "gx4ki.io/workflow-id"

	// JobLabelKey carries the pod (job) uuid.
	JobLabelKey = "gx4ki.io/job-id"

	// SideCarPort is the fixed port the data side-car listens on for the
	// /store instruction.
	SideCarPort = 9999

	// WorkerContainerName is the name of the service workload container.
	WorkerContainerName = "worker"

	// SideCarContainerName is the name of the result-exporting side-car.
	SideCarContainerName = "data-side-car"

	// InitContainerName is the name of the input-fetching init container.
	InitContainerName = "data-input-init"

	// ConfigSecretName is the Secret holding the service's own configuration
	// file; the init container mounts it to reach the object store.
	ConfigSecretName = "workflow-api-config"
)

// Config holds the configuration for connecting to a Kubernetes cluster and
// running workflow pods in it.
type Config struct {
	// Namespace is the Kubernetes namespace in which to create workflow
	// objects.
	Namespace string

	// KubeconfigPath is the path to a kubeconfig file. If empty, in-cluster
	// configuration is attempted.
	KubeconfigPath string

	// ImagePullSecret is the name of a Kubernetes Secret to attach as the
	// imagePullSecret on every created pod. Must exist in the configured
	// namespace. Empty means none.
	ImagePullSecret string

	// SideCarImage is the container image run as the data side-car and, with
	// an init entry point, as the data-input-init container.
	SideCarImage string

	// JobStorageType selects the backing of the shared job volume.
	JobStorageType StorageType

	// JobStorageSize is the size of the job volume, as a cluster-accepted
	// quantity string. If empty, DefaultJobStorageSize is used.
	JobStorageSize string

	// AppName is the value of the AppLabelKey label on every created object.
	AppName string
}

// NewConfig creates a Config with the given namespace and kubeconfig path
// and defaults applied. If namespace is empty, it defaults to "default".
func NewConfig(namespace, kubeconfigPath string) Config {
	if namespace == "" {
		namespace = "default"
	}
	return Config{
		Namespace:      namespace,
		KubeconfigPath: kubeconfigPath,
		JobStorageType: StorageEmptyDir,
		JobStorageSize: DefaultJobStorageSize,
		AppName:        "middlelayer",
	}
}

// Validate rejects configurations the cluster adapter cannot serve.
func (cfg Config) Validate() error {
	switch cfg.JobStorageType {
	case StorageEmptyDir, StoragePVC:
	default:
		return &Error{
			Kind: KindInvalid,
			Op:   "validate config",
			Err:  fmt.Errorf("unknown job storage type %q", string(cfg.JobStorageType)),
		}
	}
	if cfg.SideCarImage == "" {
		return &Error{
			Kind: KindInvalid,
			Op:   "validate config",
			Err:  fmt.Errorf("missing side-car image"),
		}
	}
	if cfg.JobStorageSize != "" {
		if _, err := resource.ParseQuantity(cfg.JobStorageSize); err != nil {
			return &Error{
				Kind: KindInvalid,
				Op:   "validate config",
				Err:  fmt.Errorf("parsing job storage size %q: %w", cfg.JobStorageSize, err),
			}
		}
	}
	return nil
}

// Labels returns the label set for an object belonging to the given
// workflow. jobID may be empty for objects that precede the pod.
func (cfg Config) Labels(workflowID, jobID string) map[string]string {
	labels := map[string]string{
		AppLabelKey:      cfg.AppName,
		WorkflowLabelKey: workflowID,
	}
	if jobID != "" {
		labels[JobLabelKey] = jobID
	}
	return labels
}

// NewClientset creates a Kubernetes clientset from the Config. If
// KubeconfigPath is set, it builds the client from that file. Otherwise, it
// attempts in-cluster configuration.
func NewClientset(cfg Config) (kubernetes.Interface, error) {
	restConfig, err := RestConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("building k8s rest config: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("creating k8s clientset: %w", err)
	}

	return clientset, nil
}

// RestConfig returns the *rest.Config for the given Config. This is exported
// so callers can use it alongside the clientset for port-forwarding.
func RestConfig(cfg Config) (*rest.Config, error) {
	if cfg.KubeconfigPath != "" {
		return clientcmd.BuildConfigFromFlags("", cfg.KubeconfigPath)
	}
	return rest.InClusterConfig()
}
