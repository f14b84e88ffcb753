package wfapi

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ResourceKind classifies a declared service resource. Environment resources
// become config maps consumed via env_from; data resources are fetched by the
// input-init container onto the shared job volume; data_archive resources are
// fetched and unpacked at their mount path.
type ResourceKind string

const (
	KindEnvironment ResourceKind = "environment"
	KindData        ResourceKind = "data"
	KindDataArchive ResourceKind = "data_archive"
)

// legacyResourceKinds maps the numeric encoding used by older service
// description files onto the string spelling.
var legacyResourceKinds = map[int]ResourceKind{
	1: KindEnvironment,
	2: KindData,
	3: KindDataArchive,
}

// Valid reports whether the kind is one of the known spellings.
func (k ResourceKind) Valid() bool {
	switch k {
	case KindEnvironment, KindData, KindDataArchive:
		return true
	}
	return false
}

func (k *ResourceKind) UnmarshalJSON(data []byte) error {
	// Try string first
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		kind := ResourceKind(str)
		if !kind.Valid() {
			return fmt.Errorf("unknown resource kind %q", str)
		}
		*k = kind
		return nil
	}

	// Fall back to the legacy numeric encoding
	var num int
	if err := json.Unmarshal(data, &num); err == nil {
		kind, ok := legacyResourceKinds[num]
		if !ok {
			return fmt.Errorf("unknown resource kind %d", num)
		}
		*k = kind
		return nil
	}

	return fmt.Errorf("resource kind must be a string or a legacy numeric code")
}

// ServiceResource is one declared input or output of a service.
type ServiceResource struct {
	ResourceName string       `json:"resource_name"`
	Type         ResourceKind `json:"type"`
	Description  string       `json:"description,omitempty"`

	// MountPath is where data and data_archive resources appear inside the
	// worker container. Unused for environment resources.
	MountPath string `json:"mount_path,omitempty"`

	// SourceRef optionally overrides the object-store key the resource is
	// fetched from.
	SourceRef string `json:"source_ref,omitempty"`
}

// Validate checks that the resource has all required fields.
func (r ServiceResource) Validate() error {
	var errs []string
	if r.ResourceName == "" {
		errs = append(errs, "missing 'resource_name'")
	}
	if !r.Type.Valid() {
		errs = append(errs, fmt.Sprintf("unknown kind %q", string(r.Type)))
	}
	if (r.Type == KindData || r.Type == KindDataArchive) && r.MountPath == "" {
		errs = append(errs, "missing 'mount_path'")
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid resource %q: %s", r.ResourceName, strings.Join(errs, ", "))
	}
	return nil
}

// WorkflowResourceSpec describes the worker workload a service runs.
type WorkflowResourceSpec struct {
	WorkerImage string `json:"worker_image"`

	// WorkerImageOutputDirectory, when set, is where the worker writes its
	// results. Setting it attaches the data side-car to the pod.
	WorkerImageOutputDirectory string `json:"worker_image_output_directory,omitempty"`

	WorkerImageCommand []string `json:"worker_image_command,omitempty"`
	WorkerImageArgs    []string `json:"worker_image_args,omitempty"`

	// GPU requests a single GPU resource limit for the worker.
	GPU bool `json:"gpu"`
}

// ServiceDescription is the read-only declaration of a service, loaded at
// startup from the asset directory.
type ServiceDescription struct {
	ServiceID        string               `json:"service_id"`
	Inputs           []ServiceResource    `json:"inputs"`
	Outputs          []ServiceResource    `json:"outputs"`
	WorkflowResource WorkflowResourceSpec `json:"workflow_resource"`
}

// Validate checks the description and every declared resource.
func (sd ServiceDescription) Validate() error {
	if sd.ServiceID == "" {
		return fmt.Errorf("invalid service description: missing 'service_id'")
	}
	if sd.WorkflowResource.WorkerImage == "" {
		return fmt.Errorf("invalid service description %q: missing 'worker_image'", sd.ServiceID)
	}

	seen := make(map[string]bool, len(sd.Inputs))
	for _, in := range sd.Inputs {
		if err := in.Validate(); err != nil {
			return fmt.Errorf("service %q: %w", sd.ServiceID, err)
		}
		if seen[in.ResourceName] {
			return fmt.Errorf("service %q: duplicate input %q", sd.ServiceID, in.ResourceName)
		}
		seen[in.ResourceName] = true
	}
	for _, out := range sd.Outputs {
		if out.ResourceName == "" {
			return fmt.Errorf("service %q: invalid output: missing 'resource_name'", sd.ServiceID)
		}
	}
	return nil
}

// Input returns the declared input with the given name.
func (sd ServiceDescription) Input(name string) (ServiceResource, bool) {
	for _, r := range sd.Inputs {
		if r.ResourceName == name {
			return r, true
		}
	}
	return ServiceResource{}, false
}

// Output returns the declared output with the given name.
func (sd ServiceDescription) Output(name string) (ServiceResource, bool) {
	for _, r := range sd.Outputs {
		if r.ResourceName == name {
			return r, true
		}
	}
	return ServiceResource{}, false
}

// OutputNames returns the declared output names in declaration order.
func (sd ServiceDescription) OutputNames() []string {
	names := make([]string, len(sd.Outputs))
	for i, r := range sd.Outputs {
		names[i] = r.ResourceName
	}
	return names
}

// StoreCredentials locates the object store for the side-car.
type StoreCredentials struct {
	Endpoint  string `json:"endpoint"`
	AccessKey string `json:"access_key"`
	SecretKey string `json:"secret_key"`
	Secure    bool   `json:"secure"`
}

// DefaultResultDirectory is where the side-car collects result files from;
// the job volume is mounted there in the side-car container.
const DefaultResultDirectory = "/output"

// WorkflowStoreInfo is the instruction POSTed to the data side-car's /store
// endpoint when a workflow's worker has terminated.
type WorkflowStoreInfo struct {
	Minio             StoreCredentials `json:"minio"`
	DestinationBucket string           `json:"destination_bucket"`
	DestinationPath   string           `json:"destination_path"`
	ResultDirectory   string           `json:"result_directory"`
	ResultFiles       []string         `json:"result_files"`
}
