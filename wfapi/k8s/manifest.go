package k8s

import (
	"path"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/gx4ki/middlelayer/wfapi"
)

const (
	// jobVolumeName is the shared scratch volume every workflow pod carries.
	// The init container fills it, the worker reads and writes it, the
	// side-car exports from it.
	jobVolumeName = "job-volume"

	// inputInitVolumeName projects the input instruction config map into the
	// init container.
	inputInitVolumeName = "input-init-config"

	// InitConfigKey is the single key under which the input instruction JSON
	// is stored in its config map.
	InitConfigKey = "input-init.json"

	// apiConfigKey is the key of the service configuration file within the
	// ConfigSecretName secret.
	apiConfigKey = "workflow-api.cfg"

	// Fixed paths inside the init container.
	initConfigPath  = "/opt/config/input-init.json"
	apiConfigPath   = "/opt/config/workflow-api.cfg"
	dataDestination = "/data/"

	// gpuResourceName is the extended resource requested for GPU workloads.
	gpuResourceName corev1.ResourceName = "nvidia.com/gpu"
)

// PodManifestParams carries everything accumulated for one workflow by the
// time its pod is committed.
type PodManifestParams struct {
	// JobID names the pod.
	JobID string

	// Spec is the service's workload declaration.
	Spec wfapi.WorkflowResourceSpec

	// ConfigMapRefs are env_from sources for the worker, in creation order.
	ConfigMapRefs []string

	// InputConfigRef names the config map carrying the input instruction
	// JSON. Empty means no init container.
	InputConfigRef string

	// InputResources are the non-environment inputs the init container
	// fetches; each contributes a worker mount.
	InputResources []wfapi.ServiceResource

	// VolumeClaimID binds the job volume to a PVC when set.
	VolumeClaimID string

	// Labels are applied to the pod metadata.
	Labels map[string]string
}

// BuildPodManifest synthesizes the workflow pod. The builder is pure: it
// performs no I/O and identical params yield an identical manifest.
func BuildPodManifest(params PodManifestParams, cfg Config) *corev1.Pod {
	volumes := []corev1.Volume{buildJobVolume(params.VolumeClaimID, cfg)}

	containers := []corev1.Container{buildWorkerContainer(params)}
	if params.Spec.WorkerImageOutputDirectory != "" {
		containers = append(containers, buildSideCarContainer(cfg))
	}

	var initContainers []corev1.Container
	if params.InputConfigRef != "" {
		volumes = append(volumes, buildInitConfigVolumes(params.InputConfigRef)...)
		initContainers = append(initContainers, buildInputInitContainer(cfg))
	}

	var pullSecrets []corev1.LocalObjectReference
	if cfg.ImagePullSecret != "" {
		pullSecrets = append(pullSecrets, corev1.LocalObjectReference{Name: cfg.ImagePullSecret})
	}

	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{
			Name:      params.JobID,
			Namespace: cfg.Namespace,
			Labels:    params.Labels,
		},
		Spec: corev1.PodSpec{
			RestartPolicy:    corev1.RestartPolicyNever,
			ImagePullSecrets: pullSecrets,
			InitContainers:   initContainers,
			Volumes:          volumes,
			Containers:       containers,
		},
	}
}

// buildJobVolume binds the job volume to the workflow's PVC when one exists,
// else to an ephemeral scratch volume capped at the configured size.
func buildJobVolume(volumeClaimID string, cfg Config) corev1.Volume {
	if volumeClaimID != "" {
		return corev1.Volume{
			Name: jobVolumeName,
			VolumeSource: corev1.VolumeSource{
				PersistentVolumeClaim: &corev1.PersistentVolumeClaimVolumeSource{
					ClaimName: volumeClaimID,
				},
			},
		}
	}

	size := cfg.JobStorageSize
	if size == "" {
		size = DefaultJobStorageSize
	}
	sizeLimit := resource.MustParse(size)
	return corev1.Volume{
		Name: jobVolumeName,
		VolumeSource: corev1.VolumeSource{
			EmptyDir: &corev1.EmptyDirVolumeSource{
				SizeLimit: &sizeLimit,
			},
		},
	}
}

func buildWorkerContainer(params PodManifestParams) corev1.Container {
	var envFrom []corev1.EnvFromSource
	for _, ref := range params.ConfigMapRefs {
		envFrom = append(envFrom, corev1.EnvFromSource{
			ConfigMapRef: &corev1.ConfigMapEnvSource{
				LocalObjectReference: corev1.LocalObjectReference{Name: ref},
			},
		})
	}

	var mounts []corev1.VolumeMount
	for _, res := range params.InputResources {
		switch res.Type {
		case wfapi.KindData:
			// The init container drops the file at <resource_name> on the
			// job volume; project just that entry into the mount path.
			mounts = append(mounts, corev1.VolumeMount{
				Name:      jobVolumeName,
				MountPath: path.Join(res.MountPath, res.ResourceName),
				SubPath:   res.ResourceName,
			})
		case wfapi.KindDataArchive:
			mounts = append(mounts, corev1.VolumeMount{
				Name:      jobVolumeName,
				MountPath: res.MountPath,
			})
		}
	}
	if params.Spec.WorkerImageOutputDirectory != "" {
		mounts = append(mounts, corev1.VolumeMount{
			Name:      jobVolumeName,
			MountPath: params.Spec.WorkerImageOutputDirectory,
		})
	}

	var resources corev1.ResourceRequirements
	if params.Spec.GPU {
		resources.Limits = corev1.ResourceList{
			gpuResourceName: resource.MustParse("1"),
		}
	}

	return corev1.Container{
		Name:            WorkerContainerName,
		Image:           params.Spec.WorkerImage,
		Command:         params.Spec.WorkerImageCommand,
		Args:            params.Spec.WorkerImageArgs,
		EnvFrom:         envFrom,
		VolumeMounts:    mounts,
		Resources:       resources,
		ImagePullPolicy: corev1.PullAlways,
	}
}

func buildSideCarContainer(cfg Config) corev1.Container {
	return corev1.Container{
		Name:            SideCarContainerName,
		Image:           cfg.SideCarImage,
		ImagePullPolicy: corev1.PullAlways,
		VolumeMounts: []corev1.VolumeMount{
			{Name: jobVolumeName, MountPath: wfapi.DefaultResultDirectory},
		},
	}
}

// buildInputInitContainer runs the side-car image with its init entry point.
// It reads the input instruction and the service configuration from the
// projected volumes and fetches every listed resource onto the job volume.
func buildInputInitContainer(cfg Config) corev1.Container {
	return corev1.Container{
		Name:            InitContainerName,
		Image:           cfg.SideCarImage,
		ImagePullPolicy: corev1.PullAlways,
		Args:            []string{"init"},
		Env: []corev1.EnvVar{
			{Name: "INPUT_INIT_CONFIG", Value: initConfigPath},
			{Name: "DATA_DESTINATION", Value: dataDestination},
			{Name: "CONFIG_FILE_PATH", Value: apiConfigPath},
		},
		VolumeMounts: []corev1.VolumeMount{
			{Name: inputInitVolumeName, MountPath: initConfigPath, SubPath: InitConfigKey},
			{Name: ConfigSecretName, MountPath: apiConfigPath, SubPath: apiConfigKey},
			{Name: jobVolumeName, MountPath: dataDestination},
		},
	}
}

func buildInitConfigVolumes(inputConfigRef string) []corev1.Volume {
	return []corev1.Volume{
		{
			Name: inputInitVolumeName,
			VolumeSource: corev1.VolumeSource{
				ConfigMap: &corev1.ConfigMapVolumeSource{
					LocalObjectReference: corev1.LocalObjectReference{Name: inputConfigRef},
					Items: []corev1.KeyToPath{
						{Key: InitConfigKey, Path: InitConfigKey},
					},
				},
			},
		},
		{
			Name: ConfigSecretName,
			VolumeSource: corev1.VolumeSource{
				Secret: &corev1.SecretVolumeSource{
					SecretName: ConfigSecretName,
				},
			},
		},
	}
}
