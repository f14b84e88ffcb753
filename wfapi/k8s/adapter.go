package k8s

import (
	"context"
	"errors"
	"fmt"
	"io"

	"code.cloudfoundry.org/lager/v3/lagerctx"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"

	"github.com/gx4ki/middlelayer/tracing"
)

// ClusterAdapter executes all cluster-side operations for workflow pods. It
// is a plain value; construct one with New and share it freely, there is no
// package-level state.
type ClusterAdapter struct {
	clientset  kubernetes.Interface
	restConfig *rest.Config
	cfg        Config
}

// New creates a ClusterAdapter from an established clientset. restConfig may
// be nil when port-forwarding is not needed (tests).
func New(clientset kubernetes.Interface, restConfig *rest.Config, cfg Config) ClusterAdapter {
	return ClusterAdapter{
		clientset:  clientset,
		restConfig: restConfig,
		cfg:        cfg,
	}
}

// Config returns the adapter's cluster configuration.
func (a ClusterAdapter) Config() Config {
	return a.cfg
}

// Namespace returns the namespace all operations run in.
func (a ClusterAdapter) Namespace() string {
	return a.cfg.Namespace
}

// CreateConfigMap creates a config map carrying the given data. An existing
// object with the same name surfaces as AlreadyExists.
func (a ClusterAdapter) CreateConfigMap(ctx context.Context, name string, data map[string]string, labels map[string]string) error {
	logger := lagerctx.FromContext(ctx).Session("create-config-map")

	cm := &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: a.cfg.Namespace,
			Labels:    labels,
		},
		Data: data,
	}

	_, err := a.clientset.CoreV1().ConfigMaps(a.cfg.Namespace).Create(ctx, cm, metav1.CreateOptions{})
	if err != nil {
		logger.Error("failed-to-create-config-map", err)
		return classify("create config map", name, err)
	}
	return nil
}

// DeleteConfigMap deletes a config map, tolerating NotFound.
func (a ClusterAdapter) DeleteConfigMap(ctx context.Context, name string) error {
	logger := lagerctx.FromContext(ctx).Session("delete-config-map")

	err := a.clientset.CoreV1().ConfigMaps(a.cfg.Namespace).Delete(ctx, name, metav1.DeleteOptions{})
	if err != nil {
		classified := classify("delete config map", name, err)
		if errors.Is(classified, ErrNotFound) {
			logger.Debug("config-map-already-gone")
			return nil
		}
		logger.Error("failed-to-delete-config-map", err)
		return classified
	}
	return nil
}

// CreatePod submits a pod manifest to the cluster.
func (a ClusterAdapter) CreatePod(ctx context.Context, pod *corev1.Pod) error {
	logger := lagerctx.FromContext(ctx).Session("create-pod")

	ctx, span := tracing.StartSpan(ctx, "k8s.create-pod", tracing.Attrs{
		"pod":       pod.Name,
		"namespace": a.cfg.Namespace,
	})
	var spanErr error
	defer func() { tracing.End(span, spanErr) }()

	_, err := a.clientset.CoreV1().Pods(a.cfg.Namespace).Create(ctx, pod, metav1.CreateOptions{})
	if err != nil {
		logger.Error("failed-to-create-pod", err)
		spanErr = err
		return classify("create pod", pod.Name, err)
	}
	return nil
}

// DeletePod deletes a pod, tolerating NotFound.
func (a ClusterAdapter) DeletePod(ctx context.Context, name string) error {
	logger := lagerctx.FromContext(ctx).Session("delete-pod")

	ctx, span := tracing.StartSpan(ctx, "k8s.delete-pod", tracing.Attrs{
		"pod":       name,
		"namespace": a.cfg.Namespace,
	})
	var spanErr error
	defer func() { tracing.End(span, spanErr) }()

	err := a.clientset.CoreV1().Pods(a.cfg.Namespace).Delete(ctx, name, metav1.DeleteOptions{})
	if err != nil {
		classified := classify("delete pod", name, err)
		if errors.Is(classified, ErrNotFound) {
			logger.Debug("pod-already-gone")
			return nil
		}
		logger.Error("failed-to-delete-pod", err)
		spanErr = err
		return classified
	}
	return nil
}

// CreateVolumeClaim creates a ReadWriteOnce persistent volume claim of the
// given size.
func (a ClusterAdapter) CreateVolumeClaim(ctx context.Context, name, size string, labels map[string]string) error {
	logger := lagerctx.FromContext(ctx).Session("create-volume-claim")

	quantity, err := resource.ParseQuantity(size)
	if err != nil {
		return &Error{
			Kind: KindInvalid,
			Op:   "create volume claim",
			Name: name,
			Err:  fmt.Errorf("parsing size %q: %w", size, err),
		}
	}

	pvc := &corev1.PersistentVolumeClaim{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: a.cfg.Namespace,
			Labels:    labels,
		},
		Spec: corev1.PersistentVolumeClaimSpec{
			AccessModes: []corev1.PersistentVolumeAccessMode{corev1.ReadWriteOnce},
			Resources: corev1.VolumeResourceRequirements{
				Requests: corev1.ResourceList{
					corev1.ResourceStorage: quantity,
				},
			},
		},
	}

	_, err = a.clientset.CoreV1().PersistentVolumeClaims(a.cfg.Namespace).Create(ctx, pvc, metav1.CreateOptions{})
	if err != nil {
		logger.Error("failed-to-create-volume-claim", err)
		return classify("create volume claim", name, err)
	}
	return nil
}

// DeleteVolumeClaim deletes a persistent volume claim, tolerating NotFound.
func (a ClusterAdapter) DeleteVolumeClaim(ctx context.Context, name string) error {
	logger := lagerctx.FromContext(ctx).Session("delete-volume-claim")

	err := a.clientset.CoreV1().PersistentVolumeClaims(a.cfg.Namespace).Delete(ctx, name, metav1.DeleteOptions{})
	if err != nil {
		classified := classify("delete volume claim", name, err)
		if errors.Is(classified, ErrNotFound) {
			logger.Debug("volume-claim-already-gone")
			return nil
		}
		logger.Error("failed-to-delete-volume-claim", err)
		return classified
	}
	return nil
}

// PodLog returns the named container's log. tailLines nil means the full
// log.
func (a ClusterAdapter) PodLog(ctx context.Context, podName, container string, tailLines *int64) (string, error) {
	req := a.clientset.CoreV1().Pods(a.cfg.Namespace).GetLogs(podName, &corev1.PodLogOptions{
		Container: container,
		TailLines: tailLines,
	})

	stream, err := req.Stream(ctx)
	if err != nil {
		return "", classify("get pod log", podName, err)
	}
	defer stream.Close()

	log, err := io.ReadAll(stream)
	if err != nil {
		return "", classify("read pod log", podName, err)
	}
	return string(log), nil
}

// FollowPodLog opens a follow-mode log stream for the named container. The
// caller owns the returned stream and must close it.
func (a ClusterAdapter) FollowPodLog(ctx context.Context, podName, container string) (io.ReadCloser, error) {
	req := a.clientset.CoreV1().Pods(a.cfg.Namespace).GetLogs(podName, &corev1.PodLogOptions{
		Container: container,
		Follow:    true,
	})

	stream, err := req.Stream(ctx)
	if err != nil {
		return nil, classify("follow pod log", podName, err)
	}
	return stream, nil
}

// Events returns a snapshot stream for the named pod. The stream is lazy;
// nothing touches the cluster until the first Next.
func (a ClusterAdapter) Events(podName string) *PodEventStream {
	return NewPodEventStream(a.clientset, a.cfg.Namespace, podName)
}

// ListPods returns the pods matching the label selector.
func (a ClusterAdapter) ListPods(ctx context.Context, labelSelector string) ([]corev1.Pod, error) {
	pods, err := a.clientset.CoreV1().Pods(a.cfg.Namespace).List(ctx, metav1.ListOptions{
		LabelSelector: labelSelector,
	})
	if err != nil {
		return nil, classify("list pods", labelSelector, err)
	}
	return pods.Items, nil
}

// ListConfigMaps returns the config maps matching the label selector.
func (a ClusterAdapter) ListConfigMaps(ctx context.Context, labelSelector string) ([]corev1.ConfigMap, error) {
	cms, err := a.clientset.CoreV1().ConfigMaps(a.cfg.Namespace).List(ctx, metav1.ListOptions{
		LabelSelector: labelSelector,
	})
	if err != nil {
		return nil, classify("list config maps", labelSelector, err)
	}
	return cms.Items, nil
}

// ListVolumeClaims returns the persistent volume claims matching the label
// selector.
func (a ClusterAdapter) ListVolumeClaims(ctx context.Context, labelSelector string) ([]corev1.PersistentVolumeClaim, error) {
	pvcs, err := a.clientset.CoreV1().PersistentVolumeClaims(a.cfg.Namespace).List(ctx, metav1.ListOptions{
		LabelSelector: labelSelector,
	})
	if err != nil {
		return nil, classify("list volume claims", labelSelector, err)
	}
	return pvcs.Items, nil
}
