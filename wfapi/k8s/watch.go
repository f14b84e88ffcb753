package k8s

import (
	"context"
	"fmt"
	"sync"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/watch"
	"k8s.io/client-go/kubernetes"
)

// maxConsecutiveAPIErrors is the number of consecutive K8s API errors
// tolerated before a stream gives up on watch re-establishment.
const maxConsecutiveAPIErrors = 3

// WatchPod starts a Kubernetes Watch on a specific pod identified by name
// within the given namespace. The watch uses a field selector
// (metadata.name=<podName>) to receive events only for that pod. If
// resourceVersion is non-empty, the watch resumes from that version to avoid
// missing events after a reconnection.
func WatchPod(ctx context.Context, clientset kubernetes.Interface, namespace, podName, resourceVersion string) (watch.Interface, error) {
	opts := metav1.ListOptions{
		FieldSelector:   fmt.Sprintf("metadata.name=%s", podName),
		ResourceVersion: resourceVersion,
	}
	return clientset.CoreV1().Pods(namespace).Watch(ctx, opts)
}

// PodEventStream is an iterator over the state of a single pod. Each call to
// Next blocks until a new observation is available and returns it as a
// PodStateSnapshot. The stream reconnects automatically when the underlying
// watch channel closes, resuming from the last observed resourceVersion, and
// falls back to a single Get() when watch re-establishment fails
// consecutively.
type PodEventStream struct {
	mu                  sync.Mutex
	clientset           kubernetes.Interface
	namespace           string
	podName             string
	lastResourceVersion string
	watcher             watch.Interface
	stopped             bool
	synced              bool
}

// NewPodEventStream creates a stream for the given pod. The watch is lazily
// established on the first call to Next().
func NewPodEventStream(clientset kubernetes.Interface, namespace, podName string) *PodEventStream {
	return &PodEventStream{
		clientset: clientset,
		namespace: namespace,
		podName:   podName,
	}
}

// Stop closes the underlying watch. A blocked Next() observes the closed
// channel and, because the stream is marked stopped, returns ErrStreamClosed
// instead of reconnecting. Stop is safe to call from another goroutine and
// more than once.
func (s *PodEventStream) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	if s.watcher != nil {
		s.watcher.Stop()
		s.watcher = nil
	}
}

// ErrStreamClosed is returned by Next after Stop has been called.
var ErrStreamClosed = fmt.Errorf("pod event stream closed")

// Next blocks until the next pod observation and returns its snapshot.
//
// On the first call, Next() does a Get() to sync current state and returns
// it immediately. This ensures state changes that occurred before the watch
// was established are not missed (the pod may already have completed).
func (s *PodEventStream) Next(ctx context.Context) (PodStateSnapshot, error) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return PodStateSnapshot{}, ErrStreamClosed
	}
	needsInitialSync := !s.synced
	s.mu.Unlock()

	if needsInitialSync {
		return s.initialSync(ctx)
	}

	consecutiveWatchErrors := 0

	for {
		// Check context before any operation.
		select {
		case <-ctx.Done():
			return PodStateSnapshot{}, ctx.Err()
		default:
		}

		// Establish watch if needed.
		s.mu.Lock()
		if s.stopped {
			s.mu.Unlock()
			return PodStateSnapshot{}, ErrStreamClosed
		}
		if s.watcher == nil {
			w, err := WatchPod(ctx, s.clientset, s.namespace, s.podName, s.lastResourceVersion)
			if err != nil {
				s.mu.Unlock()
				consecutiveWatchErrors++
				if consecutiveWatchErrors >= maxConsecutiveAPIErrors {
					// Fall back to a single Get().
					return s.getSnapshot(ctx)
				}
				continue
			}
			s.watcher = w
			consecutiveWatchErrors = 0
		}
		ch := s.watcher.ResultChan()
		s.mu.Unlock()

		// Read from the watch channel.
		select {
		case <-ctx.Done():
			return PodStateSnapshot{}, ctx.Err()

		case event, ok := <-ch:
			if !ok {
				// Channel closed. Either Stop() was called or the watch
				// disconnected; reconnect only in the latter case.
				s.mu.Lock()
				if s.stopped {
					s.mu.Unlock()
					return PodStateSnapshot{}, ErrStreamClosed
				}
				s.watcher = nil
				s.mu.Unlock()
				continue
			}

			pod, isPod := event.Object.(*corev1.Pod)
			if !isPod {
				// Skip non-pod events (e.g., Status objects on error).
				continue
			}

			// Track resourceVersion for reconnection.
			s.mu.Lock()
			s.lastResourceVersion = pod.ResourceVersion
			s.mu.Unlock()
			return snapshotFromPod(event.Type, pod), nil
		}
	}
}

// initialSync retrieves the pod's current state with a plain Get() and seeds
// the resourceVersion the watch resumes from.
func (s *PodEventStream) initialSync(ctx context.Context) (PodStateSnapshot, error) {
	consecutiveErrors := 0
	for {
		select {
		case <-ctx.Done():
			return PodStateSnapshot{}, ctx.Err()
		default:
		}

		pod, err := s.clientset.CoreV1().Pods(s.namespace).Get(ctx, s.podName, metav1.GetOptions{})
		if err != nil {
			// Only transient failures are worth another attempt; a missing
			// pod will not appear by retrying.
			if !isTransientAPIError(err) {
				return PodStateSnapshot{}, classify("initial pod sync", s.podName, err)
			}
			consecutiveErrors++
			if consecutiveErrors >= maxConsecutiveAPIErrors {
				return PodStateSnapshot{}, classify("initial pod sync", s.podName,
					fmt.Errorf("%d consecutive API errors: %w", consecutiveErrors, err))
			}
			continue
		}

		s.mu.Lock()
		s.synced = true
		s.lastResourceVersion = pod.ResourceVersion
		s.mu.Unlock()
		return snapshotFromPod(watch.Added, pod), nil
	}
}

// getSnapshot does a single Get() call to retrieve the current pod state.
// This is the fallback when watch re-establishment fails.
func (s *PodEventStream) getSnapshot(ctx context.Context) (PodStateSnapshot, error) {
	pod, err := s.clientset.CoreV1().Pods(s.namespace).Get(ctx, s.podName, metav1.GetOptions{})
	if err != nil {
		return PodStateSnapshot{}, classify("fallback pod get", s.podName, err)
	}
	s.mu.Lock()
	s.lastResourceVersion = pod.ResourceVersion
	// Reset watcher so the next call to Next() tries to re-establish.
	s.watcher = nil
	s.mu.Unlock()
	return snapshotFromPod(watch.Modified, pod), nil
}
