package k8s

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"code.cloudfoundry.org/lager/v3"
	"code.cloudfoundry.org/lager/v3/lagerctx"
	"github.com/hashicorp/go-retryablehttp"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/util/intstr"
	"k8s.io/client-go/tools/portforward"
	"k8s.io/client-go/transport/spdy"

	"github.com/gx4ki/middlelayer/tracing"
)

const (
	// sentinelMarker is the last hostname label that routes a request
	// through the cluster's port-forward API instead of the OS resolver.
	// Hosts look like <name>.pod.<namespace>.kubernetes or
	// <name>.svc.<namespace>.kubernetes.
	sentinelMarker = "kubernetes"

	// storeRetryAttempts and storeRetryDelay shape the side-car POST retry
	// policy: constant delay, transport errors only.
	storeRetryAttempts = 5
	storeRetryDelay    = time.Second
)

// SideCarHost returns the sentinel hostname addressing a pod. It resolves
// only through a transport built by this adapter.
func SideCarHost(podName, namespace string) string {
	return fmt.Sprintf("%s.pod.%s.%s", podName, namespace, sentinelMarker)
}

// ServiceHost returns the sentinel hostname addressing a service.
func ServiceHost(serviceName, namespace string) string {
	return fmt.Sprintf("%s.svc.%s.%s", serviceName, namespace, sentinelMarker)
}

type sentinelTarget struct {
	name      string
	kind      string // "pod" or "svc"
	namespace string
}

// parseSentinelHost recognizes sentinel hostnames. Anything else is left to
// normal resolution.
func parseSentinelHost(host string) (sentinelTarget, bool) {
	parts := strings.Split(host, ".")
	if len(parts) != 4 || parts[3] != sentinelMarker {
		return sentinelTarget{}, false
	}
	if parts[1] != "pod" && parts[1] != "svc" {
		return sentinelTarget{}, false
	}
	if parts[0] == "" || parts[2] == "" {
		return sentinelTarget{}, false
	}
	return sentinelTarget{name: parts[0], kind: parts[1], namespace: parts[2]}, true
}

// SentinelTransport returns an http.RoundTripper whose dial intercepts
// sentinel hostnames and tunnels them through the cluster's port-forward
// API. All other hosts dial normally. Each intercepted connection owns one
// forwarding session, torn down when the connection closes.
func (a ClusterAdapter) SentinelTransport() *http.Transport {
	dialer := &net.Dialer{Timeout: 30 * time.Second}
	return &http.Transport{
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			host, port, err := net.SplitHostPort(addr)
			if err != nil {
				return nil, err
			}
			target, ok := parseSentinelHost(host)
			if !ok {
				return dialer.DialContext(ctx, network, addr)
			}
			return a.dialSentinel(ctx, target, port)
		},
		// Forwarded conns are single-use tunnels; pooling them would pin
		// port-forward sessions to dead pods.
		DisableKeepAlives: true,
	}
}

// dialSentinel resolves the target to a concrete pod and port, opens a
// port-forward session against it, and returns a connection through the
// session's local end.
func (a ClusterAdapter) dialSentinel(ctx context.Context, target sentinelTarget, port string) (net.Conn, error) {
	if a.restConfig == nil {
		return nil, fmt.Errorf("port-forwarding requires a rest config")
	}

	podName := target.name
	remotePort := port
	if target.kind == "svc" {
		var err error
		podName, remotePort, err = a.resolveService(ctx, target.namespace, target.name, port)
		if err != nil {
			return nil, err
		}
	}

	req := a.clientset.CoreV1().RESTClient().Post().
		Resource("pods").
		Namespace(target.namespace).
		Name(podName).
		SubResource("portforward")

	transport, upgrader, err := spdy.RoundTripperFor(a.restConfig)
	if err != nil {
		return nil, fmt.Errorf("building spdy round tripper: %w", err)
	}
	dialer := spdy.NewDialer(upgrader, &http.Client{Transport: transport}, http.MethodPost, req.URL())

	stopCh := make(chan struct{})
	readyCh := make(chan struct{})
	pf, err := portforward.New(dialer, []string{fmt.Sprintf("0:%s", remotePort)}, stopCh, readyCh, io.Discard, io.Discard)
	if err != nil {
		return nil, fmt.Errorf("creating port forwarder: %w", err)
	}

	forwardErr := make(chan error, 1)
	go func() { forwardErr <- pf.ForwardPorts() }()

	select {
	case <-ctx.Done():
		close(stopCh)
		return nil, ctx.Err()
	case err := <-forwardErr:
		return nil, fmt.Errorf("forwarding to pod %q: %w", podName, err)
	case <-readyCh:
	}

	ports, err := pf.GetPorts()
	if err != nil || len(ports) == 0 {
		close(stopCh)
		return nil, fmt.Errorf("resolving local forward port: %w", err)
	}

	conn, err := net.Dial("tcp", fmt.Sprintf("127.0.0.1:%d", ports[0].Local))
	if err != nil {
		close(stopCh)
		return nil, fmt.Errorf("dialing forwarded port: %w", err)
	}

	return &forwardedConn{Conn: conn, stop: func() { close(stopCh) }}, nil
}

// forwardedConn ties the lifetime of a port-forward session to the
// connection handed to the HTTP transport.
type forwardedConn struct {
	net.Conn
	stop     func()
	stopOnce sync.Once
}

func (c *forwardedConn) Close() error {
	err := c.Conn.Close()
	c.stopOnce.Do(c.stop)
	return err
}

// resolveService maps a service sentinel onto a concrete pod and port: read
// the service, match the requested port, list pods by the service's
// selector, pick the first, and resolve named target ports through the
// pod's container port declarations.
func (a ClusterAdapter) resolveService(ctx context.Context, namespace, serviceName, port string) (string, string, error) {
	svc, err := a.clientset.CoreV1().Services(namespace).Get(ctx, serviceName, metav1.GetOptions{})
	if err != nil {
		return "", "", classify("resolve service", serviceName, err)
	}

	portNum, err := strconv.Atoi(port)
	if err != nil {
		return "", "", fmt.Errorf("parsing service port %q: %w", port, err)
	}

	portIdx := -1
	for i := range svc.Spec.Ports {
		if int(svc.Spec.Ports[i].Port) == portNum {
			portIdx = i
			break
		}
	}
	if portIdx == -1 {
		return "", "", fmt.Errorf("service %q does not expose port %s", serviceName, port)
	}

	if len(svc.Spec.Selector) == 0 {
		return "", "", fmt.Errorf("service %q has no selector", serviceName)
	}
	selector := labels.Set(svc.Spec.Selector).String()
	pods, err := a.clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{LabelSelector: selector})
	if err != nil {
		return "", "", classify("list service pods", serviceName, err)
	}
	if len(pods.Items) == 0 {
		return "", "", fmt.Errorf("service %q selects no pods", serviceName)
	}
	pod := pods.Items[0]

	targetPort := svc.Spec.Ports[portIdx].TargetPort
	switch targetPort.Type {
	case intstr.String:
		for _, container := range pod.Spec.Containers {
			for _, p := range container.Ports {
				if p.Name == targetPort.StrVal {
					return pod.Name, strconv.Itoa(int(p.ContainerPort)), nil
				}
			}
		}
		return "", "", fmt.Errorf("named port %q not found on pod %q", targetPort.StrVal, pod.Name)
	default:
		if targetPort.IntValue() != 0 {
			return pod.Name, strconv.Itoa(targetPort.IntValue()), nil
		}
		return pod.Name, port, nil
	}
}

// PortForwardPost tunnels an HTTP POST to the given pod port and returns
// the response status. Up to storeRetryAttempts attempts with a constant
// delay; only transport failures are retried. Any HTTP response, success
// or not, ends the loop and its status is surfaced to the caller.
func (a ClusterAdapter) PortForwardPost(ctx context.Context, podName string, port int, urlPath string, body []byte) (int, error) {
	logger := lagerctx.FromContext(ctx).Session("port-forward-post", lager.Data{
		"pod":  podName,
		"port": port,
	})

	ctx, span := tracing.StartSpan(ctx, "k8s.port-forward-post", tracing.Attrs{
		"pod":       podName,
		"namespace": a.cfg.Namespace,
	})
	var spanErr error
	defer func() { tracing.End(span, spanErr) }()

	client := retryablehttp.NewClient()
	client.HTTPClient = &http.Client{Transport: a.SentinelTransport()}
	client.RetryMax = storeRetryAttempts - 1
	client.RetryWaitMin = storeRetryDelay
	client.RetryWaitMax = storeRetryDelay
	client.Logger = nil
	client.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return err != nil, nil
	}

	url := fmt.Sprintf("http://%s:%d%s", SideCarHost(podName, a.cfg.Namespace), port, urlPath)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return 0, fmt.Errorf("building side-car request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		logger.Error("failed-to-reach-side-car", err)
		spanErr = err
		return 0, &Error{Kind: KindTransportError, Op: "port-forward post", Name: podName, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	logger.Debug("side-car-responded", lager.Data{"status": resp.StatusCode})
	return resp.StatusCode, nil
}
