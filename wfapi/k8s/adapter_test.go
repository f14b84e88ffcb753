package k8s_test

import (
	"context"
	"errors"

	"code.cloudfoundry.org/lager/v3/lagerctx"
	"code.cloudfoundry.org/lager/v3/lagertest"
	"github.com/gx4ki/middlelayer/wfapi/k8s"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	apiruntime "k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"
)

var _ = Describe("ClusterAdapter", func() {
	var (
		fakeClientset *fake.Clientset
		adapter       k8s.ClusterAdapter
		cfg           k8s.Config
		ctx           context.Context
	)

	BeforeEach(func() {
		fakeClientset = fake.NewSimpleClientset()
		cfg = k8s.NewConfig("jobs", "")
		cfg.SideCarImage = "registry.example.com/data-side-car:stable"
		adapter = k8s.New(fakeClientset, nil, cfg)

		logger := lagertest.NewTestLogger("adapter-test")
		ctx = lagerctx.NewContext(context.Background(), logger)
	})

	Describe("CreateConfigMap", func() {
		It("creates the config map with data and labels", func() {
			err := adapter.CreateConfigMap(ctx, "cm-1", map[string]string{"FOO": "bar"}, cfg.Labels("wf-1", ""))
			Expect(err).ToNot(HaveOccurred())

			cm, err := fakeClientset.CoreV1().ConfigMaps("jobs").Get(ctx, "cm-1", metav1.GetOptions{})
			Expect(err).ToNot(HaveOccurred())
			Expect(cm.Data).To(HaveKeyWithValue("FOO", "bar"))
			Expect(cm.Labels).To(HaveKeyWithValue(k8s.WorkflowLabelKey, "wf-1"))
		})

		It("surfaces AlreadyExists for duplicate names", func() {
			err := adapter.CreateConfigMap(ctx, "cm-1", nil, nil)
			Expect(err).ToNot(HaveOccurred())

			err = adapter.CreateConfigMap(ctx, "cm-1", nil, nil)
			Expect(err).To(MatchError(k8s.ErrAlreadyExists))
		})
	})

	Describe("DeleteConfigMap", func() {
		It("deletes an existing config map", func() {
			Expect(adapter.CreateConfigMap(ctx, "cm-1", nil, nil)).To(Succeed())
			Expect(adapter.DeleteConfigMap(ctx, "cm-1")).To(Succeed())

			_, err := fakeClientset.CoreV1().ConfigMaps("jobs").Get(ctx, "cm-1", metav1.GetOptions{})
			Expect(err).To(HaveOccurred())
		})

		It("tolerates a missing config map", func() {
			Expect(adapter.DeleteConfigMap(ctx, "never-created")).To(Succeed())
		})
	})

	Describe("CreatePod", func() {
		It("submits the manifest to the configured namespace", func() {
			pod := &corev1.Pod{
				ObjectMeta: metav1.ObjectMeta{Name: "job-1"},
				Spec: corev1.PodSpec{
					Containers: []corev1.Container{{Name: "worker", Image: "busybox"}},
				},
			}
			Expect(adapter.CreatePod(ctx, pod)).To(Succeed())

			created, err := fakeClientset.CoreV1().Pods("jobs").Get(ctx, "job-1", metav1.GetOptions{})
			Expect(err).ToNot(HaveOccurred())
			Expect(created.Spec.Containers[0].Image).To(Equal("busybox"))
		})

		It("classifies creation failures", func() {
			fakeClientset.PrependReactor("create", "pods", func(action k8stesting.Action) (bool, apiruntime.Object, error) {
				return true, nil, errors.New("connection refused")
			})

			pod := &corev1.Pod{ObjectMeta: metav1.ObjectMeta{Name: "job-1"}}
			err := adapter.CreatePod(ctx, pod)
			Expect(err).To(MatchError(k8s.ErrTransport))

			var kerr *k8s.Error
			Expect(errors.As(err, &kerr)).To(BeTrue())
			Expect(kerr.Name).To(Equal("job-1"))
		})
	})

	Describe("DeletePod", func() {
		It("deletes an existing pod", func() {
			pod := &corev1.Pod{ObjectMeta: metav1.ObjectMeta{Name: "job-1"}}
			Expect(adapter.CreatePod(ctx, pod)).To(Succeed())
			Expect(adapter.DeletePod(ctx, "job-1")).To(Succeed())
		})

		It("tolerates a missing pod", func() {
			Expect(adapter.DeletePod(ctx, "never-created")).To(Succeed())
		})
	})

	Describe("CreateVolumeClaim", func() {
		It("creates a ReadWriteOnce claim of the requested size", func() {
			err := adapter.CreateVolumeClaim(ctx, "claim-1", "2Gi", cfg.Labels("wf-1", ""))
			Expect(err).ToNot(HaveOccurred())

			pvc, err := fakeClientset.CoreV1().PersistentVolumeClaims("jobs").Get(ctx, "claim-1", metav1.GetOptions{})
			Expect(err).ToNot(HaveOccurred())
			Expect(pvc.Spec.AccessModes).To(ConsistOf(corev1.ReadWriteOnce))
			storage := pvc.Spec.Resources.Requests[corev1.ResourceStorage]
			Expect(storage.String()).To(Equal("2Gi"))
		})

		It("rejects an unparseable size without calling the cluster", func() {
			err := adapter.CreateVolumeClaim(ctx, "claim-1", "lots", nil)
			Expect(err).To(MatchError(k8s.ErrInvalid))

			_, getErr := fakeClientset.CoreV1().PersistentVolumeClaims("jobs").Get(ctx, "claim-1", metav1.GetOptions{})
			Expect(getErr).To(HaveOccurred())
		})
	})

	Describe("DeleteVolumeClaim", func() {
		It("tolerates a missing claim", func() {
			Expect(adapter.DeleteVolumeClaim(ctx, "never-created")).To(Succeed())
		})
	})

	Describe("PodLog", func() {
		It("returns the container log", func() {
			pod := &corev1.Pod{ObjectMeta: metav1.ObjectMeta{Name: "job-1"}}
			Expect(adapter.CreatePod(ctx, pod)).To(Succeed())

			// The fake clientset serves a canned body for log requests.
			log, err := adapter.PodLog(ctx, "job-1", "worker", nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(log).To(Equal("fake logs"))
		})
	})

	Describe("listing by label selector", func() {
		BeforeEach(func() {
			labeled := cfg.Labels("wf-live", "")
			Expect(adapter.CreateConfigMap(ctx, "cm-live", nil, labeled)).To(Succeed())
			Expect(adapter.CreateConfigMap(ctx, "cm-foreign", nil, map[string]string{"app": "other"})).To(Succeed())

			Expect(adapter.CreatePod(ctx, &corev1.Pod{
				ObjectMeta: metav1.ObjectMeta{Name: "pod-live", Labels: labeled},
			})).To(Succeed())
			Expect(adapter.CreateVolumeClaim(ctx, "claim-live", "1Gi", labeled)).To(Succeed())
		})

		It("returns only objects carrying the app label", func() {
			selector := k8s.AppLabelKey + "=" + cfg.AppName

			cms, err := adapter.ListConfigMaps(ctx, selector)
			Expect(err).ToNot(HaveOccurred())
			Expect(cms).To(HaveLen(1))
			Expect(cms[0].Name).To(Equal("cm-live"))

			pods, err := adapter.ListPods(ctx, selector)
			Expect(err).ToNot(HaveOccurred())
			Expect(pods).To(HaveLen(1))
			Expect(pods[0].Name).To(Equal("pod-live"))

			pvcs, err := adapter.ListVolumeClaims(ctx, selector)
			Expect(err).ToNot(HaveOccurred())
			Expect(pvcs).To(HaveLen(1))
			Expect(pvcs[0].Name).To(Equal("claim-live"))
		})
	})

	Describe("Events", func() {
		It("returns a lazy stream bound to the pod", func() {
			pod := &corev1.Pod{
				ObjectMeta: metav1.ObjectMeta{Name: "job-1", ResourceVersion: "1"},
				Status:     corev1.PodStatus{Phase: corev1.PodPending},
			}
			Expect(adapter.CreatePod(ctx, pod)).To(Succeed())

			stream := adapter.Events("job-1")
			defer stream.Stop()

			snap, err := stream.Next(ctx)
			Expect(err).ToNot(HaveOccurred())
			Expect(snap.PodPhase).To(Equal(string(corev1.PodPending)))
		})
	})
})
