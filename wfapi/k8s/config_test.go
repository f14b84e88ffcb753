package k8s_test

import (
	"os"
	"path/filepath"

	"github.com/gx4ki/middlelayer/wfapi/k8s"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Config", func() {
	Describe("NewConfig", func() {
		It("returns a config with the given namespace", func() {
			cfg := k8s.NewConfig("my-namespace", "")
			Expect(cfg.Namespace).To(Equal("my-namespace"))
		})

		It("defaults namespace to 'default' when empty", func() {
			cfg := k8s.NewConfig("", "")
			Expect(cfg.Namespace).To(Equal("default"))
		})

		It("stores the kubeconfig path when provided", func() {
			cfg := k8s.NewConfig("my-namespace", "/path/to/kubeconfig")
			Expect(cfg.KubeconfigPath).To(Equal("/path/to/kubeconfig"))
		})

		It("defaults the job volume to a 2Gi emptyDir", func() {
			cfg := k8s.NewConfig("my-namespace", "")
			Expect(cfg.JobStorageType).To(Equal(k8s.StorageEmptyDir))
			Expect(cfg.JobStorageSize).To(Equal("2Gi"))
		})
	})

	Describe("Validate", func() {
		var cfg k8s.Config

		BeforeEach(func() {
			cfg = k8s.NewConfig("my-namespace", "")
			cfg.SideCarImage = "registry.example.com/data-side-car:stable"
		})

		It("accepts the defaults once a side-car image is set", func() {
			Expect(cfg.Validate()).To(Succeed())
		})

		It("accepts persistent volume claim storage", func() {
			cfg.JobStorageType = k8s.StoragePVC
			Expect(cfg.Validate()).To(Succeed())
		})

		It("rejects unknown storage types", func() {
			cfg.JobStorageType = "floppy_disk"
			Expect(cfg.Validate()).To(MatchError(k8s.ErrInvalid))
		})

		It("rejects a missing side-car image", func() {
			cfg.SideCarImage = ""
			Expect(cfg.Validate()).To(MatchError(k8s.ErrInvalid))
		})

		It("rejects an unparseable job storage size", func() {
			cfg.JobStorageSize = "two gigabytes"
			Expect(cfg.Validate()).To(MatchError(k8s.ErrInvalid))
		})
	})

	Describe("Labels", func() {
		It("carries the app and workflow labels", func() {
			cfg := k8s.NewConfig("my-namespace", "")
			labels := cfg.Labels("wf-1", "")
			Expect(labels).To(Equal(map[string]string{
				k8s.AppLabelKey:      "middlelayer",
				k8s.WorkflowLabelKey: "wf-1",
			}))
		})

		It("includes the job label when a job id is known", func() {
			cfg := k8s.NewConfig("my-namespace", "")
			labels := cfg.Labels("wf-1", "job-1")
			Expect(labels).To(HaveKeyWithValue(k8s.JobLabelKey, "job-1"))
		})
	})

	Describe("NewClientset", func() {
		Context("when a valid kubeconfig is provided", func() {
			var kubeconfigPath string

			BeforeEach(func() {
				tmpDir := GinkgoT().TempDir()
				kubeconfigPath = filepath.Join(tmpDir, "kubeconfig")
				kubeconfig := `apiVersion: v1
kind: Config
clusters:
- cluster:
    server: https://127.0.0.1:6443
    insecure-skip-tls-verify: true
  name: test-cluster
contexts:
- context:
    cluster: test-cluster
    user: test-user
  name: test-context
current-context: test-context
users:
- name: test-user
  user:
    token: fake-token
`
				err := os.WriteFile(kubeconfigPath, []byte(kubeconfig), 0600)
				Expect(err).ToNot(HaveOccurred())
			})

			It("creates a clientset from the kubeconfig file", func() {
				cfg := k8s.NewConfig("my-namespace", kubeconfigPath)
				clientset, err := k8s.NewClientset(cfg)
				Expect(err).ToNot(HaveOccurred())
				Expect(clientset).ToNot(BeNil())
			})
		})

		Context("when the kubeconfig path does not exist", func() {
			It("returns an error", func() {
				cfg := k8s.NewConfig("my-namespace", "/nonexistent/kubeconfig")
				_, err := k8s.NewClientset(cfg)
				Expect(err).To(HaveOccurred())
			})
		})

		Context("when no kubeconfig is provided and not in-cluster", func() {
			It("returns an error", func() {
				// Ensure we're not running in a K8s cluster
				os.Unsetenv("KUBERNETES_SERVICE_HOST")
				os.Unsetenv("KUBERNETES_SERVICE_PORT")

				cfg := k8s.NewConfig("my-namespace", "")
				_, err := k8s.NewClientset(cfg)
				Expect(err).To(HaveOccurred())
			})
		})
	})
})
