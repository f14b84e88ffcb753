package backend_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gx4ki/middlelayer/wfapi"
	"github.com/gx4ki/middlelayer/wfapi/backend"
	"github.com/gx4ki/middlelayer/wfapi/k8s"
)

var _ = Describe("Registry", func() {
	var registry *backend.Registry

	BeforeEach(func() {
		registry = backend.NewRegistry()
	})

	It("reports absent workflows", func() {
		_, ok := registry.Get("missing")
		Expect(ok).To(BeFalse())
		Expect(registry.Live("missing")).To(BeFalse())
	})

	It("creates records in PREPARING on appending writes", func() {
		registry.AppendConfigMap("wf-1", "cm-1")

		state, ok := registry.Get("wf-1")
		Expect(ok).To(BeTrue())
		Expect(state.Phase).To(Equal(wfapi.PhasePreparing))
		Expect(state.ConfigMapIDs).To(Equal([]string{"cm-1"}))
	})

	It("keeps config map ids in append order", func() {
		registry.AppendConfigMap("wf-1", "cm-1")
		registry.AppendConfigMap("wf-1", "cm-2")
		registry.AppendConfigMap("wf-1", "cm-3")

		state, _ := registry.Get("wf-1")
		Expect(state.ConfigMapIDs).To(Equal([]string{"cm-1", "cm-2", "cm-3"}))
	})

	It("returns ids sorted", func() {
		registry.Upsert("wf-c")
		registry.Upsert("wf-a")
		registry.Upsert("wf-b")

		Expect(registry.IDs()).To(Equal([]string{"wf-a", "wf-b", "wf-c"}))
	})

	Describe("AppendInputResource", func() {
		res := func(name string) wfapi.ServiceResource {
			return wfapi.ServiceResource{ResourceName: name, Type: wfapi.KindData, MountPath: "/in"}
		}

		It("creates the input config once and keeps appending to it", func() {
			first := registry.AppendInputResource("wf-1", res("x"), "cfg-a")
			second := registry.AppendInputResource("wf-1", res("y"), "cfg-b")

			Expect(first).To(Equal("cfg-a"))
			Expect(second).To(Equal("cfg-a"))

			state, _ := registry.Get("wf-1")
			Expect(state.InputConfig.ID).To(Equal("cfg-a"))
			Expect(state.InputConfig.Entries).To(Equal([]wfapi.ServiceResource{res("x"), res("y")}))
		})
	})

	Describe("SetPhase", func() {
		It("advances through the forward progression", func() {
			registry.Upsert("wf-1")

			Expect(registry.SetPhase("wf-1", wfapi.PhaseRunning)).To(BeTrue())
			Expect(registry.SetPhase("wf-1", wfapi.PhaseStoring)).To(BeTrue())

			state, _ := registry.Get("wf-1")
			Expect(state.Phase).To(Equal(wfapi.PhaseStoring))
		})

		It("refuses regressions", func() {
			registry.Upsert("wf-1")
			registry.SetPhase("wf-1", wfapi.PhaseStoring)

			Expect(registry.SetPhase("wf-1", wfapi.PhaseRunning)).To(BeFalse())

			state, _ := registry.Get("wf-1")
			Expect(state.Phase).To(Equal(wfapi.PhaseStoring))
		})

		It("reports no change when the phase is already current", func() {
			registry.Upsert("wf-1")
			registry.SetPhase("wf-1", wfapi.PhaseRunning)

			Expect(registry.SetPhase("wf-1", wfapi.PhaseRunning)).To(BeFalse())
		})

		It("freezes terminal phases", func() {
			registry.Upsert("wf-1")
			Expect(registry.SetPhase("wf-1", wfapi.PhaseCanceled)).To(BeTrue())

			Expect(registry.SetPhase("wf-1", wfapi.PhaseRunning)).To(BeFalse())
			Expect(registry.SetPhase("wf-1", wfapi.PhaseFinished)).To(BeFalse())

			state, _ := registry.Get("wf-1")
			Expect(state.Phase).To(Equal(wfapi.PhaseCanceled))
			Expect(registry.Live("wf-1")).To(BeFalse())
		})

		It("reaches terminal phases from any non-terminal phase", func() {
			registry.Upsert("wf-1")
			registry.SetPhase("wf-1", wfapi.PhaseStoring)

			Expect(registry.SetPhase("wf-1", wfapi.PhaseCanceled)).To(BeTrue())
		})

		It("does not create records for unknown workflows", func() {
			Expect(registry.SetPhase("missing", wfapi.PhaseRunning)).To(BeFalse())

			_, ok := registry.Get("missing")
			Expect(ok).To(BeFalse())
		})
	})

	Describe("SetWorkerState", func() {
		snapshot := func(state string) k8s.PodStateSnapshot {
			return k8s.PodStateSnapshot{
				EventType: "MODIFIED",
				PodPhase:  "Running",
				ContainerStatuses: map[string]k8s.ContainerState{
					k8s.WorkerContainerName: {State: state, Details: state},
				},
			}
		}

		It("records the latest observation", func() {
			registry.Upsert("wf-1")

			Expect(registry.SetWorkerState("wf-1", snapshot(k8s.ContainerRunning))).To(BeTrue())

			state, _ := registry.Get("wf-1")
			worker, ok := state.WorkerState.Container(k8s.WorkerContainerName)
			Expect(ok).To(BeTrue())
			Expect(worker.State).To(Equal(k8s.ContainerRunning))
		})

		It("drops observations for terminal workflows", func() {
			registry.Upsert("wf-1")
			registry.SetWorkerState("wf-1", snapshot(k8s.ContainerRunning))
			registry.SetPhase("wf-1", wfapi.PhaseCanceled)

			Expect(registry.SetWorkerState("wf-1", snapshot(k8s.ContainerTerminated))).To(BeFalse())

			state, _ := registry.Get("wf-1")
			worker, _ := state.WorkerState.Container(k8s.WorkerContainerName)
			Expect(worker.State).To(Equal(k8s.ContainerRunning))
		})
	})

	Describe("MarkFinished", func() {
		It("finishes a non-terminal workflow", func() {
			registry.Upsert("wf-1")
			registry.SetPhase("wf-1", wfapi.PhaseStoring)

			Expect(registry.MarkFinished("wf-1")).To(BeTrue())

			state, _ := registry.Get("wf-1")
			Expect(state.Phase).To(Equal(wfapi.PhaseFinished))
		})

		It("leaves a canceled workflow canceled", func() {
			registry.Upsert("wf-1")
			registry.SetPhase("wf-1", wfapi.PhaseCanceled)

			Expect(registry.MarkFinished("wf-1")).To(BeFalse())

			state, _ := registry.Get("wf-1")
			Expect(state.Phase).To(Equal(wfapi.PhaseCanceled))
		})

		It("reports nothing to do the second time", func() {
			registry.Upsert("wf-1")

			Expect(registry.MarkFinished("wf-1")).To(BeTrue())
			Expect(registry.MarkFinished("wf-1")).To(BeFalse())
		})
	})

	Describe("pruning cleanup references", func() {
		It("removes a single config map id", func() {
			registry.AppendConfigMap("wf-1", "cm-1")
			registry.AppendConfigMap("wf-1", "cm-2")

			registry.RemoveConfigMap("wf-1", "cm-1")

			state, _ := registry.Get("wf-1")
			Expect(state.ConfigMapIDs).To(Equal([]string{"cm-2"}))
		})

		It("clears the input config, claim and job references", func() {
			registry.AppendInputResource("wf-1", wfapi.ServiceResource{ResourceName: "x", Type: wfapi.KindData, MountPath: "/in"}, "cfg-a")
			registry.SetVolumeClaim("wf-1", "claim-1")
			registry.SetJobID("wf-1", "job-1")

			registry.ClearInputConfig("wf-1")
			registry.ClearVolumeClaim("wf-1")
			registry.ClearJobID("wf-1")

			state, _ := registry.Get("wf-1")
			Expect(state.InputConfig).To(BeNil())
			Expect(state.VolumeClaimID).To(BeEmpty())
			Expect(state.JobID).To(BeEmpty())
		})

		It("ignores unknown workflows", func() {
			registry.RemoveConfigMap("missing", "cm-1")
			registry.ClearInputConfig("missing")
			registry.ClearVolumeClaim("missing")
			registry.ClearJobID("missing")

			_, ok := registry.Get("missing")
			Expect(ok).To(BeFalse())
		})
	})

	It("returns isolated copies", func() {
		registry.AppendConfigMap("wf-1", "cm-1")
		registry.AppendInputResource("wf-1", wfapi.ServiceResource{ResourceName: "x", Type: wfapi.KindData, MountPath: "/in"}, "cfg-a")

		state, _ := registry.Get("wf-1")
		state.ConfigMapIDs[0] = "tampered"
		state.InputConfig.Entries[0].ResourceName = "tampered"

		fresh, _ := registry.Get("wf-1")
		Expect(fresh.ConfigMapIDs).To(Equal([]string{"cm-1"}))
		Expect(fresh.InputConfig.Entries[0].ResourceName).To(Equal("x"))
	})

	Describe("Forget", func() {
		It("drops the record and the monitor handle", func() {
			registry.Upsert("wf-1")
			registry.Forget("wf-1")

			_, ok := registry.Get("wf-1")
			Expect(ok).To(BeFalse())
			_, ok = registry.Monitor("wf-1")
			Expect(ok).To(BeFalse())
		})
	})
})
