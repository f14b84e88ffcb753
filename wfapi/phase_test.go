package wfapi_test

import (
	"github.com/gx4ki/middlelayer/wfapi"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Phase", func() {
	It("marks FINISHED and CANCELED as terminal", func() {
		Expect(wfapi.PhaseFinished.Terminal()).To(BeTrue())
		Expect(wfapi.PhaseCanceled.Terminal()).To(BeTrue())
		Expect(wfapi.PhasePreparing.Terminal()).To(BeFalse())
		Expect(wfapi.PhaseRunning.Terminal()).To(BeFalse())
		Expect(wfapi.PhaseStoring.Terminal()).To(BeFalse())
	})

	Describe("CanTransition", func() {
		It("allows forward progression", func() {
			Expect(wfapi.PhasePreparing.CanTransition(wfapi.PhaseRunning)).To(BeTrue())
			Expect(wfapi.PhaseRunning.CanTransition(wfapi.PhaseStoring)).To(BeTrue())
			Expect(wfapi.PhaseStoring.CanTransition(wfapi.PhaseFinished)).To(BeTrue())
		})

		It("allows cancellation from any non-terminal phase", func() {
			Expect(wfapi.PhasePreparing.CanTransition(wfapi.PhaseCanceled)).To(BeTrue())
			Expect(wfapi.PhaseRunning.CanTransition(wfapi.PhaseCanceled)).To(BeTrue())
			Expect(wfapi.PhaseStoring.CanTransition(wfapi.PhaseCanceled)).To(BeTrue())
		})

		It("forbids regression", func() {
			Expect(wfapi.PhaseRunning.CanTransition(wfapi.PhasePreparing)).To(BeFalse())
			Expect(wfapi.PhaseStoring.CanTransition(wfapi.PhaseRunning)).To(BeFalse())
		})

		It("forbids leaving terminal phases", func() {
			Expect(wfapi.PhaseFinished.CanTransition(wfapi.PhaseRunning)).To(BeFalse())
			Expect(wfapi.PhaseCanceled.CanTransition(wfapi.PhasePreparing)).To(BeFalse())
			Expect(wfapi.PhaseCanceled.CanTransition(wfapi.PhaseFinished)).To(BeFalse())
		})

		It("treats re-assertion as legal", func() {
			Expect(wfapi.PhaseRunning.CanTransition(wfapi.PhaseRunning)).To(BeTrue())
			Expect(wfapi.PhaseFinished.CanTransition(wfapi.PhaseFinished)).To(BeTrue())
		})
	})
})
