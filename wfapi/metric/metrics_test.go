package metric_test

import (
	"io"
	"net/http"
	"net/http/httptest"

	"code.cloudfoundry.org/lager/v3/lagertest"
	"github.com/onsi/gomega/gbytes"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/gx4ki/middlelayer/wfapi/metric"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Monitor", func() {
	var monitor *metric.Monitor

	BeforeEach(func() {
		monitor = metric.NewMonitor()
	})

	It("serves its counters in the Prometheus text format", func() {
		monitor.WorkflowsSubmitted.Inc()
		monitor.WorkflowsSubmitted.Inc()
		monitor.WorkflowsFinished.Inc()

		recorder := httptest.NewRecorder()
		monitor.Handler().ServeHTTP(recorder, httptest.NewRequest("GET", "/metrics", nil))

		Expect(recorder.Code).To(Equal(http.StatusOK))
		body, err := io.ReadAll(recorder.Result().Body)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(body)).To(ContainSubstring("middlelayer_workflows_submitted_total 2"))
		Expect(string(body)).To(ContainSubstring("middlelayer_workflows_finished_total 1"))
		Expect(string(body)).To(ContainSubstring("middlelayer_workflows_canceled_total 0"))
	})

	It("keeps separate monitors independent", func() {
		other := metric.NewMonitor()
		monitor.WorkflowsSubmitted.Inc()

		Expect(testutil.ToFloat64(monitor.WorkflowsSubmitted)).To(Equal(1.0))
		Expect(testutil.ToFloat64(other.WorkflowsSubmitted)).To(BeZero())
	})

	Describe("WrapHandler", func() {
		var logger *lagertest.TestLogger

		BeforeEach(func() {
			logger = lagertest.NewTestLogger("metrics")
		})

		It("counts handled requests by route and status code", func() {
			wrapped := metric.WrapHandler(logger, monitor, "GetServiceInfo", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTeapot)
			}))

			recorder := httptest.NewRecorder()
			wrapped.ServeHTTP(recorder, httptest.NewRequest("GET", "/services/dummy/info", nil))
			wrapped.ServeHTTP(recorder, httptest.NewRequest("GET", "/services/dummy/info", nil))

			counter := monitor.HTTPRequests.WithLabelValues("GetServiceInfo", "418")
			Expect(testutil.ToFloat64(counter)).To(Equal(2.0))
		})

		It("logs the observation under the route's session", func() {
			wrapped := metric.WrapHandler(logger, monitor, "Health", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			wrapped.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/healthz", nil))

			Expect(logger.Buffer()).To(gbytes.Say("http-response-time"))
		})
	})
})
