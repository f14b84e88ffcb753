package api_test

import (
	"encoding/json"
	"io"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/gx4ki/middlelayer/wfapi/api"
)

var _ = Describe("Authentication", func() {
	Context("when the access token header is missing", func() {
		It("refuses the request", func() {
			req, err := http.NewRequest("GET", server.URL+"/services/", nil)
			Expect(err).ToNot(HaveOccurred())

			response, err := client.Do(req)
			Expect(err).ToNot(HaveOccurred())

			Expect(response.StatusCode).To(Equal(http.StatusForbidden))
			Expect(errorDetail(response)).To(Equal("Could not validate API KEY"))
			Expect(fakeCatalog.ListCallCount()).To(BeZero())
		})

		It("still counts the request", func() {
			req, err := http.NewRequest("GET", server.URL+"/services/", nil)
			Expect(err).ToNot(HaveOccurred())

			_, err = client.Do(req)
			Expect(err).ToNot(HaveOccurred())

			counter := monitor.HTTPRequests.WithLabelValues(api.ListServices, "403")
			Expect(testutil.ToFloat64(counter)).To(Equal(1.0))
		})
	})

	Context("when the access token is wrong", func() {
		It("refuses the request", func() {
			req, err := http.NewRequest("GET", server.URL+"/services/", nil)
			Expect(err).ToNot(HaveOccurred())
			req.Header.Set("access-token", "not-the-token")

			response, err := client.Do(req)
			Expect(err).ToNot(HaveOccurred())

			Expect(response.StatusCode).To(Equal(http.StatusForbidden))
			Expect(errorDetail(response)).To(Equal("Could not validate API KEY"))
		})
	})

	Context("when the access token matches", func() {
		It("lets the request through", func() {
			response, err := client.Do(authedRequest("GET", "/services/", nil))
			Expect(err).ToNot(HaveOccurred())

			Expect(response.StatusCode).To(Equal(http.StatusOK))
			Expect(fakeCatalog.ListCallCount()).To(Equal(1))
		})

		It("counts the request by route and status", func() {
			_, err := client.Do(authedRequest("GET", "/services/", nil))
			Expect(err).ToNot(HaveOccurred())

			counter := monitor.HTTPRequests.WithLabelValues(api.ListServices, "200")
			Expect(testutil.ToFloat64(counter)).To(Equal(1.0))
		})
	})

	Describe("GET /healthz", func() {
		It("answers without a token", func() {
			response, err := client.Get(server.URL + "/healthz")
			Expect(err).ToNot(HaveOccurred())

			Expect(response.StatusCode).To(Equal(http.StatusOK))

			var body map[string]string
			Expect(json.NewDecoder(response.Body).Decode(&body)).To(Succeed())
			Expect(body).To(Equal(map[string]string{"status": "ok"}))
		})
	})

	Describe("GET /metrics", func() {
		It("serves the counters without a token", func() {
			response, err := client.Get(server.URL + "/metrics")
			Expect(err).ToNot(HaveOccurred())

			Expect(response.StatusCode).To(Equal(http.StatusOK))

			raw, err := io.ReadAll(response.Body)
			Expect(err).ToNot(HaveOccurred())
			Expect(string(raw)).To(ContainSubstring("middlelayer_workflows_submitted_total"))
			Expect(string(raw)).To(ContainSubstring("middlelayer_input_uploads_total"))
		})
	})
})
