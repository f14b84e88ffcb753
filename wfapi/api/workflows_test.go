package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gx4ki/middlelayer/wfapi"
	"github.com/gx4ki/middlelayer/wfapi/backend"
	"github.com/gx4ki/middlelayer/wfapi/k8s"
	"github.com/gx4ki/middlelayer/wfapi/storage"
)

var _ = Describe("Workflows API", func() {
	Describe("GET /services/:service_id/workflow/", func() {
		BeforeEach(func() {
			fakeEngine.WorkflowsReturns([]string{"wf-1", "wf-2"})
		})

		It("lists every known workflow id", func() {
			response, err := client.Do(authedRequest("GET", "/services/dummy/workflow/", nil))
			Expect(err).ToNot(HaveOccurred())

			Expect(response.StatusCode).To(Equal(http.StatusOK))

			var ids []string
			Expect(json.NewDecoder(response.Body).Decode(&ids)).To(Succeed())
			Expect(ids).To(Equal([]string{"wf-1", "wf-2"}))
		})

		Context("when the service is not offered", func() {
			It("returns 400", func() {
				response, err := client.Do(authedRequest("GET", "/services/nope/workflow/", nil))
				Expect(err).ToNot(HaveOccurred())

				Expect(response.StatusCode).To(Equal(http.StatusBadRequest))
				Expect(errorDetail(response)).To(Equal("no valid service_id"))
			})
		})
	})

	Describe("POST /services/:service_id/workflow/execute", func() {
		var (
			serviceID string
			response  *http.Response
		)

		returnedWorkflowID := func() string {
			var body map[string]string
			Expect(json.NewDecoder(response.Body).Decode(&body)).To(Succeed())
			return body["workflow_id"]
		}

		BeforeEach(func() {
			serviceID = "dummy"
			fakeStore.ListObjectsReturns([]storage.Object{
				{Key: "dummy/inputs/env"},
			}, nil)
		})

		JustBeforeEach(func() {
			var err error
			response, err = client.Do(authedRequest("POST", "/services/"+serviceID+"/workflow/execute", nil))
			Expect(err).ToNot(HaveOccurred())
		})

		It("accepts the submission and returns a fresh workflow id", func() {
			Expect(response.StatusCode).To(Equal(http.StatusOK))

			workflowID := returnedWorkflowID()
			_, err := uuid.Parse(workflowID)
			Expect(err).ToNot(HaveOccurred())

			Expect(fakeEngine.RegisterCallCount()).To(Equal(1))
			Expect(fakeEngine.RegisterArgsForCall(0)).To(Equal(workflowID))
		})

		It("feeds every declared input to the engine, then commits", func() {
			workflowID := returnedWorkflowID()

			Eventually(fakeEngine.HandleInputCallCount).Should(Equal(1))
			_, handledID, res, getData := fakeEngine.HandleInputArgsForCall(0)
			Expect(handledID).To(Equal(workflowID))
			Expect(res.ResourceName).To(Equal("env"))

			fakeStore.GetObjectReturns([]byte("GREETING=hello"), nil)
			data, err := getData(context.Background())
			Expect(err).ToNot(HaveOccurred())
			Expect(string(data)).To(Equal("GREETING=hello"))
			_, key := fakeStore.GetObjectArgsForCall(0)
			Expect(key).To(Equal("dummy/inputs/env"))

			Eventually(fakeEngine.CommitWorkflowCallCount).Should(Equal(1))
			_, committedID, committedService, spec, onFinished := fakeEngine.CommitWorkflowArgsForCall(0)
			Expect(committedID).To(Equal(workflowID))
			Expect(committedService).To(Equal("dummy"))
			Expect(spec).To(Equal(dummyService.WorkflowResource))
			Expect(onFinished).ToNot(BeNil())
		})

		Context("when staging an input into the engine fails", func() {
			BeforeEach(func() {
				fakeEngine.HandleInputReturns(errors.New("config-map refused"))
			})

			It("abandons the submission before committing", func() {
				Expect(response.StatusCode).To(Equal(http.StatusOK))

				Eventually(fakeEngine.HandleInputCallCount).Should(Equal(1))
				Consistently(fakeEngine.CommitWorkflowCallCount).Should(BeZero())
			})
		})

		Context("when the workflow later finishes", func() {
			var onFinished func()

			BeforeEach(func() {
				fakeStore.CredentialsReturns(wfapi.StoreCredentials{
					Endpoint:  "minio.example.com:9000",
					AccessKey: "workflow-api",
					SecretKey: "changeme123",
					Secure:    true,
				})
				fakeStore.BucketReturns("alice-storage")
			})

			JustBeforeEach(func() {
				Eventually(fakeEngine.CommitWorkflowCallCount).Should(Equal(1))
				_, _, _, _, onFinished = fakeEngine.CommitWorkflowArgsForCall(0)
			})

			It("instructs the side-car where to export results, then cleans up", func() {
				workflowID := returnedWorkflowID()

				onFinished()

				Expect(fakeEngine.StoreResultCallCount()).To(Equal(1))
				_, storedID, info := fakeEngine.StoreResultArgsForCall(0)
				Expect(storedID).To(Equal(workflowID))
				Expect(info).To(Equal(wfapi.WorkflowStoreInfo{
					Minio: wfapi.StoreCredentials{
						Endpoint:  "minio.example.com:9000",
						AccessKey: "workflow-api",
						SecretKey: "changeme123",
						Secure:    true,
					},
					DestinationBucket: "alice-storage",
					DestinationPath:   "dummy/outputs/" + workflowID,
					ResultDirectory:   wfapi.DefaultResultDirectory,
					ResultFiles:       []string{"result"},
				}))

				Expect(fakeEngine.CleanupCallCount()).To(Equal(1))
				_, cleanedID := fakeEngine.CleanupArgsForCall(0)
				Expect(cleanedID).To(Equal(workflowID))
			})

			Context("when the side-car refuses the instruction", func() {
				BeforeEach(func() {
					fakeEngine.StoreResultReturns(errors.New("side-car gone"))
				})

				It("still cleans the workflow up", func() {
					onFinished()

					Expect(fakeEngine.CleanupCallCount()).To(Equal(1))
				})
			})

			Context("when instant removal is disabled", func() {
				BeforeEach(func() {
					instantRemoval = false
				})

				It("waits out the grace period before cleaning up", func() {
					finished := make(chan struct{})
					go func() {
						defer GinkgoRecover()
						onFinished()
						close(finished)
					}()

					Eventually(fakeEngine.StoreResultCallCount).Should(Equal(1))
					Consistently(fakeEngine.CleanupCallCount).Should(BeZero())

					fakeClock.WaitForWatcherAndIncrement(gracePeriod)

					Eventually(finished).Should(BeClosed())
					Expect(fakeEngine.CleanupCallCount()).To(Equal(1))
				})
			})
		})

		Context("when an input is staged behind a source_ref", func() {
			BeforeEach(func() {
				serviceID = "carla"
				fakeStore.ListObjectsStub = func(_ context.Context, prefix string) ([]storage.Object, error) {
					switch prefix {
					case "carla/inputs/":
						return []storage.Object{{Key: "carla/inputs/env"}}, nil
					case "shared/scenarios/town01.xosc":
						return []storage.Object{{Key: "shared/scenarios/town01.xosc"}}, nil
					}
					return nil, nil
				}
			})

			It("accepts the submission", func() {
				Expect(response.StatusCode).To(Equal(http.StatusOK))
			})

			Context("and the referenced object is absent", func() {
				BeforeEach(func() {
					fakeStore.ListObjectsStub = func(_ context.Context, prefix string) ([]storage.Object, error) {
						if prefix == "carla/inputs/" {
							return []storage.Object{{Key: "carla/inputs/env"}}, nil
						}
						return nil, nil
					}
				})

				It("returns 400", func() {
					Expect(response.StatusCode).To(Equal(http.StatusBadRequest))
					Expect(errorDetail(response)).To(Equal("service input not fulfilled"))
				})
			})
		})

		Context("when a declared input is not staged", func() {
			BeforeEach(func() {
				fakeStore.ListObjectsReturns(nil, nil)
			})

			It("returns 400 and submits nothing", func() {
				Expect(response.StatusCode).To(Equal(http.StatusBadRequest))
				Expect(errorDetail(response)).To(Equal("service input not fulfilled"))

				Expect(fakeEngine.RegisterCallCount()).To(BeZero())
				Expect(fakeEngine.CommitWorkflowCallCount()).To(BeZero())
			})
		})

		Context("when the staged-input check fails", func() {
			BeforeEach(func() {
				fakeStore.ListObjectsReturns(nil, errors.New("connection reset"))
			})

			It("returns 500", func() {
				Expect(response.StatusCode).To(Equal(http.StatusInternalServerError))
				Expect(errorDetail(response)).To(Equal("could not check staged inputs"))
			})
		})

		Context("when the service is not offered", func() {
			BeforeEach(func() {
				serviceID = "nope"
			})

			It("returns 400", func() {
				Expect(response.StatusCode).To(Equal(http.StatusBadRequest))
				Expect(errorDetail(response)).To(Equal("no valid service_id"))
			})
		})
	})

	Describe("POST /services/:service_id/workflow/stop/:workflow_id", func() {
		var response *http.Response

		JustBeforeEach(func() {
			var err error
			response, err = client.Do(authedRequest("POST", "/services/dummy/workflow/stop/wf-1", nil))
			Expect(err).ToNot(HaveOccurred())
		})

		It("stops the workflow", func() {
			Expect(response.StatusCode).To(Equal(http.StatusOK))

			Expect(fakeEngine.StopWorkflowCallCount()).To(Equal(1))
			_, workflowID := fakeEngine.StopWorkflowArgsForCall(0)
			Expect(workflowID).To(Equal("wf-1"))

			var body map[string]any
			Expect(json.NewDecoder(response.Body).Decode(&body)).To(Succeed())
			Expect(body).To(BeEmpty())
		})

		Context("when the workflow is unknown", func() {
			BeforeEach(func() {
				fakeEngine.StopWorkflowReturns(backend.ErrUnknownWorkflow)
			})

			It("returns 400", func() {
				Expect(response.StatusCode).To(Equal(http.StatusBadRequest))
				Expect(errorDetail(response)).To(Equal("invalid workflow_id"))
			})
		})

		Context("when stopping fails", func() {
			BeforeEach(func() {
				fakeEngine.StopWorkflowReturns(errors.New("delete refused"))
			})

			It("returns 500", func() {
				Expect(response.StatusCode).To(Equal(http.StatusInternalServerError))
				Expect(errorDetail(response)).To(Equal("could not stop workflow"))
			})
		})
	})

	Describe("GET /services/:service_id/workflow/status/:workflow_id", func() {
		var (
			query    string
			response *http.Response
		)

		BeforeEach(func() {
			query = ""
			fakeEngine.StatusReturns(backend.WorkflowStatus{
				Phase: wfapi.PhaseRunning,
				WorkerState: &k8s.PodStateSnapshot{
					EventType: "MODIFIED",
					PodPhase:  "Running",
				},
			}, nil)
		})

		JustBeforeEach(func() {
			var err error
			response, err = client.Do(authedRequest("GET", "/services/dummy/workflow/status/wf-1"+query, nil))
			Expect(err).ToNot(HaveOccurred())
		})

		It("reports the phase and the worker state", func() {
			Expect(response.StatusCode).To(Equal(http.StatusOK))

			var body struct {
				ServiceID      string                 `json:"service_id"`
				WorkflowID     string                 `json:"workflow_id"`
				WorkflowStatus backend.WorkflowStatus `json:"workflow_status"`
			}
			Expect(json.NewDecoder(response.Body).Decode(&body)).To(Succeed())

			Expect(body.ServiceID).To(Equal("dummy"))
			Expect(body.WorkflowID).To(Equal("wf-1"))
			Expect(body.WorkflowStatus.Phase).To(Equal(wfapi.PhaseRunning))
			Expect(body.WorkflowStatus.WorkerState).ToNot(BeNil())
			Expect(body.WorkflowStatus.WorkerState.PodPhase).To(Equal("Running"))

			Expect(fakeEngine.StatusArgsForCall(0)).To(Equal("wf-1"))
		})

		Context("when the workflow is unknown", func() {
			BeforeEach(func() {
				fakeEngine.StatusReturns(backend.WorkflowStatus{}, backend.ErrUnknownWorkflow)
			})

			It("returns 400", func() {
				Expect(response.StatusCode).To(Equal(http.StatusBadRequest))
				Expect(errorDetail(response)).To(Equal("invalid workflow_id"))
			})
		})

		Context("at verbose_level 1", func() {
			BeforeEach(func() {
				query = "?verbose_level=1"
				fakeEngine.WorkerLogReturns("line1\nline2\n", nil)
			})

			It("serves the tailed worker log as plain text", func() {
				Expect(response.StatusCode).To(Equal(http.StatusOK))
				Expect(response.Header.Get("Content-Type")).To(Equal("text/plain; charset=utf-8"))

				raw, err := io.ReadAll(response.Body)
				Expect(err).ToNot(HaveOccurred())
				Expect(string(raw)).To(Equal("line1\nline2\n"))

				_, workflowID, tail := fakeEngine.WorkerLogArgsForCall(0)
				Expect(workflowID).To(Equal("wf-1"))
				Expect(tail).ToNot(BeNil())
				Expect(*tail).To(Equal(int64(100)))
			})

			Context("when the workflow has no worker pod yet", func() {
				BeforeEach(func() {
					fakeEngine.WorkerLogReturns("", backend.ErrNoWorkerPod)
				})

				It("returns 400", func() {
					Expect(response.StatusCode).To(Equal(http.StatusBadRequest))
					Expect(errorDetail(response)).To(Equal("workflow has no worker pod"))
				})
			})

			Context("when the workflow is unknown", func() {
				BeforeEach(func() {
					fakeEngine.WorkerLogReturns("", backend.ErrUnknownWorkflow)
				})

				It("returns 400", func() {
					Expect(response.StatusCode).To(Equal(http.StatusBadRequest))
					Expect(errorDetail(response)).To(Equal("invalid workflow_id"))
				})
			})

			Context("when fetching the log fails", func() {
				BeforeEach(func() {
					fakeEngine.WorkerLogReturns("", errors.New("stream broke"))
				})

				It("returns 500", func() {
					Expect(response.StatusCode).To(Equal(http.StatusInternalServerError))
					Expect(errorDetail(response)).To(Equal("could not fetch worker log"))
				})
			})
		})

		Context("at verbose_level 2", func() {
			BeforeEach(func() {
				query = "?verbose_level=2"
				fakeEngine.WorkerLogReturns("the whole log\n", nil)
			})

			It("serves the full worker log", func() {
				Expect(response.StatusCode).To(Equal(http.StatusOK))

				raw, err := io.ReadAll(response.Body)
				Expect(err).ToNot(HaveOccurred())
				Expect(string(raw)).To(Equal("the whole log\n"))

				_, _, tail := fakeEngine.WorkerLogArgsForCall(0)
				Expect(tail).To(BeNil())
			})
		})

		Context("at an unknown verbose_level", func() {
			BeforeEach(func() {
				query = "?verbose_level=7"
			})

			It("returns 400", func() {
				Expect(response.StatusCode).To(Equal(http.StatusBadRequest))
				Expect(errorDetail(response)).To(Equal("invalid verbose_level"))
			})
		})
	})

	Describe("GET /services/:service_id/workflow/results/:workflow_id", func() {
		var (
			query    string
			response *http.Response
		)

		BeforeEach(func() {
			query = ""
			fakeStore.ListObjectsReturns([]storage.Object{
				{Key: "dummy/outputs/wf-1/result"},
				{Key: "dummy/outputs/wf-1/metrics.json"},
			}, nil)
		})

		JustBeforeEach(func() {
			var err error
			response, err = client.Do(authedRequest("GET", "/services/dummy/workflow/results/wf-1"+query, nil))
			Expect(err).ToNot(HaveOccurred())
		})

		It("lists the exported file names", func() {
			Expect(response.StatusCode).To(Equal(http.StatusOK))

			_, prefix := fakeStore.ListObjectsArgsForCall(0)
			Expect(prefix).To(Equal("dummy/outputs/wf-1/"))

			var names []string
			Expect(json.NewDecoder(response.Body).Decode(&names)).To(Succeed())
			Expect(names).To(Equal([]string{"result", "metrics.json"}))
		})

		Context("when nothing was exported", func() {
			BeforeEach(func() {
				fakeStore.ListObjectsReturns(nil, nil)
			})

			It("lists nothing", func() {
				Expect(response.StatusCode).To(Equal(http.StatusOK))

				var names []string
				Expect(json.NewDecoder(response.Body).Decode(&names)).To(Succeed())
				Expect(names).To(BeEmpty())
			})
		})

		Context("with a result_file", func() {
			BeforeEach(func() {
				query = "?result_file=result"
				fakeStore.PresignedGetURLReturns("https://store.example.com/signed-result", nil)
			})

			It("redirects to a download link", func() {
				Expect(response.StatusCode).To(Equal(http.StatusTemporaryRedirect))
				Expect(response.Header.Get("Location")).To(Equal("https://store.example.com/signed-result"))

				Expect(fakeStore.PresignedGetURLCallCount()).To(Equal(1))
				_, key := fakeStore.PresignedGetURLArgsForCall(0)
				Expect(key).To(Equal("dummy/outputs/wf-1/result"))
			})

			Context("that was never exported", func() {
				BeforeEach(func() {
					query = "?result_file=missing.txt"
				})

				It("returns 404", func() {
					Expect(response.StatusCode).To(Equal(http.StatusNotFound))
					Expect(errorDetail(response)).To(Equal("requested resource not exists"))
					Expect(fakeStore.PresignedGetURLCallCount()).To(BeZero())
				})
			})
		})

		Context("when listing the results fails", func() {
			BeforeEach(func() {
				fakeStore.ListObjectsReturns(nil, errors.New("connection reset"))
			})

			It("returns 500", func() {
				Expect(response.StatusCode).To(Equal(http.StatusInternalServerError))
				Expect(errorDetail(response)).To(Equal("could not list results"))
			})
		})
	})
})
