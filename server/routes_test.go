package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/usi-samples/usi-client-go/controllers"
	"github.com/usi-samples/usi-client-go/fixtures"
	"github.com/usi-samples/usi-client-go/requests"
	"github.com/usi-samples/usi-client-go/types"
	"github.com/usi-samples/usi-client-go/usi"
)

// echoOperations answers every operation with its own name and the
// argument that identifies the call.
type echoOperations struct{}

func (echoOperations) CreateUSI(ctx context.Context, a requests.Applicant) (string, error) {
	return "create " + a.FirstName, nil
}

func (echoOperations) CreateAndVerifyUSI(ctx context.Context, a requests.Applicant) (string, error) {
	return "create-verify " + a.FirstName, nil
}

func (echoOperations) BulkUpload(ctx context.Context, applicants []requests.Applicant) (string, error) {
	return "bulk-upload", nil
}

func (echoOperations) BulkUploadRetrieve(ctx context.Context, receiptNumber string) (string, error) {
	return "retrieve " + receiptNumber, nil
}

func (echoOperations) BulkVerify(ctx context.Context, specs []requests.VerificationSpec) (string, error) {
	return "bulk-verify", nil
}

func (echoOperations) UpdateContactDetails(ctx context.Context, usiValue string, contact usi.ContactDetails) (string, error) {
	return "update " + usiValue, nil
}

func (echoOperations) GetNonDvsDocumentTypes(ctx context.Context) (string, error) {
	return "document-types", nil
}

var _ = Describe("Routes", func() {
	var router http.Handler

	BeforeEach(func() {
		samples, err := fixtures.DefaultSamples()
		Expect(err).ToNot(HaveOccurred())
		router = DoRoutes(controllers.NewUsiApi(echoOperations{}, samples))
	})

	serve := func(method, path string) *http.Response {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(method, path, nil))
		return rr.Result()
	}

	DescribeTable("should route each operation",
		func(method, path, expected string) {
			resp := serve(method, path)
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var body types.OperationResult
			Expect(json.NewDecoder(resp.Body).Decode(&body)).To(Succeed())
			Expect(body.Result).To(Equal(expected))
		},
		Entry("create", http.MethodPost, "/api/usi/v1/create", "create Janeee"),
		Entry("create and verify", http.MethodPost, "/api/usi/v1/create-verify", "create-verify App"),
		Entry("bulk upload", http.MethodPost, "/api/usi/v1/bulk-upload", "bulk-upload"),
		Entry("bulk upload retrieve", http.MethodGet, "/api/usi/v1/bulk-upload/9876", "retrieve 9876"),
		Entry("bulk verify", http.MethodPost, "/api/usi/v1/bulk-verify", "bulk-verify"),
		Entry("update contact details", http.MethodPut, "/api/usi/v1/contact-details/ABCDE12345", "update ABCDE12345"),
		Entry("document types", http.MethodGet, "/api/usi/v1/document-types", "document-types"),
	)

	It("should answer the heartbeat", func() {
		resp := serve(http.MethodGet, "/api/usi/v1/")
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		body, _ := io.ReadAll(resp.Body)
		Expect(string(body)).To(Equal("lubdub"))
	})

	It("should expose the gateway metrics", func() {
		serve(http.MethodGet, "/api/usi/v1/document-types")

		resp := serve(http.MethodGet, "/metrics")
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		body, _ := io.ReadAll(resp.Body)
		Expect(string(body)).To(ContainSubstring(`usi_gateway_response_status{code="200",path="/api/usi/v1/document-types"}`))
	})
})
