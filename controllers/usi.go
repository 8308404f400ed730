package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"sync"

	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
	"github.com/usi-samples/usi-client-go/channel"
	"github.com/usi-samples/usi-client-go/fixtures"
	l "github.com/usi-samples/usi-client-go/logger"
	"github.com/usi-samples/usi-client-go/operations"
	"github.com/usi-samples/usi-client-go/requests"
	"github.com/usi-samples/usi-client-go/sts"
	"github.com/usi-samples/usi-client-go/types"
	"github.com/usi-samples/usi-client-go/usi"
)

const (
	usiServiceName = "USI Service"
	stsServiceName = "Security Token Service"
)

var gatewayFailure = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "usi_gateway_failure",
		Help: "Total number of gateway requests that did not produce a result",
	},
	[]string{"code"},
)

// Operations is what the gateway runs.
type Operations interface {
	CreateUSI(ctx context.Context, a requests.Applicant) (string, error)
	CreateAndVerifyUSI(ctx context.Context, a requests.Applicant) (string, error)
	BulkUpload(ctx context.Context, applicants []requests.Applicant) (string, error)
	BulkUploadRetrieve(ctx context.Context, receiptNumber string) (string, error)
	BulkVerify(ctx context.Context, specs []requests.VerificationSpec) (string, error)
	UpdateContactDetails(ctx context.Context, usiValue string, contact usi.ContactDetails) (string, error)
	GetNonDvsDocumentTypes(ctx context.Context) (string, error)
}

var _ Operations = &operations.Runner{}

// UsiApi serves the operations over JSON. A session holds one channel at a
// time, so requests run one after another.
type UsiApi struct {
	ops     Operations
	samples *fixtures.Samples
	mu      sync.Mutex
}

// NewUsiApi returns the handlers for ops. Requests without a body run
// against samples.
func NewUsiApi(ops Operations, samples *fixtures.Samples) *UsiApi {
	return &UsiApi{ops: ops, samples: samples}
}

func (a *UsiApi) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var body types.ApplicantRequest
		if !decodeBody(w, req, &body) {
			return
		}
		applicant := a.samples.Create
		if body.Applicant != nil {
			applicant = *body.Applicant
		}
		a.run(w, req, func(ctx context.Context) (string, error) {
			return a.ops.CreateUSI(ctx, applicant)
		})
	}
}

func (a *UsiApi) CreateVerify() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var body types.ApplicantRequest
		if !decodeBody(w, req, &body) {
			return
		}
		applicant := a.samples.CreateAndVerify
		if body.Applicant != nil {
			applicant = *body.Applicant
		}
		a.run(w, req, func(ctx context.Context) (string, error) {
			return a.ops.CreateAndVerifyUSI(ctx, applicant)
		})
	}
}

func (a *UsiApi) BulkUpload() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var body types.BulkUploadRequest
		if !decodeBody(w, req, &body) {
			return
		}
		applicants := a.samples.BulkUpload
		if len(body.Applicants) > 0 {
			applicants = body.Applicants
		}
		a.run(w, req, func(ctx context.Context) (string, error) {
			return a.ops.BulkUpload(ctx, applicants)
		})
	}
}

func (a *UsiApi) BulkUploadRetrieve() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		receipt := chi.URLParam(req, "receipt")
		a.run(w, req, func(ctx context.Context) (string, error) {
			return a.ops.BulkUploadRetrieve(ctx, receipt)
		})
	}
}

func (a *UsiApi) BulkVerify() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var body types.BulkVerifyRequest
		if !decodeBody(w, req, &body) {
			return
		}
		records := a.samples.BulkVerify
		switch {
		case body.Large:
			records = a.samples.LargeVerifications()
		case len(body.Records) > 0:
			records = body.Records
		}
		a.run(w, req, func(ctx context.Context) (string, error) {
			return a.ops.BulkVerify(ctx, records)
		})
	}
}

func (a *UsiApi) UpdateContactDetails() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var body types.ContactDetailsRequest
		if !decodeBody(w, req, &body) {
			return
		}
		contact := a.samples.ContactDetails
		if body.Contact != nil {
			contact = *body.Contact
		}
		usiValue := chi.URLParam(req, "usi")
		a.run(w, req, func(ctx context.Context) (string, error) {
			return a.ops.UpdateContactDetails(ctx, usiValue, contact.Details())
		})
	}
}

func (a *UsiApi) DocumentTypes() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		a.run(w, req, a.ops.GetNonDvsDocumentTypes)
	}
}

func (a *UsiApi) run(w http.ResponseWriter, req *http.Request, fn func(ctx context.Context) (string, error)) {
	a.mu.Lock()
	result, err := fn(req.Context())
	a.mu.Unlock()

	if err != nil {
		var invalid *operations.ValidationError
		if errors.As(err, &invalid) {
			failOnBadRequest(w, "Invalid request", err)
			return
		}
		failOnDependencyError(w, "Operation failed", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(types.OperationResult{Result: result})
}

// decodeBody reads an optional JSON body into v. An empty body leaves v
// untouched.
func decodeBody(w http.ResponseWriter, req *http.Request, v interface{}) bool {
	if req.Body == nil {
		return true
	}
	defer req.Body.Close()

	err := json.NewDecoder(req.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}

	failOnBadRequest(w, "Failed to parse request body", err)
	return false
}

func failOnBadRequest(w http.ResponseWriter, errMsg string, err error) {
	l.Log.WithFields(logrus.Fields{"error": err}).Info(errMsg)
	gatewayFailure.WithLabelValues(strconv.Itoa(http.StatusBadRequest)).Inc()

	response := types.RequestErrorResponse{
		Error: types.RequestErrorDetails{
			Status:  http.StatusBadRequest,
			Message: errMsg + ": " + err.Error(),
		},
	}

	responseJson, _ := json.Marshal(response)
	http.Error(w, string(responseJson), http.StatusBadRequest)
}

func failOnDependencyError(w http.ResponseWriter, errMsg string, err error) {
	sentry.CaptureException(err)
	l.Log.WithFields(logrus.Fields{"error": err}).Error(errMsg)
	gatewayFailure.WithLabelValues(strconv.Itoa(http.StatusBadGateway)).Inc()

	service := usiServiceName
	var auth *sts.AuthenticationError
	if errors.As(err, &auth) {
		service = stsServiceName
	}

	endpoint := ""
	var chErr *channel.Error
	if errors.As(err, &chErr) {
		endpoint = chErr.Endpoint
	}

	response := types.DependencyErrorResponse{
		Error: types.DependencyErrorDetails{
			DependencyFailure: true,
			Service:           service,
			Status:            http.StatusBadGateway,
			Endpoint:          endpoint,
			Message:           errMsg + ": " + err.Error(),
		},
	}

	responseJson, _ := json.Marshal(response)
	http.Error(w, string(responseJson), http.StatusBadGateway)
}
