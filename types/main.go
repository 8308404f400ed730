package types

import (
	"github.com/usi-samples/usi-client-go/fixtures"
	"github.com/usi-samples/usi-client-go/requests"
)

// OperationResult is the response of every operation endpoint: the decoded
// text the menu would print.
type OperationResult struct {
	Result string `json:"result"`
}

// ApplicantRequest optionally replaces the sample applicant of create and
// verify.
type ApplicantRequest struct {
	Applicant *requests.Applicant `json:"applicant,omitempty"`
}

// BulkUploadRequest optionally replaces the sample bulk applications.
type BulkUploadRequest struct {
	Applicants []requests.Applicant `json:"applicants,omitempty"`
}

// BulkVerifyRequest optionally replaces the sample verification records.
// Large selects the large sample and ignores Records.
type BulkVerifyRequest struct {
	Records []requests.VerificationSpec `json:"records,omitempty"`
	Large   bool                        `json:"large,omitempty"`
}

// ContactDetailsRequest optionally replaces the sample contact details.
type ContactDetailsRequest struct {
	Contact *fixtures.Contact `json:"contact,omitempty"`
}

// StatusInfo is the body of the status endpoint.
type StatusInfo struct {
	Software string `json:"software"`
	Commit   string `json:"commit"`
}
