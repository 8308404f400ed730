package operations

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/usi-samples/usi-client-go/requests"
	"github.com/usi-samples/usi-client-go/usi"
)

// usiLength is the length of a USI.
const usiLength = 10

const faultMarker = " returned a fault\n"

func faultResult(result string) bool {
	return strings.Contains(result, faultMarker)
}

func (r *Runner) application(a requests.Applicant) (usi.Application, error) {
	app, err := r.requests.Application(a)
	if err != nil {
		return usi.Application{}, &ValidationError{Field: "document", Message: err.Error()}
	}
	if err := app.Validate(); err != nil {
		return usi.Application{}, &ValidationError{Field: "application", Message: err.Error()}
	}
	return app, nil
}

func (r *Runner) submitted(resp usi.ApplicationResponse, withUSI bool) {
	if withUSI {
		value, _ := resp.IssuedUSI()
		fmt.Fprintf(r.out, "Application submitted with result: %s Usi: %s\n", resp.Result, value)
	} else {
		fmt.Fprintf(r.out, "Application submitted with result: %s\n", resp.Result)
	}
	for _, msg := range usi.ErrorMessages(resp.Errors) {
		fmt.Fprintln(r.out, msg)
	}
}

// CreateUSI submits one application and decodes the result.
func (r *Runner) CreateUSI(ctx context.Context, a requests.Applicant) (string, error) {
	app, err := r.application(a)
	if err != nil {
		return "", reject(usi.OpCreateUSI, err)
	}
	req := r.requests.CreateUSIRequest(app)

	return r.call(ctx, usi.OpCreateUSI, func(ctx context.Context, ch Channel) (string, error) {
		resp, err := ch.CreateUSI(ctx, req)
		if fault, ok := typedFault(err); ok {
			return FaultReport(usi.OpCreateUSI, fault, true), nil
		}
		if err != nil {
			return "", err
		}

		r.submitted(resp.Application, true)
		return DecodeApplication(resp.Application), nil
	})
}

// CreateAndVerifyUSI submits one application and, unless it failed,
// verifies the USI it was given on the same channel.
func (r *Runner) CreateAndVerifyUSI(ctx context.Context, a requests.Applicant) (string, error) {
	app, err := r.application(a)
	if err != nil {
		return "", reject(usi.OpCreateUSI, err)
	}
	create := r.requests.CreateUSIRequest(app)

	return r.call(ctx, usi.OpCreateUSI, func(ctx context.Context, ch Channel) (string, error) {
		resp, err := ch.CreateUSI(ctx, create)
		if fault, ok := typedFault(err); ok {
			return FaultReport(usi.OpCreateUSI, fault, true), nil
		}
		if err != nil {
			return "", err
		}

		r.submitted(resp.Application, false)

		if resp.Application.Result == usi.ResultFailure {
			return "Cannot make Verify call for an unsuccessful USI creation.", nil
		}

		issued, _ := resp.Application.IssuedUSI()
		verify, err := r.requests.VerifyUSIRequest(create, issued)
		if err != nil {
			return "", err
		}

		verified, err := ch.VerifyUSI(ctx, verify)
		if fault, ok := typedFault(err); ok {
			return FaultReport(usi.OpVerifyUSI, fault, false), nil
		}
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("USI %s verified with status %s", verify.USI, verified.USIStatus), nil
	})
}

// BulkUpload submits applications for asynchronous processing and returns
// the receipt number.
func (r *Runner) BulkUpload(ctx context.Context, applicants []requests.Applicant) (string, error) {
	apps := make([]usi.Application, 0, len(applicants))
	for _, a := range applicants {
		app, err := r.application(a)
		if err != nil {
			return "", reject(usi.OpBulkUpload, err)
		}
		apps = append(apps, app)
	}
	req := r.requests.BulkUploadRequest(apps)

	return r.call(ctx, usi.OpBulkUpload, func(ctx context.Context, ch Channel) (string, error) {
		resp, err := ch.BulkUpload(ctx, req)
		if fault, ok := typedFault(err); ok {
			return FaultReport(usi.OpBulkUpload, fault, false), nil
		}
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Succeeded with receipt number %s", resp.ReceiptNumber), nil
	})
}

// BulkUploadRetrieve fetches the results of a bulk upload.
func (r *Runner) BulkUploadRetrieve(ctx context.Context, receiptNumber string) (string, error) {
	receiptNumber = strings.TrimSpace(receiptNumber)
	if receiptNumber == "" {
		return "", reject(usi.OpBulkUploadRetrieve, &ValidationError{Field: "receipt", Message: "Could not read the receipt number"})
	}
	req := r.requests.BulkUploadRetrieveRequest(receiptNumber)

	return r.call(ctx, usi.OpBulkUploadRetrieve, func(ctx context.Context, ch Channel) (string, error) {
		resp, err := ch.BulkUploadRetrieve(ctx, req)
		if fault, ok := typedFault(err); ok {
			return FaultReport(usi.OpBulkUploadRetrieve, fault, false), nil
		}
		if err != nil {
			return "", err
		}

		blocks := make([]string, 0, len(resp.Applications))
		for _, app := range resp.Applications {
			blocks = append(blocks, DecodeApplication(app))
		}
		return strings.Join(blocks, blockSeparator), nil
	})
}

// BulkVerify verifies USIs against names and dates of birth.
func (r *Runner) BulkVerify(ctx context.Context, specs []requests.VerificationSpec) (string, error) {
	req := r.requests.BulkVerifyRequest(r.requests.Verifications(specs))

	return r.call(ctx, usi.OpBulkVerifyUSI, func(ctx context.Context, ch Channel) (string, error) {
		resp, err := ch.BulkVerifyUSI(ctx, req)
		if fault, ok := typedFault(err); ok {
			return FaultReport(usi.OpBulkVerifyUSI, fault, false), nil
		}
		if err != nil {
			return "", err
		}

		blocks := make([]string, 0, len(resp.VerificationResponses))
		for _, v := range resp.VerificationResponses {
			blocks = append(blocks, DecodeVerification(v))
		}
		return strings.Join(blocks, blockSeparator), nil
	})
}

// ValidateUSI checks a USI entered by the user and returns it trimmed.
func ValidateUSI(value string) (string, error) {
	if value == "" {
		return "", &ValidationError{Field: "usi", Message: "Could not read the USI"}
	}
	value = strings.TrimSpace(value)
	if utf8.RuneCountInString(value) != usiLength {
		return "", &ValidationError{Field: "usi", Message: "USI should be 10 characters long"}
	}
	return value, nil
}

// UpdateContactDetails replaces the contact details held for a USI.
func (r *Runner) UpdateContactDetails(ctx context.Context, usiValue string, contact usi.ContactDetails) (string, error) {
	usiValue, err := ValidateUSI(usiValue)
	if err != nil {
		return "", reject(usi.OpUpdateUSIContactDetails, err)
	}
	if err := contact.Validate(); err != nil {
		return "", reject(usi.OpUpdateUSIContactDetails, &ValidationError{Field: "contact", Message: err.Error()})
	}
	req := r.requests.UpdateContactDetailsRequest(usiValue, contact)

	return r.call(ctx, usi.OpUpdateUSIContactDetails, func(ctx context.Context, ch Channel) (string, error) {
		resp, err := ch.UpdateUSIContactDetails(ctx, req)
		if fault, ok := typedFault(err); ok {
			return FaultReport(usi.OpUpdateUSIContactDetails, fault, false), nil
		}
		if err != nil {
			return "", err
		}

		if resp.Result == usi.UpdateFailure {
			return fmt.Sprintf("Update contact details failed. Reason: %s", strings.Join(usi.ErrorMessages(resp.Errors), ". ")), nil
		}
		return "Successfully updated contact details", nil
	})
}

// GetNonDvsDocumentTypes lists the identity document types the service
// accepts without a DVS check.
func (r *Runner) GetNonDvsDocumentTypes(ctx context.Context) (string, error) {
	req := r.requests.GetNonDvsDocumentTypesRequest()

	return r.call(ctx, usi.OpGetNonDvsDocumentTypes, func(ctx context.Context, ch Channel) (string, error) {
		resp, err := ch.GetNonDvsDocumentTypes(ctx, req)
		if fault, ok := typedFault(err); ok {
			return FaultReport(usi.OpGetNonDvsDocumentTypes, fault, false), nil
		}
		if err != nil {
			return "", err
		}
		return DecodeDocumentTypes(resp.NonDvsDocumentTypes), nil
	})
}
