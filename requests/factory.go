// Package requests builds well-formed request messages for the USI service
// operations, and the sample identity documents accepted by the DVS test
// service.
package requests

import (
	"fmt"
	"math/rand"
	"strconv"
	"sync"

	"github.com/usi-samples/usi-client-go/usi"
)

const (
	// UserReference tags every request made by this client.
	UserReference = "CalledBySample"

	// CountryAustralia is the SACC code used for residence and birth.
	CountryAustralia = "1101"
)

// Factory stamps requests with the organisation code and random request and
// application ids.
type Factory struct {
	orgCode string
	today   func() usi.Date

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewFactory returns a factory for orgCode drawing ids from src.
func NewFactory(orgCode string, src rand.Source) *Factory {
	return &Factory{
		orgCode: orgCode,
		today:   usi.Today,
		rnd:     rand.New(src),
	}
}

// OrgCode returns the organisation code stamped on requests.
func (f *Factory) OrgCode() string {
	return f.orgCode
}

// between returns a random number in [lo, hi).
func (f *Factory) between(lo, hi int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return strconv.Itoa(lo + f.rnd.Intn(hi-lo))
}

func (f *Factory) requestId() string {
	return f.between(100000000, 999999999)
}

func (f *Factory) applicationId() string {
	return f.between(100000, 999999)
}

func (f *Factory) CreateUSIRequest(app usi.Application) *usi.CreateUSIRequest {
	return &usi.CreateUSIRequest{
		OrgCode:     f.orgCode,
		RequestId:   f.requestId(),
		Application: app,
	}
}

// BulkUploadRequest wraps apps. There is no client-side limit on their
// number.
func (f *Factory) BulkUploadRequest(apps []usi.Application) *usi.BulkUploadRequest {
	return &usi.BulkUploadRequest{
		OrgCode:          f.orgCode,
		RequestId:        f.requestId(),
		NoOfApplications: len(apps),
		Applications:     apps,
	}
}

func (f *Factory) BulkVerifyRequest(verifications []usi.Verification) *usi.BulkVerifyUSIRequest {
	return &usi.BulkVerifyUSIRequest{
		OrgCode:           f.orgCode,
		NoOfVerifications: len(verifications),
		Verifications:     verifications,
	}
}

func (f *Factory) BulkUploadRetrieveRequest(receiptNumber string) *usi.BulkUploadRetrieveRequest {
	return &usi.BulkUploadRetrieveRequest{
		OrgCode:       f.orgCode,
		ReceiptNumber: receiptNumber,
	}
}

// VerifyUSIRequest checks usiValue against the personal details submitted
// in create.
func (f *Factory) VerifyUSIRequest(create *usi.CreateUSIRequest, usiValue string) (*usi.VerifyUSIRequest, error) {
	details := create.Application.PersonalDetails

	names, err := details.Names.ForVerify()
	if err != nil {
		return nil, fmt.Errorf("unable to build verify request for application %s [%w]", create.Application.ApplicationId, err)
	}

	return &usi.VerifyUSIRequest{
		OrgCode:     create.OrgCode,
		USI:         usiValue,
		Names:       names,
		DateOfBirth: details.DateOfBirth,
	}, nil
}

func (f *Factory) UpdateContactDetailsRequest(usiValue string, contact usi.ContactDetails) *usi.UpdateUSIContactDetailsRequest {
	return &usi.UpdateUSIContactDetailsRequest{
		OrgCode:              f.orgCode,
		UserReference:        UserReference,
		USI:                  usiValue,
		ContactDetailsUpdate: contact,
	}
}

func (f *Factory) GetNonDvsDocumentTypesRequest() *usi.GetNonDvsDocumentTypesRequest {
	return &usi.GetNonDvsDocumentTypesRequest{OrgCode: f.orgCode}
}
