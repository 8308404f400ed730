package usi

import "context"

// Operation names of the IUSIService contract.
const (
	OpCreateUSI               = "CreateUSI"
	OpVerifyUSI               = "VerifyUSI"
	OpBulkUpload              = "BulkUpload"
	OpBulkUploadRetrieve      = "BulkUploadRetrieve"
	OpBulkVerifyUSI           = "BulkVerifyUSI"
	OpUpdateUSIContactDetails = "UpdateUSIContactDetails"
	OpGetNonDvsDocumentTypes  = "GetNonDvsDocumentTypes"
)

// Action returns the SOAP action URI of an operation.
func Action(operation string) string {
	return Namespace + "/IUSIService/" + operation
}

// Service is the IUSIService contract. Implementations return a *soap.Fault
// for service faults.
type Service interface {
	CreateUSI(ctx context.Context, req *CreateUSIRequest) (*CreateUSIResponse, error)
	VerifyUSI(ctx context.Context, req *VerifyUSIRequest) (*VerifyUSIResponse, error)
	BulkUpload(ctx context.Context, req *BulkUploadRequest) (*BulkUploadResponse, error)
	BulkUploadRetrieve(ctx context.Context, req *BulkUploadRetrieveRequest) (*BulkUploadRetrieveResponse, error)
	BulkVerifyUSI(ctx context.Context, req *BulkVerifyUSIRequest) (*BulkVerifyUSIResponse, error)
	UpdateUSIContactDetails(ctx context.Context, req *UpdateUSIContactDetailsRequest) (*UpdateUSIContactDetailsResponse, error)
	GetNonDvsDocumentTypes(ctx context.Context, req *GetNonDvsDocumentTypesRequest) (*GetNonDvsDocumentTypesResponse, error)
}
