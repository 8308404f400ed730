package usi

import "encoding/xml"

type CreateUSIRequest struct {
	XMLName     xml.Name    `xml:"http://usi.gov.au/2022/ws CreateUSI"`
	OrgCode     string      `xml:"OrgCode"`
	RequestId   string      `xml:"RequestId"`
	Application Application `xml:"Application"`
}

type CreateUSIResponse struct {
	XMLName     xml.Name            `xml:"CreateUSIResponse"`
	Application ApplicationResponse `xml:"Application"`
}

type VerifyUSIRequest struct {
	XMLName     xml.Name    `xml:"http://usi.gov.au/2022/ws VerifyUSI"`
	OrgCode     string      `xml:"OrgCode"`
	USI         string      `xml:"USI"`
	Names       VerifyNames `xml:"Names"`
	DateOfBirth Date        `xml:"DateOfBirth"`
}

type VerifyUSIResponse struct {
	XMLName     xml.Name    `xml:"VerifyUSIResponse"`
	USIStatus   USIStatus   `xml:"USIStatus"`
	DateOfBirth MatchResult `xml:"DateOfBirth"`
	Items       []MatchItem `xml:",any"`
}

type BulkUploadRequest struct {
	XMLName          xml.Name      `xml:"http://usi.gov.au/2022/ws BulkUpload"`
	OrgCode          string        `xml:"OrgCode"`
	RequestId        string        `xml:"RequestId"`
	NoOfApplications int           `xml:"NoOfApplications"`
	Applications     []Application `xml:"Applications>Application"`
}

type BulkUploadResponse struct {
	XMLName       xml.Name `xml:"BulkUploadResponse"`
	ReceiptNumber string   `xml:"ReceiptNumber"`
}

type BulkUploadRetrieveRequest struct {
	XMLName       xml.Name `xml:"http://usi.gov.au/2022/ws BulkUploadRetrieve"`
	OrgCode       string   `xml:"OrgCode,omitempty"`
	ReceiptNumber string   `xml:"ReceiptNumber"`
}

type BulkUploadRetrieveResponse struct {
	XMLName      xml.Name              `xml:"BulkUploadRetrieveResponse"`
	Applications []ApplicationResponse `xml:"Applications>Application"`
}

type BulkVerifyUSIRequest struct {
	XMLName           xml.Name       `xml:"http://usi.gov.au/2022/ws BulkVerifyUSI"`
	OrgCode           string         `xml:"OrgCode"`
	NoOfVerifications int            `xml:"NoOfVerifications"`
	Verifications     []Verification `xml:"Verifications>Verification"`
}

type BulkVerifyUSIResponse struct {
	XMLName               xml.Name               `xml:"BulkVerifyUSIResponse"`
	VerificationResponses []VerificationResponse `xml:"VerificationResponses>VerificationResponse"`
}

type UpdateUSIContactDetailsRequest struct {
	XMLName              xml.Name       `xml:"http://usi.gov.au/2022/ws UpdateUSIContactDetails"`
	OrgCode              string         `xml:"OrgCode"`
	UserReference        string         `xml:"UserReference,omitempty"`
	USI                  string         `xml:"USI"`
	ContactDetailsUpdate ContactDetails `xml:"ContactDetailsUpdate"`
}

type UpdateUSIContactDetailsResponse struct {
	XMLName xml.Name     `xml:"UpdateUSIContactDetailsResponse"`
	Result  UpdateResult `xml:"Result"`
	Errors  []ErrorInfo  `xml:"Errors>ErrorInfo"`
}

type GetNonDvsDocumentTypesRequest struct {
	XMLName xml.Name `xml:"http://usi.gov.au/2022/ws GetNonDvsDocumentTypes"`
	OrgCode string   `xml:"OrgCode"`
}

type GetNonDvsDocumentTypesResponse struct {
	XMLName             xml.Name             `xml:"GetNonDvsDocumentTypesResponse"`
	NonDvsDocumentTypes []NonDvsDocumentType `xml:"NonDvsDocumentTypes>NonDvsDocumentType"`
}
