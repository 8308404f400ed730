package usi

import (
	"encoding/xml"
	"fmt"
)

// DocumentKind identifies the identity document variant carried by an
// application.
type DocumentKind int

const (
	BirthCertificateDocument DocumentKind = iota + 1
	CitizenshipCertificateDocument
	DescentDocument
	VisaDocument
	PassportDocument
	ImmiCardDocument
	MedicareDocument
	DriversLicenceDocument
)

var documentTypeNames = map[DocumentKind]string{
	BirthCertificateDocument:       "BirthCertificateDocumentType",
	CitizenshipCertificateDocument: "CitizenshipCertificateDocumentType",
	DescentDocument:                "CertificateOfRegistrationByDescentDocumentType",
	VisaDocument:                   "VisaDocumentType",
	PassportDocument:               "PassportDocumentType",
	ImmiCardDocument:               "ImmiCardDocumentType",
	MedicareDocument:               "MedicareDocumentType",
	DriversLicenceDocument:         "DriversLicenceDocumentType",
}

// TypeName is the schema type written as xsi:type.
func (k DocumentKind) TypeName() string {
	return documentTypeNames[k]
}

func (k DocumentKind) String() string {
	if name, ok := documentTypeNames[k]; ok {
		return name
	}
	return fmt.Sprintf("DocumentKind(%d)", int(k))
}

// Document is an identity document. The set of implementations is closed to
// the variants in this package.
type Document interface {
	Kind() DocumentKind
	isDocument()
}

type BirthCertificate struct {
	RegistrationNumber string `xml:"RegistrationNumber"`
	RegistrationState  State  `xml:"RegistrationState"`
	RegistrationDate   *Date  `xml:"RegistrationDate,omitempty"`
	RegistrationYear   string `xml:"RegistrationYear,omitempty"`
	DatePrinted        *Date  `xml:"DatePrinted,omitempty"`
	CertificateNumber  string `xml:"CertificateNumber,omitempty"`
}

type CitizenshipCertificate struct {
	AcquisitionDate Date   `xml:"AcquisitionDate"`
	StockNumber     string `xml:"StockNumber"`
}

type CertificateOfRegistrationByDescent struct {
	AcquisitionDate Date `xml:"AcquisitionDate"`
}

type Visa struct {
	PassportNumber string `xml:"PassportNumber"`
	CountryOfIssue string `xml:"CountryOfIssue,omitempty"`
}

type Passport struct {
	DocumentNumber string `xml:"DocumentNumber"`
}

type ImmiCard struct {
	ImmiCardNumber string `xml:"ImmiCardNumber"`
}

// Medicare carries the card holder's name over up to four lines of 27, 25,
// 23 and 21 characters.
type Medicare struct {
	MedicareCardNumber  string     `xml:"MedicareCardNumber"`
	IndividualRefNumber string     `xml:"IndividualRefNumber"`
	NameLine1           string     `xml:"NameLine1"`
	NameLine2           string     `xml:"NameLine2,omitempty"`
	NameLine3           string     `xml:"NameLine3,omitempty"`
	NameLine4           string     `xml:"NameLine4,omitempty"`
	CardColour          CardColour `xml:"CardColour"`
	ExpiryDate          string     `xml:"ExpiryDate"`
}

type DriversLicence struct {
	LicenceNumber string `xml:"LicenceNumber"`
	State         State  `xml:"State"`
	CardNumber    string `xml:"CardNumber,omitempty"`
}

func (*BirthCertificate) Kind() DocumentKind                   { return BirthCertificateDocument }
func (*CitizenshipCertificate) Kind() DocumentKind             { return CitizenshipCertificateDocument }
func (*CertificateOfRegistrationByDescent) Kind() DocumentKind { return DescentDocument }
func (*Visa) Kind() DocumentKind                               { return VisaDocument }
func (*Passport) Kind() DocumentKind                           { return PassportDocument }
func (*ImmiCard) Kind() DocumentKind                           { return ImmiCardDocument }
func (*Medicare) Kind() DocumentKind                           { return MedicareDocument }
func (*DriversLicence) Kind() DocumentKind                     { return DriversLicenceDocument }

func (*BirthCertificate) isDocument()                   {}
func (*CitizenshipCertificate) isDocument()             {}
func (*CertificateOfRegistrationByDescent) isDocument() {}
func (*Visa) isDocument()                               {}
func (*Passport) isDocument()                           {}
func (*ImmiCard) isDocument()                           {}
func (*Medicare) isDocument()                           {}
func (*DriversLicence) isDocument()                     {}

// DVSDocument wraps the active document variant of an application.
type DVSDocument struct {
	Document Document
}

// MarshalXML writes the variant with its schema type as xsi:type. A nil
// document writes nothing.
func (d DVSDocument) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if d.Document == nil {
		return nil
	}

	var body interface{}
	switch d.Document.Kind() {
	case BirthCertificateDocument:
		body = d.Document.(*BirthCertificate)
	case CitizenshipCertificateDocument:
		body = d.Document.(*CitizenshipCertificate)
	case DescentDocument:
		body = d.Document.(*CertificateOfRegistrationByDescent)
	case VisaDocument:
		body = d.Document.(*Visa)
	case PassportDocument:
		body = d.Document.(*Passport)
	case ImmiCardDocument:
		body = d.Document.(*ImmiCard)
	case MedicareDocument:
		body = d.Document.(*Medicare)
	case DriversLicenceDocument:
		body = d.Document.(*DriversLicence)
	default:
		return fmt.Errorf("unsupported identity document %s", d.Document.Kind())
	}

	start.Attr = append(start.Attr,
		xml.Attr{Name: xml.Name{Local: "xmlns:xsi"}, Value: XSINamespace},
		xml.Attr{Name: xml.Name{Local: "xsi:type"}, Value: d.Document.Kind().TypeName()},
	)

	return e.EncodeElement(body, start)
}
