// Package usi mirrors the USI service data contract: applications, identity
// documents, verification records and the request/response messages of the
// IUSIService operations.
package usi

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"
)

// Namespace is the target namespace of the USI service messages.
const Namespace = "http://usi.gov.au/2022/ws"

// XSINamespace is the XML Schema instance namespace used for xsi:type.
const XSINamespace = "http://www.w3.org/2001/XMLSchema-instance"

// DateLayout is the xs:date layout.
const DateLayout = "2006-01-02"

type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderX      Gender = "X"
)

type State string

const (
	StateACT State = "ACT"
	StateNSW State = "NSW"
	StateNT  State = "NT"
	StateQLD State = "QLD"
	StateSA  State = "SA"
	StateTAS State = "TAS"
	StateVIC State = "VIC"
	StateWA  State = "WA"
	StateOVS State = "OVS"
)

// ResultCode is the outcome of an application. MatchFound means the
// application was rejected as a duplicate of an existing identity.
type ResultCode string

const (
	ResultSuccess    ResultCode = "Success"
	ResultMatchFound ResultCode = "MatchFound"
	ResultFailure    ResultCode = "Failure"
)

type UpdateResult string

const (
	UpdateSuccess UpdateResult = "Success"
	UpdateFailure UpdateResult = "Failure"
)

type USIStatus string

const (
	USIStatusValid       USIStatus = "Valid"
	USIStatusInvalid     USIStatus = "Invalid"
	USIStatusDeactivated USIStatus = "Deactivated"
)

type MatchResult string

const (
	Match   MatchResult = "Match"
	NoMatch MatchResult = "NoMatch"
)

type CardColour string

const (
	CardGreen  CardColour = "Green"
	CardBlue   CardColour = "Blue"
	CardYellow CardColour = "Yellow"
)

// Date is an xs:date value.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current date in the local time zone.
func Today() Date {
	y, m, d := time.Now().Date()
	return NewDate(y, m, d)
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.Format(DateLayout)), nil
}

// UnmarshalText accepts both xs:date and the xs:dateTime form the service
// sometimes returns for dates.
func (d *Date) UnmarshalText(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" {
		d.Time = time.Time{}
		return nil
	}

	if t, err := time.Parse(DateLayout, s); err == nil {
		d.Time = t
		return nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	return d.UnmarshalText([]byte(strings.Trim(string(b), `"`)))
}

// ErrorInfo is the service's error record, used both in result error lists
// and as fault detail.
type ErrorInfo struct {
	XMLName xml.Name `xml:"ErrorInfo" json:"-"`
	Code    string   `xml:"Code" json:"code"`
	Message string   `xml:"Message" json:"message"`
}

// ErrorMessages returns the messages of errs in order.
func ErrorMessages(errs []ErrorInfo) []string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}
	return msgs
}

type PersonalDetails struct {
	Names              Names  `xml:"Names" json:"names"`
	DateOfBirth        Date   `xml:"DateOfBirth" json:"date_of_birth"`
	Gender             Gender `xml:"Gender" json:"gender"`
	TownCityOfBirth    string `xml:"TownCityOfBirth,omitempty" json:"town_city_of_birth,omitempty"`
	CountryOfBirthCode string `xml:"CountryOfBirthCode,omitempty" json:"country_of_birth_code,omitempty"`
}

type NationalAddress struct {
	Address1       string `xml:"Address1" json:"address1"`
	Address2       string `xml:"Address2,omitempty" json:"address2,omitempty"`
	SuburbTownCity string `xml:"SuburbTownCity" json:"suburb_town_city"`
	State          State  `xml:"State" json:"state"`
	PostCode       string `xml:"PostCode" json:"post_code"`
}

type InternationalAddress struct {
	Address     string `xml:"Address" json:"address"`
	CountryCode string `xml:"CountryCode" json:"country_code"`
}

type Phone struct {
	Home   string `xml:"Home,omitempty" json:"home,omitempty"`
	Mobile string `xml:"Mobile,omitempty" json:"mobile,omitempty"`
	Work   string `xml:"Work,omitempty" json:"work,omitempty"`
}

// ContactDetails carries exactly one of NationalAddress or
// InternationalAddress.
type ContactDetails struct {
	CountryOfResidenceCode string                `xml:"CountryOfResidenceCode,omitempty" json:"country_of_residence_code,omitempty"`
	NationalAddress        *NationalAddress      `xml:"NationalAddress,omitempty" json:"national_address,omitempty"`
	InternationalAddress   *InternationalAddress `xml:"InternationalAddress,omitempty" json:"international_address,omitempty"`
	Phone                  *Phone                `xml:"Phone,omitempty" json:"phone,omitempty"`
	EmailAddress           string                `xml:"EmailAddress,omitempty" json:"email_address,omitempty"`
}

// Validate checks the address choice.
func (c ContactDetails) Validate() error {
	if c.NationalAddress != nil && c.InternationalAddress != nil {
		return fmt.Errorf("contact details carry both a national and an international address")
	}
	return nil
}

// Application is one USI application.
type Application struct {
	UserReference    string          `xml:"UserReference,omitempty"`
	ApplicationId    string          `xml:"ApplicationId"`
	DVSCheckRequired bool            `xml:"DVSCheckRequired"`
	DVSDocument      DVSDocument     `xml:"DVSDocument"`
	PersonalDetails  PersonalDetails `xml:"PersonalDetails"`
	ContactDetails   ContactDetails  `xml:"ContactDetails"`
}

// Validate checks the application invariants that the service would
// otherwise reject after a round trip.
func (a Application) Validate() error {
	if a.ApplicationId == "" {
		return fmt.Errorf("application has no id")
	}
	if a.DVSCheckRequired && a.DVSDocument.Document == nil {
		return fmt.Errorf("application %s requires a DVS check but carries no identity document", a.ApplicationId)
	}
	if len(a.PersonalDetails.Names) == 0 {
		return fmt.Errorf("application %s has no names", a.ApplicationId)
	}
	return a.ContactDetails.Validate()
}

// Verification is one record of a bulk verify request.
type Verification struct {
	RecordId    int         `xml:"RecordId"`
	USI         string      `xml:"USI"`
	Names       VerifyNames `xml:"Names"`
	DateOfBirth Date        `xml:"DateOfBirth"`
}

// ApplicationResponse is the per-application result of CreateUSI and
// BulkUploadRetrieve.
type ApplicationResponse struct {
	ApplicationId            string      `xml:"ApplicationId" json:"application_id"`
	Result                   ResultCode  `xml:"Result" json:"result"`
	USI                      *string     `xml:"USI" json:"usi,omitempty"`
	IdentityDocumentVerified bool        `xml:"IdentityDocumentVerified" json:"identity_document_verified"`
	Errors                   []ErrorInfo `xml:"Errors>ErrorInfo" json:"errors,omitempty"`
}

// IssuedUSI returns the USI and whether the service returned one. A nil or
// empty element both count as null.
func (r ApplicationResponse) IssuedUSI() (string, bool) {
	if r.USI == nil || *r.USI == "" {
		return "", false
	}
	return *r.USI, true
}

// MatchItem is one dynamically named match result of a verification, for
// example <FamilyName>Match</FamilyName>.
type MatchItem struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

func (m MatchItem) Name() string {
	return m.XMLName.Local
}

// VerificationResponse is the per-record result of BulkVerifyUSI.
type VerificationResponse struct {
	RecordId    int         `xml:"RecordId"`
	USI         string      `xml:"USI"`
	USIStatus   USIStatus   `xml:"USIStatus"`
	DateOfBirth MatchResult `xml:"DateOfBirth"`
	Items       []MatchItem `xml:",any"`
}

type NonDvsDocumentType struct {
	Id           int    `xml:"Id" json:"id"`
	DocumentType string `xml:"DocumentType" json:"document_type"`
	SortOrder    int    `xml:"SortOrder" json:"sort_order"`
}
