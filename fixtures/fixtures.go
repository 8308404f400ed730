// Package fixtures holds the sample applicants, verification records and
// contact details the client submits. The embedded defaults can be replaced
// by a file of the same shape.
package fixtures

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/usi-samples/usi-client-go/requests"
	"github.com/usi-samples/usi-client-go/usi"
	"gopkg.in/yaml.v3"
)

//go:embed samples.yml
var defaultSamples []byte

// Samples is the full sample set.
type Samples struct {
	CreateAndVerify requests.Applicant          `yaml:"createAndVerify"`
	Create          requests.Applicant          `yaml:"create"`
	BulkUpload      []requests.Applicant        `yaml:"bulkUpload"`
	BulkVerify      []requests.VerificationSpec `yaml:"bulkVerify"`
	LargeVerify     LargeVerify                 `yaml:"largeVerify"`
	ContactDetails  Contact                     `yaml:"contactDetails"`
}

// LargeVerify repeats Record Count times.
type LargeVerify struct {
	Count  int                       `yaml:"count"`
	Record requests.VerificationSpec `yaml:"record"`
}

// Contact is a contact details update with a national address.
type Contact struct {
	CountryOfResidenceCode string    `yaml:"countryOfResidenceCode" json:"country_of_residence_code"`
	Email                  string    `yaml:"email" json:"email"`
	Home                   string    `yaml:"home,omitempty" json:"home,omitempty"`
	Mobile                 string    `yaml:"mobile,omitempty" json:"mobile,omitempty"`
	Address                string    `yaml:"address" json:"address"`
	PostCode               string    `yaml:"postCode" json:"post_code"`
	State                  usi.State `yaml:"state" json:"state"`
	Suburb                 string    `yaml:"suburb" json:"suburb"`
}

// Details converts c to the service representation.
func (c Contact) Details() usi.ContactDetails {
	details := usi.ContactDetails{
		CountryOfResidenceCode: c.CountryOfResidenceCode,
		EmailAddress:           c.Email,
		NationalAddress: &usi.NationalAddress{
			Address1:       c.Address,
			PostCode:       c.PostCode,
			State:          c.State,
			SuburbTownCity: c.Suburb,
		},
	}
	if c.Home != "" || c.Mobile != "" {
		details.Phone = &usi.Phone{Home: c.Home, Mobile: c.Mobile}
	}
	return details
}

// DefaultSamples returns the embedded samples.
func DefaultSamples() (*Samples, error) {
	return Parse(defaultSamples)
}

// Load reads samples from path, or the embedded defaults when path is
// empty.
func Load(path string) (*Samples, error) {
	if path == "" {
		return DefaultSamples()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read fixtures file %q: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes a samples document.
func Parse(raw []byte) (*Samples, error) {
	var s Samples
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("unable to parse fixtures: %w", err)
	}
	return &s, nil
}

// LargeVerifications expands the large verify sample.
func (s *Samples) LargeVerifications() []requests.VerificationSpec {
	return Repeat(s.LargeVerify.Record, s.LargeVerify.Count)
}

// Repeat returns n copies of record numbered from 1.
func Repeat(record requests.VerificationSpec, n int) []requests.VerificationSpec {
	out := make([]requests.VerificationSpec, 0, n)
	for i := 0; i < n; i++ {
		r := record
		r.RecordId = i + 1
		out = append(out, r)
	}
	return out
}
