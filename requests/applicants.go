package requests

import (
	"github.com/usi-samples/usi-client-go/usi"
)

// Applicant is the input for one application: a person with a national
// address and an identity document.
type Applicant struct {
	FirstName   string       `yaml:"firstName" json:"first_name"`
	FamilyName  string       `yaml:"familyName" json:"family_name"`
	DateOfBirth usi.Date     `yaml:"dateOfBirth" json:"date_of_birth"`
	Gender      usi.Gender   `yaml:"gender" json:"gender"`
	Email       string       `yaml:"email" json:"email"`
	Phone       string       `yaml:"phone" json:"phone"`
	Address     string       `yaml:"address" json:"address"`
	PostCode    string       `yaml:"postCode" json:"post_code"`
	State       usi.State    `yaml:"state" json:"state"`
	Suburb      string       `yaml:"suburb" json:"suburb"`
	Document    DocumentSpec `yaml:"document" json:"document"`
}

// VerificationSpec is the input for one bulk verify record.
type VerificationSpec struct {
	RecordId    int      `yaml:"recordId" json:"record_id"`
	USI         string   `yaml:"usi" json:"usi"`
	FirstName   string   `yaml:"firstName" json:"first_name"`
	FamilyName  string   `yaml:"familyName" json:"family_name"`
	DateOfBirth usi.Date `yaml:"dateOfBirth" json:"date_of_birth"`
}

// Application builds an application for a. The residence and birth country
// are Australia, the suburb doubles as the town of birth and the phone is
// the home number. A DVS check is always requested.
func (f *Factory) Application(a Applicant) (usi.Application, error) {
	doc, err := f.Document(a.Document)
	if err != nil {
		return usi.Application{}, err
	}

	return usi.Application{
		UserReference:    UserReference,
		ApplicationId:    f.applicationId(),
		DVSCheckRequired: true,
		DVSDocument:      usi.DVSDocument{Document: doc},
		PersonalDetails: usi.PersonalDetails{
			Names: usi.Names{
				{Kind: usi.FirstName, Value: a.FirstName},
				{Kind: usi.FamilyName, Value: a.FamilyName},
			},
			DateOfBirth:        a.DateOfBirth,
			Gender:             a.Gender,
			TownCityOfBirth:    a.Suburb,
			CountryOfBirthCode: CountryAustralia,
		},
		ContactDetails: usi.ContactDetails{
			CountryOfResidenceCode: CountryAustralia,
			NationalAddress: &usi.NationalAddress{
				Address1:       a.Address,
				PostCode:       a.PostCode,
				State:          a.State,
				SuburbTownCity: a.Suburb,
			},
			Phone:        &usi.Phone{Home: a.Phone},
			EmailAddress: a.Email,
		},
	}, nil
}

// Applications builds one application per applicant, in order.
func (f *Factory) Applications(applicants []Applicant) ([]usi.Application, error) {
	apps := make([]usi.Application, 0, len(applicants))
	for _, a := range applicants {
		app, err := f.Application(a)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, nil
}

// Verification builds a verify record checking the first and family name.
func (f *Factory) Verification(v VerificationSpec) usi.Verification {
	return usi.Verification{
		RecordId: v.RecordId,
		USI:      v.USI,
		Names: usi.VerifyNames{
			{Kind: usi.VerifyFirstName, Value: v.FirstName},
			{Kind: usi.VerifyFamilyName, Value: v.FamilyName},
		},
		DateOfBirth: v.DateOfBirth,
	}
}

func (f *Factory) Verifications(specs []VerificationSpec) []usi.Verification {
	out := make([]usi.Verification, 0, len(specs))
	for _, v := range specs {
		out = append(out, f.Verification(v))
	}
	return out
}
