package requests

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/usi-samples/usi-client-go/usi"
)

// Document kinds accepted in a DocumentSpec.
const (
	KindBirthCertificate = "birth_certificate"
	KindCitizenship      = "citizenship"
	KindDescent          = "descent"
	KindVisa             = "visa"
	KindPassport         = "passport"
	KindImmiCard         = "immicard"
	KindMedicare         = "medicare"
	KindDriversLicence   = "drivers_licence"
)

// MedicareLineLengths are the maximum lengths of the four name lines of a
// Medicare card.
var MedicareLineLengths = []int{27, 25, 23, 21}

// DocumentSpec selects a sample document. Name is the card holder's name,
// used by Medicare only.
type DocumentSpec struct {
	Kind string `yaml:"kind" json:"kind"`
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
}

// Document returns the sample document named by spec.
func (f *Factory) Document(spec DocumentSpec) (usi.Document, error) {
	switch strings.ToLower(spec.Kind) {
	case KindBirthCertificate:
		return f.BirthCertificate(), nil
	case KindCitizenship:
		return f.Citizenship(), nil
	case KindDescent:
		return f.Descent(), nil
	case KindVisa:
		return f.Visa(), nil
	case KindPassport:
		return f.Passport(), nil
	case KindImmiCard:
		return f.ImmiCard(), nil
	case KindMedicare:
		return f.Medicare(spec.Name), nil
	case KindDriversLicence:
		return f.DriversLicence(), nil
	default:
		return nil, fmt.Errorf("unknown document kind %q", spec.Kind)
	}
}

// The values below pass the mock DVS check of the test environment.

func (f *Factory) BirthCertificate() *usi.BirthCertificate {
	today := f.today()
	return &usi.BirthCertificate{
		CertificateNumber:  "1111111",
		DatePrinted:        &today,
		RegistrationDate:   &today,
		RegistrationNumber: "1111111",
		RegistrationState:  usi.StateNSW,
		RegistrationYear:   strconv.Itoa(today.Year()),
	}
}

func (f *Factory) Citizenship() *usi.CitizenshipCertificate {
	return &usi.CitizenshipCertificate{
		AcquisitionDate: usi.NewDate(2010, time.January, 1),
		StockNumber:     "ACC111111",
	}
}

func (f *Factory) Descent() *usi.CertificateOfRegistrationByDescent {
	return &usi.CertificateOfRegistrationByDescent{
		AcquisitionDate: usi.NewDate(2013, time.January, 1),
	}
}

func (f *Factory) Visa() *usi.Visa {
	return &usi.Visa{PassportNumber: "111111"}
}

func (f *Factory) Passport() *usi.Passport {
	return &usi.Passport{DocumentNumber: "X1111111"}
}

func (f *Factory) ImmiCard() *usi.ImmiCard {
	return &usi.ImmiCard{ImmiCardNumber: "ABC111111"}
}

// Medicare spreads name over the card's name lines.
func (f *Factory) Medicare(name string) *usi.Medicare {
	lines := SplitToLengths(name, MedicareLineLengths...)
	return &usi.Medicare{
		NameLine1:           lines[0],
		NameLine2:           lines[1],
		NameLine3:           lines[2],
		NameLine4:           lines[3],
		CardColour:          usi.CardGreen,
		ExpiryDate:          "2015-12",
		IndividualRefNumber: "3",
		MedicareCardNumber:  "1111111111",
	}
}

func (f *Factory) DriversLicence() *usi.DriversLicence {
	return &usi.DriversLicence{
		LicenceNumber: "111111",
		State:         usi.StateNSW,
	}
}

// SplitToLengths cuts s into consecutive segments of at most the given
// lengths, counted in runes. Once s is used up the remaining segments are
// empty; text beyond the total length is dropped.
func SplitToLengths(s string, lengths ...int) []string {
	out := make([]string, len(lengths))
	remaining := []rune(s)

	for i, n := range lengths {
		if len(remaining) == 0 {
			break
		}
		if n < 0 {
			n = 0
		}
		if n > len(remaining) {
			n = len(remaining)
		}
		out[i] = string(remaining[:n])
		remaining = remaining[n:]
	}

	return out
}
