package requests

import (
	"math/rand"
	"strconv"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/usi-samples/usi-client-go/usi"
)

func applicant() Applicant {
	return Applicant{
		FirstName:   "App",
		FamilyName:  "Rohas",
		DateOfBirth: usi.NewDate(1977, time.June, 6),
		Gender:      usi.GenderFemale,
		Email:       "usi.sample.code+single18102020@gmail.com",
		Phone:       "0400000013",
		Address:     "62 Butter Street",
		PostCode:    "2600",
		State:       usi.StateACT,
		Suburb:      "Canberra",
		Document:    DocumentSpec{Kind: KindBirthCertificate},
	}
}

var _ = Describe("Factory", func() {
	var f *Factory

	BeforeEach(func() {
		f = NewFactory("0002", rand.NewSource(42))
		f.today = func() usi.Date { return usi.NewDate(2024, time.March, 1) }
	})

	It("should stamp create requests with the org code and a nine digit request id", func() {
		app, err := f.Application(applicant())
		Expect(err).ToNot(HaveOccurred())

		req := f.CreateUSIRequest(app)
		Expect(req.OrgCode).To(Equal("0002"))
		Expect(req.RequestId).To(MatchRegexp(`^[1-9][0-9]{8}$`))
		Expect(req.Application.ApplicationId).To(MatchRegexp(`^[1-9][0-9]{5}$`))
	})

	It("should fill the application defaults", func() {
		app, err := f.Application(applicant())
		Expect(err).ToNot(HaveOccurred())

		Expect(app.UserReference).To(Equal("CalledBySample"))
		Expect(app.DVSCheckRequired).To(BeTrue())
		Expect(app.PersonalDetails.CountryOfBirthCode).To(Equal("1101"))
		Expect(app.PersonalDetails.TownCityOfBirth).To(Equal("Canberra"))
		Expect(app.ContactDetails.CountryOfResidenceCode).To(Equal("1101"))
		Expect(app.ContactDetails.Phone.Home).To(Equal("0400000013"))
		Expect(app.ContactDetails.NationalAddress.SuburbTownCity).To(Equal("Canberra"))
		Expect(app.PersonalDetails.Names).To(Equal(usi.Names{{Kind: usi.FirstName, Value: "App"}, {Kind: usi.FamilyName, Value: "Rohas"}}))
		Expect(app.Validate()).To(Succeed())
	})

	It("should reject an unknown document kind", func() {
		a := applicant()
		a.Document.Kind = "library_card"
		_, err := f.Application(a)
		Expect(err).To(HaveOccurred())
	})

	It("should count bulk applications and verifications", func() {
		app, _ := f.Application(applicant())
		bulk := f.BulkUploadRequest([]usi.Application{app, app, app})
		Expect(bulk.NoOfApplications).To(Equal(3))

		verify := f.BulkVerifyRequest(f.Verifications([]VerificationSpec{
			{RecordId: 1, USI: "C2P5P4UBHP", FirstName: "Nicholas", FamilyName: "Koke", DateOfBirth: usi.NewDate(1990, time.July, 2)},
			{RecordId: 2, USI: "QS5Q8XWSUJ", FirstName: "Annie", FamilyName: "Angle", DateOfBirth: usi.NewDate(1981, time.September, 2)},
		}))
		Expect(verify.NoOfVerifications).To(Equal(2))
		Expect(verify.Verifications[1].Names[0]).To(Equal(usi.VerifyName{Kind: usi.VerifyFirstName, Value: "Annie"}))
	})

	It("should verify with the translated names of the create request", func() {
		app, _ := f.Application(applicant())
		create := f.CreateUSIRequest(app)

		verify, err := f.VerifyUSIRequest(create, "ABCDE12345")
		Expect(err).ToNot(HaveOccurred())
		Expect(verify.OrgCode).To(Equal("0002"))
		Expect(verify.USI).To(Equal("ABCDE12345"))
		Expect(verify.DateOfBirth).To(Equal(usi.NewDate(1977, time.June, 6)))
		Expect(verify.Names).To(Equal(usi.VerifyNames{{Kind: usi.VerifyFirstName, Value: "App"}, {Kind: usi.VerifyFamilyName, Value: "Rohas"}}))
	})

	It("should tag contact updates with the user reference", func() {
		req := f.UpdateContactDetailsRequest("ABCDE12345", usi.ContactDetails{EmailAddress: "jane@test.com"})
		Expect(req.UserReference).To(Equal("CalledBySample"))
		Expect(req.OrgCode).To(Equal("0002"))
	})

	It("should date a birth certificate today", func() {
		doc := f.BirthCertificate()
		Expect(doc.RegistrationYear).To(Equal("2024"))
		Expect(doc.DatePrinted.String()).To(Equal("2024-03-01"))
		Expect(doc.RegistrationNumber).To(Equal("1111111"))
	})

	It("should build every sample document kind", func() {
		for _, kind := range []string{KindBirthCertificate, KindCitizenship, KindDescent, KindVisa, KindPassport, KindImmiCard, KindMedicare, KindDriversLicence} {
			doc, err := f.Document(DocumentSpec{Kind: kind, Name: "Lisa Smith7f"})
			Expect(err).ToNot(HaveOccurred(), kind)
			Expect(doc.Kind().TypeName()).ToNot(BeEmpty(), kind)
		}
	})
})

var _ = Describe("SplitToLengths", func() {
	It("should leave trailing segments empty for a short name", func() {
		Expect(SplitToLengths("Lisa Smith7f", MedicareLineLengths...)).To(Equal([]string{"Lisa Smith7f", "", "", ""}))
	})

	It("should fill the lines in order", func() {
		name := strings.Repeat("a", 27) + strings.Repeat("b", 25) + "ccc"
		Expect(SplitToLengths(name, MedicareLineLengths...)).To(Equal([]string{strings.Repeat("a", 27), strings.Repeat("b", 25), "ccc", ""}))
	})

	It("should give an empty line for a negative length", func() {
		Expect(SplitToLengths("abcdef", -1, 2, 3)).To(Equal([]string{"", "ab", "cde"}))
	})

	It("should split on characters rather than bytes", func() {
		Expect(SplitToLengths("Zoë Ng", 3, 3)).To(Equal([]string{"Zoë", " Ng"}))
	})

	It("should respect the line lengths for any input", func() {
		r := rand.New(rand.NewSource(7))
		for i := 0; i < 200; i++ {
			name := strings.Repeat("x", r.Intn(120)) + strconv.Itoa(i)
			lines := SplitToLengths(name, MedicareLineLengths...)

			Expect(lines).To(HaveLen(4))
			seenEmpty := false
			for j, line := range lines {
				Expect(len([]rune(line))).To(BeNumerically("<=", MedicareLineLengths[j]))
				if line == "" {
					seenEmpty = true
				} else {
					Expect(seenEmpty).To(BeFalse())
				}
			}
			Expect(name).To(HavePrefix(strings.Join(lines, "")))
		}
	})

	It("should give the medicare document its name lines", func() {
		doc := NewFactory("0002", rand.NewSource(1)).Medicare("Lisa Smith7f")
		Expect(doc.NameLine1).To(Equal("Lisa Smith7f"))
		Expect(doc.NameLine2).To(BeEmpty())
		Expect(doc.CardColour).To(Equal(usi.CardGreen))
		Expect(doc.ExpiryDate).To(Equal("2015-12"))
	})
})
