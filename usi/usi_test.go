package usi

import (
	"encoding/xml"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("TranslateNameKind", func() {
	DescribeTable("should map to the verify kind of the same name",
		func(in NameKind, out VerifyNameKind) {
			got, err := TranslateNameKind(in)
			Expect(err).ToNot(HaveOccurred())
			Expect(got).To(Equal(out))
		},
		Entry("first name", FirstName, VerifyFirstName),
		Entry("family name", FamilyName, VerifyFamilyName),
		Entry("single name", SingleName, VerifySingleName),
	)

	It("should reject a kind with no verify equivalent", func() {
		_, err := TranslateNameKind(MiddleName)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Names", func() {
	names := Names{{Kind: FirstName, Value: "Jane"}, {Kind: FamilyName, Value: "Smith"}}

	It("should encode as sibling choice elements", func() {
		raw, err := xml.Marshal(PersonalDetails{Names: names, DateOfBirth: NewDate(1977, time.June, 6), Gender: GenderFemale})
		Expect(err).ToNot(HaveOccurred())
		Expect(string(raw)).To(Equal("<PersonalDetails><FirstName>Jane</FirstName><FamilyName>Smith</FamilyName><DateOfBirth>1977-06-06</DateOfBirth><Gender>F</Gender></PersonalDetails>"))
	})

	It("should translate for verification keeping the order", func() {
		v, err := names.ForVerify()
		Expect(err).ToNot(HaveOccurred())
		Expect(v).To(Equal(VerifyNames{{Kind: VerifyFirstName, Value: "Jane"}, {Kind: VerifyFamilyName, Value: "Smith"}}))
	})

	It("should look up a value by kind", func() {
		Expect(names.Value(FamilyName)).To(Equal("Smith"))
		Expect(names.Value(SingleName)).To(BeEmpty())
	})
})

var _ = Describe("DVSDocument", func() {
	DescribeTable("should write the variant schema type",
		func(doc Document, typeName string) {
			raw, err := xml.Marshal(Application{ApplicationId: "1", DVSDocument: DVSDocument{Document: doc}})
			Expect(err).ToNot(HaveOccurred())
			Expect(string(raw)).To(ContainSubstring(`<DVSDocument xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xsi:type="` + typeName + `">`))
		},
		Entry("birth certificate", &BirthCertificate{RegistrationNumber: "1111111", RegistrationState: StateNSW}, "BirthCertificateDocumentType"),
		Entry("citizenship", &CitizenshipCertificate{StockNumber: "ACC111111"}, "CitizenshipCertificateDocumentType"),
		Entry("descent", &CertificateOfRegistrationByDescent{}, "CertificateOfRegistrationByDescentDocumentType"),
		Entry("visa", &Visa{PassportNumber: "111111"}, "VisaDocumentType"),
		Entry("passport", &Passport{DocumentNumber: "X1111111"}, "PassportDocumentType"),
		Entry("immicard", &ImmiCard{ImmiCardNumber: "ABC111111"}, "ImmiCardDocumentType"),
		Entry("medicare", &Medicare{NameLine1: "Lisa Smith7f", CardColour: CardGreen}, "MedicareDocumentType"),
		Entry("drivers licence", &DriversLicence{LicenceNumber: "111111", State: StateNSW}, "DriversLicenceDocumentType"),
	)

	It("should write nothing without a document", func() {
		raw, err := xml.Marshal(Application{ApplicationId: "1"})
		Expect(err).ToNot(HaveOccurred())
		Expect(string(raw)).ToNot(ContainSubstring("DVSDocument"))
	})
})

var _ = Describe("Application", func() {
	It("should require a document when a DVS check is requested", func() {
		app := Application{
			ApplicationId:    "123456",
			DVSCheckRequired: true,
			PersonalDetails:  PersonalDetails{Names: Names{{Kind: SingleName, Value: "Cher"}}},
		}
		Expect(app.Validate()).ToNot(Succeed())

		app.DVSDocument = DVSDocument{Document: &Passport{DocumentNumber: "X1111111"}}
		Expect(app.Validate()).To(Succeed())
	})

	It("should refuse both address kinds", func() {
		c := ContactDetails{NationalAddress: &NationalAddress{}, InternationalAddress: &InternationalAddress{}}
		Expect(c.Validate()).ToNot(Succeed())
	})
})

var _ = Describe("Responses", func() {
	It("should treat an empty USI element as null", func() {
		var resp CreateUSIResponse
		Expect(xml.Unmarshal([]byte(`<CreateUSIResponse xmlns="http://usi.gov.au/2022/ws"><Application><ApplicationId>1</ApplicationId><Result>Failure</Result><USI/><Errors><ErrorInfo><Code>1</Code><Message>Bad</Message></ErrorInfo></Errors></Application></CreateUSIResponse>`), &resp)).To(Succeed())

		_, ok := resp.Application.IssuedUSI()
		Expect(ok).To(BeFalse())
		Expect(ErrorMessages(resp.Application.Errors)).To(Equal([]string{"Bad"}))
	})

	It("should keep dynamically named match items in order", func() {
		var resp BulkVerifyUSIResponse
		Expect(xml.Unmarshal([]byte(`<BulkVerifyUSIResponse><VerificationResponses>
<VerificationResponse><RecordId>1</RecordId><USI>C2P5P4UBHP</USI><USIStatus>Valid</USIStatus><FirstName>Match</FirstName><FamilyName>NoMatch</FamilyName><DateOfBirth>Match</DateOfBirth></VerificationResponse>
</VerificationResponses></BulkVerifyUSIResponse>`), &resp)).To(Succeed())

		Expect(resp.VerificationResponses).To(HaveLen(1))
		v := resp.VerificationResponses[0]
		Expect(v.USIStatus).To(Equal(USIStatusValid))
		Expect(v.DateOfBirth).To(Equal(Match))
		Expect(v.Items).To(HaveLen(2))
		Expect(v.Items[0].Name()).To(Equal("FirstName"))
		Expect(v.Items[1].Value).To(Equal("NoMatch"))
	})

	It("should read a dateTime where a date is expected", func() {
		var d Date
		Expect(d.UnmarshalText([]byte("1990-07-02T00:00:00Z"))).To(Succeed())
		Expect(d.String()).To(Equal("1990-07-02"))
	})
})
