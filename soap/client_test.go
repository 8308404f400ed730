package soap

import (
	"context"
	"encoding/xml"
	"errors"
	"net/http"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/ghttp"
)

type pingRequest struct {
	XMLName xml.Name `xml:"http://usi.gov.au/2022/ws Ping"`
	OrgCode string   `xml:"OrgCode"`
}

type pingResponse struct {
	XMLName xml.Name `xml:"PingResponse"`
	Echo    string   `xml:"Echo"`
}

const action = "http://usi.gov.au/2022/ws/IUSIService/Ping"

func envelopeWith(body string) string {
	return `<s:Envelope xmlns:s="http://www.w3.org/2003/05/soap-envelope"><s:Header/><s:Body>` + body + `</s:Body></s:Envelope>`
}

var _ = Describe("Client", func() {
	var (
		server *ghttp.Server
		client *Client
	)

	BeforeEach(func() {
		server = ghttp.NewServer()
		client = NewClient(server.URL()+"/svc", http.DefaultClient, true)
	})

	AfterEach(func() {
		server.Close()
	})

	It("should decode the response body", func() {
		server.AppendHandlers(ghttp.CombineHandlers(
			ghttp.VerifyRequest("POST", "/svc"),
			ghttp.VerifyHeaderKV("Content-Type", `application/soap+xml; charset=utf-8; action="`+action+`"`),
			ghttp.RespondWith(http.StatusOK, envelopeWith(`<PingResponse xmlns="http://usi.gov.au/2022/ws"><Echo>pong</Echo></PingResponse>`)),
		))

		var out pingResponse
		err := client.Call(context.Background(), action, NewSecurity(time.Now(), time.Minute), &pingRequest{OrgCode: "0002"}, &out)
		Expect(err).ToNot(HaveOccurred())
		Expect(out.Echo).To(Equal("pong"))
	})

	It("should return a typed fault with a single ErrorInfo", func() {
		server.AppendHandlers(ghttp.RespondWith(http.StatusInternalServerError, envelopeWith(`<s:Fault>
<s:Code><s:Value>s:Sender</s:Value></s:Code>
<s:Reason><s:Text xml:lang="en-US">The creator of this fault did not specify a Reason.</s:Text></s:Reason>
<s:Detail><ErrorInfo xmlns="http://usi.gov.au/2022/ws"><Code>200</Code><Message>Org code is not valid</Message></ErrorInfo></s:Detail>
</s:Fault>`)))

		err := client.Call(context.Background(), action, nil, &pingRequest{}, &pingResponse{})
		var fault *Fault
		Expect(errors.As(err, &fault)).To(BeTrue())
		Expect(fault.Typed()).To(BeTrue())
		Expect(fault.Array()).To(BeFalse())
		Expect(fault.Action).To(Equal("Ping"))
		Expect(fault.Message()).To(Equal("Org code is not valid"))
		Expect(fault.DetailCode()).To(Equal("200"))
	})

	It("should return a typed fault with an ArrayOfErrorInfo", func() {
		server.AppendHandlers(ghttp.RespondWith(http.StatusInternalServerError, envelopeWith(`<s:Fault>
<s:Code><s:Value>s:Sender</s:Value></s:Code>
<s:Reason><s:Text xml:lang="en-US">Validation</s:Text></s:Reason>
<s:Detail><ArrayOfErrorInfo xmlns="http://usi.gov.au/2022/ws"><ErrorInfo><Code>E1</Code><Message>First</Message></ErrorInfo><ErrorInfo><Code>E2</Code><Message>Second</Message></ErrorInfo></ArrayOfErrorInfo></s:Detail>
</s:Fault>`)))

		err := client.Call(context.Background(), action, nil, &pingRequest{}, nil)
		var fault *Fault
		Expect(errors.As(err, &fault)).To(BeTrue())
		Expect(fault.Array()).To(BeTrue())
		Expect(fault.Details()).To(HaveLen(2))
		Expect(fault.Message()).To(Equal("First"))
		Expect(fault.DetailCode()).To(Equal("E1"))
	})

	It("should return a generic fault without detail as untyped", func() {
		server.AppendHandlers(ghttp.RespondWith(http.StatusInternalServerError, envelopeWith(`<s:Fault>
<s:Code><s:Value>s:Receiver</s:Value><s:Subcode><s:Value>a:InternalServiceFault</s:Value></s:Subcode></s:Code>
<s:Reason><s:Text xml:lang="en-US">The server was unable to process the request.</s:Text></s:Reason>
</s:Fault>`)))

		err := client.Call(context.Background(), action, nil, &pingRequest{}, nil)
		var fault *Fault
		Expect(errors.As(err, &fault)).To(BeTrue())
		Expect(fault.Typed()).To(BeFalse())
		Expect(fault.FaultCodeValue()).To(Equal("s:Receiver/a:InternalServiceFault"))
		Expect(fault.Message()).To(Equal("The server was unable to process the request."))
	})

	It("should return a transport error for a non-2xx response without an envelope", func() {
		server.AppendHandlers(ghttp.RespondWith(http.StatusBadGateway, "upstream unavailable"))

		err := client.Call(context.Background(), action, nil, &pingRequest{}, nil)
		var transportErr *TransportError
		Expect(errors.As(err, &transportErr)).To(BeTrue())
		Expect(transportErr.StatusCode).To(Equal(http.StatusBadGateway))
		Expect(transportErr.Action).To(Equal("Ping"))
	})

	It("should return a transport error for an undecodable 200", func() {
		server.AppendHandlers(ghttp.RespondWith(http.StatusOK, "not xml"))

		err := client.Call(context.Background(), action, nil, &pingRequest{}, nil)
		var transportErr *TransportError
		Expect(errors.As(err, &transportErr)).To(BeTrue())
	})
})

var _ = Describe("Encode", func() {
	It("should write the addressing and security headers", func() {
		now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		client := NewClient("https://3pt.portal.usi.gov.au/Service/v5/UsiService.svc", nil, true)

		raw, err := client.Encode(action, NewSecurity(now, 5*time.Minute).WithToken(`<saml:Assertion AssertionID="_x"/>`), &pingRequest{OrgCode: "0002"})
		Expect(err).ToNot(HaveOccurred())

		body := string(raw)
		Expect(body).To(ContainSubstring(`<s:Envelope xmlns:s="http://www.w3.org/2003/05/soap-envelope" xmlns:a="http://www.w3.org/2005/08/addressing"`))
		Expect(body).To(ContainSubstring(`<a:Action s:mustUnderstand="1">` + action + `</a:Action>`))
		Expect(body).To(MatchRegexp(`<a:MessageID>urn:uuid:[0-9a-f-]{36}</a:MessageID>`))
		Expect(body).To(ContainSubstring(`<a:To s:mustUnderstand="1">https://3pt.portal.usi.gov.au/Service/v5/UsiService.svc</a:To>`))
		Expect(body).To(ContainSubstring(`<u:Created>2024-03-01T12:00:00.000Z</u:Created><u:Expires>2024-03-01T12:05:00.000Z</u:Expires>`))
		Expect(body).To(ContainSubstring(`<saml:Assertion AssertionID="_x"/></o:Security>`))
		Expect(body).To(ContainSubstring(`<Ping xmlns="http://usi.gov.au/2022/ws"><OrgCode>0002</OrgCode></Ping>`))
	})

	It("should leave out addressing headers when disabled", func() {
		client := NewClient("https://example", nil, false)

		raw, err := client.Encode(action, nil, &pingRequest{})
		Expect(err).ToNot(HaveOccurred())
		Expect(string(raw)).ToNot(ContainSubstring("a:Action"))
		Expect(string(raw)).ToNot(ContainSubstring("o:Security"))
	})
})
