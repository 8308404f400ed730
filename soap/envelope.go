// Package soap is a minimal SOAP 1.2 client for the USI service and the STS:
// envelope and WS-Addressing headers, a WS-Security header carrying a
// timestamp plus either an X.509 binary token or an issued token, and fault
// decoding.
package soap

import (
	"encoding/base64"
	"encoding/xml"
	"time"

	"github.com/google/uuid"
)

const (
	Soap12Namespace     = "http://www.w3.org/2003/05/soap-envelope"
	AddressingNamespace = "http://www.w3.org/2005/08/addressing"
	WSSENamespace       = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-secext-1.0.xsd"
	WSUNamespace        = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-utility-1.0.xsd"
	AnonymousAddress    = "http://www.w3.org/2005/08/addressing/anonymous"

	X509TokenValueType = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-x509-token-profile-1.0#X509v3"
	Base64EncodingType = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-soap-message-security-1.0#Base64Binary"

	// TimestampLayout is the WS-Security and WS-Trust instant layout.
	TimestampLayout = "2006-01-02T15:04:05.000Z"
)

// FormatInstant formats t in UTC with TimestampLayout.
func FormatInstant(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

type envelope struct {
	XMLName xml.Name `xml:"s:Envelope"`
	XmlnsS  string   `xml:"xmlns:s,attr"`
	XmlnsA  string   `xml:"xmlns:a,attr,omitempty"`
	XmlnsU  string   `xml:"xmlns:u,attr"`
	Header  header   `xml:"s:Header"`
	Body    body     `xml:"s:Body"`
}

type header struct {
	Action    *headerValue `xml:"a:Action,omitempty"`
	MessageID string       `xml:"a:MessageID,omitempty"`
	ReplyTo   *replyTo     `xml:"a:ReplyTo,omitempty"`
	To        *headerValue `xml:"a:To,omitempty"`
	Security  *Security    `xml:"o:Security,omitempty"`
}

type headerValue struct {
	MustUnderstand string `xml:"s:mustUnderstand,attr,omitempty"`
	Value          string `xml:",chardata"`
}

type replyTo struct {
	Address string `xml:"a:Address"`
}

type body struct {
	Content interface{}
}

// Timestamp is the wsu:Timestamp of a security header.
type Timestamp struct {
	Id      string `xml:"u:Id,attr"`
	Created string `xml:"u:Created"`
	Expires string `xml:"u:Expires"`
}

// BinarySecurityToken carries a DER certificate as base64.
type BinarySecurityToken struct {
	Id           string `xml:"u:Id,attr"`
	ValueType    string `xml:"ValueType,attr"`
	EncodingType string `xml:"EncodingType,attr"`
	Value        string `xml:",chardata"`
}

// Security is the WS-Security header. Token is written verbatim, and is how
// an issued SAML assertion travels with each service call.
type Security struct {
	XmlnsO              string               `xml:"xmlns:o,attr"`
	MustUnderstand      string               `xml:"s:mustUnderstand,attr"`
	Timestamp           Timestamp            `xml:"u:Timestamp"`
	BinarySecurityToken *BinarySecurityToken `xml:"o:BinarySecurityToken,omitempty"`
	Token               string               `xml:",innerxml"`
}

// NewSecurity returns a security header whose timestamp runs from now for
// ttl.
func NewSecurity(now time.Time, ttl time.Duration) *Security {
	return &Security{
		XmlnsO:         WSSENamespace,
		MustUnderstand: "1",
		Timestamp: Timestamp{
			Id:      "_0",
			Created: FormatInstant(now),
			Expires: FormatInstant(now.Add(ttl)),
		},
	}
}

// WithCertificate attaches a DER encoded X.509 certificate.
func (s *Security) WithCertificate(der []byte) *Security {
	s.BinarySecurityToken = &BinarySecurityToken{
		Id:           "uuid-" + uuid.NewString() + "-1",
		ValueType:    X509TokenValueType,
		EncodingType: Base64EncodingType,
		Value:        base64.StdEncoding.EncodeToString(der),
	}
	return s
}

// WithToken attaches a raw issued token, normally a SAML assertion.
func (s *Security) WithToken(raw string) *Security {
	s.Token = raw
	return s
}

func newEnvelope(action, to string, addressing bool, security *Security, content interface{}) *envelope {
	env := &envelope{
		XmlnsS: Soap12Namespace,
		XmlnsU: WSUNamespace,
		Body:   body{Content: content},
	}

	if addressing {
		env.XmlnsA = AddressingNamespace
		env.Header.Action = &headerValue{MustUnderstand: "1", Value: action}
		env.Header.MessageID = "urn:uuid:" + uuid.NewString()
		env.Header.ReplyTo = &replyTo{Address: AnonymousAddress}
		env.Header.To = &headerValue{MustUnderstand: "1", Value: to}
	}

	env.Header.Security = security
	return env
}

type responseEnvelope struct {
	XMLName xml.Name     `xml:"Envelope"`
	Body    responseBody `xml:"Body"`
}

type responseBody struct {
	Fault   *Fault `xml:"Fault"`
	Content []byte `xml:",innerxml"`
}
