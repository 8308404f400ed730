package sts

import (
	"encoding/base64"
	"encoding/xml"
	"strings"
	"time"

	"github.com/usi-samples/usi-client-go/soap"
)

const (
	TrustNamespace    = "http://docs.oasis-open.org/ws-sx/ws-trust/200512"
	PolicyNamespace   = "http://schemas.xmlsoap.org/ws/2004/09/policy"
	IdentityNamespace = "http://schemas.xmlsoap.org/ws/2005/05/identity"

	IssueAction  = TrustNamespace + "/RST/Issue"
	RequestIssue = TrustNamespace + "/Issue"
	SymmetricKey = TrustNamespace + "/SymmetricKey"
	SAML11Token  = "http://docs.oasis-open.org/wss/oasis-wss-saml-token-profile-1.1#SAMLV1.1"

	ClaimABN            = "http://vanguard.ebusiness.gov.au/2008/06/identity/claims/abn"
	ClaimCredentialType = "http://vanguard.ebusiness.gov.au/2008/06/identity/claims/credentialtype"
)

// RequestSecurityToken is a WS-Trust 1.3 issue request.
type RequestSecurityToken struct {
	XMLName     xml.Name  `xml:"trust:RequestSecurityToken"`
	XmlnsTrust  string    `xml:"xmlns:trust,attr"`
	AppliesTo   appliesTo `xml:"wsp:AppliesTo"`
	Claims      claims    `xml:"trust:Claims"`
	Lifetime    lifetime  `xml:"trust:Lifetime"`
	KeyType     string    `xml:"trust:KeyType"`
	RequestType string    `xml:"trust:RequestType"`
	TokenType   string    `xml:"trust:TokenType"`
}

type appliesTo struct {
	XmlnsWsp          string            `xml:"xmlns:wsp,attr"`
	EndpointReference endpointReference `xml:"wsa:EndpointReference"`
}

type endpointReference struct {
	XmlnsWsa string `xml:"xmlns:wsa,attr"`
	Address  string `xml:"wsa:Address"`
}

type claims struct {
	Dialect    string      `xml:"Dialect,attr"`
	XmlnsI     string      `xml:"xmlns:i,attr"`
	ClaimTypes []claimType `xml:"i:ClaimType"`
}

type claimType struct {
	Uri      string `xml:"Uri,attr"`
	Optional bool   `xml:"Optional,attr"`
}

type lifetime struct {
	Created string `xml:"u:Created"`
	Expires string `xml:"u:Expires"`
}

// NewIssueRequest asks for a symmetric-key SAML 1.1 token for the relying
// party at appliesToAddress, valid from now for ttl, carrying the abn and
// credential type claims.
func NewIssueRequest(appliesToAddress string, now time.Time, ttl time.Duration) *RequestSecurityToken {
	return &RequestSecurityToken{
		XmlnsTrust: TrustNamespace,
		AppliesTo: appliesTo{
			XmlnsWsp: PolicyNamespace,
			EndpointReference: endpointReference{
				XmlnsWsa: soap.AddressingNamespace,
				Address:  appliesToAddress,
			},
		},
		Claims: claims{
			Dialect: IdentityNamespace,
			XmlnsI:  IdentityNamespace,
			ClaimTypes: []claimType{
				{Uri: ClaimABN, Optional: false},
				{Uri: ClaimCredentialType, Optional: false},
			},
		},
		Lifetime: lifetime{
			Created: soap.FormatInstant(now),
			Expires: soap.FormatInstant(now.Add(ttl)),
		},
		KeyType:     SymmetricKey,
		RequestType: RequestIssue,
		TokenType:   SAML11Token,
	}
}

// issueResponse is either an RSTR or an RSTR collection, matched by local
// name.
type issueResponse struct {
	XMLName                xml.Name
	TokenType              string           `xml:"TokenType"`
	Lifetime               responseLifetime `xml:"Lifetime"`
	RequestedSecurityToken innerXML         `xml:"RequestedSecurityToken"`
	RequestedProofToken    proofToken       `xml:"RequestedProofToken"`
	Responses              []issueResponse  `xml:"RequestSecurityTokenResponse"`
}

type responseLifetime struct {
	Created string `xml:"Created"`
	Expires string `xml:"Expires"`
}

type innerXML struct {
	Raw string `xml:",innerxml"`
}

type proofToken struct {
	BinarySecret string `xml:"BinarySecret"`
}

// first returns the response carrying the token, unwrapping a collection.
func (r *issueResponse) first() *issueResponse {
	if r.XMLName.Local == "RequestSecurityTokenResponseCollection" {
		if len(r.Responses) == 0 {
			return nil
		}
		return &r.Responses[0]
	}
	return r
}

func (r *issueResponse) token(appliesToAddress string, requested lifetime) (*SecurityToken, error) {
	assertion := strings.TrimSpace(r.RequestedSecurityToken.Raw)
	if assertion == "" {
		return nil, errNoToken
	}

	tok := &SecurityToken{
		Assertion: assertion,
		TokenType: strings.TrimSpace(r.TokenType),
		AppliesTo: appliesToAddress,
	}

	var err error
	if tok.Created, err = parseInstant(r.Lifetime.Created, requested.Created); err != nil {
		return nil, err
	}
	if tok.Expires, err = parseInstant(r.Lifetime.Expires, requested.Expires); err != nil {
		return nil, err
	}

	if secret := strings.TrimSpace(r.RequestedProofToken.BinarySecret); secret != "" {
		if tok.ProofKey, err = base64.StdEncoding.DecodeString(secret); err != nil {
			return nil, err
		}
	}

	return tok, nil
}

// parseInstant parses value, falling back to the instant that was requested
// when the STS leaves it out.
func parseInstant(value, fallback string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		value = fallback
	}
	return time.Parse(time.RFC3339, value)
}
