package sts

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"errors"
	"math/big"
	"time"
)

type staticSource struct {
	cert tls.Certificate
	err  error
}

func (s *staticSource) ClientCertificate() (tls.Certificate, error) {
	return s.cert, s.err
}

func selfSigned() tls.Certificate {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		panic(err)
	}
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(7),
		Subject:      pkix.Name{CommonName: "ABRD:27809366375_USIMachine"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		panic(err)
	}
	return tls.Certificate{Certificate: [][]byte{der}, PrivateKey: key}
}

type countingProvider struct {
	calls   int
	expires time.Time
	err     error
}

func (p *countingProvider) GetToken(ctx context.Context, lifetimeMinutes int) (*SecurityToken, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return &SecurityToken{Assertion: "<saml:Assertion/>", Expires: p.expires}, nil
}

var errBoom = errors.New("boom")

const rstrCollection = `<s:Envelope xmlns:s="http://www.w3.org/2003/05/soap-envelope" xmlns:a="http://www.w3.org/2005/08/addressing" xmlns:u="http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-utility-1.0.xsd">
<s:Header><a:Action s:mustUnderstand="1">http://docs.oasis-open.org/ws-sx/ws-trust/200512/RSTRC/IssueFinal</a:Action></s:Header>
<s:Body>
<trust:RequestSecurityTokenResponseCollection xmlns:trust="http://docs.oasis-open.org/ws-sx/ws-trust/200512">
<trust:RequestSecurityTokenResponse>
<trust:Lifetime><u:Created>2024-03-01T12:00:00.000Z</u:Created><u:Expires>2024-03-01T13:00:00.000Z</u:Expires></trust:Lifetime>
<trust:RequestedSecurityToken><saml:Assertion xmlns:saml="urn:oasis:names:tc:SAML:1.0:assertion" AssertionID="_a1">signed</saml:Assertion></trust:RequestedSecurityToken>
<trust:RequestedProofToken><trust:BinarySecret>c2VjcmV0</trust:BinarySecret></trust:RequestedProofToken>
<trust:TokenType>http://docs.oasis-open.org/wss/oasis-wss-saml-token-profile-1.1#SAMLV1.1</trust:TokenType>
</trust:RequestSecurityTokenResponse>
</trust:RequestSecurityTokenResponseCollection>
</s:Body>
</s:Envelope>`

const rstrBare = `<s:Envelope xmlns:s="http://www.w3.org/2003/05/soap-envelope">
<s:Body>
<RequestSecurityTokenResponse xmlns="http://docs.oasis-open.org/ws-sx/ws-trust/200512">
<RequestedSecurityToken><Assertion xmlns="urn:oasis:names:tc:SAML:1.0:assertion">bare</Assertion></RequestedSecurityToken>
</RequestSecurityTokenResponse>
</s:Body>
</s:Envelope>`

const stsFault = `<s:Envelope xmlns:s="http://www.w3.org/2003/05/soap-envelope">
<s:Body>
<s:Fault>
<s:Code><s:Value>s:Sender</s:Value></s:Code>
<s:Reason><s:Text xml:lang="en-US">The credential has been revoked.</s:Text></s:Reason>
</s:Fault>
</s:Body>
</s:Envelope>`
