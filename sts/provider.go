package sts

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/usi-samples/usi-client-go/keystore"
	l "github.com/usi-samples/usi-client-go/logger"
	"github.com/usi-samples/usi-client-go/tlsverify"
)

// CertificateSource yields the client certificate presented to the STS.
type CertificateSource interface {
	ClientCertificate() (tls.Certificate, error)
}

// KeystoreSource reads the certificate for Alias from the keystore at Path.
// Passphrase is asked for on every read, and the bytes it returns are wiped
// once the key is unsealed.
type KeystoreSource struct {
	Path          string
	Alias         string
	Passphrase    func() ([]byte, error)
	RenewalWindow time.Duration
	Now           func() time.Time
}

var _ CertificateSource = &KeystoreSource{}

// ClientCertificate loads and unseals the credential.
func (s *KeystoreSource) ClientCertificate() (tls.Certificate, error) {
	ks, err := keystore.Open(s.Path)
	if err != nil {
		return tls.Certificate{}, err
	}

	cred, err := ks.GetCredential(s.Alias)
	if err != nil {
		return tls.Certificate{}, err
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	if cred.IsReadyForRenewal(now(), s.RenewalWindow) {
		l.Log.WithFields(logrus.Fields{"alias": s.Alias, "notAfter": cred.NotAfter}).Warn("credential is due for renewal")
	}

	pass, err := s.Passphrase()
	if err != nil {
		return tls.Certificate{}, err
	}
	secret := keystore.NewSecret(pass)
	defer secret.Clear()

	return cred.PrivateKey(secret)
}

// Provider issues a fresh token on every call.
type Provider struct {
	Name      string
	Address   string
	AppliesTo string
	Timeout   time.Duration
	RootCAs   *x509.CertPool
	Source    CertificateSource

	// HTTPClient builds the transport for a certificate. Nil means mutual TLS
	// with RootCAs.
	HTTPClient func(cert tls.Certificate) *http.Client

	now func() time.Time
}

var _ TokenProvider = &Provider{}

func (p *Provider) httpClient(cert tls.Certificate) *http.Client {
	if p.HTTPClient != nil {
		return p.HTTPClient(cert)
	}
	return &http.Client{
		Timeout: p.Timeout,
		Transport: &http.Transport{
			Proxy:           http.ProxyFromEnvironment,
			TLSClientConfig: tlsverify.ClientConfig(p.RootCAs, cert),
		},
	}
}

// GetToken loads the client certificate and exchanges it for a token valid
// from now for lifetimeMinutes. Nothing is retried.
func (p *Provider) GetToken(ctx context.Context, lifetimeMinutes int) (*SecurityToken, error) {
	cert, err := p.Source.ClientCertificate()
	if err != nil {
		stsFailure.WithLabelValues("credential").Inc()
		return nil, &AuthenticationError{Op: "load credential", Err: err}
	}

	now := time.Now
	if p.now != nil {
		now = p.now
	}

	client := NewClient(p.Name, p.Address, p.httpClient(cert))
	rst := NewIssueRequest(p.AppliesTo, now(), time.Duration(lifetimeMinutes)*time.Minute)

	return client.Issue(ctx, rst, cert)
}
