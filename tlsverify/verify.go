// Package tlsverify decides how server certificates are checked. Release
// builds use the standard chain and hostname checks. Building with
// -tags debug relaxes this to only require that the server presented a
// certificate, so test hosts with broken chains can be reached. That build
// must never ship.
package tlsverify

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
)

// ErrNoCertificate means the server completed the handshake without a
// certificate.
var ErrNoCertificate = errors.New("remote certificate not available")

// ClientConfig returns the TLS config for connections to the STS and the USI
// service. certs are presented for client authentication when given.
func ClientConfig(rootCAs *x509.CertPool, certs ...tls.Certificate) *tls.Config {
	cfg := &tls.Config{
		MinVersion:   tls.VersionTLS12,
		RootCAs:      rootCAs,
		Certificates: certs,
	}
	configure(cfg)
	return cfg
}

// Relaxed reports whether this build skips chain verification.
func Relaxed() bool {
	return relaxed
}

func requirePeerCertificate(cs tls.ConnectionState) error {
	if len(cs.PeerCertificates) == 0 {
		return ErrNoCertificate
	}
	return nil
}
