package tlsverify

import (
	"crypto/tls"
	"crypto/x509"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ClientConfig", func() {
	It("should require TLS 1.2 at least", func() {
		cfg := ClientConfig(x509.NewCertPool())
		Expect(cfg.MinVersion).To(Equal(uint16(tls.VersionTLS12)))
	})

	It("should verify chains unless built for debug", func() {
		cfg := ClientConfig(nil)
		Expect(cfg.InsecureSkipVerify).To(Equal(Relaxed()))
	})

	It("should present the client certificates", func() {
		cfg := ClientConfig(nil, tls.Certificate{Certificate: [][]byte{{1}}})
		Expect(cfg.Certificates).To(HaveLen(1))
	})
})

var _ = Describe("requirePeerCertificate", func() {
	It("should reject a handshake without a certificate", func() {
		Expect(requirePeerCertificate(tls.ConnectionState{})).To(MatchError(ErrNoCertificate))
	})

	It("should accept any presented certificate", func() {
		cs := tls.ConnectionState{PeerCertificates: []*x509.Certificate{{}}}
		Expect(requirePeerCertificate(cs)).To(Succeed())
	})
})
