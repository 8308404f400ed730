//go:build debug

package tlsverify

import (
	"crypto/tls"

	l "github.com/usi-samples/usi-client-go/logger"
)

const relaxed = true

func configure(cfg *tls.Config) {
	l.Log.Warn("debug build: server certificate chains are not verified")
	cfg.InsecureSkipVerify = true
	cfg.VerifyConnection = requirePeerCertificate
}
