//go:build !debug

package tlsverify

import "crypto/tls"

const relaxed = false

// configure keeps the standard verification: any policy error rejects the
// connection.
func configure(cfg *tls.Config) {}
