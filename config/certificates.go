package config

import (
	"crypto/x509"
	"fmt"
	"os"
)

// loadRootCAs returns the system's CA bundle, with the CA certificate at
// caFilePath appended to it when a path is given. The test environments for
// the USI service and the STS are signed by private CAs that are not in the
// system bundle.
func loadRootCAs(caFilePath string) (*x509.CertPool, error) {
	rootCAs, err := getSystemCAs()
	if err != nil {
		return nil, fmt.Errorf("unable to get system CAs: %w", err)
	}

	if caFilePath == "" {
		return rootCAs, nil
	}

	if err := loadCAFileIntoPool(rootCAs, caFilePath); err != nil {
		return nil, fmt.Errorf(`unable to load the CA certificate: %w`, err)
	}

	return rootCAs, nil
}

// getSystemCAs gets the system's certificate pool to be able to add
// certificates to it if needed.
func getSystemCAs() (*x509.CertPool, error) {
	rootCAs, err := x509.SystemCertPool()
	if err != nil {
		return nil, fmt.Errorf("unable to load system CA certificates: %w", err)
	}

	if rootCAs == nil {
		return x509.NewCertPool(), nil
	}

	return rootCAs, nil
}

// loadCAFileIntoPool loads the certificate file from the given path
// and appends it to the pool.
func loadCAFileIntoPool(pool *x509.CertPool, caFilePath string) error {
	certs, err := os.ReadFile(caFilePath)
	if err != nil {
		return fmt.Errorf(`unable to load CA file "%s" to append it to the RootCAs: %w`, caFilePath, err)
	}

	if ok := pool.AppendCertsFromPEM(certs); !ok {
		return fmt.Errorf("failed to AppendCertsFromPEM %s to RootCAs", caFilePath)
	}

	return nil
}
