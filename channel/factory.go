// Package channel opens authenticated channels to the USI service. A Manager
// owns at most one open Factory, and a Factory turns an issued token into a
// Channel implementing usi.Service.
package channel

import (
	"crypto/x509"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/usi-samples/usi-client-go/config"
	"github.com/usi-samples/usi-client-go/soap"
	"github.com/usi-samples/usi-client-go/sts"
	"github.com/usi-samples/usi-client-go/tlsverify"
)

// FindEndpoint returns the first endpoint whose contract matches, ignoring
// case.
func FindEndpoint(endpoints []config.EndpointConfiguration, contract string) (config.EndpointConfiguration, bool) {
	for _, e := range endpoints {
		if strings.EqualFold(e.Contract, contract) {
			return e, true
		}
	}
	return config.EndpointConfiguration{}, false
}

// Factory is bound to one endpoint configuration.
type Factory struct {
	endpoint config.EndpointConfiguration
	rootCAs  *x509.CertPool

	mu         sync.Mutex
	httpClient *http.Client
	closed     bool
}

// NewFactory returns an unopened factory for endpoint.
func NewFactory(endpoint config.EndpointConfiguration, rootCAs *x509.CertPool) *Factory {
	return &Factory{endpoint: endpoint, rootCAs: rootCAs}
}

// Endpoint returns the bound endpoint configuration.
func (f *Factory) Endpoint() config.EndpointConfiguration {
	return f.endpoint
}

// Open builds the HTTPS transport for the endpoint.
func (f *Factory) Open() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrClosed
	}
	if f.httpClient != nil {
		return nil
	}

	if v := f.endpoint.Binding.SoapVersion; v != "" && v != "1.2" {
		return fmt.Errorf("unsupported soap version %q", v)
	}

	f.httpClient = &http.Client{
		Timeout: f.endpoint.Timeout,
		Transport: &http.Transport{
			Proxy:           http.ProxyFromEnvironment,
			TLSClientConfig: tlsverify.ClientConfig(f.rootCAs),
		},
	}
	return nil
}

// CreateChannelWithIssuedToken returns a channel whose calls carry token.
func (f *Factory) CreateChannelWithIssuedToken(token *sts.SecurityToken) (*Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, ErrClosed
	}
	if f.httpClient == nil {
		return nil, fmt.Errorf("factory for %s is not open", f.endpoint.Name)
	}
	if token == nil || token.Assertion == "" {
		return nil, fmt.Errorf("no issued token for %s", f.endpoint.Name)
	}

	return newChannel(soap.NewClient(f.endpoint.Address, f.httpClient, f.endpoint.Binding.WSAddressing), token), nil
}

// Close releases idle connections. Channels created by the factory keep
// working until they are closed themselves.
func (f *Factory) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true
	if f.httpClient != nil {
		f.httpClient.CloseIdleConnections()
	}
	return nil
}
