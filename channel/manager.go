package channel

import (
	"context"
	"crypto/x509"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/usi-samples/usi-client-go/config"
	l "github.com/usi-samples/usi-client-go/logger"
	"github.com/usi-samples/usi-client-go/sts"
)

// Options configure a Manager.
type Options struct {
	Endpoints       []config.EndpointConfiguration
	Contract        string
	RootCAs         *x509.CertPool
	Tokens          sts.TokenProvider
	LifetimeMinutes int
}

// Manager holds the single channel factory of a session. Open must be
// paired with Close before the next Open.
type Manager struct {
	opts Options

	mu      sync.Mutex
	factory *Factory
}

// NewManager returns a manager with no open factory.
func NewManager(opts Options) *Manager {
	return &Manager{opts: opts}
}

// NewManagerFromConfig builds a manager from the global configuration.
func NewManagerFromConfig(cfg *config.UsiConfig, tokens sts.TokenProvider) *Manager {
	return NewManager(Options{
		Endpoints:       cfg.Endpoints,
		Contract:        cfg.Options.GetString(config.Keys.ServiceContract),
		RootCAs:         cfg.RootCAs,
		Tokens:          tokens,
		LifetimeMinutes: cfg.Options.GetInt(config.Keys.TokenLifetime),
	})
}

// Open finds the endpoint for the configured contract, opens a factory for
// it, obtains a token and returns a channel carrying that token. Token
// failures are returned as the provider's *sts.AuthenticationError, every
// other failure as *Error.
func (m *Manager) Open(ctx context.Context) (*Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.factory != nil {
		return nil, &Error{Reason: FactoryInUse, Endpoint: m.factory.Endpoint().Name}
	}

	endpoint, ok := FindEndpoint(m.opts.Endpoints, m.opts.Contract)
	if !ok {
		return nil, &Error{Reason: NoEndpoint, Err: fmt.Errorf("no endpoint configured for contract %q", m.opts.Contract)}
	}

	factory := NewFactory(endpoint, m.opts.RootCAs)
	if err := factory.Open(); err != nil {
		return nil, &Error{Reason: OpenFailed, Endpoint: endpoint.Name, Err: err}
	}
	m.factory = factory

	l.Log.WithFields(logrus.Fields{"endpoint": endpoint.Name, "address": endpoint.Address}).Debug("channel factory opened")

	token, err := m.opts.Tokens.GetToken(ctx, m.opts.LifetimeMinutes)
	if err != nil {
		m.releaseLocked()
		return nil, err
	}

	ch, err := factory.CreateChannelWithIssuedToken(token)
	if err != nil {
		m.releaseLocked()
		return nil, &Error{Reason: OpenFailed, Endpoint: endpoint.Name, Err: err}
	}

	return ch, nil
}

// Close releases the factory. Closing a manager with no open factory is a
// no-op.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.releaseLocked()
}

func (m *Manager) releaseLocked() error {
	if m.factory == nil {
		return nil
	}
	err := m.factory.Close()
	l.Log.WithFields(logrus.Fields{"endpoint": m.factory.Endpoint().Name}).Debug("channel factory closed")
	m.factory = nil
	return err
}
