package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed endpoints.yml
var defaultEndpoints []byte

// EndpointBinding carries the transport settings of an endpoint
// configuration. Only SOAP 1.2 with WS-Addressing 1.0 is spoken today.
type EndpointBinding struct {
	SoapVersion     string `yaml:"soapVersion"`
	WSAddressing    bool   `yaml:"wsAddressing"`
	MessageSecurity string `yaml:"messageSecurity"`
}

// EndpointConfiguration is a named client endpoint for a service contract.
type EndpointConfiguration struct {
	Name     string          `yaml:"name"`
	Contract string          `yaml:"contract"`
	Address  string          `yaml:"address"`
	Binding  EndpointBinding `yaml:"binding"`
	Timeout  time.Duration   `yaml:"timeout"`
}

type endpointsFile struct {
	Endpoints []EndpointConfiguration `yaml:"endpoints"`
}

// loadEndpoints reads the endpoint configurations from path, or from the
// embedded defaults when path is empty.
func loadEndpoints(path string) ([]EndpointConfiguration, error) {
	raw := defaultEndpoints
	if path != "" {
		var err error
		raw, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("unable to read endpoints file %q: %w", path, err)
		}
	}

	return ParseEndpoints(raw)
}

// ParseEndpoints decodes an endpoints YAML document.
func ParseEndpoints(raw []byte) ([]EndpointConfiguration, error) {
	var f endpointsFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("unable to parse endpoints: %w", err)
	}

	for i, e := range f.Endpoints {
		if e.Name == "" || e.Address == "" {
			return nil, fmt.Errorf("endpoint %d is missing a name or an address", i)
		}
		if f.Endpoints[i].Binding.SoapVersion == "" {
			f.Endpoints[i].Binding.SoapVersion = "1.2"
		}
	}

	return f.Endpoints, nil
}
