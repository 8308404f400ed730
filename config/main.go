package config

import (
	"crypto/x509"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

var config *UsiConfig
var configFile string

// UsiConfig is a global configuration struct for the USI client
type UsiConfig struct {
	RootCAs   *x509.CertPool
	Endpoints []EndpointConfiguration
	Options   *viper.Viper
}

// UsiConfigKeysType is the definition of the struct that houses all the env variables key names
type UsiConfigKeysType struct {
	OrgCode         string
	StsAddress      string
	StsEndpointName string
	StsTimeout      string
	AppliesTo       string
	EndpointsFile   string
	ServiceContract string
	KeystorePath    string
	CredentialAlias string
	Passphrase      string
	PassphraseFile  string
	RenewalWindow   string
	TokenLifetime   string
	TokenCache      string
	TokenCacheSkew  string
	CaPath          string
	LogLevel        string
	FixturesFile    string
	Port            string
	SentryDSN       string
	SoftwareName    string
	BuildCommit     string
}

// Keys is a struct that houses all the env variables key names
var Keys = UsiConfigKeysType{
	OrgCode:         "ORG_CODE",
	StsAddress:      "STS_ADDRESS",
	StsEndpointName: "STS_ENDPOINT_NAME",
	StsTimeout:      "STS_TIMEOUT",
	AppliesTo:       "APPLIES_TO",
	EndpointsFile:   "ENDPOINTS_FILE",
	ServiceContract: "SERVICE_CONTRACT",
	KeystorePath:    "KEYSTORE_PATH",
	CredentialAlias: "CREDENTIAL_ALIAS",
	Passphrase:      "PASSPHRASE",
	PassphraseFile:  "PASSPHRASE_FILE",
	RenewalWindow:   "RENEWAL_WINDOW",
	TokenLifetime:   "TOKEN_LIFETIME_MINUTES",
	TokenCache:      "TOKEN_CACHE",
	TokenCacheSkew:  "TOKEN_CACHE_SKEW",
	CaPath:          "CA_PATH",
	LogLevel:        "LOG_LEVEL",
	FixturesFile:    "FIXTURES_FILE",
	Port:            "PORT",
	SentryDSN:       "SENTRY_DSN",
	SoftwareName:    "SOFTWARE_NAME",
	BuildCommit:     "BUILD_COMMIT",
}

func setDefaults(options *viper.Viper) {
	options.SetDefault(Keys.OrgCode, "0002")
	options.SetDefault(Keys.StsAddress, "https://softwareauthorisations.acc.ato.gov.au/R3.0/S007v1.3/service.svc")
	options.SetDefault(Keys.StsEndpointName, "S007SecurityTokenServiceEndpointV3")
	options.SetDefault(Keys.StsTimeout, "0s")
	options.SetDefault(Keys.AppliesTo, "https://3pt.portal.usi.gov.au/Service/v5/UsiService.svc")
	options.SetDefault(Keys.EndpointsFile, "")
	options.SetDefault(Keys.ServiceContract, "UsiCreateServiceReference.IUSIService")
	options.SetDefault(Keys.KeystorePath, "keystore-usi.xml")
	options.SetDefault(Keys.CredentialAlias, "ABRD:27809366375_USIMachine")
	options.SetDefault(Keys.Passphrase, "")
	options.SetDefault(Keys.PassphraseFile, "")
	options.SetDefault(Keys.RenewalWindow, "336h")
	options.SetDefault(Keys.TokenLifetime, 60)
	options.SetDefault(Keys.TokenCache, false)
	options.SetDefault(Keys.TokenCacheSkew, "5m")
	options.SetDefault(Keys.CaPath, "")
	options.SetDefault(Keys.LogLevel, "info")
	options.SetDefault(Keys.FixturesFile, "")
	options.SetDefault(Keys.Port, "3000")
	options.SetDefault(Keys.SentryDSN, "")
	options.SetDefault(Keys.SoftwareName, "usi-client-go")
	options.SetDefault(Keys.BuildCommit, "")
}

func initialize() {
	var options = viper.New()
	setDefaults(options)

	options.SetEnvPrefix("USI")
	options.AutomaticEnv()

	if configFile != "" {
		options.SetConfigFile(configFile)
		if err := options.ReadInConfig(); err != nil {
			panic(fmt.Sprintf("Could not read config file %q: %v", configFile, err))
		}
	}

	rootCAs, err := loadRootCAs(options.GetString(Keys.CaPath))
	if err != nil {
		panic(err.Error())
	}

	endpoints, err := loadEndpoints(options.GetString(Keys.EndpointsFile))
	if err != nil {
		panic(err.Error())
	}

	config = &UsiConfig{
		RootCAs:   rootCAs,
		Endpoints: endpoints,
		Options:   options,
	}
}

// SetConfigFile points the next GetConfig call at a config file. Values in the
// file override defaults, env variables override both.
func SetConfigFile(path string) {
	configFile = path
	config = nil
}

// GetConfig provides a singleton global UsiConfig instance
func GetConfig() *UsiConfig {
	if config == nil {
		initialize()
	}

	return config
}

// Reset drops the singleton so the next GetConfig rereads the environment.
func Reset() {
	config = nil
	configFile = ""
}

// LoadPassphrase returns the keystore passphrase from the env value or, when
// set, the passphrase file. The caller owns the returned bytes and must wipe
// them.
func (c *UsiConfig) LoadPassphrase() ([]byte, error) {
	if path := c.Options.GetString(Keys.PassphraseFile); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("unable to read passphrase file %q: %w", path, err)
		}
		trimmed := []byte(strings.TrimRight(string(raw), "\r\n"))
		for i := range raw {
			raw[i] = 0
		}
		return trimmed, nil
	}

	pass := c.Options.GetString(Keys.Passphrase)
	if pass == "" {
		return nil, fmt.Errorf("no keystore passphrase configured, set USI_%s or USI_%s", Keys.Passphrase, Keys.PassphraseFile)
	}

	return []byte(pass), nil
}
