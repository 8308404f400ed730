package cli

import (
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/usi-samples/usi-client-go/channel"
	"github.com/usi-samples/usi-client-go/config"
	"github.com/usi-samples/usi-client-go/fixtures"
	"github.com/usi-samples/usi-client-go/keystore"
	"github.com/usi-samples/usi-client-go/operations"
	"github.com/usi-samples/usi-client-go/requests"
	"github.com/usi-samples/usi-client-go/sts"
	"github.com/usi-samples/usi-client-go/usi"
)

// Client is the set of operations the menu and the commands run.
type Client interface {
	CreateUSI(ctx context.Context, a requests.Applicant) (string, error)
	CreateAndVerifyUSI(ctx context.Context, a requests.Applicant) (string, error)
	BulkUpload(ctx context.Context, applicants []requests.Applicant) (string, error)
	BulkUploadRetrieve(ctx context.Context, receiptNumber string) (string, error)
	BulkVerify(ctx context.Context, specs []requests.VerificationSpec) (string, error)
	UpdateContactDetails(ctx context.Context, usiValue string, contact usi.ContactDetails) (string, error)
	GetNonDvsDocumentTypes(ctx context.Context) (string, error)
}

var _ Client = &operations.Runner{}

// TokenProvider builds the token provider from configuration: the keystore
// credential exchanged at the STS, cached when the token cache is on.
func TokenProvider(cfg *config.UsiConfig) sts.TokenProvider {
	options := cfg.Options

	alias := options.GetString(config.Keys.CredentialAlias)
	appliesTo := options.GetString(config.Keys.AppliesTo)

	var provider sts.TokenProvider = &sts.Provider{
		Name:      options.GetString(config.Keys.StsEndpointName),
		Address:   options.GetString(config.Keys.StsAddress),
		AppliesTo: appliesTo,
		Timeout:   options.GetDuration(config.Keys.StsTimeout),
		RootCAs:   cfg.RootCAs,
		Source: &sts.KeystoreSource{
			Path:          keystore.ResolvePath(options.GetString(config.Keys.KeystorePath)),
			Alias:         alias,
			Passphrase:    cfg.LoadPassphrase,
			RenewalWindow: options.GetDuration(config.Keys.RenewalWindow),
		},
	}

	if options.GetBool(config.Keys.TokenCache) {
		provider = sts.NewCachingProvider(provider, alias+"|"+appliesTo, options.GetDuration(config.Keys.TokenCacheSkew))
	}

	return provider
}

// NewRunner wires the configured token provider, channel manager and request
// factory into an operations runner writing progress to out.
func NewRunner(cfg *config.UsiConfig, out io.Writer) *operations.Runner {
	manager := channel.NewManagerFromConfig(cfg, TokenProvider(cfg))
	factory := requests.NewFactory(cfg.Options.GetString(config.Keys.OrgCode), rand.NewSource(time.Now().UnixNano()))

	return operations.NewRunner(operations.ManagerOpener(manager), factory, out)
}

// LoadSamples reads the configured fixtures.
func LoadSamples(cfg *config.UsiConfig) (*fixtures.Samples, error) {
	return fixtures.Load(cfg.Options.GetString(config.Keys.FixturesFile))
}

// session builds what every command needs.
func session(out io.Writer) (Client, *fixtures.Samples, error) {
	cfg := config.GetConfig()

	samples, err := LoadSamples(cfg)
	if err != nil {
		return nil, nil, err
	}

	return NewRunner(cfg, out), samples, nil
}
