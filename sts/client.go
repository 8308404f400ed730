package sts

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
	l "github.com/usi-samples/usi-client-go/logger"
	"github.com/usi-samples/usi-client-go/soap"
)

var stsRequestTime = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "usi_sts_request_time_taken",
	Help:    "STS token issue latency distributions.",
	Buckets: prometheus.LinearBuckets(0.25, 0.25, 20),
})

var stsFailure = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "usi_sts_failure",
		Help: "Total number of failed token requests, by reason.",
	},
	[]string{"reason"},
)

// headerTTL is the validity of the WS-Security timestamp on an issue request.
const headerTTL = 5 * time.Minute

var errNoToken = errors.New("STS response carried no security token")

// Client sends issue requests to one STS address.
type Client struct {
	soap *soap.Client
	name string
	now  func() time.Time
}

// NewClient returns an STS client posting to address. name is the configured
// STS endpoint name, used in logs. httpClient must present the client
// certificate.
func NewClient(name, address string, httpClient *http.Client) *Client {
	return &Client{
		soap: soap.NewClient(address, httpClient, true),
		name: name,
		now:  time.Now,
	}
}

// Issue sends rst with cert in the security header and returns the issued
// token.
func (c *Client) Issue(ctx context.Context, rst *RequestSecurityToken, cert tls.Certificate) (*SecurityToken, error) {
	if len(cert.Certificate) == 0 {
		stsFailure.WithLabelValues("credential").Inc()
		return nil, &AuthenticationError{Op: "issue", Err: errors.New("no client certificate")}
	}

	security := soap.NewSecurity(c.now(), headerTTL).WithCertificate(cert.Certificate[0])

	var resp issueResponse
	start := time.Now()
	err := c.soap.Call(ctx, IssueAction, security, rst, &resp)
	stsRequestTime.Observe(time.Since(start).Seconds())

	if err != nil {
		var fault *soap.Fault
		if errors.As(err, &fault) {
			stsFailure.WithLabelValues("fault").Inc()
		} else {
			stsFailure.WithLabelValues("transport").Inc()
		}
		l.Log.WithFields(logrus.Fields{"sts": c.name, "address": c.soap.URL(), "error": err}).Error("token request failed")
		return nil, &AuthenticationError{Op: "issue", Err: err}
	}

	rstr := resp.first()
	if rstr == nil {
		stsFailure.WithLabelValues("response").Inc()
		return nil, &AuthenticationError{Op: "issue", Err: errNoToken}
	}

	tok, err := rstr.token(rst.AppliesTo.EndpointReference.Address, rst.Lifetime)
	if err != nil {
		stsFailure.WithLabelValues("response").Inc()
		return nil, &AuthenticationError{Op: "issue", Err: fmt.Errorf("unable to read the issued token [%w]", err)}
	}

	l.Log.WithFields(logrus.Fields{"sts": c.name, "appliesTo": tok.AppliesTo, "expires": tok.Expires}).Debug("security token issued")
	return tok, nil
}
