package soap

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
	l "github.com/usi-samples/usi-client-go/logger"
)

var soapRequestTime = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "usi_soap_request_time_taken",
	Help:    "SOAP call latency distributions, by action.",
	Buckets: prometheus.LinearBuckets(0.25, 0.25, 20),
}, []string{"action"})

var soapFailure = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "usi_soap_failure",
		Help: "Total number of failed SOAP calls. Kind is fault, typed_fault or transport.",
	},
	[]string{"action", "kind"},
)

const contentType = "application/soap+xml; charset=utf-8"

// Client posts SOAP 1.2 envelopes to one endpoint address.
type Client struct {
	url        string
	addressing bool
	httpClient *http.Client
}

// NewClient returns a client for url. With addressing set, every envelope
// carries WS-Addressing Action, MessageID, ReplyTo and To headers.
func NewClient(url string, httpClient *http.Client, addressing bool) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		url:        url,
		addressing: addressing,
		httpClient: httpClient,
	}
}

// URL returns the endpoint address.
func (c *Client) URL() string {
	return c.url
}

func makeRequest(ctx context.Context, url, action string, payload []byte) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", fmt.Sprintf(`%s; action="%s"`, contentType, action))
	return req, nil
}

// Encode renders the envelope for a call without sending it.
func (c *Client) Encode(action string, security *Security, in interface{}) ([]byte, error) {
	env := newEnvelope(action, c.url, c.addressing, security, in)

	buf := bytes.NewBufferString(xml.Header)
	if err := xml.NewEncoder(buf).Encode(env); err != nil {
		return nil, fmt.Errorf("unable to encode %s envelope: %w", actionName(action), err)
	}
	return buf.Bytes(), nil
}

// Call sends in as the body of an envelope for action and decodes the
// response body into out. A returned *Fault is a SOAP fault; every other
// failure is a *TransportError.
func (c *Client) Call(ctx context.Context, action string, security *Security, in, out interface{}) error {
	name := actionName(action)

	payload, err := c.Encode(action, security, in)
	if err != nil {
		return &TransportError{Action: name, Err: err}
	}

	req, err := makeRequest(ctx, c.url, action, payload)
	if err != nil {
		return &TransportError{Action: name, Err: err}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	soapRequestTime.WithLabelValues(name).Observe(time.Since(start).Seconds())

	if err != nil {
		incSoapFailure(name, "transport")
		return &TransportError{Action: name, Err: fmt.Errorf("error sending request [%w]", err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		incSoapFailure(name, "transport")
		return &TransportError{Action: name, StatusCode: resp.StatusCode, Err: fmt.Errorf("unable to read response [%w]", err)}
	}

	l.Log.WithFields(logrus.Fields{"action": name, "status": resp.StatusCode, "bytes": len(raw)}).Debug("soap response received")

	var env responseEnvelope
	decodeErr := xml.Unmarshal(raw, &env)

	if decodeErr == nil && env.Body.Fault != nil {
		fault := env.Body.Fault
		fault.Action = name
		if fault.Typed() {
			incSoapFailure(name, "typed_fault")
		} else {
			incSoapFailure(name, "fault")
		}
		return fault
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		incSoapFailure(name, "transport")
		return &TransportError{Action: name, StatusCode: resp.StatusCode, Err: errors.New(snippet(raw))}
	}

	if decodeErr != nil {
		incSoapFailure(name, "transport")
		return &TransportError{Action: name, StatusCode: resp.StatusCode, Err: fmt.Errorf("unable to decode envelope [%w]", decodeErr)}
	}

	if out == nil {
		return nil
	}

	if err := xml.Unmarshal(env.Body.Content, out); err != nil {
		incSoapFailure(name, "transport")
		return &TransportError{Action: name, StatusCode: resp.StatusCode, Err: fmt.Errorf("unable to decode %s response [%w]", name, err)}
	}

	return nil
}

// actionName returns the last segment of an action URI, which is the
// operation name for both the USI contract and WS-Trust.
func actionName(action string) string {
	if i := strings.LastIndex(action, "/"); i >= 0 && i < len(action)-1 {
		return action[i+1:]
	}
	return action
}

func snippet(raw []byte) string {
	const max = 256
	s := strings.TrimSpace(string(raw))
	if len(s) > max {
		return s[:max] + "..."
	}
	if s == "" {
		return "empty response body"
	}
	return s
}

func incSoapFailure(action, kind string) {
	soapFailure.WithLabelValues(action, kind).Inc()
}
