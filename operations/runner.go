// Package operations runs the business operations of the client. Each
// operation builds its request, opens a channel, makes exactly one remote
// call (two for create and verify), closes the channel and decodes the
// result into text.
package operations

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
	"github.com/usi-samples/usi-client-go/channel"
	l "github.com/usi-samples/usi-client-go/logger"
	"github.com/usi-samples/usi-client-go/requests"
	"github.com/usi-samples/usi-client-go/usi"
)

var operationTime = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "usi_operation_time_taken",
	Help:    "Operation latency distributions, channel open included.",
	Buckets: prometheus.LinearBuckets(0.25, 0.25, 20),
}, []string{"operation"})

var operationTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "usi_operation_total",
		Help: "Total number of operations run, by outcome: success, fault, invalid or error.",
	},
	[]string{"operation", "outcome"},
)

// Channel is an open, authenticated service channel.
type Channel interface {
	usi.Service
	Close() error
}

// ChannelOpener opens one channel at a time. Close releases what Open
// acquired and is called after every operation.
type ChannelOpener interface {
	OpenChannel(ctx context.Context) (Channel, error)
	Close() error
}

type managerOpener struct {
	manager *channel.Manager
}

// ManagerOpener adapts a channel manager.
func ManagerOpener(m *channel.Manager) ChannelOpener {
	return &managerOpener{manager: m}
}

func (o *managerOpener) OpenChannel(ctx context.Context) (Channel, error) {
	ch, err := o.manager.Open(ctx)
	if err != nil {
		return nil, err
	}
	return ch, nil
}

func (o *managerOpener) Close() error {
	return o.manager.Close()
}

// Runner runs operations against the channels of one opener.
type Runner struct {
	opener   ChannelOpener
	requests *requests.Factory
	out      io.Writer
}

// NewRunner returns a runner. Progress lines, such as the create result of
// create and verify, go to out.
func NewRunner(opener ChannelOpener, factory *requests.Factory, out io.Writer) *Runner {
	if out == nil {
		out = io.Discard
	}
	return &Runner{opener: opener, requests: factory, out: out}
}

// Requests returns the request factory.
func (r *Runner) Requests() *requests.Factory {
	return r.requests
}

// call opens a channel, runs fn on it and releases the channel and the
// factory on every path.
func (r *Runner) call(ctx context.Context, operation string, fn func(ctx context.Context, ch Channel) (string, error)) (result string, err error) {
	log := l.Log.WithFields(logrus.Fields{"operation": operation, "correlation_id": uuid.NewString()})
	start := time.Now()

	defer func() {
		operationTime.WithLabelValues(operation).Observe(time.Since(start).Seconds())
		operationTotal.WithLabelValues(operation, outcome(err, result)).Inc()
	}()

	defer func() {
		if cerr := r.opener.Close(); cerr != nil {
			log.WithFields(logrus.Fields{"error": cerr}).Warn("unable to close channel factory")
		}
		log.Debug("channel closed")
	}()

	log.Debug("opening channel")
	ch, err := r.opener.OpenChannel(ctx)
	if err != nil {
		log.WithFields(logrus.Fields{"error": err}).Error("unable to open channel")
		return "", err
	}
	defer ch.Close()

	log.Debug("awaiting response")
	result, err = fn(ctx, ch)
	if err != nil {
		log.WithFields(logrus.Fields{"error": err}).Error("operation failed")
		return "", err
	}

	log.Debug("response decoded")
	return result, nil
}

func outcome(err error, result string) string {
	switch {
	case err == nil && faultResult(result):
		return "fault"
	case err == nil:
		return "success"
	default:
		return "error"
	}
}

// reject counts a request refused before any call is made.
func reject(operation string, err error) error {
	operationTotal.WithLabelValues(operation, "invalid").Inc()
	l.Log.WithFields(logrus.Fields{"operation": operation, "error": err}).Debug("request rejected")
	return err
}
