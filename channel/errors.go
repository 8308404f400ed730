package channel

import (
	"errors"
	"fmt"
	"strings"
)

// Reason classifies a channel error.
type Reason string

const (
	NoEndpoint   Reason = "NoEndpoint"
	FactoryInUse Reason = "FactoryInUse"
	OpenFailed   Reason = "OpenFailed"
)

// ErrClosed is returned by calls on a closed channel or factory.
var ErrClosed = errors.New("channel is closed")

// Error is a failure to open a channel.
type Error struct {
	Reason   Reason
	Endpoint string
	Err      error
}

func (e *Error) Error() string {
	b := strings.Builder{}
	b.WriteString(fmt.Sprintf("unable to open channel [Reason: %s]", e.Reason))
	if e.Endpoint != "" {
		b.WriteString(fmt.Sprintf(" [Endpoint: %s]", e.Endpoint))
	}
	if e.Err != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Err))
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}
