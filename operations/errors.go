package operations

import (
	"errors"
	"fmt"

	"github.com/usi-samples/usi-client-go/soap"
)

// ValidationError is a client-side precondition failure. No call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// typedFault returns the fault in err when it carries ErrorInfo detail.
func typedFault(err error) (*soap.Fault, bool) {
	var fault *soap.Fault
	if errors.As(err, &fault) && fault.Typed() {
		return fault, true
	}
	return nil, false
}

// FaultReport renders a typed fault as the two line message shown to the
// user. withCode adds the first detail code, which CreateUSI does for an
// array of errors.
func FaultReport(operation string, fault *soap.Fault, withCode bool) string {
	if withCode && fault.Array() {
		return fmt.Sprintf("%s returned a fault\nDetail: %s \nCode: %s", operation, fault.Message(), fault.DetailCode())
	}
	return fmt.Sprintf("%s returned a fault\nDetail: %s", operation, fault.Message())
}
