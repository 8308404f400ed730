package soap

import (
	"fmt"
	"strings"

	"github.com/usi-samples/usi-client-go/usi"
)

type faultCode struct {
	Value   string     `xml:"Value"`
	Subcode *faultCode `xml:"Subcode"`
}

type faultReason struct {
	Text []string `xml:"Text"`
}

type faultDetail struct {
	ErrorInfo        *usi.ErrorInfo  `xml:"ErrorInfo"`
	ArrayOfErrorInfo []usi.ErrorInfo `xml:"ArrayOfErrorInfo>ErrorInfo"`
	Raw              string          `xml:",innerxml"`
}

// Fault is a SOAP fault. A fault whose detail is an ErrorInfo or an
// ArrayOfErrorInfo is a typed service fault. Anything else is a generic fault
// raised by the service host rather than the service.
type Fault struct {
	Code   faultCode   `xml:"Code"`
	Reason faultReason `xml:"Reason"`
	Detail faultDetail `xml:"Detail"`

	// SOAP 1.1 spellings, kept so an STS answering with 1.1 still decodes.
	FaultCode   string      `xml:"faultcode"`
	FaultString string      `xml:"faultstring"`
	Detail11    faultDetail `xml:"detail"`

	Action string `xml:"-"`
}

func (f *Fault) detail() faultDetail {
	if f.Detail.ErrorInfo != nil || len(f.Detail.ArrayOfErrorInfo) > 0 {
		return f.Detail
	}
	return f.Detail11
}

// Details returns the ErrorInfo records of a typed fault.
func (f *Fault) Details() []usi.ErrorInfo {
	d := f.detail()
	if len(d.ArrayOfErrorInfo) > 0 {
		return d.ArrayOfErrorInfo
	}
	if d.ErrorInfo != nil {
		return []usi.ErrorInfo{*d.ErrorInfo}
	}
	return nil
}

// Typed reports whether the fault carries ErrorInfo detail.
func (f *Fault) Typed() bool {
	return len(f.Details()) > 0
}

// Array reports whether the detail was an ArrayOfErrorInfo.
func (f *Fault) Array() bool {
	return len(f.detail().ArrayOfErrorInfo) > 0
}

// Message returns the first detail message, falling back to the reason.
func (f *Fault) Message() string {
	if details := f.Details(); len(details) > 0 {
		return details[0].Message
	}
	return f.ReasonText()
}

// DetailCode returns the first detail code.
func (f *Fault) DetailCode() string {
	if details := f.Details(); len(details) > 0 {
		return details[0].Code
	}
	return ""
}

// ReasonText returns the fault reason text.
func (f *Fault) ReasonText() string {
	if len(f.Reason.Text) > 0 {
		return strings.TrimSpace(strings.Join(f.Reason.Text, " "))
	}
	return strings.TrimSpace(f.FaultString)
}

// FaultCodeValue returns the fault code, e.g. s:Sender.
func (f *Fault) FaultCodeValue() string {
	if f.Code.Value != "" {
		if f.Code.Subcode != nil && f.Code.Subcode.Value != "" {
			return f.Code.Value + "/" + f.Code.Subcode.Value
		}
		return f.Code.Value
	}
	return f.FaultCode
}

func (f *Fault) Error() string {
	b := strings.Builder{}
	b.WriteString(fmt.Sprintf("soap fault [%s]", f.FaultCodeValue()))
	if f.Action != "" {
		b.WriteString(fmt.Sprintf(" from %s", f.Action))
	}
	b.WriteString(": ")
	b.WriteString(f.Message())
	if code := f.DetailCode(); code != "" {
		b.WriteString(fmt.Sprintf(" [Code: %s]", code))
	}
	return b.String()
}

// TransportError is any failure of a call that is not a SOAP fault: network
// errors, non-2xx responses without an envelope, undecodable bodies.
type TransportError struct {
	Action     string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("soap call %s failed, http status [%d]: %v", e.Action, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("soap call %s failed: %v", e.Action, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
