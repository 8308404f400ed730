package usi

import (
	"encoding/xml"
	"fmt"
)

// NameKind names the choice elements of personal details.
type NameKind string

const (
	FirstName  NameKind = "FirstName"
	FamilyName NameKind = "FamilyName"
	MiddleName NameKind = "MiddleName"
	SingleName NameKind = "SingleName"
)

// VerifyNameKind names the choice elements of verify requests. It is the
// same set as NameKind minus MiddleName, declared separately by the schema.
type VerifyNameKind string

const (
	VerifyFirstName  VerifyNameKind = "FirstName"
	VerifyFamilyName VerifyNameKind = "FamilyName"
	VerifySingleName VerifyNameKind = "SingleName"
)

var verifyNameKinds = map[string]VerifyNameKind{
	string(VerifyFirstName):  VerifyFirstName,
	string(VerifyFamilyName): VerifyFamilyName,
	string(VerifySingleName): VerifySingleName,
}

// TranslateNameKind maps a personal-details name kind to the verify name kind
// of the same name.
func TranslateNameKind(kind NameKind) (VerifyNameKind, error) {
	v, ok := verifyNameKinds[string(kind)]
	if !ok {
		return "", fmt.Errorf("name kind %q has no verify equivalent", kind)
	}
	return v, nil
}

type Name struct {
	Kind  NameKind `json:"kind"`
	Value string   `json:"value"`
}

// Names is an ordered name choice list. It encodes as sibling elements
// without a wrapper, e.g. <FirstName>Jane</FirstName><FamilyName>Smith</FamilyName>.
type Names []Name

func (n Names) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	for _, name := range n {
		if err := encodeChoice(e, string(name.Kind), name.Value); err != nil {
			return err
		}
	}
	return nil
}

// Value returns the first name of the given kind.
func (n Names) Value(kind NameKind) string {
	for _, name := range n {
		if name.Kind == kind {
			return name.Value
		}
	}
	return ""
}

// ForVerify translates the list for a verify request.
func (n Names) ForVerify() (VerifyNames, error) {
	out := make(VerifyNames, 0, len(n))
	for _, name := range n {
		kind, err := TranslateNameKind(name.Kind)
		if err != nil {
			return nil, err
		}
		out = append(out, VerifyName{Kind: kind, Value: name.Value})
	}
	return out, nil
}

type VerifyName struct {
	Kind  VerifyNameKind `json:"kind"`
	Value string         `json:"value"`
}

// VerifyNames is the verify-side name choice list, encoded like Names.
type VerifyNames []VerifyName

func (n VerifyNames) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	for _, name := range n {
		if err := encodeChoice(e, string(name.Kind), name.Value); err != nil {
			return err
		}
	}
	return nil
}

func encodeChoice(e *xml.Encoder, element, value string) error {
	return e.EncodeElement(value, xml.StartElement{Name: xml.Name{Local: element}})
}
