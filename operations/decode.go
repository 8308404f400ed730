package operations

import (
	"fmt"
	"strings"

	"github.com/usi-samples/usi-client-go/usi"
)

// blockSeparator separates the decoded records of bulk results.
const blockSeparator = "\n\n"

// DecodeApplication renders one application result on a single line.
func DecodeApplication(resp usi.ApplicationResponse) string {
	b := strings.Builder{}
	issued, ok := resp.IssuedUSI()

	switch resp.Result {
	case usi.ResultSuccess:
		b.WriteString(fmt.Sprintf("Application %s succeeded with USI %s.", resp.ApplicationId, issued))
	case usi.ResultMatchFound:
		b.WriteString(fmt.Sprintf("Application %s already exists.", resp.ApplicationId))
	case usi.ResultFailure:
		b.WriteString(fmt.Sprintf("Application %s failed.", resp.ApplicationId))
	}

	if ok {
		b.WriteString(fmt.Sprintf(" USI=%s.", issued))
	} else {
		b.WriteString(" USI is null.")
	}

	b.WriteString(fmt.Sprintf(" IdentityDocumentVerified=%s.", titleBool(resp.IdentityDocumentVerified)))

	if len(resp.Errors) > 0 {
		b.WriteString(" " + strings.Join(usi.ErrorMessages(resp.Errors), ". "))
	}

	return b.String()
}

// DecodeVerification renders one verification result, one field per line,
// with the name match items in response order.
func DecodeVerification(resp usi.VerificationResponse) string {
	b := strings.Builder{}
	b.WriteString(fmt.Sprintf("RecordId=%d\nUSI=%s\nUSIStatus=%s\n", resp.RecordId, resp.USI, resp.USIStatus))
	for _, item := range resp.Items {
		b.WriteString(fmt.Sprintf("%s=%s\n", item.Name(), item.Value))
	}
	b.WriteString(fmt.Sprintf("DateOfBirth=%s\n", resp.DateOfBirth))
	return b.String()
}

// DecodeDocumentTypes lists the non DVS document types.
func DecodeDocumentTypes(types []usi.NonDvsDocumentType) string {
	b := strings.Builder{}
	b.WriteString("The following non dvs document types were returned;")
	for _, t := range types {
		b.WriteString(fmt.Sprintf("\nId:%d Type:%s Sort Order:%d", t.Id, t.DocumentType, t.SortOrder))
	}
	return b.String()
}

func titleBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}
