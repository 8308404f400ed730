package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/usi-samples/usi-client-go/fixtures"
)

const usage = `Usage:
usi <option>
  /c                - Calls CreateUSI and VerifyUSI
  /b                - Calls BulkUpload returning a ReceiptNumber
  /r ReceiptNumber  - Calls BulkUploadRetrieve using ReceiptNumber
  /v                - Calls BulkVerify
  /uc               - Calls Update Contact Details
  /g                - Calls GetNonDvsDocuments
  /e                - Exit
Enter your choice and press enter.
`

// Menu is the interactive loop. Every choice runs one operation against
// the samples and prints its result.
type Menu struct {
	Client  Client
	Samples *fixtures.Samples
	In      io.Reader
	Out     io.Writer
}

// Run shows the usage and reads choices until /e, an unknown choice or the
// end of input.
func (m *Menu) Run(ctx context.Context) error {
	in := bufio.NewScanner(m.In)

	read := func() (string, bool) {
		if !in.Scan() {
			return "", false
		}
		return in.Text(), true
	}

	for {
		fmt.Fprint(m.Out, usage)
		choice, ok := read()
		if !ok {
			return in.Err()
		}

		var output string
		var err error

		switch strings.ToUpper(strings.TrimSpace(choice)) {
		case "/C":
			output, err = m.Client.CreateAndVerifyUSI(ctx, m.Samples.CreateAndVerify)
		case "/B":
			output, err = m.Client.BulkUpload(ctx, m.Samples.BulkUpload)
		case "/R":
			fmt.Fprintln(m.Out, "Enter the receipt number:")
			receipt, _ := read()
			if receipt == "" {
				continue
			}
			output, err = m.Client.BulkUploadRetrieve(ctx, receipt)
		case "/V":
			output, err = m.Client.BulkVerify(ctx, m.Samples.BulkVerify)
		case "/UC":
			fmt.Fprintln(m.Out, "Please enter a USI to update (you must have permission):")
			value, _ := read()
			output, err = m.Client.UpdateContactDetails(ctx, value, m.Samples.ContactDetails.Details())
		case "/G":
			output, err = m.Client.GetNonDvsDocumentTypes(ctx)
		case "/E":
			return nil
		default:
			return nil
		}

		if err != nil {
			fmt.Fprintln(m.Out, err.Error())
			continue
		}
		fmt.Fprintln(m.Out, output)
	}
}

func runMenu(cmd *cobra.Command) error {
	client, samples, err := session(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	m := &Menu{
		Client:  client,
		Samples: samples,
		In:      cmd.InOrStdin(),
		Out:     cmd.OutOrStdout(),
	}
	return m.Run(cmd.Context())
}
