package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/usi-samples/usi-client-go/fixtures"
)

type operationFunc func(ctx context.Context, c Client, s *fixtures.Samples, args []string) (string, error)

// operationCommand runs one operation against the configured samples and
// prints its result.
func operationCommand(use, short string, args cobra.PositionalArgs, run operationFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, samples, err := session(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			output, err := run(cmd.Context(), client, samples, args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}
}

var largeVerify bool

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Show the interactive menu",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMenu(cmd)
	},
}

var createCmd = operationCommand("create", "Create a USI for the single sample applicant", cobra.NoArgs,
	func(ctx context.Context, c Client, s *fixtures.Samples, args []string) (string, error) {
		return c.CreateUSI(ctx, s.Create)
	})

var createVerifyCmd = operationCommand("create-verify", "Create a USI and verify it", cobra.NoArgs,
	func(ctx context.Context, c Client, s *fixtures.Samples, args []string) (string, error) {
		return c.CreateAndVerifyUSI(ctx, s.CreateAndVerify)
	})

var bulkUploadCmd = operationCommand("bulk-upload", "Upload the sample applications, returning a receipt number", cobra.NoArgs,
	func(ctx context.Context, c Client, s *fixtures.Samples, args []string) (string, error) {
		return c.BulkUpload(ctx, s.BulkUpload)
	})

var retrieveCmd = operationCommand("retrieve <receipt>", "Retrieve the results of a bulk upload", cobra.ExactArgs(1),
	func(ctx context.Context, c Client, s *fixtures.Samples, args []string) (string, error) {
		return c.BulkUploadRetrieve(ctx, args[0])
	})

var bulkVerifyCmd = operationCommand("bulk-verify", "Verify the sample USIs", cobra.NoArgs,
	func(ctx context.Context, c Client, s *fixtures.Samples, args []string) (string, error) {
		if largeVerify {
			return c.BulkVerify(ctx, s.LargeVerifications())
		}
		return c.BulkVerify(ctx, s.BulkVerify)
	})

var updateContactCmd = operationCommand("update-contact <usi>", "Update the contact details of a USI you have permission for", cobra.ExactArgs(1),
	func(ctx context.Context, c Client, s *fixtures.Samples, args []string) (string, error) {
		return c.UpdateContactDetails(ctx, args[0], s.ContactDetails.Details())
	})

var documentTypesCmd = operationCommand("document-types", "List the non DVS document types", cobra.NoArgs,
	func(ctx context.Context, c Client, s *fixtures.Samples, args []string) (string, error) {
		return c.GetNonDvsDocumentTypes(ctx)
	})

func init() {
	bulkVerifyCmd.Flags().BoolVar(&largeVerify, "large", false, "verify the large sample instead")

	rootCmd.AddCommand(
		menuCmd,
		createCmd,
		createVerifyCmd,
		bulkUploadCmd,
		retrieveCmd,
		bulkVerifyCmd,
		updateContactCmd,
		documentTypesCmd,
	)
}
