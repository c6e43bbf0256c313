package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"goonj/config"
	"goonj/internal/clock"
	"goonj/internal/domain"
	"goonj/internal/services"
)

var (
	exportFilter domain.RegistrationFilter
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export registrations as CSV",
	Long: `Read every registration from the store, apply the filters, and write CSV.

Examples:
  # Write registrations-YYYYMMDD-HHMMSS.csv in the current directory
  goonj export

  # Completed payments of one course, to stdout
  goonj export --course "B.Tech" --payment-status completed --out -`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		st, err := openStores(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		admin := services.NewAdminService(st.registrations, 0, clock.NewSystem(), logger)
		var buf bytes.Buffer
		filename, err := admin.Export(cmd.Context(), exportFilter, &buf)
		if err != nil {
			return err
		}
		return writeExport(cmd.OutOrStdout(), exportOut, filename, buf.Bytes())
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFilter.Query, "query", "q", "", "substring of name, email, phone or transaction id")
	exportCmd.Flags().StringVar(&exportFilter.Course, "course", domain.FilterAll, "exact course")
	exportCmd.Flags().StringVar(&exportFilter.Year, "year", domain.FilterAll, "exact year")
	exportCmd.Flags().StringVar(&exportFilter.PaymentStatus, "payment-status", domain.FilterAll, "pending, completed or all")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", `output file; "-" for stdout (default: timestamped name)`)
}

// writeExport writes data to out, to stdout when out is "-", or to filename when out is empty.
func writeExport(stdout io.Writer, out, filename string, data []byte) error {
	switch out {
	case "-":
		_, err := stdout.Write(data)
		return err
	case "":
		out = filename
	}
	if err := os.WriteFile(out, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	fmt.Fprintf(stdout, "wrote %s\n", out)
	return nil
}
