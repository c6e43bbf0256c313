package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"goonj/config"
)

// adminPasswordEnv lets scripts pass the password without putting it on the command line.
const adminPasswordEnv = "GOONJ_ADMIN_PASSWORD"

var (
	adminEmail    string
	adminName     string
	adminPassword string
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage dashboard operators",
}

var adminCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an admin account",
	Long: `Create a dashboard operator who can log in at POST /admin/login.

The password is taken from --password or, when omitted, from $GOONJ_ADMIN_PASSWORD.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		password := adminPassword
		if password == "" {
			password = os.Getenv(adminPasswordEnv)
		}
		if password == "" {
			return fmt.Errorf("password is required (--password or $%s)", adminPasswordEnv)
		}
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		st, err := openStores(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		admin, err := newAuthService(cfg, st.admins).CreateAdmin(cmd.Context(), adminEmail, password, adminName)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", admin.Email, admin.ID)
		return nil
	},
}

func init() {
	adminCreateCmd.Flags().StringVar(&adminEmail, "email", "", "admin email (required)")
	adminCreateCmd.Flags().StringVar(&adminName, "name", "", "display name")
	adminCreateCmd.Flags().StringVar(&adminPassword, "password", "", "password (prefer $"+adminPasswordEnv+")")
	_ = adminCreateCmd.MarkFlagRequired("email")
	adminCmd.AddCommand(adminCreateCmd)
}
