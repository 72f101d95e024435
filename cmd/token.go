package cmd

import (
	"fmt"
	"os"
	"time"

	"cnet-api/core/auth"
	"cnet-api/core/config"

	"github.com/spf13/cobra"
)

var tokenOpts struct {
	name   string
	tenant string
	roles  []string
	ttl    time.Duration
}

// tokenCmd mints a bearer token signed with the configured settings.
var tokenCmd = &cobra.Command{
	Use:   "token [subject]",
	Short: "Mint a bearer token for local testing",
	Long:  `Signs a token with AUTH_SECRET_KEY for the configured issuer and audience and prints it.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return err
		}
		a, err := auth.New(cfg.Auth)
		if err != nil {
			return err
		}

		token, err := a.GenerateToken(auth.TokenRequest{
			Subject: args[0],
			Name:    tokenOpts.name,
			Tenant:  tokenOpts.tenant,
			Roles:   tokenOpts.roles,
			TTL:     tokenOpts.ttl,
		})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(os.Stdout, token)
		return err
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenOpts.name, "name", "", "display name claim")
	tokenCmd.Flags().StringVar(&tokenOpts.tenant, "tenant", "", "tenant claim")
	tokenCmd.Flags().StringSliceVar(&tokenOpts.roles, "roles", nil, "comma separated roles")
	tokenCmd.Flags().DurationVar(&tokenOpts.ttl, "ttl", 0, "token lifetime (default AUTH_TOKEN_TTL_MINUTES)")
	RootCmd.AddCommand(tokenCmd)
}
