// Command devtoken mints bearer tokens for operators.  Logins live in the
// cooperative's identity provider; this is for local development, smoke
// tests and support staff who need to act as a given operator.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ruta593/fleet-console/internal/config"
	"github.com/ruta593/fleet-console/internal/model"
	"github.com/ruta593/fleet-console/internal/utils"
)

func main() {
	_ = godotenv.Load()
	if err := newRootCommand(os.Stdout, config.LoadAuthConfig).Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCommand builds the command.  loadAuth is called only when the
// command runs so --help works without JWT_SECRET.
func newRootCommand(out io.Writer, loadAuth func() config.AuthConfig) *cobra.Command {
	var (
		userID        uint64
		cooperativeID uint64
		role          string
		ttlMin        int
	)

	cmd := &cobra.Command{
		Use:   "devtoken",
		Short: "Mint a bearer token for an operator",
		Long: `Mint an HS256 bearer token carrying sub, role and cooperative_id, signed
with JWT_SECRET. The lifetime defaults to ACCESS_TOKEN_TTL_MIN minutes.

Examples:
  devtoken --user 7 --cooperative 3 --role ADMIN
  devtoken --user 12 --cooperative 3 --role CLERK --ttl 30`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			role = strings.ToUpper(strings.TrimSpace(role))
			if role != model.RoleAdmin && role != model.RoleClerk {
				return fmt.Errorf("role must be %s or %s", model.RoleAdmin, model.RoleClerk)
			}
			if userID == 0 || cooperativeID == 0 {
				return fmt.Errorf("--user and --cooperative are required")
			}
			auth := loadAuth()
			if ttlMin <= 0 {
				ttlMin = auth.AccessTTLMin
			}
			tok, err := utils.NewAccessToken(auth.JWTSecret, model.Identity{
				UserID:        userID,
				CooperativeID: cooperativeID,
				Role:          role,
			}, ttlMin)
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}
			fmt.Fprintln(out, tok.Token)
			fmt.Fprintf(out, "expires %s\n", tok.Exp.Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().Uint64Var(&userID, "user", 0, "operator id (sub claim)")
	cmd.Flags().Uint64Var(&cooperativeID, "cooperative", 0, "cooperative id")
	cmd.Flags().StringVar(&role, "role", model.RoleClerk, "ADMIN or CLERK")
	cmd.Flags().IntVar(&ttlMin, "ttl", 0, "lifetime in minutes (default ACCESS_TOKEN_TTL_MIN)")
	return cmd
}
