// Package cli implements axiomctl, the scripted-administration
// companion to the console server. Commands drive the same platform
// client and screen controllers the web console uses, so a list in the
// terminal shows exactly what the table screen shows.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/axiomconsultancy/axiom-admin-go/axiom"
)

// cliFetchKey keys the controllers' fetch sequencing. The CLI runs one
// fetch at a time, so a single key is enough.
const cliFetchKey = "cli"

type clientKey struct{}

func withClient(ctx context.Context, client *axiom.Client) context.Context {
	return context.WithValue(ctx, clientKey{}, client)
}

// clientFrom returns the platform client resolved by the root command.
func clientFrom(ctx context.Context) *axiom.Client {
	client, _ := ctx.Value(clientKey{}).(*axiom.Client)
	return client
}

// NewRootCmd builds the axiomctl command tree. The platform client is
// resolved once here, from flags or the environment, and handed to the
// subcommands through the command context.
func NewRootCmd(version string) *cobra.Command {
	var (
		baseURL string
		token   string
	)

	cmd := &cobra.Command{
		Use:          "axiomctl",
		Short:        "Scripted administration for the Axiom Assistant platform",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			godotenv.Load()

			if baseURL == "" {
				baseURL = os.Getenv("AXIOM_API_BASE_URL")
			}
			if baseURL == "" {
				return errors.New("platform URL missing: set --base-url or AXIOM_API_BASE_URL")
			}
			if token == "" {
				token = os.Getenv("AXIOM_ADMIN_TOKEN")
			}

			client := axiom.NewClient(baseURL, &http.Client{
				Timeout: 30 * time.Second,
			}).WithToken(token)

			cmd.SetContext(withClient(cmd.Context(), client))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Platform API base URL (env: AXIOM_API_BASE_URL)")
	cmd.PersistentFlags().StringVar(&token, "token", "", "Admin bearer token (env: AXIOM_ADMIN_TOKEN)")

	cmd.AddCommand(newAgentsCmd())
	cmd.AddCommand(newUsersCmd())
	cmd.AddCommand(newCouponsCmd())
	cmd.AddCommand(newSummariesCmd())

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.SetVersionTemplate("{{.Version}}\n")
	if version != "" {
		cmd.Version = version
	} else {
		cmd.Version = "dev"
	}

	return cmd
}

// confirm asks a y/N question on the command's input and reports whether
// the answer was yes.
func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", question)

	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
