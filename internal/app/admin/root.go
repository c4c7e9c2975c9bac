package admin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Apurer/coffee-admin/internal/shared/resource"
)

// ErrReported marks a failure whose user-facing message was already printed.
var ErrReported = errors.New("reported")

type cli struct {
	v          *viper.Viper
	configFile string
	yes        bool
}

// NewRootCommand builds the coffee-admin command tree.
func NewRootCommand() *cobra.Command {
	c := &cli{v: NewViper()}
	root := &cobra.Command{
		Use:   "coffee-admin",
		Short: "Administer products, members and orders of the coffee shop",
		Long: `coffee-admin manages the coffee shop catalog, members and orders through
the shop's REST API.

Configuration sources (in order of precedence):
  1. Command line flags
  2. Environment variables (COFFEE_API_URL, COFFEE_PAGE_SIZE, COFFEE_S3_REGION, ...)
  3. A YAML config file: --config, COFFEE_CONFIG, ./coffee-admin.yaml
     or <user config dir>/coffee-admin/coffee-admin.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if c.configFile != "" {
				c.v.SetConfigFile(c.configFile)
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configFile, "config", "", "config file (YAML)")
	flags.String("api-url", "", "backend origin, e.g. http://localhost:8080")
	flags.StringP("output", "o", OutputTable, "output format: table, json or yaml")
	flags.Int("page-size", 0, "rows per list page")
	flags.Duration("http-timeout", 0, "per-request timeout")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	for key, flag := range map[string]string{
		"api_url":      "api-url",
		"output":       "output",
		"page_size":    "page-size",
		"http_timeout": "http-timeout",
		"log_level":    "log-level",
	} {
		_ = c.v.BindPFlag(key, flags.Lookup(flag))
	}

	root.AddCommand(
		c.productsCommand(),
		c.membersCommand(),
		c.ordersCommand(),
		c.catalogCommand(),
	)
	return root
}

// withApp loads the configuration, wires the App for one command and
// prints the resulting status message.
func (c *cli) withApp(cmd *cobra.Command, fn func(ctx context.Context, a *App, p printer) error) error {
	cfg, err := LoadConfig(c.v)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := New(ctx, cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = a.Close(closeCtx)
	}()

	p := printer{out: cmd.OutOrStdout(), format: cfg.Output, origin: a.client.Origin()}
	runErr := fn(ctx, a, p)
	reported := report(cmd.ErrOrStderr(), a.board)
	if runErr != nil && reported {
		return fmt.Errorf("%w: %w", ErrReported, runErr)
	}
	return runErr
}

// report prints the active status message, if any.
func report(w io.Writer, board *resource.Board) bool {
	msg, ok := board.Current()
	if !ok {
		return false
	}
	fmt.Fprintf(w, "%s: %s\n", msg.Kind, msg.Text)
	return true
}

func (c *cli) confirmer(cmd *cobra.Command) resource.Confirmer {
	if c.yes {
		return resource.AlwaysConfirm
	}
	return promptConfirmer(cmd.InOrStdin(), cmd.ErrOrStderr())
}
