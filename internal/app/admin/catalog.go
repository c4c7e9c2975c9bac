package admin

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Apurer/coffee-admin/internal/domains/products/domain"
)

type catalog struct {
	Continents   map[string][]string `json:"continents"`
	ProcessTypes []string            `json:"processTypes"`
	Weights      []string            `json:"weights"`
}

// catalogCommand prints the accepted origin, process and weight values.
// It needs no backend.
func (c *cli) catalogCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Show accepted continents, countries, process types and weights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := catalog{
				Continents:   map[string][]string{},
				ProcessTypes: domain.ProcessTypes,
				Weights:      domain.WeightOptions,
			}
			for _, ct := range domain.Continents {
				out.Continents[ct.Name] = ct.Countries
			}
			p := printer{out: cmd.OutOrStdout(), format: c.v.GetString("output")}
			return p.emit(out, func(w io.Writer) error {
				for _, ct := range domain.Continents {
					fmt.Fprintf(w, "%s\t%s\n", ct.Name, strings.Join(ct.Countries, ", "))
				}
				fmt.Fprintln(w)
				fmt.Fprintf(w, "Process types\t%s\n", strings.Join(domain.ProcessTypes, ", "))
				fmt.Fprintf(w, "Weights\t%s\n", strings.Join(domain.WeightOptions, ", "))
				return nil
			})
		},
	}
}
