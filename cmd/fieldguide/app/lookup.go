package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aviaryworks/fieldguide/internal/pipeline"
	"github.com/aviaryworks/fieldguide/pkg/record"
)

// NewLookupCommand creates the lookup command, the primary entry point of
// the CLI: query the sources, merge, explain, print.
func (a *App) NewLookupCommand() *cobra.Command {
	var (
		region string
		year   int
		role   string
		limit  int
		apiKey string
	)

	cmd := &cobra.Command{
		Use:   "lookup <name>",
		Short: "Look up a species or heritage entity and explain it",
		Example: `  fieldguide lookup "Giant Panda"
  fieldguide lookup "Ailuropoda melanoleuca" --role technical
  fieldguide lookup "Flamenco" --region ES --role guide
  fieldguide lookup "Eurasian Lynx" --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			credential := apiKey
			if credential == "" {
				credential = a.config.GenerationAPIKey
			}

			payload, err := a.Pipeline().Run(cmd.Context(), pipeline.Request{
				Name:       args[0],
				Region:     region,
				Year:       year,
				Role:       role,
				Credential: credential,
				Limit:      limit,
			})
			if err != nil {
				a.logger.Debug().Err(err).Msg("lookup failed")
				return fmt.Errorf("%w\nhint: %s", err, pipeline.FailureHint(err))
			}

			if a.config.JSON {
				return printJSON(cmd, payload)
			}
			printRecord(cmd, payload)
			return nil
		},
	}

	cmd.Flags().StringVar(&region, "region", "", "ISO country code filter (heritage lookups)")
	cmd.Flags().IntVar(&year, "year", 0, "inscription year filter (heritage lookups)")
	cmd.Flags().StringVar(&role, "role", "", "explanation audience: general, youth, technical, guide")
	cmd.Flags().IntVar(&limit, "limit", 0, "max results requested per source")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "generation API key (overrides GEMINI_API_KEY)")

	return cmd
}

// printJSON writes the payload as indented JSON to stdout.
func printJSON(cmd *cobra.Command, payload *pipeline.DisplayPayload) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

// printRecord renders the merged record and explanation for a terminal.
func printRecord(cmd *cobra.Command, payload *pipeline.DisplayPayload) {
	out := cmd.OutOrStdout()
	rec := payload.Record

	fmt.Fprintf(out, "%s\n", rec.DisplayName())
	fmt.Fprintf(out, "%s\n\n", strings.Repeat("=", len(rec.DisplayName())))

	printField(out, "Scientific name", rec.ScientificName)
	printField(out, "Ranks", strings.Join(rec.Ranks, " > "))
	printField(out, "Distribution", strings.Join(rec.Distribution, ", "))
	printField(out, "Status", rec.Status)
	printField(out, "Habitat", rec.Habitat)
	printField(out, "Observations", rec.Observations)
	printField(out, "Sources", strings.Join(rec.Sources, ", "))

	fmt.Fprintf(out, "\n%s\n", payload.Explanation)
}

// printField skips unknown values so sparse records stay readable.
func printField(out io.Writer, label, value string) {
	if value == "" || value == record.Unknown {
		return
	}
	fmt.Fprintf(out, "%-16s %s\n", label+":", value)
}
