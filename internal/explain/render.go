package explain

import (
	"fmt"
	"strings"

	"github.com/aviaryworks/fieldguide/pkg/record"
)

// RenderPrompt substitutes the canonical record into the role's template.
// It is a total function: every canonical field is a printable string or
// list, so an all-unknown record renders oddly but never fails.
func RenderPrompt(role Role, rec *record.Canonical) string {
	replacer := strings.NewReplacer(
		"{{name}}", rec.DisplayName(),
		"{{record}}", recordBlock(rec),
	)
	return replacer.Replace(role.Template())
}

// recordBlock serializes the canonical record into the labeled text block
// embedded in every prompt.
func recordBlock(rec *record.Canonical) string {
	var b strings.Builder
	line := func(label, value string) {
		fmt.Fprintf(&b, "%s: %s\n", label, value)
	}

	line("Common name", rec.CommonName)
	line("Scientific/alternate name", rec.ScientificName)
	line("Taxonomic ranks", joinOr(rec.Ranks, " > "))
	line("Distribution", joinOr(rec.Distribution, ", "))
	line("Conservation/category status", rec.Status)
	line("Habitat", rec.Habitat)
	line("Behavior", rec.Behavior)
	line("Recorded observations", rec.Observations)
	line("Description", rec.Description)

	return strings.TrimRight(b.String(), "\n")
}

// joinOr joins a list or falls back to the unknown literal when it is empty.
func joinOr(values []string, sep string) string {
	if len(values) == 0 {
		return record.Unknown
	}
	return strings.Join(values, sep)
}
