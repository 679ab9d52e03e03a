// Package cli implements maritimectl, an offline front end to the maritime
// calculators.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

type options struct {
	jsonOutput bool
}

// NewRootCommand builds the command tree. Output goes to the command's
// configured writer.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "maritimectl",
		Short: "Maritime calculators on the command line",
		Long: `maritimectl runs the assistant's deterministic tools without the server.

Commands:
  laytime   - Laytime between arrival and completion
  distance  - Sailing distance between two ports
  route     - Great circle route with bunker stops
  clause    - Interpret a charter party clause
  classify  - Categorize a query with the keyword rules
  ports     - List known ports`,
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "print results as JSON")

	root.AddCommand(
		newLaytimeCommand(opts),
		newDistanceCommand(opts),
		newRouteCommand(opts),
		newClauseCommand(opts),
		newClassifyCommand(opts),
		newPortsCommand(opts),
	)
	return root
}

// emit prints v as indented JSON when --json is set, otherwise calls text.
func (o *options) emit(w io.Writer, v interface{}, text func(io.Writer)) error {
	if o.jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(w)
	return nil
}

func printList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n", title)
	for _, it := range items {
		fmt.Fprintf(w, "  - %s\n", it)
	}
}
