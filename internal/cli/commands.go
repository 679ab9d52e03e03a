package cli

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"maritime-assistant-be/internal/service"
	"maritime-assistant-be/pkg/ai/classifier"
	"maritime-assistant-be/pkg/maritime"

	"github.com/spf13/cobra"
)

func newLaytimeCommand(opts *options) *cobra.Command {
	var excludeWeekends bool
	var holidays []string

	cmd := &cobra.Command{
		Use:   "laytime <arrival> <completion>",
		Short: "Laytime between arrival and completion",
		Example: `  maritimectl laytime 2024-01-15T08:00:00Z 2024-01-16T08:00:00Z
  maritimectl laytime "2024-03-15 12:00" "2024-03-18 12:00" --exclude-weekends`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			arrival, err := service.ParseTimestamp(args[0])
			if err != nil {
				return err
			}
			completion, err := service.ParseTimestamp(args[1])
			if err != nil {
				return err
			}

			lo := maritime.LaytimeOptions{ExcludeWeekends: excludeWeekends}
			for _, h := range holidays {
				day, err := time.Parse("2006-01-02", strings.TrimSpace(h))
				if err != nil {
					return fmt.Errorf("holiday %q: want YYYY-MM-DD", h)
				}
				lo.ExcludeHolidays = append(lo.ExcludeHolidays, day)
			}

			res, err := maritime.CalculateLaytime(arrival, completion, lo)
			if err != nil {
				return err
			}
			return opts.emit(cmd.OutOrStdout(), res, func(w io.Writer) {
				fmt.Fprintf(w, "Total time:     %.2f hours (%.2f days)\n", res.TotalHours, res.TotalDays)
				fmt.Fprintf(w, "Working days:   %.2f\n", res.WorkingDays)
				if res.ExcludedHours > 0 {
					fmt.Fprintf(w, "Excluded:       %.2f hours\n", res.ExcludedHours)
				}
				fmt.Fprintf(w, "Method:         %s\n", res.Method)
			})
		},
	}
	cmd.Flags().BoolVar(&excludeWeekends, "exclude-weekends", false, "deduct Saturdays and Sundays")
	cmd.Flags().StringSliceVar(&holidays, "holiday", nil, "deduct a holiday (YYYY-MM-DD), repeatable")
	return cmd
}

func newDistanceCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "distance <from-port> <to-port>",
		Short:   "Sailing distance between two ports",
		Example: `  maritimectl distance Rotterdam Singapore`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := maritime.Distance(args[0], args[1])
			if err != nil {
				return err
			}
			return opts.emit(cmd.OutOrStdout(), res, func(w io.Writer) {
				fmt.Fprintf(w, "%s -> %s: %.0f NM\n", res.FromPort, res.ToPort, res.DistanceNM)
				fmt.Fprintf(w, "Estimated days: %.1f\n", res.EstimatedDays)
				fmt.Fprintf(w, "Fuel:           %.1f MT\n", res.FuelConsumptionMT)
				if res.LowConfidence {
					fmt.Fprintln(w, "Warning: unknown port pair, default distance used")
				}
			})
		},
	}
}

// parsePoint accepts a known port name or "lat,lng".
func parsePoint(s string) (maritime.LatLng, error) {
	if port, ok := maritime.LookupPort(s); ok {
		return port.Coord, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return maritime.LatLng{}, fmt.Errorf("%q is neither a known port nor lat,lng", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return maritime.LatLng{}, fmt.Errorf("latitude %q: %w", parts[0], err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return maritime.LatLng{}, fmt.Errorf("longitude %q: %w", parts[1], err)
	}
	return maritime.LatLng{Lat: lat, Lng: lng}, nil
}

func newRouteCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "route <from> <to>",
		Short: "Great circle route with bunker stops",
		Example: `  maritimectl route Rotterdam Singapore
  maritimectl route 51.92,4.48 1.29,103.85`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := parsePoint(args[0])
			if err != nil {
				return err
			}
			dst, err := parsePoint(args[1])
			if err != nil {
				return err
			}
			res, err := maritime.RouteBetween(src, dst)
			if err != nil {
				return err
			}
			return opts.emit(cmd.OutOrStdout(), res, func(w io.Writer) {
				fmt.Fprintf(w, "Distance:       %.0f NM\n", res.Distance)
				fmt.Fprintf(w, "Estimated days: %.1f\n", res.EstimatedDays)
				fmt.Fprintf(w, "Fuel:           %.1f MT\n", res.FuelConsumption)
				stops := make([]string, 0, len(res.BunkerStops))
				for _, s := range res.BunkerStops {
					stops = append(stops, fmt.Sprintf("%s (%.4f, %.4f)", s.Name, s.Lat, s.Lng))
				}
				printList(w, "Bunker stops", stops)
			})
		},
	}
}

func newClauseCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "clause <text>...",
		Short:   "Interpret a charter party clause",
		Example: `  maritimectl clause "Laytime to count in weather working days"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := maritime.InterpretClause(strings.Join(args, " "))
			return opts.emit(cmd.OutOrStdout(), res, func(w io.Writer) {
				fmt.Fprintf(w, "%s\n\n%s\n\n", res.ClauseType, res.Interpretation)
				printList(w, "Implications", res.Implications)
				printList(w, "Recommendations", res.Recommendations)
			})
		},
	}
}

func newClassifyCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <query>...",
		Short: "Categorize a query with the keyword rules",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := classifier.KeywordClassify(strings.Join(args, " "))
			return opts.emit(cmd.OutOrStdout(), res, func(w io.Writer) {
				fmt.Fprintf(w, "Category:   %s\n", res.Category)
				fmt.Fprintf(w, "Confidence: %.2f\n", res.Confidence)
				printList(w, "Suggested actions", res.SuggestedActions)
			})
		},
	}
}

func newPortsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ports",
		Short: "List known ports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ports := maritime.Ports()
			sort.Slice(ports, func(i, j int) bool { return ports[i].Key < ports[j].Key })
			return opts.emit(cmd.OutOrStdout(), ports, func(w io.Writer) {
				for _, p := range ports {
					fmt.Fprintf(w, "%-14s %-14s %8.4f %9.4f\n", p.Key, p.Region, p.Coord.Lat, p.Coord.Lng)
				}
			})
		},
	}
}
