package router

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"maritime-assistant-be/pkg/ai/classifier"
	"maritime-assistant-be/pkg/ai/extract"
	"maritime-assistant-be/pkg/maritime"
	"maritime-assistant-be/pkg/maritime/weather"
)

func (r *Router) handleLaytime(ctx context.Context, q Query, c classifier.Classification) Reply {
	if !strings.Contains(strings.ToLower(q.Text), "calculate") {
		return r.handleGenerative(ctx, q, c)
	}

	times, ok := extract.TimePair(q.Text)
	if !ok {
		return clarify(maritime.CategoryLaytime, laytimePrompt)
	}

	now := r.now().UTC()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	arrival := day.Add(time.Duration(times.Arrival.Hour)*time.Hour + time.Duration(times.Arrival.Minute)*time.Minute)
	completion := day.Add(time.Duration(times.Completion.Hour)*time.Hour + time.Duration(times.Completion.Minute)*time.Minute)

	rolled := false
	if !completion.After(arrival) || times.NextDay {
		completion = completion.AddDate(0, 0, 1)
		rolled = true
	}

	result, err := maritime.CalculateLaytime(arrival, completion, maritime.LaytimeOptions{})
	if err != nil {
		return clarify(maritime.CategoryLaytime, laytimePrompt)
	}
	return calculated(maritime.CategoryLaytime, formatLaytime(result, rolled))
}

func (r *Router) handleDistance(_ context.Context, q Query, _ classifier.Classification) Reply {
	pair, ok := extract.PortPair(q.Text)
	if !ok {
		return clarify(maritime.CategoryDistance, distancePrompt)
	}

	result, err := maritime.Distance(pair.From, pair.To)
	if err != nil {
		return clarify(maritime.CategoryDistance, distancePrompt)
	}
	return calculated(maritime.CategoryDistance, formatDistance(result))
}

func (r *Router) handleWeather(ctx context.Context, q Query, _ classifier.Classification) Reply {
	location, ok := extract.Location(q.Text)
	if !ok {
		return clarify(maritime.CategoryWeather, weatherPrompt)
	}

	result, err := r.weather.Lookup(ctx, location)
	if err != nil {
		r.logger.Warn(logModule, "Weather lookup failed", map[string]interface{}{
			"location": location,
			"error":    err.Error(),
		})
		if errors.Is(err, weather.ErrUnknownLocation) {
			return clarify(maritime.CategoryWeather, fmt.Sprintf(unknownLocationPrompt, location))
		}
		return clarify(maritime.CategoryWeather, weatherPrompt)
	}
	return calculated(maritime.CategoryWeather, formatWeather(location, result))
}

func (r *Router) handleClause(_ context.Context, q Query, _ classifier.Classification) Reply {
	text, ok := extract.QuotedClause(q.Text)
	if !ok {
		return clarify(maritime.CategoryCPClause, clausePrompt)
	}
	return calculated(maritime.CategoryCPClause, formatClause(maritime.InterpretClause(text)))
}

func clarify(c maritime.Category, text string) Reply {
	return Reply{Text: text, Mode: ModeClarification, Handler: c.String()}
}

func calculated(c maritime.Category, text string) Reply {
	return Reply{Text: text, Mode: ModeCalculation, Handler: c.String()}
}

func formatLaytime(r maritime.LaytimeResult, rolled bool) string {
	completion := r.Completion.Format(clockLayout)
	if rolled {
		completion += " (+1 day)"
	}

	var b strings.Builder
	b.WriteString("**Laytime Calculation Results:**\n\n")
	fmt.Fprintf(&b, "• **Arrival Time:** %s\n", r.Arrival.Format(clockLayout))
	fmt.Fprintf(&b, "• **Completion Time:** %s\n", completion)
	fmt.Fprintf(&b, "• **Total Laytime:** %s hours (%s days)\n", num(r.TotalHours), num(r.TotalDays))
	fmt.Fprintf(&b, "• **Working Days:** %s days (excluding any weather delays)\n\n", num(r.WorkingDays))
	b.WriteString(laytimeNotes)
	return b.String()
}

func formatDistance(r maritime.DistanceResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Distance Calculation: %s ↔ %s**\n\n", r.FromPort, r.ToPort)
	fmt.Fprintf(&b, "• **Distance:** %s nautical miles\n", num(r.DistanceNM))
	fmt.Fprintf(&b, "• **Estimated Transit Time:** %s days (at 14 knots average)\n", num(r.EstimatedDays))
	fmt.Fprintf(&b, "• **Estimated Fuel Consumption:** %s MT\n\n", num(r.FuelConsumptionMT))

	if r.LowConfidence {
		fmt.Fprintf(&b, "**Note:** \"%s\" and \"%s\" are not a pair I have data for, so the distance above is a default %s NM placeholder, not a measurement.\n\n",
			r.FromPort, r.ToPort, num(maritime.DefaultDistanceNM))
		b.WriteString("I have coordinates for major ports including:\n")
		b.WriteString(regionList())
		b.WriteString("\n\nPlease specify major ports for an accurate figure.")
		return b.String()
	}

	b.WriteString("**Voyage Planning Notes:**\n")
	if r.Source == maritime.SourceTable {
		b.WriteString("• Published sailing distance\n")
	} else {
		b.WriteString("• Great circle distance calculation\n")
	}
	b.WriteString(distanceNotes)
	return b.String()
}

func formatWeather(location string, r weather.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Weather Conditions - %s**\n\n", location)
	fmt.Fprintf(&b, "• **Current Condition:** %s\n", r.Condition)
	fmt.Fprintf(&b, "• **Temperature:** %s°C\n", num(r.TemperatureC))
	fmt.Fprintf(&b, "• **Wind Speed:** %s knots\n", num(r.WindSpeedKt))
	fmt.Fprintf(&b, "• **Visibility:** %s nautical miles\n\n", num(r.VisibilityNM))
	fmt.Fprintf(&b, "**Operational Recommendation:**\n%s\n\n", r.Recommendation)
	b.WriteString("**Maritime Operations Impact:**\n")
	fmt.Fprintf(&b, "• Container operations: %s (limit: %s knots)\n", weather.ContainerOpsStatus(r), num(weather.ContainerWindLimitKt))
	fmt.Fprintf(&b, "• Bulk cargo loading: %s\n", weather.BulkCargoStatus(r))
	fmt.Fprintf(&b, "• Pilot boarding: %s (minimum: %s NM visibility)", weather.PilotBoardingStatus(r), num(weather.PilotVisibilityMinNM))
	return b.String()
}

func formatClause(ci maritime.ClauseInterpretation) string {
	var b strings.Builder
	b.WriteString("**Charter Party Clause Analysis**\n\n")
	fmt.Fprintf(&b, "**Clause Type:** %s\n\n", ci.ClauseType)
	fmt.Fprintf(&b, "**Interpretation:**\n%s\n\n", ci.Interpretation)
	b.WriteString("**Key Implications:**\n")
	b.WriteString(bullets(ci.Implications))
	b.WriteString("\n\n**Recommendations:**\n")
	b.WriteString(bullets(ci.Recommendations))
	b.WriteString("\n\n")
	b.WriteString(clauseNotes)
	return b.String()
}

func bullets(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "• " + item
	}
	return strings.Join(lines, "\n")
}

var regionOrder = []string{
	maritime.RegionEurope,
	maritime.RegionAsia,
	maritime.RegionAmericas,
	maritime.RegionMiddleEast,
	maritime.RegionAfrica,
}

func regionList() string {
	covered := maritime.CoveredRegions()
	var regions []string
	seen := make(map[string]bool)
	for _, region := range regionOrder {
		if _, ok := covered[region]; ok {
			regions = append(regions, region)
			seen[region] = true
		}
	}
	var rest []string
	for region := range covered {
		if !seen[region] {
			rest = append(rest, region)
		}
	}
	sort.Strings(rest)
	regions = append(regions, rest...)

	lines := make([]string, 0, len(regions))
	for _, region := range regions {
		lines = append(lines, fmt.Sprintf("• **%s:** %s", region, strings.Join(covered[region], ", ")))
	}
	return strings.Join(lines, "\n")
}

// num prints the shortest decimal form: 17.75, 8345, 0.5.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
