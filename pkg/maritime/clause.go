package maritime

import "strings"

const (
	ClauseWeatherWorkingDays = "Weather Working Days"
	ClauseDemurrageDispatch  = "Demurrage/Dispatch"
	ClauseGeneral            = "General Charter Party Clause"
)

type ClauseInterpretation struct {
	ClauseType      string   `json:"clauseType"`
	Interpretation  string   `json:"interpretation"`
	Implications    []string `json:"implications"`
	Recommendations []string `json:"recommendations"`
}

type clauseRule struct {
	markers        []string
	interpretation ClauseInterpretation
}

// Order matters: the first rule whose marker appears wins.
var clauseRules = []clauseRule{
	{
		markers: []string{"weather working day", "wwd"},
		interpretation: ClauseInterpretation{
			ClauseType:     ClauseWeatherWorkingDays,
			Interpretation: "This clause excludes time when weather conditions prevent cargo operations from counting against laytime.",
			Implications: []string{
				"Charterer protected from weather delays",
				`Definition of "weather" conditions must be clear`,
				"Local port customs may apply",
			},
			Recommendations: []string{
				"Clarify weather thresholds",
				"Review local port weather definitions",
				"Consider weather monitoring systems",
			},
		},
	},
	{
		markers: []string{"demurrage", "dispatch"},
		interpretation: ClauseInterpretation{
			ClauseType:     ClauseDemurrageDispatch,
			Interpretation: "This clause defines compensation for exceeding laytime (demurrage) or completing early (dispatch).",
			Implications: []string{
				"Financial liability for delays",
				"Incentive for efficient operations",
				"Clear calculation methods required",
			},
			Recommendations: []string{
				"Verify calculation methods",
				"Understand dispatch rates",
				"Plan operations efficiently",
			},
		},
	},
}

var generalClause = ClauseInterpretation{
	ClauseType:     ClauseGeneral,
	Interpretation: "This appears to be a standard charter party provision requiring detailed analysis.",
	Implications: []string{
		"Legal obligations for both parties",
		"Potential financial implications",
		"Operational requirements",
	},
	Recommendations: []string{
		"Seek legal review if unclear",
		"Document compliance actions",
		"Maintain clear records",
	},
}

// InterpretClause classifies clause text against known archetypes by substring
// match. It is pattern matching, not legal advice.
func InterpretClause(text string) ClauseInterpretation {
	lower := strings.ToLower(text)
	for _, rule := range clauseRules {
		for _, m := range rule.markers {
			if strings.Contains(lower, m) {
				return clone(rule.interpretation)
			}
		}
	}
	return clone(generalClause)
}

func clone(ci ClauseInterpretation) ClauseInterpretation {
	ci.Implications = append([]string(nil), ci.Implications...)
	ci.Recommendations = append([]string(nil), ci.Recommendations...)
	return ci
}
