package fallback

import "strings"

const RateLimitedMessage = "I'm currently unable to access the AI service due to quota limits. However, I can still help you with:\n\n" +
	"• Maritime calculations (laytime, distance, weather)\n" +
	"• Charter party clause analysis\n" +
	"• Document uploads and basic processing\n" +
	"• Access to our maritime knowledge base\n\n" +
	"Please use the maritime tools or ask specific calculation questions, and I'll provide maritime guidance using the built-in systems."

const UnavailableMessage = "I'm experiencing temporary connectivity issues with the AI service, but all maritime calculation tools are working perfectly. " +
	"Please try the maritime tools for laytime, distance, weather, and CP clause analysis."

const EmptyReplyMessage = "I apologize, but I couldn't generate a response. Please try rephrasing your question."

const toolsNotice = "**Available without an AI provider:**\n" +
	"• Laytime calculation: \"Calculate laytime: arrived 14:30, completed 08:15 next day\"\n" +
	"• Port distance: \"Distance from Rotterdam to Singapore\"\n" +
	"• Port weather: \"Weather in Hamburg\"\n" +
	"• Charter party clauses: \"Interpret clause: 'Demurrage at USD 15,000 per day'\"\n\n" +
	"*Configure an AI provider for open-ended answers.*"

type topic struct {
	markers []string
	text    string
}

var topics = []topic{
	{
		markers: []string{"weather"},
		text: "**Maritime Weather Information**\n\n" +
			"For weather queries I report conditions that matter to cargo work:\n\n" +
			"• **Wind Speed** - container operations stop above 25 knots\n" +
			"• **Visibility** - pilot boarding is delayed below 2 nautical miles\n" +
			"• **Precipitation** - rain calls for a weather hold on bulk cargo\n" +
			"• **Temperature** - affects sensitive cargo and crew",
	},
	{
		markers: []string{"port"},
		text: "**Port Information Services**\n\n" +
			"Covered ports include:\n\n" +
			"• **Europe** - Hamburg, Rotterdam, Antwerp, Felixstowe\n" +
			"• **Asia** - Singapore, Shanghai, Tokyo, Mumbai\n" +
			"• **Americas** - New York, Santos\n" +
			"• **Middle East** - Dubai",
	},
	{
		markers: []string{"fuel", "bunker"},
		text: "**Fuel Planning & Bunkering**\n\n" +
			"Fuel estimates use 0.05 MT per nautical mile at a 14 knot service speed. " +
			"Passages longer than 6,000 NM between the Atlantic and Asia get indicative bunker stops at Gibraltar and the Suez Canal.",
	},
	{
		markers: []string{"route", "alternative"},
		text: "**Route Planning**\n\n" +
			"Routes are planned on the great circle between two coordinates, with transit time at 14 knots. " +
			"Add 10-15% for weather routing and port approach.",
	},
}

const generalTopic = "**Maritime AI Assistant**\n\n" +
	"I can help with laytime, port distances and voyage planning, port weather, charter party clauses, and the maritime knowledge base."

// NotConfiguredMessage picks a topic section from the query and appends the
// list of deterministic tools that keep working.
func NotConfiguredMessage(query string) string {
	lower := strings.ToLower(query)
	section := generalTopic
	for _, t := range topics {
		if containsAny(lower, t.markers) {
			section = t.text
			break
		}
	}
	return section + "\n\n" + toolsNotice
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
