package router

const clockLayout = "03:04 PM"

const laytimePrompt = "I can help calculate laytime, but I need specific times. Please provide:\n\n" +
	"• **Arrival time** (when vessel tendered Notice of Readiness)\n" +
	"• **Completion time** (when cargo operations finished)\n\n" +
	"Example: \"Vessel arrived at 14:30 and completed loading at 08:15 the next day\"\n\n" +
	"Once you provide the times, I'll calculate the exact laytime in hours and days, plus provide guidance on demurrage and charter party implications."

const laytimeNotes = "**Maritime Industry Notes:**\n" +
	"• This calculation assumes continuous operations without weather interruptions\n" +
	"• For Weather Working Days (WWD), deduct time when cargo operations were suspended due to weather\n" +
	"• Demurrage applies if this exceeds your charter party's allowed laytime\n" +
	"• Document all delays with proper notices for accurate settlement"

const distancePrompt = "I can calculate distances between ports. Please specify both ports clearly:\n\n" +
	"Example: \"What's the distance from Singapore to Dubai?\"\n\n" +
	"I'll provide:\n" +
	"• Nautical mile distance\n" +
	"• Estimated voyage time\n" +
	"• Fuel consumption estimates\n" +
	"• Route recommendations"

const distanceNotes = "• Add 10-15% for weather routing and port approach\n" +
	"• Consider seasonal weather patterns for route optimization\n" +
	"• Budget additional time for port congestion and pilotage"

const weatherPrompt = "I can provide weather conditions for maritime operations. Please specify a location:\n\n" +
	"Example: \"What's the weather in Hamburg?\" or \"Weather conditions at Rotterdam\"\n\n" +
	"I'll provide current conditions, operational impacts, and safety recommendations for cargo operations."

const unknownLocationPrompt = "I couldn't find weather data for \"%s\". Please name a major port, for example:\n\n" +
	"\"What's the weather in Hamburg?\" or \"Weather conditions at Rotterdam\""

const clausePrompt = "I can interpret charter party clauses and provide legal implications. Please provide the specific clause text:\n\n" +
	"Example: \"Interpret this clause: 'Weather Working Days means days when weather permits normal cargo operations'\"\n\n" +
	"I'll analyze:\n" +
	"• Clause type and meaning\n" +
	"• Legal implications for both parties\n" +
	"• Practical recommendations\n" +
	"• Industry best practices"

const clauseNotes = "**Legal Notes:**\n" +
	"• Ensure compliance with local port customs and regulations\n" +
	"• Document all relevant circumstances for potential disputes\n" +
	"• Consider seeking legal advice for complex interpretations\n" +
	"• Clause type is assigned by keyword matching, not legal review"
