// Package extract pulls structured parameters out of free-text maritime
// queries. Every function reports success explicitly; none of them guess.
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"maritime-assistant-be/pkg/maritime"
)

type Clock struct {
	Hour   int
	Minute int
}

type Times struct {
	Arrival    Clock
	Completion Clock
	// NextDay is set when the text says completion fell on the following day.
	NextDay bool
}

type Ports struct {
	From string
	To   string
}

var (
	clockPattern      = regexp.MustCompile(`(?i)\b(\d{1,2}):(\d{2})(?:\s*([ap])\.?m\b\.?|\b)`)
	arrivalPattern    = regexp.MustCompile(`(?i)\b(arrived|arrival|arriving|arrive)\b`)
	completionPattern = regexp.MustCompile(`(?i)\b(completed|completion|complete|finished|finishing|finish)\b`)
	nextDayPattern    = regexp.MustCompile(`(?i)\b(next|following)\s+(day|morning)\b|\+1\s*day`)
)

type span struct {
	start, end int
}

type clockToken struct {
	span
	clock Clock
	valid bool
}

// TimePair finds an HH:MM token tied to "arrived" and another tied to
// "completed"/"finished". A keyword owns the first time after it, up to the
// next keyword; failing that, the nearest time before it.
func TimePair(text string) (Times, bool) {
	clocks := findClocks(text)
	arrivals := findSpans(arrivalPattern, text)
	completions := findSpans(completionPattern, text)
	if len(clocks) < 2 || len(arrivals) == 0 || len(completions) == 0 {
		return Times{}, false
	}

	keywords := append(append([]span{}, arrivals...), completions...)
	a, okA := clockFor(arrivals[0], keywords, clocks)
	c, okC := clockFor(completions[0], keywords, clocks)
	if !okA || !okC || a == c {
		return Times{}, false
	}
	if !clocks[a].valid || !clocks[c].valid {
		return Times{}, false
	}

	return Times{
		Arrival:    clocks[a].clock,
		Completion: clocks[c].clock,
		NextDay:    nextDayPattern.MatchString(text),
	}, true
}

func findClocks(text string) []clockToken {
	var out []clockToken
	for _, m := range clockPattern.FindAllStringSubmatchIndex(text, -1) {
		h, _ := strconv.Atoi(text[m[2]:m[3]])
		mm, _ := strconv.Atoi(text[m[4]:m[5]])
		valid := h <= 23 && mm <= 59
		if m[6] >= 0 {
			// 12-hour clock: 12am is midnight, 12pm noon.
			valid = h >= 1 && h <= 12 && mm <= 59
			h %= 12
			if strings.EqualFold(text[m[6]:m[7]], "p") {
				h += 12
			}
		}
		out = append(out, clockToken{
			span:  span{m[0], m[1]},
			clock: Clock{Hour: h, Minute: mm},
			valid: valid,
		})
	}
	return out
}

func findSpans(re *regexp.Regexp, text string) []span {
	var out []span
	for _, m := range re.FindAllStringIndex(text, -1) {
		out = append(out, span{m[0], m[1]})
	}
	return out
}

func clockFor(kw span, keywords []span, clocks []clockToken) (int, bool) {
	nextKw, prevKw := -1, -1
	for _, k := range keywords {
		if k.start > kw.start && (nextKw < 0 || k.start < nextKw) {
			nextKw = k.start
		}
		if k.end <= kw.start && k.end > prevKw {
			prevKw = k.end
		}
	}

	for i, c := range clocks {
		if c.start >= kw.end && (nextKw < 0 || c.start < nextKw) {
			return i, true
		}
	}
	for i := len(clocks) - 1; i >= 0; i-- {
		c := clocks[i]
		if c.end <= kw.start && c.start >= prevKw {
			return i, true
		}
	}
	return 0, false
}

var (
	fromToPattern   = regexp.MustCompile(`(?i)\bfrom\s+(.+?)\s+to\s+(.+)`)
	betweenPattern  = regexp.MustCompile(`(?i)\bbetween\s+(.+?)\s+and\s+(.+)`)
	spanTerminators = regexp.MustCompile(`[?.,;!\n()]`)
)

var stopwords = map[string]bool{
	"for": true, "at": true, "in": true, "with": true, "via": true, "by": true,
	"and": true, "on": true, "using": true, "please": true, "today": true,
	"tomorrow": true, "now": true, "right": true, "this": true, "next": true,
	"like": true,
}

// PortPair reads "from X to Y" (or "between X and Y"). Multi-word
// names are matched against the port table where possible.
func PortPair(text string) (Ports, bool) {
	for _, re := range []*regexp.Regexp{fromToPattern, betweenPattern} {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		from, okF := portName(m[1], true)
		to, okT := portName(m[2], false)
		if okF && okT {
			return Ports{From: from, To: to}, true
		}
	}
	return Ports{}, false
}

// portName cleans a captured span. A "from" span is bounded already, so all
// of it may be used; an open-ended span is cut at the first stopword.
func portName(raw string, bounded bool) (string, bool) {
	words := leadingWords(raw)
	if len(words) == 0 {
		return "", false
	}
	if name, ok := longestKnownPrefix(words); ok {
		return name, true
	}
	if bounded {
		return strings.Join(words, " "), true
	}
	return words[0], true
}

// leadingWords trims the span at punctuation, drops "the" and "port of",
// and stops at the first stopword.
func leadingWords(raw string) []string {
	if loc := spanTerminators.FindStringIndex(raw); loc != nil {
		raw = raw[:loc[0]]
	}
	fields := strings.Fields(raw)
	for len(fields) > 0 {
		if strings.EqualFold(fields[0], "the") {
			fields = fields[1:]
			continue
		}
		if len(fields) > 1 && strings.EqualFold(fields[0], "port") && strings.EqualFold(fields[1], "of") {
			fields = fields[2:]
			continue
		}
		break
	}

	var out []string
	for _, f := range fields {
		f = strings.Trim(f, `"'’`)
		if f == "" || stopwords[strings.ToLower(f)] || !startsWithLetter(f) {
			break
		}
		out = append(out, f)
	}
	return out
}

func longestKnownPrefix(words []string) (string, bool) {
	for n := len(words); n > 0; n-- {
		candidate := strings.Join(words[:n], " ")
		if p, ok := maritime.LookupPort(candidate); ok {
			return p.Name, true
		}
	}
	return "", false
}

func startsWithLetter(s string) bool {
	for _, r := range s {
		return unicode.IsLetter(r)
	}
	return false
}

var locationPattern = regexp.MustCompile(`(?i)\b(?:in|at|for|near|off)\s+([^?.,;!\n]+)`)

// Location looks for a place after "in"/"at" and similar. Known ports
// win; otherwise a known port named anywhere in the text; otherwise a
// capitalized word after the preposition.
func Location(text string) (string, bool) {
	matches := locationPattern.FindAllStringSubmatch(text, -1)
	for _, m := range matches {
		if name, ok := longestKnownPrefix(leadingWords(m[1])); ok {
			return name, true
		}
	}

	if name, ok := anyKnownPort(text); ok {
		return name, true
	}

	for _, m := range matches {
		words := leadingWords(m[1])
		if len(words) > 0 && unicode.IsUpper([]rune(words[0])[0]) {
			return words[0], true
		}
	}
	return "", false
}

func anyKnownPort(text string) (string, bool) {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
	for i := range words {
		end := i + 3
		if end > len(words) {
			end = len(words)
		}
		if name, ok := longestKnownPrefix(words[i:end]); ok {
			return name, true
		}
	}
	return "", false
}

var (
	doubleQuoted  = regexp.MustCompile(`["“”]([^"“”]*\S[^"“”]*)["“”]`)
	singleQuoted  = regexp.MustCompile(`(?:^|[\s:(])['‘]([^\n]+?)['’](?:[\s.,;:!?)]|$)`)
	clausePrefix  = regexp.MustCompile(`(?is)\bclause\s*:\s*(.+)`)
	trailingStops = ".!?"
)

// QuotedClause returns quoted clause text, or whatever follows "clause:".
func QuotedClause(text string) (string, bool) {
	if m := doubleQuoted.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	if m := singleQuoted.FindStringSubmatch(text); m != nil {
		if s := strings.TrimSpace(m[1]); s != "" {
			return s, true
		}
	}
	if m := clausePrefix.FindStringSubmatch(text); m != nil {
		s := strings.TrimRight(strings.TrimSpace(m[1]), trailingStops)
		if s != "" {
			return s, true
		}
	}
	return "", false
}
