// Package ingest turns uploaded maritime documents into knowledge entries:
// document type, keywords, sections and per-section relevance.
package ingest

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"maritime-assistant-be/pkg/maritime"
)

const (
	DocCharterParty       = "charter_party"
	DocBillOfLading       = "bill_of_lading"
	DocWeatherReport      = "weather_report"
	DocVoyageInstructions = "voyage_instructions"
	DocLaytimeCalculation = "laytime_calculation"
	DocGeneralMaritime    = "general_maritime"
)

const (
	SectionHeader    = "header"
	SectionClause    = "clause"
	SectionParagraph = "paragraph"
)

const (
	maxKeywords    = 20
	frequentWords  = 10
	maxTags        = 5
	minEntryLength = 50
	linesPerPage   = 50
	generalHeading = "General Content"
)

type Section struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Page    int    `json:"page"`
	Type    string `json:"type"`
}

type Entry struct {
	Title          string
	Content        string
	Category       maritime.Category
	RelevanceScore float64
	Tags           []string
}

// Analysis is everything derived from a document's text without the LLM.
type Analysis struct {
	DocumentType string
	Keywords     []string
	Sections     []Section
	Entries      []Entry
}

func Analyze(content, filename string) Analysis {
	sections := Sections(content)
	return Analysis{
		DocumentType: DocumentType(content, filename),
		Keywords:     Keywords(content),
		Sections:     sections,
		Entries:      Entries(sections),
	}
}

// DocumentType checks content and filename; the first rule that matches wins.
func DocumentType(content, filename string) string {
	c := strings.ToLower(content)
	f := strings.ToLower(filename)
	switch {
	case strings.Contains(c, "charter party") || strings.Contains(f, "charter"):
		return DocCharterParty
	case strings.Contains(c, "bill of lading") || strings.Contains(f, "bl"):
		return DocBillOfLading
	case strings.Contains(c, "weather") || strings.Contains(f, "weather"):
		return DocWeatherReport
	case strings.Contains(c, "voyage") || strings.Contains(f, "voyage"):
		return DocVoyageInstructions
	case strings.Contains(c, "laytime") || strings.Contains(c, "demurrage"):
		return DocLaytimeCalculation
	default:
		return DocGeneralMaritime
	}
}

var maritimeTerms = []string{
	"laytime", "demurrage", "despatch", "charter party", "bill of lading",
	"vessel", "cargo", "port", "loading", "discharge", "weather",
	"routing", "voyage", "freight", "bunkers", "ballast", "draught",
	"tonnage", "berth", "anchorage", "pilot", "tug", "mooring",
}

var nonWord = regexp.MustCompile(`\W+`)

// Keywords lists the maritime terms present, then the most frequent words
// longer than three letters, without duplicates.
func Keywords(content string) []string {
	lower := strings.ToLower(content)
	seen := make(map[string]bool)
	var out []string
	add := func(w string) {
		if !seen[w] {
			seen[w] = true
			out = append(out, w)
		}
	}

	for _, term := range maritimeTerms {
		if strings.Contains(lower, term) {
			add(term)
		}
	}

	freq := make(map[string]int)
	var order []string
	for _, w := range nonWord.Split(lower, -1) {
		if len(w) <= 3 {
			continue
		}
		if freq[w] == 0 {
			order = append(order, w)
		}
		freq[w]++
	}
	sort.SliceStable(order, func(i, j int) bool { return freq[order[i]] > freq[order[j]] })
	if len(order) > frequentWords {
		order = order[:frequentWords]
	}
	for _, w := range order {
		add(w)
	}

	if len(out) > maxKeywords {
		out = out[:maxKeywords]
	}
	return out
}

var (
	numberedLine = regexp.MustCompile(`^\d+\.?\s`)
	capsLine     = regexp.MustCompile(`^[A-Z][A-Z\s]{5,}$`)
	clauseLine   = regexp.MustCompile(`^(\d+\.|\([a-z]\)|\([0-9]+\))\s`)
	articleLine  = regexp.MustCompile(`(?i)^(CLAUSE|ARTICLE|SECTION)\s+\d+`)
)

func isHeader(line string) bool {
	if len(line) <= 3 || len(line) >= 80 {
		return false
	}
	return line == strings.ToUpper(line) || numberedLine.MatchString(line) || capsLine.MatchString(line)
}

func isClause(line string) bool {
	return clauseLine.MatchString(line) || articleLine.MatchString(line)
}

// Sections splits text at header and clause lines. Lines before the first
// heading each become a "General Content" paragraph.
func Sections(content string) []Section {
	var lines []string
	for _, l := range strings.Split(content, "\n") {
		if t := strings.TrimSpace(l); t != "" {
			lines = append(lines, t)
		}
	}

	var sections []Section
	var current *Section
	page := 1
	for i, line := range lines {
		header, clause := isHeader(line), isClause(line)
		switch {
		case header || clause:
			if current != nil {
				sections = append(sections, *current)
			}
			typ := SectionHeader
			if clause {
				typ = SectionClause
			}
			current = &Section{Title: line, Page: page, Type: typ}
		case current != nil:
			if current.Content != "" {
				current.Content += "\n"
			}
			current.Content += line
		default:
			sections = append(sections, Section{Title: generalHeading, Content: line, Page: page, Type: SectionParagraph})
		}

		if i > 0 && i%linesPerPage == 0 {
			page++
		}
	}
	if current != nil {
		sections = append(sections, *current)
	}
	return sections
}

type categoryRule struct {
	category maritime.Category
	markers  []string
	scoring  []string
}

var categoryRules = []categoryRule{
	{maritime.CategoryLaytime, []string{"laytime", "demurrage"}, []string{"laytime", "demurrage", "despatch", "loading", "discharge"}},
	{maritime.CategoryWeather, []string{"weather", "wind"}, []string{"weather", "wind", "storm", "forecast", "routing"}},
	{maritime.CategoryDistance, []string{"distance", "route"}, []string{"distance", "nautical", "route", "passage", "voyage"}},
	{maritime.CategoryCPClause, []string{"charter", "clause"}, []string{"clause", "charter", "party", "terms", "conditions"}},
	{maritime.CategoryVoyageGuidance, []string{"voyage", "port"}, []string{"port", "berth", "pilot", "tug", "mooring"}},
}

var sectionTags = []string{
	"maritime", "shipping", "vessel", "cargo", "port", "navigation",
	"contract", "legal", "operations", "logistics", "commercial",
}

// Entries keeps sections with more than 50 characters of body text.
func Entries(sections []Section) []Entry {
	var out []Entry
	for i, s := range sections {
		if len(s.Content) <= minEntryLength {
			continue
		}
		title := s.Title
		if title == "" {
			title = "Section " + strconv.Itoa(i+1)
		}
		rule := categorize(s.Content)
		out = append(out, Entry{
			Title:          title,
			Content:        s.Content,
			Category:       rule.category,
			RelevanceScore: relevance(s.Content, rule.scoring),
			Tags:           tags(s.Content),
		})
	}
	return out
}

func categorize(content string) categoryRule {
	lower := strings.ToLower(content)
	for _, r := range categoryRules {
		for _, m := range r.markers {
			if strings.Contains(lower, m) {
				return r
			}
		}
	}
	return categoryRule{category: maritime.CategoryGeneral}
}

// relevance weighs length (capped at 1000 chars) 0.6 and keyword coverage
// 0.4; general sections score 0.5 on coverage.
func relevance(content string, keywords []string) float64 {
	base := math.Min(float64(len(content))/1000, 1)
	coverage := 0.5
	if len(keywords) > 0 {
		lower := strings.ToLower(content)
		hits := 0
		for _, k := range keywords {
			if strings.Contains(lower, k) {
				hits++
			}
		}
		coverage = float64(hits) / float64(len(keywords))
	}
	return maritime.Round2(base*0.6 + coverage*0.4)
}

func tags(content string) []string {
	lower := strings.ToLower(content)
	out := []string{}
	for _, t := range sectionTags {
		if strings.Contains(lower, t) {
			out = append(out, t)
			if len(out) == maxTags {
				break
			}
		}
	}
	return out
}
