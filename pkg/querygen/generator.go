package querygen

import (
	"fmt"
	"strings"
)

// Sensible defaults substituted when an entity is missing, so templates
// never format to an empty query.
const (
	defaultSubject = "government"
	defaultExam    = "exam"
)

// typeKeywords classifies the query type by keyword priority. Earlier
// groups win.
var typeKeywords = []struct {
	qtype    QueryType
	keywords []string
}{
	{TypeResult, []string{"result", "results", "परिणाम", "natija", "merit list", "scorecard", "score card"}},
	{TypeAdmitCard, []string{"admit card", "admit", "hall ticket", "प्रवेश पत्र", "call letter"}},
	{TypeCutoff, []string{"cutoff", "cut off", "cut-off"}},
	{TypeSyllabus, []string{"syllabus", "पाठ्यक्रम", "exam pattern"}},
	{TypeScheme, []string{"yojana", "yojna", "scheme", "योजना", "pension", "subsidy", "kisan", "awas", "ayushman"}},
	{TypeJob, []string{"job", "jobs", "naukri", "नौकरी", "vacancy", "vacancies", "bharti", "भर्ती", "recruitment", "post", "posts"}},
}

// ClassifyType returns the query type for a cleaned query.
func ClassifyType(cleaned string) QueryType {
	for _, group := range typeKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(cleaned, kw) {
				return group.qtype
			}
		}
	}
	return TypeGeneral
}

// Generator emits ranked search queries for a user utterance.
type Generator struct{}

// NewGenerator creates a query generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate cleans the query, extracts entities, classifies the type, and
// emits 2-4 queries ordered by priority. Output is deterministic for
// identical input.
func (g *Generator) Generate(query string) []GeneratedQuery {
	cleaned := Clean(query)
	if cleaned == "" {
		return nil
	}

	entities := ExtractEntities(cleaned)
	qtype := ClassifyType(cleaned)

	queries := emitTemplates(qtype, entities)

	// The cleaned original rides along at the lowest priority unless it
	// duplicates an earlier variant.
	duplicate := false
	for _, q := range queries {
		if strings.EqualFold(q.Text, cleaned) {
			duplicate = true
			break
		}
	}
	if !duplicate {
		queries = append(queries, GeneratedQuery{
			Text:      cleaned,
			Variant:   VariantMixed,
			QueryType: qtype,
			Priority:  4,
		})
	}

	return queries
}

// emitTemplates instantiates the per-type templates in Hindi, English, and
// official-sites-only variants with priorities 1-3.
func emitTemplates(qtype QueryType, e Entities) []GeneratedQuery {
	subject := e.Exam
	if subject == "" {
		subject = e.Scheme
	}
	if subject == "" && e.Keyword != "" {
		subject = e.Keyword
	}
	if subject == "" {
		subject = defaultSubject
	}

	exam := e.Exam
	if exam == "" {
		exam = defaultExam
	}

	region := ""
	if e.State != "" {
		region = e.State + " "
	}

	var hindi, english, official string
	switch qtype {
	case TypeResult:
		hindi = fmt.Sprintf("%s%s रिजल्ट %s", region, exam, e.Year)
		english = fmt.Sprintf("%s%s result %s", region, exam, e.Year)
		official = fmt.Sprintf("site:gov.in %s result %s", exam, e.Year)
	case TypeAdmitCard:
		hindi = fmt.Sprintf("%s एडमिट कार्ड %s डाउनलोड", exam, e.Year)
		english = fmt.Sprintf("%s%s admit card %s download", region, exam, e.Year)
		official = fmt.Sprintf("site:gov.in %s admit card %s", exam, e.Year)
	case TypeCutoff:
		hindi = fmt.Sprintf("%s कट ऑफ %s", exam, e.Year)
		english = fmt.Sprintf("%s%s cutoff marks %s", region, exam, e.Year)
		official = fmt.Sprintf("site:gov.in %s cutoff %s", exam, e.Year)
	case TypeSyllabus:
		hindi = fmt.Sprintf("%s सिलेबस %s", exam, e.Year)
		english = fmt.Sprintf("%s syllabus exam pattern %s", exam, e.Year)
		official = fmt.Sprintf("site:gov.in %s syllabus %s", exam, e.Year)
	case TypeScheme:
		hindi = fmt.Sprintf("%s%s योजना पात्रता आवेदन", region, subject)
		english = fmt.Sprintf("%s%s scheme eligibility apply online %s", region, subject, e.Year)
		official = fmt.Sprintf("site:gov.in %s scheme %s", subject, e.Year)
	case TypeJob:
		hindi = fmt.Sprintf("%s%s भर्ती %s", region, subject, e.Year)
		english = fmt.Sprintf("%s%s recruitment %s notification", region, subject, e.Year)
		official = fmt.Sprintf("site:gov.in %s recruitment %s", subject, e.Year)
	default:
		hindi = fmt.Sprintf("%s%s जानकारी %s", region, subject, e.Year)
		english = fmt.Sprintf("%s%s latest information %s", region, subject, e.Year)
		official = fmt.Sprintf("site:gov.in %s %s", subject, e.Year)
	}

	return []GeneratedQuery{
		{Text: collapse(hindi), Variant: VariantHindi, QueryType: qtype, Priority: 1},
		{Text: collapse(english), Variant: VariantEnglish, QueryType: qtype, Priority: 2},
		{Text: collapse(official), Variant: VariantOfficialSitesOnly, QueryType: qtype, Priority: 3},
	}
}

// collapse squeezes duplicate spaces left by empty substitutions.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
