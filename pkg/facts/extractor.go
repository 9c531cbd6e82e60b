package facts

import (
	"strconv"
	"strings"

	"dslabs/dssearch/pkg/querygen"
	"dslabs/dssearch/pkg/ranker"
	"dslabs/dssearch/pkg/trust"
)

// Extractor builds Facts from ranked results. Safe for concurrent use.
type Extractor struct {
	registry *trust.Registry
}

// NewExtractor creates an extractor. The registry supplies source-trust
// priorities for the confidence computation; nil scores source trust zero.
func NewExtractor(registry *trust.Registry) *Extractor {
	return &Extractor{registry: registry}
}

// Extract walks the results in rank order and fills each fact field from
// the first page that provides it. The title and source attribution come
// from the top result.
func (e *Extractor) Extract(query string, results []ranker.RankedResult) Facts {
	var f Facts
	f.State = querygen.ExtractEntities(query).State

	for i, res := range results {
		text := res.Title + "\n" + res.Content

		if i == 0 {
			f.Title = res.Title
			f.SourceURL = res.URL
			f.SourceDomain = res.Domain
		}
		if f.Organization == "" {
			if m := organizationPattern.FindStringSubmatch(text); m != nil {
				f.Organization = canonicalCase(m[1])
			}
		}
		if f.LastDate == "" {
			if m := lastDatePattern.FindStringSubmatch(text); m != nil {
				f.LastDate = strings.TrimSpace(m[1])
			}
		}
		if f.ExamDate == "" {
			if m := examDatePattern.FindStringSubmatch(text); m != nil {
				f.ExamDate = strings.TrimSpace(m[1])
			}
		}
		if f.Fees == nil {
			if cats := extractFees(text); len(cats) > 0 {
				f.Fees = feeRecord(cats)
			}
		}
		if f.AgeMin == 0 && f.AgeMax == 0 {
			f.AgeMin, f.AgeMax = extractAge(text)
		}
		if f.Vacancies == 0 {
			f.Vacancies = extractVacancies(text)
		}
		if f.Qualification == "" {
			if m := qualificationPattern.FindStringSubmatch(text); m != nil {
				f.Qualification = strings.TrimSpace(m[1])
			}
		}
		if f.Eligibility == "" {
			if m := eligibilityPattern.FindStringSubmatch(text); m != nil {
				f.Eligibility = strings.TrimSpace(m[1])
			}
		}
		if f.Documents == nil {
			f.Documents = extractDocuments(text)
		}
		f.Links = mergeLinks(f.Links, res.Links)
	}

	for _, l := range f.Links {
		if strings.HasSuffix(strings.ToLower(l), ".pdf") {
			f.PDFLinks = append(f.PDFLinks, l)
		}
	}

	f.Confidence = e.confidence(&f)
	return f
}

// confidence scores extraction completeness. Field presence and source
// trust contribute fixed weights summing to 1.0.
func (e *Extractor) confidence(f *Facts) float64 {
	score := 0.0
	if f.Title != "" {
		score += 0.15
	}
	score += 0.25 * e.sourceTrust(f.SourceDomain)
	if f.LastDate != "" {
		score += 0.15
	}
	if f.Eligibility != "" || f.Qualification != "" {
		score += 0.10
	}
	if f.Fees != nil {
		score += 0.10
	}
	if len(f.Links) > 0 {
		score += 0.15
	}
	if f.Vacancies > 0 {
		score += 0.05
	}
	if len(f.Documents) > 0 {
		score += 0.05
	}
	return score
}

func (e *Extractor) sourceTrust(domain string) float64 {
	if e.registry == nil || domain == "" {
		return 0
	}
	t := float64(e.registry.GetPriority(domain)) / 10.0
	if t > 1 {
		t = 1
	}
	return t
}

// extractFees collects category-wise fees, falling back to a flat
// application fee filed under "general".
func extractFees(text string) map[string]int {
	fees := make(map[string]int)
	for _, m := range feeCategoryPattern.FindAllStringSubmatch(text, -1) {
		cat := canonicalCategory(m[1])
		amount, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		if _, seen := fees[cat]; !seen {
			fees[cat] = amount
		}
	}
	if len(fees) == 0 {
		if m := feeFlatPattern.FindStringSubmatch(text); m != nil {
			if amount, err := strconv.Atoi(m[1]); err == nil {
				fees["general"] = amount
			}
		}
	}
	return fees
}

// feeCategoryOrder fixes which category supplies the headline fee when no
// general fee was printed.
var feeCategoryOrder = []string{"general", "obc", "ews", "sc", "st", "female"}

// feeRecord builds the quoted fee record from the per-category fees. The
// headline govt fee is the general-category fee when present, otherwise the
// first category in preference order.
func feeRecord(cats map[string]int) *Fees {
	govt := 0
	for _, c := range feeCategoryOrder {
		if v, ok := cats[c]; ok {
			govt = v
			break
		}
	}
	return &Fees{
		GovtFee:      govt,
		ServiceFee:   ServiceFee,
		Total:        govt + ServiceFee,
		CategoryWise: cats,
	}
}

func canonicalCategory(cat string) string {
	switch strings.ToLower(cat) {
	case "ur", "unreserved":
		return "general"
	case "women":
		return "female"
	default:
		return strings.ToLower(cat)
	}
}

func extractAge(text string) (min, max int) {
	if m := ageRangePattern.FindStringSubmatch(text); m != nil {
		min, _ = strconv.Atoi(m[1])
		max, _ = strconv.Atoi(m[2])
		if min > max {
			min, max = max, min
		}
		return min, max
	}
	if m := maxAgePattern.FindStringSubmatch(text); m != nil {
		max, _ = strconv.Atoi(m[1])
	}
	return 0, max
}

func extractVacancies(text string) int {
	m := vacancyPattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return 0
	}
	return n
}

func extractDocuments(text string) []string {
	lower := strings.ToLower(text)
	var docs []string
	seen := make(map[string]bool)
	for _, word := range documentOrder {
		if !strings.Contains(lower, word) {
			continue
		}
		name := documentWords[word]
		if seen[name] {
			continue
		}
		seen[name] = true
		docs = append(docs, name)
	}
	return docs
}

func mergeLinks(existing, add []string) []string {
	seen := make(map[string]bool, len(existing))
	for _, l := range existing {
		seen[l] = true
	}
	for _, l := range add {
		if !seen[l] {
			seen[l] = true
			existing = append(existing, l)
		}
	}
	return existing
}

// canonicalCase title-cases a matched organisation name.
func canonicalCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		if w == "of" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
