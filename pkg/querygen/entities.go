package querygen

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// examPattern pairs a compiled regex with the canonical exam name. Order
// matters: the first match within the catalogue wins, so more specific
// patterns come first.
type examPattern struct {
	re   *regexp.Regexp
	name string
}

var examCatalogue = []examPattern{
	{regexp.MustCompile(`\bssc\s*-?\s*cgl\b`), "SSC CGL"},
	{regexp.MustCompile(`\bssc\s*-?\s*chsl\b`), "SSC CHSL"},
	{regexp.MustCompile(`\bssc\s*-?\s*mts\b`), "SSC MTS"},
	{regexp.MustCompile(`\bssc\s*-?\s*gd\b`), "SSC GD Constable"},
	{regexp.MustCompile(`\bupsc\s*-?\s*(cse|civil services?)\b`), "UPSC Civil Services"},
	{regexp.MustCompile(`\bnda\b`), "UPSC NDA"},
	{regexp.MustCompile(`\bcds\b`), "UPSC CDS"},
	{regexp.MustCompile(`\brrb\s*-?\s*ntpc\b`), "RRB NTPC"},
	{regexp.MustCompile(`\brrb\s*-?\s*alp\b`), "RRB ALP"},
	{regexp.MustCompile(`\brrb\s*-?\s*(group\s*d|grp\s*d)\b`), "RRB Group D"},
	{regexp.MustCompile(`\bibps\s*-?\s*po\b`), "IBPS PO"},
	{regexp.MustCompile(`\bibps\s*-?\s*clerk\b`), "IBPS Clerk"},
	{regexp.MustCompile(`\bsbi\s*-?\s*po\b`), "SBI PO"},
	{regexp.MustCompile(`\bneet\b`), "NEET"},
	{regexp.MustCompile(`\bjee\s*-?\s*(main|mains)\b`), "JEE Main"},
	{regexp.MustCompile(`\bjee\s*-?\s*advanced?\b`), "JEE Advanced"},
	{regexp.MustCompile(`\bctet\b`), "CTET"},
	{regexp.MustCompile(`\bgate\b`), "GATE"},
	{regexp.MustCompile(`\bupsc\b`), "UPSC"},
	{regexp.MustCompile(`\bssc\b`), "SSC"},
	{regexp.MustCompile(`\brrb\b`), "RRB"},
	{regexp.MustCompile(`\bibps\b`), "IBPS"},
}

// stateNames maps lowercase canonical forms and abbreviations to display
// names.
var stateNames = map[string]string{
	"andhra pradesh":    "Andhra Pradesh",
	"arunachal pradesh": "Arunachal Pradesh",
	"assam":             "Assam",
	"bihar":             "Bihar",
	"chhattisgarh":      "Chhattisgarh",
	"goa":               "Goa",
	"gujarat":           "Gujarat",
	"haryana":           "Haryana",
	"himachal pradesh":  "Himachal Pradesh",
	"himachal":          "Himachal Pradesh",
	"jharkhand":         "Jharkhand",
	"karnataka":         "Karnataka",
	"kerala":            "Kerala",
	"madhya pradesh":    "Madhya Pradesh",
	"maharashtra":       "Maharashtra",
	"manipur":           "Manipur",
	"meghalaya":         "Meghalaya",
	"mizoram":           "Mizoram",
	"nagaland":          "Nagaland",
	"odisha":            "Odisha",
	"orissa":            "Odisha",
	"punjab":            "Punjab",
	"rajasthan":         "Rajasthan",
	"sikkim":            "Sikkim",
	"tamil nadu":        "Tamil Nadu",
	"tamilnadu":         "Tamil Nadu",
	"telangana":         "Telangana",
	"tripura":           "Tripura",
	"uttar pradesh":     "Uttar Pradesh",
	"uttarakhand":       "Uttarakhand",
	"west bengal":       "West Bengal",
	"delhi":             "Delhi",
	"up":                "Uttar Pradesh",
	"mp":                "Madhya Pradesh",
	"hp":                "Himachal Pradesh",
	"tn":                "Tamil Nadu",
	"wb":                "West Bengal",
	"uk":                "Uttarakhand",
}

// schemeNames maps scheme keywords to canonical scheme names.
var schemeNames = map[string]string{
	"pm kisan":       "PM Kisan Samman Nidhi",
	"pm-kisan":       "PM Kisan Samman Nidhi",
	"pmkisan":        "PM Kisan Samman Nidhi",
	"kisan samman":   "PM Kisan Samman Nidhi",
	"ayushman":       "Ayushman Bharat",
	"pmjay":          "Ayushman Bharat",
	"ujjwala":        "PM Ujjwala Yojana",
	"mudra":          "PM Mudra Yojana",
	"awas yojana":    "PM Awas Yojana",
	"awas":           "PM Awas Yojana",
	"jan dhan":       "PM Jan Dhan Yojana",
	"jandhan":        "PM Jan Dhan Yojana",
	"sukanya":        "Sukanya Samriddhi Yojana",
	"atal pension":   "Atal Pension Yojana",
	"fasal bima":     "PM Fasal Bima Yojana",
	"vishwakarma":    "PM Vishwakarma Yojana",
	"kaushal vikas":  "PM Kaushal Vikas Yojana",
	"old age pension": "Old Age Pension",
	"vridha pension": "Old Age Pension",
}

var yearPattern = regexp.MustCompile(`\b20[2-9]\d\b`)

// stateKeys and schemeKeys hold the map keys sorted longest-first so
// multi-word forms win over abbreviations ("uttar pradesh" before "up").
var (
	stateKeys  = sortedKeysByLength(stateNames)
	schemeKeys = sortedKeysByLength(schemeNames)
)

func sortedKeysByLength(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Insertion sort by descending length; the catalogues are small.
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && len(keys[j]) > len(keys[j-1]); j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}

// ExtractEntities pulls structured values from a cleaned query. Within each
// category the first catalogue match wins. Year defaults to the current
// calendar year when absent.
func ExtractEntities(cleaned string) Entities {
	var e Entities

	for _, ep := range examCatalogue {
		if ep.re.MatchString(cleaned) {
			e.Exam = ep.name
			break
		}
	}

	for _, key := range stateKeys {
		if containsWord(cleaned, key) {
			e.State = stateNames[key]
			break
		}
	}

	if m := yearPattern.FindString(cleaned); m != "" {
		e.Year = m
	} else {
		e.Year = strconv.Itoa(time.Now().Year())
	}

	for _, key := range schemeKeys {
		if strings.Contains(cleaned, key) {
			e.Scheme = schemeNames[key]
			break
		}
	}

	if tokens := strings.Fields(cleaned); len(tokens) > 0 {
		e.Keyword = tokens[0]
	}

	return e
}

// containsWord matches key at word boundaries; short abbreviations like
// "up" must not match inside other words.
func containsWord(s, key string) bool {
	idx := 0
	for {
		i := strings.Index(s[idx:], key)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(key)
		startOK := start == 0 || s[start-1] == ' '
		endOK := end == len(s) || s[end] == ' '
		if startOK && endOK {
			return true
		}
		idx = start + 1
		if idx >= len(s) {
			return false
		}
	}
}
