package querygen

// Variant identifies the language or scoping form of a generated query.
type Variant string

const (
	// VariantHindi is the Hindi-localised phrasing.
	VariantHindi Variant = "hindi"
	// VariantEnglish is the English-localised phrasing.
	VariantEnglish Variant = "english"
	// VariantOfficialSitesOnly scopes the query to government sites.
	VariantOfficialSitesOnly Variant = "official_sites_only"
	// VariantMixed is the cleaned original utterance, usually Hinglish.
	VariantMixed Variant = "mixed"
)

// QueryType classifies what the user is looking for.
type QueryType string

const (
	TypeJob       QueryType = "job"
	TypeScheme    QueryType = "scheme"
	TypeResult    QueryType = "result"
	TypeAdmitCard QueryType = "admit_card"
	TypeCutoff    QueryType = "cutoff"
	TypeSyllabus  QueryType = "syllabus"
	TypeGeneral   QueryType = "general"
)

// GeneratedQuery is one emitted search query.
type GeneratedQuery struct {
	// Text is the formatted query. Never empty.
	Text string

	// Variant is the language/scoping form of this query.
	Variant Variant

	// QueryType is the classification shared by all queries in a batch.
	QueryType QueryType

	// Priority ranks the query from 1 (try first) to 4.
	Priority int
}

// Entities are the structured values extracted from the utterance.
type Entities struct {
	// Exam is the canonical exam name (e.g. "SSC CGL"), empty if none.
	Exam string

	// State is the canonical state display name (e.g. "Bihar"), empty if
	// none.
	State string

	// Year is the four-digit year mentioned in the query, defaulting to
	// the current calendar year.
	Year string

	// Scheme is the canonical scheme name (e.g. "PM Kisan Samman Nidhi"),
	// empty if none.
	Scheme string

	// Keyword is the first non-filler token of the cleaned query.
	Keyword string
}
