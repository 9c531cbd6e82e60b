package facts

// ServiceFee is the flat assistance charge in rupees added on top of the
// official application fee when quoting a total.
const ServiceFee = 20

// Fees is the application fee record quoted to the user. GovtFee is the
// official fee for the general category, or the first category found when
// no general fee was printed.
type Fees struct {
	// GovtFee is the official application fee in rupees.
	GovtFee int `json:"govt_fee"`

	// ServiceFee is the flat assistance charge in rupees.
	ServiceFee int `json:"service_fee"`

	// Total is GovtFee plus ServiceFee.
	Total int `json:"total"`

	// CategoryWise maps applicant category (general, obc, sc, st, ews,
	// female) to the official fee in rupees.
	CategoryWise map[string]int `json:"category_wise,omitempty"`
}

// Facts is the structured answer extracted from crawled pages. Zero-value
// fields mean "not found"; callers must not treat them as authoritative
// absence.
type Facts struct {
	// Title is the notification or scheme title.
	Title string `json:"title,omitempty"`

	// Organization is the issuing body, when identifiable.
	Organization string `json:"organization,omitempty"`

	// LastDate is the application deadline as printed on the page.
	LastDate string `json:"last_date,omitempty"`

	// ExamDate is the examination date as printed.
	ExamDate string `json:"exam_date,omitempty"`

	// Fees is the application fee record, nil when no fee was found.
	Fees *Fees `json:"fees,omitempty"`

	// AgeMin and AgeMax bound the eligible age range; zero means not found.
	AgeMin int `json:"age_min,omitempty"`
	AgeMax int `json:"age_max,omitempty"`

	// Vacancies is the advertised post count; zero means not found.
	Vacancies int `json:"vacancies,omitempty"`

	// Qualification is the minimum qualification line.
	Qualification string `json:"qualification,omitempty"`

	// Eligibility is a short eligibility sentence when one was found.
	Eligibility string `json:"eligibility,omitempty"`

	// Documents lists required documents recognised in the text.
	Documents []string `json:"documents,omitempty"`

	// State is the state the notification applies to, when mentioned.
	State string `json:"state,omitempty"`

	// Links are the action links carried over from the source pages.
	Links []string `json:"links,omitempty"`

	// PDFLinks is the subset of Links pointing at PDF documents.
	PDFLinks []string `json:"pdf_links,omitempty"`

	// SourceURL and SourceDomain identify the page that supplied the title.
	SourceURL    string `json:"source_url,omitempty"`
	SourceDomain string `json:"source_domain,omitempty"`

	// Confidence scores how complete and well-sourced this extraction is,
	// in [0,1].
	Confidence float64 `json:"confidence"`
}

// TotalFee returns the official fee for the category plus the service
// charge. The second return is false when no fee was extracted for the
// category.
func (f *Facts) TotalFee(category string) (int, bool) {
	if f.Fees == nil {
		return 0, false
	}
	fee, ok := f.Fees.CategoryWise[category]
	if !ok {
		return 0, false
	}
	return fee + f.Fees.ServiceFee, true
}

// Valid reports whether the extraction is substantial enough to present as
// a structured answer rather than falling back to raw snippets: a title
// plus at least one of a deadline, action links, or an eligibility line.
func (f *Facts) Valid() bool {
	if f.Title == "" {
		return false
	}
	return f.LastDate != "" || len(f.Links) > 0 || f.Eligibility != ""
}
