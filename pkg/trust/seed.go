package trust

// seedSources is the built-in registry content: central and state government
// portals, examination boards, and scheme portals, with explicit priorities
// and category tags. Aggregators are seeded at lower priority so official
// sources outrank them at equal relevance.
func seedSources() []TrustedSource {
	return []TrustedSource{
		// Central government
		{Domain: "india.gov.in", Type: TypeOfficial, DisplayName: "National Portal of India", Priority: 10, Enabled: true, Categories: []Category{CategoryGovernment, CategoryScheme}},
		{Domain: "mygov.in", Type: TypeOfficial, DisplayName: "MyGov", Priority: 9, Enabled: true, Categories: []Category{CategoryGovernment, CategoryScheme}},
		{Domain: "ncs.gov.in", Type: TypeOfficial, DisplayName: "National Career Service", Priority: 9, Enabled: true, Categories: []Category{CategoryJob}},

		// Examination bodies
		{Domain: "ssc.nic.in", Type: TypeOfficial, DisplayName: "Staff Selection Commission", Priority: 10, Enabled: true, Categories: []Category{CategoryJob, CategoryResult, CategoryAdmitCard}},
		{Domain: "ssc.gov.in", Type: TypeOfficial, DisplayName: "Staff Selection Commission", Priority: 10, Enabled: true, Categories: []Category{CategoryJob, CategoryResult, CategoryAdmitCard}},
		{Domain: "upsc.gov.in", Type: TypeOfficial, DisplayName: "Union Public Service Commission", Priority: 10, Enabled: true, Categories: []Category{CategoryJob, CategoryResult, CategoryAdmitCard}},
		{Domain: "rrbcdg.gov.in", Type: TypeOfficial, DisplayName: "Railway Recruitment Boards", Priority: 9, Enabled: true, Categories: []Category{CategoryJob, CategoryResult, CategoryAdmitCard}},
		{Domain: "rrbapply.gov.in", Type: TypeOfficial, DisplayName: "RRB Online Applications", Priority: 9, Enabled: true, Categories: []Category{CategoryJob, CategoryAdmitCard}},
		{Domain: "ibps.in", Type: TypeSemiOfficial, DisplayName: "Institute of Banking Personnel Selection", Priority: 9, Enabled: true, Categories: []Category{CategoryJob, CategoryResult, CategoryAdmitCard}},
		{Domain: "nta.ac.in", Type: TypeSemiOfficial, DisplayName: "National Testing Agency", Priority: 9, Enabled: true, Categories: []Category{CategoryResult, CategoryAdmitCard, CategoryEducation}},
		{Domain: "ctet.nic.in", Type: TypeOfficial, DisplayName: "Central Teacher Eligibility Test", Priority: 8, Enabled: true, Categories: []Category{CategoryResult, CategoryAdmitCard}},
		{Domain: "joinindianarmy.nic.in", Type: TypeOfficial, DisplayName: "Join Indian Army", Priority: 9, Enabled: true, Categories: []Category{CategoryJob, CategoryAdmitCard}},

		// Scheme portals
		{Domain: "pmkisan.gov.in", Type: TypeOfficial, DisplayName: "PM-KISAN", Priority: 10, Enabled: true, Categories: []Category{CategoryScheme}},
		{Domain: "pmay-urban.gov.in", Type: TypeOfficial, DisplayName: "PM Awas Yojana (Urban)", Priority: 9, Enabled: true, Categories: []Category{CategoryScheme}},
		{Domain: "pmjay.gov.in", Type: TypeOfficial, DisplayName: "Ayushman Bharat PM-JAY", Priority: 9, Enabled: true, Categories: []Category{CategoryScheme}},
		{Domain: "pmujjwalayojana.com", Type: TypeSemiOfficial, DisplayName: "PM Ujjwala Yojana", Priority: 7, Enabled: true, Categories: []Category{CategoryScheme}},
		{Domain: "mudra.org.in", Type: TypeSemiOfficial, DisplayName: "MUDRA", Priority: 8, Enabled: true, Categories: []Category{CategoryScheme}},
		{Domain: "nsap.nic.in", Type: TypeOfficial, DisplayName: "National Social Assistance Programme", Priority: 8, Enabled: true, Categories: []Category{CategoryScheme}},

		// State public service commissions and portals
		{Domain: "uppsc.up.nic.in", Type: TypeOfficial, DisplayName: "UP Public Service Commission", Priority: 9, Enabled: true, Categories: []Category{CategoryJob, CategoryResult, CategoryAdmitCard}},
		{Domain: "bpsc.bihar.gov.in", Type: TypeOfficial, DisplayName: "Bihar Public Service Commission", Priority: 9, Enabled: true, Categories: []Category{CategoryJob, CategoryResult, CategoryAdmitCard}},
		{Domain: "mppsc.mp.gov.in", Type: TypeOfficial, DisplayName: "MP Public Service Commission", Priority: 9, Enabled: true, Categories: []Category{CategoryJob, CategoryResult}},
		{Domain: "rpsc.rajasthan.gov.in", Type: TypeOfficial, DisplayName: "Rajasthan Public Service Commission", Priority: 9, Enabled: true, Categories: []Category{CategoryJob, CategoryResult, CategoryAdmitCard}},
		{Domain: "wbpsc.gov.in", Type: TypeOfficial, DisplayName: "West Bengal Public Service Commission", Priority: 9, Enabled: true, Categories: []Category{CategoryJob, CategoryResult}},

		// Aggregators and news (lower priority)
		{Domain: "sarkariresult.com", Type: TypeAggregator, DisplayName: "Sarkari Result", Priority: 5, Enabled: true, RateLimit: 0.5, Categories: []Category{CategoryJob, CategoryResult, CategoryAdmitCard}},
		{Domain: "freejobalert.com", Type: TypeAggregator, DisplayName: "FreeJobAlert", Priority: 5, Enabled: true, RateLimit: 0.5, Categories: []Category{CategoryJob, CategoryAdmitCard}},
		{Domain: "employmentnews.gov.in", Type: TypeOfficial, DisplayName: "Employment News", Priority: 8, Enabled: true, Categories: []Category{CategoryJob, CategoryNews}},
		{Domain: "jagranjosh.com", Type: TypeNews, DisplayName: "Jagran Josh", Priority: 4, Enabled: true, RateLimit: 0.5, Categories: []Category{CategoryJob, CategoryResult, CategoryNews}},
	}
}

// queryTypeCategories maps a generated-query type to the registry categories
// that serve it. Keys match querygen.QueryType string values.
var queryTypeCategories = map[string][]Category{
	"job":        {CategoryJob, CategoryResult, CategoryAdmitCard},
	"scheme":     {CategoryScheme, CategoryGovernment},
	"result":     {CategoryResult, CategoryJob},
	"admit_card": {CategoryAdmitCard, CategoryResult},
	"cutoff":     {CategoryResult, CategoryEducation},
	"syllabus":   {CategoryEducation, CategoryJob},
	"general":    {CategoryGovernment, CategoryJob, CategoryScheme},
}
