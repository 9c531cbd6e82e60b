package facts

import "regexp"

// datePart matches the common date spellings on Indian portals:
// 15/03/2026, 15-03-2026, 15 March 2026, March 15, 2026.
const datePart = `(\d{1,2}[/-]\d{1,2}[/-]\d{4}|\d{1,2}(?:st|nd|rd|th)?\s+(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:tember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)[,.]?\s+\d{4}|(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:tember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\s+\d{1,2}[,.]?\s+\d{4})`

var (
	lastDatePattern = regexp.MustCompile(`(?i)(?:last\s+date|closing\s+date|apply\s+(?:before|by)|अंतिम\s+तिथि)[^0-9a-z]*(?:to\s+apply\s*)?(?:is\s*)?[:\-]?\s*` + datePart)
	examDatePattern = regexp.MustCompile(`(?i)(?:exam(?:ination)?\s+date|date\s+of\s+exam(?:ination)?|परीक्षा\s+तिथि)[^0-9a-z]*(?:is\s*)?[:\-]?\s*` + datePart)

	// feePattern captures "general category fee Rs. 100" style lines; the
	// category may come before or after the amount.
	feeCategoryPattern = regexp.MustCompile(`(?i)\b(general|unreserved|ur|obc|sc|st|ews|female|women)\b[^.\n]{0,40}?(?:rs\.?|₹|inr)\s*(\d{1,5})`)
	feeFlatPattern     = regexp.MustCompile(`(?i)(?:application|exam(?:ination)?)\s+fee[^.\n]{0,30}?(?:rs\.?|₹|inr)\s*(\d{1,5})`)

	ageRangePattern = regexp.MustCompile(`(?i)\bage(?:\s+limit)?[^.\n]{0,30}?(\d{2})\s*(?:to|[-–])\s*(\d{2})\s*(?:years|yrs|वर्ष)?`)
	maxAgePattern   = regexp.MustCompile(`(?i)(?:maximum|max\.?|upper)\s+age[^.\n]{0,20}?(\d{2})`)

	vacancyPattern = regexp.MustCompile(`(?i)\b([\d,]{2,8})\s*(?:\+\s*)?(?:posts|vacancies|vacancy|seats|पद|रिक्तियां)\b`)

	qualificationPattern = regexp.MustCompile(`(?i)(?:minimum\s+)?(?:educational\s+)?qualification[^.\n]{0,10}[:\-]?\s*([^.\n]{5,120})`)
	eligibilityPattern   = regexp.MustCompile(`(?i)eligib(?:le|ility)[^.\n]{0,10}[:\-]?\s*([^.\n]{5,160})`)

	organizationPattern = regexp.MustCompile(`(?i)\b((?:staff\s+selection\s+commission|union\s+public\s+service\s+commission|railway\s+recruitment\s+board|institute\s+of\s+banking\s+personnel\s+selection|national\s+testing\s+agency|[a-z]+\s+public\s+service\s+commission))\b`)
)

// documentWords maps recognisable document mentions to canonical names.
var documentWords = map[string]string{
	"aadhaar":            "Aadhaar Card",
	"aadhar":             "Aadhaar Card",
	"आधार":               "Aadhaar Card",
	"pan card":           "PAN Card",
	"photograph":         "Photograph",
	"photo":              "Photograph",
	"signature":          "Signature",
	"marksheet":          "Marksheet",
	"mark sheet":         "Marksheet",
	"caste certificate":  "Caste Certificate",
	"domicile":           "Domicile Certificate",
	"income certificate": "Income Certificate",
}

// documentOrder fixes the emission order so extraction is deterministic.
var documentOrder = []string{
	"aadhaar", "aadhar", "आधार", "pan card", "photograph", "photo",
	"signature", "marksheet", "mark sheet", "caste certificate",
	"domicile", "income certificate",
}
