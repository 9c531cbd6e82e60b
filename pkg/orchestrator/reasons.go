package orchestrator

// reasonKey selects a user-facing message.
type reasonKey string

const (
	reasonBlocked     reasonKey = "blocked"
	reasonGreeting    reasonKey = "greeting"
	reasonSmallTalk   reasonKey = "small_talk"
	reasonPersonal    reasonKey = "personal_status"
	reasonCached      reasonKey = "cached"
	reasonNotNeeded   reasonKey = "not_needed"
	reasonRateLimited reasonKey = "rate_limited"
	reasonSearched    reasonKey = "searched"
	reasonNoResults   reasonKey = "no_results"
	reasonEmptyQuery  reasonKey = "empty_query"
	reasonFetchedURL  reasonKey = "fetched_url"
	reasonFetchFailed reasonKey = "fetch_failed"
)

var reasonMessages = map[reasonKey]map[string]string{
	reasonBlocked: {
		"en": "This query cannot be answered here.",
		"hi": "यह प्रश्न यहाँ नहीं देखा जा सकता।",
	},
	reasonGreeting: {
		"en": "Namaste! Ask me about government jobs, results, admit cards, or schemes.",
		"hi": "नमस्ते! सरकारी नौकरी, रिजल्ट, एडमिट कार्ड या योजनाओं के बारे में पूछिए।",
	},
	reasonSmallTalk: {
		"en": "I am here to help with government jobs and schemes. What would you like to know?",
		"hi": "मैं सरकारी नौकरी और योजनाओं में मदद के लिए हूँ। आप क्या जानना चाहेंगे?",
	},
	reasonPersonal: {
		"en": "Please check your application status on the official portal where you applied.",
		"hi": "कृपया अपना आवेदन स्टेटस उसी आधिकारिक पोर्टल पर देखें जहाँ आपने आवेदन किया था।",
	},
	reasonCached: {
		"en": "Here is what I found recently for this question.",
		"hi": "इस प्रश्न के लिए हाल की जानकारी यह रही।",
	},
	reasonNotNeeded: {
		"en": "I could answer this without a fresh search.",
		"hi": "इसके लिए नई खोज की ज़रूरत नहीं पड़ी।",
	},
	reasonRateLimited: {
		"en": "Search limit reached for now. Please try again in a little while.",
		"hi": "अभी खोज की सीमा पूरी हो गई है। कृपया थोड़ी देर बाद फिर से पूछें।",
	},
	reasonSearched: {
		"en": "Here is the latest information from official sources.",
		"hi": "आधिकारिक स्रोतों से ताज़ा जानकारी यह रही।",
	},
	reasonNoResults: {
		"en": "I could not find reliable information for this right now.",
		"hi": "अभी इसके लिए भरोसेमंद जानकारी नहीं मिल पाई।",
	},
	reasonEmptyQuery: {
		"en": "Empty query. Please type a question about jobs, results, or schemes.",
		"hi": "खाली प्रश्न। कृपया नौकरी, रिजल्ट या योजना के बारे में कुछ लिखिए।",
	},
	reasonFetchedURL: {
		"en": "Here is what that page says.",
		"hi": "उस पेज पर यह जानकारी है।",
	},
	reasonFetchFailed: {
		"en": "That page could not be read.",
		"hi": "वह पेज नहीं पढ़ा जा सका।",
	},
}

// reasonText returns the message for the key in the requested language,
// falling back to English.
func reasonText(key reasonKey, lang string) string {
	msgs, ok := reasonMessages[key]
	if !ok {
		return ""
	}
	if m, ok := msgs[lang]; ok {
		return m
	}
	return msgs["en"]
}
