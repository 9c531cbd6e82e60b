// Package querygen turns a cleaned user utterance into 2-4 ranked search
// queries across language variants.
//
// The generator removes bilingual filler words, extracts entities (exam,
// state, year, scheme, leading keyword), classifies the query type, and
// instantiates per-type templates in three variants: Hindi phrasing,
// English phrasing, and a site:gov.in scoped form. The cleaned original is
// always appended at the lowest priority unless it duplicates an earlier
// variant.
//
// Output order is stable for identical input, which the cache layer relies
// on for coherent keys.
package querygen
