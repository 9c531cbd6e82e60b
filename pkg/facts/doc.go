// Package facts pulls structured answers out of ranked crawl results:
// deadlines, fees, age limits, vacancy counts, required documents, and
// qualification lines, in English and Hindi. Extraction walks results in
// rank order and first value found wins, so the most trusted page supplies
// each field.
//
// Every extraction carries a confidence value in [0,1] computed from which
// fields were found and how trusted the source is. Callers use it to decide
// whether the facts are worth presenting over the raw snippets.
package facts
