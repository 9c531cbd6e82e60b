// Package crawler fetches pages from trusted Indian government and exam
// portals. Discovery runs through a pluggable search backend (DuckDuckGo
// HTML by default), fetching is serialised with per-domain politeness
// delays, and extraction reduces each page to title, text content, a
// snippet, and action links.
//
// Fetch failures never abort a crawl: every attempted URL yields a
// RawResult, failed ones with Success=false, so downstream ranking works
// with whatever arrived.
package crawler
