// Package ranker orders crawled results by a weighted fusion of four
// signals: query relevance, domain trust, content freshness, and title
// match. Weights come from configuration and default to 0.40/0.35/0.15/0.10.
// Results below the minimum score are dropped and at most MaxResults
// survive, so an official portal with a thinner page still outranks a
// keyword-stuffed aggregator.
package ranker
