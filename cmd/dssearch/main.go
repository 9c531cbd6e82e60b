// Dssearch answers Hindi/English questions about Indian government jobs,
// schemes, results, and admit cards from trusted official and aggregator
// sites, with a policy gate deciding when external retrieval is worth it.
//
// Usage:
//
//	# Ask one question
//	dssearch ask "ssc cgl 2026 last date"
//
//	# Ask interactively (reads queries from stdin)
//	dssearch ask
//
//	# Fetch one page on the user's behalf
//	dssearch fetch https://ssc.nic.in/notice.html
//
//	# Inspect or manage the trusted-source registry
//	dssearch sources list
//	dssearch sources add --domain upsc.gov.in --type official --priority 10
//	dssearch sources block spamjobs.example.com
//
//	# Cache and search-log administration
//	dssearch cache status
//	dssearch cache clear
//	dssearch logs -n 20
//
//	# Paid search API quota and switch
//	dssearch api status
//	dssearch api enable
package main

func main() {
	Execute()
}
