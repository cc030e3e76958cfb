// Package scraper fetches Codeforces problem pages and turns them into
// formatted problems.
//
// Fetching retries transient failures (network errors, 429 and 5xx
// responses) with backoff. The page body is then handed to the line scanner
// for the statement, samples and note, and to goquery for the problem tags
// shown in the sidebar.
package scraper
