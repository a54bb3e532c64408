// Package scraper fetches the holidays page over HTTP.
//
// A single GET is made with browser-like headers. The raw body is captured to a
// debug file as soon as a response arrives, before the status is checked, so a
// failed run still leaves the page behind for inspection. There are no retries.
package scraper
