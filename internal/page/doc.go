// Package page holds the per-page view models: the state a page derives from
// the records it fetched (filters, grouping, carousel position, form state).
// Fetching happens in the HTTP layer; nothing here talks to storage except
// the dashboard, which only needs a counter.
package page
