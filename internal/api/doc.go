// Package api provides the HTTP handlers for the REST surface: account
// registration and login, vocabulary management, review submission, queue
// retrieval, schedule rebalancing and notification advice.
package api
