// Package api defines the request and response messages of the Shepherd
// RPC services. Messages travel as JSON; dates are ISO "YYYY-MM-DD"
// strings and timestamps are Unix seconds.
package api
