// Package ambari provides a client for the Ambari REST API (v1).
//
// The client covers the calls the console needs: blueprint lookup, host
// discovery, cluster create/delete/export, service state changes and request
// task listing. Non-2xx responses are returned as *APIError so callers can
// surface the server's message verbatim.
package ambari
