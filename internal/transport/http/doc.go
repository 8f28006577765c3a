// Package http contains the chi HTTP handlers: the scan trigger
// endpoint, health checks, and their request/response contracts.
package http
