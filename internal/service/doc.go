// Package service provides application-level services that orchestrate
// the domain model, the store layer and the assistant. Services return
// sentinel errors from the store package for expected conditions; the API
// layer maps those to HTTP status codes.
package service
