// Package api provides the local REST proxy in front of the controller API.
//
// The proxy holds the controller auth token so that local tools do not need
// it, and runs every configuration through the same validation pipeline as
// the CLI before it reaches the controller. It provides:
//   - Offline validation of a network configuration
//   - CRUD operations for controller networks
//   - Member authorization
//   - Health checks
//
// # Response Format
//
// All successful responses wrap data in a "data" field:
//
//	{
//	  "data": { /* response payload */ }
//	}
//
// Error responses use the following format:
//
//	{
//	  "error": {
//	    "code": "validation_failed",
//	    "message": "Human-readable error message",
//	    "details": { "routes.1.via": "no carrying network for gateway 10.0.0.1" }
//	  }
//	}
//
// Validation failures answer 422 with one detail per failing field, and
// controller failures answer 502. details.kind carries the error code the
// CLI prints, for example VALIDATION_ERROR or TRANSPORT_ERROR.
package api
