// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

/*
Package api provides the HTTP REST API for otto.

Every endpoint responds with the same envelope:

	{
	  "success": true,
	  "data": {...},
	  "error": {"code": "INVALID_ARGUMENT", "message": "...", "details": {...}},
	  "meta": {"timestamp": "...", "request_id": "..."}
	}

Routes:

	POST /api/v1/compare                    compare 2-4 vehicles
	POST /api/v1/recommendations            personalized recommendations
	GET  /api/v1/recommendations/stats      recommendation engine counters
	POST /api/v1/interactions               track a shopper interaction (always 202)
	POST /api/v1/feedback                   feedback on a recommendation
	GET  /api/v1/users/{userID}/profile     behavior profile
	GET  /api/v1/users/{userID}/stats       interaction statistics (?days=1..365)
	GET  /api/v1/vehicles/{id}              catalog lookup
	GET  /api/v1/health/live                liveness probe
	GET  /api/v1/health/ready               readiness probe
	GET  /metrics                           Prometheus metrics

Error mapping:

  - malformed JSON: 400 INVALID_JSON
  - request validation: 400 VALIDATION_ERROR
  - vehicle.InvalidArgument: 400 INVALID_ARGUMENT
  - vehicle.NotFound or tracking.ErrProfileNotFound: 404 NOT_FOUND
  - anything else: 500 INTERNAL_ERROR (the message is never leaked)

Tracking and feedback never fail the caller. Malformed interactions are
answered with {"tracked": false} and malformed feedback with
{"accepted": false}.
*/
package api
