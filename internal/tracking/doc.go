// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

/*
Package tracking records shopper interactions into time-bounded sessions and
aggregates them into behavior profiles.

# Sessions

A session is created on a user's first interaction and stays active while
interactions keep arriving within the session timeout (30 minutes by default).
An expired session is never returned by lookups. Before it is removed, either
lazily on the user's next access or by the periodic sweep, its contribution
is folded into the user's archived profile baseline so profile totals never
go down.

# Stores

Sessions and archived profiles sit behind the SessionStore and ProfileStore
interfaces. MemorySessionStore and MemoryProfileStore keep everything in
process; BadgerSessionStore and BadgerProfileStore persist to BadgerDB using
prefix keys:

	session:{session_id}            JSON session
	session_user:{user_id}:{id}     user to session index
	profile:{user_id}               JSON archived profile

# Tracking Never Fails

TrackInteraction validates its input and returns false for malformed events
(missing user id, unknown type, unparseable timestamp) without creating any
state. Store and publish failures are logged at debug level and reported as
false; nothing is returned to the caller as an error.

# Signals

ActivitySignals turns recent interactions into trending scores and urgency
indicators, and PeerIndex finds users with overlapping viewed and saved
vehicles for collaborative filtering.
*/
package tracking
