/*
Package server implements msgpack IPC over a frozen tag index.

The server reads msgpack requests from stdin and writes one msgpack reply per
request to stdout. Requests are handled one at a time on a single goroutine,
so the index it wraps is never touched concurrently.

# IPC

On start the server writes a status message so clients know the index is loaded:

	{"id": "", "status": "ready"}

Every request names an action and, for searches, a query and optional limit:

	{"id": "req_001", "a": "prefix", "q": "ba", "l": 5}

Search replies carry the matching tags, their count and the time taken in µs:

	{"id": "req_001", "s": ["ball", "base", "bat"], "c": 3, "t": 41}

A lookup also carries the value stored under the tag, here its line number:

	{"id": "req_002", "a": "lookup", "q": "bat"}
	{"id": "req_002", "s": ["bat"], "v": 2, "c": 1, "t": 3}

Relative searches list the closest tags first, with their edit distances:

	{"id": "req_003", "a": "relative", "q": "batt", "l": 2}
	{"id": "req_003", "s": ["bat", "ball"], "d": [1, 2], "c": 2, "t": 88}

Failures are reported with an HTTP-like code:

	{"id": "req_004", "e": "tag not found: \"zzz\"", "c": 404}

# Actions

lookup returns the value of an exact tag (404 when absent).
prefix lists tags starting with the query in lexicographic order.
contains lists tags with the query anywhere in them.
relative lists the tags closest to the query by Levenshtein distance.
stats reports index size, mode and server counters.
health answers with status "ok".

Queries longer than the configured max are rejected with 400, limits are
clamped to the configured max. contains and relative walk the whole index,
so their results are memoized in a bounded cache keyed by query.
*/
package server

// Action names accepted in Request.Action.
const (
	ActionLookup   = "lookup"
	ActionPrefix   = "prefix"
	ActionContains = "contains"
	ActionRelative = "relative"
	ActionStats    = "stats"
	ActionHealth   = "health"
)

// Error codes sent in Error.Code.
const (
	CodeBadRequest = 400
	CodeNotFound   = 404
	CodeWrongMode  = 409
	CodeInternal   = 500
)

// Request - a single client request
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"a"`
	Query  string `msgpack:"q"`
	Limit  int    `msgpack:"l,omitempty"`
}

// Response - reply to lookup and search actions
type Response struct {
	ID        string   `msgpack:"id"`
	Tags      []string `msgpack:"s"`
	Value     *int     `msgpack:"v,omitempty"`
	Distances []int    `msgpack:"d,omitempty"`
	Count     int      `msgpack:"c"`
	TimeTaken int64    `msgpack:"t"`
}

// StatusResponse - ready and health replies
type StatusResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
}

// StatsResponse - reply to the stats action
type StatsResponse struct {
	ID           string `msgpack:"id"`
	Status       string `msgpack:"status"`
	Size         int    `msgpack:"n"`
	Requests     int    `msgpack:"r"`
	CacheEntries int    `msgpack:"ce"`
	MaxLimit     int    `msgpack:"ml"`
	MaxQuery     int    `msgpack:"mq"`
}

// Error holds basic error information for failed requests
type Error struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
