// Package httputil provides the JSON plumbing shared by HTTP handlers.
//
// # Responses
//
// [JSON] writes a value with a status code; [Error] writes the structured
// error body every failing endpoint returns:
//
//	{"code": "ITEM_NOT_FOUND", "message": "item \"abc\" not found"}
//
// # Status mapping
//
// [StatusOf] maps error codes from pkg/errors to HTTP statuses:
//
//   - *_NOT_FOUND codes: 404
//   - INVALID_* codes and UNSUPPORTED: 400
//   - POLICY_VIOLATION: 409
//   - STORAGE: 503
//   - anything else: 500
//
// # Requests
//
// [Decode] reads a JSON body with a size limit and rejects unknown fields and
// trailing data.
package httputil
