// Package server exposes planogram editing over HTTP.
//
// Routes are served by a chi router. Request and response bodies are JSON;
// failures use the error body of pkg/httputil. Every mutation goes through an
// [editor.Runner], so the HTTP API and the CLI share placement and
// persistence.
//
//	GET    /healthz
//	GET    /catalog                         ?q=&category=
//	GET    /catalog/{productID}
//	GET    /planograms
//	POST   /planograms                      {"name"}
//	GET    /planograms/{id}                 ETag / If-None-Match
//	PUT    /planograms/{id}                 full document
//	DELETE /planograms/{id}
//	POST   /planograms/{id}/preview         drop request + "exclude_uid"
//	POST   /planograms/{id}/items           drop request
//	PATCH  /planograms/{id}/items/{uid}     {"x", "y"}
//	DELETE /planograms/{id}/items/{uid}
//	POST   /planograms/{id}/units
//	PATCH  /planograms/{id}/units/{unitID}  {"width"}
//	DELETE /planograms/{id}/units/{unitID}
//	POST   /planograms/{id}/units/{unitID}/surfaces              {"kind"}
//	PATCH  /planograms/{id}/units/{unitID}/surfaces/{surfaceID}  {"height"}
//	DELETE /planograms/{id}/units/{unitID}/surfaces/{surfaceID}
//	GET    /planograms/{id}/supports
//	GET    /planograms/{id}/graph           ?format=dot|svg|pdf|png&detailed=true
package server
