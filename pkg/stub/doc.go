// Package stub serves JSON fixtures for requests under the mock prefix.
//
// GET /stubService/<P> returns stub_dir/<P>.json. POST /stubService/<P>
// captures the request body to stub_dir/<P>.json and answers with
// stub_dir/<dir>/postresp/<name>.json when present, or a generic success
// payload otherwise.
//
// Register attaches the handlers to any Router, which makes the package
// usable inside an existing application. The caller then owns CORS, the
// catch-all route and listening. The standalone server in package server
// wires everything together.
package stub
