// Package http implements the REST transport of the FinanceFlow API.
//
// It wires chi routes to the service layer and carries the cross-cutting
// middleware: trace ids, access logging, gzip, session and admin guards, the
// auth rate limiter and the HashSHA256 integrity check on imports. Every
// response except /api/health and /api/version uses the
// {success, data, message} / {success, error{code, message}} envelope.
package http
