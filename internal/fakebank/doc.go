// Package fakebank is an in-memory stand-in for the banking REST API.
//
// It serves every endpoint the console uses under /api, answers failures
// with the same ErrorResponse payloads and messages as the real service, and
// renders a small PDF statement. It backs the package tests and the
// banca-fake development binary; nothing is persisted.
package fakebank
