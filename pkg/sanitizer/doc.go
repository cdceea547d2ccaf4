// Package sanitizer normalizes text that arrives from outside the service
// before it is shown to a visitor.
//
// All normalization functions are idempotent - applying them multiple times produces
// the same result. Functions handle invalid input gracefully by returning
// empty strings rather than errors.
//
// Normalization includes:
//   - Strings: Collapse whitespace, trim leading/trailing spaces
//   - Place names: Strip control characters, collapse whitespace, cap length
//   - Time zones: Keep only well-formed IANA identifiers
package sanitizer
