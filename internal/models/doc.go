// Package models defines the core domain models for the watchlist API.
//
// # Models
//
//   - User: a registered account with a unique username and email
//   - Watchlist: a named set of movie IDs owned by one user, shared with
//     invited users
//
// # Design Principles
//
// 1. **No lifecycle hooks**: validation and password hashing live in the
// auth package, not in model callbacks
// 2. **Avoid circular references**: relationships use ID strings; expanded
// records (Watchlist.Owner) are populated explicitly by the queries that
// need them
// 3. **Safe serialization**: sensitive fields carry `json:"-"` so a model
// can be written to a response without a scrubbing pass
package models
