// Package models defines the core domain models for Shepherd.
//
// # Models
//
//   - Person: a member of the community, with an append-only membership history
//   - MembershipInterval: a period during which a person belonged to a Connect group
//   - Group: a Connect (small group) that meets on a recurring basis
//   - AttendanceReport: one meeting of one group on one date
//   - User: a leader or administrator who signs in to file reports
//
// # Design Principles
//
//  1. Relationships are ID strings, never pointers.
//  2. Calendar dates use the Date type at every boundary (JSON, SQL, CLI) so the
//     analytics code never compares timestamps from different sources.
//  3. Membership history is only ever appended to or closed, never rewritten.
package models
