// Package blocksearch finds HTML subtrees that match hierarchical block
// templates and returns bound copies of those templates pointing at the
// matching elements.
//
// This package contains domain types, the matching engine and interfaces
// following Ben Johnson's Standard Package Layout. Implementations of the
// interfaces live in subdirectories named after their primary dependency
// (e.g., html/, goquery/, sqlite/).
package blocksearch
