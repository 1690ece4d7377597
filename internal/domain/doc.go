// Package domain defines the core business entities of CardStack and their
// validation rules. Entities are plain records owned by the database; this
// package holds their in-process representation, constructors that assign
// IDs and timestamps, and Validate methods returning sentinel errors.
package domain
