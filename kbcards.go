// Package kbcards provides a knowledge-base card catalog: it loads entries
// from a remote endpoint with a local fallback, renders them as cards on a
// display surface, and filters them live as a search query changes.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, goquery/, lipgloss/).
package kbcards
