// Package explorer holds the campaign-finance data pipeline: filtering,
// sorting, grouping by race, and the view state machine that ties them
// together.
//
// Everything in this package is pure. Engines take a candidate slice and
// return a new one without touching the input, and State transitions return
// a new State value. Callers that need shared mutable state (sessions,
// connections) keep it outside this package.
package explorer
