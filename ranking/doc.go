// Package ranking orders raw search hits for the standalone metric search
// endpoint.
//
// Find produces fuzzy hits over a "name type description" summary of each
// item. A Presenter then scores every hit (+1 when live, +10 for an allowed
// type in restrictive mode) and stably sorts by descending score.
package ranking
