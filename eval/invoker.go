// Package eval implements the partial evaluator (§4.D): folding every
// subtree that is independent of the predicate's bound parameter into a
// Constant node carrying its evaluated value.
//
// The host's closure-invocation facility is modeled as expr.Invoker
// (§9's reflection note: the core takes evaluation as an injected
// dependency rather than performing reflection itself).
package eval
