// Package combinator implements the error-accumulating parser substrate
// shared by sectioning and parsing (spec §4.1). A Parser[E, V] is a pure
// function from a cursor over E to a (possibly advanced) cursor plus an
// Outcome[V]: either a value, or a non-empty list of diagnostics. Parsers
// never mutate shared state and never retain a cursor past return.
package combinator

import "github.com/pontaoski/wisp/diag"

// Cursor is the unconsumed suffix of an input sequence.
type Cursor[E any] []E

// Outcome is either a success value or a non-empty list of diagnostics.
// A zero Outcome (Errs == nil) is a success with the zero V; use Ok/Fail
// to build one unambiguously.
type Outcome[V any] struct {
	Value V
	Errs  []diag.Diagnostic
}

// Ok builds a successful Outcome.
func Ok[V any](v V) Outcome[V] {
	return Outcome[V]{Value: v}
}

// Fail builds a failed Outcome. errs must be non-empty.
func Fail[V any](errs ...diag.Diagnostic) Outcome[V] {
	return Outcome[V]{Errs: errs}
}

// IsOk reports whether o succeeded.
func (o Outcome[V]) IsOk() bool {
	return o.Errs == nil
}

// unbound is the single-element diagnostic list representing the
// UnboundParseError sentinel: "this parser did not match here". It must
// be converted to a real diagnostic by CatchUnbound before the Outcome
// leaves the core.
func unbound[V any]() Outcome[V] {
	return Outcome[V]{Errs: []diag.Diagnostic{diag.Unbound()}}
}

// isUnbound reports whether o is exactly the sentinel failure.
func isUnbound[V any](o Outcome[V]) bool {
	return len(o.Errs) == 1 && diag.IsUnbound(o.Errs[0])
}

// Parser is a pure function from a cursor to an advanced cursor and an
// Outcome. This is the only shape every combinator below operates on.
type Parser[E, V any] func(Cursor[E]) (Cursor[E], Outcome[V])

// Pure always succeeds with v, consuming no input.
func Pure[E, V any](v V) Parser[E, V] {
	return func(in Cursor[E]) (Cursor[E], Outcome[V]) {
		return in, Ok(v)
	}
}

// Map runs p and, on success, applies f to its value. Errors pass through
// untouched.
func Map[E, V, W any](p Parser[E, V], f func(V) W) Parser[E, W] {
	return func(in Cursor[E]) (Cursor[E], Outcome[W]) {
		rest, o := p(in)
		if !o.IsOk() {
			return rest, Outcome[W]{Errs: o.Errs}
		}
		return rest, Ok(f(o.Value))
	}
}

// SeqR runs p, then q on the remainder, keeping q's value. The cursor
// returned is always the one produced by the last parser actually
// invoked, even on error (q's cursor if q ran, p's cursor if p failed).
func SeqR[E, V, W any](p Parser[E, V], q Parser[E, W]) Parser[E, W] {
	return func(in Cursor[E]) (Cursor[E], Outcome[W]) {
		rest, o := p(in)
		if !o.IsOk() {
			return rest, Outcome[W]{Errs: o.Errs}
		}
		return q(rest)
	}
}

// SeqL runs p, then q on the remainder, keeping p's value but requiring
// q to also succeed.
func SeqL[E, V, W any](p Parser[E, V], q Parser[E, W]) Parser[E, V] {
	return func(in Cursor[E]) (Cursor[E], Outcome[V]) {
		rest, ov := p(in)
		if !ov.IsOk() {
			return rest, ov
		}
		rest2, ow := q(rest)
		if !ow.IsOk() {
			return rest2, Outcome[V]{Errs: ow.Errs}
		}
		return rest2, ov
	}
}

// Bind runs p and, on success, builds the next parser from its value and
// runs that on the remainder. Like Seq but the continuation may depend on
// p's result.
func Bind[E, V, W any](p Parser[E, V], k func(V) Parser[E, W]) Parser[E, W] {
	return func(in Cursor[E]) (Cursor[E], Outcome[W]) {
		rest, o := p(in)
		if !o.IsOk() {
			return rest, Outcome[W]{Errs: o.Errs}
		}
		return k(o.Value)(rest)
	}
}

// Alt runs p. If p succeeds, its result is returned. If p fails without
// consuming input (the returned cursor has the same length as the
// input), q is tried against the original input instead — the standard
// predictive-parser alternative. If p consumed input before failing, its
// error is final: this is committed choice.
func Alt[E, V any](p, q Parser[E, V]) Parser[E, V] {
	return func(in Cursor[E]) (Cursor[E], Outcome[V]) {
		rest, o := p(in)
		if o.IsOk() {
			return rest, o
		}
		if len(rest) == len(in) {
			return q(in)
		}
		return rest, o
	}
}

// NextIf consumes the head of the cursor if pred matches it, yielding the
// value pred returns. It fails with the Unbound sentinel, without
// consuming input, when the cursor is empty or pred does not match.
func NextIf[E, V any](pred func(E) (V, bool)) Parser[E, V] {
	return func(in Cursor[E]) (Cursor[E], Outcome[V]) {
		if len(in) == 0 {
			return in, unbound[V]()
		}
		if v, ok := pred(in[0]); ok {
			return in[1:], Ok(v)
		}
		return in, unbound[V]()
	}
}

// ZeroOrMore greedily applies p until it fails without consuming input;
// that trailing non-consuming failure is swallowed. A committed failure
// partway through a repetition — p consumed input and then failed — is
// fatal and propagates.
func ZeroOrMore[E, V any](p Parser[E, V]) Parser[E, []V] {
	return func(in Cursor[E]) (Cursor[E], Outcome[[]V]) {
		var values []V
		cur := in
		for {
			rest, o := p(cur)
			if o.IsOk() {
				values = append(values, o.Value)
				cur = rest
				continue
			}
			if len(rest) == len(cur) {
				return cur, Ok(values)
			}
			return rest, Outcome[[]V]{Errs: o.Errs}
		}
	}
}

// ZeroOrOne applies p once. A non-consuming failure yields (nil, ok); a
// committed failure propagates.
func ZeroOrOne[E, V any](p Parser[E, V]) Parser[E, *V] {
	return func(in Cursor[E]) (Cursor[E], Outcome[*V]) {
		rest, o := p(in)
		if o.IsOk() {
			v := o.Value
			return rest, Ok(&v)
		}
		if len(rest) == len(in) {
			return in, Ok[*V](nil)
		}
		return rest, Outcome[*V]{Errs: o.Errs}
	}
}

// RunToEnd runs p against input. If p succeeds and consumes every
// element, its value is returned. If p succeeds but leaves a non-empty
// remainder, the Unbound sentinel is returned (there is unconsumed input
// the caller did not expect — it is the caller's job, via CatchUnbound,
// to turn that into a concrete "unexpected trailing input" diagnostic).
// If p fails, its diagnostics are returned as-is.
func RunToEnd[E, V any](p Parser[E, V], input []E) Outcome[V] {
	rest, o := p(Cursor[E](input))
	if !o.IsOk() {
		return o
	}
	if len(rest) != 0 {
		return unbound[V]()
	}
	return o
}

// CatchUnbound converts the Unbound sentinel inside o into a concrete
// diagnostic built by onUnbound; every other Outcome (success or a real
// error) passes through untouched. Every top-level invocation of this
// substrate must route its result through CatchUnbound: the sentinel must
// never reach a caller outside the core.
func CatchUnbound[V any](o Outcome[V], onUnbound func() diag.Diagnostic) Outcome[V] {
	if isUnbound(o) {
		return Fail[V](onUnbound())
	}
	return o
}
