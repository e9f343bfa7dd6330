package decode

// Map runs d, then transforms its result with fn. Consumes exactly the
// bytes d consumes.
func Map[A, B any](d Decoder[A], fn func(A) B) Decoder[B] {
	return Decoder[B]{run: func(c *cursor) (B, bool) {
		a, ok := d.run(c)
		if !ok {
			var zero B
			return zero, false
		}

		return fn(a), true
	}}
}

// Map2 runs da then db in order, combining their results with fn. If
// either fails the whole decoder fails; the offset advance of any
// earlier successful step is not rewound.
func Map2[A, B, C any](da Decoder[A], db Decoder[B], fn func(A, B) C) Decoder[C] {
	return Decoder[C]{run: func(c *cursor) (C, bool) {
		a, ok := da.run(c)
		if !ok {
			var zero C
			return zero, false
		}
		b, ok := db.run(c)
		if !ok {
			var zero C
			return zero, false
		}

		return fn(a, b), true
	}}
}

// Map3 runs three decoders in order, combining their results with fn.
func Map3[A, B, C, D any](da Decoder[A], db Decoder[B], dc Decoder[C], fn func(A, B, C) D) Decoder[D] {
	return Map2(Map2(da, db, func(a A, b B) func(C) D {
		return func(c C) D { return fn(a, b, c) }
	}), dc, func(partial func(C) D, c C) D {
		return partial(c)
	})
}

// Map4 runs four decoders in order, combining their results with fn.
func Map4[A, B, C, D, E any](da Decoder[A], db Decoder[B], dc Decoder[C], dd Decoder[D], fn func(A, B, C, D) E) Decoder[E] {
	return Map2(Map3(da, db, dc, func(a A, b B, c C) func(D) E {
		return func(d D) E { return fn(a, b, c, d) }
	}), dd, func(partial func(D) E, d D) E {
		return partial(d)
	})
}

// Map5 runs five decoders in order, combining their results with fn.
func Map5[A, B, C, D, E, F any](da Decoder[A], db Decoder[B], dc Decoder[C], dd Decoder[D], de Decoder[E], fn func(A, B, C, D, E) F) Decoder[F] {
	return Map2(Map4(da, db, dc, dd, func(a A, b B, c C, d D) func(E) F {
		return func(e E) F { return fn(a, b, c, d, e) }
	}), de, func(partial func(E) F, e E) F {
		return partial(e)
	})
}

// AndThen runs d, then runs the decoder fn builds from d's result.
// This is how a decoded value steers later decoding, e.g. reading a
// length prefix and then that many payload bytes.
func AndThen[A, B any](d Decoder[A], fn func(A) Decoder[B]) Decoder[B] {
	return Decoder[B]{run: func(c *cursor) (B, bool) {
		a, ok := d.run(c)
		if !ok {
			var zero B
			return zero, false
		}

		return fn(a).run(c)
	}}
}

// Step is the control result of one Loop iteration: either continue
// with a new state, or stop with a final result. Build one with
// Continue or Done.
type Step[S, T any] struct {
	state  S
	result T
	done   bool
}

// Continue signals another Loop iteration with the given state.
func Continue[S, T any](state S) Step[S, T] {
	return Step[S, T]{state: state}
}

// Done terminates the Loop with the given result.
func Done[S, T any](result T) Step[S, T] {
	return Step[S, T]{result: result, done: true}
}

// Loop repeatedly runs the decoder built by step, threading a
// caller-supplied state through iterations until a step yields Done or
// fails. The loop is iterative, not recursive, so iteration depth is
// bounded only by the input, never by the stack.
//
// Termination is the step function's responsibility: it must
// eventually yield Done or fail. A step that consumes zero bytes and
// always yields Continue spins forever — the engine does not police
// zero-byte steps, because zero-consumption Succeed-based steps are a
// legitimate way to fold state toward termination.
func Loop[S, T any](initial S, step func(S) Decoder[Step[S, T]]) Decoder[T] {
	return Decoder[T]{run: func(c *cursor) (T, bool) {
		state := initial
		for {
			s, ok := step(state).run(c)
			if !ok {
				var zero T
				return zero, false
			}
			if s.done {
				return s.result, true
			}
			state = s.state
		}
	}}
}
