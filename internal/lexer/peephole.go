package lexer

// cancels reports whether two adjacent quantum operations compose to the
// identity: same gate, same target, and the gate is self-inverse.
func cancels(a, b Token) bool {
	return a.Type == TokenQOp && b.Type == TokenQOp &&
		a.Literal == b.Literal &&
		a.Target == b.Target &&
		IsSelfInverse(a.Literal)
}

// Reduce removes adjacent cancelling pairs from buf until none remain and
// returns the shortened slice. After a removal at i the scan resumes at i-1,
// since the removal can make buf[i-1] and the new buf[i] adjacent.
// Reduce is idempotent: a reduced buffer is returned unchanged.
func Reduce(buf []Token) []Token {
	i := 0
	for i+1 < len(buf) {
		if !cancels(buf[i], buf[i+1]) {
			i++
			continue
		}
		buf = append(buf[:i], buf[i+2:]...)
		if i > 0 {
			i--
		}
	}
	return buf
}
