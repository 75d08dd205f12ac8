package security

// Rewrite rules. Which reads of top and parent are frame references is
// decided from the surrounding tokens only; there is no scope analysis
// beyond the handful of binding forms tracked in shadows.

// isTargetProp reports whether RECEIVER.name is routed through the resolver.
func isTargetProp(name string) bool {
	switch name {
	case "top", "parent", "location":
		return true
	}
	return false
}

func isEquality(op string) bool {
	switch op {
	case "==", "===", "!=", "!==":
		return true
	}
	return false
}

// compoundOps are the operators that form an assignment when followed by '='.
var compoundOps = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true, "**": true,
	"&": true, "|": true, "^": true, "<<": true, ">>": true, ">>>": true,
	"&&": true, "||": true, "??": true,
}

type followKind int

const (
	followOther     followKind = iota
	followCall                 // (
	followAssign               // = += ++ => ...
	followColon                // object key, label or CSS declaration
	followNullCheck            // === null, != null ...
	followArrow                // =>
)

type follow struct {
	kind followKind
	next int // first significant byte, or eof
}

// skipSpace returns the offset of the first non-space byte at or after i.
func (s *scanner) skipSpace(i int) (int, int) {
	for {
		c := s.at(i)
		if c < 0 || !isSpace(byte(c)) {
			return i, c
		}
		i++
	}
}

// follow classifies what comes after the token ending at offset i.
func (s *scanner) follow(i int) (follow, bool) {
	i, c := s.skipSpace(i)
	if c == more {
		return follow{}, false
	}
	f := follow{next: c}
	switch c {
	case '(':
		f.kind = followCall
	case ':':
		f.kind = followColon
	case '=':
		switch c1 := s.at(i + 1); c1 {
		case more:
			return f, false
		case '=':
			return s.nullCheck(f, i+2)
		case '>':
			f.kind = followArrow
		default:
			f.kind = followAssign
		}
	case '!':
		switch c1 := s.at(i + 1); c1 {
		case more:
			return f, false
		case '=':
			return s.nullCheck(f, i+2)
		}
	case '+', '-', '*', '/', '%', '&', '|', '^', '<', '>', '?':
		return s.compoundAssign(f, i)
	}
	return f, true
}

// nullCheck looks past an equality operator whose first two bytes end
// before offset j.
func (s *scanner) nullCheck(f follow, j int) (follow, bool) {
	switch c := s.at(j); c {
	case more:
		return f, false
	case '=':
		j++
	}
	j, c := s.skipSpace(j)
	if c == more {
		return f, false
	}
	m, ok := s.hasPrefixAt(j, "null")
	if !ok {
		return f, false
	}
	if !m {
		return f, true
	}
	c = s.at(j + 4)
	if c == more {
		return f, false
	}
	if c == eof || !isIdentPart(byte(c)) {
		f.kind = followNullCheck
	}
	return f, true
}

func (s *scanner) compoundAssign(f follow, i int) (follow, bool) {
	j := i
	for j-i < 3 {
		c := s.at(j)
		if c == more {
			return f, false
		}
		if c == eof || !isCompoundPart(byte(c)) {
			break
		}
		j++
	}
	op := string(s.in[s.pos+i : s.pos+j])
	if op == "++" || op == "--" {
		f.kind = followAssign
		return f, true
	}
	if !compoundOps[op] {
		return f, true
	}
	if c := s.at(j); c == more {
		return f, false
	} else if c != '=' {
		return f, true
	}
	switch c := s.at(j + 1); c {
	case more:
		return f, false
	case '=':
		// a comparison such as "<==" is not valid anyway
		return f, true
	}
	f.kind = followAssign
	return f, true
}

func isCompoundPart(c byte) bool {
	switch c {
	case '+', '-', '*', '/', '%', '&', '|', '^', '<', '>', '?':
		return true
	}
	return false
}

func (s *scanner) hasPrefixAt(i int, lit string) (match, ok bool) {
	for k := 0; k < len(lit); k++ {
		c := s.at(i + k)
		if c == more {
			return false, false
		}
		if c != int(lit[k]) {
			return false, true
		}
	}
	return true, true
}

// member handles RECEIVER.name or RECEIVER['name'] spanning n bytes from
// the cursor. done is false when the access is passed through; nothing is
// consumed then.
func (s *scanner) member(name string, n int) (done, ok bool) {
	if s.prev.kind != tokValue || s.chain < 0 {
		return false, true
	}
	if name == "top" {
		// the resolver's own window.top.Cypress
		m, ok := s.hasPrefixAt(n, ".Cypress")
		if !ok {
			return false, false
		}
		if m {
			return false, true
		}
	}
	f, ok := s.follow(n)
	if !ok {
		return false, false
	}
	if f.kind == followCall || f.kind == followAssign {
		return false, true
	}
	if s.tooFar(s.chainIn) {
		return false, true
	}

	recv := s.chainBare
	if recv == "" {
		recv = string(s.out[s.chain-s.base:])
	} else {
		// the bare rewrite collapses back into its name
		s.stats.BareReferences--
	}
	s.out = s.out[:s.chain-s.base]
	s.out = append(s.out, Replacement(recv, name)...)
	s.pos += n
	s.chainBare = ""
	s.setPrev(token{kind: tokValue, text: name})
	s.stats.Replacements++
	return true, true
}

// bare handles an identifier top or parent of length n that is not a
// property name.
func (s *scanner) bare(name string, n int) bool {
	if s.prev.kind == tokDot {
		s.plainWord(name, n)
		return true
	}
	f, ok := s.follow(n)
	if !ok {
		return false
	}
	if !s.isFrameRead(name, f) {
		s.plainWord(name, n)
		return true
	}
	// may still turn out to be a parameter
	if fr := s.paramFrame(); fr != nil && fr.openIn >= 0 && s.atBindingSlot() && s.prev.text != ":" {
		fr.spans = append(fr.spans, span{out: s.total(), name: name})
	}
	s.setChain()
	s.pos += n
	s.out = append(s.out, bareReferences[name]...)
	s.chainBare = name
	s.setPrev(token{kind: tokValue, text: name})
	s.stats.BareReferences++
	return true
}

// isFrameRead decides whether a bare name reads the frame. Names seen in
// a binding position are recorded as shadowed for the rest of the block.
func (s *scanner) isFrameRead(name string, f follow) bool {
	if _, ok := s.shadows[name]; ok {
		return false
	}
	fr := s.innermost()
	if fr != nil && fr.resolver {
		return false
	}
	if pf := s.paramFrame(); pf != nil && pf.params {
		s.params = append(s.params, name)
		return false
	}
	if fr != nil && fr.binding && f.kind != followColon && s.atBindingSlot() {
		s.shadow(name)
		return false
	}
	if s.prev.kind == tokKeyword {
		switch s.prev.text {
		case "var", "let", "const":
			s.shadow(name)
			return false
		case "function", "class":
			return false
		}
	}

	switch f.kind {
	case followCall, followAssign:
		return false
	case followColon:
		ternary := s.prev.kind == tokPunct && s.prev.text == "?"
		caseClause := s.prev.kind == tokKeyword && s.prev.text == "case"
		if !ternary && !caseClause {
			return false
		}
	case followNullCheck, followArrow:
		s.shadow(name)
		return false
	}

	if s.prev.kind == tokPunct && isEquality(s.prev.text) && s.prev2.kind == tokValue && s.prev2.text == "null" {
		s.shadow(name)
		return false
	}

	// object shorthand or destructuring
	if fr != nil && fr.open == '{' && s.prev.kind == tokPunct && (s.prev.text == "{" || s.prev.text == ",") &&
		(f.next == '}' || f.next == ',') {
		return false
	}
	return true
}
