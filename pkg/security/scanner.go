package security

import "bytes"

// scanMode is the lexical state of the scanner.
type scanMode int

const (
	modeCode scanMode = iota
	modeString
	modeTemplate
	modeLineComment
	modeBlockComment
	modeRegex
)

// tokenKind classifies the previous significant token. It decides whether
// a slash starts a regex, whether a paren is a call and whether an
// identifier is a property name.
type tokenKind int

const (
	tokNone    tokenKind = iota // start of input
	tokPunct                    // operator or opening punctuation
	tokValue                    // identifier, literal or closing bracket
	tokKeyword                  // reserved word that precedes an expression
	tokDot                      // property access operator
)

type token struct {
	kind tokenKind
	text string
}

// Results of at() past the buffered input.
const (
	eof  = -1
	more = -2
)

// frame is an open bracket. Output offsets are paired with the input
// offset they were taken at; the receiver bound is measured on the input.
type frame struct {
	open     byte  // '(', '[', '{' or '`' for a template substitution
	start    int64 // output offset of a grouping paren or array literal, -1 otherwise
	startIn  int64
	chain    int64 // receiver chain before a call or index, -1 otherwise
	chainIn  int64
	index    bool // call or computed member access
	params   bool // function or catch parameter list
	resolver bool // arguments of an emitted resolver call
	binding  bool // declaration pattern after var, let or const

	// Bare rewrites in parameter position of a paren that may still turn
	// out to be an arrow or method parameter list. openIn is -1 once the
	// paren is too far back for them to be taken back.
	openIn int64
	spans  []span
}

// span is a bare reference rewrite at output offset out.
type span struct {
	out  int64
	name string
}

var keywords = map[string]tokenKind{
	"this":  tokValue,
	"null":  tokValue,
	"true":  tokValue,
	"false": tokValue,
	"super": tokValue,

	"await":      tokKeyword,
	"break":      tokKeyword,
	"case":       tokKeyword,
	"catch":      tokKeyword,
	"class":      tokKeyword,
	"const":      tokKeyword,
	"continue":   tokKeyword,
	"debugger":   tokKeyword,
	"default":    tokKeyword,
	"delete":     tokKeyword,
	"do":         tokKeyword,
	"else":       tokKeyword,
	"export":     tokKeyword,
	"extends":    tokKeyword,
	"finally":    tokKeyword,
	"for":        tokKeyword,
	"function":   tokKeyword,
	"if":         tokKeyword,
	"import":     tokKeyword,
	"in":         tokKeyword,
	"instanceof": tokKeyword,
	"let":        tokKeyword,
	"new":        tokKeyword,
	"return":     tokKeyword,
	"switch":     tokKeyword,
	"throw":      tokKeyword,
	"try":        tokKeyword,
	"typeof":     tokKeyword,
	"var":        tokKeyword,
	"void":       tokKeyword,
	"while":      tokKeyword,
	"with":       tokKeyword,
	"yield":      tokKeyword,
}

// scanner is the rewriting state machine. Input is appended with feed and
// consumed by run; output accumulates in out until flush hands back the
// prefix that no pending receiver can reach into.
type scanner struct {
	maxReceiver int64
	final       bool

	in  []byte
	pos int

	out  []byte
	base int64 // absolute output offset of out[0]

	mode       scanMode
	quote      byte
	escaped    bool
	star       bool // block comment: previous byte was '*'
	dollar     bool // template: previous byte was '$'
	inClass    bool // regex character class
	litStart   int64
	litStartIn int64

	prev, prev2 token

	// chain is the absolute output offset where the current receiver
	// expression starts, or -1. chainBare is set when that expression is
	// a bare reference rewrite of the named frame.
	chain     int64
	chainIn   int64
	chainBare string

	frames        []frame
	depth         int            // open '{' frames
	shadows       map[string]int // locally bound names and the depth they were bound at
	params        []string
	afterFunction bool
	pendingBody   bool

	stats Stats
}

func newScanner(o options) *scanner {
	return &scanner{
		maxReceiver: int64(o.maxReceiver),
		chain:       -1,
		shadows:     make(map[string]int),
	}
}

func (s *scanner) at(i int) int {
	if j := s.pos + i; j < len(s.in) {
		return int(s.in[j])
	}
	if s.final {
		return eof
	}
	return more
}

func (s *scanner) total() int64 {
	return s.base + int64(len(s.out))
}

// inOffset is the absolute input offset of the cursor. Unlike output
// offsets it never moves back when a rewrite shrinks the output.
func (s *scanner) inOffset() int64 {
	return s.stats.BytesIn - int64(len(s.in)-s.pos)
}

// tooFar reports whether text starting at input offset in is longer than
// a receiver may be.
func (s *scanner) tooFar(in int64) bool {
	return s.inOffset()-in > s.maxReceiver
}

// setChain starts a receiver chain at the cursor.
func (s *scanner) setChain() {
	s.chain = s.total()
	s.chainIn = s.inOffset()
	s.chainBare = ""
}

func (s *scanner) copyN(n int) {
	s.out = append(s.out, s.in[s.pos:s.pos+n]...)
	s.pos += n
}

func (s *scanner) breakChain() {
	s.chain = -1
	s.chainBare = ""
}

func (s *scanner) setPrev(t token) {
	s.prev2 = s.prev
	s.prev = t
	if t.kind == tokPunct && t.text != "*" {
		s.afterFunction = false
	}
	if s.pendingBody {
		s.pendingBody = false
		s.params = s.params[:0]
	}
}

func (s *scanner) innermost() *frame {
	if len(s.frames) == 0 {
		return nil
	}
	return &s.frames[len(s.frames)-1]
}

// find returns the index of the innermost frame opened by open, or -1.
// Parens and brackets do not close across a brace.
func (s *scanner) find(open byte) int {
	for i := len(s.frames) - 1; i >= 0; i-- {
		o := s.frames[i].open
		if o == open || (open == '{' && o == '`') {
			return i
		}
		if o == '{' || o == '`' {
			break
		}
	}
	return -1
}

// pop removes the innermost frame opened by open.
func (s *scanner) pop(open byte) (frame, bool) {
	i := s.find(open)
	if i < 0 {
		return frame{}, false
	}
	fr := s.frames[i]
	s.frames = s.frames[:i]
	return fr, true
}

// paramFrame returns the paren enclosing the cursor, looking through
// array patterns, or nil.
func (s *scanner) paramFrame() *frame {
	for i := len(s.frames) - 1; i >= 0; i-- {
		fr := &s.frames[i]
		switch {
		case fr.open == '[' && !fr.index:
			continue
		case fr.open == '(':
			return fr
		}
		return nil
	}
	return nil
}

func (s *scanner) shadow(name string) {
	if d, ok := s.shadows[name]; !ok || s.depth < d {
		s.shadows[name] = s.depth
	}
}

func (s *scanner) unshadow() {
	for name, d := range s.shadows {
		if d >= s.depth {
			delete(s.shadows, name)
		}
	}
}

// feed appends chunk to the unconsumed input and scans as far as the
// input allows.
func (s *scanner) feed(chunk []byte) {
	if s.pos > 0 {
		s.in = append(s.in[:0], s.in[s.pos:]...)
		s.pos = 0
	}
	s.in = append(s.in, chunk...)
	s.stats.BytesIn += int64(len(chunk))
	s.run()
}

// run scans until the input is exhausted or a decision needs bytes that
// have not arrived yet. With final set every decision can be made.
func (s *scanner) run() {
	for s.pos < len(s.in) {
		switch s.mode {
		case modeString:
			s.scanString()
		case modeTemplate:
			s.scanTemplate()
		case modeLineComment:
			s.scanLineComment()
		case modeBlockComment:
			s.scanBlockComment()
		case modeRegex:
			s.scanRegex()
		default:
			if !s.code() {
				return
			}
		}
	}
}

// flush returns the output no pending receiver can reach into. An offset
// is given up with the same input measure member uses, so dropping it
// here never changes a later decision.
func (s *scanner) flush() []byte {
	limit := s.total()
	hold := func(off *int64, in int64) {
		if *off < 0 {
			return
		}
		if s.tooFar(in) {
			*off = -1
			return
		}
		if *off < limit {
			limit = *off
		}
	}
	hold(&s.chain, s.chainIn)
	if s.chain < 0 {
		s.chainBare = ""
	}
	if s.mode == modeString || s.mode == modeRegex {
		// the literal becomes the chain once it closes
		hold(&s.litStart, s.litStartIn)
	}
	for i := range s.frames {
		fr := &s.frames[i]
		hold(&fr.start, fr.startIn)
		hold(&fr.chain, fr.chainIn)
		if len(fr.spans) > 0 {
			hold(&fr.spans[0].out, fr.openIn)
			if fr.spans[0].out < 0 {
				fr.spans = nil
				fr.openIn = -1
			}
		}
	}
	return s.take(limit)
}

// drain returns everything left in the output buffer.
func (s *scanner) drain() []byte {
	return s.take(s.total())
}

func (s *scanner) take(limit int64) []byte {
	n := int(limit - s.base)
	if n <= 0 {
		return nil
	}
	out := make([]byte, n)
	copy(out, s.out[:n])
	s.out = append(s.out[:0], s.out[n:]...)
	s.base = limit
	s.stats.BytesOut += int64(n)
	return out
}

func (s *scanner) scanString() {
	for s.pos < len(s.in) {
		c := s.in[s.pos]
		s.out = append(s.out, c)
		s.pos++
		switch {
		case s.escaped:
			s.escaped = false
		case c == '\\':
			s.escaped = true
		case c == s.quote:
			s.mode = modeCode
			s.chain, s.chainIn = s.litStart, s.litStartIn
			s.chainBare = ""
			s.setPrev(token{kind: tokValue})
			return
		case c == '\n':
			// unterminated
			s.mode = modeCode
			s.breakChain()
			s.setPrev(token{kind: tokValue})
			return
		}
	}
}

func (s *scanner) scanTemplate() {
	for s.pos < len(s.in) {
		c := s.in[s.pos]
		s.out = append(s.out, c)
		s.pos++
		if s.escaped {
			s.escaped = false
			s.dollar = false
			continue
		}
		switch c {
		case '\\':
			s.escaped = true
		case '`':
			s.mode = modeCode
			s.dollar = false
			s.breakChain()
			s.setPrev(token{kind: tokValue})
			return
		case '{':
			if s.dollar {
				s.dollar = false
				s.frames = append(s.frames, frame{open: '`', start: -1, chain: -1, openIn: -1})
				s.mode = modeCode
				s.breakChain()
				s.setPrev(token{kind: tokPunct, text: "${"})
				return
			}
		}
		s.dollar = c == '$'
	}
}

func (s *scanner) scanLineComment() {
	i := bytes.IndexByte(s.in[s.pos:], '\n')
	if i < 0 {
		s.copyN(len(s.in) - s.pos)
		return
	}
	s.copyN(i)
	s.mode = modeCode
}

func (s *scanner) scanBlockComment() {
	for s.pos < len(s.in) {
		c := s.in[s.pos]
		s.out = append(s.out, c)
		s.pos++
		if s.star && c == '/' {
			s.star = false
			s.mode = modeCode
			return
		}
		s.star = c == '*'
	}
}

func (s *scanner) scanRegex() {
	for s.pos < len(s.in) {
		c := s.in[s.pos]
		s.out = append(s.out, c)
		s.pos++
		switch {
		case s.escaped:
			s.escaped = false
		case c == '\\':
			s.escaped = true
		case c == '\n':
			// not a regex after all
			s.mode = modeCode
			s.inClass = false
			s.breakChain()
			s.setPrev(token{kind: tokValue})
			return
		case s.inClass:
			if c == ']' {
				s.inClass = false
			}
		case c == '[':
			s.inClass = true
		case c == '/':
			s.mode = modeCode
			s.chain, s.chainIn = s.litStart, s.litStartIn
			s.chainBare = ""
			s.setPrev(token{kind: tokValue, text: "/"})
			return
		}
	}
}

// code handles one token in modeCode. It returns false when the token
// cannot be classified until more input arrives; nothing is consumed then.
func (s *scanner) code() bool {
	c := s.in[s.pos]
	switch {
	case isSpace(c):
		n := 1
		for s.pos+n < len(s.in) && isSpace(s.in[s.pos+n]) {
			n++
		}
		s.copyN(n)
		s.breakChain()
	case c == '\'' || c == '"':
		s.litStart, s.litStartIn = s.total(), s.inOffset()
		s.quote = c
		s.escaped = false
		s.mode = modeString
		s.copyN(1)
		s.breakChain()
	case c == '`':
		s.escaped = false
		s.dollar = false
		s.mode = modeTemplate
		s.copyN(1)
		s.breakChain()
	case c == '/':
		return s.slash()
	case isIdentStart(c) || c == '#':
		return s.word()
	case isDigit(c):
		return s.number()
	case c == '.':
		return s.dot()
	case c == '(':
		return s.openParen()
	case c == ')':
		return s.closeParen()
	case c == '[':
		return s.openBracket()
	case c == ']':
		s.closeBracket()
	case c == '{':
		s.openBrace()
	case c == '}':
		s.closeBrace()
	case c == '?':
		return s.question()
	case isOperator(c):
		return s.operator()
	default:
		s.copyN(1)
		s.breakChain()
		s.setPrev(token{kind: tokPunct, text: string(c)})
	}
	return true
}

func (s *scanner) regexAllowed() bool {
	switch s.prev.kind {
	case tokNone, tokPunct, tokKeyword:
		return true
	}
	return false
}

func (s *scanner) slash() bool {
	c1 := s.at(1)
	switch {
	case c1 == more:
		return false
	case c1 == '/':
		s.breakChain()
		s.copyN(2)
		s.mode = modeLineComment
	case c1 == '*':
		s.breakChain()
		s.copyN(2)
		s.star = false
		s.mode = modeBlockComment
	case s.regexAllowed():
		s.litStart, s.litStartIn = s.total(), s.inOffset()
		s.breakChain()
		s.copyN(1)
		s.escaped = false
		s.inClass = false
		s.mode = modeRegex
	default:
		return s.operator()
	}
	return true
}

func (s *scanner) operator() bool {
	n := 1
	for {
		c := s.at(n)
		if c == more {
			return false
		}
		if c == eof || !isOperator(byte(c)) {
			break
		}
		n++
	}
	op := string(s.in[s.pos : s.pos+n])
	s.copyN(n)
	s.breakChain()
	if (op == "++" || op == "--") && s.prev.kind == tokValue {
		// postfix update keeps the expression a value
		s.setPrev(token{kind: tokValue, text: op})
		return true
	}
	s.setPrev(token{kind: tokPunct, text: op})
	return true
}

func (s *scanner) question() bool {
	c1 := s.at(1)
	if c1 == more {
		return false
	}
	if c1 == '.' {
		c2 := s.at(2)
		if c2 == more {
			return false
		}
		if c2 == eof || !isDigit(byte(c2)) {
			s.copyN(2)
			s.breakChain()
			s.setPrev(token{kind: tokDot, text: "?."})
			return true
		}
	}
	if c1 == '?' {
		n := 2
		c2 := s.at(2)
		if c2 == more {
			return false
		}
		if c2 == '=' {
			n = 3
		}
		s.copyN(n)
		s.breakChain()
		s.setPrev(token{kind: tokPunct, text: "??"})
		return true
	}
	s.copyN(1)
	s.breakChain()
	s.setPrev(token{kind: tokPunct, text: "?"})
	return true
}

func (s *scanner) number() bool {
	n := 1
	for {
		c := s.at(n)
		if c == more {
			return false
		}
		if c == eof || !(isIdentPart(byte(c)) || c == '.') {
			break
		}
		n++
	}
	s.setChain()
	s.copyN(n)
	s.setPrev(token{kind: tokValue})
	return true
}

// identLen returns the length of the identifier run starting at offset i,
// or false when the run may continue past the buffered input.
func (s *scanner) identLen(i int) (int, bool) {
	n := i
	for {
		c := s.at(n)
		if c == more {
			return 0, false
		}
		if c == eof || !isIdentPart(byte(c)) {
			return n - i, true
		}
		n++
	}
}

func (s *scanner) word() bool {
	n, ok := s.identLen(1)
	if !ok {
		return false
	}
	n++
	w := string(s.in[s.pos : s.pos+n])
	if w == "top" || w == "parent" {
		return s.bare(w, n)
	}
	s.plainWord(w, n)
	return true
}

func (s *scanner) plainWord(w string, n int) {
	if s.prev.kind == tokDot {
		s.copyN(n)
		s.breakChain()
		s.setPrev(token{kind: tokValue, text: w})
		return
	}
	kind, reserved := keywords[w]
	if !reserved || kind == tokValue {
		s.setChain()
		s.copyN(n)
		s.setPrev(token{kind: tokValue, text: w})
		return
	}
	s.copyN(n)
	s.breakChain()
	s.setPrev(token{kind: tokKeyword, text: w})
	if w == "function" {
		s.afterFunction = true
	}
}

func (s *scanner) dot() bool {
	c1 := s.at(1)
	if c1 == more {
		return false
	}
	if c1 == '.' {
		c2 := s.at(2)
		if c2 == more {
			return false
		}
		if c2 == '.' {
			s.copyN(3)
			s.breakChain()
			s.setPrev(token{kind: tokPunct, text: "..."})
			return true
		}
	}
	if c1 != eof && isDigit(byte(c1)) {
		return s.number()
	}
	if c1 == eof || !isIdentStart(byte(c1)) {
		s.copyN(1)
		s.breakChain()
		s.setPrev(token{kind: tokDot, text: "."})
		return true
	}
	l, ok := s.identLen(1)
	if !ok {
		return false
	}
	n := l + 1
	name := string(s.in[s.pos+1 : s.pos+n])
	if isTargetProp(name) {
		done, ok := s.member(name, n)
		if !ok {
			return false
		}
		if done {
			return true
		}
	}
	s.copyN(n)
	s.chainBare = ""
	s.setPrev(token{kind: tokValue, text: name})
	return true
}

func (s *scanner) openParen() bool {
	if c1 := s.at(1); c1 == more {
		return false
	} else if c1 == 't' || c1 == 'p' {
		// a bare reference emitted by an earlier pass
		for _, lit := range bareReferences {
			m, ok := s.hasPrefixAt(0, lit)
			if !ok {
				return false
			}
			if m {
				s.setChain()
				s.copyN(len(lit))
				s.setPrev(token{kind: tokValue, text: ")"})
				return true
			}
		}
	}
	fr := frame{open: '(', start: -1, chain: -1, openIn: -1}
	fr.params = s.afterFunction || s.prev.kind == tokKeyword && s.prev.text == "catch"
	if s.prev.kind == tokValue {
		fr.index = true
		fr.chain, fr.chainIn = s.chain, s.chainIn
		fr.resolver = s.prev.text == "resolveWindowReference"
	} else {
		fr.start, fr.startIn = s.total(), s.inOffset()
	}
	if !fr.params && !fr.resolver {
		fr.openIn = s.inOffset()
	}
	s.afterFunction = false
	s.frames = append(s.frames, fr)
	s.copyN(1)
	s.breakChain()
	s.setPrev(token{kind: tokPunct, text: "("})
	return true
}

func (s *scanner) closeParen() bool {
	method := false
	if i := s.find('('); i >= 0 && len(s.frames[i].spans) > 0 {
		f, ok := s.follow(1)
		if !ok {
			return false
		}
		method = s.releaseParams(&s.frames[i], f)
	}
	fr, ok := s.pop('(')
	s.copyN(1)
	s.closeChain(fr, ok)
	s.setPrev(token{kind: tokValue, text: ")"})
	if ok && (fr.params || method) {
		s.pendingBody = true
	}
	return true
}

// releaseParams puts back the plain names of the bare rewrites in fr when
// the paren turns out to be an arrow parameter list, or a method's when a
// body follows a call-shaped paren. It reports the method case.
func (s *scanner) releaseParams(fr *frame, f follow) bool {
	arrow := f.kind == followArrow
	method := !arrow && fr.index && f.next == '{'
	if !arrow && !method || s.tooFar(fr.openIn) {
		return false
	}
	for i := len(fr.spans) - 1; i >= 0; i-- {
		sp := fr.spans[i]
		lit := bareReferences[sp.name]
		p := int(sp.out - s.base)
		if p < 0 || !bytes.HasPrefix(s.out[p:], []byte(lit)) {
			continue
		}
		tail := append([]byte(sp.name), s.out[p+len(lit):]...)
		s.out = append(s.out[:p], tail...)
		s.stats.BareReferences--
		if arrow {
			s.shadow(sp.name)
		} else {
			s.params = append(s.params, sp.name)
		}
	}
	fr.spans = nil
	return method
}

func (s *scanner) closeChain(fr frame, ok bool) {
	s.chainBare = ""
	switch {
	case !ok:
		s.chain = -1
	case fr.index:
		s.chain, s.chainIn = fr.chain, fr.chainIn
	default:
		s.chain, s.chainIn = fr.start, fr.startIn
	}
}

// bindingSlots are the tokens after which a name inside a pattern is a
// binding rather than an expression.
var bindingSlots = map[string]bool{
	"(": true, "[": true, "{": true, ",": true, "...": true, ":": true,
}

func (s *scanner) atBindingSlot() bool {
	return s.prev.kind == tokPunct && bindingSlots[s.prev.text]
}

// isPatternStart reports whether a bracket or brace at the cursor opens a
// declaration pattern such as var [a, b] or const {a: b}.
func (s *scanner) isPatternStart() bool {
	if s.prev.kind == tokKeyword {
		switch s.prev.text {
		case "var", "let", "const":
			return true
		}
		return false
	}
	fr := s.innermost()
	return fr != nil && fr.binding && s.atBindingSlot()
}

func (s *scanner) openBracket() bool {
	if s.prev.kind == tokValue {
		done, ok := s.bracketMember()
		if !ok {
			return false
		}
		if done {
			return true
		}
		s.frames = append(s.frames, frame{open: '[', start: -1, chain: s.chain, chainIn: s.chainIn, index: true})
	} else {
		s.frames = append(s.frames, frame{
			open:    '[',
			start:   s.total(),
			startIn: s.inOffset(),
			chain:   -1,
			binding: s.isPatternStart(),
		})
	}
	s.copyN(1)
	s.breakChain()
	s.setPrev(token{kind: tokPunct, text: "["})
	return true
}

// bracketMember handles RECEIVER['prop'] and RECEIVER["prop"].
func (s *scanner) bracketMember() (done, ok bool) {
	q := s.at(1)
	if q == more {
		return false, false
	}
	if q != '\'' && q != '"' {
		return false, true
	}
	l, ok := s.identLen(2)
	if !ok {
		return false, false
	}
	if l == 0 || l > len("location") {
		return false, true
	}
	for i, want := range []int{q, ']'} {
		c := s.at(2 + l + i)
		if c == more {
			return false, false
		}
		if c != want {
			return false, true
		}
	}
	name := string(s.in[s.pos+2 : s.pos+2+l])
	if !isTargetProp(name) {
		return false, true
	}
	return s.member(name, l+4)
}

func (s *scanner) closeBracket() {
	fr, ok := s.pop('[')
	s.copyN(1)
	s.closeChain(fr, ok)
	s.setPrev(token{kind: tokValue, text: "]"})
}

func (s *scanner) openBrace() {
	body := s.pendingBody
	if s.isPatternStart() {
		// names bound by the pattern belong to the enclosing block
		s.frames = append(s.frames, frame{open: '{', start: -1, chain: -1, binding: true})
		s.copyN(1)
		s.breakChain()
		s.setPrev(token{kind: tokPunct, text: "{"})
		return
	}
	s.frames = append(s.frames, frame{open: '{', start: -1, chain: -1})
	s.depth++
	if body {
		for _, p := range s.params {
			s.shadow(p)
		}
	}
	s.copyN(1)
	s.breakChain()
	s.setPrev(token{kind: tokPunct, text: "{"})
}

func (s *scanner) closeBrace() {
	fr, ok := s.pop('{')
	s.copyN(1)
	s.breakChain()
	if ok && fr.open == '`' {
		s.mode = modeTemplate
		return
	}
	if ok && !fr.binding {
		s.unshadow()
		s.depth--
	}
	s.setPrev(token{kind: tokPunct, text: "}"})
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// isIdentStart treats every non-ASCII byte as part of an identifier so
// multi-byte characters are never split.
func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' || c == '$' || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

// isOperator excludes '/' so that "=/re/" still starts a regex.
func isOperator(c byte) bool {
	switch c {
	case '=', '!', '<', '>', '&', '|', '+', '-', '*', '%', '^', '~':
		return true
	}
	return false
}
