package pyast

import "strings"

// Options controls parsing.
type Options struct {
	// Version selects the grammar. The zero value means Latest.
	Version Version
}

//nolint:gochecknoglobals // Stateless replacer shared by all parses.
var newlineReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// NormalizeNewlines converts \r\n and lone \r line endings to \n.
func NormalizeNewlines(src string) string {
	return newlineReplacer.Replace(src)
}

// Parse parses Python source into a statement tree.
//
// Parse validates statement structure (indentation, clause order, brackets,
// string termination) but not expressions. Any error is a *SyntaxError.
func Parse(src string, opts Options) (*Module, error) {
	version := opts.Version
	if version == (Version{}) {
		version = Latest
	}

	src = strings.TrimPrefix(NormalizeNewlines(src), "\ufeff")

	lines, err := scanLogicalLines(src)
	if err != nil {
		return nil, err
	}

	p := &parser{lines: lines, version: version}
	body, err := p.parseModule()
	if err != nil {
		return nil, err
	}

	root := &Node{
		Kind:      KindModule,
		StartLine: 1,
		EndLine:   max(lastEnd(body), 1),
		Body:      body,
	}
	return &Module{Node: root, Version: version}, nil
}

type parser struct {
	lines   []logicalLine
	pos     int
	version Version
}

func (p *parser) parseModule() ([]*Node, error) {
	if len(p.lines) == 0 {
		return nil, nil
	}
	if p.lines[0].indent != 0 {
		return nil, syntaxErrorf(p.lines[0].startLine, "unexpected indent")
	}
	return p.parseBlock(0)
}

// parseBlock parses consecutive statements at exactly indent and stops at
// the first dedent.
func (p *parser) parseBlock(indent int) ([]*Node, error) {
	var stmts []*Node
	for p.pos < len(p.lines) {
		line := &p.lines[p.pos]
		if line.indent < indent {
			break
		}
		if line.indent > indent {
			return nil, p.indentError()
		}

		nodes, err := p.parseStatement(indent)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, nodes...)
	}
	return stmts, nil
}

// indentError reports the over-indented line at p.pos.
func (p *parser) indentError() error {
	line := p.lines[p.pos]
	if p.pos > 0 && p.lines[p.pos-1].indent > line.indent {
		return syntaxErrorf(line.startLine, "unindent does not match any outer indentation level")
	}
	return syntaxErrorf(line.startLine, "unexpected indent")
}

// nextLine returns the line number the parser would report an error on
// when the input ends early.
func (p *parser) nextLine() int {
	if p.pos < len(p.lines) {
		return p.lines[p.pos].startLine
	}
	if len(p.lines) == 0 {
		return 1
	}
	return p.lines[len(p.lines)-1].endLine + 1
}

func (p *parser) parseStatement(indent int) ([]*Node, error) {
	line := &p.lines[p.pos]
	head := line.tokens[0]

	if head.is(tokOp, "@") {
		return one(p.parseDecorated(indent))
	}
	if head.kind != tokName {
		return p.parseSimple()
	}

	switch head.text {
	case "if":
		return one(p.parseIf(indent, "if"))
	case "for":
		return one(p.parseLoop(indent, KindFor, "'for' statement"))
	case "while":
		return one(p.parseLoop(indent, KindWhile, "'while' statement"))
	case "with":
		return one(p.parseScoped(indent, KindWith, "'with' statement"))
	case "try":
		return one(p.parseTry(indent))
	case "def":
		return one(p.parseScoped(indent, KindFunctionDef, "function definition"))
	case "class":
		return one(p.parseScoped(indent, KindClassDef, "class definition"))
	case "async":
		if kind, what, ok := asyncKind(line.tokens); ok {
			if kind == KindAsyncFor {
				return one(p.parseLoop(indent, kind, what))
			}
			return one(p.parseScoped(indent, kind, what))
		}
	case "elif", "else", "except", "finally":
		return nil, syntaxErrorf(line.startLine, "invalid syntax")
	case "match":
		if p.version.SupportsMatch() && isMatchHeader(line.tokens) {
			return one(p.parseMatch(indent))
		}
	}

	return p.parseSimple()
}

func one(node *Node, err error) ([]*Node, error) {
	if err != nil {
		return nil, err
	}
	return []*Node{node}, nil
}

func asyncKind(tokens []token) (Kind, string, bool) {
	if len(tokens) < 2 || tokens[1].kind != tokName {
		return 0, "", false
	}
	switch tokens[1].text {
	case "for":
		return KindAsyncFor, "'for' statement", true
	case "with":
		return KindAsyncWith, "'with' statement", true
	case "def":
		return KindAsyncFunctionDef, "function definition", true
	default:
		return 0, "", false
	}
}

// isMatchHeader tells a match statement apart from ordinary uses of the
// soft keyword "match" as a name.
func isMatchHeader(tokens []token) bool {
	if len(tokens) < 3 {
		return false
	}
	colon := headerColon(tokens)
	if colon != len(tokens)-1 {
		return false
	}

	subject := tokens[1]
	if subject.kind != tokOp {
		return true
	}
	switch subject.text {
	case "(", "[", "{", "-", "+", "~", "*", "...":
		return true
	default:
		return false
	}
}

// headerColon returns the index of the colon that ends a compound statement
// header, or -1. Colons inside brackets and those owned by lambdas are skipped.
func headerColon(tokens []token) int {
	lambdas := 0
	for idx, tok := range tokens {
		if tok.depth != 0 {
			continue
		}
		switch {
		case tok.is(tokName, "lambda"):
			lambdas++
		case tok.is(tokOp, ":"):
			if lambdas > 0 {
				lambdas--
				continue
			}
			return idx
		}
	}
	return -1
}

// parseSuite consumes the header at p.pos and the suite it owns.
func (p *parser) parseSuite(indent int, what string) ([]*Node, error) {
	line := p.lines[p.pos]
	colon := headerColon(line.tokens)
	if colon < 0 {
		return nil, syntaxErrorf(line.endLine, "expected ':'")
	}
	p.pos++

	if colon < len(line.tokens)-1 {
		return inlineSuite(line.tokens[colon+1:])
	}

	if p.pos >= len(p.lines) || p.lines[p.pos].indent <= indent {
		return nil, syntaxErrorf(p.nextLine(), "expected an indented block after %s on line %d",
			what, line.startLine)
	}
	return p.parseBlock(p.lines[p.pos].indent)
}

// clauseAt reports whether the line at p.pos continues the current compound
// statement with the given clause keyword.
func (p *parser) clauseAt(indent int, keyword string) bool {
	if p.pos >= len(p.lines) {
		return false
	}
	line := p.lines[p.pos]
	return line.indent == indent && line.tokens[0].is(tokName, keyword)
}

func (p *parser) parseIf(indent int, keyword string) (*Node, error) {
	start := p.lines[p.pos].startLine
	body, err := p.parseSuite(indent, "'"+keyword+"' statement")
	if err != nil {
		return nil, err
	}
	node := &Node{Kind: KindIf, StartLine: start, Body: body}

	switch {
	case p.clauseAt(indent, "elif"):
		elif, err := p.parseIf(indent, "elif")
		if err != nil {
			return nil, err
		}
		node.OrElse = []*Node{elif}
	case p.clauseAt(indent, "else"):
		node.OrElse, err = p.parseSuite(indent, "'else' statement")
		if err != nil {
			return nil, err
		}
	}

	node.EndLine = endOf(node.Body, node.OrElse)
	return node, nil
}

func (p *parser) parseLoop(indent int, kind Kind, what string) (*Node, error) {
	start := p.lines[p.pos].startLine
	body, err := p.parseSuite(indent, what)
	if err != nil {
		return nil, err
	}
	node := &Node{Kind: kind, StartLine: start, Body: body}

	if p.clauseAt(indent, "else") {
		node.OrElse, err = p.parseSuite(indent, "'else' statement")
		if err != nil {
			return nil, err
		}
	}

	node.EndLine = endOf(node.Body, node.OrElse)
	return node, nil
}

// parseScoped parses single-suite statements: with, def and class.
func (p *parser) parseScoped(indent int, kind Kind, what string) (*Node, error) {
	start := p.lines[p.pos].startLine
	body, err := p.parseSuite(indent, what)
	if err != nil {
		return nil, err
	}
	return &Node{Kind: kind, StartLine: start, EndLine: lastEnd(body), Body: body}, nil
}

func (p *parser) parseTry(indent int) (*Node, error) {
	start := p.lines[p.pos].startLine
	body, err := p.parseSuite(indent, "'try' statement")
	if err != nil {
		return nil, err
	}
	node := &Node{Kind: KindTry, StartLine: start, Body: body}

	sawDefault := false
	for p.clauseAt(indent, "except") {
		handler, star, bare, err := p.parseHandler(indent, sawDefault)
		if err != nil {
			return nil, err
		}
		if len(node.Handlers) > 0 && star != (node.Kind == KindTryStar) {
			return nil, syntaxErrorf(handler.StartLine, "cannot have both 'except' and 'except*' on the same 'try'")
		}
		if star {
			node.Kind = KindTryStar
		}
		sawDefault = sawDefault || bare
		node.Handlers = append(node.Handlers, handler)
	}

	if len(node.Handlers) > 0 && p.clauseAt(indent, "else") {
		node.OrElse, err = p.parseSuite(indent, "'else' statement")
		if err != nil {
			return nil, err
		}
	}

	hasFinally := p.clauseAt(indent, "finally")
	if hasFinally {
		node.FinalBody, err = p.parseSuite(indent, "'finally' statement")
		if err != nil {
			return nil, err
		}
	}

	if len(node.Handlers) == 0 && !hasFinally {
		return nil, syntaxErrorf(p.nextLine(), "expected 'except' or 'finally' block")
	}

	node.EndLine = endOf(node.Body, node.Handlers, node.OrElse, node.FinalBody)
	return node, nil
}

// parseHandler parses one except clause. It also reports whether the clause
// is an except* and whether it is a bare "except:".
func (p *parser) parseHandler(indent int, sawDefault bool) (*Node, bool, bool, error) {
	line := p.lines[p.pos]
	if sawDefault {
		return nil, false, false, syntaxErrorf(line.startLine, "default 'except:' must be last")
	}

	star := len(line.tokens) > 1 && line.tokens[1].is(tokOp, "*")
	bare := len(line.tokens) > 1 && line.tokens[1].is(tokOp, ":")
	if star && !p.version.SupportsExceptStar() {
		return nil, false, false, syntaxErrorf(line.startLine, "invalid syntax")
	}
	if star && len(line.tokens) > 2 && line.tokens[2].is(tokOp, ":") {
		return nil, false, false, syntaxErrorf(line.startLine, "expected one or more exception types")
	}

	what := "'except' statement"
	if star {
		what = "'except*' statement"
	}
	body, err := p.parseSuite(indent, what)
	if err != nil {
		return nil, false, false, err
	}

	return &Node{
		Kind:      KindExceptHandler,
		StartLine: line.startLine,
		EndLine:   lastEnd(body),
		Body:      body,
	}, star, bare, nil
}

func (p *parser) parseMatch(indent int) (*Node, error) {
	line := p.lines[p.pos]
	p.pos++

	if p.pos >= len(p.lines) || p.lines[p.pos].indent <= indent {
		return nil, syntaxErrorf(p.nextLine(), "expected an indented block after 'match' statement on line %d",
			line.startLine)
	}

	caseIndent := p.lines[p.pos].indent
	var cases []*Node
	for p.pos < len(p.lines) {
		caseLine := p.lines[p.pos]
		if caseLine.indent < caseIndent {
			break
		}
		if caseLine.indent > caseIndent {
			return nil, p.indentError()
		}
		if !caseLine.tokens[0].is(tokName, "case") {
			return nil, syntaxErrorf(caseLine.startLine, "invalid syntax")
		}

		body, err := p.parseSuite(caseIndent, "'case' statement")
		if err != nil {
			return nil, err
		}
		cases = append(cases, &Node{
			Kind:      KindMatchCase,
			StartLine: caseLine.startLine,
			EndLine:   lastEnd(body),
			Body:      body,
		})
	}

	return &Node{Kind: KindMatch, StartLine: line.startLine, EndLine: lastEnd(cases), Body: cases}, nil
}

func (p *parser) parseDecorated(indent int) (*Node, error) {
	var decorators []int
	for p.pos < len(p.lines) && p.lines[p.pos].indent == indent && p.lines[p.pos].tokens[0].is(tokOp, "@") {
		decorators = append(decorators, p.lines[p.pos].startLine)
		p.pos++
	}

	if p.pos >= len(p.lines) || p.lines[p.pos].indent != indent {
		return nil, syntaxErrorf(p.nextLine(), "invalid syntax")
	}

	tokens := p.lines[p.pos].tokens
	var (
		node *Node
		err  error
	)
	switch {
	case tokens[0].is(tokName, "def"):
		node, err = p.parseScoped(indent, KindFunctionDef, "function definition")
	case tokens[0].is(tokName, "class"):
		node, err = p.parseScoped(indent, KindClassDef, "class definition")
	case tokens[0].is(tokName, "async") && len(tokens) > 1 && tokens[1].is(tokName, "def"):
		node, err = p.parseScoped(indent, KindAsyncFunctionDef, "function definition")
	default:
		return nil, syntaxErrorf(p.lines[p.pos].startLine, "invalid syntax")
	}
	if err != nil {
		return nil, err
	}

	node.Decorators = decorators
	return node, nil
}

func (p *parser) parseSimple() ([]*Node, error) {
	line := p.lines[p.pos]
	p.pos++
	return splitSimple(line.tokens)
}

// inlineSuite parses the statements following a header colon on the same line.
func inlineSuite(tokens []token) ([]*Node, error) {
	if startsCompound(tokens) {
		return nil, syntaxErrorf(tokens[0].line, "invalid syntax")
	}
	return splitSimple(tokens)
}

func startsCompound(tokens []token) bool {
	head := tokens[0]
	if head.is(tokOp, "@") {
		return true
	}
	if head.kind != tokName {
		return false
	}
	switch head.text {
	case "if", "elif", "else", "for", "while", "with", "try", "except", "finally", "def", "class":
		return true
	case "async":
		_, _, ok := asyncKind(tokens)
		return ok
	default:
		return false
	}
}

// splitSimple splits a simple statement line on top-level semicolons.
func splitSimple(tokens []token) ([]*Node, error) {
	var nodes []*Node
	start := 0
	for idx, tok := range tokens {
		if tok.depth != 0 || !tok.is(tokOp, ";") {
			continue
		}
		if idx == start {
			return nil, syntaxErrorf(tok.line, "invalid syntax")
		}
		nodes = append(nodes, simpleNode(tokens[start:idx]))
		start = idx + 1
	}
	if start < len(tokens) {
		nodes = append(nodes, simpleNode(tokens[start:]))
	}
	if len(nodes) == 0 {
		return nil, syntaxErrorf(tokens[0].line, "invalid syntax")
	}
	return nodes, nil
}

func simpleNode(tokens []token) *Node {
	return &Node{
		Kind:      KindSimple,
		StartLine: tokens[0].line,
		EndLine:   tokens[len(tokens)-1].endLine,
	}
}

// endOf returns the end line of the last non-empty suite.
func endOf(suites ...[]*Node) int {
	end := 0
	for _, suite := range suites {
		end = max(end, lastEnd(suite))
	}
	return end
}
