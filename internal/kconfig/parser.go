package kconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kcerrors "kconfgen.dev/kconfgen/internal/errors"
)

// LoadOptions configure how a Kconfig tree is loaded from a kernel source tree
type LoadOptions struct {
	// Root is the kernel source tree root
	Root string

	// RootFile is the entry file relative to Root; "Kconfig" when empty
	RootFile string

	// Env supplies $(VAR) expansions (SRCARCH, ARCH, KERNELVERSION, ...)
	Env map[string]string
}

// Load parses the Kconfig tree rooted at opts.Root into dependency metadata.
// The returned tree is read-only.
func Load(opts LoadOptions) (*Tree, error) {
	rootFile := opts.RootFile
	if rootFile == "" {
		rootFile = "Kconfig"
	}

	entry := filepath.Join(opts.Root, rootFile)
	if _, err := os.Stat(entry); err != nil {
		return nil, kcerrors.NewSourceTreeError(opts.Root, "cannot read "+rootFile, err)
	}

	tree := NewTree(opts.Root)
	p := &fileParser{
		tree:   tree,
		root:   opts.Root,
		env:    opts.Env,
		active: make(map[string]bool),
	}
	if err := p.parseFile(entry, nil); err != nil {
		return nil, err
	}
	return tree, nil
}

// ParseFragment parses Kconfig text from memory into an existing tree.
// Source statements are resolved against the tree's root.
func ParseFragment(tree *Tree, file, content string) error {
	p := &fileParser{
		tree:   tree,
		root:   tree.Root,
		env:    make(map[string]string),
		active: make(map[string]bool),
	}
	return p.parseLines(file, logicalLines(content), nil)
}

type fileParser struct {
	tree   *Tree
	root   string
	env    map[string]string
	active map[string]bool
}

type frameKind int

const (
	frameMenu frameKind = iota
	frameIf
	frameChoice
)

func (k frameKind) String() string {
	switch k {
	case frameMenu:
		return "menu"
	case frameIf:
		return "if"
	default:
		return "choice"
	}
}

// frame is one enclosing menu, if or choice block. Its condition is AND-ed
// into every symbol declared inside it.
type frame struct {
	kind frameKind
	cond Expr
	line int
}

// symbolDecl is a pending symbol occurrence being filled in by attribute lines
type symbolDecl struct {
	sym  *Symbol
	base Expr // enclosing condition captured at the config line
	deps Expr // the occurrence's own depends on clauses
}

// logicalLine is a source line with continuations joined
type logicalLine struct {
	text string
	num  int
}

func logicalLines(content string) []logicalLine {
	raw := strings.Split(content, "\n")
	lines := make([]logicalLine, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		text := raw[i]
		num := i + 1
		for strings.HasSuffix(text, "\\") && i+1 < len(raw) {
			text = strings.TrimSuffix(text, "\\") + raw[i+1]
			i++
		}
		lines = append(lines, logicalLine{text: text, num: num})
	}
	return lines
}

func (p *fileParser) parseFile(path string, base Expr) error {
	clean := filepath.Clean(path)
	if p.active[clean] {
		return kcerrors.NewSourceTreeError(p.root, "recursive source of "+path, nil)
	}
	p.active[clean] = true
	defer delete(p.active, clean)

	data, err := os.ReadFile(clean)
	if err != nil {
		return kcerrors.NewSourceTreeError(p.root, "cannot read "+path, err)
	}
	return p.parseLines(clean, logicalLines(string(data)), base)
}

func (p *fileParser) parseLines(file string, lines []logicalLine, base Expr) error {
	var frames []frame
	var cur *symbolDecl

	curCond := func() Expr {
		cond := base
		for _, f := range frames {
			cond = And(cond, f.cond)
		}
		return cond
	}

	finalize := func() {
		if cur == nil {
			return
		}
		cur.sym.DirectDep = And(cur.base, cur.deps)
		p.tree.Add(cur.sym)
		cur = nil
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		stripped := strings.TrimSpace(stripComment(line.text))
		if stripped == "" {
			continue
		}
		stripped = p.expandMacros(stripped)

		kw, rest := splitKeyword(stripped)
		switch kw {
		case "config", "menuconfig":
			finalize()
			name := strings.TrimSpace(rest)
			if name == "" || !isSymbolName(name) {
				return kcerrors.NewParseError(file, line.num, line.text, "invalid symbol name")
			}
			cur = &symbolDecl{
				sym:  &Symbol{Name: name, Pos: Pos{File: file, Line: line.num}},
				base: curCond(),
			}

		case "bool", "boolean", "tristate", "string", "int", "hex":
			if cur == nil {
				continue // choice types and stray type lines carry no dependency data
			}
			cur.sym.Type = typeForKeyword(kw)
			if prompt, ok := promptText(rest); ok {
				cur.sym.Prompt = prompt
			}

		case "def_bool", "def_tristate":
			if cur == nil {
				continue
			}
			if kw == "def_bool" {
				cur.sym.Type = TypeBool
			} else {
				cur.sym.Type = TypeTristate
			}
			value, cond, err := p.parseValueWithIf(rest)
			if err != nil {
				return kcerrors.NewParseError(file, line.num, line.text, err.Error())
			}
			cur.sym.Defaults = append(cur.sym.Defaults, Default{Value: value, Cond: cond})

		case "prompt":
			if cur == nil {
				continue
			}
			if prompt, ok := promptText(rest); ok {
				cur.sym.Prompt = prompt
			}

		case "default":
			if cur == nil {
				continue
			}
			value, cond, err := p.parseValueWithIf(rest)
			if err != nil {
				return kcerrors.NewParseError(file, line.num, line.text, err.Error())
			}
			cur.sym.Defaults = append(cur.sym.Defaults, Default{Value: value, Cond: cond})

		case "depends":
			after, ok := strings.CutPrefix(strings.TrimSpace(rest), "on")
			if !ok {
				return kcerrors.NewParseError(file, line.num, line.text, "expected 'depends on'")
			}
			expr, err := ParseExpr(after)
			if err != nil {
				return kcerrors.NewParseError(file, line.num, line.text, err.Error())
			}
			switch {
			case cur != nil:
				cur.deps = And(cur.deps, expr)
			case len(frames) > 0:
				frames[len(frames)-1].cond = And(frames[len(frames)-1].cond, expr)
			}

		case "select", "imply":
			if cur == nil {
				continue
			}
			target, cond, err := p.parseTargetWithIf(rest)
			if err != nil {
				return kcerrors.NewParseError(file, line.num, line.text, err.Error())
			}
			cur.sym.Selects = append(cur.sym.Selects, Select{
				Target: target,
				Cond:   cond,
				Weak:   kw == "imply",
			})

		case "help", "---help---":
			text, next := consumeHelp(lines, i+1)
			if cur != nil {
				cur.sym.Help = text
			}
			i = next - 1

		case "menu":
			finalize()
			frames = append(frames, frame{kind: frameMenu, line: line.num})

		case "endmenu":
			finalize()
			if err := popFrame(&frames, frameMenu); err != nil {
				return kcerrors.NewParseError(file, line.num, line.text, err.Error())
			}

		case "if":
			finalize()
			expr, err := ParseExpr(rest)
			if err != nil {
				return kcerrors.NewParseError(file, line.num, line.text, err.Error())
			}
			frames = append(frames, frame{kind: frameIf, cond: expr, line: line.num})

		case "endif":
			finalize()
			if err := popFrame(&frames, frameIf); err != nil {
				return kcerrors.NewParseError(file, line.num, line.text, err.Error())
			}

		case "choice":
			finalize()
			frames = append(frames, frame{kind: frameChoice, line: line.num})

		case "endchoice":
			finalize()
			if err := popFrame(&frames, frameChoice); err != nil {
				return kcerrors.NewParseError(file, line.num, line.text, err.Error())
			}

		case "source", "rsource":
			finalize()
			target, ok := promptText(rest)
			if !ok {
				target = strings.TrimSpace(rest)
			}
			if target == "" {
				return kcerrors.NewParseError(file, line.num, line.text, "missing source path")
			}
			var resolved string
			if kw == "rsource" {
				resolved = filepath.Join(filepath.Dir(file), filepath.FromSlash(target))
			} else {
				resolved = filepath.Join(p.root, filepath.FromSlash(target))
			}
			if err := p.parseFile(resolved, curCond()); err != nil {
				return err
			}

		case "comment", "mainmenu":
			finalize()

		case "range", "option", "optional", "modules", "visible":
			// carries no dependency metadata

		default:
			// tolerate constructs outside the supported subset
		}
	}

	finalize()
	if len(frames) > 0 {
		top := frames[len(frames)-1]
		return kcerrors.NewParseError(file, top.line, "",
			fmt.Sprintf("unterminated %s block", top.kind))
	}
	return nil
}

func popFrame(frames *[]frame, kind frameKind) error {
	fs := *frames
	if len(fs) == 0 || fs[len(fs)-1].kind != kind {
		return fmt.Errorf("end%s without matching %s", kind, kind)
	}
	*frames = fs[:len(fs)-1]
	return nil
}

func typeForKeyword(kw string) SymbolType {
	switch kw {
	case "bool", "boolean":
		return TypeBool
	case "tristate":
		return TypeTristate
	case "string":
		return TypeString
	case "int":
		return TypeInt
	case "hex":
		return TypeHex
	}
	return TypeUnknown
}

// promptText extracts a leading quoted string from an attribute's arguments
func promptText(rest string) (string, bool) {
	toks, err := scanTokens(rest)
	if err != nil || len(toks) == 0 || toks[0].kind != tokString {
		return "", false
	}
	return toks[0].text, true
}

// parseValueWithIf parses `EXPR [if COND]` as used by default and def_bool
func (p *fileParser) parseValueWithIf(rest string) (value, cond Expr, err error) {
	toks, err := scanTokens(rest)
	if err != nil {
		return nil, nil, err
	}
	main, condToks := splitIfSuffix(toks)
	if len(main) == 0 {
		return nil, nil, fmt.Errorf("missing value")
	}
	value, err = parseTokenExpr(main)
	if err != nil {
		return nil, nil, err
	}
	if len(condToks) > 0 {
		cond, err = parseTokenExpr(condToks)
		if err != nil {
			return nil, nil, err
		}
	}
	return value, cond, nil
}

// parseTargetWithIf parses `SYMBOL [if COND]` as used by select and imply
func (p *fileParser) parseTargetWithIf(rest string) (target string, cond Expr, err error) {
	toks, err := scanTokens(rest)
	if err != nil {
		return "", nil, err
	}
	main, condToks := splitIfSuffix(toks)
	if len(main) != 1 || main[0].kind != tokWord || !isSymbolName(main[0].text) {
		return "", nil, fmt.Errorf("expected a symbol name")
	}
	if len(condToks) > 0 {
		cond, err = parseTokenExpr(condToks)
		if err != nil {
			return "", nil, err
		}
	}
	return main[0].text, cond, nil
}

func parseTokenExpr(toks []token) (Expr, error) {
	p := &tokenParser{toks: toks}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, fmt.Errorf("trailing tokens after expression")
	}
	return e, nil
}

// splitIfSuffix splits a token stream at a top-level `if`, returning the
// tokens before and after it
func splitIfSuffix(toks []token) (main, cond []token) {
	depth := 0
	for i, t := range toks {
		switch t.kind {
		case tokLParen:
			depth++
		case tokRParen:
			depth--
		case tokWord:
			if depth == 0 && t.text == "if" {
				return toks[:i], toks[i+1:]
			}
		}
	}
	return toks, nil
}

func splitKeyword(line string) (kw, rest string) {
	i := 0
	for i < len(line) && (isWordRune(rune(line[i])) || line[i] == '-') {
		i++
	}
	return line[:i], line[i:]
}

func isSymbolName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isWordRune(r) {
			return false
		}
	}
	return true
}

// stripComment removes an unquoted trailing # comment
func stripComment(s string) string {
	var quote rune
	for i, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '#':
			return s[:i]
		}
	}
	return s
}

// expandMacros substitutes $(VAR) and $VAR references from the environment
// map. Unknown variables expand to the empty string, as the kernel's macro
// language does.
func (p *fileParser) expandMacros(s string) string {
	if !strings.Contains(s, "$") {
		return s
	}

	var sb strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '$' || i+1 >= len(runes) {
			sb.WriteRune(runes[i])
			continue
		}

		if runes[i+1] == '(' || runes[i+1] == '{' {
			close := ')'
			if runes[i+1] == '{' {
				close = '}'
			}
			j := i + 2
			for j < len(runes) && runes[j] != close {
				j++
			}
			if j < len(runes) {
				sb.WriteString(p.env[string(runes[i+2:j])])
				i = j
				continue
			}
			sb.WriteRune(runes[i])
			continue
		}

		j := i + 1
		for j < len(runes) && isWordRune(runes[j]) {
			j++
		}
		if j > i+1 {
			sb.WriteString(p.env[string(runes[i+1:j])])
			i = j - 1
			continue
		}
		sb.WriteRune(runes[i])
	}
	return sb.String()
}

// consumeHelp reads an indented help body starting at lines[start]. The first
// non-blank line fixes the indentation; the block ends at the first less
// indented non-blank line.
func consumeHelp(lines []logicalLine, start int) (string, int) {
	i := start
	for i < len(lines) && strings.TrimSpace(lines[i].text) == "" {
		i++
	}
	if i >= len(lines) {
		return "", len(lines)
	}

	indent := indentWidth(lines[i].text)
	if indent == 0 {
		return "", start
	}

	var sb strings.Builder
	for i < len(lines) {
		text := lines[i].text
		if strings.TrimSpace(text) == "" {
			sb.WriteString("\n")
			i++
			continue
		}
		if indentWidth(text) < indent {
			break
		}
		sb.WriteString(strings.TrimSpace(text))
		sb.WriteString("\n")
		i++
	}
	return strings.TrimRight(sb.String(), "\n"), i
}

func indentWidth(s string) int {
	w := 0
	for _, r := range s {
		switch r {
		case ' ':
			w++
		case '\t':
			w += 8 - w%8
		default:
			return w
		}
	}
	return w
}
