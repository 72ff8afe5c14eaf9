package parse

import (
	"fmt"

	"github.com/appsworld/go-cdecl/ast"
	"github.com/appsworld/go-cdecl/types"
)

// eparser parses pseudo-English type phrases like "pointer to array 10 of
// const int". English nests outside-in, so the AST is built directly with
// no placeholders.
type eparser struct {
	cursor
	env Env
}

// ParseEnglishType parses an <english> type phrase into an AST.
func ParseEnglishType(input string, env Env) (*ast.Node, error) {
	p := &eparser{cursor{toks: lex(input, false)}, env}
	n, err := p.english()
	if err != nil {
		return nil, err
	}
	if !p.eof() {
		return nil, fmt.Errorf("trailing characters at position %d", p.peek().loc.First)
	}
	return n, nil
}

// ParseName parses a possibly scoped declarator name like "std::size_t".
func ParseName(input string) (ast.ScopedName, error) {
	p := &eparser{cursor: cursor{toks: lex(input, false)}}
	name := p.scopedName()
	if name.Empty() || !p.eof() {
		return nil, fmt.Errorf("%q is not a valid name", input)
	}
	return name, nil
}

func (p *eparser) english() (*ast.Node, error) {
	mods, loc, err := p.modifiers()
	if err != nil {
		return nil, err
	}
	n, err := p.phrase(loc)
	if err != nil {
		return nil, err
	}
	if mods != types.None {
		if err := types.Add(&n.Type, mods, loc); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// modifiers collects leading storage classes, qualifiers, and attributes:
// everything before the kind phrase itself.
func (p *eparser) modifiers() (types.ID, types.Loc, error) {
	var id types.ID
	loc := p.peek().loc
	for {
		t := p.peek()
		if t.kind != tokIdent {
			return id, loc, nil
		}
		var bits types.ID
		switch {
		case t.text == "auto":
			// Leading auto is the storage class in dialects that have
			// one; the C++11 type placeholder is a phrase of its own.
			if autoBits(p.env.Lang) != types.AutoStorage {
				return id, loc, nil
			}
			bits = types.AutoStorage
		case t.text == "pure":
			if p.at(1).kind == tokIdent && p.at(1).text == "virtual" {
				p.next()
				bits = types.PureVirtual | types.Virtual
				break
			}
			return id, loc, nil
		default:
			var ok bool
			bits, ok = englishBits[t.text]
			if !ok {
				bits, ok = keywordBits[t.text]
				if !ok || bits&types.MaskBase != types.None {
					return id, loc, nil
				}
			}
		}
		p.next()
		if err := types.Add(&id, bits, t.loc); err != nil {
			return id, loc, err
		}
	}
}

func (p *eparser) phrase(loc types.Loc) (*ast.Node, error) {
	t := p.peek()
	if t.kind != tokIdent {
		return nil, fmt.Errorf("expected a type but got %q", t.text)
	}

	switch t.text {
	case "variable":
		p.next()
		p.acceptIdent("length")
		if !p.acceptIdent("array") {
			return nil, fmt.Errorf(`expected "array" after "variable length"`)
		}
		return p.arrayTail(ast.SizeVariable, t.loc)

	case "array":
		p.next()
		return p.arrayTail(ast.SizeNone, t.loc)

	case "pointer":
		p.next()
		if err := p.expectIdent("to"); err != nil {
			return nil, err
		}
		if p.acceptIdent("member") {
			return p.pointerToMember(t.loc)
		}
		return p.wrap(ast.KindPointer, t.loc)

	case "reference":
		p.next()
		if err := p.expectIdent("to"); err != nil {
			return nil, err
		}
		return p.wrap(ast.KindReference, t.loc)

	case "rvalue":
		p.next()
		if err := p.expectIdent("reference"); err != nil {
			return nil, err
		}
		if err := p.expectIdent("to"); err != nil {
			return nil, err
		}
		return p.wrap(ast.KindRvalueReference, t.loc)

	case "member":
		p.next()
		return p.functionLike(ast.FuncMember, t.loc)

	case "non-member":
		p.next()
		return p.functionLike(ast.FuncNonMember, t.loc)

	case "function", "block", "operator", "constructor", "destructor":
		return p.functionLike(ast.FuncUnspecified, t.loc)

	case "enum", "struct", "union", "class":
		return p.ecsu(t)

	case "auto":
		p.next()
		n := ast.New(ast.KindBuiltin, t.loc)
		n.Type = types.AutoType
		return n, nil
	}

	// Built-in type words, or a typedef name.
	if bits, ok := keywordBits[t.text]; ok && bits&types.MaskBase != types.None {
		return p.builtin(t.loc)
	}

	name := p.scopedName()
	if name.Empty() {
		return nil, fmt.Errorf("expected a type but got %q", t.text)
	}
	if td := p.env.Typedefs.Lookup(name); td != nil && td.Langs&p.env.Lang != types.LangNone {
		n := ast.New(ast.KindTypedef, t.loc)
		n.Type = types.TypedefType
		n.Def = td
		return n, nil
	}
	return nil, &UnknownNameError{Name: name.Full(), Loc: t.loc}
}

// wrap parses the rest of "pointer to X" style phrases.
func (p *eparser) wrap(kind ast.Kind, loc types.Loc) (*ast.Node, error) {
	of, err := p.english()
	if err != nil {
		return nil, err
	}
	n := ast.New(kind, loc)
	n.SetOf(of)
	return n, nil
}

func (p *eparser) pointerToMember(loc types.Loc) (*ast.Node, error) {
	if err := p.expectIdent("of"); err != nil {
		return nil, err
	}
	scopeType := types.Class
	switch {
	case p.acceptIdent("class"):
	case p.acceptIdent("struct"):
		scopeType = types.Struct
	default:
		return nil, fmt.Errorf(`expected "class" or "struct" after "member of"`)
	}
	name := p.scopedName()
	if name.Empty() {
		return nil, fmt.Errorf("expected a class name")
	}
	for i := range name {
		name[i].Type = scopeType
	}
	p.acceptIdent("of") // "of <english>" reads better; accept it silently

	of, err := p.english()
	if err != nil {
		return nil, err
	}
	n := ast.New(ast.KindPointerToMember, loc)
	n.ClassName = name
	n.SetOf(of)
	return n, nil
}

func (p *eparser) arrayTail(size int, loc types.Loc) (*ast.Node, error) {
	arr := ast.New(ast.KindArray, loc)
	arr.Size = size

	// C99 qualified array parameters: "array static const 10 of".
	for {
		t := p.peek()
		if t.kind != tokIdent {
			break
		}
		bits, ok := keywordBits[t.text]
		if !ok || bits&(types.MaskQual|types.Static) == types.None {
			break
		}
		p.next()
		arr.ArrayQual |= bits
	}

	if t := p.peek(); t.kind == tokNumber {
		n, err := p.number("array size")
		if err != nil {
			return nil, err
		}
		arr.Size = n
	} else if t.kind == tokPunct && t.text == "*" {
		p.next()
		arr.Size = ast.SizeVariable
	}

	if err := p.expectIdent("of"); err != nil {
		return nil, err
	}
	of, err := p.english()
	if err != nil {
		return nil, err
	}
	arr.SetOf(of)
	return arr, nil
}

func (p *eparser) functionLike(flags ast.FuncFlags, loc types.Loc) (*ast.Node, error) {
	t := p.next()
	var kind ast.Kind
	switch t.text {
	case "function":
		kind = ast.KindFunction
	case "block":
		kind = ast.KindAppleBlock
	case "constructor":
		kind = ast.KindConstructor
	case "destructor":
		kind = ast.KindDestructor
	case "operator":
		kind = ast.KindOperator
	default:
		return nil, fmt.Errorf("expected a function kind but got %q", t.text)
	}

	n := ast.New(kind, loc)
	n.FuncFlags = flags

	if p.acceptPunct("(") {
		n.Params = []*ast.Node{}
		if !p.acceptPunct(")") {
			for {
				param, err := p.param()
				if err != nil {
					return nil, err
				}
				n.Params = append(n.Params, param)
				if p.acceptPunct(",") {
					continue
				}
				if err := p.expectPunct(")"); err != nil {
					return nil, err
				}
				break
			}
		}
	}

	if kind&ast.KindAnyFunctionReturning != 0 {
		var ret *ast.Node
		if p.acceptIdent("returning") {
			var err error
			ret, err = p.english()
			if err != nil {
				return nil, err
			}
		} else {
			// No "returning" clause: the return type is implicit int,
			// which the checker gates per dialect.
			ret = ast.New(ast.KindBuiltin, loc)
		}
		n.SetRet(ret)
	}
	return n, nil
}

func (p *eparser) param() (*ast.Node, error) {
	t := p.peek()
	if t.kind == tokPunct && t.text == "..." {
		p.next()
		return ast.New(ast.KindVariadic, t.loc), nil
	}

	// "<name> as <english>"
	if t.kind == tokIdent && p.at(1).kind == tokIdent && p.at(1).text == "as" {
		p.next()
		p.next()
		n, err := p.english()
		if err != nil {
			return nil, err
		}
		n.Name = ast.NewName(t.text)
		return n, nil
	}

	// A bare unknown identifier is a K&R untyped parameter.
	if t.kind == tokIdent && !p.isTypeWord(t) {
		if next := p.at(1); next.kind == tokPunct && (next.text == "," || next.text == ")") {
			p.next()
			n := ast.New(ast.KindName, t.loc)
			n.Name = ast.NewName(t.text)
			return n, nil
		}
	}

	return p.english()
}

// isTypeWord reports whether t could begin a type phrase.
func (p *eparser) isTypeWord(t token) bool {
	if _, ok := keywordBits[t.text]; ok {
		return true
	}
	if _, ok := englishBits[t.text]; ok {
		return true
	}
	switch t.text {
	case "array", "variable", "pointer", "reference", "rvalue", "member",
		"non-member", "function", "block", "constructor", "destructor",
		"enum", "struct", "union", "class", "auto", "pure":
		return true
	}
	return p.env.Typedefs != nil && p.env.Typedefs.LookupString(t.text) != nil
}

// builtin collects base-type words ("unsigned long int") plus any
// interleaved qualifiers.
func (p *eparser) builtin(loc types.Loc) (*ast.Node, error) {
	n := ast.New(ast.KindBuiltin, loc)
	for {
		t := p.peek()
		if t.kind != tokIdent {
			return n, nil
		}
		bits, ok := keywordBits[t.text]
		if !ok {
			if bits, ok = englishBits[t.text]; !ok {
				return n, nil
			}
		}
		if t.text == "auto" {
			return n, nil
		}
		p.next()
		if err := types.Add(&n.Type, bits, t.loc); err != nil {
			return nil, err
		}
	}
}

func (p *eparser) ecsu(t token) (*ast.Node, error) {
	p.next()
	tag := ecsuKeywords[t.text]
	if tag == types.Enum {
		if p.acceptIdent("class") {
			tag |= types.Class
		} else if p.acceptIdent("struct") {
			tag |= types.Struct
		}
	}
	name := p.scopedName()
	if name.Empty() {
		return nil, fmt.Errorf("expected a name after %q", t.text)
	}
	kind := ast.KindClassStructUnion
	if tag&types.Enum != types.None {
		kind = ast.KindEnum
	}
	n := ast.New(kind, t.loc)
	n.Type = tag
	n.ECSUName = name

	// "enum E of type int": a fixed underlying type.
	if kind == ast.KindEnum && p.peek().kind == tokIdent && p.peek().text == "of" {
		if p.at(1).kind == tokIdent && p.at(1).text == "type" {
			p.next()
			p.next()
			under, err := p.english()
			if err != nil {
				return nil, err
			}
			n.SetOf(under)
		}
	}
	return n, nil
}

func (p *eparser) scopedName() ast.ScopedName {
	if p.peek().kind != tokIdent {
		return nil
	}
	var name ast.ScopedName
	name = append(name, ast.Scope{Name: p.next().text})
	for {
		if t := p.peek(); t.kind != tokPunct || t.text != "::" || p.at(1).kind != tokIdent {
			return name
		}
		p.next()
		name = append(name, ast.Scope{Name: p.next().text})
	}
}

func (p *eparser) expectIdent(word string) error {
	if !p.acceptIdent(word) {
		return fmt.Errorf("expected %q but got %q", word, p.peek().text)
	}
	return nil
}

func (p *eparser) number(what string) (int, error) {
	t := p.next()
	if t.kind != tokNumber {
		return 0, fmt.Errorf("expected %s but got %q", what, t.text)
	}
	var n int
	if _, err := fmt.Sscanf(t.text, "%d", &n); err != nil {
		return 0, fmt.Errorf("invalid %s %q", what, t.text)
	}
	return n, nil
}
