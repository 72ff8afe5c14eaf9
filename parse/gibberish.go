package parse

import (
	"fmt"
	"strconv"

	"github.com/appsworld/go-cdecl/ast"
	"github.com/appsworld/go-cdecl/types"
)

// gparser parses C/C++ declarations ("gibberish") into ASTs using the
// builder combinators: the declarator is parsed around a placeholder that
// the type specifier is patched into at the end.
type gparser struct {
	cursor
	env Env

	// pendingMSC holds a Microsoft calling convention seen in declarator
	// position, to be attached to the next function node.
	pendingMSC types.ID
}

// ParseDecl parses a single C/C++ declaration, e.g. "int (*x)[10]".
func ParseDecl(input string, env Env) (*ast.Node, error) {
	p := &gparser{cursor: cursor{toks: lex(input, env.altTokensOK())}, env: env}
	root, err := p.decl()
	if err != nil {
		return nil, err
	}
	if !p.eof() {
		return nil, fmt.Errorf("trailing characters at position %d", p.peek().loc.First)
	}
	return root, nil
}

// ParseTypeName parses an abstract declaration (no declarator name), as in
// the right-hand side of a using declaration.
func ParseTypeName(input string, env Env) (*ast.Node, error) {
	return ParseDecl(input, env)
}

func (p *gparser) decl() (*ast.Node, error) {
	spec, align, err := p.specifier()
	if err != nil {
		return nil, err
	}

	if p.specEmpty(spec) {
		// No type specifier. A lone identifier (possibly a K&R function)
		// gets implicit int; an identifier followed by a declarator was
		// meant as a type we don't know.
		if t := p.peek(); t.kind == tokIdent {
			switch next := p.at(1); {
			case next.kind == tokIdent,
				next.kind == tokPunct && (next.text == "*" || next.text == "&" ||
					next.text == "&&" || next.text == "^"):
				return nil, &UnknownNameError{Name: t.text, Loc: t.loc}
			}
		}
	}

	decl, err := p.declarator(1)
	if err != nil {
		return nil, err
	}

	root := ast.PatchPlaceholder(spec, decl)

	// Trailing function qualifiers: void f() const noexcept override ...
	if fn := ast.FindKind(root, ast.VisitDown, ast.KindAnyFunctionLike); fn != nil {
		if err := p.trailingFuncQuals(fn); err != nil {
			return nil, err
		}
	}

	// Bit-field width.
	if p.acceptPunct(":") {
		w, err := p.number("bit-field width")
		if err != nil {
			return nil, err
		}
		if w <= 0 {
			return nil, fmt.Errorf("bit-field width must be positive")
		}
		root.BitWidth = w
	}
	p.acceptPunct(";")

	// Storage classes and attributes belong to the declaration, not the
	// inner type: "static int *p" is a static pointer to int. Calling
	// conventions stick to the function they modify instead.
	msc := ast.TakeType(root, types.AnyMSCCall)
	if storage := ast.TakeType(root, types.DeclSpecStorage|types.MaskAttr); storage != types.None {
		root.Type |= storage
	}
	if msc != types.None {
		if fn := ast.FindKind(root, ast.VisitDown, ast.KindAnyFunctionLike); fn != nil {
			fn.Type |= msc
		} else {
			root.Type |= msc
		}
	}
	root.Align = align
	return root, nil
}

func (p *gparser) specEmpty(spec *ast.Node) bool {
	return spec.Kind == ast.KindBuiltin && spec.Type == types.None
}

// specifier parses declaration specifiers: type keywords, storage classes,
// qualifiers, attributes, tags, typedef names, and alignas.
func (p *gparser) specifier() (*ast.Node, ast.Alignment, error) {
	var id types.ID
	var node *ast.Node
	var align ast.Alignment
	start := p.peek().loc

	for {
		t := p.peek()
		switch {
		case t.kind == tokIdent && (t.text == "alignas" || t.text == "_Alignas"):
			p.next()
			a, err := p.alignas()
			if err != nil {
				return nil, align, err
			}
			align = a
			continue

		case t.kind == tokIdent && t.text == "auto":
			p.next()
			if err := types.Add(&id, autoBits(p.env.Lang), t.loc); err != nil {
				return nil, align, err
			}
			continue

		case t.kind == tokIdent:
			if bits, ok := keywordBits[t.text]; ok {
				p.next()
				if err := types.Add(&id, bits, t.loc); err != nil {
					return nil, align, err
				}
				continue
			}
			if tag, ok := ecsuKeywords[t.text]; ok && node == nil {
				p.next()
				var err error
				node, err = p.ecsu(tag, t.loc)
				if err != nil {
					return nil, align, err
				}
				continue
			}
			if node == nil {
				// A typedef name, if registered.
				if td, n := p.typedefName(); td != nil {
					node = n
					continue
				}
			}

		case t.kind == tokPunct && t.text == "[" && p.at(1).kind == tokPunct && p.at(1).text == "[":
			p.next()
			p.next()
			bits, err := p.attributes()
			if err != nil {
				return nil, align, err
			}
			if err := types.Add(&id, bits, t.loc); err != nil {
				return nil, align, err
			}
			continue
		}
		break
	}

	if node != nil {
		if id != types.None {
			if err := types.Add(&node.Type, id, start); err != nil {
				return nil, align, err
			}
		}
		return node, align, nil
	}
	n := ast.New(ast.KindBuiltin, start)
	n.Type = id
	return n, align, nil
}

// typedefName consumes a registered typedef name, returning nil without
// consuming anything if the upcoming identifier isn't one.
func (p *gparser) typedefName() (*ast.Typedef, *ast.Node) {
	save := p.pos
	name := p.scopedName()
	if name.Empty() {
		return nil, nil
	}
	td := p.env.Typedefs.Lookup(name)
	if td == nil || td.Langs&p.env.Lang == types.LangNone {
		p.pos = save
		return nil, nil
	}
	n := ast.New(ast.KindTypedef, p.at(-1).loc)
	n.Type = types.TypedefType
	n.Def = td
	return td, n
}

// ecsu parses the rest of an enum/class/struct/union specifier after its
// keyword.
func (p *gparser) ecsu(tag types.ID, loc types.Loc) (*ast.Node, error) {
	// enum class E / enum struct E
	if tag == types.Enum {
		if p.acceptIdent("class") {
			tag |= types.Class
		} else if p.acceptIdent("struct") {
			tag |= types.Struct
		}
	}
	name := p.scopedName()
	if name.Empty() {
		return nil, fmt.Errorf("%s requires a name", types.Name(tag))
	}
	kind := ast.KindClassStructUnion
	if tag&types.Enum != types.None {
		kind = ast.KindEnum
	}
	n := ast.New(kind, loc)
	n.Type = tag
	n.ECSUName = name

	// C++11 fixed underlying type: enum E : int. The colon must be
	// followed by a type keyword, or it is a bit-field's.
	if kind == ast.KindEnum && p.peek().kind == tokPunct && p.peek().text == ":" {
		if next := p.at(1); next.kind == tokIdent {
			if _, ok := keywordBits[next.text]; ok {
				p.next()
				under, _, err := p.specifier()
				if err != nil {
					return nil, err
				}
				n.SetOf(under)
			}
		}
	}
	return n, nil
}

func (p *gparser) alignas() (ast.Alignment, error) {
	var a ast.Alignment
	if err := p.expectPunct("("); err != nil {
		return a, err
	}
	if t := p.peek(); t.kind == tokNumber {
		n, err := p.number("alignment")
		if err != nil {
			return a, err
		}
		a = ast.Alignment{Kind: ast.AlignExpr, Expr: n}
	} else {
		spec, _, err := p.specifier()
		if err != nil {
			return a, err
		}
		a = ast.Alignment{Kind: ast.AlignType, Type: spec}
	}
	if err := p.expectPunct(")"); err != nil {
		return a, err
	}
	return a, nil
}

// attributes parses the inside of [[...]] through the closing brackets.
func (p *gparser) attributes() (types.ID, error) {
	var id types.ID
	for {
		t := p.next()
		switch t.kind {
		case tokIdent:
			if bits, ok := attrBits[t.text]; ok {
				id |= bits
			}
			// Unknown attributes are ignored, as compilers do.
		case tokPunct:
			if t.text == "]" {
				if err := p.expectPunct("]"); err != nil {
					return id, err
				}
				return id, nil
			}
			if t.text != "," {
				return id, fmt.Errorf("unexpected %q in attribute list", t.text)
			}
		case tokEOF:
			return id, fmt.Errorf("unterminated attribute list")
		}
	}
}

// declarator parses a (possibly abstract) declarator at nesting depth d.
// Pointer-like operator nodes get depth d-1 and direct-declarator nodes
// depth d, which keeps PatchPlaceholder's depth condition satisfied.
func (p *gparser) declarator(d int) (*ast.Node, error) {
	// A calling convention may precede the declarator proper:
	// void (__stdcall *pf)(int).
	for {
		t := p.peek()
		if t.kind != tokIdent {
			break
		}
		bits, ok := keywordBits[t.text]
		if !ok || bits&types.AnyMSCCall == types.None {
			break
		}
		p.next()
		p.pendingMSC |= bits
	}

	t := p.peek()
	switch {
	case t.kind == tokPunct && t.text == "*":
		p.next()
		return p.pointerLike(ast.KindPointer, nil, d)

	case t.kind == tokPunct && t.text == "&" && types.IsCPP(p.env.Lang):
		p.next()
		return p.pointerLike(ast.KindReference, nil, d)

	case t.kind == tokPunct && t.text == "&&" && types.IsCPP(p.env.Lang):
		p.next()
		return p.pointerLike(ast.KindRvalueReference, nil, d)

	case t.kind == tokPunct && t.text == "^":
		p.next()
		return p.blockDeclarator(d)

	case t.kind == tokIdent && p.isPtrToMember():
		name := p.scopedNameUntilPtr()
		return p.pointerLike(ast.KindPointerToMember, name, d)
	}
	return p.direct(d)
}

// pointerLike handles *, &, &&, and C::* declarators: the operator node is
// created pointing at a placeholder and patched into the rest of the
// declarator.
func (p *gparser) pointerLike(kind ast.Kind, className ast.ScopedName, d int) (*ast.Node, error) {
	op := ast.New(kind, p.at(-1).loc)
	op.Depth = d - 1
	op.ClassName = className
	op.Type = p.qualifiers()
	ph := ast.New(ast.KindPlaceholder, op.Loc)
	ph.Depth = d - 1
	op.SetOf(ph)

	sub, err := p.declarator(d)
	if err != nil {
		return nil, err
	}
	return ast.PatchPlaceholder(op, sub), nil
}

// blockDeclarator handles Apple block declarators: (^name)(params).
func (p *gparser) blockDeclarator(d int) (*ast.Node, error) {
	blk := ast.New(ast.KindAppleBlock, p.at(-1).loc)
	blk.Depth = d - 1
	blk.Type = p.qualifiers()
	ph := ast.New(ast.KindPlaceholder, blk.Loc)
	ph.Depth = d - 1
	blk.SetRet(ph)

	sub, err := p.declarator(d)
	if err != nil {
		return nil, err
	}
	return ast.PatchPlaceholder(blk, sub), nil
}

// isPtrToMember reports whether the upcoming tokens are a C::* declarator
// prefix.
func (p *gparser) isPtrToMember() bool {
	i := 0
	for {
		if p.at(i).kind != tokIdent {
			return false
		}
		i++
		if p.at(i).kind != tokPunct || p.at(i).text != "::" {
			return false
		}
		i++
		if t := p.at(i); t.kind == tokPunct && t.text == "*" {
			return true
		}
	}
}

// scopedNameUntilPtr consumes "C::D::" up to and including the "*" of a
// pointer-to-member declarator, returning the class name.
func (p *gparser) scopedNameUntilPtr() ast.ScopedName {
	var name ast.ScopedName
	for {
		t := p.next() // identifier
		name = append(name, ast.Scope{Type: types.Class, Name: t.text})
		p.next() // ::
		if t := p.peek(); t.kind == tokPunct && t.text == "*" {
			p.next()
			return name
		}
	}
}

// qualifiers consumes cv-qualifiers following a pointer operator.
func (p *gparser) qualifiers() types.ID {
	var id types.ID
	for {
		t := p.peek()
		if t.kind != tokIdent {
			return id
		}
		bits, ok := keywordBits[t.text]
		if !ok || bits&types.MaskQual == types.None {
			return id
		}
		p.next()
		id |= bits
	}
}

// direct parses a direct declarator: an identifier or parenthesized
// declarator followed by array and parameter-list postfixes.
func (p *gparser) direct(d int) (*ast.Node, error) {
	var n *ast.Node

	switch t := p.peek(); {
	case t.kind == tokPunct && t.text == "(" && p.nestedDeclaratorAhead():
		p.next()
		inner, err := p.declarator(d + 1)
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		n = inner

	case t.kind == tokIdent:
		name := p.scopedName()
		ph := ast.New(ast.KindPlaceholder, t.loc)
		ph.Name = name
		ph.Depth = d
		n = ph

	default:
		// Abstract declarator: no name.
		ph := ast.New(ast.KindPlaceholder, t.loc)
		ph.Depth = d
		n = ph
	}

	for {
		switch t := p.peek(); {
		case t.kind == tokPunct && t.text == "[":
			p.next()
			arr, err := p.arrayNode(d, t.loc)
			if err != nil {
				return nil, err
			}
			n = ast.AddArray(n, arr)

		case t.kind == tokPunct && t.text == "(":
			p.next()
			params, err := p.params()
			if err != nil {
				return nil, err
			}

			// A block declarator owns its own parameter list.
			if ph := ast.FindKind(n, ast.VisitDown, ast.KindPlaceholder); ph != nil &&
				ph.Parent != nil && ph.Parent.Kind == ast.KindAppleBlock &&
				ph.Parent.Params == nil {
				ph.Parent.Params = params
				continue
			}

			fn := ast.New(ast.KindFunction, t.loc)
			fn.Depth = d
			fn.Params = params
			fn.Type |= p.pendingMSC
			p.pendingMSC = types.None

			var ret *ast.Node
			if p.acceptPunct("->") {
				spec, _, err := p.specifier()
				if err != nil {
					return nil, err
				}
				sub, err := p.declarator(1)
				if err != nil {
					return nil, err
				}
				ret = ast.PatchPlaceholder(spec, sub)
			}
			n = ast.AddFunction(n, ret, fn)

		default:
			return n, nil
		}
	}
}

// nestedDeclaratorAhead disambiguates "(" beginning a nested declarator
// from "(" beginning a parameter list.
func (p *gparser) nestedDeclaratorAhead() bool {
	t := p.at(1)
	switch t.kind {
	case tokPunct:
		switch t.text {
		case "*", "^", "(", "&", "&&":
			return true
		}
		return false
	case tokIdent:
		if bits, ok := keywordBits[t.text]; ok {
			// A calling convention starts a nested declarator.
			return bits&types.AnyMSCCall != types.None
		}
		if _, ok := ecsuKeywords[t.text]; ok {
			return false
		}
		if t.text == "auto" || t.text == "alignas" || t.text == "_Alignas" {
			return false
		}
		// A known typedef name starts a parameter list; anything else is
		// a declarator name.
		return p.env.Typedefs.LookupString(t.text) == nil
	}
	return false
}

func (p *gparser) arrayNode(d int, loc types.Loc) (*ast.Node, error) {
	arr := ast.New(ast.KindArray, loc)
	arr.Depth = d

	// C99 qualified array parameters: [static const 10], [const *].
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

	switch t := p.peek(); {
	case t.kind == tokPunct && t.text == "]":
	case t.kind == tokPunct && t.text == "*":
		p.next()
		arr.Size = ast.SizeVariable
	case t.kind == tokNumber:
		n, err := p.number("array size")
		if err != nil {
			return nil, err
		}
		arr.Size = n
	default:
		return nil, fmt.Errorf("expected array size but got %q", t.text)
	}
	return arr, p.expectPunct("]")
}

// params parses a parenthesized parameter list through the closing paren.
func (p *gparser) params() ([]*ast.Node, error) {
	params := []*ast.Node{}
	if p.acceptPunct(")") {
		return params, nil
	}
	for {
		param, err := p.paramDecl()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if p.acceptPunct(",") {
			continue
		}
		return params, p.expectPunct(")")
	}
}

func (p *gparser) paramDecl() (*ast.Node, error) {
	if t := p.peek(); t.kind == tokPunct && t.text == "..." {
		p.next()
		return ast.New(ast.KindVariadic, t.loc), nil
	}

	spec, _, err := p.specifier()
	if err != nil {
		return nil, err
	}

	if p.specEmpty(spec) {
		// A bare identifier is a K&R untyped parameter.
		if t := p.peek(); t.kind == tokIdent {
			if next := p.at(1); next.kind == tokPunct && (next.text == "," || next.text == ")") {
				p.next()
				n := ast.New(ast.KindName, t.loc)
				n.Name = ast.NewName(t.text)
				return n, nil
			}
			return nil, &UnknownNameError{Name: t.text, Loc: t.loc}
		}
	}

	decl, err := p.declarator(1)
	if err != nil {
		return nil, err
	}
	return ast.PatchPlaceholder(spec, decl), nil
}

// trailingFuncQuals applies the qualifiers after a function's parameter
// list to the function node.
func (p *gparser) trailingFuncQuals(fn *ast.Node) error {
	for {
		t := p.peek()
		switch {
		case t.kind == tokIdent:
			switch t.text {
			case "const", "volatile", "restrict", "final", "override":
				p.next()
				fn.Type |= keywordOrEnglish(t.text)
				continue
			case "noexcept":
				p.next()
				fn.Type |= types.Noexcept
				continue
			case "throw":
				p.next()
				if err := p.expectPunct("("); err != nil {
					return err
				}
				if err := p.expectPunct(")"); err != nil {
					return err
				}
				fn.Type |= types.Throw
				continue
			}
		case t.kind == tokPunct && t.text == "&":
			p.next()
			fn.Type |= types.RefQual
			continue
		case t.kind == tokPunct && t.text == "&&":
			p.next()
			fn.Type |= types.RvalueRefQual
			continue
		case t.kind == tokPunct && t.text == "=":
			switch next := p.at(1); {
			case next.kind == tokNumber && next.text == "0":
				p.next()
				p.next()
				fn.Type |= types.PureVirtual
				continue
			case next.kind == tokIdent && next.text == "default":
				p.next()
				p.next()
				fn.Type |= types.Default
				continue
			case next.kind == tokIdent && next.text == "delete":
				p.next()
				p.next()
				fn.Type |= types.Delete
				continue
			}
		}
		return nil
	}
}

func keywordOrEnglish(word string) types.ID {
	if bits, ok := keywordBits[word]; ok {
		return bits
	}
	return englishBits[word]
}

// scopedName reads identifier ("::" identifier)* without interpreting it.
func (p *gparser) scopedName() ast.ScopedName {
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

func (p *gparser) number(what string) (int, error) {
	t := p.next()
	if t.kind != tokNumber {
		return 0, fmt.Errorf("expected %s but got %q", what, t.text)
	}
	n, err := strconv.Atoi(t.text)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", what, t.text)
	}
	return n, nil
}
