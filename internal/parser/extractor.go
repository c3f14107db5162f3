package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/ludo-technologies/larascan/domain"
)

// extractor walks a tree-sitter PHP tree and builds class descriptors
type extractor struct {
	filename string
	source   []byte
	names    *nameResolver
	result   *FileResult
}

func newExtractor(filename string, source []byte) *extractor {
	return &extractor{
		filename: filename,
		source:   source,
		names:    newNameResolver(),
		result:   &FileResult{Path: filename},
	}
}

func (e *extractor) extract(root *sitter.Node) *FileResult {
	e.extractStatements(root)

	// imports are file scoped; every class in the file sees all of them
	for _, class := range e.result.Classes {
		class.Imports = e.result.Imports
	}
	return e.result
}

// extractStatements processes the top-level statements of a program or a braced namespace body
func (e *extractor) extractStatements(node *sitter.Node) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child == nil {
			continue
		}

		switch child.Type() {
		case "namespace_definition":
			ns := ""
			if nameNode := child.ChildByFieldName("name"); nameNode != nil {
				ns = e.content(nameNode)
			} else if nameNode := e.firstChildOfType(child, "namespace_name"); nameNode != nil {
				ns = e.content(nameNode)
			}
			e.names.setNamespace(ns)
			e.result.Namespace = e.names.namespace

			if body := child.ChildByFieldName("body"); body != nil {
				e.extractStatements(body)
			} else if body := e.firstChildOfType(child, "compound_statement"); body != nil {
				e.extractStatements(body)
			}

		case "namespace_use_declaration":
			for _, imp := range e.extractImports(child) {
				e.names.addImport(imp.Name, imp.Alias)
				e.result.Imports = append(e.result.Imports, imp)
			}

		case "class_declaration":
			e.addClass(child, domain.ClassKindClass)
		case "interface_declaration":
			e.addClass(child, domain.ClassKindInterface)
		case "trait_declaration":
			e.addClass(child, domain.ClassKindTrait)
		case "enum_declaration":
			e.addClass(child, domain.ClassKindEnum)
		}
	}
}

// extractImports handles plain, aliased and grouped use statements
func (e *extractor) extractImports(node *sitter.Node) []domain.ImportDescriptor {
	var imports []domain.ImportDescriptor
	prefix := ""

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "namespace_name":
			prefix = e.content(child)
		case "namespace_use_clause":
			if imp, ok := e.importClause(child, prefix); ok {
				imports = append(imports, imp)
			}
		case "namespace_use_group":
			for j := 0; j < int(child.NamedChildCount()); j++ {
				if imp, ok := e.importClause(child.NamedChild(j), prefix); ok {
					imports = append(imports, imp)
				}
			}
		}
	}
	return imports
}

func (e *extractor) importClause(node *sitter.Node, prefix string) (domain.ImportDescriptor, bool) {
	name, alias := "", ""
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "qualified_name", "name", "namespace_name":
			if name == "" {
				name = e.content(child)
			} else if alias == "" {
				alias = e.content(child)
			}
		case "namespace_aliasing_clause":
			if child.NamedChildCount() > 0 {
				alias = e.content(child.NamedChild(int(child.NamedChildCount()) - 1))
			}
		}
	}
	if name == "" {
		return domain.ImportDescriptor{}, false
	}

	name = strings.TrimPrefix(name, `\`)
	if prefix != "" {
		name = strings.Trim(prefix, `\`) + `\` + name
	}
	return domain.ImportDescriptor{
		Name:  name,
		Alias: alias,
		Span:  e.span(node),
	}, true
}

func (e *extractor) addClass(node *sitter.Node, kind domain.ClassKind) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		nameNode = e.firstChildOfType(node, "name")
	}
	if nameNode == nil {
		return
	}
	shortName := e.content(nameNode)

	class := &domain.ClassDescriptor{
		Name:      e.names.qualify(shortName),
		ShortName: shortName,
		Namespace: e.names.namespace,
		File:      e.filename,
		Kind:      kind,
		Abstract:  kind == domain.ClassKindClass && e.hasModifier(node, "abstract"),
		Span:      e.span(node),
		Source:    string(e.source),
	}

	if base := e.firstChildOfType(node, "base_clause"); base != nil {
		parents := e.typeNames(base)
		if kind == domain.ClassKindInterface {
			class.Interfaces = append(class.Interfaces, parents...)
		} else if len(parents) > 0 {
			class.Parent = parents[0]
		}
	}
	if impl := e.firstChildOfType(node, "class_interface_clause"); impl != nil {
		class.Interfaces = append(class.Interfaces, e.typeNames(impl)...)
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		body = e.firstChildOfType(node, "declaration_list")
	}
	if body != nil {
		e.extractBody(body, class)
	}

	e.extractCalls(node, class)
	e.result.Classes = append(e.result.Classes, class)
}

func (e *extractor) extractBody(body *sitter.Node, class *domain.ClassDescriptor) {
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		switch child.Type() {
		case "method_declaration":
			if m, ok := e.method(child, class); ok {
				class.Methods = append(class.Methods, m)
			}
		case "property_declaration":
			class.Properties = append(class.Properties, e.properties(child, class)...)
		case "use_declaration":
			class.Traits = append(class.Traits, e.typeNames(child)...)
		}
	}
}

func (e *extractor) method(node *sitter.Node, class *domain.ClassDescriptor) (domain.MethodDescriptor, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		nameNode = e.firstChildOfType(node, "name")
	}
	if nameNode == nil {
		return domain.MethodDescriptor{}, false
	}

	m := domain.MethodDescriptor{
		Name:           e.content(nameNode),
		Visibility:     e.visibility(node),
		Static:         e.hasModifier(node, "static"),
		Abstract:       e.hasModifier(node, "abstract"),
		DeclaringClass: class.Name,
		File:           e.filename,
		Span:           e.span(node),
	}

	params := node.ChildByFieldName("parameters")
	if params == nil {
		params = e.firstChildOfType(node, "formal_parameters")
	}
	if params != nil {
		m.Parameters = e.parameters(params, class)
	}

	if ret := node.ChildByFieldName("return_type"); ret != nil {
		m.ReturnType, _ = e.resolveType(e.content(ret), class)
	}
	return m, true
}

func (e *extractor) parameters(node *sitter.Node, class *domain.ClassDescriptor) []domain.ParameterDescriptor {
	var params []domain.ParameterDescriptor
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "simple_parameter", "variadic_parameter", "property_promotion_parameter":
		default:
			continue
		}

		p := domain.ParameterDescriptor{Variadic: child.Type() == "variadic_parameter"}
		nameNode := child.ChildByFieldName("name")
		if nameNode == nil {
			nameNode = e.firstChildOfType(child, "variable_name")
		}
		if nameNode != nil {
			p.Name = strings.TrimPrefix(e.content(nameNode), "$")
		}
		if typeNode := child.ChildByFieldName("type"); typeNode != nil {
			p.Type, p.Nullable = e.resolveType(e.content(typeNode), class)
		}
		params = append(params, p)
	}
	return params
}

// resolveType resolves a declared type to its first non-null member
func (e *extractor) resolveType(text string, class *domain.ClassDescriptor) (string, bool) {
	text = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), ":"))
	nullable := strings.HasPrefix(text, "?")
	text = strings.TrimPrefix(text, "?")

	resolved := ""
	for _, part := range strings.FieldsFunc(text, func(r rune) bool { return r == '|' || r == '&' }) {
		part = strings.Trim(strings.TrimSpace(part), "()")
		if strings.EqualFold(part, "null") {
			nullable = true
			continue
		}
		if resolved == "" && part != "" {
			resolved = e.names.resolveClass(part)
		}
	}
	if resolved == "self" || resolved == "static" {
		resolved = class.Name
	}
	return resolved, nullable
}

func (e *extractor) properties(node *sitter.Node, class *domain.ClassDescriptor) []domain.PropertyDescriptor {
	visibility := e.visibility(node)
	static := e.hasModifier(node, "static")

	var props []domain.PropertyDescriptor
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() != "property_element" {
			continue
		}
		varNode := e.firstChildOfType(child, "variable_name")
		if varNode == nil {
			continue
		}
		props = append(props, domain.PropertyDescriptor{
			Name:           strings.TrimPrefix(e.content(varNode), "$"),
			Visibility:     visibility,
			Static:         static,
			DeclaringClass: class.Name,
			Span:           e.span(node),
		})
	}
	return props
}

// extractCalls records global function calls and static calls anywhere in the class
func (e *extractor) extractCalls(node *sitter.Node, class *domain.ClassDescriptor) {
	switch node.Type() {
	case "function_call_expression":
		fn := node.ChildByFieldName("function")
		if fn == nil && node.NamedChildCount() > 0 {
			fn = node.NamedChild(0)
		}
		if fn != nil && (fn.Type() == "name" || fn.Type() == "qualified_name") {
			class.Calls = append(class.Calls, domain.CallDescriptor{
				Function: resolveFunction(e.content(fn)),
				Span:     e.span(node),
			})
		}

	case "scoped_call_expression":
		scope := node.ChildByFieldName("scope")
		name := node.ChildByFieldName("name")
		if scope != nil && name != nil {
			target := ""
			switch scope.Type() {
			case "name", "qualified_name":
				target = e.names.resolveClass(e.content(scope))
			case "relative_scope":
				target = strings.ToLower(e.content(scope))
			}
			if target != "" {
				class.StaticCalls = append(class.StaticCalls, domain.CallDescriptor{
					Class:    target,
					Function: e.content(name),
					Span:     e.span(node),
				})
			}
		}
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		e.extractCalls(node.NamedChild(i), class)
	}
}

// typeNames returns the resolved class names listed directly under node
func (e *extractor) typeNames(node *sitter.Node) []string {
	var names []string
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == "name" || child.Type() == "qualified_name" {
			names = append(names, e.names.resolveClass(e.content(child)))
		}
	}
	return names
}

func (e *extractor) visibility(node *sitter.Node) domain.Visibility {
	if mod := e.firstChildOfType(node, "visibility_modifier"); mod != nil {
		switch strings.ToLower(strings.TrimSpace(e.content(mod))) {
		case "protected":
			return domain.VisibilityProtected
		case "private":
			return domain.VisibilityPrivate
		}
	}
	// PHP members without a modifier are public
	return domain.VisibilityPublic
}

func (e *extractor) hasModifier(node *sitter.Node, modifier string) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		if child.Type() == modifier+"_modifier" || child.Type() == modifier {
			return true
		}
	}
	return false
}

func (e *extractor) firstChildOfType(node *sitter.Node, nodeType string) *sitter.Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child != nil && child.Type() == nodeType {
			return child
		}
	}
	return nil
}

func (e *extractor) content(node *sitter.Node) string {
	return strings.TrimSpace(node.Content(e.source))
}

func (e *extractor) span(node *sitter.Node) domain.SourceSpan {
	return domain.SourceSpan{
		StartLine: int(node.StartPoint().Row) + 1,
		EndLine:   int(node.EndPoint().Row) + 1,
		StartByte: int(node.StartByte()),
		EndByte:   int(node.EndByte()),
	}
}
