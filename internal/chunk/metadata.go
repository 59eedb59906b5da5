package chunk

import "strings"

// callNodeTypes maps a language to the tree-sitter node type for a call
// expression, and the child node type(s) that hold the callee name.
var callNodeTypeByLanguage = map[string]string{
	"go":         "call_expression",
	"typescript": "call_expression",
	"tsx":        "call_expression",
	"javascript": "call_expression",
	"jsx":        "call_expression",
	"python":     "call",
	"rust":       "call_expression",
	"java":       "method_invocation",
}

// importNodeTypeByLanguage maps a language to its file-level import statement
// node type(s).
var importNodeTypesByLanguage = map[string][]string{
	"go":         {"import_declaration"},
	"typescript": {"import_statement"},
	"tsx":        {"import_statement"},
	"javascript": {"import_statement"},
	"jsx":        {"import_statement"},
	"python":     {"import_statement", "import_from_statement"},
	"rust":       {"use_declaration"},
	"java":       {"import_declaration"},
}

// builtinsByLanguage is the per-language set of built-in/stdlib callee names
// that Graph Builder must filter before turning a call into an edge.
var builtinsByLanguage = map[string]map[string]bool{
	"go": setOf("len", "cap", "make", "new", "append", "copy", "delete",
		"panic", "recover", "print", "println", "close", "complex", "real", "imag"),
	"python": setOf("print", "len", "range", "isinstance", "str", "int",
		"float", "bool", "list", "dict", "set", "tuple", "open", "super",
		"type", "enumerate", "zip", "map", "filter", "sorted", "getattr",
		"setattr", "hasattr", "repr", "iter", "next"),
	"javascript": setOf("console", "parseInt", "parseFloat", "isNaN",
		"isFinite", "require", "Array", "Object", "String", "Number",
		"Boolean", "JSON", "Math", "Promise", "Symbol"),
	"typescript": setOf("console", "parseInt", "parseFloat", "isNaN",
		"isFinite", "require", "Array", "Object", "String", "Number",
		"Boolean", "JSON", "Math", "Promise", "Symbol"),
	"rust": setOf("println", "print", "vec", "format", "panic", "assert",
		"assert_eq", "assert_ne", "unreachable", "todo", "matches"),
	"java": setOf("println", "print", "valueOf", "equals", "hashCode",
		"toString", "getClass"),
}

func setOf(values ...string) map[string]bool {
	s := make(map[string]bool, len(values))
	for _, v := range values {
		s[v] = true
	}
	return s
}

// Builtins returns the set of built-in callee names for a language, or an
// empty set if the language has no registered built-ins.
func Builtins(language string) map[string]bool {
	if s, ok := builtinsByLanguage[language]; ok {
		return s
	}
	return map[string]bool{}
}

// ExtractCalls walks a symbol's subtree and returns the syntactic callee
// names of every call expression it contains (the last identifier of the
// call, not a resolved symbol - resolution happens in the Graph Builder).
// Returns nil, not an empty slice, when the language has no known call-node
// shape - "not extractable" is distinct from "zero calls".
func ExtractCalls(n *Node, source []byte, language string) []string {
	callType, ok := callNodeTypeByLanguage[language]
	if !ok {
		return nil
	}

	var calls []string
	seen := map[string]bool{}
	n.Walk(func(node *Node) bool {
		if node.Type != callType {
			return true
		}
		if name := calleeName(node, source, language); name != "" && !seen[name] {
			seen[name] = true
			calls = append(calls, name)
		}
		return true
	})
	return calls
}

// calleeName extracts the last identifier of a call expression's callee.
func calleeName(callNode *Node, source []byte, language string) string {
	if len(callNode.Children) == 0 {
		return ""
	}
	callee := callNode.Children[0]

	switch callee.Type {
	case "identifier", "field_identifier":
		return callee.GetContent(source)
	case "selector_expression", "attribute", "member_expression", "field_access", "scoped_identifier":
		// Keep the rightmost identifier - "pkg.Foo()" / "obj.method()" -> "Foo"/"method".
		if len(callee.Children) > 0 {
			last := callee.Children[len(callee.Children)-1]
			return last.GetContent(source)
		}
	}

	// Generic fallback: deepest-rightmost identifier descendant.
	var rightmost string
	var walk func(*Node)
	walk = func(node *Node) {
		if node.Type == "identifier" || node.Type == "field_identifier" || node.Type == "type_identifier" {
			rightmost = node.GetContent(source)
		}
		for _, c := range node.Children {
			walk(c)
		}
	}
	walk(callee)
	return rightmost
}

// ExtractFileImports returns the raw import/use statement text for a whole
// parsed file, one entry per import declaration found at any depth. Returns
// nil when the language has no registered import-statement shape.
func ExtractFileImports(tree *Tree, source []byte) []string {
	if tree == nil || tree.Root == nil {
		return nil
	}
	importTypes, ok := importNodeTypesByLanguage[tree.Language]
	if !ok {
		return nil
	}
	wanted := setOf(importTypes...)

	var imports []string
	tree.Root.Walk(func(n *Node) bool {
		if wanted[n.Type] {
			imports = append(imports, strings.TrimSpace(n.GetContent(source)))
		}
		return true
	})
	return imports
}

// ExtractParameters returns the ordered parameter names of a function-like
// symbol node. Returns nil for node kinds with no parameter list (e.g. a
// class/struct/interface).
func ExtractParameters(n *Node, source []byte, language string) []string {
	paramsNode := findChildByType(n, "parameters", "parameter_list", "formal_parameters")
	if paramsNode == nil {
		return nil
	}

	var names []string
	for _, child := range paramsNode.Children {
		switch child.Type {
		case "parameter_declaration", "required_parameter", "optional_parameter",
			"formal_parameter", "parameter":
			if id := firstChildOfType(child, "identifier"); id != nil {
				names = append(names, id.GetContent(source))
			}
		case "identifier":
			// Python's simplest positional parameters.
			names = append(names, child.GetContent(source))
		case "typed_parameter", "default_parameter":
			if id := firstChildOfType(child, "identifier"); id != nil {
				names = append(names, id.GetContent(source))
			}
		}
	}
	return names
}

// ExtractReturns returns the declared return-type text of a function-like
// symbol, or nil when the language/node has none (e.g. Python without a type
// hint).
func ExtractReturns(n *Node, source []byte, language string) *string {
	if t := findChildByType(n, "result"); t != nil {
		s := strings.TrimSpace(t.GetContent(source))
		return &s
	}
	if t := findChildByType(n, "type_annotation"); t != nil {
		s := strings.TrimSpace(strings.TrimPrefix(t.GetContent(source), ":"))
		return &s
	}
	return nil
}

// ExtractDecorators returns annotation/decorator text immediately preceding
// a symbol: Python `@decorator`, Java `@Annotation`, Rust `#[attr]`. This
// scans raw source lines rather than the AST, since Node carries no parent
// pointer to walk older siblings.
func ExtractDecorators(n *Node, source []byte, language string) []string {
	var prefix string
	switch language {
	case "python", "java":
		prefix = "@"
	case "rust":
		prefix = "#["
	default:
		return nil
	}

	lines := precedingLines(n, source)
	var decorators []string
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(line, prefix) {
			break
		}
		decorators = append([]string{line}, decorators...)
	}
	return decorators
}

// precedingLines returns the full-text lines immediately above n's start,
// stopping at the start of the file.
func precedingLines(n *Node, source []byte) []string {
	lineStart := int(n.StartByte)
	for lineStart > 0 && source[lineStart-1] != '\n' {
		lineStart--
	}
	if lineStart == 0 {
		return nil
	}

	var lines []string
	end := lineStart - 1 // byte before the newline that starts n's line
	for end > 0 {
		start := end
		for start > 0 && source[start-1] != '\n' {
			start--
		}
		lines = append([]string{string(source[start:end])}, lines...)
		if start == 0 {
			break
		}
		end = start - 1
	}
	return lines
}

// ComputeComplexity returns a cyclomatic complexity estimate and line count
// for a symbol's subtree: 1 plus one per decision point (branch/loop/case/
// logical-and/logical-or), the standard McCabe approximation.
func ComputeComplexity(n *Node) Complexity {
	decisionTypes := setOf(
		"if_statement", "for_statement", "while_statement", "case_clause",
		"switch_case", "catch_clause", "conditional_expression",
		"binary_expression", // narrowed below to && / ||
		"for_in_statement", "for_range_clause", "match_arm", "elif_clause",
		"else_clause",
	)

	count := 1
	n.Walk(func(node *Node) bool {
		if decisionTypes[node.Type] {
			count++
		}
		return true
	})

	loc := int(n.EndPoint.Row) - int(n.StartPoint.Row) + 1
	if loc < 0 {
		loc = 0
	}

	return Complexity{Cyclomatic: count, LinesOfCode: loc}
}

func findChildByType(n *Node, types ...string) *Node {
	wanted := setOf(types...)
	for _, c := range n.Children {
		if wanted[c.Type] {
			return c
		}
	}
	return nil
}

func firstChildOfType(n *Node, t string) *Node {
	for _, c := range n.Children {
		if c.Type == t {
			return c
		}
		if found := firstChildOfType(c, t); found != nil {
			return found
		}
	}
	return nil
}
