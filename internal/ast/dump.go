package ast

// Dump converts a tree into plain maps and slices suitable for JSON or YAML
// encoding. Every node carries a "kind" key.
func Dump(node Node) interface{} {
	if node == nil {
		return nil
	}
	return node.Accept(&dumper{})
}

type dumper struct{}

func (d *dumper) span(n Node) string { return n.GetSpan().String() }

func (d *dumper) VisitProgram(node *Program) interface{} {
	fns := make([]interface{}, 0, len(node.Functions))
	for _, fn := range node.Functions {
		fns = append(fns, fn.Accept(d))
	}
	return map[string]interface{}{"kind": "program", "functions": fns}
}

func (d *dumper) VisitFunction(node *Function) interface{} {
	body := make([]interface{}, 0, len(node.Body))
	for _, stmt := range node.Body {
		body = append(body, stmt.Accept(d))
	}
	params := node.Params
	if params == nil {
		params = []string{}
	}
	return map[string]interface{}{
		"kind":         "function",
		"name":         node.Name,
		"params":       params,
		"partial_eval": node.PartialEval,
		"span":         d.span(node),
		"body":         body,
	}
}

func (d *dumper) VisitLetStatement(node *LetStatement) interface{} {
	return map[string]interface{}{"kind": "let", "name": node.Name, "init": node.Init.Accept(d), "span": d.span(node)}
}

func (d *dumper) VisitQbitDeclaration(node *QbitDeclaration) interface{} {
	return map[string]interface{}{"kind": "qbit", "name": node.Name, "span": d.span(node)}
}

func (d *dumper) VisitQuantumOperation(node *QuantumOperation) interface{} {
	return map[string]interface{}{"kind": "qop", "gate": node.Gate, "target": node.Target, "span": d.span(node)}
}

func (d *dumper) VisitMeasureStatement(node *MeasureStatement) interface{} {
	m := map[string]interface{}{"kind": "measure", "target": node.Target, "span": d.span(node)}
	if node.Classical != "" {
		m["classical"] = node.Classical
	}
	return m
}

func (d *dumper) VisitReturnStatement(node *ReturnStatement) interface{} {
	m := map[string]interface{}{"kind": "return", "span": d.span(node)}
	if node.Value != nil {
		m["value"] = node.Value.Accept(d)
	}
	return m
}

func (d *dumper) VisitExpressionStatement(node *ExpressionStatement) interface{} {
	return map[string]interface{}{"kind": "expr", "expr": node.Expression.Accept(d), "span": d.span(node)}
}

func (d *dumper) VisitNumberLiteral(node *NumberLiteral) interface{} {
	return map[string]interface{}{"kind": "number", "raw": node.Raw, "value": node.Value()}
}

func (d *dumper) VisitIdentifier(node *Identifier) interface{} {
	return map[string]interface{}{"kind": "var", "name": node.Name}
}

func (d *dumper) VisitCallExpression(node *CallExpression) interface{} {
	args := make([]interface{}, 0, len(node.Args))
	for _, arg := range node.Args {
		args = append(args, arg.Accept(d))
	}
	return map[string]interface{}{"kind": "call", "callee": node.Callee, "args": args}
}

func (d *dumper) VisitBinaryExpression(node *BinaryExpression) interface{} {
	return map[string]interface{}{
		"kind":  "binary",
		"op":    node.Operator.String(),
		"left":  node.Left.Accept(d),
		"right": node.Right.Accept(d),
	}
}

// Stats summarizes a program
type Stats struct {
	Functions  int `json:"functions" yaml:"functions"`
	Statements int `json:"statements" yaml:"statements"`
	Qubits     int `json:"qubits" yaml:"qubits"`
	QuantumOps int `json:"quantum_ops" yaml:"quantum_ops"`
	Measures   int `json:"measures" yaml:"measures"`
	Calls      int `json:"calls" yaml:"calls"`
}

// Collect walks node and counts what it finds
func Collect(node Node) Stats {
	c := &statsCollector{}
	NewWalkingVisitor(c).Walk(node)
	return c.stats
}

type statsCollector struct {
	BaseVisitor
	stats Stats
}

func (c *statsCollector) VisitFunction(node *Function) interface{} {
	c.stats.Functions++
	c.stats.Statements += len(node.Body)
	return nil
}

func (c *statsCollector) VisitQbitDeclaration(node *QbitDeclaration) interface{} {
	c.stats.Qubits++
	return nil
}

func (c *statsCollector) VisitQuantumOperation(node *QuantumOperation) interface{} {
	c.stats.QuantumOps++
	return nil
}

func (c *statsCollector) VisitMeasureStatement(node *MeasureStatement) interface{} {
	c.stats.Measures++
	return nil
}

func (c *statsCollector) VisitCallExpression(node *CallExpression) interface{} {
	c.stats.Calls++
	return nil
}
