package ast

// Visitor dispatches on concrete node types
type Visitor interface {
	VisitProgram(node *Program) interface{}
	VisitFunction(node *Function) interface{}

	VisitLetStatement(node *LetStatement) interface{}
	VisitQbitDeclaration(node *QbitDeclaration) interface{}
	VisitQuantumOperation(node *QuantumOperation) interface{}
	VisitMeasureStatement(node *MeasureStatement) interface{}
	VisitReturnStatement(node *ReturnStatement) interface{}
	VisitExpressionStatement(node *ExpressionStatement) interface{}

	VisitNumberLiteral(node *NumberLiteral) interface{}
	VisitIdentifier(node *Identifier) interface{}
	VisitCallExpression(node *CallExpression) interface{}
	VisitBinaryExpression(node *BinaryExpression) interface{}
}

// BaseVisitor returns nil for every node. Embed it to override only the
// methods a visitor needs.
type BaseVisitor struct{}

func (v *BaseVisitor) VisitProgram(node *Program) interface{}                         { return nil }
func (v *BaseVisitor) VisitFunction(node *Function) interface{}                       { return nil }
func (v *BaseVisitor) VisitLetStatement(node *LetStatement) interface{}               { return nil }
func (v *BaseVisitor) VisitQbitDeclaration(node *QbitDeclaration) interface{}         { return nil }
func (v *BaseVisitor) VisitQuantumOperation(node *QuantumOperation) interface{}       { return nil }
func (v *BaseVisitor) VisitMeasureStatement(node *MeasureStatement) interface{}       { return nil }
func (v *BaseVisitor) VisitReturnStatement(node *ReturnStatement) interface{}         { return nil }
func (v *BaseVisitor) VisitExpressionStatement(node *ExpressionStatement) interface{} { return nil }
func (v *BaseVisitor) VisitNumberLiteral(node *NumberLiteral) interface{}             { return nil }
func (v *BaseVisitor) VisitIdentifier(node *Identifier) interface{}                   { return nil }
func (v *BaseVisitor) VisitCallExpression(node *CallExpression) interface{}           { return nil }
func (v *BaseVisitor) VisitBinaryExpression(node *BinaryExpression) interface{}       { return nil }

// WalkingVisitor traverses the whole tree in source order, calling the
// wrapped visitor on every node before its children.
type WalkingVisitor struct {
	visitor Visitor
}

// NewWalkingVisitor creates a new walking visitor that delegates to the provided visitor.
func NewWalkingVisitor(visitor Visitor) *WalkingVisitor {
	return &WalkingVisitor{visitor: visitor}
}

// Walk traverses the AST starting from the given node.
func (w *WalkingVisitor) Walk(node Node) interface{} {
	if node == nil {
		return nil
	}
	return node.Accept(w)
}

func (w *WalkingVisitor) VisitProgram(node *Program) interface{} {
	result := w.visitor.VisitProgram(node)
	for _, fn := range node.Functions {
		w.Walk(fn)
	}
	return result
}

func (w *WalkingVisitor) VisitFunction(node *Function) interface{} {
	result := w.visitor.VisitFunction(node)
	for _, stmt := range node.Body {
		w.Walk(stmt)
	}
	return result
}

func (w *WalkingVisitor) VisitLetStatement(node *LetStatement) interface{} {
	result := w.visitor.VisitLetStatement(node)
	w.Walk(node.Init)
	return result
}

func (w *WalkingVisitor) VisitQbitDeclaration(node *QbitDeclaration) interface{} {
	return w.visitor.VisitQbitDeclaration(node)
}

func (w *WalkingVisitor) VisitQuantumOperation(node *QuantumOperation) interface{} {
	return w.visitor.VisitQuantumOperation(node)
}

func (w *WalkingVisitor) VisitMeasureStatement(node *MeasureStatement) interface{} {
	return w.visitor.VisitMeasureStatement(node)
}

func (w *WalkingVisitor) VisitReturnStatement(node *ReturnStatement) interface{} {
	result := w.visitor.VisitReturnStatement(node)
	if node.Value != nil {
		w.Walk(node.Value)
	}
	return result
}

func (w *WalkingVisitor) VisitExpressionStatement(node *ExpressionStatement) interface{} {
	result := w.visitor.VisitExpressionStatement(node)
	w.Walk(node.Expression)
	return result
}

func (w *WalkingVisitor) VisitNumberLiteral(node *NumberLiteral) interface{} {
	return w.visitor.VisitNumberLiteral(node)
}

func (w *WalkingVisitor) VisitIdentifier(node *Identifier) interface{} {
	return w.visitor.VisitIdentifier(node)
}

func (w *WalkingVisitor) VisitCallExpression(node *CallExpression) interface{} {
	result := w.visitor.VisitCallExpression(node)
	for _, arg := range node.Args {
		w.Walk(arg)
	}
	return result
}

func (w *WalkingVisitor) VisitBinaryExpression(node *BinaryExpression) interface{} {
	result := w.visitor.VisitBinaryExpression(node)
	w.Walk(node.Left)
	w.Walk(node.Right)
	return result
}
