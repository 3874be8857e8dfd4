package ast

import (
	"lintel/internal/source"
)

// NodeKind tags a node. Names follow the ESTree node types they model.
type NodeKind uint8

const (
	KindInvalid NodeKind = iota // заглушка на месте нераспознанной конструкции
	KindProgram

	// Statements
	KindVarDecl
	KindDeclarator
	KindFuncDecl
	KindClassDecl
	KindExprStmt
	KindBlock
	KindEmpty
	KindIf
	KindFor
	KindForIn
	KindForOf
	KindWhile
	KindDoWhile
	KindReturn
	KindBreak
	KindContinue
	KindThrow
	KindTry
	KindCatch
	KindSwitch
	KindCase
	KindLabeled
	KindDebugger
	KindWith
	KindImport
	KindImportDefault
	KindImportNamespace
	KindImportSpec
	KindExportNamed
	KindExportDefault
	KindExportAll
	KindExportSpec

	// Expressions
	KindIdent
	KindLiteral
	KindTemplate
	KindTaggedTemplate
	KindArray
	KindObject
	KindProperty
	KindFuncExpr
	KindArrow
	KindClassExpr
	KindMethod
	KindField
	KindUnary
	KindUpdate
	KindAwait
	KindYield
	KindSpread
	KindBinary
	KindLogical
	KindAssign
	KindConditional
	KindCall
	KindNew
	KindMember
	KindSequence
	KindThis
	KindSuper
	KindMetaProperty
	KindImportCall

	// Patterns
	KindObjectPattern
	KindArrayPattern
	KindAssignPattern
	KindRest

	kindCount
)

var kindNames = [...]string{
	KindInvalid:         "Invalid",
	KindProgram:         "Program",
	KindVarDecl:         "VariableDeclaration",
	KindDeclarator:      "VariableDeclarator",
	KindFuncDecl:        "FunctionDeclaration",
	KindClassDecl:       "ClassDeclaration",
	KindExprStmt:        "ExpressionStatement",
	KindBlock:           "BlockStatement",
	KindEmpty:           "EmptyStatement",
	KindIf:              "IfStatement",
	KindFor:             "ForStatement",
	KindForIn:           "ForInStatement",
	KindForOf:           "ForOfStatement",
	KindWhile:           "WhileStatement",
	KindDoWhile:         "DoWhileStatement",
	KindReturn:          "ReturnStatement",
	KindBreak:           "BreakStatement",
	KindContinue:        "ContinueStatement",
	KindThrow:           "ThrowStatement",
	KindTry:             "TryStatement",
	KindCatch:           "CatchClause",
	KindSwitch:          "SwitchStatement",
	KindCase:            "SwitchCase",
	KindLabeled:         "LabeledStatement",
	KindDebugger:        "DebuggerStatement",
	KindWith:            "WithStatement",
	KindImport:          "ImportDeclaration",
	KindImportDefault:   "ImportDefaultSpecifier",
	KindImportNamespace: "ImportNamespaceSpecifier",
	KindImportSpec:      "ImportSpecifier",
	KindExportNamed:     "ExportNamedDeclaration",
	KindExportDefault:   "ExportDefaultDeclaration",
	KindExportAll:       "ExportAllDeclaration",
	KindExportSpec:      "ExportSpecifier",
	KindIdent:           "Identifier",
	KindLiteral:         "Literal",
	KindTemplate:        "TemplateLiteral",
	KindTaggedTemplate:  "TaggedTemplateExpression",
	KindArray:           "ArrayExpression",
	KindObject:          "ObjectExpression",
	KindProperty:        "Property",
	KindFuncExpr:        "FunctionExpression",
	KindArrow:           "ArrowFunctionExpression",
	KindClassExpr:       "ClassExpression",
	KindMethod:          "MethodDefinition",
	KindField:           "PropertyDefinition",
	KindUnary:           "UnaryExpression",
	KindUpdate:          "UpdateExpression",
	KindAwait:           "AwaitExpression",
	KindYield:           "YieldExpression",
	KindSpread:          "SpreadElement",
	KindBinary:          "BinaryExpression",
	KindLogical:         "LogicalExpression",
	KindAssign:          "AssignmentExpression",
	KindConditional:     "ConditionalExpression",
	KindCall:            "CallExpression",
	KindNew:             "NewExpression",
	KindMember:          "MemberExpression",
	KindSequence:        "SequenceExpression",
	KindThis:            "ThisExpression",
	KindSuper:           "Super",
	KindMetaProperty:    "MetaProperty",
	KindImportCall:      "ImportExpression",
	KindObjectPattern:   "ObjectPattern",
	KindArrayPattern:    "ArrayPattern",
	KindAssignPattern:   "AssignmentPattern",
	KindRest:            "RestElement",
}

func (k NodeKind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "NodeKind(?)"
}

// IsFunction reports whether the kind introduces a function body.
func (k NodeKind) IsFunction() bool {
	return k == KindFuncDecl || k == KindFuncExpr || k == KindArrow
}

// IsLoop reports whether the kind is one of the loop statements.
func (k NodeKind) IsLoop() bool {
	switch k {
	case KindFor, KindForIn, KindForOf, KindWhile, KindDoWhile:
		return true
	}
	return false
}

// NodeFlags records parser facts that rules consume.
type NodeFlags uint8

const (
	// FlagHasSemicolon: the statement ended with an explicit ';'.
	FlagHasSemicolon NodeFlags = 1 << iota
	// FlagNeedsSemicolon: the statement kind is terminated by ';' (ASI applies).
	FlagNeedsSemicolon
	// FlagHasError: a syntax error was reported while parsing this statement.
	FlagHasError
	// FlagDirective: expression statement of the directive prologue ("use strict").
	FlagDirective
	// FlagOptional: optional call or member (a?.b, f?.()).
	FlagOptional
	// FlagComputed: computed member or property key (a[b], {[k]: v}).
	FlagComputed
	// FlagExported: declaration is the direct child of an export.
	FlagExported
	// FlagParenthesized: expression was wrapped in parentheses.
	FlagParenthesized
)

// Node is one AST vertex. Children live in the payload; Parent is a plain
// back-index for upward lookup and never owns anything.
type Node struct {
	Kind    NodeKind
	Flags   NodeFlags
	Span    source.Span
	Parent  NodeID
	Payload PayloadID
}

// Has reports whether f is set.
func (n *Node) Has(f NodeFlags) bool { return n.Flags&f != 0 }
