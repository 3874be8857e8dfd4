package ast

import (
	"lintel/internal/source"
	"lintel/internal/token"
)

// payloadClass selects which payload arena a node kind uses.
type payloadClass uint8

const (
	pcNone payloadClass = iota
	pcList
	pcIdent
	pcLiteral
	pcTemplate
	pcBinary
	pcUnary
	pcCall
	pcMember
	pcCond
	pcProperty
	pcFunction
	pcVarDecl
	pcDeclarator
	pcFor
	pcForIn
	pcWhile
	pcWrap
	pcSwitch
	pcCase
	pcTry
	pcCatch
	pcClass
	pcImport
	pcSpec
	pcExport
	pcJump
	pcLabeled
)

var payloadClassOf = [kindCount]payloadClass{
	KindProgram:         pcList,
	KindBlock:           pcList,
	KindArray:           pcList,
	KindObject:          pcList,
	KindSequence:        pcList,
	KindObjectPattern:   pcList,
	KindArrayPattern:    pcList,
	KindIdent:           pcIdent,
	KindMetaProperty:    pcIdent,
	KindLiteral:         pcLiteral,
	KindTemplate:        pcTemplate,
	KindTaggedTemplate:  pcTemplate,
	KindBinary:          pcBinary,
	KindLogical:         pcBinary,
	KindAssign:          pcBinary,
	KindAssignPattern:   pcBinary,
	KindUnary:           pcUnary,
	KindUpdate:          pcUnary,
	KindAwait:           pcUnary,
	KindYield:           pcUnary,
	KindSpread:          pcUnary,
	KindRest:            pcUnary,
	KindImportCall:      pcUnary,
	KindCall:            pcCall,
	KindNew:             pcCall,
	KindMember:          pcMember,
	KindIf:              pcCond,
	KindConditional:     pcCond,
	KindProperty:        pcProperty,
	KindMethod:          pcProperty,
	KindField:           pcProperty,
	KindFuncDecl:        pcFunction,
	KindFuncExpr:        pcFunction,
	KindArrow:           pcFunction,
	KindVarDecl:         pcVarDecl,
	KindDeclarator:      pcDeclarator,
	KindFor:             pcFor,
	KindForIn:           pcForIn,
	KindForOf:           pcForIn,
	KindWhile:           pcWhile,
	KindDoWhile:         pcWhile,
	KindWith:            pcWhile,
	KindExprStmt:        pcWrap,
	KindReturn:          pcWrap,
	KindThrow:           pcWrap,
	KindSwitch:          pcSwitch,
	KindCase:            pcCase,
	KindTry:             pcTry,
	KindCatch:           pcCatch,
	KindClassDecl:       pcClass,
	KindClassExpr:       pcClass,
	KindImport:          pcImport,
	KindImportDefault:   pcSpec,
	KindImportNamespace: pcSpec,
	KindImportSpec:      pcSpec,
	KindExportSpec:      pcSpec,
	KindExportNamed:     pcExport,
	KindExportDefault:   pcExport,
	KindExportAll:       pcExport,
	KindBreak:           pcJump,
	KindContinue:        pcJump,
	KindLabeled:         pcLabeled,
}

// ListData: Program, Block, Array (holes are NoNodeID), Object, Sequence and
// the two destructuring patterns.
type ListData struct {
	Items []NodeID
}

// IdentData: Identifier; MetaProperty stores "new.target" / "import.meta".
type IdentData struct {
	Name source.StringID
}

type LitKind uint8

const (
	LitNumber LitKind = iota
	LitBigInt
	LitString
	LitBool
	LitNull
	LitRegexp
)

type LiteralData struct {
	Kind  LitKind
	Raw   string
	Value string // декодированное значение для строк
	Quote byte   // '\'' или '"' для строк, иначе 0
}

// TemplateQuasi is one static chunk of a template literal.
type TemplateQuasi struct {
	Span   source.Span
	Cooked string
}

// TemplateData: TemplateLiteral and TaggedTemplateExpression (Tag set).
type TemplateData struct {
	Tag    NodeID
	Quasis []TemplateQuasi
	Exprs  []NodeID
	// Multiline: a static chunk contains a line break.
	Multiline bool
}

// BinaryData: Binary, Logical, Assignment (Op is the assignment operator) and
// AssignmentPattern (Op is '=').
type BinaryData struct {
	Op    token.Kind
	Left  NodeID
	Right NodeID
}

// UnaryData: Unary, Update, Await, Yield, Spread, Rest, ImportExpression.
type UnaryData struct {
	Op      token.Kind
	Operand NodeID
	Prefix  bool // для Update: ++x
	// Delegate marks yield*.
	Delegate bool
}

// CallData: Call and New.
type CallData struct {
	Callee NodeID
	Args   []NodeID
}

type MemberData struct {
	Object   NodeID
	Property NodeID
}

// CondData: IfStatement and ConditionalExpression. Alt may be absent.
type CondData struct {
	Test NodeID
	Cons NodeID
	Alt  NodeID
}

type PropKind uint8

const (
	PropInit PropKind = iota
	PropGet
	PropSet
	PropMethod
	PropConstructor
)

// PropertyData: object Property, class MethodDefinition and PropertyDefinition.
type PropertyData struct {
	Key       NodeID
	Value     NodeID
	Kind      PropKind
	Shorthand bool
	Static    bool
}

type FunctionData struct {
	Name      NodeID
	Params    []NodeID
	Body      NodeID
	Async     bool
	Generator bool
	// ExprBody: arrow function with an expression body.
	ExprBody bool
}

type VarKind uint8

const (
	VarVar VarKind = iota
	VarLet
	VarConst
)

func (k VarKind) String() string {
	switch k {
	case VarLet:
		return "let"
	case VarConst:
		return "const"
	default:
		return "var"
	}
}

type VarDeclData struct {
	Kind  VarKind
	Decls []NodeID
}

type DeclaratorData struct {
	Target NodeID
	Init   NodeID
}

type ForData struct {
	Init   NodeID
	Test   NodeID
	Update NodeID
	Body   NodeID
}

// ForInData: for-in and for-of.
type ForInData struct {
	Left  NodeID
	Right NodeID
	Body  NodeID
	Await bool
}

// WhileData: While, DoWhile and With (Test holds the object).
type WhileData struct {
	Test NodeID
	Body NodeID
}

// WrapData: ExpressionStatement, Return and Throw.
type WrapData struct {
	Expr NodeID
}

type SwitchData struct {
	Disc  NodeID
	Cases []NodeID
}

// CaseData: Test is absent for default.
type CaseData struct {
	Test NodeID
	Body []NodeID
}

type TryData struct {
	Block     NodeID
	Handler   NodeID
	Finalizer NodeID
}

// CatchData: Param is absent for `catch {}`.
type CatchData struct {
	Param NodeID
	Body  NodeID
}

type ClassData struct {
	Name    NodeID
	Super   NodeID
	Members []NodeID
}

type ImportData struct {
	Specs  []NodeID
	Source NodeID
}

// SpecData: import/export specifiers. Remote is the name on the other module's
// side and is absent when there is no `as` clause.
type SpecData struct {
	Local  NodeID
	Remote NodeID
}

// ExportData: Decl for `export <decl>` and `export default <expr>`,
// Specs/Source for lists and re-exports, Exported for `export * as ns`.
type ExportData struct {
	Decl     NodeID
	Specs    []NodeID
	Source   NodeID
	Exported NodeID
}

type JumpData struct {
	Label NodeID
}

type LabeledData struct {
	Label NodeID
	Body  NodeID
}
