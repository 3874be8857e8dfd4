package token

var keywords = map[string]Kind{
	"break":      KwBreak,
	"case":       KwCase,
	"catch":      KwCatch,
	"class":      KwClass,
	"const":      KwConst,
	"continue":   KwContinue,
	"debugger":   KwDebugger,
	"default":    KwDefault,
	"delete":     KwDelete,
	"do":         KwDo,
	"else":       KwElse,
	"enum":       KwEnum,
	"export":     KwExport,
	"extends":    KwExtends,
	"false":      KwFalse,
	"finally":    KwFinally,
	"for":        KwFor,
	"function":   KwFunction,
	"if":         KwIf,
	"import":     KwImport,
	"in":         KwIn,
	"instanceof": KwInstanceof,
	"new":        KwNew,
	"null":       KwNull,
	"return":     KwReturn,
	"super":      KwSuper,
	"switch":     KwSwitch,
	"this":       KwThis,
	"throw":      KwThrow,
	"true":       KwTrue,
	"try":        KwTry,
	"typeof":     KwTypeof,
	"var":        KwVar,
	"void":       KwVoid,
	"while":      KwWhile,
	"with":       KwWith,
}

// kindSpelling is the inverse of keywords plus every punctuator.
var kindSpelling = map[Kind]string{
	LBrace: "{", RBrace: "}", LParen: "(", RParen: ")", LBracket: "[", RBracket: "]",
	Dot: ".", DotDotDot: "...", Semicolon: ";", Comma: ",",
	Lt: "<", Gt: ">", LtEq: "<=", GtEq: ">=",
	EqEq: "==", BangEq: "!=", EqEqEq: "===", BangEqEq: "!==",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%", StarStar: "**",
	PlusPlus: "++", MinusMinus: "--",
	Shl: "<<", Shr: ">>", UShr: ">>>",
	Amp: "&", Pipe: "|", Caret: "^", Bang: "!", Tilde: "~",
	AndAnd: "&&", OrOr: "||", QuestionQuestion: "??",
	Question: "?", QuestionDot: "?.", Colon: ":", FatArrow: "=>",
	Assign: "=", PlusAssign: "+=", MinusAssign: "-=", StarAssign: "*=", SlashAssign: "/=",
	PercentAssign: "%=", StarStarAssign: "**=", ShlAssign: "<<=", ShrAssign: ">>=",
	UShrAssign: ">>>=", AmpAssign: "&=", PipeAssign: "|=", CaretAssign: "^=",
	AndAndAssign: "&&=", OrOrAssign: "||=", QQAssign: "??=",
}

func init() {
	for word, k := range keywords {
		kindSpelling[k] = word
	}
}

// LookupKeyword возвращает тип и bool если это зарезервированное слово.
// Контекстные слова (let, async, of, ...) сюда не входят: это Ident.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// strictReserved are identifiers that module code (always strict) may not bind.
var strictReserved = map[string]struct{}{
	"implements": {}, "interface": {}, "let": {}, "package": {}, "private": {},
	"protected": {}, "public": {}, "static": {}, "yield": {},
}

// IsStrictReserved reports whether name is reserved in strict mode code.
func IsStrictReserved(name string) bool {
	_, ok := strictReserved[name]
	return ok
}
