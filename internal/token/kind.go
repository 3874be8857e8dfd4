package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// LineComment is a // comment (also a leading #! line).
	LineComment
	// BlockComment is a /* */ comment.
	BlockComment

	// Ident represents an identifier token, contextual keywords included.
	Ident
	// PrivateName represents a #name class member.
	PrivateName

	// Number is a numeric literal.
	Number
	// BigInt is a numeric literal with the n suffix.
	BigInt
	// String is a single or double quoted string literal.
	String
	// Template is a template literal without substitutions.
	Template
	// TemplateHead is the `...${ part of a template.
	TemplateHead
	// TemplateMiddle is the }...${ part of a template.
	TemplateMiddle
	// TemplateTail is the }...` part of a template.
	TemplateTail
	// Regexp is a regular expression literal.
	Regexp

	kwBegin
	KwBreak      // break
	KwCase       // case
	KwCatch      // catch
	KwClass      // class
	KwConst      // const
	KwContinue   // continue
	KwDebugger   // debugger
	KwDefault    // default
	KwDelete     // delete
	KwDo         // do
	KwElse       // else
	KwEnum       // enum
	KwExport     // export
	KwExtends    // extends
	KwFalse      // false
	KwFinally    // finally
	KwFor        // for
	KwFunction   // function
	KwIf         // if
	KwImport     // import
	KwIn         // in
	KwInstanceof // instanceof
	KwNew        // new
	KwNull       // null
	KwReturn     // return
	KwSuper      // super
	KwSwitch     // switch
	KwThis       // this
	KwThrow      // throw
	KwTrue       // true
	KwTry        // try
	KwTypeof     // typeof
	KwVar        // var
	KwVoid       // void
	KwWhile      // while
	KwWith       // with
	kwEnd

	punctBegin
	LBrace           // {
	RBrace           // }
	LParen           // (
	RParen           // )
	LBracket         // [
	RBracket         // ]
	Dot              // .
	DotDotDot        // ...
	Semicolon        // ;
	Comma            // ,
	Lt               // <
	Gt               // >
	LtEq             // <=
	GtEq             // >=
	EqEq             // ==
	BangEq           // !=
	EqEqEq           // ===
	BangEqEq         // !==
	Plus             // +
	Minus            // -
	Star             // *
	Slash            // /
	Percent          // %
	StarStar         // **
	PlusPlus         // ++
	MinusMinus       // --
	Shl              // <<
	Shr              // >>
	UShr             // >>>
	Amp              // &
	Pipe             // |
	Caret            // ^
	Bang             // !
	Tilde            // ~
	AndAnd           // &&
	OrOr             // ||
	QuestionQuestion // ??
	Question         // ?
	QuestionDot      // ?.
	Colon            // :
	FatArrow         // =>
	Assign           // =
	PlusAssign       // +=
	MinusAssign      // -=
	StarAssign       // *=
	SlashAssign      // /=
	PercentAssign    // %=
	StarStarAssign   // **=
	ShlAssign        // <<=
	ShrAssign        // >>=
	UShrAssign       // >>>=
	AmpAssign        // &=
	PipeAssign       // |=
	CaretAssign      // ^=
	AndAndAssign     // &&=
	OrOrAssign       // ||=
	QQAssign         // ??=
	punctEnd
)

// Class is the coarse token category exposed to token-level rules and dumps.
type Class uint8

const (
	ClassInvalid Class = iota
	ClassEOF
	ClassComment
	ClassIdentifier
	ClassKeyword
	ClassNumber
	ClassString
	ClassTemplate
	ClassRegExp
	ClassPunctuator
)

// Class maps the fine-grained kind onto its category.
func (k Kind) Class() Class {
	switch {
	case k == EOF:
		return ClassEOF
	case k == LineComment || k == BlockComment:
		return ClassComment
	case k == Ident || k == PrivateName:
		return ClassIdentifier
	case k == Number || k == BigInt:
		return ClassNumber
	case k == String:
		return ClassString
	case k >= Template && k <= TemplateTail:
		return ClassTemplate
	case k == Regexp:
		return ClassRegExp
	case k > kwBegin && k < kwEnd:
		return ClassKeyword
	case k > punctBegin && k < punctEnd:
		return ClassPunctuator
	default:
		return ClassInvalid
	}
}

// IsAssign reports whether k is = or a compound assignment operator.
func (k Kind) IsAssign() bool {
	return k >= Assign && k <= QQAssign
}

// IsLogicalAssign reports whether k is &&=, ||= or ??=.
func (k Kind) IsLogicalAssign() bool {
	return k == AndAndAssign || k == OrOrAssign || k == QQAssign
}

func (c Class) String() string {
	switch c {
	case ClassEOF:
		return "EOF"
	case ClassComment:
		return "Comment"
	case ClassIdentifier:
		return "Identifier"
	case ClassKeyword:
		return "Keyword"
	case ClassNumber:
		return "Numeric"
	case ClassString:
		return "String"
	case ClassTemplate:
		return "Template"
	case ClassRegExp:
		return "RegularExpression"
	case ClassPunctuator:
		return "Punctuator"
	default:
		return "Invalid"
	}
}

var kindNames = [...]string{
	Invalid:        "Invalid",
	EOF:            "EOF",
	LineComment:    "LineComment",
	BlockComment:   "BlockComment",
	Ident:          "Ident",
	PrivateName:    "PrivateName",
	Number:         "Number",
	BigInt:         "BigInt",
	String:         "String",
	Template:       "Template",
	TemplateHead:   "TemplateHead",
	TemplateMiddle: "TemplateMiddle",
	TemplateTail:   "TemplateTail",
	Regexp:         "Regexp",
}

// String returns the kind name for non-fixed tokens and the literal spelling
// for keywords and punctuators.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	if s, ok := kindSpelling[k]; ok {
		return s
	}
	return "Kind(?)"
}
