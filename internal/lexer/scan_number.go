package lexer

import (
	"lintel/internal/diag"
	"lintel/internal/token"
)

// Поддержка: 123, 1_000, 1.5, .5, 1e-3, 0x.., 0o.., 0b.., 017 (legacy octal), 10n.
// Переполнение не проверяем. Идентификатор сразу после числа: ошибка,
// хвост съедаем в тот же Invalid токен.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.Number
	isInt := true

	// ведущая точка: значит формат ".digits"
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump() // '.'
		isInt = false
		lx.eatDigits(isDec)
		goto emitWithMaybeExp
	}

	// ведущий 0 и база?
	if lx.cursor.Peek() == '0' {
		lx.cursor.Bump()
		switch lx.cursor.Peek() {
		case 'b', 'B':
			lx.cursor.Bump()
			if !lx.eatDigits(func(b byte) bool { return b == '0' || b == '1' }) {
				return lx.badNumber(start, "Expected number in radix 2")
			}
			goto emitMaybeBigInt
		case 'o', 'O':
			lx.cursor.Bump()
			if !lx.eatDigits(func(b byte) bool { return b >= '0' && b <= '7' }) {
				return lx.badNumber(start, "Expected number in radix 8")
			}
			goto emitMaybeBigInt
		case 'x', 'X':
			lx.cursor.Bump()
			if !lx.eatDigits(isHex) {
				return lx.badNumber(start, "Expected number in radix 16")
			}
			goto emitMaybeBigInt
		default:
			if isDec(lx.cursor.Peek()) {
				// 017 / 08: legacy octal
				lx.eatDigits(isDec)
				if lx.opts.Strict {
					sp := lx.cursor.SpanFrom(start)
					lx.report(diag.LexBadNumber, sp, "Octal literal in strict mode")
				}
				goto emit
			}
		}
	}

	// десятичная целая часть
	lx.eatDigits(isDec)

	// дробная часть
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		isInt = false
		lx.eatDigits(isDec)
	}

emitWithMaybeExp:
	if lx.cursor.Peek() == 'e' || lx.cursor.Peek() == 'E' {
		lx.cursor.Bump()
		isInt = false
		if lx.cursor.Peek() == '+' || lx.cursor.Peek() == '-' {
			lx.cursor.Bump()
		}
		if !lx.eatDigits(isDec) {
			return lx.badNumber(start, "Invalid number")
		}
	}

emitMaybeBigInt:
	if isInt && lx.cursor.Peek() == 'n' {
		lx.cursor.Bump()
		kind = token.BigInt
	}

emit:
	if r, sz := lx.peekRune(); sz > 0 && (isIdentStartRune(r) || isDec(lx.cursor.Peek())) {
		return lx.badNumber(start, "Identifier directly after number")
	}
	return lx.emit(kind, start)
}

// eatDigits съедает цифры с разделителями '_' и сообщает, была ли хоть одна цифра.
func (lx *Lexer) eatDigits(ok func(byte) bool) bool {
	seen := false
	for {
		b := lx.cursor.Peek()
		switch {
		case ok(b):
			seen = true
		case b == '_' && seen:
		default:
			return seen
		}
		lx.cursor.Bump()
	}
}

func (lx *Lexer) badNumber(start Mark, msg string) token.Token {
	for {
		r, sz := lx.peekRune()
		if sz == 0 || !isIdentContinueRune(r) {
			break
		}
		lx.bumpRune()
	}
	tok := lx.emit(token.Invalid, start)
	lx.report(diag.LexBadNumber, tok.Span, msg)
	return tok
}
