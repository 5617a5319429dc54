package kana

import (
	"strconv"
	"strings"
)

// ErrorCode вид ошибки разбора нотации AquesTalk
type ErrorCode string

const (
	ErrUnknownText               ErrorCode = "UNKNOWN_TEXT"
	ErrAccentTop                 ErrorCode = "ACCENT_TOP"
	ErrAccentTwice               ErrorCode = "ACCENT_TWICE"
	ErrAccentNotFound            ErrorCode = "ACCENT_NOTFOUND"
	ErrEmptyPhrase               ErrorCode = "EMPTY_PHRASE"
	ErrInterrogationMarkNotAtEnd ErrorCode = "INTERROGATION_MARK_NOT_AT_END"
	ErrInfiniteLoop              ErrorCode = "INFINITE_LOOP"
)

// messageTemplates шаблоны сообщений для клиента
var messageTemplates = map[ErrorCode]string{
	ErrUnknownText:               "判別できない読み仮名があります: {text}",
	ErrAccentTop:                 "句頭にアクセントは置けません: {text}",
	ErrAccentTwice:               "1つのアクセント句に二つ以上のアクセントは置けません: {text}",
	ErrAccentNotFound:            "アクセントを指定していないアクセント句があります: {text}",
	ErrEmptyPhrase:               "{position}番目のアクセント句が空白です",
	ErrInterrogationMarkNotAtEnd: "アクセント句末以外に「？」は置けません: {text}",
	ErrInfiniteLoop:              "処理時に無限ループになってしまいました...バグ報告をお願いします。",
}

// Template возвращает шаблон сообщения для кода
func (c ErrorCode) Template() string {
	return messageTemplates[c]
}

// ParseError ошибка разбора нотации
type ParseError struct {
	Code     ErrorCode
	Text     string // фрагмент, вызвавший ошибку
	Position int    // номер фразы, считая с 1
}

func (e *ParseError) Error() string {
	r := strings.NewReplacer(
		"{text}", e.Text,
		"{position}", strconv.Itoa(e.Position),
	)
	return r.Replace(e.Code.Template())
}

// Args аргументы шаблона для ответа клиенту
func (e *ParseError) Args() map[string]string {
	switch e.Code {
	case ErrEmptyPhrase:
		return map[string]string{"position": strconv.Itoa(e.Position)}
	case ErrInfiniteLoop:
		return map[string]string{}
	default:
		return map[string]string{"text": e.Text}
	}
}

// Internal сообщает, что ошибка означает дефект разборщика, а не ввода
func (e *ParseError) Internal() bool {
	return e.Code == ErrInfiniteLoop
}

func newParseError(code ErrorCode, text string, position int) *ParseError {
	return &ParseError{Code: code, Text: text, Position: position}
}
