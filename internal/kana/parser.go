// Package kana разбирает нотацию AquesTalk в последовательность акцентных фраз
// и выполняет обратное преобразование.
//
// Грамматика нотации:
//
//	ア'/キャ'ット？     - две фразы, вторая вопросительная
//	_キ                 - оглушенный гласный
//	コ'ー               - долгий гласный повторяет гласный предыдущей моры
//
// Каждая фраза должна содержать ровно один знак акцента ' после первой моры.
package kana

import (
	"strings"

	"yomi-engine/pkg/models"
)

// Служебные символы нотации
const (
	AccentSymbol      = '\''
	PhraseDelimiter   = '/'
	InterrogationMark = '？'
	UnvoiceSymbol     = '_'
	LongVowelMark     = 'ー'
)

// loopLimitFactor множитель предела шагов сканера относительно длины ввода.
// Каждый шаг поглощает хотя бы один символ, поэтому предел недостижим
// на исправном разборщике.
const loopLimitFactor = 2

// scanState состояние сканера внутри фразы
type scanState int

const (
	statePhraseStart scanState = iota // мор еще нет
	stateAwaitMora                    // есть моры, акцента нет
	statePostAccent                   // акцент уже поставлен
	statePhraseEnd                    // встречен ？, дальше только граница фразы
)

// ParseKana разбирает нотацию AquesTalk.
// Возвращает по одной акцентной фразе на каждую фразу нотации либо *ParseError.
// PauseMora у результатов не заполняется.
func ParseKana(text string) ([]models.AccentPhrase, error) {
	runes := []rune(text)
	p := &parser{
		runes: runes,
		limit: loopLimitFactor * (len(runes) + 1),
	}
	return p.run()
}

// parser однопроходный сканер нотации
type parser struct {
	runes []rune
	pos   int
	steps int
	limit int

	state         scanState
	phraseStart   int
	moras         []models.Mora
	accent        int
	interrogative bool

	phrases []models.AccentPhrase
}

func (p *parser) run() ([]models.AccentPhrase, error) {
	for {
		p.steps++
		if p.steps > p.limit {
			return nil, p.fail(ErrInfiniteLoop, "")
		}

		if p.pos >= len(p.runes) {
			if err := p.closePhrase(); err != nil {
				return nil, err
			}
			return p.phrases, nil
		}

		if err := p.step(); err != nil {
			return nil, err
		}
	}
}

// step обрабатывает один символ в зависимости от его класса и состояния
func (p *parser) step() error {
	r := p.runes[p.pos]

	if r == PhraseDelimiter {
		if err := p.closePhrase(); err != nil {
			return err
		}
		p.pos++
		p.phraseStart = p.pos
		return nil
	}

	if p.state == statePhraseEnd {
		return p.fail(ErrInterrogationMarkNotAtEnd, p.phraseText())
	}

	switch r {
	case AccentSymbol:
		return p.accentMark()
	case InterrogationMark:
		p.interrogative = true
		p.state = statePhraseEnd
		p.pos++
		return nil
	default:
		return p.mora()
	}
}

func (p *parser) accentMark() error {
	switch p.state {
	case statePhraseStart:
		return p.fail(ErrAccentTop, p.phraseText())
	case statePostAccent:
		return p.fail(ErrAccentTwice, p.phraseText())
	}

	p.accent = len(p.moras)
	p.state = statePostAccent
	p.pos++
	return nil
}

func (p *parser) mora() error {
	start := p.pos
	i := p.pos

	unvoiced := p.runes[i] == UnvoiceSymbol
	if unvoiced {
		i++
		if i < len(p.runes) && p.runes[i] == LongVowelMark {
			return p.fail(ErrUnknownText, p.unknownSpan(start))
		}
	}

	m, n, ok := p.match(i)
	if !ok || (unvoiced && !isVoicedVowel(m.Vowel)) {
		return p.fail(ErrUnknownText, p.unknownSpan(start))
	}
	if unvoiced {
		m.Vowel = strings.ToUpper(m.Vowel)
	}

	p.moras = append(p.moras, m)
	p.pos = i + n
	if p.state == statePhraseStart {
		p.state = stateAwaitMora
	}
	return nil
}

// match ищет мору, начинающуюся в позиции i: сначала диграф, затем одиночный символ.
// Маленькая кана без допустимого предшественника не находится.
func (p *parser) match(i int) (models.Mora, int, bool) {
	if i >= len(p.runes) {
		return models.Mora{}, 0, false
	}
	r := p.runes[i]

	if symbolMoras[r] {
		return models.Mora{Text: string(r), Vowel: models.VowelPause}, 1, true
	}

	if r == LongVowelMark {
		if len(p.moras) == 0 {
			return models.Mora{}, 0, false
		}
		prev := strings.ToLower(p.moras[len(p.moras)-1].Vowel)
		if !isVoicedVowel(prev) {
			return models.Mora{}, 0, false
		}
		return models.Mora{Text: string(r), Vowel: prev}, 1, true
	}

	if i+1 < len(p.runes) {
		if e, ok := kana2mora[string(p.runes[i:i+2])]; ok {
			return e.toMora(), 2, true
		}
	}
	if e, ok := kana2mora[string(r)]; ok {
		return e.toMora(), 1, true
	}
	return models.Mora{}, 0, false
}

// closePhrase завершает текущую фразу на границе или в конце ввода
func (p *parser) closePhrase() error {
	if len(p.moras) == 0 {
		return p.fail(ErrEmptyPhrase, p.phraseText())
	}
	if p.accent == 0 {
		return p.fail(ErrAccentNotFound, p.phraseText())
	}

	p.phrases = append(p.phrases, models.AccentPhrase{
		Moras:           p.moras,
		Accent:          p.accent,
		IsInterrogative: p.interrogative,
	})

	p.state = statePhraseStart
	p.moras = nil
	p.accent = 0
	p.interrogative = false
	return nil
}

func (p *parser) fail(code ErrorCode, text string) *ParseError {
	return newParseError(code, text, len(p.phrases)+1)
}

// phraseText текст текущей фразы без границ и без завершающего ？
func (p *parser) phraseText() string {
	end := p.phraseStart
	for end < len(p.runes) && p.runes[end] != PhraseDelimiter {
		end++
	}
	if end > p.phraseStart && p.runes[end-1] == InterrogationMark {
		end--
	}
	return string(p.runes[p.phraseStart:end])
}

// unknownSpan нераспознанный фрагмент до ближайшего служебного символа
func (p *parser) unknownSpan(start int) string {
	end := start
	for end < len(p.runes) {
		switch p.runes[end] {
		case AccentSymbol, PhraseDelimiter, InterrogationMark:
			return string(p.runes[start:end])
		}
		end++
	}
	return string(p.runes[start:end])
}

func (e moraEntry) toMora() models.Mora {
	return models.Mora{Text: e.kana, Consonant: e.consonant, Vowel: e.vowel}
}
