package kana

import (
	"strings"

	"yomi-engine/pkg/models"
)

// CreateKana записывает акцентные фразы в нотации AquesTalk.
// Для любого результата ParseKana выполняется ParseKana(CreateKana(x)) == x.
// Фразы от анализатора текста могут содержать символьные моры вне нотации
// (например 「、」) и PauseMora. Такие моры пишутся как есть, PauseMora
// не записывается, и результат служит только справкой.
func CreateKana(phrases []models.AccentPhrase) string {
	var b strings.Builder
	for i, phrase := range phrases {
		for j, m := range phrase.Moras {
			if isUnvoicedVowel(m.Vowel) {
				b.WriteRune(UnvoiceSymbol)
			}
			b.WriteString(m.Text)
			if j+1 == phrase.Accent {
				b.WriteRune(AccentSymbol)
			}
		}
		if phrase.IsInterrogative {
			b.WriteRune(InterrogationMark)
		}
		if i < len(phrases)-1 {
			b.WriteRune(PhraseDelimiter)
		}
	}
	return b.String()
}

// CountMoras считает моры в строке катаканы.
// Строка разбирается как одна фраза с акцентом в конце, поэтому правила
// диграфов совпадают с ParseKana.
func CountMoras(katakana string) (int, error) {
	phrases, err := ParseKana(katakana + string(AccentSymbol))
	if err != nil {
		return 0, err
	}

	count := 0
	for _, phrase := range phrases {
		count += len(phrase.Moras)
	}
	return count, nil
}
