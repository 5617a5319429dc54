// Package userdict проверяет и хранит слова пользовательского словаря.
package userdict

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/width"

	"yomi-engine/internal/kana"
	"yomi-engine/pkg/models"
)

// WordInput сырые поля слова от клиента или из хранилища
type WordInput struct {
	Surface               string   `json:"surface"`
	Priority              int      `json:"priority"`
	PartOfSpeech          string   `json:"part_of_speech"`
	PartOfSpeechDetail1   string   `json:"part_of_speech_detail_1"`
	PartOfSpeechDetail2   string   `json:"part_of_speech_detail_2"`
	PartOfSpeechDetail3   string   `json:"part_of_speech_detail_3"`
	InflectionalType      string   `json:"inflectional_type"`
	InflectionalForm      string   `json:"inflectional_form"`
	Stem                  []string `json:"stem"`
	Yomi                  []string `json:"yomi"`
	Pronunciation         []string `json:"pronunciation"`
	AccentType            []int    `json:"accent_type"`
	MoraCount             []int    `json:"mora_count,omitempty"` // игнорируется, всегда пересчитывается
	AccentAssociativeRule string   `json:"accent_associative_rule"`
}

// csvUnsafeChars символы, ломающие CSV-экспорт словаря
const csvUnsafeChars = "\r\n\x00,\""

// NewWord проверяет и нормализует слово.
// Surface переводится в полноширинную форму, MoraCount вычисляется из Pronunciation.
// При нарушениях возвращает *ValidationError со всеми ошибками полей.
func NewWord(in WordInput) (*models.UserDictWord, error) {
	var errs fieldErrors

	surface := width.Widen.String(in.Surface)
	if surface == "" {
		errs.add("surface", in.Surface, "表層形が空です。")
	}

	if in.Priority < models.MinPriority || in.Priority > models.MaxPriority {
		errs.add("priority", fmt.Sprint(in.Priority),
			fmt.Sprintf("優先度は%dから%dの範囲で指定してください。", models.MinPriority, models.MaxPriority))
	}

	csvFields := []struct {
		name  string
		value string
	}{
		{"part_of_speech", in.PartOfSpeech},
		{"part_of_speech_detail_1", in.PartOfSpeechDetail1},
		{"part_of_speech_detail_2", in.PartOfSpeechDetail2},
		{"part_of_speech_detail_3", in.PartOfSpeechDetail3},
		{"inflectional_type", in.InflectionalType},
		{"inflectional_form", in.InflectionalForm},
		{"accent_associative_rule", in.AccentAssociativeRule},
	}
	for _, f := range csvFields {
		if !IsCSVSafe(f.value) {
			errs.add(f.name, f.value, "改行・ヌル文字・カンマ・ダブルクォートは使用できません。")
		}
	}

	segments := len(in.Pronunciation)
	if segments == 0 {
		errs.add("pronunciation", "", "発音が空です。")
	}
	if len(in.Stem) != segments {
		errs.add("stem", strings.Join(in.Stem, "|"), "stem の要素数が pronunciation と一致しません。")
	}
	if len(in.Yomi) != segments {
		errs.add("yomi", strings.Join(in.Yomi, "|"), "yomi の要素数が pronunciation と一致しません。")
	}
	if len(in.AccentType) != segments {
		errs.add("accent_type", fmt.Sprint(in.AccentType), "accent_type の要素数が pronunciation と一致しません。")
	}

	moraCount := make([]int, segments)
	for i, p := range in.Pronunciation {
		count, msg := checkPronunciation(p)
		if msg != "" {
			errs.add(fmt.Sprintf("pronunciation[%d]", i), p, msg)
			moraCount[i] = -1
			continue
		}
		moraCount[i] = count
	}

	for i, accent := range in.AccentType {
		field := fmt.Sprintf("accent_type[%d]", i)
		switch {
		case accent < 0:
			errs.add(field, fmt.Sprint(accent), fmt.Sprintf("誤ったアクセント型です(%d)。 expect: 0 <= accent_type", accent))
		case i < segments && moraCount[i] >= 0 && accent > moraCount[i]:
			errs.add(field, fmt.Sprint(accent),
				fmt.Sprintf("誤ったアクセント型です(%d)。 expect: 0 <= accent_type <= %d", accent, moraCount[i]))
		}
	}

	if err := errs.err(); err != nil {
		return nil, err
	}

	return &models.UserDictWord{
		Surface:               surface,
		Priority:              in.Priority,
		PartOfSpeech:          in.PartOfSpeech,
		PartOfSpeechDetail1:   in.PartOfSpeechDetail1,
		PartOfSpeechDetail2:   in.PartOfSpeechDetail2,
		PartOfSpeechDetail3:   in.PartOfSpeechDetail3,
		InflectionalType:      in.InflectionalType,
		InflectionalForm:      in.InflectionalForm,
		Stem:                  append([]string(nil), in.Stem...),
		Yomi:                  append([]string(nil), in.Yomi...),
		Pronunciation:         append([]string(nil), in.Pronunciation...),
		AccentType:            append([]int(nil), in.AccentType...),
		MoraCount:             moraCount,
		AccentAssociativeRule: in.AccentAssociativeRule,
	}, nil
}

// InputFromWord возвращает поля проверенного слова для повторной проверки
func InputFromWord(w models.UserDictWord) WordInput {
	return WordInput{
		Surface:               w.Surface,
		Priority:              w.Priority,
		PartOfSpeech:          w.PartOfSpeech,
		PartOfSpeechDetail1:   w.PartOfSpeechDetail1,
		PartOfSpeechDetail2:   w.PartOfSpeechDetail2,
		PartOfSpeechDetail3:   w.PartOfSpeechDetail3,
		InflectionalType:      w.InflectionalType,
		InflectionalForm:      w.InflectionalForm,
		Stem:                  w.Stem,
		Yomi:                  w.Yomi,
		Pronunciation:         w.Pronunciation,
		AccentType:            w.AccentType,
		MoraCount:             w.MoraCount,
		AccentAssociativeRule: w.AccentAssociativeRule,
	}
}

// IsCSVSafe сообщает, можно ли записать строку в CSV словаря без экранирования
func IsCSVSafe(s string) bool {
	return !strings.ContainsAny(s, csvUnsafeChars)
}

// isPronunciationChar допустимый символ произношения: катакана ァ..ヶ и ー
func isPronunciationChar(r rune) bool {
	return (r >= 'ァ' && r <= 'ヶ') || r == kana.LongVowelMark
}

// checkPronunciation возвращает число мор сегмента или сообщение об ошибке
func checkPronunciation(p string) (int, string) {
	if p == "" {
		return 0, "発音が空です。"
	}
	for _, r := range p {
		if !isPronunciationChar(r) {
			return 0, "発音は有効なカタカナでなくてはいけません。"
		}
	}
	if strings.Contains(p, "ッッ") {
		return 0, "無効な発音です。(捨て仮名の連続)"
	}

	count, err := kana.CountMoras(p)
	if err != nil {
		var perr *kana.ParseError
		if errors.As(err, &perr) && perr.Code == kana.ErrUnknownText {
			first := []rune(perr.Text)
			switch {
			case len(first) > 0 && first[0] == 'ヮ':
				return 0, "無効な発音です。(「クヮ」「グヮ」以外の「ヮ」の使用)"
			case len(first) > 0 && kana.IsSmallKana(first[0]):
				return 0, "無効な発音です。(捨て仮名の不正な使用)"
			}
		}
		return 0, "無効な発音です。(" + err.Error() + ")"
	}
	return count, ""
}
