package userdict

import (
	"fmt"

	"yomi-engine/pkg/models"
)

// partOfSpeech поля части речи для типа слова
type partOfSpeech struct {
	pos     string
	detail1 string
	detail2 string
	detail3 string
}

var wordTypes = map[models.WordType]partOfSpeech{
	models.WordTypeProperNoun: {"名詞", "固有名詞", "一般", "*"},
	models.WordTypeCommonNoun: {"名詞", "一般", "*", "*"},
	models.WordTypeVerb:       {"動詞", "自立", "*", "*"},
	models.WordTypeAdjective:  {"形容詞", "自立", "*", "*"},
	models.WordTypeSuffix:     {"名詞", "接尾", "一般", "*"},
}

// AddWordRequest упрощенный запрос на добавление слова
type AddWordRequest struct {
	Surface       string
	Pronunciation []string
	AccentType    []int
	WordType      models.WordType // пустой - PROPER_NOUN
	Priority      int
}

// NewWordFromType собирает слово из упрощенного запроса и проверяет его
func NewWordFromType(req AddWordRequest) (*models.UserDictWord, error) {
	wordType := req.WordType
	if wordType == "" {
		wordType = models.WordTypeProperNoun
	}
	pos, ok := wordTypes[wordType]
	if !ok {
		return nil, &ValidationError{Errors: []FieldError{{
			Field:   "word_type",
			Value:   string(req.WordType),
			Message: fmt.Sprintf("不明な品詞です: %s", req.WordType),
		}}}
	}

	stem := make([]string, len(req.Pronunciation))
	for i := range stem {
		stem[i] = "*"
	}

	return NewWord(WordInput{
		Surface:               req.Surface,
		Priority:              req.Priority,
		PartOfSpeech:          pos.pos,
		PartOfSpeechDetail1:   pos.detail1,
		PartOfSpeechDetail2:   pos.detail2,
		PartOfSpeechDetail3:   pos.detail3,
		InflectionalType:      "*",
		InflectionalForm:      "*",
		Stem:                  stem,
		Yomi:                  req.Pronunciation,
		Pronunciation:         req.Pronunciation,
		AccentType:            req.AccentType,
		AccentAssociativeRule: "*",
	})
}
