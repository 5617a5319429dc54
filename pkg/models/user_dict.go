package models

// Границы приоритета слова пользовательского словаря
const (
	MinPriority = 0
	MaxPriority = 10
)

// UserDictWord представляет проверенное слово пользовательского словаря
type UserDictWord struct {
	Surface               string   `json:"surface"` // всегда в полноширинной форме
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
	MoraCount             []int    `json:"mora_count"` // вычисляется из pronunciation
	AccentAssociativeRule string   `json:"accent_associative_rule"`
}

// WordType тип слова для упрощенного добавления в словарь
type WordType string

const (
	WordTypeProperNoun WordType = "PROPER_NOUN"
	WordTypeCommonNoun WordType = "COMMON_NOUN"
	WordTypeVerb       WordType = "VERB"
	WordTypeAdjective  WordType = "ADJECTIVE"
	WordTypeSuffix     WordType = "SUFFIX"
)
