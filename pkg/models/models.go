package models

import (
	"encoding/binary"
	"encoding/json"

	"github.com/cespare/xxhash/v2"
)

// legacyZero значение устаревших полей длительности и высоты тона.
// Движок их не вычисляет, но клиенты ожидают их в ответе.
const legacyZero = 0.0

// Гласные для особых мор
const (
	VowelPause   = "pau" // символьная мора или пауза
	VowelSokuon  = "cl"  // ッ
	VowelHatsuon = "N"   // ン
)

// Mora представляет одну мору (согласный + гласный или символ)
type Mora struct {
	Text      string // графема, может быть знаком препинания
	Consonant string // пустая строка означает отсутствие согласного
	Vowel     string // для символьных мор всегда "pau"
}

// moraJSON формат моры в API
type moraJSON struct {
	Text            string  `json:"text"`
	Consonant       *string `json:"consonant,omitempty"`
	ConsonantLength float64 `json:"consonant_length"`
	Vowel           string  `json:"vowel"`
	VowelLength     float64 `json:"vowel_length"`
	Pitch           float64 `json:"pitch"`
}

// MarshalJSON сериализует мору, подставляя нулевые значения устаревших полей
func (m Mora) MarshalJSON() ([]byte, error) {
	out := moraJSON{
		Text:            m.Text,
		ConsonantLength: legacyZero,
		Vowel:           m.Vowel,
		VowelLength:     legacyZero,
		Pitch:           legacyZero,
	}
	if m.Consonant != "" {
		consonant := m.Consonant
		out.Consonant = &consonant
	}
	return json.Marshal(out)
}

// UnmarshalJSON читает мору; устаревшие поля игнорируются
func (m *Mora) UnmarshalJSON(data []byte) error {
	var in moraJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	m.Text = in.Text
	m.Vowel = in.Vowel
	m.Consonant = ""
	if in.Consonant != nil {
		m.Consonant = *in.Consonant
	}
	return nil
}

// HasConsonant сообщает, есть ли у моры согласный
func (m Mora) HasConsonant() bool {
	return m.Consonant != ""
}

// Hash возвращает хеш содержимого моры
func (m Mora) Hash() uint64 {
	d := xxhash.New()
	m.writeTo(d)
	return d.Sum64()
}

// writeTo пишет каноническое представление моры: поля в алфавитном порядке имён
func (m Mora) writeTo(d *xxhash.Digest) {
	writeField(d, "consonant", m.Consonant)
	writeField(d, "text", m.Text)
	writeField(d, "vowel", m.Vowel)
}

// AccentPhrase представляет акцентную фразу
type AccentPhrase struct {
	Moras           []Mora `json:"moras"`
	Accent          int    `json:"accent"`     // позиция акцента, считая с 1
	PauseMora       *Mora  `json:"pause_mora"` // заполняется потребителями ниже по потоку
	IsInterrogative bool   `json:"is_interrogative"`
}

// Equal сравнивает акцентные фразы по содержимому
func (p AccentPhrase) Equal(other AccentPhrase) bool {
	if p.Accent != other.Accent || p.IsInterrogative != other.IsInterrogative {
		return false
	}
	if len(p.Moras) != len(other.Moras) {
		return false
	}
	for i := range p.Moras {
		if p.Moras[i] != other.Moras[i] {
			return false
		}
	}
	if (p.PauseMora == nil) != (other.PauseMora == nil) {
		return false
	}
	return p.PauseMora == nil || *p.PauseMora == *other.PauseMora
}

// Hash возвращает хеш содержимого фразы
func (p AccentPhrase) Hash() uint64 {
	d := xxhash.New()
	writeInt(d, "accent", p.Accent)
	writeBool(d, "is_interrogative", p.IsInterrogative)
	writeInt(d, "moras", len(p.Moras))
	for _, m := range p.Moras {
		m.writeTo(d)
	}
	writeBool(d, "pause_mora", p.PauseMora != nil)
	if p.PauseMora != nil {
		p.PauseMora.writeTo(d)
	}
	return d.Sum64()
}

// MoraCount возвращает количество мор во фразе
func (p AccentPhrase) MoraCount() int {
	return len(p.Moras)
}

// EqualAccentPhrases сравнивает последовательности фраз по содержимому
func EqualAccentPhrases(a, b []AccentPhrase) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func writeField(d *xxhash.Digest, name, value string) {
	_, _ = d.WriteString(name)
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(value)
	_, _ = d.Write([]byte{0})
}

func writeInt(d *xxhash.Digest, name string, value int) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(value))
	_, _ = d.WriteString(name)
	_, _ = d.Write([]byte{0})
	_, _ = d.Write(buf[:])
}

func writeBool(d *xxhash.Digest, name string, value bool) {
	v := 0
	if value {
		v = 1
	}
	writeInt(d, name, v)
}

// AudioQuery запрос на синтез речи, который потребляет движок синтеза
type AudioQuery struct {
	AccentPhrases      []AccentPhrase `json:"accent_phrases"`
	SpeedScale         float64        `json:"speedScale"`
	IntonationScale    float64        `json:"intonationScale"`
	TempoDynamicsScale float64        `json:"tempoDynamicsScale"`
	PitchScale         float64        `json:"pitchScale"`
	VolumeScale        float64        `json:"volumeScale"`
	PrePhonemeLength   float64        `json:"prePhonemeLength"`
	PostPhonemeLength  float64        `json:"postPhonemeLength"`
	PauseLength        *float64       `json:"pauseLength"`
	PauseLengthScale   float64        `json:"pauseLengthScale"`
	OutputSamplingRate int            `json:"outputSamplingRate"`
	OutputStereo       bool           `json:"outputStereo"`
	Kana               string         `json:"kana"` // справочная запись фраз в нотации AquesTalk, для результата анализа текста может не разбираться обратно
}

// DefaultOutputSamplingRate частота дискретизации по умолчанию
const DefaultOutputSamplingRate = 44100

// NewAudioQuery создает запрос с параметрами по умолчанию
func NewAudioQuery(phrases []AccentPhrase, kana string) AudioQuery {
	return AudioQuery{
		AccentPhrases:      phrases,
		SpeedScale:         1.0,
		IntonationScale:    1.0,
		TempoDynamicsScale: 1.0,
		PitchScale:         0.0,
		VolumeScale:        1.0,
		PrePhonemeLength:   0.1,
		PostPhonemeLength:  0.1,
		PauseLength:        nil,
		PauseLengthScale:   1.0,
		OutputSamplingRate: DefaultOutputSamplingRate,
		OutputStereo:       false,
		Kana:               kana,
	}
}

// ApplyPreset переносит параметры пресета в запрос
func (q *AudioQuery) ApplyPreset(p Preset) {
	q.SpeedScale = p.SpeedScale
	q.IntonationScale = p.IntonationScale
	q.TempoDynamicsScale = p.TempoDynamicsScale
	q.PitchScale = p.PitchScale
	q.VolumeScale = p.VolumeScale
	q.PrePhonemeLength = p.PrePhonemeLength
	q.PostPhonemeLength = p.PostPhonemeLength
	q.PauseLength = p.PauseLength
	q.PauseLengthScale = p.PauseLengthScale
}
