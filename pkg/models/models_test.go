package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMora_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Mora{Text: "テ", Consonant: "t", Vowel: "e"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"テ","consonant":"t","consonant_length":0.0,"vowel":"e","vowel_length":0.0,"pitch":0.0}`, string(data))

	// Без согласного поле consonant не выводится, нулевые поля остаются
	data, err = json.Marshal(Mora{Text: "ア", Vowel: "a"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"ア","consonant_length":0.0,"vowel":"a","vowel_length":0.0,"pitch":0.0}`, string(data))
}

func TestMora_UnmarshalJSON_IgnoresLegacyFields(t *testing.T) {
	var m Mora
	err := json.Unmarshal([]byte(`{"text":"カ","consonant":"k","consonant_length":0.12,"vowel":"a","vowel_length":0.2,"pitch":5.6}`), &m)
	require.NoError(t, err)
	assert.Equal(t, Mora{Text: "カ", Consonant: "k", Vowel: "a"}, m)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"カ","consonant":"k","consonant_length":0.0,"vowel":"a","vowel_length":0.0,"pitch":0.0}`, string(data))
}

func TestAccentPhrase_JSON(t *testing.T) {
	phrase := AccentPhrase{
		Moras:  []Mora{{Text: "ア", Vowel: "a"}},
		Accent: 1,
	}

	data, err := json.Marshal(phrase)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"moras":[{"text":"ア","consonant_length":0.0,"vowel":"a","vowel_length":0.0,"pitch":0.0}],
		"accent":1,
		"pause_mora":null,
		"is_interrogative":false
	}`, string(data))

	var decoded AccentPhrase
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, phrase.Equal(decoded))
}

func TestAccentPhrase_EqualAndHash(t *testing.T) {
	pause := Mora{Text: "、", Vowel: VowelPause}
	base := AccentPhrase{
		Moras:  []Mora{{Text: "キャ", Consonant: "ky", Vowel: "a"}, {Text: "ッ", Vowel: VowelSokuon}},
		Accent: 1,
	}

	same := AccentPhrase{
		Moras:  []Mora{{Text: "キャ", Consonant: "ky", Vowel: "a"}, {Text: "ッ", Vowel: VowelSokuon}},
		Accent: 1,
	}
	assert.True(t, base.Equal(same))
	assert.Equal(t, base.Hash(), same.Hash())

	withPause := same
	withPause.PauseMora = &pause
	assert.False(t, base.Equal(withPause))
	assert.NotEqual(t, base.Hash(), withPause.Hash())

	interrogative := same
	interrogative.IsInterrogative = true
	assert.False(t, base.Equal(interrogative))
	assert.NotEqual(t, base.Hash(), interrogative.Hash())

	otherAccent := same
	otherAccent.Accent = 2
	assert.False(t, base.Equal(otherAccent))
}

func TestMora_Hash(t *testing.T) {
	a := Mora{Text: "カ", Consonant: "k", Vowel: "a"}
	b := Mora{Text: "カ", Consonant: "k", Vowel: "a"}
	assert.Equal(t, a, b)
	assert.Equal(t, a.Hash(), b.Hash())

	// Перестановка значений между полями меняет хеш
	c := Mora{Text: "k", Consonant: "カ", Vowel: "a"}
	assert.NotEqual(t, a.Hash(), c.Hash())
}

func TestNewAudioQuery_ApplyPreset(t *testing.T) {
	q := NewAudioQuery(nil, "ア'")
	assert.Equal(t, 1.0, q.SpeedScale)
	assert.Equal(t, DefaultOutputSamplingRate, q.OutputSamplingRate)
	assert.Nil(t, q.PauseLength)

	pause := 0.3
	q.ApplyPreset(Preset{SpeedScale: 1.5, PitchScale: 0.1, PauseLength: &pause, PauseLengthScale: 2})
	assert.Equal(t, 1.5, q.SpeedScale)
	assert.Equal(t, 0.1, q.PitchScale)
	assert.Equal(t, &pause, q.PauseLength)
	assert.Equal(t, "ア'", q.Kana)
}
