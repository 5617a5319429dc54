package kana

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yomi-engine/pkg/models"
)

func mora(text, consonant, vowel string) models.Mora {
	return models.Mora{Text: text, Consonant: consonant, Vowel: vowel}
}

func TestParseKana(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []models.AccentPhrase
	}{
		{
			name: "одна фраза",
			text: "テ'スト",
			want: []models.AccentPhrase{{
				Moras:  []models.Mora{mora("テ", "t", "e"), mora("ス", "s", "u"), mora("ト", "t", "o")},
				Accent: 1,
			}},
		},
		{
			name: "две фразы и вопрос",
			text: "ア'/イウ'？",
			want: []models.AccentPhrase{
				{Moras: []models.Mora{mora("ア", "", "a")}, Accent: 1},
				{Moras: []models.Mora{mora("イ", "", "i"), mora("ウ", "", "u")}, Accent: 2, IsInterrogative: true},
			},
		},
		{
			name: "диграф",
			text: "キャ'ット",
			want: []models.AccentPhrase{{
				Moras:  []models.Mora{mora("キャ", "ky", "a"), mora("ッ", "", "cl"), mora("ト", "t", "o")},
				Accent: 1,
			}},
		},
		{
			name: "оглушенный гласный",
			text: "_キ'タ",
			want: []models.AccentPhrase{{
				Moras:  []models.Mora{mora("キ", "k", "I"), mora("タ", "t", "a")},
				Accent: 1,
			}},
		},
		{
			name: "долгий гласный",
			text: "コ'ーヒー",
			want: []models.AccentPhrase{{
				Moras:  []models.Mora{mora("コ", "k", "o"), mora("ー", "", "o"), mora("ヒ", "h", "i"), mora("ー", "", "i")},
				Accent: 1,
			}},
		},
		{
			name: "символьная мора",
			text: "ア！'",
			want: []models.AccentPhrase{{
				Moras:  []models.Mora{mora("ア", "", "a"), mora("！", "", "pau")},
				Accent: 2,
			}},
		},
		{
			name: "くゎ",
			text: "クヮ'ンセイ",
			want: []models.AccentPhrase{{
				Moras:  []models.Mora{mora("クヮ", "kw", "a"), mora("ン", "", "N"), mora("セ", "s", "e"), mora("イ", "", "i")},
				Accent: 1,
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKana(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			for _, phrase := range got {
				assert.Nil(t, phrase.PauseMora)
			}
		})
	}
}

func TestParseKana_Errors(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		code     ErrorCode
		errText  string
		position int
	}{
		{"пустой ввод", "", ErrEmptyPhrase, "", 1},
		{"пустая фраза между границами", "ア'//イ'", ErrEmptyPhrase, "", 2},
		{"пустая фраза в конце", "ア'/", ErrEmptyPhrase, "", 2},
		{"только вопрос", "？", ErrEmptyPhrase, "", 1},
		{"акцент в начале", "'アイ", ErrAccentTop, "'アイ", 1},
		{"два акцента", "ア'イ'", ErrAccentTwice, "ア'イ'", 1},
		{"два акцента во второй фразе", "ア'/イ'ウ'", ErrAccentTwice, "イ'ウ'", 2},
		{"нет акцента", "アイウ", ErrAccentNotFound, "アイウ", 1},
		{"нет акцента в вопросе", "アイ？", ErrAccentNotFound, "アイ", 1},
		{"акцент в начале вопроса", "'アイ？", ErrAccentTop, "'アイ", 1},
		{"два акцента в вопросе", "ア'イ'？/ウ'", ErrAccentTwice, "ア'イ'", 1},
		{"вопрос в середине", "ア？イ'", ErrInterrogationMarkNotAtEnd, "ア？イ'", 1},
		{"два вопроса", "ア'？？", ErrInterrogationMarkNotAtEnd, "ア'？", 1},
		{"латиница", "ア'abc", ErrUnknownText, "abc", 1},
		{"хирагана", "あ'", ErrUnknownText, "あ", 1},
		{"маленькая кана в начале", "ァ'", ErrUnknownText, "ァ", 1},
		{"маленькая кана после гласного", "アィ'", ErrUnknownText, "ィ", 1},
		{"две маленькие каны подряд", "キャャ'", ErrUnknownText, "ャ", 1},
		{"ゎ после а", "アヮ'", ErrUnknownText, "ヮ", 1},
		{"долгий гласный в начале", "ー'", ErrUnknownText, "ー", 1},
		{"долгий гласный после ン", "ンー'", ErrUnknownText, "ー", 1},
		{"оглушение ン", "_ン'", ErrUnknownText, "_ン", 1},
		{"оглушение без моры", "ア_'", ErrUnknownText, "_", 1},
		{"пауза-разделитель", "ア'、イ'", ErrUnknownText, "、イ", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKana(tt.text)
			require.Error(t, err)
			assert.Nil(t, got)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.code, perr.Code)
			assert.Equal(t, tt.errText, perr.Text)
			assert.Equal(t, tt.position, perr.Position)
		})
	}
}

func TestParseError_Message(t *testing.T) {
	_, err := ParseKana("ア'//イ'")
	require.Error(t, err)
	assert.Equal(t, "2番目のアクセント句が空白です", err.Error())

	_, err = ParseKana("アイ")
	require.Error(t, err)
	assert.Equal(t, "アクセントを指定していないアクセント句があります: アイ", err.Error())

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, map[string]string{"text": "アイ"}, perr.Args())
	assert.False(t, perr.Internal())

	// Завершающий ？ в текст ошибки не попадает
	_, err = ParseKana("ア'/イ'ウ'？")
	require.Error(t, err)
	assert.Equal(t, "1つのアクセント句に二つ以上のアクセントは置けません: イ'ウ'", err.Error())
}

func TestParseKana_StepLimit(t *testing.T) {
	p := &parser{runes: []rune("ア'イウエオ"), limit: 3}

	_, err := p.run()
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, ErrInfiniteLoop, perr.Code)
	assert.True(t, perr.Internal())
	assert.Equal(t, "処理時に無限ループになってしまいました...バグ報告をお願いします。", perr.Error())
}

func TestParseKana_PhraseCount(t *testing.T) {
	phrases := []string{"ア'", "キャ'ット", "_シ'タ", "コ'ー？", "ヴァ'イオリン", "ト'ウキョウ"}

	for n := 1; n <= len(phrases); n++ {
		text := strings.Join(phrases[:n], "/")
		got, err := ParseKana(text)
		require.NoError(t, err, text)
		assert.Len(t, got, strings.Count(text, "/")+1, text)
	}
}

func TestCreateKana_RoundTrip(t *testing.T) {
	inputs := []string{
		"テ'スト",
		"ア'/イウ'？",
		"_キ'タ/コ'ーヒー",
		"クヮ'ンセイ/ヴャ'/ティ'ッシュ",
		"ア！'/…'",
		"ズィ'ーニョ？/ミェ'/イェ'ス",
	}

	for _, text := range inputs {
		t.Run(text, func(t *testing.T) {
			parsed, err := ParseKana(text)
			require.NoError(t, err)

			serialized := CreateKana(parsed)
			assert.Equal(t, text, serialized)

			reparsed, err := ParseKana(serialized)
			require.NoError(t, err)
			assert.True(t, models.EqualAccentPhrases(parsed, reparsed))
		})
	}
}

func TestCreateKana_AnalyzerPhrases(t *testing.T) {
	pause := models.Mora{Text: "、", Vowel: models.VowelPause}
	phrases := []models.AccentPhrase{
		{Moras: []models.Mora{mora("ア", "", "a"), pause}, Accent: 1, PauseMora: &pause},
		{Moras: []models.Mora{mora("イ", "", "i")}, Accent: 1},
	}

	got := CreateKana(phrases)
	assert.Equal(t, "ア'、/イ'", got)

	// Символ вне нотации обратно не разбирается
	_, err := ParseKana(got)
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, ErrUnknownText, perr.Code)
}

func TestCreateKana_EveryMora(t *testing.T) {
	for _, e := range moraList {
		text := e.kana + "'"
		if isVoicedVowel(e.vowel) {
			text += "/_" + e.kana + "'"
		}

		parsed, err := ParseKana(text)
		require.NoError(t, err, text)
		assert.Equal(t, text, CreateKana(parsed))
	}
}

func TestCountMoras(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"ス", 1},
		{"キャ", 1},
		{"テスト", 3},
		{"ボイス", 3},
		{"ボックス", 4},
		{"クヮンセイ", 4},
		{"コーヒー", 4},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := CountMoras(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCountMoras_SmallKanaCombinations(t *testing.T) {
	// Маленькая кана объединяется только с допустимым предшественником,
	// и подсчет мор всегда совпадает с полным разбором.
	for r := 'ァ'; r <= 'ヴ'; r++ {
		if IsSmallKana(r) || r == 'ッ' {
			continue
		}
		for _, x := range "ァィゥェォャュョヮ" {
			text := string(r) + string(x)
			count, err := CountMoras(text)

			if _, ok := kana2mora[text]; ok {
				require.NoError(t, err, text)
				assert.Equal(t, 1, count, text)

				phrases, err := ParseKana(text + "'")
				require.NoError(t, err, text)
				assert.Equal(t, count, phrases[0].MoraCount(), text)
				continue
			}

			var perr *ParseError
			require.True(t, errors.As(err, &perr), text)
			assert.Equal(t, ErrUnknownText, perr.Code, text)

			_, err = ParseKana(text + "'")
			assert.Error(t, err, text)
		}
	}
}

func TestCountMoras_Errors(t *testing.T) {
	for _, text := range []string{"", "ァ", "アヮ", "アィウェォ", "ぼいぼ", "テ'スト"} {
		_, err := CountMoras(text)
		assert.Error(t, err, text)
	}
}

func TestParseKana_Hash(t *testing.T) {
	a, err := ParseKana("キャ'ット/ア'？")
	require.NoError(t, err)
	b, err := ParseKana("キャ'ット/ア'？")
	require.NoError(t, err)

	for i := range a {
		assert.Equal(t, a[i].Hash(), b[i].Hash())
	}
	assert.NotEqual(t, a[0].Hash(), a[1].Hash())
}
