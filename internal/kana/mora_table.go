package kana

import "yomi-engine/pkg/models"

// moraEntry фонемы одной моры
type moraEntry struct {
	kana      string
	consonant string
	vowel     string
}

// moraList таблица мор. Маленькая кана допустима только внутри
// двухсимвольных записей (拗音 и другие диграфы).
var moraList = []moraEntry{
	// ヴ
	{"ヴォ", "v", "o"}, {"ヴェ", "v", "e"}, {"ヴィ", "v", "i"}, {"ヴァ", "v", "a"}, {"ヴ", "v", "u"},
	{"ヴョ", "by", "o"}, {"ヴュ", "by", "u"}, {"ヴャ", "by", "a"},
	{"ン", "", "N"},
	// ワ行
	{"ワ", "w", "a"}, {"ヲ", "", "o"}, {"ヱ", "", "e"}, {"ヰ", "", "i"},
	// ラ行
	{"ロ", "r", "o"}, {"レ", "r", "e"}, {"ル", "r", "u"},
	{"リョ", "ry", "o"}, {"リュ", "ry", "u"}, {"リャ", "ry", "a"}, {"リェ", "ry", "e"}, {"リ", "r", "i"},
	{"ラ", "r", "a"},
	// ヤ行
	{"ヨ", "y", "o"}, {"ユ", "y", "u"}, {"ヤ", "y", "a"},
	// マ行
	{"モ", "m", "o"}, {"メ", "m", "e"}, {"ム", "m", "u"},
	{"ミョ", "my", "o"}, {"ミュ", "my", "u"}, {"ミャ", "my", "a"}, {"ミェ", "my", "e"}, {"ミ", "m", "i"},
	{"マ", "m", "a"},
	// ハ・バ・パ行
	{"ポ", "p", "o"}, {"ボ", "b", "o"}, {"ホ", "h", "o"},
	{"ペ", "p", "e"}, {"ベ", "b", "e"}, {"ヘ", "h", "e"},
	{"プ", "p", "u"}, {"ブ", "b", "u"},
	{"フォ", "f", "o"}, {"フェ", "f", "e"}, {"フィ", "f", "i"}, {"ファ", "f", "a"}, {"フ", "f", "u"},
	{"ピョ", "py", "o"}, {"ピュ", "py", "u"}, {"ピャ", "py", "a"}, {"ピェ", "py", "e"}, {"ピ", "p", "i"},
	{"ビョ", "by", "o"}, {"ビュ", "by", "u"}, {"ビャ", "by", "a"}, {"ビェ", "by", "e"}, {"ビ", "b", "i"},
	{"ヒョ", "hy", "o"}, {"ヒュ", "hy", "u"}, {"ヒャ", "hy", "a"}, {"ヒェ", "hy", "e"}, {"ヒ", "h", "i"},
	{"パ", "p", "a"}, {"バ", "b", "a"}, {"ハ", "h", "a"},
	// ナ行
	{"ノ", "n", "o"}, {"ネ", "n", "e"}, {"ヌ", "n", "u"},
	{"ニョ", "ny", "o"}, {"ニュ", "ny", "u"}, {"ニャ", "ny", "a"}, {"ニェ", "ny", "e"}, {"ニ", "n", "i"},
	{"ナ", "n", "a"},
	// タ・ダ行
	{"ドゥ", "d", "u"}, {"ド", "d", "o"}, {"トゥ", "t", "u"}, {"ト", "t", "o"},
	{"デョ", "dy", "o"}, {"デュ", "dy", "u"}, {"デャ", "dy", "a"}, {"ディ", "d", "i"}, {"デ", "d", "e"},
	{"テョ", "ty", "o"}, {"テュ", "ty", "u"}, {"テャ", "ty", "a"}, {"ティ", "t", "i"}, {"テ", "t", "e"},
	{"ツォ", "ts", "o"}, {"ツェ", "ts", "e"}, {"ツィ", "ts", "i"}, {"ツァ", "ts", "a"}, {"ツ", "ts", "u"},
	{"ッ", "", models.VowelSokuon},
	{"チョ", "ch", "o"}, {"チュ", "ch", "u"}, {"チャ", "ch", "a"}, {"チェ", "ch", "e"}, {"チ", "ch", "i"},
	{"ダ", "d", "a"}, {"タ", "t", "a"},
	{"ヅ", "z", "u"}, {"ヂ", "j", "i"},
	// サ・ザ行
	{"ゾ", "z", "o"}, {"ソ", "s", "o"}, {"ゼ", "z", "e"}, {"セ", "s", "e"},
	{"ズィ", "z", "i"}, {"ズ", "z", "u"}, {"スィ", "s", "i"}, {"ス", "s", "u"},
	{"ジョ", "j", "o"}, {"ジュ", "j", "u"}, {"ジャ", "j", "a"}, {"ジェ", "j", "e"}, {"ジ", "j", "i"},
	{"ショ", "sh", "o"}, {"シュ", "sh", "u"}, {"シャ", "sh", "a"}, {"シェ", "sh", "e"}, {"シ", "sh", "i"},
	{"ザ", "z", "a"}, {"サ", "s", "a"},
	// カ・ガ行
	{"ゴ", "g", "o"}, {"コ", "k", "o"}, {"ゲ", "g", "e"}, {"ケ", "k", "e"},
	{"グヮ", "gw", "a"}, {"グ", "g", "u"}, {"クヮ", "kw", "a"}, {"ク", "k", "u"},
	{"ギョ", "gy", "o"}, {"ギュ", "gy", "u"}, {"ギャ", "gy", "a"}, {"ギェ", "gy", "e"}, {"ギ", "g", "i"},
	{"キョ", "ky", "o"}, {"キュ", "ky", "u"}, {"キャ", "ky", "a"}, {"キェ", "ky", "e"}, {"キ", "k", "i"},
	{"ガ", "g", "a"}, {"カ", "k", "a"},
	{"ヶ", "k", "e"}, {"ヵ", "k", "a"},
	// ア行
	{"オ", "", "o"}, {"エ", "", "e"},
	{"ウォ", "w", "o"}, {"ウェ", "w", "e"}, {"ウィ", "w", "i"}, {"ウ", "", "u"},
	{"イェ", "y", "e"}, {"イ", "", "i"}, {"ア", "", "a"},
}

// symbolMoras знаки препинания, которые становятся отдельной морой с гласным pau
var symbolMoras = map[rune]bool{
	'！': true,
	'…': true,
}

// smallKana маленькие каны, допустимые только второй половиной диграфа.
// ッ сюда не входит: это самостоятельная мора.
var smallKana = map[rune]bool{
	'ァ': true, 'ィ': true, 'ゥ': true, 'ェ': true, 'ォ': true,
	'ャ': true, 'ュ': true, 'ョ': true, 'ヮ': true,
}

// kana2mora индекс таблицы по тексту моры
var kana2mora = func() map[string]moraEntry {
	m := make(map[string]moraEntry, len(moraList))
	for _, e := range moraList {
		m[e.kana] = e
	}
	return m
}()

// IsSmallKana сообщает, является ли символ маленькой каной диграфа
func IsSmallKana(r rune) bool {
	return smallKana[r]
}

// isVoicedVowel гласный, который может быть оглушен
func isVoicedVowel(v string) bool {
	switch v {
	case "a", "i", "u", "e", "o":
		return true
	}
	return false
}

// isUnvoicedVowel оглушенный гласный
func isUnvoicedVowel(v string) bool {
	switch v {
	case "A", "I", "U", "E", "O":
		return true
	}
	return false
}
