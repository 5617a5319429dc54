package models

// Preset представляет именованный набор параметров синтеза
type Preset struct {
	ID                 int      `json:"id" yaml:"id"`
	Name               string   `json:"name" yaml:"name"`
	SpeakerUUID        string   `json:"speaker_uuid" yaml:"speaker_uuid"`
	StyleID            int      `json:"style_id" yaml:"style_id"`
	SpeedScale         float64  `json:"speedScale" yaml:"speedScale"`
	IntonationScale    float64  `json:"intonationScale" yaml:"intonationScale"`
	TempoDynamicsScale float64  `json:"tempoDynamicsScale" yaml:"tempoDynamicsScale"`
	PitchScale         float64  `json:"pitchScale" yaml:"pitchScale"`
	VolumeScale        float64  `json:"volumeScale" yaml:"volumeScale"`
	PrePhonemeLength   float64  `json:"prePhonemeLength" yaml:"prePhonemeLength"`
	PostPhonemeLength  float64  `json:"postPhonemeLength" yaml:"postPhonemeLength"`
	PauseLength        *float64 `json:"pauseLength" yaml:"pauseLength"` // nil - длина паузы из анализа текста
	PauseLengthScale   float64  `json:"pauseLengthScale" yaml:"pauseLengthScale"`
}
