package tts

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"yomi-engine/pkg/models"
)

func TestEngineClient_AnalyzeText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/accent_phrases", r.URL.Path)
		assert.Equal(t, "テスト", r.URL.Query().Get("text"))
		assert.Equal(t, "3", r.URL.Query().Get("speaker"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"moras":[
			{"text":"テ","consonant":"t","consonant_length":0.08,"vowel":"e","vowel_length":0.1,"pitch":5.5},
			{"text":"ス","consonant":"s","consonant_length":0.07,"vowel":"U","vowel_length":0.1,"pitch":0},
			{"text":"ト","consonant":"t","consonant_length":0.06,"vowel":"o","vowel_length":0.1,"pitch":5.2}
		],"accent":1,"pause_mora":null,"is_interrogative":false}]`))
	}))
	defer server.Close()

	client := NewEngineClient(zap.NewNop(), server.URL+"/", time.Second)
	phrases, err := client.AnalyzeText(context.Background(), "テスト", 3)
	require.NoError(t, err)

	require.Len(t, phrases, 1)
	assert.Equal(t, 1, phrases[0].Accent)
	assert.Equal(t, models.Mora{Text: "ス", Consonant: "s", Vowel: "U"}, phrases[0].Moras[1])
}

func TestEngineClient_Errors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("text") == "broken" {
			_, _ = w.Write([]byte(`{"moras":`))
			return
		}
		http.Error(w, "speaker not found", http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := NewEngineClient(zap.NewNop(), server.URL, time.Second)

	_, err := client.AnalyzeText(context.Background(), "テスト", 999)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), "speaker not found")

	_, err = client.AnalyzeText(context.Background(), "broken", 0)
	assert.Error(t, err)
}

func TestEngineClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	client := NewEngineClient(zap.NewNop(), server.URL, 20*time.Millisecond)
	_, err := client.AnalyzeText(context.Background(), "テスト", 0)
	assert.Error(t, err)
}

func TestDisabled(t *testing.T) {
	_, err := Disabled{}.AnalyzeText(context.Background(), "テスト", 0)
	assert.True(t, errors.Is(err, ErrAnalyzerNotConfigured))
}
