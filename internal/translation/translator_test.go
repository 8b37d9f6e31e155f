package translation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medical_chat/internal/config"
	"medical_chat/pkg/logger"
)

type failingProvider struct {
	calls int
}

func (p *failingProvider) Name() string { return "failing" }

func (p *failingProvider) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	p.calls++
	return "", errors.New("provider unavailable")
}

type emptyProvider struct{}

func (p *emptyProvider) Name() string { return "empty" }

func (p *emptyProvider) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	return "", nil
}

func testLogger() logger.Logger {
	return logger.New("error")
}

func TestTranslatorSameLanguageSkipsProvider(t *testing.T) {
	provider := &failingProvider{}
	translator := NewWithProvider(provider, testLogger())

	result := translator.Translate(context.Background(), "hola", "es", "es")

	assert.Equal(t, "hola", result)
	assert.Equal(t, 0, provider.calls, "provider must not be called for same-language input")
}

func TestTranslatorDegradesToMockOnProviderError(t *testing.T) {
	translator := NewWithProvider(&failingProvider{}, testLogger())

	result := translator.Translate(context.Background(), "Tengo fiebre", "es", "en")

	assert.Equal(t, "[English] Tengo fiebre", result)
}

func TestTranslatorDegradesToMockOnEmptyResult(t *testing.T) {
	translator := NewWithProvider(&emptyProvider{}, testLogger())

	result := translator.Translate(context.Background(), "bonjour", "fr", "es")

	assert.Equal(t, "[Spanish] bonjour", result)
}

func TestMockTranslateUnknownLanguage(t *testing.T) {
	assert.Equal(t, "[XX] hello", mockTranslate("hello", "xx"))
}

func TestProviderSelection(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.TranslationConfig
		expected string
	}{
		{
			name:     "google when API key configured",
			cfg:      config.TranslationConfig{GoogleAPIKey: "key", LibreTranslateURL: "http://lt.local"},
			expected: "google",
		},
		{
			name:     "libretranslate when endpoint configured",
			cfg:      config.TranslationConfig{LibreTranslateURL: "http://lt.local"},
			expected: "libretranslate",
		},
		{
			name:     "mymemory as default fallback",
			cfg:      config.TranslationConfig{MyMemoryURL: "https://api.mymemory.translated.net"},
			expected: "mymemory",
		},
		{
			name:     "mock when translation disabled",
			cfg:      config.TranslationConfig{Disabled: true, GoogleAPIKey: "key"},
			expected: "mock",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			translator := New(tt.cfg, testLogger())
			assert.Equal(t, tt.expected, translator.ProviderName())
		})
	}
}

func TestMyMemoryProvider(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/get", r.URL.Path)
		assert.Equal(t, "Tengo fiebre", r.URL.Query().Get("q"))
		assert.Equal(t, "es|en", r.URL.Query().Get("langpair"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"responseData":   map[string]string{"translatedText": "I have a fever"},
			"responseStatus": 200,
		})
	}))
	defer server.Close()

	provider := NewMyMemoryProvider(server.URL, time.Second)

	result, err := provider.Translate(context.Background(), "Tengo fiebre", "es", "en")
	require.NoError(t, err)
	assert.Equal(t, "I have a fever", result)
}

func TestMyMemoryProviderEmptyTranslation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"responseData":   map[string]string{"translatedText": ""},
			"responseStatus": 403,
		})
	}))
	defer server.Close()

	provider := NewMyMemoryProvider(server.URL, time.Second)

	_, err := provider.Translate(context.Background(), "hola", "es", "en")
	assert.Error(t, err)
}

func TestLibreTranslateProvider(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/translate", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hola", body["q"])
		assert.Equal(t, "es", body["source"])
		assert.Equal(t, "en", body["target"])

		json.NewEncoder(w).Encode(map[string]string{"translatedText": "hello"})
	}))
	defer server.Close()

	provider := NewLibreTranslateProvider(server.URL, time.Second)

	result, err := provider.Translate(context.Background(), "hola", "es", "en")
	require.NoError(t, err)
	assert.Equal(t, "hello", result)
}

func TestLibreTranslateProviderServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	provider := NewLibreTranslateProvider(server.URL, time.Second)

	_, err := provider.Translate(context.Background(), "hola", "es", "en")
	assert.Error(t, err)
}

func TestGoogleProvider(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret-key", r.URL.Query().Get("key"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hola", body["q"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"translations": []map[string]string{{"translatedText": "hello"}},
			},
		})
	}))
	defer server.Close()

	provider := NewGoogleProvider("secret-key", time.Second)
	provider.baseURL = server.URL

	result, err := provider.Translate(context.Background(), "hola", "es", "en")
	require.NoError(t, err)
	assert.Equal(t, "hello", result)
}

func TestTranslatorFailedProviderDegradesWithinSameCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	provider := NewGoogleProvider("key", time.Second)
	provider.baseURL = server.URL
	translator := NewWithProvider(provider, testLogger())

	result := translator.Translate(context.Background(), "Tengo fiebre", "es", "en")

	assert.Equal(t, "[English] Tengo fiebre", result)
}
