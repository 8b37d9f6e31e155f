package translation

import (
	"context"
	"fmt"
	"strings"
)

var languageNames = map[string]string{
	"en": "English", "es": "Spanish", "fr": "French", "de": "German",
	"zh": "Chinese", "ja": "Japanese", "ar": "Arabic", "hi": "Hindi",
	"it": "Italian", "pt": "Portuguese", "ko": "Korean", "ru": "Russian",
	"tr": "Turkish", "vi": "Vietnamese", "th": "Thai",
}

// mockTranslate возвращает исходный текст с тегом целевого языка
func mockTranslate(text, targetLang string) string {
	name, ok := languageNames[targetLang]
	if !ok {
		name = strings.ToUpper(targetLang)
	}
	return fmt.Sprintf("[%s] %s", name, text)
}

// MockProvider - детерминированная заглушка без сетевых вызовов
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Name() string {
	return "mock"
}

func (p *MockProvider) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	return mockTranslate(text, targetLang), nil
}
