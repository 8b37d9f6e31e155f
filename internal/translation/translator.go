package translation

import (
	"context"

	"medical_chat/internal/config"
	"medical_chat/pkg/logger"
)

// Provider - единый контракт для внешних сервисов перевода
type Provider interface {
	Name() string
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// Translator выбирает провайдера один раз при старте процесса и с точки
// зрения вызывающего кода никогда не завершается с ошибкой: при сбое
// провайдера результат деградирует до заглушки для этого вызова.
type Translator struct {
	provider Provider
	log      logger.Logger
}

// New выбирает провайдера по наличию конфигурации:
// Google (платный ключ) -> LibreTranslate (self-hosted) -> MyMemory (бесплатный) -> заглушка
func New(cfg config.TranslationConfig, log logger.Logger) *Translator {
	var provider Provider

	switch {
	case cfg.Disabled:
		provider = NewMockProvider()
	case cfg.GoogleAPIKey != "":
		provider = NewGoogleProvider(cfg.GoogleAPIKey, cfg.RequestTimeout)
	case cfg.LibreTranslateURL != "":
		provider = NewLibreTranslateProvider(cfg.LibreTranslateURL, cfg.RequestTimeout)
	default:
		provider = NewMyMemoryProvider(cfg.MyMemoryURL, cfg.RequestTimeout)
	}

	log.Info("Translation provider selected", "provider", provider.Name())

	return &Translator{provider: provider, log: log}
}

// NewWithProvider используется в тестах для подстановки провайдера
func NewWithProvider(provider Provider, log logger.Logger) *Translator {
	return &Translator{provider: provider, log: log}
}

func (t *Translator) ProviderName() string {
	return t.provider.Name()
}

func (t *Translator) Translate(ctx context.Context, text, sourceLang, targetLang string) string {
	if sourceLang == targetLang {
		return text
	}

	translated, err := t.provider.Translate(ctx, text, sourceLang, targetLang)
	if err != nil || translated == "" {
		t.log.Warn("Translation degraded to mock output",
			"provider", t.provider.Name(), "target_lang", targetLang, "error", err)
		return mockTranslate(text, targetLang)
	}

	return translated
}
