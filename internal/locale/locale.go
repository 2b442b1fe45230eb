// Package locale wraps go-i18n with the embedded translation files.
package locale

import (
	"embed"
	"encoding/json"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-birthday-countdown/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Translator resolves translation keys for the active language.
// It is safe for concurrent use: the GUI and the loop callback both read it.
type Translator struct {
	mu        sync.RWMutex
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	lang      string
	languages []string
}

// New loads every embedded locale and activates lang.
func New(lang string) *Translator {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	tr := &Translator{bundle: bundle}

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}

		tr.languages = append(tr.languages, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name,
		)
	}

	slices.Sort(tr.languages)
	tr.SetLanguage(lang)
	return tr
}

// SetLanguage switches the active language. Unknown or malformed tags fall
// back to the closest loaded language, then English.
func (t *Translator) SetLanguage(lang string) {
	resolved := t.resolve(lang)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.lang = resolved
	t.localizer = i18n.NewLocalizer(t.bundle, resolved)
}

func (t *Translator) resolve(lang string) string {
	if lang == "" {
		return config.DefaultLanguage
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return config.DefaultLanguage
	}
	base, _ := tag.Base()
	if slices.Contains(t.languages, base.String()) {
		return base.String()
	}
	return config.DefaultLanguage
}

// Language returns the active language code.
func (t *Translator) Language() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lang
}

// Languages lists the loaded language codes, sorted.
func (t *Translator) Languages() []string {
	return slices.Clone(t.languages)
}

// Msg translates a key without template data.
func (t *Translator) Msg(key string) string {
	return t.MsgData(key, nil)
}

// MsgData translates a key, filling its template with data.
// A missing key renders as the key itself.
func (t *Translator) MsgData(key string, data map[string]any) string {
	t.mu.RLock()
	loc := t.localizer
	t.mu.RUnlock()

	if loc == nil {
		return key
	}
	msg, err := loc.Localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}

// MonthName returns the localized name of m.
func (t *Translator) MonthName(m time.Month) string {
	return t.Msg(config.TKeyMonthPrefix + strconv.Itoa(int(m)))
}
