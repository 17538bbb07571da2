// Package i18n resolves user-facing strings for the CLI in English, Shona
// and Ndebele. Bundles are embedded go-i18n message files whose values are
// text/template strings ("Hello, {{.name}}!"). A key missing from the
// active language falls back to English, and a key missing from English is
// returned as is.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var locales embed.FS

// Supported languages, in matcher priority order. English is the fallback.
var (
	English = language.English
	Shona   = language.MustParse("sn")
	Ndebele = language.MustParse("nd")

	supported = []language.Tag{English, Shona, Ndebele}
	matcher   = language.NewMatcher(supported)
)

// Supported returns the languages that have a bundle.
func Supported() []language.Tag {
	return append([]language.Tag(nil), supported...)
}

// localeEnv lists the POSIX locale variables in precedence order.
var localeEnv = []string{"LC_ALL", "LC_MESSAGES", "LANG"}

// Detect picks the language to use: the configured code when set,
// otherwise the first POSIX locale variable that parses. Only the match
// against the supported set matters; anything unsupported yields English.
func Detect(configured string, getenv func(string) string) language.Tag {
	if tag, ok := parseLocale(configured); ok {
		return Match(tag)
	}
	if getenv != nil {
		for _, k := range localeEnv {
			if tag, ok := parseLocale(getenv(k)); ok {
				return Match(tag)
			}
		}
	}
	return English
}

// Match maps any tag onto one of the supported languages.
func Match(tag language.Tag) language.Tag {
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return English
	}
	return supported[idx]
}

// parseLocale accepts BCP 47 tags ("sn-ZW") and POSIX locales
// ("sn_ZW.UTF-8@latin"). "C" and "POSIX" carry no language.
func parseLocale(s string) (language.Tag, bool) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	if s == "" || s == "C" || s == "POSIX" {
		return language.Und, false
	}
	tag, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil {
		return language.Und, false
	}
	return tag, true
}

// Translator looks up messages in the active language.
type Translator struct {
	bundle *goi18n.Bundle

	mu        sync.RWMutex
	lang      language.Tag
	localizer *goi18n.Localizer
}

// New loads all embedded bundles and activates lang (matched against the
// supported set).
func New(lang language.Tag) (*Translator, error) {
	bundle := goi18n.NewBundle(English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	for _, tag := range supported {
		if _, err := bundle.LoadMessageFileFS(locales, "locales/"+tag.String()+".json"); err != nil {
			return nil, fmt.Errorf("load bundle %s: %w", tag, err)
		}
	}

	t := &Translator{bundle: bundle}
	t.activate(Match(lang))
	return t, nil
}

// activate must be called with mu held for writing (or before t is shared).
func (t *Translator) activate(tag language.Tag) {
	t.lang = tag
	t.localizer = goi18n.NewLocalizer(t.bundle, tag.String())
}

// Language returns the active language.
func (t *Translator) Language() language.Tag {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lang
}

// SetLanguage switches the active language. The code must match one of the
// supported languages.
func (t *Translator) SetLanguage(code string) (language.Tag, error) {
	tag, ok := parseLocale(code)
	if !ok {
		return language.Und, fmt.Errorf("unknown language %q", code)
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return language.Und, fmt.Errorf("unsupported language %q", code)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.activate(supported[idx])
	return t.lang, nil
}

// T returns the message for key rendered with the key/value pairs in args
// as template data, e.g. T("resend_countdown", "seconds", 42) for
// "Resend in {{.seconds}}s".
func (t *Translator) T(key string, args ...any) string {
	t.mu.RLock()
	loc := t.localizer
	t.mu.RUnlock()

	// A key missing from the active language is served from English with a
	// MessageNotFoundErr alongside; only an empty result means no message.
	msg, _ := loc.Localize(&goi18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: templateData(args),
	})
	if msg == "" {
		return key
	}
	return msg
}

// LanguageName returns the localized name of a supported language.
func (t *Translator) LanguageName(tag language.Tag) string {
	switch Match(tag) {
	case Shona:
		return t.T("shona")
	case Ndebele:
		return t.T("ndebele")
	default:
		return t.T("english")
	}
}

func templateData(args []any) map[string]any {
	if len(args) < 2 {
		return nil
	}
	data := make(map[string]any, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		data[fmt.Sprint(args[i])] = args[i+1]
	}
	return data
}
