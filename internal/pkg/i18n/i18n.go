// Package i18n holds the small message catalog used by the action envelopes
// and seller notifications. Supported locales are English and Bulgarian.
package i18n

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

const (
	EN = "en"
	BG = "bg"
)

var (
	supported = []language.Tag{language.English, language.Bulgarian}
	matcher   = language.NewMatcher(supported)
	codes     = []string{EN, BG}

	defaultLocale = EN
)

type localeKey struct{}

// SetDefault changes the locale used when none can be resolved.
func SetDefault(locale string) {
	if l, ok := Normalize(locale); ok && l != "" {
		defaultLocale = l
	}
}

func Default() string {
	return defaultLocale
}

// Normalize accepts "", "en" or "bg" in any case. An empty input is valid and
// stays empty so callers can tell "not given" from "given".
func Normalize(raw string) (string, bool) {
	l := strings.ToLower(strings.TrimSpace(raw))
	switch l {
	case "", EN, BG:
		return l, true
	default:
		return "", false
	}
}

// Negotiate picks the best supported locale for an Accept-Language header.
func Negotiate(acceptLanguage string) string {
	if strings.TrimSpace(acceptLanguage) == "" {
		return defaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return defaultLocale
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return defaultLocale
	}
	return codes[idx]
}

func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeKey{}, locale)
}

// FromContext returns the request locale, or the default one.
func FromContext(ctx context.Context) string {
	if ctx != nil {
		if l, ok := ctx.Value(localeKey{}).(string); ok && l != "" {
			return l
		}
	}
	return defaultLocale
}

// T translates key for locale. Unknown locales fall back to English and
// unknown keys are returned as-is. Args are applied with fmt.Sprintf.
func T(locale, key string, args ...any) string {
	msg, ok := catalog[locale][key]
	if !ok {
		msg, ok = catalog[EN][key]
	}
	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

// TC translates key for the locale carried by ctx.
func TC(ctx context.Context, key string, args ...any) string {
	return T(FromContext(ctx), key, args...)
}
