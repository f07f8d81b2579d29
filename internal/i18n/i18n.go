package i18n

import (
	"strings"

	"github.com/wallmasters/storefront/internal/constants"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// 语言常量
const (
	LocaleEN = constants.LocaleEnUS
	LocaleZH = constants.LocaleZhCN
)

var (
	supportedTags = []language.Tag{language.AmericanEnglish, language.SimplifiedChinese}
	matcher       = language.NewMatcher(supportedTags)
	tagToLocale   = map[language.Tag]string{
		language.AmericanEnglish:   LocaleEN,
		language.SimplifiedChinese: LocaleZH,
	}
)

// ResolveLocale 将任意语言标识（含 Accept-Language 列表）归一化为支持的语言
func ResolveLocale(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return LocaleEN
	}
	tags, _, err := language.ParseAcceptLanguage(raw)
	if err != nil || len(tags) == 0 {
		return LocaleEN
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return LocaleEN
	}
	return tagToLocale[supportedTags[idx]]
}

// T 返回翻译文本，缺失时依次回退到英文与 key 本身
func T(locale, key string) string {
	if msg, ok := lookup(locale, key); ok {
		return msg
	}
	return key
}

// Sprintf 按语言格式化翻译文本
func Sprintf(locale, key string, args ...interface{}) string {
	locale = ResolveLocale(locale)
	tmpl, ok := lookup(locale, key)
	if !ok {
		return key
	}
	printer := message.NewPrinter(localeTag(locale))
	return printer.Sprintf(tmpl, args...)
}

func lookup(locale, key string) (string, bool) {
	locale = ResolveLocale(locale)
	if msgs, ok := catalog[locale]; ok {
		if msg, ok := msgs[key]; ok {
			return msg, true
		}
	}
	msg, ok := catalog[LocaleEN][key]
	return msg, ok
}

func localeTag(locale string) language.Tag {
	for tag, name := range tagToLocale {
		if name == locale {
			return tag
		}
	}
	return language.AmericanEnglish
}
