package i18n

import (
	"fmt"
	"regexp"
	"strings"
)

// Language перечисляет поддерживаемые языки
type Language string

const (
	LanguageEN Language = "en"
	LanguageRU Language = "ru"
)

// ParseLanguage разбирает код языка; неизвестные коды отклоняются
func ParseLanguage(code string) (Language, bool) {
	switch Language(code) {
	case LanguageEN, LanguageRU:
		return Language(code), true
	}
	return "", false
}

// DetectLanguage определяет язык по тегу локали браузера
// (например "ru-RU" → ru). Все, кроме русского, считается английским.
func DetectLanguage(browserTag string) Language {
	langCode := strings.ToLower(strings.Split(browserTag, "-")[0])
	if langCode == string(LanguageRU) {
		return LanguageRU
	}
	return LanguageEN
}

// Locale — дерево переводов: лист-строка или вложенное пространство имен
type Locale = map[string]any

// Module связывает язык с деревом переводов
type Module map[Language]Locale

var placeholderRe = regexp.MustCompile(`\{\{(\w+)\}\}`)

// Resolve спускается по дереву по ключу с точками. Отсутствующий на
// любом уровне сегмент, не-объект посередине или не-строка в конце
// дают сам ключ — перевод никогда не «падает».
func Resolve(tree Locale, dottedKey string) string {
	var current any = tree

	for _, segment := range strings.Split(dottedKey, ".") {
		node, ok := current.(map[string]any)
		if !ok {
			return dottedKey
		}
		current, ok = node[segment]
		if !ok {
			return dottedKey
		}
	}

	if leaf, ok := current.(string); ok {
		return leaf
	}
	return dottedKey
}

// Interpolate подставляет именованные параметры в шаблон вида
// {{name}}. Токены без параметра остаются как есть, с фигурными
// скобками. Один проход, без экранирования.
func Interpolate(template string, params map[string]any) string {
	if len(params) == 0 {
		return template
	}

	return placeholderRe.ReplaceAllStringFunc(template, func(match string) string {
		name := match[2 : len(match)-2]
		value, ok := params[name]
		if !ok {
			return match
		}
		return fmt.Sprint(value)
	})
}

// Translate разрешает ключ в дереве выбранного языка и подставляет
// параметры. Для языка без дерева возвращается сам ключ.
func Translate(lang Language, module Module, key string, params map[string]any) string {
	locale, ok := module[lang]
	if !ok {
		return key
	}
	return Interpolate(Resolve(locale, key), params)
}

// Translator связывает язык и модуль переводов в функцию перевода
func Translator(lang Language, module Module) func(key string, params map[string]any) string {
	return func(key string, params map[string]any) string {
		return Translate(lang, module, key, params)
	}
}
