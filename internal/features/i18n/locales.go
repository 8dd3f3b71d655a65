package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed locales/en.json locales/ru.json
var localeFS embed.FS

// Auth — встроенный модуль переводов экранов авторизации.
// Загружается один раз при старте процесса и не меняется.
var Auth = mustLoadModule(map[Language]string{
	LanguageEN: "locales/en.json",
	LanguageRU: "locales/ru.json",
})

func mustLoadModule(files map[Language]string) Module {
	module := make(Module, len(files))
	for lang, path := range files {
		data, err := localeFS.ReadFile(path)
		if err != nil {
			panic(fmt.Sprintf("i18n: missing locale bundle %s: %v", path, err))
		}

		var tree map[string]any
		if err := json.Unmarshal(data, &tree); err != nil {
			panic(fmt.Sprintf("i18n: malformed locale bundle %s: %v", path, err))
		}
		module[lang] = tree
	}
	return module
}
