package i18n

import (
	"net/url"
	"sync"

	apperrors "backoffice-telegram-auth/internal/common/errors"
)

// Mode задает, кто владеет текущим языком
type Mode int

const (
	// ModeStandalone — контекст владеет языком сам
	ModeStandalone Mode = iota
	// ModeDelegated — язык и сеттер передаются снаружи
	ModeDelegated
	// ModeRouterSynced — язык синхронизирован с параметром lang в URL
	ModeRouterSynced
)

// LangParam — имя параметра запроса с языком
const LangParam = "lang"

// URLState абстрагирует параметры запроса текущего URL. Set обязан
// сохранять остальные параметры.
type URLState interface {
	Get(name string) string
	Set(name, value string)
}

// LanguageContext — единая замена трем вариантам провайдера языка:
// автономному, делегированному и синхронизированному с URL.
// В один момент времени языком владеет ровно один источник.
type LanguageContext struct {
	mode    Mode
	mounted bool

	mu       sync.Mutex
	language Language

	// delegated
	get func() Language
	set func(Language)

	// router-synced
	urlState      URLState
	applyDocument func(Language)
}

// NewContext возвращает незамонтированный контекст — заглушку,
// защищающую от использования вне провайдера.
func NewContext() *LanguageContext {
	return &LanguageContext{language: LanguageEN}
}

// NewStandalone создает контекст с внутренним состоянием
func NewStandalone(initial Language) *LanguageContext {
	if _, ok := ParseLanguage(string(initial)); !ok {
		initial = LanguageEN
	}
	return &LanguageContext{
		mode:     ModeStandalone,
		mounted:  true,
		language: initial,
	}
}

// NewDelegated создает прозрачный контекст поверх внешнего владельца
func NewDelegated(get func() Language, set func(Language)) *LanguageContext {
	return &LanguageContext{
		mode:    ModeDelegated,
		mounted: true,
		get:     get,
		set:     set,
	}
}

// NewRouterSynced создает контекст, привязанный к параметру lang.
// Начальный язык: валидный параметр URL, иначе эвристика по локали
// браузера. Отсутствующий параметр дописывается в URL сразу,
// не затрагивая остальные. applyDocument (опционально) получает язык
// при каждой смене — им обновляют атрибут lang корня документа.
func NewRouterSynced(urlState URLState, browserTag string, applyDocument func(Language)) *LanguageContext {
	ctx := &LanguageContext{
		mode:          ModeRouterSynced,
		mounted:       true,
		urlState:      urlState,
		applyDocument: applyDocument,
	}

	if lang, ok := ParseLanguage(urlState.Get(LangParam)); ok {
		ctx.language = lang
	} else {
		ctx.language = DetectLanguage(browserTag)
		urlState.Set(LangParam, string(ctx.language))
	}

	if applyDocument != nil {
		applyDocument(ctx.language)
	}
	return ctx
}

// Language возвращает текущий язык
func (c *LanguageContext) Language() Language {
	if c.mode == ModeDelegated {
		return c.get()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.language
}

// SetLanguage меняет текущий язык. На незамонтированном контексте
// возвращает ConfigurationError.
func (c *LanguageContext) SetLanguage(lang Language) error {
	if !c.mounted {
		return apperrors.NewConfigurationError("SetLanguage must be used within a mounted language context")
	}

	switch c.mode {
	case ModeDelegated:
		c.set(lang)
		return nil

	case ModeRouterSynced:
		c.mu.Lock()
		c.language = lang
		c.mu.Unlock()
		c.urlState.Set(LangParam, string(lang))
		if c.applyDocument != nil {
			c.applyDocument(lang)
		}
		return nil

	default:
		c.mu.Lock()
		c.language = lang
		c.mu.Unlock()
		return nil
	}
}

// Resync подтягивает язык из URL, когда тот разошелся с состоянием
// (навигация назад/вперед). Направление строго URL → состояние;
// невалидный или пустой параметр игнорируется.
func (c *LanguageContext) Resync() {
	if c.mode != ModeRouterSynced {
		return
	}

	lang, ok := ParseLanguage(c.urlState.Get(LangParam))
	if !ok {
		return
	}

	c.mu.Lock()
	changed := lang != c.language
	c.language = lang
	c.mu.Unlock()

	if changed && c.applyDocument != nil {
		c.applyDocument(lang)
	}
}

// QueryValues — реализация URLState поверх url.Values
type QueryValues struct {
	mu     sync.Mutex
	values url.Values
}

func NewQueryValues(values url.Values) *QueryValues {
	if values == nil {
		values = url.Values{}
	}
	return &QueryValues{values: values}
}

func (q *QueryValues) Get(name string) string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.values.Get(name)
}

func (q *QueryValues) Set(name, value string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.values.Set(name, value)
}

// Values возвращает копию текущих параметров
func (q *QueryValues) Values() url.Values {
	q.mu.Lock()
	defer q.mu.Unlock()

	copied := url.Values{}
	for name, vals := range q.values {
		copied[name] = append([]string(nil), vals...)
	}
	return copied
}
