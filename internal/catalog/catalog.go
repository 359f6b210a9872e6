// Package catalog holds the static, language-keyed content for The G-Burg
// Cut: the service menu, the haircut style catalog used by the visualizer,
// and the localized chat strings. The content mirrors what the site renders;
// the gateway only reads it, never mutates it.
package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Language identifies one of the supported UI languages.
type Language string

const (
	LangEnglish Language = "en"
	LangSpanish Language = "es"
	LangRussian Language = "ru"
)

// ParseLanguage maps a language code to a supported Language. Unknown or
// empty codes fall back to English, matching the site's default.
func ParseLanguage(code string) Language {
	switch Language(code) {
	case LangSpanish:
		return LangSpanish
	case LangRussian:
		return LangRussian
	default:
		return LangEnglish
	}
}

// Name returns the English name of the language, as used inside persona
// instructions ("ALWAYS respond in Spanish").
func (l Language) Name() string {
	switch l {
	case LangSpanish:
		return "Spanish"
	case LangRussian:
		return "Russian"
	default:
		return "English"
	}
}

// Shop identity, shared by personas and the grounding query.
const (
	ShopName     = "The G-Burg Cut"
	ShopAddress  = "123 Main St, Gaithersburg, MD 20878"
	ShopLocality = "Main Street in Gaithersburg, MD"
)

// Service is one entry of the service menu.
type Service struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Duration    time.Duration   `json:"-"`
	DurationMin int             `json:"durationMinutes"`
	Description string          `json:"description"`
}

// Style is one entry of the fixed haircut style catalog. IDs are stable
// across languages; only the label is localized.
type Style struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

func svc(id, name string, price int64, minutes int, desc string) Service {
	return Service{
		ID:          id,
		Name:        name,
		Price:       decimal.NewFromInt(price),
		Duration:    time.Duration(minutes) * time.Minute,
		DurationMin: minutes,
		Description: desc,
	}
}

var services = map[Language][]Service{
	LangEnglish: {
		svc("1", "Signature Haircut", 45, 45, "Precision cut tailored to your head shape and hair type. Includes hot towel finish."),
		svc("2", "The Executive", 75, 90, "Complete transformation. Signature cut + beard grooming + skin care treatment."),
		svc("3", "Beard Sculpting", 30, 30, "Detailed trimming and shaping with straight razor line-up and beard oil."),
		svc("4", "Skin Fade", 50, 60, "The sharpest fade in Gaithersburg. Seamless transitions from skin to top."),
		svc("5", "Buzz Cut & Lining", 25, 20, "Even all over with razor sharp perimeter detailing."),
		svc("6", "Kids Cut", 35, 30, "Gentle and stylish. For our younger gentlemen under 12."),
	},
	LangSpanish: {
		svc("1", "Corte de Autor", 45, 45, "Corte de precisión adaptado a tu forma de cabeza. Incluye toalla caliente."),
		svc("2", "El Ejecutivo", 75, 90, "Transformación completa. Corte de autor + cuidado de barba + tratamiento facial."),
		svc("3", "Esculpido de Barba", 30, 30, "Recorte detallado y perfilado con navaja clásica y aceite premium."),
		svc("4", "Skin Fade", 50, 60, "El degradado más nítido de Gaithersburg. Transiciones perfectas."),
		svc("5", "Corte Buzz y Perfilado", 25, 20, "Corte uniforme con detallado perimetral ultra preciso."),
		svc("6", "Corte Infantil", 35, 30, "Elegante y cómodo. Para jóvenes caballeros menores de 12 años."),
	},
	LangRussian: {
		svc("1", "Авторская стрижка", 45, 45, "Стрижка с учетом формы головы и типа волос. Завершается горячим полотенцем."),
		svc("2", "Представительский уход", 75, 90, "Полное преображение. Авторская стрижка + уход за бородой + уход за кожей."),
		svc("3", "Моделирование бороды", 30, 30, "Детальная стрижка и придание формы опасной бритвой с использованием масла."),
		svc("4", "Skin Fade", 50, 60, "Самый четкий фейд в Гейтерсберге. Бесшовные переходы."),
		svc("5", "Buzz Cut и контуры", 25, 20, "Ровная стрижка под машинку с ультрачеткими контурами."),
		svc("6", "Детская стрижка", 35, 30, "Стильно и бережно. Для юных джентльменов до 12 лет."),
	},
}

// styleOrder fixes the display and validation order of the style catalog.
var styleOrder = []string{"buzz", "pompadour", "crew", "undercut", "fade", "long"}

var styleLabels = map[Language]map[string]string{
	LangEnglish: {
		"buzz":      "Buzz Cut",
		"pompadour": "Pompadour",
		"crew":      "Crew Cut",
		"undercut":  "Classic Undercut",
		"fade":      "High Skin Fade",
		"long":      "Long Taper",
	},
	LangSpanish: {
		"buzz":      "Corte Rapado (Buzz)",
		"pompadour": "Pompadour",
		"crew":      "Corte Militar",
		"undercut":  "Undercut Clásico",
		"fade":      "Degradado Alto",
		"long":      "Taper Largo",
	},
	LangRussian: {
		"buzz":      "Стрижка под машинку",
		"pompadour": "Помпадур",
		"crew":      "Крю-кат",
		"undercut":  "Классический андеркат",
		"fade":      "Высокий фейд",
		"long":      "Удлиненный тейпер",
	},
}

var chatWelcome = map[Language]string{
	LangEnglish: "Hello! How can I help you today at The G-Burg Cut?",
	LangSpanish: "¡Hola! ¿En qué puedo ayudarte hoy en The G-Burg Cut?",
	LangRussian: "Привет! Чем я могу помочь вам сегодня в The G-Burg Cut?",
}

var chatFallback = map[Language]string{
	LangEnglish: "Sorry, something went wrong. Try again.",
	LangSpanish: "Lo siento, algo salió mal. Inténtalo de nuevo.",
	LangRussian: "Извините, произошла ошибка. Попробуйте еще раз.",
}

// Services returns the service menu for a language.
func Services(lang Language) []Service {
	if s, ok := services[lang]; ok {
		return s
	}
	return services[LangEnglish]
}

// Styles returns the haircut style catalog for a language, in display order.
func Styles(lang Language) []Style {
	labels, ok := styleLabels[lang]
	if !ok {
		labels = styleLabels[LangEnglish]
	}
	out := make([]Style, 0, len(styleOrder))
	for _, id := range styleOrder {
		out = append(out, Style{ID: id, Label: labels[id]})
	}
	return out
}

// StyleByID looks up a style by its catalog id.
func StyleByID(lang Language, id string) (Style, bool) {
	labels, ok := styleLabels[lang]
	if !ok {
		labels = styleLabels[LangEnglish]
	}
	label, ok := labels[id]
	if !ok {
		return Style{}, false
	}
	return Style{ID: id, Label: label}, true
}

// EnglishStyleLabel returns the English label for a style id, used when
// building edit instructions regardless of the UI language.
func EnglishStyleLabel(id string) (string, bool) {
	label, ok := styleLabels[LangEnglish][id]
	return label, ok
}

// ChatWelcome returns the localized synthesized welcome turn for a new
// concierge session.
func ChatWelcome(lang Language) string {
	if s, ok := chatWelcome[lang]; ok {
		return s
	}
	return chatWelcome[LangEnglish]
}

// ChatFallback returns the localized message shown in place of a failed
// concierge reply.
func ChatFallback(lang Language) string {
	if s, ok := chatFallback[lang]; ok {
		return s
	}
	return chatFallback[LangEnglish]
}
