package service

import (
	"strings"
)

const defaultLanguage = "en"

type topicAnswer struct {
	keywords []string
	answers  map[string]string
}

// Topics are matched in declaration order against the lowercased prompt,
// the first topic with a keyword hit wins. Prompts with no hit fall through
// to the generic answer.
var fallbackTopics = []topicAnswer{
	{
		keywords: []string{"prayer", "namaz", "salah", "salat"},
		answers: map[string]string{
			"en": "Prayer times depend on your location. Please check the prayer times screen for accurate timings in your area.",
			"ur": "نماز کے اوقات آپ کے مقام پر منحصر ہیں۔ درست اوقات کے لیے براہ کرم نماز کے اوقات کی اسکرین دیکھیں۔",
			"ar": "تعتمد أوقات الصلاة على موقعك. يرجى مراجعة شاشة أوقات الصلاة لمعرفة المواعيد الدقيقة في منطقتك.",
		},
	},
	{
		keywords: []string{"qibla", "qiblah", "direction"},
		answers: map[string]string{
			"en": "You can find the qibla direction using the compass screen in the app.",
			"ur": "آپ ایپ میں کمپاس اسکرین کے ذریعے قبلہ کی سمت معلوم کر سکتے ہیں۔",
			"ar": "يمكنك معرفة اتجاه القبلة باستخدام شاشة البوصلة في التطبيق.",
		},
	},
}

var genericFallback = map[string]string{
	"en": "I'm sorry, I couldn't process your request right now. Please try again later.",
	"ur": "معذرت، میں ابھی آپ کی درخواست پر عمل نہیں کر سکا۔ براہ کرم بعد میں دوبارہ کوشش کریں۔",
	"ar": "عذراً، لم أتمكن من معالجة طلبك الآن. يرجى المحاولة مرة أخرى لاحقاً.",
}

// FallbackAnswer returns a canned answer when no model produced a usable one.
// Unknown languages degrade to English.
func FallbackAnswer(prompt string, language string) string {
	language = normalizeLanguage(language)
	lowered := strings.ToLower(prompt)
	for _, topic := range fallbackTopics {
		for _, keyword := range topic.keywords {
			if strings.Contains(lowered, keyword) {
				return topic.answers[language]
			}
		}
	}
	return genericFallback[language]
}

func normalizeLanguage(language string) string {
	language = strings.ToLower(strings.TrimSpace(language))
	if _, ok := genericFallback[language]; !ok {
		return defaultLanguage
	}
	return language
}
