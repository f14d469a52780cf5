// Package i18n translates the handful of user-visible UI strings.
package i18n

import (
	"fmt"
	"os"
	"strings"

	"github.com/jeandeaual/go-locale"
	"github.com/rs/zerolog"
)

// EnvLang forces the UI language regardless of the system locale.
const EnvLang = "TYTIMER_LANG"

var lang = "en"

var supported = []string{"en", "uk", "de"}

var translations = map[string]map[string]string{
	"Remaining: %s / Original: %s": {
		"uk": "Залишилось: %s / Початково: %s",
		"de": "Verbleibend: %s / Ursprünglich: %s",
	},
	"Remaining %s": {
		"uk": "Залишилось %s",
		"de": "Verbleibend %s",
	},
	"(paused)": {
		"uk": "(пауза)",
		"de": "(pausiert)",
	},
	"Stop": {
		"uk": "Стоп",
		"de": "Stopp",
	},
	"Pause %d%%": {
		"uk": "Пауза %d%%",
		"de": "Pause %d%%",
	},
	"Close": {
		"uk": "Закрити",
		"de": "Schließen",
	},
	"Pause": {
		"uk": "Пауза",
		"de": "Pause",
	},
	"Resume": {
		"uk": "Продовжити",
		"de": "Fortsetzen",
	},
	"Show Alarm Window": {
		"uk": "Показати вікно сигналу",
		"de": "Alarmfenster anzeigen",
	},
	"Quit": {
		"uk": "Вийти",
		"de": "Beenden",
	},
	"Start": {
		"uk": "Старт",
		"de": "Starten",
	},
	"Minutes": {
		"uk": "Хвилини",
		"de": "Minuten",
	},
	"%v min": {
		"uk": "%v хв",
		"de": "%v Min.",
	},
	"New timer": {
		"uk": "Новий таймер",
		"de": "Neuer Timer",
	},
	"Minutes must be positive.": {
		"uk": "Кількість хвилин має бути додатною.",
		"de": "Minuten müssen positiv sein.",
	},
}

// Detect picks the UI language: an explicit override (settings file), then
// TYTIMER_LANG, then the first system locale. Unknown languages fall back to English.
func Detect(override string, logger zerolog.Logger) string {
	if override = strings.TrimSpace(override); override != "" {
		logger.Debug().Str("lang", override).Msg("language set by settings")
		return SetLang(override)
	}

	if forced := strings.TrimSpace(os.Getenv(EnvLang)); forced != "" {
		logger.Debug().Str("lang", forced).Msg(EnvLang + " is set")
		return SetLang(forced)
	}

	userLocales, err := locale.GetLocales()
	if err != nil {
		logger.Debug().Err(err).Msg("could not get user locale, defaulting to english")
		return SetLang("en")
	}
	if len(userLocales) == 0 {
		logger.Debug().Msg("no user locale detected, defaulting to english")
		return SetLang("en")
	}

	logger.Debug().Str("locale", userLocales[0]).Msg("detected user locale")
	return SetLang(userLocales[0])
}

// SetLang selects the language by its prefix ("de-AT" selects "de") and
// returns the language in effect.
func SetLang(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	lang = "en"
	for _, candidate := range supported {
		if strings.HasPrefix(tag, candidate) {
			lang = candidate
			break
		}
	}
	return lang
}

// T returns the translation of key, or key itself when none exists.
func T(key string) string {
	if translated, ok := translations[key][lang]; ok {
		return translated
	}
	return key
}

// Tf translates format and applies args to it.
func Tf(format string, args ...any) string {
	return fmt.Sprintf(T(format), args...)
}

func GetLang() string {
	return lang
}
