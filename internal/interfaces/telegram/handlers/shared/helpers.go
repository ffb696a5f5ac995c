package shared

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"translation-notebook/internal/domain/pair"
)

// Callback data sent by the navigation keyboard
const (
	CallbackPrev = "nav_prev"
	CallbackNext = "nav_next"
	CallbackShow = "nav_show"
)

// CreateNavigationKeyboard creates the prev/next keyboard shown under a pair
func CreateNavigationKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀ Prev", CallbackPrev),
			tgbotapi.NewInlineKeyboardButtonData("🔄 Show", CallbackShow),
			tgbotapi.NewInlineKeyboardButtonData("Next ▶", CallbackNext),
		),
	)
}

// FormatPair renders a pair for display. A nil pair renders as empty.
func FormatPair(index pair.Index, p *pair.Pair) string {
	if p == nil {
		return fmt.Sprintf("#%d\n\n(nothing stored here yet)", index)
	}
	return fmt.Sprintf("#%d\n\n🇬🇧 %s\n\n🇪🇸 %s", index, orDash(p.English), orDash(p.Spanish))
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

// GetHelpText returns the help message
func GetHelpText(version uint64) string {
	return fmt.Sprintf(
		"📖 Translation notebook\n\n"+
			"/show - show the current pair\n"+
			"/next, /prev - move the cursor\n"+
			"/goto N - jump to pair N\n"+
			"/english TEXT - replace the english text\n"+
			"/spanish TEXT - replace your translation\n"+
			"/check - get a prompt asking for a review of your translation\n"+
			"/export - download everything as data.json\n\n"+
			"Send a data.json file to replace the whole notebook.\n\n"+
			"Dataset version: %d", version)
}
