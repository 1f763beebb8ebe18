// Package locale holds the display strings in English and Dutch.
package locale

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys. The English text doubles as the key.
const (
	NoStandup            = "No standup today. Go touch some grass"
	StandupAt            = "Standup at %s"
	StartsIn             = "Starts in %s"
	LateBy               = "Late by %s"
	ReminderTitle        = "Standup"
	ReminderBody         = "Standup starts in one minute"
	NotificationsOn      = "Notifications on"
	NotificationsOff     = "Notifications off"
	NotificationsHint    = "Press n to enable notifications"
	NotificationsBlocked = "Notifications are blocked"
	Unsupported          = "Desktop notifications are not supported on this system"
	DismissHint          = "Press any key to continue"
	ReminderSent         = "Reminder sent"
)

var supported = []language.Tag{language.English, language.Dutch}

var matcher = language.NewMatcher(supported)

func init() {
	nl := map[string]string{
		NoStandup:            "Geen standup vandaag. Raak wat gras aan",
		StandupAt:            "Standup om %s",
		StartsIn:             "Begint over %s",
		LateBy:               "%s te laat",
		ReminderTitle:        "Standup",
		ReminderBody:         "Standup begint over één minuut",
		NotificationsOn:      "Meldingen aan",
		NotificationsOff:     "Meldingen uit",
		NotificationsHint:    "Druk op n om meldingen aan te zetten",
		NotificationsBlocked: "Meldingen zijn geblokkeerd",
		Unsupported:          "Meldingen worden niet ondersteund op dit systeem",
		DismissHint:          "Druk op een toets om verder te gaan",
		ReminderSent:         "Herinnering verstuurd",
	}
	for key, msg := range nl {
		if err := message.SetString(language.Dutch, key, msg); err != nil {
			panic(fmt.Sprintf("locale: register %q: %v", key, err))
		}
	}
}

// Printer formats display strings for one language.
type Printer struct {
	tag language.Tag
	p   *message.Printer
}

// New returns a Printer for the closest supported match of locale, which is
// a BCP 47 tag such as "en", "nl" or "nl-BE".
func New(locale string) (*Printer, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	_, idx, _ := matcher.Match(tag)
	base := supported[idx]
	return &Printer{tag: base, p: message.NewPrinter(base)}, nil
}

// Supported reports whether locale parses and matches one of the bundled
// languages with at least low confidence.
func Supported(locale string) bool {
	tag, err := language.Parse(locale)
	if err != nil {
		return false
	}
	_, _, conf := matcher.Match(tag)
	return conf != language.No
}

// Tag is the language actually used.
func (p *Printer) Tag() language.Tag { return p.tag }

// Sprintf formats key in the printer's language.
func (p *Printer) Sprintf(key string, args ...any) string {
	return p.p.Sprintf(key, args...)
}
