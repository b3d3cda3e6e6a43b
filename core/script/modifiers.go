package script

import (
	"strconv"

	"github.com/rs/zerolog"
)

// Modifier names recognised in the modifier section.
const (
	ModIgnore    = "ignore"
	ModMessage   = "%"
	ModNotFatal  = "not_fatal"
	ModNoMessage = "no_message"
)

// Modifiers alter how the run loop treats one instruction.
type Modifiers struct {
	// IgnoreCount is how many following instructions are skipped when this
	// one succeeds.
	IgnoreCount int
	// NotFatal downgrades a failure to a no-op.
	NotFatal bool
	// NoMessage suppresses the failure text.
	NoMessage bool
	// Message replaces the failure text when non-empty.
	Message string
}

// ParseModifiers interprets already expanded modifier words left to right.
// Problems are logged and skipped.
func ParseModifiers(log *zerolog.Logger, words []string) Modifiers {
	var mods Modifiers

	for i := 0; i < len(words); i++ {
		switch word := words[i]; word {
		case ModIgnore:
			if i+1 >= len(words) {
				log.Warn().Msg("modifier 'ignore' is missing its count")
				continue
			}
			i++
			count, err := strconv.Atoi(words[i])
			if err != nil || count < 0 {
				log.Warn().Str("value", words[i]).Msg("modifier 'ignore' needs a non-negative count")
				continue
			}
			mods.IgnoreCount = count

		case ModMessage:
			if i+1 >= len(words) {
				log.Warn().Msg("modifier '%' is missing its message")
				continue
			}
			i++
			mods.Message = words[i]

		case ModNotFatal:
			mods.NotFatal = true

		case ModNoMessage:
			mods.NoMessage = true

		default:
			log.Warn().Str("modifier", word).Msg("unknown modifier ignored")
		}
	}

	return mods
}

// ReportedMessage is the failure text to surface for a handler message, or
// "" when it is suppressed.
func (m Modifiers) ReportedMessage(handlerMessage string) string {
	switch {
	case m.Message != "":
		return m.Message
	case m.NoMessage:
		return ""
	default:
		return handlerMessage
	}
}
