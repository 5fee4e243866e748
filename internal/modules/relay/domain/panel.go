package domain

import (
	"fmt"
	"strconv"
	"strings"

	channelDomain "github.com/reshetovitsme/tg-channel-relay/internal/modules/channel/domain"
	"github.com/reshetovitsme/tg-channel-relay/internal/shared/errors"
)

const (
	// ActionToggleGlobal flips the global mute flag.
	ActionToggleGlobal = "toggle_global"
	// ActionToggleChannelPrefix prefixes a channel-scoped toggle; the channel id follows.
	ActionToggleChannelPrefix = "toggle_ch:"

	// LabelBudget is the display budget of a channel button label, in characters.
	LabelBudget = 30
)

// Button is one inline keyboard button.
type Button struct {
	Label  string
	Action string
}

// Panel is the rendered control surface: a status text and a keyboard
// whose first row is the global toggle followed by one row per channel.
type Panel struct {
	Text string
	Rows [][]Button
}

// ChannelAction builds the action tag toggling chatID.
func ChannelAction(chatID int64) string {
	return ActionToggleChannelPrefix + strconv.FormatInt(chatID, 10)
}

// RenderPanel derives the control panel from state.
func RenderPanel(state *channelDomain.State) Panel {
	var text strings.Builder

	if state.GlobalMuted {
		text.WriteString("⏸ Relay is paused\n")
	} else {
		text.WriteString("▶️ Relay is active\n")
	}

	ids := state.IDs()
	if len(ids) == 0 {
		text.WriteString("\nNo monitored channels yet.")
	} else {
		fmt.Fprintf(&text, "\nMonitored channels (%d):\n", len(ids))
	}

	globalLabel := "⏸ Pause all"
	if state.GlobalMuted {
		globalLabel = "▶️ Resume all"
	}

	rows := make([][]Button, 0, len(ids)+1)
	rows = append(rows, []Button{{Label: globalLabel, Action: ActionToggleGlobal}})

	for _, id := range ids {
		ch := state.Channels[id]
		fmt.Fprintf(&text, "%s %s (%d)\n", muteIndicator(ch.Muted), ch.Name(id), id)
		rows = append(rows, []Button{{
			Label:  muteIndicator(ch.Muted) + " " + truncate(ch.Name(id), LabelBudget),
			Action: ChannelAction(id),
		}})
	}

	return Panel{Text: strings.TrimRight(text.String(), "\n"), Rows: rows}
}

// ApplyToggle mutates state according to an action tag and returns the
// confirmation to show the actor. Unknown channels yield ErrChannelNotFound
// and unparseable tags ErrUnknownAction; neither mutates state.
func ApplyToggle(state *channelDomain.State, actionTag string) (string, error) {
	if actionTag == ActionToggleGlobal {
		state.GlobalMuted = !state.GlobalMuted
		if state.GlobalMuted {
			return "Relay paused for all channels", nil
		}
		return "Relay resumed", nil
	}

	raw, ok := strings.CutPrefix(actionTag, ActionToggleChannelPrefix)
	if !ok {
		return "Unknown action", errors.ErrUnknownAction
	}
	chatID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return "Unknown action", errors.ErrUnknownAction
	}

	ch, ok := state.Get(chatID)
	if !ok {
		return "Channel not found", errors.ErrChannelNotFound
	}

	ch.Muted = !ch.Muted
	if ch.Muted {
		return fmt.Sprintf("Muted %s", ch.Name(chatID)), nil
	}
	return fmt.Sprintf("Unmuted %s", ch.Name(chatID)), nil
}

func muteIndicator(muted bool) string {
	if muted {
		return "🔕"
	}
	return "🔔"
}

func truncate(s string, budget int) string {
	runes := []rune(s)
	if len(runes) <= budget {
		return s
	}
	return string(runes[:budget-1]) + "…"
}
