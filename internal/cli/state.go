package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	channelDomain "github.com/reshetovitsme/tg-channel-relay/internal/modules/channel/domain"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Print the monitored channel registry",
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := loadState(cmd)
		if err != nil {
			return err
		}
		printState(cmd.OutOrStdout(), state)
		return nil
	},
}

func printState(w io.Writer, state *channelDomain.State) {
	if state.GlobalMuted {
		fmt.Fprintln(w, "Relay:    "+color.YellowString("paused"))
	} else {
		fmt.Fprintln(w, "Relay:    "+color.GreenString("active"))
	}
	fmt.Fprintf(w, "Channels: %d\n", len(state.Channels))

	for _, id := range state.IDs() {
		ch := state.Channels[id]
		flag := color.GreenString("live ")
		if ch.Muted {
			flag = color.RedString("muted")
		}
		line := fmt.Sprintf("  %s %-16d %s", flag, id, ch.Name(id))
		if ch.LastGroupID != "" {
			seen := time.UnixMilli(ch.LastGroupTimestamp).UTC().Format(time.RFC3339)
			line += fmt.Sprintf("  (last group %s at %s)", ch.LastGroupID, seen)
		}
		fmt.Fprintln(w, line)
	}
}
