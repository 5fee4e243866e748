package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	relayDomain "github.com/reshetovitsme/tg-channel-relay/internal/modules/relay/domain"
)

var panelCmd = &cobra.Command{
	Use:   "panel",
	Short: "Print the control panel administrators would see",
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := loadState(cmd)
		if err != nil {
			return err
		}
		printPanel(cmd.OutOrStdout(), relayDomain.RenderPanel(state))
		return nil
	},
}

func printPanel(w io.Writer, panel relayDomain.Panel) {
	fmt.Fprintln(w, panel.Text)
	fmt.Fprintln(w)
	for _, row := range panel.Rows {
		for _, btn := range row {
			fmt.Fprintf(w, "[%s] %s\n", btn.Label, color.HiBlackString(btn.Action))
		}
	}
}
