// Package cli implements relayctl, the operator CLI for the relay.
package cli

import (
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	channelDomain "github.com/reshetovitsme/tg-channel-relay/internal/modules/channel/domain"
	channelRepo "github.com/reshetovitsme/tg-channel-relay/internal/modules/channel/repository"
	"github.com/reshetovitsme/tg-channel-relay/internal/di"
)

var rootCmd = &cobra.Command{
	Use:          "relayctl",
	Short:        "Inspect and operate the Telegram channel relay",
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(panelCmd)
	rootCmd.AddCommand(kickCmd)
}

// loadState reads the persisted state through the same container the server uses.
func loadState(cmd *cobra.Command) (*channelDomain.State, error) {
	injector, err := di.Setup()
	if err != nil {
		return nil, err
	}
	defer di.Shutdown(injector)

	repo, err := do.Invoke[channelRepo.Repository](injector)
	if err != nil {
		return nil, err
	}
	return repo.Load(cmd.Context()), nil
}
