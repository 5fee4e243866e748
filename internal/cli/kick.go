package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	kickDomain "github.com/reshetovitsme/tg-channel-relay/internal/modules/kick/domain"
)

var (
	kickURL     string
	kickSecret  string
	kickTimeout time.Duration
)

var kickCmd = &cobra.Command{
	Use:   "kick <user_id>",
	Short: "Remove a user from every monitored channel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || userID == 0 {
			return oops.Errorf("invalid user id %q", args[0])
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), kickTimeout)
		defer cancel()

		summary, err := requestKick(ctx, http.DefaultClient, kickURL, kickSecret, userID)
		if err != nil {
			return err
		}
		printSummary(cmd.OutOrStdout(), summary)
		return nil
	},
}

func init() {
	kickCmd.Flags().StringVar(&kickURL, "url", "http://localhost:8080", "relay base URL")
	kickCmd.Flags().StringVar(&kickSecret, "secret", os.Getenv("KICK_SECRET"), "kick endpoint secret (defaults to $KICK_SECRET)")
	kickCmd.Flags().DurationVar(&kickTimeout, "timeout", 2*time.Minute, "request timeout")
}

func requestKick(ctx context.Context, client *http.Client, baseURL, secret string, userID int64) (*kickDomain.Summary, error) {
	endpoint, err := url.JoinPath(baseURL, "kick")
	if err != nil {
		return nil, oops.With("url", baseURL).Wrap(err)
	}

	body := fmt.Sprintf(`{"user_id":%d}`, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(body))
	if err != nil {
		return nil, oops.With("url", endpoint).Wrap(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+secret)

	resp, err := client.Do(req)
	if err != nil {
		return nil, oops.With("url", endpoint).Wrap(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return nil, oops.With("status", resp.StatusCode).Errorf("kick rejected: %s", apiErr.Error)
	}

	var summary kickDomain.Summary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		return nil, oops.With("context", "decoding kick summary").Wrap(err)
	}
	return &summary, nil
}

func printSummary(w io.Writer, s *kickDomain.Summary) {
	fmt.Fprintf(w, "Channels: %d  %s  %s\n",
		s.Total,
		color.GreenString("ok %d", s.SuccessCount),
		color.RedString("failed %d", s.FailCount),
	)
	for _, r := range s.Results {
		if r.Success {
			fmt.Fprintf(w, "  %s %d %s\n", color.GreenString("✓"), r.ChannelID, r.Title)
			continue
		}
		fmt.Fprintf(w, "  %s %d %s: %s\n", color.RedString("✗"), r.ChannelID, r.Title, r.Error)
	}
}
