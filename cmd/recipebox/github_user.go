package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"recipebox/internal/modules/github"
)

var githubUserCmd = &cobra.Command{
	Use:   "github-user <login>",
	Short: "Look up a GitHub profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runGitHubUser,
}

func init() {
	rootCmd.AddCommand(githubUserCmd)
	githubUserCmd.Flags().Bool("json", false, "output as JSON")
}

func runGitHubUser(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	client := newGitHubClient()
	user, err := client.FetchUser(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, github.ErrUserNotFound) || errors.Is(err, github.ErrUpstream) {
			return errors.New(github.MsgUserNotFound)
		}
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(user)
	}

	fmt.Fprintln(out, user.DisplayName())
	if user.Bio != "" {
		fmt.Fprintln(out, user.Bio)
	}
	fmt.Fprintln(out, user.HTMLURL)
	return nil
}

func newGitHubClient() *github.Client {
	return github.NewClient(cfg.GitHubAPIURL, cfg.GitHubToken, cfg.UpstreamTimeout, logger,
		github.WithMinInterval(cfg.GitHubMinInterval),
		github.WithCache(cfg.GitHubCacheSize, cfg.GitHubCacheTTL),
	)
}
