package main

import (
	"github.com/spf13/cobra"

	"ytinsight/internal/app"
	"ytinsight/internal/keywords"
)

func newKeywordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keyword [keyword]",
		Short: "Analyze search volume, competition and related keywords",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				result, err := a.Analyzer.Analyze(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), result)
			})
		},
	}
}

func newCommentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "comments [video-url]",
		Short: "Collect and analyze a video's top-level comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				result, err := a.Collector.Collect(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), result)
			})
		},
	}
}

func newRankingCmd() *cobra.Command {
	var maxResults, topN int

	cmd := &cobra.Command{
		Use:   "ranking [query]",
		Short: "Rank channels by average views for a query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				rankings, err := a.Ranker.Rank(cmd.Context(), args[0], maxResults, topN)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), rankings)
			})
		},
	}

	cmd.Flags().IntVarP(&maxResults, "max", "m", keywords.DefaultRankingResults, "Videos to search (10-50)")
	cmd.Flags().IntVarP(&topN, "top", "n", keywords.DefaultRankingTopN, "Channels to return (1-20)")
	return cmd
}

func newQuotaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quota",
		Short: "Check whether the YouTube Data API is accepting requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app.App) error {
				return printJSON(cmd.OutOrStdout(), a.Quota.Check(cmd.Context()))
			})
		},
	}
}
