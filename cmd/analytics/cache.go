package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/21f1001434/Agentic-AI/internal/config"
	"github.com/21f1001434/Agentic-AI/internal/services"
)

func newCacheCmd(cfg *config.Configuration) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached snapshots and their catalog views",
	}
	cmd.AddCommand(
		newCacheListCmd(cfg),
		newCacheDeleteCmd(cfg),
		newCacheClearCmd(cfg),
	)
	return cmd
}

func newCacheListCmd(cfg *config.Configuration) *cobra.Command {
	var (
		prefix string
		newest bool
		limit  uint64
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			result, err := services.NewSnapshotService(st).List(cmd.Context(), services.SnapshotListParams{
				Prefix:      prefix,
				NewestFirst: newest,
				Limit:       limit,
			})
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tREGISTERED\tPATH")
			for _, e := range result.Snapshots {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Name, humanize.Time(e.RegisteredAt), e.Path)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\n%d registered\n", result.Total)
			if len(result.Unregistered) > 0 {
				warn := color.New(color.FgYellow).SprintFunc()
				fmt.Fprintf(cmd.OutOrStdout(), "%s %d snapshot files have no catalog view:\n", warn("note:"), len(result.Unregistered))
				for _, k := range result.Unregistered {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", k)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "only keys starting with this prefix")
	cmd.Flags().BoolVar(&newest, "newest", false, "sort by registration time, newest first")
	cmd.Flags().Uint64Var(&limit, "limit", 0, "maximum number of entries (0 for all)")
	return cmd
}

func newCacheDeleteCmd(cfg *config.Configuration) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <key>...",
		Short: "Delete snapshots and drop their views",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			svc := services.NewSnapshotService(st)
			for _, key := range args {
				if err := svc.Delete(cmd.Context(), key); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", key)
			}
			return nil
		},
	}
}

func newCacheClearCmd(cfg *config.Configuration) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every snapshot and view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			removed, err := services.NewSnapshotService(st).Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d snapshots\n", removed)
			return nil
		},
	}
}
