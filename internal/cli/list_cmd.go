package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Alp4ka/bountypager"
)

// ListCmd returns the list command
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show one page of open bounties, newest first",
		Long: `Show one page of open bounties, newest first.

Claimed and paid-out bounties are skipped. The command prints a token for the
next page when there is one.

Usage:
  bountyfeed list                       # newest page from the contract
  bountyfeed list --local               # newest page from the local mirror
  bountyfeed list --limit 5 --token MTI # continue from a previous page`,
		RunE: runList,
	}

	cmd.Flags().Int("limit", 0, "Number of bounties per page (defaults to PAGE_SIZE)")
	cmd.Flags().String("token", "", "Next page token printed by a previous run")
	cmd.Flags().Bool("local", false, "Read from the local mirror instead of the contract")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	token, _ := cmd.Flags().GetString("token")
	local, _ := cmd.Flags().GetBool("local")

	e, err := loadEnv()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	var fetcher bountypager.BatchFetcher
	if local {
		s, err := e.openStore(ctx)
		if err != nil {
			return err
		}
		fetcher = s
	} else {
		ledger, err := e.dialLedger(ctx)
		if err != nil {
			return err
		}
		defer ledger.Close()
		fetcher = ledger
	}

	if limit <= 0 {
		limit = e.cfg.PageSize
	}
	pager, err := bountypager.DecodeCursorPager(limit, token)
	if err != nil {
		return fmt.Errorf("invalid --token: %w", err)
	}

	res, err := bountypager.NewEngine(fetcher).Paginate(ctx, pager)
	if err != nil {
		return err
	}

	renderPage(cmd.OutOrStdout(), res)
	return nil
}

func renderPage(w io.Writer, res *bountypager.PaginationResult) {
	if len(res.Items) == 0 {
		fmt.Fprintln(w, color.New(color.FgYellow).Sprint("No open bounties."))
	}

	for _, b := range res.Items {
		fmt.Fprintf(w, "%s %s %s\n",
			color.New(color.FgCyan).Sprintf("#%d", b.Index),
			color.New(color.Bold).Sprint(b.Name),
			color.New(color.FgGreen).Sprintf("%s ETH", b.Amount.String()),
		)
		fmt.Fprintf(w, "    %s\n", b.ShortDescription())
		fmt.Fprintf(w, "    by %s on %s\n", b.Issuer, time.Unix(b.CreatedAt, 0).UTC().Format(time.DateOnly))
	}

	if res.HasMore {
		fmt.Fprintf(w, "\nMore: --token %s\n", res.NextPageToken.String())
	}
}
