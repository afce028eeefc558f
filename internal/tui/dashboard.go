package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/naveenspark/backoffice/pkg/client"
	"github.com/naveenspark/backoffice/pkg/domain"
)

// statCount is one figure on the header summary line.
type statCount struct {
	label string
	n     int
}

// statsLoadedMsg carries the header summary counts.
type statsLoadedMsg struct {
	counts []statCount
	err    error
}

func (m statsLoadedMsg) failure() error { return m.err }

// counter returns the server-side total of a filtered list.
type counter struct {
	label string
	count func(ctx context.Context) (int, error)
}

// unknownTotal marks a counter whose endpoint reports no total. Such
// counters are left off the summary line.
const unknownTotal = -1

func totalOf[T any](l *client.Listing[T], filters map[string]string) func(context.Context) (int, error) {
	return func(ctx context.Context) (int, error) {
		page, err := l.List(ctx, client.ListParams{Page: 1, Limit: 1, Filters: filters})
		if err != nil {
			return 0, err
		}
		if !page.TotalReported {
			return unknownTotal, nil
		}
		return page.Total, nil
	}
}

func dashboardCounters(c *client.Client) []counter {
	return []counter{
		{"products", totalOf(&c.Products.Listing, nil)},
		{"users", totalOf(c.Users, nil)},
		{"pending occasions", totalOf(c.Occasions, map[string]string{"status": domain.OccasionPending})},
		{"in transit", totalOf(&c.DeliveryRecords.Listing, map[string]string{"status": domain.DeliveryInTransit})},
		{"pending withdrawals", totalOf(c.Withdrawals, map[string]string{"status": domain.WithdrawalPending})},
	}
}

// loadStats fetches every counter concurrently. The first failure cancels
// the rest.
func loadStats(counters []counter) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		counts := make([]statCount, len(counters))
		g, ctx := errgroup.WithContext(ctx)
		g.SetLimit(3)
		for i, ctr := range counters {
			g.Go(func() error {
				n, err := ctr.count(ctx)
				if err != nil {
					return fmt.Errorf("%s: %w", ctr.label, err)
				}
				counts[i] = statCount{label: ctr.label, n: n}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return statsLoadedMsg{err: err}
		}
		return statsLoadedMsg{counts: counts}
	}
}

func renderStats(counts []statCount) string {
	if len(counts) == 0 {
		return ""
	}
	parts := make([]string, 0, len(counts))
	for _, c := range counts {
		if c.n == unknownTotal {
			continue
		}
		n := fmt.Sprintf("%d", c.n)
		if c.n > 0 && strings.HasPrefix(c.label, "pending") {
			n = warnStyle.Render(n)
		} else {
			n = selectedStyle.Render(n)
		}
		parts = append(parts, n+" "+metaStyle.Render(c.label))
	}
	return strings.Join(parts, metaStyle.Render(" · "))
}
