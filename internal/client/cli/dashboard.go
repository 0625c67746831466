package cli

import (
	"context"
	"fmt"
)

// Dashboard greets the user and shows record counts.
func (a *App) Dashboard(ctx context.Context) error {
	if id, ok := a.session.CurrentUser(); ok {
		printlnFn("Dashboard of", id.DisplayName())
	}
	sum, err := a.officeService.DashboardSummary(ctx)
	if err != nil {
		return a.fail(ctx, "dashboard", err)
	}
	printlnFn(fmt.Sprintf("Agreements:   %d", sum.Agreements))
	printlnFn(fmt.Sprintf("Clients:      %d", sum.Clients))
	printlnFn(fmt.Sprintf("Transactions: %d", sum.Transactions))
	return nil
}
