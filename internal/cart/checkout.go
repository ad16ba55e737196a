package cart

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/stockroom-erp/stockroom-cli/internal/api"
)

// LineCreator is the slice of the sales-orders client checkout needs.
type LineCreator interface {
	CreateLine(ctx context.Context, line api.SalesOrderLine) (api.SalesOrderLine, error)
}

// FailedLine pairs a cart line with the error its creation produced.
type FailedLine struct {
	Line Line
	Err  string
}

// CheckoutResult reports the batch outcome.
type CheckoutResult struct {
	Created []api.SalesOrderLine
	Failed  []FailedLine
}

// Succeeded reports whether every line was created.
func (r CheckoutResult) Succeeded() bool {
	return len(r.Failed) == 0
}

// Checkout submits one sales-order-line creation per cart line against the
// given order, awaits every outcome, and clears the cart only when all lines
// succeeded. Failed lines stay in the cart so the user can retry them.
func (c *Cart) Checkout(ctx context.Context, creator LineCreator, salesOrderID string) (CheckoutResult, error) {
	lines := c.Lines()
	if len(lines) == 0 {
		return CheckoutResult{}, nil
	}

	created := make([]*api.SalesOrderLine, len(lines))
	failures := make([]*FailedLine, len(lines))

	var g errgroup.Group
	for i, line := range lines {
		i, line := i, line
		g.Go(func() error {
			out, err := creator.CreateLine(ctx, api.SalesOrderLine{
				ProductID:    line.ProductID,
				SalesOrderID: salesOrderID,
				Quantity:     line.Quantity,
				UnitPrice:    line.UnitPrice,
			})
			if err != nil {
				failures[i] = &FailedLine{Line: line, Err: err.Error()}
				return nil
			}
			created[i] = &out
			return nil
		})
	}
	_ = g.Wait()

	result := CheckoutResult{}
	for i := range lines {
		if failures[i] != nil {
			result.Failed = append(result.Failed, *failures[i])
			continue
		}
		result.Created = append(result.Created, *created[i])
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if result.Succeeded() {
		c.lines = nil
	} else {
		kept := make([]Line, 0, len(result.Failed))
		for _, failed := range result.Failed {
			kept = append(kept, failed.Line)
		}
		c.lines = kept
	}
	if err := c.persist(ctx); err != nil {
		return result, err
	}
	return result, nil
}
