package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/stockroom-erp/stockroom-cli/internal/api"
	"github.com/stockroom-erp/stockroom-cli/internal/app"
	"github.com/stockroom-erp/stockroom-cli/internal/browse"
	"github.com/stockroom-erp/stockroom-cli/internal/cart"
	"github.com/stockroom-erp/stockroom-cli/internal/dashboard"
	"github.com/stockroom-erp/stockroom-cli/internal/postore"
	"github.com/stockroom-erp/stockroom-cli/internal/session"
	"github.com/stockroom-erp/stockroom-cli/internal/statestore"
)

var (
	routeDashboard = session.Route{
		Name:         "dashboard",
		AllowedRoles: []string{session.RoleAdmin, session.RoleWarehouseManager},
	}
	routeUsers = session.Route{
		Name:         "users",
		AllowedRoles: []string{session.RoleAdmin},
	}
	routeAny = session.Route{Name: "any"}
)

// console is the interactive shell. All state mutation goes through the
// internal packages; the console only parses lines and renders results.
type console struct {
	cfg      *app.Config
	logger   *slog.Logger
	store    statestore.Store
	sessions *session.Manager
	guard    *session.Guard
	clients  *api.Set

	dash   *dashboard.Dashboard
	orders *postore.Store
	basket *cart.Cart
}

func newConsole(cfg *app.Config, logger *slog.Logger, store statestore.Store, sessions *session.Manager, clients *api.Set) *console {
	return &console{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		sessions: sessions,
		guard:    session.NewGuard(sessions),
		clients:  clients,
		dash:     dashboard.New(clients, cfg.PageSize, logger),
		orders:   postore.New(clients.PurchaseOrders, logger),
	}
}

func (c *console) run(ctx context.Context, in io.Reader, out io.Writer) error {
	basket, err := cart.Load(ctx, c.store)
	if err != nil {
		return err
	}
	c.basket = basket

	fmt.Fprintln(out, "stockroom console. type 'help' for commands.")
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "stockroom> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		args := strings.Fields(scanner.Text())
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" || args[0] == "quit" {
			return nil
		}
		if err := c.dispatch(ctx, out, args); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
}

func (c *console) dispatch(ctx context.Context, out io.Writer, args []string) error {
	switch args[0] {
	case "help":
		c.printHelp(out)
		return nil
	case "login":
		return c.login(ctx, out, args[1:])
	case "logout":
		return c.sessions.Clear(ctx)
	case "whoami":
		return c.whoami(ctx, out)
	case "dashboard":
		return c.showDashboard(ctx, out)
	case "inventory":
		return c.showInventory(ctx, out)
	case "products":
		return guarded(ctx, c.guard, routeAny, out, func() error {
			return runList(ctx, out, c.dash.Products, c.clients.Products.List, args[1:], func(p api.Product) string {
				return fmt.Sprintf("%s  %-24s sku=%-10s price=%.2f stock=%d", p.ID, p.Name, p.SKU, p.Price, p.Stock)
			})
		})
	case "users":
		return guarded(ctx, c.guard, routeUsers, out, func() error {
			return runList(ctx, out, c.dash.Users, c.clients.Users.List, args[1:], func(u api.User) string {
				return fmt.Sprintf("%s  %s %s  %-28s %s", u.ID, u.FirstName, u.LastName, u.Email, u.Role)
			})
		})
	case "warehouses":
		return guarded(ctx, c.guard, routeAny, out, func() error {
			return runList(ctx, out, c.dash.Warehouses, c.clients.Warehouses.List, args[1:], func(w api.Warehouse) string {
				return fmt.Sprintf("%s  %-24s %s", w.ID, w.Name, w.City)
			})
		})
	case "suppliers":
		return guarded(ctx, c.guard, routeAny, out, func() error {
			return runList(ctx, out, c.dash.Suppliers, c.clients.Suppliers.List, args[1:], func(s api.Supplier) string {
				return fmt.Sprintf("%s  %-24s active=%t  %s", s.ID, s.Name, s.Active, s.ContactInfo)
			})
		})
	case "sales":
		return guarded(ctx, c.guard, routeAny, out, func() error {
			return runList(ctx, out, c.dash.SalesOrders, c.clients.SalesOrders.List, args[1:], func(o api.SalesOrder) string {
				return fmt.Sprintf("%s  user=%s  %s", o.ID, o.UserID, o.OrderStatus)
			})
		})
	case "po":
		return guarded(ctx, c.guard, routeDashboard, out, func() error {
			return c.purchaseOrders(ctx, out, args[1:])
		})
	case "cart":
		return guarded(ctx, c.guard, routeAny, out, func() error {
			return c.cartCmd(ctx, out, args[1:])
		})
	case "checkout":
		return guarded(ctx, c.guard, routeAny, out, func() error {
			return c.checkout(ctx, out)
		})
	default:
		fmt.Fprintf(out, "unknown command %q, type 'help'\n", args[0])
		return nil
	}
}

func (c *console) printHelp(out io.Writer) {
	fmt.Fprint(out, `  login <email> <password>     authenticate against the API
  logout                       drop the stored session
  whoami                       show the current role
  dashboard                    load and show the landing summary
  inventory                    show stock with resolved names
  products|users|warehouses|suppliers|sales [search <q>] [page <n>]
  po list [status]             list purchase orders
  po get <id>                  show one order with its lines
  po create <supplierID> <productID>:<qty>:<price> ...
  po submit|approve|receive|cancel <id>
  po bulk <status> <id> ...    set status on several orders
  po delete <id>
  po stats                     status counts and totals
  cart show|add <productID> [qty]|qty <productID> <n>|rm <productID>|clear
  checkout                     place a sales order from the cart
  exit
`)
}

func guarded(ctx context.Context, guard *session.Guard, route session.Route, out io.Writer, fn func() error) error {
	switch guard.Resolve(ctx, route) {
	case session.Allow:
		return fn()
	case session.RedirectForbidden:
		fmt.Fprintf(out, "forbidden: %s requires one of %v\n", route.Name, route.AllowedRoles)
		return nil
	default:
		fmt.Fprintln(out, "not logged in, run: login <email> <password>")
		return nil
	}
}

func (c *console) login(ctx context.Context, out io.Writer, args []string) error {
	if len(args) != 2 {
		fmt.Fprintln(out, "usage: login <email> <password>")
		return nil
	}
	view, err := c.sessions.Login(ctx, c.clients.Auth, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "logged in, landing view: %s\n", view)
	if view == session.ViewDashboard {
		return c.showDashboard(ctx, out)
	}
	return nil
}

func (c *console) whoami(ctx context.Context, out io.Writer) error {
	role, err := c.sessions.Role(ctx)
	if err != nil {
		fmt.Fprintln(out, "not logged in")
		return nil
	}
	fmt.Fprintf(out, "role: %s\n", role)
	return nil
}

func (c *console) showDashboard(ctx context.Context, out io.Writer) error {
	return guarded(ctx, c.guard, routeDashboard, out, func() error {
		if err := c.dash.Load(ctx); err != nil {
			return err
		}
		sum := c.dash.Summarize()
		fmt.Fprintf(out, "products=%d users=%d warehouses=%d suppliers=%d sales=%d stock value=%.2f\n",
			sum.Products, sum.Users, sum.Warehouses, sum.Suppliers, sum.SalesOrders, sum.StockValue)
		po := sum.PurchaseOrders
		fmt.Fprintf(out, "purchase orders: total=%d draft=%d created=%d approved=%d received=%d cancelled=%d amount=%.2f\n",
			po.Total, po.Draft, po.Created, po.Approved, po.Received, po.Cancelled, po.TotalAmount)
		return nil
	})
}

func (c *console) showInventory(ctx context.Context, out io.Writer) error {
	return guarded(ctx, c.guard, routeAny, out, func() error {
		if len(c.dash.Inventories.Items()) == 0 {
			if err := c.dash.Load(ctx); err != nil {
				return err
			}
		}
		for _, v := range c.dash.InventoryViews() {
			fmt.Fprintf(out, "%s  %-24s @ %-20s on hand=%d reserved=%d %s\n",
				v.ID, v.ProductName, v.WarehouseName, v.QtyOnHand, v.QtyReserved, v.ReferenceDocument)
		}
		return nil
	})
}

// runList drives one browse list: optional search and page subcommands, then
// renders the visible window.
func runList[T browse.Searchable](ctx context.Context, out io.Writer, list *browse.List[T], fetch browse.Fetcher[T], args []string, render func(T) string) error {
	if err := list.Load(ctx, fetch); err != nil {
		return err
	}
	for len(args) >= 2 {
		switch args[0] {
		case "search":
			list.SetQuery(args[1])
		case "page":
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("bad page %q", args[1])
			}
			list.SetPage(n)
		default:
			return fmt.Errorf("unknown option %q", args[0])
		}
		args = args[2:]
	}
	items, pg := list.Visible()
	for _, item := range items {
		fmt.Fprintln(out, render(item))
	}
	fmt.Fprintf(out, "page %d/%d (%d total)\n", pg.Page, pg.TotalPages, pg.Total)
	return nil
}

func (c *console) purchaseOrders(ctx context.Context, out io.Writer, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}
	switch args[0] {
	case "list":
		var filter *api.PurchaseOrderFilter
		if len(args) > 1 {
			filter = &api.PurchaseOrderFilter{Status: api.PurchaseOrderStatus(strings.ToUpper(args[1]))}
		}
		if err := c.orders.Dispatch(ctx, postore.LoadAll{Filter: filter}); err != nil {
			return err
		}
		for _, po := range c.orders.State().Orders {
			fmt.Fprintf(out, "%s  %-14s %-10s supplier=%s total=%.2f\n",
				po.ID, po.Reference, po.Status, po.SupplierID, po.Total())
		}
		return nil
	case "get":
		if len(args) != 2 {
			fmt.Fprintln(out, "usage: po get <id>")
			return nil
		}
		if err := c.orders.Dispatch(ctx, postore.LoadOne{ID: args[1]}); err != nil {
			return err
		}
		selected := c.orders.State().Selected
		if selected == nil {
			return nil
		}
		fmt.Fprintf(out, "%s %s %s supplier=%s total=%.2f\n",
			selected.ID, selected.Reference, selected.Status, selected.SupplierID, selected.Total())
		for _, line := range selected.OrderLines {
			fmt.Fprintf(out, "  %s  product=%s qty=%d unit=%.2f total=%.2f\n",
				line.ID, line.ProductID, line.Quantity, line.UnitPrice, line.LineTotal())
		}
		return nil
	case "create":
		if len(args) < 3 {
			fmt.Fprintln(out, "usage: po create <supplierID> <productID>:<qty>:<price> ...")
			return nil
		}
		draft := api.PurchaseOrderCreate{
			SupplierID:       args[1],
			ExpectedDelivery: time.Now().Add(7 * 24 * time.Hour),
		}
		for _, spec := range args[2:] {
			line, err := parseLine(spec)
			if err != nil {
				return err
			}
			draft.OrderLines = append(draft.OrderLines, line)
		}
		if err := c.orders.Dispatch(ctx, postore.Create{Draft: draft}); err != nil {
			return err
		}
		fmt.Fprintln(out, "created")
		return nil
	case "submit", "approve", "receive", "cancel":
		if len(args) != 2 {
			fmt.Fprintf(out, "usage: po %s <id>\n", args[0])
			return nil
		}
		status := map[string]api.PurchaseOrderStatus{
			"submit":  api.StatusCreated,
			"approve": api.StatusApproved,
			"receive": api.StatusReceived,
			"cancel":  api.StatusCancelled,
		}[args[0]]
		return c.orders.Dispatch(ctx, postore.SetStatus{ID: args[1], Status: status})
	case "bulk":
		if len(args) < 3 {
			fmt.Fprintln(out, "usage: po bulk <status> <id> ...")
			return nil
		}
		return c.orders.Dispatch(ctx, postore.BulkSetStatus{
			IDs:    args[2:],
			Status: api.PurchaseOrderStatus(strings.ToUpper(args[1])),
		})
	case "delete":
		if len(args) != 2 {
			fmt.Fprintln(out, "usage: po delete <id>")
			return nil
		}
		return c.orders.Dispatch(ctx, postore.Delete{ID: args[1]})
	case "stats":
		stats := postore.Statistics(c.orders.State())
		fmt.Fprintf(out, "total=%d draft=%d created=%d approved=%d received=%d cancelled=%d amount=%.2f\n",
			stats.Total, stats.Draft, stats.Created, stats.Approved, stats.Received, stats.Cancelled, stats.TotalAmount)
		return nil
	default:
		fmt.Fprintf(out, "unknown po command %q\n", args[0])
		return nil
	}
}

func parseLine(spec string) (api.OrderLineCreate, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 3 {
		return api.OrderLineCreate{}, fmt.Errorf("bad line %q, want productID:qty:price", spec)
	}
	qty, err := strconv.Atoi(parts[1])
	if err != nil {
		return api.OrderLineCreate{}, fmt.Errorf("bad quantity in %q", spec)
	}
	price, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return api.OrderLineCreate{}, fmt.Errorf("bad price in %q", spec)
	}
	return api.OrderLineCreate{ProductID: parts[0], Quantity: qty, UnitPrice: price}, nil
}

func (c *console) cartCmd(ctx context.Context, out io.Writer, args []string) error {
	if len(args) == 0 {
		args = []string{"show"}
	}
	switch args[0] {
	case "show":
		for _, line := range c.basket.Lines() {
			fmt.Fprintf(out, "%s  %-24s qty=%d unit=%.2f\n", line.ProductID, line.Name, line.Quantity, line.UnitPrice)
		}
		fmt.Fprintf(out, "total: %.2f\n", c.basket.Total())
		return nil
	case "add":
		if len(args) < 2 {
			fmt.Fprintln(out, "usage: cart add <productID> [qty]")
			return nil
		}
		product, err := c.clients.Products.Get(ctx, args[1])
		if err != nil {
			return err
		}
		qty := 1
		if len(args) == 3 {
			qty, err = strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("bad quantity %q", args[2])
			}
		}
		for i := 0; i < qty; i++ {
			if err := c.basket.Add(ctx, product); err != nil {
				return err
			}
		}
		return nil
	case "qty":
		if len(args) != 3 {
			fmt.Fprintln(out, "usage: cart qty <productID> <n>")
			return nil
		}
		n, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("bad quantity %q", args[2])
		}
		return c.basket.SetQuantity(ctx, args[1], n)
	case "rm":
		if len(args) != 2 {
			fmt.Fprintln(out, "usage: cart rm <productID>")
			return nil
		}
		return c.basket.Remove(ctx, args[1])
	case "clear":
		return c.basket.Clear(ctx)
	default:
		fmt.Fprintf(out, "unknown cart command %q\n", args[0])
		return nil
	}
}

func (c *console) checkout(ctx context.Context, out io.Writer) error {
	if len(c.basket.Lines()) == 0 {
		fmt.Fprintln(out, "cart is empty")
		return nil
	}
	userID, err := c.sessions.Subject(ctx)
	if err != nil {
		return err
	}
	order, err := c.clients.SalesOrders.Create(ctx, api.SalesOrder{UserID: userID, OrderStatus: "CREATED"})
	if err != nil {
		return err
	}
	result, err := c.basket.Checkout(ctx, c.clients.SalesOrders, order.ID)
	if err != nil {
		return err
	}
	if result.Succeeded() {
		fmt.Fprintf(out, "order %s placed, %d lines\n", order.ID, len(result.Created))
		return nil
	}
	fmt.Fprintf(out, "order %s placed with %d lines, %d failed:\n", order.ID, len(result.Created), len(result.Failed))
	for _, failed := range result.Failed {
		fmt.Fprintf(out, "  %s: %s\n", failed.Line.Name, failed.Err)
	}
	return nil
}
