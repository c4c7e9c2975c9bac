package admin

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	ordersapp "github.com/Apurer/coffee-admin/internal/domains/orders/application"
	"github.com/Apurer/coffee-admin/internal/domains/orders/domain"
	"github.com/Apurer/coffee-admin/internal/platform/drafts"
	"github.com/Apurer/coffee-admin/internal/shared/listview"
)

const orderDraftKind = "order"

func (c *cli) ordersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "orders",
		Aliases: []string{"order"},
		Short:   "List, create, inspect and delete orders and change their status",
	}
	cmd.AddCommand(c.ordersList(), c.ordersShow(), c.ordersCreate(), c.ordersStatus(), c.ordersDelete())
	return cmd
}

func (c *cli) ordersList() *cobra.Command {
	var q listQuery
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List orders with per-status tabs",
		Example: `  coffee-admin orders list --tab shipping
  coffee-admin orders list --search kim@example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd, func(ctx context.Context, a *App, p printer) error {
				if err := a.orders.Refresh(ctx); err != nil {
					return err
				}
				view := a.orders.View(q.query())
				return p.emit(pageOf(view), func(w io.Writer) error {
					tabs(w, view)
					if view.Rows.Empty() {
						fmt.Fprintln(w, "No orders found.")
						return nil
					}
					fmt.Fprintln(w, "ID\tMEMBER\tSTATUS\tQTY\tTOTAL\tORDERED")
					for _, o := range view.Rows.Items {
						fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\n",
							o.OrderID, dash(o.Member.Name), o.Status.DisplayName(), o.Quantity(), won(o.TotalAmount), o.OrderDate.Format("2006-01-02 15:04"))
					}
					footer(w, view.Rows.Page, view.Rows.TotalPages, view.Window)
					return nil
				})
			})
		},
	}
	q.register(cmd, true)
	return cmd
}

func tabs(w io.Writer, view listview.View[domain.Order]) {
	names := append([]string{listview.TabAll}, statusNames()...)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		label := fmt.Sprintf("%s %d", name, view.TabCounts[name])
		if name == view.Query.Tab {
			label = "[" + label + "]"
		}
		parts = append(parts, label)
	}
	fmt.Fprintln(w, strings.Join(parts, "  "))
	fmt.Fprintln(w)
}

func statusNames() []string {
	out := make([]string, 0, len(domain.Statuses))
	for _, s := range domain.Statuses {
		out = append(out, string(s))
	}
	return out
}

func (c *cli) ordersShow() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show the detail of one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.withApp(cmd, func(ctx context.Context, a *App, p printer) error {
				if err := a.orders.Refresh(ctx); err != nil {
					return err
				}
				o, err := a.orders.Select(id)
				if err != nil {
					return fmt.Errorf("order %d: %w", id, err)
				}
				defer a.orders.CloseDetail()
				return p.emit(o, func(w io.Writer) error {
					orderDetail(w, o)
					return nil
				})
			})
		},
	}
}

func orderDetail(w io.Writer, o domain.Order) {
	fmt.Fprintf(w, "Order\t%d\n", o.OrderID)
	fmt.Fprintf(w, "Status\t%s (%s)\n", o.Status.DisplayName(), o.Status)
	fmt.Fprintf(w, "Member\t%s <%s> %s\n", dash(o.Member.Name), o.Member.Email, o.Member.Phone)
	fmt.Fprintf(w, "Ship to\t%s\n", dash(o.ShippingAddress))
	fmt.Fprintf(w, "Ordered\t%s\n", o.OrderDate.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Updated\t%s\n", o.UpdatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PRODUCT\tOPTION\tQTY\tUNIT\tSUBTOTAL")
	for _, it := range o.Items {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", it.ProductName, it.OptionValue, it.Quantity, won(it.UnitPrice), won(it.Subtotal))
	}
	fmt.Fprintf(w, "\t\t%d\t\t%s\n", o.Quantity(), won(o.TotalAmount))
}

func (c *cli) ordersCreate() *cobra.Command {
	var (
		file     string
		resume   bool
		memberID int64
		address  string
		items    []string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an order for a member",
		Long: `Create an order. Each --item is productId:option:quantity where option is
an option id or its weight, e.g. 3:500g:2. The shipping address defaults
to the member's address.`,
		Example: `  coffee-admin orders create --member 1 --item 3:200g:2 --item 5:1kg:1`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd, func(ctx context.Context, a *App, p printer) error {
				if err := a.members.Refresh(ctx); err != nil {
					return err
				}
				if err := a.products.Refresh(ctx); err != nil {
					return err
				}
				form := a.orders.NewForm(a.members.Store(), a.products.Store())
				if err := loadOrderDraft(ctx, a.drafts, file, resume, form); err != nil {
					return err
				}
				if cmd.Flags().Changed("member") {
					form.SelectMember(memberID)
				}
				if cmd.Flags().Changed("address") {
					form.SetAddress(address)
				}
				if len(items) > 0 {
					if err := setLines(form, items); err != nil {
						return err
					}
				}

				draft := form.Draft()
				saved, err := a.orders.Submit(ctx, form)
				if err != nil {
					keepDraft(ctx, cmd, a, orderDraftKind, draft)
					return err
				}
				_ = a.drafts.Discard(ctx, orderDraftKind)
				return p.emit(saved, func(w io.Writer) error {
					orderDetail(w, saved)
					return nil
				})
			})
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&file, "file", "f", "", "read the order draft from a YAML or JSON file")
	fs.BoolVar(&resume, "resume", false, "start from the draft saved by the last failed attempt")
	fs.Int64Var(&memberID, "member", 0, "ordering member id")
	fs.StringVar(&address, "address", "", "shipping address")
	fs.StringArrayVar(&items, "item", nil, "line as productId:option:quantity (repeatable)")
	return cmd
}

// setLines replaces the form's rows with the parsed --item values.
func setLines(form *ordersapp.Form, items []string) error {
	d := form.Draft()
	d.Lines = []ordersapp.Line{{Quantity: 1}}
	form.SetDraft(d)
	for i, raw := range items {
		if i > 0 && !form.AddLine() {
			return fmt.Errorf("too many items")
		}
		parts := strings.Split(raw, ":")
		if len(parts) < 2 || len(parts) > 3 {
			return fmt.Errorf("item %q: want productId:option:quantity", raw)
		}
		productID, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			return fmt.Errorf("item %q: %w", raw, err)
		}
		form.SetLineProduct(i, productID)
		form.SetLineOption(i, optionID(form, i, parts[1]))
		qty := 1
		if len(parts) == 3 {
			if qty, err = strconv.Atoi(parts[2]); err != nil {
				return fmt.Errorf("item %q: %w", raw, err)
			}
		}
		form.SetLineQuantity(i, qty)
	}
	return nil
}

// optionID accepts an option id or weight. Unknown values map to 0 so the
// form reports the missing option.
func optionID(form *ordersapp.Form, line int, raw string) int64 {
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return id
	}
	for _, o := range form.Options(line) {
		if strings.EqualFold(o.OptionValue, raw) {
			return o.OptionID
		}
	}
	return 0
}

func loadOrderDraft(ctx context.Context, store *drafts.Store, file string, resume bool, form *ordersapp.Form) error {
	var d ordersapp.Draft
	switch {
	case file != "":
		if err := drafts.ReadFile(file, &d); err != nil {
			return err
		}
	case resume:
		ok, err := store.Load(ctx, orderDraftKind, &d)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no saved order draft in %s", store.Path(orderDraftKind))
		}
	default:
		return nil
	}
	form.SetDraft(d)
	return nil
}

func (c *cli) ordersStatus() *cobra.Command {
	return &cobra.Command{
		Use:   "status ID STATUS",
		Short: "Change the status of an order",
		Long: "Change the status of an order. Any status may follow any other: " +
			strings.Join(statusNames(), ", ") + ".",
		Example: `  coffee-admin orders status 7 shipping`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.withApp(cmd, func(ctx context.Context, a *App, p printer) error {
				if err := a.orders.Refresh(ctx); err != nil {
					return err
				}
				updated, err := a.orders.UpdateStatus(ctx, id, args[1])
				if err != nil {
					return err
				}
				return p.emit(updated, func(w io.Writer) error {
					fmt.Fprintf(w, "%d\t%s\t%s\n", updated.OrderID, updated.Status, updated.Status.DisplayName())
					return nil
				})
			})
		},
	}
}

func (c *cli) ordersDelete() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an order after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.withApp(cmd, func(ctx context.Context, a *App, _ printer) error {
				return deleted(a.orders.Delete(ctx, id, c.confirmer(cmd)), a)
			})
		},
	}
	cmd.Flags().BoolVarP(&c.yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
