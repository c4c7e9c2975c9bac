package admin

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	productsapp "github.com/Apurer/coffee-admin/internal/domains/products/application"
	"github.com/Apurer/coffee-admin/internal/domains/products/domain"
	"github.com/Apurer/coffee-admin/internal/platform/drafts"
	"github.com/Apurer/coffee-admin/internal/shared/listview"
)

const productDraftKind = "product"

type productFlags struct {
	file        string
	resume      bool
	name        string
	price       int
	continent   string
	nationality string
	processType string
	thumbnail   string
	details     []string
	options     []string
}

func (f *productFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.file, "file", "f", "", "read the product draft from a YAML or JSON file")
	fs.BoolVar(&f.resume, "resume", false, "start from the draft saved by the last failed attempt")
	fs.StringVar(&f.name, "name", "", "product name")
	fs.IntVar(&f.price, "price", 0, "base price")
	fs.StringVar(&f.continent, "continent", "", "origin continent (see 'catalog')")
	fs.StringVar(&f.nationality, "nationality", "", "origin country within the continent")
	fs.StringVar(&f.processType, "type", "", "processing method (see 'catalog')")
	fs.StringVar(&f.thumbnail, "thumbnail", "", "thumbnail image: local path or s3://bucket/key")
	fs.StringArrayVar(&f.details, "detail", nil, "detail image to append (repeatable)")
	fs.StringArrayVar(&f.options, "option", nil, "option as weight:extraPrice:stock, replaces all options (repeatable)")
}

// apply copies the flags the user actually set onto the form.
func (f *productFlags) apply(cmd *cobra.Command, form *productsapp.Form) error {
	changed := cmd.Flags().Changed
	if changed("name") {
		form.SetName(f.name)
	}
	if changed("price") {
		form.SetPrice(f.price)
	}
	if changed("continent") {
		form.SetContinent(f.continent)
	}
	if changed("nationality") {
		form.SetNationality(f.nationality)
	}
	if changed("type") {
		form.SetType(f.processType)
	}
	if changed("thumbnail") {
		form.SetThumbnail(f.thumbnail)
	}
	if len(f.details) > 0 {
		form.AddDetailImages(f.details...)
	}
	if len(f.options) > 0 {
		opts := make([]domain.OptionInput, 0, len(f.options))
		for _, raw := range f.options {
			o, err := parseOption(raw)
			if err != nil {
				return err
			}
			opts = append(opts, o)
		}
		d := form.Draft()
		d.Options = opts
		form.SetDraft(d)
	}
	return nil
}

// parseOption reads weight[:extraPrice[:stock]].
func parseOption(raw string) (domain.OptionInput, error) {
	parts := strings.Split(raw, ":")
	if len(parts) > 3 {
		return domain.OptionInput{}, fmt.Errorf("option %q: want weight:extraPrice:stock", raw)
	}
	o := domain.OptionInput{OptionValue: strings.TrimSpace(parts[0])}
	nums := []*int{&o.ExtraPrice, &o.Stock}
	for i, p := range parts[1:] {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return domain.OptionInput{}, fmt.Errorf("option %q: %w", raw, err)
		}
		*nums[i] = n
	}
	return o, nil
}

func (c *cli) productsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product"},
		Short:   "List, create, update and delete products",
	}
	cmd.AddCommand(
		c.productsList(),
		c.productsShow(),
		c.productsCreate(),
		c.productsUpdate(),
		c.productsDelete(),
	)
	return cmd
}

func (c *cli) productsList() *cobra.Command {
	var q listQuery
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products, newest first",
		Example: `  coffee-admin products list
  coffee-admin products list --search ethiopia --page 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd, func(ctx context.Context, a *App, p printer) error {
				if err := a.products.Refresh(ctx); err != nil {
					return err
				}
				view := a.products.View(q.query())
				return p.emit(pageOf(view), func(w io.Writer) error {
					if view.Rows.Empty() {
						fmt.Fprintln(w, "No products found.")
						return nil
					}
					fmt.Fprintln(w, "ID\tNAME\tPRICE\tORIGIN\tTYPE\tOPTIONS")
					for _, pr := range view.Rows.Items {
						fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
							pr.ProductID, pr.ProductName, won(pr.BasePrice), origin(pr), dash(pr.Type), optionSummary(pr.Options))
					}
					footer(w, view.Rows.Page, view.Rows.TotalPages, view.Window)
					return nil
				})
			})
		},
	}
	q.register(cmd, false)
	return cmd
}

func (c *cli) productsShow() *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one product with its options and image URLs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.withApp(cmd, func(ctx context.Context, a *App, p printer) error {
				if err := a.products.Refresh(ctx); err != nil {
					return err
				}
				pr, ok := a.products.Store().Find(id)
				if !ok {
					return fmt.Errorf("product %d not found", id)
				}
				return p.emit(pr, func(w io.Writer) error {
					fmt.Fprintf(w, "ID\t%d\n", pr.ProductID)
					fmt.Fprintf(w, "Name\t%s\n", pr.ProductName)
					fmt.Fprintf(w, "Price\t%s\n", won(pr.BasePrice))
					fmt.Fprintf(w, "Origin\t%s\n", origin(pr))
					fmt.Fprintf(w, "Type\t%s\n", dash(pr.Type))
					fmt.Fprintf(w, "Thumbnail\t%s\n", dash(domain.ResolveImageURL(p.origin, pr.ThumbnailImg)))
					for i, img := range pr.DetailImages {
						fmt.Fprintf(w, "Detail %d\t%s\n", i+1, domain.ResolveImageURL(p.origin, img.ImageURL))
					}
					fmt.Fprintln(w)
					fmt.Fprintln(w, "OPTION\tWEIGHT\tEXTRA\tSTOCK\tVARIANT")
					for _, o := range pr.Options {
						variant := "-"
						if o.VariantID != nil {
							variant = strconv.FormatInt(*o.VariantID, 10)
						}
						fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", o.OptionID, o.OptionValue, won(o.ExtraPrice), o.Stock, variant)
					}
					return nil
				})
			})
		},
	}
}

func (c *cli) productsCreate() *cobra.Command {
	var f productFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		Example: `  coffee-admin products create --name "Kenya AA" --price 19000 \
    --continent Africa --nationality Kenya --type Washed \
    --thumbnail ./kenya.png --detail ./kenya-1.png --option 200g:0:20 --option 500g:20000:5
  coffee-admin products create --file kenya.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd, func(ctx context.Context, a *App, p printer) error {
				form := a.products.NewForm(
					productsapp.WithOpener(a.images),
					productsapp.WithStoredOpener(productsapp.OpenerFunc(a.client.FetchUpload)),
				)
				if err := loadProductDraft(ctx, a.drafts, &f, form); err != nil {
					return err
				}
				if err := f.apply(cmd, form); err != nil {
					return err
				}
				return c.submitProduct(ctx, cmd, a, p, form)
			})
		},
	}
	f.register(cmd)
	return cmd
}

func (c *cli) productsUpdate() *cobra.Command {
	var (
		f            productFlags
		removeDetail []int
	)
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a product; unset flags keep their current values",
		Example: `  coffee-admin products update 12 --price 21000
  coffee-admin products update 12 --detail ./new.png --remove-detail 1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.withApp(cmd, func(ctx context.Context, a *App, p printer) error {
				if err := a.products.Refresh(ctx); err != nil {
					return err
				}
				form := a.products.NewForm(
					productsapp.WithOpener(a.images),
					productsapp.WithStoredOpener(productsapp.OpenerFunc(a.client.FetchUpload)),
				)
				if err := a.products.BeginEdit(form, id); err != nil {
					return fmt.Errorf("product %d: %w", id, err)
				}
				if err := loadProductDraft(ctx, a.drafts, &f, form); err != nil {
					return err
				}
				slices.Sort(removeDetail)
				removeDetail = slices.Compact(removeDetail)
				for i := len(removeDetail) - 1; i >= 0; i-- {
					if !form.RemoveDetail(removeDetail[i] - 1) {
						return fmt.Errorf("no detail image %d", removeDetail[i])
					}
				}
				if err := f.apply(cmd, form); err != nil {
					return err
				}
				return c.submitProduct(ctx, cmd, a, p, form)
			})
		},
	}
	f.register(cmd)
	cmd.Flags().IntSliceVar(&removeDetail, "remove-detail", nil, "1-based position of a detail image to drop")
	return cmd
}

func (c *cli) productsDelete() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a product after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.withApp(cmd, func(ctx context.Context, a *App, _ printer) error {
				return deleted(a.products.Delete(ctx, id, c.confirmer(cmd)), a)
			})
		},
	}
	cmd.Flags().BoolVarP(&c.yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// loadProductDraft seeds the form from --file or --resume. The draft keeps
// the id of the form it is loaded into.
func loadProductDraft(ctx context.Context, store *drafts.Store, f *productFlags, form *productsapp.Form) error {
	var (
		d     productsapp.Draft
		found bool
	)
	switch {
	case f.file != "":
		if err := drafts.ReadFile(f.file, &d); err != nil {
			return err
		}
		found = true
	case f.resume:
		ok, err := store.Load(ctx, productDraftKind, &d)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no saved product draft in %s", store.Path(productDraftKind))
		}
		found = true
	}
	if !found {
		return nil
	}
	current := form.Draft()
	d.ProductID = current.ProductID
	if d.ThumbnailURL == "" {
		d.ThumbnailURL = current.ThumbnailURL
	}
	form.SetDraft(d)
	return nil
}

func (c *cli) submitProduct(ctx context.Context, cmd *cobra.Command, a *App, p printer, form *productsapp.Form) error {
	draft := form.Draft()
	saved, err := a.products.Submit(ctx, form)
	if err != nil {
		keepDraft(ctx, cmd, a, productDraftKind, draft)
		return err
	}
	_ = a.drafts.Discard(ctx, productDraftKind)
	return p.emit(saved, func(w io.Writer) error {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", saved.ProductID, saved.ProductName, won(saved.BasePrice), optionSummary(saved.Options))
		return nil
	})
}

func origin(p domain.Product) string {
	switch {
	case p.Continent == "" && p.Nationality == "":
		return "-"
	case p.Nationality == "":
		return p.Continent
	}
	return p.Continent + " / " + p.Nationality
}

func optionSummary(opts []domain.Option) string {
	parts := make([]string, 0, len(opts))
	for _, o := range opts {
		parts = append(parts, fmt.Sprintf("%s(%d)", o.OptionValue, o.Stock))
	}
	return dash(strings.Join(parts, " "))
}

// listQuery is the search, tab and page of a list command.
type listQuery struct {
	search string
	tab    string
	page   int
}

func (q *listQuery) register(cmd *cobra.Command, tabs bool) {
	cmd.Flags().StringVarP(&q.search, "search", "s", "", "case-insensitive search term")
	cmd.Flags().IntVarP(&q.page, "page", "p", 1, "page number")
	if tabs {
		cmd.Flags().StringVarP(&q.tab, "tab", "t", listview.TabAll, "status tab")
	}
}

func (q *listQuery) query() listview.Query {
	tab := strings.ToUpper(strings.TrimSpace(q.tab))
	if tab == "" {
		tab = listview.TabAll
	}
	return listview.Query{Term: q.search, Tab: tab, Page: q.page}
}
