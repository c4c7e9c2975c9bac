package admin

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	membersapp "github.com/Apurer/coffee-admin/internal/domains/members/application"
	"github.com/Apurer/coffee-admin/internal/platform/drafts"
)

const memberDraftKind = "member"

type memberFlags struct {
	file     string
	resume   bool
	email    string
	password string
	name     string
	phone    string
	address  string
}

func (f *memberFlags) register(cmd *cobra.Command, editing bool) {
	fs := cmd.Flags()
	fs.StringVarP(&f.file, "file", "f", "", "read the member draft from a YAML or JSON file")
	fs.BoolVar(&f.resume, "resume", false, "start from the draft saved by the last failed attempt")
	fs.StringVar(&f.email, "email", "", "email address")
	pwUsage := "password"
	if editing {
		pwUsage = membersapp.PasswordPlaceholder
	}
	fs.StringVar(&f.password, "password", "", pwUsage)
	fs.StringVar(&f.name, "name", "", "display name")
	fs.StringVar(&f.phone, "phone", "", "phone number")
	fs.StringVar(&f.address, "address", "", "default shipping address")
}

func (f *memberFlags) apply(cmd *cobra.Command, form *membersapp.Form) {
	changed := cmd.Flags().Changed
	if changed("email") {
		form.SetEmail(f.email)
	}
	if changed("password") {
		form.SetPassword(f.password)
	}
	if changed("name") {
		form.SetName(f.name)
	}
	if changed("phone") {
		form.SetPhone(f.phone)
	}
	if changed("address") {
		form.SetAddress(f.address)
	}
}

func (c *cli) membersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "members",
		Aliases: []string{"member"},
		Short:   "List, create, update and delete members",
	}
	cmd.AddCommand(c.membersList(), c.membersCreate(), c.membersUpdate(), c.membersDelete())
	return cmd
}

func (c *cli) membersList() *cobra.Command {
	var q listQuery
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd, func(ctx context.Context, a *App, p printer) error {
				if err := a.members.Refresh(ctx); err != nil {
					return err
				}
				view := a.members.View(q.query())
				return p.emit(pageOf(view), func(w io.Writer) error {
					if view.Rows.Empty() {
						fmt.Fprintln(w, "No members found.")
						return nil
					}
					fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE\tJOINED")
					for _, m := range view.Rows.Items {
						fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", m.MemberID, m.Name, m.Email, dash(m.Phone), m.CreatedAt.Format("2006-01-02"))
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

func (c *cli) membersCreate() *cobra.Command {
	var f memberFlags
	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a member",
		Example: `  coffee-admin members create --email kim@example.com --password secret --name "Kim Minji"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd, func(ctx context.Context, a *App, p printer) error {
				form := a.members.NewForm()
				if err := loadMemberDraft(ctx, a.drafts, &f, form); err != nil {
					return err
				}
				f.apply(cmd, form)
				return c.submitMember(ctx, cmd, a, p, form)
			})
		},
	}
	f.register(cmd, false)
	return cmd
}

func (c *cli) membersUpdate() *cobra.Command {
	var f memberFlags
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a member; a blank password keeps the current one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.withApp(cmd, func(ctx context.Context, a *App, p printer) error {
				if err := a.members.Refresh(ctx); err != nil {
					return err
				}
				form := a.members.NewForm()
				if err := a.members.BeginEdit(form, id); err != nil {
					return fmt.Errorf("member %d: %w", id, err)
				}
				if err := loadMemberDraft(ctx, a.drafts, &f, form); err != nil {
					return err
				}
				f.apply(cmd, form)
				return c.submitMember(ctx, cmd, a, p, form)
			})
		},
	}
	f.register(cmd, true)
	return cmd
}

func (c *cli) membersDelete() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a member after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.withApp(cmd, func(ctx context.Context, a *App, _ printer) error {
				return deleted(a.members.Delete(ctx, id, c.confirmer(cmd)), a)
			})
		},
	}
	cmd.Flags().BoolVarP(&c.yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func loadMemberDraft(ctx context.Context, store *drafts.Store, f *memberFlags, form *membersapp.Form) error {
	var d membersapp.Draft
	switch {
	case f.file != "":
		if err := drafts.ReadFile(f.file, &d); err != nil {
			return err
		}
	case f.resume:
		ok, err := store.Load(ctx, memberDraftKind, &d)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no saved member draft in %s", store.Path(memberDraftKind))
		}
	default:
		return nil
	}
	d.MemberID = form.Draft().MemberID
	form.SetDraft(d)
	return nil
}

func (c *cli) submitMember(ctx context.Context, cmd *cobra.Command, a *App, p printer, form *membersapp.Form) error {
	draft := form.Draft()
	saved, err := a.members.Submit(ctx, form)
	if err != nil {
		// Passwords never go to disk.
		draft.Password = ""
		keepDraft(ctx, cmd, a, memberDraftKind, draft)
		return err
	}
	_ = a.drafts.Discard(ctx, memberDraftKind)
	return p.emit(saved, func(w io.Writer) error {
		fmt.Fprintf(w, "%d\t%s\t%s\n", saved.MemberID, saved.Name, saved.Email)
		return nil
	})
}
