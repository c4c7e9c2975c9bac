package application

import (
	"context"
	"strings"

	"github.com/Apurer/coffee-admin/internal/domains/members/domain"
	"github.com/Apurer/coffee-admin/internal/shared/resource"
)

// PasswordPlaceholder hints that an empty password keeps the stored one.
const PasswordPlaceholder = "leave blank to keep current password"

// Saver is the part of the member store a form submits to.
type Saver interface {
	Save(ctx context.Context, payload domain.Payload, id *int64) (domain.Member, error)
}

// Draft is the editable state of the member form.
type Draft struct {
	MemberID *int64 `yaml:"memberId,omitempty"`
	Email    string `yaml:"email"`
	Password string `yaml:"password,omitempty"`
	Name     string `yaml:"name"`
	Phone    string `yaml:"phone,omitempty"`
	Address  string `yaml:"address,omitempty"`
}

// Form is the member create/edit form.
type Form struct {
	draft    Draft
	notifier resource.Notifier
	onCancel func()
}

// NewForm starts a create-mode form that reports problems to n.
func NewForm(n resource.Notifier, onCancel func()) *Form {
	return &Form{notifier: n, onCancel: onCancel}
}

// Load switches to edit mode for m, or create mode when m is nil. The
// password always starts empty.
func (f *Form) Load(m *domain.Member) {
	if m == nil {
		f.draft = Draft{}
		return
	}
	id := m.MemberID
	f.draft = Draft{
		MemberID: &id,
		Email:    m.Email,
		Name:     m.Name,
		Phone:    m.Phone,
		Address:  m.Address,
	}
}

// SetDraft replaces the whole draft, e.g. from a YAML file.
func (f *Form) SetDraft(d Draft) { f.draft = d }

// Draft returns the current state.
func (f *Form) Draft() Draft { return f.draft }

// Editing reports whether the form edits an existing member.
func (f *Form) Editing() bool { return f.draft.MemberID != nil }

// PasswordHint is the placeholder shown next to the password field.
func (f *Form) PasswordHint() string {
	if f.Editing() {
		return PasswordPlaceholder
	}
	return ""
}

// SetEmail sets the login email. It is trimmed when the payload is built.
func (f *Form) SetEmail(v string) { f.draft.Email = v }

// SetPassword sets the password. Left empty in edit mode it keeps the stored one.
func (f *Form) SetPassword(v string) { f.draft.Password = v }

// SetName sets the member's display name.
func (f *Form) SetName(v string) { f.draft.Name = v }

// SetPhone sets the contact number.
func (f *Form) SetPhone(v string) { f.draft.Phone = v }

// SetAddress sets the default shipping address.
func (f *Form) SetAddress(v string) { f.draft.Address = v }

// Payload validates the draft and builds the request body.
func (f *Form) Payload() (domain.Payload, error) {
	p := domain.Payload{
		Email:    strings.TrimSpace(f.draft.Email),
		Password: f.draft.Password,
		Name:     strings.TrimSpace(f.draft.Name),
		Phone:    strings.TrimSpace(f.draft.Phone),
		Address:  strings.TrimSpace(f.draft.Address),
	}
	if err := p.Validate(!f.Editing()); err != nil {
		f.notifier.Post(resource.KindError, userText(err))
		return domain.Payload{}, mapError(err)
	}
	return p, nil
}

// Submit saves the draft. Fields are kept when the save is rejected.
func (f *Form) Submit(ctx context.Context, s Saver) (domain.Member, error) {
	p, err := f.Payload()
	if err != nil {
		return domain.Member{}, err
	}
	saved, err := s.Save(ctx, p, f.draft.MemberID)
	if err != nil {
		return domain.Member{}, err
	}
	f.draft = Draft{}
	return saved, nil
}

// Cancel resets the form and runs the cancel callback.
func (f *Form) Cancel() {
	f.draft = Draft{}
	if f.onCancel != nil {
		f.onCancel()
	}
}
