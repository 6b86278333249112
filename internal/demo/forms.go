package demo

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-submissions/pkg/field"
	"github.com/goliatone/go-submissions/pkg/submission"
	"github.com/goliatone/go-submissions/pkg/unique"
	"github.com/goliatone/go-submissions/pkg/validation"
)

// TitleMinLength is the shortest accepted todo title.
const TitleMinLength = 5

var errIncomplete = errors.New("demo: payload is missing required values")

// TodoForm is the create and update payload of a Todo. The title is only
// required on create; updates are partial. A nil *TodoForm describes the form
// of existing, or a blank form when existing is nil.
type TodoForm struct {
	Title *string `json:"title" form:"title"`
	Done  *bool   `json:"done" form:"done"`
}

var (
	_ submission.Creator[Todo] = (*TodoForm)(nil)
	_ submission.Updater[Todo] = (*TodoForm)(nil)
)

// Fields implements submission.Submission.
func (f *TodoForm) Fields(existing *Todo) []field.Field {
	var form TodoForm
	switch {
	case f != nil:
		form = *f
	case existing != nil:
		form = TodoForm{Title: &existing.Title, Done: &existing.Done}
	}

	return []field.Field{
		field.New(field.Config[string]{
			Key:              "title",
			Label:            "Title",
			Value:            form.Title,
			Required:         true,
			RequiredStrategy: validation.OnCreate,
			AbsentWhen:       validation.AbsentWhen(isBlank),
			Validators: []validation.Validator[string]{
				validation.LengthBetween(TitleMinLength, 255),
			},
		}),
		field.New(field.Config[bool]{
			Key:   "done",
			Label: "Done",
			Value: form.Done,
		}),
	}
}

// Create implements submission.Creator.
func (f *TodoForm) Create() (Todo, error) {
	if f.Title == nil {
		return Todo{}, errIncomplete
	}
	todo := Todo{ID: uuid.New(), Title: strings.TrimSpace(*f.Title)}
	if f.Done != nil {
		todo.Done = *f.Done
	}
	return todo, nil
}

// Apply implements submission.Updater. Absent values keep their current
// value.
func (f *TodoForm) Apply(existing *Todo) error {
	if f.Title != nil && !isBlank(*f.Title) {
		existing.Title = strings.TrimSpace(*f.Title)
	}
	if f.Done != nil {
		existing.Done = *f.Done
	}
	return nil
}

// UserForm is the create and update payload of a User. When Usernames is
// set the username is also checked for uniqueness, ignoring the current
// username of the user being updated.
type UserForm struct {
	Name     *string `json:"name" form:"name"`
	Username *string `json:"username" form:"username"`
	Email    *string `json:"email" form:"email"`
	Bio      *string `json:"bio" form:"bio"`

	Usernames unique.Checker `json:"-" form:"-"`
}

var (
	_ submission.Creator[User] = (*UserForm)(nil)
	_ submission.Updater[User] = (*UserForm)(nil)
)

// Fields implements submission.Submission.
func (f *UserForm) Fields(existing *User) []field.Field {
	var form UserForm
	switch {
	case f != nil:
		form = *f
	case existing != nil:
		form = UserForm{
			Name:     &existing.Name,
			Username: &existing.Username,
			Email:    &existing.Email,
			Bio:      &existing.Bio,
		}
	}

	return []field.Field{
		field.New(field.Config[string]{
			Key:        "name",
			Label:      "Name",
			Value:      form.Name,
			Required:   true,
			AbsentWhen: validation.AbsentWhen(isBlank),
			Validators: []validation.Validator[string]{validation.MinLength(2)},
		}),
		field.New(field.Config[string]{
			Key:        "username",
			Label:      "Username",
			Value:      form.Username,
			Required:   true,
			AbsentWhen: validation.AbsentWhen(isBlank),
			Validators: []validation.Validator[string]{
				validation.LengthBetween(3, 50),
				validation.Rule[string]("alphanum"),
			},
			AsyncValidators: f.usernameChecks(existing),
		}),
		field.New(field.Config[string]{
			Key:        "email",
			Label:      "Email",
			Value:      form.Email,
			Required:   true,
			AbsentWhen: validation.AbsentWhen(isBlank),
			Validators: []validation.Validator[string]{validation.Email()},
		}),
		field.New(field.Config[string]{
			Key:        "bio",
			Label:      "Bio",
			Value:      form.Bio,
			Validators: []validation.Validator[string]{validation.MaxLength(500)},
		}),
	}
}

// Create implements submission.Creator.
func (f *UserForm) Create() (User, error) {
	if f.Name == nil || f.Username == nil || f.Email == nil {
		return User{}, errIncomplete
	}
	user := User{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(*f.Name),
		Username: strings.TrimSpace(*f.Username),
		Email:    strings.TrimSpace(*f.Email),
	}
	if f.Bio != nil {
		user.Bio = *f.Bio
	}
	return user, nil
}

// Apply implements submission.Updater.
func (f *UserForm) Apply(existing *User) error {
	if f.Name != nil {
		existing.Name = strings.TrimSpace(*f.Name)
	}
	if f.Username != nil {
		existing.Username = strings.TrimSpace(*f.Username)
	}
	if f.Email != nil {
		existing.Email = strings.TrimSpace(*f.Email)
	}
	if f.Bio != nil {
		existing.Bio = *f.Bio
	}
	return nil
}

func (f *UserForm) usernameChecks(existing *User) []field.AsyncValidator {
	if f == nil || f.Usernames == nil {
		return nil
	}
	var opts []unique.Option
	if existing != nil {
		opts = append(opts, unique.Except(existing.Username))
	}
	return []field.AsyncValidator{unique.Validator(f.Usernames, f.Username, opts...)}
}

func isBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}
