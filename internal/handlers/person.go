package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/diewo77/go-records/auth"
	"github.com/diewo77/go-records/internal/models"
	"github.com/diewo77/go-records/internal/store"
	"github.com/diewo77/go-records/validation"
	"github.com/diewo77/go-records/view"
)

const personListPath = "/user/list"

// personForm is the add/edit form. Passwords are checked by hand because
// they are optional on edit.
type personForm struct {
	FullName        string `form:"full_name" validate:"required,max=55"`
	Category        string `form:"category" validate:"required"`
	BirthDate       string `form:"birth_date" validate:"required,datetime=2006-01-02"`
	Address         string `form:"address" validate:"required,max=255"`
	ContactNumber   string `form:"contact_number" validate:"required,max=55"`
	Email           string `form:"email" validate:"omitempty,email,max=55"`
	Username        string `form:"username" validate:"required,max=55"`
	Password        string `form:"-"`
	ConfirmPassword string `form:"-"`
}

func parsePersonForm(r *http.Request) personForm {
	field := func(name string) string { return strings.TrimSpace(r.FormValue(name)) }
	return personForm{
		FullName:        field("full_name"),
		Category:        field("category"),
		BirthDate:       field("birth_date"),
		Address:         field("address"),
		ContactNumber:   field("contact_number"),
		Email:           field("email"),
		Username:        field("username"),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("confirm_password"),
	}
}

// apply copies the validated form onto p. The password is left alone.
func (f personForm) apply(p *models.Person, c *models.Category) error {
	birth, err := time.Parse(models.DateLayout, f.BirthDate)
	if err != nil {
		return err
	}
	p.FullName = f.FullName
	p.CategoryID = c.ID
	p.Category = c
	p.BirthDate = birth
	p.Address = f.Address
	p.ContactNumber = f.ContactNumber
	p.Email = f.Email
	p.Username = f.Username
	return nil
}

type PersonHandler struct {
	people     *store.PersonStore
	categories *store.CategoryStore
	log        *slog.Logger
}

func NewPersonHandler(people *store.PersonStore, categories *store.CategoryStore, log *slog.Logger) *PersonHandler {
	return &PersonHandler{people: people, categories: categories, log: log}
}

func (h *PersonHandler) List(w http.ResponseWriter, r *http.Request) {
	search, page := listParams(r)
	result, err := h.people.List(r.Context(), search, page)
	if err != nil {
		fail(w, r, h.log, internal(err))
		return
	}
	render(w, r, h.log, "user/list.html", map[string]any{
		"Title":  tr(r, "people"),
		"Page":   result,
		"Search": search,
	})
}

func (h *PersonHandler) New(w http.ResponseWriter, r *http.Request) {
	h.renderAdd(w, r, personForm{}, validation.Violations{}, "")
}

// Create inserts a person. Every rejection re-renders the form with the
// entered values except the passwords.
func (h *PersonHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	form := parsePersonForm(r)
	if form.Password != form.ConfirmPassword {
		h.renderAdd(w, r, form, validation.Violations{}, "flash_password_mismatch")
		return
	}
	v := validation.Struct(form)
	validation.Required("password", form.Password, v)
	validation.Required("confirm_password", form.ConfirmPassword, v)
	if !v.Empty() {
		code := "flash_form_invalid"
		if v["category"] == "required" {
			code = "flash_select_category"
		}
		h.renderAdd(w, r, form, v, code)
		return
	}
	if len(form.Password) > auth.MaxPasswordBytes {
		h.renderAdd(w, r, form, validation.Violations{"password": "too_long"}, "flash_password_too_long")
		return
	}
	c, err := h.resolveCategory(ctx, form.Category)
	if errors.Is(err, store.ErrNotFound) {
		h.renderAdd(w, r, form, validation.Violations{}, "flash_invalid_category")
		return
	}
	if err != nil {
		fail(w, r, h.log, internal(err))
		return
	}
	taken, err := h.people.UsernameTaken(ctx, form.Username, 0)
	if err != nil {
		fail(w, r, h.log, internal(err))
		return
	}
	if taken {
		h.renderAdd(w, r, form, validation.Violations{}, "flash_username_taken")
		return
	}

	var p models.Person
	if err := form.apply(&p, c); err != nil {
		fail(w, r, h.log, internal(err))
		return
	}
	if p.Password, err = auth.HashPassword(form.Password); err != nil {
		fail(w, r, h.log, internal(err))
		return
	}
	if err := h.people.Create(ctx, &p); err != nil {
		fail(w, r, h.log, internal(err))
		return
	}
	h.log.InfoContext(ctx, "person created", "person_id", p.ID, "username", p.Username)
	view.Redirect(w, r, personListPath, view.LevelSuccess, "flash_person_added")
}

func (h *PersonHandler) Edit(w http.ResponseWriter, r *http.Request) {
	p, ok := loadPerson(w, r, h.people, h.log)
	if !ok {
		return
	}
	categories, err := h.categories.All(r.Context())
	if err != nil {
		fail(w, r, h.log, internal(err))
		return
	}
	render(w, r, h.log, "user/edit.html", map[string]any{
		"Title":      p.FullName,
		"Person":     p,
		"Categories": categories,
	})
}

// Update overwrites the person. Checks run in a fixed order and the first
// failure sends the user back to the form with nothing changed.
func (h *PersonHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, ok := loadPerson(w, r, h.people, h.log)
	if !ok {
		return
	}
	back := fmt.Sprintf("/user/edit/%d", p.ID)
	form := parsePersonForm(r)

	if form.Category == "" {
		view.Redirect(w, r, back, view.LevelError, "flash_select_category")
		return
	}
	taken, err := h.people.UsernameTaken(ctx, form.Username, p.ID)
	if err != nil {
		fail(w, r, h.log, internal(err))
		return
	}
	if taken {
		view.Redirect(w, r, back, view.LevelError, "flash_username_taken")
		return
	}
	// The password changes only when both fields are filled in.
	changePassword := form.Password != "" && form.ConfirmPassword != ""
	if changePassword && form.Password != form.ConfirmPassword {
		view.Redirect(w, r, back, view.LevelError, "flash_password_mismatch")
		return
	}
	if changePassword && len(form.Password) > auth.MaxPasswordBytes {
		view.Redirect(w, r, back, view.LevelError, "flash_password_too_long")
		return
	}
	c, err := h.resolveCategory(ctx, form.Category)
	if errors.Is(err, store.ErrNotFound) {
		view.Redirect(w, r, back, view.LevelError, "flash_invalid_category")
		return
	}
	if err != nil {
		fail(w, r, h.log, internal(err))
		return
	}
	if v := validation.Struct(form); !v.Empty() {
		view.Redirect(w, r, back, view.LevelError, "flash_form_invalid")
		return
	}

	if err := form.apply(p, c); err != nil {
		fail(w, r, h.log, internal(err))
		return
	}
	if changePassword {
		if p.Password, err = auth.HashPassword(form.Password); err != nil {
			fail(w, r, h.log, internal(err))
			return
		}
	}
	err = h.people.Update(ctx, p)
	if errors.Is(err, store.ErrNotFound) {
		view.Redirect(w, r, personListPath, view.LevelError, "flash_person_not_found")
		return
	}
	if err != nil {
		fail(w, r, h.log, internal(err))
		return
	}
	h.log.InfoContext(ctx, "person updated", "person_id", p.ID, "password_changed", changePassword)
	view.Redirect(w, r, personListPath, view.LevelSuccess, "flash_person_updated")
}

func (h *PersonHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	p, ok := loadPerson(w, r, h.people, h.log)
	if !ok {
		return
	}
	categories, err := h.categories.All(r.Context())
	if err != nil {
		fail(w, r, h.log, internal(err))
		return
	}
	render(w, r, h.log, "user/delete.html", map[string]any{
		"Title":      p.FullName,
		"Person":     p,
		"Categories": categories,
	})
}

func (h *PersonHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := loadPerson(w, r, h.people, h.log)
	if !ok {
		return
	}
	err := h.people.Delete(r.Context(), p.ID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		view.Redirect(w, r, personListPath, view.LevelError, "flash_person_not_found")
	case err != nil:
		fail(w, r, h.log, internal(err))
	default:
		h.log.InfoContext(r.Context(), "person deleted", "person_id", p.ID, "username", p.Username)
		view.Redirect(w, r, personListPath, view.LevelSuccess, "flash_person_deleted", p.Username)
	}
}

// resolveCategory returns store.ErrNotFound for ids that are malformed or unknown.
func (h *PersonHandler) resolveCategory(ctx context.Context, raw string) (*models.Category, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return nil, store.ErrNotFound
	}
	return h.categories.Get(ctx, uint(id))
}

func (h *PersonHandler) renderAdd(w http.ResponseWriter, r *http.Request, form personForm, v validation.Violations, code string) {
	categories, err := h.categories.All(r.Context())
	if err != nil {
		fail(w, r, h.log, internal(err))
		return
	}
	form.Password, form.ConfirmPassword = "", ""
	msg := ""
	if code != "" {
		msg = tr(r, code)
	}
	render(w, r, h.log, "user/add.html", map[string]any{
		"Title":      tr(r, "people"),
		"Form":       form,
		"Errors":     v,
		"Error":      msg,
		"Categories": categories,
	})
}

// loadPerson fetches the person named by the path. On failure the response
// has been written and ok is false.
func loadPerson(w http.ResponseWriter, r *http.Request, people *store.PersonStore, log *slog.Logger) (*models.Person, bool) {
	id, err := pathID(r)
	if err != nil {
		fail(w, r, log, err)
		return nil, false
	}
	p, err := people.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		view.Redirect(w, r, personListPath, view.LevelError, "flash_person_not_found")
		return nil, false
	}
	if err != nil {
		fail(w, r, log, internal(err))
		return nil, false
	}
	return p, true
}
