package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/diewo77/go-records/internal/models"
	"github.com/diewo77/go-records/internal/store"
	"github.com/diewo77/go-records/validation"
	"github.com/diewo77/go-records/view"
)

const categoryListPath = "/gender/list"

type categoryForm struct {
	Name string `form:"name" validate:"required,max=55"`
}

func parseCategoryForm(r *http.Request) categoryForm {
	return categoryForm{Name: strings.TrimSpace(r.FormValue("name"))}
}

type CategoryHandler struct {
	categories *store.CategoryStore
	log        *slog.Logger
}

func NewCategoryHandler(categories *store.CategoryStore, log *slog.Logger) *CategoryHandler {
	return &CategoryHandler{categories: categories, log: log}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	search, page := listParams(r)
	result, err := h.categories.List(r.Context(), search, page)
	if err != nil {
		fail(w, r, h.log, internal(err))
		return
	}
	render(w, r, h.log, "gender/list.html", map[string]any{
		"Title":  tr(r, "categories"),
		"Page":   result,
		"Search": search,
	})
}

func (h *CategoryHandler) New(w http.ResponseWriter, r *http.Request) {
	h.renderAdd(w, r, categoryForm{}, validation.Violations{})
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	form := parseCategoryForm(r)
	if v := validation.Struct(form); !v.Empty() {
		h.renderAdd(w, r, form, v)
		return
	}
	c := models.Category{Name: form.Name}
	if err := h.categories.Create(r.Context(), &c); err != nil {
		fail(w, r, h.log, internal(err))
		return
	}
	view.Redirect(w, r, categoryListPath, view.LevelSuccess, "flash_category_added")
}

func (h *CategoryHandler) Edit(w http.ResponseWriter, r *http.Request) {
	c, ok := h.load(w, r)
	if !ok {
		return
	}
	render(w, r, h.log, "gender/edit.html", map[string]any{
		"Title":    c.Name,
		"Category": c,
	})
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	c, ok := h.load(w, r)
	if !ok {
		return
	}
	form := parseCategoryForm(r)
	if v := validation.Struct(form); !v.Empty() {
		code := "flash_form_invalid"
		if v["name"] == "required" {
			code = "flash_category_name_needed"
		}
		view.Redirect(w, r, fmt.Sprintf("/gender/edit/%d", c.ID), view.LevelError, code)
		return
	}
	c.Name = form.Name
	err := h.categories.Update(r.Context(), c)
	if errors.Is(err, store.ErrNotFound) {
		view.Redirect(w, r, categoryListPath, view.LevelError, "flash_category_not_found")
		return
	}
	if err != nil {
		fail(w, r, h.log, internal(err))
		return
	}
	view.Redirect(w, r, categoryListPath, view.LevelSuccess, "flash_category_updated")
}

// ConfirmDelete shows the confirmation page with the number of people the
// delete will cascade to.
func (h *CategoryHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	c, ok := h.load(w, r)
	if !ok {
		return
	}
	n, err := h.categories.CountPeople(r.Context(), c.ID)
	if err != nil {
		fail(w, r, h.log, internal(err))
		return
	}
	render(w, r, h.log, "gender/delete.html", map[string]any{
		"Title":       c.Name,
		"Category":    c,
		"PeopleCount": n,
	})
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		fail(w, r, h.log, err)
		return
	}
	err = h.categories.Delete(r.Context(), id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		view.Redirect(w, r, categoryListPath, view.LevelError, "flash_category_not_found")
	case err != nil:
		fail(w, r, h.log, internal(err))
	default:
		h.log.InfoContext(r.Context(), "category deleted", "category_id", id)
		view.Redirect(w, r, categoryListPath, view.LevelSuccess, "flash_category_deleted")
	}
}

// load fetches the category named by the path. On failure the response has
// been written and ok is false.
func (h *CategoryHandler) load(w http.ResponseWriter, r *http.Request) (*models.Category, bool) {
	id, err := pathID(r)
	if err != nil {
		fail(w, r, h.log, err)
		return nil, false
	}
	c, err := h.categories.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		view.Redirect(w, r, categoryListPath, view.LevelError, "flash_category_not_found")
		return nil, false
	}
	if err != nil {
		fail(w, r, h.log, internal(err))
		return nil, false
	}
	return c, true
}

func (h *CategoryHandler) renderAdd(w http.ResponseWriter, r *http.Request, form categoryForm, v validation.Violations) {
	render(w, r, h.log, "gender/add.html", map[string]any{
		"Title":  tr(r, "category"),
		"Form":   form,
		"Errors": v,
	})
}
