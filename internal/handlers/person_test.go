package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/diewo77/go-records/auth"
	"github.com/diewo77/go-records/internal/models"
	"github.com/diewo77/go-records/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func personValues(categoryID uint, username string) url.Values {
	return url.Values{
		"full_name":        {"Dana Scully"},
		"category":         {fmt.Sprint(categoryID)},
		"birth_date":       {"1964-02-23"},
		"address":          {"4 Oak Road"},
		"contact_number":   {"555-0199"},
		"email":            {"dana@example.com"},
		"username":         {username},
		"password":         {"s3cret-pass"},
		"confirm_password": {"s3cret-pass"},
	}
}

func countPeople(t *testing.T, f *fixture) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&models.Person{}).Count(&n).Error)
	return n
}

func TestPersonCreate(t *testing.T) {
	f := newFixture(t)
	c := f.category(t, "Female")

	rr := httptest.NewRecorder()
	f.people.Create(rr, post("/user/add", personValues(c.ID, "dscully")))
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/user/list", rr.Header().Get("Location"))
	assert.Equal(t, "Person added successfully!", flashOf(t, rr).Message)

	p, err := f.stores.People.GetByUsername(context.Background(), "dscully")
	require.NoError(t, err)
	assert.Equal(t, "1964-02-23", p.BirthDateString())
	assert.Equal(t, "Female", p.CategoryName())
	assert.NotEqual(t, "s3cret-pass", p.Password)
	assert.True(t, auth.CheckPassword(p.Password, "s3cret-pass"))
}

func TestPersonCreatePasswordMismatchKeepsValues(t *testing.T) {
	f := newFixture(t)
	c := f.category(t, "Female")
	form := personValues(c.ID, "dscully")
	form.Set("confirm_password", "different")

	rr := httptest.NewRecorder()
	f.people.Create(rr, post("/user/add", form))
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Password and confirm password don&#39;t match")
	for _, v := range []string{"Dana Scully", "1964-02-23", "4 Oak Road", "555-0199", "dana@example.com", "dscully"} {
		assert.Contains(t, body, v)
	}
	assert.NotContains(t, body, "s3cret-pass")
	assert.NotContains(t, body, "different")
	assert.Zero(t, countPeople(t, f))
}

func TestPersonCreateRejections(t *testing.T) {
	f := newFixture(t)
	c := f.category(t, "Female")
	f.person(t, c, "taken", "pw")

	tests := []struct {
		name   string
		mutate func(url.Values)
		want   string
	}{
		{"missing category", func(v url.Values) { v.Set("category", "") }, "Please select a category"},
		{"unknown category", func(v url.Values) { v.Set("category", "9999") }, "Invalid category selected"},
		{"garbage category", func(v url.Values) { v.Set("category", "abc") }, "Invalid category selected"},
		{"duplicate username", func(v url.Values) { v.Set("username", "taken") }, "Username already exists"},
		{"bad date", func(v url.Values) { v.Set("birth_date", "23/02/1964") }, "Invalid date"},
		{"bad email", func(v url.Values) { v.Set("email", "not-an-email") }, "Invalid e-mail address"},
		{"missing passwords", func(v url.Values) { v.Set("password", ""); v.Set("confirm_password", "") }, "Required"},
		{"missing address", func(v url.Values) { v.Set("address", " ") }, "Required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := personValues(c.ID, "newperson")
			tt.mutate(form)
			rr := httptest.NewRecorder()
			f.people.Create(rr, post("/user/add", form))
			require.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.want)
			assert.EqualValues(t, 1, countPeople(t, f))
		})
	}
}

func TestPersonPasswordTooLong(t *testing.T) {
	f := newFixture(t)
	c := f.category(t, "Female")
	long := strings.Repeat("p", auth.MaxPasswordBytes+8)

	form := personValues(c.ID, "dscully")
	form.Set("password", long)
	form.Set("confirm_password", long)
	rr := httptest.NewRecorder()
	f.people.Create(rr, post("/user/add", form))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Password must be at most 72 bytes")
	assert.NotContains(t, rr.Body.String(), long)
	assert.Zero(t, countPeople(t, f))

	bob := f.person(t, c, "bob", "original")
	id := fmt.Sprint(bob.ID)
	form = personValues(c.ID, "bob")
	form.Set("password", long)
	form.Set("confirm_password", long)
	rr = httptest.NewRecorder()
	f.people.Update(rr, post("/user/edit/"+id, form, "id", id))
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/user/edit/"+id, rr.Header().Get("Location"))
	msg := flashOf(t, rr)
	assert.True(t, msg.IsError())
	assert.Equal(t, "Password must be at most 72 bytes", msg.Message)

	got, err := f.stores.People.Get(context.Background(), bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "Person bob", got.FullName)
	assert.True(t, auth.CheckPassword(got.Password, "original"))
}

func TestPersonCreateEmailOptional(t *testing.T) {
	f := newFixture(t)
	c := f.category(t, "Other")
	form := personValues(c.ID, "noemail")
	form.Set("email", "")
	rr := httptest.NewRecorder()
	f.people.Create(rr, post("/user/add", form))
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.EqualValues(t, 1, countPeople(t, f))
}

func TestPersonListSearchIsCaseInsensitive(t *testing.T) {
	f := newFixture(t)
	c := f.category(t, "Other")
	f.person(t, c, "asmith", "pw")
	f.person(t, c, "bjones", "pw")

	rr := httptest.NewRecorder()
	f.people.List(rr, get("/user/list?search=SMITH"))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "asmith")
	assert.NotContains(t, rr.Body.String(), "bjones")
}

func TestPersonUpdateUsernameCollision(t *testing.T) {
	f := newFixture(t)
	c := f.category(t, "Male")
	f.person(t, c, "alice", "pw")
	bob := f.person(t, c, "bob", "pw")
	id := fmt.Sprint(bob.ID)

	rr := httptest.NewRecorder()
	f.people.Update(rr, post("/user/edit/"+id, personValues(c.ID, "alice"), "id", id))
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/user/edit/"+id, rr.Header().Get("Location"))
	assert.Equal(t, "Username already exists", flashOf(t, rr).Message)

	got, err := f.stores.People.Get(context.Background(), bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", got.Username)
	assert.Equal(t, "Person bob", got.FullName)
}

func TestPersonUpdateCheckOrder(t *testing.T) {
	f := newFixture(t)
	c := f.category(t, "Male")
	f.person(t, c, "alice", "pw")
	bob := f.person(t, c, "bob", "pw")
	id := fmt.Sprint(bob.ID)

	tests := []struct {
		name   string
		mutate func(url.Values)
		want   string
	}{
		{"empty category wins over duplicate username", func(v url.Values) {
			v.Set("category", "")
			v.Set("username", "alice")
		}, "Please select a category"},
		{"duplicate username wins over password mismatch", func(v url.Values) {
			v.Set("username", "alice")
			v.Set("confirm_password", "nope")
		}, "Username already exists"},
		{"password mismatch wins over unknown category", func(v url.Values) {
			v.Set("confirm_password", "nope")
			v.Set("category", "777")
		}, "Password and confirm password don't match"},
		{"unknown category wins over bad date", func(v url.Values) {
			v.Set("category", "777")
			v.Set("birth_date", "tomorrow")
		}, "Invalid category selected"},
		{"bad date", func(v url.Values) { v.Set("birth_date", "tomorrow") }, "Please correct the highlighted fields"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := personValues(c.ID, "bob")
			tt.mutate(form)
			rr := httptest.NewRecorder()
			f.people.Update(rr, post("/user/edit/"+id, form, "id", id))
			require.Equal(t, http.StatusSeeOther, rr.Code)
			assert.Equal(t, "/user/edit/"+id, rr.Header().Get("Location"))
			msg := flashOf(t, rr)
			assert.True(t, msg.IsError())
			assert.Equal(t, tt.want, msg.Message)

			got, err := f.stores.People.Get(context.Background(), bob.ID)
			require.NoError(t, err)
			assert.Equal(t, "Person bob", got.FullName)
		})
	}
}

func TestPersonUpdatePasswordOnlyWhenBothGiven(t *testing.T) {
	f := newFixture(t)
	c := f.category(t, "Male")
	other := f.category(t, "Other")
	bob := f.person(t, c, "bob", "original")
	id := fmt.Sprint(bob.ID)

	form := personValues(other.ID, "robert")
	form.Set("password", "")
	form.Set("confirm_password", "")
	rr := httptest.NewRecorder()
	f.people.Update(rr, post("/user/edit/"+id, form, "id", id))
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/user/list", rr.Header().Get("Location"))

	got, err := f.stores.People.Get(context.Background(), bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "robert", got.Username)
	assert.Equal(t, "Dana Scully", got.FullName)
	assert.Equal(t, "Other", got.CategoryName())
	assert.True(t, auth.CheckPassword(got.Password, "original"))

	form = personValues(other.ID, "robert")
	rr = httptest.NewRecorder()
	f.people.Update(rr, post("/user/edit/"+id, form, "id", id))
	require.Equal(t, http.StatusSeeOther, rr.Code)
	got, err = f.stores.People.Get(context.Background(), bob.ID)
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(got.Password, "s3cret-pass"))
}

func TestPersonDelete(t *testing.T) {
	f := newFixture(t)
	c := f.category(t, "Male")
	bob := f.person(t, c, "bob", "pw")
	id := fmt.Sprint(bob.ID)

	rr := httptest.NewRecorder()
	f.people.ConfirmDelete(rr, get("/user/delete/"+id, "id", id))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "bob")

	rr = httptest.NewRecorder()
	f.people.Delete(rr, post("/user/delete/"+id, nil, "id", id))
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "Person bob has been deleted", flashOf(t, rr).Message)

	_, err := f.stores.People.Get(context.Background(), bob.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	rr = httptest.NewRecorder()
	f.people.Delete(rr, post("/user/delete/"+id, nil, "id", id))
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/user/list", rr.Header().Get("Location"))
	assert.Equal(t, "Person not found", flashOf(t, rr).Message)
}

func TestPersonEditShowsCurrentValues(t *testing.T) {
	f := newFixture(t)
	c := f.category(t, "Female")
	p := f.person(t, c, "carol", "pw")
	id := fmt.Sprint(p.ID)

	rr := httptest.NewRecorder()
	f.people.Edit(rr, get("/user/edit/"+id, "id", id))
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `value="carol"`)
	assert.Contains(t, body, `value="1990-05-17"`)
	assert.Contains(t, body, fmt.Sprintf(`value="%d" selected`, c.ID))
	assert.NotContains(t, body, p.Password)
}
