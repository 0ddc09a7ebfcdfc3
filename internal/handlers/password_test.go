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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	c := f.category(t, "Other")
	p := f.person(t, c, "erin", "old-pass")
	id := fmt.Sprint(p.ID)
	back := "/user/changepass/" + id
	tooLong := strings.Repeat("x", 80)

	tests := []struct {
		name string
		form url.Values
		want string
	}{
		{"wrong current", url.Values{"current_password": {"nope"}, "password": {"a"}, "confirm_password": {"a"}}, "Current password is incorrect"},
		{"missing confirm", url.Values{"current_password": {"old-pass"}, "password": {"a"}}, "Please fill out both password fields"},
		{"mismatch", url.Values{"current_password": {"old-pass"}, "password": {"a"}, "confirm_password": {"b"}}, "New password and confirm password don't match"},
		{"too long", url.Values{"current_password": {"old-pass"}, "password": {tooLong}, "confirm_password": {tooLong}}, "Password must be at most 72 bytes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			f.passwords.ChangePassword(rr, post(back, tt.form, "id", id))
			require.Equal(t, http.StatusSeeOther, rr.Code)
			assert.Equal(t, back, rr.Header().Get("Location"))
			assert.Equal(t, tt.want, flashOf(t, rr).Message)
		})
	}

	got, err := f.stores.People.Get(context.Background(), p.ID)
	require.NoError(t, err)
	require.True(t, auth.CheckPassword(got.Password, "old-pass"))

	rr := httptest.NewRecorder()
	f.passwords.ChangePassword(rr, post(back, url.Values{
		"current_password": {"old-pass"}, "password": {"new-pass"}, "confirm_password": {"new-pass"},
	}, "id", id))
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/user/list", rr.Header().Get("Location"))
	assert.Equal(t, "Password changed successfully!", flashOf(t, rr).Message)

	got, err = f.stores.People.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(got.Password, "new-pass"))
	assert.False(t, auth.CheckPassword(got.Password, "old-pass"))
}

func TestChangePasswordUnknownPerson(t *testing.T) {
	f := newFixture(t)
	for _, h := range []http.HandlerFunc{f.passwords.Form, f.passwords.ChangePassword} {
		rr := httptest.NewRecorder()
		h(rr, post("/user/changepass/31", url.Values{}, "id", "31"))
		require.Equal(t, http.StatusSeeOther, rr.Code)
		assert.Equal(t, "/user/list", rr.Header().Get("Location"))
		assert.Equal(t, "Person not found", flashOf(t, rr).Message)
	}
}
