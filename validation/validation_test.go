package validation

import "testing"

type personForm struct {
	Name  string `form:"full_name" validate:"required,max=10"`
	Email string `form:"email" validate:"omitempty,email"`
	Born  string `form:"birth_date" validate:"required,datetime=2006-01-02"`
	Skip  string `form:"-"`
}

func TestRequired(t *testing.T) {
	v := Violations{}
	Required("name", "  ", v)
	Required("code", "X", v)
	if v["name"] != "required" {
		t.Fatalf("expected name required, got %v", v)
	}
	if _, ok := v["code"]; ok {
		t.Fatalf("code should be valid")
	}
	if v.Empty() {
		t.Fatalf("violations should not be empty")
	}
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name string
		form personForm
		want Violations
	}{
		{"valid", personForm{Name: "Alice", Born: "1990-01-01"}, Violations{}},
		{"missing name", personForm{Born: "1990-01-01"}, Violations{"full_name": "required"}},
		{"long name", personForm{Name: "Alice Smith Jones", Born: "1990-01-01"}, Violations{"full_name": "too_long"}},
		{"bad email", personForm{Name: "A", Email: "nope", Born: "1990-01-01"}, Violations{"email": "invalid_email"}},
		{"bad date", personForm{Name: "A", Born: "01/02/1990"}, Violations{"birth_date": "invalid_date"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Struct(tt.form)
			if len(got) != len(tt.want) {
				t.Fatalf("Struct() = %v, want %v", got, tt.want)
			}
			for k, want := range tt.want {
				if got[k] != want {
					t.Fatalf("Struct()[%q] = %q, want %q", k, got[k], want)
				}
			}
		})
	}
}
