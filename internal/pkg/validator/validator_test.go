package validator

import (
	"testing"
	"time"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B",
	}
	invalid := []string{
		"123e4567-e89b-12d3-a456-426614174000", // v1
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"",
	}
	for _, uuid := range valid {
		if !IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = false, want true", uuid)
		}
	}
	for _, uuid := range invalid {
		if IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = true, want false", uuid)
		}
	}
}

func TestIsValidLoginID(t *testing.T) {
	valid := []string{"EMP001", "ADM1000", "hr7"}
	invalid := []string{"", "EMP", "001", "EMP-001", "EMP 001"}
	for _, id := range valid {
		if !IsValidLoginID(id) {
			t.Errorf("IsValidLoginID(%q) = false, want true", id)
		}
	}
	for _, id := range invalid {
		if IsValidLoginID(id) {
			t.Errorf("IsValidLoginID(%q) = true, want false", id)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	cases := []struct {
		input string
		valid bool
	}{
		{"2024-01-10", true},
		{"2024-02-29", true},
		{"2023-02-29", false},
		{"10-01-2024", false},
		{"", false},
	}
	for _, c := range cases {
		_, ok := IsValidDate(c.input)
		if ok != c.valid {
			t.Errorf("IsValidDate(%q) = %v, want %v", c.input, ok, c.valid)
		}
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		input string
		want  time.Duration
		ok    bool
	}{
		{"09:00", 9 * time.Hour, true},
		{"17:30:15", 17*time.Hour + 30*time.Minute + 15*time.Second, true},
		{"00:00", 0, true},
		{"24:00", 0, false},
		{"9am", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseClock(c.input)
		if ok != c.ok || got != c.want {
			t.Errorf("ParseClock(%q) = (%v, %v), want (%v, %v)", c.input, got, ok, c.want, c.ok)
		}
	}
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	if errs.Err() != nil {
		t.Fatalf("empty ValidationErrors should yield nil error")
	}
	errs.Add("email", "email is required")
	errs.Add("role", "invalid role")

	if got, want := errs.Error(), "email: email is required; role: invalid role"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	m := errs.ToMap()
	if m["role"] != "invalid role" || len(m) != 2 {
		t.Errorf("ToMap() = %v", m)
	}
	if errs.Err() == nil {
		t.Errorf("Err() = nil, want error")
	}
}
