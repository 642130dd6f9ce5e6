package http

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func TestHex32Validation(t *testing.T) {
	type P struct {
		DocumentID string `validate:"hex32"`
	}
	cv := NewValidator()

	if err := cv.Validate(P{DocumentID: strings.Repeat("a", 32)}); err != nil {
		t.Fatalf("expected valid hex32, got err: %v", err)
	}

	for _, s := range []string{
		"",
		strings.Repeat("A", 32),
		"deadbeef",
		strings.Repeat("g", 32),
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c8",
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c88x",
	} {
		err := cv.Validate(P{DocumentID: s})
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		if fe := ToFieldErrors(err); !containsFieldMsg(fe, "DocumentID", "32-char lowercase hex") {
			t.Fatalf("expected hex32 message for %q, got: %+v", s, fe)
		}
	}
}

func TestDec2Validation(t *testing.T) {
	type P struct {
		Rate float64 `validate:"dec2"`
	}
	cv := NewValidator()

	for _, v := range []float64{1.29, 2.00, 0.9, 1.2} {
		if err := cv.Validate(P{Rate: v}); err != nil {
			t.Fatalf("expected dec2 OK for %v, got %v", v, err)
		}
	}
	for _, v := range []float64{1.234, 2.9999} {
		err := cv.Validate(P{Rate: v})
		if err == nil {
			t.Fatalf("expected dec2 error for %v", v)
		}
		if fe := ToFieldErrors(err); !containsFieldMsg(fe, "Rate", "at most 2 decimal places") {
			t.Fatalf("expected 'at most 2 decimal places' for %v, got %+v", v, fe)
		}
	}
}

func TestDecimalFieldsValidateAsNumbers(t *testing.T) {
	type P struct {
		LoanAmount decimal.Decimal `json:"loan_amount" validate:"gte=0,dec2"`
	}
	cv := NewValidator()

	for _, s := range []string{"0", "250000", "250000.50"} {
		if err := cv.Validate(P{LoanAmount: decimal.RequireFromString(s)}); err != nil {
			t.Fatalf("expected %s to pass, got %v", s, err)
		}
	}

	err := cv.Validate(P{LoanAmount: decimal.RequireFromString("-1")})
	if fe := ToFieldErrors(err); !containsFieldMsg(fe, "loan_amount", "greater than or equal to 0") {
		t.Fatalf("negative amount: got %+v", fe)
	}
	err = cv.Validate(P{LoanAmount: decimal.RequireFromString("10.125")})
	if fe := ToFieldErrors(err); !containsFieldMsg(fe, "loan_amount", "at most 2 decimal places") {
		t.Fatalf("three decimals: got %+v", fe)
	}
}

func TestFieldNamesFollowJSONTags(t *testing.T) {
	type P struct {
		MeetingDate string `json:"meeting_date" validate:"required,datetime=2006-01-02"`
		MeetingType string `json:"meeting_type" validate:"required,oneof=callback in-person"`
		Email       string `json:"email,omitempty" validate:"required,email"`
	}
	cv := NewValidator()

	fe := ToFieldErrors(cv.Validate(P{MeetingDate: "06/09/2025", MeetingType: "video", Email: "nope"}))
	if !containsFieldMsg(fe, "meeting_date", "must match layout 2006-01-02") {
		t.Fatalf("meeting_date: %+v", fe)
	}
	if !containsFieldMsg(fe, "meeting_type", "one of: callback in-person") {
		t.Fatalf("meeting_type: %+v", fe)
	}
	if !containsFieldMsg(fe, "email", "valid email") {
		t.Fatalf("email: %+v", fe)
	}
}

func TestRequiredAndBoundsMapping(t *testing.T) {
	type P struct {
		Name  string  `validate:"required"`
		Min   int     `validate:"gte=10"`
		Max   int     `validate:"lte=5"`
		Pass  string  `validate:"min=8"`
		Stage string  `validate:"max=3"`
		Rate  float64 `validate:"dec2,gte=0.90,lte=1.29"`
	}
	cv := NewValidator()

	err := cv.Validate(P{Name: "", Min: 9, Max: 6, Pass: "short", Stage: "closing", Rate: 1.333})
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	fe := ToFieldErrors(err)

	checks := []struct{ field, msg string }{
		{"Name", "is required"},
		{"Min", "greater than or equal to 10"},
		{"Max", "less than or equal to 5"},
		{"Pass", "at least 8 characters"},
		{"Stage", "at most 3 characters"},
		{"Rate", "at most 2 decimal places"},
	}
	for _, c := range checks {
		if !containsFieldMsg(fe, c.field, c.msg) {
			t.Fatalf("missing %q for %s: %+v", c.msg, c.field, fe)
		}
	}
}

func TestToFieldErrors_NonValidation(t *testing.T) {
	fe := ToFieldErrors(errors.New("boom"))
	if len(fe) != 1 {
		t.Fatalf("expected 1 field error, got %d", len(fe))
	}
	if fe[0].Field != "_" || fe[0].Message != "boom" {
		t.Fatalf("unexpected mapping: %+v", fe[0])
	}
}
