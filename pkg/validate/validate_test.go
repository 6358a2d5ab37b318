package validate_test

import (
	"testing"

	"github.com/shashiranjanraj/bazaar/pkg/validate"
)

type postInput struct {
	Title    string `json:"title"    validate:"required,min=3,max=100"`
	Content  string `json:"content"  validate:"required,min=5"`
	Category string `json:"category" validate:"nullable,in=blockchain,coding,devapp,nextjs,nodejs,reactjs,sports,typescript,social"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(postInput{
		Title:    "Generics in practice",
		Content:  "A walkthrough of type parameters.",
		Category: "coding",
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(postInput{})
	if !validate.HasErrors(errs) {
		t.Error("expected required errors")
	}
	if _, ok := errs["title"]; !ok {
		t.Error("expected title to be required")
	}
	if _, ok := errs["content"]; !ok {
		t.Error("expected content to be required")
	}
}

func TestStringLengthBounds(t *testing.T) {
	if errs := validate.Struct(postInput{Title: "ab", Content: "long enough"}); errs["title"] == "" {
		t.Error("expected title shorter than 3 chars to fail")
	}
	if errs := validate.Struct(postInput{Title: "fine title", Content: "abcd"}); errs["content"] == "" {
		t.Error("expected content shorter than 5 chars to fail")
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	errs := validate.Struct(in{Email: "not-an-email"})
	if _, ok := errs["email"]; !ok {
		t.Error("expected email validation error")
	}
	errs = validate.Struct(in{Email: "valid@example.com"})
	if validate.HasErrors(errs) {
		t.Errorf("expected valid email to pass, got: %v", errs)
	}
}

func TestNumericBounds(t *testing.T) {
	type in struct {
		Quantity int `json:"quantity" validate:"required,gte=1,lte=99"`
	}
	if errs := validate.Struct(in{Quantity: 100}); !validate.HasErrors(errs) {
		t.Error("expected quantity > 99 to fail")
	}
	if errs := validate.Struct(in{Quantity: 3}); validate.HasErrors(errs) {
		t.Errorf("expected quantity 3 to pass, got: %v", errs)
	}
}

func TestInRule(t *testing.T) {
	type in struct {
		Category string `json:"category" validate:"required,in=coding,sports,social"`
	}
	if errs := validate.Struct(in{Category: "gardening"}); !validate.HasErrors(errs) {
		t.Error("expected unknown category to fail")
	}
	if errs := validate.Struct(in{Category: "sports"}); validate.HasErrors(errs) {
		t.Errorf("expected sports to pass: %v", errs)
	}
}

func TestInFollowedByAnotherRule(t *testing.T) {
	// The in= list is comma-separated; the parser must see max= as a new
	// rule, not as another allowed value.
	type in struct {
		Category string `json:"category" validate:"required,in=coding,sports,max=20"`
	}
	if errs := validate.Struct(in{Category: "coding"}); validate.HasErrors(errs) {
		t.Errorf("expected coding to pass: %v", errs)
	}
	if errs := validate.Struct(in{Category: "max=20"}); !validate.HasErrors(errs) {
		t.Error("expected literal 'max=20' value to fail the in rule")
	}
}

func TestNullableSkipsRules(t *testing.T) {
	type in struct {
		Website string `json:"website" validate:"nullable,url"`
	}
	// Empty string — nullable, should pass even though it's not a URL
	if errs := validate.Struct(in{Website: ""}); validate.HasErrors(errs) {
		t.Errorf("expected empty nullable to pass: %v", errs)
	}
	// Non-empty but invalid URL — should fail
	if errs := validate.Struct(in{Website: "not-a-url"}); !validate.HasErrors(errs) {
		t.Error("expected invalid URL to fail")
	}
}

func TestBetweenRule(t *testing.T) {
	type in struct {
		Price float64 `json:"price" validate:"required,between=1,10000"`
	}
	if errs := validate.Struct(in{Price: 20000}); !validate.HasErrors(errs) {
		t.Error("expected price > 10000 to fail")
	}
	if errs := validate.Struct(in{Price: 75}); validate.HasErrors(errs) {
		t.Errorf("expected price 75 to pass: %v", errs)
	}
}

func TestURLRule(t *testing.T) {
	type in struct {
		Site string `json:"site" validate:"required,url"`
	}
	if errs := validate.Struct(in{Site: "https://example.com"}); validate.HasErrors(errs) {
		t.Errorf("expected valid URL to pass: %v", errs)
	}
	if errs := validate.Struct(in{Site: "not-a-url"}); !validate.HasErrors(errs) {
		t.Error("expected invalid URL to fail")
	}
}

func TestAlphaDashRule(t *testing.T) {
	type in struct {
		Slug string `json:"slug" validate:"required,alpha_dash"`
	}
	if errs := validate.Struct(in{Slug: "hello-world_123"}); validate.HasErrors(errs) {
		t.Errorf("expected alpha_dash to pass: %v", errs)
	}
	if errs := validate.Struct(in{Slug: "hello world!"}); !validate.HasErrors(errs) {
		t.Error("expected alpha_dash to fail for spaces/punctuation")
	}
}
