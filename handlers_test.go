package folioengine

import (
	"strings"
	"testing"
)

func TestPublicViewFiltersAndStrips(t *testing.T) {
	doc := SeedDocument()
	doc.Projects = []Project{
		{ID: "a", Title: "Visible", Published: true},
		{ID: "b", Title: "Draft", Published: false},
	}
	doc.Services = []Service{
		{ID: "s1", Title: "On", Enabled: true},
		{ID: "s2", Title: "Off", Enabled: false},
	}
	doc.Testimonials = []Testimonial{
		{ID: "t1", ClientName: "Shown", Published: true},
		{ID: "t2", ClientName: "Hidden", Published: false},
	}
	doc.Messages = []Message{{ID: "m1", Name: "Private"}}

	pub := PublicView(doc)

	if len(pub.Projects) != 1 || pub.Projects[0].ID != "a" {
		t.Errorf("projects = %v, want only published", pub.Projects)
	}
	if len(pub.Services) != 1 || pub.Services[0].ID != "s1" {
		t.Errorf("services = %v, want only enabled", pub.Services)
	}
	if len(pub.Testimonials) != 1 || pub.Testimonials[0].ID != "t1" {
		t.Errorf("testimonials = %v, want only published", pub.Testimonials)
	}
	if pub.Messages != nil {
		t.Error("messages leaked into the public view")
	}
	if pub.Analytics.TotalViews != 0 || pub.Analytics.ViewHistory != nil {
		t.Error("analytics leaked into the public view")
	}
	if pub.AdminCredentials != nil {
		t.Error("credentials leaked into the public view")
	}

	// The source document is untouched.
	if len(doc.Projects) != 2 || len(doc.Messages) != 1 {
		t.Error("PublicView mutated its input")
	}
}

func TestContactRequestValidate(t *testing.T) {
	valid := contactRequest{Name: "Alice", Email: "alice@example.com", Subject: "Hi", Message: "Hello there"}

	cases := []struct {
		name   string
		mutate func(*contactRequest)
		wantOK bool
	}{
		{"valid", func(r *contactRequest) {}, true},
		{"no subject is fine", func(r *contactRequest) { r.Subject = "" }, true},
		{"missing name", func(r *contactRequest) { r.Name = "" }, false},
		{"missing email", func(r *contactRequest) { r.Email = "" }, false},
		{"missing message", func(r *contactRequest) { r.Message = "" }, false},
		{"whitespace only message", func(r *contactRequest) { r.Message = "   \n " }, false},
		{"email without at sign", func(r *contactRequest) { r.Email = "alice.example.com" }, false},
		{"name too long", func(r *contactRequest) { r.Name = strings.Repeat("a", maxContactField+1) }, false},
		{"message too long", func(r *contactRequest) { r.Message = strings.Repeat("a", maxContactBody+1) }, false},
		{"message at limit", func(r *contactRequest) { r.Message = strings.Repeat("a", maxContactBody) }, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mutate(&req)
			err := req.validate()
			if tc.wantOK && err != nil {
				t.Errorf("validate() = %v, want nil", err)
			}
			if !tc.wantOK && err == nil {
				t.Error("validate() = nil, want error")
			}
		})
	}
}

func TestContactRequestValidateTrims(t *testing.T) {
	req := contactRequest{Name: "  Alice  ", Email: " alice@example.com ", Subject: " Hi ", Message: " Hello "}
	if err := req.validate(); err != nil {
		t.Fatalf("validate() = %v", err)
	}
	if req.Name != "Alice" || req.Email != "alice@example.com" || req.Message != "Hello" {
		t.Errorf("fields not trimmed: %+v", req)
	}
}

func TestAssistantContext(t *testing.T) {
	doc := SeedDocument()
	doc.Projects = []Project{
		{ID: "a", Title: "Public Project", Description: "shown", Published: true},
		{ID: "b", Title: "Secret Project", Description: "hidden", Published: false},
	}
	doc.Messages = []Message{{ID: "m1", Name: "Sender", Message: "private note"}}

	ctx := assistantContext(doc)

	if !strings.Contains(ctx, doc.Profile.Name) {
		t.Error("context missing profile name")
	}
	if !strings.Contains(ctx, "Public Project") {
		t.Error("context missing published project")
	}
	if strings.Contains(ctx, "Secret Project") {
		t.Error("unpublished project leaked into assistant context")
	}
	if strings.Contains(ctx, "private note") {
		t.Error("inbox content leaked into assistant context")
	}
	for _, s := range doc.Skills {
		if !strings.Contains(ctx, s.Name) {
			t.Errorf("context missing skill %q", s.Name)
		}
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Hello World", "hello-world"},
		{"  Already-Slugged  ", "already-slugged"},
		{"Ünïcode & Symbols!", "n-code-symbols"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLookupIcon(t *testing.T) {
	if _, ok := LookupIcon("Github"); !ok {
		t.Error("Github icon should exist")
	}
	if _, ok := LookupIcon("no-such-network"); ok {
		t.Error("unknown icon name should report ok=false")
	}
	names := IconNames()
	if len(names) == 0 {
		t.Fatal("icon registry is empty")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("IconNames not sorted: %v", names)
			break
		}
	}
}
