package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("default content invalid: %v", err)
	}
	if len(c.Skills) != 4 {
		t.Errorf("expected 4 skills, got %d", len(c.Skills))
	}
	if len(c.TechStack) != 10 {
		t.Errorf("expected 10 tech tags, got %d", len(c.TechStack))
	}
	if !c.Projects[0].Featured {
		t.Error("expected first project to be featured")
	}
}

func TestDefaultReturnsFreshCopy(t *testing.T) {
	a := Default()
	a.Projects[0].Title = "changed"
	if Default().Projects[0].Title == "changed" {
		t.Error("Default should not share state between calls")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Content)
		wantErr string
	}{
		{"no skills", func(c *Content) { c.Skills = nil }, "at least one skill"},
		{"no projects", func(c *Content) { c.Projects = nil }, "at least one project"},
		{"blank project title", func(c *Content) { c.Projects[1].Title = "  " }, "projects[1]"},
		{"blank skill title", func(c *Content) { c.Skills[2].Title = "" }, "skills[2]"},
		{"no name", func(c *Content) { c.Profile.Name = "" }, "profile.name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := c.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yml")
	data := `
profile:
  name: Ada Lovelace
projects:
  - title: Analytical Engine
    description: Notes on the engine.
    tags: [math]
    featured: true
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Profile.Name != "Ada Lovelace" {
		t.Errorf("name: got %q", c.Profile.Name)
	}
	if c.Profile.Email != Default().Profile.Email {
		t.Errorf("email should keep default, got %q", c.Profile.Email)
	}
	if len(c.Projects) != 1 || c.Projects[0].Title != "Analytical Engine" {
		t.Errorf("projects not replaced: %+v", c.Projects)
	}
	if len(c.Skills) != 4 {
		t.Errorf("skills should keep defaults, got %d", len(c.Skills))
	}
}

func TestLoadEmptyPath(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Profile.Name != "Shyam Raj" {
		t.Errorf("expected defaults, got %q", c.Profile.Name)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("expected error for missing content file")
	}
}

func TestProject(t *testing.T) {
	c := Default()
	p, err := c.Project(2)
	if err != nil {
		t.Fatalf("Project(2): %v", err)
	}
	if p.Title != "Code Review Assistant" {
		t.Errorf("got %q", p.Title)
	}
	for _, i := range []int{-1, 3} {
		if _, err := c.Project(i); err == nil {
			t.Errorf("Project(%d) should fail", i)
		}
	}
}

func TestContactLinks(t *testing.T) {
	links := Default().ContactLinks()
	if len(links) != 3 {
		t.Fatalf("expected 3 links, got %d", len(links))
	}
	if links[0].Href != "mailto:shyamrajthottunkal@gmail.com" || links[0].External {
		t.Errorf("unexpected mail link: %+v", links[0])
	}
	if !links[1].External || !links[2].External {
		t.Error("profile links should open externally")
	}
}

func TestCopyright(t *testing.T) {
	got := Default().Copyright(2026)
	if got != "© 2026 Shyam Raj. All rights reserved." {
		t.Errorf("got %q", got)
	}
}

func TestAboutHTML(t *testing.T) {
	html, err := Default().AboutHTML()
	if err != nil {
		t.Fatalf("AboutHTML: %v", err)
	}
	if !strings.Contains(string(html), "<strong>AI</strong>") {
		t.Errorf("expected bold markup, got %s", html)
	}
}

func TestRenderMarkdownEscapesRawHTML(t *testing.T) {
	html, err := RenderMarkdown("hi <script>alert(1)</script>")
	if err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
	if strings.Contains(string(html), "<script>") {
		t.Errorf("raw HTML leaked: %s", html)
	}
}
