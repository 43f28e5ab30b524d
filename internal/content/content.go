// Package content holds the static descriptors the portfolio page renders.
package content

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// SkillDescriptor is one card in the About section.
type SkillDescriptor struct {
	Icon        string `yaml:"icon" json:"icon"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

// TechTag is a bare technology label.
type TechTag string

// ProjectDescriptor is one card in the Projects section. Featured only
// widens the card.
type ProjectDescriptor struct {
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Tags        []string `yaml:"tags" json:"tags"`
	Featured    bool     `yaml:"featured" json:"featured"`
	Theme       string   `yaml:"theme" json:"theme"`
}

// Link is a navigation or contact target.
type Link struct {
	Label    string `yaml:"label" json:"label"`
	Href     string `yaml:"href" json:"href"`
	External bool   `yaml:"external" json:"external"`
}

// Profile carries the owner-specific strings spread over the page.
type Profile struct {
	Name        string `yaml:"name"`
	Initials    string `yaml:"initials"`
	About       string `yaml:"about"` // markdown
	Email       string `yaml:"email"`
	LinkedInURL string `yaml:"linkedin_url"`
	GitHubURL   string `yaml:"github_url"`
	ProjectsURL string `yaml:"projects_url"` // every project card links here
	BuiltWith   string `yaml:"built_with"`
}

// Content is everything the page shows.
type Content struct {
	Profile   Profile             `yaml:"profile"`
	Skills    []SkillDescriptor   `yaml:"skills"`
	TechStack []TechTag           `yaml:"tech_stack"`
	Projects  []ProjectDescriptor `yaml:"projects"`
}

// Load overlays the YAML file at path onto the built-in content. Lists in the
// file replace the defaults wholesale; absent keys keep them.
func Load(path string) (*Content, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing content %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("content %s: %w", path, err)
	}
	return c, nil
}

// Validate rejects content that would render an empty or broken section.
func (c *Content) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Profile.Name) == "" {
		errs = append(errs, errors.New("profile.name is required"))
	}
	if len(c.Skills) == 0 {
		errs = append(errs, errors.New("at least one skill is required"))
	}
	for i, s := range c.Skills {
		if strings.TrimSpace(s.Title) == "" {
			errs = append(errs, fmt.Errorf("skills[%d]: title is required", i))
		}
	}
	if len(c.Projects) == 0 {
		errs = append(errs, errors.New("at least one project is required"))
	}
	for i, p := range c.Projects {
		if strings.TrimSpace(p.Title) == "" {
			errs = append(errs, fmt.Errorf("projects[%d]: title is required", i))
		}
	}
	return errors.Join(errs...)
}

// Project returns the descriptor at display position i.
func (c *Content) Project(i int) (*ProjectDescriptor, error) {
	if i < 0 || i >= len(c.Projects) {
		return nil, fmt.Errorf("project not found: %d", i)
	}
	return &c.Projects[i], nil
}

// ContactLinks are the direct-contact buttons under the refiner.
func (c *Content) ContactLinks() []Link {
	return []Link{
		{Label: "Email Me", Href: "mailto:" + c.Profile.Email},
		{Label: "LinkedIn", Href: c.Profile.LinkedInURL, External: true},
		{Label: "GitHub", Href: c.Profile.GitHubURL, External: true},
	}
}

// Copyright renders the footer notice for the given year.
func (c *Content) Copyright(year int) string {
	return fmt.Sprintf("© %d %s. All rights reserved.", year, c.Profile.Name)
}
