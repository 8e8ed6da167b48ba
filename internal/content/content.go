// Package content holds the copy of the landing page as data so the web
// and terminal front-ends render the same text.
package content

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/ghodss/yaml"
	validator "gopkg.in/go-playground/validator.v9"
)

//go:embed content.yaml
var defaultYAML []byte

// Roadmap step states.
const (
	StatusDone       = "done"
	StatusInProgress = "in-progress"
	StatusFuture     = "future"
)

type Page struct {
	Brand    string        `json:"brand" validate:"required"`
	Logo     string        `json:"logo"`
	Tagline  string        `json:"tagline" validate:"required"`
	Hero     Hero          `json:"hero"`
	Links    Links         `json:"links"`
	Nav      []NavItem     `json:"nav" validate:"dive"`
	Features Features      `json:"features"`
	Roadmap  []RoadmapStep `json:"roadmap" validate:"min=1,dive"`
	About    About         `json:"about"`
	Footer   Footer        `json:"footer"`
	Install  Install       `json:"install"`
}

type Hero struct {
	Headline   []string `json:"headline" validate:"min=1,dive,required"`
	Screenshot string   `json:"screenshot"`
}

type Links struct {
	App        string `json:"app" validate:"required,url"`
	Repository string `json:"repository" validate:"required,url"`
	Discord    string `json:"discord"`
	Imprint    string `json:"imprint"`
}

type NavItem struct {
	Label  string `json:"label" validate:"required"`
	Anchor string `json:"anchor" validate:"required"`
}

type Features struct {
	Heading string    `json:"heading" validate:"required"`
	Intro   string    `json:"intro"`
	Items   []Feature `json:"items" validate:"min=1,dive"`
}

type Feature struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Icon        string `json:"icon"`
}

type RoadmapStep struct {
	Title  string `json:"title" validate:"required"`
	Detail string `json:"detail"`
	Status string `json:"status" validate:"oneof=done in-progress future"`
}

// StatusLabel is the badge text for the step.
func (s RoadmapStep) StatusLabel() string {
	switch s.Status {
	case StatusDone:
		return "Done"
	case StatusInProgress:
		return "In Progress"
	default:
		return "Future"
	}
}

type About struct {
	Kicker   string    `json:"kicker"`
	Name     string    `json:"name" validate:"required"`
	Photo    string    `json:"photo"`
	Bio      string    `json:"bio"`
	Profiles []Profile `json:"profiles" validate:"dive"`
}

type Profile struct {
	Label string `json:"label" validate:"required"`
	URL   string `json:"url" validate:"required,url"`
}

type Footer struct {
	License string `json:"license"`
	Motto   string `json:"motto"`
}

// Install is the text of the installation modal. Command is copied verbatim
// to the clipboard.
type Install struct {
	Title   string `json:"title" validate:"required"`
	Intro   string `json:"intro"`
	Command string `json:"command" validate:"required"`
}

// Default returns the embedded landing page copy.
func Default() (*Page, error) {
	return Parse(defaultYAML)
}

// Load reads page copy from path, or the embedded default when path is empty.
func Load(path string) (*Page, error) {
	if path == "" {
		return Default()
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	return Parse(b)
}

// Parse decodes and validates YAML page copy.
func Parse(b []byte) (*Page, error) {
	var p Page
	if err := yaml.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	if err := validator.New().Struct(p); err != nil {
		return nil, fmt.Errorf("invalid content: %w", err)
	}
	return &p, nil
}
