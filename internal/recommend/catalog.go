package recommend

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/spigell/careercompass/internal/keywords"
)

// catalogKey is the top-level key holding the list of project ideas.
const catalogKey = "projects"

// Level is the difficulty of a project idea.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// ProjectIdea is a portfolio project that exercises a set of skills.
type ProjectIdea struct {
	Title       string   `mapstructure:"project_title" json:"project_title" validate:"required"`
	Domain      string   `mapstructure:"domain" json:"domain" validate:"required"`
	Level       Level    `mapstructure:"level" json:"level" validate:"required,oneof=beginner intermediate advanced"`
	Description string   `mapstructure:"description" json:"description" validate:"required"`
	Tools       []string `mapstructure:"tools" json:"tools" validate:"required,min=1,dive,required"`
	Keywords    []string `mapstructure:"keywords" json:"keywords" validate:"required,min=1,dive,required"`
}

func (p ProjectIdea) clone() ProjectIdea {
	p.Tools = append([]string(nil), p.Tools...)
	p.Keywords = append([]string(nil), p.Keywords...)
	return p
}

// MalformedEntryError reports a catalog record that cannot be used.
type MalformedEntryError struct {
	Index  int
	Title  string
	Reason string
	Err    error
}

func (e *MalformedEntryError) Error() string {
	title := e.Title
	if title == "" {
		title = "untitled"
	}
	if e.Err != nil {
		return fmt.Sprintf("malformed catalog entry #%d (%s): %s: %v", e.Index, title, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed catalog entry #%d (%s): %s", e.Index, title, e.Reason)
}

func (e *MalformedEntryError) Unwrap() error {
	return e.Err
}

// Catalog is the read-only collection of project ideas. It is built once and
// may be shared between concurrent analyses.
type Catalog struct {
	ideas    []ProjectIdea
	keywords []keywords.Set
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// NewCatalog validates ideas and builds a catalog from them. Project keywords are
// mapped through dict so they compare equal to extracted keywords; a nil dict only
// normalizes them. The first invalid idea aborts construction.
func NewCatalog(ideas []ProjectIdea, dict *keywords.Dictionary) (*Catalog, error) {
	c := &Catalog{
		ideas:    make([]ProjectIdea, 0, len(ideas)),
		keywords: make([]keywords.Set, 0, len(ideas)),
	}

	for i, idea := range ideas {
		idea = idea.clone()
		idea.Title = strings.TrimSpace(idea.Title)
		idea.Level = Level(strings.ToLower(strings.TrimSpace(string(idea.Level))))

		if err := validate.Struct(idea); err != nil {
			return nil, &MalformedEntryError{Index: i, Title: idea.Title, Reason: describeValidation(err), Err: err}
		}

		canonical := make([]string, 0, len(idea.Keywords))
		for _, kw := range idea.Keywords {
			if dict != nil {
				kw = dict.Canonical(kw)
			}
			canonical = append(canonical, kw)
		}

		set := keywords.NewSet(canonical...)
		if set.IsEmpty() {
			return nil, &MalformedEntryError{Index: i, Title: idea.Title, Reason: "keywords normalize to nothing"}
		}

		idea.Keywords = set.Items()
		c.ideas = append(c.ideas, idea)
		c.keywords = append(c.keywords, set)
	}

	return c, nil
}

// LoadCatalog reads project ideas from a JSON, YAML or TOML file holding a
// top-level "projects" list. Unknown fields, wrong types and missing required
// fields are all errors.
func LoadCatalog(path string, dict *keywords.Dictionary) (*Catalog, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading catalog %q: %w", path, err)
	}

	catalog, err := decodeCatalog(v, dict)
	if err != nil {
		return nil, fmt.Errorf("catalog %q: %w", path, err)
	}
	return catalog, nil
}

// ReadCatalog is LoadCatalog for an in-memory document; format is a viper
// config type such as "yaml" or "json".
func ReadCatalog(r io.Reader, format string, dict *keywords.Dictionary) (*Catalog, error) {
	v := viper.New()
	v.SetConfigType(format)
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return decodeCatalog(v, dict)
}

func decodeCatalog(v *viper.Viper, dict *keywords.Dictionary) (*Catalog, error) {
	if !v.IsSet(catalogKey) {
		return nil, fmt.Errorf("missing top-level %q list", catalogKey)
	}

	entries, err := asEntries(v.Get(catalogKey))
	if err != nil {
		return nil, err
	}

	ideas := make([]ProjectIdea, 0, len(entries))
	for i, entry := range entries {
		idea, err := decodeEntry(entry)
		if err != nil {
			return nil, &MalformedEntryError{Index: i, Title: rawTitle(entry), Reason: "cannot decode record", Err: err}
		}
		ideas = append(ideas, idea)
	}

	return NewCatalog(ideas, dict)
}

// Len returns the number of project ideas.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.ideas)
}

// Ideas returns a copy of the project ideas in catalog order.
func (c *Catalog) Ideas() []ProjectIdea {
	if c == nil {
		return nil
	}
	out := make([]ProjectIdea, 0, len(c.ideas))
	for _, idea := range c.ideas {
		out = append(out, idea.clone())
	}
	return out
}

// CountByLevel reports how many ideas the catalog holds per level.
func (c *Catalog) CountByLevel() map[Level]int {
	counts := make(map[Level]int)
	if c == nil {
		return counts
	}
	for _, idea := range c.ideas {
		counts[idea.Level]++
	}
	return counts
}

func asEntries(raw any) ([]any, error) {
	switch list := raw.(type) {
	case []any:
		return list, nil
	case []map[string]any:
		entries := make([]any, 0, len(list))
		for _, m := range list {
			entries = append(entries, m)
		}
		return entries, nil
	default:
		return nil, fmt.Errorf("%q must be a list of records, got %T", catalogKey, raw)
	}
}

func decodeEntry(entry any) (ProjectIdea, error) {
	var idea ProjectIdea

	if _, ok := entry.(map[string]any); !ok {
		return idea, fmt.Errorf("record must be a mapping, got %T", entry)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &idea,
	})
	if err != nil {
		return idea, err
	}

	if err := decoder.Decode(entry); err != nil {
		return idea, err
	}
	return idea, nil
}

func rawTitle(entry any) string {
	m, ok := entry.(map[string]any)
	if !ok {
		return ""
	}
	title, _ := m["project_title"].(string)
	return strings.TrimSpace(title)
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			problems = append(problems, fmt.Sprintf("%s is required", fe.Field()))
		case "min":
			problems = append(problems, fmt.Sprintf("%s needs at least %s item(s)", fe.Field(), fe.Param()))
		case "oneof":
			problems = append(problems, fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value()))
		default:
			problems = append(problems, fmt.Sprintf("%s fails %q", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(problems, "; ")
}
