package schema

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// Type discriminates which citation template family applies to a record.
// The zero value means the type is absent and must be inferred.
type Type string

const (
	TypeArticle Type = "article"
	TypeBook    Type = "book"
	TypeWebpage Type = "webpage"
	TypeMisc    Type = "misc"
)

// ParseType maps a free-form type name onto a Type. Unknown names yield the
// zero Type so the normalizer can infer one.
func ParseType(s string) Type {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "article", "journal", "paper", "journal-article":
		return TypeArticle
	case "book", "monograph":
		return TypeBook
	case "webpage", "website", "site", "web":
		return TypeWebpage
	case "misc":
		return TypeMisc
	default:
		return ""
	}
}

// Record is one bibliographic record, either a partial source record as
// delivered by a provider or the canonical record produced by normalization.
type Record struct {
	Type    Type    `yaml:"type,omitempty" json:"type,omitempty"`
	Title   string  `yaml:"title,omitempty" json:"title,omitempty"`
	Authors Authors `yaml:"authors,omitempty" json:"authors,omitempty"`
	Year    string  `yaml:"year,omitempty" json:"year,omitempty"`

	// article
	Journal string `yaml:"journal,omitempty" json:"journal,omitempty"`
	Volume  string `yaml:"volume,omitempty" json:"volume,omitempty"`
	Issue   string `yaml:"issue,omitempty" json:"issue,omitempty"`
	Pages   string `yaml:"pages,omitempty" json:"pages,omitempty"`
	DOI     string `yaml:"doi,omitempty" json:"doi,omitempty"`
	ISSN    string `yaml:"issn,omitempty" json:"issn,omitempty"`

	// book
	Publisher string `yaml:"publisher,omitempty" json:"publisher,omitempty"`
	City      string `yaml:"city,omitempty" json:"city,omitempty"`
	Edition   string `yaml:"edition,omitempty" json:"edition,omitempty"`
	ISBN      string `yaml:"isbn,omitempty" json:"isbn,omitempty"`

	// webpage
	Site       string `yaml:"site,omitempty" json:"site,omitempty"`
	URL        string `yaml:"url,omitempty" json:"url,omitempty"`
	AccessDate string `yaml:"access_date,omitempty" json:"accessDate,omitempty"`

	IsOpenAccess bool `yaml:"is_open_access,omitempty" json:"isOpenAccess,omitempty"`

	// Source names the provider a record came from. It is informational only.
	Source string `yaml:"source,omitempty" json:"source,omitempty"`
}

// IsEmpty reports whether no bibliographic field is set.
func (r Record) IsEmpty() bool {
	return r.Type == "" && len(r.Authors) == 0 && !r.IsOpenAccess &&
		strings.TrimSpace(r.Title+r.Year+r.Journal+r.Volume+r.Issue+r.Pages+r.DOI+r.ISSN+
			r.Publisher+r.City+r.Edition+r.ISBN+r.Site+r.URL+r.AccessDate) == ""
}

// Author is a single contributor. Raw carries a free-text name that has not
// been split yet; FirstName/LastName carry structured values.
type Author struct {
	FirstName string `yaml:"firstName,omitempty" json:"firstName,omitempty"`
	LastName  string `yaml:"lastName,omitempty" json:"lastName,omitempty"`
	Raw       string `yaml:"raw,omitempty" json:"raw,omitempty"`
}

// IsZero reports a trivial author entry.
func (a Author) IsZero() bool {
	return strings.TrimSpace(a.FirstName) == "" && strings.TrimSpace(a.LastName) == "" && strings.TrimSpace(a.Raw) == ""
}

// IsStructured reports whether the author already carries a split name.
func (a Author) IsStructured() bool {
	return strings.TrimSpace(a.FirstName) != "" || strings.TrimSpace(a.LastName) != ""
}

// authorFields accepts both the record's own keys and the given/family keys
// used by CSL-style sources.
type authorFields struct {
	FirstName string `yaml:"firstName" json:"firstName"`
	LastName  string `yaml:"lastName" json:"lastName"`
	Raw       string `yaml:"raw" json:"raw"`
	Given     string `yaml:"given" json:"given"`
	Family    string `yaml:"family" json:"family"`
	Name      string `yaml:"name" json:"name"`
}

func (f authorFields) author() Author {
	a := Author{FirstName: f.FirstName, LastName: f.LastName, Raw: f.Raw}
	if a.FirstName == "" {
		a.FirstName = f.Given
	}
	if a.LastName == "" {
		a.LastName = f.Family
	}
	if a.Raw == "" && !a.IsStructured() {
		a.Raw = f.Name
	}
	return a
}

// Authors is a slice of Author that can unmarshal from multiple shapes:
// - a single string (one free-text name)
// - a sequence of strings
// - a mapping (single Author object)
// - a sequence of Author mappings
type Authors []Author

func (a *Authors) UnmarshalYAML(value *yaml.Node) error {
	if value == nil {
		*a = nil
		return nil
	}
	switch value.Kind {
	case yaml.ScalarNode:
		s := strings.TrimSpace(value.Value)
		if s == "" || s == "null" {
			*a = nil
			return nil
		}
		*a = Authors{{Raw: s}}
		return nil
	case yaml.SequenceNode:
		var out Authors
		for _, n := range value.Content {
			switch n.Kind {
			case yaml.ScalarNode:
				if s := strings.TrimSpace(n.Value); s != "" {
					out = append(out, Author{Raw: s})
				}
			case yaml.MappingNode:
				var f authorFields
				if err := n.Decode(&f); err != nil {
					return err
				}
				if au := f.author(); !au.IsZero() {
					out = append(out, au)
				}
			}
		}
		*a = out
		return nil
	case yaml.MappingNode:
		var f authorFields
		if err := value.Decode(&f); err != nil {
			return err
		}
		if au := f.author(); !au.IsZero() {
			*a = Authors{au}
			return nil
		}
		*a = nil
		return nil
	default:
		// Unknown shape; leave nil rather than erroring
		*a = nil
		return nil
	}
}

func (a *Authors) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = authorsFromAny(raw)
	return nil
}

func authorsFromAny(v any) Authors {
	switch t := v.(type) {
	case string:
		if s := strings.TrimSpace(t); s != "" {
			return Authors{{Raw: s}}
		}
	case map[string]any:
		if au := authorFromMap(t); !au.IsZero() {
			return Authors{au}
		}
	case []any:
		var out Authors
		for _, it := range t {
			out = append(out, authorsFromAny(it)...)
		}
		return out
	}
	return nil
}

func authorFromMap(m map[string]any) Author {
	str := func(k string) string {
		s, _ := m[k].(string)
		return strings.TrimSpace(s)
	}
	return authorFields{
		FirstName: str("firstName"),
		LastName:  str("lastName"),
		Raw:       str("raw"),
		Given:     str("given"),
		Family:    str("family"),
		Name:      str("name"),
	}.author()
}
