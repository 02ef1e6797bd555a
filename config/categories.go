package config

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Category is an expense category and its chart colour.
type Category struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// FallbackCategory is the category whose colour is used for unknown categories.
const FallbackCategory = "Other"

// DefaultCategories are the categories offered when no file overrides them.
var DefaultCategories = []Category{
	{Name: "Food & Drink", Color: "#FF6384"},
	{Name: "Grocery", Color: "#34D399"},
	{Name: "Transport", Color: "#36A2EB"},
	{Name: "Bills & Rent", Color: "#FFCE56"},
	{Name: "Shopping", Color: "#4BC0C0"},
	{Name: "Entertainment", Color: "#9966FF"},
	{Name: "Health", Color: "#FF9F40"},
	{Name: "Academic & Study", Color: "#8B5CF6"},
	{Name: "Other", Color: "#C9CBCF"},
	{Name: "Debt Repayment", Color: "#7E22CE"},
	{Name: "Uncategorized", Color: "#A0A0A0"},
}

// Categories is an ordered list of categories.
type Categories []Category

// categoriesFile is the YAML layout of a categories file.
type categoriesFile struct {
	Categories []Category `yaml:"categories"`
}

// LoadCategories returns the default categories, updated with the ones in
// the YAML file at path. Categories of the file replace the colour of a
// default category with the same name, or are appended. An empty path
// returns the defaults.
func LoadCategories(path string) (Categories, error) {
	cats := slices.Clone(Categories(DefaultCategories))
	if path == "" {
		return cats, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read categories file: %w", err)
	}
	var file categoriesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	for _, c := range file.Categories {
		if c.Name == "" {
			return nil, fmt.Errorf("invalid categories file %q: category without a name", path)
		}
		i := slices.IndexFunc(cats, func(d Category) bool { return d.Name == c.Name })
		if i < 0 {
			cats = append(cats, c)
			continue
		}
		if c.Color != "" {
			cats[i].Color = c.Color
		}
	}
	return cats, nil
}

// Color returns the colour of category name, or the colour of the
// FallbackCategory if name is unknown.
func (cs Categories) Color(name string) string {
	var fallback string
	for _, c := range cs {
		if c.Name == name {
			return c.Color
		}
		if c.Name == FallbackCategory {
			fallback = c.Color
		}
	}
	return fallback
}

// Names returns the category names, in order.
func (cs Categories) Names() []string {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.Name
	}
	return names
}
