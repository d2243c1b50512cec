package models

import "strings"

// Category labels a transaction's purpose. The engine treats it as an opaque key;
// the closed set below is what the extraction service is asked to choose from.
type Category string

// Default category labels
const (
	CategoryGroceries       Category = "Groceries"
	CategoryDiningOut       Category = "Dining Out"
	CategoryElectronics     Category = "Electronics"
	CategoryClothing        Category = "Clothing"
	CategoryTravel          Category = "Travel"
	CategoryHealthcare      Category = "Healthcare"
	CategoryEducation       Category = "Education"
	CategoryEntertainment   Category = "Entertainment"
	CategoryHomeImprovement Category = "Home Improvement"
	CategoryUtilities       Category = "Utilities & Bills"
	CategorySubscriptions   Category = "Subscriptions"
	CategorySalary          Category = "Salary"
	CategoryInvestments     Category = "Investments"
	CategoryBankFees        Category = "Bank Fees"
	CategoryTransfers       Category = "Transfers"
	CategoryMisc            Category = "Misc"
)

// DefaultCategories is the label set used when configuration does not override it.
var DefaultCategories = []Category{
	CategoryGroceries,
	CategoryDiningOut,
	CategoryElectronics,
	CategoryClothing,
	CategoryTravel,
	CategoryHealthcare,
	CategoryEducation,
	CategoryEntertainment,
	CategoryHomeImprovement,
	CategoryUtilities,
	CategorySubscriptions,
	CategorySalary,
	CategoryInvestments,
	CategoryBankFees,
	CategoryTransfers,
	CategoryMisc,
}

// CategorySet is a closed set of labels with Misc as the fallback for anything
// the extraction service returns outside the set.
type CategorySet struct {
	labels []Category
	index  map[string]Category
}

// NewCategorySet builds a set from labels. Blank labels and duplicates are skipped
// and Misc is always a member.
func NewCategorySet(labels []string) CategorySet {
	set := CategorySet{index: make(map[string]Category, len(labels)+1)}
	for _, label := range labels {
		set.add(Category(strings.TrimSpace(label)))
	}
	set.add(CategoryMisc)
	return set
}

// DefaultCategorySet returns the set built from DefaultCategories.
func DefaultCategorySet() CategorySet {
	labels := make([]string, len(DefaultCategories))
	for i, c := range DefaultCategories {
		labels[i] = string(c)
	}
	return NewCategorySet(labels)
}

func (s *CategorySet) add(c Category) {
	if c == "" {
		return
	}
	key := strings.ToLower(string(c))
	if _, exists := s.index[key]; exists {
		return
	}
	s.index[key] = c
	s.labels = append(s.labels, c)
}

// Normalize maps a label onto the set, matching case-insensitively.
// The second return value is false when the label was unknown and Misc was used.
func (s CategorySet) Normalize(label string) (Category, bool) {
	c, ok := s.index[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return CategoryMisc, false
	}
	return c, true
}

// Contains reports whether label is a member of the set.
func (s CategorySet) Contains(label string) bool {
	_, ok := s.Normalize(label)
	return ok
}

// Labels returns the set members in configuration order.
func (s CategorySet) Labels() []Category {
	out := make([]Category, len(s.labels))
	copy(out, s.labels)
	return out
}

// Strings returns the labels as plain strings, e.g. for prompt and schema enums.
func (s CategorySet) Strings() []string {
	out := make([]string, len(s.labels))
	for i, c := range s.labels {
		out[i] = string(c)
	}
	return out
}
