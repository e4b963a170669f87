package db

import (
	"fmt"
	"strings"
)

// SortField enumerates the todo fields that can be sorted on.
type SortField string

// Sortable todo fields.
const (
	SortByContent   SortField = "content"
	SortByDueDate   SortField = "dueDate"
	SortByStatus    SortField = "status"
	SortByCreatedAt SortField = "createdAt"
)

// SortOrder is the direction of a sort.
type SortOrder string

// Sort directions.
const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// Filter restricts a todo listing. A zero Filter imposes no restriction.
type Filter struct {
	// Keyword is matched as a substring of the todo content.
	Keyword string
	// Status restricts the listing to todos in any of the given statuses.
	// Empty means no status restriction.
	Status []Status
}

// Sort orders a todo listing by a single field.
type Sort struct {
	Field SortField
	Order SortOrder
}

// DefaultSort is the ordering used when no sort is given: newest first.
func DefaultSort() Sort {
	return Sort{Field: SortByCreatedAt, Order: OrderDesc}
}

// Validate checks the filter's statuses against the known status values.
func (f Filter) Validate() error {
	for _, status := range f.Status {
		if !status.IsValid() {
			return fmt.Errorf("invalid status %q in filter", string(status))
		}
	}

	return nil
}

// Validate checks the sort field and order against the known values.
func (s Sort) Validate() error {
	switch s.Field {
	case SortByContent, SortByDueDate, SortByStatus, SortByCreatedAt:
	default:
		return fmt.Errorf("invalid sort field %q", string(s.Field))
	}

	switch s.Order {
	case OrderAsc, OrderDesc:
	default:
		return fmt.Errorf("invalid sort order %q", string(s.Order))
	}

	return nil
}

// orderClause maps the enumerated sort fields onto column names with an
// explicit switch; an arbitrary field name never reaches the query.
func (s Sort) orderClause() string {
	var column string

	switch s.Field {
	case SortByContent:
		column = "content"
	case SortByDueDate:
		column = "due_date"
	case SortByStatus:
		column = "status"
	case SortByCreatedAt:
		column = "created_at"
	default:
		column = "created_at"
	}

	direction := "ASC"
	if s.Order == OrderDesc {
		direction = "DESC"
	}

	return fmt.Sprintf("ORDER BY %s %s", column, direction)
}

// whereClause builds the WHERE clause and its arguments for the filter.
// Both conditions are ANDed; absent fields contribute nothing.
func (f Filter) whereClause() (string, []any) {
	var conditions []string

	var args []any

	if f.Keyword != "" {
		conditions = append(conditions, "content LIKE ?")
		args = append(args, "%"+f.Keyword+"%")
	}

	if len(f.Status) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(f.Status)), ",")
		conditions = append(conditions, fmt.Sprintf("status IN (%s)", placeholders))

		for _, status := range f.Status {
			args = append(args, string(status))
		}
	}

	if len(conditions) == 0 {
		return "", nil
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}
