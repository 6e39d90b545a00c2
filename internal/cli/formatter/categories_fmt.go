package formatter

import (
	"strconv"

	"github.com/alexanderramin/coursedraft/internal/domain"
)

// FormatCategories renders the marketplace categories in their published order.
func FormatCategories(cats []domain.Category) string {
	if len(cats) == 0 {
		return Dim("No categories published.") + "\n"
	}
	rows := make([][]string, 0, len(cats))
	for _, c := range cats {
		name := c.Name
		if !c.IsActive {
			name = Dim(name + " (inactive)")
		}
		rows = append(rows, []string{name, Dim(c.Slug), strconv.Itoa(c.CourseCount), Truncate(c.Description, 50)})
	}
	return RenderTable([]string{"NAME", "SLUG", "COURSES", "DESCRIPTION"}, rows)
}
