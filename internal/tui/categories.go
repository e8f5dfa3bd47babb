package tui

type Category struct {
	ID          string
	Name        string
	Description string
}

var Categories = []Category{
	{ID: "scan", Name: "Scan", Description: "Depth limit, root label and symlinks"},
	{ID: "filters", Name: "Filters", Description: "Excluded paths and included file types"},
	{ID: "output", Name: "Output", Description: "Manifest location, format and compression"},
	{ID: "watch", Name: "Watch", Description: "Quiet period before regenerating"},
	{ID: "batch", Name: "Batch", Description: "Targets generated concurrently"},
	{ID: "logging", Name: "Logging", Description: "Log level and format"},
}

// GetCategoryByID returns the category with id, or nil
func GetCategoryByID(id string) *Category {
	for i := range Categories {
		if Categories[i].ID == id {
			return &Categories[i]
		}
	}
	return nil
}
