package dto

type FilterInput struct {
	Search   string
	Category string
}

type CategoryOutput struct {
	ID   string
	Name string
}

type ResourceOutput struct {
	ID          string
	Title       string
	Description string
	Category    string
	Type        string
	URL         string
	Tags        []string
	ReadTime    string
	HasDocument bool
}

type DocumentOutput struct {
	ResourceID string
	Title      string
	Kind       string
	Path       string
	Body       string
	Pages      int
}
