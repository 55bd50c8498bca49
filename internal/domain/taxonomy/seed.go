package taxonomy

// SeedItem is one entry of the versioned global default list
type SeedItem struct {
	Name        string
	Value       string
	Description string
	Icon        string
	Color       string
	Order       int
	IsCollapsed bool
}

// Registry holds the immutable global defaults for every kind. It is
// built once at process start and injected into the services that
// seed and propagate; nothing mutates it afterwards.
type Registry struct {
	defaults map[Kind][]SeedItem
}

// NewRegistry builds a registry from explicit per-kind defaults
func NewRegistry(defaults map[Kind][]SeedItem) *Registry {
	copied := make(map[Kind][]SeedItem, len(defaults))
	for kind, items := range defaults {
		copied[kind] = append([]SeedItem(nil), items...)
	}
	return &Registry{defaults: copied}
}

// DefaultRegistry returns the built-in seed lists
func DefaultRegistry() *Registry {
	return NewRegistry(map[Kind][]SeedItem{
		KindStatus:   defaultStatuses(),
		KindPriority: defaultPriorities(),
		KindSize:     defaultSizes(),
	})
}

// Defaults returns a copy of the seed list for a kind
func (r *Registry) Defaults(kind Kind) []SeedItem {
	return append([]SeedItem(nil), r.defaults[kind]...)
}

func defaultStatuses() []SeedItem {
	return []SeedItem{
		{Name: "Open", Value: "open", Icon: "task-statuses/open.svg", Color: "#D6E4F0", Order: 0},
		{Name: "In Progress", Value: "in-progress", Icon: "task-statuses/in-progress.svg", Color: "#ECE8FC", Order: 1},
		{Name: "Ready for Review", Value: "ready-for-review", Icon: "task-statuses/ready.svg", Color: "#F5F1CB", Order: 2},
		{Name: "In Review", Value: "in-review", Icon: "task-statuses/in-review.svg", Color: "#F3D8B0", Order: 3},
		{Name: "Blocked", Value: "blocked", Icon: "task-statuses/blocked.svg", Color: "#F5B8B5", Order: 4},
		{Name: "Completed", Value: "completed", Icon: "task-statuses/completed.svg", Color: "#D4EFDF", Order: 5, IsCollapsed: true},
	}
}

func defaultPriorities() []SeedItem {
	return []SeedItem{
		{Name: "Urgent", Value: "urgent", Icon: "task-priorities/urgent.svg", Color: "#F5B8B5"},
		{Name: "High", Value: "high", Icon: "task-priorities/high.svg", Color: "#F3D8B0"},
		{Name: "Medium", Value: "medium", Icon: "task-priorities/medium.svg", Color: "#F5F1CB"},
		{Name: "Low", Value: "low", Icon: "task-priorities/low.svg", Color: "#B8D1F5"},
	}
}

func defaultSizes() []SeedItem {
	return []SeedItem{
		{Name: "X-Large", Value: "x-large", Icon: "task-sizes/x-large.svg", Color: "#F5B8B5"},
		{Name: "Large", Value: "large", Icon: "task-sizes/large.svg", Color: "#F3D8B0"},
		{Name: "Medium", Value: "medium", Icon: "task-sizes/medium.svg", Color: "#F5F1CB"},
		{Name: "Small", Value: "small", Icon: "task-sizes/small.svg", Color: "#B8D1F5"},
		{Name: "Tiny", Value: "tiny", Icon: "task-sizes/tiny.svg", Color: "#ECE8FC"},
	}
}
