package sync

// Route maps one source repository to the team and board its cards live
// on. BoardName must match the board's title exactly.
type Route struct {
	Repository string
	TeamID     string
	BoardName  string
}

// RouteTable resolves repository names to their target team/board pair.
// Unknown repositories resolve to the fallback route rather than failing,
// so a newly added repository degrades to the default board instead of
// dropping events.
type RouteTable struct {
	rules    []Route
	fallback Route
}

func NewRouteTable(rules []Route, fallback Route) *RouteTable {
	return &RouteTable{rules: rules, fallback: fallback}
}

// DefaultRoutes is the built-in mapping used when no routes are
// configured.
func DefaultRoutes() *RouteTable {
	return NewRouteTable(
		[]Route{
			{Repository: "careboard-flutter", TeamID: "9k3zuaeyuib8pfthfc4fbrgx8y", BoardName: "Development Roadmap"},
			{Repository: "careboard_app", TeamID: "9k3zuaeyuib8pfthfc4fbrgx8y", BoardName: "Development Roadmap"},
			{Repository: "todo-app", TeamID: "g6q7abcqii8m3ybj7gemoub5kc", BoardName: "Lorem Ipsum"},
		},
		Route{TeamID: "9k3zuaeyuib8pfthfc4fbrgx8y", BoardName: "Development Roadmap"},
	)
}

// Resolve returns the team id and board name for a repository. Total:
// every input resolves, unknown names hit the fallback.
func (t *RouteTable) Resolve(repository string) (teamID, boardName string) {
	for _, rule := range t.rules {
		if rule.Repository == repository {
			return rule.TeamID, rule.BoardName
		}
	}
	return t.fallback.TeamID, t.fallback.BoardName
}
