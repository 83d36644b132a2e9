package nav

// History is a back-stack of visited routes. The zero value starts at Home.
type History struct {
	stack []string
}

// NewHistory starts a history at route (Home when empty)
func NewHistory(route string) *History {
	if route == "" {
		route = Home
	}
	return &History{stack: []string{route}}
}

// Current returns the active route
func (h *History) Current() string {
	if len(h.stack) == 0 {
		return Home
	}
	return h.stack[len(h.stack)-1]
}

// Push navigates to route. Pushing the current route is a no-op.
func (h *History) Push(route string) {
	if len(h.stack) == 0 {
		h.stack = []string{Home}
	}
	if route == "" || route == h.Current() {
		return
	}
	h.stack = append(h.stack, route)
}

// Back pops the active route. Reports false at the root.
func (h *History) Back() bool {
	if len(h.stack) <= 1 {
		return false
	}
	h.stack = h.stack[:len(h.stack)-1]
	return true
}
