package models

// OrderStatus is the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusCreated   OrderStatus = "CREATED"
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// orderTransitions is the single transition table shared by all lifecycle
// endpoints. Terminal states (COMPLETED, CANCELLED) have no outgoing edges.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusCreated: {OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusPending: {OrderStatusCompleted, OrderStatusCancelled},
}

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusCreated, OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is permitted from s.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// CanTransition reports whether s -> to is a legal lifecycle transition.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	for _, next := range orderTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionSources returns every state from which `to` may be reached.
// Repositories use it as the guard set for optimistic status updates.
func TransitionSources(to OrderStatus) []OrderStatus {
	var sources []OrderStatus
	for from, nexts := range orderTransitions {
		for _, next := range nexts {
			if next == to {
				sources = append(sources, from)
			}
		}
	}
	return sources
}
