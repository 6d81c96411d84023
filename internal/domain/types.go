package domain

// ID is used across domain entities.
type ID int64

// Status represents a lightweight state value.
type Status string

// Operator is the authenticated staff member performing an action.
// Finalization requires it as an explicit parameter; it is never read
// from ambient/global state.
type Operator struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// Pagination carries paging params and totals.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total,omitempty"`
}
