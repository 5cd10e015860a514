package api

// Ticket is a unit of customer support work as delivered by the backend.
// Status, priority and channel are backend-owned enums; the frontend renders
// whatever it receives and performs no validation.
type Ticket struct {
	ID            int       `json:"id"`
	Subject       string    `json:"subject"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	Status        string    `json:"status"`   // open | pending | closed
	Priority      string    `json:"priority"` // low | medium | high | urgent
	Channel       string    `json:"channel"`  // email | chat | phone | social
	Assignee      string    `json:"assignee"`
	Tags          []string  `json:"tags"`
	CreatedAt     string    `json:"createdAt"` // ISO-8601, rendered as-is
	UpdatedAt     string    `json:"updatedAt"`
	Messages      []Message `json:"messages"`
}

// Message is one entry in a ticket's conversation thread. A sender equal to
// the ticket's customer name marks the message as written by the customer.
type Message struct {
	ID        string `json:"id"`
	Sender    string `json:"sender"`
	Body      string `json:"body"`
	Timestamp string `json:"timestamp"`
}

// UserInfo is the authenticated principal, used only for display and gating.
type UserInfo struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

type LoginCredentials struct {
	Email      string `json:"email"`
	TenantSlug string `json:"tenant_slug"`
	Password   string `json:"password"`
}

type SignupPayload struct {
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	AdminEmail    string `json:"admin_email"`
	AdminPassword string `json:"admin_password"`
	AdminFullName string `json:"admin_full_name,omitempty"`
}

type SignupResult struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	Message string `json:"message"`
}
