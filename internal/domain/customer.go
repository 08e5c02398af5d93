package domain

// Customer is the normalized account profile for a signed-in visitor.
type Customer struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

// DisplayName returns the customer's presentation name: first and last name
// when either is present, otherwise the email address.
func (c *Customer) DisplayName() string {
	var name string
	if c.FirstName != nil {
		name = *c.FirstName
	}
	if c.LastName != nil {
		if name != "" {
			name += " "
		}
		name += *c.LastName
	}
	if name == "" {
		return c.Email
	}
	return name
}
