package rental

import (
	"fmt"
	"slices"
	"strings"
)

// Client is a person or organization holding leases. Clients are identified by ID.
//
// The client's lease list is kept in the order leases were added and shares its Lease values
// with the units' lease collections.
type Client struct {
	name   string
	id     string
	leases []*Lease
}

// NewClient creates a client without leases. Name and ID must not be blank.
func NewClient(name string, id string) (*Client, error) {
	name, id = strings.TrimSpace(name), strings.TrimSpace(id)

	if name == "" || id == "" {
		return nil, fmt.Errorf("%w: client needs a name and an id", ErrInvalidArgument)
	}

	return &Client{name: name, id: id, leases: make([]*Lease, 0)}, nil
}

// Name returns the client's display name.
func (c *Client) Name() string {
	return c.name
}

// ID returns the client's unique identifier.
func (c *Client) ID() string {
	return c.id
}

// Equal reports whether both clients have the same ID.
func (c *Client) Equal(other *Client) bool {
	if c == nil || other == nil {
		return c == other
	}

	return c.id == other.id
}

// AddNewLease appends a lease held by this client.
func (c *Client) AddNewLease(lease *Lease) error {
	if lease == nil || !c.Equal(lease.Client()) {
		return fmt.Errorf("%w: lease is not held by client %s", ErrInvalidArgument, c.id)
	}

	if c.indexOf(lease.ConfirmationNumber()) >= 0 {
		return fmt.Errorf("%w: client %s already holds lease %06d", ErrInvalidArgument, c.id, lease.ConfirmationNumber())
	}

	c.leases = append(c.leases, lease)

	return nil
}

// Leases returns the client's leases in the order they were added.
func (c *Client) Leases() []*Lease {
	return slices.Clone(c.leases)
}

// LeaseAt returns the lease at index without removing it.
func (c *Client) LeaseAt(index int) (*Lease, error) {
	if index < 0 || index >= len(c.leases) {
		return nil, fmt.Errorf("%w: client %s has no lease at index %d", ErrInvalidArgument, c.id, index)
	}

	return c.leases[index], nil
}

// ListLeases renders each lease as "conf | unit description | start to end | occupants".
func (c *Client) ListLeases() []string {
	out := make([]string, len(c.leases))

	for i, lease := range c.leases {
		data := lease.LeaseData()
		out[i] = data[leaseDataConfirmation] + " | " + data[leaseDataProperty] + " | " +
			data[leaseDataStart] + " to " + data[leaseDataEnd] + " | " + data[leaseDataOccupants]
	}

	return out
}

// CancelLeaseAt removes and returns the lease at index.
func (c *Client) CancelLeaseAt(index int) (*Lease, error) {
	lease, err := c.LeaseAt(index)
	if err != nil {
		return nil, err
	}

	c.leases = slices.Delete(c.leases, index, index+1)

	return lease, nil
}

// CancelLeaseWithNumber removes and returns the lease with the given confirmation number.
func (c *Client) CancelLeaseWithNumber(confirmationNumber int) (*Lease, error) {
	idx := c.indexOf(confirmationNumber)
	if idx < 0 {
		return nil, fmt.Errorf("%w: client %s holds no lease %06d", ErrInvalidArgument, c.id, confirmationNumber)
	}

	return c.CancelLeaseAt(idx)
}

func (c *Client) indexOf(confirmationNumber int) int {
	return slices.IndexFunc(c.leases, func(l *Lease) bool {
		return l.ConfirmationNumber() == confirmationNumber
	})
}
