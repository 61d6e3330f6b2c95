package rental

import (
	"fmt"
	"slices"
	"sort"
)

// LeaseCollection keeps leases ordered by start date.
// Leases with equal start dates keep their insertion order.
type LeaseCollection struct {
	leases []*Lease
}

// NewLeaseCollection creates an empty collection.
func NewLeaseCollection() *LeaseCollection {
	return &LeaseCollection{leases: make([]*Lease, 0)}
}

// Add inserts the lease at its sorted position.
// Nil leases and leases whose confirmation number is already present are rejected.
func (c *LeaseCollection) Add(lease *Lease) error {
	if lease == nil {
		return fmt.Errorf("%w: lease must not be nil", ErrInvalidArgument)
	}

	if c.IndexOf(lease.ConfirmationNumber()) >= 0 {
		return fmt.Errorf("%w: lease %06d is already in the collection", ErrInvalidArgument, lease.ConfirmationNumber())
	}

	pos := sort.Search(len(c.leases), func(i int) bool {
		return c.leases[i].Compare(lease) > 0
	})

	c.leases = slices.Insert(c.leases, pos, lease)

	return nil
}

// Get returns the lease at index.
func (c *LeaseCollection) Get(index int) (*Lease, error) {
	if err := c.checkIndex(index); err != nil {
		return nil, err
	}

	return c.leases[index], nil
}

// Remove takes the lease at index out of the collection and returns it.
func (c *LeaseCollection) Remove(index int) (*Lease, error) {
	if err := c.checkIndex(index); err != nil {
		return nil, err
	}

	removed := c.leases[index]
	c.leases = slices.Delete(c.leases, index, index+1)

	return removed, nil
}

// Truncate keeps [0,index) and returns [index,size) as a new collection.
func (c *LeaseCollection) Truncate(index int) (*LeaseCollection, error) {
	if index < 0 || index > len(c.leases) {
		return nil, fmt.Errorf("%w: truncate index %d out of range [0,%d]", ErrInvalidArgument, index, len(c.leases))
	}

	suffix := &LeaseCollection{leases: slices.Clone(c.leases[index:])}
	c.leases = slices.Clip(c.leases[:index])

	return suffix, nil
}

// IndexOf returns the position of the lease with the given confirmation number, or -1.
func (c *LeaseCollection) IndexOf(confirmationNumber int) int {
	return slices.IndexFunc(c.leases, func(l *Lease) bool {
		return l.ConfirmationNumber() == confirmationNumber
	})
}

// Size returns the number of leases.
func (c *LeaseCollection) Size() int {
	return len(c.leases)
}

// IsEmpty reports whether the collection holds no leases.
func (c *LeaseCollection) IsEmpty() bool {
	return len(c.leases) == 0
}

// All returns the leases in order. The slice is a copy; the leases are shared.
func (c *LeaseCollection) All() []*Lease {
	return slices.Clone(c.leases)
}

func (c *LeaseCollection) checkIndex(index int) error {
	if index < 0 || index >= len(c.leases) {
		return fmt.Errorf("%w: index %d out of range [0,%d)", ErrInvalidArgument, index, len(c.leases))
	}

	return nil
}
