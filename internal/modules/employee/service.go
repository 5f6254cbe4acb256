package employee

import "context"

// Service defines the interface for employee management.
type Service interface {
	Hire(ctx context.Context, req HireRequest) (*Employee, error)
	Get(ctx context.Context, id int64) (*Employee, error)
	Terminate(ctx context.Context, id int64) error
	// Bootstrap hires req as a manager when nobody active can sign in.
	// It returns nil when employees already exist.
	Bootstrap(ctx context.Context, req HireRequest) (*Employee, error)
}
