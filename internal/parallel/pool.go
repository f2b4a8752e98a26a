//go:generate mockgen -source=pool.go -destination=mocks/mock_pool.go -package=mocks

package parallel

import (
	"github.com/alitto/pond/v2"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/tancalc/internal/errors"
)

// Pool backend names accepted by FactoryFor.
const (
	BackendErrgroup = "errgroup"
	BackendPond     = "pond"
)

// Pool is a bounded set of workers executing submitted tasks.
type Pool interface {
	// Go submits a task. It may block while all workers are busy.
	Go(task func() error)
	// Wait blocks until every submitted task has returned and reports the
	// first non-nil task error.
	Wait() error
	// Shutdown releases the workers. It is safe to call after Wait and
	// more than once.
	Shutdown()
}

// Factory creates a Pool with the given number of workers.
type Factory func(size int) Pool

// FactoryFor resolves a backend name to its Factory.
//
// Parameters:
//   - name: BackendErrgroup, BackendPond, or "" for the default (errgroup).
//
// Returns:
//   - Factory: The pool constructor.
//   - error: A ConfigError for an unknown backend.
func FactoryFor(name string) (Factory, error) {
	switch name {
	case "", BackendErrgroup:
		return NewGroupPool, nil
	case BackendPond:
		return NewPondPool, nil
	default:
		return nil, apperrors.NewConfigError("unknown pool backend %q (want %q or %q)", name, BackendErrgroup, BackendPond)
	}
}

// groupPool runs tasks on an errgroup.Group limited to size goroutines.
type groupPool struct {
	g *errgroup.Group
}

// NewGroupPool returns a Pool backed by golang.org/x/sync/errgroup.
func NewGroupPool(size int) Pool {
	g := new(errgroup.Group)
	g.SetLimit(size)
	return &groupPool{g: g}
}

func (p *groupPool) Go(task func() error) { p.g.Go(task) }

func (p *groupPool) Wait() error { return p.g.Wait() }

// Shutdown drains any task still running; errgroup goroutines exit on their own.
func (p *groupPool) Shutdown() { _ = p.g.Wait() }

// pondPool runs tasks on a github.com/alitto/pond/v2 pool through a task group.
type pondPool struct {
	pool  pond.Pool
	group pond.TaskGroup
}

// NewPondPool returns a Pool backed by a pond worker pool of the given size.
func NewPondPool(size int) Pool {
	p := pond.NewPool(size)
	return &pondPool{pool: p, group: p.NewGroup()}
}

func (p *pondPool) Go(task func() error) { p.group.SubmitErr(task) }

func (p *pondPool) Wait() error { return p.group.Wait() }

func (p *pondPool) Shutdown() { p.pool.StopAndWait() }
