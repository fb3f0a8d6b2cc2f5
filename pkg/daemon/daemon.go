package daemon

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/manifold/trayicon/pkg/logging"
)

// Initializer is initialized before services are started. Returning
// an error will cancel the start of daemon services.
type Initializer interface {
	InitializeDaemon() error
}

// Terminator is terminated when the daemon gets a stop signal.
type Terminator interface {
	TerminateDaemon() error
}

// Service is run after the daemon is initialized.
type Service interface {
	Serve(ctx context.Context)
}

const (
	stateIdle int32 = iota
	stateStarting
	stateRunning
	stateStopped
)

// Daemon is a top-level daemon lifecycle manager runs services given to it.
type Daemon struct {
	Initializers []Initializer
	Services     []Service
	Terminators  []Terminator
	Logger       logging.DebugLogger
	Context      context.Context
	state        int32
	cancel       context.CancelFunc
	errs         chan []error
}

// New builds a daemon from a set of components. Each component is added
// to every lifecycle stage it implements, keeping the order given.
func New(components ...interface{}) *Daemon {
	d := &Daemon{}
	for _, c := range components {
		if i, ok := c.(Initializer); ok {
			d.Initializers = append(d.Initializers, i)
		}
		if s, ok := c.(Service); ok {
			d.Services = append(d.Services, s)
		}
		if t, ok := c.(Terminator); ok {
			d.Terminators = append(d.Terminators, t)
		}
	}
	return d
}

// Run creates a daemon from components and runs it with a background context
func Run(components ...interface{}) error {
	d := New(components...)
	return d.Run(context.Background())
}

// Run executes the daemon lifecycle
func (d *Daemon) Run(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&d.state, stateIdle, stateStarting) {
		return errors.New("already running")
	}

	// call initializers
	for _, i := range d.Initializers {
		if err := i.InitializeDaemon(); err != nil {
			atomic.StoreInt32(&d.state, stateIdle)
			return err
		}
	}

	// finish if no services
	if len(d.Services) == 0 {
		atomic.StoreInt32(&d.state, stateIdle)
		return errors.New("no services to run")
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancelFunc := context.WithCancel(ctx)
	d.Context = ctx
	d.cancel = cancelFunc
	// buffered so a service may terminate the daemon from inside Serve
	d.errs = make(chan []error, 1)

	if !atomic.CompareAndSwapInt32(&d.state, stateStarting, stateRunning) {
		// terminated while initializing
		cancelFunc()
		return firstError(d.terminate())
	}

	// setup terminators on stop signals
	go TerminateOnSignal(d)
	go TerminateOnContextDone(d)

	var wg sync.WaitGroup
	for _, service := range d.Services {
		wg.Add(1)
		go func(s Service) {
			s.Serve(d.Context)
			wg.Done()
		}(service)
	}
	wg.Wait()
	d.Terminate()
	return firstError(<-d.errs)
}

// Terminate cancels the daemon context and calls Terminators in reverse
// order. Called while Run is still initializing, it makes Run stop as soon
// as initialization is done.
func (d *Daemon) Terminate() {
	if d == nil {
		return
	}

	if atomic.CompareAndSwapInt32(&d.state, stateStarting, stateStopped) {
		return
	}
	if !atomic.CompareAndSwapInt32(&d.state, stateRunning, stateStopped) {
		return
	}
	d.cancel()
	d.errs <- d.terminate()
}

func (d *Daemon) terminate() []error {
	logging.Debug(d.Logger, "daemon terminating")
	var errs []error
	for i := len(d.Terminators) - 1; i >= 0; i-- {
		if err := d.Terminators[i].TerminateDaemon(); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func firstError(errs []error) error {
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// TerminateOnSignal waits for SIGINT or SIGHUP to terminate the daemon.
func TerminateOnSignal(d *Daemon) {
	termSigs := make(chan os.Signal, 1)
	signal.Notify(termSigs, os.Interrupt, syscall.SIGHUP)
	defer signal.Stop(termSigs)
	select {
	case <-termSigs:
		d.Terminate()
	case <-d.Context.Done():
	}
}

// TerminateOnContextDone waits for the deamon's context to be canceled.
func TerminateOnContextDone(d *Daemon) {
	<-d.Context.Done()
	d.Terminate()
}
