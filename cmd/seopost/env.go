package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	seopost "github.com/alnah/go-seopost"
)

// Converter is the conversion service used by the commands.
type Converter interface {
	Convert(ctx context.Context, input seopost.Input) (*seopost.Result, error)
}

var _ Converter = (*seopost.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() (Converter, error)
	Release(Converter)
	Size() int
	Close() error
}

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now     func() time.Time
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	NewPool func(size int, opts ...seopost.Option) Pool
	Listen  func(network, addr string) (net.Listener, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		NewPool: func(size int, opts ...seopost.Option) Pool {
			return &poolAdapter{pool: seopost.NewConverterPool(size, opts...)}
		},
		Listen: net.Listen,
	}
}

// poolAdapter exposes a *seopost.ConverterPool as a Pool.
type poolAdapter struct {
	pool *seopost.ConverterPool
}

func (a *poolAdapter) Acquire() (Converter, error) {
	c, err := a.pool.Acquire()
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Release panics on a converter the adapter did not hand out.
func (a *poolAdapter) Release(c Converter) {
	conv, ok := c.(*seopost.Converter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", c))
	}
	a.pool.Release(conv)
}

func (a *poolAdapter) Size() int {
	return a.pool.Size()
}

func (a *poolAdapter) Close() error {
	return a.pool.Close()
}
