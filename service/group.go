package service

import (
	"errors"
	"fmt"
	"log"
)

var (
	ErrDuplicate      = errors.New("service: duplicate name")
	ErrMissingDep     = errors.New("service: missing dependency")
	ErrDependencyLoop = errors.New("service: dependency cycle")
)

// Group initializes and starts services in dependency order, stopping in reverse
type Group struct {
	byName  map[string]Service
	args    map[string][]any
	order   []string
	started []Service
}

func NewGroup() *Group {
	return &Group{
		byName: make(map[string]Service),
		args:   make(map[string][]any),
	}
}

// Add registers a service with the args passed to its Init
func (g *Group) Add(s Service, args ...any) error {
	name := s.Name()
	if _, ok := g.byName[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, name)
	}
	g.byName[name] = s
	g.args[name] = args
	g.order = append(g.order, name)
	return nil
}

// Get returns a registered service by name
func (g *Group) Get(name string) (Service, bool) {
	s, ok := g.byName[name]
	return s, ok
}

// Order resolves Init order: dependencies first, registration order otherwise
func (g *Group) Order() ([]string, error) {
	const (
		unvisited = iota
		visiting
		visited
	)
	mark := make(map[string]int, len(g.order))
	result := make([]string, 0, len(g.order))

	var visit func(name string) error
	visit = func(name string) error {
		switch mark[name] {
		case visiting:
			return fmt.Errorf("%w at %s", ErrDependencyLoop, name)
		case visited:
			return nil
		}
		mark[name] = visiting
		for _, dep := range g.byName[name].Dependencies() {
			if _, ok := g.byName[dep]; !ok {
				return fmt.Errorf("%w: %s needs %s", ErrMissingDep, name, dep)
			}
			if err := visit(dep); err != nil {
				return err
			}
		}
		mark[name] = visited
		result = append(result, name)
		return nil
	}

	for _, name := range g.order {
		if err := visit(name); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Start runs Init on every service, then Start, both in dependency order
// On failure, already started services are stopped
func (g *Group) Start() error {
	order, err := g.Order()
	if err != nil {
		return err
	}

	for _, name := range order {
		if err := g.byName[name].Init(g.args[name]...); err != nil {
			return fmt.Errorf("service %s init: %w", name, err)
		}
	}

	for _, name := range order {
		s := g.byName[name]
		if err := s.Start(); err != nil {
			g.Stop()
			return fmt.Errorf("service %s start: %w", name, err)
		}
		g.started = append(g.started, s)
	}
	return nil
}

// Stop halts started services in reverse order; safe to call repeatedly
func (g *Group) Stop() {
	for i := len(g.started) - 1; i >= 0; i-- {
		s := g.started[i]
		if err := s.Stop(); err != nil {
			log.Printf("service %s stop: %v", s.Name(), err)
		}
	}
	g.started = nil
}
