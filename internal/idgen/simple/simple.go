package simple

import (
	"context"
	"fmt"
)

type Generator struct {
	counter int
}

func New() *Generator {
	//nolint:exhaustruct
	return &Generator{}
}

func (g *Generator) GetID(_ context.Context) (string, error) {
	g.counter++

	return fmt.Sprintf("q-%d", g.counter), nil
}
