package options_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wandb/wandb/timeline/internal/options"
)

type target struct {
	name  string
	count int
}

func TestApply_RunsInOrderAndSkipsNil(t *testing.T) {
	v := &target{}

	options.Apply(v,
		func(t *target) { t.name = "first" },
		nil,
		func(t *target) { t.name += "-second"; t.count++ },
	)

	assert.Equal(t, "first-second", v.name)
	assert.Equal(t, 1, v.count)
}
