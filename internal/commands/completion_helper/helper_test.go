package completion_helper

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/urfave/cli/v3"
)

func TestDefaultFlagComplete(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cli.Command{
		Name:   "generate",
		Writer: &buf,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}},
			&cli.BoolFlag{Name: "stdout"},
		},
	}

	DefaultFlagComplete(context.Background(), cmd)

	assert.Equal(t, "--output\n-o\n--stdout\n", buf.String())
}
