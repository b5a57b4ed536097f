package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetArgs(args)
	require.NoError(t, root.ExecuteContext(context.Background()))
	return out.String()
}

func TestCatalogListDetached(t *testing.T) {
	out := run(t, "--detached", "catalog", "list", "--category", "jeans")

	assert.Contains(t, out, "Jeans Reciclado Premium")
	assert.Contains(t, out, "PRICE/m²")
	assert.NotContains(t, out, "Tule de Fantasia")
}

func TestCartAddPrintsPricedCart(t *testing.T) {
	out := run(t, "--profile", "cli-test", "cart", "add", "1", "2", "--unit", "kg")

	assert.Contains(t, out, "Algodao Industrial Misto")
	assert.Contains(t, out, "37.80 BRL")
	assert.Contains(t, out, "1 item(s)")
}

func TestUnitSetRejectsUnknownUnit(t *testing.T) {
	root := newRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"--profile", "cli-test", "unit", "set", "yd"})

	assert.Error(t, root.ExecuteContext(context.Background()))
}
