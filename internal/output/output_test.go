package output

import (
	"bytes"
	"context"
	"os"
	"testing"
)

func TestFromContext(t *testing.T) {
	t.Parallel()

	t.Run("attached printer", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		ctx := WithPrinter(context.Background(), &buf)
		FromContext(ctx).Println("## main *:0")
		if got := buf.String(); got != "## main *:0\n" {
			t.Errorf("output = %q, want %q", got, "## main *:0\n")
		}
	})

	t.Run("defaults to stdout", func(t *testing.T) {
		t.Parallel()
		if w := FromContext(context.Background()).Writer(); w != os.Stdout {
			t.Errorf("Writer() = %v, want os.Stdout", w)
		}
	})
}
