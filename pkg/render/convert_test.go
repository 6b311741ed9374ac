package render

import (
	"context"
	"testing"

	"github.com/matzehuels/modgraph/pkg/errors"
)

func TestConvertMissingBinary(t *testing.T) {
	old := rsvg
	rsvg = "modgraph-no-such-converter"
	t.Cleanup(func() { rsvg = old })

	_, err := ToPDF(context.Background(), []byte("<svg/>"))
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Fatalf("err = %v, want UNSUPPORTED", err)
	}
}

func TestToPNGRejectsScale(t *testing.T) {
	for _, zoom := range []float64{0, -1} {
		if _, err := ToPNG(context.Background(), []byte("<svg/>"), zoom); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("ToPNG(zoom=%g) err = %v, want INVALID_INPUT", zoom, err)
		}
	}
}
