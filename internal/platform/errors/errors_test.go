package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCode(t *testing.T) {
	cases := map[ErrorCode]int{
		ErrorCodeNotFound:         http.StatusNotFound,
		ErrorCodeInvalidArgument:  http.StatusUnprocessableEntity,
		ErrorCodeDataFormat:       http.StatusUnprocessableEntity,
		ErrorCodeInsufficientData: http.StatusUnprocessableEntity,
		ErrorCodeValidation:       http.StatusBadRequest,
		ErrorCodeJSON:             http.StatusBadRequest,
		ErrorCodeForbidden:        http.StatusForbidden,
		ErrorCodeUnavailable:      http.StatusServiceUnavailable,
		ErrorCodeArtifactNotFound: http.StatusServiceUnavailable,
		ErrorCodePayloadTooLarge:  http.StatusRequestEntityTooLarge,
		ErrorCodeNotFitted:        http.StatusInternalServerError,
		ErrorCodeArtifactCorrupt:  http.StatusInternalServerError,
		ErrorCodeUnknownClass:     http.StatusInternalServerError,
		ErrorCodeDB:               http.StatusInternalServerError,
		ErrorCodePanic:            http.StatusInternalServerError,
		ErrorCodeUnknown:          http.StatusInternalServerError,
		9999:                      http.StatusInternalServerError,
	}
	for code, want := range cases {
		if got := HTTPStatusCode(code); got != want {
			t.Errorf("HTTPStatusCode(%v) = %d, want %d", code, got, want)
		}
	}
	if got := HTTPStatus(fmt.Errorf("x: %w", DataFormatf("no label column"))); got != http.StatusUnprocessableEntity {
		t.Errorf("HTTPStatus through wrapping = %d", got)
	}
}

func TestCodeValuesStable(t *testing.T) {
	// wire clients decode these numbers
	if ErrorCodeDB != 12 || ErrorCodeDataFormat != 13 || ErrorCodeUnknownClass != 18 || ErrorCodePayloadTooLarge != 19 {
		t.Fatalf("code values moved: db=%d data_format=%d unknown_class=%d payload_too_large=%d",
			ErrorCodeDB, ErrorCodeDataFormat, ErrorCodeUnknownClass, ErrorCodePayloadTooLarge)
	}
	if ErrorCodeArtifactCorrupt.String() != "artifact_corrupt" || ErrorCode(200).String() != "unknown" {
		t.Fatalf("names: %s %s", ErrorCodeArtifactCorrupt, ErrorCode(200))
	}
}

func TestErrorMessageAndCause(t *testing.T) {
	var nilErr *Error
	if nilErr.Error() != "<nil>" {
		t.Fatalf("nil render = %q", nilErr.Error())
	}

	cause := stderrs.New("gob: unexpected EOF")
	err := Wrap(cause, ErrorCodeArtifactCorrupt, "decode artifact")
	if err.Error() != "decode artifact: gob: unexpected EOF" {
		t.Fatalf("Error() = %q", err.Error())
	}
	if !stderrs.Is(fmt.Errorf("load: %w", err), cause) {
		t.Fatal("cause not reachable")
	}

	e, ok := As(fmt.Errorf("load: %w", err))
	if !ok || e.Code() != ErrorCodeArtifactCorrupt {
		t.Fatalf("As through fmt wrapping: %v %v", e, ok)
	}
	if _, ok := As(cause); ok {
		t.Fatal("As matched a foreign error")
	}
	if got := Newf(ErrorCodeDataFormat, "missing column %q", "label").Error(); got != `missing column "label"` {
		t.Fatalf("Newf = %q", got)
	}
}

func TestWireFrom(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Wire
	}{
		{"nil", nil, Wire{}},
		{"foreign", stderrs.New("boom"), Wire{Code: ErrorCodeUnknown, Message: "boom"}},
		{"cause hidden", Wrap(stderrs.New("secret dsn"), ErrorCodeDB, "load corpus"), Wire{Code: ErrorCodeDB, Message: "load corpus"}},
		{"field", WithField(New(ErrorCodeValidation, "text is required"), "text"), Wire{Code: ErrorCodeValidation, Message: "text is required", Field: "text"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := WireFrom(c.err); got != c.want {
				t.Fatalf("got %+v, want %+v", got, c.want)
			}
		})
	}
}

func TestWithField_CopyOnWrite(t *testing.T) {
	orig := InvalidArgf("bad threshold")
	named := WithField(orig, "threshold")
	if e, _ := As(orig); e.Field() != "" {
		t.Fatal("WithField mutated the original")
	}
	if e, _ := As(named); e.Field() != "threshold" || e.Code() != ErrorCodeInvalidArgument {
		t.Fatalf("named = %+v", e)
	}
	foreign := stderrs.New("plain")
	if WithField(foreign, "x") != foreign {
		t.Fatal("foreign errors should pass through")
	}
}

func TestSugarCodes(t *testing.T) {
	cases := []struct {
		err  error
		want ErrorCode
	}{
		{InvalidArgf("x"), ErrorCodeInvalidArgument},
		{JSONErrf("x"), ErrorCodeJSON},
		{PanicErrf("x"), ErrorCodePanic},
		{Unavailablef("x"), ErrorCodeUnavailable},
		{DataFormatf("x"), ErrorCodeDataFormat},
		{InsufficientDataf("x"), ErrorCodeInsufficientData},
		{NotFittedf("x"), ErrorCodeNotFitted},
		{UnknownClassf("x"), ErrorCodeUnknownClass},
	}
	for _, c := range cases {
		if !IsCode(c.err, c.want) {
			t.Errorf("%v: code = %v, want %v", c.err, CodeOf(c.err), c.want)
		}
	}
}
