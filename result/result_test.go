package result

import (
	"errors"
	"strconv"
	"testing"
)

var errBoom = errors.New("boom")

func TestOkAndErr(t *testing.T) {
	ok := Ok(42)
	if !ok.IsOk() {
		t.Fatalf("expected success")
	}
	if got := ok.Value(); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}

	bad := Err[int](errBoom)
	if bad.IsOk() {
		t.Fatalf("expected failure")
	}
	if !errors.Is(bad.Err(), errBoom) {
		t.Fatalf("unexpected error: %v", bad.Err())
	}
}

func TestZeroAndNilErrorAreFailures(t *testing.T) {
	var zero Result[string]
	if zero.IsOk() {
		t.Fatalf("zero Result must not be a success")
	}
	if !errors.Is(zero.Err(), ErrNilError) {
		t.Fatalf("zero Result should hold ErrNilError, got %v", zero.Err())
	}
	if r := Err[string](nil); !errors.Is(r.Err(), ErrNilError) {
		t.Fatalf("Err(nil) should hold ErrNilError, got %v", r.Err())
	}
}

func expectAccessPanic(t *testing.T, fn func()) *AccessError {
	t.Helper()
	var got *AccessError
	func() {
		defer func() {
			rec := recover()
			if rec == nil {
				t.Fatalf("expected panic")
			}
			ae, ok := rec.(*AccessError)
			if !ok {
				t.Fatalf("expected *AccessError, got %T", rec)
			}
			got = ae
		}()
		fn()
	}()
	return got
}

func TestMisuseAccessorsPanic(t *testing.T) {
	ae := expectAccessPanic(t, func() { Err[int](errBoom).Value() })
	if !errors.Is(ae, errBoom) {
		t.Fatalf("access error should unwrap to held error, got %v", ae)
	}
	expectAccessPanic(t, func() { _ = Ok(1).Err() })
}

func TestMustPanicsWithHeldError(t *testing.T) {
	defer func() {
		rec := recover()
		if err, ok := rec.(error); !ok || !errors.Is(err, errBoom) {
			t.Fatalf("expected panic with errBoom, got %v", rec)
		}
	}()
	Err[int](errBoom).Must()
}

func TestBindChainsAndShortCircuits(t *testing.T) {
	parse := func(s string) Result[int] { return From(strconv.Atoi(s)) }
	double := func(n int) Result[int] { return Ok(n * 2) }

	r := Bind(parse("21"), double)
	if r.Value() != 42 {
		t.Fatalf("expected 42, got %d", r.Value())
	}

	called := false
	failed := Bind(Err[int](errBoom), func(n int) Result[string] {
		called = true
		return Ok("never")
	})
	if called {
		t.Fatalf("bind must not call f on failure")
	}
	if !errors.Is(failed.Err(), errBoom) {
		t.Fatalf("expected forwarded error, got %v", failed.Err())
	}
}

func TestMapMatchUnpack(t *testing.T) {
	r := Map(Ok(3), strconv.Itoa)
	if v, err := r.Unpack(); err != nil || v != "3" {
		t.Fatalf("unexpected unpack: %q %v", v, err)
	}

	var branch string
	Err[int](errBoom).Match(func(int) { branch = "ok" }, func(error) { branch = "err" })
	if branch != "err" {
		t.Fatalf("expected err branch, got %q", branch)
	}
	if v := Err[int](errBoom).OrElse(7); v != 7 {
		t.Fatalf("expected fallback 7, got %d", v)
	}
}

func TestCopyKeepsActiveAlternative(t *testing.T) {
	a := Ok([]int{1, 2})
	b := a
	if !b.IsOk() || len(b.Value()) != 2 {
		t.Fatalf("copy lost value: %+v", b)
	}
	c := Err[[]int](errBoom)
	b = c
	if b.IsOk() || !errors.Is(b.Err(), errBoom) {
		t.Fatalf("assignment should switch alternative")
	}
}
