package taffy_test

import (
	"context"
	"testing"
	"time"

	taffy "github.com/taffy-go/taffy"
)

func TestDateTime_LoadRFC3339(t *testing.T) {
	ctx := context.Background()
	typ := taffy.DateTime()

	v, err := typ.Load(ctx, "2024-02-01T10:30:00Z")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	tv, ok := v.(time.Time)
	if !ok || !tv.Equal(time.Date(2024, 2, 1, 10, 30, 0, 0, time.UTC)) {
		t.Fatalf("unexpected value: %v (%T)", v, v)
	}
}

func TestDateTime_NamedAndCustomFormats(t *testing.T) {
	ctx := context.Background()

	named := taffy.DateTime(taffy.Format("rfc822"))
	if _, err := named.Load(ctx, "01 Feb 24 10:30 UTC"); err != nil {
		t.Fatalf("rfc822 load: %v", err)
	}

	custom := taffy.DateTime(taffy.Format("2006/01/02 15:04"))
	v, err := custom.Load(ctx, "2024/02/01 10:30")
	if err != nil {
		t.Fatalf("custom load: %v", err)
	}
	out, err := custom.Dump(ctx, v)
	if err != nil || out != "2024/02/01 10:30" {
		t.Fatalf("custom dump: got %v err=%v", out, err)
	}
}

func TestDateTime_InvalidTypeVsInvalidFormat(t *testing.T) {
	ctx := context.Background()
	typ := taffy.DateTime()

	// non-string load: invalid_type
	_, err := typ.Load(ctx, 123)
	wantMessages(t, err, taffy.Message("Value should be string"))

	// unparseable string: invalid_format, template-expanded
	_, err = typ.Load(ctx, "not a date")
	wantMessages(t, err, taffy.Message("Value not a date does not match format "+time.RFC3339))

	// non-time dump: invalid (a different key than the load-time check)
	_, err = typ.Dump(ctx, "2024-02-01T10:30:00Z")
	wantMessages(t, err, taffy.Message("Value should be a time value"))
}

func TestDateTime_CustomErrorMessages(t *testing.T) {
	ctx := context.Background()
	typ := taffy.DateTime(taffy.ErrorMessages(map[string]string{
		taffy.CodeInvalidFormat: "bad timestamp: {data}",
	}))
	_, err := typ.Load(ctx, "nope")
	wantMessages(t, err, taffy.Message("bad timestamp: nope"))
}

func TestDateTime_RoundTrip(t *testing.T) {
	ctx := context.Background()
	typ := taffy.DateTime()

	in := "2024-02-01T10:30:00Z"
	v, err := typ.Load(ctx, in)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	out, err := typ.Dump(ctx, v)
	if err != nil || out != in {
		t.Fatalf("round trip: got %v err=%v", out, err)
	}
}

func TestDate_LoadDump(t *testing.T) {
	ctx := context.Background()
	typ := taffy.Date()

	v, err := typ.Load(ctx, "2024-02-01")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	out, err := typ.Dump(ctx, v)
	if err != nil || out != "2024-02-01" {
		t.Fatalf("dump: got %v err=%v", out, err)
	}
	if _, err = typ.Load(ctx, "02/01/2024"); err == nil {
		t.Fatalf("expected invalid_format for wrong layout")
	}
}

func TestTime_LoadDump(t *testing.T) {
	ctx := context.Background()
	typ := taffy.Time()

	v, err := typ.Load(ctx, "10:30:00")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	out, err := typ.Dump(ctx, v)
	if err != nil || out != "10:30:00" {
		t.Fatalf("dump: got %v err=%v", out, err)
	}
}

func TestDateTime_ValidatorSeesParsedTime(t *testing.T) {
	sv := &spyValidator{}
	typ := taffy.DateTime(taffy.Validate(sv))
	if _, err := typ.Load(context.Background(), "2024-02-01T10:30:00Z"); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := sv.validated.(time.Time); !ok {
		t.Fatalf("validator saw %T, want time.Time", sv.validated)
	}
}
