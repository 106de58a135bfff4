package archiver

import (
	"context"
	"errors"
	"testing"

	"github.com/BayAreaMetro/tm2kit/internal/domain"
)

func TestAddDirBuildsInvocation(t *testing.T) {
	var gotName string
	var gotArgs []string

	s := New(
		WithExecutable("/opt/bin/7za"),
		WithRunner(func(_ context.Context, name string, args ...string) ([]byte, error) {
			gotName = name
			gotArgs = args
			return []byte("Everything is Ok"), nil
		}),
	)

	if err := s.AddDir(context.Background(), "/archives/run.7z", "/runs/2023/ctramp_output"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotName != "/opt/bin/7za" {
		t.Fatalf("unexpected executable %q", gotName)
	}

	want := []string{"a", "-t7z", "-mx=5", "-y", "/archives/run.7z", "/runs/2023/ctramp_output"}
	if len(gotArgs) != len(want) {
		t.Fatalf("unexpected args %v", gotArgs)
	}
	for i, a := range want {
		if gotArgs[i] != a {
			t.Fatalf("unexpected args %v", gotArgs)
		}
	}
}

func TestAddDirNonZeroExit(t *testing.T) {
	s := New(WithRunner(func(_ context.Context, _ string, _ ...string) ([]byte, error) {
		return []byte("ERROR: disk full"), errors.New("exit status 2")
	}))

	err := s.AddDir(context.Background(), "run.7z", "ctramp_output")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.KindExecution) {
		t.Fatalf("expected execution error, got %v", err)
	}
}
