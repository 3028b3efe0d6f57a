package logger

import "testing"

func TestNewByEnv(t *testing.T) {
	for _, env := range []string{"production", "development", ""} {
		l, err := New(env)
		if err != nil {
			t.Fatalf("New(%q): %v", env, err)
		}
		if l.Core().Enabled(-1) != (env != "production") {
			t.Fatalf("unexpected debug level for env %q", env)
		}
	}
}
