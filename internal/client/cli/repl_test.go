package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	failWith error

	calls []string
}

func (f *fakeExec) record(name string, args ...string) error {
	if len(args) > 0 {
		name += " " + strings.Join(args, " ")
	}
	f.calls = append(f.calls, name)
	return f.failWith
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context, args []string) error {
	f.loggedIn = true
	return f.record("login", args...)
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) WhoAmI(ctx context.Context) error  { return f.record("whoami") }
func (f *fakeExec) Profile(ctx context.Context) error { return f.record("profile") }
func (f *fakeExec) Favorite(ctx context.Context, args []string) error {
	return f.record("fav", args...)
}
func (f *fakeExec) Favorites(ctx context.Context) error { return f.record("favs") }
func (f *fakeExec) Rate(ctx context.Context, args []string) error {
	return f.record("rate", args...)
}
func (f *fakeExec) Prefs(ctx context.Context) error      { return f.record("prefs") }
func (f *fakeExec) ToggleDark(ctx context.Context) error { return f.record("dark") }
func (f *fakeExec) Status(ctx context.Context, args []string) error {
	return f.record("status", args...)
}

// capturePrintln swaps printlnFn for a recorder.
func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	capturePrintln(t)

	input := strings.Join([]string{
		"help",
		"login chef",
		"whoami",
		"",
		"profile",
		"fav 42",
		"favs",
		"rate 7 4",
		"prefs",
		"dark",
		"status -v",
		"logout",
		"exit",
		"favs",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "guest" }, rdr(input))

	assert.Equal(t, []string{
		"login chef", "whoami", "profile", "fav 42", "favs",
		"rate 7 4", "prefs", "dark", "status -v", "logout",
	}, exec.calls)
}

func TestRunREPL_GatesSessionCommands(t *testing.T) {
	lines := capturePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "guest" }, rdr("whoami\nprofile\nlogout\nfav 1\n"))

	assert.Equal(t, []string{"fav 1"}, exec.calls)
	assert.Contains(t, *lines, loginHint)
}

func TestRunREPL_ReportsErrorsAndUnknownCommands(t *testing.T) {
	lines := capturePrintln(t)

	exec := &fakeExec{failWith: errors.New("disk full")}
	runREPL(context.Background(), exec, func() string { return "s" }, rdr("dark\nfoobar\nquit\n"))

	assert.Contains(t, *lines, "Error: disk full")
	assert.Contains(t, *lines, "Unknown command: foobar")
	assert.Equal(t, "Bye!", (*lines)[len(*lines)-1])
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	capturePrintln(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "s" }, rdr("favs\n"))
	assert.Empty(t, exec.calls)
}

func TestRunREPL_PromptShowsStatus(t *testing.T) {
	lines := capturePrintln(t)

	runREPL(context.Background(), &fakeExec{}, func() string { return "chef dark" }, rdr(""))
	assert.Equal(t, []string{"rb (chef dark)> "}, *lines)
}
