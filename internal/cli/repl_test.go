package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }

func (f *fakeExec) record(name string) error {
	f.calls = append(f.calls, name)
	return nil
}

func (f *fakeExec) Login(ctx context.Context) error    { return f.record("login") }
func (f *fakeExec) Register(ctx context.Context) error { return f.record("register") }
func (f *fakeExec) Logout(ctx context.Context) error   { return f.record("logout") }
func (f *fakeExec) List(ctx context.Context, args []string) error {
	return f.record("list " + strings.Join(args, " "))
}
func (f *fakeExec) Show(ctx context.Context) error   { return f.record("show") }
func (f *fakeExec) Add(ctx context.Context) error    { return f.record("add") }
func (f *fakeExec) Edit(ctx context.Context) error   { return f.record("edit") }
func (f *fakeExec) Delete(ctx context.Context) error { return f.record("delete") }
func (f *fakeExec) Stats(ctx context.Context) error  { return f.record("stats") }

// capturePrintln redirects REPL output for the duration of a test.
func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, fmt.Sprintln(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func runScript(t *testing.T, exec *fakeExec, script string) []string {
	t.Helper()
	lines := capturePrintln(t)
	scanner := bufio.NewScanner(strings.NewReader(script))
	runREPL(context.Background(), exec, func() string { return "test" }, scanner)
	return *lines
}

func TestREPL_DispatchesLoggedInCommands(t *testing.T) {
	exec := &fakeExec{loggedIn: true}

	runScript(t, exec, "list search=usb category=cables\nshow\nadd\nedit\ndel\nstats\nlogout\nexit\n")

	require.Equal(t, []string{
		"list search=usb category=cables",
		"show", "add", "edit", "delete", "stats", "logout",
	}, exec.calls)
}

func TestREPL_DispatchesLoggedOutCommands(t *testing.T) {
	exec := &fakeExec{}

	runScript(t, exec, "login\nregister\nexit\n")

	require.Equal(t, []string{"login", "register"}, exec.calls)
}

func TestREPL_BlocksCommandsWhenLoggedOut(t *testing.T) {
	exec := &fakeExec{}

	out := runScript(t, exec, "list\ndel\nexit\n")

	assert.Empty(t, exec.calls)
	joined := strings.Join(out, "")
	assert.Contains(t, joined, "Please login first.")
}

func TestREPL_UnknownCommand(t *testing.T) {
	exec := &fakeExec{loggedIn: true}

	out := runScript(t, exec, "frobnicate\nexit\n")

	assert.Empty(t, exec.calls)
	assert.Contains(t, strings.Join(out, ""), "Unknown command: frobnicate")
}

func TestREPL_HelpReflectsLoginState(t *testing.T) {
	out := runScript(t, &fakeExec{}, "help\nexit\n")
	assert.Contains(t, strings.Join(out, ""), "login, register, exit")

	out = runScript(t, &fakeExec{loggedIn: true}, "help\nexit\n")
	assert.Contains(t, strings.Join(out, ""), "stats, logout, exit")
}

func TestREPL_ExitsOnEOF(t *testing.T) {
	exec := &fakeExec{loggedIn: true}

	runScript(t, exec, "stats\n")

	require.Equal(t, []string{"stats"}, exec.calls)
}

func TestREPL_StopsOnContextCancel(t *testing.T) {
	exec := &fakeExec{loggedIn: true}
	lines := capturePrintln(t)
	_ = lines

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	scanner := bufio.NewScanner(strings.NewReader("stats\nstats\n"))
	runREPL(ctx, exec, func() string { return "test" }, scanner)

	assert.Empty(t, exec.calls)
}

func TestREPL_SkipsBlankLines(t *testing.T) {
	exec := &fakeExec{loggedIn: true}

	runScript(t, exec, "\n   \nstats\nexit\n")

	require.Equal(t, []string{"stats"}, exec.calls)
}

func TestParseFilter(t *testing.T) {
	f := parseFilter([]string{"search=usb cable", "category=cables", "sort=price", "bogus", "junk=x"})

	assert.Equal(t, "usb cable", f.Search)
	assert.Equal(t, "cables", f.Category)
	assert.Equal(t, "price", f.Sort)
}

func TestParseFilter_Empty(t *testing.T) {
	assert.True(t, parseFilter(nil).IsZero())
}
