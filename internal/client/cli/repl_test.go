package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	f.calls = append(f.calls, "register")
	return nil
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) List(ctx context.Context) error { f.calls = append(f.calls, "list"); return nil }
func (f *fakeExec) Show(ctx context.Context, arg string) error {
	f.calls = append(f.calls, "show")
	f.args = append(f.args, arg)
	return nil
}
func (f *fakeExec) Add(ctx context.Context) error { f.calls = append(f.calls, "add"); return nil }
func (f *fakeExec) Edit(ctx context.Context, arg string) error {
	f.calls = append(f.calls, "edit")
	f.args = append(f.args, arg)
	return nil
}
func (f *fakeExec) Delete(ctx context.Context, arg string) error {
	f.calls = append(f.calls, "delete")
	f.args = append(f.args, arg)
	return nil
}
func (f *fakeExec) Fav(ctx context.Context, arg string) error {
	f.calls = append(f.calls, "fav")
	f.args = append(f.args, arg)
	return nil
}
func (f *fakeExec) Unfav(ctx context.Context, arg string) error {
	f.calls = append(f.calls, "unfav")
	f.args = append(f.args, arg)
	return nil
}
func (f *fakeExec) Favorites(ctx context.Context) error {
	f.calls = append(f.calls, "favorites")
	return nil
}
func (f *fakeExec) Filters(ctx context.Context) error {
	f.calls = append(f.calls, "filters")
	return nil
}
func (f *fakeExec) Reset(ctx context.Context) error {
	f.calls = append(f.calls, "reset")
	f.loggedIn = false
	return nil
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"add",
		"list",
		"show 123",
		"fav 7",
		"favorites",
		"filters",
		"foobar",
		"logout",
		"reset",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"login", "add", "list", "show", "fav", "favorites", "filters", "logout", "reset"}
	if len(exec.calls) < len(wantOrder) {
		t.Fatalf("few calls: %+v", exec.calls)
	}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}

	wantArgs := []string{"123", "7"}
	for i, want := range wantArgs {
		if exec.args[i] != want {
			t.Fatalf("arg %d: got %q, want %q", i, exec.args[i], want)
		}
	}
}

func TestRunREPL_EOFExitsLoop(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	exec := &fakeExec{}
	sc := bufio.NewScanner(strings.NewReader(""))

	runREPL(context.Background(), exec, func() string { return "" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("no commands expected, got %v", exec.calls)
	}
}
