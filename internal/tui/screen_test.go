package tui

import (
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/google/go-cmp/cmp"
)

// fakeScreen records lifecycle calls into a shared log.
type fakeScreen struct {
	name string
	log  *[]string

	lastResult Bundle
}

func (f *fakeScreen) record(event string) {
	*f.log = append(*f.log, f.name+":"+event)
}

func (f *fakeScreen) OnCreate() error { f.record("create"); return nil }

func (f *fakeScreen) OnResume(result Bundle) error {
	f.lastResult = result
	f.record(fmt.Sprintf("resume(%v)", result))
	return nil
}

func (f *fakeScreen) OnPause()              { f.record("pause") }
func (f *fakeScreen) OnDestroy()            { f.record("destroy") }
func (f *fakeScreen) OnKey(tea.KeyMsg) error { return nil }
func (f *fakeScreen) Editing() bool          { return false }
func (f *fakeScreen) SetSize(int, int)       {}
func (f *fakeScreen) Draw() string           { return f.name }

func TestStackPushLifecycle(t *testing.T) {
	var log []string
	st := NewStack()
	a := &fakeScreen{name: "a", log: &log}
	b := &fakeScreen{name: "b", log: &log}

	if err := st.Push(a); err != nil {
		t.Fatal(err)
	}
	if err := st.Push(b); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"a:create", "a:resume(<nil>)",
		"a:pause",
		"b:create", "b:resume(<nil>)",
	}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("lifecycle order (-want +got):\n%s", diff)
	}
	if st.Top() != b {
		t.Error("Top() is not the pushed screen")
	}
	if st.Len() != 2 {
		t.Errorf("Len() = %d, want 2", st.Len())
	}
}

func TestStackFinishDeliversBundle(t *testing.T) {
	var log []string
	st := NewStack()
	a := &fakeScreen{name: "a", log: &log}
	b := &fakeScreen{name: "b", log: &log}
	if err := st.Push(a); err != nil {
		t.Fatal(err)
	}
	if err := st.Push(b); err != nil {
		t.Fatal(err)
	}
	log = nil

	if err := st.Finish(b, MailboxSelected{Path: "/mail/INBOX"}); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	want := []string{
		"b:pause", "b:destroy",
		"a:resume({/mail/INBOX})",
	}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("lifecycle order (-want +got):\n%s", diff)
	}
	if got, ok := a.lastResult.(MailboxSelected); !ok || got.Path != "/mail/INBOX" {
		t.Errorf("delivered bundle = %#v", a.lastResult)
	}
	if st.Top() != a {
		t.Error("Top() did not fall back to the screen below")
	}
}

func TestStackFinishNonTop(t *testing.T) {
	var log []string
	st := NewStack()
	a := &fakeScreen{name: "a", log: &log}
	b := &fakeScreen{name: "b", log: &log}
	if err := st.Push(a); err != nil {
		t.Fatal(err)
	}
	if err := st.Push(b); err != nil {
		t.Fatal(err)
	}

	if err := st.Finish(a, nil); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("Finish(non-top) error = %v, want ErrInvalidTarget", err)
	}
	if st.Len() != 2 {
		t.Errorf("Len() = %d after rejected finish, want 2", st.Len())
	}
}

func TestStackExhausted(t *testing.T) {
	var log []string
	st := NewStack()
	a := &fakeScreen{name: "a", log: &log}
	if err := st.Push(a); err != nil {
		t.Fatal(err)
	}

	if err := st.Finish(a, nil); !errors.Is(err, ErrStackExhausted) {
		t.Errorf("Finish(last) error = %v, want ErrStackExhausted", err)
	}
	if st.Len() != 0 {
		t.Errorf("Len() = %d, want 0", st.Len())
	}
	if st.Top() != nil {
		t.Error("Top() != nil on empty stack")
	}
}

func TestStackClose(t *testing.T) {
	var log []string
	st := NewStack()
	a := &fakeScreen{name: "a", log: &log}
	b := &fakeScreen{name: "b", log: &log}
	if err := st.Push(a); err != nil {
		t.Fatal(err)
	}
	if err := st.Push(b); err != nil {
		t.Fatal(err)
	}
	log = nil

	st.Close()

	want := []string{
		"b:pause", "b:destroy",
		"a:destroy",
	}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("close order (-want +got):\n%s", diff)
	}
	if st.Len() != 0 {
		t.Errorf("Len() = %d after Close, want 0", st.Len())
	}
}
