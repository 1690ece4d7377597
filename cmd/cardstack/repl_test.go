package main

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
	lastArg  string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }

func (f *fakeExec) register(ctx context.Context, w io.Writer, email, password string) error {
	f.calls = append(f.calls, "register")
	f.lastArg = email
	return nil
}

func (f *fakeExec) login(ctx context.Context, w io.Writer, email, password string) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}

func (f *fakeExec) logout(w io.Writer) {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
}

func (f *fakeExec) listDecks(ctx context.Context, w io.Writer) error {
	f.calls = append(f.calls, "decks")
	return nil
}

func (f *fakeExec) refresh(ctx context.Context, w io.Writer) error {
	f.calls = append(f.calls, "refresh")
	return nil
}

func (f *fakeExec) newDeck(ctx context.Context, w io.Writer, name string) error {
	f.calls = append(f.calls, "newdeck")
	f.lastArg = name
	return nil
}

func (f *fakeExec) listCollections(ctx context.Context, w io.Writer) error {
	f.calls = append(f.calls, "collections")
	return nil
}

func (f *fakeExec) listChats(ctx context.Context, w io.Writer) error {
	f.calls = append(f.calls, "chats")
	return nil
}

func (f *fakeExec) newChat(ctx context.Context, w io.Writer, title string) error {
	f.calls = append(f.calls, "newchat")
	f.lastArg = title
	return nil
}

func (f *fakeExec) openChat(ctx context.Context, w io.Writer, chatID string) error {
	f.calls = append(f.calls, "open")
	f.lastArg = chatID
	return nil
}

func (f *fakeExec) say(ctx context.Context, w io.Writer, content string) error {
	f.calls = append(f.calls, "say")
	f.lastArg = content
	return nil
}

func (f *fakeExec) review(ctx context.Context, w io.Writer, deckID string, readLine func() (string, bool)) error {
	f.calls = append(f.calls, "review")
	f.lastArg = deckID
	return nil
}

func runScript(t *testing.T, f *fakeExec, script string) string {
	t.Helper()
	var out bytes.Buffer
	scanner := bufio.NewScanner(strings.NewReader(script))
	runREPL(context.Background(), f, &out, scanner)
	return out.String()
}

func TestREPLDispatchesCommands(t *testing.T) {
	f := &fakeExec{}
	runScript(t, f, "login a@b.c secret\ndecks\nnewdeck My Spanish Deck\nrefresh\nexit\n")

	assert.Equal(t, []string{"login", "decks", "newdeck", "refresh"}, f.calls)
	assert.Equal(t, "My Spanish Deck", f.lastArg)
}

func TestREPLJoinsMessageWords(t *testing.T) {
	f := &fakeExec{loggedIn: true}
	runScript(t, f, "say make me a deck about rivers\n")

	assert.Equal(t, []string{"say"}, f.calls)
	assert.Equal(t, "make me a deck about rivers", f.lastArg)
}

func TestREPLRejectsMalformedCommands(t *testing.T) {
	f := &fakeExec{}
	out := runScript(t, f, "login onlyemail\nopen\nreview\n")

	assert.Empty(t, f.calls)
	assert.Contains(t, out, "usage: login <email> <password>")
	assert.Contains(t, out, "usage: open <chat-id>")
	assert.Contains(t, out, "usage: review <deck-id>")
}

func TestREPLUnknownCommand(t *testing.T) {
	f := &fakeExec{}
	out := runScript(t, f, "frobnicate\n")

	assert.Contains(t, out, "Unknown command: frobnicate")
}

func TestREPLHelpDependsOnLoginState(t *testing.T) {
	loggedOut := runScript(t, &fakeExec{}, "help\n")
	assert.Contains(t, loggedOut, "register <email> <password>")

	loggedIn := runScript(t, &fakeExec{loggedIn: true}, "help\n")
	assert.Contains(t, loggedIn, "newdeck <name>")
}

func TestREPLExitsOnEOF(t *testing.T) {
	f := &fakeExec{}
	out := runScript(t, f, "decks")

	assert.Equal(t, []string{"decks"}, f.calls)
	assert.NotContains(t, out, "Bye!")
}
