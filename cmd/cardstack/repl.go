package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// executor is the command surface the REPL dispatches to. The real App
// satisfies it; tests can substitute a stub.
type executor interface {
	isLoggedIn() bool
	register(ctx context.Context, w io.Writer, email, password string) error
	login(ctx context.Context, w io.Writer, email, password string) error
	logout(w io.Writer)
	listDecks(ctx context.Context, w io.Writer) error
	refresh(ctx context.Context, w io.Writer) error
	newDeck(ctx context.Context, w io.Writer, name string) error
	listCollections(ctx context.Context, w io.Writer) error
	listChats(ctx context.Context, w io.Writer) error
	newChat(ctx context.Context, w io.Writer, title string) error
	openChat(ctx context.Context, w io.Writer, chatID string) error
	say(ctx context.Context, w io.Writer, content string) error
	review(ctx context.Context, w io.Writer, deckID string, readLine func() (string, bool)) error
}

// runREPL reads commands line by line and dispatches them. Handler errors
// are reported by the handlers themselves; the loop only exits on EOF or
// an explicit exit command.
func runREPL(ctx context.Context, a executor, w io.Writer, scanner *bufio.Scanner) {
	readLine := func() (string, bool) {
		if !scanner.Scan() {
			return "", false
		}
		return scanner.Text(), true
	}

	for {
		fmt.Fprint(w, "cardstack> ")
		line, ok := readLine()
		if !ok {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, "Commands: decks, newdeck <name>, collections, refresh, chats, newchat <title>, open <id>, say <text>, review <deck-id>, logout, exit")
			} else {
				fmt.Fprintln(w, "Commands: register <email> <password>, login <email> <password>, exit")
			}

		case "register":
			if len(args) != 2 {
				fmt.Fprintln(w, "usage: register <email> <password>")
				continue
			}
			_ = a.register(ctx, w, args[0], args[1])

		case "login":
			if len(args) != 2 {
				fmt.Fprintln(w, "usage: login <email> <password>")
				continue
			}
			_ = a.login(ctx, w, args[0], args[1])

		case "logout":
			a.logout(w)

		case "decks":
			_ = a.listDecks(ctx, w)

		case "refresh":
			_ = a.refresh(ctx, w)

		case "newdeck":
			if len(args) == 0 {
				fmt.Fprintln(w, "usage: newdeck <name>")
				continue
			}
			_ = a.newDeck(ctx, w, strings.Join(args, " "))

		case "collections":
			_ = a.listCollections(ctx, w)

		case "chats":
			_ = a.listChats(ctx, w)

		case "newchat":
			_ = a.newChat(ctx, w, strings.Join(args, " "))

		case "open":
			if len(args) != 1 {
				fmt.Fprintln(w, "usage: open <chat-id>")
				continue
			}
			_ = a.openChat(ctx, w, args[0])

		case "say":
			if len(args) == 0 {
				fmt.Fprintln(w, "usage: say <message>")
				continue
			}
			_ = a.say(ctx, w, strings.Join(args, " "))

		case "review":
			if len(args) != 1 {
				fmt.Fprintln(w, "usage: review <deck-id>")
				continue
			}
			_ = a.review(ctx, w, args[0], readLine)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}
