package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cardstack/cardstack-api/internal/client/state"
	"github.com/cardstack/cardstack-api/internal/client/transport"
)

// App holds the transport client and the optimistic stores for one
// session.
type App struct {
	client *transport.Client
	stores *state.Container
	email  string
}

func newApp(serverURL string) *App {
	client := transport.New(serverURL)
	return &App{
		client: client,
		stores: state.NewContainer(client),
	}
}

func (a *App) isLoggedIn() bool {
	return a.email != ""
}

func (a *App) register(ctx context.Context, w io.Writer, email, password string) error {
	result, err := a.client.Register(ctx, email, password)
	if err != nil {
		fmt.Fprintln(w, "registration failed:", err)
		return err
	}
	a.email = result.Email
	fmt.Fprintln(w, "registered as", result.Email)
	return nil
}

func (a *App) login(ctx context.Context, w io.Writer, email, password string) error {
	result, err := a.client.Login(ctx, email, password)
	if err != nil {
		fmt.Fprintln(w, "login failed:", err)
		return err
	}
	a.email = result.Email
	if err := a.stores.Entities.EnsureLoaded(ctx); err != nil {
		fmt.Fprintln(w, "warning: could not load decks:", err)
	}
	fmt.Fprintln(w, "logged in as", result.Email)
	return nil
}

func (a *App) logout(w io.Writer) {
	a.email = ""
	a.client.SetToken("")
	a.stores.Reset()
	fmt.Fprintln(w, "logged out")
}

func (a *App) listDecks(ctx context.Context, w io.Writer) error {
	if err := a.stores.Entities.EnsureLoaded(ctx); err != nil {
		return err
	}
	decks := a.stores.Entities.Decks()
	if len(decks) == 0 {
		fmt.Fprintln(w, "no decks yet")
		return nil
	}
	for _, d := range decks {
		fmt.Fprintf(w, "%s  %s (%d cards)\n", d.ID, d.Name, d.CardCount)
	}
	return nil
}

func (a *App) newDeck(ctx context.Context, w io.Writer, name string) error {
	deck := a.stores.Entities.AddDeck(ctx, name, "")
	if deck == nil {
		fmt.Fprintln(w, "deck creation failed")
		return fmt.Errorf("deck creation failed")
	}
	fmt.Fprintf(w, "created deck %s (%s)\n", deck.Name, deck.ID)
	return nil
}

func (a *App) refresh(ctx context.Context, w io.Writer) error {
	if err := a.stores.Entities.Refresh(ctx); err != nil {
		fmt.Fprintln(w, "refresh failed:", err)
		return err
	}
	fmt.Fprintln(w, "refreshed")
	return nil
}

func (a *App) listCollections(ctx context.Context, w io.Writer) error {
	if err := a.stores.Entities.EnsureLoaded(ctx); err != nil {
		return err
	}
	collections := a.stores.Entities.Collections()
	if len(collections) == 0 {
		fmt.Fprintln(w, "no collections yet")
		return nil
	}
	for _, c := range collections {
		fmt.Fprintf(w, "%s  %s (%d decks)\n", c.ID, c.Name, c.DeckCount)
	}
	return nil
}

func (a *App) listChats(ctx context.Context, w io.Writer) error {
	if err := a.stores.Chats.LoadChats(ctx); err != nil {
		return err
	}
	chats := a.stores.Chats.Chats()
	if len(chats) == 0 {
		fmt.Fprintln(w, "no chats yet")
		return nil
	}
	for _, c := range chats {
		fmt.Fprintf(w, "%s  %s\n", c.ID, c.Title)
	}
	return nil
}

func (a *App) newChat(ctx context.Context, w io.Writer, title string) error {
	chat, err := a.client.CreateChat(ctx, title)
	if err != nil {
		fmt.Fprintln(w, "chat creation failed:", err)
		return err
	}
	if err := a.stores.Chats.OpenChat(ctx, chat.ID); err != nil {
		return err
	}
	fmt.Fprintf(w, "opened chat %s (%s)\n", chat.Title, chat.ID)
	return nil
}

func (a *App) openChat(ctx context.Context, w io.Writer, chatID string) error {
	if err := a.stores.Chats.OpenChat(ctx, chatID); err != nil {
		fmt.Fprintln(w, "could not open chat:", err)
		return err
	}
	chat := a.stores.Chats.ActiveChat()
	fmt.Fprintf(w, "chat %s, %d messages\n", chat.Title, len(chat.Messages))
	for _, m := range chat.Messages {
		fmt.Fprintf(w, "[%s] %s\n", m.Role, m.Content)
	}
	return nil
}

func (a *App) say(ctx context.Context, w io.Writer, content string) error {
	chat := a.stores.Chats.ActiveChat()
	if chat == nil {
		fmt.Fprintln(w, "no chat open; use 'open <id>' or 'newchat <title>' first")
		return fmt.Errorf("no active chat")
	}
	if !a.stores.Chats.SendMessage(ctx, chat.ID, content) {
		fmt.Fprintln(w, "message failed")
		return fmt.Errorf("message failed")
	}
	updated := a.stores.Chats.ActiveChat()
	if n := len(updated.Messages); n > 0 {
		fmt.Fprintln(w, updated.Messages[n-1].Content)
	}
	return nil
}

func (a *App) review(ctx context.Context, w io.Writer, deckID string, readLine func() (string, bool)) error {
	cards, err := a.client.ReviewQueue(ctx, deckID)
	if err != nil {
		fmt.Fprintln(w, "could not fetch review queue:", err)
		return err
	}
	if len(cards) == 0 {
		fmt.Fprintln(w, "deck has no cards")
		return nil
	}

	fmt.Fprintf(w, "%d cards to review; answer with again/hard/good/easy, or stop\n", len(cards))
	for _, card := range cards {
		fmt.Fprintln(w, "Q:", card.Front)
		fmt.Fprint(w, "press enter to flip > ")
		if _, ok := readLine(); !ok {
			return nil
		}
		fmt.Fprintln(w, "A:", card.Back)

		fmt.Fprint(w, "outcome > ")
		outcome, ok := readLine()
		if !ok || outcome == "stop" {
			return nil
		}
		outcome = strings.TrimSpace(outcome)
		stats, err := a.client.SubmitReview(ctx, card.ID, outcome)
		if err != nil {
			fmt.Fprintln(w, "review failed:", err)
			continue
		}
		fmt.Fprintf(w, "next review in %d day(s)\n", stats.Interval)
	}
	return nil
}
