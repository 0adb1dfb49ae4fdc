package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"travelchat/internal/locale"
	"travelchat/internal/modules/chat"
	"travelchat/internal/modules/mapview"
	"travelchat/internal/types"
)

const cliSession = types.ID("cli")

type repl struct {
	chat *chat.Service
	maps *mapview.Service
	lang locale.Language
	in   io.Reader
	out  io.Writer
}

// run reads one line per turn until EOF, /quit or ctx is done.
// Commands: /clear empties the locations, /lang <tag> switches language.
func (r *repl) run(ctx context.Context) error {
	if _, err := r.chat.Open(ctx, cliSession, r.lang); err != nil {
		return err
	}
	r.banner()

	scanner := bufio.NewScanner(r.in)
	for {
		texts := locale.Lookup(r.lang)
		fmt.Fprint(r.out, texts.UserInputLabel)
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "/quit" || line == "/exit":
			return nil
		case line == "/clear":
			if _, err := r.chat.ClearLocations(ctx, cliSession, r.lang); err != nil {
				return err
			}
			fmt.Fprintln(r.out, texts.EmptyMapHint)
		case strings.HasPrefix(line, "/lang"):
			r.switchLanguage(ctx, strings.TrimSpace(strings.TrimPrefix(line, "/lang")))
		default:
			if err := r.turn(ctx, line); err != nil {
				return err
			}
		}
	}
}

func (r *repl) banner() {
	texts := locale.Lookup(r.lang)
	fmt.Fprintln(r.out, texts.Title)
	fmt.Fprintln(r.out, "/clear  /lang <ko|en>  /quit")
}

func (r *repl) switchLanguage(ctx context.Context, v string) {
	lang, ok := locale.Parse(v)
	if !ok {
		fmt.Fprintf(r.out, "unknown language %q\n", v)
		return
	}
	if _, err := r.chat.Open(ctx, cliSession, lang); err != nil {
		fmt.Fprintln(r.out, err)
		return
	}
	r.lang = lang
	r.banner()
}

func (r *repl) turn(ctx context.Context, text string) error {
	texts := locale.Lookup(r.lang)
	turn, err := r.chat.Submit(ctx, cliSession, r.lang, text)
	switch {
	case errors.Is(err, chat.ErrCompletionFailed):
		fmt.Fprintf(r.out, texts.CompletionError+"\n", chat.CompletionCause(err))
		return nil
	case errors.Is(err, chat.ErrEmptyMessage), errors.Is(err, chat.ErrTurnInProgress):
		return nil
	case err != nil:
		return err
	}

	fmt.Fprintf(r.out, "🤖 %s\n", turn.Reply)
	if len(turn.NewLocations) > 0 {
		r.printLocations(ctx, turn.Conversation.Locations)
	}
	return nil
}

func (r *repl) printLocations(ctx context.Context, locations []string) {
	view := r.maps.Render(ctx, locations)
	points := make(map[string]types.Point, len(view.Markers))
	for _, m := range view.Markers {
		points[m.Label] = m.Point
	}

	fmt.Fprintln(r.out, locale.Lookup(r.lang).DestinationsTitle)
	for _, loc := range view.Locations {
		if p, ok := points[loc]; ok {
			fmt.Fprintf(r.out, "  - %s (%.4f, %.4f)\n", loc, p.Lat, p.Lng)
		} else {
			fmt.Fprintf(r.out, "  - %s\n", loc)
		}
	}
}
