package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelchat/internal/ai"
	"travelchat/internal/config"
	"travelchat/internal/locale"
	"travelchat/internal/maps"
	"travelchat/internal/modules/chat"
	"travelchat/internal/modules/mapview"
	"travelchat/internal/types"
)

func newTestREPL(input string, llm ai.Completer) (*repl, *bytes.Buffer) {
	geocoder := maps.GeocoderFunc(func(_ context.Context, place string) (types.Point, bool) {
		if place == "Kyoto, Japan" {
			return types.Point{Lat: 35.0116, Lng: 135.7681}, true
		}
		return types.Point{}, false
	})
	var out bytes.Buffer
	return &repl{
		chat: chat.NewService(chat.NewMemoryStore(0), llm, config.LLMConfig{Model: "test"}),
		maps: mapview.NewService(geocoder, 2),
		lang: locale.English,
		in:   strings.NewReader(input),
		out:  &out,
	}, &out
}

func TestREPL_TurnPrintsLocations(t *testing.T) {
	llm := ai.CompleterFunc(func(context.Context, string, []ai.Message) (string, error) {
		return "LOCATION: Kyoto, Japan\nLOCATION: Hobbiton, Middle-earth", nil
	})
	r, out := newTestREPL("temples?\n/quit\n", llm)

	require.NoError(t, r.run(context.Background()))
	assert.Contains(t, out.String(), "🤖 LOCATION: Kyoto, Japan")
	assert.Contains(t, out.String(), "  - Kyoto, Japan (35.0116, 135.7681)")
	assert.Contains(t, out.String(), "  - Hobbiton, Middle-earth\n")
}

func TestREPL_CompletionFailureIsNotFatal(t *testing.T) {
	llm := ai.CompleterFunc(func(context.Context, string, []ai.Message) (string, error) {
		return "", errors.New("quota exceeded")
	})
	r, out := newTestREPL("hello\n", llm)

	require.NoError(t, r.run(context.Background()))
	assert.Contains(t, out.String(), "API error: quota exceeded\n")
	assert.NotContains(t, out.String(), chat.ErrCompletionFailed.Error())
}

func TestREPL_SwitchLanguage(t *testing.T) {
	llm := ai.CompleterFunc(func(context.Context, string, []ai.Message) (string, error) {
		return "ok", nil
	})
	r, out := newTestREPL("/lang ko\n/lang xx\n", llm)

	require.NoError(t, r.run(context.Background()))
	assert.Equal(t, locale.Korean, r.lang)
	assert.Contains(t, out.String(), locale.Lookup(locale.Korean).Title)
	assert.Contains(t, out.String(), `unknown language "xx"`)
}

func TestREPL_Clear(t *testing.T) {
	llm := ai.CompleterFunc(func(context.Context, string, []ai.Message) (string, error) {
		return "LOCATION: Kyoto, Japan", nil
	})
	r, _ := newTestREPL("go\n/clear\n", llm)

	require.NoError(t, r.run(context.Background()))
	conv, err := r.chat.Open(context.Background(), cliSession, locale.English)
	require.NoError(t, err)
	assert.Empty(t, conv.Locations)
	assert.Len(t, conv.Visible(), 2)
}
