package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/recipebox/internal/client/config"
	"github.com/dmitrijs2005/recipebox/internal/client/storage"
	"github.com/dmitrijs2005/recipebox/internal/common"
	"github.com/dmitrijs2005/recipebox/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, input string) (*App, *bytes.Buffer) {
	t.Helper()
	stubTerminal(t, false, nil, nil)

	ctx := context.Background()
	db, err := storage.Open(ctx, ":memory:", logging.Nop())
	require.NoError(t, err)

	out := &bytes.Buffer{}
	app, err := newApp(ctx, &config.Config{DatabaseDSN: ":memory:"}, db, logging.Nop(), strings.NewReader(input), out)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app, out
}

func TestApp_LoginWithPromptedUsername(t *testing.T) {
	app, out := newTestApp(t, "chef\nchef123\n")

	require.NoError(t, app.Login(context.Background(), nil))
	assert.True(t, app.isLoggedIn())
	assert.Contains(t, out.String(), "Welcome, Chef Principal!")
	assert.Equal(t, "chef", app.getStatus())
}

func TestApp_LoginFailureIsReported(t *testing.T) {
	app, out := newTestApp(t, "wrong\n")

	require.NoError(t, app.Login(context.Background(), []string{"admin"}))
	assert.False(t, app.isLoggedIn())
	assert.Contains(t, out.String(), "Login failed: "+common.ErrInvalidCredentials.Error())
}

func TestApp_SessionCommands(t *testing.T) {
	app, out := newTestApp(t, "admin123\n")
	ctx := context.Background()

	require.NoError(t, app.Login(ctx, []string{"admin"}))

	require.NoError(t, app.WhoAmI(ctx))
	assert.Contains(t, out.String(), "Administrador (admin) <admin@example.com> id=3")

	require.NoError(t, app.Profile(ctx))
	assert.Contains(t, out.String(), "Protected data for Administrador")
	assert.Contains(t, out.String(), "saved recipes: 12")

	require.NoError(t, app.Status(ctx, nil))
	assert.Contains(t, out.String(), "status=idle user=admin")

	require.NoError(t, app.Logout(ctx))
	assert.False(t, app.isLoggedIn())
	require.ErrorIs(t, app.Profile(ctx), common.ErrUnauthenticated)
	require.ErrorIs(t, app.WhoAmI(ctx), common.ErrUnauthenticated)
}

func TestApp_PreferenceCommands(t *testing.T) {
	app, out := newTestApp(t, "")
	ctx := context.Background()

	require.NoError(t, app.Favorite(ctx, []string{"42"}))
	assert.Contains(t, out.String(), "Recipe 42 added to favorites")
	require.NoError(t, app.Favorite(ctx, []string{"42"}))
	assert.Contains(t, out.String(), "Recipe 42 removed from favorites")

	require.NoError(t, app.Favorite(ctx, []string{"3"}))
	require.NoError(t, app.Rate(ctx, []string{"7", "4"}))
	assert.Contains(t, out.String(), "Recipe 7 rated ★★★★☆")

	require.ErrorIs(t, app.Rate(ctx, []string{"7", "9"}), common.ErrInvalidPreferenceValue)
	assert.Equal(t, 4, app.prefs.GetRating(7))

	require.NoError(t, app.ToggleDark(ctx))
	assert.Equal(t, "guest dark", app.getStatus())

	out.Reset()
	require.NoError(t, app.Prefs(ctx))
	assert.Equal(t, "Favorites: 3\nRatings:\n  7: ★★★★☆\nDark mode: on\n", out.String())
}

func TestApp_VerboseStatusListsStoredKeys(t *testing.T) {
	app, out := newTestApp(t, "chef123\n")
	ctx := context.Background()

	require.NoError(t, app.Login(ctx, []string{"chef"}))
	require.NoError(t, app.ToggleDark(ctx))

	out.Reset()
	require.NoError(t, app.Status(ctx, []string{"-v"}))

	got := out.String()
	assert.Contains(t, got, "status=idle user=chef")
	assert.Contains(t, got, "stored keys:")
	assert.Regexp(t, `authToken \(\d+ bytes\)\n  authUser \(\d+ bytes\)\n  recipePreferences \(\d+ bytes\)`, got)
	assert.NotContains(t, got, app.session.Token(), "values stay hidden")

	require.Error(t, app.Status(ctx, []string{"-x"}))
}

func TestApp_CommandArgumentErrors(t *testing.T) {
	app, _ := newTestApp(t, "")
	ctx := context.Background()

	tests := []struct {
		name string
		run  func() error
	}{
		{"fav without id", func() error { return app.Favorite(ctx, nil) }},
		{"fav with bad id", func() error { return app.Favorite(ctx, []string{"abc"}) }},
		{"fav with negative id", func() error { return app.Favorite(ctx, []string{"-1"}) }},
		{"rate missing value", func() error { return app.Rate(ctx, []string{"1"}) }},
		{"rate non numeric", func() error { return app.Rate(ctx, []string{"1", "x"}) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.run())
		})
	}
	assert.Empty(t, app.prefs.Favorites())
}

func TestApp_RunScript(t *testing.T) {
	lines := capturePrintln(t)
	app, out := newTestApp(t, strings.Join([]string{
		"login usuario1",
		"password123",
		"fav 10",
		"rate 10 5",
		"whoami",
		"exit",
	}, "\n"))

	app.Run(context.Background())

	assert.Contains(t, out.String(), "Welcome, Usuario Demo!")
	assert.Contains(t, out.String(), "Recipe 10 rated ★★★★★")
	assert.Contains(t, *lines, "Bye!")
}

func TestNewApp_PersistsAcrossRestarts(t *testing.T) {
	cfg := &config.Config{
		DatabaseDSN: filepath.Join(t.TempDir(), "nested", "recipebox.db"),
		LogLevel:    "error",
	}
	ctx := context.Background()

	first, err := NewApp(ctx, cfg)
	require.NoError(t, err)
	_, err = first.session.Login(ctx, "chef", []byte("chef123"))
	require.NoError(t, err)
	_, err = first.prefs.ToggleFavorite(ctx, 42)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewApp(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	assert.True(t, second.isLoggedIn())
	assert.True(t, second.prefs.IsFavorite(42))
}
