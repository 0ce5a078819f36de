package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/dmitrijs2005/recipebox/internal/common"
)

var errUsage = errors.New("usage")

// Login authenticates with a username taken from args or prompted for, and
// a password read without echo. A rejected login is reported, not returned.
func (a *App) Login(ctx context.Context, args []string) error {
	a.session.ClearError()

	var username string
	if len(args) > 0 {
		username = args[0]
	} else {
		u, err := GetSimpleText(a.reader, "Enter username", a.out)
		if err != nil {
			return err
		}
		username = u
	}

	password, err := GetPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	fmt.Fprintln(a.out, "Signing in...")
	user, err := a.session.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			fmt.Fprintln(a.out, "Login failed:", a.session.LastError())
			return nil
		}
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", user.FullName)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u, ok := a.session.User()
	if !ok {
		return common.ErrUnauthenticated
	}
	fmt.Fprintf(a.out, "%s (%s) <%s> id=%d\n", u.FullName, u.Username, u.Email, u.ID)
	return nil
}

// Profile fetches and prints the protected profile data.
func (a *App) Profile(ctx context.Context) error {
	fmt.Fprintln(a.out, "Loading profile...")
	data, err := a.session.FetchProtectedData(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, data.Message)
	fmt.Fprintf(a.out, "  favorites:     %d\n", data.Data.Favorites)
	fmt.Fprintf(a.out, "  saved recipes: %d\n", data.Data.SavedRecipes)
	fmt.Fprintf(a.out, "  last visit:    %s\n", data.Data.LastVisit.Format(time.RFC3339))
	return nil
}

func (a *App) Favorite(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: fav <id>", errUsage)
	}
	id, err := parseRecipeID(args[0])
	if err != nil {
		return err
	}

	on, err := a.prefs.ToggleFavorite(ctx, id)
	if err != nil {
		return err
	}
	if on {
		fmt.Fprintf(a.out, "Recipe %d added to favorites\n", id)
	} else {
		fmt.Fprintf(a.out, "Recipe %d removed from favorites\n", id)
	}
	return nil
}

func (a *App) Favorites(ctx context.Context) error {
	ids := a.prefs.Favorites()
	if len(ids) == 0 {
		fmt.Fprintln(a.out, "No favorites yet")
		return nil
	}
	fmt.Fprintln(a.out, "Favorites:", joinInts(ids))
	return nil
}

func (a *App) Rate(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: rate <id> <%d-%d>", errUsage, common.MinRating, common.MaxRating)
	}
	id, err := parseRecipeID(args[0])
	if err != nil {
		return err
	}
	value, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("%w: rating %q is not a number", common.ErrInvalidPreferenceValue, args[1])
	}

	if err := a.prefs.SetRating(ctx, id, value); err != nil {
		return err
	}
	if value == common.MinRating {
		fmt.Fprintf(a.out, "Rating for recipe %d cleared\n", id)
		return nil
	}
	fmt.Fprintf(a.out, "Recipe %d rated %s\n", id, stars(value))
	return nil
}

func (a *App) Prefs(ctx context.Context) error {
	p := a.prefs.Snapshot()

	favs := "none"
	if len(p.Favorites) > 0 {
		favs = joinInts(p.Favorites)
	}
	fmt.Fprintln(a.out, "Favorites:", favs)

	if len(p.Ratings) == 0 {
		fmt.Fprintln(a.out, "Ratings: none")
	} else {
		fmt.Fprintln(a.out, "Ratings:")
		ids := make([]int, 0, len(p.Ratings))
		for id := range p.Ratings {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		for _, id := range ids {
			fmt.Fprintf(a.out, "  %d: %s\n", id, stars(p.Ratings[id]))
		}
	}

	fmt.Fprintln(a.out, "Dark mode:", onOff(p.DarkMode))
	return nil
}

func (a *App) ToggleDark(ctx context.Context) error {
	on, err := a.prefs.ToggleDarkMode(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Dark mode:", onOff(on))
	return nil
}

// Status prints the session state. With -v it also lists the durable keys
// and their sizes; values are not shown since they include the token.
func (a *App) Status(ctx context.Context, args []string) error {
	verbose := len(args) > 0 && args[0] == "-v"
	if len(args) > 1 || (len(args) == 1 && !verbose) {
		return fmt.Errorf("%w: status [-v]", errUsage)
	}

	st := a.session.State()

	user := "none"
	if st.User != nil {
		user = st.User.Username
	}
	fmt.Fprintf(a.out, "status=%s user=%s\n", st.Status, user)
	if st.LastError != "" {
		fmt.Fprintln(a.out, "last error:", st.LastError)
	}
	if !verbose {
		return nil
	}

	stored, err := a.db.List(ctx)
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(stored))
	for k := range stored {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintln(a.out, "stored keys:")
	for _, k := range keys {
		fmt.Fprintf(a.out, "  %s (%d bytes)\n", k, len(stored[k]))
	}
	return nil
}
