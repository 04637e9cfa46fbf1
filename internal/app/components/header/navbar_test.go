package header

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/visiventur/internal/app/models"
	"github.com/FACorreiaa/visiventur/internal/app/navbar"
)

func render(t *testing.T, c templ.Component) *goquery.Document {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, c.Render(context.Background(), &sb))
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sb.String()))
	require.NoError(t, err)
	return doc
}

func snapshot(opts navbar.Options, hydrate bool, path string) navbar.Snapshot {
	store := navbar.NewStore(opts)
	if hydrate {
		store.Hydrate(nil)
	}
	return navbar.New(navbar.Config{Store: store, Path: path}).Snapshot()
}

func TestNavbarSignedOut(t *testing.T) {
	doc := render(t, Navbar(Props{Snapshot: snapshot(navbar.Options{InitialCurrency: "EUR"}, true, "/pricing")}))

	header := doc.Find("header#" + NavbarID)
	require.Equal(t, 1, header.Length())
	theme, _ := header.Attr("data-theme")
	assert.Equal(t, "light", theme)

	t.Run("auth buttons instead of profile", func(t *testing.T) {
		assert.Equal(t, 1, doc.Find("#visiventur-signin").Length())
		assert.Equal(t, 1, doc.Find("#"+navbar.DrawerSignUpID).Length())
		assert.Zero(t, doc.Find("[aria-haspopup=menu]").Length())
		href, _ := doc.Find("#visiventur-signup").Attr("href")
		assert.Equal(t, "/auth/sign-up", href)
	})

	t.Run("current link marked", func(t *testing.T) {
		current := doc.Find("#" + navbar.PrimaryLinkID(navbar.VariantDesktop, 0))
		v, ok := current.Attr("aria-current")
		assert.True(t, ok)
		assert.Equal(t, "page", v)

		placeholder := doc.Find("#" + navbar.PrimaryLinkID(navbar.VariantDesktop, 1))
		disabled, _ := placeholder.Attr("aria-disabled")
		assert.Equal(t, "true", disabled)
		_, hasHref := placeholder.Attr("href")
		assert.False(t, hasHref)
	})

	t.Run("currency trigger shows label and is enabled", func(t *testing.T) {
		trigger := doc.Find("#" + navbar.CurrencyTriggerID(navbar.VariantDesktop))
		assert.Contains(t, trigger.Text(), "€ EUR")
		_, disabled := trigger.Attr("disabled")
		assert.False(t, disabled)
		label, _ := trigger.Attr("aria-label")
		assert.True(t, strings.HasPrefix(label, "Currency:"))
	})

	t.Run("options mark selection and gateway", func(t *testing.T) {
		opts := doc.Find("#" + navbar.CurrencyListboxID(navbar.VariantDesktop) + " [role=option]")
		require.Equal(t, 4, opts.Length())
		selected := opts.Filter("[aria-selected=true]")
		require.Equal(t, 1, selected.Length())
		assert.Contains(t, selected.Text(), "EUR")

		inr := opts.First()
		gw, _ := inr.Attr("data-gateway")
		assert.Equal(t, "Razorpay", gw)
		vals, _ := inr.Attr("hx-vals")
		assert.Equal(t, `{"currency":"INR"}`, vals)
	})

	t.Run("help modal hidden without chat", func(t *testing.T) {
		backdrop := doc.Find("#" + navbar.HelpDialogID + "-backdrop")
		_, hidden := backdrop.Attr("hidden")
		assert.True(t, hidden)
		dialog := doc.Find("#" + navbar.HelpDialogID)
		role, _ := dialog.Attr("role")
		assert.Equal(t, "dialog", role)
		modal, _ := dialog.Attr("aria-modal")
		assert.Equal(t, "true", modal)
		assert.Zero(t, doc.Find("#"+navbar.HelpChatID).Length())
		tel, _ := doc.Find("#" + navbar.HelpPhoneID).Attr("href")
		assert.Equal(t, "tel:+18005552048", tel)
	})
}

func TestNavbarBeforeHydration(t *testing.T) {
	doc := render(t, Navbar(Props{Snapshot: snapshot(navbar.Options{}, false, "/")}))
	for _, v := range []navbar.Variant{navbar.VariantDesktop, navbar.VariantDrawer} {
		_, disabled := doc.Find("#" + navbar.CurrencyTriggerID(v)).Attr("disabled")
		assert.True(t, disabled, v)
	}
}

func TestNavbarSignedIn(t *testing.T) {
	user := &models.SessionUser{
		ID:                  "u-1",
		Name:                "Ada Lovelace",
		Email:               "ada@example.com",
		IsPremium:           true,
		UnreadNotifications: 27,
	}
	doc := render(t, Navbar(Props{Snapshot: snapshot(navbar.Options{User: user}, true, "/")}))

	theme, _ := doc.Find("header").Attr("data-theme")
	assert.Equal(t, "premium", theme)

	trigger := doc.Find("#" + navbar.ProfileTriggerID(navbar.VariantDesktop))
	require.Equal(t, 1, trigger.Length())
	assert.Equal(t, "AL", strings.TrimSpace(trigger.Find(".avatar-initials").Text()))
	assert.Equal(t, "9", trigger.Find(".notification-badge").Text())

	avatar := trigger.Find("[data-premium]")
	class, _ := avatar.Attr("class")
	assert.Contains(t, class, "border-kalahari-gold")

	items := doc.Find("#" + navbar.ProfileMenuID + " [role=menuitem]")
	require.Equal(t, 4, items.Length())
	assert.Equal(t, "Log out", items.Last().Text())
	signout, _ := items.Last().Attr("hx-post")
	assert.Equal(t, "/api/auth/signout", signout)

	assert.Zero(t, doc.Find("#visiventur-signin").Length())
	assert.Equal(t, 1, doc.Find("#"+navbar.HelpChatID).Length())
}

func TestProfileMenuWithoutBadge(t *testing.T) {
	snap := snapshot(navbar.Options{User: &models.SessionUser{Email: "zoe@example.com"}}, true, "/")
	doc := render(t, ProfileMenu(snap, navbar.VariantDesktop))
	assert.Zero(t, doc.Find(".notification-badge").Length())
	assert.Equal(t, "ZO", doc.Find(".avatar-initials").Text())
	class, _ := doc.Find("[data-premium]").Attr("class")
	assert.NotContains(t, class, "kalahari-gold")
}

func TestMobileDrawer(t *testing.T) {
	doc := render(t, MobileDrawer(snapshot(navbar.Options{}, true, "/explore")))

	toggle := doc.Find("#" + navbar.DrawerToggleID)
	label, _ := toggle.Attr("aria-label")
	assert.Equal(t, "Toggle navigation menu", label)
	expanded, _ := toggle.Attr("aria-expanded")
	assert.Equal(t, "false", expanded)

	current, _ := doc.Find("#" + navbar.PrimaryLinkID(navbar.VariantDrawer, 2)).Attr("aria-current")
	assert.Equal(t, "page", current)
	assert.Equal(t, 1, doc.Find("#"+navbar.DrawerHelpButtonID).Length())
}

func TestPageEscapesContent(t *testing.T) {
	layout := models.LayoutTempl{
		Title:     `<script>alert("x")</script>`,
		ThemeMode: models.ThemeDark,
		Content:   Hero(models.CurrencyGBP),
	}
	var sb strings.Builder
	require.NoError(t, Page(layout, Logo()).Render(context.Background(), &sb))
	out := sb.String()

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.NotContains(t, out, `<script>alert`)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)
	theme, _ := doc.Find("html").Attr("data-theme")
	assert.Equal(t, "dark", theme)
	assert.Contains(t, doc.Find("#visiventur-hero-price").Text(), "49")
	assert.Equal(t, 1, doc.Find("#visiventur-logo").Length())
}
