package header

import (
	"context"
	"fmt"
	"io"
	"strconv"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"

	"github.com/FACorreiaa/visiventur/internal/app/models"
	"github.com/FACorreiaa/visiventur/internal/app/navbar"
)

// NavbarID is the HTMX swap target for navbar fragments.
const NavbarID = "visiventur-navbar"

type Props struct {
	Snapshot navbar.Snapshot
	Class    string
}

func cls(base string, extra ...string) string {
	return twmerge.Merge(append([]string{base}, extra...)...)
}

func swapAttrs() []attr {
	return []attr{
		a("hx-target", "#"+NavbarID),
		a("hx-swap", "outerHTML"),
	}
}

// Navbar renders the whole navigation shell.
func Navbar(p Props) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		snap := p.Snapshot
		h := &html{w: w}
		h.open("header",
			a("id", NavbarID),
			a("data-theme", string(snap.State.ThemeMode)),
			a("class", cls("sticky top-0 z-40 w-full border-b border-black/5 bg-light-brown/80 backdrop-blur", p.Class)),
		)
		h.open("nav", a("aria-label", "Primary"), a("class", "mx-auto flex max-w-7xl items-center justify-between gap-4 px-4 py-3"))

		h.render(ctx, Logo())
		h.open("div", a("class", "hidden items-center gap-6 md:flex"))
		h.render(ctx, PrimaryLinks(snap.Links))
		h.close("div")

		h.open("div", a("class", "hidden items-center gap-3 md:flex"))
		h.render(ctx, CurrencySelector(snap, navbar.VariantDesktop))
		h.render(ctx, ThemeToggle(snap.State.ThemeMode))
		h.elem("button", "Help",
			a("id", navbar.HelpButtonID),
			a("type", "button"),
			a("aria-haspopup", "dialog"),
			boolAttr("aria-expanded", snap.HelpOpen),
			a("aria-controls", navbar.HelpDialogID),
			a("data-track", string(navbar.EventHelpOpen)),
			a("class", "rounded-2xl px-3 py-2 text-sm font-medium text-gray-700 hover:text-royal-blue"),
		)
		if snap.State.Authenticated() {
			h.render(ctx, ProfileMenu(snap, navbar.VariantDesktop))
		} else {
			h.render(ctx, AuthButtons(navbar.VariantDesktop))
		}
		h.close("div")

		h.render(ctx, MobileDrawer(snap))
		h.close("nav")
		h.render(ctx, HelpModal(snap.HelpOpen, snap.State.Authenticated()))
		h.close("header")
		return h.err
	})
}

func Logo() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &html{w: w}
		h.open("a",
			a("id", "visiventur-logo"),
			a("href", "/"),
			a("aria-label", "VisiVentur home"),
			a("data-track", string(navbar.EventLogoClick)),
			a("class", "flex items-center gap-2 text-lg font-bold tracking-tight text-royal-blue"),
		)
		h.elem("span", "VisiVentur")
		h.close("a")
		return h.err
	})
}

// PrimaryLinks renders the main links. The current page gets aria-current and
// placeholders render disabled and out of the tab order.
func PrimaryLinks(links []navbar.LinkView) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &html{w: w}
		h.open("ul", a("class", "flex flex-col gap-2 md:flex-row md:gap-6"))
		for _, l := range links {
			h.open("li")
			base := "text-sm font-medium text-gray-700 transition-colors hover:text-royal-blue"
			switch {
			case l.Placeholder:
				h.elem("a", l.Name,
					a("id", l.ID),
					a("aria-disabled", "true"),
					a("tabindex", "-1"),
					a("class", cls(base, "cursor-not-allowed opacity-60 hover:text-gray-700")),
				)
			case l.Active:
				h.elem("a", l.Name,
					a("id", l.ID),
					a("href", l.URL),
					a("aria-current", "page"),
					a("class", cls(base, "text-royal-blue")),
				)
			default:
				h.elem("a", l.Name, a("id", l.ID), a("href", l.URL), a("class", base))
			}
			h.close("li")
		}
		h.close("ul")
		return h.err
	})
}

// CurrencySelector renders the trigger and listbox for variant.
func CurrencySelector(snap navbar.Snapshot, v navbar.Variant) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &html{w: w}
		label := snap.State.Currency.Label()
		open := snap.CurrencyOpen && v == navbar.VariantDesktop

		h.open("div", a("class", "relative"))
		h.open("button",
			a("id", navbar.CurrencyTriggerID(v)),
			a("type", "button"),
			a("aria-haspopup", "listbox"),
			boolAttr("aria-expanded", open),
			a("aria-controls", navbar.CurrencyListboxID(v)),
			a("aria-label", "Currency: "+label),
			flag("disabled", snap.CurrencyDisabled),
			a("class", cls("inline-flex items-center gap-2 rounded-2xl border border-black/10 bg-white/70 px-3 py-2 text-sm font-medium text-gray-700",
				drawerClass(v, "flex w-full justify-between px-4 py-3 text-base"),
				disabledClass(snap.CurrencyDisabled))),
		)
		h.elem("span", label, a("class", "font-semibold tracking-wide"))
		h.close("button")

		listAttrs := []attr{
			a("id", navbar.CurrencyListboxID(v)),
			a("role", "listbox"),
			a("aria-label", "Select currency"),
			a("class", "absolute right-0 z-50 mt-2 w-56 rounded-2xl border border-black/10 bg-white/95 p-2 shadow-lg"),
			flag("hidden", !open),
		}
		h.open("ul", listAttrs...)
		for i, info := range models.Currencies {
			selected := info.Code == snap.State.Currency
			attrs := []attr{
				a("id", navbar.CurrencyOptionID(v, i)),
				a("type", "button"),
				a("role", "option"),
				boolAttr("aria-selected", selected),
				a("data-gateway", string(info.Gateway)),
				a("hx-post", "/navbar/currency"),
				a("hx-vals", fmt.Sprintf(`{"currency":%q}`, info.Code)),
				a("class", cls("flex w-full items-center justify-between rounded-xl px-3 py-2 text-sm hover:bg-royal-blue/10",
					activeClass(selected))),
			}
			attrs = append(attrs, swapAttrs()...)
			h.open("li")
			h.open("button", attrs...)
			h.elem("span", info.Symbol+" "+string(info.Code), a("class", "font-semibold"))
			h.elem("span", info.Name, a("class", "text-xs text-gray-500"))
			h.close("button")
			h.close("li")
		}
		h.close("ul")
		h.close("div")
		return h.err
	})
}

// ThemeToggle switches between light and dark. Premium users keep the premium theme until they pick another.
func ThemeToggle(current models.ThemeMode) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		next := models.ThemeDark
		if current == models.ThemeDark {
			next = models.ThemeLight
		}
		h := &html{w: w}
		attrs := []attr{
			a("id", "visiventur-theme-toggle"),
			a("type", "button"),
			a("aria-label", "Switch to "+string(next)+" theme"),
			a("hx-post", "/navbar/theme"),
			a("hx-vals", fmt.Sprintf(`{"theme":%q}`, next)),
			a("class", "rounded-full p-2 text-gray-700 hover:text-royal-blue"),
		}
		h.elem("button", string(current), append(attrs, swapAttrs()...)...)
		return h.err
	})
}

func AuthButtons(v navbar.Variant) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		signInID, signUpID := "visiventur-signin", "visiventur-signup"
		if v == navbar.VariantDrawer {
			signInID, signUpID = navbar.DrawerSignInID, navbar.DrawerSignUpID
		}
		h := &html{w: w}
		h.open("div", a("class", cls("flex items-center gap-3", drawerClass(v, "flex-col items-stretch"))))
		h.elem("a", "Sign In",
			a("id", signInID),
			a("href", navbar.SignInURL),
			a("data-track", string(navbar.EventSignInClick)),
			a("class", "rounded-2xl px-4 py-2 text-sm font-semibold text-royal-blue hover:bg-royal-blue/10"),
		)
		h.elem("a", "Sign Up — It's free",
			a("id", signUpID),
			a("href", navbar.SignUpURL),
			a("data-track", string(navbar.EventSignUpClick)),
			a("class", "rounded-2xl bg-royal-blue px-4 py-2 text-sm font-semibold text-white shadow-sm hover:bg-royal-blue/90"),
		)
		h.close("div")
		return h.err
	})
}

// ProfileMenu renders the avatar trigger and the account menu.
func ProfileMenu(snap navbar.Snapshot, v navbar.Variant) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		user := snap.State.User
		if user == nil {
			return nil
		}
		h := &html{w: w}
		open := snap.ProfileOpen && v == navbar.VariantDesktop
		menuID := navbar.ProfileMenuID
		if v != navbar.VariantDesktop {
			menuID += "-" + string(v)
		}

		h.open("div", a("class", "relative"))
		h.open("button",
			a("id", navbar.ProfileTriggerID(v)),
			a("type", "button"),
			a("aria-haspopup", "menu"),
			boolAttr("aria-expanded", open),
			a("aria-controls", menuID),
			a("data-track", string(navbar.EventProfileOpen)),
			a("class", "flex items-center gap-3 rounded-2xl px-2 py-1 text-left"),
		)
		avatarClass := cls("relative flex h-10 w-10 items-center justify-center rounded-full bg-royal-blue/10 text-sm font-semibold text-royal-blue",
			premiumClass(user.IsPremium))
		h.open("span", a("class", avatarClass), a("data-premium", strconv.FormatBool(user.IsPremium)))
		if user.Image != "" {
			h.open("img", a("src", user.Image), a("alt", ""), a("class", "h-full w-full rounded-full object-cover"))
		} else {
			h.elem("span", navbar.Initials(user), a("aria-hidden", "true"), a("class", "avatar-initials"))
		}
		if snap.ShowBadge {
			h.elem("span", strconv.Itoa(snap.Badge),
				a("class", "notification-badge absolute -right-1 -top-1 rounded-full bg-red-600 px-1.5 text-xs text-white"),
				a("aria-label", fmt.Sprintf("%d unread notifications", user.UnreadNotifications)),
			)
		}
		h.close("span")
		displayName := user.Name
		if displayName == "" {
			displayName = user.Email
		}
		h.elem("span", displayName, a("class", "hidden text-sm font-medium text-gray-700 lg:inline"))
		h.close("button")

		h.open("div",
			a("id", menuID),
			a("role", "menu"),
			a("aria-labelledby", navbar.ProfileTriggerID(v)),
			a("class", "absolute right-0 z-50 mt-3 w-60 rounded-2xl border border-black/10 bg-white/95 p-2 shadow-lg"),
			flag("hidden", !open && v == navbar.VariantDesktop),
		)
		for i, item := range models.ProfileNav.Items {
			h.elem("a", item.Name,
				a("id", navbar.ProfileItemID(v, i)),
				a("role", "menuitem"),
				a("href", item.URL),
				a("class", "block rounded-xl px-3 py-2 text-sm font-medium text-gray-700 hover:bg-royal-blue/10"),
			)
		}
		h.elem("button", "Log out",
			a("id", navbar.ProfileItemID(v, len(models.ProfileNav.Items))),
			a("type", "button"),
			a("role", "menuitem"),
			a("hx-post", "/api/auth/signout"),
			a("data-track", string(navbar.EventLogout)),
			a("class", "block w-full rounded-xl px-3 py-2 text-left text-sm font-medium text-red-600 hover:bg-red-50"),
		)
		h.close("div")
		h.close("div")
		return h.err
	})
}

// HelpModal renders the help and concierge dialog.
func HelpModal(open, authenticated bool) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &html{w: w}
		h.open("div",
			a("id", navbar.HelpDialogID+"-backdrop"),
			a("role", "presentation"),
			a("class", "fixed inset-0 z-50 flex items-center justify-center bg-black/40 p-4"),
			flag("hidden", !open),
		)
		h.open("div",
			a("id", navbar.HelpDialogID),
			a("role", "dialog"),
			a("aria-modal", "true"),
			a("aria-labelledby", "help-dialog-title"),
			a("class", "w-full max-w-md rounded-3xl bg-white p-6 shadow-xl"),
		)
		h.elem("h2", "Help & concierge", a("id", "help-dialog-title"), a("class", "text-lg font-semibold"))
		h.elem("button", "Close", a("id", navbar.HelpCloseID), a("type", "button"), a("class", "absolute right-4 top-4"))
		h.open("ul", a("class", "mt-4 space-y-3 text-sm"))
		h.open("li")
		h.elem("a", "Browse FAQs", a("id", navbar.HelpFAQID), a("href", navbar.FAQURL))
		h.close("li")
		h.open("li")
		h.elem("a", navbar.SupportEmail, a("id", navbar.HelpEmailID), a("href", "mailto:"+navbar.SupportEmail))
		h.close("li")
		h.open("li")
		h.elem("a", navbar.SupportPhoneDisplay, a("id", navbar.HelpPhoneID), a("href", "tel:"+navbar.SupportPhone))
		h.close("li")
		h.close("ul")
		if authenticated {
			h.elem("button", "Open chat assistant",
				a("id", navbar.HelpChatID),
				a("type", "button"),
				a("class", "mt-4 w-full rounded-2xl bg-royal-blue px-4 py-2 text-sm font-semibold text-white"),
			)
		}
		h.close("div")
		h.close("div")
		return h.err
	})
}

// MobileDrawer renders the hamburger toggle and the small-screen drawer.
func MobileDrawer(snap navbar.Snapshot) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.open("button",
			a("id", navbar.DrawerToggleID),
			a("type", "button"),
			a("aria-label", "Toggle navigation menu"),
			boolAttr("aria-expanded", snap.DrawerOpen),
			a("aria-controls", navbar.DrawerID),
			a("data-track", string(navbar.EventMobileMenuToggle)),
			a("class", "inline-flex items-center rounded-xl p-2 text-gray-700 md:hidden"),
		)
		h.elem("span", "Menu", a("class", "sr-only"))
		h.close("button")

		h.open("div",
			a("id", navbar.DrawerID+"-backdrop"),
			a("role", "presentation"),
			a("class", "fixed inset-0 z-50 bg-black/40 md:hidden"),
			flag("hidden", !snap.DrawerOpen),
		)
		h.open("div",
			a("id", navbar.DrawerID),
			a("role", "dialog"),
			a("aria-modal", "true"),
			a("aria-labelledby", navbar.DrawerID+"-title"),
			a("class", "ml-auto flex h-full w-80 max-w-full flex-col gap-6 bg-light-brown p-6 shadow-xl"),
		)
		h.open("div", a("class", "flex items-center justify-between"))
		h.elem("h2", "Navigation", a("id", navbar.DrawerID+"-title"), a("class", "text-lg font-semibold"))
		h.elem("button", "Close", a("id", navbar.DrawerCloseID), a("type", "button"))
		h.close("div")

		h.render(ctx, PrimaryLinks(navbar.PrimaryLinks(navbar.VariantDrawer, snap.Path)))
		h.render(ctx, CurrencySelector(snap, navbar.VariantDrawer))
		h.elem("button", "Help & concierge",
			a("id", navbar.DrawerHelpButtonID),
			a("type", "button"),
			a("aria-controls", navbar.HelpDialogID),
			a("class", "rounded-xl border border-black/10 px-4 py-3 text-left text-base font-medium"),
		)
		if snap.State.Authenticated() {
			h.render(ctx, ProfileMenu(snap, navbar.VariantDrawer))
		} else {
			h.render(ctx, AuthButtons(navbar.VariantDrawer))
		}
		h.close("div")
		h.close("div")
		return h.err
	})
}

func drawerClass(v navbar.Variant, class string) string {
	if v == navbar.VariantDrawer {
		return class
	}
	return ""
}

func disabledClass(disabled bool) string {
	if disabled {
		return "cursor-not-allowed opacity-60"
	}
	return ""
}

func activeClass(selected bool) string {
	if selected {
		return "bg-royal-blue/10 text-royal-blue"
	}
	return ""
}

func premiumClass(premium bool) string {
	if premium {
		return "border border-kalahari-gold"
	}
	return ""
}
