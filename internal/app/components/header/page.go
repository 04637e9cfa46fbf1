package header

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/FACorreiaa/visiventur/internal/app/models"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

// Page renders the document shell around the navbar and content.
func Page(layout models.LayoutTempl, nav templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.write("<!DOCTYPE html>")
		h.open("html", a("lang", "en"), a("data-theme", string(layout.ThemeMode)))
		h.open("head")
		h.open("meta", a("charset", "utf-8"))
		h.open("meta", a("name", "viewport"), a("content", "width=device-width, initial-scale=1"))
		h.elem("title", layout.Title)
		h.open("link", a("rel", "stylesheet"), a("href", "/assets/css/theme.css"))
		h.open("script", a("src", htmxSrc), flag("defer", true))
		h.close("script")
		h.close("head")
		h.open("body", a("class", "min-h-screen bg-light-brown text-gray-900"), a("data-page", layout.ActiveNav), a("data-currency", string(layout.Currency)))
		h.render(ctx, nav)
		h.open("main", a("id", "main-content"), a("class", "mx-auto max-w-7xl px-4 py-10"))
		h.render(ctx, layout.Content)
		h.close("main")
		h.close("body")
		h.close("html")
		return h.err
	})
}

// Hero is the landing page body.
func Hero(currency models.Currency) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &html{w: w}
		h.open("section", a("class", "space-y-4"))
		h.elem("h1", "Plan trips you will remember", a("class", "text-4xl font-bold tracking-tight"))
		h.elem("p", "Curated stays and experiences from "+models.FormatAmount(49, currency)+" per night.",
			a("id", "visiventur-hero-price"), a("class", "text-lg text-gray-700"))
		h.close("section")
		return h.err
	})
}
