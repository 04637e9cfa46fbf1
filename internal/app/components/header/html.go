package header

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

type attr struct {
	key   string
	value string
	bare  bool
}

func a(key, value string) attr { return attr{key: key, value: value} }

// flag renders a boolean attribute such as disabled when on is true.
func flag(key string, on bool) attr {
	if !on {
		return attr{}
	}
	return attr{key: key, bare: true}
}

func boolAttr(key string, v bool) attr {
	if v {
		return a(key, "true")
	}
	return a(key, "false")
}

// html accumulates the first write error so components can emit markup without checking every call.
type html struct {
	w   io.Writer
	err error
}

func (h *html) write(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *html) open(tag string, attrs ...attr) {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(tag)
	for _, at := range attrs {
		if at.key == "" {
			continue
		}
		b.WriteString(" ")
		b.WriteString(at.key)
		if at.bare {
			continue
		}
		b.WriteString(`="`)
		b.WriteString(templ.EscapeString(at.value))
		b.WriteString(`"`)
	}
	b.WriteString(">")
	h.write(b.String())
}

func (h *html) close(tag string) {
	h.write("</" + tag + ">")
}

func (h *html) text(s string) {
	h.write(templ.EscapeString(s))
}

// elem writes a complete element with escaped text content.
func (h *html) elem(tag, content string, attrs ...attr) {
	h.open(tag, attrs...)
	h.text(content)
	h.close(tag)
}

func (h *html) render(ctx context.Context, c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}
