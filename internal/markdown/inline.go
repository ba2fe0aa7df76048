// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markdown converts a fetched document into Markdown.
// The conversion is a pure function of the document snapshot: it performs no
// I/O, holds no shared state, and is safe to call concurrently on distinct
// documents.
package markdown

import (
	"strings"

	"github.com/pdiddy/docs-markdown/pkg/types"
)

// RenderInline renders one inline element of a paragraph styled with style.
// objects resolves image references. An empty result means the element
// produces no output and callers skip it.
func RenderInline(el types.InlineElement, style types.StyleType, objects map[string]types.ImageReference) string {
	switch e := el.(type) {
	case types.TextRun:
		return renderText(e, style)
	case types.ImageRef:
		return renderImage(e, objects)
	case types.OtherInline:
		return ""
	default:
		return ""
	}
}

// renderText applies emphasis in priority order: bold+italic, italic, bold,
// link. Heading styles get the raw text; the heading marker is added once per
// paragraph by the block renderer.
func renderText(run types.TextRun, style types.StyleType) string {
	if style.IsHeading() {
		return run.Content
	}

	text := run.Content
	st := run.Style
	if st.Bold || st.Italic {
		// Markup must not span the paragraph's closing newline.
		text = strings.Replace(text, "\n", "", 1)
	}
	if text == "" {
		return ""
	}

	switch {
	case st.Bold && st.Italic:
		return "**_" + text + "_**"
	case st.Italic:
		return "_" + text + "_"
	case st.Bold:
		return "**" + text + "**"
	case st.LinkURL != "":
		body, tail := text, ""
		if trimmed, ok := strings.CutSuffix(body, "\n"); ok {
			body, tail = trimmed, "\n"
		}
		return "[" + body + "](" + st.LinkURL + ")" + tail
	}
	return text
}

func renderImage(img types.ImageRef, objects map[string]types.ImageReference) string {
	// A missing object renders with an empty URL.
	url := objects[img.InlineObjectID].ContentURI
	return "![img](" + url + ")"
}
