package converter

import (
	"fmt"
	"html"
	"strings"

	"github.com/rgonek/exe-legacy-converter/legacy"
)

// Candidate legacy key names for file attachments, tried in order.
var (
	attachmentListKeys        = []string{"fileAttachmentFields", "fileAttachments", "userResources", "files"}
	attachmentDescriptionKeys = []string{"fileDescription", "_description", "description", "label"}
	attachmentResourceKeys    = []string{"fileResource", "_fileResource", "resource", "_resource"}
	attachmentIntroKeys       = []string{"introHTML", "_introHTML", "introduction"}
)

// attachment is one downloadable file.
type attachment struct {
	FileName    string
	Description string
}

type attachmentHandler struct {
	baseHandler
}

var attachmentMatcher = classMatcher{exact: []string{"FileAttachIdevice", "FileAttachIdeviceInc", "AttachmentIdevice"}}

func (attachmentHandler) Name() string { return "file-attachment" }

func (attachmentHandler) CanHandle(className, typeHint string) bool {
	return attachmentMatcher.match(className, typeHint)
}

func (attachmentHandler) TargetType() string { return TypeText }

// readAttachments accepts both attachment field instances and bare Resource
// instances in the list.
func readAttachments(dict *legacy.Node) []attachment {
	list := findFirstList(dict, attachmentListKeys)
	if list == nil {
		return nil
	}

	var files []attachment
	for _, item := range list.Items() {
		item = item.Resolve()
		if item == nil || item.Kind != legacy.KindInstance {
			continue
		}
		name := findResource(item, attachmentResourceKeys)
		if name == "" {
			name = resourceFileName(item)
		}
		if name == "" {
			continue
		}
		description := strings.TrimSpace(StripHTMLTags(firstFieldText(item, attachmentDescriptionKeys)))
		if description == "" {
			description = name
		}
		files = append(files, attachment{FileName: name, Description: description})
	}
	return files
}

func renderAttachments(intro string, files []attachment) string {
	var b strings.Builder
	if strings.TrimSpace(intro) != "" {
		b.WriteString(intro)
	}
	if len(files) == 0 {
		return b.String()
	}
	b.WriteString(`<p class="exe-attachments">`)
	for i, file := range files {
		if i > 0 {
			b.WriteString(`<br />`)
		}
		fmt.Fprintf(&b, `<a href="%s" download="%s">%s</a>`,
			html.EscapeString(file.FileName),
			html.EscapeString(file.FileName),
			html.EscapeString(file.Description),
		)
	}
	b.WriteString(`</p>`)
	return b.String()
}

func (attachmentHandler) ExtractHTMLView(dict *legacy.Node, _ ExtractionContext) string {
	return renderAttachments(firstFieldText(dict, attachmentIntroKeys), readAttachments(dict))
}

func (h attachmentHandler) ExtractProperties(dict *legacy.Node, ctx ExtractionContext) *Properties {
	props := newProperties(ctx)
	props.Set("textTextarea", h.ExtractHTMLView(dict, ctx))
	return props
}
