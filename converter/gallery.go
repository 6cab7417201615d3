package converter

import (
	"fmt"
	"html"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/rgonek/exe-legacy-converter/legacy"
)

// Candidate legacy key names for the gallery, tried in order.
var (
	galleryImageListKeys = []string{"images", "_images", "imageList"}
	galleryCaptionKeys   = []string{"_caption", "caption", "_titleTextArea"}
	galleryImageKeys     = []string{"_imageResource", "imageResource", "_resource"}
	galleryThumbnailKeys = []string{"_thumbnailResource", "thumbnailResource"}
)

// galleryImage is one image entry of a legacy gallery.
type galleryImage struct {
	Image     string
	Thumbnail string
	Title     string
}

// galleryHandler re-emits gallery images as an index-keyed map, which is what
// the modern gallery editor iterates over.
type galleryHandler struct {
	baseHandler
}

var galleryMatcher = classMatcher{exact: []string{"GalleryIdevice"}}

func (galleryHandler) Name() string { return "gallery" }

func (galleryHandler) CanHandle(className, typeHint string) bool {
	return galleryMatcher.match(className, typeHint)
}

func (galleryHandler) TargetType() string { return TypeImageGallery }

// galleryImageList finds the image list. Some vintages wrap it in a
// GalleryImages instance whose dictionary holds the actual list.
func galleryImageList(dict *legacy.Node) *legacy.Node {
	for _, key := range galleryImageListKeys {
		value := legacy.FindValue(dict, key).Resolve()
		if value == nil {
			continue
		}
		switch value.Kind {
		case legacy.KindList:
			return value
		case legacy.KindInstance:
			if list := legacy.FindList(value, "list"); list != nil {
				return list
			}
		}
	}
	return nil
}

func readGalleryImages(dict *legacy.Node) []galleryImage {
	list := galleryImageList(dict)
	if list == nil {
		return nil
	}

	var images []galleryImage
	for _, item := range list.Items() {
		item = item.Resolve()
		if item == nil || item.Kind != legacy.KindInstance {
			continue
		}
		image := galleryImage{
			Image:     findResource(item, galleryImageKeys),
			Thumbnail: findResource(item, galleryThumbnailKeys),
			Title:     strings.TrimSpace(StripHTMLTags(firstFieldText(item, galleryCaptionKeys))),
		}
		if image.Image == "" {
			continue
		}
		images = append(images, image)
	}
	return images
}

func (galleryHandler) ExtractHTMLView(dict *legacy.Node, _ ExtractionContext) string {
	images := readGalleryImages(dict)
	if len(images) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<div class="imageGallery">`)
	for i, image := range images {
		thumbnail := image.Thumbnail
		if thumbnail == "" {
			thumbnail = image.Image
		}
		fmt.Fprintf(&b,
			`<a href="%s" id="img_%d" title="%s"><img src="%s" alt="%s" /></a>`,
			html.EscapeString(image.Image), i,
			html.EscapeString(image.Title),
			html.EscapeString(thumbnail),
			html.EscapeString(image.Title),
		)
	}
	b.WriteString(`</div>`)
	return b.String()
}

func (galleryHandler) ExtractProperties(dict *legacy.Node, ctx ExtractionContext) *Properties {
	entries := orderedmap.New[string, map[string]string]()
	for i, image := range readGalleryImages(dict) {
		entries.Set(fmt.Sprintf("img_%d", i), map[string]string{
			"img":       image.Image,
			"thumbnail": image.Thumbnail,
			"title":     image.Title,
		})
	}

	props := newProperties(ctx)
	props.Set("images", entries)
	return props
}
