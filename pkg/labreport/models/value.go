package models

import (
	"encoding/base64"
	"encoding/json"
	"strings"
)

// Separator joins the fragments of a Value in its wire form.
// It is also used when values of a wrapped or repeated row are merged.
const Separator = " ||| "

// Kind classifies the content of a Value.
type Kind int

const (
	// KindEmpty is a cell without text or images.
	KindEmpty Kind = iota
	// KindText holds text only.
	KindText
	// KindImages holds one or more images and no text.
	KindImages
	// KindMixed holds both text and images.
	KindMixed
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindImages:
		return "images"
	case KindMixed:
		return "mixed"
	}
	return "empty"
}

// Image is a picture embedded in the worksheet.
type Image struct {
	// Format is the file extension without the leading dot (e.g. png).
	Format string `json:"format"`
	// MIME is the media type used in the inline marker.
	MIME string `json:"mime"`
	// Data holds the raw image bytes.
	Data []byte `json:"-"`
	// Width is the decoded pixel width (0 if the bytes could not be decoded).
	Width int `json:"width,omitempty"`
	// Height is the decoded pixel height (0 if the bytes could not be decoded).
	Height int `json:"height,omitempty"`
}

// DataURI renders the inline marker for the image.
func (img Image) DataURI() string {
	mime := img.MIME
	if mime == "" {
		mime = "application/octet-stream"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}

// Fragment is one piece of a Value: either text or an image.
type Fragment struct {
	// Text is set for text fragments.
	Text string `json:"text,omitempty"`
	// Image is set for image fragments.
	Image *Image `json:"image,omitempty"`
}

// String returns the wire form of the fragment.
func (f Fragment) String() string {
	if f.Image != nil {
		return f.Image.DataURI()
	}
	return f.Text
}

// Value is the content of a cell or of a merged parameter value.
//
// Text and images stay separate fragments until the value is serialized;
// only String and the marshalers join them with Separator.
type Value struct {
	Fragments []Fragment
}

// TextValue returns a Value holding s, or the empty Value when s is blank.
func TextValue(s string) Value {
	return NewValue(s)
}

// NewValue builds a cell value from its text followed by its images.
func NewValue(text string, images ...Image) Value {
	var v Value
	if text = strings.TrimSpace(text); text != "" {
		v.Fragments = append(v.Fragments, Fragment{Text: text})
	}
	for i := range images {
		img := images[i]
		v.Fragments = append(v.Fragments, Fragment{Image: &img})
	}
	return v
}

// IsEmpty reports whether v has no fragments.
func (v Value) IsEmpty() bool { return len(v.Fragments) == 0 }

// Kind reports what v carries.
func (v Value) Kind() Kind {
	var text, images bool
	for _, f := range v.Fragments {
		if f.Image != nil {
			images = true
		} else {
			text = true
		}
	}
	switch {
	case text && images:
		return KindMixed
	case images:
		return KindImages
	case text:
		return KindText
	}
	return KindEmpty
}

// Text returns the text fragments joined by Separator, ignoring images.
func (v Value) Text() string {
	parts := make([]string, 0, len(v.Fragments))
	for _, f := range v.Fragments {
		if f.Image == nil {
			parts = append(parts, f.Text)
		}
	}
	return strings.Join(parts, Separator)
}

// Images returns the image fragments in order.
func (v Value) Images() []Image {
	var out []Image
	for _, f := range v.Fragments {
		if f.Image != nil {
			out = append(out, *f.Image)
		}
	}
	return out
}

// String returns the wire form: every fragment joined by Separator.
func (v Value) String() string {
	parts := make([]string, len(v.Fragments))
	for i, f := range v.Fragments {
		parts[i] = f.String()
	}
	return strings.Join(parts, Separator)
}

// Merge returns a new Value with the fragments of o appended to v.
// The receiver is not modified.
func (v Value) Merge(o Value) Value {
	if o.IsEmpty() {
		return v
	}
	frags := make([]Fragment, 0, len(v.Fragments)+len(o.Fragments))
	frags = append(frags, v.Fragments...)
	frags = append(frags, o.Fragments...)
	return Value{Fragments: frags}
}

// ParseValue splits a wire-form string back into fragments.
// Image markers are decoded; anything that fails to decode stays text.
func ParseValue(s string) Value {
	var v Value
	if s == "" {
		return v
	}
	for _, part := range strings.Split(s, Separator) {
		if img, ok := parseDataURI(part); ok {
			v.Fragments = append(v.Fragments, Fragment{Image: &img})
			continue
		}
		v.Fragments = append(v.Fragments, Fragment{Text: part})
	}
	return v
}

func parseDataURI(s string) (Image, bool) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return Image{}, false
	}
	mime, payload, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return Image{}, false
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Image{}, false
	}
	format := mime
	if i := strings.IndexByte(mime, '/'); i >= 0 {
		format = mime[i+1:]
	}
	return Image{Format: format, MIME: mime, Data: data}, true
}

// MarshalJSON encodes the wire form.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// UnmarshalJSON decodes the wire form.
func (v *Value) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*v = ParseValue(s)
	return nil
}

// MarshalYAML encodes the wire form.
func (v Value) MarshalYAML() (interface{}, error) {
	return v.String(), nil
}
