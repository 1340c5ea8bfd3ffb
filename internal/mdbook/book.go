package mdbook

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Keys under which mdBook versions store the top-level item list.
const (
	sectionsKey = "sections" // mdBook 0.4
	itemsKey    = "items"    // mdBook 0.5
)

// Context is the preprocessor context sent by mdBook.
type Context struct {
	Root          string         `json:"root"`
	Config        map[string]any `json:"config"`
	Renderer      string         `json:"renderer"`
	MdbookVersion string         `json:"mdbook_version"`
}

// Book is the book tree sent by mdBook.
type Book struct {
	Items []*BookItem

	itemsKey string
	fields   map[string]json.RawMessage
}

// BookItem is one entry of the book tree: a chapter, a separator, or a part
// title. Non-chapter items are kept as raw JSON.
type BookItem struct {
	Chapter *Chapter

	raw json.RawMessage
}

// Chapter is a book chapter. Fields other than Name, Content and SubItems
// are carried through unchanged.
type Chapter struct {
	Name     string
	Content  string
	SubItems []*BookItem

	fields map[string]json.RawMessage
}

// chapterItem is the JSON wrapper of a chapter item: {"Chapter": {...}}.
type chapterItem struct {
	Chapter *Chapter `json:"Chapter"`
}

// UnmarshalJSON decodes a book in either protocol shape.
func (b *Book) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	key := sectionsKey
	raw, ok := fields[sectionsKey]
	if !ok {
		if raw, ok = fields[itemsKey]; !ok {
			return fmt.Errorf("book has neither %q nor %q", sectionsKey, itemsKey)
		}
		key = itemsKey
	}

	var items []*BookItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("decoding %s: %w", key, err)
	}

	delete(fields, key)
	b.Items = items
	b.itemsKey = key
	b.fields = fields
	return nil
}

// MarshalJSON encodes the book in the shape it was decoded from.
func (b *Book) MarshalJSON() ([]byte, error) {
	key := b.itemsKey
	if key == "" {
		key = sectionsKey
	}
	return marshalWith(b.fields, map[string]any{key: nonNilItems(b.Items)})
}

// UnmarshalJSON decodes a chapter item or keeps any other item raw.
func (it *BookItem) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &probe); err != nil {
			return err
		}
		if _, ok := probe["Chapter"]; ok {
			var ci chapterItem
			if err := json.Unmarshal(trimmed, &ci); err != nil {
				return err
			}
			if ci.Chapter == nil {
				return fmt.Errorf("chapter item is null")
			}
			it.Chapter = ci.Chapter
			return nil
		}
	}

	it.raw = append(json.RawMessage(nil), trimmed...)
	return nil
}

// MarshalJSON encodes the item in its original form.
func (it *BookItem) MarshalJSON() ([]byte, error) {
	if it.Chapter != nil {
		return json.Marshal(chapterItem{Chapter: it.Chapter})
	}
	if it.raw == nil {
		return []byte("null"), nil
	}
	return it.raw, nil
}

// UnmarshalJSON decodes a chapter, keeping unknown fields.
func (c *Chapter) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var known struct {
		Name     string      `json:"name"`
		Content  string      `json:"content"`
		SubItems []*BookItem `json:"sub_items"`
	}
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}

	delete(fields, "name")
	delete(fields, "content")
	delete(fields, "sub_items")

	c.Name = known.Name
	c.Content = known.Content
	c.SubItems = known.SubItems
	c.fields = fields
	return nil
}

// MarshalJSON encodes the chapter with its unknown fields.
func (c *Chapter) MarshalJSON() ([]byte, error) {
	return marshalWith(c.fields, map[string]any{
		"name":      c.Name,
		"content":   c.Content,
		"sub_items": nonNilItems(c.SubItems),
	})
}

// Path returns the chapter's source path relative to the book source
// directory, or "" for a draft chapter.
func (c *Chapter) Path() string {
	raw, ok := c.fields["path"]
	if !ok {
		return ""
	}
	var path *string
	if err := json.Unmarshal(raw, &path); err != nil || path == nil {
		return ""
	}
	return *path
}

// Chapters returns every chapter in the book, depth-first in reading order.
// Separators and part titles are skipped. The returned pointers alias the
// book, so edits to Content are written back.
func (b *Book) Chapters() []*Chapter {
	var out []*Chapter
	var walk func(items []*BookItem)
	walk = func(items []*BookItem) {
		for _, it := range items {
			if it == nil || it.Chapter == nil {
				continue
			}
			out = append(out, it.Chapter)
			walk(it.Chapter.SubItems)
		}
	}
	walk(b.Items)
	return out
}

// marshalWith encodes extra merged with known; known keys win.
func marshalWith(extra map[string]json.RawMessage, known map[string]any) ([]byte, error) {
	out := make(map[string]any, len(extra)+len(known))
	for k, v := range extra {
		out[k] = v
	}
	for k, v := range known {
		out[k] = v
	}
	return json.Marshal(out)
}

// nonNilItems keeps empty lists encoding as [] rather than null.
func nonNilItems(items []*BookItem) []*BookItem {
	if items == nil {
		return []*BookItem{}
	}
	return items
}
