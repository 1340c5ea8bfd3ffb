package assets

// Origin identifies which loader layer provided a template.
type Origin string

// Template origins, in resolution order.
const (
	OriginBook     Origin = "book"
	OriginUser     Origin = "user"
	OriginEmbedded Origin = "embedded"
)

// TemplateInfo describes an available template.
type TemplateInfo struct {
	Name   string
	Origin Origin
}

// templateExt is the file extension of template files.
const templateExt = ".html"
