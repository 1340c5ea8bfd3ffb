package render

// Option is a single key/value pair passed to a template.
type Option struct {
	Key   string
	Value string
}

// Options is an ordered list of template options.
// Order and duplicate keys are preserved as written by the caller.
type Options []Option

// Lookup returns the value for key. When the key appears more than once
// the last occurrence wins.
func (o Options) Lookup(key string) (string, bool) {
	for i := len(o) - 1; i >= 0; i-- {
		if o[i].Key == key {
			return o[i].Value, true
		}
	}
	return "", false
}

// Get returns the value for key, or def if the key is absent or empty.
func (o Options) Get(key, def string) string {
	if v, ok := o.Lookup(key); ok && v != "" {
		return v
	}
	return def
}

// Keys returns the option keys in order, including duplicates.
func (o Options) Keys() []string {
	keys := make([]string, len(o))
	for i, opt := range o {
		keys[i] = opt.Key
	}
	return keys
}
